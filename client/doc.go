// Package client provides a unified chat client over the supported
// providers, with automatic retry on transient errors and optional
// operation events.
//
// The zero-friction path reads provider credentials from the environment:
//
//	c, err := client.FromEnv(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	resp, err := c.Chat(ctx, messages)
package client
