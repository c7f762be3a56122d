// Package anthropic adapts the official Anthropic Go SDK to the itinera
// ChatProvider interface.
package anthropic
