// Package openai adapts the official OpenAI Go SDK to the itinera
// ChatProvider interface.
package openai
