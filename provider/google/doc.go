// Package google adapts the official Google GenAI Go SDK to the itinera
// ChatProvider interface.
package google
