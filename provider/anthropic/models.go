package anthropic

// ChatModel represents an Anthropic chat model.
type ChatModel string

const (
	ClaudeSonnet4 ChatModel = "claude-sonnet-4-0"
	ClaudeOpus4   ChatModel = "claude-opus-4-0"
	ClaudeHaiku35 ChatModel = "claude-3-5-haiku-latest"

	// DefaultChatModel is the recommended default model.
	DefaultChatModel ChatModel = ClaudeSonnet4
)

// String returns the model identifier string.
func (m ChatModel) String() string { return string(m) }
