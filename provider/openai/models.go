package openai

// ChatModel represents an OpenAI chat/completion model.
type ChatModel string

const (
	GPT4o     ChatModel = "gpt-4o"
	GPT4oMini ChatModel = "gpt-4o-mini"
	GPT41     ChatModel = "gpt-4.1"
	GPT41Mini ChatModel = "gpt-4.1-mini"
	O4Mini    ChatModel = "o4-mini"

	// DefaultChatModel is the recommended default model.
	DefaultChatModel ChatModel = GPT4o
)

// String returns the model identifier string.
func (m ChatModel) String() string { return string(m) }
