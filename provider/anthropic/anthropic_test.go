package anthropic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ai "github.com/mstrand/itinera"
)

func TestConvertMessagesSplitsSystem(t *testing.T) {
	msgs, system := convertMessages([]ai.Message{
		{Role: ai.RoleSystem, Content: "be helpful"},
		{Role: ai.RoleUser, Content: "hi"},
		{Role: ai.RoleAssistant, Content: "hello"},
	})

	assert.Len(t, system, 1)
	assert.Equal(t, "be helpful", system[0].Text)
	assert.Len(t, msgs, 2)
}

func TestConvertMessagesDropsEmpty(t *testing.T) {
	msgs, system := convertMessages([]ai.Message{
		{Role: ai.RoleUser, Content: ""},
		{Role: ai.RoleSystem, Content: ""},
	})

	assert.Empty(t, msgs)
	assert.Empty(t, system)
}

func TestCategorizeStatusCode(t *testing.T) {
	assert.Equal(t, ai.ErrorTransient, categorizeStatusCode(429))
	assert.Equal(t, ai.ErrorTransient, categorizeStatusCode(529))
	assert.Equal(t, ai.ErrorPermanent, categorizeStatusCode(401))
	assert.Equal(t, ai.ErrorUserInput, categorizeStatusCode(400))
}
