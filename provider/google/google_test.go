package google

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/mstrand/itinera"
)

func TestConvertMessagesRoleMapping(t *testing.T) {
	contents := convertMessages([]ai.Message{
		{Role: ai.RoleSystem, Content: "be helpful"},
		{Role: ai.RoleUser, Content: "hi"},
		{Role: ai.RoleAssistant, Content: "hello"},
		{Role: ai.RoleUser, Content: ""},
	})

	require.Len(t, contents, 3)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "user", contents[1].Role)
	assert.Equal(t, "model", contents[2].Role)
	assert.Equal(t, "be helpful", contents[0].Parts[0].Text)
}

func TestCategorizeStatusCode(t *testing.T) {
	assert.Equal(t, ai.ErrorTransient, categorizeStatusCode(429))
	assert.Equal(t, ai.ErrorTransient, categorizeStatusCode(500))
	assert.Equal(t, ai.ErrorPermanent, categorizeStatusCode(403))
	assert.Equal(t, ai.ErrorUserInput, categorizeStatusCode(404))
}
