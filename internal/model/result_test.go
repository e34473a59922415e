package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailedResultInvariant(t *testing.T) {
	cases := []HandlerResult{
		Failed("Вибачте", errors.New("boom")),
		Failed("Вибачте", nil),
		HandlerResult{Success: false, ActionPayload: map[string]any{"a": 1}}.Normalize(),
		HandlerResult{Success: false}.Normalize(),
	}
	for _, r := range cases {
		assert.False(t, r.Success)
		assert.Nil(t, r.ActionPayload)
		assert.NotEmpty(t, r.Error)
		assert.NoError(t, r.Validate())
	}
}

func TestValidateRejectsBrokenFailure(t *testing.T) {
	err := HandlerResult{Success: false, Error: "x", ActionPayload: map[string]any{}}.Validate()
	require.ErrorIs(t, err, ErrValidation)

	err = HandlerResult{Success: false}.Validate()
	require.ErrorIs(t, err, ErrValidation)

	require.NoError(t, Succeeded("ok", nil).Validate())
}

func TestNewMessageCopiesContext(t *testing.T) {
	ctx := map[string]any{"agents": []any{"weather"}, "nested": map[string]any{"k": "v"}}
	msg := NewMessage("hi", "u1", time.Now(), ctx)

	ctx["agents"].([]any)[0] = "news"
	ctx["nested"].(map[string]any)["k"] = "changed"
	ctx["added"] = true

	assert.Equal(t, []string{"weather"}, msg.ContextStrings("agents"))
	assert.Equal(t, "v", msg.Context["nested"].(map[string]any)["k"])
	assert.False(t, msg.ContextBool("added"))
}

func TestRecordCloneIsDeep(t *testing.T) {
	rec := ConversationRecord{
		Result: Succeeded("ok", map[string]any{"items": []string{"молоко"}}),
	}
	cp := rec.Clone()
	cp.Result.ActionPayload["items"].([]string)[0] = "хліб"
	assert.Equal(t, "молоко", rec.Result.ActionPayload["items"].([]string)[0])
}

func TestParseIntent(t *testing.T) {
	i, ok := ParseIntent("navigate")
	require.True(t, ok)
	assert.Equal(t, IntentNavigate, i)

	_, ok = ParseIntent("teleport")
	assert.False(t, ok)
	assert.Len(t, AllIntents, 15)
}
