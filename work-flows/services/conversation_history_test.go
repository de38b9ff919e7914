package services

import (
	"testing"

	"video-tutor/work-flows/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpeculateReturnsHistoryBeforeAppend(t *testing.T) {
	chm := NewConversationHistoryManager()
	chm.AddMessage(models.NewTextMessage(models.MessageRoleUser, "hi"))
	chm.AddMessage(models.NewTextMessage(models.MessageRoleAssistant, "hello"))

	before := chm.Speculate(models.NewTextMessage(models.MessageRoleUser, "what is air?"))

	assert.Len(t, before, 2)
	assert.Equal(t, 3, chm.Len())
	assert.True(t, chm.HasPending())

	last := chm.GetConversationHistory()[2]
	text, ok := last.Text()
	require.True(t, ok)
	assert.Equal(t, "what is air?", text)
}

func TestCommitReplacesWholeLog(t *testing.T) {
	chm := NewConversationHistoryManager()
	chm.AddMessage(models.NewTextMessage(models.MessageRoleUser, "stale"))
	chm.Speculate(models.NewTextMessage(models.MessageRoleUser, "question"))

	server := []models.ChatMessage{
		models.NewTextMessage(models.MessageRoleUser, "question"),
		models.NewTextMessage(models.MessageRoleAssistant, "answer"),
	}
	chm.Commit(server)

	assert.Equal(t, server, chm.GetConversationHistory())
	assert.False(t, chm.HasPending())

	// the log must not alias the caller's slice
	server[0] = models.NewTextMessage(models.MessageRoleUser, "mutated")
	text, _ := chm.GetConversationHistory()[0].Text()
	assert.Equal(t, "question", text)
}

func TestRevertRestoresPreviousLog(t *testing.T) {
	chm := NewConversationHistoryManager()
	chm.AddMessage(models.NewTextMessage(models.MessageRoleUser, "hi"))
	before := chm.GetConversationHistory()

	chm.Speculate(models.NewTextMessage(models.MessageRoleUser, "lost"))
	assert.True(t, chm.Revert())

	assert.Equal(t, before, chm.GetConversationHistory())
	assert.False(t, chm.HasPending())
	assert.False(t, chm.Revert(), "second revert is a no-op")
}

func TestResetAfterSpeculateClearsPending(t *testing.T) {
	chm := NewConversationHistoryManager()
	chm.Speculate(models.NewTextMessage(models.MessageRoleUser, "x"))
	chm.ResetConversation()

	assert.Equal(t, 0, chm.Len())
	assert.False(t, chm.Revert())
}

func TestConversationStats(t *testing.T) {
	chm := NewConversationHistoryManager()
	chm.AddMessage(models.NewTextMessage(models.MessageRoleUser, "a"))
	chm.AddMessage(models.NewTextMessage(models.MessageRoleAssistant, "b"))
	chm.AddMessage(models.NewTextMessage(models.MessageRoleUser, "c"))

	assert.Equal(t, map[string]int{
		"total_messages": 3,
		"user_messages":  2,
		"bot_messages":   1,
	}, chm.GetConversationStats())

	recent := chm.GetRecentHistory(2)
	require.Len(t, recent, 2)
	text, _ := recent[1].Text()
	assert.Equal(t, "c", text)
}
