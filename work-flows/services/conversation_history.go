package services

import (
	"video-tutor/work-flows/models"
)

// ConversationHistoryManager is the client-side copy of the server-owned chat
// log. A user turn is written speculatively, then either committed by
// replacing the log with the server's transcript or reverted.
//
// It is not safe for concurrent use; the owning session serializes access.
type ConversationHistoryManager struct {
	conversationHistory []models.ChatMessage
	pendingIndex        int
}

func NewConversationHistoryManager() *ConversationHistoryManager {
	return &ConversationHistoryManager{
		conversationHistory: []models.ChatMessage{},
		pendingIndex:        -1,
	}
}

// AddMessage appends a message and returns its position.
func (chm *ConversationHistoryManager) AddMessage(msg models.ChatMessage) int {
	chm.conversationHistory = append(chm.conversationHistory, msg)
	return len(chm.conversationHistory) - 1
}

// Speculate appends msg as a pending entry and returns the log as it was
// before the append.
func (chm *ConversationHistoryManager) Speculate(msg models.ChatMessage) []models.ChatMessage {
	before := chm.GetConversationHistory()
	chm.pendingIndex = chm.AddMessage(msg)
	return before
}

// Commit replaces the whole log with the server transcript.
func (chm *ConversationHistoryManager) Commit(serverHistory []models.ChatMessage) {
	chm.SetConversationHistory(serverHistory)
	chm.pendingIndex = -1
}

// Revert drops the pending entry. It reports whether anything was removed.
func (chm *ConversationHistoryManager) Revert() bool {
	idx := chm.pendingIndex
	chm.pendingIndex = -1
	if idx < 0 || idx >= len(chm.conversationHistory) {
		return false
	}
	chm.conversationHistory = append(chm.conversationHistory[:idx], chm.conversationHistory[idx+1:]...)
	return true
}

func (chm *ConversationHistoryManager) HasPending() bool {
	return chm.pendingIndex >= 0
}

func (chm *ConversationHistoryManager) Len() int {
	return len(chm.conversationHistory)
}

func (chm *ConversationHistoryManager) GetRecentHistory(maxMessages int) []models.ChatMessage {
	start := max(len(chm.conversationHistory)-maxMessages, 0)
	return cloneMessages(chm.conversationHistory[start:])
}

func (chm *ConversationHistoryManager) ResetConversation() {
	chm.conversationHistory = []models.ChatMessage{}
	chm.pendingIndex = -1
}

// GetConversationHistory returns a copy; callers may keep it across mutations.
func (chm *ConversationHistoryManager) GetConversationHistory() []models.ChatMessage {
	return cloneMessages(chm.conversationHistory)
}

func (chm *ConversationHistoryManager) SetConversationHistory(history []models.ChatMessage) {
	chm.conversationHistory = cloneMessages(history)
}

func (chm *ConversationHistoryManager) GetConversationStats() map[string]int {
	return map[string]int{
		"total_messages": len(chm.conversationHistory),
		"user_messages":  chm.countMessagesByRole(models.MessageRoleUser),
		"bot_messages":   chm.countMessagesByRole(models.MessageRoleAssistant),
	}
}

func (chm *ConversationHistoryManager) countMessagesByRole(role models.MessageRole) int {
	count := 0
	for _, msg := range chm.conversationHistory {
		if msg.Role == role {
			count++
		}
	}
	return count
}

func cloneMessages(in []models.ChatMessage) []models.ChatMessage {
	out := make([]models.ChatMessage, len(in))
	copy(out, in)
	return out
}
