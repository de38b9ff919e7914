package managers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"video-tutor/utils"
	"video-tutor/work-flows/catalog"
	"video-tutor/work-flows/client"
	"video-tutor/work-flows/models"
)

var (
	ErrInvalidSelection = errors.New("invalid subject/lesson selection")
	ErrNoSelection      = errors.New("no lesson selected")
	ErrEmptyPrompt      = errors.New("message is empty")
)

// VideoPathResolver maps a lesson to the path of its video.
type VideoPathResolver interface {
	Resolve(lesson string) (string, error)
}

// TutorManager holds the selection and chat controllers. It keeps no
// per-session data of its own; every call names the session it mutates.
type TutorManager struct {
	catalog  *catalog.Catalog
	resolver VideoPathResolver
	client   client.Client
}

func NewTutorManager(cat *catalog.Catalog, resolver VideoPathResolver, apiClient client.Client) *TutorManager {
	return &TutorManager{
		catalog:  cat,
		resolver: resolver,
		client:   apiClient,
	}
}

func (m *TutorManager) Catalog() *catalog.Catalog {
	return m.catalog
}

// OnSelectionChanged applies a (subject, lesson) choice. A pair that differs
// from the stored one in either field resolves the video, marks it ready and
// empties the chat log. The same pair again is a no-op. changed reports
// whether the stored selection moved.
func (m *TutorManager) OnSelectionChanged(state *SessionState, subject, lesson string) (changed bool, err error) {
	if !m.catalog.Contains(subject, lesson) {
		return false, fmt.Errorf("%w: '%s' / '%s'", ErrInvalidSelection, subject, lesson)
	}

	state.opMu.Lock()
	defer state.opMu.Unlock()

	state.mu.Lock()
	defer state.mu.Unlock()

	next := models.Selection{Subject: subject, Lesson: lesson}
	if state.selection == next {
		return false, nil
	}

	path, resolveErr := m.resolver.Resolve(lesson)

	// the selection moves even on failure so the same bad pair is not retried
	state.selection = next
	state.history.ResetConversation()
	state.lastResponse = ""

	if resolveErr != nil {
		state.videoPath = ""
		state.videoReady = false
		state.lastError = "Loading failed: " + resolveErr.Error()
		utils.PrintError(fmt.Sprintf("Session %s: %s", state.ID, state.lastError))
		return true, fmt.Errorf("loading failed: %w", resolveErr)
	}

	state.videoPath = path
	state.videoReady = true
	state.lastError = ""
	utils.PrintInfo(fmt.Sprintf("Session %s selected %s / %s", state.ID, subject, lesson))
	return true, nil
}

// SendMessage runs one chat turn. The user message is appended before the
// request goes out; on success the log becomes the server's transcript, on
// any failure the appended message is removed again. The returned string is
// the assistant reply.
func (m *TutorManager) SendMessage(ctx context.Context, state *SessionState, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	state.opMu.Lock()
	defer state.opMu.Unlock()

	selection := state.Selection()
	if selection.Subject == "" || selection.Lesson == "" {
		state.setError("Please select a subject and lesson")
		return "", ErrNoSelection
	}

	slug, err := m.catalog.SlugFor(selection.Subject)
	if err != nil {
		return "", err
	}
	topic, err := m.catalog.TopicFor(selection.Lesson)
	if err != nil {
		return "", err
	}

	state.mu.Lock()
	before := state.history.Speculate(models.NewTextMessage(models.MessageRoleUser, prompt))
	state.lastError = ""
	state.mu.Unlock()

	resp, err := m.client.Chat(ctx, models.ChatRequest{
		UserInput: prompt,
		History:   before,
		Subject:   slug,
		Section:   topic,
	})

	state.mu.Lock()
	defer state.mu.Unlock()

	if err != nil {
		state.history.Revert()
		state.lastError = client.UserMessage(err)
		utils.PrintError(fmt.Sprintf("Session %s: chat failed: %v", state.ID, err))
		return "", fmt.Errorf("chat request failed: %w", err)
	}

	state.history.Commit(resp.History)
	state.lastResponse = resp.Response
	return resp.Response, nil
}

// ResetChat empties the chat log without touching the selection.
func (m *TutorManager) ResetChat(state *SessionState) {
	state.opMu.Lock()
	defer state.opMu.Unlock()

	state.mu.Lock()
	state.history.ResetConversation()
	state.lastResponse = ""
	state.lastError = ""
	state.mu.Unlock()

	utils.PrintSuccess(fmt.Sprintf("Session %s: conversation history reset", state.ID))
}
