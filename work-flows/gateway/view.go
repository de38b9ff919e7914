package gateway

import (
	"net/url"

	"video-tutor/work-flows/catalog"
	"video-tutor/work-flows/managers"
	"video-tutor/work-flows/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	defaultTitle    = "Auto-Load Video Tutor"
	selectPrompt    = "Please select a subject and lesson"
	userAvatar      = "👤"
	assistantAvatar = "🤖"
)

type SubjectOption struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type LessonOption struct {
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

type TranscriptEntry struct {
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
	Text   string `json:"text"`
}

// View is everything the page needs to draw one session.
type View struct {
	SessionID  string            `json:"session_id"`
	Title      string            `json:"title"`
	Subjects   []SubjectOption   `json:"subjects"`
	Lessons    []LessonOption    `json:"lessons"`
	Subject    string            `json:"subject,omitzero"`
	Lesson     string            `json:"lesson,omitzero"`
	VideoReady bool              `json:"video_ready"`
	VideoURL   string            `json:"video_url,omitzero"`
	Info       string            `json:"info,omitzero"`
	Transcript []TranscriptEntry `json:"transcript"`
	Pending    bool              `json:"pending"`
	Reply      string            `json:"reply,omitzero"`
	Error      string            `json:"error,omitzero"`
	Stats      map[string]int    `json:"stats,omitzero"`
}

// Render builds the view of a session. Handlers call it after every
// controller operation so the page always reflects current state.
func Render(snap managers.Snapshot, cat *catalog.Catalog) View {
	view := View{
		SessionID:  snap.ID,
		Title:      defaultTitle,
		Subject:    snap.Selection.Subject,
		Lesson:     snap.Selection.Lesson,
		VideoReady: snap.VideoReady,
		Pending:    snap.Pending,
		Reply:      snap.LastResponse,
		Error:      snap.LastError,
		Stats:      snap.Stats,
		Transcript: renderTranscript(snap.History),
	}

	for _, name := range cat.SubjectNames() {
		view.Subjects = append(view.Subjects, SubjectOption{
			Name:     name,
			Label:    cat.Label(name),
			Selected: name == snap.Selection.Subject,
		})
	}
	for _, lesson := range cat.Lessons(snap.Selection.Subject) {
		view.Lessons = append(view.Lessons, LessonOption{
			Name:     lesson,
			Selected: lesson == snap.Selection.Lesson,
		})
	}

	if slug, err := cat.SlugFor(snap.Selection.Subject); err == nil {
		view.Title = cases.Title(language.English).String(slug) + " · " + defaultTitle
	}

	if snap.VideoReady {
		view.VideoURL = "/video?lesson=" + url.QueryEscape(snap.Selection.Lesson)
	} else {
		view.Info = selectPrompt
	}

	return view
}

// renderTranscript keeps messages whose first part is text; structured parts
// are not drawn.
func renderTranscript(history []models.ChatMessage) []TranscriptEntry {
	entries := make([]TranscriptEntry, 0, len(history))
	for _, msg := range history {
		text, ok := msg.Text()
		if !ok {
			continue
		}
		avatar := assistantAvatar
		if msg.Role == models.MessageRoleUser {
			avatar = userAvatar
		}
		entries = append(entries, TranscriptEntry{
			Role:   msg.Role.String(),
			Avatar: avatar,
			Text:   text,
		})
	}
	return entries
}
