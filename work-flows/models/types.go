package models

// Message roles

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

func (r MessageRole) String() string {
	return string(r)
}

// ChatMessage is one entry of the chat log exchanged with the tutor backend.
// Parts are kept as decoded JSON values so structured items survive a round trip.
type ChatMessage struct {
	Role  MessageRole `json:"role"`
	Parts []any       `json:"parts"`
}

func NewTextMessage(role MessageRole, text string) ChatMessage {
	return ChatMessage{
		Role:  role,
		Parts: []any{text},
	}
}

// Text returns the first part when it is plain text.
func (m ChatMessage) Text() (string, bool) {
	if len(m.Parts) == 0 {
		return "", false
	}
	text, ok := m.Parts[0].(string)
	return text, ok
}

// Selection is the (subject, lesson) pair currently chosen. Empty fields mean
// nothing has been chosen yet.
type Selection struct {
	Subject string `json:"subject"`
	Lesson  string `json:"lesson"`
}

func (s Selection) IsZero() bool {
	return s.Subject == "" && s.Lesson == ""
}

// ChatRequest is the payload POSTed to the tutor chat endpoint.
type ChatRequest struct {
	UserInput string        `json:"user_input"`
	History   []ChatMessage `json:"history"`
	Subject   string        `json:"subject"`
	Section   string        `json:"section"`
}

// ChatResponse is the tutor's reply. History is the canonical transcript.
type ChatResponse struct {
	Response string        `json:"response"`
	History  []ChatMessage `json:"history"`
}
