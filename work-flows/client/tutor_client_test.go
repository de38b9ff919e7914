package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"video-tutor/work-flows/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSendsPayloadAndDecodesReply(t *testing.T) {
	var got models.ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"response":"สวัสดีครับ","history":[{"role":"user","parts":["สวัสดี"]},{"role":"assistant","parts":["สวัสดีครับ"]}]}`)
	}))
	defer srv.Close()

	tc := NewTutorClient(srv.URL, 0)
	resp, err := tc.Chat(context.Background(), models.ChatRequest{
		UserInput: "สวัสดี",
		Subject:   "english",
		Section:   "หลักการออกเสียง",
	})
	require.NoError(t, err)

	assert.Equal(t, "สวัสดี", got.UserInput)
	assert.Equal(t, "english", got.Subject)
	assert.Equal(t, "หลักการออกเสียง", got.Section)
	assert.NotNil(t, got.History)
	assert.Empty(t, got.History)

	assert.Equal(t, "สวัสดีครับ", resp.Response)
	assert.Equal(t, []models.ChatMessage{
		models.NewTextMessage(models.MessageRoleUser, "สวัสดี"),
		models.NewTextMessage(models.MessageRoleAssistant, "สวัสดีครับ"),
	}, resp.History)
}

func TestChatSendsEmptyHistoryAsArray(t *testing.T) {
	var raw map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		io.WriteString(w, `{"response":"ok","history":[]}`)
	}))
	defer srv.Close()

	_, err := NewTutorClient(srv.URL, 0).Chat(context.Background(), models.ChatRequest{UserInput: "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw["history"]))
}

func TestChatKeepsStructuredParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"response":"see image","history":[{"role":"assistant","parts":[{"mime_type":"image/png","data":"AA=="}]}]}`)
	}))
	defer srv.Close()

	resp, err := NewTutorClient(srv.URL, 0).Chat(context.Background(), models.ChatRequest{UserInput: "x"})
	require.NoError(t, err)
	require.Len(t, resp.History, 1)

	_, isText := resp.History[0].Text()
	assert.False(t, isText)
	assert.Equal(t, map[string]any{"mime_type": "image/png", "data": "AA=="}, resp.History[0].Parts[0])
}

func TestChatHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewTutorClient(srv.URL, 0).Chat(context.Background(), models.ChatRequest{UserInput: "x"})

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "backend exploded", httpErr.Body)
	assert.Contains(t, UserMessage(err), "500")
}

func TestChatMalformedResponses(t *testing.T) {
	bodies := map[string]string{
		"not json":         `<html>oops</html>`,
		"missing history":  `{"response":"hi"}`,
		"missing response": `{"history":[]}`,
		"null body":        `null`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, body)
			}))
			defer srv.Close()

			_, err := NewTutorClient(srv.URL, 0).Chat(context.Background(), models.ChatRequest{UserInput: "x"})

			var malformed *MalformedResponseError
			require.True(t, errors.As(err, &malformed), "got %v", err)
			assert.Equal(t, body, malformed.Body)
		})
	}
}

func TestChatNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	_, err := NewTutorClient(endpoint, 0).Chat(context.Background(), models.ChatRequest{UserInput: "x"})

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, endpoint, netErr.Endpoint)
	assert.Contains(t, UserMessage(err), "could not reach")
}

func TestDefaultEndpoint(t *testing.T) {
	assert.Equal(t, DefaultChatEndpoint, NewTutorClient("", 0).Endpoint())
}
