package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", stdout)
}

func TestCatalogText(t *testing.T) {
	stdout, _, err := executeCLI(t, "", "catalog")
	require.NoError(t, err)
	assert.Contains(t, stdout, "🔬 วิทยาศาสตร์ (science)")
	assert.Contains(t, stdout, "• อากาศ")
	assert.Contains(t, stdout, "(english)")
}

func TestCatalogJSON(t *testing.T) {
	stdout, _, err := executeCLI(t, "", "catalog", "--json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)))

	var subjects []struct {
		Name    string   `json:"name"`
		Lessons []string `json:"lessons"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &subjects))
	require.Len(t, subjects, 4)
	assert.Equal(t, "ภาษาอังกฤษ", subjects[3].Name)
	assert.Len(t, subjects[3].Lessons, 2)
}

func TestChatRoundTrip(t *testing.T) {
	requests := make(chan map[string]any, 1)
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		requests <- body
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":"hello","history":[{"role":"user","parts":["hi"]},{"role":"assistant","parts":["hello"]}]}`))
	}))
	defer api.Close()
	useBackend(t, api.URL)

	stdout, _, err := executeCLI(t, "hi\nstats\nhistory\nquit\n", "chat")
	require.NoError(t, err)

	assert.Contains(t, stdout, "🤖 hello")
	assert.Contains(t, stdout, "Total messages: 2")
	assert.Contains(t, stdout, "👤 hi")
	assert.Contains(t, stdout, "Goodbye")

	got := <-requests
	assert.Equal(t, "hi", got["user_input"])
	assert.Equal(t, "science", got["subject"])
	assert.Equal(t, "อากาศ", got["section"])
}

func TestChatShowsAPIErrorAndKeepsGoing(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer api.Close()
	useBackend(t, api.URL)

	stdout, _, err := executeCLI(t, "hi\nstats\n", "chat")
	require.NoError(t, err)

	assert.Contains(t, stdout, "API Error: the tutor service answered with status 502")
	assert.Contains(t, stdout, "Total messages: 0")
}

func TestChatSwitchesLesson(t *testing.T) {
	useBackend(t, "http://127.0.0.1:1/chat")

	stdout, _, err := executeCLI(t, "lessons\nlesson 2\nlesson 9\nquit\n", "chat", "--subject", "ภาษาอังกฤษ")
	require.NoError(t, err)

	assert.Contains(t, stdout, "* 1. หลักการออกเสียง ตอนที่ 1")
	assert.Contains(t, stdout, "/ หลักการออกเสียง ตอนที่ 2")
	assert.Contains(t, stdout, "Invalid lesson number. Please enter 1-2.")
}

func TestChatRejectsUnknownSubject(t *testing.T) {
	useBackend(t, "http://127.0.0.1:1/chat")

	_, _, err := executeCLI(t, "", "chat", "--subject", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid subject/lesson selection")
}

func TestServeRejectsBadEndpoint(t *testing.T) {
	useBackend(t, "ftp://example.com")

	_, _, err := executeCLI(t, "", "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHAT_API_ENDPOINT")
}

func useBackend(t *testing.T, endpoint string) {
	t.Helper()
	t.Setenv("CHAT_API_ENDPOINT", endpoint)
	t.Setenv("CACHE_DIR", filepath.Join(t.TempDir(), "cache"))
	t.Setenv("EXPORT_DIR", filepath.Join(t.TempDir(), "exports"))
}

func executeCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
