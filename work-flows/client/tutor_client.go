package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"video-tutor/work-flows/models"
)

const (
	DefaultChatEndpoint = "http://localhost:8000/chat"
	ContentTypeHeader   = "application/json"

	maxErrorBodyBytes = 4 << 10
)

type tutorClient struct {
	endpoint string
	client   *http.Client
}

// NewTutorClient posts chat turns to endpoint. A zero timeout leaves the call
// unbounded; only the request context can end it.
func NewTutorClient(endpoint string, timeout time.Duration) *tutorClient {
	if endpoint == "" {
		endpoint = DefaultChatEndpoint
	}
	return &tutorClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (tc *tutorClient) Endpoint() string {
	return tc.endpoint
}

// wire shape of the reply; pointers tell a missing field from an empty one
type chatResponseBody struct {
	Response *string               `json:"response"`
	History  *[]models.ChatMessage `json:"history"`
}

func (tc *tutorClient) Chat(ctx context.Context, chatReq models.ChatRequest) (*models.ChatResponse, error) {
	if chatReq.History == nil {
		chatReq.History = []models.ChatMessage{}
	}

	jsonData, err := json.Marshal(chatReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tc.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", ContentTypeHeader)
	req.Header.Set("Accept", ContentTypeHeader)

	resp, err := tc.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Endpoint: tc.endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Endpoint: tc.endpoint, Err: err}
	}

	var body chatResponseBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, &MalformedResponseError{Body: string(raw), Err: err}
	}
	if body.Response == nil {
		return nil, &MalformedResponseError{Body: string(raw), Err: errors.New("missing 'response' field")}
	}
	if body.History == nil {
		return nil, &MalformedResponseError{Body: string(raw), Err: errors.New("missing 'history' field")}
	}

	return &models.ChatResponse{
		Response: *body.Response,
		History:  *body.History,
	}, nil
}
