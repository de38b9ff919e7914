package client

import (
	"errors"
	"fmt"
)

// NetworkError covers transport failures: connection refused, DNS, timeouts.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to reach chat API at %s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx answer from the chat API.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("chat API request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("chat API request failed with status %d: %s", e.StatusCode, e.Body)
}

// MalformedResponseError is a 2xx answer whose body is not the expected JSON.
type MalformedResponseError struct {
	Body string
	Err  error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed chat API response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// UserMessage turns a chat failure into the inline text shown to the user.
func UserMessage(err error) string {
	var netErr *NetworkError
	var httpErr *HTTPError
	var malformedErr *MalformedResponseError

	switch {
	case errors.As(err, &netErr):
		return "API Error: could not reach the tutor service, please try again"
	case errors.As(err, &httpErr):
		return fmt.Sprintf("API Error: the tutor service answered with status %d", httpErr.StatusCode)
	case errors.As(err, &malformedErr):
		return "API Error: the tutor service sent a response that could not be read"
	default:
		return "API Error: " + err.Error()
	}
}
