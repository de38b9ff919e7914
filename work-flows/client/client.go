package client

import (
	"context"

	"video-tutor/work-flows/models"
)

type Client interface {
	Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}
