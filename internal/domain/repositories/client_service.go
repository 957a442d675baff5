package repositories

import (
	"context"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	"google.golang.org/genai"
)

type Backend string

const (
	BackendGemini Backend = "gemini"
	BackendVertex Backend = "vertex"
)

// AIClientConfig holds what both SDK clients need to authenticate.
type AIClientConfig struct {
	Backend   Backend
	APIKey    string
	ProjectID string
	Location  string
	// CredentialsJSON, when set, replaces Application Default Credentials on Vertex.
	CredentialsJSON string
}

// GenAI Client Pool
// Gemini API client authenticated with an API key.
type GenAIClientPool interface {
	GetGenAIClient(ctx context.Context) (*genai.Client, error)

	Close() error
}

// VertexAI Client Pool
// Vertex AI client on the regional endpoint.
type VertexAIClientPool interface {
	GetVertexAIClient(ctx context.Context) (*vertexgenai.Client, error)

	Close() error
}

// Client Pool Service
type ClientPoolService interface {
	GenAIPool() GenAIClientPool

	VertexAIPool() VertexAIClientPool

	Config() *AIClientConfig

	Close() error
}
