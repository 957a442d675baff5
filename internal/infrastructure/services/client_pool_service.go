package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/genai"

	"fashion-unlimited/internal/domain/repositories"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// VertexAI Client Pool
type vertexAIClientPool struct {
	config *repositories.AIClientConfig
	client *vertexgenai.Client
	mutex  sync.RWMutex
}

func newVertexAIClientPool(config *repositories.AIClientConfig) repositories.VertexAIClientPool {
	return &vertexAIClientPool{
		config: config,
	}
}

func (p *vertexAIClientPool) GetVertexAIClient(ctx context.Context) (*vertexgenai.Client, error) {
	p.mutex.RLock()
	if p.client != nil {
		defer p.mutex.RUnlock()
		return p.client, nil
	}
	p.mutex.RUnlock()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	// double-checked locking
	if p.client != nil {
		return p.client, nil
	}

	if p.config.ProjectID == "" {
		return nil, errors.New("project ID is required for the Vertex AI client")
	}

	creds, err := vertexCredentials(ctx, p.config.CredentialsJSON)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s-aiplatform.googleapis.com:443", p.config.Location)
	client, err := vertexgenai.NewClient(ctx, p.config.ProjectID, p.config.Location,
		option.WithEndpoint(endpoint),
		option.WithCredentials(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create VertexAI client: %w", err)
	}

	p.client = client
	return p.client, nil
}

func (p *vertexAIClientPool) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.client != nil {
		err := p.client.Close()
		p.client = nil
		return err
	}
	return nil
}

// vertexCredentials prefers an inline service account JSON over Application
// Default Credentials.
func vertexCredentials(ctx context.Context, credentialsJSON string) (*google.Credentials, error) {
	if credentialsJSON != "" {
		creds, err := google.CredentialsFromJSON(ctx, []byte(credentialsJSON), cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse credentials JSON: %w", err)
		}
		return creds, nil
	}

	creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("failed to find default credentials: %w", err)
	}
	return creds, nil
}

// GenAI Client Pool
type genAIClientPool struct {
	config *repositories.AIClientConfig
	client *genai.Client
	mutex  sync.RWMutex
}

func newGenAIClientPool(config *repositories.AIClientConfig) repositories.GenAIClientPool {
	return &genAIClientPool{
		config: config,
	}
}

func (p *genAIClientPool) GetGenAIClient(ctx context.Context) (*genai.Client, error) {
	p.mutex.RLock()
	if p.client != nil {
		defer p.mutex.RUnlock()
		return p.client, nil
	}
	p.mutex.RUnlock()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	// double-checked locking
	if p.client != nil {
		return p.client, nil
	}

	if p.config.APIKey == "" {
		return nil, errors.New("API key is required for the Gemini API client")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	p.client = client
	return p.client, nil
}

func (p *genAIClientPool) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	// genai.Client holds no resources to release
	p.client = nil
	return nil
}

// Client Pool Service
type clientPoolService struct {
	config       *repositories.AIClientConfig
	vertexAIPool repositories.VertexAIClientPool
	genAIPool    repositories.GenAIClientPool
}

func NewClientPoolService(config *repositories.AIClientConfig) repositories.ClientPoolService {
	return &clientPoolService{
		config:       config,
		vertexAIPool: newVertexAIClientPool(config),
		genAIPool:    newGenAIClientPool(config),
	}
}

func (s *clientPoolService) VertexAIPool() repositories.VertexAIClientPool {
	return s.vertexAIPool
}

func (s *clientPoolService) GenAIPool() repositories.GenAIClientPool {
	return s.genAIPool
}

func (s *clientPoolService) Config() *repositories.AIClientConfig {
	return s.config
}

func (s *clientPoolService) Close() error {
	var errs []error

	if err := s.vertexAIPool.Close(); err != nil {
		errs = append(errs, fmt.Errorf("VertexAI pool close error: %w", err))
	}

	if err := s.genAIPool.Close(); err != nil {
		errs = append(errs, fmt.Errorf("GenAI pool close error: %w", err))
	}

	return errors.Join(errs...)
}
