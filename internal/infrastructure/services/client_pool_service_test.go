package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"fashion-unlimited/internal/domain/repositories"
)

func TestGenAIClientPool_ReusesClient(t *testing.T) {
	pool := NewClientPoolService(&repositories.AIClientConfig{
		Backend: repositories.BackendGemini,
		APIKey:  "test-key",
	})
	defer pool.Close()

	ctx := context.Background()
	clients := make([]*genai.Client, 8)

	var wg sync.WaitGroup
	for i := range clients {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			client, err := pool.GenAIPool().GetGenAIClient(ctx)
			assert.NoError(t, err)
			clients[i] = client
		}(i)
	}
	wg.Wait()

	require.NotNil(t, clients[0])
	for _, client := range clients[1:] {
		assert.Same(t, clients[0], client)
	}

	require.NoError(t, pool.GenAIPool().Close())
	again, err := pool.GenAIPool().GetGenAIClient(ctx)
	require.NoError(t, err)
	assert.NotSame(t, clients[0], again)
}

func TestGenAIClientPool_RequiresKey(t *testing.T) {
	pool := NewClientPoolService(&repositories.AIClientConfig{Backend: repositories.BackendGemini})

	_, err := pool.GenAIPool().GetGenAIClient(context.Background())
	assert.ErrorContains(t, err, "API key is required")
}

func TestVertexAIClientPool_RequiresProject(t *testing.T) {
	pool := NewClientPoolService(&repositories.AIClientConfig{
		Backend:  repositories.BackendVertex,
		Location: "us-central1",
	})

	_, err := pool.VertexAIPool().GetVertexAIClient(context.Background())
	assert.ErrorContains(t, err, "project ID is required")
	assert.NoError(t, pool.Close())
}

func TestVertexCredentials_InvalidJSON(t *testing.T) {
	_, err := vertexCredentials(context.Background(), "{not json")
	assert.ErrorContains(t, err, "failed to parse credentials JSON")
}

func TestClientPoolService_Config(t *testing.T) {
	config := &repositories.AIClientConfig{Backend: repositories.BackendVertex, ProjectID: "p"}
	pool := NewClientPoolService(config)
	assert.Same(t, config, pool.Config())
}
