package external

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fashion-unlimited/internal/domain/repositories"
	"fashion-unlimited/internal/infrastructure/services"
)

func TestNewFittingAIService(t *testing.T) {
	tests := []struct {
		backend repositories.Backend
		want    any
	}{
		{backend: repositories.BackendGemini, want: &GeminiAIService{}},
		{backend: repositories.BackendVertex, want: &VertexAIService{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			pool := services.NewClientPoolService(&repositories.AIClientConfig{Backend: tt.backend})
			service, err := NewFittingAIService(pool)
			require.NoError(t, err)
			assert.IsType(t, tt.want, service)
		})
	}

	_, err := NewFittingAIService(services.NewClientPoolService(&repositories.AIClientConfig{Backend: "bedrock"}))
	assert.ErrorContains(t, err, "unsupported AI backend")
}
