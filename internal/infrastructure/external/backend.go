package external

import (
	"fmt"

	"fashion-unlimited/internal/domain/repositories"
)

// NewFittingAIService picks the adapter for the pool's configured backend.
func NewFittingAIService(pool repositories.ClientPoolService) (repositories.FittingAIService, error) {
	switch backend := pool.Config().Backend; backend {
	case repositories.BackendGemini:
		return NewGeminiAIService(pool.GenAIPool()), nil
	case repositories.BackendVertex:
		return NewVertexAIService(pool.VertexAIPool()), nil
	default:
		return nil, fmt.Errorf("unsupported AI backend %q", backend)
	}
}
