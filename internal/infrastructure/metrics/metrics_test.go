package metrics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullKey(t *testing.T) {
	assert.Equal(t, "cycles", fullKey("cycles", nil))
	assert.Equal(t, "cycles{outcome=ok,stage=analyze}",
		fullKey("cycles", map[string]string{"stage": "analyze", "outcome": "ok"}))
}

func TestRegistry_Inc(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()
	labels := map[string]string{"stage": "synthesize", "outcome": "no_image"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg.Inc(ctx, "fitting_stage_total", labels, 2)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100), reg.Value("fitting_stage_total", labels))
	assert.Zero(t, reg.Value("fitting_stage_total", map[string]string{"stage": "analyze"}))
}

func TestRegistry_HandleText(t *testing.T) {
	reg := NewRegistry()
	reg.Inc(context.Background(), "b_total", nil, 1)
	reg.Inc(context.Background(), "a_total", map[string]string{"k": "v"}, 3)

	rec := httptest.NewRecorder()
	reg.HandleText(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=UTF-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "a_total{k=v} 3\nb_total 1\n", rec.Body.String())

	rec = httptest.NewRecorder()
	reg.HandleText(rec, httptest.NewRequest(http.MethodGet, "/metrics?format=json", nil))

	var payload map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, map[string]int64{"a_total{k=v}": 3, "b_total": 1}, payload)
}
