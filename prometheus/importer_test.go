package prometheus_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/marijep/recipeimport"
	"github.com/marijep/recipeimport/mock"
	recipeprom "github.com/marijep/recipeimport/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImporter_Import(t *testing.T) {
	t.Parallel()

	t.Run("counts imports by outcome", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()
		results := []error{
			nil,
			nil,
			recipeimport.Errorf(recipeimport.EUNPROCESSABLE, "Could not fetch the recipe page: Page returned 404"),
		}
		calls := 0
		inner := &mock.Importer{
			ImportFn: func(ctx context.Context, url string) (json.RawMessage, error) {
				err := results[calls]
				calls++
				if err != nil {
					return nil, err
				}
				return json.RawMessage(`{"name":"Pie"}`), nil
			},
		}

		importer := recipeprom.NewImporter(inner, reg)
		for range results {
			_, _ = importer.Import(context.Background(), "https://example.com/pie")
		}

		count, err := testutil.GatherAndCount(reg, "recipeimport_imports_total")
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		expected := `
# HELP recipeimport_imports_total Total number of recipe imports, labeled by outcome.
# TYPE recipeimport_imports_total counter
recipeimport_imports_total{code="ok"} 2
recipeimport_imports_total{code="unprocessable"} 1
`
		assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "recipeimport_imports_total"))
	})

	t.Run("passes results through", func(t *testing.T) {
		t.Parallel()

		inner := &mock.Importer{
			ImportFn: func(ctx context.Context, url string) (json.RawMessage, error) {
				return json.RawMessage(`{"name":"Pie"}`), nil
			},
		}

		recipe, err := recipeprom.NewImporter(inner, prometheus.NewRegistry()).Import(context.Background(), "https://example.com/pie")

		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Pie"}`, string(recipe))
	})
}

func TestHandler_ExposesMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	inner := &mock.Importer{
		ImportFn: func(ctx context.Context, url string) (json.RawMessage, error) {
			return json.RawMessage(`{}`), nil
		},
	}
	_, _ = recipeprom.NewImporter(inner, reg).Import(context.Background(), "https://example.com/")

	rec := httptest.NewRecorder()
	recipeprom.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `recipeimport_imports_total{code="ok"} 1`)
	assert.Contains(t, rec.Body.String(), "recipeimport_import_duration_seconds_bucket")
}
