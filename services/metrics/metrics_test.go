package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.ObserveMutation("lots", "create")
	r.ObserveMutation("lots", "create")
	r.ObserveMutation("students", "delete")
	r.ObserveView("user", "restricted")
	r.ObserveLogin(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.mutations.WithLabelValues("lots", "create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.mutations.WithLabelValues("students", "delete")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.views.WithLabelValues("user", "restricted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.logins.WithLabelValues("failure")))
	assert.Zero(t, testutil.ToFloat64(r.logins.WithLabelValues("success")))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.ObserveMutation("services", "update")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `amenagement_collection_mutations_total{collection="services",op="update"} 1`)
}
