package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordLogin(t *testing.T) {
	before := testutil.ToFloat64(adminLogins.WithLabelValues(LoginLockout))
	RecordLogin(LoginLockout)
	assert.Equal(t, before+1, testutil.ToFloat64(adminLogins.WithLabelValues(LoginLockout)))
}

func TestHandlerExposesCollectors(t *testing.T) {
	RecordHTTPRequest(http.MethodGet, "/api/profiles/:id", http.StatusNotFound, 3*time.Millisecond)
	RecordApplicationDecision("Approved")
	RecordImageOperation("upload", true)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `petcare_http_requests_total{method="GET",route="/api/profiles/:id",status="404"}`)
	assert.Contains(t, body, `petcare_applications_decisions_total{status="Approved"}`)
	assert.Contains(t, body, `petcare_media_operations_total{operation="upload",result="success"}`)
}
