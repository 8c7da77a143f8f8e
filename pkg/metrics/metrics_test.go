package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordPermissionDecision(t *testing.T) {
	before := testutil.ToFloat64(PermissionDecisionsTotal.WithLabelValues("LEADER", "deny"))
	RecordPermissionDecision("LEADER", false)
	after := testutil.ToFloat64(PermissionDecisionsTotal.WithLabelValues("LEADER", "deny"))
	assert.Equal(t, before+1, after)
}

func TestHandler(t *testing.T) {
	RecordHTTPRequest("GET", "/health", 200, 3*time.Millisecond)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "guild_http_requests_total"))
}
