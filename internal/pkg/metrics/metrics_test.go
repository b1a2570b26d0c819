package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/groups/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/groups/1", "/groups/2", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/groups/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestObserverAndNotificationCounters(t *testing.T) {
	m := NewMetrics()
	m.ClientConnected()
	m.ClientConnected()
	m.ClientDisconnected()
	m.EventEmitted("notification:new")
	m.NotificationCreated()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.WSClients))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RealtimeEventsTotal.WithLabelValues("notification:new")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsCreated))

	var nilMetrics *Metrics
	assert.NotPanics(t, nilMetrics.NotificationCreated)
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := NewMetrics()
	m.NotificationCreated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "projecthub_notifications_created_total 1"))
}
