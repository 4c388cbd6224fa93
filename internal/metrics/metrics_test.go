package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg).(*counters)

	rec.GroupToggled("expanded")
	rec.GroupToggled("expanded")
	rec.GroupToggled("collapsed")
	rec.IntentRejected("unknown_group")
	rec.MenuEvent("opened")
	rec.ViewSelected("Today")

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.toggles.WithLabelValues("expanded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.toggles.WithLabelValues("collapsed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.rejected.WithLabelValues("unknown_group")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.menu.WithLabelValues("opened")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.views.WithLabelValues("Today")))
}

func TestNewRecorder_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRecorder(reg)
	assert.Panics(t, func() { NewRecorder(reg) })
}

func TestNop(t *testing.T) {
	rec := Nop()
	assert.NotPanics(t, func() {
		rec.GroupToggled("expanded")
		rec.IntentRejected("x")
		rec.MenuEvent("opened")
		rec.ViewSelected("Today")
	})
}

func TestHandler_ExposesCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRecorder(reg).GroupToggled("expanded")

	rr := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `feedr_group_toggles_total{state="expanded"} 1`)
}

func TestServeListener_StopsOnCancel(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRecorder(reg).MenuEvent("opened")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ServeListener(ctx, ln, reg) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "feedr_menu_events_total"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestServe_BadAddress(t *testing.T) {
	err := Serve(context.Background(), "not-an-address", prometheus.NewRegistry())
	assert.Error(t, err)
}
