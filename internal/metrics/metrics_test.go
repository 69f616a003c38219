package metrics_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/launchdash/launchdash/internal/dashboard"
	"github.com/launchdash/launchdash/internal/metrics"
)

// scrape serves /metrics from m and parses the text exposition.
func scrape(t *testing.T, m *metrics.Metrics) map[string]*dto.MetricFamily {
	t.Helper()
	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(rr.Body)
	if err != nil {
		t.Fatalf("parse metrics: %v", err)
	}
	return mfs
}

// value returns the counter or gauge value of the series in mf whose labels
// include all of want.
func value(t *testing.T, mf *dto.MetricFamily, want map[string]string) float64 {
	t.Helper()
	if mf == nil {
		t.Fatal("metric family missing")
	}
	for _, m := range mf.GetMetric() {
		got := make(map[string]string)
		for _, lp := range m.GetLabel() {
			got[lp.GetName()] = lp.GetValue()
		}
		match := true
		for k, v := range want {
			if got[k] != v {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		switch {
		case m.Counter != nil:
			return m.Counter.GetValue()
		case m.Gauge != nil:
			return m.Gauge.GetValue()
		}
	}
	t.Fatalf("%s: no series with labels %v", mf.GetName(), want)
	return 0
}

func TestMiddleware_CountsByRouteAndCode(t *testing.T) {
	m := metrics.New()
	ok := m.Middleware("/ok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "fine")
	}))
	bad := m.Middleware("/bad", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	for i := 0; i < 2; i++ {
		ok.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	}
	bad.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bad", nil))

	mfs := scrape(t, m)
	fam := mfs["launchdash_http_requests_total"]
	if got := value(t, fam, map[string]string{"route": "/ok", "code": "200"}); got != 2 {
		t.Errorf("/ok 200: got %v, want 2", got)
	}
	if got := value(t, fam, map[string]string{"route": "/bad", "code": "400"}); got != 1 {
		t.Errorf("/bad 400: got %v, want 1", got)
	}
}

func TestObserveReducer_Outcomes(t *testing.T) {
	m := metrics.New()
	m.ObserveReducer("pie", nil)
	m.ObserveReducer("pie", &dashboard.InvalidSelectionError{Field: "site", Value: "x", Err: dashboard.ErrUnknownSite})
	m.ObserveReducer("scatter", errors.New("boom"))

	fam := scrape(t, m)["launchdash_reducer_invocations_total"]
	tests := []struct {
		view, outcome string
	}{
		{"pie", "ok"},
		{"pie", "invalid"},
		{"scatter", "error"},
	}
	for _, tc := range tests {
		if got := value(t, fam, map[string]string{"view": tc.view, "outcome": tc.outcome}); got != 1 {
			t.Errorf("%s/%s: got %v, want 1", tc.view, tc.outcome, got)
		}
	}
}

func TestGauges(t *testing.T) {
	m := metrics.New()
	m.SetRows(56)
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	m.ObserveReload(nil)
	m.ObserveReload(errors.New("bad csv"))

	mfs := scrape(t, m)
	if got := value(t, mfs["launchdash_dataset_rows"], nil); got != 56 {
		t.Errorf("dataset_rows: got %v, want 56", got)
	}
	if got := value(t, mfs["launchdash_session_clients"], nil); got != 1 {
		t.Errorf("session_clients: got %v, want 1", got)
	}
	if got := value(t, mfs["launchdash_dataset_reloads_total"], map[string]string{"result": "error"}); got != 1 {
		t.Errorf("reloads error: got %v, want 1", got)
	}
}

func TestNilMetrics_NoOp(t *testing.T) {
	var m *metrics.Metrics
	m.ObserveReducer("pie", nil)
	m.ObserveReload(nil)
	m.SetRows(1)
	m.SessionOpened()
	m.SessionClosed()

	h := m.Middleware("/x", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rr.Code != http.StatusTeapot {
		t.Errorf("status: got %d, want 418", rr.Code)
	}
}

func TestServeHTTP_MethodNotAllowed(t *testing.T) {
	m := metrics.New()
	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/metrics", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d, want 405", rr.Code)
	}
}
