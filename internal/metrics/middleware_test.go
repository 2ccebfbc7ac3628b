package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	dto "github.com/prometheus/client_model/go"
)

// counterValue digs the sample for one label set out of the registry's
// current exposition.
func counterValue(t *testing.T, reg *Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, m := range fam.GetMetric() {
			if matchLabels(m, labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func matchLabels(m *dto.Metric, want map[string]string) bool {
	got := map[string]string{}
	for _, lp := range m.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestHTTPMiddleware_CountsByStatusClass(t *testing.T) {
	reg := NewRegistry()
	mw := HTTPMiddleware(reg)

	routes := http.NewServeMux()
	routes.HandleFunc("/api/summary", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	routes.HandleFunc("/api/phases/archive", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	routes.HandleFunc("/api/snapshot", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	handler := mw(routes)

	tests := []struct {
		method, path, class string
	}{
		{"GET", "/api/summary", "2xx"},
		{"POST", "/api/phases/archive", "4xx"},
		{"POST", "/api/snapshot", "5xx"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		got := counterValue(t, reg, "http_requests_total", map[string]string{
			"method": tt.method,
			"path":   tt.path,
			"status": tt.class,
		})
		if got != 1 {
			t.Errorf("%s %s: count = %v, want 1", tt.method, tt.path, got)
		}
	}
}

func TestHTTPMiddleware_DefaultStatusIsOK(t *testing.T) {
	reg := NewRegistry()
	handler := HTTPMiddleware(reg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/equity-curve", nil))

	got := counterValue(t, reg, "http_requests_total", map[string]string{
		"path":   "/api/equity-curve",
		"status": "2xx",
	})
	if got != 1 {
		t.Errorf("count = %v, want 1", got)
	}
}

func TestHTTPMiddleware_InFlightReturnsToZero(t *testing.T) {
	reg := NewRegistry()
	var during float64
	handler := HTTPMiddleware(reg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = gaugeValue(t, reg, "http_requests_in_flight")
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/summary", nil))

	if during != 1 {
		t.Errorf("in-flight during request = %v, want 1", during)
	}
	if after := gaugeValue(t, reg, "http_requests_in_flight"); after != 0 {
		t.Errorf("in-flight after request = %v, want 0", after)
	}
}

func gaugeValue(t *testing.T, reg *Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() == name {
			return fam.GetMetric()[0].GetGauge().GetValue()
		}
	}
	return 0
}
