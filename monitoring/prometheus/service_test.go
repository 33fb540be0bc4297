package prometheus

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/slashing-oracle/runtime"
	"github.com/prysmaticlabs/slashing-oracle/testing/assert"
	"github.com/prysmaticlabs/slashing-oracle/testing/require"
)

type mockService struct {
	status error
}

func (*mockService) Start() {}

func (*mockService) Stop() error {
	return nil
}

func (m *mockService) Status() error {
	return m.status
}

func TestHealthz(t *testing.T) {
	registry := runtime.NewServiceRegistry()
	m := &mockService{}
	require.NoError(t, registry.RegisterService(m), "Failed to register service")
	s := NewService("" /*addr*/, registry)

	req, err := http.NewRequest("GET", "/healthz", nil /*reader*/)
	require.NoError(t, err)

	handler := http.HandlerFunc(s.healthzHandler)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.StringContains(t, "*prometheus.mockService: OK", rr.Body.String())

	m.status = errors.New("something really bad has happened")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.StringContains(t, "*prometheus.mockService: ERROR something really bad has happened", rr.Body.String())
}

func TestHealthz_JSON(t *testing.T) {
	registry := runtime.NewServiceRegistry()
	require.NoError(t, registry.RegisterService(&mockService{status: errors.New("stalled")}))
	s := NewService("", registry)

	req, err := http.NewRequest("GET", "/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "application/json")
	rr := httptest.NewRecorder()
	s.healthzHandler(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var resp struct {
		Data []serviceStatus `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, 1, len(resp.Data))
	assert.Equal(t, false, resp.Data[0].Status)
	assert.Equal(t, "stalled", resp.Data[0].Err)
}

func TestMetricsAndAdditionalHandlers(t *testing.T) {
	s := NewService("", nil, Handler{
		Path: "/custom",
		Handler: func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("custom"))
		},
	})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/custom", nil)
	s.server.Handler.ServeHTTP(rr, req)
	assert.Equal(t, "custom", rr.Body.String())

	rr = httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, strings.Contains(rr.Body.String(), "go_goroutines"))
	assert.NoError(t, s.Status())
}
