package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/attribution-api/pkg/apiErrors"
)

type fakeSync struct {
	started  bool
	triggers int
}

func (f *fakeSync) TriggerManualSync() bool {
	f.triggers++
	return f.started
}

func (f *fakeSync) GetStatus() map[string]any {
	return map[string]any{"sync_running": !f.started}
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error {
	return f.err
}

func TestRunCronJob(t *testing.T) {
	tests := []struct {
		name           string
		cronType       string
		sync           *fakeSync
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "dispara recálculo de atribuição",
			cronType:       CronJobTypeAttribution,
			sync:           &fakeSync{started: true},
			expectedStatus: http.StatusAccepted,
		},
		{
			name:           "dispara todas",
			cronType:       CronJobTypeAll,
			sync:           &fakeSync{started: true},
			expectedStatus: http.StatusAccepted,
		},
		{
			name:           "job já em execução",
			cronType:       CronJobTypeAttribution,
			sync:           &fakeSync{started: false},
			expectedStatus: http.StatusConflict,
			expectedCode:   apiErrors.ErrJobAlreadyRunning,
		},
		{
			name:           "tipo inválido",
			cronType:       "export",
			sync:           &fakeSync{started: true},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := CronJobServices{AttributionSyncService: tt.sync}

			r := withParams(httptest.NewRequest(http.MethodPost, "/v1/cron/"+tt.cronType+"/run", nil),
				httprouter.Param{Key: "type", Value: tt.cronType})
			rec := httptest.NewRecorder()

			RunCronJob(services).ServeHTTP(rec, r)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeAPIError(t, rec).Code)
				return
			}
			assert.Equal(t, 1, tt.sync.triggers)
		})
	}
}

func TestGetCronStatus(t *testing.T) {
	services := CronJobServices{AttributionSyncService: &fakeSync{}}

	rec := httptest.NewRecorder()
	GetCronStatus(services).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, true, status[CronJobTypeAttribution]["sync_running"])
}

func TestHealthcheckHandler(t *testing.T) {
	tests := []struct {
		name           string
		db             Pinger
		expectedStatus int
		expectedState  string
	}{
		{name: "sem banco", db: nil, expectedStatus: http.StatusOK, expectedState: "ok"},
		{name: "banco disponível", db: fakePinger{}, expectedStatus: http.StatusOK, expectedState: "ok"},
		{name: "banco indisponível", db: fakePinger{err: errors.New("down")}, expectedStatus: http.StatusServiceUnavailable, expectedState: "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HealthcheckHandler(tt.db).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedState, body["status"])
		})
	}
}
