package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/attribution-api/internal/attribution"
	"github.com/vfg2006/attribution-api/internal/domain"
	"github.com/vfg2006/attribution-api/internal/usecases/attributing"
	"github.com/vfg2006/attribution-api/internal/usecases/attributing/mocks"
	"github.com/vfg2006/attribution-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func withParams(r *http.Request, params ...httprouter.Param) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), httprouter.ParamsKey, httprouter.Params(params)))
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestListModels(t *testing.T) {
	rec := httptest.NewRecorder()
	ListModels().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/attribution/models", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var models []modelInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &models))
	require.Len(t, models, len(domain.AllModels))
	assert.Equal(t, domain.ModelLastClick, models[0].Model)
	assert.True(t, models[0].Conserving)
	assert.False(t, models[len(models)-1].Conserving)
}

func TestParseAttributionParams(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		validate func(t *testing.T, params *domain.AttributionParams, err error)
	}{
		{
			name:  "sem parâmetros",
			query: "",
			validate: func(t *testing.T, params *domain.AttributionParams, err error) {
				require.NoError(t, err)
				assert.Nil(t, params.Filters)
				assert.Nil(t, params.HalfLifeDays)
				assert.Nil(t, params.PositionWeights)
				assert.Nil(t, params.Iterations)
				assert.Nil(t, params.Seed)
				assert.Empty(t, params.ControlGroupName)
			},
		},
		{
			name:  "todos os parâmetros",
			query: "start_date=2024-01-01&end_date=2024-01-31&half_life=3.5&weights=first:0.4,middle:0.2,last:0.4&iterations=500&seed=7&control_group=holdout",
			validate: func(t *testing.T, params *domain.AttributionParams, err error) {
				require.NoError(t, err)
				require.NotNil(t, params.Filters)
				assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, params.Filters.StartDate.Location()), *params.Filters.StartDate)
				assert.Equal(t, 23, params.Filters.EndDate.Hour())
				assert.Equal(t, 31, params.Filters.EndDate.Day())
				assert.Equal(t, 3.5, *params.HalfLifeDays)
				assert.Equal(t, domain.PositionWeightsParams{"first": 0.4, "middle": 0.2, "last": 0.4}, params.PositionWeights)
				assert.Equal(t, 500, *params.Iterations)
				assert.Equal(t, int64(7), *params.Seed)
				assert.Equal(t, "holdout", params.ControlGroupName)
			},
		},
		{
			name:  "data mal formatada",
			query: "start_date=01/01/2024",
			validate: func(t *testing.T, params *domain.AttributionParams, err error) {
				var pErr *paramError
				require.ErrorAs(t, err, &pErr)
				assert.Equal(t, "start_date", pErr.param)
			},
		},
		{
			name:  "half_life não numérico",
			query: "half_life=abc",
			validate: func(t *testing.T, params *domain.AttributionParams, err error) {
				var pErr *paramError
				require.ErrorAs(t, err, &pErr)
				assert.Equal(t, "half_life", pErr.param)
			},
		},
		{
			name:  "peso ausente",
			query: "weights=first:0.5,last:0.5",
			validate: func(t *testing.T, params *domain.AttributionParams, err error) {
				assert.True(t, attribution.IsConfigurationError(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/v1/attribution/linear/run?"+tt.query, nil)
			params, err := parseAttributionParams(r)
			tt.validate(t, params, err)
		})
	}
}

func TestRunAttribution(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		query    string
		setup    func(m *mocks.MockAttributor)
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:  "execução com sucesso",
			model: "linear",
			query: "half_life=7",
			setup: func(m *mocks.MockAttributor) {
				m.EXPECT().
					Run(gomock.Any(), domain.ModelLinear, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ domain.AttributionModel, params *domain.AttributionParams) (*domain.AttributionRun, error) {
						return &domain.AttributionRun{
							ID:         "run-1",
							Model:      domain.ModelLinear,
							TotalValue: 450,
							ChannelCredits: []domain.ChannelCredit{
								{Channel: "Email", Value: 450},
							},
						}, nil
					})
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, rec.Code)

				var run domain.AttributionRun
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
				assert.Equal(t, "run-1", run.ID)
				assert.Equal(t, 450.0, run.TotalValue)
			},
		},
		{
			name:  "parâmetro inválido não chama o serviço",
			model: "linear",
			query: "iterations=muitas",
			setup: func(m *mocks.MockAttributor) {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				apiErr := decodeAPIError(t, rec)
				assert.Equal(t, apiErrors.ErrInvalidFormat, apiErr.Code)
			},
		},
		{
			name:  "modelo desconhecido",
			model: "shapley",
			setup: func(m *mocks.MockAttributor) {
				m.EXPECT().
					Run(gomock.Any(), domain.AttributionModel("shapley"), gomock.Any()).
					Return(nil, attribution.NewConfigurationError(attribution.ErrUnknownModel, "model", "shapley"))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusNotFound, rec.Code)
				assert.Equal(t, apiErrors.ErrUnknownAttributionModel, decodeAPIError(t, rec).Code)
			},
		},
		{
			name:  "meia-vida inválida",
			model: "time_decay",
			query: "half_life=0",
			setup: func(m *mocks.MockAttributor) {
				m.EXPECT().
					Run(gomock.Any(), domain.ModelTimeDecay, gomock.Any()).
					Return(nil, attribution.NewConfigurationError(attribution.ErrInvalidHalfLife, "half_life_days", "0"))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
				apiErr := decodeAPIError(t, rec)
				assert.Equal(t, apiErrors.ErrInvalidAttributionConfig, apiErr.Code)
				assert.Equal(t, map[string]any{"parameter": "half_life_days"}, apiErr.Details)
			},
		},
		{
			name:  "erro interno não expõe detalhes",
			model: "linear",
			setup: func(m *mocks.MockAttributor) {
				m.EXPECT().
					Run(gomock.Any(), domain.ModelLinear, gomock.Any()).
					Return(nil, attributing.NewAttributionError(attributing.ErrLoadInput, apiErrors.ErrDatabaseOperation, "connection refused"))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusInternalServerError, rec.Code)
				apiErr := decodeAPIError(t, rec)
				assert.Equal(t, apiErrors.ErrDatabaseOperation, apiErr.Code)
				assert.NotContains(t, apiErr.Message, "connection refused")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := mocks.NewMockAttributor(ctrl)
			tt.setup(service)

			r := httptest.NewRequest(http.MethodPost, "/v1/attribution/"+tt.model+"/run?"+tt.query, nil)
			r = withParams(r, httprouter.Param{Key: "model", Value: tt.model})
			rec := httptest.NewRecorder()

			RunAttribution(service).ServeHTTP(rec, r)

			tt.validate(t, rec)
		})
	}
}

func TestRunAllAttribution(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockAttributor(ctrl)
	service.EXPECT().
		RunAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params *domain.AttributionParams) ([]*domain.AttributionRun, error) {
			assert.Equal(t, "holdout", params.ControlGroupName)
			return []*domain.AttributionRun{
				{ID: "a", Model: domain.ModelLastClick},
				{ID: "b", Model: domain.ModelIncremental},
			}, nil
		})

	rec := httptest.NewRecorder()
	RunAllAttribution(service).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/attribution/run-all?control_group=holdout", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var runs []domain.AttributionRun
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	assert.Len(t, runs, 2)
}

func TestGetLatestAttribution(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(m *mocks.MockAttributor)
		expected int
	}{
		{
			name: "execução encontrada",
			setup: func(m *mocks.MockAttributor) {
				m.EXPECT().GetLatest(gomock.Any(), domain.ModelFirstClick).
					Return(&domain.AttributionRun{ID: "x", Model: domain.ModelFirstClick}, nil)
			},
			expected: http.StatusOK,
		},
		{
			name: "nenhuma execução",
			setup: func(m *mocks.MockAttributor) {
				m.EXPECT().GetLatest(gomock.Any(), domain.ModelFirstClick).
					Return(nil, attributing.NewAttributionErrorWithModel(attributing.ErrRunNotFound, apiErrors.ErrAttributionRunNotFound, "first_click", ""))
			},
			expected: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := mocks.NewMockAttributor(ctrl)
			tt.setup(service)

			r := withParams(httptest.NewRequest(http.MethodGet, "/v1/attribution/first_click/latest", nil),
				httprouter.Param{Key: "model", Value: "first_click"})
			rec := httptest.NewRecorder()

			GetLatestAttribution(service).ServeHTTP(rec, r)

			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestListAttributionRuns(t *testing.T) {
	t.Run("repassa o limite", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockAttributor(ctrl)
		service.EXPECT().ListRuns(gomock.Any(), domain.ModelLinear, uint64(5)).
			Return([]*domain.AttributionRun{{ID: "1"}}, nil)

		r := withParams(httptest.NewRequest(http.MethodGet, "/v1/attribution/linear/runs?limit=5", nil),
			httprouter.Param{Key: "model", Value: "linear"})
		rec := httptest.NewRecorder()

		ListAttributionRuns(service).ServeHTTP(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("limite inválido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockAttributor(ctrl)

		r := withParams(httptest.NewRequest(http.MethodGet, "/v1/attribution/linear/runs?limit=-1", nil),
			httprouter.Param{Key: "model", Value: "linear"})
		rec := httptest.NewRecorder()

		ListAttributionRuns(service).ServeHTTP(rec, r)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("erro do serviço", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockAttributor(ctrl)
		service.EXPECT().ListRuns(gomock.Any(), domain.ModelLinear, uint64(0)).
			Return(nil, errors.New("boom"))

		r := withParams(httptest.NewRequest(http.MethodGet, "/v1/attribution/linear/runs", nil),
			httprouter.Param{Key: "model", Value: "linear"})
		rec := httptest.NewRecorder()

		ListAttributionRuns(service).ServeHTTP(rec, r)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
