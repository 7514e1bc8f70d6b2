package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/attribution-api/internal/attribution"
	"github.com/vfg2006/attribution-api/internal/domain"
	"github.com/vfg2006/attribution-api/internal/usecases/attributing"
	"github.com/vfg2006/attribution-api/pkg/apiErrors"
	"github.com/vfg2006/attribution-api/pkg/log"
	"github.com/vfg2006/attribution-api/pkg/utils"
)

type modelInfo struct {
	Model      domain.AttributionModel `json:"model"`
	Conserving bool                    `json:"conserving"`
}

// ListModels retorna os modelos suportados
func ListModels() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		models := make([]modelInfo, 0, len(domain.AllModels))
		for _, model := range domain.AllModels {
			models = append(models, modelInfo{Model: model, Conserving: model.Conserving()})
		}
		writeJSON(w, http.StatusOK, models)
	})
}

func RunAttribution(service attributing.Attributor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		model := domain.AttributionModel(httprouter.ParamsFromContext(r.Context()).ByName("model"))

		params, err := parseAttributionParams(r)
		if err != nil {
			writeAttributionError(w, logger, err)
			return
		}

		logger.WithField("model", model).Info("attribution: executando modelo")

		run, err := service.Run(r.Context(), model, params)
		if err != nil {
			writeAttributionError(w, logger.WithField("model", model), err)
			return
		}

		logger.WithFields(log.Fields{
			"model":  model,
			"run_id": run.ID,
		}).Info("attribution: execução concluída")

		writeJSON(w, http.StatusOK, run)
	})
}

func RunAllAttribution(service attributing.Attributor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		params, err := parseAttributionParams(r)
		if err != nil {
			writeAttributionError(w, logger, err)
			return
		}

		runs, err := service.RunAll(r.Context(), params)
		if err != nil {
			writeAttributionError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, runs)
	})
}

func GetLatestAttribution(service attributing.Attributor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		model := domain.AttributionModel(httprouter.ParamsFromContext(r.Context()).ByName("model"))

		run, err := service.GetLatest(r.Context(), model)
		if err != nil {
			writeAttributionError(w, logger.WithField("model", model), err)
			return
		}

		writeJSON(w, http.StatusOK, run)
	})
}

func ListAttributionRuns(service attributing.Attributor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		model := domain.AttributionModel(httprouter.ParamsFromContext(r.Context()).ByName("model"))

		var limit uint64
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit deve ser um inteiro positivo", map[string]string{"limit": raw})
				return
			}
			limit = parsed
		}

		runs, err := service.ListRuns(r.Context(), model, limit)
		if err != nil {
			writeAttributionError(w, logger.WithField("model", model), err)
			return
		}

		writeJSON(w, http.StatusOK, runs)
	})
}

// paramError indica um parâmetro de query mal formatado
type paramError struct {
	param string
	value string
	err   error
}

func (e *paramError) Error() string {
	return e.param + ": " + e.err.Error()
}

func (e *paramError) Unwrap() error {
	return e.err
}

// parseAttributionParams lê os parâmetros opcionais da query string
func parseAttributionParams(r *http.Request) (*domain.AttributionParams, error) {
	query := r.URL.Query()
	params := &domain.AttributionParams{
		ControlGroupName: query.Get("control_group"),
	}

	startDate, err := utils.ParseDate(query.Get("start_date"))
	if err != nil {
		return nil, &paramError{param: "start_date", value: query.Get("start_date"), err: err}
	}
	endDate, err := utils.ParseDate(query.Get("end_date"))
	if err != nil {
		return nil, &paramError{param: "end_date", value: query.Get("end_date"), err: err}
	}
	if startDate != nil || endDate != nil {
		if endDate != nil {
			end := utils.EndOfDay(*endDate)
			endDate = &end
		}
		params.Filters = &domain.AttributionFilters{StartDate: startDate, EndDate: endDate}
	}

	if raw := query.Get("half_life"); raw != "" {
		halfLife, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &paramError{param: "half_life", value: raw, err: err}
		}
		params.HalfLifeDays = &halfLife
	}

	if raw := query.Get("weights"); raw != "" {
		weights, err := attribution.ParsePositionWeightsString(raw)
		if err != nil {
			return nil, err
		}
		params.PositionWeights = weights.Map()
	}

	if raw := query.Get("iterations"); raw != "" {
		iterations, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &paramError{param: "iterations", value: raw, err: err}
		}
		params.Iterations = &iterations
	}

	if raw := query.Get("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &paramError{param: "seed", value: raw, err: err}
		}
		params.Seed = &seed
	}

	return params, nil
}

func writeAttributionError(w http.ResponseWriter, logger log.Logger, err error) {
	var pErr *paramError
	if errors.As(err, &pErr) {
		logger.WithError(err).Warn("attribution: parâmetro inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), map[string]string{pErr.param: pErr.value})
		return
	}

	code := attributing.ErrorCode(err)

	var details any
	var cfgErr *attribution.ConfigurationError
	if errors.As(err, &cfgErr) {
		details = map[string]string{"parameter": cfgErr.Parameter}
	}

	if apiErrors.StatusFor(code) >= http.StatusInternalServerError {
		logger.WithError(err).Error("attribution: falha na execução")
		apiErrors.WriteError(w, code, "Erro ao processar atribuição", nil)
		return
	}

	logger.WithError(err).Warn("attribution: requisição rejeitada")
	apiErrors.WriteError(w, code, err.Error(), details)
}
