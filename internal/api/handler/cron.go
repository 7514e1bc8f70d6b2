package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/attribution-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeAttribution = "attribution"
	CronJobTypeAll         = "all"
)

// SyncService é um job agendado que também pode ser disparado manualmente
type SyncService interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	AttributionSyncService SyncService
}

func (s CronJobServices) byType() map[string]SyncService {
	services := make(map[string]SyncService)
	if s.AttributionSyncService != nil {
		services[CronJobTypeAttribution] = s.AttributionSyncService
	}
	return services
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		logrus.WithField("type", cronType).Info("INIT - RunCronJob")

		available := services.byType()

		var targets []SyncService
		switch cronType {
		case CronJobTypeAll:
			for _, service := range available {
				targets = append(targets, service)
			}
		default:
			service, ok := available[cronType]
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: attribution, all", nil)
				return
			}
			targets = append(targets, service)
		}

		started := 0
		for _, service := range targets {
			if service.TriggerManualSync() {
				started++
			}
		}

		if started == 0 && len(targets) > 0 {
			apiErrors.WriteError(w, apiErrors.ErrJobAlreadyRunning, "Cron job já em execução", map[string]string{"type": cronType})
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any)
		for name, service := range services.byType() {
			status[name] = service.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
