package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/attribution-api/internal/config"
	"github.com/vfg2006/attribution-api/internal/domain"
	"github.com/vfg2006/attribution-api/internal/usecases/attributing"
	"github.com/vfg2006/attribution-api/pkg/utils"
)

// AttributionSyncConfig representa a configuração do recálculo agendado
type AttributionSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
	LookbackDays int
	ControlGroup string
	Timeout      time.Duration
}

// AttributionSyncService recalcula todos os modelos de atribuição periodicamente
type AttributionSyncService struct {
	scheduler           *gocron.Scheduler
	config              AttributionSyncConfig
	attributor          attributing.Attributor
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncModels      int
	lastSyncError       string
}

// NewAttributionSyncService cria o serviço de recálculo agendado
func NewAttributionSyncService(attributor attributing.Attributor, appConfig *config.Config) *AttributionSyncService {
	syncConfig := AttributionSyncConfig{
		CronSchedule: appConfig.AttributionSync.CronSchedule,
		SyncEnabled:  appConfig.AttributionSync.Enabled,
		LookbackDays: appConfig.Attribution.LookbackDays,
		ControlGroup: appConfig.Attribution.ControlGroup,
		Timeout:      appConfig.AttributionSync.Timeout,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":             syncConfig.CronSchedule,
		"sync_enabled":              syncConfig.SyncEnabled,
		"attribution_lookback_days": syncConfig.LookbackDays,
	}).Info("Configuração do agendador de atribuição carregada")

	return &AttributionSyncService{
		scheduler:  gocron.NewScheduler(time.Local),
		config:     syncConfig,
		attributor: attributor,
		now:        time.Now,
	}
}

// Start inicia o agendador
func (s *AttributionSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Recálculo agendado de atribuição desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de atribuição")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAttribution(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recálculo de atribuição: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de atribuição")
		s.scheduler.Stop()
	}()

	return nil
}

// syncParams monta o período [hoje - lookback, fim de hoje]
func (s *AttributionSyncService) syncParams() *domain.AttributionParams {
	now := s.now()
	start := utils.DaysAgo(now, s.config.LookbackDays)
	end := utils.EndOfDay(now)

	return &domain.AttributionParams{
		Filters:          &domain.AttributionFilters{StartDate: &start, EndDate: &end},
		ControlGroupName: s.config.ControlGroup,
	}
}

// syncAttribution executa todos os modelos. Execuções sobrepostas são ignoradas.
func (s *AttributionSyncService) syncAttribution(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recálculo de atribuição já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	var (
		models  int
		syncErr error
	)

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncModels = models
		s.lastSyncError = ""
		if syncErr != nil {
			s.lastSyncError = syncErr.Error()
		} else {
			s.lastSyncCompletedAt = s.now()
		}
		s.syncMutex.Unlock()
	}()

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	params := s.syncParams()
	logrus.WithFields(logrus.Fields{
		"start_date": params.Filters.StartDate.Format(time.DateOnly),
		"end_date":   params.Filters.EndDate.Format(time.DateOnly),
	}).Info("Iniciando recálculo de atribuição")

	startTime := time.Now()
	runs, err := s.attributor.RunAll(ctx, params)
	if err != nil {
		syncErr = err
		logrus.WithError(err).Error("Erro no recálculo de atribuição")
		return
	}

	models = len(runs)
	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"models":   models,
	}).Info("Recálculo de atribuição concluído")
}

// TriggerManualSync inicia um recálculo em segundo plano. Retorna false se já houver um em andamento.
func (s *AttributionSyncService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recálculo de atribuição já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando recálculo manual de atribuição")
	go s.syncAttribution(context.Background())
	return true
}

// IsRunning indica se há um recálculo em andamento
func (s *AttributionSyncService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

// GetStatus retorna o status atual do recálculo
func (s *AttributionSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"lookback_days":          s.config.LookbackDays,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_models":       s.lastSyncModels,
		"last_sync_error":        s.lastSyncError,
	}
}
