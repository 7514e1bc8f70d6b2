package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/attribution-api/internal/config"
	"github.com/vfg2006/attribution-api/internal/domain"
	"github.com/vfg2006/attribution-api/internal/usecases/attributing/mocks"
	"go.uber.org/mock/gomock"
)

func newTestSyncService(t *testing.T) (*AttributionSyncService, *mocks.MockAttributor) {
	ctrl := gomock.NewController(t)
	attributor := mocks.NewMockAttributor(ctrl)

	cfg := &config.Config{
		Attribution:     config.Attribution{LookbackDays: 30, ControlGroup: "holdout"},
		AttributionSync: config.AttributionSync{CronSchedule: "0 2 * * *", Enabled: true},
	}

	service := NewAttributionSyncService(attributor, cfg)
	service.now = func() time.Time { return time.Date(2024, 3, 15, 2, 0, 0, 0, time.UTC) }

	return service, attributor
}

func TestAttributionSyncService_syncAttribution(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(attributor *mocks.MockAttributor)
		validate func(t *testing.T, status map[string]any)
	}{
		{
			name: "Recalcula todos os modelos no período de lookback",
			setup: func(attributor *mocks.MockAttributor) {
				attributor.EXPECT().
					RunAll(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params *domain.AttributionParams) ([]*domain.AttributionRun, error) {
						assert.Equal(t, time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), *params.Filters.StartDate)
						assert.Equal(t, "2024-03-15", params.Filters.EndDate.Format(time.DateOnly))
						assert.Equal(t, "holdout", params.ControlGroupName)
						return []*domain.AttributionRun{{Model: domain.ModelLinear}, {Model: domain.ModelLastClick}}, nil
					})
			},
			validate: func(t *testing.T, status map[string]any) {
				assert.Equal(t, false, status["sync_running"])
				assert.Equal(t, 2, status["last_sync_models"])
				assert.Equal(t, "", status["last_sync_error"])
				assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
			},
		},
		{
			name: "Erro no recálculo fica registrado no status",
			setup: func(attributor *mocks.MockAttributor) {
				attributor.EXPECT().
					RunAll(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("banco indisponível"))
			},
			validate: func(t *testing.T, status map[string]any) {
				assert.Equal(t, 0, status["last_sync_models"])
				assert.Equal(t, "banco indisponível", status["last_sync_error"])
				assert.True(t, status["last_sync_completed_at"].(time.Time).IsZero())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, attributor := newTestSyncService(t)
			tt.setup(attributor)

			service.syncAttribution(context.Background())

			tt.validate(t, service.GetStatus())
		})
	}
}

func TestAttributionSyncService_IgnoresOverlappingRuns(t *testing.T) {
	service, _ := newTestSyncService(t)
	service.syncRunning = true

	// Nenhuma chamada ao Attributor é esperada
	service.syncAttribution(context.Background())
	assert.False(t, service.TriggerManualSync())
	assert.True(t, service.IsRunning())
}

func TestAttributionSyncService_TriggerManualSync(t *testing.T) {
	service, attributor := newTestSyncService(t)

	done := make(chan struct{})
	attributor.EXPECT().
		RunAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *domain.AttributionParams) ([]*domain.AttributionRun, error) {
			close(done)
			return nil, nil
		})

	assert.True(t, service.TriggerManualSync())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("recálculo manual não foi executado")
	}

	assert.Eventually(t, func() bool { return !service.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestAttributionSyncService_StartDisabled(t *testing.T) {
	service, _ := newTestSyncService(t)
	service.config.SyncEnabled = false

	assert.NoError(t, service.Start(context.Background()))
}
