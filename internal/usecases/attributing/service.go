package attributing

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/attribution-api/infrastructure/repository"
	"github.com/vfg2006/attribution-api/internal/attribution"
	"github.com/vfg2006/attribution-api/internal/domain"
	"github.com/vfg2006/attribution-api/pkg/apiErrors"
	"github.com/vfg2006/attribution-api/pkg/utils"
)

const (
	defaultRunsLimit uint64 = 20
	maxRunsLimit     uint64 = 100
)

// Attributor executa e consulta atribuições
type Attributor interface {
	Run(ctx context.Context, model domain.AttributionModel, params *domain.AttributionParams) (*domain.AttributionRun, error)
	RunAll(ctx context.Context, params *domain.AttributionParams) ([]*domain.AttributionRun, error)
	GetLatest(ctx context.Context, model domain.AttributionModel) (*domain.AttributionRun, error)
	ListRuns(ctx context.Context, model domain.AttributionModel, limit uint64) ([]*domain.AttributionRun, error)
}

var _ Attributor = (*Service)(nil)

type Service struct {
	defaults            attribution.Options
	defaultControlGroup string
	touchpointRepo      repository.TouchpointRepository
	conversionRepo      repository.ConversionRepository
	controlGroupRepo    repository.ControlGroupRepository
	runRepo             repository.AttributionRunRepository
	now                 func() time.Time
}

// NewService cria o serviço de atribuição. defaultControlGroup é usado quando
// a requisição não informa um grupo de controle.
func NewService(
	defaults attribution.Options,
	defaultControlGroup string,
	touchpointRepo repository.TouchpointRepository,
	conversionRepo repository.ConversionRepository,
	controlGroupRepo repository.ControlGroupRepository,
	runRepo repository.AttributionRunRepository,
) *Service {
	return &Service{
		defaults:            defaults,
		defaultControlGroup: defaultControlGroup,
		touchpointRepo:      touchpointRepo,
		conversionRepo:      conversionRepo,
		controlGroupRepo:    controlGroupRepo,
		runRepo:             runRepo,
		now:                 time.Now,
	}
}

// Run executa um modelo, persiste e retorna a execução
func (s *Service) Run(ctx context.Context, model domain.AttributionModel, params *domain.AttributionParams) (*domain.AttributionRun, error) {
	if !model.IsValid() {
		return nil, attribution.NewConfigurationError(attribution.ErrUnknownModel, "model", string(model))
	}

	if params == nil {
		params = &domain.AttributionParams{}
	}

	engine, err := s.newEngine(params)
	if err != nil {
		return nil, err
	}

	controlGroupName := s.controlGroupName(params)
	if model == domain.ModelIncremental && controlGroupName == "" {
		return nil, attribution.NewConfigurationError(attribution.ErrMissingControlGroup, "control_group", "")
	}

	startedAt := s.now()

	input, err := s.loadInput(ctx, params.Filters, model == domain.ModelIncremental, controlGroupName)
	if err != nil {
		return nil, err
	}

	result, err := engine.Run(model, input)
	if err != nil {
		return nil, err
	}

	run, err := s.buildRun(result, engine.Options(), params, controlGroupName, input, startedAt)
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, run); err != nil {
		return nil, err
	}

	return run, nil
}

// RunAll executa todos os modelos sobre a mesma entrada. Sem grupo de controle
// o modelo incremental é ignorado.
func (s *Service) RunAll(ctx context.Context, params *domain.AttributionParams) ([]*domain.AttributionRun, error) {
	if params == nil {
		params = &domain.AttributionParams{}
	}

	engine, err := s.newEngine(params)
	if err != nil {
		return nil, err
	}

	controlGroupName := s.controlGroupName(params)
	startedAt := s.now()

	input, err := s.loadInput(ctx, params.Filters, controlGroupName != "", controlGroupName)
	if err != nil {
		return nil, err
	}

	results, err := engine.RunAll(ctx, input)
	if err != nil {
		return nil, err
	}

	runs := make([]*domain.AttributionRun, 0, len(results))
	for _, model := range domain.AllModels {
		result, ok := results[model]
		if !ok {
			continue
		}

		run, err := s.buildRun(result, engine.Options(), params, controlGroupName, input, startedAt)
		if err != nil {
			return nil, err
		}

		if err := s.save(ctx, run); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	logrus.WithFields(logrus.Fields{
		"models":      len(runs),
		"touchpoints": len(input.Touchpoints),
		"conversions": len(input.Conversions),
	}).Info("Atribuição de todos os modelos concluída")

	return runs, nil
}

// GetLatest retorna a última execução de um modelo
func (s *Service) GetLatest(ctx context.Context, model domain.AttributionModel) (*domain.AttributionRun, error) {
	if !model.IsValid() {
		return nil, attribution.NewConfigurationError(attribution.ErrUnknownModel, "model", string(model))
	}

	run, err := s.runRepo.GetLatestByModel(ctx, model)
	if err != nil {
		logrus.WithError(err).WithField("model", model).Error("Erro ao buscar última execução")
		return nil, NewAttributionErrorWithModel(ErrFetchRuns, apiErrors.ErrDatabaseOperation, string(model), err.Error())
	}

	if run == nil {
		return nil, NewAttributionErrorWithModel(ErrRunNotFound, apiErrors.ErrAttributionRunNotFound, string(model), "")
	}

	return run, nil
}

// ListRuns lista as execuções mais recentes de um modelo. limit 0 usa o padrão.
func (s *Service) ListRuns(ctx context.Context, model domain.AttributionModel, limit uint64) ([]*domain.AttributionRun, error) {
	if !model.IsValid() {
		return nil, attribution.NewConfigurationError(attribution.ErrUnknownModel, "model", string(model))
	}

	switch {
	case limit == 0:
		limit = defaultRunsLimit
	case limit > maxRunsLimit:
		limit = maxRunsLimit
	}

	runs, err := s.runRepo.ListByModel(ctx, model, limit)
	if err != nil {
		logrus.WithError(err).WithField("model", model).Error("Erro ao listar execuções")
		return nil, NewAttributionErrorWithModel(ErrFetchRuns, apiErrors.ErrDatabaseOperation, string(model), err.Error())
	}

	return runs, nil
}

// newEngine aplica os parâmetros da requisição sobre a configuração padrão
func (s *Service) newEngine(params *domain.AttributionParams) (*attribution.Engine, error) {
	if f := params.Filters; f != nil && f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return nil, NewAttributionError(ErrInvalidDateRange, apiErrors.ErrInvalidRequest,
			f.StartDate.Format(time.DateOnly)+" > "+f.EndDate.Format(time.DateOnly))
	}

	opts := s.defaults
	if params.HalfLifeDays != nil {
		opts.HalfLifeDays = *params.HalfLifeDays
	}
	if params.PositionWeights != nil {
		weights, err := attribution.ParsePositionWeights(params.PositionWeights)
		if err != nil {
			return nil, err
		}
		opts.PositionWeights = weights
	}
	if params.Iterations != nil {
		opts.Iterations = *params.Iterations
	}
	if params.Seed != nil {
		opts.Seed = *params.Seed
	}

	return attribution.NewEngine(opts)
}

func (s *Service) controlGroupName(params *domain.AttributionParams) string {
	if params.ControlGroupName != "" {
		return params.ControlGroupName
	}
	return s.defaultControlGroup
}

func (s *Service) loadInput(ctx context.Context, filters *domain.AttributionFilters, withControlGroup bool, controlGroupName string) (attribution.Input, error) {
	var input attribution.Input

	touchpoints, err := s.touchpointRepo.List(ctx, filters)
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar touchpoints")
		return input, NewAttributionError(ErrLoadInput, apiErrors.ErrDatabaseOperation, err.Error())
	}

	conversions, err := s.conversionRepo.List(ctx, filters)
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar conversões")
		return input, NewAttributionError(ErrLoadInput, apiErrors.ErrDatabaseOperation, err.Error())
	}

	input.Touchpoints = touchpoints
	input.Conversions = conversions

	if !withControlGroup {
		return input, nil
	}

	customerIDs, err := s.controlGroupRepo.ListCustomerIDs(ctx, controlGroupName)
	if err != nil {
		logrus.WithError(err).WithField("attribution_control_group", controlGroupName).Error("Erro ao carregar grupo de controle")
		return input, NewAttributionError(ErrLoadInput, apiErrors.ErrDatabaseOperation, err.Error())
	}
	if len(customerIDs) == 0 {
		return input, NewAttributionError(ErrControlGroupNotFound, apiErrors.ErrMissingControlGroup, controlGroupName)
	}

	input.ControlGroup = &domain.ControlGroup{Name: controlGroupName, CustomerIDs: customerIDs}
	return input, nil
}

func (s *Service) buildRun(
	result *attribution.Result,
	opts attribution.Options,
	params *domain.AttributionParams,
	controlGroupName string,
	input attribution.Input,
	startedAt time.Time,
) (*domain.AttributionRun, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewAttributionError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}

	attributed, value := attribution.AttributedConversions(input.Touchpoints, input.Conversions)

	return &domain.AttributionRun{
		ID:                        id,
		Model:                     result.Model,
		Parameters:                runParameters(result.Model, opts, params, controlGroupName),
		ChannelCredits:            result.ChannelCredits,
		ProbabilisticCredits:      result.ProbabilisticCredits,
		IncrementalCredits:        result.IncrementalCredits,
		TotalValue:                utils.RoundWithTwoDecimalPlace(result.TotalValue()),
		ConversionsConsidered:     len(input.Conversions),
		ConversionsAttributed:     attributed,
		AttributedConversionValue: utils.RoundWithTwoDecimalPlace(value),
		StartedAt:                 startedAt,
		CompletedAt:               s.now(),
	}, nil
}

// runParameters registra apenas os parâmetros que afetam o modelo executado
func runParameters(model domain.AttributionModel, opts attribution.Options, params *domain.AttributionParams, controlGroupName string) map[string]any {
	parameters := make(map[string]any)

	if f := params.Filters; f != nil {
		if f.StartDate != nil {
			parameters["start_date"] = f.StartDate.Format(time.DateOnly)
		}
		if f.EndDate != nil {
			parameters["end_date"] = f.EndDate.Format(time.DateOnly)
		}
	}

	switch model {
	case domain.ModelTimeDecay:
		parameters["half_life_days"] = opts.HalfLifeDays
	case domain.ModelMultiTouch:
		parameters["position_weights"] = opts.PositionWeights.Map()
	case domain.ModelAlgorithmic:
		parameters["forest_trees"] = opts.Forest.NumTrees
		parameters["seed"] = opts.Seed
	case domain.ModelProbabilistic:
		parameters["iterations"] = opts.Iterations
		parameters["seed"] = opts.Seed
	case domain.ModelIncremental:
		parameters["control_group"] = controlGroupName
	}

	return parameters
}

func (s *Service) save(ctx context.Context, run *domain.AttributionRun) error {
	if err := s.runRepo.Save(ctx, run); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"model":  run.Model,
			"run_id": run.ID,
		}).Error("Erro ao salvar execução de atribuição")
		return NewAttributionErrorWithModel(ErrSaveRun, apiErrors.ErrDatabaseOperation, string(run.Model), err.Error())
	}

	logrus.WithFields(logrus.Fields{
		"model":         run.Model,
		"run_id":        run.ID,
		"channel_count": len(run.ChannelCredits) + len(run.ProbabilisticCredits) + len(run.IncrementalCredits),
	}).Info("Execução de atribuição salva")
	logrus.WithField("run_id", run.ID).Debugf("Parâmetros da execução:\n%s", utils.PrettyJson(run.Parameters))

	return nil
}
