package attribution

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/attribution-api/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Input são as tabelas consumidas pelas estratégias. ControlGroup só é usado pelo incremental.
type Input struct {
	Touchpoints  []domain.Touchpoint
	Conversions  []domain.Conversion
	ControlGroup *domain.ControlGroup
}

// Result é a saída de uma estratégia. Apenas um dos slices é preenchido, conforme o modelo.
type Result struct {
	Model                domain.AttributionModel
	ChannelCredits       []domain.ChannelCredit
	ProbabilisticCredits []domain.ProbabilisticCredit
	IncrementalCredits   []domain.IncrementalCredit
	Duration             time.Duration
}

// TotalValue soma o valor atribuído pelo modelo, qualquer que seja o tipo de crédito
func (r *Result) TotalValue() float64 {
	total := domain.TotalValue(r.ChannelCredits)
	for _, credit := range r.ProbabilisticCredits {
		total += credit.Value
	}
	for _, credit := range r.IncrementalCredits {
		total += credit.Value
	}
	return total
}

// Engine executa as estratégias com uma configuração já validada
type Engine struct {
	options Options
}

// NewEngine valida as opções e cria o engine
func NewEngine(opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Engine{options: opts}, nil
}

// Options retorna a configuração do engine
func (e *Engine) Options() Options {
	return e.options
}

// Run executa uma estratégia
func (e *Engine) Run(model domain.AttributionModel, in Input) (*Result, error) {
	startedAt := time.Now()
	result := &Result{Model: model}

	switch model {
	case domain.ModelLastClick:
		result.ChannelCredits = LastClick(in.Touchpoints, in.Conversions)

	case domain.ModelFirstClick:
		result.ChannelCredits = FirstClick(in.Touchpoints, in.Conversions)

	case domain.ModelLinear:
		result.ChannelCredits = Linear(in.Touchpoints, in.Conversions)

	case domain.ModelTimeDecay:
		credits, err := TimeDecay(in.Touchpoints, in.Conversions, e.options.HalfLifeDays)
		if err != nil {
			return nil, err
		}
		result.ChannelCredits = credits

	case domain.ModelMultiTouch:
		result.ChannelCredits = MultiTouch(in.Touchpoints, in.Conversions, e.options.PositionWeights)

	case domain.ModelAlgorithmic:
		// Cada execução tem sua própria fonte aleatória para ser reproduzível
		forest := NewRandomForest(e.options.Forest, e.options.Seed)
		credits, err := Algorithmic(in.Touchpoints, in.Conversions, forest)
		if err != nil {
			return nil, err
		}
		result.ChannelCredits = credits

	case domain.ModelProbabilistic:
		credits, err := Probabilistic(in.Touchpoints, in.Conversions, e.options.Iterations, NewBetaSampler(e.options.Seed))
		if err != nil {
			return nil, err
		}
		result.ProbabilisticCredits = credits

	case domain.ModelIncremental:
		if in.ControlGroup == nil {
			return nil, NewConfigurationError(ErrMissingControlGroup, "control_group", "")
		}
		result.IncrementalCredits = Incremental(in.Touchpoints, in.Conversions, *in.ControlGroup)

	default:
		return nil, NewConfigurationError(ErrUnknownModel, "model", string(model))
	}

	result.Duration = time.Since(startedAt)

	logrus.WithFields(logrus.Fields{
		"model":       model,
		"touchpoints": len(in.Touchpoints),
		"conversions": len(in.Conversions),
		"duration_ms": result.Duration.Milliseconds(),
	}).Debug("Estratégia de atribuição executada")

	return result, nil
}

// RunAll executa todas as estratégias em paralelo. Sem grupo de controle o
// modelo incremental é ignorado.
func (e *Engine) RunAll(ctx context.Context, in Input) (map[domain.AttributionModel]*Result, error) {
	var mu sync.Mutex
	results := make(map[domain.AttributionModel]*Result, len(domain.AllModels))

	g, ctx := errgroup.WithContext(ctx)
	for _, model := range domain.AllModels {
		if model == domain.ModelIncremental && in.ControlGroup == nil {
			logrus.Info("Grupo de controle não informado, ignorando atribuição incremental")
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			result, err := e.Run(model, in)
			if err != nil {
				return err
			}

			mu.Lock()
			results[model] = result
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
