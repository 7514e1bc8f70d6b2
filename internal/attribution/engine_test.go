package attribution

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/attribution-api/internal/domain"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Iterations = 200
	opts.Forest.NumTrees = 10
	return opts
}

func TestNewEngine_InvalidOptions(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(o *Options)
		parameter string
		target    error
	}{
		{
			name:      "Meia-vida zero",
			mutate:    func(o *Options) { o.HalfLifeDays = 0 },
			parameter: "half_life_days",
			target:    ErrInvalidHalfLife,
		},
		{
			name:      "Iterações negativas",
			mutate:    func(o *Options) { o.Iterations = -5 },
			parameter: "iterations",
			target:    ErrInvalidIterations,
		},
		{
			name:      "Floresta sem árvores",
			mutate:    func(o *Options) { o.Forest.NumTrees = 0 },
			parameter: "forest_trees",
			target:    ErrInvalidForest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			tt.mutate(&opts)

			engine, err := NewEngine(opts)

			assert.Nil(t, engine)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.True(t, IsConfigurationError(err))

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.parameter, cfgErr.Parameter)
			assert.Equal(t, CodeInvalidConfiguration, cfgErr.Code)
		})
	}
}

func TestEngine_Run(t *testing.T) {
	engine, err := NewEngine(testOptions())
	require.NoError(t, err)

	touchpoints, conversions := mixedFixture()
	in := Input{Touchpoints: touchpoints, Conversions: conversions}

	t.Run("Modelos conservativos somam o valor atribuído", func(t *testing.T) {
		for _, model := range domain.AllModels {
			if !model.Conserving() {
				continue
			}

			result, err := engine.Run(model, in)
			require.NoError(t, err, model)
			assert.Equal(t, model, result.Model)
			assert.InDelta(t, 450.0, domain.TotalValue(result.ChannelCredits), 1e-6, model)
		}
	})

	t.Run("Probabilístico preenche apenas os créditos probabilísticos", func(t *testing.T) {
		result, err := engine.Run(domain.ModelProbabilistic, in)
		require.NoError(t, err)

		assert.Empty(t, result.ChannelCredits)
		assert.Len(t, result.ProbabilisticCredits, 5)

		expected := 0.0
		for _, credit := range result.ProbabilisticCredits {
			expected += credit.Value
		}
		assert.InDelta(t, expected, result.TotalValue(), 1e-9)
	})

	t.Run("Execuções repetidas são reproduzíveis", func(t *testing.T) {
		first, err := engine.Run(domain.ModelAlgorithmic, in)
		require.NoError(t, err)
		second, err := engine.Run(domain.ModelAlgorithmic, in)
		require.NoError(t, err)

		assert.Equal(t, first.ChannelCredits, second.ChannelCredits)
	})

	t.Run("Incremental sem grupo de controle", func(t *testing.T) {
		result, err := engine.Run(domain.ModelIncremental, in)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrMissingControlGroup)

		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, CodeMissingControlGroup, cfgErr.Code)
	})

	t.Run("Incremental com grupo de controle", func(t *testing.T) {
		control := domain.ControlGroup{Name: "holdout", CustomerIDs: []string{"c5"}}
		result, err := engine.Run(domain.ModelIncremental, Input{
			Touchpoints:  touchpoints,
			Conversions:  conversions,
			ControlGroup: &control,
		})
		require.NoError(t, err)

		assert.Len(t, result.IncrementalCredits, 5)

		expected := 0.0
		for _, credit := range result.IncrementalCredits {
			expected += credit.Value
		}
		assert.InDelta(t, expected, result.TotalValue(), 1e-9)
	})

	t.Run("Modelo desconhecido", func(t *testing.T) {
		result, err := engine.Run(domain.AttributionModel("markov"), in)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrUnknownModel)

		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, CodeUnknownModel, cfgErr.Code)
	})
}

func TestEngine_RunAll(t *testing.T) {
	engine, err := NewEngine(testOptions())
	require.NoError(t, err)

	touchpoints, conversions := mixedFixture()

	t.Run("Sem grupo de controle ignora o incremental", func(t *testing.T) {
		results, err := engine.RunAll(context.Background(), Input{Touchpoints: touchpoints, Conversions: conversions})
		require.NoError(t, err)

		assert.Len(t, results, len(domain.AllModels)-1)
		assert.NotContains(t, results, domain.ModelIncremental)

		sequential, err := engine.Run(domain.ModelTimeDecay, Input{Touchpoints: touchpoints, Conversions: conversions})
		require.NoError(t, err)
		assert.Equal(t, sequential.ChannelCredits, results[domain.ModelTimeDecay].ChannelCredits)
	})

	t.Run("Com grupo de controle executa todos", func(t *testing.T) {
		control := domain.ControlGroup{Name: "holdout", CustomerIDs: []string{"c5", "c6"}}
		results, err := engine.RunAll(context.Background(), Input{
			Touchpoints:  touchpoints,
			Conversions:  conversions,
			ControlGroup: &control,
		})
		require.NoError(t, err)

		assert.Len(t, results, len(domain.AllModels))
		for _, model := range domain.AllModels {
			assert.Equal(t, model, results[model].Model)
		}
	})

	t.Run("Contexto cancelado", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		results, err := engine.RunAll(ctx, Input{Touchpoints: touchpoints, Conversions: conversions})

		assert.Nil(t, results)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
