package attribution

import (
	"github.com/vfg2006/attribution-api/internal/domain"
)

// LastClick atribui 100% do valor ao touchpoint mais recente antes da conversão.
// Em empates de timestamp vence o último na ordem de entrada.
func LastClick(touchpoints []domain.Touchpoint, conversions []domain.Conversion) []domain.ChannelCredit {
	return distribute(NewTouchpointIndex(touchpoints), conversions, lastTouchWeights)
}

// FirstClick atribui 100% do valor ao touchpoint mais antigo.
// Em empates de timestamp vence o primeiro na ordem de entrada.
func FirstClick(touchpoints []domain.Touchpoint, conversions []domain.Conversion) []domain.ChannelCredit {
	return distribute(NewTouchpointIndex(touchpoints), conversions, firstTouchWeights)
}

// Linear divide o valor igualmente entre os n touchpoints qualificados
func Linear(touchpoints []domain.Touchpoint, conversions []domain.Conversion) []domain.ChannelCredit {
	return distribute(NewTouchpointIndex(touchpoints), conversions, linearWeights)
}

// MultiTouch distribui o valor por posição: primeiro, meio e último
func MultiTouch(touchpoints []domain.Touchpoint, conversions []domain.Conversion, weights PositionWeights) []domain.ChannelCredit {
	return distribute(NewTouchpointIndex(touchpoints), conversions, positionalWeights(weights))
}

func lastTouchWeights(touches []domain.Touchpoint, _ domain.Conversion) []float64 {
	weights := make([]float64, len(touches))
	weights[len(touches)-1] = 1
	return weights
}

func firstTouchWeights(touches []domain.Touchpoint, _ domain.Conversion) []float64 {
	weights := make([]float64, len(touches))
	weights[0] = 1
	return weights
}

func linearWeights(touches []domain.Touchpoint, _ domain.Conversion) []float64 {
	weights := make([]float64, len(touches))
	share := 1 / float64(len(touches))
	for i := range weights {
		weights[i] = share
	}
	return weights
}

// positionalWeights aplica a política por quantidade de touchpoints:
// n=1 recebe tudo; n=2 usa apenas first e last; n>2 divide middle entre os n-2 do meio.
func positionalWeights(pw PositionWeights) touchWeigher {
	return func(touches []domain.Touchpoint, _ domain.Conversion) []float64 {
		n := len(touches)
		weights := make([]float64, n)

		if n == 1 {
			weights[0] = 1
			return weights
		}

		weights[0] = pw.First
		weights[n-1] = pw.Last
		if n > 2 {
			middle := pw.Middle / float64(n-2)
			for i := 1; i < n-1; i++ {
				weights[i] = middle
			}
		}

		return weights
	}
}
