package attribution

import (
	"fmt"
	"math"

	"github.com/vfg2006/attribution-api/internal/domain"
)

const secondsPerDay = 24 * 60 * 60

// DecayWeight calcula 2^(-elapsedDays/halfLifeDays)
func DecayWeight(elapsedDays, halfLifeDays float64) float64 {
	return math.Exp2(-elapsedDays / halfLifeDays)
}

// TimeDecay dá mais crédito aos touchpoints mais próximos da conversão.
// Os pesos de cada conversão são normalizados para somar 1.
func TimeDecay(touchpoints []domain.Touchpoint, conversions []domain.Conversion, halfLifeDays float64) ([]domain.ChannelCredit, error) {
	if halfLifeDays <= 0 {
		return nil, NewConfigurationError(ErrInvalidHalfLife, "half_life_days", fmt.Sprintf("recebido %v", halfLifeDays))
	}

	return distribute(NewTouchpointIndex(touchpoints), conversions, decayWeights(halfLifeDays)), nil
}

func decayWeights(halfLifeDays float64) touchWeigher {
	return func(touches []domain.Touchpoint, conversion domain.Conversion) []float64 {
		weights := make([]float64, len(touches))
		// Medir a partir do touchpoint mais recente não muda os pesos normalizados
		// e evita underflow quando todos estão muito distantes da conversão.
		nearest := conversion.Timestamp.Sub(touches[len(touches)-1].Timestamp).Seconds() / secondsPerDay
		total := 0.0
		for i, tp := range touches {
			elapsedDays := conversion.Timestamp.Sub(tp.Timestamp).Seconds() / secondsPerDay
			weights[i] = DecayWeight(elapsedDays-nearest, halfLifeDays)
			total += weights[i]
		}

		for i := range weights {
			weights[i] /= total
		}
		return weights
	}
}
