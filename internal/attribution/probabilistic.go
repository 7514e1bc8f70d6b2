package attribution

import (
	"fmt"
	"math"
	"sort"

	"github.com/vfg2006/attribution-api/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// Limites do intervalo de credibilidade de 95%
const (
	credibleLower = 0.025
	credibleUpper = 0.975
)

// Probabilistic modela a propensão de conversão de cada canal como um posterior
// Beta(convertidos+1, não convertidos+1) e amostra `iterations` vezes.
// valor = média das amostras × valor total de todas as conversões.
// As estimativas são independentes por canal e não conservam o valor total.
func Probabilistic(touchpoints []domain.Touchpoint, conversions []domain.Conversion, iterations int, sampler BetaSampler) ([]domain.ProbabilisticCredit, error) {
	if iterations <= 0 {
		return nil, NewConfigurationError(ErrInvalidIterations, "iterations", fmt.Sprintf("recebido %d", iterations))
	}

	exposure := newChannelExposure(touchpoints)
	converters := converterSet(conversions)
	totalValue := totalConversionValue(conversions)

	credits := make([]domain.ProbabilisticCredit, 0, len(exposure.channels))
	for _, channel := range exposure.channels {
		converting, nonConverting := exposure.split(channel, converters)
		alpha := float64(converting + 1)
		beta := float64(nonConverting + 1)

		samples := sampler.Sample(alpha, beta, iterations)
		mean := stat.Mean(samples, nil)

		credits = append(credits, domain.ProbabilisticCredit{
			Channel:               channel,
			Value:                 mean * totalValue,
			Alpha:                 alpha,
			Beta:                  beta,
			ConversionProbability: mean,
			CredibleInterval:      credibleInterval(samples),
		})
	}

	return credits, nil
}

// credibleInterval retorna os percentis 2.5 e 97.5 das amostras
func credibleInterval(samples []float64) [2]float64 {
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	return [2]float64{
		percentile(sorted, credibleLower),
		percentile(sorted, credibleUpper),
	}
}

// percentile interpola linearmente entre as posições vizinhas de h = (n-1)·p.
// sorted deve estar em ordem crescente.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}

	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}

	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}
