package attribution

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// BetaSampler gera n amostras de uma distribuição Beta(alpha, beta)
type BetaSampler interface {
	Sample(alpha, beta float64, n int) []float64
}

// GonumBetaSampler amostra a distribuição Beta do gonum com uma fonte determinística.
// Não é seguro para uso concorrente; crie um por execução.
type GonumBetaSampler struct {
	src rand.Source
}

// NewBetaSampler cria um sampler com a semente informada
func NewBetaSampler(seed int64) *GonumBetaSampler {
	return &GonumBetaSampler{
		src: rand.NewPCG(uint64(seed), uint64(seed)^0xda942042e4dd58b5),
	}
}

// Sample implementa BetaSampler
func (s *GonumBetaSampler) Sample(alpha, beta float64, n int) []float64 {
	dist := distuv.Beta{Alpha: alpha, Beta: beta, Src: s.src}

	samples := make([]float64, n)
	for i := range samples {
		samples[i] = dist.Rand()
	}
	return samples
}
