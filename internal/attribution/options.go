package attribution

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Chaves aceitas nos pesos por posição
const (
	PositionFirst  = "first"
	PositionMiddle = "middle"
	PositionLast   = "last"
)

// PositionWeights são os pesos do modelo multi-touch por posição.
// A soma deveria ser 1; isso não é validado e é responsabilidade de quem configura.
type PositionWeights struct {
	First  float64 `json:"first"`
	Middle float64 `json:"middle"`
	Last   float64 `json:"last"`
}

// DefaultPositionWeights retorna os pesos padrão 30/20/50
func DefaultPositionWeights() PositionWeights {
	return PositionWeights{First: 0.3, Middle: 0.2, Last: 0.5}
}

// Sum retorna a soma dos pesos
func (w PositionWeights) Sum() float64 {
	return w.First + w.Middle + w.Last
}

// ParsePositionWeights converte um mapa de pesos exigindo as três chaves
func ParsePositionWeights(weights map[string]float64) (PositionWeights, error) {
	required := []string{PositionFirst, PositionMiddle, PositionLast}
	for _, key := range required {
		if _, ok := weights[key]; !ok {
			return PositionWeights{}, NewConfigurationError(ErrMissingPositionWeight, "position_weights", key)
		}
	}

	return PositionWeights{
		First:  weights[PositionFirst],
		Middle: weights[PositionMiddle],
		Last:   weights[PositionLast],
	}, nil
}

// ParsePositionWeightsString lê pesos no formato "first:0.3,middle:0.2,last:0.5"
func ParsePositionWeightsString(raw string) (PositionWeights, error) {
	weights := make(map[string]float64)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		key, value, found := strings.Cut(pair, ":")
		if !found {
			return PositionWeights{}, NewConfigurationError(ErrMissingPositionWeight, "position_weights",
				fmt.Sprintf("formato inválido: %q", pair))
		}

		weight, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return PositionWeights{}, NewConfigurationError(ErrMissingPositionWeight, "position_weights",
				fmt.Sprintf("peso inválido para %s: %q", key, value))
		}
		weights[strings.ToLower(strings.TrimSpace(key))] = weight
	}

	return ParsePositionWeights(weights)
}

// Map retorna os pesos indexados pela posição
func (w PositionWeights) Map() map[string]float64 {
	return map[string]float64{
		PositionFirst:  w.First,
		PositionMiddle: w.Middle,
		PositionLast:   w.Last,
	}
}

// String formata os pesos no mesmo formato aceito por ParsePositionWeightsString
func (w PositionWeights) String() string {
	m := w.Map()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%s", k, strconv.FormatFloat(m[k], 'f', -1, 64)))
	}
	return strings.Join(parts, ",")
}

// Options reúne a configuração de todas as estratégias
type Options struct {
	// HalfLifeDays é a meia-vida do decaimento temporal em dias. Padrão: 7.
	HalfLifeDays float64

	// PositionWeights são os pesos do multi-touch. Padrão: 0.3/0.2/0.5.
	PositionWeights PositionWeights

	// Iterations é o número de amostras do posterior Beta. Padrão: 1000.
	Iterations int

	// Forest configura o modelo do algoritmo aprendido.
	Forest ForestConfig

	// Seed alimenta todas as fontes aleatórias para execuções reproduzíveis.
	Seed int64
}

// DefaultOptions retorna a configuração padrão
func DefaultOptions() Options {
	return Options{
		HalfLifeDays:    7,
		PositionWeights: DefaultPositionWeights(),
		Iterations:      1000,
		Forest:          DefaultForestConfig(),
		Seed:            42,
	}
}

// Validate verifica a configuração antes de qualquer cálculo. Nada é preenchido com padrões.
func (o Options) Validate() error {
	if o.HalfLifeDays <= 0 {
		return NewConfigurationError(ErrInvalidHalfLife, "half_life_days",
			fmt.Sprintf("recebido %v", o.HalfLifeDays))
	}

	if o.Iterations <= 0 {
		return NewConfigurationError(ErrInvalidIterations, "iterations",
			fmt.Sprintf("recebido %d", o.Iterations))
	}

	return o.Forest.Validate()
}
