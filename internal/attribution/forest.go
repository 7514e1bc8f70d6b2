package attribution

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// pureNodeEpsilon é o limite de impureza abaixo do qual um nó é considerado puro
const pureNodeEpsilon = 1e-12

// ImportanceRegressor ajusta um modelo de regressão e devolve a importância de cada feature
type ImportanceRegressor interface {
	FitImportances(features [][]float64, labels []float64) ([]float64, error)
}

// ForestConfig configura o random forest de regressão
type ForestConfig struct {
	// NumTrees é o número de árvores do ensemble. Padrão: 100.
	NumTrees int

	// MaxDepth limita a profundidade das árvores. 0 = sem limite.
	MaxDepth int

	// MinSamplesSplit é o mínimo de amostras para dividir um nó. Padrão: 2.
	MinSamplesSplit int
}

// DefaultForestConfig retorna a configuração padrão do forest
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		NumTrees:        100,
		MaxDepth:        0,
		MinSamplesSplit: 2,
	}
}

// Validate verifica a configuração do forest
func (c ForestConfig) Validate() error {
	if c.NumTrees <= 0 {
		return NewConfigurationError(ErrInvalidForest, "forest_trees", fmt.Sprintf("recebido %d", c.NumTrees))
	}
	if c.MaxDepth < 0 {
		return NewConfigurationError(ErrInvalidForest, "forest_max_depth", fmt.Sprintf("recebido %d", c.MaxDepth))
	}
	if c.MinSamplesSplit < 2 {
		return NewConfigurationError(ErrInvalidForest, "forest_min_samples_split", fmt.Sprintf("recebido %d", c.MinSamplesSplit))
	}
	return nil
}

// RandomForest é um ensemble de árvores CART de regressão treinadas com bootstrap.
// Todas as features são avaliadas em cada divisão e o critério é o erro quadrático.
// A importância é a redução média de impureza, normalizada por árvore.
type RandomForest struct {
	config ForestConfig
	rng    *rand.Rand
}

// NewRandomForest cria um forest com fonte aleatória determinística
func NewRandomForest(cfg ForestConfig, seed int64) *RandomForest {
	return &RandomForest{
		config: cfg,
		rng:    rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
	}
}

// FitImportances treina o ensemble e retorna as importâncias normalizadas (soma 1).
// Se nenhuma árvore conseguir dividir, todas as importâncias são zero.
func (f *RandomForest) FitImportances(features [][]float64, labels []float64) ([]float64, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("conjunto de treino vazio")
	}
	if len(features) != len(labels) {
		return nil, fmt.Errorf("features e labels com tamanhos diferentes: %d != %d", len(features), len(labels))
	}

	nFeatures := len(features[0])
	for i, row := range features {
		if len(row) != nFeatures {
			return nil, fmt.Errorf("linha %d com %d features, esperado %d", i, len(row), nFeatures)
		}
	}

	importances := make([]float64, nFeatures)
	fitted := 0
	for t := 0; t < f.config.NumTrees; t++ {
		tree := &regressionTree{
			features:    features,
			labels:      labels,
			config:      f.config,
			rng:         f.rng,
			importances: make([]float64, nFeatures),
		}
		tree.grow(f.bootstrap(len(labels)), 0)

		if tree.splits == 0 {
			continue
		}

		if total := floats.Sum(tree.importances); total > 0 {
			floats.Scale(1/total, tree.importances)
		}
		floats.Add(importances, tree.importances)
		fitted++
	}

	if fitted == 0 {
		return importances, nil
	}

	floats.Scale(1/float64(fitted), importances)
	if total := floats.Sum(importances); total > 0 {
		floats.Scale(1/total, importances)
	}

	return importances, nil
}

func (f *RandomForest) bootstrap(n int) []int {
	sample := make([]int, n)
	for i := range sample {
		sample[i] = f.rng.IntN(n)
	}
	return sample
}

// regressionTree cresce uma árvore acumulando apenas a redução de impureza por feature
type regressionTree struct {
	features    [][]float64
	labels      []float64
	config      ForestConfig
	rng         *rand.Rand
	importances []float64
	splits      int
}

type split struct {
	feature   int
	threshold float64
	score     float64
}

func (t *regressionTree) grow(indices []int, depth int) {
	if len(indices) < t.config.MinSamplesSplit {
		return
	}
	if t.config.MaxDepth > 0 && depth >= t.config.MaxDepth {
		return
	}

	impurity := t.sse(indices)
	if impurity <= pureNodeEpsilon {
		return
	}

	best, ok := t.bestSplit(indices)
	if !ok {
		return
	}

	left := make([]int, 0, len(indices))
	right := make([]int, 0, len(indices))
	for _, i := range indices {
		if t.features[i][best.feature] <= best.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	decrease := impurity - t.sse(left) - t.sse(right)
	if decrease > 0 {
		t.importances[best.feature] += decrease
	}
	t.splits++

	t.grow(left, depth+1)
	t.grow(right, depth+1)
}

// bestSplit maximiza sum_l²/n_l + sum_r²/n_r, equivalente a minimizar o SSE dos filhos
func (t *regressionTree) bestSplit(indices []int) (split, bool) {
	n := len(indices)
	total := 0.0
	for _, i := range indices {
		total += t.labels[i]
	}

	best := split{feature: -1}
	sorted := make([]int, n)
	for _, feature := range t.rng.Perm(len(t.importances)) {
		copy(sorted, indices)
		sort.SliceStable(sorted, func(a, b int) bool {
			return t.features[sorted[a]][feature] < t.features[sorted[b]][feature]
		})

		leftSum := 0.0
		for pos := 1; pos < n; pos++ {
			leftSum += t.labels[sorted[pos-1]]

			prev := t.features[sorted[pos-1]][feature]
			next := t.features[sorted[pos]][feature]
			if prev == next {
				continue
			}

			nl := float64(pos)
			nr := float64(n - pos)
			rightSum := total - leftSum
			score := leftSum*leftSum/nl + rightSum*rightSum/nr
			if best.feature < 0 || score > best.score {
				best = split{feature: feature, threshold: prev + (next-prev)/2, score: score}
			}
		}
	}

	return best, best.feature >= 0
}

func (t *regressionTree) sse(indices []int) float64 {
	if len(indices) == 0 {
		return 0
	}

	values := make([]float64, len(indices))
	for k, i := range indices {
		values[k] = t.labels[i]
	}

	mean := stat.Mean(values, nil)
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum
}
