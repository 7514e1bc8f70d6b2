package attribution

import (
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/attribution-api/internal/domain"
)

// TrainingSet é a matriz de presença de canais por conversão qualificada
type TrainingSet struct {
	Channels []string
	Features [][]float64
	Labels   []float64
}

// TotalValue soma os labels usados no treino
func (ts TrainingSet) TotalValue() float64 {
	total := 0.0
	for _, v := range ts.Labels {
		total += v
	}
	return total
}

// BuildTrainingSet monta uma linha por conversão com touchpoints qualificados.
// feature[canal] = número de touchpoints do canal; as colunas são todos os canais
// da tabela de touchpoints na ordem da primeira aparição.
func BuildTrainingSet(touchpoints []domain.Touchpoint, conversions []domain.Conversion) TrainingSet {
	idx := NewTouchpointIndex(touchpoints)
	channels := idx.Channels()

	column := make(map[string]int, len(channels))
	for i, channel := range channels {
		column[channel] = i
	}

	ts := TrainingSet{Channels: channels}
	for _, conversion := range conversions {
		touches := idx.Before(conversion.CustomerID, conversion.Timestamp)
		if len(touches) == 0 {
			continue
		}

		row := make([]float64, len(channels))
		for _, tp := range touches {
			row[column[tp.Channel]]++
		}

		ts.Features = append(ts.Features, row)
		ts.Labels = append(ts.Labels, conversion.ConversionValue)
	}

	return ts
}

// Algorithmic usa a importância das features de um modelo de regressão como crédito:
// valor[canal] = importância[canal] × soma dos valores usados no treino.
// Sem conversões qualificadas retorna um resultado vazio, sem treinar o modelo.
// O resultado reflete associação estatística, não causalidade.
func Algorithmic(touchpoints []domain.Touchpoint, conversions []domain.Conversion, regressor ImportanceRegressor) ([]domain.ChannelCredit, error) {
	ts := BuildTrainingSet(touchpoints, conversions)
	if len(ts.Labels) == 0 {
		logrus.Debug("Nenhuma conversão qualificada para o modelo algorítmico")
		return []domain.ChannelCredit{}, nil
	}

	importances, err := regressor.FitImportances(ts.Features, ts.Labels)
	if err != nil {
		return nil, err
	}

	totalValue := ts.TotalValue()
	credits := make([]domain.ChannelCredit, len(ts.Channels))
	for i, channel := range ts.Channels {
		credits[i] = domain.ChannelCredit{
			Channel: channel,
			Value:   importances[i] * totalValue,
		}
	}

	sort.SliceStable(credits, func(i, j int) bool {
		if credits[i].Value != credits[j].Value {
			return credits[i].Value > credits[j].Value
		}
		return credits[i].Channel < credits[j].Channel
	})

	return credits, nil
}
