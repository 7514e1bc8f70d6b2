package attribution

import (
	"sort"

	"github.com/vfg2006/attribution-api/internal/domain"
)

// Aggregate agrupa os créditos por canal somando os valores. Canais que receberam
// algum registro aparecem mesmo com total zero. A saída é ordenada pelo nome do canal.
func Aggregate(records []domain.CreditRecord) []domain.ChannelCredit {
	totals := make(map[string]float64)
	for _, record := range records {
		totals[record.Channel] += record.Value
	}

	credits := make([]domain.ChannelCredit, 0, len(totals))
	for channel, value := range totals {
		credits = append(credits, domain.ChannelCredit{Channel: channel, Value: value})
	}

	sort.Slice(credits, func(i, j int) bool {
		return credits[i].Channel < credits[j].Channel
	})

	return credits
}

// touchWeigher calcula os pesos dos touchpoints qualificados de uma conversão.
// touches nunca é vazio.
type touchWeigher func(touches []domain.Touchpoint, conversion domain.Conversion) []float64

// distribute aplica o weigher a cada conversão com touchpoints qualificados e agrega
// valor × peso por canal. Conversões sem touchpoints não geram crédito.
func distribute(idx *TouchpointIndex, conversions []domain.Conversion, weigh touchWeigher) []domain.ChannelCredit {
	records := make([]domain.CreditRecord, 0)
	for _, conversion := range conversions {
		touches := idx.Before(conversion.CustomerID, conversion.Timestamp)
		if len(touches) == 0 {
			continue
		}

		weights := weigh(touches, conversion)
		for i, tp := range touches {
			records = append(records, domain.CreditRecord{
				Channel: tp.Channel,
				Value:   conversion.ConversionValue * weights[i],
			})
		}
	}

	return Aggregate(records)
}

// AttributedConversions conta as conversões com ao menos um touchpoint qualificado
// e soma o seu valor (o total que as estratégias conservativas devem distribuir).
func AttributedConversions(touchpoints []domain.Touchpoint, conversions []domain.Conversion) (int, float64) {
	idx := NewTouchpointIndex(touchpoints)

	count := 0
	total := 0.0
	for _, conversion := range conversions {
		if len(idx.Before(conversion.CustomerID, conversion.Timestamp)) == 0 {
			continue
		}
		count++
		total += conversion.ConversionValue
	}

	return count, total
}
