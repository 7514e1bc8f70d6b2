package attribution

import "github.com/vfg2006/attribution-api/internal/domain"

// Incremental compara a taxa de conversão dos expostos a cada canal com a do grupo de controle.
//
//	lift  = taxa_tratamento - taxa_controle
//	valor = lift × clientes expostos × valor médio das conversões
//
// Lift e valor negativos indicam um canal abaixo da linha de base e não são truncados.
func Incremental(touchpoints []domain.Touchpoint, conversions []domain.Conversion, control domain.ControlGroup) []domain.IncrementalCredit {
	exposure := newChannelExposure(touchpoints)
	converters := converterSet(conversions)

	meanValue := 0.0
	if len(conversions) > 0 {
		meanValue = totalConversionValue(conversions) / float64(len(conversions))
	}

	controlRate := controlRate(control, converters)

	credits := make([]domain.IncrementalCredit, 0, len(exposure.channels))
	for _, channel := range exposure.channels {
		converting, nonConverting := exposure.split(channel, converters)
		exposed := converting + nonConverting

		treatmentRate := 0.0
		if exposed > 0 {
			treatmentRate = float64(converting) / float64(exposed)
		}

		lift := treatmentRate - controlRate
		credits = append(credits, domain.IncrementalCredit{
			Channel:         channel,
			IncrementalLift: lift,
			Value:           lift * float64(exposed) * meanValue,
		})
	}

	return credits
}

// controlRate é a fração de clientes distintos do controle que converteram (0 se vazio)
func controlRate(control domain.ControlGroup, converters map[string]struct{}) float64 {
	members := make(map[string]struct{}, len(control.CustomerIDs))
	for _, id := range control.CustomerIDs {
		members[id] = struct{}{}
	}
	if len(members) == 0 {
		return 0
	}

	converted := 0
	for id := range members {
		if _, ok := converters[id]; ok {
			converted++
		}
	}

	return float64(converted) / float64(len(members))
}
