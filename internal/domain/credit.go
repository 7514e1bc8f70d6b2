package domain

// CreditRecord é o crédito parcial de um touchpoint (ou conversão) para um canal
type CreditRecord struct {
	Channel string
	Value   float64
}

// ChannelCredit é o crédito total de um canal somado em todas as conversões
type ChannelCredit struct {
	Channel string  `json:"channel"`
	Value   float64 `json:"value"`
}

// ProbabilisticCredit é o crédito estimado pelo posterior Beta de um canal
type ProbabilisticCredit struct {
	Channel string  `json:"channel"`
	Value   float64 `json:"value"`
	Alpha   float64 `json:"alpha"`
	Beta    float64 `json:"beta"`
	// ConversionProbability é a média das amostras do posterior
	ConversionProbability float64 `json:"conversion_probability"`
	// CredibleInterval é o intervalo de 95% sobre a probabilidade de conversão (não sobre o valor)
	CredibleInterval [2]float64 `json:"credible_interval_95"`
}

// IncrementalCredit é o valor incremental de um canal comparado ao grupo de controle.
// Lift e valor podem ser negativos.
type IncrementalCredit struct {
	Channel         string  `json:"channel"`
	IncrementalLift float64 `json:"incremental_lift"`
	Value           float64 `json:"value"`
}

// TotalValue soma o valor de todos os canais
func TotalValue(credits []ChannelCredit) float64 {
	total := 0.0
	for _, credit := range credits {
		total += credit.Value
	}
	return total
}
