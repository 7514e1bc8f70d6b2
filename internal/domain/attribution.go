package domain

import "time"

// AttributionModel identifica a estratégia de atribuição
type AttributionModel string

const (
	ModelLastClick     AttributionModel = "last_click"
	ModelFirstClick    AttributionModel = "first_click"
	ModelLinear        AttributionModel = "linear"
	ModelTimeDecay     AttributionModel = "time_decay"
	ModelMultiTouch    AttributionModel = "multi_touch"
	ModelAlgorithmic   AttributionModel = "algorithmic"
	ModelProbabilistic AttributionModel = "probabilistic"
	ModelIncremental   AttributionModel = "incremental"
)

// AllModels lista os modelos na ordem em que são apresentados
var AllModels = []AttributionModel{
	ModelLastClick,
	ModelFirstClick,
	ModelLinear,
	ModelTimeDecay,
	ModelMultiTouch,
	ModelAlgorithmic,
	ModelProbabilistic,
	ModelIncremental,
}

// IsValid verifica se o modelo é conhecido
func (m AttributionModel) IsValid() bool {
	for _, model := range AllModels {
		if m == model {
			return true
		}
	}
	return false
}

// Conserving indica se o modelo distribui exatamente o valor das conversões atribuídas
func (m AttributionModel) Conserving() bool {
	switch m {
	case ModelLastClick, ModelFirstClick, ModelLinear, ModelTimeDecay, ModelMultiTouch:
		return true
	}
	return false
}

// AttributionFilters define o período das conversões consideradas
type AttributionFilters struct {
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// PositionWeightsParams são os pesos por posição enviados pelo cliente
type PositionWeightsParams map[string]float64

// AttributionParams são os parâmetros de uma execução. Campos nulos usam a configuração padrão.
type AttributionParams struct {
	Filters          *AttributionFilters   `json:"filters"`
	HalfLifeDays     *float64              `json:"half_life_days,omitempty"`
	PositionWeights  PositionWeightsParams `json:"position_weights,omitempty"`
	Iterations       *int                  `json:"iterations,omitempty"`
	Seed             *int64                `json:"seed,omitempty"`
	ControlGroupName string                `json:"control_group,omitempty"`
}

// AttributionRun é o resultado persistido de uma execução de um modelo
type AttributionRun struct {
	ID                        string                `json:"id"`
	Model                     AttributionModel      `json:"model"`
	Parameters                map[string]any        `json:"parameters"`
	ChannelCredits            []ChannelCredit       `json:"channel_credits,omitempty"`
	ProbabilisticCredits      []ProbabilisticCredit `json:"probabilistic_credits,omitempty"`
	IncrementalCredits        []IncrementalCredit   `json:"incremental_credits,omitempty"`
	TotalValue                float64               `json:"total_value"`
	ConversionsConsidered     int                   `json:"conversions_considered"`
	ConversionsAttributed     int                   `json:"conversions_attributed"`
	AttributedConversionValue float64               `json:"attributed_conversion_value"`
	StartedAt                 time.Time             `json:"started_at"`
	CompletedAt               time.Time             `json:"completed_at"`
}
