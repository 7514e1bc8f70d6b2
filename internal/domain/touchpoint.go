// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// InteractionType identifica o tipo de interação registrada no touchpoint
type InteractionType string

const (
	InteractionClick  InteractionType = "click"
	InteractionView   InteractionType = "view"
	InteractionEngage InteractionType = "engage"
)

// Touchpoint é uma interação de marketing registrada para um cliente em um canal
type Touchpoint struct {
	CustomerID      string          `json:"customer_id"`
	Timestamp       time.Time       `json:"timestamp"`
	Channel         string          `json:"channel"`
	InteractionType InteractionType `json:"interaction_type"`
}

// Conversion é um evento com valor (ex: compra) associado a um cliente
type Conversion struct {
	CustomerID      string    `json:"customer_id"`
	Timestamp       time.Time `json:"timestamp"`
	ConversionValue float64   `json:"conversion_value"`
}

// ControlGroup é o conjunto de clientes que nunca foram expostos ao tratamento
type ControlGroup struct {
	Name        string   `json:"name"`
	CustomerIDs []string `json:"customer_ids"`
}
