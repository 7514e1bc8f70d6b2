package attribution

import (
	"errors"
	"fmt"
)

// Erros de configuração das estratégias
var (
	ErrInvalidHalfLife       = errors.New("half-life must be positive")
	ErrMissingPositionWeight = errors.New("position weights missing required key")
	ErrInvalidIterations     = errors.New("iterations must be positive")
	ErrInvalidForest         = errors.New("invalid random forest configuration")
	ErrUnknownModel          = errors.New("unknown attribution model")
	ErrMissingControlGroup   = errors.New("control group is required for incremental attribution")
)

// Códigos de erro expostos pela API
const (
	CodeInvalidConfiguration = "ATTR_001"
	CodeUnknownModel         = "ATTR_002"
	CodeMissingControlGroup  = "ATTR_003"
)

// ConfigurationError é um erro de configuração detectado antes de qualquer cálculo
type ConfigurationError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	Parameter string // Parâmetro inválido
	Details   string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ConfigurationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError cria um novo ConfigurationError
func NewConfigurationError(err error, parameter string, details string) *ConfigurationError {
	code := CodeInvalidConfiguration
	switch {
	case errors.Is(err, ErrUnknownModel):
		code = CodeUnknownModel
	case errors.Is(err, ErrMissingControlGroup):
		code = CodeMissingControlGroup
	}

	return &ConfigurationError{
		Err:       err,
		Code:      code,
		Parameter: parameter,
		Details:   details,
	}
}

// IsConfigurationError verifica se o erro é um erro de configuração
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
