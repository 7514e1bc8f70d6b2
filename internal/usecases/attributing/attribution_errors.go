package attributing

import (
	"errors"
	"fmt"

	"github.com/vfg2006/attribution-api/internal/attribution"
	"github.com/vfg2006/attribution-api/pkg/apiErrors"
)

// Erros específicos para o contexto de atribuição
var (
	// Erros de validação
	ErrInvalidDateRange     = errors.New("start date must not be after end date")
	ErrControlGroupNotFound = errors.New("control group not found")
	ErrRunNotFound          = errors.New("attribution run not found")

	// Erros de banco de dados
	ErrLoadInput = errors.New("error loading attribution input")
	ErrSaveRun   = errors.New("error saving attribution run")
	ErrFetchRuns = errors.New("error fetching attribution runs")

	ErrGenerateID = errors.New("error generating run ID")
)

// AttributionError é um erro com contexto adicional para execuções de atribuição
type AttributionError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Model   string // Modelo envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *AttributionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *AttributionError) Unwrap() error {
	return e.Err
}

// NewAttributionError cria um novo AttributionError
func NewAttributionError(err error, code string, details string) *AttributionError {
	return &AttributionError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewAttributionErrorWithModel cria um novo AttributionError com o modelo envolvido
func NewAttributionErrorWithModel(err error, code string, model string, details string) *AttributionError {
	return &AttributionError{
		Err:     err,
		Code:    code,
		Model:   model,
		Details: details,
	}
}

// ErrorCode retorna o código de API para qualquer erro produzido pelo caso de uso
func ErrorCode(err error) string {
	var attrErr *AttributionError
	if errors.As(err, &attrErr) {
		return attrErr.Code
	}

	var cfgErr *attribution.ConfigurationError
	if errors.As(err, &cfgErr) {
		switch cfgErr.Code {
		case attribution.CodeUnknownModel:
			return apiErrors.ErrUnknownAttributionModel
		case attribution.CodeMissingControlGroup:
			return apiErrors.ErrMissingControlGroup
		default:
			return apiErrors.ErrInvalidAttributionConfig
		}
	}

	return apiErrors.ErrInternalServer
}
