package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de autenticação
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrNotFound            = "VAL_004" // Rota não encontrada
	ErrMethodNotAllowed    = "VAL_005" // Método não permitido

	// Erros de atribuição
	ErrInvalidAttributionConfig = "ATTR_001" // Parâmetro de estratégia inválido
	ErrUnknownAttributionModel  = "ATTR_002" // Modelo de atribuição desconhecido
	ErrMissingControlGroup      = "ATTR_003" // Grupo de controle ausente
	ErrAttributionRunNotFound   = "ATTR_004" // Nenhuma execução encontrada

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrJobAlreadyRunning = "SRV_005" // Job já em execução
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:             http.StatusUnauthorized,
	ErrExpiredToken:             http.StatusUnauthorized,
	ErrInsufficientPrivilege:    http.StatusForbidden,
	ErrInvalidRequest:           http.StatusBadRequest,
	ErrMissingRequiredData:      http.StatusBadRequest,
	ErrInvalidFormat:            http.StatusBadRequest,
	ErrNotFound:                 http.StatusNotFound,
	ErrMethodNotAllowed:         http.StatusMethodNotAllowed,
	ErrInvalidAttributionConfig: http.StatusUnprocessableEntity,
	ErrUnknownAttributionModel:  http.StatusNotFound,
	ErrMissingControlGroup:      http.StatusUnprocessableEntity,
	ErrAttributionRunNotFound:   http.StatusNotFound,
	ErrInternalServer:           http.StatusInternalServerError,
	ErrDatabaseOperation:        http.StatusInternalServerError,
	ErrJobAlreadyRunning:        http.StatusConflict,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP de um código de erro
func StatusFor(code string) int {
	if status, exists := httpStatusMap[code]; exists {
		return status
	}
	return http.StatusInternalServerError
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
