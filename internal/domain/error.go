package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Error string `json:"error" example:"Error del servidor"`
}

// FieldErrorItem descreve a falha de validação de um campo específico.
// @Description Falha de validação de um campo do payload.
type FieldErrorItem struct {
	Field   string `json:"field" example:"email"`
	Message string `json:"message" example:"must be a valid email address"`
}

// ValidationResponse é o corpo retornado quando a validação de entrada falha.
// Lista todos os campos inválidos, nunca apenas o primeiro.
// @Description Corpo retornado em falhas de validação (HTTP 400).
type ValidationResponse struct {
	Errors []FieldErrorItem `json:"errors"`
}
