package domain

import "errors"

// Erros de domínio do cliente (sem dependências externas).
var (
	ErrNotFound     = errors.New("recurso não encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
)

// ValidationError falha de validação local, avaliada antes de qualquer chamada
// de rede. Message é o texto exibido ao usuário.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// SubmitError rejeição de uma mutação pelo backend, já traduzida para a
// mensagem a exibir (erro de campo, non_field_errors ou fallback genérico).
type SubmitError struct {
	Message string
}

func (e *SubmitError) Error() string { return e.Message }
