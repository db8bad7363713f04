package cryptopay

import (
	"fmt"
)

type StatusCodeError struct {
	Code int
}

func NewStatusCodeError(code int) *StatusCodeError {
	return &StatusCodeError{Code: code}
}

func (e *StatusCodeError) Error() string {
	return fmt.Sprintf("Unexpected status code %d", e.Code)
}

// APIError логическая ошибка провайдера при успешном HTTP статусе.
type APIError struct {
	Code int
	Name string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("crypto pay api error %d: %s", e.Code, e.Name)
}
