package domain

import (
	"errors"
)

// Ошибки уровня репозитория.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrUnknown        = errors.New("unknown error")
)

// Бизнес-ошибки. Транспортный слой отображает их в http статусы один к одному.
var (
	// ErrNotFound сущность отсутствует или не принадлежит вызывающему.
	// Чужие сущности намеренно неотличимы от несуществующих.
	ErrNotFound = errors.New("not found")
	// ErrForbidden сущность существует, но действие запрещено правилами.
	ErrForbidden = errors.New("forbidden")
	// ErrGone сущность перешла в конечное состояние или истек срок жизни.
	ErrGone = errors.New("gone")
	// ErrConflict нарушение инварианта уникальности или конкурентного лимита.
	ErrConflict = errors.New("conflict")
	// ErrInsufficientFunds недостаточно средств на балансе.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrUnauthorized невалидные или отсутствующие учетные данные.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrGatewayUnavailable платежный провайдер не сконфигурирован или недоступен.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	// ErrInvalid некорректные входные данные.
	ErrInvalid = errors.New("invalid input")
)
