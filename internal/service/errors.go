package service

import (
	"errors"
	"fmt"

	"github.com/fsdevblog/srochno-market/internal/domain"
)

// convertRepoErr переводит ошибки уровня репозитория в бизнес-ошибки.
// Транспортный слой знает только бизнес-таксономию.
func convertRepoErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", err.Error(), domain.ErrNotFound)
	case errors.Is(err, domain.ErrDuplicateKey):
		return fmt.Errorf("%s: %w", err.Error(), domain.ErrConflict)
	default:
		return err
	}
}
