package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fsdevblog/srochno-market/internal/domain"
	"github.com/fsdevblog/srochno-market/internal/repository/repoargs"
	"github.com/fsdevblog/srochno-market/internal/service/tginit"
	"github.com/fsdevblog/srochno-market/internal/service/tokens"
	"github.com/fsdevblog/srochno-market/pkg/uow"
)

const sessionTokenLifetime = 30 * 24 * time.Hour

const (
	minNotificationFrequencyMinutes = 5
	maxNotificationFrequencyMinutes = 15
)

// UserService идентификация через telegram initData и операции над профилем.
type UserService struct {
	userRepo  domain.UserRepository
	botToken  string
	jwtSecret []byte
}

func NewUserService(u uow.UOW, botToken, jwtSecret string) (*UserService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[domain.UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	return &UserService{
		userRepo:  userRepo,
		botToken:  botToken,
		jwtSecret: []byte(jwtSecret),
	}, nil
}

// Authenticate проверяет подпись initData, создает или обновляет юзера
// и выдает сессионный JWT. Невалидная подпись - domain.ErrUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, initData string) (string, *domain.User, error) {
	tgUser, validateErr := tginit.Validate(initData, s.botToken)
	if validateErr != nil {
		return "", nil, fmt.Errorf("%s: %w", validateErr.Error(), domain.ErrUnauthorized)
	}

	user, upsertErr := s.userRepo.Upsert(ctx, repoargs.UpsertUser{
		ID:           tgUser.ID,
		Username:     tgUser.Username,
		FirstName:    tgUser.FirstName,
		LastName:     tgUser.LastName,
		LanguageCode: tgUser.LanguageCode,
	})
	if upsertErr != nil {
		return "", nil, upsertErr //nolint:wrapcheck
	}

	token, tokenErr := tokens.GenerateUserJWT(user.ID, sessionTokenLifetime, s.jwtSecret)
	if tokenErr != nil {
		return "", nil, fmt.Errorf("issuing session token: %w", tokenErr)
	}
	return token, user, nil
}

// Profile возвращает профиль юзера.
func (s *UserService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	user, getErr := s.userRepo.GetByID(ctx, userID)
	if getErr != nil {
		return nil, convertRepoErr(getErr)
	}
	return user, nil
}

// UpdatePreferences заменяет подписки юзера на категории и города целиком.
func (s *UserService) UpdatePreferences(ctx context.Context, userID int64, categories, cities []string) (*domain.User, error) {
	for _, category := range categories {
		if !domain.IsValidCategory(category) {
			return nil, fmt.Errorf("unknown category %q: %w", category, domain.ErrInvalid)
		}
	}

	if updateErr := s.userRepo.UpdatePreferences(ctx, userID, categories, cities); updateErr != nil {
		return nil, convertRepoErr(updateErr)
	}
	return s.Profile(ctx, userID)
}

// UpdateNotificationSettings меняет флаг и частоту уведомлений. nil-поля не меняются.
func (s *UserService) UpdateNotificationSettings(
	ctx context.Context,
	userID int64,
	args repoargs.UpdateNotificationSettings,
) (*domain.User, error) {
	if args.FrequencyMinutes != nil {
		if *args.FrequencyMinutes < minNotificationFrequencyMinutes ||
			*args.FrequencyMinutes > maxNotificationFrequencyMinutes {
			return nil, fmt.Errorf("notification frequency out of range: %w", domain.ErrInvalid)
		}
	}

	if updateErr := s.userRepo.UpdateNotificationSettings(ctx, userID, args); updateErr != nil {
		return nil, convertRepoErr(updateErr)
	}
	return s.Profile(ctx, userID)
}
