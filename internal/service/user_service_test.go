package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/srochno-market/internal/domain"
	domainmocks "github.com/fsdevblog/srochno-market/internal/domain/mocks"
	"github.com/fsdevblog/srochno-market/internal/repository/repoargs"
	"github.com/fsdevblog/srochno-market/internal/service/tokens"
	"github.com/fsdevblog/srochno-market/pkg/uow"
	uowmocks "github.com/fsdevblog/srochno-market/pkg/uow/mocks"
)

const (
	testBotToken  = "12345:AAtesttoken"
	testJWTSecret = "test-jwt-secret"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockUOW      *uowmocks.MockUOW
	mockUserRepo *domainmocks.MockUserRepository
	userService  *UserService
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockUserRepo = domainmocks.NewMockUserRepository(s.mockCtrl)

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()

	userService, servErr := NewUserService(s.mockUOW, testBotToken, testJWTSecret)
	s.Require().NoError(servErr)
	s.userService = userService
}

func (s *UserServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// signedInitData собирает initData, подписанный токеном бота.
func signedInitData(userJSON string) string {
	dataCheckString := "auth_date=1748779200\nuser=" + userJSON

	keyMAC := hmac.New(sha256.New, []byte("WebAppData"))
	keyMAC.Write([]byte(testBotToken))

	mac := hmac.New(sha256.New, keyMAC.Sum(nil))
	mac.Write([]byte(dataCheckString))

	values := url.Values{}
	values.Set("auth_date", "1748779200")
	values.Set("user", userJSON)
	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return values.Encode()
}

func (s *UserServiceTestSuite) TestAuthenticate() {
	userJSON := `{"id":100,"first_name":"Иван","username":"ivan","language_code":"ru"}`

	s.mockUserRepo.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.UpsertUser) (*domain.User, error) {
			s.Equal(int64(100), args.ID)
			s.Equal("ivan", args.Username)
			return &domain.User{ID: 100, Username: "ivan", FirstName: "Иван"}, nil
		})

	token, user, err := s.userService.Authenticate(s.T().Context(), signedInitData(userJSON))

	s.Require().NoError(err)
	s.Equal(int64(100), user.ID)

	// Выданный токен валиден и содержит id юзера.
	parsed, validateErr := tokens.ValidateUserJWT(token, []byte(testJWTSecret))
	s.Require().NoError(validateErr)
	claims, ok := parsed.Claims.(*tokens.UserClaims)
	s.Require().True(ok)
	s.Equal(int64(100), claims.ID)
}

func (s *UserServiceTestSuite) TestAuthenticateBadSignature() {
	_, _, err := s.userService.Authenticate(s.T().Context(), "user=%7B%22id%22%3A100%7D&hash=deadbeef")

	s.Require().ErrorIs(err, domain.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestUpdatePreferences() {
	var userID int64 = 100
	categories := []string{domain.Categories[0], domain.Categories[1]}
	cities := []string{"Москва", "Казань"}

	s.mockUserRepo.EXPECT().UpdatePreferences(gomock.Any(), userID, categories, cities).Return(nil)
	s.mockUserRepo.EXPECT().GetByID(gomock.Any(), userID).
		Return(&domain.User{ID: userID, SubscribedCategories: categories, SubscribedCities: cities}, nil)

	user, err := s.userService.UpdatePreferences(s.T().Context(), userID, categories, cities)

	s.Require().NoError(err)
	s.Equal(categories, user.SubscribedCategories)
}

func (s *UserServiceTestSuite) TestUpdatePreferencesUnknownCategory() {
	_, err := s.userService.UpdatePreferences(s.T().Context(), 100, []string{"телепортация"}, nil)

	s.Require().ErrorIs(err, domain.ErrInvalid)
}

func (s *UserServiceTestSuite) TestUpdateNotificationSettings() {
	var userID int64 = 100
	enabled := true
	frequency := 10
	args := repoargs.UpdateNotificationSettings{Enabled: &enabled, FrequencyMinutes: &frequency}

	s.mockUserRepo.EXPECT().UpdateNotificationSettings(gomock.Any(), userID, args).Return(nil)
	s.mockUserRepo.EXPECT().GetByID(gomock.Any(), userID).
		Return(&domain.User{ID: userID, NotificationsEnabled: true, NotificationFrequencyMinutes: frequency}, nil)

	user, err := s.userService.UpdateNotificationSettings(s.T().Context(), userID, args)

	s.Require().NoError(err)
	s.True(user.NotificationsEnabled)
	s.Equal(frequency, user.NotificationFrequencyMinutes)
}

func (s *UserServiceTestSuite) TestUpdateNotificationSettingsFrequencyOutOfRange() {
	cases := []struct {
		name      string
		frequency int
	}{
		{name: "below minimum", frequency: 4},
		{name: "above maximum", frequency: 16},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			frequency := t.frequency
			_, err := s.userService.UpdateNotificationSettings(s.T().Context(), 100, repoargs.UpdateNotificationSettings{
				FrequencyMinutes: &frequency,
			})

			s.Require().ErrorIs(err, domain.ErrInvalid)
		})
	}
}
