package service

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/srochno-market/internal/domain"
	domainmocks "github.com/fsdevblog/srochno-market/internal/domain/mocks"
	"github.com/fsdevblog/srochno-market/internal/repository/repoargs"
	"github.com/fsdevblog/srochno-market/internal/service/mocks"
	"github.com/fsdevblog/srochno-market/pkg/uow"
	uowmocks "github.com/fsdevblog/srochno-market/pkg/uow/mocks"
)

type NotificationServiceTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockUOW      *uowmocks.MockUOW
	mockUserRepo *domainmocks.MockUserRepository
	mockSender   *mocks.MockMessageSender
	service      *NotificationService

	now time.Time
}

func TestNotificationServiceSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}

func (s *NotificationServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockUserRepo = domainmocks.NewMockUserRepository(s.mockCtrl)
	s.mockSender = mocks.NewMockMessageSender(s.mockCtrl)

	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	service, servErr := NewNotificationService(s.mockUOW, s.mockSender, logger)
	s.Require().NoError(servErr)
	s.service = service.WithNow(func() time.Time { return s.now })
}

func (s *NotificationServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *NotificationServiceTestSuite) TestDispatchNewOrder() {
	order := domain.Order{
		ID:          "a1b2c3d4e5f6",
		ClientID:    100,
		Category:    domain.Categories[0],
		City:        "Москва",
		Description: "Потек кран на кухне",
	}

	longAgo := s.now.Add(-time.Hour)
	recently := s.now.Add(-time.Minute)
	subscribers := []domain.User{
		{ID: 201, NotificationFrequencyMinutes: 15},                           // еще не уведомлялся
		{ID: 202, NotificationFrequencyMinutes: 15, LastNotifiedAt: &longAgo}, // кулдаун прошел
		{ID: 203, NotificationFrequencyMinutes: 15, LastNotifiedAt: &recently},
	}

	s.mockUserRepo.EXPECT().
		FindSubscribed(gomock.Any(), order.Category, order.City, order.ClientID).
		Return(subscribers, nil)

	// 203 в личном кулдауне, сообщения не получает.
	s.mockSender.EXPECT().SendMessage(gomock.Any(), int64(201), gomock.Any()).Return(nil)
	s.mockSender.EXPECT().SendMessage(gomock.Any(), int64(202), gomock.Any()).Return(nil)
	s.mockUserRepo.EXPECT().SetLastNotifiedAt(gomock.Any(), int64(201), s.now).Return(nil)
	s.mockUserRepo.EXPECT().SetLastNotifiedAt(gomock.Any(), int64(202), s.now).Return(nil)

	s.service.DispatchNewOrder(s.T().Context(), order)
}

func (s *NotificationServiceTestSuite) TestDispatchSendErrorSkipsCooldownMark() {
	order := domain.Order{ID: "a1b2c3d4e5f6", ClientID: 100, Category: domain.Categories[0], City: "Москва"}
	subscribers := []domain.User{{ID: 201, NotificationFrequencyMinutes: 15}}

	s.mockUserRepo.EXPECT().
		FindSubscribed(gomock.Any(), order.Category, order.City, order.ClientID).
		Return(subscribers, nil)

	// Сбой доставки не помечает юзера уведомленным: кулдаун не сгорает впустую.
	s.mockSender.EXPECT().SendMessage(gomock.Any(), int64(201), gomock.Any()).
		Return(errors.New("telegram: 429"))

	s.service.DispatchNewOrder(s.T().Context(), order)
}

func (s *NotificationServiceTestSuite) TestDispatchMatchingErrorSwallowed() {
	order := domain.Order{ID: "a1b2c3d4e5f6", ClientID: 100, Category: domain.Categories[0], City: "Москва"}

	s.mockUserRepo.EXPECT().
		FindSubscribed(gomock.Any(), order.Category, order.City, order.ClientID).
		Return(nil, errors.New("connection refused"))

	// Ошибка подбора глотается, паники и сообщений нет.
	s.service.DispatchNewOrder(s.T().Context(), order)
}
