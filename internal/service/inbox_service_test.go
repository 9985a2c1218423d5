package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/internal/repository/repoargs"
	"github.com/fsdevblog/groph-pay/internal/service/mocks"
	"github.com/fsdevblog/groph-pay/pkg/uow"
	uowmocks "github.com/fsdevblog/groph-pay/pkg/uow/mocks"
)

type InboxServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockUOW       *uowmocks.MockUOW
	mockInboxRepo *mocks.MockInboxRepository
	inboxService  *InboxService
}

func TestInboxServiceSuite(t *testing.T) {
	suite.Run(t, new(InboxServiceTestSuite))
}

func (s *InboxServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockInboxRepo = mocks.NewMockInboxRepository(s.mockCtrl)

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.InboxRepoName)).
		Return(s.mockInboxRepo, nil).AnyTimes()

	inboxService, servErr := NewInboxService(s.mockUOW)
	s.Require().NoError(servErr)
	s.inboxService = inboxService
}

func (s *InboxServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *InboxServiceTestSuite) TestRecordNew() {
	messageID := uuid.New().String()
	payload := []byte(`{"orderId":"x"}`)

	s.mockInboxRepo.EXPECT().
		FindByMessageID(gomock.Any(), messageID).
		Return(nil, domain.ErrRecordNotFound)

	s.mockInboxRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.InboxMessageCreate) (*domain.InboxMessage, error) {
			s.Equal(messageID, args.MessageID)
			s.Equal(domain.MessageTypeOrderPaymentRequest, args.MessageType)
			return &domain.InboxMessage{ID: args.ID, MessageID: args.MessageID}, nil
		})

	message, created, err := s.inboxService.Record(
		context.Background(), domain.MessageTypeOrderPaymentRequest, messageID, payload)
	s.NoError(err)
	s.True(created)
	s.Require().NotNil(message)
	s.Equal(messageID, message.MessageID)
}

// Повторная доставка того же message_id: вставки нет, ошибка не возвращается.
func (s *InboxServiceTestSuite) TestRecordDuplicate() {
	messageID := uuid.New().String()

	s.mockInboxRepo.EXPECT().
		FindByMessageID(gomock.Any(), messageID).
		Return(&domain.InboxMessage{MessageID: messageID, Processed: true}, nil)

	message, created, err := s.inboxService.Record(
		context.Background(), domain.MessageTypePaymentResult, messageID, nil)
	s.NoError(err)
	s.False(created)
	s.Require().NotNil(message)
	s.Equal(messageID, message.MessageID)
}

// Гонка двух параллельных доставок: уникальный индекс сработал после проверки.
func (s *InboxServiceTestSuite) TestRecordRace() {
	messageID := uuid.New().String()

	s.mockInboxRepo.EXPECT().
		FindByMessageID(gomock.Any(), messageID).
		Return(nil, domain.ErrRecordNotFound)

	s.mockInboxRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrDuplicateKey)

	_, created, err := s.inboxService.Record(
		context.Background(), domain.MessageTypePaymentResult, messageID, nil)
	s.NoError(err)
	s.False(created)
}
