package worker

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/internal/worker/mocks"
)

type InboxProcessorTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockSvs     *mocks.MockInboxServicer
	mockHandler *mocks.MockInboxHandler
	processor   *InboxProcessor
}

func TestInboxProcessorSuite(t *testing.T) {
	suite.Run(t, new(InboxProcessorTestSuite))
}

func (s *InboxProcessorTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSvs = mocks.NewMockInboxServicer(s.mockCtrl)
	s.mockHandler = mocks.NewMockInboxHandler(s.mockCtrl)

	l := logrus.New()
	l.SetOutput(io.Discard)

	s.processor = NewInboxProcessor(s.mockSvs, s.mockHandler, l)
}

func (s *InboxProcessorTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func inboxMessage() domain.InboxMessage {
	return domain.InboxMessage{
		ID:          uuid.New(),
		CreatedAt:   time.Now(),
		MessageID:   uuid.New().String(),
		MessageType: domain.MessageTypeOrderPaymentRequest,
		Payload:     []byte(`{}`),
	}
}

func (s *InboxProcessorTestSuite) TestDrainHandlesBatch() {
	first := inboxMessage()
	second := inboxMessage()

	s.mockSvs.EXPECT().
		UnprocessedBatch(gomock.Any(), defaultBatchSize).
		Return([]domain.InboxMessage{first, second}, nil)

	gomock.InOrder(
		s.mockHandler.EXPECT().Handle(gomock.Any(), first).Return(nil),
		s.mockHandler.EXPECT().Handle(gomock.Any(), second).Return(nil),
	)

	err := s.processor.drainOnce(context.Background())
	s.NoError(err)
}

// Ошибка обработки одного сообщения не мешает остальной пачке: строка останется
// необработанной и будет повторена в следующем цикле.
func (s *InboxProcessorTestSuite) TestDrainHandlerFailureContinues() {
	failing := inboxMessage()
	healthy := inboxMessage()

	s.mockSvs.EXPECT().
		UnprocessedBatch(gomock.Any(), defaultBatchSize).
		Return([]domain.InboxMessage{failing, healthy}, nil)

	s.mockHandler.EXPECT().Handle(gomock.Any(), failing).Return(errors.New("deadlock detected"))
	s.mockHandler.EXPECT().Handle(gomock.Any(), healthy).Return(nil)

	err := s.processor.drainOnce(context.Background())
	s.NoError(err)
}

func (s *InboxProcessorTestSuite) TestDrainBatchError() {
	s.mockSvs.EXPECT().
		UnprocessedBatch(gomock.Any(), defaultBatchSize).
		Return(nil, errors.New("connection refused"))

	err := s.processor.drainOnce(context.Background())
	s.Error(err)
}
