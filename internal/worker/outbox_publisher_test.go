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
	"github.com/fsdevblog/groph-pay/internal/messages"
	"github.com/fsdevblog/groph-pay/internal/worker/mocks"
)

type OutboxPublisherTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockSvs       *mocks.MockOutboxServicer
	mockPublisher *mocks.MockPublisher
	publisher     *OutboxPublisher
}

func TestOutboxPublisherSuite(t *testing.T) {
	suite.Run(t, new(OutboxPublisherTestSuite))
}

func (s *OutboxPublisherTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSvs = mocks.NewMockOutboxServicer(s.mockCtrl)
	s.mockPublisher = mocks.NewMockPublisher(s.mockCtrl)

	l := logrus.New()
	l.SetOutput(io.Discard)

	s.publisher = NewOutboxPublisher(
		s.mockSvs,
		s.mockPublisher,
		map[domain.MessageType]string{
			domain.MessageTypeOrderPaymentRequest: messages.QueueOrderPayments,
		},
		l,
	)
}

func (s *OutboxPublisherTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func outboxMessage(messageType domain.MessageType) domain.OutboxMessage {
	return domain.OutboxMessage{
		ID:          uuid.New(),
		CreatedAt:   time.Now(),
		MessageType: messageType,
		Payload:     []byte(`{}`),
	}
}

// Каждое сообщение пачки публикуется и сразу же помечается опубликованным.
func (s *OutboxPublisherTestSuite) TestDrainPublishesAndMarks() {
	first := outboxMessage(domain.MessageTypeOrderPaymentRequest)
	second := outboxMessage(domain.MessageTypeOrderPaymentRequest)

	s.mockSvs.EXPECT().
		UnpublishedBatch(gomock.Any(), defaultBatchSize).
		Return([]domain.OutboxMessage{first, second}, nil)

	gomock.InOrder(
		s.mockPublisher.EXPECT().
			Publish(gomock.Any(), messages.QueueOrderPayments, first.ID.String(), first.Payload).
			Return(nil),
		s.mockSvs.EXPECT().MarkPublished(gomock.Any(), first.ID).Return(nil),
		s.mockPublisher.EXPECT().
			Publish(gomock.Any(), messages.QueueOrderPayments, second.ID.String(), second.Payload).
			Return(nil),
		s.mockSvs.EXPECT().MarkPublished(gomock.Any(), second.ID).Return(nil),
	)

	err := s.publisher.drainOnce(context.Background())
	s.NoError(err)
}

// Ошибка публикации одного сообщения: строка не помечается, остальная пачка обрабатывается.
func (s *OutboxPublisherTestSuite) TestDrainPublishFailureContinues() {
	failing := outboxMessage(domain.MessageTypeOrderPaymentRequest)
	healthy := outboxMessage(domain.MessageTypeOrderPaymentRequest)

	s.mockSvs.EXPECT().
		UnpublishedBatch(gomock.Any(), defaultBatchSize).
		Return([]domain.OutboxMessage{failing, healthy}, nil)

	s.mockPublisher.EXPECT().
		Publish(gomock.Any(), messages.QueueOrderPayments, failing.ID.String(), failing.Payload).
		Return(errors.New("broker is down"))
	// MarkPublished для failing не ожидается.

	s.mockPublisher.EXPECT().
		Publish(gomock.Any(), messages.QueueOrderPayments, healthy.ID.String(), healthy.Payload).
		Return(nil)
	s.mockSvs.EXPECT().MarkPublished(gomock.Any(), healthy.ID).Return(nil)

	err := s.publisher.drainOnce(context.Background())
	s.NoError(err)
}

// Сообщение без маршрута остается в outbox и не публикуется.
func (s *OutboxPublisherTestSuite) TestDrainNoRoute() {
	unknown := outboxMessage(domain.MessageType("SomethingElse"))

	s.mockSvs.EXPECT().
		UnpublishedBatch(gomock.Any(), defaultBatchSize).
		Return([]domain.OutboxMessage{unknown}, nil)

	err := s.publisher.drainOnce(context.Background())
	s.NoError(err)
}

// Ошибка выборки прерывает цикл целиком.
func (s *OutboxPublisherTestSuite) TestDrainBatchError() {
	s.mockSvs.EXPECT().
		UnpublishedBatch(gomock.Any(), defaultBatchSize).
		Return(nil, errors.New("connection refused"))

	err := s.publisher.drainOnce(context.Background())
	s.Error(err)
}

func (s *OutboxPublisherTestSuite) TestSetters() {
	s.publisher.SetBatchSize(25).SetInterval(time.Second)
	s.Equal(uint(25), s.publisher.batchSize)
	s.Equal(time.Second, s.publisher.interval)
}
