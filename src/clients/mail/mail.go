package mail

import (
	"context"

	aws_handler "cryptoapp/src/utils/aws"

	"github.com/sirupsen/logrus"
)

type SendMailRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Sender hands a mail over for delivery.
type Sender interface {
	Send(ctx context.Context, req SendMailRequest) error
}

// QueueSender publishes mails to an SQS queue consumed by the mailing worker.
type QueueSender struct {
	queue    *aws_handler.Queue
	queueURL string
}

func NewQueueSender(queue *aws_handler.Queue, queueURL string) *QueueSender {
	return &QueueSender{queue: queue, queueURL: queueURL}
}

func (s *QueueSender) Send(ctx context.Context, req SendMailRequest) error {
	_, err := s.queue.SendJSON(ctx, s.queueURL, req)
	return err
}

// LogSender only logs mails; used when no queue is configured.
type LogSender struct {
	logger *logrus.Logger
}

func NewLogSender(logger *logrus.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, req SendMailRequest) error {
	s.logger.WithFields(logrus.Fields{
		"to":      req.To,
		"subject": req.Subject,
	}).Info("mail queue not configured, mail dropped")
	return nil
}
