package mail_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"cryptoapp/src/clients/mail"
	aws_handler "cryptoapp/src/utils/aws"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSQS struct {
	sqsiface.SQSAPI
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQS) SendMessageWithContext(_ aws.Context, input *sqs.SendMessageInput, _ ...request.Option) (*sqs.SendMessageOutput, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-1")}, nil
}

func TestQueueSender(t *testing.T) {
	t.Run("should publish the mail as JSON to the configured queue", func(t *testing.T) {
		svc := &fakeSQS{}
		sender := mail.NewQueueSender(aws_handler.NewQueue(svc), "https://sqs.local/mails")

		err := sender.Send(context.Background(), mail.SendMailRequest{
			To:      "ada@example.com",
			From:    "no-reply@cryptoapp.local",
			Subject: "Password Reset Code",
			Text:    "<h2>ABCDEF</h2>",
		})
		require.NoError(t, err)

		require.NotNil(t, svc.input)
		assert.Equal(t, "https://sqs.local/mails", aws.StringValue(svc.input.QueueUrl))
		var body map[string]string
		require.NoError(t, json.Unmarshal([]byte(aws.StringValue(svc.input.MessageBody)), &body))
		assert.Equal(t, map[string]string{
			"to":      "ada@example.com",
			"from":    "no-reply@cryptoapp.local",
			"subject": "Password Reset Code",
			"text":    "<h2>ABCDEF</h2>",
		}, body)
	})

	t.Run("should return queue failures", func(t *testing.T) {
		svc := &fakeSQS{err: errors.New("access denied")}
		sender := mail.NewQueueSender(aws_handler.NewQueue(svc), "https://sqs.local/mails")

		assert.Error(t, sender.Send(context.Background(), mail.SendMailRequest{To: "ada@example.com"}))
	})
}

func TestLogSender(t *testing.T) {
	logger, hook := test.NewNullLogger()
	sender := mail.NewLogSender(logger)

	require.NoError(t, sender.Send(context.Background(), mail.SendMailRequest{To: "ada@example.com", Subject: "Hi"}))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "ada@example.com", entry.Data["to"])
}
