package aws_handler

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
)

type Queue struct {
	svc sqsiface.SQSAPI
}

func NewQueue(svc sqsiface.SQSAPI) *Queue {
	return &Queue{svc: svc}
}

// SendJSON serializes body and publishes it to the queue at queueURL.
func (q *Queue) SendJSON(ctx context.Context, queueURL string, body interface{}) (string, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	out, err := q.svc.SendMessageWithContext(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(queueURL),
		MessageBody: aws.String(string(data)),
	})
	if err != nil {
		return "", err
	}
	return aws.StringValue(out.MessageId), nil
}
