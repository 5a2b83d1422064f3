package aws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// OrderConfirmedMessage is the payload published when checkout reconciliation
// flips an order to paid. The metrics worker consumes it.
type OrderConfirmedMessage struct {
	OrderID         string  `json:"order_id"`
	SessionID       string  `json:"session_id"`
	StripeSessionID string  `json:"stripe_session_id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
}

// Publisher wraps an SQS client and a queue URL.
type Publisher struct {
	SQS      SQSAPI
	QueueURL string
}

// NewPublisher returns a Publisher bound to a queue URL.
func NewPublisher(sqsClient SQSAPI, queueURL string) *Publisher {
	return &Publisher{
		SQS:      sqsClient,
		QueueURL: queueURL,
	}
}

// PublishOrderConfirmed sends an order-confirmed event to the queue. Callers
// treat failures as non-fatal: the event stream is advisory, order state in
// the store is authoritative.
func (p *Publisher) PublishOrderConfirmed(ctx context.Context, msg OrderConfirmedMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	input := &sqs.SendMessageInput{
		QueueUrl:    &p.QueueURL,
		MessageBody: awsString(string(body)),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"order_id": {
				DataType:    awsString("String"),
				StringValue: awsString(msg.OrderID),
			},
			"stripe_session_id": {
				DataType:    awsString("String"),
				StringValue: awsString(msg.StripeSessionID),
			},
		},
	}

	if _, err := p.SQS.SendMessage(ctx, input); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// awsString helper
func awsString(s string) *string { return &s }
