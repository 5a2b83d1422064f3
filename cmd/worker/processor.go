package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	lambdaevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"

	"storefront/internal/aws"
)

// Processor turns order-confirmed queue messages into CloudWatch metrics.
type Processor struct {
	cw        aws.CloudWatchAPI
	namespace string
	log       *zap.SugaredLogger
}

// NewProcessor creates a Processor publishing under the given namespace.
func NewProcessor(cw aws.CloudWatchAPI, namespace string, log *zap.SugaredLogger) *Processor {
	return &Processor{cw: cw, namespace: namespace, log: log}
}

// Handle processes a batch of SQS records. A failing record fails the whole
// batch so SQS redelivers it.
func (p *Processor) Handle(ctx context.Context, event lambdaevents.SQSEvent) error {
	for _, record := range event.Records {
		if err := p.processMessage(ctx, record.Body); err != nil {
			return fmt.Errorf("process message %s: %w", record.MessageId, err)
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, body string) error {
	var msg aws.OrderConfirmedMessage
	if err := json.Unmarshal([]byte(body), &msg); err != nil {
		return fmt.Errorf("unmarshal order event: %w", err)
	}

	currency := strings.ToUpper(msg.Currency)
	_, err := p.cw.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: &p.namespace,
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: awsString("OrdersConfirmed"),
				Unit:       cwtypes.StandardUnitCount,
				Value:      awsFloat64(1),
			},
			{
				MetricName: awsString("Revenue"),
				Value:      awsFloat64(msg.Amount),
				Dimensions: []cwtypes.Dimension{
					{Name: awsString("Currency"), Value: awsString(currency)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}

	p.log.Infow("order metrics published",
		"order_id", msg.OrderID,
		"amount", msg.Amount,
		"currency", currency,
	)
	return nil
}

func awsString(s string) *string { return &s }

func awsFloat64(f float64) *float64 { return &f }
