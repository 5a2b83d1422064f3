package main

import (
	"context"
	"log"
	"os"

	lambdaevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"storefront/internal/aws"
	"storefront/internal/config"
	"storefront/internal/logger"
)

func main() {
	cfg := config.Load()

	logg, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logg.Sync()

	ctx := context.Background()
	clients, err := aws.NewAWSClients(ctx)
	if err != nil {
		logg.Fatalw("init aws clients", "error", err)
	}

	p := NewProcessor(clients.CloudWatch, cfg.Metrics.Namespace, logg)

	if cfg.RunLocal {
		// feed a single synthetic record for local smoke testing
		body := os.Getenv("LOCAL_SQS_BODY")
		if body == "" {
			logg.Fatalw("LOCAL_SQS_BODY required when RUN_LOCAL is set")
		}
		event := lambdaevents.SQSEvent{
			Records: []lambdaevents.SQSMessage{{MessageId: "local", Body: body}},
		}
		if err := p.Handle(ctx, event); err != nil {
			logg.Fatalw("process local event", "error", err)
		}
		logg.Infow("local event processed")
		return
	}

	lambda.Start(p.Handle)
}
