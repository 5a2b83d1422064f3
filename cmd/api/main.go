package main

import (
	"context"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
	"storefront/internal/aws"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/logger"
	"storefront/internal/orders"
	"storefront/internal/payments"
	"storefront/internal/reviews"
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

	users := auth.NewStore(clients.DynamoDB, cfg.Tables.Users)
	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.TokenTTL)
	authSvc := auth.NewService(users, tokens)

	products := catalog.NewStore(clients.DynamoDB, cfg.Tables.Products)
	carts := cart.NewStore(clients.DynamoDB, cfg.Tables.CartItems)
	orderStore := orders.NewStore(clients.DynamoDB, cfg.Tables.Orders)
	txStore := payments.NewStore(clients.DynamoDB, cfg.Tables.PaymentTransactions)
	provider := payments.NewStripeProvider(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret)

	var publisher checkout.EventPublisher
	if cfg.Events.OrderQueueURL != "" {
		publisher = aws.NewPublisher(clients.SQS, cfg.Events.OrderQueueURL)
	} else {
		logg.Infow("order events queue not configured, publishing disabled")
	}

	checkoutSvc := checkout.NewService(carts, products, orderStore, txStore, provider, publisher, logg)
	reviewSvc := reviews.NewService(reviews.NewStore(clients.DynamoDB, cfg.Tables.Reviews), products)

	seeded, err := products.SeedIfEmpty(ctx)
	if err != nil {
		logg.Fatalw("seed products", "error", err)
	}
	if seeded {
		logg.Infow("sample catalog seeded")
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterRoutes(r, handlers.HandlerConfig{
		Auth:          authSvc,
		Products:      products,
		Carts:         carts,
		Checkout:      checkoutSvc,
		Orders:        orderStore,
		Reviews:       reviewSvc,
		PublicBaseURL: cfg.PublicBaseURL,
		Log:           logg,
	})

	if cfg.RunLocal {
		logg.Infow("starting http server", "addr", cfg.Addr)
		if err := r.Run(cfg.Addr); err != nil {
			logg.Fatalw("server stopped", "error", err)
		}
		return
	}

	adapter := ginadapter.New(r)
	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
