package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/internal/auth"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/orders"
	"storefront/internal/payments"
	"storefront/internal/reviews"
	"storefront/internal/testutil"
)

type stubProvider struct {
	status  payments.CheckoutStatus
	webhook *payments.WebhookEvent
}

func (s *stubProvider) CreateCheckoutSession(context.Context, payments.CheckoutSessionRequest) (*payments.CheckoutSession, error) {
	return &payments.CheckoutSession{ID: "cs_test", URL: "https://checkout.example.com/cs_test"}, nil
}

func (s *stubProvider) CheckoutStatus(context.Context, string) (*payments.CheckoutStatus, error) {
	st := s.status
	return &st, nil
}

func (s *stubProvider) VerifyWebhook([]byte, string) (*payments.WebhookEvent, error) {
	if s.webhook == nil {
		return nil, fmt.Errorf("bad signature")
	}
	return s.webhook, nil
}

type testAPI struct {
	router   *gin.Engine
	mock     *testutil.DynamoMock
	products *catalog.Store
	carts    *cart.Store
	provider *stubProvider
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mock := testutil.NewDynamoMock()
	log := zap.NewNop().Sugar()

	users := auth.NewStore(mock, "users")
	tokens := auth.NewTokenService("test-secret", time.Hour)
	authSvc := auth.NewService(users, tokens)

	products := catalog.NewStore(mock, "products")
	carts := cart.NewStore(mock, "cart_items")
	orderStore := orders.NewStore(mock, "orders")
	txStore := payments.NewStore(mock, "payment_transactions")
	provider := &stubProvider{}

	checkoutSvc := checkout.NewService(carts, products, orderStore, txStore, provider, nil, log)
	reviewSvc := reviews.NewService(reviews.NewStore(mock, "reviews"), products)

	r := gin.New()
	RegisterRoutes(r, HandlerConfig{
		Auth:     authSvc,
		Products: products,
		Carts:    carts,
		Checkout: checkoutSvc,
		Orders:   orderStore,
		Reviews:  reviewSvc,
		Log:      log,
	})

	return &testAPI{router: r, mock: mock, products: products, carts: carts, provider: provider}
}

func (a *testAPI) do(t *testing.T, method, path, body, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 && strings.HasPrefix(w.Body.String(), "{") {
		_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	}
	return w, decoded
}

func (a *testAPI) seedProduct(id string, price float64, stock int) {
	a.mock.Seed("products", catalog.Product{
		ID: id, Name: "Product " + id, Price: price, Category: "electronics",
		Stock: stock, CreatedAt: time.Now().UTC(),
	})
}

func TestRegisterAndLogin(t *testing.T) {
	api := newTestAPI(t)

	w, body := api.do(t, http.MethodPost, "/auth/register", `{"email":"a@x.com","full_name":"Alice","password":"pw123456"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@x.com", body["email"])
	assert.Equal(t, true, body["is_active"])
	assert.NotContains(t, body, "hashed_password")

	// duplicate email
	w, body = api.do(t, http.MethodPost, "/auth/register", `{"email":"a@x.com","full_name":"Alice","password":"pw123456"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already registered", body["detail"])

	// wrong password
	w, body = api.do(t, http.MethodPost, "/auth/login", `{"email":"a@x.com","password":"wrongpass"}`, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", body["detail"])

	w, body = api.do(t, http.MethodPost, "/auth/login", `{"email":"a@x.com","password":"pw123456"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bearer", body["token_type"])
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)

	w, body = api.do(t, http.MethodGet, "/auth/me", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@x.com", body["email"])

	w, body = api.do(t, http.MethodGet, "/auth/me", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authenticated", body["detail"])
}

func TestProductEndpoints(t *testing.T) {
	api := newTestAPI(t)
	api.seedProduct("p1", 199.99, 50)

	w, _ := api.do(t, http.MethodGet, "/products", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	w, body := api.do(t, http.MethodGet, "/products/p1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product p1", body["name"])

	w, body = api.do(t, http.MethodGet, "/products/missing", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", body["detail"])

	w, body = api.do(t, http.MethodGet, "/categories", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "categories")
}

func TestCartFlow(t *testing.T) {
	api := newTestAPI(t)
	api.seedProduct("p1", 199.99, 3)

	// not enough stock up front
	w, body := api.do(t, http.MethodPost, "/cart/add?product_id=p1&quantity=5&session_id=s1", "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Not enough stock available", body["detail"])

	w, body = api.do(t, http.MethodPost, "/cart/add?product_id=p1&quantity=2&session_id=s1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Item added to cart", body["message"])

	// re-adding merges quantities and re-checks stock
	w, body = api.do(t, http.MethodPost, "/cart/add?product_id=p1&quantity=2&session_id=s1", "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Not enough stock available", body["detail"])

	w, body = api.do(t, http.MethodGet, "/cart/s1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["items_count"])
	assert.InDelta(t, 399.98, body["total_amount"], 0.001)

	items := body["items"].([]any)
	itemID := items[0].(map[string]any)["id"].(string)

	w, body = api.do(t, http.MethodPut, "/cart/update/"+itemID+"?quantity=1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cart updated", body["message"])

	w, body = api.do(t, http.MethodPut, "/cart/update/missing?quantity=1", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Cart item not found", body["detail"])

	// zero quantity removes the item
	w, body = api.do(t, http.MethodPut, "/cart/update/"+itemID+"?quantity=0", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Item removed from cart", body["message"])

	w, body = api.do(t, http.MethodGet, "/cart/s1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), body["items_count"])
}

func TestCheckoutFlow(t *testing.T) {
	api := newTestAPI(t)
	api.seedProduct("p1", 199.99, 50)
	ctx := context.Background()

	// register and log in
	_, _ = api.do(t, http.MethodPost, "/auth/register", `{"email":"a@x.com","full_name":"Alice","password":"pw123456"}`, "")
	_, loginBody := api.do(t, http.MethodPost, "/auth/login", `{"email":"a@x.com","password":"pw123456"}`, "")
	token := loginBody["access_token"].(string)

	// empty cart rejected
	w, body := api.do(t, http.MethodPost, "/checkout/session?session_id=s1", "", token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cart is empty", body["detail"])

	_, _ = api.do(t, http.MethodPost, "/cart/add?product_id=p1&quantity=2&session_id=s1", "", token)

	w, body = api.do(t, http.MethodPost, "/checkout/session?session_id=s1", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cs_test", body["session_id"])
	assert.NotEmpty(t, body["url"])

	// poll while unpaid: nothing settles
	api.provider.status = payments.CheckoutStatus{Status: "open", PaymentStatus: "unpaid"}
	w, body = api.do(t, http.MethodGet, "/checkout/status/cs_test", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "unpaid", body["payment_status"])

	p, err := api.products.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 50, p.Stock)

	// poll after payment: stock drops, cart clears, order confirms
	api.provider.status = payments.CheckoutStatus{Status: "complete", PaymentStatus: "paid", AmountTotal: 39998, Currency: "usd"}
	w, body = api.do(t, http.MethodGet, "/checkout/status/cs_test", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "paid", body["payment_status"])

	p, err = api.products.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 48, p.Stock)

	items, err := api.carts.BySession(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, items)

	w, _ = api.do(t, http.MethodGet, "/orders", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	var list []orders.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, orders.StatusConfirmed, list[0].Status)
	assert.Equal(t, orders.PaymentStatusPaid, list[0].PaymentStatus)
	assert.InDelta(t, 399.98, list[0].TotalAmount, 0.001)

	// repeated poll leaves stock alone
	_, _ = api.do(t, http.MethodGet, "/checkout/status/cs_test", "", "")
	p, _ = api.products.Get(ctx, "p1")
	assert.Equal(t, 48, p.Stock)
}

func TestStripeWebhook(t *testing.T) {
	api := newTestAPI(t)

	w, body := api.do(t, http.MethodPost, "/webhook/stripe", `{}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing Stripe signature", body["detail"])

	req := httptest.NewRequest(http.MethodPost, "/webhook/stripe", strings.NewReader(`{}`))
	req.Header.Set("Stripe-Signature", "sig")
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req) // stub rejects: no webhook configured
	require.Equal(t, http.StatusBadRequest, rec.Code)

	api.provider.webhook = &payments.WebhookEvent{Type: payments.EventCheckoutCompleted, SessionID: "cs_unknown"}
	req = httptest.NewRequest(http.MethodPost, "/webhook/stripe", strings.NewReader(`{}`))
	req.Header.Set("Stripe-Signature", "sig")
	rec = httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"received": true}`, rec.Body.String())
}

func TestListOrders_RequiresIdentityOrSession(t *testing.T) {
	api := newTestAPI(t)

	w, body := api.do(t, http.MethodGet, "/orders", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication or session_id required", body["detail"])

	w, _ = api.do(t, http.MethodGet, "/orders?session_id=s1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestReviews(t *testing.T) {
	api := newTestAPI(t)
	api.seedProduct("p1", 199.99, 50)

	w, body := api.do(t, http.MethodPost, "/products/p1/reviews?rating=6&comment=wow&session_id=s1", "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Rating must be between 1 and 5", body["detail"])

	w, body = api.do(t, http.MethodPost, "/products/missing/reviews?rating=4&comment=ok&session_id=s1", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", body["detail"])

	w, body = api.do(t, http.MethodPost, "/products/p1/reviews?rating=4&comment=solid&session_id=s1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Review added successfully", body["message"])

	w, _ = api.do(t, http.MethodGet, "/products/p1/reviews", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []reviews.Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, 4, list[0].Rating)
	assert.Equal(t, "solid", list[0].Comment)

	// aggregate rating lands on the product
	_, body = api.do(t, http.MethodGet, "/products/p1", "", "")
	assert.Equal(t, float64(4), body["rating"])
	assert.Equal(t, float64(1), body["reviews_count"])
}
