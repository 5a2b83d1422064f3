package validation

import "testing"

func TestRegisterRequest(t *testing.T) {
	v := New()

	valid := RegisterRequest{Email: "a@example.com", FullName: "Alice", Password: "pw123456"}
	if err := v.Struct(valid); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	cases := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing email", RegisterRequest{FullName: "Alice", Password: "pw123456"}},
		{"bad email", RegisterRequest{Email: "not-an-email", FullName: "Alice", Password: "pw123456"}},
		{"short password", RegisterRequest{Email: "a@example.com", FullName: "Alice", Password: "pw"}},
	}
	for _, tc := range cases {
		if err := v.Struct(tc.req); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestAddToCartRequest(t *testing.T) {
	v := New()

	valid := AddToCartRequest{ProductID: "p1", Quantity: 1, SessionID: "s1"}
	if err := v.Struct(valid); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	if err := v.Struct(AddToCartRequest{ProductID: "p1", Quantity: 0, SessionID: "s1"}); err == nil {
		t.Error("expected error for zero quantity")
	}
	if err := v.Struct(AddToCartRequest{Quantity: 1, SessionID: "s1"}); err == nil {
		t.Error("expected error for missing product_id")
	}
}

func TestCheckoutRequest(t *testing.T) {
	v := New()

	if err := v.Struct(CheckoutRequest{SessionID: "s1"}); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
	if err := v.Struct(CheckoutRequest{}); err == nil {
		t.Error("expected error for missing session_id")
	}
}
