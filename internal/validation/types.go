package validation

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AddToCartRequest carries the query parameters of POST /cart/add.
type AddToCartRequest struct {
	ProductID string `form:"product_id" validate:"required"`
	Quantity  int    `form:"quantity" validate:"required,min=1"`
	SessionID string `form:"session_id" validate:"required"`
}

// CheckoutRequest carries the query parameters of POST /checkout/session.
type CheckoutRequest struct {
	SessionID string `form:"session_id" validate:"required"`
}

// ReviewRequest carries the query parameters of POST /products/:id/reviews.
// Rating range is checked by the reviews service so out-of-range values get
// the dedicated error message.
type ReviewRequest struct {
	Rating    int    `form:"rating"`
	Comment   string `form:"comment"`
	SessionID string `form:"session_id" validate:"required"`
}
