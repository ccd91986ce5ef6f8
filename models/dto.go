package models

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	OTP      string `json:"otp" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type AddCartItemRequest struct {
	Item     CartLine `json:"item" binding:"required"`
	Quantity *int     `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type ReorderRequest struct {
	OrderID int `json:"orderId" binding:"required"`
}

// PlaceOrderRequest mirrors the wire shape the storefront sends. Items and
// totalAmount are accepted for compatibility but the server-side cart is
// authoritative.
type PlaceOrderRequest struct {
	UserID      int        `json:"userId"`
	Items       []CartLine `json:"items"`
	TotalAmount float64    `json:"totalAmount"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateMenuItemRequest struct {
	Name     string  `json:"name" form:"name" binding:"required"`
	Category string  `json:"category" form:"category" binding:"required"`
	Price    float64 `json:"price" form:"price" binding:"required"`
	Rating   float64 `json:"rating" form:"rating"`
	Discount string  `json:"discount" form:"discount"`
	IsActive bool    `json:"is_active" form:"is_active"`
}

type UpdateMenuItemRequest struct {
	Name     string  `json:"name" form:"name"`
	Category string  `json:"category" form:"category"`
	Price    float64 `json:"price" form:"price"`
	Rating   float64 `json:"rating" form:"rating"`
	Discount string  `json:"discount" form:"discount"`
	IsActive *bool   `json:"is_active" form:"is_active"`
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
