package models

import "strings"

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Phone          string `json:"phone"`
	GuestSessionID string `json:"guestSessionId,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	if err := required([2]string{"name", r.Name}, [2]string{"email", r.Email}, [2]string{"password", r.Password}); err != nil {
		return err
	}
	if !ValidEmail(r.Email) {
		return invalid("email", "is not a valid address")
	}
	if len(r.Password) < 6 {
		return invalid("password", "must be at least 6 characters")
	}
	if r.Phone != "" && !ValidPhone(r.Phone) {
		return invalid("phone", "must contain 10 to 15 digits")
	}
	return nil
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	GuestSessionID string `json:"guestSessionId,omitempty"`
}

func (r *LoginRequest) Validate() error {
	return required([2]string{"email", r.Email}, [2]string{"password", r.Password})
}

// SendOTPRequest is the body of POST /api/auth/send-otp
type SendOTPRequest struct {
	Phone string `json:"phone"`
}

func (r *SendOTPRequest) Validate() error {
	if err := required([2]string{"phone", r.Phone}); err != nil {
		return err
	}
	if !ValidPhone(r.Phone) {
		return invalid("phone", "must contain 10 to 15 digits")
	}
	return nil
}

// VerifyOTPRequest is the body of POST /api/auth/verify-otp
type VerifyOTPRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

func (r *VerifyOTPRequest) Validate() error {
	return required([2]string{"phone", r.Phone}, [2]string{"otp", r.OTP})
}

// AdminSignupRequest is the body of POST /api/admin/auth/signup
type AdminSignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile"`
}

func (r *AdminSignupRequest) Validate() error {
	if err := required([2]string{"email", r.Email}, [2]string{"password", r.Password}, [2]string{"mobile", r.Mobile}); err != nil {
		return err
	}
	if !ValidEmail(r.Email) {
		return invalid("email", "is not a valid address")
	}
	if len(r.Password) < 6 {
		return invalid("password", "must be at least 6 characters")
	}
	if !ValidPhone(r.Mobile) {
		return invalid("mobile", "must contain 10 to 15 digits")
	}
	return nil
}

// AdminStartRequest is the password step of the admin login
type AdminStartRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *AdminStartRequest) Validate() error {
	return required([2]string{"email", r.Email}, [2]string{"password", r.Password})
}

// AdminVerifyRequest is the OTP step of the admin login
type AdminVerifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (r *AdminVerifyRequest) Validate() error {
	return required([2]string{"email", r.Email}, [2]string{"otp", r.OTP})
}

// CartItemRequest adds a product to a cart. Quantity defaults to 1.
type CartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (r *CartItemRequest) Validate() error {
	if err := required([2]string{"productId", r.ProductID}); err != nil {
		return err
	}
	if r.Quantity < 0 {
		return invalid("quantity", "must be at least 1")
	}
	if r.Quantity == 0 {
		r.Quantity = 1
	}
	return nil
}

// QuantityRequest sets the quantity of an existing cart line
type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (r *QuantityRequest) Validate() error {
	if r.Quantity < 1 {
		return invalid("quantity", "must be at least 1")
	}
	return nil
}

// PlaceOrderRequest is the checkout payload
type PlaceOrderRequest struct {
	Items           []OrderItem     `json:"items"`
	TotalAmount     float64         `json:"totalAmount"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
}

func (r *PlaceOrderRequest) Validate() error {
	if len(r.Items) == 0 {
		return invalid("items", "must contain at least one item")
	}
	for _, item := range r.Items {
		if item.ProductID.IsZero() {
			return invalid("items.productId", "is required")
		}
		if item.Quantity < 1 {
			return invalid("items.quantity", "must be at least 1")
		}
		if item.Price < 0 {
			return invalid("items.price", "must not be negative")
		}
	}
	if r.TotalAmount < 0 {
		return invalid("totalAmount", "must not be negative")
	}
	a := r.ShippingAddress
	if err := required(
		[2]string{"shippingAddress.fullName", a.FullName},
		[2]string{"shippingAddress.phone", a.Phone},
		[2]string{"shippingAddress.addressLine1", a.AddressLine1},
		[2]string{"shippingAddress.city", a.City},
		[2]string{"shippingAddress.state", a.State},
		[2]string{"shippingAddress.pincode", a.Pincode},
	); err != nil {
		return err
	}
	if strings.TrimSpace(r.PaymentMethod) == "" {
		r.PaymentMethod = "cod"
	}
	return nil
}

// AddressRequest creates or replaces an address
type AddressRequest struct {
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	Landmark     string `json:"landmark"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	IsDefault    bool   `json:"isDefault"`
}

func (r *AddressRequest) Validate() error {
	if err := required(
		[2]string{"fullName", r.FullName},
		[2]string{"phone", r.Phone},
		[2]string{"addressLine1", r.AddressLine1},
		[2]string{"city", r.City},
		[2]string{"state", r.State},
		[2]string{"pincode", r.Pincode},
	); err != nil {
		return err
	}
	if !ValidPhone(r.Phone) {
		return invalid("phone", "must contain 10 to 15 digits")
	}
	return nil
}

// ProductInput creates a product or patches one. Nil fields are left untouched.
type ProductInput struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Price         *float64  `json:"price"`
	OriginalPrice *float64  `json:"originalPrice"`
	Category      *string   `json:"category"`
	Fabric        *string   `json:"fabric"`
	Color         *string   `json:"color"`
	Occasion      *string   `json:"occasion"`
	Images        *[]string `json:"images"`
	StockQuantity *int      `json:"stockQuantity"`
	InStock       *bool     `json:"inStock"`
	Rating        *float64  `json:"rating"`
	ReviewCount   *int      `json:"reviewCount"`
	IsNewArrival  *bool     `json:"isNewArrival"`
	IsBestseller  *bool     `json:"isBestseller"`
	IsTrending    *bool     `json:"isTrending"`
}

// ValidateCreate checks the fields a new product must carry.
func (in *ProductInput) ValidateCreate() error {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return invalid("name", "is required")
	}
	if in.Price == nil {
		return invalid("price", "is required")
	}
	if in.Category == nil || strings.TrimSpace(*in.Category) == "" {
		return invalid("category", "is required")
	}
	return in.ValidatePatch()
}

// ValidatePatch checks the ranges of whichever fields are present.
func (in *ProductInput) ValidatePatch() error {
	if in.Price != nil && *in.Price < 0 {
		return invalid("price", "must not be negative")
	}
	if in.OriginalPrice != nil && *in.OriginalPrice < 0 {
		return invalid("originalPrice", "must not be negative")
	}
	if in.StockQuantity != nil && *in.StockQuantity < 0 {
		return invalid("stockQuantity", "must not be negative")
	}
	if in.Rating != nil && (*in.Rating < 0 || *in.Rating > 5) {
		return invalid("rating", "must be between 0 and 5")
	}
	if in.ReviewCount != nil && *in.ReviewCount < 0 {
		return invalid("reviewCount", "must not be negative")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return invalid("name", "must not be empty")
	}
	return nil
}

// Apply copies the present fields onto p and derives inStock when it was not given.
func (in *ProductInput) Apply(p *Product) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.OriginalPrice != nil {
		p.OriginalPrice = *in.OriginalPrice
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Fabric != nil {
		p.Fabric = *in.Fabric
	}
	if in.Color != nil {
		p.Color = *in.Color
	}
	if in.Occasion != nil {
		p.Occasion = *in.Occasion
	}
	if in.Images != nil {
		p.Images = *in.Images
	}
	if in.StockQuantity != nil {
		p.StockQuantity = *in.StockQuantity
	}
	if in.Rating != nil {
		p.Rating = *in.Rating
	}
	if in.ReviewCount != nil {
		p.ReviewCount = *in.ReviewCount
	}
	if in.IsNewArrival != nil {
		p.IsNewArrival = *in.IsNewArrival
	}
	if in.IsBestseller != nil {
		p.IsBestseller = *in.IsBestseller
	}
	if in.IsTrending != nil {
		p.IsTrending = *in.IsTrending
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	} else {
		p.InStock = p.StockQuantity > 0
	}
}

// InventoryUpdate is the body of PATCH /api/admin/inventory/{id}
type InventoryUpdate struct {
	StockQuantity *int  `json:"stockQuantity"`
	InStock       *bool `json:"inStock"`
}

func (r *InventoryUpdate) Validate() error {
	if r.StockQuantity == nil {
		return invalid("stockQuantity", "is required")
	}
	if *r.StockQuantity < 0 {
		return invalid("stockQuantity", "must not be negative")
	}
	return nil
}

// OrderStatusRequest moves an order to another status
type OrderStatusRequest struct {
	Status string `json:"status"`
}

func (r *OrderStatusRequest) Validate() error {
	if !ValidOrderStatus(r.Status) {
		return invalid("status", "is not a known order status")
	}
	return nil
}

// ContactRequest is the body of POST /api/contact
type ContactRequest struct {
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

func (r *ContactRequest) Validate() error {
	if err := required(
		[2]string{"name", r.Name},
		[2]string{"mobile", r.Mobile},
		[2]string{"email", r.Email},
		[2]string{"subject", r.Subject},
		[2]string{"category", r.Category},
	); err != nil {
		return err
	}
	if !ValidEmail(r.Email) {
		return invalid("email", "is not a valid address")
	}
	return nil
}
