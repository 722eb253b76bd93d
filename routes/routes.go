package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"ramani-storefront/controllers"
	"ramani-storefront/metrics"
	"ramani-storefront/middleware"
	"ramani-storefront/utils"
)

// Handlers groups every controller the router dispatches to
type Handlers struct {
	Users     *controllers.UserController
	Products  *controllers.ProductController
	Carts     *controllers.CartController
	Wishlists *controllers.WishlistController
	Guests    *controllers.GuestController
	Orders    *controllers.OrderController
	Addresses *controllers.AddressController
	Contacts  *controllers.ContactController
	Admin     *controllers.AdminController
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, h Handlers, issuer *utils.TokenIssuer, limiter *middleware.RateLimiter, reg *metrics.Registry) {
	router.Use(middleware.Metrics(reg), middleware.Logging)
	throttled := func(f http.HandlerFunc) http.Handler {
		return limiter.Limit(f)
	}

	router.HandleFunc("/health", controllers.Health).Methods("GET")

	// Customer auth
	router.Handle("/api/auth/send-otp", throttled(h.Users.SendOTP)).Methods("POST")
	router.Handle("/api/auth/verify-otp", throttled(h.Users.VerifyOTP)).Methods("POST")
	router.Handle("/api/auth/register", throttled(h.Users.Register)).Methods("POST")
	router.Handle("/api/auth/login", throttled(h.Users.Login)).Methods("POST")

	// Admin auth, registered ahead of the protected admin prefix
	router.Handle("/api/admin/auth/signup", throttled(h.Admin.Signup)).Methods("POST")
	router.Handle("/api/admin/auth/start", throttled(h.Admin.StartLogin)).Methods("POST")
	router.Handle("/api/admin/auth/verify", throttled(h.Admin.VerifyLogin)).Methods("POST")

	// Public catalog
	router.HandleFunc("/api/products", h.Products.GetProducts).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.Products.GetProductByID).Methods("GET")
	router.HandleFunc("/api/filters", h.Products.GetFilters).Methods("GET")
	router.HandleFunc("/api/contact", h.Contacts.Submit).Methods("POST")

	// Guest sessions
	router.HandleFunc("/api/guest/session", h.Guests.CreateSession).Methods("POST")
	router.HandleFunc("/api/guest/{sid}", h.Guests.GetSession).Methods("GET")
	router.HandleFunc("/api/guest/{sid}/cart", h.Guests.AddToCart).Methods("POST")
	router.HandleFunc("/api/guest/{sid}/cart/{productId}", h.Guests.UpdateCartItem).Methods("PUT")
	router.HandleFunc("/api/guest/{sid}/cart/{productId}", h.Guests.RemoveCartItem).Methods("DELETE")
	router.HandleFunc("/api/guest/{sid}/wishlist/{productId}", h.Guests.AddToWishlist).Methods("POST")
	router.HandleFunc("/api/guest/{sid}/wishlist/{productId}", h.Guests.RemoveFromWishlist).Methods("DELETE")

	// Admin routes
	admin := router.PathPrefix("/api/admin").Subrouter()
	admin.Use(middleware.Authenticate(issuer, utils.RoleAdmin))
	admin.HandleFunc("/analytics", h.Admin.GetAnalytics).Methods("GET")
	admin.HandleFunc("/customers", h.Admin.GetCustomers).Methods("GET")
	admin.HandleFunc("/contacts", h.Admin.GetContacts).Methods("GET")
	admin.HandleFunc("/metrics", h.Admin.GetMetrics).Methods("GET")

	admin.HandleFunc("/orders", h.Admin.GetOrders).Methods("GET")
	admin.HandleFunc("/orders/export", h.Admin.ExportOrders).Methods("GET")
	admin.HandleFunc("/orders/{id}/status", h.Admin.UpdateOrderStatus).Methods("PATCH")

	admin.HandleFunc("/products", h.Products.CreateProduct).Methods("POST")
	admin.HandleFunc("/products/import", h.Products.ImportProducts).Methods("POST")
	admin.HandleFunc("/products/export", h.Products.ExportProducts).Methods("GET")
	admin.HandleFunc("/products/{id}", h.Products.UpdateProduct).Methods("PATCH")
	admin.HandleFunc("/products/{id}", h.Products.DeleteProduct).Methods("DELETE")
	admin.HandleFunc("/inventory", h.Products.GetInventory).Methods("GET")
	admin.HandleFunc("/inventory/{id}", h.Products.UpdateStock).Methods("PATCH")

	// Customer routes
	customer := router.PathPrefix("/api").Subrouter()
	customer.Use(middleware.Authenticate(issuer, utils.RoleCustomer))
	customer.HandleFunc("/auth/me", h.Users.GetProfile).Methods("GET")
	customer.HandleFunc("/guest/{sid}/merge", h.Guests.Merge).Methods("POST")

	customer.HandleFunc("/cart", h.Carts.GetCart).Methods("GET")
	customer.HandleFunc("/cart", h.Carts.AddToCart).Methods("POST")
	customer.HandleFunc("/cart", h.Carts.ClearCart).Methods("DELETE")
	customer.HandleFunc("/cart/{productId}", h.Carts.UpdateQuantity).Methods("PUT")
	customer.HandleFunc("/cart/{productId}", h.Carts.RemoveFromCart).Methods("DELETE")

	customer.HandleFunc("/wishlist", h.Wishlists.GetWishlist).Methods("GET")
	customer.HandleFunc("/wishlist/{productId}", h.Wishlists.AddToWishlist).Methods("POST")
	customer.HandleFunc("/wishlist/{productId}", h.Wishlists.RemoveFromWishlist).Methods("DELETE")

	customer.HandleFunc("/orders", h.Orders.GetOrders).Methods("GET")
	customer.HandleFunc("/orders", h.Orders.CreateOrder).Methods("POST")
	customer.HandleFunc("/orders/{id}", h.Orders.GetOrder).Methods("GET")

	customer.HandleFunc("/addresses", h.Addresses.GetAddresses).Methods("GET")
	customer.HandleFunc("/addresses", h.Addresses.CreateAddress).Methods("POST")
	customer.HandleFunc("/addresses/{id}", h.Addresses.UpdateAddress).Methods("PUT")
	customer.HandleFunc("/addresses/{id}", h.Addresses.DeleteAddress).Methods("DELETE")
}
