package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ramani-storefront/models"
	"ramani-storefront/store"
)

// ProductStore is the product persistence the services need.
type ProductStore interface {
	Find(ctx context.Context, filter bson.M, page store.Page) ([]models.Product, error)
	Aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]models.Product, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	GetMany(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	Distinct(ctx context.Context, field string) ([]string, error)
	Insert(ctx context.Context, p *models.Product) error
	InsertMany(ctx context.Context, products []models.Product) error
	Replace(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type CartStore interface {
	Get(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Clear(ctx context.Context, userID primitive.ObjectID) error
}

type WishlistStore interface {
	Get(ctx context.Context, userID primitive.ObjectID) (*models.Wishlist, error)
	AddProduct(ctx context.Context, userID, productID primitive.ObjectID) error
	RemoveProduct(ctx context.Context, userID, productID primitive.ObjectID) error
}

type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type OTPStore interface {
	Upsert(ctx context.Context, otp models.OTP) error
	Get(ctx context.Context, phone string) (*models.OTP, error)
	MarkVerified(ctx context.Context, phone string) error
	Delete(ctx context.Context, phone string) error
}

type AdminStore interface {
	Insert(ctx context.Context, a *models.AdminUser) error
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	SetOTP(ctx context.Context, id primitive.ObjectID, code string, expiresAt time.Time) error
	ClearOTP(ctx context.Context, id primitive.ObjectID) error
}

type OrderStore interface {
	Insert(ctx context.Context, o *models.Order) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	GetForUser(ctx context.Context, id, userID primitive.ObjectID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error)
}

type AddressStore interface {
	List(ctx context.Context, userID primitive.ObjectID) ([]models.Address, error)
	Get(ctx context.Context, id, userID primitive.ObjectID) (*models.Address, error)
	Count(ctx context.Context, userID primitive.ObjectID) (int64, error)
	Insert(ctx context.Context, a *models.Address) error
	Replace(ctx context.Context, a *models.Address) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
	ClearDefault(ctx context.Context, userID primitive.ObjectID) error
}

type ContactStore interface {
	Insert(ctx context.Context, c *models.ContactSubmission) error
	List(ctx context.Context) ([]models.ContactSubmission, error)
}

type AnalyticsStore interface {
	CountProducts(ctx context.Context, filter bson.M) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
	RecentOrders(ctx context.Context, n int64) ([]models.Order, error)
	MonthlyBuckets(ctx context.Context, since time.Time) ([]models.MonthBucket, error)
	WeeklyBuckets(ctx context.Context, since time.Time) ([]models.WeekBucket, error)
	CategoryCounts(ctx context.Context) ([]models.CategorySlice, error)
}

// GuestSessionStore keeps anonymous cart and wishlist state between requests.
// Get returns ErrSessionNotFound for unknown or expired sessions.
type GuestSessionStore interface {
	Get(ctx context.Context, id string) (*models.GuestSession, error)
	Set(ctx context.Context, session *models.GuestSession) error
	Clear(ctx context.Context, id string) error
}
