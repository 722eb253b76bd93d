package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a storefront customer
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	PasswordHash  string             `bson:"password" json:"-"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	PhoneVerified bool               `bson:"phoneVerified" json:"phoneVerified"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// UserSummary is the user shape returned next to a session token
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID.Hex(), Name: u.Name, Email: u.Email}
}

// Address represents a user's delivery address
type Address struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	FullName     string             `bson:"fullName" json:"fullName"`
	Phone        string             `bson:"phone" json:"phone"`
	AddressLine1 string             `bson:"addressLine1" json:"addressLine1"`
	AddressLine2 string             `bson:"addressLine2,omitempty" json:"addressLine2,omitempty"`
	Landmark     string             `bson:"landmark,omitempty" json:"landmark,omitempty"`
	City         string             `bson:"city" json:"city"`
	State        string             `bson:"state" json:"state"`
	Pincode      string             `bson:"pincode" json:"pincode"`
	IsDefault    bool               `bson:"isDefault" json:"isDefault"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OTP is a phone verification code issued to a customer
type OTP struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Phone     string             `bson:"phone" json:"phone"`
	Code      string             `bson:"otp" json:"-"`
	Verified  bool               `bson:"verified" json:"verified"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Expired reports whether the code can no longer be used at now.
func (o OTP) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// AdminUser is a back-office operator
type AdminUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	Mobile       string             `bson:"mobile" json:"mobile"`
	OTP          string             `bson:"otp,omitempty" json:"-"`
	OTPExpiresAt *time.Time         `bson:"otpExpiresAt,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// ContactSubmission is a message left through the contact form
type ContactSubmission struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Mobile    string             `bson:"mobile" json:"mobile"`
	Email     string             `bson:"email" json:"email"`
	Subject   string             `bson:"subject" json:"subject"`
	Category  string             `bson:"category" json:"category"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
