package services

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"ramani-storefront/models"
	"ramani-storefront/store"
	"ramani-storefront/utils"
)

// AuthResult is returned by register and login
type AuthResult struct {
	Token string              `json:"token"`
	User  models.UserSummary  `json:"user"`
	Merge *models.MergeResult `json:"merge,omitempty"`
}

// AccountOptions tunes customer registration
type AccountOptions struct {
	OTPTTL          time.Duration
	RequirePhoneOTP bool
}

// AccountService handles customer registration, login and phone verification
type AccountService struct {
	users  UserStore
	otps   OTPStore
	issuer *utils.TokenIssuer
	otpGen OtpGenerator
	sender OtpSender
	guests *GuestService
	opts   AccountOptions
	now    func() time.Time
}

func NewAccountService(users UserStore, otps OTPStore, issuer *utils.TokenIssuer, gen OtpGenerator, sender OtpSender, guests *GuestService, opts AccountOptions) *AccountService {
	return &AccountService{
		users:  users,
		otps:   otps,
		issuer: issuer,
		otpGen: gen,
		sender: sender,
		guests: guests,
		opts:   opts,
		now:    time.Now,
	}
}

// SendOTP issues a new code for phone, replacing any pending one.
func (s *AccountService) SendOTP(ctx context.Context, phone string) (string, error) {
	code, err := s.otpGen.Generate()
	if err != nil {
		return "", err
	}
	now := s.now()
	otp := models.OTP{
		Phone:     phone,
		Code:      code,
		ExpiresAt: now.Add(s.opts.OTPTTL),
		CreatedAt: now,
	}
	if err := s.otps.Upsert(ctx, otp); err != nil {
		return "", err
	}
	if err := s.sender.Send(phone, code); err != nil {
		return "", errors.Wrap(err, "send otp")
	}
	return code, nil
}

// VerifyOTP checks code against the pending record for phone. An expired
// record is deleted and rejected even when the code matches.
func (s *AccountService) VerifyOTP(ctx context.Context, phone, code string) error {
	otp, err := s.otps.Get(ctx, phone)
	if errors.Is(err, store.ErrNotFound) {
		return ErrOTPInvalid
	}
	if err != nil {
		return err
	}
	if otp.Expired(s.now()) {
		if err := s.otps.Delete(ctx, phone); err != nil {
			zap.L().Warn("expired otp not deleted", zap.Error(err))
		}
		return ErrOTPExpired
	}
	if otp.Code != code {
		return ErrOTPInvalid
	}
	return s.otps.MarkVerified(ctx, phone)
}

// Register creates a customer account and signs them in.
func (s *AccountService) Register(ctx context.Context, req models.RegisterRequest) (*AuthResult, error) {
	email := models.NormalizeEmail(req.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	verified := false
	if req.Phone != "" {
		ok, err := s.phoneVerified(ctx, req.Phone)
		if err != nil {
			return nil, err
		}
		if !ok && s.opts.RequirePhoneOTP {
			return nil, ErrPhoneNotVerified
		}
		verified = ok
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:          strings.TrimSpace(req.Name),
		Email:         email,
		PasswordHash:  string(hash),
		Phone:         req.Phone,
		PhoneVerified: verified,
		CreatedAt:     s.now(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if verified {
		if err := s.otps.Delete(ctx, req.Phone); err != nil {
			zap.L().Warn("verified otp not consumed", zap.Error(err))
		}
	}
	return s.signIn(ctx, user, req.GuestSessionID)
}

// Login checks credentials. Unknown email and wrong password look the same.
func (s *AccountService) Login(ctx context.Context, req models.LoginRequest) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, models.NormalizeEmail(req.Email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.signIn(ctx, user, req.GuestSessionID)
}

func (s *AccountService) Me(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// Customers lists every account for the back office.
func (s *AccountService) Customers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *AccountService) phoneVerified(ctx context.Context, phone string) (bool, error) {
	otp, err := s.otps.Get(ctx, phone)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return otp.Verified && !otp.Expired(s.now()), nil
}

func (s *AccountService) signIn(ctx context.Context, user *models.User, guestSessionID string) (*AuthResult, error) {
	token, err := s.issuer.Issue(utils.Principal{
		ID:    user.ID.Hex(),
		Email: user.Email,
		Role:  utils.RoleCustomer,
	})
	if err != nil {
		return nil, err
	}
	result := &AuthResult{Token: token, User: user.Summary()}

	if guestSessionID != "" && s.guests != nil {
		merge, err := s.guests.Merge(ctx, guestSessionID, user.ID)
		if err != nil {
			zap.L().Warn("guest merge skipped", zap.String("session", guestSessionID), zap.Error(err))
		}
		result.Merge = merge
	}
	return result, nil
}
