package services

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"ramani-storefront/config"
	"ramani-storefront/models"
	"ramani-storefront/store"
	"ramani-storefront/utils"
)

// AdminLoginChallenge is returned once the password step succeeds
type AdminLoginChallenge struct {
	Message      string `json:"message"`
	MaskedMobile string `json:"maskedMobile"`
}

// AdminSession is returned once the OTP step succeeds
type AdminSession struct {
	Token string           `json:"token"`
	Admin models.AdminUser `json:"admin"`
}

// AdminAuthService runs the two-step admin login: password, then a
// short-lived OTP stored on the admin record.
type AdminAuthService struct {
	admins AdminStore
	issuer *utils.TokenIssuer
	otpGen OtpGenerator
	sender OtpSender
	otpTTL time.Duration
	now    func() time.Time
}

func NewAdminAuthService(admins AdminStore, issuer *utils.TokenIssuer, gen OtpGenerator, sender OtpSender, otpTTL time.Duration) *AdminAuthService {
	return &AdminAuthService{
		admins: admins,
		issuer: issuer,
		otpGen: gen,
		sender: sender,
		otpTTL: otpTTL,
		now:    time.Now,
	}
}

func (s *AdminAuthService) Signup(ctx context.Context, req models.AdminSignupRequest) (*models.AdminUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := &models.AdminUser{
		Email:        models.NormalizeEmail(req.Email),
		PasswordHash: string(hash),
		Mobile:       req.Mobile,
		CreatedAt:    s.now(),
	}
	if err := s.admins.Insert(ctx, admin); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return admin, nil
}

// Start checks the password and issues an OTP bound to the admin record.
func (s *AdminAuthService) Start(ctx context.Context, req models.AdminStartRequest) (*AdminLoginChallenge, error) {
	admin, err := s.admins.GetByEmail(ctx, models.NormalizeEmail(req.Email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	code, err := s.otpGen.Generate()
	if err != nil {
		return nil, err
	}
	if err := s.admins.SetOTP(ctx, admin.ID, code, s.now().Add(s.otpTTL)); err != nil {
		return nil, err
	}
	if err := s.sender.Send(admin.Mobile, code); err != nil {
		return nil, errors.Wrap(err, "send otp")
	}
	return &AdminLoginChallenge{
		Message:      "OTP sent to registered mobile number",
		MaskedMobile: MaskMobile(admin.Mobile),
	}, nil
}

// Verify checks the OTP, clears it and issues an admin session token.
// Every failure reports the same error.
func (s *AdminAuthService) Verify(ctx context.Context, req models.AdminVerifyRequest) (*AdminSession, error) {
	admin, err := s.admins.GetByEmail(ctx, models.NormalizeEmail(req.Email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrOTPInvalid
	}
	if err != nil {
		return nil, err
	}
	if admin.OTP == "" || admin.OTPExpiresAt == nil {
		return nil, ErrOTPInvalid
	}
	if !s.now().Before(*admin.OTPExpiresAt) {
		if err := s.admins.ClearOTP(ctx, admin.ID); err != nil {
			zap.L().Warn("expired admin otp not cleared", zap.Error(err))
		}
		return nil, ErrOTPInvalid
	}
	if subtle.ConstantTimeCompare([]byte(admin.OTP), []byte(req.OTP)) != 1 {
		return nil, ErrOTPInvalid
	}
	if err := s.admins.ClearOTP(ctx, admin.ID); err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(utils.Principal{
		ID:    admin.ID.Hex(),
		Email: admin.Email,
		Role:  utils.RoleAdmin,
	})
	if err != nil {
		return nil, err
	}
	admin.OTP, admin.OTPExpiresAt = "", nil
	return &AdminSession{Token: token, Admin: *admin}, nil
}

// EnsureSeedAdmin creates the configured admin when it does not exist yet.
func (s *AdminAuthService) EnsureSeedAdmin(ctx context.Context, seed config.AdminSeed) error {
	if seed.Email == "" || seed.Password == "" {
		return nil
	}
	_, err := s.admins.GetByEmail(ctx, models.NormalizeEmail(seed.Email))
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	_, err = s.Signup(ctx, models.AdminSignupRequest{Email: seed.Email, Password: seed.Password, Mobile: seed.Mobile})
	if err == nil {
		zap.S().Infof("Seed admin %s created", seed.Email)
	}
	return err
}
