package services

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"go.uber.org/zap"
)

// OtpGenerator produces one-time codes.
type OtpGenerator interface {
	Generate() (string, error)
}

// FixedOtpGenerator always returns the same code. Used until a real SMS
// channel is wired in.
type FixedOtpGenerator struct {
	Code string
}

func (g FixedOtpGenerator) Generate() (string, error) {
	return g.Code, nil
}

// RandomOtpGenerator returns uniformly random numeric codes.
type RandomOtpGenerator struct {
	Digits int
}

func (g RandomOtpGenerator) Generate() (string, error) {
	digits := g.Digits
	if digits <= 0 {
		digits = 6
	}
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}

// NewOtpGenerator picks the generator for a configured mode.
func NewOtpGenerator(mode, fixedCode string) OtpGenerator {
	if mode == "random" {
		return RandomOtpGenerator{Digits: 6}
	}
	return FixedOtpGenerator{Code: fixedCode}
}

// OtpSender delivers a code to a phone number.
type OtpSender interface {
	Send(phone, code string) error
}

// LogOtpSender writes codes to the log instead of sending them.
type LogOtpSender struct{}

func (LogOtpSender) Send(phone, code string) error {
	zap.L().Info("otp issued", zap.String("phone", MaskMobile(phone)), zap.String("otp", code))
	return nil
}

// MaskMobile hides every digit but the last four.
func MaskMobile(mobile string) string {
	runes := []rune(mobile)
	for i := 0; i < len(runes)-4; i++ {
		if runes[i] >= '0' && runes[i] <= '9' {
			runes[i] = '*'
		}
	}
	return string(runes)
}
