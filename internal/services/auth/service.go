// Package auth covers account lifecycle: registration with OTP verification,
// login with JWT issuance, and password recovery. OTP generation and expiry
// live in Redis; JWT mechanics live in utils.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"paygo/internal/models"
	"paygo/internal/repositories"
	"paygo/internal/repositories/cache"
	"paygo/internal/utils"
	"paygo/internal/validation"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	otpTTL         = 10 * time.Minute
	purposeVerify  = "verify"
	purposeReset   = "reset"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
	ErrNotVerified        = errors.New("account not verified")
	ErrSuspended          = errors.New("account suspended")
	ErrWeakPassword       = errors.New("password must be at least 8 characters and contain a special character")
)

// Mailer is the subset of outbound mail the auth flows use. Sends are
// fire-and-forget from the caller's perspective.
type Mailer interface {
	SendOTP(to, otp string) error
	SendWelcome(to, name string) error
	SendPasswordChanged(to string) error
}

type RegisterRequest struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	VerifyOTP(ctx context.Context, email, otp string) (*models.User, error)
	Login(email, password string) (*models.User, string, string, error)
	RefreshTokens(refreshToken string) (string, string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
	ChangePassword(userID uint, oldPassword, newPassword string) error

	// Used by the auth middleware.
	GetUserByID(id uint) (*models.User, error)
	GetUserTokenVersion(id uint) (int, error)
}

type service struct {
	users  repositories.UserRepository
	cache  *cache.CacheService
	mailer Mailer
}

func NewService(users repositories.UserRepository, cacheService *cache.CacheService, mailer Mailer) Service {
	return &service{users: users, cache: cacheService, mailer: mailer}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if !validation.IsEmail(req.Email) {
		return nil, errors.New("invalid email address")
	}
	if len(req.Password) < 8 || !validation.HasSpecialChar(req.Password) {
		return nil, ErrWeakPassword
	}

	if _, err := s.users.GetByEmail(req.Email); err == nil {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hash),
		Role:      "user",
	}
	// User and wallet are created together; no account exists without one.
	if err := s.users.CreateWithWallet(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateUser) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	otp := utils.GenerateOTP(6)
	if err := s.cache.StoreOTP(ctx, purposeVerify, user.Email, otp, otpTTL); err != nil {
		return nil, err
	}

	go func() {
		if err := s.mailer.SendOTP(user.Email, otp); err != nil {
			logrus.WithError(err).WithField("email", user.Email).Warn("otp email failed")
		}
		if err := s.mailer.SendWelcome(user.Email, user.FullName()); err != nil {
			logrus.WithError(err).WithField("email", user.Email).Warn("welcome email failed")
		}
	}()

	return user, nil
}

func (s *service) VerifyOTP(ctx context.Context, email, otp string) (*models.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, ErrInvalidOTP
	}

	if err := s.consumeOTP(ctx, purposeVerify, user.Email, otp); err != nil {
		return nil, err
	}

	user.IsVerified = true
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Login(email, password string) (*models.User, string, string, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", "", ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, "", "", ErrNotVerified
	}
	if user.IsSuspended {
		return nil, "", "", ErrSuspended
	}

	access, refresh, err := utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
	})
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *service) RefreshTokens(refreshToken string) (string, string, error) {
	_, claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		return "", "", errors.New("user not found")
	}
	if user.TokenVersion != claims.TokenVersion {
		return "", "", errors.New("token version mismatch")
	}
	if user.IsSuspended {
		return "", "", ErrSuspended
	}

	return utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
	})
}

func (s *service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		// Do not reveal whether the email exists.
		return nil
	}

	otp := utils.GenerateOTP(6)
	if err := s.cache.StoreOTP(ctx, purposeReset, user.Email, otp, otpTTL); err != nil {
		return err
	}

	go func() {
		if err := s.mailer.SendOTP(user.Email, otp); err != nil {
			logrus.WithError(err).WithField("email", user.Email).Warn("reset otp email failed")
		}
	}()
	return nil
}

func (s *service) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return ErrInvalidOTP
	}

	if len(newPassword) < 8 || !validation.HasSpecialChar(newPassword) {
		return ErrWeakPassword
	}

	if err := s.consumeOTP(ctx, purposeReset, user.Email, otp); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hash)
	user.TokenVersion++ // invalidate existing tokens
	if err := s.users.Update(user); err != nil {
		return err
	}

	go func() {
		if err := s.mailer.SendPasswordChanged(user.Email); err != nil {
			logrus.WithError(err).WithField("email", user.Email).Warn("password changed email failed")
		}
	}()
	return nil
}

func (s *service) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}
	if len(newPassword) < 8 || !validation.HasSpecialChar(newPassword) {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hash)
	user.TokenVersion++
	return s.users.Update(user)
}

func (s *service) GetUserByID(id uint) (*models.User, error) {
	return s.users.GetByID(id)
}

func (s *service) GetUserTokenVersion(id uint) (int, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return 0, err
	}
	return user.TokenVersion, nil
}

func (s *service) consumeOTP(ctx context.Context, purpose, email, otp string) error {
	stored, found, err := s.cache.GetOTP(ctx, purpose, email)
	if err != nil {
		return err
	}
	if !found || subtle.ConstantTimeCompare([]byte(stored), []byte(otp)) != 1 {
		return ErrInvalidOTP
	}
	return s.cache.DeleteOTP(ctx, purpose, email)
}
