// File: internal/usecase/user_uc.go
package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"rental-marketplace/internal/domain"
	"rental-marketplace/internal/domain/model"
	"rental-marketplace/internal/domain/ports/adapter"
	"rental-marketplace/internal/domain/ports/repository"
)

// Compile-time check
var _ UserUseCase = (*userUC)(nil)

const (
	otpTTL        = 10 * time.Minute
	otpSendLimit  = 3 // per phone per window
	otpSendWindow = time.Hour
)

type UserUseCase interface {
	Register(ctx context.Context, name, email, phone, password string, userType model.UserType) (*model.User, error)
	// Login authenticates by email or phone. Callers mint the session token.
	Login(ctx context.Context, identifier, password string) (*model.User, error)
	Profile(ctx context.Context, userID int64) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*model.User, error)
	// RequestPasswordReset issues an OTP to the account's phone. Always
	// returns nil for unknown identifiers so the endpoint does not leak
	// which accounts exist.
	RequestPasswordReset(ctx context.Context, identifier string) error
	ResetPassword(ctx context.Context, identifier, code, newPassword string) error
}

// ProfileUpdate lists the mutable profile fields; nil pointers are left as-is.
type ProfileUpdate struct {
	Name              *string
	Occupation        *string
	PreferredLocation *string
	Budget            *int64
	CompanyName       *string
}

type userUC struct {
	users    repository.UserRepository
	otp      adapter.OTPStore
	notifier adapter.Notifier
	limiter  adapter.RateLimiter
	log      *zerolog.Logger
}

func NewUserUseCase(
	users repository.UserRepository,
	otp adapter.OTPStore,
	notifier adapter.Notifier,
	limiter adapter.RateLimiter,
	log *zerolog.Logger,
) *userUC {
	l := log.With().Str("component", "user_uc").Logger()
	return &userUC{users: users, otp: otp, notifier: notifier, limiter: limiter, log: &l}
}

func (u *userUC) Register(ctx context.Context, name, email, phone, password string, userType model.UserType) (*model.User, error) {
	if len(password) < 8 {
		return nil, domain.ErrInvalidArgument
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	usr, err := model.NewUser(name, email, phone, string(hash), userType)
	if err != nil {
		return nil, err
	}
	if err := u.users.Save(ctx, repository.NoTX, usr); err != nil {
		return nil, err
	}
	u.log.Info().Int64("user_id", usr.ID).Str("type", string(usr.UserType)).Msg("user registered")
	return usr, nil
}

func (u *userUC) Login(ctx context.Context, identifier, password string) (*model.User, error) {
	usr, err := u.findByIdentifier(ctx, identifier)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	return usr, nil
}

func (u *userUC) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return u.users.FindByID(ctx, repository.NoTX, userID)
}

func (u *userUC) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*model.User, error) {
	usr, err := u.users.FindByID(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return nil, domain.ErrInvalidArgument
		}
		usr.Name = strings.TrimSpace(*update.Name)
	}
	if update.Occupation != nil {
		usr.Occupation = *update.Occupation
	}
	if update.PreferredLocation != nil {
		usr.PreferredLocation = *update.PreferredLocation
	}
	if update.Budget != nil {
		usr.Budget = *update.Budget
	}
	if update.CompanyName != nil {
		usr.CompanyName = *update.CompanyName
	}
	usr.UpdatedAt = time.Now()
	if err := u.users.UpdateProfile(ctx, repository.NoTX, usr); err != nil {
		return nil, err
	}
	return usr, nil
}

func (u *userUC) RequestPasswordReset(ctx context.Context, identifier string) error {
	usr, err := u.findByIdentifier(ctx, identifier)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	ok, err := u.limiter.Allow(ctx, "otp:"+usr.Phone, otpSendLimit, otpSendWindow)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrRateLimited
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}
	if err := u.otp.Save(ctx, usr.Phone, code, otpTTL); err != nil {
		return err
	}
	if err := u.notifier.Notify(ctx, usr.Phone, "Password reset",
		fmt.Sprintf("Your password reset code is %s. It expires in 10 minutes.", code)); err != nil {
		u.log.Error().Err(err).Int64("user_id", usr.ID).Msg("otp delivery failed")
		return err
	}
	u.log.Info().Int64("user_id", usr.ID).Msg("password reset otp issued")
	return nil
}

func (u *userUC) ResetPassword(ctx context.Context, identifier, code, newPassword string) error {
	if len(newPassword) < 8 {
		return domain.ErrInvalidArgument
	}
	usr, err := u.findByIdentifier(ctx, identifier)
	if err != nil {
		return err
	}
	ok, err := u.otp.Verify(ctx, usr.Phone, code)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrOTPMismatch
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := u.users.UpdatePassword(ctx, repository.NoTX, usr.ID, string(hash)); err != nil {
		return err
	}
	u.log.Info().Int64("user_id", usr.ID).Msg("password reset")
	return nil
}

func (u *userUC) findByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, domain.ErrInvalidArgument
	}
	if strings.Contains(identifier, "@") {
		return u.users.FindByEmail(ctx, repository.NoTX, strings.ToLower(identifier))
	}
	return u.users.FindByPhone(ctx, repository.NoTX, identifier)
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
