package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"billing-habit/internal/data/repository"
	"billing-habit/internal/dto/request"
	"billing-habit/internal/dto/response"
	"billing-habit/pkg/auth"
	"billing-habit/pkg/mailer"
	"billing-habit/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	SendOTP(ctx context.Context, req *request.SendOTPRequest) error
	VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) (*response.VerifyOTPResponse, error)
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	accounts  repository.AccountRepository
	tokens    *auth.TokenManager
	blacklist auth.TokenBlacklist
	sender    mailer.OTPSender
	config    *utils.Config
	log       *zap.Logger
}

func NewAuthService(
	accounts repository.AccountRepository,
	tokens *auth.TokenManager,
	blacklist auth.TokenBlacklist,
	sender mailer.OTPSender,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		accounts:  accounts,
		tokens:    tokens,
		blacklist: blacklist,
		sender:    sender,
		config:    config,
		log:       log,
	}
}

// SendOTP issues a fresh code for the number, creating the account on first contact.
func (s *authService) SendOTP(ctx context.Context, req *request.SendOTPRequest) error {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Send OTP validation failed", zap.Any("errors", errs))
		return validationError(errs)
	}

	// 2. Generate code
	code, err := utils.GenerateOTP(s.config.OTP.Length)
	if err != nil {
		s.log.Error("Failed to generate OTP", zap.Error(err))
		return fmt.Errorf("generate otp: %w", err)
	}
	expiresAt := time.Now().Add(s.config.OTP.Expiry())

	// 3. Store it on the account
	account, err := s.accounts.UpsertOTP(ctx, req.Number, code, expiresAt, s.config.Billing.DefaultCredit)
	if err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	// 4. Deliver
	if err := s.sender.SendOTP(ctx, req.Number, code, expiresAt); err != nil {
		return fmt.Errorf("deliver otp: %w", err)
	}

	s.log.Info("OTP issued", zap.String("account_id", account.ID.String()), zap.String("number", req.Number))
	return nil
}

// VerifyOTP consumes a matching code and returns a signed session token.
// A wrong or expired code leaves the stored code in place.
func (s *authService) VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) (*response.VerifyOTPResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Verify OTP validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	// 2. Find account
	account, err := s.accounts.FindByNumber(ctx, req.Number)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: user not found", utils.ErrNotFound)
	}

	// 3. Check and consume the code
	now := time.Now()
	if !account.OTPMatches(req.OTP, now) {
		s.log.Warn("OTP mismatch or expired", zap.String("account_id", account.ID.String()))
		return nil, fmt.Errorf("%w: invalid or expired OTP", utils.ErrUnauthenticated)
	}

	consumed, err := s.accounts.ConsumeOTP(ctx, account.ID, req.OTP, now)
	if err != nil {
		return nil, fmt.Errorf("consume otp: %w", err)
	}
	if !consumed {
		// raced with another verification or a newer code
		return nil, fmt.Errorf("%w: invalid or expired OTP", utils.ErrUnauthenticated)
	}
	account.OTP = nil
	account.OTPExpiresAt = nil
	account.IsVerified = true

	// 4. Issue session token
	token, claims, err := s.tokens.Issue(account.ID)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("account_id", account.ID.String()))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("Account verified",
		zap.String("account_id", account.ID.String()),
		zap.Bool("new_user", account.IsNew()))

	return &response.VerifyOTPResponse{
		Token:     token,
		User:      response.UserToResponse(account),
		IsNewUser: account.IsNew(),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Authenticate validates a session token and rejects revoked ones.
func (s *authService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, fmt.Errorf("%w: session expired", utils.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("%w: invalid session", utils.ErrUnauthenticated)
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.log.Error("Failed to check token blacklist", zap.Error(err), zap.String("jti", claims.ID))
		return nil, fmt.Errorf("check blacklist: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: %v", utils.ErrUnauthenticated, auth.ErrTokenRevoked)
	}

	return claims, nil
}

// Logout revokes the token for the rest of its lifetime.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		// nothing left to revoke
		s.log.Debug("Logout with unusable token", zap.Error(err))
		return nil
	}

	if err := s.blacklist.Revoke(ctx, claims.ID, s.tokens.Remaining(claims)); err != nil {
		s.log.Error("Failed to revoke token", zap.Error(err), zap.String("jti", claims.ID))
		return fmt.Errorf("revoke token: %w", err)
	}

	s.log.Info("Account logged out", zap.String("account_id", claims.AccountID), zap.String("jti", claims.ID))
	return nil
}
