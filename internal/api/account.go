package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jacksmith/vendorctl/internal/model"
)

// AuthService covers sign-in and account recovery.
type AuthService struct{ c *Client }

// Login exchanges credentials for a token. It does not touch the session;
// the caller stores the token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	resp, err := one[model.LoginResponse](ctx, s.c, http.MethodPost, "/api/login/", req)
	if err != nil {
		return resp, err
	}
	if resp.BearerToken() == "" {
		return resp, errors.New("login response carried no token")
	}
	return resp, nil
}

func (s *AuthService) Register(ctx context.Context, reg model.Registration) (model.Message, error) {
	return message(ctx, s.c, "/api/user-vendor/register/", reg)
}

func (s *AuthService) VerifyEmail(ctx context.Context, v model.EmailVerification) (model.Message, error) {
	return message(ctx, s.c, "/api/user/verify-email/", v)
}

func (s *AuthService) PasswordReset(ctx context.Context, r model.PasswordReset) (model.Message, error) {
	return message(ctx, s.c, "/api/password-reset/", r)
}

// PasswordResetConfirm completes a reset with the uid and token from the
// reset email.
func (s *AuthService) PasswordResetConfirm(ctx context.Context, uid, token string, r model.PasswordResetConfirm) (model.Message, error) {
	if uid == "" || token == "" {
		return model.Message{}, errors.New("uid and token are required")
	}
	path := fmt.Sprintf("/api/password-reset-confirm/%s/%s/", url.PathEscape(uid), url.PathEscape(token))
	return message(ctx, s.c, path, r)
}

// BankService covers /api/banks/.
type BankService struct{ c *Client }

func (s *BankService) List(ctx context.Context) ([]model.Bank, error) {
	return list[model.Bank](ctx, s.c, "/api/banks/", nil)
}

// VerifyAccount resolves an account number to its holder's name.
func (s *BankService) VerifyAccount(ctx context.Context, req model.AccountVerificationRequest) (model.AccountVerification, error) {
	return one[model.AccountVerification](ctx, s.c, http.MethodPost, "/api/banks/verify_account/", req)
}

// SupportService covers /api/support/.
type SupportService struct{ c *Client }

func (s *SupportService) Create(ctx context.Context, req model.SupportRequest) (model.Message, error) {
	return message(ctx, s.c, "/api/support/", req)
}

// message posts body and tolerates an empty reply.
func message(ctx context.Context, c *Client, path string, body any) (model.Message, error) {
	m, err := one[model.Message](ctx, c, http.MethodPost, path, body)
	if errors.Is(err, ErrNoContent) {
		return model.Message{}, nil
	}
	return m, err
}
