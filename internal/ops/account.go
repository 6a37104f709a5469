package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/jacksmith/vendorctl/internal/model"
	"github.com/jacksmith/vendorctl/internal/resource"
	"github.com/jacksmith/vendorctl/internal/session"
)

// Account covers sign-in, registration and recovery. It is the only
// writer of the session.
type Account struct {
	auth    AuthAPI
	support SupportAPI
	session *session.Session
	busy    *resource.Busy
}

func NewAccount(b Backend, sess *session.Session, busy *resource.Busy) *Account {
	if busy == nil {
		busy = resource.NewBusy(nil)
	}
	return &Account{auth: b.Auth, support: b.Support, session: sess, busy: busy}
}

// Login exchanges credentials for a token and stores it.
func (a *Account) Login(ctx context.Context, req model.LoginRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	if err := resource.Validate(req); err != nil {
		return err
	}

	end := a.busy.Begin(resource.Key{Op: resource.OpAction})
	defer end()

	resp, err := a.auth.Login(ctx, req)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := a.session.Set(ctx, resp.BearerToken()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Logout forgets the stored token.
func (a *Account) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

func (a *Account) Register(ctx context.Context, reg model.Registration) (model.Message, error) {
	return post(ctx, a.busy, "register", reg, func(ctx context.Context) (model.Message, error) {
		return a.auth.Register(ctx, reg)
	})
}

func (a *Account) VerifyEmail(ctx context.Context, v model.EmailVerification) (model.Message, error) {
	return post(ctx, a.busy, "verify email", v, func(ctx context.Context) (model.Message, error) {
		return a.auth.VerifyEmail(ctx, v)
	})
}

func (a *Account) PasswordReset(ctx context.Context, r model.PasswordReset) (model.Message, error) {
	return post(ctx, a.busy, "password reset", r, func(ctx context.Context) (model.Message, error) {
		return a.auth.PasswordReset(ctx, r)
	})
}

func (a *Account) PasswordResetConfirm(ctx context.Context, uid, token string, r model.PasswordResetConfirm) (model.Message, error) {
	return post(ctx, a.busy, "password reset", r, func(ctx context.Context) (model.Message, error) {
		return a.auth.PasswordResetConfirm(ctx, uid, token, r)
	})
}

// ContactSupport files a support request.
func (a *Account) ContactSupport(ctx context.Context, req model.SupportRequest) (model.Message, error) {
	return post(ctx, a.busy, "support request", req, func(ctx context.Context) (model.Message, error) {
		return a.support.Create(ctx, req)
	})
}

func post(ctx context.Context, busy *resource.Busy, action string, input any, send func(context.Context) (model.Message, error)) (model.Message, error) {
	if err := resource.Validate(input); err != nil {
		return model.Message{}, err
	}

	end := busy.Begin(resource.Key{Op: resource.OpAction})
	defer end()

	msg, err := send(ctx)
	if err != nil {
		return model.Message{}, fmt.Errorf("%s: %w", action, err)
	}
	return msg, nil
}
