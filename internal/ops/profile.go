package ops

import (
	"context"
	"fmt"

	"github.com/jacksmith/vendorctl/internal/model"
	"github.com/jacksmith/vendorctl/internal/resource"
)

// Profile is the signed-in vendor's own profile and payout details.
type Profile struct {
	*resource.Screen[model.UserProfile]
	api   ProfileAPI
	banks BankAPI
}

func NewProfile(b Backend, opts resource.Options) *Profile {
	return &Profile{
		Screen: resource.NewScreen[model.UserProfile]("profile", nil, opts),
		api:    b.Profile,
		banks:  b.Banks,
	}
}

// Load fetches the profile.
func (p *Profile) Load(ctx context.Context) (model.UserProfile, error) {
	return p.LoadOne(ctx, p.api.Get)
}

// Current returns the loaded profile.
func (p *Profile) Current() (model.UserProfile, bool) {
	items := p.Items()
	if len(items) == 0 {
		return model.UserProfile{}, false
	}
	return items[0], true
}

// Edit sends a partial update of the loaded profile.
func (p *Profile) Edit(ctx context.Context, patch model.ProfilePatch) (model.UserProfile, error) {
	if patch.Empty() {
		return model.UserProfile{}, ErrNothingToChange
	}
	current, ok := p.Current()
	if !ok {
		return model.UserProfile{}, fmt.Errorf("profile not loaded")
	}
	return p.Update(ctx, current.ID, patch, func(ctx context.Context) (model.UserProfile, error) {
		got, err := p.api.Patch(ctx, current.ID, patch)
		return orApplied(got, err, patch.Apply(current))
	})
}

// Banks lists the banks accepted for payouts.
func (p *Profile) Banks(ctx context.Context) ([]model.Bank, error) {
	end := p.Busy().Begin(resource.Key{Op: resource.OpLoad})
	defer end()

	banks, err := p.banks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load banks: %w", err)
	}
	return banks, nil
}

// VerifyAccount resolves a bank account to its holder's name.
func (p *Profile) VerifyAccount(ctx context.Context, req model.AccountVerificationRequest) (model.AccountVerification, error) {
	if err := resource.Validate(req); err != nil {
		return model.AccountVerification{}, err
	}

	end := p.Busy().Begin(resource.Key{Op: resource.OpAction})
	defer end()

	v, err := p.banks.VerifyAccount(ctx, req)
	if err != nil {
		return model.AccountVerification{}, fmt.Errorf("verify account: %w", err)
	}
	if v.AccountNumber == "" {
		v.AccountNumber = req.AccountNumber
	}
	if v.BankCode == "" {
		v.BankCode = req.BankCode
	}
	return v, nil
}
