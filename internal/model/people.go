package model

import (
	"strings"
	"time"
)

// Customer is a shopper account visible to the vendor.
type Customer struct {
	ID         int        `json:"id" yaml:"id"`
	FirstName  string     `json:"first_name" yaml:"first_name"`
	LastName   string     `json:"last_name" yaml:"last_name"`
	Email      string     `json:"email" yaml:"email"`
	Phone      string     `json:"phone_number,omitempty" yaml:"phone_number,omitempty"`
	Address    string     `json:"address,omitempty" yaml:"address,omitempty"`
	IsActive   bool       `json:"is_active" yaml:"is_active"`
	DateJoined *time.Time `json:"date_joined,omitempty" yaml:"date_joined,omitempty"`
}

func (c Customer) ResourceID() int { return c.ID }

// FullName joins first and last name.
func (c Customer) FullName() string {
	return joinName(c.FirstName, c.LastName)
}

// Input returns the full replacement payload for c.
func (c Customer) Input() CustomerInput {
	return CustomerInput{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		IsActive:  c.IsActive,
	}
}

// CustomerInput is the PUT payload for a customer.
type CustomerInput struct {
	FirstName string `json:"first_name" yaml:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" yaml:"last_name" validate:"required,max=150"`
	Email     string `json:"email" yaml:"email" validate:"required,email"`
	Phone     string `json:"phone_number,omitempty" yaml:"phone_number" validate:"max=20"`
	Address   string `json:"address,omitempty" yaml:"address" validate:"max=500"`
	IsActive  bool   `json:"is_active" yaml:"is_active"`
}

// Apply returns c with every field replaced by in.
func (in CustomerInput) Apply(c Customer) Customer {
	c.FirstName = in.FirstName
	c.LastName = in.LastName
	c.Email = in.Email
	c.Phone = in.Phone
	c.Address = in.Address
	c.IsActive = in.IsActive
	return c
}

// VendorStatus is the approval state of a vendor.
type VendorStatus string

const (
	VendorStatusPending   VendorStatus = "pending"
	VendorStatusApproved  VendorStatus = "approved"
	VendorStatusSuspended VendorStatus = "suspended"
)

// VendorStatuses lists the accepted vendor statuses.
var VendorStatuses = []string{
	string(VendorStatusPending),
	string(VendorStatusApproved),
	string(VendorStatusSuspended),
}

// Vendor is a seller account.
type Vendor struct {
	ID         int          `json:"id" yaml:"id"`
	StoreName  string       `json:"store_name" yaml:"store_name"`
	FirstName  string       `json:"first_name" yaml:"first_name"`
	LastName   string       `json:"last_name" yaml:"last_name"`
	Email      string       `json:"email" yaml:"email"`
	Phone      string       `json:"phone_number,omitempty" yaml:"phone_number,omitempty"`
	Address    string       `json:"address,omitempty" yaml:"address,omitempty"`
	Status     VendorStatus `json:"status,omitempty" yaml:"status,omitempty"`
	IsVerified bool         `json:"is_verified" yaml:"is_verified"`
}

func (v Vendor) ResourceID() int { return v.ID }

// FullName joins first and last name.
func (v Vendor) FullName() string {
	return joinName(v.FirstName, v.LastName)
}

// Input returns the full replacement payload for v.
func (v Vendor) Input() VendorInput {
	return VendorInput{
		StoreName:  v.StoreName,
		FirstName:  v.FirstName,
		LastName:   v.LastName,
		Email:      v.Email,
		Phone:      v.Phone,
		Address:    v.Address,
		Status:     v.Status,
		IsVerified: v.IsVerified,
	}
}

// VendorInput is the PUT payload for a vendor.
type VendorInput struct {
	StoreName  string       `json:"store_name" yaml:"store_name" validate:"required,max=255"`
	FirstName  string       `json:"first_name" yaml:"first_name" validate:"required,max=150"`
	LastName   string       `json:"last_name" yaml:"last_name" validate:"required,max=150"`
	Email      string       `json:"email" yaml:"email" validate:"required,email"`
	Phone      string       `json:"phone_number,omitempty" yaml:"phone_number" validate:"max=20"`
	Address    string       `json:"address,omitempty" yaml:"address" validate:"max=500"`
	Status     VendorStatus `json:"status,omitempty" yaml:"status" validate:"omitempty,oneof=pending approved suspended"`
	IsVerified bool         `json:"is_verified" yaml:"is_verified"`
}

// Apply returns v with every field replaced by in. An empty status keeps
// the current one.
func (in VendorInput) Apply(v Vendor) Vendor {
	v.StoreName = in.StoreName
	v.FirstName = in.FirstName
	v.LastName = in.LastName
	v.Email = in.Email
	v.Phone = in.Phone
	v.Address = in.Address
	if in.Status != "" {
		v.Status = in.Status
	}
	v.IsVerified = in.IsVerified
	return v
}

// UserProfile is the signed-in vendor's own account.
type UserProfile struct {
	ID            int    `json:"id" yaml:"id"`
	FirstName     string `json:"first_name" yaml:"first_name"`
	LastName      string `json:"last_name" yaml:"last_name"`
	Email         string `json:"email" yaml:"email"`
	Phone         string `json:"phone_number,omitempty" yaml:"phone_number,omitempty"`
	StoreName     string `json:"store_name,omitempty" yaml:"store_name,omitempty"`
	Address       string `json:"address,omitempty" yaml:"address,omitempty"`
	Bio           string `json:"bio,omitempty" yaml:"bio,omitempty"`
	BankName      string `json:"bank_name,omitempty" yaml:"bank_name,omitempty"`
	BankCode      string `json:"bank_code,omitempty" yaml:"bank_code,omitempty"`
	AccountNumber string `json:"account_number,omitempty" yaml:"account_number,omitempty"`
	AccountName   string `json:"account_name,omitempty" yaml:"account_name,omitempty"`
}

func (u UserProfile) ResourceID() int { return u.ID }

// FullName joins first and last name.
func (u UserProfile) FullName() string {
	return joinName(u.FirstName, u.LastName)
}

// ProfilePatch is a partial profile update. Nil fields are not sent.
type ProfilePatch struct {
	FirstName     *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=150"`
	LastName      *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=150"`
	Phone         *string `json:"phone_number,omitempty" validate:"omitempty,max=20"`
	StoreName     *string `json:"store_name,omitempty" validate:"omitempty,min=1,max=255"`
	Address       *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Bio           *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
	BankName      *string `json:"bank_name,omitempty"`
	BankCode      *string `json:"bank_code,omitempty"`
	AccountNumber *string `json:"account_number,omitempty" validate:"omitempty,numeric"`
	AccountName   *string `json:"account_name,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p ProfilePatch) Empty() bool {
	return p == ProfilePatch{}
}

// Apply returns u with the set fields of p applied.
func (p ProfilePatch) Apply(u UserProfile) UserProfile {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&u.FirstName, p.FirstName)
	set(&u.LastName, p.LastName)
	set(&u.Phone, p.Phone)
	set(&u.StoreName, p.StoreName)
	set(&u.Address, p.Address)
	set(&u.Bio, p.Bio)
	set(&u.BankName, p.BankName)
	set(&u.BankCode, p.BankCode)
	set(&u.AccountNumber, p.AccountNumber)
	set(&u.AccountName, p.AccountName)
	return u
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
