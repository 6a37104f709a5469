package model

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token. Backends answer with either
// "token" or a JWT "access" pair.
type LoginResponse struct {
	Token   string `json:"token,omitempty"`
	Access  string `json:"access,omitempty"`
	Refresh string `json:"refresh,omitempty"`
	UserID  int    `json:"user_id,omitempty"`
}

// BearerToken returns whichever token the backend issued.
func (r LoginResponse) BearerToken() string {
	if r.Token != "" {
		return r.Token
	}
	return r.Access
}

// Registration is the vendor sign-up payload.
type Registration struct {
	FirstName       string `json:"first_name" validate:"required,max=150"`
	LastName        string `json:"last_name" validate:"required,max=150"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone_number" validate:"required,max=20"`
	StoreName       string `json:"store_name" validate:"required,max=255"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// EmailVerification confirms a registration with the emailed code.
type EmailVerification struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"otp" validate:"required,numeric"`
}

// PasswordReset requests a reset link.
type PasswordReset struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetConfirm sets a new password using the emailed uid/token.
type PasswordResetConfirm struct {
	NewPassword     string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// Message is a generic {"message": ...} or {"detail": ...} reply.
type Message struct {
	Message string `json:"message,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Text returns whichever field the backend filled.
func (m Message) Text() string {
	if m.Message != "" {
		return m.Message
	}
	return m.Detail
}

// Bank is a settlement bank the vendor can be paid into.
type Bank struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Code string `json:"code" yaml:"code"`
}

func (b Bank) ResourceID() int { return b.ID }

// AccountVerificationRequest asks the backend to resolve an account.
type AccountVerificationRequest struct {
	AccountNumber string `json:"account_number" validate:"required,numeric,min=6,max=20"`
	BankCode      string `json:"bank_code" validate:"required"`
}

// AccountVerification is the resolved account holder.
type AccountVerification struct {
	AccountNumber string `json:"account_number" yaml:"account_number"`
	AccountName   string `json:"account_name" yaml:"account_name"`
	BankCode      string `json:"bank_code,omitempty" yaml:"bank_code,omitempty"`
}

// SupportRequest is a message to the support team.
type SupportRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
}
