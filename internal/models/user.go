package models

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	IsActive  bool      `json:"is_active"`
	IsStaff   bool      `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BusinessType string

const (
	BusinessLegalEntity BusinessType = "LEGAL_ENTITY"
	BusinessFOP         BusinessType = "FOP"
)

// BusinessDetails holds the registry code (OKPO for legal entities, EDRPOU for FOP)
// and the legal or activity address.
type BusinessDetails struct {
	Type    BusinessType `json:"type"`
	Code    string       `json:"code,omitempty"`
	Address *Address     `json:"address,omitempty"`
}

// CustomerKind is either Individual or Business.
type CustomerKind interface {
	kindName() string
}

type Individual struct{}

type Business struct {
	Details BusinessDetails
}

func (Individual) kindName() string { return "individual" }
func (Business) kindName() string   { return "business" }

// AsBusiness returns the business details when kind is Business.
func AsBusiness(kind CustomerKind) (*BusinessDetails, bool) {
	switch k := kind.(type) {
	case Business:
		return &k.Details, true
	case *Business:
		return &k.Details, true
	default:
		return nil, false
	}
}

type CustomerProfile struct {
	UserID         uuid.UUID
	Email          string
	FullName       string
	Phone          string
	CompanyName    string
	ContactAddress *Address
	AgreedToTerms  bool
	Kind           CustomerKind
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p *CustomerProfile) IsBusiness() bool {
	_, ok := AsBusiness(p.Kind)
	return ok
}

type customerProfileJSON struct {
	UserID         uuid.UUID        `json:"user_id"`
	Email          string           `json:"email"`
	Kind           string           `json:"kind"`
	FullName       string           `json:"full_name"`
	Phone          string           `json:"phone"`
	CompanyName    string           `json:"company_name,omitempty"`
	ContactAddress *Address         `json:"contact_address,omitempty"`
	AgreedToTerms  bool             `json:"agreed_to_terms"`
	Business       *BusinessDetails `json:"business,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func (p CustomerProfile) MarshalJSON() ([]byte, error) {
	out := customerProfileJSON{
		UserID:         p.UserID,
		Email:          p.Email,
		Kind:           Individual{}.kindName(),
		FullName:       p.FullName,
		Phone:          p.Phone,
		CompanyName:    p.CompanyName,
		ContactAddress: p.ContactAddress,
		AgreedToTerms:  p.AgreedToTerms,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}

	if details, ok := AsBusiness(p.Kind); ok {
		out.Kind = Business{}.kindName()
		out.Business = details
	}

	return json.Marshal(out)
}

// RegistrationRequest holds the fields shared by both registration flows.
type RegistrationRequest struct {
	FullName        string       `json:"full_name" validate:"required,min=10,max=60,full_name"`
	Email           string       `json:"email" validate:"required,email"`
	Phone           string       `json:"phone" validate:"required,ua_phone"`
	Address         AddressInput `json:"address" validate:"required"`
	Password        string       `json:"password" validate:"required"`
	PasswordConfirm string       `json:"password_confirm" validate:"required"`
	AgreedToTerms   bool         `json:"agreed_to_terms" validate:"required"`
}

type RegisterIndividualRequest struct {
	RegistrationRequest
}

type RegisterBusinessRequest struct {
	RegistrationRequest
	CompanyName     string        `json:"company_name" validate:"required,min=3,max=60"`
	BusinessType    BusinessType  `json:"business_type" validate:"required,oneof=LEGAL_ENTITY FOP"`
	Code            string        `json:"code,omitempty" validate:"omitempty,max=32"`
	BusinessAddress *AddressInput `json:"business_address,omitempty" validate:"omitempty"`
}

type RegisterResponse struct {
	Profile *CustomerProfile `json:"profile"`
	Token   string           `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success        bool   `json:"success"`
	Token          string `json:"token,omitempty"`
	ExpiresIn      int    `json:"expires_in,omitempty"`
	RemainingTries int    `json:"remaining_tries,omitempty"`
	RetryAfter     int    `json:"retry_after,omitempty"`
	Message        string `json:"message,omitempty"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ForgotPasswordResponse struct {
	ResetToken string    `json:"reset_token"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required"`
}

type UpdateContactRequest struct {
	FullName    string `json:"full_name" validate:"required,min=10,max=60,full_name"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,ua_phone"`
	CompanyName string `json:"company_name,omitempty" validate:"omitempty,min=3,max=60"`
}

type UpdateAddressRequest struct {
	Address         AddressInput  `json:"address" validate:"required"`
	Code            string        `json:"code,omitempty" validate:"omitempty,max=32"`
	BusinessAddress *AddressInput `json:"business_address,omitempty" validate:"omitempty"`
}

// JWT claims structure
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// ResetClaims binds a reset token to the password hash it was issued against.
type ResetClaims struct {
	PasswordFingerprint string `json:"pwd"`
	jwt.RegisteredClaims
}
