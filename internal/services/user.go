package service

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	stdErrors "errors"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/config"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/nuts-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenAudience = "password-reset"

type UserService interface {
	RegisterIndividual(ctx context.Context, req *models.RegisterIndividualRequest) (*models.RegisterResponse, error)
	RegisterBusiness(ctx context.Context, req *models.RegisterBusinessRequest) (*models.RegisterResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, *models.User, error)
	ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) (*models.ForgotPasswordResponse, error)
	ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error
	ChangePassword(ctx context.Context, userID uuid.UUID, req *models.ChangePasswordRequest) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.CustomerProfile, error)
	UpdateContact(ctx context.Context, userID uuid.UUID, req *models.UpdateContactRequest) (*models.CustomerProfile, error)
	UpdateAddress(ctx context.Context, userID uuid.UUID, req *models.UpdateAddressRequest) (*models.CustomerProfile, error)
}

type userService struct {
	repo        repository.UserRepository
	profileRepo repository.ProfileRepository
	addressRepo repository.LocationRepository
	locations   LocationService
	redisRepo   repository.RateLimitRepository
	transactor  repository.Transactor
	security    config.Security
	now         func() time.Time
}

func NewUserService(repo repository.UserRepository, profileRepo repository.ProfileRepository, addressRepo repository.LocationRepository,
	locations LocationService, redisRepo repository.RateLimitRepository, transactor repository.Transactor, security config.Security) UserService {
	return &userService{
		repo:        repo,
		profileRepo: profileRepo,
		addressRepo: addressRepo,
		locations:   locations,
		redisRepo:   redisRepo,
		transactor:  transactor,
		security:    security,
		now:         time.Now,
	}
}

func (s *userService) RegisterIndividual(ctx context.Context, req *models.RegisterIndividualRequest) (*models.RegisterResponse, error) {
	return s.register(ctx, &req.RegistrationRequest, "", nil)
}

func (s *userService) RegisterBusiness(ctx context.Context, req *models.RegisterBusinessRequest) (*models.RegisterResponse, error) {

	if req.BusinessAddress != nil {
		if _, err := s.locations.ValidateRegion(ctx, req.BusinessAddress.CountryID, req.BusinessAddress.RegionID); err != nil {
			return nil, err
		}
	}

	details := &models.BusinessDetails{
		Type: req.BusinessType,
		Code: utils.SanitizeText(req.Code),
	}

	if req.BusinessAddress != nil {
		details.Address = sanitizeAddress(*req.BusinessAddress)
	}

	return s.register(ctx, &req.RegistrationRequest, utils.SanitizeText(req.CompanyName), details)
}

func (s *userService) register(ctx context.Context, req *models.RegistrationRequest, companyName string, business *models.BusinessDetails) (*models.RegisterResponse, error) {

	email := normalizeEmail(req.Email)

	if req.Password != req.PasswordConfirm {
		return nil, errors.AddValidationError("password_confirm", "passwords do not match")
	}

	if err := validatePassword("password", req.Password, email); err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, email, req.Phone, uuid.Nil); err != nil {
		return nil, err
	}

	if _, err := s.locations.ValidateRegion(ctx, req.Address.CountryID, req.Address.RegionID); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hashedPassword),
	}

	profile := &models.CustomerProfile{
		UserID:         user.ID,
		Email:          email,
		FullName:       utils.SanitizeText(req.FullName),
		Phone:          req.Phone,
		CompanyName:    companyName,
		ContactAddress: sanitizeAddress(req.Address),
		AgreedToTerms:  req.AgreedToTerms,
		Kind:           models.Individual{},
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateUser(ctx, user); err != nil {
			return err
		}

		if err := s.addressRepo.CreateAddress(ctx, profile.ContactAddress); err != nil {
			return err
		}

		if err := s.profileRepo.CreateProfile(ctx, profile); err != nil {
			return err
		}

		if business == nil {
			return nil
		}

		if business.Address != nil {
			if err := s.addressRepo.CreateAddress(ctx, business.Address); err != nil {
				return err
			}
		}

		if err := s.profileRepo.CreateBusinessDetails(ctx, user.ID, business); err != nil {
			return err
		}

		profile.Kind = models.Business{Details: *business}

		return nil
	})
	if err != nil {
		if dupErr := duplicateError(err); dupErr != nil {
			return nil, dupErr
		}
		return nil, errors.DatabaseError("Failed to create user").WithError(err)
	}

	token, _, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &models.RegisterResponse{Profile: profile, Token: token}, nil
}

func (s *userService) ensureUnique(ctx context.Context, email, phone string, exclude uuid.UUID) error {

	taken, err := s.repo.EmailTaken(ctx, email, exclude)
	if err != nil {
		return errors.DatabaseError("Failed to check email").WithError(err)
	}

	if taken {
		return errors.DuplicateEntryError("Email already registered").WithField("email", "already registered")
	}

	taken, err = s.profileRepo.PhoneTaken(ctx, phone, exclude)
	if err != nil {
		return errors.DatabaseError("Failed to check phone").WithError(err)
	}

	if taken {
		return errors.DuplicateEntryError("Phone already registered").WithField("phone", "already registered")
	}

	return nil
}

// duplicateError maps a unique violation lost to a concurrent registration onto the field it concerns.
func duplicateError(err error) error {

	constraint, ok := repository.UniqueViolation(err)
	if !ok {
		return nil
	}

	if strings.Contains(constraint, "phone") {
		return errors.DuplicateEntryError("Phone already registered").WithField("phone", "already registered").WithError(err)
	}

	return errors.DuplicateEntryError("Email already registered").WithField("email", "already registered").WithError(err)
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, *models.User, error) {

	email := normalizeEmail(req.Email)

	// check rate limit
	allowed, remaining, retryAfter, err := s.redisRepo.CheckLoginRateLimit(ctx, email)
	if err != nil {
		return nil, nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil, nil
	}

	invalid := &models.LoginResponse{
		Success:        false,
		Message:        "Invalid email or password",
		RemainingTries: remaining,
	}

	// only active customers with a profile may sign in
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return invalid, nil, nil
		}
		return nil, nil, errors.DatabaseError("Failed to fetch user").WithError(err)
	}

	if !user.IsActive || user.IsStaff || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return invalid, nil, nil
	}

	if _, err := s.profileRepo.GetProfile(ctx, user.ID); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return invalid, nil, nil
		}
		return nil, nil, errors.DatabaseError("Failed to fetch customer profile").WithError(err)
	}

	token, expiresAt, err := s.issueToken(user)
	if err != nil {
		return nil, nil, err
	}

	_ = s.redisRepo.ResetLoginAttempts(ctx, email)

	return &models.LoginResponse{
		Success:   true,
		Token:     token,
		ExpiresIn: int(expiresAt.Sub(s.now()).Seconds()),
	}, user, nil
}

func (s *userService) issueToken(user *models.User) (string, time.Time, error) {

	now := s.now()
	expiresAt := now.Add(time.Duration(s.security.JWTExpiryHours) * time.Hour)

	claims := &models.Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	// Generate Token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.security.JWTKey))
	if err != nil {
		return "", time.Time{}, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return tokenString, expiresAt, nil
}

// passwordFingerprint ties a reset token to the hash it was issued for, so it dies once the password changes.
func passwordFingerprint(hash string) string {
	sum := sha256.Sum256([]byte(hash))
	return hex.EncodeToString(sum[:16])
}

func (s *userService) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) (*models.ForgotPasswordResponse, error) {

	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("User not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch user").WithError(err)
	}

	if !user.IsActive {
		return nil, errors.NotFoundError("User not found")
	}

	now := s.now()
	expiresAt := now.Add(s.security.ResetTokenTTL)

	claims := &models.ResetClaims{
		PasswordFingerprint: passwordFingerprint(user.Password),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Audience:  jwt.ClaimStrings{resetTokenAudience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.security.JWTKey))
	if err != nil {
		return nil, errors.InternalError("Failed to generate reset token").WithError(err)
	}

	return &models.ForgotPasswordResponse{ResetToken: token, ExpiresAt: expiresAt}, nil
}

func (s *userService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {

	invalid := errors.BadRequestError("Reset link is invalid or has expired")

	claims := &models.ResetClaims{}

	_, err := jwt.ParseWithClaims(req.Token, claims, func(token *jwt.Token) (any, error) {
		return []byte(s.security.JWTKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithAudience(resetTokenAudience), jwt.WithTimeFunc(s.now))
	if err != nil {
		return invalid.WithError(err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return invalid.WithError(err)
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return invalid.WithError(err)
		}
		return errors.DatabaseError("Failed to fetch user").WithError(err)
	}

	if claims.PasswordFingerprint != passwordFingerprint(user.Password) {
		return invalid
	}

	return s.setPassword(ctx, user, req.Password, req.PasswordConfirm, "password", "password_confirm")
}

func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, req *models.ChangePasswordRequest) error {

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return errors.NotFoundError("User not found").WithError(err)
		}
		return errors.DatabaseError("Failed to fetch user").WithError(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
		return errors.AddValidationError("old_password", "current password is incorrect")
	}

	if req.NewPassword == req.OldPassword {
		return errors.AddValidationError("new_password", "must differ from the current password")
	}

	return s.setPassword(ctx, user, req.NewPassword, req.NewPasswordConfirm, "new_password", "new_password_confirm")
}

func (s *userService) setPassword(ctx context.Context, user *models.User, password, confirm, field, confirmField string) error {

	if password != confirm {
		return errors.AddValidationError(confirmField, "passwords do not match")
	}

	if err := validatePassword(field, password, user.Email); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.InternalError("Failed to secure password").WithError(err)
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		return errors.DatabaseError("Failed to update password").WithError(err)
	}

	return nil
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.CustomerProfile, error) {

	profile, err := s.profileRepo.GetProfile(ctx, userID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Customer profile not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch customer profile").WithError(err)
	}

	return profile, nil
}

func (s *userService) UpdateContact(ctx context.Context, userID uuid.UUID, req *models.UpdateContactRequest) (*models.CustomerProfile, error) {

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)

	if err := s.ensureUnique(ctx, email, req.Phone, userID); err != nil {
		return nil, err
	}

	companyName := ""
	if profile.IsBusiness() {
		companyName = utils.SanitizeText(req.CompanyName)
		if companyName == "" {
			return nil, errors.AddValidationError("company_name", "required for business customers")
		}
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if email != profile.Email {
			if err := s.repo.UpdateEmail(ctx, userID, email); err != nil {
				return err
			}
		}

		return s.profileRepo.UpdateContact(ctx, userID, utils.SanitizeText(req.FullName), req.Phone, companyName)
	})
	if err != nil {
		if dupErr := duplicateError(err); dupErr != nil {
			return nil, dupErr
		}
		return nil, errors.DatabaseError("Failed to update contact details").WithError(err)
	}

	return s.GetProfile(ctx, userID)
}

func (s *userService) UpdateAddress(ctx context.Context, userID uuid.UUID, req *models.UpdateAddressRequest) (*models.CustomerProfile, error) {

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.locations.ValidateRegion(ctx, req.Address.CountryID, req.Address.RegionID); err != nil {
		return nil, err
	}

	details, isBusiness := models.AsBusiness(profile.Kind)

	if isBusiness && req.BusinessAddress != nil {
		if _, err := s.locations.ValidateRegion(ctx, req.BusinessAddress.CountryID, req.BusinessAddress.RegionID); err != nil {
			return nil, err
		}
	}

	contact := sanitizeAddress(req.Address)
	if profile.ContactAddress != nil {
		contact.ID = profile.ContactAddress.ID
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.addressRepo.UpdateAddress(ctx, contact); err != nil {
			return err
		}

		if !isBusiness {
			return nil
		}

		var addressID *int64

		if req.BusinessAddress != nil {
			address := sanitizeAddress(*req.BusinessAddress)

			if details.Address != nil && details.Address.ID != 0 {
				address.ID = details.Address.ID
				if err := s.addressRepo.UpdateAddress(ctx, address); err != nil {
					return err
				}
			} else if err := s.addressRepo.CreateAddress(ctx, address); err != nil {
				return err
			}

			addressID = &address.ID
		}

		return s.profileRepo.UpdateBusinessDetails(ctx, userID, utils.SanitizeText(req.Code), addressID)
	})
	if err != nil {
		return nil, errors.DatabaseError("Failed to update address").WithError(err)
	}

	return s.GetProfile(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizeAddress(in models.AddressInput) *models.Address {
	address := in.ToAddress()
	address.City = utils.SanitizeText(address.City)
	address.StreetAddress = utils.SanitizeText(address.StreetAddress)
	address.PostalCode = utils.SanitizeText(address.PostalCode)

	return address
}
