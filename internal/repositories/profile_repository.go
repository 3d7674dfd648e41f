package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/utils"
	"github.com/google/uuid"
)

type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *models.CustomerProfile) error
	CreateBusinessDetails(ctx context.Context, userID uuid.UUID, details *models.BusinessDetails) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.CustomerProfile, error)
	PhoneTaken(ctx context.Context, phone string, exclude uuid.UUID) (bool, error)
	UpdateContact(ctx context.Context, userID uuid.UUID, fullName, phone, companyName string) error
	UpdateBusinessDetails(ctx context.Context, userID uuid.UUID, code string, addressID *int64) error
}

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepo(db *sql.DB) ProfileRepository {
	return &profileRepository{DB: db}
}

func (r *profileRepository) CreateProfile(ctx context.Context, profile *models.CustomerProfile) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if profile.ContactAddress == nil || profile.ContactAddress.ID == 0 {
		return fmt.Errorf("profile requires a stored contact address")
	}

	query := `
		INSERT INTO customer_profiles (user_id, full_name, phone, company_name, contact_address_id, agreed_to_terms, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return conn(ctx, r.DB).QueryRowContext(dbCtx, query, profile.UserID, profile.FullName, profile.Phone, profile.CompanyName,
		profile.ContactAddress.ID, profile.AgreedToTerms).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) CreateBusinessDetails(ctx context.Context, userID uuid.UUID, details *models.BusinessDetails) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var addressID sql.NullInt64
	if details.Address != nil && details.Address.ID != 0 {
		addressID = sql.NullInt64{Int64: details.Address.ID, Valid: true}
	}

	query := `
		INSERT INTO business_details (user_id, business_type, code, address_id)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := conn(ctx, r.DB).ExecContext(dbCtx, query, userID, details.Type, details.Code, addressID); err != nil {
		return fmt.Errorf("failed to insert business details: %w", err)
	}

	return nil
}

// GetProfile loads the profile with its contact address and, for business customers,
// the business details and their address.
func (r *profileRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*models.CustomerProfile, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT cp.user_id, u.email, cp.full_name, cp.phone, cp.company_name, cp.agreed_to_terms, cp.created_at, cp.updated_at,
		       ca.id, ca.region_id, ca.city, ca.street_address, ca.postal_code,
		       bd.business_type, bd.code,
		       ba.id, ba.region_id, ba.city, ba.street_address, ba.postal_code
		FROM customer_profiles cp
		JOIN users u ON u.id = cp.user_id
		JOIN addresses ca ON ca.id = cp.contact_address_id
		LEFT JOIN business_details bd ON bd.user_id = cp.user_id
		LEFT JOIN addresses ba ON ba.id = bd.address_id
		WHERE cp.user_id = $1
	`

	profile := &models.CustomerProfile{ContactAddress: &models.Address{}}

	var (
		businessType sql.NullString
		code         sql.NullString
		baID         sql.NullInt64
		baRegionID   sql.NullInt64
		baCity       sql.NullString
		baStreet     sql.NullString
		baPostal     sql.NullString
	)

	ca := profile.ContactAddress

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, userID).Scan(
		&profile.UserID, &profile.Email, &profile.FullName, &profile.Phone, &profile.CompanyName, &profile.AgreedToTerms,
		&profile.CreatedAt, &profile.UpdatedAt,
		&ca.ID, &ca.RegionID, &ca.City, &ca.StreetAddress, &ca.PostalCode,
		&businessType, &code,
		&baID, &baRegionID, &baCity, &baStreet, &baPostal,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get customer profile: %w", err)
	}

	if !businessType.Valid {
		profile.Kind = models.Individual{}
		return profile, nil
	}

	details := models.BusinessDetails{
		Type: models.BusinessType(businessType.String),
		Code: code.String,
	}

	if baID.Valid {
		details.Address = &models.Address{
			ID:            baID.Int64,
			RegionID:      baRegionID.Int64,
			City:          baCity.String,
			StreetAddress: baStreet.String,
			PostalCode:    baPostal.String,
		}
	}

	profile.Kind = models.Business{Details: details}

	return profile, nil
}

func (r *profileRepository) PhoneTaken(ctx context.Context, phone string, exclude uuid.UUID) (bool, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM customer_profiles WHERE phone = $1 AND user_id <> $2)`

	if err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, phone, exclude).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check phone: %w", err)
	}

	return exists, nil
}

func (r *profileRepository) UpdateContact(ctx context.Context, userID uuid.UUID, fullName, phone, companyName string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE customer_profiles
		SET full_name = $1, phone = $2, company_name = $3, updated_at = NOW()
		WHERE user_id = $4
	`

	result, err := conn(ctx, r.DB).ExecContext(dbCtx, query, fullName, phone, companyName, userID)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}

	return expectAffected(result)
}

func (r *profileRepository) UpdateBusinessDetails(ctx context.Context, userID uuid.UUID, code string, addressID *int64) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE business_details
		SET code = $1, address_id = COALESCE($2, address_id)
		WHERE user_id = $3
	`

	result, err := conn(ctx, r.DB).ExecContext(dbCtx, query, code, nullInt64(addressID), userID)
	if err != nil {
		return fmt.Errorf("failed to update business details: %w", err)
	}

	return expectAffected(result)
}
