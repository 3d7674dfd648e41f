package repository_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/nuts-storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var profileRowColumns = []string{
	"user_id", "email", "full_name", "phone", "company_name", "agreed_to_terms", "created_at", "updated_at",
	"ca_id", "ca_region_id", "ca_city", "ca_street_address", "ca_postal_code",
	"business_type", "code",
	"ba_id", "ba_region_id", "ba_city", "ba_street_address", "ba_postal_code",
}

func setupProfileRepoTest(t *testing.T) (repository.ProfileRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := setupDB(t)

	return repository.NewProfileRepo(db), mock
}

func TestCreateProfile(t *testing.T) {
	ctx := t.Context()
	now := time.Now()
	userID := uuid.New()

	t.Run("Success - Profile Stored", func(t *testing.T) {
		// Arrange
		repo, mock := setupProfileRepoTest(t)
		profile := &models.CustomerProfile{
			UserID:         userID,
			FullName:       "Olena Koval",
			Phone:          "+380501234567",
			AgreedToTerms:  true,
			ContactAddress: &models.Address{ID: 4},
		}

		mock.ExpectQuery(q("INSERT INTO customer_profiles")).
			WithArgs(userID, "Olena Koval", "+380501234567", "", int64(4), true).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		// Act
		err := repo.CreateProfile(ctx, profile)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, now, profile.CreatedAt)
	})

	t.Run("Failure - Contact Address Not Stored", func(t *testing.T) {
		// Arrange
		repo, _ := setupProfileRepoTest(t)

		// Act
		err := repo.CreateProfile(ctx, &models.CustomerProfile{UserID: userID, ContactAddress: &models.Address{}})

		// Assert
		assert.ErrorContains(t, err, "profile requires a stored contact address")
	})
}

func TestCreateBusinessDetails(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Success - With Address", func(t *testing.T) {
		// Arrange
		repo, mock := setupProfileRepoTest(t)
		details := &models.BusinessDetails{Type: models.BusinessFOP, Code: "3012345678", Address: &models.Address{ID: 9}}

		mock.ExpectExec(q("INSERT INTO business_details (user_id, business_type, code, address_id)")).
			WithArgs(userID, models.BusinessFOP, "3012345678", int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.CreateBusinessDetails(ctx, userID, details)

		// Assert
		assert.NoError(t, err)
	})

	t.Run("Failure - Insert Error", func(t *testing.T) {
		// Arrange
		repo, mock := setupProfileRepoTest(t)
		mock.ExpectExec(q("INSERT INTO business_details")).
			WithArgs(userID, models.BusinessLegalEntity, "41234567", nil).
			WillReturnError(errors.New("deadlock detected"))

		// Act
		err := repo.CreateBusinessDetails(ctx, userID, &models.BusinessDetails{Type: models.BusinessLegalEntity, Code: "41234567"})

		// Assert
		assert.ErrorContains(t, err, "failed to insert business details")
	})
}

func TestGetProfile(t *testing.T) {
	ctx := t.Context()
	now := time.Now()
	userID := uuid.New()

	t.Run("Success - Individual", func(t *testing.T) {
		// Arrange
		repo, mock := setupProfileRepoTest(t)
		mock.ExpectQuery(q("LEFT JOIN business_details bd ON bd.user_id = cp.user_id")).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(profileRowColumns).AddRow(
				userID, "olena@example.com", "Olena Koval", "+380501234567", "", true, now, now,
				4, 12, "Lviv", "Rynok Square 1", "79000",
				nil, nil,
				nil, nil, nil, nil, nil,
			))

		// Act
		profile, err := repo.GetProfile(ctx, userID)

		// Assert
		require.NoError(t, err)
		assert.False(t, profile.IsBusiness())
		assert.Equal(t, "Lviv", profile.ContactAddress.City)
		assert.Equal(t, int64(12), profile.ContactAddress.RegionID)
	})

	t.Run("Success - Business With Address", func(t *testing.T) {
		// Arrange
		repo, mock := setupProfileRepoTest(t)
		mock.ExpectQuery(q("FROM customer_profiles cp")).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(profileRowColumns).AddRow(
				userID, "orders@horikh.ua", "Taras Melnyk", "+380671112233", "Horikh LLC", true, now, now,
				4, 12, "Lviv", "Rynok Square 1", "79000",
				"LEGAL_ENTITY", "41234567",
				9, 3, "Kyiv", "Khreshchatyk 22", "01001",
			))

		// Act
		profile, err := repo.GetProfile(ctx, userID)

		// Assert
		require.NoError(t, err)
		details, ok := models.AsBusiness(profile.Kind)
		require.True(t, ok)
		assert.Equal(t, models.BusinessLegalEntity, details.Type)
		require.NotNil(t, details.Address)
		assert.Equal(t, "Kyiv", details.Address.City)
	})

	t.Run("Success - Business Without Address", func(t *testing.T) {
		// Arrange
		repo, mock := setupProfileRepoTest(t)
		mock.ExpectQuery(q("FROM customer_profiles cp")).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(profileRowColumns).AddRow(
				userID, "fop@example.com", "Taras Melnyk", "+380671112233", "", true, now, now,
				4, 12, "Lviv", "Rynok Square 1", "79000",
				"FOP", "3012345678",
				nil, nil, nil, nil, nil,
			))

		// Act
		profile, err := repo.GetProfile(ctx, userID)

		// Assert
		require.NoError(t, err)
		details, ok := models.AsBusiness(profile.Kind)
		require.True(t, ok)
		assert.Nil(t, details.Address)
	})

	t.Run("Failure - No Profile", func(t *testing.T) {
		// Arrange
		repo, mock := setupProfileRepoTest(t)
		mock.ExpectQuery(q("FROM customer_profiles cp")).WithArgs(userID).WillReturnError(sql.ErrNoRows)

		// Act
		profile, err := repo.GetProfile(ctx, userID)

		// Assert
		assert.Nil(t, profile)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestProfileUpdates(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Success - Phone Free", func(t *testing.T) {
		// Arrange
		repo, mock := setupProfileRepoTest(t)
		mock.ExpectQuery(q("SELECT EXISTS (SELECT 1 FROM customer_profiles WHERE phone = $1 AND user_id <> $2)")).
			WithArgs("+380501234567", userID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		// Act
		taken, err := repo.PhoneTaken(ctx, "+380501234567", userID)

		// Assert
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("Success - Contact Updated", func(t *testing.T) {
		// Arrange
		repo, mock := setupProfileRepoTest(t)
		mock.ExpectExec(q("UPDATE customer_profiles")).
			WithArgs("Olena Koval-Shevchenko", "+380501234567", "", userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.UpdateContact(ctx, userID, "Olena Koval-Shevchenko", "+380501234567", "")

		// Assert
		assert.NoError(t, err)
	})

	t.Run("Failure - Contact Of Missing Profile", func(t *testing.T) {
		// Arrange
		repo, mock := setupProfileRepoTest(t)
		mock.ExpectExec(q("UPDATE customer_profiles")).WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repo.UpdateContact(ctx, userID, "Olena", "+380501234567", "")

		// Assert
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("Success - Business Code Keeps Address", func(t *testing.T) {
		// Arrange
		repo, mock := setupProfileRepoTest(t)
		mock.ExpectExec(q("SET code = $1, address_id = COALESCE($2, address_id)")).
			WithArgs("41234568", nil, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.UpdateBusinessDetails(ctx, userID, "41234568", nil)

		// Assert
		assert.NoError(t, err)
	})

	t.Run("Success - Business Address Attached", func(t *testing.T) {
		// Arrange
		repo, mock := setupProfileRepoTest(t)
		addressID := int64(9)
		mock.ExpectExec(q("UPDATE business_details")).
			WithArgs("41234568", int64(9), userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.UpdateBusinessDetails(ctx, userID, "41234568", &addressID)

		// Assert
		assert.NoError(t, err)
	})
}
