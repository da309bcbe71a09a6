package catalog

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewRepository(dbmetrics.Wrap(sqlDB, nil)), mock
}

func TestRepository_GetServices_ActiveOnly(t *testing.T) {
	repo, mock := newRepo(t)

	withDuration := uuid.New()
	withoutDuration := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM services WHERE is_active = $1 ORDER BY name ASC")).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(serviceColumns).
			AddRow(withDuration.String(), "Braids", "80.00", 180, true).
			AddRow(withoutDuration.String(), "Wash", "15.50", nil, true))

	services, err := repo.GetServices(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, services, 2)

	assert.Equal(t, 180, services[0].EffectiveDuration())
	assert.Equal(t, 15.5, services[1].Price)
	assert.Equal(t, 120, services[1].EffectiveDuration())
}

func TestRepository_GetService_NotFound(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM services WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(serviceColumns))

	_, err := repo.GetService(context.Background(), id)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestRepository_GetProfessional(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM professionals WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(professionalColumns).AddRow(id.String(), "Amara", "colorist", true))

	professional, err := repo.GetProfessional(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, "Amara", professional.FullName)
	require.NotNil(t, professional.Specialty)
	assert.Equal(t, "colorist", *professional.Specialty)
}

func TestRepository_GetCustomerProfiles_ByIDs(t *testing.T) {
	repo, mock := newRepo(t)
	first, second := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM profiles WHERE id IN ($1,$2)")).
		WithArgs(first, second).
		WillReturnRows(sqlmock.NewRows(profileColumns).
			AddRow(first.String(), "Ada Obi", "ada@example.com", nil).
			AddRow(second.String(), "Bea Lin", "bea@example.com", "+100"))

	profiles, err := repo.GetCustomerProfiles(context.Background(), []uuid.UUID{first, second})
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	assert.Nil(t, profiles[0].Phone)
	require.NotNil(t, profiles[1].Phone)
	assert.Equal(t, "+100", *profiles[1].Phone)
}

func TestRepository_CountCustomers(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM profiles")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.CountCustomers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, count)
}
