package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

var (
	serviceColumns      = []string{"id", "name", "price", "duration_minutes", "is_active"}
	professionalColumns = []string{"id", "name", "specialty", "is_active"}
	profileColumns      = []string{"id", "full_name", "email", "phone"}
)

// Repository справочники салона: услуги, мастера, профили клиентов.
// Только чтение.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetServices возвращает услуги, при activeOnly только активные
func (r *Repository) GetServices(ctx context.Context, activeOnly bool) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(serviceColumns...).
		From("services").
		OrderBy("name ASC")
	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// GetService возвращает услугу по ID (в том числе неактивную)
func (r *Repository) GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	return service, nil
}

// GetProfessionals возвращает мастеров, при activeOnly только активных
func (r *Repository) GetProfessionals(ctx context.Context, activeOnly bool) ([]*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(professionalColumns...).
		From("professionals").
		OrderBy("name ASC")
	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessionals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessionals - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	professionals := make([]*domain.Professional, 0)
	for rows.Next() {
		professional, err := scanProfessional(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetProfessionals - scan row: %v", ErrScanRow, err)
		}
		professionals = append(professionals, professional)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetProfessionals - rows error: %v", ErrScanRow, err)
	}

	return professionals, nil
}

// GetProfessional возвращает мастера по ID
func (r *Repository) GetProfessional(ctx context.Context, id uuid.UUID) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(professionalColumns...).
		From("professionals").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessional - build select query: %v", ErrBuildQuery, err)
	}

	professional, err := scanProfessional(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessional - scan professional: %v", ErrScanRow, err)
	}

	return professional, nil
}

// GetCustomerProfiles возвращает профили клиентов по ID
// Пустой список ID возвращает все профили
func (r *Repository) GetCustomerProfiles(ctx context.Context, ids []uuid.UUID) ([]*domain.CustomerProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(profileColumns...).
		From("profiles").
		OrderBy("full_name ASC")
	if len(ids) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"id": ids})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomerProfiles - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomerProfiles - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	profiles := make([]*domain.CustomerProfile, 0)
	for rows.Next() {
		var (
			profile domain.CustomerProfile
			phone   sql.NullString
		)
		if err := rows.Scan(&profile.ID, &profile.FullName, &profile.Email, &phone); err != nil {
			return nil, fmt.Errorf("%w: GetCustomerProfiles - scan row: %v", ErrScanRow, err)
		}
		if phone.Valid {
			profile.Phone = &phone.String
		}
		profiles = append(profiles, &profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetCustomerProfiles - rows error: %v", ErrScanRow, err)
	}

	return profiles, nil
}

// CountCustomers возвращает количество зарегистрированных профилей
func (r *Repository) CountCustomers(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("profiles").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountCustomers - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountCustomers - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var (
		service  domain.Service
		duration sql.NullInt64
	)

	if err := row.Scan(&service.ID, &service.Name, &service.Price, &duration, &service.IsActive); err != nil {
		return nil, err
	}
	service.DurationMinutes = int(duration.Int64)

	return &service, nil
}

func scanProfessional(row rowScanner) (*domain.Professional, error) {
	var (
		professional domain.Professional
		specialty    sql.NullString
	)

	if err := row.Scan(&professional.ID, &professional.FullName, &specialty, &professional.IsActive); err != nil {
		return nil, err
	}
	if specialty.Valid {
		professional.Specialty = &specialty.String
	}

	return &professional, nil
}
