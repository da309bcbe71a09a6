package roles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// DefaultStaffRole роль администратора салона
const DefaultStaffRole = "admin"

// Repository проверка ролей пользователей (user_roles)
type Repository struct {
	db        DBExecutor
	staffRole string
}

// NewRepository создает репозиторий ролей. Пустая staffRole заменяется на DefaultStaffRole
func NewRepository(db DBExecutor, staffRole string) *Repository {
	if staffRole == "" {
		staffRole = DefaultStaffRole
	}
	return &Repository{db: db, staffRole: staffRole}
}

// IsStaff сообщает, есть ли у пользователя роль персонала
func (r *Repository) IsStaff(ctx context.Context, userID uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("user_roles").
		Where(squirrel.Eq{"user_id": userID, "role": r.staffRole}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsStaff - build select query: %v", ErrBuildQuery, err)
	}

	var found int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsStaff - user=%s: %v", ErrExecQuery, userID, err)
	}

	return true, nil
}
