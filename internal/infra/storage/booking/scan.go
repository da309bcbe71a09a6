package booking

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking читает строку в каноническое бронирование.
// Старые записи хранят услугу в service_id, новые в sub_service_id;
// здесь оба варианта сводятся к Booking.ServiceID.
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		serviceID, subID     uuid.NullUUID
		notes                sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.ProfessionalID,
		&serviceID,
		&subID,
		&booking.Date,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.TotalPrice,
		&notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	resolved, err := resolveServiceID(serviceID, subID)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", booking.ID, err)
	}

	booking.ServiceID = resolved
	booking.Date = domain.DateOnly(booking.Date)
	if notes.Valid {
		booking.Notes = &notes.String
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// resolveServiceID предпочитает sub_service_id, затем service_id
func resolveServiceID(serviceID, subServiceID uuid.NullUUID) (uuid.UUID, error) {
	if subServiceID.Valid {
		return subServiceID.UUID, nil
	}
	if serviceID.Valid {
		return serviceID.UUID, nil
	}
	return uuid.Nil, ErrMissingService
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
