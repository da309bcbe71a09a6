package scheduling

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Grid сетка календаря: ячейки по CellMinutes от Start до End (End не включается)
type Grid struct {
	Start       types.TimeString
	End         types.TimeString
	CellMinutes int
}

// NewGrid создает и проверяет сетку
func NewGrid(start, end types.TimeString, cellMinutes int) (Grid, error) {
	grid := Grid{Start: start, End: end, CellMinutes: cellMinutes}
	if err := grid.Validate(); err != nil {
		return Grid{}, err
	}
	return grid, nil
}

// Validate проверяет границы и шаг сетки
func (g Grid) Validate() error {
	if g.CellMinutes <= 0 {
		return fmt.Errorf("%w: cell minutes must be positive", domain.ErrValidation)
	}
	if g.Start.Minutes() < 0 || g.End.Minutes() < 0 {
		return fmt.Errorf("%w: invalid grid bounds %q-%q", domain.ErrValidation, g.Start, g.End)
	}
	if !g.Start.IsBefore(g.End) {
		return fmt.Errorf("%w: grid start %s must be before end %s", domain.ErrValidation, g.Start, g.End)
	}
	return nil
}

// Cells возвращает начала всех ячеек сетки
func (g Grid) Cells() []types.TimeString {
	cells := make([]types.TimeString, 0)
	if g.Validate() != nil {
		return cells
	}

	for m := g.Start.Minutes(); m < g.End.Minutes(); m += g.CellMinutes {
		cell, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			break
		}
		cells = append(cells, cell)
	}
	return cells
}

// Placement положение бронирования в сетке
type Placement struct {
	Booking *domain.Booking
	// StartCell индекс первой занятой ячейки, -1 если бронирование вне сетки
	StartCell int
	// SpanCells ceil(duration / cellMinutes)
	SpanCells int
	// Cells начала всех занятых ячеек сетки
	Cells   []types.TimeString
	EndTime types.TimeString
}

// Project вычисляет, какие ячейки сетки занимает каждое бронирование.
// Ячейка c занята, если c.start >= начала бронирования и c.start < конца.
// Бронирования не изменяются; пересечения у разных мастеров допустимы.
func Project(bookings []*domain.Booking, grid Grid) []Placement {
	cells := grid.Cells()
	placements := make([]Placement, 0, len(bookings))

	for _, booking := range bookings {
		if booking == nil {
			continue
		}

		duration := booking.DurationMinutes
		if duration <= 0 {
			duration = domain.DefaultDurationMinutes
		}

		start := booking.StartTime.Minutes()
		end := start + duration

		placement := Placement{
			Booking:   booking,
			StartCell: -1,
			SpanCells: ceilDiv(duration, grid.CellMinutes),
			Cells:     make([]types.TimeString, 0),
		}

		// Конец за пределами суток отображаем как 23:59
		if endTime, err := types.NewTimeStringFromMinutes(end); err == nil {
			placement.EndTime = endTime
		} else {
			placement.EndTime = types.TimeString("23:59")
		}

		for i, cell := range cells {
			cellStart := cell.Minutes()
			if cellStart >= start && cellStart < end {
				if placement.StartCell < 0 {
					placement.StartCell = i
				}
				placement.Cells = append(placement.Cells, cell)
			}
		}

		placements = append(placements, placement)
	}

	return placements
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
