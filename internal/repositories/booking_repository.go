package repositories

import (
	"context"
	"fmt"
	"strings"

	intdb "flightschool/internal/db"
	"flightschool/internal/domain"
	"flightschool/internal/domain/models"
)

const bookingColumns = `id, aircraft_id, user_id, instructor_id, flight_type_id, lesson_id, booking_type,
	start_time, end_time, status, checked_out_time, eta, route, description, voucher_code,
	tacho_start, tacho_end, hobbs_start, hobbs_end, flight_time, created_at, updated_at`

type BookingRepository struct {
	DB intdb.DBTX
}

func (r BookingRepository) Create(ctx context.Context, b *models.Booking) error {
	ts := now()
	b.CreatedAt, b.UpdatedAt = ts, ts
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO bookings (aircraft_id, user_id, instructor_id, flight_type_id, lesson_id, booking_type,
			start_time, end_time, status, route, description, voucher_code, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.AircraftID, b.UserID, b.InstructorID, b.FlightTypeID, b.LessonID, b.BookingType,
		b.StartTime, b.EndTime, b.Status, b.Route, b.Description, b.VoucherCode, b.CreatedAt, b.UpdatedAt,
	)
	id, err := insertID(res, err, "booking")
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (r BookingRepository) Get(ctx context.Context, id int64) (models.Booking, error) {
	var b models.Booking
	if err := r.DB.GetContext(ctx, &b, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id); err != nil {
		return models.Booking{}, getErr(err, "booking")
	}
	return b, nil
}

// GetForUpdate locks the booking row until the surrounding transaction ends.
func (r BookingRepository) GetForUpdate(ctx context.Context, id int64) (models.Booking, error) {
	var b models.Booking
	if err := r.DB.GetContext(ctx, &b, `SELECT `+bookingColumns+` FROM bookings WHERE id = ? FOR UPDATE`, id); err != nil {
		return models.Booking{}, getErr(err, "booking")
	}
	return b, nil
}

func bookingViewSelect() string {
	return `SELECT ` + prefixed("b", bookingColumns) + `,
			TRIM(CONCAT(u.first_name, ' ', u.last_name)) AS member_name,
			u.email AS member_email,
			TRIM(CONCAT(i.first_name, ' ', i.last_name)) AS instructor_name,
			a.registration AS aircraft_registration,
			a.type AS aircraft_type,
			ft.name AS flight_type_name,
			l.name AS lesson_name
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		LEFT JOIN users i ON i.id = b.instructor_id
		JOIN aircraft a ON a.id = b.aircraft_id
		JOIN flight_types ft ON ft.id = b.flight_type_id
		LEFT JOIN lessons l ON l.id = b.lesson_id`
}

func (r BookingRepository) GetView(ctx context.Context, id int64) (models.BookingView, error) {
	var v models.BookingView
	if err := r.DB.GetContext(ctx, &v, bookingViewSelect()+` WHERE b.id = ?`, id); err != nil {
		return models.BookingView{}, getErr(err, "booking")
	}
	return v, nil
}

func (r BookingRepository) List(ctx context.Context, f models.BookingFilter) ([]models.BookingView, error) {
	where := []string{}
	args := []any{}
	if f.From != nil {
		where = append(where, "b.end_time >= ?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		where = append(where, "b.start_time < ?")
		args = append(args, *f.To)
	}
	if f.AircraftID != nil {
		where = append(where, "b.aircraft_id = ?")
		args = append(args, *f.AircraftID)
	}
	if f.UserID != nil {
		where = append(where, "b.user_id = ?")
		args = append(args, *f.UserID)
	}
	if f.InstructorID != nil {
		where = append(where, "b.instructor_id = ?")
		args = append(args, *f.InstructorID)
	}
	if f.Status != "" {
		where = append(where, "b.status = ?")
		args = append(args, f.Status)
	}

	query := bookingViewSelect()
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY b.start_time ASC, b.id ASC"

	out := []models.BookingView{}
	if err := r.DB.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return out, nil
}

func (r BookingRepository) Update(ctx context.Context, b models.Booking, expected models.BookingStatus) error {
	b.UpdatedAt = now()
	res, err := r.DB.ExecContext(ctx, `
		UPDATE bookings SET
			aircraft_id = ?, user_id = ?, instructor_id = ?, flight_type_id = ?, lesson_id = ?,
			start_time = ?, end_time = ?, status = ?, checked_out_time = ?, eta = ?,
			route = ?, description = ?, tacho_start = ?, tacho_end = ?, hobbs_start = ?,
			hobbs_end = ?, flight_time = ?, updated_at = ?
		WHERE id = ? AND status = ?`,
		b.AircraftID, b.UserID, b.InstructorID, b.FlightTypeID, b.LessonID,
		b.StartTime, b.EndTime, b.Status, b.CheckedOutTime, b.ETA,
		b.Route, b.Description, b.TachoStart, b.TachoEnd, b.HobbsStart,
		b.HobbsEnd, b.FlightTime, b.UpdatedAt,
		b.ID, expected,
	)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	return intdb.RequireAffected(res, domain.ConflictError{
		Resource: "booking",
		Msg:      fmt.Sprintf("booking %d is no longer %s", b.ID, expected),
	})
}
