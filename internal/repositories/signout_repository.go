package repositories

import (
	"context"
	"fmt"

	intdb "flightschool/internal/db"
	"flightschool/internal/domain"
	"flightschool/internal/domain/models"
)

const signoutColumns = `id, booking_id, student_id, weather_checked, notams_checked, fuel_litres, route, remarks,
	status, reviewed_by, reviewed_at, review_note, created_at`

type SignoutRepository struct {
	DB intdb.DBTX
}

func (r SignoutRepository) Create(ctx context.Context, s *models.SoloSignout) error {
	s.CreatedAt = now()
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO solosignout_form (booking_id, student_id, weather_checked, notams_checked, fuel_litres,
			route, remarks, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.BookingID, s.StudentID, s.WeatherChecked, s.NotamsChecked, s.FuelLitres,
		s.Route, s.Remarks, s.Status, s.CreatedAt,
	)
	id, err := insertID(res, err, "solo signout")
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

func (r SignoutRepository) GetForUpdate(ctx context.Context, id int64) (models.SoloSignout, error) {
	var s models.SoloSignout
	if err := r.DB.GetContext(ctx, &s, `SELECT `+signoutColumns+` FROM solosignout_form WHERE id = ? FOR UPDATE`, id); err != nil {
		return models.SoloSignout{}, getErr(err, "solo signout")
	}
	return s, nil
}

func (r SignoutRepository) LatestForBooking(ctx context.Context, bookingID int64) (models.SoloSignout, error) {
	var s models.SoloSignout
	err := r.DB.GetContext(ctx, &s, `SELECT `+signoutColumns+` FROM solosignout_form
		WHERE booking_id = ? ORDER BY id DESC LIMIT 1`, bookingID)
	if err != nil {
		return models.SoloSignout{}, getErr(err, "solo signout")
	}
	return s, nil
}

// Review records the decision on a pending form.
func (r SignoutRepository) Review(ctx context.Context, s models.SoloSignout) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE solosignout_form SET status = ?, reviewed_by = ?, reviewed_at = ?, review_note = ?
		WHERE id = ? AND status = ?`,
		s.Status, s.ReviewedBy, s.ReviewedAt, s.ReviewNote, s.ID, models.SignoutPending,
	)
	if err != nil {
		return fmt.Errorf("review solo signout: %w", err)
	}
	return intdb.RequireAffected(res, domain.ConflictError{Resource: "solo signout", Msg: "signout already reviewed"})
}
