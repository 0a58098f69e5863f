package repositories

import (
	"context"

	intdb "flightschool/internal/db"
	"flightschool/internal/domain/models"
)

type DebriefRepository struct {
	DB intdb.DBTX
}

func (r DebriefRepository) Create(ctx context.Context, d *models.FlightDebrief) error {
	d.CreatedAt = now()
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO flight_debriefs (booking_id, student_id, instructor_id, ratings, average_rating,
			rated_count, strengths, improvements, comments, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.BookingID, d.StudentID, d.InstructorID, d.Ratings, d.AverageRating,
		d.RatedCount, d.Strengths, d.Improvements, d.Comments, d.CreatedAt,
	)
	id, err := insertID(res, err, "debrief")
	if err != nil {
		return err
	}
	d.ID = id
	return nil
}

func (r DebriefRepository) GetByBooking(ctx context.Context, bookingID int64) (models.FlightDebrief, error) {
	var d models.FlightDebrief
	err := r.DB.GetContext(ctx, &d, `
		SELECT id, booking_id, student_id, instructor_id, ratings, average_rating, rated_count,
			strengths, improvements, comments, created_at
		FROM flight_debriefs WHERE booking_id = ?`, bookingID)
	if err != nil {
		return models.FlightDebrief{}, getErr(err, "debrief")
	}
	return d, nil
}
