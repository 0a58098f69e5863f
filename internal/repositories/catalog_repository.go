package repositories

import (
	"context"
	"fmt"

	intdb "flightschool/internal/db"
	"flightschool/internal/domain/models"
)

// CatalogRepository serves the reference tables: flight types, chargeables and lessons.
type CatalogRepository struct {
	DB intdb.DBTX
}

func (r CatalogRepository) GetFlightType(ctx context.Context, id int64) (models.FlightType, error) {
	var ft models.FlightType
	err := r.DB.GetContext(ctx, &ft, `SELECT id, name, hourly_rate, requires_solo_signout FROM flight_types WHERE id = ?`, id)
	if err != nil {
		return models.FlightType{}, getErr(err, "flight type")
	}
	return ft, nil
}

func (r CatalogRepository) ListFlightTypes(ctx context.Context) ([]models.FlightType, error) {
	out := []models.FlightType{}
	err := r.DB.SelectContext(ctx, &out, `SELECT id, name, hourly_rate, requires_solo_signout FROM flight_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list flight types: %w", err)
	}
	return out, nil
}

func (r CatalogRepository) CreateFlightType(ctx context.Context, ft *models.FlightType) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO flight_types (name, hourly_rate, requires_solo_signout) VALUES (?, ?, ?)`,
		ft.Name, ft.HourlyRate, ft.RequiresSolo,
	)
	id, err := insertID(res, err, "flight type")
	if err != nil {
		return err
	}
	ft.ID = id
	return nil
}

func (r CatalogRepository) GetChargeable(ctx context.Context, id int64) (models.Chargeable, error) {
	var c models.Chargeable
	if err := r.DB.GetContext(ctx, &c, `SELECT id, name, category, amount FROM chargeables WHERE id = ?`, id); err != nil {
		return models.Chargeable{}, getErr(err, "chargeable")
	}
	return c, nil
}

func (r CatalogRepository) ListChargeables(ctx context.Context) ([]models.Chargeable, error) {
	out := []models.Chargeable{}
	if err := r.DB.SelectContext(ctx, &out, `SELECT id, name, category, amount FROM chargeables ORDER BY category, name`); err != nil {
		return nil, fmt.Errorf("list chargeables: %w", err)
	}
	return out, nil
}

func (r CatalogRepository) CreateChargeable(ctx context.Context, c *models.Chargeable) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO chargeables (name, category, amount) VALUES (?, ?, ?)`,
		c.Name, c.Category, c.Amount,
	)
	id, err := insertID(res, err, "chargeable")
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r CatalogRepository) GetLesson(ctx context.Context, id int64) (models.Lesson, error) {
	var l models.Lesson
	err := r.DB.GetContext(ctx, &l, `SELECT id, syllabus_id, name, description, sequence FROM lessons WHERE id = ?`, id)
	if err != nil {
		return models.Lesson{}, getErr(err, "lesson")
	}
	return l, nil
}

func (r CatalogRepository) ListLessons(ctx context.Context, syllabusID *int64) ([]models.Lesson, error) {
	query := `SELECT id, syllabus_id, name, description, sequence FROM lessons`
	args := []any{}
	if syllabusID != nil {
		query += ` WHERE syllabus_id = ?`
		args = append(args, *syllabusID)
	}
	query += ` ORDER BY sequence, id`

	out := []models.Lesson{}
	if err := r.DB.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return out, nil
}

func (r CatalogRepository) CreateLesson(ctx context.Context, l *models.Lesson) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO lessons (syllabus_id, name, description, sequence) VALUES (?, ?, ?, ?)`,
		l.SyllabusID, l.Name, l.Description, l.Sequence,
	)
	id, err := insertID(res, err, "lesson")
	if err != nil {
		return err
	}
	l.ID = id
	return nil
}
