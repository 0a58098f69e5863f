package repositories

import (
	"context"
	"fmt"

	intdb "flightschool/internal/db"
	"flightschool/internal/domain"
	"flightschool/internal/domain/models"
)

const aircraftColumns = `id, registration, type, model, status, current_tacho, current_hobbs, record_hobbs, created_at, updated_at`

type AircraftRepository struct {
	DB intdb.DBTX
}

func (r AircraftRepository) Create(ctx context.Context, a *models.Aircraft) error {
	ts := now()
	a.CreatedAt, a.UpdatedAt = ts, ts
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO aircraft (registration, type, model, status, current_tacho, current_hobbs, record_hobbs, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Registration, a.Type, a.Model, a.Status, a.CurrentTacho, a.CurrentHobbs, a.RecordHobbs, a.CreatedAt, a.UpdatedAt,
	)
	id, err := insertID(res, err, "aircraft")
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (r AircraftRepository) Get(ctx context.Context, id int64) (models.Aircraft, error) {
	var a models.Aircraft
	if err := r.DB.GetContext(ctx, &a, `SELECT `+aircraftColumns+` FROM aircraft WHERE id = ?`, id); err != nil {
		return models.Aircraft{}, getErr(err, "aircraft")
	}
	return a, nil
}

func (r AircraftRepository) GetForUpdate(ctx context.Context, id int64) (models.Aircraft, error) {
	var a models.Aircraft
	if err := r.DB.GetContext(ctx, &a, `SELECT `+aircraftColumns+` FROM aircraft WHERE id = ? FOR UPDATE`, id); err != nil {
		return models.Aircraft{}, getErr(err, "aircraft")
	}
	return a, nil
}

func (r AircraftRepository) List(ctx context.Context) ([]models.Aircraft, error) {
	out := []models.Aircraft{}
	if err := r.DB.SelectContext(ctx, &out, `SELECT `+aircraftColumns+` FROM aircraft ORDER BY registration`); err != nil {
		return nil, fmt.Errorf("list aircraft: %w", err)
	}
	return out, nil
}

// Update writes descriptive fields; meters only change through UpdateMeters.
func (r AircraftRepository) Update(ctx context.Context, a models.Aircraft) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE aircraft SET registration = ?, type = ?, model = ?, status = ?, record_hobbs = ?, updated_at = ?
		WHERE id = ?`,
		a.Registration, a.Type, a.Model, a.Status, a.RecordHobbs, now(), a.ID,
	)
	if err != nil {
		return fmt.Errorf("update aircraft: %w", err)
	}
	return intdb.RequireAffected(res, domain.NotFoundError{Resource: "aircraft"})
}

func (r AircraftRepository) UpdateMeters(ctx context.Context, id int64, prev, next models.MeterReadings) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE aircraft SET current_tacho = ?, current_hobbs = ?, updated_at = ?
		WHERE id = ? AND current_tacho = ? AND current_hobbs = ?`,
		next.Tacho, next.Hobbs, now(), id, prev.Tacho, prev.Hobbs,
	)
	if err != nil {
		return fmt.Errorf("update aircraft meters: %w", err)
	}
	return intdb.RequireAffected(res, domain.ConflictError{
		Resource: "aircraft",
		Msg:      "meter readings changed since they were read",
	})
}
