package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	intdb "flightschool/internal/db"
	"flightschool/internal/domain"
	"flightschool/internal/domain/models"
)

const defectColumns = `id, aircraft_id, name, description, status, reported_by, reported_date, comments, updated_at`

type DefectRepository struct {
	DB intdb.DBTX
}

func (r DefectRepository) Create(ctx context.Context, d *models.Defect) error {
	d.UpdatedAt = now()
	if d.ReportedDate.IsZero() {
		d.ReportedDate = d.UpdatedAt
	}
	if d.Comments == nil {
		d.Comments = models.JSONList[models.DefectComment]{}
	}
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO defects (aircraft_id, name, description, status, reported_by, reported_date, comments, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.AircraftID, d.Name, d.Description, d.Status, d.ReportedBy, d.ReportedDate, d.Comments, d.UpdatedAt,
	)
	id, err := insertID(res, err, "defect")
	if err != nil {
		return err
	}
	d.ID = id
	return nil
}

func (r DefectRepository) Get(ctx context.Context, id int64) (models.Defect, error) {
	var d models.Defect
	if err := r.DB.GetContext(ctx, &d, `SELECT `+defectColumns+` FROM defects WHERE id = ?`, id); err != nil {
		return models.Defect{}, getErr(err, "defect")
	}
	return d, nil
}

func (r DefectRepository) List(ctx context.Context, f models.DefectFilter) ([]models.Defect, error) {
	where := []string{}
	args := []any{}
	if f.AircraftID != nil {
		where = append(where, "aircraft_id = ?")
		args = append(args, *f.AircraftID)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}

	query := `SELECT ` + defectColumns + ` FROM defects`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY reported_date DESC, id DESC"

	out := []models.Defect{}
	if err := r.DB.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list defects: %w", err)
	}
	return out, nil
}

func (r DefectRepository) UpdateStatus(ctx context.Context, id int64, status models.DefectStatus) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE defects SET status = ?, updated_at = ? WHERE id = ?`, status, now(), id)
	if err != nil {
		return fmt.Errorf("update defect status: %w", err)
	}
	return intdb.RequireAffected(res, domain.NotFoundError{Resource: "defect"})
}

// AppendComment appends in SQL so concurrent comments are never lost.
func (r DefectRepository) AppendComment(ctx context.Context, id int64, c models.DefectComment) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode defect comment: %w", err)
	}
	res, err := r.DB.ExecContext(ctx, `
		UPDATE defects
		SET comments = JSON_ARRAY_APPEND(COALESCE(comments, JSON_ARRAY()), '$', CAST(? AS JSON)), updated_at = ?
		WHERE id = ?`,
		string(raw), now(), id,
	)
	if err != nil {
		return fmt.Errorf("append defect comment: %w", err)
	}
	return intdb.RequireAffected(res, domain.NotFoundError{Resource: "defect"})
}
