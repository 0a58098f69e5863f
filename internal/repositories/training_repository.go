package repositories

import (
	"context"
	"fmt"

	intdb "flightschool/internal/db"
	"flightschool/internal/domain/models"
)

// TrainingRepository covers syllabuses, enrollments and memberships.
type TrainingRepository struct {
	DB intdb.DBTX
}

func (r TrainingRepository) ListSyllabuses(ctx context.Context) ([]models.Syllabus, error) {
	out := []models.Syllabus{}
	if err := r.DB.SelectContext(ctx, &out, `SELECT id, name, description FROM syllabuses ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list syllabuses: %w", err)
	}
	return out, nil
}

func (r TrainingRepository) GetSyllabus(ctx context.Context, id int64) (models.Syllabus, error) {
	var s models.Syllabus
	if err := r.DB.GetContext(ctx, &s, `SELECT id, name, description FROM syllabuses WHERE id = ?`, id); err != nil {
		return models.Syllabus{}, getErr(err, "syllabus")
	}
	return s, nil
}

func (r TrainingRepository) CreateSyllabus(ctx context.Context, s *models.Syllabus) error {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO syllabuses (name, description) VALUES (?, ?)`, s.Name, s.Description)
	id, err := insertID(res, err, "syllabus")
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

func (r TrainingRepository) Enroll(ctx context.Context, e *models.Enrollment) error {
	e.EnrolledAt = now()
	if e.Status == "" {
		e.Status = "active"
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO student_syllabus_enrollments (user_id, syllabus_id, enrolled_at, status) VALUES (?, ?, ?, ?)`,
		e.UserID, e.SyllabusID, e.EnrolledAt, e.Status,
	)
	id, err := insertID(res, err, "enrollment")
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

func (r TrainingRepository) ListEnrollments(ctx context.Context, userID int64) ([]models.Enrollment, error) {
	out := []models.Enrollment{}
	err := r.DB.SelectContext(ctx, &out, `
		SELECT id, user_id, syllabus_id, enrolled_at, status
		FROM student_syllabus_enrollments WHERE user_id = ? ORDER BY enrolled_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return out, nil
}

func (r TrainingRepository) ListMembershipTypes(ctx context.Context) ([]models.MembershipType, error) {
	out := []models.MembershipType{}
	err := r.DB.SelectContext(ctx, &out, `SELECT id, name, price, duration_months FROM membership_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list membership types: %w", err)
	}
	return out, nil
}

func (r TrainingRepository) GetMembershipType(ctx context.Context, id int64) (models.MembershipType, error) {
	var mt models.MembershipType
	err := r.DB.GetContext(ctx, &mt, `SELECT id, name, price, duration_months FROM membership_types WHERE id = ?`, id)
	if err != nil {
		return models.MembershipType{}, getErr(err, "membership type")
	}
	return mt, nil
}

func (r TrainingRepository) CreateMembershipType(ctx context.Context, mt *models.MembershipType) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO membership_types (name, price, duration_months) VALUES (?, ?, ?)`,
		mt.Name, mt.Price, mt.DurationMonths,
	)
	id, err := insertID(res, err, "membership type")
	if err != nil {
		return err
	}
	mt.ID = id
	return nil
}

func (r TrainingRepository) CreateMembership(ctx context.Context, m *models.Membership) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO memberships (user_id, membership_type_id, start_date, expiry_date) VALUES (?, ?, ?, ?)`,
		m.UserID, m.MembershipTypeID, m.StartDate, m.ExpiryDate,
	)
	id, err := insertID(res, err, "membership")
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

func (r TrainingRepository) ListMemberships(ctx context.Context, userID int64) ([]models.Membership, error) {
	out := []models.Membership{}
	err := r.DB.SelectContext(ctx, &out, `
		SELECT id, user_id, membership_type_id, start_date, expiry_date
		FROM memberships WHERE user_id = ? ORDER BY start_date DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	return out, nil
}
