package repositories

import (
	"context"
	"fmt"
	"strings"

	intdb "flightschool/internal/db"
	"flightschool/internal/domain"
	"flightschool/internal/domain/models"

	"github.com/shopspring/decimal"
)

const userColumns = `id, first_name, last_name, email, phone, is_member, is_staff, role, password_hash,
	credit_balance, licence_number, licence_expiry, medical_expiry, ratings, endorsements, created_at, updated_at`

type UserRepository struct {
	DB intdb.DBTX
}

func (r UserRepository) Create(ctx context.Context, u *models.User) error {
	ts := now()
	u.CreatedAt, u.UpdatedAt = ts, ts
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (first_name, last_name, email, phone, is_member, is_staff, role, password_hash,
			credit_balance, licence_number, licence_expiry, medical_expiry, ratings, endorsements, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.FirstName, u.LastName, u.Email, u.Phone, u.IsMember, u.IsStaff, u.Role, u.PasswordHash,
		u.CreditBalance, u.LicenceNumber, u.LicenceExpiry, u.MedicalExpiry, u.Ratings, u.Endorsements, u.CreatedAt, u.UpdatedAt,
	)
	id, err := insertID(res, err, "user")
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (r UserRepository) Get(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	if err := r.DB.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = ?`, id); err != nil {
		return models.User{}, getErr(err, "user")
	}
	return u, nil
}

func (r UserRepository) GetForUpdate(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	if err := r.DB.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = ? FOR UPDATE`, id); err != nil {
		return models.User{}, getErr(err, "user")
	}
	return u, nil
}

func (r UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.DB.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER(?)`, strings.TrimSpace(email))
	if err != nil {
		return models.User{}, getErr(err, "user")
	}
	return u, nil
}

func (r UserRepository) List(ctx context.Context, f models.UserFilter) ([]models.User, error) {
	where := []string{}
	args := []any{}
	if f.MembersOnly {
		where = append(where, "is_member = 1")
	}
	if f.StaffOnly {
		where = append(where, "is_staff = 1")
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		where = append(where, "(first_name LIKE ? OR last_name LIKE ? OR email LIKE ?)")
		args = append(args, like, like, like)
	}

	query := `SELECT ` + userColumns + ` FROM users`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY last_name, first_name, id"

	out := []models.User{}
	if err := r.DB.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

// Update writes profile fields. Credit balance is only changed by AdjustCredit.
func (r UserRepository) Update(ctx context.Context, u models.User) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE users SET first_name = ?, last_name = ?, email = ?, phone = ?, is_member = ?, is_staff = ?,
			role = ?, password_hash = ?, licence_number = ?, licence_expiry = ?, medical_expiry = ?,
			ratings = ?, endorsements = ?, updated_at = ?
		WHERE id = ?`,
		u.FirstName, u.LastName, u.Email, u.Phone, u.IsMember, u.IsStaff,
		u.Role, u.PasswordHash, u.LicenceNumber, u.LicenceExpiry, u.MedicalExpiry,
		u.Ratings, u.Endorsements, now(), u.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return intdb.RequireAffected(res, domain.NotFoundError{Resource: "user"})
}

func (r UserRepository) AdjustCredit(ctx context.Context, id int64, delta decimal.Decimal) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE users SET credit_balance = credit_balance + ?, updated_at = ?
		WHERE id = ? AND credit_balance + ? >= 0`,
		delta, now(), id, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust credit: %w", err)
	}
	return intdb.RequireAffected(res, domain.ConflictError{
		Resource: "user",
		Msg:      "insufficient credit balance",
	})
}
