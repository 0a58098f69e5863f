package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Syllabus struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
}

type Enrollment struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	SyllabusID int64     `db:"syllabus_id" json:"syllabus_id"`
	EnrolledAt time.Time `db:"enrolled_at" json:"enrolled_at"`
	Status     string    `db:"status" json:"status"`
}

type MembershipType struct {
	ID             int64           `db:"id" json:"id"`
	Name           string          `db:"name" json:"name"`
	Price          decimal.Decimal `db:"price" json:"price"`
	DurationMonths int             `db:"duration_months" json:"duration_months"`
}

type Membership struct {
	ID               int64     `db:"id" json:"id"`
	UserID           int64     `db:"user_id" json:"user_id"`
	MembershipTypeID int64     `db:"membership_type_id" json:"membership_type_id"`
	StartDate        time.Time `db:"start_date" json:"start_date"`
	ExpiryDate       time.Time `db:"expiry_date" json:"expiry_date"`
}

// Active reports whether the membership covers now.
func (m Membership) Active(now time.Time) bool {
	return !now.Before(m.StartDate) && now.Before(m.ExpiryDate)
}
