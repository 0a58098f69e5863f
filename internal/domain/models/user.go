package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID            int64            `db:"id" json:"id"`
	FirstName     string           `db:"first_name" json:"first_name"`
	LastName      string           `db:"last_name" json:"last_name"`
	Email         string           `db:"email" json:"email"`
	Phone         *string          `db:"phone" json:"phone"`
	IsMember      bool             `db:"is_member" json:"is_member"`
	IsStaff       bool             `db:"is_staff" json:"is_staff"`
	Role          string           `db:"role" json:"role"`
	PasswordHash  *string          `db:"password_hash" json:"-"`
	CreditBalance decimal.Decimal  `db:"credit_balance" json:"credit_balance"`
	LicenceNumber *string          `db:"licence_number" json:"licence_number"`
	LicenceExpiry *time.Time       `db:"licence_expiry" json:"licence_expiry"`
	MedicalExpiry *time.Time       `db:"medical_expiry" json:"medical_expiry"`
	Ratings       JSONList[string] `db:"ratings" json:"ratings"`
	Endorsements  JSONList[string] `db:"endorsements" json:"endorsements"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updated_at"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type UserFilter struct {
	MembersOnly bool
	StaffOnly   bool
	Search      string
}
