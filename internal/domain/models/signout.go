package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SignoutStatus string

const (
	SignoutPending  SignoutStatus = "pending"
	SignoutApproved SignoutStatus = "approved"
	SignoutRejected SignoutStatus = "rejected"
)

// SoloSignout is the authorization form a student submits before a solo flight.
type SoloSignout struct {
	ID             int64           `db:"id" json:"id"`
	BookingID      int64           `db:"booking_id" json:"booking_id"`
	StudentID      int64           `db:"student_id" json:"student_id"`
	WeatherChecked bool            `db:"weather_checked" json:"weather_checked"`
	NotamsChecked  bool            `db:"notams_checked" json:"notams_checked"`
	FuelLitres     decimal.Decimal `db:"fuel_litres" json:"fuel_litres"`
	Route          *string         `db:"route" json:"route"`
	Remarks        *string         `db:"remarks" json:"remarks"`
	Status         SignoutStatus   `db:"status" json:"status"`
	ReviewedBy     *int64          `db:"reviewed_by" json:"reviewed_by"`
	ReviewedAt     *time.Time      `db:"reviewed_at" json:"reviewed_at"`
	ReviewNote     *string         `db:"review_note" json:"review_note"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}
