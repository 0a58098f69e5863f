package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebriefCategories are the fixed rating categories of a flight debrief.
var DebriefCategories = []string{
	"preflight",
	"takeoff",
	"circuit",
	"landing",
	"airmanship",
	"radio",
	"navigation",
	"emergencies",
}

type FlightDebrief struct {
	ID            int64            `db:"id" json:"id"`
	BookingID     int64            `db:"booking_id" json:"booking_id"`
	StudentID     int64            `db:"student_id" json:"student_id"`
	InstructorID  int64            `db:"instructor_id" json:"instructor_id"`
	Ratings       JSONMap[int]     `db:"ratings" json:"ratings"`
	AverageRating *decimal.Decimal `db:"average_rating" json:"average_rating"`
	RatedCount    int              `db:"rated_count" json:"rated_count"`
	Strengths     *string          `db:"strengths" json:"strengths"`
	Improvements  *string          `db:"improvements" json:"improvements"`
	Comments      *string          `db:"comments" json:"comments"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
}
