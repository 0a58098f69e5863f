package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingUnconfirmed BookingStatus = "unconfirmed"
	BookingConfirmed   BookingStatus = "confirmed"
	BookingFlying      BookingStatus = "flying"
	BookingComplete    BookingStatus = "complete"
)

var bookingStatusRank = map[BookingStatus]int{
	BookingUnconfirmed: 0,
	BookingConfirmed:   1,
	BookingFlying:      2,
	BookingComplete:    3,
}

func (s BookingStatus) Valid() bool {
	_, ok := bookingStatusRank[s]
	return ok
}

// CanTransitionTo allows exactly one forward step.
func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	from, ok := bookingStatusRank[s]
	if !ok {
		return false
	}
	next, ok := bookingStatusRank[to]
	return ok && next == from+1
}

type BookingType string

const (
	BookingTypeMember BookingType = "member"
	BookingTypeTrial  BookingType = "trial"
)

type Booking struct {
	ID             int64            `db:"id" json:"id"`
	AircraftID     int64            `db:"aircraft_id" json:"aircraft_id"`
	UserID         int64            `db:"user_id" json:"user_id"`
	InstructorID   *int64           `db:"instructor_id" json:"instructor_id"`
	FlightTypeID   int64            `db:"flight_type_id" json:"flight_type_id"`
	LessonID       *int64           `db:"lesson_id" json:"lesson_id"`
	BookingType    BookingType      `db:"booking_type" json:"booking_type"`
	StartTime      time.Time        `db:"start_time" json:"start_time"`
	EndTime        time.Time        `db:"end_time" json:"end_time"`
	Status         BookingStatus    `db:"status" json:"status"`
	CheckedOutTime *time.Time       `db:"checked_out_time" json:"checked_out_time"`
	ETA            *time.Time       `db:"eta" json:"eta"`
	Route          *string          `db:"route" json:"route"`
	Description    *string          `db:"description" json:"description"`
	VoucherCode    *string          `db:"voucher_code" json:"voucher_code"`
	TachoStart     *decimal.Decimal `db:"tacho_start" json:"tacho_start"`
	TachoEnd       *decimal.Decimal `db:"tacho_end" json:"tacho_end"`
	HobbsStart     *decimal.Decimal `db:"hobbs_start" json:"hobbs_start"`
	HobbsEnd       *decimal.Decimal `db:"hobbs_end" json:"hobbs_end"`
	FlightTime     *decimal.Decimal `db:"flight_time" json:"flight_time"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at" json:"updated_at"`
}

// BookingView is a booking joined with the display names of its references.
type BookingView struct {
	Booking
	MemberName     string  `db:"member_name" json:"member_name"`
	MemberEmail    string  `db:"member_email" json:"member_email"`
	InstructorName *string `db:"instructor_name" json:"instructor_name"`
	AircraftReg    string  `db:"aircraft_registration" json:"aircraft_registration"`
	AircraftType   string  `db:"aircraft_type" json:"aircraft_type"`
	FlightTypeName string  `db:"flight_type_name" json:"flight_type_name"`
	LessonName     *string `db:"lesson_name" json:"lesson_name"`
}

type BookingFilter struct {
	From         *time.Time
	To           *time.Time
	AircraftID   *int64
	UserID       *int64
	InstructorID *int64
	Status       BookingStatus
}

// BookingEdit carries the generic edit form; nil fields are left unchanged.
type BookingEdit struct {
	UserID       *int64     `json:"user_id"`
	AircraftID   *int64     `json:"aircraft_id"`
	InstructorID *int64     `json:"instructor_id"`
	FlightTypeID *int64     `json:"flight_type_id"`
	LessonID     *int64     `json:"lesson_id"`
	StartTime    *time.Time `json:"start_time"`
	EndTime      *time.Time `json:"end_time"`
	Description  *string    `json:"description"`
	Route        *string    `json:"route"`
}

// Apply copies the set fields onto b.
func (e BookingEdit) Apply(b *Booking) {
	if e.UserID != nil {
		b.UserID = *e.UserID
	}
	if e.AircraftID != nil {
		b.AircraftID = *e.AircraftID
	}
	if e.InstructorID != nil {
		if *e.InstructorID == 0 {
			b.InstructorID = nil
		} else {
			b.InstructorID = e.InstructorID
		}
	}
	if e.FlightTypeID != nil {
		b.FlightTypeID = *e.FlightTypeID
	}
	if e.LessonID != nil {
		if *e.LessonID == 0 {
			b.LessonID = nil
		} else {
			b.LessonID = e.LessonID
		}
	}
	if e.StartTime != nil {
		b.StartTime = *e.StartTime
	}
	if e.EndTime != nil {
		b.EndTime = *e.EndTime
	}
	if e.Description != nil {
		b.Description = e.Description
	}
	if e.Route != nil {
		b.Route = e.Route
	}
}
