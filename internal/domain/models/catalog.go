package models

import "github.com/shopspring/decimal"

type FlightType struct {
	ID           int64           `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	HourlyRate   decimal.Decimal `db:"hourly_rate" json:"hourly_rate"`
	RequiresSolo bool            `db:"requires_solo_signout" json:"requires_solo_signout"`
}

const (
	ChargeLandingFee = "Landing Fee"
	ChargeAirwaysFee = "Airways Fee"
	ChargeOther      = "Other Charges"
)

func ValidChargeCategory(c string) bool {
	switch c {
	case ChargeLandingFee, ChargeAirwaysFee, ChargeOther:
		return true
	}
	return false
}

type Chargeable struct {
	ID       int64           `db:"id" json:"id"`
	Name     string          `db:"name" json:"name"`
	Category string          `db:"category" json:"category"`
	Amount   decimal.Decimal `db:"amount" json:"amount"`
}

type Lesson struct {
	ID          int64   `db:"id" json:"id"`
	SyllabusID  *int64  `db:"syllabus_id" json:"syllabus_id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	Sequence    int     `db:"sequence" json:"sequence"`
}
