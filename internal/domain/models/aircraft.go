package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AircraftStatus string

const (
	AircraftActive      AircraftStatus = "Active"
	AircraftMaintenance AircraftStatus = "Maintenance"
	AircraftInactive    AircraftStatus = "Inactive"
)

func (s AircraftStatus) Valid() bool {
	switch s {
	case AircraftActive, AircraftMaintenance, AircraftInactive:
		return true
	}
	return false
}

type Aircraft struct {
	ID           int64           `db:"id" json:"id"`
	Registration string          `db:"registration" json:"registration"`
	Type         string          `db:"type" json:"type"`
	Model        string          `db:"model" json:"model"`
	Status       AircraftStatus  `db:"status" json:"status"`
	CurrentTacho decimal.Decimal `db:"current_tacho" json:"current_tacho"`
	CurrentHobbs decimal.Decimal `db:"current_hobbs" json:"current_hobbs"`
	RecordHobbs  bool            `db:"record_hobbs" json:"record_hobbs"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// Readings returns the aircraft's current meters.
func (a Aircraft) Readings() MeterReadings {
	return MeterReadings{Tacho: a.CurrentTacho, Hobbs: a.CurrentHobbs}
}

type MeterReadings struct {
	Tacho decimal.Decimal `json:"tacho"`
	Hobbs decimal.Decimal `json:"hobbs"`
}
