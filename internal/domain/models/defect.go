package models

import "time"

type DefectStatus string

const (
	DefectOpen       DefectStatus = "Open"
	DefectInProgress DefectStatus = "In Progress"
	DefectResolved   DefectStatus = "Resolved"
)

func (s DefectStatus) Valid() bool {
	switch s {
	case DefectOpen, DefectInProgress, DefectResolved:
		return true
	}
	return false
}

type DefectComment struct {
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

type Defect struct {
	ID           int64                   `db:"id" json:"id"`
	AircraftID   int64                   `db:"aircraft_id" json:"aircraft_id"`
	Name         string                  `db:"name" json:"name"`
	Description  string                  `db:"description" json:"description"`
	Status       DefectStatus            `db:"status" json:"status"`
	ReportedBy   int64                   `db:"reported_by" json:"reported_by"`
	ReportedDate time.Time               `db:"reported_date" json:"reported_date"`
	Comments     JSONList[DefectComment] `db:"comments" json:"comments"`
	UpdatedAt    time.Time               `db:"updated_at" json:"updated_at"`
}

type DefectFilter struct {
	AircraftID *int64
	Status     DefectStatus
}
