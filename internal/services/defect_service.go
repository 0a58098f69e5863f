package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flightschool/internal/domain"
	"flightschool/internal/domain/models"
	"flightschool/internal/repositories"
	"flightschool/internal/utils"
)

type DefectService struct {
	Store     repositories.Store
	RequestID string
	Now       func() time.Time
}

type DefectInput struct {
	AircraftID  int64  `json:"aircraft_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Report logs a new Open defect with the actor as reporter.
func (s DefectService) Report(ctx context.Context, actor domain.Actor, in DefectInput) (models.Defect, error) {
	if err := requireID("aircraft_id", in.AircraftID); err != nil {
		return models.Defect{}, err
	}
	name, err := requireText("name", in.Name)
	if err != nil {
		return models.Defect{}, err
	}
	if _, err := s.Store.Aircraft().Get(ctx, in.AircraftID); err != nil {
		return models.Defect{}, err
	}
	d := models.Defect{
		AircraftID:   in.AircraftID,
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		Status:       models.DefectOpen,
		ReportedBy:   actor.UserID,
		ReportedDate: clock(s.Now),
	}
	if err := s.Store.Defects().Create(ctx, &d); err != nil {
		utils.LogError(s.RequestID, "defect", "report", err)
		return models.Defect{}, err
	}
	utils.LogEvent(s.RequestID, "defect", "report", fmt.Sprintf("defect_id=%d aircraft_id=%d", d.ID, d.AircraftID))
	return d, nil
}

func (s DefectService) Get(ctx context.Context, id int64) (models.Defect, error) {
	return s.Store.Defects().Get(ctx, id)
}

func (s DefectService) List(ctx context.Context, f models.DefectFilter) ([]models.Defect, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.ValidationError{Field: "status", Msg: "unknown defect status"}
	}
	return s.Store.Defects().List(ctx, f)
}

// UpdateStatus accepts any of the three statuses in any order.
func (s DefectService) UpdateStatus(ctx context.Context, actor domain.Actor, id int64, status models.DefectStatus) (models.Defect, error) {
	if err := requireStaff(actor); err != nil {
		return models.Defect{}, err
	}
	if !status.Valid() {
		return models.Defect{}, domain.ValidationError{Field: "status", Msg: "must be Open, In Progress or Resolved"}
	}
	if err := s.Store.Defects().UpdateStatus(ctx, id, status); err != nil {
		utils.LogError(s.RequestID, "defect", "update_status", err)
		return models.Defect{}, err
	}
	utils.LogEvent(s.RequestID, "defect", "update_status", fmt.Sprintf("defect_id=%d status=%s", id, status))
	return s.Store.Defects().Get(ctx, id)
}

func (s DefectService) AddComment(ctx context.Context, actor domain.Actor, id int64, text string) (models.Defect, error) {
	text, err := requireText("text", text)
	if err != nil {
		return models.Defect{}, err
	}
	c := models.DefectComment{Text: text, Author: actor.Label(), Timestamp: clock(s.Now)}
	if err := s.Store.Defects().AppendComment(ctx, id, c); err != nil {
		utils.LogError(s.RequestID, "defect", "comment", err)
		return models.Defect{}, err
	}
	return s.Store.Defects().Get(ctx, id)
}
