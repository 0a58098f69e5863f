package services

import (
	"context"
	"fmt"
	"strings"

	"flightschool/internal/domain"
	"flightschool/internal/domain/models"
	"flightschool/internal/repositories"
	"flightschool/internal/utils"

	"github.com/shopspring/decimal"
)

type AircraftService struct {
	Store     repositories.Store
	RequestID string
}

type AircraftInput struct {
	Registration string                `json:"registration"`
	Type         string                `json:"type"`
	Model        string                `json:"model"`
	Status       models.AircraftStatus `json:"status"`
	CurrentTacho *decimal.Decimal      `json:"current_tacho"`
	CurrentHobbs *decimal.Decimal      `json:"current_hobbs"`
	RecordHobbs  *bool                 `json:"record_hobbs"`
}

func (s AircraftService) List(ctx context.Context) ([]models.Aircraft, error) {
	return s.Store.Aircraft().List(ctx)
}

func (s AircraftService) Get(ctx context.Context, id int64) (models.Aircraft, error) {
	return s.Store.Aircraft().Get(ctx, id)
}

func (s AircraftService) Create(ctx context.Context, actor domain.Actor, in AircraftInput) (models.Aircraft, error) {
	if err := requireStaff(actor); err != nil {
		return models.Aircraft{}, err
	}
	reg, err := requireText("registration", in.Registration)
	if err != nil {
		return models.Aircraft{}, err
	}
	typ, err := requireText("type", in.Type)
	if err != nil {
		return models.Aircraft{}, err
	}
	a := models.Aircraft{
		Registration: strings.ToUpper(reg),
		Type:         typ,
		Model:        strings.TrimSpace(in.Model),
		Status:       models.AircraftActive,
		CurrentTacho: decimal.Zero,
		CurrentHobbs: decimal.Zero,
	}
	if in.Status != "" {
		if !in.Status.Valid() {
			return models.Aircraft{}, domain.ValidationError{Field: "status", Msg: "must be Active, Maintenance or Inactive"}
		}
		a.Status = in.Status
	}
	if in.CurrentTacho != nil {
		a.CurrentTacho = *in.CurrentTacho
	}
	if in.CurrentHobbs != nil {
		a.CurrentHobbs = *in.CurrentHobbs
	}
	if a.CurrentTacho.IsNegative() || a.CurrentHobbs.IsNegative() {
		return models.Aircraft{}, domain.ValidationError{Field: "current_tacho", Msg: "meter readings must not be negative"}
	}
	if in.RecordHobbs != nil {
		a.RecordHobbs = *in.RecordHobbs
	}
	if err := s.Store.Aircraft().Create(ctx, &a); err != nil {
		utils.LogError(s.RequestID, "aircraft", "create", err)
		return models.Aircraft{}, err
	}
	utils.LogEvent(s.RequestID, "aircraft", "create", "registration="+a.Registration)
	return a, nil
}

// Update edits descriptive fields; meter edits may only move readings forward.
func (s AircraftService) Update(ctx context.Context, actor domain.Actor, id int64, in AircraftInput) (models.Aircraft, error) {
	if err := requireStaff(actor); err != nil {
		return models.Aircraft{}, err
	}
	var out models.Aircraft
	err := s.Store.InTx(ctx, func(r repositories.Repos) error {
		a, err := r.Aircraft().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if v := strings.TrimSpace(in.Registration); v != "" {
			a.Registration = strings.ToUpper(v)
		}
		if v := strings.TrimSpace(in.Type); v != "" {
			a.Type = v
		}
		if v := strings.TrimSpace(in.Model); v != "" {
			a.Model = v
		}
		if in.Status != "" {
			if !in.Status.Valid() {
				return domain.ValidationError{Field: "status", Msg: "must be Active, Maintenance or Inactive"}
			}
			a.Status = in.Status
		}
		if in.RecordHobbs != nil {
			a.RecordHobbs = *in.RecordHobbs
		}
		if err := r.Aircraft().Update(ctx, a); err != nil {
			return err
		}

		if in.CurrentTacho != nil || in.CurrentHobbs != nil {
			prev := a.Readings()
			next := prev
			if in.CurrentTacho != nil {
				next.Tacho = *in.CurrentTacho
			}
			if in.CurrentHobbs != nil {
				next.Hobbs = *in.CurrentHobbs
			}
			if next.Tacho.LessThan(prev.Tacho) || next.Hobbs.LessThan(prev.Hobbs) {
				return domain.ValidationError{Field: "current_tacho", Msg: "meter readings can only increase"}
			}
			if !next.Tacho.Equal(prev.Tacho) || !next.Hobbs.Equal(prev.Hobbs) {
				if err := r.Aircraft().UpdateMeters(ctx, a.ID, prev, next); err != nil {
					return err
				}
				a.CurrentTacho, a.CurrentHobbs = next.Tacho, next.Hobbs
			}
		}
		out = a
		return nil
	})
	if err != nil {
		utils.LogError(s.RequestID, "aircraft", "update", err)
		return models.Aircraft{}, err
	}
	utils.LogEvent(s.RequestID, "aircraft", "update", fmt.Sprintf("aircraft_id=%d", id))
	return out, nil
}
