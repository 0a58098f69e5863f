package services

import (
	"context"
	"fmt"
	"time"

	"flightschool/internal/domain"
	"flightschool/internal/domain/models"
	"flightschool/internal/repositories"
	"flightschool/internal/utils"

	"github.com/shopspring/decimal"
)

// SignoutService handles solo flight authorisation forms.
type SignoutService struct {
	Store     repositories.Store
	RequestID string
	Now       func() time.Time
}

type SignoutInput struct {
	WeatherChecked bool            `json:"weather_checked"`
	NotamsChecked  bool            `json:"notams_checked"`
	FuelLitres     decimal.Decimal `json:"fuel_litres"`
	Route          *string         `json:"route"`
	Remarks        *string         `json:"remarks"`
}

type SignoutReview struct {
	Approve bool    `json:"approve"`
	Note    *string `json:"note"`
}

func (s SignoutService) Submit(ctx context.Context, actor domain.Actor, bookingID int64, in SignoutInput) (models.SoloSignout, error) {
	if !in.WeatherChecked {
		return models.SoloSignout{}, domain.ValidationError{Field: "weather_checked", Msg: "weather must be checked"}
	}
	if !in.NotamsChecked {
		return models.SoloSignout{}, domain.ValidationError{Field: "notams_checked", Msg: "NOTAMs must be checked"}
	}
	if !in.FuelLitres.IsPositive() {
		return models.SoloSignout{}, domain.ValidationError{Field: "fuel_litres", Msg: "must be greater than zero"}
	}
	b, err := s.Store.Bookings().Get(ctx, bookingID)
	if err != nil {
		return models.SoloSignout{}, err
	}
	if err := requireSelfOrStaff(actor, b.UserID); err != nil {
		return models.SoloSignout{}, err
	}
	if b.Status != models.BookingConfirmed && b.Status != models.BookingUnconfirmed {
		return models.SoloSignout{}, domain.ConflictError{Resource: "solo signout", Msg: "booking is already " + string(b.Status)}
	}
	form := models.SoloSignout{
		BookingID:      b.ID,
		StudentID:      b.UserID,
		WeatherChecked: in.WeatherChecked,
		NotamsChecked:  in.NotamsChecked,
		FuelLitres:     in.FuelLitres,
		Route:          utils.TrimPtr(in.Route),
		Remarks:        utils.TrimPtr(in.Remarks),
		Status:         models.SignoutPending,
	}
	if err := s.Store.Signouts().Create(ctx, &form); err != nil {
		utils.LogError(s.RequestID, "signout", "submit", err)
		return models.SoloSignout{}, err
	}
	utils.LogEvent(s.RequestID, "signout", "submit", fmt.Sprintf("booking_id=%d signout_id=%d", b.ID, form.ID))
	return form, nil
}

// Review approves or rejects a pending form on behalf of an instructor.
func (s SignoutService) Review(ctx context.Context, actor domain.Actor, id int64, in SignoutReview) (models.SoloSignout, error) {
	if err := requireStaff(actor); err != nil {
		return models.SoloSignout{}, err
	}
	var out models.SoloSignout
	err := s.Store.InTx(ctx, func(r repositories.Repos) error {
		form, err := r.Signouts().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if form.Status != models.SignoutPending {
			return domain.ConflictError{Resource: "solo signout", Msg: "signout already " + string(form.Status)}
		}
		now := clock(s.Now)
		reviewer := actor.UserID
		form.Status = models.SignoutRejected
		if in.Approve {
			form.Status = models.SignoutApproved
		}
		form.ReviewedBy = &reviewer
		form.ReviewedAt = &now
		form.ReviewNote = utils.TrimPtr(in.Note)
		if err := r.Signouts().Review(ctx, form); err != nil {
			return err
		}
		out = form
		return nil
	})
	if err != nil {
		utils.LogError(s.RequestID, "signout", "review", err)
		return models.SoloSignout{}, err
	}
	utils.LogEvent(s.RequestID, "signout", "review", fmt.Sprintf("signout_id=%d status=%s", id, out.Status))
	return out, nil
}
