package services

import (
	"context"
	"fmt"

	"flightschool/internal/domain"
	"flightschool/internal/domain/models"
	"flightschool/internal/repositories"
	"flightschool/internal/utils"
)

type DebriefService struct {
	Store     repositories.Store
	RequestID string
}

type DebriefInput struct {
	Ratings      map[string]int `json:"ratings"`
	Strengths    *string        `json:"strengths"`
	Improvements *string        `json:"improvements"`
	Comments     *string        `json:"comments"`
}

// Create records the instructor's debrief for a completed booking.
func (s DebriefService) Create(ctx context.Context, actor domain.Actor, bookingID int64, in DebriefInput) (models.FlightDebrief, error) {
	if err := requireStaff(actor); err != nil {
		return models.FlightDebrief{}, err
	}
	avg, count, err := domain.AggregateRatings(in.Ratings)
	if err != nil {
		return models.FlightDebrief{}, err
	}
	b, err := s.Store.Bookings().Get(ctx, bookingID)
	if err != nil {
		return models.FlightDebrief{}, err
	}
	if b.Status != models.BookingComplete {
		return models.FlightDebrief{}, domain.ConflictError{Resource: "debrief", Msg: "booking is not complete"}
	}
	instructorID := actor.UserID
	if b.InstructorID != nil {
		instructorID = *b.InstructorID
	}
	ratings := models.JSONMap[int]{}
	for k, v := range in.Ratings {
		ratings[k] = v
	}
	d := models.FlightDebrief{
		BookingID:     b.ID,
		StudentID:     b.UserID,
		InstructorID:  instructorID,
		Ratings:       ratings,
		AverageRating: avg,
		RatedCount:    count,
		Strengths:     utils.TrimPtr(in.Strengths),
		Improvements:  utils.TrimPtr(in.Improvements),
		Comments:      utils.TrimPtr(in.Comments),
	}
	if err := s.Store.Debriefs().Create(ctx, &d); err != nil {
		utils.LogError(s.RequestID, "debrief", "create", err)
		return models.FlightDebrief{}, err
	}
	utils.LogEvent(s.RequestID, "debrief", "create", fmt.Sprintf("booking_id=%d rated=%d", b.ID, count))
	return d, nil
}

func (s DebriefService) Get(ctx context.Context, actor domain.Actor, bookingID int64) (models.FlightDebrief, error) {
	d, err := s.Store.Debriefs().GetByBooking(ctx, bookingID)
	if err != nil {
		return models.FlightDebrief{}, err
	}
	if err := requireSelfOrStaff(actor, d.StudentID); err != nil {
		return models.FlightDebrief{}, err
	}
	return d, nil
}
