package services

import (
	"context"

	"flightschool/internal/domain"
	"flightschool/internal/domain/models"
	"flightschool/internal/repositories"
	"flightschool/internal/utils"
)

// CatalogService manages rates, chargeable items and lessons.
type CatalogService struct {
	Store     repositories.Store
	RequestID string
}

func (s CatalogService) FlightTypes(ctx context.Context) ([]models.FlightType, error) {
	return s.Store.Catalog().ListFlightTypes(ctx)
}

func (s CatalogService) CreateFlightType(ctx context.Context, actor domain.Actor, ft models.FlightType) (models.FlightType, error) {
	if err := requireStaff(actor); err != nil {
		return models.FlightType{}, err
	}
	name, err := requireText("name", ft.Name)
	if err != nil {
		return models.FlightType{}, err
	}
	if ft.HourlyRate.IsNegative() {
		return models.FlightType{}, domain.ValidationError{Field: "hourly_rate", Msg: "must not be negative"}
	}
	ft.ID = 0
	ft.Name = name
	ft.HourlyRate = utils.RoundMoney(ft.HourlyRate)
	if err := s.Store.Catalog().CreateFlightType(ctx, &ft); err != nil {
		return models.FlightType{}, err
	}
	utils.LogEvent(s.RequestID, "catalog", "create_flight_type", ft.Name)
	return ft, nil
}

func (s CatalogService) Chargeables(ctx context.Context) ([]models.Chargeable, error) {
	return s.Store.Catalog().ListChargeables(ctx)
}

func (s CatalogService) CreateChargeable(ctx context.Context, actor domain.Actor, c models.Chargeable) (models.Chargeable, error) {
	if err := requireStaff(actor); err != nil {
		return models.Chargeable{}, err
	}
	name, err := requireText("name", c.Name)
	if err != nil {
		return models.Chargeable{}, err
	}
	if !models.ValidChargeCategory(c.Category) {
		return models.Chargeable{}, domain.ValidationError{Field: "category", Msg: "must be Landing Fee, Airways Fee or Other Charges"}
	}
	if c.Amount.IsNegative() {
		return models.Chargeable{}, domain.ValidationError{Field: "amount", Msg: "must not be negative"}
	}
	c.ID = 0
	c.Name = name
	c.Amount = utils.RoundMoney(c.Amount)
	if err := s.Store.Catalog().CreateChargeable(ctx, &c); err != nil {
		return models.Chargeable{}, err
	}
	return c, nil
}

func (s CatalogService) Lessons(ctx context.Context, syllabusID *int64) ([]models.Lesson, error) {
	return s.Store.Catalog().ListLessons(ctx, syllabusID)
}

func (s CatalogService) CreateLesson(ctx context.Context, actor domain.Actor, l models.Lesson) (models.Lesson, error) {
	if err := requireStaff(actor); err != nil {
		return models.Lesson{}, err
	}
	name, err := requireText("name", l.Name)
	if err != nil {
		return models.Lesson{}, err
	}
	if l.SyllabusID != nil {
		if _, err := s.Store.Training().GetSyllabus(ctx, *l.SyllabusID); err != nil {
			return models.Lesson{}, err
		}
	}
	l.ID = 0
	l.Name = name
	l.Description = utils.TrimPtr(l.Description)
	if err := s.Store.Catalog().CreateLesson(ctx, &l); err != nil {
		return models.Lesson{}, err
	}
	return l, nil
}
