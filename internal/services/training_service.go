package services

import (
	"context"
	"time"

	"flightschool/internal/domain"
	"flightschool/internal/domain/models"
	"flightschool/internal/repositories"
	"flightschool/internal/utils"
)

// TrainingService covers syllabuses, student enrollments and memberships.
type TrainingService struct {
	Store     repositories.Store
	RequestID string
	Now       func() time.Time
}

type MembershipInput struct {
	MembershipTypeID int64      `json:"membership_type_id"`
	StartDate        *time.Time `json:"start_date"`
}

// MembershipView adds the computed active flag.
type MembershipView struct {
	models.Membership
	Active bool `json:"active"`
}

func (s TrainingService) Syllabuses(ctx context.Context) ([]models.Syllabus, error) {
	return s.Store.Training().ListSyllabuses(ctx)
}

func (s TrainingService) CreateSyllabus(ctx context.Context, actor domain.Actor, in models.Syllabus) (models.Syllabus, error) {
	if err := requireStaff(actor); err != nil {
		return models.Syllabus{}, err
	}
	name, err := requireText("name", in.Name)
	if err != nil {
		return models.Syllabus{}, err
	}
	syl := models.Syllabus{Name: name, Description: utils.TrimPtr(in.Description)}
	if err := s.Store.Training().CreateSyllabus(ctx, &syl); err != nil {
		return models.Syllabus{}, err
	}
	return syl, nil
}

func (s TrainingService) Enroll(ctx context.Context, actor domain.Actor, userID, syllabusID int64) (models.Enrollment, error) {
	if err := requireStaff(actor); err != nil {
		return models.Enrollment{}, err
	}
	if err := requireID("syllabus_id", syllabusID); err != nil {
		return models.Enrollment{}, err
	}
	if _, err := s.Store.Users().Get(ctx, userID); err != nil {
		return models.Enrollment{}, err
	}
	if _, err := s.Store.Training().GetSyllabus(ctx, syllabusID); err != nil {
		return models.Enrollment{}, err
	}
	e := models.Enrollment{UserID: userID, SyllabusID: syllabusID}
	if err := s.Store.Training().Enroll(ctx, &e); err != nil {
		utils.LogError(s.RequestID, "training", "enroll", err)
		return models.Enrollment{}, err
	}
	return e, nil
}

func (s TrainingService) Enrollments(ctx context.Context, actor domain.Actor, userID int64) ([]models.Enrollment, error) {
	if err := requireSelfOrStaff(actor, userID); err != nil {
		return nil, err
	}
	return s.Store.Training().ListEnrollments(ctx, userID)
}

func (s TrainingService) MembershipTypes(ctx context.Context) ([]models.MembershipType, error) {
	return s.Store.Training().ListMembershipTypes(ctx)
}

func (s TrainingService) CreateMembershipType(ctx context.Context, actor domain.Actor, in models.MembershipType) (models.MembershipType, error) {
	if err := requireStaff(actor); err != nil {
		return models.MembershipType{}, err
	}
	name, err := requireText("name", in.Name)
	if err != nil {
		return models.MembershipType{}, err
	}
	if in.DurationMonths < 1 {
		return models.MembershipType{}, domain.ValidationError{Field: "duration_months", Msg: "must be at least 1"}
	}
	if in.Price.IsNegative() {
		return models.MembershipType{}, domain.ValidationError{Field: "price", Msg: "must not be negative"}
	}
	mt := models.MembershipType{Name: name, Price: utils.RoundMoney(in.Price), DurationMonths: in.DurationMonths}
	if err := s.Store.Training().CreateMembershipType(ctx, &mt); err != nil {
		return models.MembershipType{}, err
	}
	return mt, nil
}

// AddMembership starts a membership of the given type; expiry is start plus
// the type's duration.
func (s TrainingService) AddMembership(ctx context.Context, actor domain.Actor, userID int64, in MembershipInput) (MembershipView, error) {
	if err := requireStaff(actor); err != nil {
		return MembershipView{}, err
	}
	if err := requireID("membership_type_id", in.MembershipTypeID); err != nil {
		return MembershipView{}, err
	}
	if _, err := s.Store.Users().Get(ctx, userID); err != nil {
		return MembershipView{}, err
	}
	mt, err := s.Store.Training().GetMembershipType(ctx, in.MembershipTypeID)
	if err != nil {
		return MembershipView{}, err
	}
	now := clock(s.Now)
	start := now
	if in.StartDate != nil {
		start = in.StartDate.UTC()
	}
	m := models.Membership{
		UserID:           userID,
		MembershipTypeID: mt.ID,
		StartDate:        start,
		ExpiryDate:       start.AddDate(0, mt.DurationMonths, 0),
	}
	if err := s.Store.Training().CreateMembership(ctx, &m); err != nil {
		utils.LogError(s.RequestID, "training", "add_membership", err)
		return MembershipView{}, err
	}
	return MembershipView{Membership: m, Active: m.Active(now)}, nil
}

func (s TrainingService) Memberships(ctx context.Context, actor domain.Actor, userID int64) ([]MembershipView, error) {
	if err := requireSelfOrStaff(actor, userID); err != nil {
		return nil, err
	}
	list, err := s.Store.Training().ListMemberships(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := clock(s.Now)
	out := make([]MembershipView, 0, len(list))
	for _, m := range list {
		out = append(out, MembershipView{Membership: m, Active: m.Active(now)})
	}
	return out, nil
}
