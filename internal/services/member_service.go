package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"flightschool/internal/domain"
	"flightschool/internal/domain/models"
	"flightschool/internal/repositories"
	"flightschool/internal/utils"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// MemberService manages people: members, students and staff.
type MemberService struct {
	Store     repositories.Store
	RequestID string
}

type MemberInput struct {
	FirstName     string           `json:"first_name"`
	LastName      string           `json:"last_name"`
	Email         string           `json:"email"`
	Phone         *string          `json:"phone"`
	IsMember      *bool            `json:"is_member"`
	IsStaff       *bool            `json:"is_staff"`
	Role          string           `json:"role"`
	Password      string           `json:"password"`
	CreditBalance *decimal.Decimal `json:"credit_balance"`
	LicenceNumber *string          `json:"licence_number"`
	LicenceExpiry *time.Time       `json:"licence_expiry"`
	MedicalExpiry *time.Time       `json:"medical_expiry"`
	Ratings       []string         `json:"ratings"`
	Endorsements  []string         `json:"endorsements"`
}

func requireEmail(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", domain.ValidationError{Field: field, Msg: "required"}
	}
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v {
		return "", domain.ValidationError{Field: field, Msg: "invalid email address"}
	}
	return strings.ToLower(v), nil
}

func validRole(role string) bool {
	switch role {
	case domain.RoleAdmin, domain.RoleInstructor, domain.RoleMember:
		return true
	}
	return false
}

func hashPassword(pw string) (*string, error) {
	if len(pw) < 8 {
		return nil, domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.InternalError{Msg: "hash password", Err: err}
	}
	out := string(h)
	return &out, nil
}

func (s MemberService) List(ctx context.Context, actor domain.Actor, f models.UserFilter) ([]models.User, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	return s.Store.Users().List(ctx, f)
}

func (s MemberService) Get(ctx context.Context, actor domain.Actor, id int64) (models.User, error) {
	if err := requireSelfOrStaff(actor, id); err != nil {
		return models.User{}, err
	}
	return s.Store.Users().Get(ctx, id)
}

func (s MemberService) Create(ctx context.Context, actor domain.Actor, in MemberInput) (models.User, error) {
	if err := requireStaff(actor); err != nil {
		return models.User{}, err
	}
	first, err := requireText("first_name", in.FirstName)
	if err != nil {
		return models.User{}, err
	}
	email, err := requireEmail("email", in.Email)
	if err != nil {
		return models.User{}, err
	}
	u := models.User{
		FirstName:     first,
		LastName:      strings.TrimSpace(in.LastName),
		Email:         email,
		Phone:         utils.TrimPtr(in.Phone),
		IsMember:      true,
		Role:          domain.RoleMember,
		CreditBalance: decimal.Zero,
		LicenceNumber: utils.TrimPtr(in.LicenceNumber),
		LicenceExpiry: in.LicenceExpiry,
		MedicalExpiry: in.MedicalExpiry,
		Ratings:       utils.NormalizeTags(in.Ratings),
		Endorsements:  utils.NormalizeTags(in.Endorsements),
	}
	if err := applyRoleFlags(&u, in); err != nil {
		return models.User{}, err
	}
	if in.CreditBalance != nil {
		if in.CreditBalance.IsNegative() {
			return models.User{}, domain.ValidationError{Field: "credit_balance", Msg: "must not be negative"}
		}
		u.CreditBalance = utils.RoundMoney(*in.CreditBalance)
	}
	if in.Password != "" {
		if u.PasswordHash, err = hashPassword(in.Password); err != nil {
			return models.User{}, err
		}
	}
	if err := s.Store.Users().Create(ctx, &u); err != nil {
		utils.LogError(s.RequestID, "member", "create", err)
		return models.User{}, err
	}
	utils.LogEvent(s.RequestID, "member", "create", fmt.Sprintf("user_id=%d", u.ID))
	return u, nil
}

// Update edits the profile. Credit balance is adjusted as a delta so that
// concurrent payments are not overwritten.
func (s MemberService) Update(ctx context.Context, actor domain.Actor, id int64, in MemberInput) (models.User, error) {
	if err := requireStaff(actor); err != nil {
		return models.User{}, err
	}
	var out models.User
	err := s.Store.InTx(ctx, func(r repositories.Repos) error {
		u, err := r.Users().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if v := strings.TrimSpace(in.FirstName); v != "" {
			u.FirstName = v
		}
		if v := strings.TrimSpace(in.LastName); v != "" {
			u.LastName = v
		}
		if strings.TrimSpace(in.Email) != "" {
			if u.Email, err = requireEmail("email", in.Email); err != nil {
				return err
			}
		}
		if in.Phone != nil {
			u.Phone = utils.TrimPtr(in.Phone)
		}
		if in.LicenceNumber != nil {
			u.LicenceNumber = utils.TrimPtr(in.LicenceNumber)
		}
		if in.LicenceExpiry != nil {
			u.LicenceExpiry = in.LicenceExpiry
		}
		if in.MedicalExpiry != nil {
			u.MedicalExpiry = in.MedicalExpiry
		}
		if in.Ratings != nil {
			u.Ratings = utils.NormalizeTags(in.Ratings)
		}
		if in.Endorsements != nil {
			u.Endorsements = utils.NormalizeTags(in.Endorsements)
		}
		if err := applyRoleFlags(&u, in); err != nil {
			return err
		}
		if in.Password != "" {
			if u.PasswordHash, err = hashPassword(in.Password); err != nil {
				return err
			}
		}
		if err := r.Users().Update(ctx, u); err != nil {
			return err
		}
		if in.CreditBalance != nil {
			target := utils.RoundMoney(*in.CreditBalance)
			if target.IsNegative() {
				return domain.ValidationError{Field: "credit_balance", Msg: "must not be negative"}
			}
			if delta := target.Sub(u.CreditBalance); !delta.IsZero() {
				if err := r.Users().AdjustCredit(ctx, u.ID, delta); err != nil {
					return err
				}
			}
			u.CreditBalance = target
		}
		out = u
		return nil
	})
	if err != nil {
		utils.LogError(s.RequestID, "member", "update", err)
		return models.User{}, err
	}
	utils.LogEvent(s.RequestID, "member", "update", fmt.Sprintf("user_id=%d", id))
	return out, nil
}

func applyRoleFlags(u *models.User, in MemberInput) error {
	if in.Role != "" {
		role := strings.ToLower(strings.TrimSpace(in.Role))
		if !validRole(role) {
			return domain.ValidationError{Field: "role", Msg: "must be admin, instructor or member"}
		}
		u.Role = role
		u.IsStaff = role != domain.RoleMember
	}
	if in.IsMember != nil {
		u.IsMember = *in.IsMember
	}
	if in.IsStaff != nil {
		u.IsStaff = *in.IsStaff
	}
	return nil
}
