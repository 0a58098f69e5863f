package services

import (
	"strings"
	"time"

	"flightschool/internal/domain"
	"flightschool/internal/utils"
)

func clock(now func() time.Time) time.Time {
	if now != nil {
		return now().UTC()
	}
	return utils.NowUTC()
}

func requireStaff(actor domain.Actor) error {
	if !actor.IsStaff() {
		return domain.ForbiddenError{Msg: "staff only"}
	}
	return nil
}

// requireSelfOrStaff lets members act on their own records only.
func requireSelfOrStaff(actor domain.Actor, ownerID int64) error {
	if actor.IsStaff() || actor.UserID == ownerID {
		return nil
	}
	return domain.ForbiddenError{Msg: "not allowed for this record"}
}

func requireText(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", domain.ValidationError{Field: field, Msg: "required"}
	}
	return v, nil
}

func requireID(field string, id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: field, Msg: "required"}
	}
	return nil
}
