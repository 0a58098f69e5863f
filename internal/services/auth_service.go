package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flightschool/internal/domain"
	"flightschool/internal/domain/models"
	"flightschool/internal/repositories"
	"flightschool/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues and verifies session tokens.
type AuthService struct {
	Store     repositories.Store
	Secret    []byte
	TTL       time.Duration
	RequestID string
	Now       func() time.Time
}

// Claims carried in the HS256 session token.
type Claims struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

var errBadCredentials = domain.UnauthorizedError{Msg: "invalid email or password"}

func (s AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return LoginResult{}, domain.ValidationError{Field: "email", Msg: "email and password are required"}
	}
	u, err := s.Store.Users().GetByEmail(ctx, email)
	if domain.IsNotFound(err) {
		return LoginResult{}, errBadCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if u.PasswordHash == nil {
		return LoginResult{}, errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, errBadCredentials
	}

	token, exp, err := s.Issue(domain.Actor{UserID: u.ID, Name: u.FullName(), Role: u.Role})
	if err != nil {
		return LoginResult{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d", u.ID))
	return LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s AuthService) Issue(actor domain.Actor) (string, time.Time, error) {
	if len(s.Secret) == 0 {
		return "", time.Time{}, domain.InternalError{Msg: "token secret not configured"}
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	now := clock(s.Now)
	exp := now.Add(ttl)
	claims := Claims{
		UserID: actor.UserID,
		Name:   actor.Name,
		Role:   actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, domain.InternalError{Msg: "sign token", Err: err}
	}
	return signed, exp, nil
}

// Parse validates a bearer token and returns the actor it names.
func (s AuthService) Parse(token string) (domain.Actor, error) {
	var claims Claims
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.Now != nil {
		opts = append(opts, jwt.WithTimeFunc(s.Now))
	}
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.Secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Actor{}, domain.UnauthorizedError{Msg: "token expired"}
		}
		return domain.Actor{}, domain.UnauthorizedError{Msg: "invalid token"}
	}
	if claims.UserID <= 0 {
		return domain.Actor{}, domain.UnauthorizedError{Msg: "invalid token"}
	}
	return domain.Actor{UserID: claims.UserID, Name: claims.Name, Role: claims.Role}, nil
}
