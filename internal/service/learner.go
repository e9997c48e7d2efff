package service

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const LearnerCookieName = "learner_token"

var ErrInvalidLearnerToken = errors.New("invalid learner token")

// LearnerService issues the anonymous learner cookie that scopes a browser's
// garden. It identifies a browser, it does not authenticate a person.
type LearnerService struct {
	secret       string
	expiry       time.Duration
	isProduction bool
}

func NewLearnerService(secret string, expiry time.Duration, isProduction bool) *LearnerService {
	return &LearnerService{
		secret:       secret,
		expiry:       expiry,
		isProduction: isProduction,
	}
}

// Issue creates a new learner ID and its signed token.
func (s *LearnerService) Issue() (learnerID, token string, err error) {
	learnerID = uuid.New().String()
	now := time.Now()

	claims := jwt.MapClaims{
		"learner_id": learnerID,
		"exp":        now.Add(s.expiry).Unix(),
		"iat":        now.Unix(),
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign learner token: %w", err)
	}

	return learnerID, token, nil
}

// Verify returns the learner ID carried by token.
func (s *LearnerService) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidLearnerToken
	}

	learnerID, _ := claims["learner_id"].(string)
	if _, err := uuid.Parse(learnerID); err != nil {
		return "", ErrInvalidLearnerToken
	}

	return learnerID, nil
}

func (s *LearnerService) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     LearnerCookieName,
		Value:    token,
		Expires:  time.Now().Add(s.expiry),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}
