package usecase

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
	"github.com/Bayu5aputra/personal-profile/pkg/errors"
	"github.com/Bayu5aputra/personal-profile/pkg/logger"
)

const adminIssuer = "personal-profile-cms"

type adminClaims struct {
	Method entity.AdminMethod `json:"method"`
	jwt.RegisteredClaims
}

// AdminAuthUseCase gates the key management surface behind either a static password
// or a Firebase sign-in from an allow-listed e-mail.
type AdminAuthUseCase struct {
	firebaseAuth  FirebaseAuthClient
	password      string
	allowedEmails map[string]struct{}
	secret        []byte
	ttl           time.Duration
	now           func() time.Time
}

func NewAdminAuthUseCase(
	firebaseAuth FirebaseAuthClient,
	password string,
	allowedEmails []string,
	secret string,
	ttl time.Duration,
) *AdminAuthUseCase {
	allowed := make(map[string]struct{}, len(allowedEmails))
	for _, email := range allowedEmails {
		allowed[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}

	return &AdminAuthUseCase{
		firebaseAuth:  firebaseAuth,
		password:      password,
		allowedEmails: allowed,
		secret:        []byte(secret),
		ttl:           ttl,
		now:           time.Now,
	}
}

func (uc *AdminAuthUseCase) IsEmailAllowed(email string) bool {
	_, ok := uc.allowedEmails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

func (uc *AdminAuthUseCase) LoginWithPassword(password string) (*entity.AdminSession, error) {
	if uc.password == "" {
		return nil, errors.Forbidden("Password login is disabled", nil)
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(uc.password)) != 1 {
		logger.Warn("Admin password login rejected")
		return nil, errors.Unauthorized("Incorrect password", nil)
	}

	return uc.issue("admin", entity.AdminMethodPassword)
}

func (uc *AdminAuthUseCase) LoginWithFirebase(ctx context.Context, idToken string) (*entity.AdminSession, error) {
	if uc.firebaseAuth == nil {
		return nil, errors.Forbidden("Firebase sign-in is not configured", nil)
	}

	email, err := uc.firebaseAuth.VerifyEmail(ctx, idToken)
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired token", err)
	}
	if !uc.IsEmailAllowed(email) {
		logger.Warn("Admin sign-in refused for %s", email)
		return nil, errors.Forbidden("Your email is not authorized to access this system", nil)
	}

	return uc.issue(strings.ToLower(email), entity.AdminMethodFirebase)
}

func (uc *AdminAuthUseCase) VerifySession(token string) (*entity.AdminIdentity, error) {
	claims := &adminClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return uc.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(adminIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(uc.now),
	)
	if err != nil {
		return nil, errors.Unauthorized("Session expired or invalid", err)
	}

	return &entity.AdminIdentity{Subject: claims.Subject, Method: claims.Method}, nil
}

// RefreshSession issues a new session for an identity that is still valid.
func (uc *AdminAuthUseCase) RefreshSession(identity *entity.AdminIdentity) (*entity.AdminSession, error) {
	if identity == nil {
		return nil, errors.Unauthorized("Authentication required", nil)
	}
	return uc.issue(identity.Subject, identity.Method)
}

func (uc *AdminAuthUseCase) issue(subject string, method entity.AdminMethod) (*entity.AdminSession, error) {
	now := uc.now()
	expiresAt := now.Add(uc.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, adminClaims{
		Method: method,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    adminIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(uc.secret)
	if err != nil {
		return nil, errors.Internal("Failed to issue session", err)
	}

	return &entity.AdminSession{
		Token:     signed,
		ExpiresAt: expiresAt,
		Subject:   subject,
		Method:    method,
	}, nil
}
