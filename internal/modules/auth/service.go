package auth

import (
	"context"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()

// Service issues and verifies admin tokens.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	// Verify checks a bearer token and returns the admin id it was issued to.
	Verify(token string) (string, error)
	// EnsureAdmin creates the account if no admin with that email exists yet.
	EnsureAdmin(ctx context.Context, email, password, name string) error
}

type service struct {
	repo   Repository
	secret []byte
	ttl    time.Duration
	log    *logrus.Logger
	now    func() time.Time
}

func NewService(repo Repository, secret string, ttl time.Duration, logger *logrus.Logger) Service {
	return &service{repo: repo, secret: []byte(secret), ttl: ttl, log: logger, now: time.Now}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, ErrInvalidCredentials
	}

	admin, err := s.repo.GetAdminByEmail(ctx, req.Email)
	if errors.Is(err, ErrNotFound) {
		s.log.WithField("email", req.Email).Warn("Login attempt for unknown admin")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		s.log.WithField("email", req.Email).Warn("Login attempt with wrong password")
		return nil, ErrInvalidCredentials
	}

	expirationTime := s.now().Add(s.ttl)
	claims := &jwt.StandardClaims{
		Subject:   admin.ID.String(),
		IssuedAt:  s.now().Unix(),
		ExpiresAt: expirationTime.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return nil, errors.Wrap(err, "sign token")
	}

	s.log.WithField("admin_id", admin.ID).Info("Admin logged in")
	return &LoginResponse{Token: tokenString, ExpiresAt: expirationTime, Admin: admin}, nil
}

func (s *service) Verify(tokenString string) (string, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrUnauthorized
	}
	return claims.Subject, nil
}

func (s *service) EnsureAdmin(ctx context.Context, email, password, name string) error {
	_, err := s.repo.GetAdminByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}

	admin := &Admin{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         name,
	}
	if err := s.repo.CreateAdmin(ctx, admin); err != nil && !errors.Is(err, ErrDuplicate) {
		return err
	}
	s.log.WithField("email", email).Info("Seeded admin account")
	return nil
}
