package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nomadatlas/nomadatlas/internal/model"
	"github.com/nomadatlas/nomadatlas/internal/repository"
	"github.com/nomadatlas/nomadatlas/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidEmail       = errors.New("invalid email address")
)

// DemoPolicy designates the one account that may be auto-provisioned on
// first login. The match is against the exact configured pair; it never
// generalizes to other emails, so arbitrary failed logins cannot create
// accounts. A zero policy disables the path.
type DemoPolicy struct {
	Email    string
	Password string
	FullName string
}

func (p DemoPolicy) Matches(email, password string) bool {
	if p.Email == "" || p.Password == "" {
		return false
	}
	return email == p.Email && password == p.Password
}

type AuthService struct {
	users        repository.UserRepository
	emailService *EmailService
	jwtSecret    []byte
	jwtExpiry    time.Duration
	bcryptCost   int
	demo         DemoPolicy
}

func NewAuthService(
	users repository.UserRepository,
	emailService *EmailService,
	jwtSecret string,
	jwtExpiry time.Duration,
	demo DemoPolicy,
) *AuthService {
	return &AuthService{
		users:        users,
		emailService: emailService,
		jwtSecret:    []byte(jwtSecret),
		jwtExpiry:    jwtExpiry,
		bcryptCost:   bcrypt.DefaultCost,
		demo:         demo,
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// ComparePassword reports a mismatch and a malformed stored hash the same
// way: verification failure.
func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// Login authenticates a single attempt. Unknown emails fail with
// ErrInvalidCredentials without revealing whether the account exists, except
// for the configured demo pair, which is provisioned on first use and then
// verified normally on every later login.
func (s *AuthService) Login(email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			if s.demo.Matches(email, password) {
				slog.Info("provisioning demo account on first login", "email", email)
				return s.provision(email, password, s.demo.FullName)
			}
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	err = s.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Register creates an account with a seeded default preference record.
// Duplicate emails surface as repository.ErrDuplicateEmail straight from the
// storage uniqueness constraint.
func (s *AuthService) Register(email, password string, fullName *string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, ErrInvalidEmail
	}

	err = validation.ValidatePassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.provision(email, password, derefOrEmpty(fullName))
	if err != nil {
		return nil, err
	}

	if s.emailService != nil {
		err = s.emailService.SendWelcomeEmail(user.Email, derefOrEmpty(user.FullName))
		if err != nil {
			slog.Warn("failed to send welcome email", "email", user.Email, "error", err)
		}
	}

	return user, nil
}

// provision is the shared creation path for signups and the demo bootstrap.
// The bootstrap skips signup validation on purpose: the credentials were
// injected by configuration, not chosen by a client.
func (s *AuthService) provision(email, password, fullName string) (*model.User, error) {
	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if fullName != "" {
		user.FullName = &fullName
	}

	err = s.users.Create(user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GenerateJWT mints a bearer token carrying the user's email as subject.
func (s *AuthService) GenerateJWT(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.Email,
		"iat": now.Unix(),
		"exp": now.Add(s.jwtExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyJWT validates signature and expiry and returns the subject email.
// No revocation list: a valid, unexpired token is always accepted.
func (s *AuthService) VerifyJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalidToken
	}

	return subject, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
