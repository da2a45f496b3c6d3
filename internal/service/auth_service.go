package service

import (
	"context"
	"errors"
	"log"
	"time"

	"trackfit/workout-app/internal/domain"
	"trackfit/workout-app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// ProfileFields carries the profile data of a signup. One path supplies
// Username, the other Name and Surname; the written document keeps
// whichever was set.
type ProfileFields struct {
	Username string
	Name     string
	Surname  string
}

// AuthService wraps the identity side of the system: signup, login,
// logout, and the profile-document bookkeeping around them. Session
// changes are announced through the SessionManager.
type AuthService interface {
	Register(ctx context.Context, email, password string, profile ProfileFields) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	Logout()
	// CheckUserData reports whether a profile document exists for the
	// current user; false, not an error, when nobody is signed in.
	CheckUserData(ctx context.Context) (bool, error)
	// EnsureProfile creates the current user's profile document if it is
	// missing (federated sign-in path).
	EnsureProfile(ctx context.Context, user *domain.User) error
	// SendPasswordReset dispatches a reset message for the email through
	// the external dispatcher. Unknown emails are not revealed.
	SendPasswordReset(ctx context.Context, email string) error
	Sessions() *SessionManager
	GetJWTSecret() string
}

// PasswordResetDispatcher delivers password-reset messages. Delivery is
// collaborator-owned; the default implementation only logs.
type PasswordResetDispatcher interface {
	Dispatch(ctx context.Context, email string) error
}

// LogResetDispatcher is the stand-in dispatcher used when no mail
// integration is configured.
type LogResetDispatcher struct{}

func (LogResetDispatcher) Dispatch(_ context.Context, email string) error {
	log.Printf("Password reset requested for %s", email)
	return nil
}

// --- Service Implementation ---

type authService struct {
	credentialRepo repository.CredentialRepository
	userRepo       repository.UserRepository
	sessions       *SessionManager
	resetDispatch  PasswordResetDispatcher
	jwtSecret      string
	jwtExpiration  time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(credentialRepo repository.CredentialRepository, userRepo repository.UserRepository, sessions *SessionManager, resetDispatch PasswordResetDispatcher, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty")
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 1
	}
	if resetDispatch == nil {
		resetDispatch = LogResetDispatcher{}
	}
	return &authService{
		credentialRepo: credentialRepo,
		userRepo:       userRepo,
		sessions:       sessions,
		resetDispatch:  resetDispatch,
		jwtSecret:      jwtSecret,
		jwtExpiration:  jwtExpiration,
	}
}

// Register creates the identity first and the profile document second.
// When the profile write fails the identity is left in place: there is
// no rollback, and a later sign-in repairs the gap via EnsureProfile.
func (s *authService) Register(ctx context.Context, email, password string, profile ProfileFields) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, errors.New("email and password cannot be empty")
	}

	_, err := s.credentialRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	uid, err := s.credentialRepo.Create(ctx, email, string(hashedPassword))
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		UID:      uid,
		Email:    email,
		Username: profile.Username,
		Name:     profile.Name,
		Surname:  profile.Surname,
	}
	if err := s.userRepo.CreateProfile(ctx, user); err != nil {
		// Identity exists without a profile now; surface the failure but
		// keep the created identity.
		log.Printf("ERROR: profile creation failed for new identity %s: %v", uid, err)
		return nil, err
	}

	s.sessions.setUser(user)
	return user, nil
}

// Login authenticates the identity and hydrates the session from the
// profile document. A missing profile does not fail the login.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, errors.New("email and password cannot be empty")
	}

	cred, err := s.credentialRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	user, err := s.userRepo.GetByUID(ctx, cred.UID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return "", nil, err
		}
		user = &domain.User{UID: cred.UID, Email: cred.Email}
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	s.sessions.setUser(user)
	return token, user, nil
}

// Logout ends the session and notifies subscribers with a nil user.
func (s *authService) Logout() {
	s.sessions.setUser(nil)
}

// CheckUserData reports whether the current user has a profile
// document. No current user yields false, not an error.
func (s *authService) CheckUserData(ctx context.Context) (bool, error) {
	current := s.sessions.CurrentUser()
	if current == nil {
		return false, nil
	}
	return s.userRepo.ProfileExists(ctx, current.UID)
}

// EnsureProfile creates the profile document if it is missing.
func (s *authService) EnsureProfile(ctx context.Context, user *domain.User) error {
	return s.userRepo.EnsureProfile(ctx, user)
}

// SendPasswordReset hands the email to the dispatcher. Whether the
// address is known is never revealed to the caller.
func (s *authService) SendPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return errors.New("email cannot be empty")
	}
	return s.resetDispatch.Dispatch(ctx, email)
}

// Sessions returns the session manager.
func (s *authService) Sessions() *SessionManager {
	return s.sessions
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UID: user.UID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UID,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "workout-app",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
