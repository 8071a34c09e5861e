package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/davancensm/Case36-TercerEntrega/internal/domain"
	"github.com/davancensm/Case36-TercerEntrega/internal/repository"
)

var (
	ErrDuplicateUser      = errors.New("user already registered")
	ErrUserNotFound       = errors.New("user dont exist")
	ErrInvalidCredentials = errors.New("invalid password")
)

// RegistrationNotifier is what the service needs from the mail side:
// a fire-and-forget operator notification.
type RegistrationNotifier interface {
	UserRegistered(user *domain.User) error
}

type RegisterRequest struct {
	Username        string
	Password        string
	Name            string
	Address         string
	Age             int
	Phone           string
	IsAdmin         bool
	ProfileImageURL string
}

type Service struct {
	users    repository.UserRepository
	notifier RegistrationNotifier
	log      *logrus.Logger
}

func NewService(users repository.UserRepository, notifier RegistrationNotifier, log *logrus.Logger) *Service {
	return &Service{
		users:    users,
		notifier: notifier,
		log:      log,
	}
}

// Register creates a user if the username is free. The plaintext
// password is never stored; only the bcrypt hash is. On success an
// operator email goes out asynchronously; a failed send is logged and
// never surfaced to the caller.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	_, err := s.users.FindByUsername(ctx, req.Username)
	if err == nil {
		return nil, ErrDuplicateUser
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	imageURL := req.ProfileImageURL
	if imageURL == "" {
		imageURL = domain.NoProfileImage
	}

	user := &domain.User{
		Username:        req.Username,
		PasswordHash:    string(hash),
		Name:            req.Name,
		Address:         req.Address,
		ProfileImageURL: imageURL,
		Age:             req.Age,
		Phone:           req.Phone,
		IsAdmin:         req.IsAdmin,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	go func() {
		if errSend := s.notifier.UserRegistered(created); errSend != nil {
			s.log.Errorf("signup notification failed: %v", errSend)
		}
	}()

	return created, nil
}

// Login succeeds iff a record exists for the username and the stored
// hash matches the password.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
