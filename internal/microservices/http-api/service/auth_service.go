package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"moviehub/internal/logging"
	"moviehub/internal/media"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
	"moviehub/internal/middleware/auth"
)

var (
	ErrNameInUse          = errors.New("username already in use")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// Credential is what a visitor submits on the login form.
type Credential struct {
	Email    string
	Password string
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Image    *media.Upload
}

type ProfileInput struct {
	Username string
	Email    string
	Image    *media.Upload
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, cred Credential) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	media    MediaStore
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, store MediaStore) AuthService {
	return &authService{
		userRepo: userRepo,
		media:    store,
		now:      time.Now,
	}
}

// NormalizeEmail is applied to every stored and looked-up address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the account after checking username and email are free.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := NormalizeEmail(in.Email)
	if err := s.checkAvailable(ctx, "", in.Username, email); err != nil {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: in.Username,
		Email:    email,
		Password: hashedPassword,
	}
	if in.Image != nil {
		if user.Image, err = s.media.Save(ctx, media.KindAvatar, in.Image); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.discard(ctx, user.Image)
		if errors.Is(err, repository.ErrDuplicate) {
			// lost a race with a concurrent registration
			if cerr := s.checkAvailable(ctx, "", in.Username, email); cerr != nil {
				return nil, cerr
			}
		}
		return nil, err
	}
	return user, nil
}

// Authenticate resolves the account for cred. Every mismatch is reported as
// ErrInvalidCredentials.
func (s *authService) Authenticate(ctx context.Context, cred Credential) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(cred.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// keep unknown emails as slow as wrong passwords
			auth.BurnCompare(cred.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.VerifyPassword(user.Password, cred.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("user_id", user.ID).Msg("could not record last login")
	} else {
		user.LastLogin = &now
	}
	return user, nil
}

// UpdateProfile changes username, email and optionally the avatar. The old
// avatar file is removed once the new one is stored.
func (s *authService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	email := NormalizeEmail(in.Email)
	if err := s.checkAvailable(ctx, user.ID, in.Username, email); err != nil {
		return nil, err
	}

	oldImage := user.Image
	user.Username = in.Username
	user.Email = email
	if in.Image != nil {
		if user.Image, err = s.media.Save(ctx, media.KindAvatar, in.Image); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if user.Image != oldImage {
			s.discard(ctx, user.Image)
		}
		if errors.Is(err, repository.ErrDuplicate) {
			if cerr := s.checkAvailable(ctx, user.ID, in.Username, email); cerr != nil {
				return nil, cerr
			}
		}
		return nil, err
	}
	if user.Image != oldImage {
		s.discard(ctx, oldImage)
	}
	return user, nil
}

func (s *authService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// checkAvailable fails when username or email belongs to an account other
// than selfID.
func (s *authService) checkAvailable(ctx context.Context, selfID, username, email string) error {
	if u, err := s.userRepo.FindByUsername(ctx, username); err == nil && u.ID != selfID {
		return ErrNameInUse
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if u, err := s.userRepo.FindByEmail(ctx, email); err == nil && u.ID != selfID {
		return ErrEmailInUse
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

func (s *authService) discard(ctx context.Context, rel string) {
	discardMedia(ctx, s.media, rel)
}
