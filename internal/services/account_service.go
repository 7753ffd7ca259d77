package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dkontos/go-reservation-backend/internal/auth"
	"github.com/dkontos/go-reservation-backend/internal/domain"
)

// UserRepo defines the repository contract required by AccountService.
type UserRepo interface {
	// Create inserts a new account row.
	Create(ctx context.Context, db *gorm.DB, u *domain.User) error

	// GetByEmail fetches the account registered under email.
	GetByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error)

	// UpdateProfile overwrites the identity fields of an account.
	UpdateProfile(ctx context.Context, db *gorm.DB, id string, u domain.User) error

	// UpdatePassword replaces the stored password hash of an account.
	UpdatePassword(ctx context.Context, db *gorm.DB, id string, passwordHash string) error

	// DeleteByEmail removes the account registered under email.
	DeleteByEmail(ctx context.Context, db *gorm.DB, email string) error
}

// AccountService provides registration, authentication, and account
// maintenance on top of the user repository. Passwords never leave this
// package unhashed; see the auth package for the hashing primitives.
type AccountService struct {
	// DB is the GORM handle used for persistence and transactions.
	DB *gorm.DB
	// Repo is the user repository used by this service.
	Repo UserRepo
}

// NewAccountService constructs an AccountService.
func NewAccountService(db *gorm.DB, r UserRepo) *AccountService {
	return &AccountService{DB: db, Repo: r}
}

// Registration carries the fields collected at sign-up. Password is the raw
// password; it is hashed before storage.
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	Password  string
}

// ProfileUpdate carries the editable identity fields of an account.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
}

// NormalizeEmail lowercases and trims an email address so lookups and the
// unique index agree on a single canonical spelling.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account from reg and returns the stored record.
// The email must not already be registered; otherwise ErrEmailTaken.
func (s *AccountService) Register(ctx context.Context, reg Registration) (*domain.User, error) {
	email := NormalizeEmail(reg.Email)

	hash, err := auth.HashPassword(reg.Password)
	if err != nil {
		return nil, err
	}
	u := domain.User{
		ID:           uuid.NewString(),
		FirstName:    strings.TrimSpace(reg.FirstName),
		LastName:     strings.TrimSpace(reg.LastName),
		Email:        email,
		Phone:        strings.TrimSpace(reg.Phone),
		Address:      strings.TrimSpace(reg.Address),
		PasswordHash: hash,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.Repo.GetByEmail(ctx, tx, email); err == nil {
			return ErrEmailTaken
		} else if !isNotFound(err) {
			return err
		}
		if err := s.Repo.Create(ctx, tx, &u); err != nil {
			if isDuplicate(err) {
				return ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Authenticate checks email/password and returns the matching account.
// An unknown email and a wrong password both yield ErrUserNotFound, so the
// response does not reveal whether the account exists.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.Repo.GetByEmail(ctx, s.DB, NormalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// GetByEmail returns the account registered under email, or ErrUserNotFound.
func (s *AccountService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := s.Repo.GetByEmail(ctx, s.DB, NormalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// EditProfile overwrites the identity fields of the account registered under
// email and returns the updated record. Changing the email onto one already
// held by another account fails with ErrEmailTaken.
func (s *AccountService) EditProfile(ctx context.Context, email string, upd ProfileUpdate) (*domain.User, error) {
	email = NormalizeEmail(email)
	newEmail := NormalizeEmail(upd.Email)

	var out *domain.User
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.Repo.GetByEmail(ctx, tx, email)
		if err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}

		if newEmail != email {
			if _, err := s.Repo.GetByEmail(ctx, tx, newEmail); err == nil {
				return ErrEmailTaken
			} else if !isNotFound(err) {
				return err
			}
		}

		next := domain.User{
			FirstName: strings.TrimSpace(upd.FirstName),
			LastName:  strings.TrimSpace(upd.LastName),
			Email:     newEmail,
			Phone:     strings.TrimSpace(upd.Phone),
			Address:   strings.TrimSpace(upd.Address),
		}
		if err := s.Repo.UpdateProfile(ctx, tx, current.ID, next); err != nil {
			switch {
			case isDuplicate(err):
				return ErrEmailTaken
			case isNotFound(err):
				return ErrPersistenceFailure
			default:
				return err
			}
		}

		stored, err := s.Repo.GetByEmail(ctx, tx, newEmail)
		if err != nil {
			return err
		}
		out = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ChangePassword replaces the password of the account registered under email
// after verifying the current one. A wrong current password yields
// ErrInvalidCredentials.
func (s *AccountService) ChangePassword(ctx context.Context, email, current, next string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := s.Repo.GetByEmail(ctx, tx, NormalizeEmail(email))
		if err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}
		if !auth.CheckPassword(u.PasswordHash, current) {
			return ErrInvalidCredentials
		}
		hash, err := auth.HashPassword(next)
		if err != nil {
			return err
		}
		return s.Repo.UpdatePassword(ctx, tx, u.ID, hash)
	})
}

// ResetPassword sets a new password for the account registered under email
// without requiring the current one. The route serving it is unauthenticated
// ("forgot password"), so the only guard is knowledge of the email.
func (s *AccountService) ResetPassword(ctx context.Context, email, next string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := s.Repo.GetByEmail(ctx, tx, NormalizeEmail(email))
		if err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}
		hash, err := auth.HashPassword(next)
		if err != nil {
			return err
		}
		return s.Repo.UpdatePassword(ctx, tx, u.ID, hash)
	})
}

// DeleteAccount removes the account registered under email.
func (s *AccountService) DeleteAccount(ctx context.Context, email string) error {
	if err := s.Repo.DeleteByEmail(ctx, s.DB, NormalizeEmail(email)); err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
