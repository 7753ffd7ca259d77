// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// Error semantics mirror the reservation repository: missing records surface
// as ErrNotFound, everything else propagates the raw gorm error. The unique
// index on email is the storage-level guard behind the already-exists and
// email-taken service errors.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/dkontos/go-reservation-backend/internal/domain"
)

// CreateUser inserts a new account row. The caller assigns the UUID and the
// bcrypt password hash before calling.
func CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) error {
	return db.WithContext(ctx).Create(u).Error
}

// GetUserByEmail fetches an account by its email (the login identifier).
// Returns ErrNotFound if no such account exists.
func GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUserProfile overwrites the profile fields of the account identified
// by id, including a possible email change. Returns ErrNotFound when the
// account is missing; an email collision trips the unique index.
func UpdateUserProfile(ctx context.Context, db *gorm.DB, id string, u domain.User) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"first_name": u.FirstName,
			"last_name":  u.LastName,
			"email":      u.Email,
			"phone":      u.Phone,
			"address":    u.Address,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateUserPassword replaces the stored bcrypt hash for the account
// identified by id. Returns ErrNotFound when the account is missing.
func UpdateUserPassword(ctx context.Context, db *gorm.DB, id, passwordHash string) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteUserByEmail removes the account registered under email.
// Returns ErrNotFound when no rows are affected.
func DeleteUserByEmail(ctx context.Context, db *gorm.DB, email string) error {
	res := db.WithContext(ctx).
		Where("email = ?", email).
		Delete(&domain.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
