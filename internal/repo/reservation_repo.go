// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Reservation
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. Availability and uniqueness rules live
// in services.ReservationService.
//
// Error semantics:
//   - When a reservation is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated. The unique index on customer_name
//     surfaces as a constraint violation which the service maps to its
//     duplicate-customer sentinel.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/dkontos/go-reservation-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateReservation inserts r and populates its store-assigned ID.
// The caller is expected to have normalized the customer name and timestamp.
func CreateReservation(ctx context.Context, db *gorm.DB, r *domain.Reservation) error {
	return db.WithContext(ctx).Create(r).Error
}

// ListReservations returns every reservation ordered by start time ascending,
// then by table number for a stable order within a slot. It returns an empty
// slice when the store is empty.
func ListReservations(ctx context.Context, db *gorm.DB) ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := db.WithContext(ctx).
		Order("starts_at asc, table_number asc").
		Find(&out).Error
	return out, err
}

// CountReservations returns the total number of reservations on file.
func CountReservations(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Count(&total).Error
	return total, err
}

// ListReservationsPage returns a paginated slice of reservations in the same
// order as ListReservations. Use CountReservations to obtain the total for
// pagination metadata.
//
// The caller is responsible for computing offset and limit (e.g., (page-1)*pageSize).
func ListReservationsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := db.WithContext(ctx).
		Order("starts_at asc, table_number asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetReservationByCustomer fetches the single reservation held under
// customerName (exact match). If no record exists, it returns ErrNotFound.
func GetReservationByCustomer(ctx context.Context, db *gorm.DB, customerName string) (*domain.Reservation, error) {
	var r domain.Reservation
	err := db.WithContext(ctx).
		Where("customer_name = ?", customerName).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateReservationByCustomer overwrites the four mutable fields of the
// reservation held under customerName. If no rows are affected (record
// missing), it returns ErrNotFound. On DB error, the raw error is returned;
// renaming onto an existing customer trips the unique index.
func UpdateReservationByCustomer(ctx context.Context, db *gorm.DB, customerName string, updated domain.Reservation) error {
	res := db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Where("customer_name = ?", customerName).
		Updates(map[string]any{
			"customer_name": updated.CustomerName,
			"starts_at":     updated.StartsAt,
			"party_size":    updated.PartySize,
			"table_number":  updated.TableNumber,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteReservationByCustomer removes the reservation held under customerName.
// If no rows are affected, it returns ErrNotFound.
func DeleteReservationByCustomer(ctx context.Context, db *gorm.DB, customerName string) error {
	res := db.WithContext(ctx).
		Where("customer_name = ?", customerName).
		Delete(&domain.Reservation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
