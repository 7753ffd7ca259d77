// Package services – ReservationService
//
// This file implements the ReservationService, which orchestrates the
// reservation lifecycle: listing, lookup by customer, and the guarded
// create/edit/delete operations. Availability is decided by the pure
// calculator in internal/availability; this service owns the invariants
// around it (one reservation per customer, tables drawn from the fixed
// universe) and runs each mutating operation inside a transaction so the
// check-then-write sequences cannot interleave.
//
// Service-level errors (e.g., ErrTableUnavailable, ErrDuplicateCustomer) are
// returned for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"github.com/dkontos/go-reservation-backend/internal/availability"
	"github.com/dkontos/go-reservation-backend/internal/domain"
	"github.com/dkontos/go-reservation-backend/internal/repo"
)

// ReservationRepo defines the repository contract required by
// ReservationService. Implementations are responsible for persistence of
// reservation records; the db handle may be transaction-bound.
type ReservationRepo interface {
	// Create inserts a new reservation row and assigns its ID.
	Create(ctx context.Context, db *gorm.DB, r *domain.Reservation) error

	// List returns all reservations ordered by start time.
	List(ctx context.Context, db *gorm.DB) ([]domain.Reservation, error)

	// Count returns the total number of reservations for pagination.
	Count(ctx context.Context, db *gorm.DB) (int64, error)

	// ListPage returns a page of reservations.
	ListPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Reservation, error)

	// GetByCustomer fetches the reservation held under a customer name.
	GetByCustomer(ctx context.Context, db *gorm.DB, customerName string) (*domain.Reservation, error)

	// UpdateByCustomer overwrites all mutable fields of a reservation.
	UpdateByCustomer(ctx context.Context, db *gorm.DB, customerName string, updated domain.Reservation) error

	// DeleteByCustomer removes the reservation held under a customer name.
	DeleteByCustomer(ctx context.Context, db *gorm.DB, customerName string) error
}

// ReservationService provides reservation-level operations and enforces the
// booking invariants on top of the repository.
type ReservationService struct {
	// DB is the GORM handle used for persistence and transactions.
	DB *gorm.DB
	// Repo is the reservation repository used by this service.
	Repo ReservationRepo
	// Tables is the size of the table universe (tables 1..Tables).
	Tables int
}

// NewReservationService constructs a ReservationService over the default
// table universe.
func NewReservationService(db *gorm.DB, r ReservationRepo) *ReservationService {
	return &ReservationService{
		DB:     db,
		Repo:   r,
		Tables: availability.DefaultTableCount,
	}
}

// NormalizeCustomerName trims surrounding whitespace and applies Unicode NFC
// so visually identical spellings hit the same unique key. Matching stays
// case-sensitive.
func NormalizeCustomerName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// List returns all reservations (non-paginated).
func (s *ReservationService) List(ctx context.Context) ([]domain.Reservation, error) {
	return s.Repo.List(ctx, s.DB)
}

// ListPage returns a page of reservations plus the total count.
// It applies defaults for invalid page/pageSize.
func (s *ReservationService) ListPage(ctx context.Context, page, pageSize int) ([]domain.Reservation, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.Count(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Reservation{}, 0, nil
	}

	items, err := s.Repo.ListPage(ctx, s.DB, offset, pageSize)
	return items, total, err
}

// FindByCustomer returns the reservation held under name, or
// ErrReservationNotFound.
func (s *ReservationService) FindByCustomer(ctx context.Context, name string) (*domain.Reservation, error) {
	r, err := s.Repo.GetByCustomer(ctx, s.DB, NormalizeCustomerName(name))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return r, nil
}

// AvailableTables computes the free tables at the given time from the
// current reservation collection.
func (s *ReservationService) AvailableTables(ctx context.Context, at time.Time) ([]int, error) {
	all, err := s.Repo.List(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	return availability.FreeTables(all, availability.Normalize(at), s.Tables), nil
}

// Create validates and persists candidate, returning the stored record with
// its assigned ID.
//
// Semantics and validation:
//   - The table must belong to the universe 1..Tables; otherwise ErrTableOutOfRange.
//   - The table must be free at the (normalized) start time; otherwise
//     ErrTableUnavailable.
//   - The customer must not already hold a reservation; otherwise
//     ErrDuplicateCustomer. The unique index on customer_name backs this
//     check, so a concurrent create for the same name cannot race past it.
//
// The availability/uniqueness checks and the insert run inside one
// transaction.
func (s *ReservationService) Create(ctx context.Context, candidate domain.Reservation) (*domain.Reservation, error) {
	candidate.CustomerName = NormalizeCustomerName(candidate.CustomerName)
	candidate.StartsAt = availability.Normalize(candidate.StartsAt)
	candidate.ID = 0

	if !availability.InUniverse(candidate.TableNumber, s.Tables) {
		return nil, ErrTableOutOfRange
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all, err := s.Repo.List(ctx, tx)
		if err != nil {
			return err
		}
		free := availability.FreeTables(all, candidate.StartsAt, s.Tables)
		if !containsTable(free, candidate.TableNumber) {
			return ErrTableUnavailable
		}

		if _, err := s.Repo.GetByCustomer(ctx, tx, candidate.CustomerName); err == nil {
			return ErrDuplicateCustomer
		} else if !isNotFound(err) {
			return err
		}

		if err := s.Repo.Create(ctx, tx, &candidate); err != nil {
			if isDuplicate(err) {
				return ErrDuplicateCustomer
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}

// EditByCustomer overwrites all four mutable fields of the reservation held
// under name and returns the updated record. The record keeps its identity;
// only the fields change, including possibly the customer name itself.
//
// Edits do not re-run the table availability check; the conflict guard
// applies at create time only. Renaming onto a customer that already holds a
// reservation fails with ErrDuplicateCustomer via the unique index.
func (s *ReservationService) EditByCustomer(ctx context.Context, name string, updated domain.Reservation) (*domain.Reservation, error) {
	name = NormalizeCustomerName(name)
	updated.CustomerName = NormalizeCustomerName(updated.CustomerName)
	updated.StartsAt = availability.Normalize(updated.StartsAt)

	if !availability.InUniverse(updated.TableNumber, s.Tables) {
		return nil, ErrTableOutOfRange
	}

	var out *domain.Reservation
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.Repo.GetByCustomer(ctx, tx, name); err != nil {
			if isNotFound(err) {
				return ErrReservationNotFound
			}
			return err
		}

		if err := s.Repo.UpdateByCustomer(ctx, tx, name, updated); err != nil {
			switch {
			case isDuplicate(err):
				return ErrDuplicateCustomer
			case isNotFound(err):
				// Located a moment ago but the commit touched no rows.
				return ErrPersistenceFailure
			default:
				return err
			}
		}

		stored, err := s.Repo.GetByCustomer(ctx, tx, updated.CustomerName)
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

// DeleteByCustomer removes the reservation held under name and returns the
// available tables at the deleted reservation's start time. The freed table
// reappears in the result by construction; it is re-inserted defensively if
// a lingering booking at the same slot still claims it.
func (s *ReservationService) DeleteByCustomer(ctx context.Context, name string) ([]int, error) {
	name = NormalizeCustomerName(name)

	var free []int
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.Repo.GetByCustomer(ctx, tx, name)
		if err != nil {
			if isNotFound(err) {
				return ErrReservationNotFound
			}
			return err
		}
		freedTable := existing.TableNumber
		freedAt := existing.StartsAt

		if err := s.Repo.DeleteByCustomer(ctx, tx, name); err != nil {
			if isNotFound(err) {
				return ErrPersistenceFailure
			}
			return err
		}

		remaining, err := s.Repo.List(ctx, tx)
		if err != nil {
			return err
		}
		free = availability.FreeTables(remaining, freedAt, s.Tables)
		if !containsTable(free, freedTable) {
			free = append(free, freedTable)
			sort.Ints(free)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return free, nil
}

func containsTable(tables []int, n int) bool {
	for _, t := range tables {
		if t == n {
			return true
		}
	}
	return false
}

// isNotFound treats repo-level not found sentinels as "not found" in a
// driver-agnostic way.
func isNotFound(err error) bool {
	if errors.Is(err, repo.ErrNotFound) {
		return true
	}
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicate attempts to detect unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
