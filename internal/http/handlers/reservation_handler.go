// Reservation HTTP handlers.
//
// This file exposes REST endpoints for reservation resources:
//   - GET    /reservations                 (list, paginated)
//   - GET    /reservations/{customerName}  (lookup by customer)
//   - POST   /reservations                 (create)
//   - PUT    /reservations/{customerName}  (edit)
//   - DELETE /reservations/{customerName}  (cancel, returns freed tables)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate service errors into HTTP responses with stable error codes.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dkontos/go-reservation-backend/internal/domain"
	"github.com/dkontos/go-reservation-backend/internal/services"
	"github.com/dkontos/go-reservation-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// ReservationService defines the reservation lifecycle operations consumed by
// HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ReservationService interface {
	// ListPage returns a page of reservations and the total count.
	ListPage(ctx context.Context, page, pageSize int) ([]domain.Reservation, int64, error)
	// FindByCustomer returns the reservation held under a customer name.
	FindByCustomer(ctx context.Context, name string) (*domain.Reservation, error)
	// Create validates and stores a new reservation.
	Create(ctx context.Context, candidate domain.Reservation) (*domain.Reservation, error)
	// EditByCustomer overwrites the reservation held under a customer name.
	EditByCustomer(ctx context.Context, name string, updated domain.Reservation) (*domain.Reservation, error)
	// DeleteByCustomer cancels a reservation and reports the free tables at
	// its slot.
	DeleteByCustomer(ctx context.Context, name string) ([]int, error)
}

// AccountService defines the account operations consumed by HTTP handlers.
type AccountService interface {
	// Register creates a new account.
	Register(ctx context.Context, reg services.Registration) (*domain.User, error)
	// Authenticate verifies email/password and returns the account.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	// EditProfile overwrites the identity fields of an account.
	EditProfile(ctx context.Context, email string, upd services.ProfileUpdate) (*domain.User, error)
	// ChangePassword replaces the password after verifying the current one.
	ChangePassword(ctx context.Context, email, current, next string) error
	// ResetPassword replaces the password without the current one (forgot flow).
	ResetPassword(ctx context.Context, email, next string) error
	// DeleteAccount removes an account.
	DeleteAccount(ctx context.Context, email string) error
}

// TokenIssuer mints bearer tokens for authenticated accounts.
type TokenIssuer interface {
	// Issue returns a signed token whose subject is the account email.
	Issue(subject string) (string, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for reservations and accounts.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	resvSvc ReservationService
	acctSvc AccountService
	tokens  TokenIssuer
}

// New constructs and returns a Handlers instance bound to the given services.
func New(resvSvc ReservationService, acctSvc AccountService, tokens TokenIssuer) *Handlers {
	return &Handlers{resvSvc: resvSvc, acctSvc: acctSvc, tokens: tokens}
}

// currentEmail extracts the authenticated account email from Gin context
// (set by the auth middleware under the "userID" key).
func currentEmail(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

//
// DTOs
//

// ReservationRequest is the JSON payload for creating or editing a
// reservation. The same shape serves both operations; every field is
// required and overwrites the stored value on edit.
type ReservationRequest struct {
	// CustomerName identifies the booking holder (1–255 chars).
	CustomerName string `json:"customer_name" binding:"required,min=1,max=255" example:"Alice Papadopoulou"`
	// StartsAt is the booked slot in RFC3339; it must lie in the future.
	StartsAt time.Time `json:"starts_at" binding:"required" example:"2030-06-15T19:00:00Z"`
	// PartySize is the number of guests.
	PartySize int `json:"party_size" binding:"required,min=1" example:"4"`
	// TableNumber selects a table from the fixed universe.
	TableNumber int `json:"table_number" binding:"required,min=1" example:"5"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListReservationsResponse wraps a page of reservations and pagination
// information.
type ListReservationsResponse struct {
	Reservations []domain.Reservation `json:"reservations"`
	Pagination   Pagination           `json:"pagination"`
}

// DeleteReservationResponse reports the tables free at the cancelled slot.
type DeleteReservationResponse struct {
	AvailableTables []int `json:"available_tables"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// customerParam returns the :customerName path segment, trimmed.
func customerParam(c *gin.Context) string {
	return strings.TrimSpace(c.Param("customerName"))
}

//
// Handlers
//

// ListReservations godoc
// @ID          listReservations
// @Summary     List reservations (paginated)
// @Description Returns a page of reservations ordered by start time.
// @Tags        Reservations
// @Produce     json
// @Security    BearerAuth
//
// @Param       page       query  int  false "Page number"    minimum(1) default(1)
// @Param       page_size  query  int  false "Items per page" minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListReservationsResponse
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /reservations [get]
func (h *Handlers) ListReservations(c *gin.Context) {
	page, pageSize := clampPagination(c)

	items, total, err := h.resvSvc.ListPage(c.Request.Context(), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListReservationsResponse{
		Reservations: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// GetReservation godoc
// @ID          getReservation
// @Summary     Get a reservation by customer name
// @Description Returns the single reservation held under the customer name.
// @Tags        Reservations
// @Produce     json
// @Security    BearerAuth
//
// @Param       customerName  path  string  true  "Customer name"  example(Alice Papadopoulou)
//
// @Success     200  {object} domain.Reservation
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object} handlers.ErrorResponse "Reservation not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /reservations/{customerName} [get]
func (h *Handlers) GetReservation(c *gin.Context) {
	r, err := h.resvSvc.FindByCustomer(c.Request.Context(), customerParam(c))
	if err != nil {
		if errors.Is(err, services.ErrReservationNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "reservation not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, r)
}

// CreateReservation godoc
// @ID          createReservation
// @Summary     Book a table
// @Description Creates a reservation if the table is free at the requested time and the customer holds no other booking.
// @Tags        Reservations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.ReservationRequest  true  "Reservation payload"
//
// @Success     201  {object} domain.Reservation
// @Failure     400  {object} handlers.ErrorResponse "Validation, table unavailable, duplicate customer, or table out of range"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /reservations [post]
func (h *Handlers) CreateReservation(c *gin.Context) {
	var req ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid reservation payload")
		return
	}
	if !req.StartsAt.After(time.Now()) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "reservation time must be in the future")
		return
	}

	r, err := h.resvSvc.Create(c.Request.Context(), domain.Reservation{
		CustomerName: req.CustomerName,
		StartsAt:     req.StartsAt,
		PartySize:    req.PartySize,
		TableNumber:  req.TableNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTableOutOfRange):
			fail(c, http.StatusBadRequest, ErrCodeTableOutOfRange, err.Error())
		case errors.Is(err, services.ErrTableUnavailable):
			fail(c, http.StatusBadRequest, ErrCodeTableUnavailable, "table is already booked at the requested time")
		case errors.Is(err, services.ErrDuplicateCustomer):
			fail(c, http.StatusBadRequest, ErrCodeDuplicateReservation, "customer already has a reservation")
		default:
			fail(c, http.StatusInternalServerError, ErrCodePersistenceFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, r)
}

// UpdateReservation godoc
// @ID          updateReservation
// @Summary     Edit a reservation
// @Description Overwrites all fields of the reservation held under the customer name.
// @Tags        Reservations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       customerName  path  string                       true  "Customer name"  example(Alice Papadopoulou)
// @Param       body          body  handlers.ReservationRequest  true  "Replacement fields"
//
// @Success     200  {object} domain.Reservation
// @Failure     400  {object} handlers.ErrorResponse "Validation, table out of range, or commit reported no change"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object} handlers.ErrorResponse "Reservation not found"
// @Failure     409  {object} handlers.ErrorResponse "New customer name already holds a reservation"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /reservations/{customerName} [put]
func (h *Handlers) UpdateReservation(c *gin.Context) {
	var req ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid reservation payload")
		return
	}
	if !req.StartsAt.After(time.Now()) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "reservation time must be in the future")
		return
	}

	r, err := h.resvSvc.EditByCustomer(c.Request.Context(), customerParam(c), domain.Reservation{
		CustomerName: req.CustomerName,
		StartsAt:     req.StartsAt,
		PartySize:    req.PartySize,
		TableNumber:  req.TableNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReservationNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "reservation not found")
		case errors.Is(err, services.ErrTableOutOfRange):
			fail(c, http.StatusBadRequest, ErrCodeTableOutOfRange, err.Error())
		case errors.Is(err, services.ErrDuplicateCustomer):
			fail(c, http.StatusConflict, ErrCodeDuplicateReservation, "customer already has a reservation")
		case errors.Is(err, services.ErrPersistenceFailure):
			fail(c, http.StatusBadRequest, ErrCodePersistenceFailed, "update was not applied")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, r)
}

// DeleteReservation godoc
// @ID          deleteReservation
// @Summary     Cancel a reservation
// @Description Deletes the reservation held under the customer name and returns the tables free at its slot.
// @Tags        Reservations
// @Produce     json
// @Security    BearerAuth
//
// @Param       customerName  path  string  true  "Customer name"  example(Alice Papadopoulou)
//
// @Success     200  {object} handlers.DeleteReservationResponse
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object} handlers.ErrorResponse "Reservation not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /reservations/{customerName} [delete]
func (h *Handlers) DeleteReservation(c *gin.Context) {
	free, err := h.resvSvc.DeleteByCustomer(c.Request.Context(), customerParam(c))
	if err != nil {
		if errors.Is(err, services.ErrReservationNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "reservation not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodePersistenceFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, DeleteReservationResponse{AvailableTables: free})
}
