// Account HTTP handlers.
//
// This file exposes REST endpoints for account management:
//   - POST   /users/register         (create account)
//   - POST   /users/login            (authenticate, returns bearer token)
//   - PUT    /users/profile          (edit identity fields)
//   - POST   /users/password         (change password)
//   - PUT    /users/password/forgot  (reset password without the current one)
//   - DELETE /users                  (delete own account)
//
// Login failures answer 404 rather than 401 so the response does not separate
// "unknown email" from "wrong password".
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkontos/go-reservation-backend/internal/domain"
	"github.com/dkontos/go-reservation-backend/internal/services"
)

//
// DTOs
//

// RegisterRequest is the JSON payload for creating an account.
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required,min=1,max=120" example:"Dimitris"`
	LastName  string `json:"last_name"  binding:"required,min=1,max=120" example:"Kontos"`
	Email     string `json:"email"      binding:"required,email" example:"dimitris@example.com"`
	Phone     string `json:"phone"      binding:"max=40" example:"+30 694 000 0000"`
	Address   string `json:"address"    binding:"max=255" example:"Athens"`
	Password  string `json:"password"   binding:"required,min=8,max=72" example:"s3cret-password"`
}

// LoginRequest is the JSON payload for authenticating.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email" example:"dimitris@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret-password"`
}

// LoginResponse carries the bearer token and the account it belongs to.
type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// UpdateProfileRequest is the JSON payload for editing account identity
// fields. Every field overwrites the stored value.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"required,min=1,max=120"`
	LastName  string `json:"last_name"  binding:"required,min=1,max=120"`
	Email     string `json:"email"      binding:"required,email"`
	Phone     string `json:"phone"      binding:"max=40"`
	Address   string `json:"address"    binding:"max=255"`
}

// ChangePasswordRequest is the JSON payload for replacing the password while
// knowing the current one.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password"     binding:"required,min=8,max=72"`
}

// ForgotPasswordRequest is the JSON payload for the unauthenticated password
// reset flow.
type ForgotPasswordRequest struct {
	Email       string `json:"email"        binding:"required,email"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

//
// Handlers
//

// Register godoc
// @ID          registerUser
// @Summary     Create an account
// @Description Registers a new account; the email must not already be in use.
// @Tags        Users
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RegisterRequest  true  "Registration payload"
//
// @Success     201  {object} domain.User
// @Failure     400  {object} handlers.ErrorResponse "Validation error"
// @Failure     409  {object} handlers.ErrorResponse "Email already registered"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /users/register [post]
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid registration payload")
		return
	}

	u, err := h.acctSvc.Register(c.Request.Context(), services.Registration{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			fail(c, http.StatusConflict, ErrCodeEmailTaken, "email address already in use")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusCreated, u)
}

// Login godoc
// @ID          loginUser
// @Summary     Authenticate and obtain a bearer token
// @Description Verifies credentials and returns a signed token plus the account profile.
// @Tags        Users
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LoginRequest  true  "Login payload"
//
// @Success     200  {object} handlers.LoginResponse
// @Failure     400  {object} handlers.ErrorResponse "Validation error"
// @Failure     404  {object} handlers.ErrorResponse "Unknown account or wrong password"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /users/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid login payload")
		return
	}

	u, err := h.acctSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "account does not exist")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	token, err := h.tokens.Issue(u.Email)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not issue token")
		return
	}
	ok(c, http.StatusOK, LoginResponse{Token: token, User: *u})
}

// UpdateProfile godoc
// @ID          updateProfile
// @Summary     Edit the authenticated account
// @Description Overwrites the identity fields of the caller's account.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.UpdateProfileRequest  true  "Replacement fields"
//
// @Success     200  {object} domain.User
// @Failure     400  {object} handlers.ErrorResponse "Validation error"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object} handlers.ErrorResponse "Account not found"
// @Failure     409  {object} handlers.ErrorResponse "New email already in use"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /users/profile [put]
func (h *Handlers) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid profile payload")
		return
	}

	u, err := h.acctSvc.EditProfile(c.Request.Context(), currentEmail(c), services.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "account does not exist")
		case errors.Is(err, services.ErrEmailTaken):
			fail(c, http.StatusConflict, ErrCodeEmailTaken, "email address already in use")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, u)
}

// ChangePassword godoc
// @ID          changePassword
// @Summary     Change the account password
// @Description Replaces the caller's password after verifying the current one.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.ChangePasswordRequest  true  "Password change payload"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Validation error or wrong current password"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object} handlers.ErrorResponse "Account not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /users/password [post]
func (h *Handlers) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid password payload")
		return
	}

	err := h.acctSvc.ChangePassword(c.Request.Context(), currentEmail(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "account does not exist")
		case errors.Is(err, services.ErrInvalidCredentials):
			fail(c, http.StatusBadRequest, ErrCodeInvalidCredentials, "current password is incorrect")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}

// ForgotPassword godoc
// @ID          forgotPassword
// @Summary     Reset a forgotten password
// @Description Sets a new password for the account registered under the email.
// @Tags        Users
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.ForgotPasswordRequest  true  "Reset payload"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Validation error"
// @Failure     404  {object} handlers.ErrorResponse "Account not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /users/password/forgot [put]
func (h *Handlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid reset payload")
		return
	}

	if err := h.acctSvc.ResetPassword(c.Request.Context(), req.Email, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "account does not exist")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// DeleteAccount godoc
// @ID          deleteAccount
// @Summary     Delete the authenticated account
// @Description Removes the caller's account. Any reservation they hold is left in place.
// @Tags        Users
// @Produce     json
// @Security    BearerAuth
//
// @Success     204  {string} string "No Content"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object} handlers.ErrorResponse "Account not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /users [delete]
func (h *Handlers) DeleteAccount(c *gin.Context) {
	if err := h.acctSvc.DeleteAccount(c.Request.Context(), currentEmail(c)); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "account does not exist")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
