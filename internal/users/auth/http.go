// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package auth

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/constants"
	requestutil "github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/request"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the sign-in pages of the dashboard.
//
// # Scope
//
// Public pages (login, password recovery) are mounted behind a public-only
// guard; logout and the profile refresh behind the protected one.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// PublicRoutes registers the signed-out pages on router.
//
// # Endpoints
//   - GET|POST /login           : Sign in (POST throttled by throttle).
//   - GET|POST /forgot-password : Request a reset code.
//   - GET|POST /reset-password  : Set a new password.
func (handler *Handler) PublicRoutes(router chi.Router, throttle func(http.Handler) http.Handler) {
	router.Get(constants.PathLogin, handler.loginPage)
	router.With(throttle).Post(constants.PathLogin, handler.login)
	router.Get(constants.PathForgotPassword, handler.forgotPasswordPage)
	router.With(throttle).Post(constants.PathForgotPassword, handler.forgotPassword)
	router.Get(constants.PathResetPassword, handler.resetPasswordPage)
	router.With(throttle).Post(constants.PathResetPassword, handler.resetPassword)
}

// ProtectedRoutes registers the signed-in endpoints on router.
func (handler *Handler) ProtectedRoutes(router chi.Router) {
	router.Post("/logout", handler.logout)
	router.Get("/profile", handler.profile)
}

// # View Models

type formPage struct {
	Page  string `json:"page"`
	Email string `json:"email,omitempty"`
}

// # Sign In

func (handler *Handler) loginPage(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, request, formPage{Page: "login"})
}

/*
POST /login.

Description: Authenticates with the backend and persists the session.

Request (Body):
  - email: string
  - password: string (6 to 20 characters)

Response:
  - 303: Redirect to /dashboard
  - 400: ErrValidation: Invalid form
  - 303: Redirect to /login when the backend rejects the credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var form LoginForm
	if err := requestutil.DecodeJSON(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.authService.Login(request.Context(), form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Redirect(writer, request, constants.PathDashboard)
}

/*
POST /dashboard/logout.

Description: Purges the browser session. The backend is not contacted.

Response:
  - 303: Redirect to /login
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if err := handler.authService.Logout(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Redirect(writer, request, constants.PathLogin)
}

/*
GET /dashboard/profile.

Description: Re-reads the principal from the backend and refreshes the session.

Response:
  - 200: User
*/
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.authService.Me(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, request, user)
}

// # Password Recovery

func (handler *Handler) forgotPasswordPage(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, request, formPage{Page: "forgot-password"})
}

/*
POST /forgot-password.

Request (Body):
  - email: string

Response:
  - 303: Redirect to /reset-password?email=...
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var form ForgotPasswordForm
	if err := requestutil.DecodeJSON(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ForgotPassword(request.Context(), form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	target := constants.PathResetPassword + "?" + url.Values{FieldEmail: {form.Email}}.Encode()
	respond.Redirect(writer, request, target)
}

func (handler *Handler) resetPasswordPage(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, request, formPage{
		Page:  "reset-password",
		Email: request.URL.Query().Get(FieldEmail),
	})
}

/*
POST /reset-password.

Request (Body):
  - email, otp, password, confirmPassword: string

Response:
  - 303: Redirect to /login
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var form ResetPasswordForm
	if err := requestutil.DecodeJSON(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ResetPassword(request.Context(), form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Redirect(writer, request, constants.PathLogin)
}
