package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

func (app *application) logError(r *http.Request, err error) {
	var (
		method  = r.Method
		url     = r.URL.RequestURI()
		message = err.Error()
	)

	app.logger.Error(message, slog.String("method", method), slog.String("url", url))
}

func (app *application) writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	err := app.writeJSON(w, status, envelope{"error": message}, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	message := "the server encountered a problem and could not process your request"
	app.writeErrorResponse(w, r, http.StatusInternalServerError, message)
}

func (app *application) badRequestErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusNotFound, "resource not found")
}

func (app *application) malformedIDErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusBadRequest, common.ErrMalformedID.Error())
}

func (app *application) failedValidationErrorResponse(w http.ResponseWriter, r *http.Request, err common.ValidationError) {
	app.writeErrorResponse(w, r, http.StatusBadRequest, err.Message)
}

func (app *application) invalidCredentialsErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusUnauthorized, "invalid username or password")
}

func (app *application) invalidAuthenticationTokenResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	app.writeErrorResponse(w, r, http.StatusUnauthorized, "token missing or invalid")
}

func (app *application) forbiddenErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusForbidden, "only the creator can modify a blog")
}

func (app *application) methodNotAllowedErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}

// serviceErrorResponse maps the error taxonomy shared by every service to a
// response. Handlers match their own sentinel errors first.
func (app *application) serviceErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr common.ValidationError

	switch {
	case errors.As(err, &validationErr):
		app.failedValidationErrorResponse(w, r, validationErr)
	case errors.Is(err, common.ErrMalformedID):
		app.malformedIDErrorResponse(w, r)
	case errors.Is(err, common.ErrRecordNotFound):
		app.notFoundErrorResponse(w, r)
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, blogservice.ErrUserForeignKey):
		app.invalidAuthenticationTokenResponse(w, r)
	case errors.Is(err, common.ErrForbidden):
		app.forbiddenErrorResponse(w, r)
	case errors.Is(err, userservice.ErrDuplicateUsername):
		app.badRequestErrorResponse(w, r, err)
	case errors.Is(err, userservice.ErrAuthenticationFailure):
		app.invalidCredentialsErrorResponse(w, r)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
