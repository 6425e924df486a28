package errs

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTP converts any internal error into an echo HTTP error. Status
// discipline: validation and invalid operations map to 400, missing or
// bad credentials to 401, ownership violations to 403, unknown entities
// to 404 and duplicates to 409. Anything unrecognized becomes a 500 with
// a generic message.
func HTTP(err error) *echo.HTTPError {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())

	case errors.Is(err, ErrNotPostOwner):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())

	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrPostNotFound),
		errors.Is(err, ErrNoUsersFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, ErrUsernameTaken),
		errors.Is(err, ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrSelfFollow),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrPasswordTooShort),
		errors.Is(err, ErrPasswordPair),
		errors.Is(err, ErrWrongPassword),
		errors.Is(err, ErrPostEmpty),
		errors.Is(err, ErrCommentEmpty),
		errors.Is(err, ErrQueryRequired):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}
}
