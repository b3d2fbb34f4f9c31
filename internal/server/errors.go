package server

import (
	"errors"
	"net/http"

	admindomain "github.com/smallbiznis/galeri/internal/adminreport/domain"
	catalogdomain "github.com/smallbiznis/galeri/internal/catalog/domain"
	identitydomain "github.com/smallbiznis/galeri/internal/identity/domain"
	orderdomain "github.com/smallbiznis/galeri/internal/order/domain"
	subscriptiondomain "github.com/smallbiznis/galeri/internal/subscription/domain"
)

// errBadRequest covers malformed request payloads before any domain call.
var errBadRequest = errors.New("bad_request")

// mapError converts a domain error into an HTTP status, a stable type string
// and a message safe to show non-administrator callers.
func mapError(err error) (int, string, string) {
	switch {
	case errors.Is(err, orderdomain.ErrUnauthenticated),
		errors.Is(err, identitydomain.ErrUnauthenticated),
		errors.Is(err, identitydomain.ErrSessionExpired):
		return http.StatusUnauthorized, "unauthenticated", "authentication required"

	case errors.Is(err, identitydomain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials", "invalid email or password"

	case errors.Is(err, orderdomain.ErrForbidden),
		errors.Is(err, subscriptiondomain.ErrForbidden),
		errors.Is(err, admindomain.ErrForbidden):
		return http.StatusForbidden, "forbidden", "administrator privilege required"

	case errors.Is(err, orderdomain.ErrNotFound):
		return http.StatusNotFound, "order_not_found", "order not found"
	case errors.Is(err, subscriptiondomain.ErrNotFound):
		return http.StatusNotFound, "subscription_not_found", "subscription not found"
	case errors.Is(err, catalogdomain.ErrNotFound):
		return http.StatusNotFound, "artwork_not_found", "artwork not found"
	case errors.Is(err, identitydomain.ErrNotFound):
		return http.StatusNotFound, "user_not_found", "user not found"

	case errors.Is(err, orderdomain.ErrEmptyOrder):
		return http.StatusBadRequest, "empty_order", "order has no line items"
	case errors.Is(err, orderdomain.ErrItemUnavailable):
		return http.StatusBadRequest, "item_unavailable", err.Error()
	case errors.Is(err, orderdomain.ErrInvalidState):
		return http.StatusConflict, "invalid_state", "order is not in a state that allows this transition"

	case errors.Is(err, subscriptiondomain.ErrInvalidAmount):
		return http.StatusBadRequest, "invalid_amount", "deposit amount must be positive"

	case errors.Is(err, identitydomain.ErrInvalidEmail):
		return http.StatusBadRequest, "invalid_email", "a valid email address is required"
	case errors.Is(err, identitydomain.ErrInvalidPassword):
		return http.StatusBadRequest, "invalid_password", "password does not meet requirements"
	case errors.Is(err, identitydomain.ErrUserExists):
		return http.StatusConflict, "user_exists", "an account with this email already exists"

	case errors.Is(err, catalogdomain.ErrInvalidTitle),
		errors.Is(err, catalogdomain.ErrInvalidArtist),
		errors.Is(err, catalogdomain.ErrInvalidPrice),
		errors.Is(err, catalogdomain.ErrInvalidStatus):
		return http.StatusBadRequest, "invalid_artwork", "artwork payload is invalid"

	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, "bad_request", "request payload is invalid"

	default:
		// Includes persistence failures; storage detail never reaches the
		// caller.
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
