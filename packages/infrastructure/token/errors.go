package token

import (
	"net/http"
	Error "warehouse/packages/common/errors"
)

// According to RFC 7235 (https://datatracker.ietf.org/doc/html/rfc7235#section-3.1)
// 401 response status code indicates that the request lacks VALID authentication credentials,
// no matter if token was invalid, missing or auth credentials are invalid.

var InvalidToken = Error.NewStatusError(
	"Invalid token",
	http.StatusUnauthorized,
)

var TokenMalformed = Error.NewStatusError(
	"Token is malformed or has invalid format",
	http.StatusUnauthorized,
)

var TokenExpired = Error.NewStatusError(
	"Token expired",
	http.StatusUnauthorized,
)

var TokenInvalidSignature = Error.NewStatusError(
	"Invalid token signature",
	http.StatusUnauthorized,
)

var TokenMissingRequiredClaims = Error.NewStatusError(
	"At least one of required token claims is missing",
	http.StatusUnauthorized,
)

func IsTokenError(err *Error.Status) bool {
	return err == InvalidToken ||
		err == TokenMalformed ||
		err == TokenExpired ||
		err == TokenInvalidSignature ||
		err == TokenMissingRequiredClaims
}
