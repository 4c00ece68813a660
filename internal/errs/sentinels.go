// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrBadRequest indicates invalid or missing client input.
	ErrBadRequest = errors.New("bad request")

	// ErrUnauthorized indicates failed authentication.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates insufficient privilege for the requested resource.
	ErrForbidden = errors.New("forbidden")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")
)

// Authentication flow sentinels. The messages are part of the API contract.
var (
	// ErrNoToken: authorization header absent or empty on an authenticated route.
	ErrNoToken = errors.New("No token provided")

	// ErrLogoutNoToken is the same condition on the logout path. Kept distinct
	// because logout reports it as an internal error, not 401.
	ErrLogoutNoToken = errors.New("No token provided")

	// ErrInvalidToken covers malformed, badly signed, expired, and revoked tokens.
	ErrInvalidToken = errors.New("Token invalid")

	// ErrWrongPassword indicates a password mismatch on login.
	ErrWrongPassword = errors.New("Wrong password")
)

// Purchase invariant sentinels. Checked in order: buy limit, wallet, stock.
var (
	// ErrBuyLimitReached: the user already holds buy_limit purchases of the goodies.
	ErrBuyLimitReached = errors.New("buy limit reached")

	// ErrInsufficientWallet: the user's wallet cannot cover the price.
	ErrInsufficientWallet = errors.New("insufficient wallet")

	// ErrOutOfStock: every unit of the goodies has been bought.
	ErrOutOfStock = errors.New("out of stock")
)
