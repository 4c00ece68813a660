// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Privilege is an ordinal access tier. Higher subsumes lower.
type Privilege int

const (
	// PrivilegeMember is the default tier for registered users.
	PrivilegeMember Privilege = 0
	// PrivilegeAdmin may read and mutate club-wide resources.
	PrivilegeAdmin Privilege = 1
	// PrivilegeSuperAdmin may mutate other users' accomplishments and purchases.
	PrivilegeSuperAdmin Privilege = 2
)

// User is a club member account. Wallet is a point balance in whole points,
// debited by purchases and credited by refunds; never negative.
type User struct {
	ID           int64
	Email        string // unique
	PasswordHash string // bcrypt
	Privilege    Privilege
	Wallet       int64
	CreatedAt    time.Time
}

// Session binds a token digest to a user, enabling revocation independent of
// the token's own signature validity.
type Session struct {
	ID          uuid.UUID
	TokenDigest string // sha256 hex of the raw token, unique
	UserID      int64
	CreatedAt   time.Time
}

// Challenge is a club challenge members can complete for a wallet reward.
type Challenge struct {
	ID          int64
	Title       string
	Description string
	Reward      int64
	CreatedAt   time.Time
}

// Accomplishment is a member's claim of completing a challenge.
type Accomplishment struct {
	ID          int64
	UserID      int64
	ChallengeID int64
	Validated   bool
	CreatedAt   time.Time
}

// Goodies is a purchasable item. Bought counts cumulative sales and is never
// decremented, including on refund. Invariant: bought <= stock.
type Goodies struct {
	ID        int64
	Name      string
	Price     int64
	Stock     int64
	Bought    int64
	BuyLimit  int64 // max purchases per user, >= 1
	CreatedAt time.Time
}

// Purchase is a committed exchange of wallet points for one goodies unit.
type Purchase struct {
	ID        uuid.UUID
	UserID    int64
	GoodiesID int64
	Delivered bool
	CreatedAt time.Time
}
