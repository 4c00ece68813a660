// Package convert maps domain entities to and from API JSON payloads.
// Password hashes never cross this boundary.
package convert

import (
	"time"

	"github.com/acoudray/clubhouse/internal/model"
)

// --- helpers ---

func ts(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// --- User (server -> client) ---

// UserJSON is the API representation of a user.
type UserJSON struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Privilege int    `json:"privilege"`
	Wallet    int64  `json:"wallet"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ToUserJSON converts a domain user, dropping the password hash.
func ToUserJSON(u model.User) UserJSON {
	return UserJSON{
		ID:        u.ID,
		Email:     u.Email,
		Privilege: int(u.Privilege),
		Wallet:    u.Wallet,
		CreatedAt: ts(u.CreatedAt),
	}
}

// ToUserJSONs converts a slice of domain users.
func ToUserJSONs(us []model.User) []UserJSON {
	out := make([]UserJSON, 0, len(us))
	for _, u := range us {
		out = append(out, ToUserJSON(u))
	}
	return out
}

// --- Challenge ---

// ChallengeJSON is the API representation of a challenge.
type ChallengeJSON struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Reward      int64  `json:"reward"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// ToChallengeJSON converts a domain challenge.
func ToChallengeJSON(c model.Challenge) ChallengeJSON {
	return ChallengeJSON{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Reward:      c.Reward,
		CreatedAt:   ts(c.CreatedAt),
	}
}

// ToChallengeJSONs converts a slice of domain challenges.
func ToChallengeJSONs(cs []model.Challenge) []ChallengeJSON {
	out := make([]ChallengeJSON, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToChallengeJSON(c))
	}
	return out
}

// --- Accomplishment ---

// AccomplishmentJSON is the API representation of an accomplishment.
type AccomplishmentJSON struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	ChallengeID int64  `json:"challenge_id"`
	Validated   bool   `json:"validated"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// ToAccomplishmentJSON converts a domain accomplishment.
func ToAccomplishmentJSON(a model.Accomplishment) AccomplishmentJSON {
	return AccomplishmentJSON{
		ID:          a.ID,
		UserID:      a.UserID,
		ChallengeID: a.ChallengeID,
		Validated:   a.Validated,
		CreatedAt:   ts(a.CreatedAt),
	}
}

// ToAccomplishmentJSONs converts a slice of domain accomplishments.
func ToAccomplishmentJSONs(as []model.Accomplishment) []AccomplishmentJSON {
	out := make([]AccomplishmentJSON, 0, len(as))
	for _, a := range as {
		out = append(out, ToAccomplishmentJSON(a))
	}
	return out
}

// --- Goodies ---

// GoodiesJSON is the API representation of a goodies item.
type GoodiesJSON struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Stock     int64  `json:"stock"`
	Bought    int64  `json:"bought"`
	BuyLimit  int64  `json:"buy_limit"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ToGoodiesJSON converts a domain goodies item.
func ToGoodiesJSON(g model.Goodies) GoodiesJSON {
	return GoodiesJSON{
		ID:        g.ID,
		Name:      g.Name,
		Price:     g.Price,
		Stock:     g.Stock,
		Bought:    g.Bought,
		BuyLimit:  g.BuyLimit,
		CreatedAt: ts(g.CreatedAt),
	}
}

// ToGoodiesJSONs converts a slice of domain goodies.
func ToGoodiesJSONs(gs []model.Goodies) []GoodiesJSON {
	out := make([]GoodiesJSON, 0, len(gs))
	for _, g := range gs {
		out = append(out, ToGoodiesJSON(g))
	}
	return out
}

// --- Purchase ---

// PurchaseJSON is the API representation of a purchase.
type PurchaseJSON struct {
	ID        string `json:"id"`
	UserID    int64  `json:"user_id"`
	GoodiesID int64  `json:"goodies_id"`
	Delivered bool   `json:"delivered"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ToPurchaseJSON converts a domain purchase.
func ToPurchaseJSON(p model.Purchase) PurchaseJSON {
	return PurchaseJSON{
		ID:        p.ID.String(),
		UserID:    p.UserID,
		GoodiesID: p.GoodiesID,
		Delivered: p.Delivered,
		CreatedAt: ts(p.CreatedAt),
	}
}

// ToPurchaseJSONs converts a slice of domain purchases.
func ToPurchaseJSONs(ps []model.Purchase) []PurchaseJSON {
	out := make([]PurchaseJSON, 0, len(ps))
	for _, p := range ps {
		out = append(out, ToPurchaseJSON(p))
	}
	return out
}
