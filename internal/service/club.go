package service

import (
	"context"

	"github.com/acoudray/clubhouse/internal/errs"
	"github.com/acoudray/clubhouse/internal/model"
	"github.com/acoudray/clubhouse/internal/repository"
)

// UserService exposes member account reads and administrative mutation.
type UserService interface {
	Get(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	// Update persists email, privilege, and wallet. Privilege and wallet
	// changes are administrative; the purchase engine owns wallet debits.
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id int64) error
}

type UserServiceImpl struct {
	users repository.UserRepository
}

// NewUserService constructs UserService.
func NewUserService(users repository.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{users: users}
}

func (s *UserServiceImpl) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserServiceImpl) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *UserServiceImpl) Update(ctx context.Context, u *model.User) error {
	if u.Email == "" || u.Wallet < 0 || u.Privilege < model.PrivilegeMember || u.Privilege > model.PrivilegeSuperAdmin {
		return errs.ErrBadRequest
	}
	return s.users.Update(ctx, u)
}

func (s *UserServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}

// ChallengeService exposes CRUD over club challenges.
type ChallengeService interface {
	Create(ctx context.Context, c *model.Challenge) (int64, error)
	Get(ctx context.Context, id int64) (*model.Challenge, error)
	List(ctx context.Context) ([]model.Challenge, error)
	Update(ctx context.Context, c *model.Challenge) error
	Delete(ctx context.Context, id int64) error
}

type ChallengeServiceImpl struct {
	challenges repository.ChallengeRepository
}

// NewChallengeService constructs ChallengeService.
func NewChallengeService(challenges repository.ChallengeRepository) *ChallengeServiceImpl {
	return &ChallengeServiceImpl{challenges: challenges}
}

func (s *ChallengeServiceImpl) Create(ctx context.Context, c *model.Challenge) (int64, error) {
	if c.Title == "" || c.Reward < 0 {
		return 0, errs.ErrBadRequest
	}
	return s.challenges.Create(ctx, c)
}

func (s *ChallengeServiceImpl) Get(ctx context.Context, id int64) (*model.Challenge, error) {
	return s.challenges.GetByID(ctx, id)
}

func (s *ChallengeServiceImpl) List(ctx context.Context) ([]model.Challenge, error) {
	return s.challenges.List(ctx)
}

func (s *ChallengeServiceImpl) Update(ctx context.Context, c *model.Challenge) error {
	if c.Title == "" || c.Reward < 0 {
		return errs.ErrBadRequest
	}
	return s.challenges.Update(ctx, c)
}

func (s *ChallengeServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.challenges.Delete(ctx, id)
}

// AccomplishmentService exposes CRUD over challenge accomplishments.
type AccomplishmentService interface {
	Create(ctx context.Context, a *model.Accomplishment) (int64, error)
	Get(ctx context.Context, id int64) (*model.Accomplishment, error)
	List(ctx context.Context) ([]model.Accomplishment, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Accomplishment, error)
	Update(ctx context.Context, a *model.Accomplishment) error
	Delete(ctx context.Context, id int64) error
}

type AccomplishmentServiceImpl struct {
	accomplishments repository.AccomplishmentRepository
}

// NewAccomplishmentService constructs AccomplishmentService.
func NewAccomplishmentService(accomplishments repository.AccomplishmentRepository) *AccomplishmentServiceImpl {
	return &AccomplishmentServiceImpl{accomplishments: accomplishments}
}

func (s *AccomplishmentServiceImpl) Create(ctx context.Context, a *model.Accomplishment) (int64, error) {
	if a.UserID <= 0 || a.ChallengeID <= 0 {
		return 0, errs.ErrBadRequest
	}
	return s.accomplishments.Create(ctx, a)
}

func (s *AccomplishmentServiceImpl) Get(ctx context.Context, id int64) (*model.Accomplishment, error) {
	return s.accomplishments.GetByID(ctx, id)
}

func (s *AccomplishmentServiceImpl) List(ctx context.Context) ([]model.Accomplishment, error) {
	return s.accomplishments.List(ctx)
}

func (s *AccomplishmentServiceImpl) ListByUser(ctx context.Context, userID int64) ([]model.Accomplishment, error) {
	return s.accomplishments.ListByUser(ctx, userID)
}

func (s *AccomplishmentServiceImpl) Update(ctx context.Context, a *model.Accomplishment) error {
	if a.ChallengeID <= 0 {
		return errs.ErrBadRequest
	}
	return s.accomplishments.Update(ctx, a)
}

func (s *AccomplishmentServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.accomplishments.Delete(ctx, id)
}

// GoodiesService exposes CRUD over purchasable goodies.
type GoodiesService interface {
	Create(ctx context.Context, g *model.Goodies) (int64, error)
	Get(ctx context.Context, id int64) (*model.Goodies, error)
	List(ctx context.Context) ([]model.Goodies, error)
	Update(ctx context.Context, g *model.Goodies) error
	Delete(ctx context.Context, id int64) error
}

type GoodiesServiceImpl struct {
	goodies repository.GoodiesRepository
}

// NewGoodiesService constructs GoodiesService.
func NewGoodiesService(goodies repository.GoodiesRepository) *GoodiesServiceImpl {
	return &GoodiesServiceImpl{goodies: goodies}
}

func validGoodies(g *model.Goodies) bool {
	return g.Name != "" && g.Price >= 0 && g.Stock >= 0 && g.BuyLimit >= 1
}

func (s *GoodiesServiceImpl) Create(ctx context.Context, g *model.Goodies) (int64, error) {
	if !validGoodies(g) {
		return 0, errs.ErrBadRequest
	}
	return s.goodies.Create(ctx, g)
}

func (s *GoodiesServiceImpl) Get(ctx context.Context, id int64) (*model.Goodies, error) {
	return s.goodies.GetByID(ctx, id)
}

func (s *GoodiesServiceImpl) List(ctx context.Context) ([]model.Goodies, error) {
	return s.goodies.List(ctx)
}

func (s *GoodiesServiceImpl) Update(ctx context.Context, g *model.Goodies) error {
	if !validGoodies(g) {
		return errs.ErrBadRequest
	}
	return s.goodies.Update(ctx, g)
}

func (s *GoodiesServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.goodies.Delete(ctx, id)
}
