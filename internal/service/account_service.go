package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lectorank/lectorank-backend/internal/model"
	"github.com/rs/zerolog"
)

// AccountProfile is an account's own view: identity plus today's budget
// and votes.
type AccountProfile struct {
	Account    model.Account `json:"account"`
	VotedToday []uuid.UUID   `json:"voted_today"`
}

// AccountService handles account profile and administration logic.
type AccountService struct {
	accounts AccountStore
	registry AccountRegistry
	ledger   VoteLedger
	log      zerolog.Logger
	now      func() time.Time
}

// AccountBanner is the ban/unban write, implemented by the account
// repository.
type AccountBanner interface {
	SetBanned(ctx context.Context, id uuid.UUID, banned bool) error
}

// AccountRegistry covers lookup-by-email and creation, implemented by the
// account repository. Split from AccountStore because the voting engine
// never needs either.
type AccountRegistry interface {
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	Create(ctx context.Context, a *model.Account) error
}

// NewAccountService creates a new AccountService.
func NewAccountService(accounts AccountStore, registry AccountRegistry, ledger VoteLedger, log zerolog.Logger) *AccountService {
	return &AccountService{
		accounts: accounts,
		registry: registry,
		ledger:   ledger,
		log:      log.With().Str("component", "account_service").Logger(),
		now:      time.Now,
	}
}

// Profile returns the account together with the lecturers it voted for
// today, so a client can disable already-used vote actions.
func (s *AccountService) Profile(ctx context.Context, accountID uuid.UUID) (*AccountProfile, error) {
	acc, err := s.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	voted, err := s.ledger.VotedLecturersOn(ctx, accountID, model.Day(s.now()))
	if err != nil {
		return nil, fmt.Errorf("today's votes: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(voted))
	for id := range voted {
		ids = append(ids, id)
	}
	return &AccountProfile{Account: *acc, VotedToday: ids}, nil
}

// List returns every account, for the admin view.
func (s *AccountService) List(ctx context.Context) ([]model.Account, error) {
	return s.accounts.ListAccounts(ctx)
}

// GetByEmail retrieves an account by email, for login.
func (s *AccountService) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	return s.registry.GetByEmail(ctx, email)
}

// Register creates a new account with a full daily budget. passwordHash
// must already be a bcrypt hash.
func (s *AccountService) Register(ctx context.Context, req *model.CreateAccountRequest, passwordHash string) (*model.Account, error) {
	acc := &model.Account{
		ID:           uuid.New(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: passwordHash,
		Semester:     req.Semester,
		VotesRemain:  model.DailyVoteQuota,
	}
	if err := s.registry.Create(ctx, acc); err != nil {
		return nil, err
	}
	s.log.Info().Str("account_id", acc.ID.String()).Msg("Account registered")
	return acc, nil
}

// AccountAdminService handles account moderation.
type AccountAdminService struct {
	accounts AccountStore
	banner   AccountBanner
	log      zerolog.Logger
}

// NewAccountAdminService creates a new AccountAdminService.
func NewAccountAdminService(accounts AccountStore, banner AccountBanner, log zerolog.Logger) *AccountAdminService {
	return &AccountAdminService{
		accounts: accounts,
		banner:   banner,
		log:      log.With().Str("component", "account_admin_service").Logger(),
	}
}

// SetBanned bans or unbans an account. Banned accounts keep their history
// and remaining budget but cannot add ledger rows.
func (s *AccountAdminService) SetBanned(ctx context.Context, accountID uuid.UUID, banned bool) error {
	if err := s.banner.SetBanned(ctx, accountID, banned); err != nil {
		return err
	}
	s.log.Info().
		Str("account_id", accountID.String()).
		Bool("banned", banned).
		Msg("Account ban state changed")
	return nil
}
