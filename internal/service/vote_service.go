package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lectorank/lectorank-backend/internal/config"
	"github.com/lectorank/lectorank-backend/internal/department"
	"github.com/lectorank/lectorank-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Per-semester daily limits for case B (semesters 1-6).
const (
	maxBasicVotesPerDay       = 1
	maxSpecializedVotesPerDay = 2
)

// VoteService is the single authority for casting and cancelling votes.
// Every Cast/Cancel runs under a per-account lock so the read-check-write
// sequence (quota check, duplicate check, ledger insert, counter update)
// is serialized per account; the ledger's uniqueness guarantee is the
// backstop that turns a cross-instance race into a detectable conflict.
type VoteService struct {
	accounts  AccountStore
	lecturers LecturerDirectory
	ledger    VoteLedger
	rdb       *redis.Client
	log       zerolog.Logger
	now       func() time.Time

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewVoteService creates a new VoteService. rdb may be nil (tests); cache
// invalidation and leaderboard events are then skipped.
func NewVoteService(accounts AccountStore, lecturers LecturerDirectory, ledger VoteLedger, rdb *redis.Client, log zerolog.Logger) *VoteService {
	return &VoteService{
		accounts:  accounts,
		lecturers: lecturers,
		ledger:    ledger,
		rdb:       rdb,
		log:       log.With().Str("component", "vote_service").Logger(),
		now:       time.Now,
		locks:     make(map[uuid.UUID]*sync.Mutex),
	}
}

// accountLock returns the mutex serializing vote operations for one account.
// Locks are never evicted; the map is bounded by the number of accounts
// that voted since startup.
func (s *VoteService) accountLock(accountID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[accountID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[accountID] = l
	}
	return l
}

// Cast records a vote by accountID for lecturerID on today's date and
// decrements the account's remaining budget. It returns the remaining
// budget after the vote. The precondition order is part of the contract:
// account existence, ban, budget, lecturer, semester rule, duplicate.
func (s *VoteService) Cast(ctx context.Context, accountID, lecturerID uuid.UUID) (int, error) {
	lock := s.accountLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	today := model.Day(s.now())

	acc, err := s.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return 0, err
	}
	if acc.IsBanned {
		return 0, model.ErrAccountBanned
	}
	if acc.VotesRemain <= 0 {
		return 0, model.ErrQuotaExhausted
	}

	lect, err := s.lecturers.GetLecturer(ctx, lecturerID)
	if err != nil {
		return 0, err
	}
	if !lect.IsActive {
		return 0, model.ErrLecturerNotFound
	}

	if err := s.checkSemesterRule(ctx, acc, lect, today); err != nil {
		return 0, err
	}

	exists, err := s.ledger.Exists(ctx, accountID, lecturerID, today)
	if err != nil {
		return 0, fmt.Errorf("check duplicate: %w", err)
	}
	if exists {
		return 0, model.ErrAlreadyVoted
	}

	// Last exit before the writes. A cancelled request must leave no trace.
	if ctx.Err() != nil {
		return 0, model.ErrAborted
	}

	vote := &model.Vote{AccountID: accountID, LecturerID: lecturerID, VotedDate: today}
	if err := s.ledger.Insert(ctx, vote); err != nil {
		return 0, err
	}

	acc.VotesRemain--
	if err := s.accounts.SaveAccount(ctx, acc); err != nil {
		// Undo the ledger row so the failed cast has no partial effect.
		if delErr := s.ledger.Delete(context.WithoutCancel(ctx), accountID, lecturerID, today); delErr != nil {
			s.log.Error().Err(delErr).
				Str("account_id", accountID.String()).
				Str("lecturer_id", lecturerID.String()).
				Msg("Compensating vote delete failed; ledger and budget diverge until daily reset")
		}
		return 0, fmt.Errorf("save account: %w", err)
	}

	s.publishLeaderboardEvent(ctx, lecturerID)
	return acc.VotesRemain, nil
}

// checkSemesterRule enforces the per-semester category restrictions using
// the account's votes already cast today.
func (s *VoteService) checkSemesterRule(ctx context.Context, acc *model.Account, lect *model.Lecturer, today time.Time) error {
	if acc.Semester == nil {
		// Accounts predating semester tracking vote without category limits.
		return nil
	}
	sem := *acc.Semester
	if sem < 0 || sem > 9 {
		return model.ErrInvalidSemester
	}

	cat := department.Categorize(lect.Department)

	switch {
	case sem == 0:
		if cat != department.Basic {
			return &model.RuleViolationError{
				Message: "semester 0 accounts may only vote for basic subject lecturers",
			}
		}
	case sem <= 6:
		if cat == department.Unrecognized {
			return &model.RuleViolationError{
				Message: "lecturer's department is not assigned to a subject category",
			}
		}
		basic, specialized, err := s.categoryCountsToday(ctx, acc.ID, today)
		if err != nil {
			return fmt.Errorf("count today's votes: %w", err)
		}
		if cat == department.Basic && basic >= maxBasicVotesPerDay {
			return &model.RuleViolationError{
				Message: "daily limit of 1 basic subject vote reached",
			}
		}
		if cat == department.Specialized && specialized >= maxSpecializedVotesPerDay {
			return &model.RuleViolationError{
				Message: "daily limit of 2 specialized subject votes reached",
			}
		}
	default: // 7..9
		if cat != department.Specialized {
			return &model.RuleViolationError{
				Message: "semester 7-9 accounts may only vote for specialized subject lecturers",
			}
		}
	}
	return nil
}

// categoryCountsToday folds the account's votes cast today into basic and
// specialized buckets. Unrecognized departments count as specialized,
// mirroring how they are weighted.
func (s *VoteService) categoryCountsToday(ctx context.Context, accountID uuid.UUID, today time.Time) (basic, specialized int, err error) {
	byDept, err := s.ledger.CountOnDateByDepartment(ctx, accountID, today)
	if err != nil {
		return 0, 0, err
	}
	for dept, n := range byDept {
		if department.Categorize(dept) == department.Basic {
			basic += n
		} else {
			specialized += n
		}
	}
	return basic, specialized, nil
}

// Cancel removes today's vote by accountID for lecturerID and restores the
// budget slot it consumed, capped at the daily quota. The semester rule is
// deliberately not re-checked: cancellation always reverses exactly what
// cast did. Returns the remaining budget after the cancel.
func (s *VoteService) Cancel(ctx context.Context, accountID, lecturerID uuid.UUID) (int, error) {
	lock := s.accountLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	today := model.Day(s.now())

	acc, err := s.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return 0, err
	}

	exists, err := s.ledger.Exists(ctx, accountID, lecturerID, today)
	if err != nil {
		return 0, fmt.Errorf("check vote: %w", err)
	}
	if !exists {
		return 0, model.ErrVoteNotFound
	}

	if ctx.Err() != nil {
		return 0, model.ErrAborted
	}

	if err := s.ledger.Delete(ctx, accountID, lecturerID, today); err != nil {
		return 0, err
	}

	if acc.VotesRemain < model.DailyVoteQuota {
		acc.VotesRemain++
	}
	if err := s.accounts.SaveAccount(ctx, acc); err != nil {
		// Re-insert the row so the failed cancel has no partial effect.
		vote := &model.Vote{AccountID: accountID, LecturerID: lecturerID, VotedDate: today}
		if insErr := s.ledger.Insert(context.WithoutCancel(ctx), vote); insErr != nil {
			s.log.Error().Err(insErr).
				Str("account_id", accountID.String()).
				Str("lecturer_id", lecturerID.String()).
				Msg("Compensating vote re-insert failed; ledger and budget diverge until daily reset")
		}
		return 0, fmt.Errorf("save account: %w", err)
	}

	s.publishLeaderboardEvent(ctx, lecturerID)
	return acc.VotesRemain, nil
}

// HasVotedToday reports whether the account already voted for the lecturer
// today.
func (s *VoteService) HasVotedToday(ctx context.Context, accountID, lecturerID uuid.UUID) (bool, error) {
	return s.ledger.Exists(ctx, accountID, lecturerID, model.Day(s.now()))
}

// History returns the account's full voting history, newest first.
func (s *VoteService) History(ctx context.Context, accountID uuid.UUID) ([]model.Vote, error) {
	return s.ledger.ListByAccount(ctx, accountID)
}

// Reset restores the daily vote budget of every account. The ledger is
// never touched; historical votes survive the reset. Safe to run more than
// once per day — the second run updates nothing.
func (s *VoteService) Reset(ctx context.Context) (int64, error) {
	updated, err := s.accounts.ResetAllQuotas(ctx)
	if err != nil {
		return 0, fmt.Errorf("reset quotas: %w", err)
	}
	s.log.Info().Int64("accounts_updated", updated).Msg("Daily vote quotas reset")
	return updated, nil
}

// publishLeaderboardEvent invalidates the cached standings and signals the
// live leaderboard stream. Best effort; a vote is never rolled back over a
// cache hiccup.
func (s *VoteService) publishLeaderboardEvent(ctx context.Context, lecturerID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	if err := s.rdb.Del(ctx, config.CacheKey.LeaderboardKey()).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Leaderboard cache invalidation failed")
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.LeaderboardChannel(), lecturerID.String()).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Leaderboard event publish failed")
	}
}
