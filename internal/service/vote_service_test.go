package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lectorank/lectorank-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type voteServiceFixture struct {
	accounts  *fakeAccountStore
	lecturers *fakeLecturerDirectory
	ledger    *fakeLedger
	svc       *VoteService
	today     time.Time
}

func newVoteServiceFixture(t *testing.T) *voteServiceFixture {
	t.Helper()
	accounts := newFakeAccountStore()
	lecturers := newFakeLecturerDirectory()
	ledger := newFakeLedger(lecturers)

	svc := NewVoteService(accounts, lecturers, ledger, nil, zerolog.Nop())
	now := time.Date(2025, 4, 14, 10, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	return &voteServiceFixture{
		accounts:  accounts,
		lecturers: lecturers,
		ledger:    ledger,
		svc:       svc,
		today:     model.Day(now),
	}
}

func (f *voteServiceFixture) addAccount(semester *int, votesRemain int) uuid.UUID {
	id := uuid.New()
	f.accounts.put(model.Account{
		ID:          id,
		Email:       id.String() + "@example.com",
		Name:        "Account " + id.String()[:8],
		Semester:    semester,
		VotesRemain: votesRemain,
	})
	return id
}

func (f *voteServiceFixture) addLecturer(dept string, active bool) uuid.UUID {
	id := uuid.New()
	f.lecturers.put(model.Lecturer{
		ID:         id,
		Name:       "Lecturer " + id.String()[:8],
		Department: dept,
		IsActive:   active,
	})
	return id
}

func (f *voteServiceFixture) votesRemain(t *testing.T, accountID uuid.UUID) int {
	t.Helper()
	acc, err := f.accounts.GetAccount(context.Background(), accountID)
	require.NoError(t, err)
	return acc.VotesRemain
}

func semester(n int) *int { return &n }

func TestCastLegacyAccountUnrestricted(t *testing.T) {
	f := newVoteServiceFixture(t)
	ctx := context.Background()

	acc := f.addAccount(nil, 3)
	l1 := f.addLecturer("Astrology", true) // unrecognized, fine for legacy accounts
	l2 := f.addLecturer("Mathematics", true)
	l3 := f.addLecturer("Computer Science", true)
	l4 := f.addLecturer("Physics", true)

	remain, err := f.svc.Cast(ctx, acc, l1)
	require.NoError(t, err)
	assert.Equal(t, 2, remain)

	_, err = f.svc.Cast(ctx, acc, l2)
	require.NoError(t, err)
	_, err = f.svc.Cast(ctx, acc, l3)
	require.NoError(t, err)

	// Budget exhausted: a fourth distinct lecturer is rejected.
	_, err = f.svc.Cast(ctx, acc, l4)
	assert.ErrorIs(t, err, model.ErrQuotaExhausted)
}

func TestCastDuplicateSameDay(t *testing.T) {
	f := newVoteServiceFixture(t)
	ctx := context.Background()

	acc := f.addAccount(nil, 3)
	lect := f.addLecturer("Mathematics", true)

	_, err := f.svc.Cast(ctx, acc, lect)
	require.NoError(t, err)

	_, err = f.svc.Cast(ctx, acc, lect)
	assert.ErrorIs(t, err, model.ErrAlreadyVoted)
	assert.Equal(t, 2, f.votesRemain(t, acc))
}

func TestCastPreconditionFailures(t *testing.T) {
	f := newVoteServiceFixture(t)
	ctx := context.Background()
	lect := f.addLecturer("Mathematics", true)

	t.Run("unknown account", func(t *testing.T) {
		_, err := f.svc.Cast(ctx, uuid.New(), lect)
		assert.ErrorIs(t, err, model.ErrAccountNotFound)
	})

	t.Run("banned account", func(t *testing.T) {
		id := uuid.New()
		f.accounts.put(model.Account{ID: id, IsBanned: true, VotesRemain: 3})
		_, err := f.svc.Cast(ctx, id, lect)
		assert.ErrorIs(t, err, model.ErrAccountBanned)
	})

	t.Run("exhausted budget", func(t *testing.T) {
		acc := f.addAccount(nil, 0)
		_, err := f.svc.Cast(ctx, acc, lect)
		assert.ErrorIs(t, err, model.ErrQuotaExhausted)
	})

	t.Run("unknown lecturer", func(t *testing.T) {
		acc := f.addAccount(nil, 3)
		_, err := f.svc.Cast(ctx, acc, uuid.New())
		assert.ErrorIs(t, err, model.ErrLecturerNotFound)
	})

	t.Run("inactive lecturer", func(t *testing.T) {
		acc := f.addAccount(nil, 3)
		inactive := f.addLecturer("Mathematics", false)
		_, err := f.svc.Cast(ctx, acc, inactive)
		assert.ErrorIs(t, err, model.ErrLecturerNotFound)
	})
}

func TestCastSemesterZeroBasicOnly(t *testing.T) {
	f := newVoteServiceFixture(t)
	ctx := context.Background()

	acc := f.addAccount(semester(0), 3)
	basic := f.addLecturer("Mathematics", true)
	spec := f.addLecturer("Computer Science", true)

	var ruleErr *model.RuleViolationError
	_, err := f.svc.Cast(ctx, acc, spec)
	require.ErrorAs(t, err, &ruleErr)
	assert.Contains(t, ruleErr.Message, "basic")

	_, err = f.svc.Cast(ctx, acc, basic)
	assert.NoError(t, err)
}

func TestCastMidSemesterCategoryLimits(t *testing.T) {
	f := newVoteServiceFixture(t)
	ctx := context.Background()

	acc := f.addAccount(semester(3), 3)
	basic1 := f.addLecturer("Mathematics", true)
	basic2 := f.addLecturer("Physics", true)
	spec1 := f.addLecturer("Computer Science", true)
	spec2 := f.addLecturer("Software Engineering", true)

	// One basic vote per day.
	_, err := f.svc.Cast(ctx, acc, basic1)
	require.NoError(t, err)

	var ruleErr *model.RuleViolationError
	_, err = f.svc.Cast(ctx, acc, basic2)
	require.ErrorAs(t, err, &ruleErr)
	assert.Contains(t, ruleErr.Message, "basic")

	// Two specialized votes per day.
	_, err = f.svc.Cast(ctx, acc, spec1)
	require.NoError(t, err)
	_, err = f.svc.Cast(ctx, acc, spec2)
	require.NoError(t, err)

	spec3 := f.addLecturer("Information Security", true)
	_, err = f.svc.Cast(ctx, acc, spec3)
	// The third specialized cast fails on budget before the category rule:
	// the global quota of 3 is already spent.
	assert.ErrorIs(t, err, model.ErrQuotaExhausted)
}

func TestCastMidSemesterThirdSpecializedRejected(t *testing.T) {
	f := newVoteServiceFixture(t)
	ctx := context.Background()

	acc := f.addAccount(semester(5), 3)
	spec1 := f.addLecturer("Computer Science", true)
	spec2 := f.addLecturer("Software Engineering", true)
	spec3 := f.addLecturer("Information Security", true)

	_, err := f.svc.Cast(ctx, acc, spec1)
	require.NoError(t, err)
	_, err = f.svc.Cast(ctx, acc, spec2)
	require.NoError(t, err)

	var ruleErr *model.RuleViolationError
	_, err = f.svc.Cast(ctx, acc, spec3)
	require.ErrorAs(t, err, &ruleErr)
	assert.Contains(t, ruleErr.Message, "specialized")
	assert.Equal(t, 1, f.votesRemain(t, acc))
}

func TestCastMidSemesterUnrecognizedDepartment(t *testing.T) {
	f := newVoteServiceFixture(t)
	ctx := context.Background()

	acc := f.addAccount(semester(2), 3)
	unknown := f.addLecturer("Astrology", true)

	var ruleErr *model.RuleViolationError
	_, err := f.svc.Cast(ctx, acc, unknown)
	require.ErrorAs(t, err, &ruleErr)
}

func TestCastSeniorSemesterScenario(t *testing.T) {
	// Semester 8, full budget: specialized succeeds, basic is rejected,
	// duplicate conflicts, cancel restores everything.
	f := newVoteServiceFixture(t)
	ctx := context.Background()

	acc := f.addAccount(semester(8), 3)
	l1 := f.addLecturer("Computer Science", true)
	l2 := f.addLecturer("Mathematics", true)

	remain, err := f.svc.Cast(ctx, acc, l1)
	require.NoError(t, err)
	assert.Equal(t, 2, remain)

	var ruleErr *model.RuleViolationError
	_, err = f.svc.Cast(ctx, acc, l2)
	require.ErrorAs(t, err, &ruleErr)

	_, err = f.svc.Cast(ctx, acc, l1)
	assert.ErrorIs(t, err, model.ErrAlreadyVoted)

	remain, err = f.svc.Cancel(ctx, acc, l1)
	require.NoError(t, err)
	assert.Equal(t, 3, remain)
	assert.Equal(t, 0, f.ledger.count())
}

func TestCastSemesterOutsideDomain(t *testing.T) {
	f := newVoteServiceFixture(t)
	ctx := context.Background()
	lect := f.addLecturer("Computer Science", true)

	for _, sem := range []int{-1, 10, 42} {
		acc := f.addAccount(semester(sem), 3)
		_, err := f.svc.Cast(ctx, acc, lect)
		assert.ErrorIs(t, err, model.ErrInvalidSemester, "semester %d", sem)
	}
}

func TestCancelWithoutVote(t *testing.T) {
	f := newVoteServiceFixture(t)
	ctx := context.Background()

	acc := f.addAccount(nil, 3)
	lect := f.addLecturer("Mathematics", true)

	_, err := f.svc.Cancel(ctx, acc, lect)
	assert.ErrorIs(t, err, model.ErrVoteNotFound)
}

func TestCastThenCancelRestoresBudget(t *testing.T) {
	f := newVoteServiceFixture(t)
	ctx := context.Background()

	acc := f.addAccount(semester(4), 2)
	lect := f.addLecturer("Computer Science", true)

	_, err := f.svc.Cast(ctx, acc, lect)
	require.NoError(t, err)
	assert.Equal(t, 1, f.votesRemain(t, acc))

	remain, err := f.svc.Cancel(ctx, acc, lect)
	require.NoError(t, err)
	assert.Equal(t, 2, remain)
	assert.Equal(t, 0, f.ledger.count())
}

func TestCancelCapsBudgetAtQuota(t *testing.T) {
	f := newVoteServiceFixture(t)
	ctx := context.Background()

	acc := f.addAccount(nil, 3)
	lect := f.addLecturer("Mathematics", true)

	_, err := f.svc.Cast(ctx, acc, lect)
	require.NoError(t, err)

	// The daily reset restores the budget while the vote row still exists.
	_, err = f.svc.Reset(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, f.votesRemain(t, acc))

	remain, err := f.svc.Cancel(ctx, acc, lect)
	require.NoError(t, err)
	assert.Equal(t, 3, remain, "budget never exceeds the daily quota")
}

func TestResetIdempotent(t *testing.T) {
	f := newVoteServiceFixture(t)
	ctx := context.Background()

	spent := f.addAccount(nil, 1)
	full := f.addAccount(nil, 3)

	updated, err := f.svc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)
	assert.Equal(t, 3, f.votesRemain(t, spent))
	assert.Equal(t, 3, f.votesRemain(t, full))

	updated, err = f.svc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)
}

func TestResetKeepsLedger(t *testing.T) {
	f := newVoteServiceFixture(t)
	ctx := context.Background()

	acc := f.addAccount(nil, 3)
	lect := f.addLecturer("Mathematics", true)
	_, err := f.svc.Cast(ctx, acc, lect)
	require.NoError(t, err)

	_, err = f.svc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.ledger.count(), "reset never deletes historical votes")
}

func TestCastAbortedContext(t *testing.T) {
	f := newVoteServiceFixture(t)

	acc := f.addAccount(nil, 3)
	lect := f.addLecturer("Mathematics", true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.Cast(ctx, acc, lect)
	assert.ErrorIs(t, err, model.ErrAborted)
	assert.Equal(t, 3, f.votesRemain(t, acc))
	assert.Equal(t, 0, f.ledger.count())
}

func TestCastSaveFailureLeavesNoLedgerRow(t *testing.T) {
	f := newVoteServiceFixture(t)
	ctx := context.Background()

	acc := f.addAccount(nil, 3)
	lect := f.addLecturer("Mathematics", true)

	f.accounts.saveErr = assert.AnError
	_, err := f.svc.Cast(ctx, acc, lect)
	require.Error(t, err)
	assert.Equal(t, 0, f.ledger.count(), "failed cast must not leave a vote behind")
	assert.Equal(t, 3, f.votesRemain(t, acc))
}

func TestConcurrentCastSameTriple(t *testing.T) {
	f := newVoteServiceFixture(t)
	ctx := context.Background()

	acc := f.addAccount(nil, 3)
	lect := f.addLecturer("Mathematics", true)

	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.svc.Cast(ctx, acc, lect)
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case err == model.ErrAlreadyVoted:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
	assert.Equal(t, 2, f.votesRemain(t, acc))
	assert.Equal(t, 1, f.ledger.count())
}

func TestConcurrentCastLastSlot(t *testing.T) {
	f := newVoteServiceFixture(t)
	ctx := context.Background()

	acc := f.addAccount(nil, 1)
	l1 := f.addLecturer("Mathematics", true)
	l2 := f.addLecturer("Physics", true)

	results := make([]error, 2)
	var wg sync.WaitGroup
	for i, lect := range []uuid.UUID{l1, l2} {
		wg.Add(1)
		go func(i int, lect uuid.UUID) {
			defer wg.Done()
			_, results[i] = f.svc.Cast(ctx, acc, lect)
		}(i, lect)
	}
	wg.Wait()

	successes, exhausted := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case err == model.ErrQuotaExhausted:
			exhausted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, exhausted)
	assert.Equal(t, 0, f.votesRemain(t, acc))
}

func TestVotesRemainStaysInBounds(t *testing.T) {
	f := newVoteServiceFixture(t)
	ctx := context.Background()

	acc := f.addAccount(nil, 3)
	lecturers := []uuid.UUID{
		f.addLecturer("Mathematics", true),
		f.addLecturer("Physics", true),
		f.addLecturer("Computer Science", true),
	}

	check := func() {
		remain := f.votesRemain(t, acc)
		require.GreaterOrEqual(t, remain, 0)
		require.LessOrEqual(t, remain, model.DailyVoteQuota)
	}

	for _, l := range lecturers {
		_, _ = f.svc.Cast(ctx, acc, l)
		check()
	}
	for _, l := range lecturers {
		_, _ = f.svc.Cancel(ctx, acc, l)
		check()
	}
	_, _ = f.svc.Reset(ctx)
	check()
}

func TestHasVotedToday(t *testing.T) {
	f := newVoteServiceFixture(t)
	ctx := context.Background()

	acc := f.addAccount(nil, 3)
	lect := f.addLecturer("Mathematics", true)

	voted, err := f.svc.HasVotedToday(ctx, acc, lect)
	require.NoError(t, err)
	assert.False(t, voted)

	_, err = f.svc.Cast(ctx, acc, lect)
	require.NoError(t, err)

	voted, err = f.svc.HasVotedToday(ctx, acc, lect)
	require.NoError(t, err)
	assert.True(t, voted)
}
