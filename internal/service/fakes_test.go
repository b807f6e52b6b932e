package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lectorank/lectorank-backend/internal/model"
)

// In-memory stores backing the engine tests. They uphold the same
// invariants as the Postgres repositories: the ledger enforces the
// (account, lecturer, date) uniqueness and reset only touches budgets.

type fakeAccountStore struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]model.Account
	saveErr  error
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: make(map[uuid.UUID]model.Account)}
}

func (s *fakeAccountStore) put(a model.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.ID] = a
}

func (s *fakeAccountStore) GetAccount(_ context.Context, id uuid.UUID) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	copied := a
	return &copied, nil
}

func (s *fakeAccountStore) SaveAccount(_ context.Context, a *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	if _, ok := s.accounts[a.ID]; !ok {
		return model.ErrAccountNotFound
	}
	s.accounts[a.ID] = *a
	return nil
}

func (s *fakeAccountStore) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Email == email {
			copied := a
			return &copied, nil
		}
	}
	return nil, model.ErrAccountNotFound
}

// Create mirrors the accounts table constraints: the caller supplies the
// primary key and the email must be unique.
func (s *fakeAccountStore) Create(_ context.Context, a *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == uuid.Nil {
		return fmt.Errorf("accounts.id must not be null")
	}
	for _, existing := range s.accounts {
		if existing.Email == a.Email {
			return fmt.Errorf("accounts.email already taken: %s", a.Email)
		}
	}
	s.accounts[a.ID] = *a
	return nil
}

func (s *fakeAccountStore) ListAccounts(_ context.Context) ([]model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	return out, nil
}

func (s *fakeAccountStore) ResetAllQuotas(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var updated int64
	for id, a := range s.accounts {
		if a.VotesRemain != model.DailyVoteQuota {
			a.VotesRemain = model.DailyVoteQuota
			s.accounts[id] = a
			updated++
		}
	}
	return updated, nil
}

type fakeLecturerDirectory struct {
	mu        sync.Mutex
	lecturers map[uuid.UUID]model.Lecturer
}

func newFakeLecturerDirectory() *fakeLecturerDirectory {
	return &fakeLecturerDirectory{lecturers: make(map[uuid.UUID]model.Lecturer)}
}

func (d *fakeLecturerDirectory) put(l model.Lecturer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lecturers[l.ID] = l
}

func (d *fakeLecturerDirectory) GetLecturer(_ context.Context, id uuid.UUID) (*model.Lecturer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.lecturers[id]
	if !ok {
		return nil, model.ErrLecturerNotFound
	}
	copied := l
	return &copied, nil
}

func (d *fakeLecturerDirectory) ListLecturers(_ context.Context) ([]model.Lecturer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]model.Lecturer, 0, len(d.lecturers))
	for _, l := range d.lecturers {
		out = append(out, l)
	}
	return out, nil
}

type fakeLedger struct {
	mu        sync.Mutex
	votes     map[string]model.Vote
	directory *fakeLecturerDirectory
}

func newFakeLedger(directory *fakeLecturerDirectory) *fakeLedger {
	return &fakeLedger{votes: make(map[string]model.Vote), directory: directory}
}

func voteKey(accountID, lecturerID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("%s|%s|%s", accountID, lecturerID, day.Format("2006-01-02"))
}

func (l *fakeLedger) Exists(_ context.Context, accountID, lecturerID uuid.UUID, day time.Time) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.votes[voteKey(accountID, lecturerID, day)]
	return ok, nil
}

func (l *fakeLedger) Insert(_ context.Context, v *model.Vote) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := voteKey(v.AccountID, v.LecturerID, v.VotedDate)
	if _, ok := l.votes[key]; ok {
		return model.ErrAlreadyVoted
	}
	l.votes[key] = *v
	return nil
}

func (l *fakeLedger) Delete(_ context.Context, accountID, lecturerID uuid.UUID, day time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := voteKey(accountID, lecturerID, day)
	if _, ok := l.votes[key]; !ok {
		return model.ErrVoteNotFound
	}
	delete(l.votes, key)
	return nil
}

func (l *fakeLedger) ListByLecturer(_ context.Context, lecturerID uuid.UUID) ([]model.Vote, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.Vote
	for _, v := range l.votes {
		if v.LecturerID == lecturerID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (l *fakeLedger) ListByAccount(_ context.Context, accountID uuid.UUID) ([]model.Vote, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.Vote
	for _, v := range l.votes {
		if v.AccountID == accountID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (l *fakeLedger) CountOnDateByDepartment(ctx context.Context, accountID uuid.UUID, day time.Time) (map[string]int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	counts := make(map[string]int)
	for _, v := range l.votes {
		if v.AccountID != accountID || !v.VotedDate.Equal(day) {
			continue
		}
		lect, err := l.directory.GetLecturer(ctx, v.LecturerID)
		if err != nil {
			continue
		}
		counts[lect.Department]++
	}
	return counts, nil
}

func (l *fakeLedger) CountOnDate(_ context.Context, day time.Time) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, v := range l.votes {
		if v.VotedDate.Equal(day) {
			n++
		}
	}
	return n, nil
}

func (l *fakeLedger) CountByLecturer(_ context.Context) (map[uuid.UUID]int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	counts := make(map[uuid.UUID]int)
	for _, v := range l.votes {
		counts[v.LecturerID]++
	}
	return counts, nil
}

func (l *fakeLedger) VotedLecturersOn(_ context.Context, accountID uuid.UUID, day time.Time) (map[uuid.UUID]bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	voted := make(map[uuid.UUID]bool)
	for _, v := range l.votes {
		if v.AccountID == accountID && v.VotedDate.Equal(day) {
			voted[v.LecturerID] = true
		}
	}
	return voted, nil
}

func (l *fakeLedger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.votes)
}

type fakeFeedbackStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]model.Feedback
}

func newFakeFeedbackStore() *fakeFeedbackStore {
	return &fakeFeedbackStore{entries: make(map[uuid.UUID]model.Feedback)}
}

func (s *fakeFeedbackStore) Insert(_ context.Context, f *model.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[f.AccountID]; ok {
		return model.ErrFeedbackExists
	}
	f.CreatedAt = time.Now()
	s.entries[f.AccountID] = *f
	return nil
}

func (s *fakeFeedbackStore) Summary(_ context.Context) (*model.FeedbackSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := &model.FeedbackSummary{TotalEntries: len(s.entries)}
	if len(s.entries) == 0 {
		return sum, nil
	}
	total := 0
	for _, f := range s.entries {
		total += f.Rating
	}
	sum.AverageRating = float64(total) / float64(len(s.entries))
	return sum, nil
}

func (s *fakeFeedbackStore) List(_ context.Context, limit int) ([]model.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Feedback, 0, len(s.entries))
	for _, f := range s.entries {
		out = append(out, f)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
