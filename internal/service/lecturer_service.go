package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lectorank/lectorank-backend/internal/config"
	"github.com/lectorank/lectorank-backend/internal/department"
	"github.com/lectorank/lectorank-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// SortBy selects the listing sort key.
type SortBy string

const (
	SortByName       SortBy = "name"
	SortByVotes      SortBy = "votes"
	SortByDepartment SortBy = "department"
	SortByEmail      SortBy = "email"
)

// SortOrder selects ascending or descending listing order.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ListLecturersParams are the listing filter/sort options.
type ListLecturersParams struct {
	IsActive *bool
	SortBy   SortBy
	Order    SortOrder
	Limit    int
	ViewerID *uuid.UUID
}

const standingsCacheTTL = 10 * time.Second

// LecturerService serves lecturer listings with weighted vote totals, and
// lecturer management for admins.
type LecturerService struct {
	lecturers LecturerDirectory
	ledger    VoteLedger
	rdb       *redis.Client
	log       zerolog.Logger
	now       func() time.Time
}

// NewLecturerService creates a new LecturerService. rdb may be nil (tests);
// the standings cache is then disabled.
func NewLecturerService(lecturers LecturerDirectory, ledger VoteLedger, rdb *redis.Client, log zerolog.Logger) *LecturerService {
	return &LecturerService{
		lecturers: lecturers,
		ledger:    ledger,
		rdb:       rdb,
		log:       log.With().Str("component", "lecturer_service").Logger(),
		now:       time.Now,
	}
}

// WeightedVotes returns a lecturer's vote total across all dates, weighted
// by the lecturer's *current* department. Correcting a department re-weights
// the entire history; that retroactivity is intended.
func (s *LecturerService) WeightedVotes(ctx context.Context, lecturerID uuid.UUID) (int, error) {
	lect, err := s.lecturers.GetLecturer(ctx, lecturerID)
	if err != nil {
		return 0, err
	}
	votes, err := s.ledger.ListByLecturer(ctx, lecturerID)
	if err != nil {
		return 0, fmt.Errorf("list votes: %w", err)
	}
	return len(votes) * department.Weight(department.Categorize(lect.Department)), nil
}

// ListLecturers returns lecturer standings filtered, sorted and capped per
// params. Sorting is post-processing over materialized pairs; vote ties
// break by name ascending.
func (s *LecturerService) ListLecturers(ctx context.Context, params ListLecturersParams) ([]model.LecturerStanding, error) {
	if cached, ok := s.cachedStandings(ctx, params); ok {
		return cached, nil
	}

	lecturers, err := s.lecturers.ListLecturers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lecturers: %w", err)
	}
	counts, err := s.ledger.CountByLecturer(ctx)
	if err != nil {
		return nil, fmt.Errorf("count votes: %w", err)
	}

	votedToday := map[uuid.UUID]bool{}
	if params.ViewerID != nil {
		votedToday, err = s.ledger.VotedLecturersOn(ctx, *params.ViewerID, model.Day(s.now()))
		if err != nil {
			return nil, fmt.Errorf("viewer votes: %w", err)
		}
	}

	standings := make([]model.LecturerStanding, 0, len(lecturers))
	for _, l := range lecturers {
		if params.IsActive != nil && l.IsActive != *params.IsActive {
			continue
		}
		weight := department.Weight(department.Categorize(l.Department))
		standings = append(standings, model.LecturerStanding{
			LecturerID:    l.ID,
			Name:          l.Name,
			Email:         l.Email,
			Department:    l.Department,
			IsActive:      l.IsActive,
			WeightedVotes: counts[l.ID] * weight,
			VotedToday:    votedToday[l.ID],
		})
	}

	sortStandings(standings, params.SortBy, params.Order)

	if params.Limit > 0 && len(standings) > params.Limit {
		standings = standings[:params.Limit]
	}

	s.cacheStandings(ctx, params, standings)
	return standings, nil
}

func sortStandings(standings []model.LecturerStanding, by SortBy, order SortOrder) {
	desc := order == OrderDesc

	less := func(a, b model.LecturerStanding) bool {
		switch by {
		case SortByVotes:
			if a.WeightedVotes != b.WeightedVotes {
				if desc {
					return a.WeightedVotes > b.WeightedVotes
				}
				return a.WeightedVotes < b.WeightedVotes
			}
			// Ties always break by name ascending, regardless of order.
			return lessString(a.Name, b.Name, false)
		case SortByDepartment:
			if !strings.EqualFold(a.Department, b.Department) {
				return lessString(a.Department, b.Department, desc)
			}
			return lessString(a.Name, b.Name, false)
		case SortByEmail:
			return lessString(a.Email, b.Email, desc)
		default:
			return lessString(a.Name, b.Name, desc)
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return less(standings[i], standings[j])
	})
}

func lessString(a, b string, desc bool) bool {
	if desc {
		return strings.ToLower(a) > strings.ToLower(b)
	}
	return strings.ToLower(a) < strings.ToLower(b)
}

// Standings for the default public query (no viewer, no filter) are cached
// briefly; casts and cancels invalidate the key. Viewer-specific listings
// are never cached.
func (s *LecturerService) cacheable(params ListLecturersParams) bool {
	return s.rdb != nil && params.ViewerID == nil && params.IsActive == nil &&
		params.Limit == 0 && params.SortBy == SortByVotes && params.Order == OrderDesc
}

func (s *LecturerService) cachedStandings(ctx context.Context, params ListLecturersParams) ([]model.LecturerStanding, bool) {
	if !s.cacheable(params) {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, config.CacheKey.LeaderboardKey()).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("Standings cache read failed")
		}
		return nil, false
	}
	var standings []model.LecturerStanding
	if err := json.Unmarshal([]byte(raw), &standings); err != nil {
		return nil, false
	}
	return standings, true
}

func (s *LecturerService) cacheStandings(ctx context.Context, params ListLecturersParams, standings []model.LecturerStanding) {
	if !s.cacheable(params) {
		return
	}
	raw, err := json.Marshal(standings)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, config.CacheKey.LeaderboardKey(), raw, standingsCacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Standings cache write failed")
	}
}

// ─── Admin management ──────────────────────────────────────────────────

// LecturerWriter is the write side of the roster, implemented by the
// lecturer repository.
type LecturerWriter interface {
	Create(ctx context.Context, l *model.Lecturer) error
	Update(ctx context.Context, l *model.Lecturer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LecturerAdminService manages the lecturer roster.
type LecturerAdminService struct {
	directory LecturerDirectory
	writer    LecturerWriter
}

// NewLecturerAdminService creates a new LecturerAdminService.
func NewLecturerAdminService(directory LecturerDirectory, writer LecturerWriter) *LecturerAdminService {
	return &LecturerAdminService{directory: directory, writer: writer}
}

func (s *LecturerAdminService) Get(ctx context.Context, id uuid.UUID) (*model.Lecturer, error) {
	return s.directory.GetLecturer(ctx, id)
}

func (s *LecturerAdminService) Create(ctx context.Context, l *model.Lecturer) error {
	return s.writer.Create(ctx, l)
}

func (s *LecturerAdminService) Update(ctx context.Context, l *model.Lecturer) error {
	return s.writer.Update(ctx, l)
}

func (s *LecturerAdminService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.writer.Delete(ctx, id)
}
