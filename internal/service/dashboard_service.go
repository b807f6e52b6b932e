package service

import (
	"context"
	"time"

	"github.com/lectorank/lectorank-backend/internal/model"
)

// DashboardData consolidates all metrics for the admin dashboard.
type DashboardData struct {
	TotalAccounts   int                      `json:"total_accounts"`
	TotalLecturers  int                      `json:"total_lecturers"`
	ActiveLecturers int                      `json:"active_lecturers"`
	VotesToday      int                      `json:"votes_today"`
	TopLecturers    []model.LecturerStanding `json:"top_lecturers"`
	Feedback        model.FeedbackSummary    `json:"feedback"`
}

// DashboardService handles admin dashboard business logic.
type DashboardService struct {
	accounts        AccountStore
	lecturers       LecturerDirectory
	ledger          VoteLedger
	feedback        FeedbackStore
	lecturerService *LecturerService
	now             func() time.Time
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(accounts AccountStore, lecturers LecturerDirectory, ledger VoteLedger, feedback FeedbackStore, lecturerService *LecturerService) *DashboardService {
	return &DashboardService{
		accounts:        accounts,
		lecturers:       lecturers,
		ledger:          ledger,
		feedback:        feedback,
		lecturerService: lecturerService,
		now:             time.Now,
	}
}

// GetDashboardData fetches all dashboard metrics.
func (s *DashboardService) GetDashboardData(ctx context.Context) (*DashboardData, error) {
	accounts, err := s.accounts.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	lecturers, err := s.lecturers.ListLecturers(ctx)
	if err != nil {
		return nil, err
	}
	active := 0
	for _, l := range lecturers {
		if l.IsActive {
			active++
		}
	}

	votesToday, err := s.ledger.CountOnDate(ctx, model.Day(s.now()))
	if err != nil {
		return nil, err
	}

	top, err := s.lecturerService.ListLecturers(ctx, ListLecturersParams{
		SortBy: SortByVotes,
		Order:  OrderDesc,
		Limit:  5,
	})
	if err != nil {
		return nil, err
	}

	summary, err := s.feedback.Summary(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		TotalAccounts:   len(accounts),
		TotalLecturers:  len(lecturers),
		ActiveLecturers: active,
		VotesToday:      votesToday,
		TopLecturers:    top,
		Feedback:        *summary,
	}, nil
}
