package dashboard

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"time"

	"go-hrms/internal/attendance"
	"go-hrms/internal/leave"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const statsCacheKey = "dashboard:stats"
const statsCacheTTL = 60 * time.Second

type StatsResponse struct {
	TotalEmployees    int64   `json:"total_employees"`
	ActiveDepartments int64   `json:"active_departments"`
	TodayAttendance   int64   `json:"today_attendance"`
	EmployeesOnLeave  int64   `json:"employees_on_leave"`
	AttendanceRate    float64 `json:"attendance_rate"`
	PendingLeaves     int64   `json:"pending_leaves"`
}

type ActivityItem struct {
	Type      string    `json:"type"`
	RefID     string    `json:"ref_id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	Stats(ctx context.Context) (StatsResponse, error)
	Activity(ctx context.Context, limit int) ([]ActivityItem, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	group  singleflight.Group
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, rdb *redis.Client) Service {
	return &service{
		repo:   repo,
		rdb:    rdb,
		logger: zap.L().Named("dashboard.service"),
		now:    time.Now,
	}
}

// Stats serves the landing page counters. Results are cached in redis
// for a minute and concurrent cache misses collapse into one query
// burst via singleflight.
func (s *service) Stats(ctx context.Context) (StatsResponse, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var cached StatsResponse
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	result, err, _ := s.group.Do(statsCacheKey, func() (any, error) {
		stats, err := s.computeStats(ctx)
		if err != nil {
			return nil, err
		}
		if s.rdb != nil {
			if payload, marshalErr := json.Marshal(stats); marshalErr == nil {
				_ = s.rdb.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err()
			}
		}
		return stats, nil
	})
	if err != nil {
		return StatsResponse{}, err
	}
	return result.(StatsResponse), nil
}

func (s *service) computeStats(ctx context.Context) (StatsResponse, error) {
	today := s.now()

	totalEmployees, err := s.repo.CountActiveEmployees(ctx)
	if err != nil {
		return StatsResponse{}, err
	}
	departments, err := s.repo.CountDepartments(ctx)
	if err != nil {
		return StatsResponse{}, err
	}
	todayAttendance, err := s.repo.CountAttendanceOn(ctx, today)
	if err != nil {
		return StatsResponse{}, err
	}
	onLeave, err := s.repo.CountOnLeave(ctx, today)
	if err != nil {
		return StatsResponse{}, err
	}
	pending, err := s.repo.CountPendingLeaves(ctx)
	if err != nil {
		return StatsResponse{}, err
	}

	stats := StatsResponse{
		TotalEmployees:    totalEmployees,
		ActiveDepartments: departments,
		TodayAttendance:   todayAttendance,
		EmployeesOnLeave:  onLeave,
		PendingLeaves:     pending,
	}
	if totalEmployees > 0 {
		rate := float64(todayAttendance) / float64(totalEmployees) * 100
		stats.AttendanceRate = math.Round(rate*100) / 100
	}
	return stats, nil
}

// Activity interleaves today's taps with the latest leave requests,
// newest first.
func (s *service) Activity(ctx context.Context, limit int) ([]ActivityItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	today := s.now()

	events, err := s.repo.RecentEventsOn(ctx, today, limit)
	if err != nil {
		return nil, err
	}
	leaves, err := s.repo.RecentLeaves(ctx, limit)
	if err != nil {
		return nil, err
	}

	items := make([]ActivityItem, 0, len(events)+len(leaves))
	for _, ev := range events {
		message := "checked in"
		if ev.Action == attendance.ActionCheckOut {
			message = "checked out"
		}
		items = append(items, ActivityItem{
			Type:      "attendance",
			RefID:     ev.UserID.String(),
			Message:   message,
			Timestamp: ev.Timestamp,
		})
	}
	for _, req := range leaves {
		message := "requested " + req.Type + " leave"
		if req.Status != leave.StatusPending {
			message = req.Type + " leave " + req.Status
		}
		items = append(items, ActivityItem{
			Type:      "leave",
			RefID:     req.EmployeeID.String(),
			Message:   message,
			Timestamp: req.CreatedAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
