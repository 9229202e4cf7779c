package service

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	models "leaderboard-analytics/app/models/mongodb"
	repo "leaderboard-analytics/app/repository/mongodb"
)

// noAccessMessage is surfaced in the overview when the caller's role has no
// department-level visibility. An empty scope is a valid result, not a fault.
const noAccessMessage = "No department access available for this role"

type AnalyticsService struct {
	studentRepo repo.StudentRepository
	eventRepo   repo.EventRepository
	teacherRepo repo.TeacherRepository
	classRepo   repo.ClassRepository
}

func NewAnalyticsService(s repo.StudentRepository, e repo.EventRepository, t repo.TeacherRepository, c repo.ClassRepository) *AnalyticsService {
	return &AnalyticsService{studentRepo: s, eventRepo: e, teacherRepo: t, classRepo: c}
}

// DepartmentAccess resolves which departments the teacher may see. The
// result is always a subset of the department enumeration and is empty, not
// an error, for roles without department-level visibility.
func (s *AnalyticsService) DepartmentAccess(ctx context.Context, teacher *models.Teacher) ([]string, error) {
	switch teacher.Role {
	case models.RoleChairperson:
		// Live enumeration: new departments appear automatically once
		// any student is created in them.
		return s.studentRepo.DistinctDepartments(ctx)
	case models.RoleAssociateChairperson:
		if teacher.ManagedDepartments == nil {
			return []string{}, nil
		}
		return teacher.ManagedDepartments, nil
	case models.RoleHOD:
		if teacher.Department == "" {
			return []string{}, nil
		}
		return []string{teacher.Department}, nil
	default:
		return []string{}, nil
	}
}

// studentStats are the scalar figures derivable from one department's
// student load.
type studentStats struct {
	count          int
	totalPoints    int
	averagePoints  float64
	withActivities int
	withPoints     int
}

func summarizeStudents(students []models.Student) studentStats {
	stats := studentStats{count: len(students)}
	for _, st := range students {
		stats.totalPoints += st.TotalPoints
		if len(st.EventsParticipated) > 0 {
			stats.withActivities++
		}
		if st.TotalPoints > 0 {
			stats.withPoints++
		}
	}
	if stats.count > 0 {
		stats.averagePoints = round1(float64(stats.totalPoints) / float64(stats.count))
	}
	return stats
}

// DepartmentOverview builds the per-department overview plus cross-department
// totals for every department visible to the teacher.
func (s *AnalyticsService) DepartmentOverview(ctx context.Context, teacher *models.Teacher, filter models.DateFilter) (models.OverviewReport, error) {
	departments, err := s.DepartmentAccess(ctx, teacher)
	if err != nil {
		return models.OverviewReport{}, err
	}
	if len(departments) == 0 {
		return models.OverviewReport{
			Error:       noAccessMessage,
			Departments: []models.DepartmentOverview{},
		}, nil
	}

	overviews := make([]models.DepartmentOverview, len(departments))
	g, gctx := errgroup.WithContext(ctx)
	for i, dept := range departments {
		i, dept := i, dept
		g.Go(func() error {
			students, err := s.studentRepo.FindByDepartment(gctx, dept)
			if err != nil {
				return err
			}
			eventCount, err := s.eventRepo.CountApproved(gctx, dept, filter)
			if err != nil {
				return err
			}

			stats := summarizeStudents(students)
			overviews[i] = models.DepartmentOverview{
				Department:             dept,
				StudentCount:           stats.count,
				TotalPoints:            stats.totalPoints,
				AveragePoints:          stats.averagePoints,
				EventCount:             int(eventCount),
				ParticipationRate:      percent(stats.withActivities, stats.count),
				AchievementRate:        percent(stats.withPoints, stats.count),
				StudentsWithActivities: stats.withActivities,
				StudentsWithPoints:     stats.withPoints,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.OverviewReport{}, err
	}

	// Ties keep the department access order.
	sort.SliceStable(overviews, func(a, b int) bool {
		return overviews[a].AveragePoints > overviews[b].AveragePoints
	})

	overall := models.OverallMetrics{}
	rateSum := 0
	for _, o := range overviews {
		overall.TotalStudents += o.StudentCount
		overall.TotalPoints += o.TotalPoints
		overall.TotalEvents += o.EventCount
		rateSum += o.ParticipationRate
	}
	// Unweighted mean of per-department rates, as the dashboard has
	// always reported it.
	if n := len(overviews); n > 0 {
		overall.AverageParticipationRate = int(math.Round(float64(rateSum) / float64(n)))
	}

	return models.OverviewReport{
		Departments:      overviews,
		TotalDepartments: len(overviews),
		OverallMetrics:   overall,
	}, nil
}

// PerformanceComparison returns the bar-chart slice of the overview: one
// entry per department, sorted by average points.
func (s *AnalyticsService) PerformanceComparison(ctx context.Context, teacher *models.Teacher) ([]models.DepartmentPerformance, error) {
	departments, err := s.DepartmentAccess(ctx, teacher)
	if err != nil {
		return nil, err
	}
	if len(departments) == 0 {
		return []models.DepartmentPerformance{}, nil
	}

	performance := make([]models.DepartmentPerformance, len(departments))
	g, gctx := errgroup.WithContext(ctx)
	for i, dept := range departments {
		i, dept := i, dept
		g.Go(func() error {
			students, err := s.studentRepo.FindByDepartment(gctx, dept)
			if err != nil {
				return err
			}
			stats := summarizeStudents(students)
			performance[i] = models.DepartmentPerformance{
				Department:        dept,
				AveragePoints:     stats.averagePoints,
				ParticipationRate: percent(stats.withActivities, stats.count),
				StudentCount:      stats.count,
				TotalPoints:       stats.totalPoints,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(performance, func(a, b int) bool {
		return performance[a].AveragePoints > performance[b].AveragePoints
	})
	return performance, nil
}
