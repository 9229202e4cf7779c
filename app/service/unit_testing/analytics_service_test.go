package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	models "leaderboard-analytics/app/models/mongodb"
	"leaderboard-analytics/app/repository/mocks"
	service "leaderboard-analytics/app/service/mongodb"
)

// --- SETUP HELPERS ---

func setupAnalyticsTest() (*service.AnalyticsService, *mocks.MockStudentRepo, *mocks.MockEventRepo, *mocks.MockTeacherRepo, *mocks.MockClassRepo) {
	studentRepo := new(mocks.MockStudentRepo)
	eventRepo := new(mocks.MockEventRepo)
	teacherRepo := new(mocks.MockTeacherRepo)
	classRepo := new(mocks.MockClassRepo)

	svc := service.NewAnalyticsService(studentRepo, eventRepo, teacherRepo, classRepo)
	return svc, studentRepo, eventRepo, teacherRepo, classRepo
}

func chairperson() *models.Teacher {
	return &models.Teacher{ID: "t-chair", Role: models.RoleChairperson}
}

func hodOf(dept string) *models.Teacher {
	return &models.Teacher{ID: "t-hod", Role: models.RoleHOD, Department: dept}
}

func studentsWithPoints(points ...int) []models.Student {
	students := make([]models.Student, len(points))
	for i, p := range points {
		students[i] = models.Student{ID: "s" + string(rune('a'+i)), TotalPoints: p}
	}
	return students
}

// --- ACCESS RESOLUTION ---

func TestDepartmentAccess(t *testing.T) {
	ctx := context.Background()

	t.Run("Chairperson sees every distinct department", func(t *testing.T) {
		svc, studentRepo, _, _, _ := setupAnalyticsTest()
		all := []string{"CSE", "ECE", "MECH"}
		studentRepo.On("DistinctDepartments", mock.Anything).Return(all, nil)

		departments, err := svc.DepartmentAccess(ctx, chairperson())

		assert.NoError(t, err)
		assert.Equal(t, all, departments)
		studentRepo.AssertExpectations(t)
	})

	t.Run("Associate Chairperson sees managed departments only", func(t *testing.T) {
		svc, _, _, _, _ := setupAnalyticsTest()
		teacher := &models.Teacher{
			Role:               models.RoleAssociateChairperson,
			ManagedDepartments: []string{"CSE", "IT"},
		}

		departments, err := svc.DepartmentAccess(ctx, teacher)

		assert.NoError(t, err)
		assert.Equal(t, []string{"CSE", "IT"}, departments)
	})

	t.Run("HOD sees own department", func(t *testing.T) {
		svc, _, _, _, _ := setupAnalyticsTest()

		departments, err := svc.DepartmentAccess(ctx, hodOf("ECE"))

		assert.NoError(t, err)
		assert.Equal(t, []string{"ECE"}, departments)
	})

	t.Run("Faculty and Academic Advisor see nothing", func(t *testing.T) {
		svc, _, _, _, _ := setupAnalyticsTest()

		for _, role := range []models.Role{models.RoleFaculty, models.RoleAcademicAdvisor} {
			departments, err := svc.DepartmentAccess(ctx, &models.Teacher{Role: role, Department: "CSE"})
			assert.NoError(t, err)
			assert.Empty(t, departments)
		}
	})
}

// --- OVERVIEW ---

func TestDepartmentOverview(t *testing.T) {
	ctx := context.Background()

	t.Run("Department with zero students reports zero rates, not an error", func(t *testing.T) {
		svc, studentRepo, eventRepo, _, _ := setupAnalyticsTest()
		studentRepo.On("FindByDepartment", mock.Anything, "CSE").Return([]models.Student{}, nil)
		eventRepo.On("CountApproved", mock.Anything, "CSE", mock.Anything).Return(int64(0), nil)

		report, err := svc.DepartmentOverview(ctx, hodOf("CSE"), models.DateFilter{})

		assert.NoError(t, err)
		assert.Len(t, report.Departments, 1)
		dept := report.Departments[0]
		assert.Equal(t, 0, dept.StudentCount)
		assert.Equal(t, 0.0, dept.AveragePoints)
		assert.Equal(t, 0, dept.ParticipationRate)
		assert.Equal(t, 0, dept.AchievementRate)
	})

	t.Run("Ten students, four scorers: 400 total, 40.0 average, 40 achievement", func(t *testing.T) {
		svc, studentRepo, eventRepo, _, _ := setupAnalyticsTest()
		students := studentsWithPoints(100, 100, 100, 100, 0, 0, 0, 0, 0, 0)
		studentRepo.On("FindByDepartment", mock.Anything, "CSE").Return(students, nil)
		eventRepo.On("CountApproved", mock.Anything, "CSE", mock.Anything).Return(int64(4), nil)

		report, err := svc.DepartmentOverview(ctx, hodOf("CSE"), models.DateFilter{})

		assert.NoError(t, err)
		dept := report.Departments[0]
		assert.Equal(t, 400, dept.TotalPoints)
		assert.Equal(t, 40.0, dept.AveragePoints)
		assert.Equal(t, 40, dept.AchievementRate)
		assert.Equal(t, 400, report.OverallMetrics.TotalPoints)
	})

	t.Run("Role without access gets the explanatory error payload", func(t *testing.T) {
		svc, _, _, _, _ := setupAnalyticsTest()

		report, err := svc.DepartmentOverview(ctx, &models.Teacher{Role: models.RoleFaculty}, models.DateFilter{})

		assert.NoError(t, err)
		assert.NotEmpty(t, report.Error)
		assert.Empty(t, report.Departments)
	})

	t.Run("Departments sort by average points descending", func(t *testing.T) {
		svc, studentRepo, eventRepo, _, _ := setupAnalyticsTest()
		teacher := &models.Teacher{
			Role:               models.RoleAssociateChairperson,
			ManagedDepartments: []string{"CSE", "ECE"},
		}
		studentRepo.On("FindByDepartment", mock.Anything, "CSE").Return(studentsWithPoints(10), nil)
		studentRepo.On("FindByDepartment", mock.Anything, "ECE").Return(studentsWithPoints(90), nil)
		eventRepo.On("CountApproved", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)

		report, err := svc.DepartmentOverview(ctx, teacher, models.DateFilter{})

		assert.NoError(t, err)
		assert.Equal(t, "ECE", report.Departments[0].Department)
		assert.Equal(t, "CSE", report.Departments[1].Department)
	})
}

// --- GROWTH ---

func TestDepartmentRankingsGrowth(t *testing.T) {
	ctx := context.Background()

	rank := func(t *testing.T, curEvents, prevEvents int64, curPoints, prevPoints int) models.DepartmentRanking {
		t.Helper()
		svc, studentRepo, eventRepo, _, _ := setupAnalyticsTest()
		studentRepo.On("FindByDepartment", mock.Anything, "CSE").Return(studentsWithPoints(50, 30), nil)
		eventRepo.On("CountApprovedInRange", mock.Anything, "CSE", mock.Anything, mock.Anything).
			Return(curEvents, nil).Once()
		eventRepo.On("SumPointsInRange", mock.Anything, "CSE", mock.Anything, mock.Anything).
			Return(curPoints, nil).Once()
		eventRepo.On("CountApprovedInRange", mock.Anything, "CSE", mock.Anything, mock.Anything).
			Return(prevEvents, nil).Once()
		eventRepo.On("SumPointsInRange", mock.Anything, "CSE", mock.Anything, mock.Anything).
			Return(prevPoints, nil).Once()

		rankings, err := svc.DepartmentRankings(ctx, hodOf("CSE"))
		assert.NoError(t, err)
		assert.Len(t, rankings, 1)
		return rankings[0]
	}

	t.Run("Both periods empty means zero growth", func(t *testing.T) {
		r := rank(t, 0, 0, 0, 0)
		assert.Equal(t, 0, r.EventGrowth)
		assert.Equal(t, 0, r.PointsGrowth)
	})

	t.Run("Activity from nothing means 100 percent growth", func(t *testing.T) {
		r := rank(t, 3, 0, 120, 0)
		assert.Equal(t, 100, r.EventGrowth)
		assert.Equal(t, 100, r.PointsGrowth)
	})

	t.Run("Doubling from five to ten is exactly 100", func(t *testing.T) {
		r := rank(t, 10, 5, 0, 0)
		assert.Equal(t, 100, r.EventGrowth)
	})

	t.Run("Single hackathon this month", func(t *testing.T) {
		r := rank(t, 1, 0, 50, 0)
		assert.Equal(t, 1, r.CurrentMonthEvents)
		assert.Equal(t, 0, r.PreviousMonthEvents)
		assert.Equal(t, 100, r.EventGrowth)
		assert.Equal(t, 100, r.PointsGrowth)
	})

	t.Run("Rank and outOf cover every visible department", func(t *testing.T) {
		svc, studentRepo, eventRepo, _, _ := setupAnalyticsTest()
		teacher := &models.Teacher{
			Role:               models.RoleAssociateChairperson,
			ManagedDepartments: []string{"CSE", "ECE"},
		}
		studentRepo.On("FindByDepartment", mock.Anything, "CSE").Return(studentsWithPoints(10), nil)
		studentRepo.On("FindByDepartment", mock.Anything, "ECE").Return(studentsWithPoints(80), nil)
		eventRepo.On("CountApprovedInRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)
		eventRepo.On("SumPointsInRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(0, nil)

		rankings, err := svc.DepartmentRankings(ctx, teacher)

		assert.NoError(t, err)
		assert.Equal(t, "ECE", rankings[0].Department)
		assert.Equal(t, 1, rankings[0].Rank)
		assert.Equal(t, 2, rankings[0].OutOf)
		assert.Equal(t, 2, rankings[1].Rank)
	})
}

// --- TIME BUCKETS ---

func TestActivityHeatmap(t *testing.T) {
	ctx := context.Background()

	t.Run("Twelve months requested means twelve labels and twelve points", func(t *testing.T) {
		svc, _, eventRepo, _, _ := setupAnalyticsTest()
		now := time.Now()
		buckets := []models.PeriodBucket{
			{Period: int(now.Month()), Year: now.Year(), Count: 3},
		}
		eventRepo.On("MonthlyActivity", mock.Anything, "CSE", mock.Anything).Return(buckets, nil)

		heatmap, err := svc.ActivityHeatmap(ctx, hodOf("CSE"), 12)

		assert.NoError(t, err)
		assert.Len(t, heatmap.MonthLabels, 12)
		assert.Len(t, heatmap.HeatmapData, 1)
		assert.Len(t, heatmap.HeatmapData[0].Data, 12)
		assert.Equal(t, 3, heatmap.HeatmapData[0].Data[11])
		for _, v := range heatmap.HeatmapData[0].Data[:11] {
			assert.Equal(t, 0, v)
		}
	})

	t.Run("No access means empty heatmap, not null", func(t *testing.T) {
		svc, _, _, _, _ := setupAnalyticsTest()

		heatmap, err := svc.ActivityHeatmap(ctx, &models.Teacher{Role: models.RoleFaculty}, 12)

		assert.NoError(t, err)
		assert.NotNil(t, heatmap.HeatmapData)
		assert.Empty(t, heatmap.HeatmapData)
		assert.Empty(t, heatmap.MonthLabels)
	})
}

func TestEngagementPatterns(t *testing.T) {
	ctx := context.Background()

	t.Run("Sparse monthly buckets become a dense series", func(t *testing.T) {
		svc, _, eventRepo, _, _ := setupAnalyticsTest()
		now := time.Now()
		buckets := []models.PeriodBucket{
			{Period: int(now.Month()), Year: now.Year(), Count: 2, Points: 80, UniqueStudents: 2},
		}
		eventRepo.On("EngagementBuckets", mock.Anything, "CSE", "monthly", mock.Anything).Return(buckets, nil)

		report, err := svc.EngagementPatterns(ctx, hodOf("CSE"), "monthly", 6)

		assert.NoError(t, err)
		assert.Len(t, report.TimeLabels, 6)
		assert.Len(t, report.Patterns[0].Engagement, 6)
		last := report.Patterns[0].Engagement[5]
		assert.Equal(t, 2, last.Count)
		assert.Equal(t, 80, last.Points)
		assert.Equal(t, 2, last.UniqueStudents)
		assert.Equal(t, report.TimeLabels[0], report.Patterns[0].Engagement[0].Period)
	})

	t.Run("Weekly series also gap-fills every label", func(t *testing.T) {
		svc, _, eventRepo, _, _ := setupAnalyticsTest()
		eventRepo.On("EngagementBuckets", mock.Anything, "CSE", "weekly", mock.Anything).Return([]models.PeriodBucket{}, nil)

		report, err := svc.EngagementPatterns(ctx, hodOf("CSE"), "weekly", 8)

		assert.NoError(t, err)
		assert.Len(t, report.TimeLabels, 8)
		assert.Len(t, report.Patterns[0].Engagement, 8)
		for _, p := range report.Patterns[0].Engagement {
			assert.Equal(t, 0, p.Count)
		}
	})
}

// --- CROSS-DEPARTMENT ANALYSIS ---

func TestCategoryAnalysis(t *testing.T) {
	ctx := context.Background()

	t.Run("Per-department stats merge into a global ranking", func(t *testing.T) {
		svc, _, eventRepo, _, _ := setupAnalyticsTest()
		teacher := &models.Teacher{
			Role:               models.RoleAssociateChairperson,
			ManagedDepartments: []string{"CSE", "ECE"},
		}
		eventRepo.On("CategoryBreakdown", mock.Anything, "CSE", mock.Anything).Return([]models.CategoryStat{
			{Category: "Hackathon", Count: 4, Points: 200, UniqueStudents: 3},
			{Category: "Workshop", Count: 1, Points: 20, UniqueStudents: 1},
		}, nil)
		eventRepo.On("CategoryBreakdown", mock.Anything, "ECE", mock.Anything).Return([]models.CategoryStat{
			{Category: "Hackathon", Count: 2, Points: 80, UniqueStudents: 2},
		}, nil)

		report, err := svc.CategoryAnalysis(ctx, teacher, models.DateFilter{})

		assert.NoError(t, err)
		assert.Len(t, report.CategoryAnalysis, 2)
		assert.Equal(t, "Hackathon", report.PopularCategories[0].Category)
		assert.Equal(t, 6, report.PopularCategories[0].TotalCount)
		assert.Equal(t, 280, report.PopularCategories[0].TotalPoints)
		assert.Len(t, report.PopularCategories[0].Departments, 2)
		assert.Equal(t, "Workshop", report.PopularCategories[1].Category)
	})
}

func TestUntappedOpportunities(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown categories are untapped, thin ones are low-participation", func(t *testing.T) {
		svc, studentRepo, eventRepo, _, _ := setupAnalyticsTest()
		students := studentsWithPoints(0, 0, 0, 0, 0, 0, 0, 0, 0, 0)
		studentRepo.On("FindByDepartment", mock.Anything, "CSE").Return(students, nil)
		eventRepo.On("DistinctCategories", mock.Anything).Return([]string{"Hackathon", "Workshop", "Seminar"}, nil)
		eventRepo.On("CategoryParticipation", mock.Anything, mock.Anything).Return([]models.CategoryParticipation{
			{Category: "Hackathon", UniqueStudents: 1, EventCount: 2},
			{Category: "Seminar", UniqueStudents: 9, EventCount: 12},
		}, nil)

		opportunities, err := svc.UntappedOpportunities(ctx, hodOf("CSE"))

		assert.NoError(t, err)
		assert.Len(t, opportunities, 1)
		dept := opportunities[0]
		assert.Equal(t, 10, dept.TotalStudents)

		assert.Len(t, dept.UntappedCategories, 1)
		assert.Equal(t, "Workshop", dept.UntappedCategories[0].Category)
		assert.Equal(t, "Introduce this category to department", dept.UntappedCategories[0].Recommendation)

		// 1 of 10 students is 10%, low but above the high-priority cutoff.
		assert.Len(t, dept.LowParticipationCategories, 1)
		low := dept.LowParticipationCategories[0]
		assert.Equal(t, "Hackathon", low.Category)
		assert.Equal(t, 10, low.ParticipationRate)
		assert.Equal(t, "Increase awareness and promotion", low.Recommendation)
	})

	t.Run("Participation under five percent is flagged high priority", func(t *testing.T) {
		svc, studentRepo, eventRepo, _, _ := setupAnalyticsTest()
		students := make([]models.Student, 100)
		studentRepo.On("FindByDepartment", mock.Anything, "CSE").Return(students, nil)
		eventRepo.On("DistinctCategories", mock.Anything).Return([]string{"Hackathon"}, nil)
		eventRepo.On("CategoryParticipation", mock.Anything, mock.Anything).Return([]models.CategoryParticipation{
			{Category: "Hackathon", UniqueStudents: 2, EventCount: 2},
		}, nil)

		opportunities, err := svc.UntappedOpportunities(ctx, hodOf("CSE"))

		assert.NoError(t, err)
		low := opportunities[0].LowParticipationCategories[0]
		assert.Equal(t, 2, low.ParticipationRate)
		assert.Equal(t, "High-priority improvement needed", low.Recommendation)
	})

	t.Run("Department without students gets empty lists", func(t *testing.T) {
		svc, studentRepo, eventRepo, _, _ := setupAnalyticsTest()
		studentRepo.On("FindByDepartment", mock.Anything, "CSE").Return([]models.Student{}, nil)
		eventRepo.On("DistinctCategories", mock.Anything).Return([]string{"Hackathon"}, nil)

		opportunities, err := svc.UntappedOpportunities(ctx, hodOf("CSE"))

		assert.NoError(t, err)
		assert.NotNil(t, opportunities[0].UntappedCategories)
		assert.Empty(t, opportunities[0].UntappedCategories)
		assert.Empty(t, opportunities[0].LowParticipationCategories)
	})
}

func TestPrizeMoneyMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Fifty points on two hundred prize money is 25.0 ROI", func(t *testing.T) {
		svc, _, eventRepo, _, _ := setupAnalyticsTest()
		eventRepo.On("PrizeSummary", mock.Anything, "CSE", mock.Anything).Return(models.PrizeSummary{
			TotalPrizeMoney: 200,
			TotalPoints:     50,
			PrizeEventCount: 1,
			AvgPrizeMoney:   200,
		}, nil)

		metrics, err := svc.PrizeMoneyMetrics(ctx, hodOf("CSE"), models.DateFilter{})

		assert.NoError(t, err)
		assert.Equal(t, 25.0, metrics[0].ROI)
		assert.Equal(t, 200.0, metrics[0].AvgPrizeMoney)
	})

	t.Run("No prize money means zero ROI", func(t *testing.T) {
		svc, _, eventRepo, _, _ := setupAnalyticsTest()
		eventRepo.On("PrizeSummary", mock.Anything, "CSE", mock.Anything).Return(models.PrizeSummary{}, nil)

		metrics, err := svc.PrizeMoneyMetrics(ctx, hodOf("CSE"), models.DateFilter{})

		assert.NoError(t, err)
		assert.Equal(t, 0.0, metrics[0].ROI)
	})
}

func TestFacultyPerformance(t *testing.T) {
	ctx := context.Background()

	t.Run("Faculty averages derive from their class rosters", func(t *testing.T) {
		svc, studentRepo, _, teacherRepo, classRepo := setupAnalyticsTest()
		teacherRepo.On("FindFacultyByDepartment", mock.Anything, "CSE").Return([]models.Teacher{
			{ID: "f1", Name: "Asha", Role: models.RoleFaculty},
		}, nil)
		classRepo.On("FindByFacultyOrAdvisor", mock.Anything, "CSE", "f1").Return([]models.Class{
			{ID: "c1"}, {ID: "c2"},
		}, nil)
		studentRepo.On("FindByClassRefs", mock.Anything, "CSE", []string{"c1", "c2"}).
			Return(studentsWithPoints(100, 50), nil)

		reports, err := svc.FacultyPerformance(ctx, hodOf("CSE"))

		assert.NoError(t, err)
		report := reports[0]
		assert.Equal(t, 1, report.FacultyCount)
		top := report.TopFaculty[0]
		assert.Equal(t, 2, top.ClassCount)
		assert.Equal(t, 2, top.TotalStudents)
		assert.Equal(t, 75.0, top.AvgPoints)
		assert.Equal(t, 75.0, report.AvgClassPerformance)
		assert.Equal(t, 0.0, report.ClassVariance)
	})

	t.Run("Faculty without classes score zero and stay out of the variance", func(t *testing.T) {
		svc, studentRepo, _, teacherRepo, classRepo := setupAnalyticsTest()
		teacherRepo.On("FindFacultyByDepartment", mock.Anything, "CSE").Return([]models.Teacher{
			{ID: "f1", Name: "Asha", Role: models.RoleFaculty},
			{ID: "f2", Name: "Ravi", Role: models.RoleAcademicAdvisor},
		}, nil)
		classRepo.On("FindByFacultyOrAdvisor", mock.Anything, "CSE", "f1").Return([]models.Class{{ID: "c1"}}, nil)
		classRepo.On("FindByFacultyOrAdvisor", mock.Anything, "CSE", "f2").Return([]models.Class{}, nil)
		studentRepo.On("FindByClassRefs", mock.Anything, "CSE", []string{"c1"}).
			Return(studentsWithPoints(60), nil)

		reports, err := svc.FacultyPerformance(ctx, hodOf("CSE"))

		assert.NoError(t, err)
		report := reports[0]
		assert.Equal(t, 2, report.FacultyCount)
		assert.Equal(t, 60.0, report.AvgClassPerformance)
		assert.Equal(t, 0.0, report.ClassVariance)
		assert.Len(t, report.TopFaculty, 1)
		assert.Equal(t, "f1", report.TopFaculty[0].ID)
	})

	t.Run("Top faculty never pads with empty rosters", func(t *testing.T) {
		svc, studentRepo, _, teacherRepo, classRepo := setupAnalyticsTest()
		faculty := []models.Teacher{{ID: "f1", Name: "Asha", Role: models.RoleFaculty}}
		for i := 2; i <= 6; i++ {
			faculty = append(faculty, models.Teacher{
				ID:   "f" + string(rune('0'+i)),
				Role: models.RoleFaculty,
			})
		}
		teacherRepo.On("FindFacultyByDepartment", mock.Anything, "CSE").Return(faculty, nil)

		// Only the first faculty has anyone enrolled; the rest have a
		// class but an empty roster.
		classRepo.On("FindByFacultyOrAdvisor", mock.Anything, "CSE", mock.Anything).
			Return([]models.Class{{ID: "c1"}}, nil)
		studentRepo.On("FindByClassRefs", mock.Anything, "CSE", []string{"c1"}).
			Return(studentsWithPoints(60), nil).Once()
		studentRepo.On("FindByClassRefs", mock.Anything, "CSE", []string{"c1"}).
			Return([]models.Student{}, nil)

		reports, err := svc.FacultyPerformance(ctx, hodOf("CSE"))

		assert.NoError(t, err)
		report := reports[0]
		assert.Equal(t, 6, report.FacultyCount)
		assert.Len(t, report.TopFaculty, 1)
		for _, f := range report.TopFaculty {
			assert.Greater(t, f.TotalStudents, 0)
		}
	})
}

func TestCollaborationMetrics(t *testing.T) {
	ctx := context.Background()
	teacher := &models.Teacher{
		Role:               models.RoleAssociateChairperson,
		ManagedDepartments: []string{"CSE", "ECE"},
	}

	t.Run("No shared categories scores zero and classifies Low", func(t *testing.T) {
		svc, _, eventRepo, _, _ := setupAnalyticsTest()
		when := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		eventRepo.On("FindApprovedByDepartment", mock.Anything, "CSE").Return([]models.Event{
			{Category: "Hackathon", Date: when},
		}, nil)
		eventRepo.On("FindApprovedByDepartment", mock.Anything, "ECE").Return([]models.Event{
			{Category: "Seminar", Date: when},
		}, nil)

		report, err := svc.CollaborationMetrics(ctx, teacher)

		assert.NoError(t, err)
		pair := report.CollaborationMatrix[0]
		assert.Equal(t, 0, pair.CollaborationScore)
		assert.Equal(t, 0, pair.SharedCategories)
		assert.Equal(t, "Low", pair.CollaborationLevel)
	})

	t.Run("Shared category-months accumulate into the score", func(t *testing.T) {
		svc, _, eventRepo, _, _ := setupAnalyticsTest()
		march := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		april := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
		eventRepo.On("FindApprovedByDepartment", mock.Anything, "CSE").Return([]models.Event{
			{Category: "Hackathon", Date: march},
			{Category: "Hackathon", Date: april},
		}, nil)
		eventRepo.On("FindApprovedByDepartment", mock.Anything, "ECE").Return([]models.Event{
			{Category: "Hackathon", Date: march},
			{Category: "Hackathon", Date: april},
			{Category: "Hackathon", Date: april},
		}, nil)

		report, err := svc.CollaborationMetrics(ctx, teacher)

		assert.NoError(t, err)
		pair := report.CollaborationMatrix[0]
		assert.Equal(t, 2, pair.CollaborationScore)
		assert.Equal(t, 1, pair.SharedCategories)
		assert.Equal(t, "Low", pair.CollaborationLevel)
		assert.Equal(t, 2, report.DepartmentMetrics[0].EventCount)
		assert.Equal(t, 3, report.DepartmentMetrics[1].EventCount)
		assert.Equal(t, map[string]int{"2026-03": 1, "2026-04": 2},
			report.DepartmentMetrics[1].CategoryTiming["Hackathon"])
	})
}

// --- DASHBOARD ---

func TestComprehensiveDashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("A failing metric falls back without sinking the rest", func(t *testing.T) {
		svc, studentRepo, eventRepo, _, _ := setupAnalyticsTest()
		studentRepo.On("FindByDepartment", mock.Anything, "CSE").Return(studentsWithPoints(100), nil)
		eventRepo.On("CountApproved", mock.Anything, "CSE", mock.Anything).Return(int64(2), nil)
		// Rankings die on the month-window queries.
		eventRepo.On("CountApprovedInRange", mock.Anything, "CSE", mock.Anything, mock.Anything).
			Return(int64(0), errors.New("connection reset"))
		eventRepo.On("CategoryBreakdown", mock.Anything, "CSE", mock.Anything).Return([]models.CategoryStat{
			{Category: "Hackathon", Count: 2, Points: 100, UniqueStudents: 1},
		}, nil)
		eventRepo.On("DistinctCategories", mock.Anything).Return([]string{"Hackathon"}, nil)
		eventRepo.On("CategoryParticipation", mock.Anything, mock.Anything).Return([]models.CategoryParticipation{
			{Category: "Hackathon", UniqueStudents: 1, EventCount: 2},
		}, nil)

		report := svc.ComprehensiveDashboard(ctx, hodOf("CSE"), models.DateFilter{})

		assert.Empty(t, report.Rankings)
		assert.Equal(t, 1, report.Overview.TotalDepartments)
		assert.Len(t, report.PerformanceComparison, 1)
		assert.Equal(t, "Hackathon", report.CategoryAnalysis.PopularCategories[0].Category)
		assert.Len(t, report.Opportunities, 1)
		assert.False(t, report.LastUpdated.IsZero())
	})
}

func TestDepartmentSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("Summary aggregates across visible departments", func(t *testing.T) {
		svc, studentRepo, eventRepo, _, _ := setupAnalyticsTest()
		studentRepo.On("CountByDepartments", mock.Anything, []string{"CSE"}).Return(int64(120), nil)
		studentRepo.On("AveragePointsByDepartments", mock.Anything, []string{"CSE"}).Return(41.666, nil)
		eventRepo.On("CountApprovedInDepartments", mock.Anything, []string{"CSE"}).Return(int64(35), nil)

		summary, err := svc.DepartmentSummary(ctx, hodOf("CSE"))

		assert.NoError(t, err)
		assert.Equal(t, 1, summary.TotalDepartments)
		assert.Equal(t, 120, summary.TotalStudents)
		assert.Equal(t, 35, summary.TotalEvents)
		assert.Equal(t, 41.7, summary.AvgPerformance)
	})

	t.Run("No access yields an empty summary", func(t *testing.T) {
		svc, _, _, _, _ := setupAnalyticsTest()

		summary, err := svc.DepartmentSummary(ctx, &models.Teacher{Role: models.RoleFaculty})

		assert.NoError(t, err)
		assert.Equal(t, 0, summary.TotalDepartments)
		assert.NotNil(t, summary.Departments)
		assert.Empty(t, summary.Departments)
	})
}

// --- HTTP LAYER ---

func setupAnalyticsApp(teacher *models.Teacher) (*fiber.App, *service.AnalyticsService, *mocks.MockStudentRepo, *mocks.MockEventRepo) {
	svc, studentRepo, eventRepo, _, _ := setupAnalyticsTest()
	app := fiber.New()
	if teacher != nil {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("teacher", teacher)
			return c.Next()
		})
	}
	return app, svc, studentRepo, eventRepo
}

func TestGetDepartmentOverviewHTTP(t *testing.T) {
	t.Run("Success: wrapped payload", func(t *testing.T) {
		app, svc, studentRepo, eventRepo := setupAnalyticsApp(hodOf("CSE"))
		studentRepo.On("FindByDepartment", mock.Anything, "CSE").Return(studentsWithPoints(100), nil)
		eventRepo.On("CountApproved", mock.Anything, "CSE", mock.Anything).Return(int64(1), nil)

		app.Get("/overview", svc.GetDepartmentOverview)

		req := httptest.NewRequest("GET", "/overview", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, 200, resp.StatusCode)
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, true, body["success"])
		assert.NotNil(t, body["data"])
	})

	t.Run("Error: no teacher in context", func(t *testing.T) {
		app, svc, _, _ := setupAnalyticsApp(nil)
		app.Get("/overview", svc.GetDepartmentOverview)

		req := httptest.NewRequest("GET", "/overview", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Error: malformed startDate", func(t *testing.T) {
		app, svc, _, _ := setupAnalyticsApp(hodOf("CSE"))
		app.Get("/overview", svc.GetDepartmentOverview)

		req := httptest.NewRequest("GET", "/overview?startDate=03-2026", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Error: repository failure surfaces as 500", func(t *testing.T) {
		app, svc, studentRepo, _ := setupAnalyticsApp(hodOf("CSE"))
		studentRepo.On("FindByDepartment", mock.Anything, "CSE").Return(nil, errors.New("db error"))

		app.Get("/overview", svc.GetDepartmentOverview)

		req := httptest.NewRequest("GET", "/overview", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, 500, resp.StatusCode)
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, false, body["success"])
	})
}

func TestGetEngagementPatternsHTTP(t *testing.T) {
	t.Run("Defaults to twelve monthly periods", func(t *testing.T) {
		app, svc, _, eventRepo := setupAnalyticsApp(hodOf("CSE"))
		eventRepo.On("EngagementBuckets", mock.Anything, "CSE", "monthly", mock.Anything).
			Return([]models.PeriodBucket{}, nil)

		app.Get("/engagement", svc.GetEngagementPatterns)

		req := httptest.NewRequest("GET", "/engagement", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, 200, resp.StatusCode)
		eventRepo.AssertExpectations(t)
	})
}
