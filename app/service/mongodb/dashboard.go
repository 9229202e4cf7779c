package service

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	models "leaderboard-analytics/app/models/mongodb"
)

// ComprehensiveDashboard assembles every metric into one report. Metrics run
// in parallel and fail independently: a failing metric is replaced by its
// empty fallback and logged, the dashboard itself never errors.
func (s *AnalyticsService) ComprehensiveDashboard(ctx context.Context, teacher *models.Teacher, filter models.DateFilter) models.DashboardReport {
	report := models.DashboardReport{}

	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		overview, err := s.DepartmentOverview(ctx, teacher, filter)
		if err != nil {
			log.Printf("dashboard: overview failed: %v", err)
			overview = models.OverviewReport{
				Error:       "Failed to get overview",
				Departments: []models.DepartmentOverview{},
			}
		}
		report.Overview = overview
	}()

	go func() {
		defer wg.Done()
		performance, err := s.PerformanceComparison(ctx, teacher)
		if err != nil {
			log.Printf("dashboard: performance comparison failed: %v", err)
			performance = []models.DepartmentPerformance{}
		}
		report.PerformanceComparison = performance
	}()

	go func() {
		defer wg.Done()
		rankings, err := s.DepartmentRankings(ctx, teacher)
		if err != nil {
			log.Printf("dashboard: rankings failed: %v", err)
			rankings = []models.DepartmentRanking{}
		}
		report.Rankings = rankings
	}()

	go func() {
		defer wg.Done()
		categories, err := s.CategoryAnalysis(ctx, teacher, filter)
		if err != nil {
			log.Printf("dashboard: category analysis failed: %v", err)
			categories = models.CategoryAnalysisReport{
				CategoryAnalysis:  []models.DepartmentCategories{},
				PopularCategories: []models.PopularCategory{},
			}
		}
		report.CategoryAnalysis = categories
	}()

	go func() {
		defer wg.Done()
		opportunities, err := s.UntappedOpportunities(ctx, teacher)
		if err != nil {
			log.Printf("dashboard: opportunities failed: %v", err)
			opportunities = []models.DepartmentOpportunities{}
		}
		report.Opportunities = opportunities
	}()

	wg.Wait()
	report.LastUpdated = time.Now()
	return report
}

// DepartmentSummary returns the headline counters shown above the dashboard
// charts.
func (s *AnalyticsService) DepartmentSummary(ctx context.Context, teacher *models.Teacher) (models.DepartmentSummary, error) {
	departments, err := s.DepartmentAccess(ctx, teacher)
	if err != nil {
		return models.DepartmentSummary{}, err
	}
	if len(departments) == 0 {
		return models.DepartmentSummary{Departments: []string{}}, nil
	}

	var (
		studentCount int64
		eventCount   int64
		avgPoints    float64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		studentCount, err = s.studentRepo.CountByDepartments(gctx, departments)
		return err
	})
	g.Go(func() error {
		var err error
		eventCount, err = s.eventRepo.CountApprovedInDepartments(gctx, departments)
		return err
	})
	g.Go(func() error {
		var err error
		avgPoints, err = s.studentRepo.AveragePointsByDepartments(gctx, departments)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.DepartmentSummary{}, err
	}

	return models.DepartmentSummary{
		TotalDepartments: len(departments),
		TotalStudents:    int(studentCount),
		TotalEvents:      int(eventCount),
		AvgPerformance:   round1(avgPoints),
		Departments:      departments,
	}, nil
}
