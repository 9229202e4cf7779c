package service

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	models "leaderboard-analytics/app/models/mongodb"
)

const (
	topCategoriesLimit  = 10
	opportunitiesLimit  = 5
	topFacultyLimit     = 5
	lowParticipationCap = 20
	highPriorityFloor   = 5
)

// CategoryAnalysis breaks approved events down by category per department
// and merges the per-department stats into a global top-10 ranking.
func (s *AnalyticsService) CategoryAnalysis(ctx context.Context, teacher *models.Teacher, filter models.DateFilter) (models.CategoryAnalysisReport, error) {
	departments, err := s.DepartmentAccess(ctx, teacher)
	if err != nil {
		return models.CategoryAnalysisReport{}, err
	}
	if len(departments) == 0 {
		return models.CategoryAnalysisReport{
			CategoryAnalysis:  []models.DepartmentCategories{},
			PopularCategories: []models.PopularCategory{},
		}, nil
	}

	perDept := make([]models.DepartmentCategories, len(departments))
	g, gctx := errgroup.WithContext(ctx)
	for i, dept := range departments {
		i, dept := i, dept
		g.Go(func() error {
			stats, err := s.eventRepo.CategoryBreakdown(gctx, dept, filter)
			if err != nil {
				return err
			}
			if stats == nil {
				stats = []models.CategoryStat{}
			}
			perDept[i] = models.DepartmentCategories{Department: dept, Categories: stats}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.CategoryAnalysisReport{}, err
	}

	// Merge in first-seen order so equal counts rank deterministically.
	merged := make(map[string]*models.PopularCategory)
	var order []string
	for _, dc := range perDept {
		for _, stat := range dc.Categories {
			entry, ok := merged[stat.Category]
			if !ok {
				entry = &models.PopularCategory{Category: stat.Category}
				merged[stat.Category] = entry
				order = append(order, stat.Category)
			}
			entry.TotalCount += stat.Count
			entry.TotalPoints += stat.Points
			entry.TotalUniqueStudents += stat.UniqueStudents
			entry.Departments = append(entry.Departments, models.CategoryContribution{
				Department: dc.Department,
				Count:      stat.Count,
				Points:     stat.Points,
			})
		}
	}

	popular := make([]models.PopularCategory, 0, len(order))
	for _, cat := range order {
		popular = append(popular, *merged[cat])
	}
	sort.SliceStable(popular, func(a, b int) bool {
		return popular[a].TotalCount > popular[b].TotalCount
	})
	if len(popular) > topCategoriesLimit {
		popular = popular[:topCategoriesLimit]
	}

	return models.CategoryAnalysisReport{
		CategoryAnalysis:  perDept,
		PopularCategories: popular,
	}, nil
}

// UntappedOpportunities flags, per department, system-wide event categories
// with zero participants and categories where fewer than 20% of the
// department's students take part. The vocabulary comes from every approved
// event in the system, not just the caller's departments, so a category
// unknown to a whole department still surfaces.
func (s *AnalyticsService) UntappedOpportunities(ctx context.Context, teacher *models.Teacher) ([]models.DepartmentOpportunities, error) {
	departments, err := s.DepartmentAccess(ctx, teacher)
	if err != nil {
		return nil, err
	}
	if len(departments) == 0 {
		return []models.DepartmentOpportunities{}, nil
	}

	vocabulary, err := s.eventRepo.DistinctCategories(ctx)
	if err != nil {
		return nil, err
	}

	opportunities := make([]models.DepartmentOpportunities, len(departments))
	g, gctx := errgroup.WithContext(ctx)
	for i, dept := range departments {
		i, dept := i, dept
		g.Go(func() error {
			students, err := s.studentRepo.FindByDepartment(gctx, dept)
			if err != nil {
				return err
			}
			if len(students) == 0 {
				opportunities[i] = models.DepartmentOpportunities{
					Department:                 dept,
					UntappedCategories:         []models.CategoryOpportunity{},
					LowParticipationCategories: []models.CategoryOpportunity{},
				}
				return nil
			}

			ids := make([]string, len(students))
			for j, st := range students {
				ids[j] = st.ID
			}
			participation, err := s.eventRepo.CategoryParticipation(gctx, ids)
			if err != nil {
				return err
			}
			byCategory := make(map[string]models.CategoryParticipation, len(participation))
			for _, p := range participation {
				byCategory[p.Category] = p
			}

			var untapped, low []models.CategoryOpportunity
			for _, cat := range vocabulary {
				p, ok := byCategory[cat]
				if !ok || p.UniqueStudents == 0 {
					untapped = append(untapped, models.CategoryOpportunity{
						Category:       cat,
						Recommendation: "Introduce this category to department",
					})
					continue
				}
				rate := percent(p.UniqueStudents, len(students))
				if rate >= lowParticipationCap {
					continue
				}
				rec := "Increase awareness and promotion"
				if rate < highPriorityFloor {
					rec = "High-priority improvement needed"
				}
				low = append(low, models.CategoryOpportunity{
					Category:          cat,
					ParticipationRate: rate,
					ParticipantCount:  p.UniqueStudents,
					EventCount:        p.EventCount,
					Recommendation:    rec,
				})
			}

			if len(untapped) > opportunitiesLimit {
				untapped = untapped[:opportunitiesLimit]
			}
			sort.SliceStable(low, func(a, b int) bool {
				return low[a].ParticipationRate < low[b].ParticipationRate
			})
			if len(low) > opportunitiesLimit {
				low = low[:opportunitiesLimit]
			}
			if untapped == nil {
				untapped = []models.CategoryOpportunity{}
			}
			if low == nil {
				low = []models.CategoryOpportunity{}
			}

			opportunities[i] = models.DepartmentOpportunities{
				Department:                 dept,
				TotalStudents:              len(students),
				UntappedCategories:         untapped,
				LowParticipationCategories: low,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return opportunities, nil
}

// PrizeMoneyMetrics sums prize money and points over prize-bearing approved
// events per department and derives points earned per unit of prize money.
func (s *AnalyticsService) PrizeMoneyMetrics(ctx context.Context, teacher *models.Teacher, filter models.DateFilter) ([]models.DepartmentPrizeMetrics, error) {
	departments, err := s.DepartmentAccess(ctx, teacher)
	if err != nil {
		return nil, err
	}
	if len(departments) == 0 {
		return []models.DepartmentPrizeMetrics{}, nil
	}

	metrics := make([]models.DepartmentPrizeMetrics, len(departments))
	g, gctx := errgroup.WithContext(ctx)
	for i, dept := range departments {
		i, dept := i, dept
		g.Go(func() error {
			summary, err := s.eventRepo.PrizeSummary(gctx, dept, filter)
			if err != nil {
				return err
			}

			roi := 0.0
			if summary.TotalPrizeMoney > 0 {
				roi = round2(float64(summary.TotalPoints) / float64(summary.TotalPrizeMoney) * 100)
			}
			metrics[i] = models.DepartmentPrizeMetrics{
				Department:      dept,
				TotalPrizeMoney: summary.TotalPrizeMoney,
				TotalPoints:     summary.TotalPoints,
				PrizeEventCount: summary.PrizeEventCount,
				AvgPrizeMoney:   round2(summary.AvgPrizeMoney),
				ROI:             roi,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(metrics, func(a, b int) bool {
		return metrics[a].TotalPrizeMoney > metrics[b].TotalPrizeMoney
	})
	return metrics, nil
}

// FacultyPerformance joins teachers to their classes to the students in
// those classes, per department, and reports each department's top faculty
// by average student points plus the mean and population variance of the
// per-faculty averages.
func (s *AnalyticsService) FacultyPerformance(ctx context.Context, teacher *models.Teacher) ([]models.FacultyPerformanceReport, error) {
	departments, err := s.DepartmentAccess(ctx, teacher)
	if err != nil {
		return nil, err
	}
	if len(departments) == 0 {
		return []models.FacultyPerformanceReport{}, nil
	}

	reports := make([]models.FacultyPerformanceReport, len(departments))
	g, gctx := errgroup.WithContext(ctx)
	for i, dept := range departments {
		i, dept := i, dept
		g.Go(func() error {
			report, err := s.departmentFacultyReport(gctx, dept)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *AnalyticsService) departmentFacultyReport(ctx context.Context, dept string) (models.FacultyPerformanceReport, error) {
	faculty, err := s.teacherRepo.FindFacultyByDepartment(ctx, dept)
	if err != nil {
		return models.FacultyPerformanceReport{}, err
	}

	performances := make([]models.FacultyPerformance, 0, len(faculty))
	for _, f := range faculty {
		classes, err := s.classRepo.FindByFacultyOrAdvisor(ctx, dept, f.ID)
		if err != nil {
			return models.FacultyPerformanceReport{}, err
		}

		perf := models.FacultyPerformance{
			ID:         f.ID,
			Name:       f.Name,
			Email:      f.Email,
			Role:       f.Role,
			ClassCount: len(classes),
		}
		if len(classes) > 0 {
			classIDs := make([]string, len(classes))
			for j, c := range classes {
				classIDs[j] = c.ID
			}
			students, err := s.studentRepo.FindByClassRefs(ctx, dept, classIDs)
			if err != nil {
				return models.FacultyPerformanceReport{}, err
			}
			perf.TotalStudents = len(students)
			for _, st := range students {
				perf.TotalPoints += st.TotalPoints
			}
			if perf.TotalStudents > 0 {
				perf.AvgPoints = round1(float64(perf.TotalPoints) / float64(perf.TotalStudents))
			}
		}
		performances = append(performances, perf)
	}

	// Averages, variance and the top list only consider faculty who
	// actually have students; a faculty without a roster never ranks.
	var valid []models.FacultyPerformance
	for _, p := range performances {
		if p.TotalStudents > 0 {
			valid = append(valid, p)
		}
	}

	mean := 0.0
	variance := 0.0
	if len(valid) > 0 {
		sum := 0.0
		for _, p := range valid {
			sum += p.AvgPoints
		}
		mean = round1(sum / float64(len(valid)))
	}
	if len(valid) > 1 {
		sumSq := 0.0
		for _, p := range valid {
			d := p.AvgPoints - mean
			sumSq += d * d
		}
		variance = round1(sumSq / float64(len(valid)))
	}

	sort.SliceStable(valid, func(a, b int) bool {
		return valid[a].AvgPoints > valid[b].AvgPoints
	})
	top := valid
	if len(top) > topFacultyLimit {
		top = top[:topFacultyLimit]
	}
	if top == nil {
		top = []models.FacultyPerformance{}
	}

	return models.FacultyPerformanceReport{
		Department:          dept,
		FacultyCount:        len(faculty),
		TopFaculty:          top,
		AvgClassPerformance: mean,
		ClassVariance:       variance,
	}, nil
}

// CollaborationMetrics scores every unordered pair of visible departments
// by counting the year-months in which both ran at least one approved event
// in the same category. The score is a co-occurrence count, deliberately not
// normalized by event volume.
func (s *AnalyticsService) CollaborationMetrics(ctx context.Context, teacher *models.Teacher) (models.CollaborationReport, error) {
	departments, err := s.DepartmentAccess(ctx, teacher)
	if err != nil {
		return models.CollaborationReport{}, err
	}
	if len(departments) == 0 {
		return models.CollaborationReport{
			CollaborationMatrix: []models.CollaborationPair{},
			DepartmentMetrics:   []models.DepartmentCollaboration{},
		}, nil
	}

	// category -> year-month -> event count, per department.
	activity := make([]map[string]map[string]int, len(departments))
	eventCounts := make([]int, len(departments))

	g, gctx := errgroup.WithContext(ctx)
	for i, dept := range departments {
		i, dept := i, dept
		g.Go(func() error {
			events, err := s.eventRepo.FindApprovedByDepartment(gctx, dept)
			if err != nil {
				return err
			}

			byCategory := make(map[string]map[string]int)
			for _, ev := range events {
				month := fmt.Sprintf("%d-%02d", ev.Date.Year(), int(ev.Date.Month()))
				if byCategory[ev.Category] == nil {
					byCategory[ev.Category] = make(map[string]int)
				}
				byCategory[ev.Category][month]++
			}
			activity[i] = byCategory
			eventCounts[i] = len(events)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.CollaborationReport{}, err
	}

	var matrix []models.CollaborationPair
	for i := 0; i < len(departments); i++ {
		for j := i + 1; j < len(departments); j++ {
			score := 0
			shared := 0
			for cat, months := range activity[i] {
				other, ok := activity[j][cat]
				if !ok {
					continue
				}
				shared++
				for month := range months {
					if other[month] > 0 {
						score++
					}
				}
			}

			level := "Low"
			switch {
			case score > 5:
				level = "High"
			case score > 2:
				level = "Medium"
			}
			matrix = append(matrix, models.CollaborationPair{
				Department1:        departments[i],
				Department2:        departments[j],
				CollaborationScore: score,
				SharedCategories:   shared,
				CollaborationLevel: level,
			})
		}
	}
	sort.SliceStable(matrix, func(a, b int) bool {
		return matrix[a].CollaborationScore > matrix[b].CollaborationScore
	})
	if matrix == nil {
		matrix = []models.CollaborationPair{}
	}

	deptMetrics := make([]models.DepartmentCollaboration, len(departments))
	for i, dept := range departments {
		deptMetrics[i] = models.DepartmentCollaboration{
			Department:     dept,
			CategoryTiming: activity[i],
			EventCount:     eventCounts[i],
		}
	}

	return models.CollaborationReport{
		CollaborationMatrix: matrix,
		DepartmentMetrics:   deptMetrics,
	}, nil
}
