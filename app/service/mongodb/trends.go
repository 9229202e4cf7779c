package service

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	models "leaderboard-analytics/app/models/mongodb"
	repo "leaderboard-analytics/app/repository/mongodb"
)

type bucketKey struct {
	year   int
	period int
}

// ActivityHeatmap returns per-department approved-event counts for the last
// `months` calendar months, current month included. Labels are generated
// independently of the data, so a department with no events still carries a
// full, zero-filled series of exactly `months` points.
func (s *AnalyticsService) ActivityHeatmap(ctx context.Context, teacher *models.Teacher, months int) (models.ActivityHeatmap, error) {
	departments, err := s.DepartmentAccess(ctx, teacher)
	if err != nil {
		return models.ActivityHeatmap{}, err
	}
	if len(departments) == 0 {
		return models.ActivityHeatmap{
			HeatmapData: []models.HeatmapSeries{},
			MonthLabels: []string{},
		}, nil
	}

	anchors := monthAxis(time.Now(), months)
	labels := make([]string, len(anchors))
	for i, a := range anchors {
		labels[i] = monthLabel(a)
	}
	since := anchors[0]

	series := make([]models.HeatmapSeries, len(departments))
	g, gctx := errgroup.WithContext(ctx)
	for i, dept := range departments {
		i, dept := i, dept
		g.Go(func() error {
			buckets, err := s.eventRepo.MonthlyActivity(gctx, dept, since)
			if err != nil {
				return err
			}

			byKey := make(map[bucketKey]models.PeriodBucket, len(buckets))
			for _, b := range buckets {
				byKey[bucketKey{b.Year, b.Period}] = b
			}

			data := make([]int, len(anchors))
			for j, a := range anchors {
				data[j] = byKey[bucketKey{a.Year(), int(a.Month())}].Count
			}
			series[i] = models.HeatmapSeries{Department: dept, Data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.ActivityHeatmap{}, err
	}

	return models.ActivityHeatmap{HeatmapData: series, MonthLabels: labels}, nil
}

// EngagementPatterns groups approved events into weekly or monthly buckets
// over the last `periods` buckets, tracking event count, points and distinct
// submitters per bucket. Series are dense: every label gets a point.
func (s *AnalyticsService) EngagementPatterns(ctx context.Context, teacher *models.Teacher, timeframe string, periods int) (models.EngagementReport, error) {
	departments, err := s.DepartmentAccess(ctx, teacher)
	if err != nil {
		return models.EngagementReport{}, err
	}
	if len(departments) == 0 {
		return models.EngagementReport{
			Patterns:   []models.DepartmentEngagement{},
			TimeLabels: []string{},
		}, nil
	}

	now := time.Now()
	var anchors []time.Time
	var since time.Time
	var keyOf func(time.Time) bucketKey
	var labelOf func(time.Time) string

	if timeframe == repo.TimeframeWeekly {
		anchors = weekAxis(now, periods)
		since = weekStart(anchors[0])
		keyOf = func(t time.Time) bucketKey {
			year, week := t.ISOWeek()
			return bucketKey{year, week}
		}
		labelOf = weekLabel
	} else {
		anchors = monthAxis(now, periods)
		since = anchors[0]
		keyOf = func(t time.Time) bucketKey {
			return bucketKey{t.Year(), int(t.Month())}
		}
		labelOf = monthLabel
	}

	labels := make([]string, len(anchors))
	for i, a := range anchors {
		labels[i] = labelOf(a)
	}

	patterns := make([]models.DepartmentEngagement, len(departments))
	g, gctx := errgroup.WithContext(ctx)
	for i, dept := range departments {
		i, dept := i, dept
		g.Go(func() error {
			buckets, err := s.eventRepo.EngagementBuckets(gctx, dept, timeframe, since)
			if err != nil {
				return err
			}

			byKey := make(map[bucketKey]models.PeriodBucket, len(buckets))
			for _, b := range buckets {
				byKey[bucketKey{b.Year, b.Period}] = b
			}

			points := make([]models.EngagementPoint, len(anchors))
			for j, a := range anchors {
				b := byKey[keyOf(a)]
				points[j] = models.EngagementPoint{
					Period:         labels[j],
					Count:          b.Count,
					Points:         b.Points,
					UniqueStudents: b.UniqueStudents,
				}
			}
			patterns[i] = models.DepartmentEngagement{Department: dept, Engagement: points}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.EngagementReport{}, err
	}

	return models.EngagementReport{Patterns: patterns, TimeLabels: labels}, nil
}

// DepartmentRankings compares the current calendar month against the
// previous one per department and ranks departments by lifetime average
// points.
func (s *AnalyticsService) DepartmentRankings(ctx context.Context, teacher *models.Teacher) ([]models.DepartmentRanking, error) {
	departments, err := s.DepartmentAccess(ctx, teacher)
	if err != nil {
		return nil, err
	}
	if len(departments) == 0 {
		return []models.DepartmentRanking{}, nil
	}

	currentStart := monthStart(time.Now())
	nextStart := currentStart.AddDate(0, 1, 0)
	previousStart := currentStart.AddDate(0, -1, 0)

	rankings := make([]models.DepartmentRanking, len(departments))
	g, gctx := errgroup.WithContext(ctx)
	for i, dept := range departments {
		i, dept := i, dept
		g.Go(func() error {
			currentEvents, err := s.eventRepo.CountApprovedInRange(gctx, dept, currentStart, nextStart)
			if err != nil {
				return err
			}
			currentPoints, err := s.eventRepo.SumPointsInRange(gctx, dept, currentStart, nextStart)
			if err != nil {
				return err
			}
			previousEvents, err := s.eventRepo.CountApprovedInRange(gctx, dept, previousStart, currentStart)
			if err != nil {
				return err
			}
			previousPoints, err := s.eventRepo.SumPointsInRange(gctx, dept, previousStart, currentStart)
			if err != nil {
				return err
			}
			students, err := s.studentRepo.FindByDepartment(gctx, dept)
			if err != nil {
				return err
			}

			stats := summarizeStudents(students)
			rankings[i] = models.DepartmentRanking{
				Department:          dept,
				AveragePoints:       stats.averagePoints,
				TotalPoints:         stats.totalPoints,
				StudentCount:        stats.count,
				CurrentMonthEvents:  int(currentEvents),
				PreviousMonthEvents: int(previousEvents),
				EventGrowth:         growthPercent(int(currentEvents), int(previousEvents)),
				PointsGrowth:        growthPercent(currentPoints, previousPoints),
				SubmissionRate:      percent(int(currentEvents), stats.count),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(rankings, func(a, b int) bool {
		return rankings[a].AveragePoints > rankings[b].AveragePoints
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
		rankings[i].OutOf = len(rankings)
	}
	return rankings, nil
}
