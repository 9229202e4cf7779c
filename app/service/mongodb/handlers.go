package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	models "leaderboard-analytics/app/models/mongodb"
	repo "leaderboard-analytics/app/repository/mongodb"
)

// teacherFromContext pulls the authenticated teacher the middleware stored
// under c.Locals("teacher").
func teacherFromContext(c *fiber.Ctx) (*models.Teacher, error) {
	raw := c.Locals("teacher")
	if raw == nil {
		return nil, errors.New("unauthorized: teacher missing in context")
	}
	teacher, ok := raw.(*models.Teacher)
	if !ok {
		return nil, errors.New("server error: teacher context has unexpected type")
	}
	return teacher, nil
}

// parseDateFilter reads the optional startDate/endDate query parameters
// (YYYY-MM-DD).
func parseDateFilter(c *fiber.Ctx) (models.DateFilter, error) {
	var filter models.DateFilter
	if raw := c.Query("startDate"); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, errors.New("invalid startDate, expected YYYY-MM-DD")
		}
		filter.Start = &start
	}
	if raw := c.Query("endDate"); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, errors.New("invalid endDate, expected YYYY-MM-DD")
		}
		filter.End = &end
	}
	return filter, nil
}

func respondData(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

func (s *AnalyticsService) GetDepartmentOverview(c *fiber.Ctx) error {
	teacher, err := teacherFromContext(c)
	if err != nil {
		return respondError(c, 401, err.Error())
	}
	filter, err := parseDateFilter(c)
	if err != nil {
		return respondError(c, 400, err.Error())
	}

	report, err := s.DepartmentOverview(c.Context(), teacher, filter)
	if err != nil {
		return respondError(c, 500, "Failed to get department overview")
	}
	return respondData(c, report)
}

func (s *AnalyticsService) GetPerformanceComparison(c *fiber.Ctx) error {
	teacher, err := teacherFromContext(c)
	if err != nil {
		return respondError(c, 401, err.Error())
	}

	performance, err := s.PerformanceComparison(c.Context(), teacher)
	if err != nil {
		return respondError(c, 500, "Failed to get performance comparison")
	}
	return respondData(c, performance)
}

func (s *AnalyticsService) GetActivityHeatmap(c *fiber.Ctx) error {
	teacher, err := teacherFromContext(c)
	if err != nil {
		return respondError(c, 401, err.Error())
	}

	months := c.QueryInt("months", 12)
	if months < 1 {
		months = 12
	}
	heatmap, err := s.ActivityHeatmap(c.Context(), teacher, months)
	if err != nil {
		return respondError(c, 500, "Failed to get activity heatmap")
	}
	return respondData(c, heatmap)
}

func (s *AnalyticsService) GetDepartmentRankings(c *fiber.Ctx) error {
	teacher, err := teacherFromContext(c)
	if err != nil {
		return respondError(c, 401, err.Error())
	}

	rankings, err := s.DepartmentRankings(c.Context(), teacher)
	if err != nil {
		return respondError(c, 500, "Failed to get department rankings")
	}
	return respondData(c, rankings)
}

func (s *AnalyticsService) GetCategoryAnalysis(c *fiber.Ctx) error {
	teacher, err := teacherFromContext(c)
	if err != nil {
		return respondError(c, 401, err.Error())
	}
	filter, err := parseDateFilter(c)
	if err != nil {
		return respondError(c, 400, err.Error())
	}

	report, err := s.CategoryAnalysis(c.Context(), teacher, filter)
	if err != nil {
		return respondError(c, 500, "Failed to get category analysis")
	}
	return respondData(c, report)
}

func (s *AnalyticsService) GetPrizeMoneyMetrics(c *fiber.Ctx) error {
	teacher, err := teacherFromContext(c)
	if err != nil {
		return respondError(c, 401, err.Error())
	}
	filter, err := parseDateFilter(c)
	if err != nil {
		return respondError(c, 400, err.Error())
	}

	metrics, err := s.PrizeMoneyMetrics(c.Context(), teacher, filter)
	if err != nil {
		return respondError(c, 500, "Failed to get prize money metrics")
	}
	return respondData(c, metrics)
}

func (s *AnalyticsService) GetFacultyPerformance(c *fiber.Ctx) error {
	teacher, err := teacherFromContext(c)
	if err != nil {
		return respondError(c, 401, err.Error())
	}

	reports, err := s.FacultyPerformance(c.Context(), teacher)
	if err != nil {
		return respondError(c, 500, "Failed to get faculty performance")
	}
	return respondData(c, reports)
}

func (s *AnalyticsService) GetUntappedOpportunities(c *fiber.Ctx) error {
	teacher, err := teacherFromContext(c)
	if err != nil {
		return respondError(c, 401, err.Error())
	}

	opportunities, err := s.UntappedOpportunities(c.Context(), teacher)
	if err != nil {
		return respondError(c, 500, "Failed to get untapped opportunities")
	}
	return respondData(c, opportunities)
}

func (s *AnalyticsService) GetEngagementPatterns(c *fiber.Ctx) error {
	teacher, err := teacherFromContext(c)
	if err != nil {
		return respondError(c, 401, err.Error())
	}

	timeframe := c.Query("timeframe", repo.TimeframeMonthly)
	periods := c.QueryInt("periods", 12)
	if periods < 1 {
		periods = 12
	}
	report, err := s.EngagementPatterns(c.Context(), teacher, timeframe, periods)
	if err != nil {
		return respondError(c, 500, "Failed to get engagement patterns")
	}
	return respondData(c, report)
}

func (s *AnalyticsService) GetCollaborationMetrics(c *fiber.Ctx) error {
	teacher, err := teacherFromContext(c)
	if err != nil {
		return respondError(c, 401, err.Error())
	}

	report, err := s.CollaborationMetrics(c.Context(), teacher)
	if err != nil {
		return respondError(c, 500, "Failed to get collaboration metrics")
	}
	return respondData(c, report)
}

func (s *AnalyticsService) GetComprehensiveDashboard(c *fiber.Ctx) error {
	teacher, err := teacherFromContext(c)
	if err != nil {
		return respondError(c, 401, err.Error())
	}
	filter, err := parseDateFilter(c)
	if err != nil {
		return respondError(c, 400, err.Error())
	}

	report := s.ComprehensiveDashboard(c.Context(), teacher, filter)
	return respondData(c, report)
}

func (s *AnalyticsService) GetDepartmentSummary(c *fiber.Ctx) error {
	teacher, err := teacherFromContext(c)
	if err != nil {
		return respondError(c, 401, err.Error())
	}

	summary, err := s.DepartmentSummary(c.Context(), teacher)
	if err != nil {
		return respondError(c, 500, "Failed to get department summary")
	}
	return respondData(c, summary)
}
