package route

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"

	models "leaderboard-analytics/app/models/mongodb"
	repo "leaderboard-analytics/app/repository/mongodb"
	service "leaderboard-analytics/app/service/mongodb"
	"leaderboard-analytics/middleware"
)

// SetupAnalyticsRoutes wires repositories, the analytics service and the
// auth middleware into the department analytics endpoints. Every route is
// read-only and restricted to HOD and above.
func SetupAnalyticsRoutes(app *fiber.App, db *mongo.Database) {
	// Repositories
	studentRepo := repo.NewStudentRepository(db)
	eventRepo := repo.NewEventRepository(db)
	teacherRepo := repo.NewTeacherRepository(db)
	classRepo := repo.NewClassRepository(db)

	// Service
	analytics := service.NewAnalyticsService(studentRepo, eventRepo, teacherRepo, classRepo)

	api := app.Group("/api/department-analytics",
		middleware.AuthRequired(teacherRepo),
		middleware.RoleAtLeast(models.RoleHOD))

	RegisterAnalyticsRoutes(api, analytics)
}

// RegisterAnalyticsRoutes mounts the analytics endpoints on an
// already-guarded router.
func RegisterAnalyticsRoutes(api fiber.Router, analytics *service.AnalyticsService) {
	api.Get("/overview", analytics.GetDepartmentOverview)
	api.Get("/performance-comparison", analytics.GetPerformanceComparison)
	api.Get("/activity-heatmap", analytics.GetActivityHeatmap)
	api.Get("/rankings", analytics.GetDepartmentRankings)
	api.Get("/category-analysis", analytics.GetCategoryAnalysis)
	api.Get("/prize-money-metrics", analytics.GetPrizeMoneyMetrics)
	api.Get("/faculty-performance", analytics.GetFacultyPerformance)
	api.Get("/untapped-opportunities", analytics.GetUntappedOpportunities)
	api.Get("/engagement-patterns", analytics.GetEngagementPatterns)
	api.Get("/collaboration-metrics", analytics.GetCollaborationMetrics)
	api.Get("/dashboard", analytics.GetComprehensiveDashboard)
	api.Get("/summary", analytics.GetDepartmentSummary)
}
