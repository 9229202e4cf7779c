package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	models "leaderboard-analytics/app/models/mongodb"
	repo "leaderboard-analytics/app/repository/mongodb"
	"leaderboard-analytics/utils"
)

// AuthRequired validates the Bearer token and loads the teacher it belongs
// to into c.Locals("teacher"). The database lookup means role or department
// changes take effect on the next request, not at token expiry.
func AuthRequired(teachers repo.TeacherRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(401).JSON(fiber.Map{
				"success": false,
				"message": "Missing or malformed token",
			})
		}

		claims, err := utils.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(401).JSON(fiber.Map{
				"success": false,
				"message": "Invalid or expired token",
			})
		}

		teacherID, err := uuid.Parse(claims.TeacherID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{
				"success": false,
				"message": "Invalid token subject",
			})
		}

		teacher, err := teachers.FindByID(c.Context(), teacherID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{
				"success": false,
				"message": "Teacher not found",
			})
		}

		c.Locals("teacher", teacher)
		return c.Next()
	}
}

// RoleAtLeast rejects callers below the given role in the hierarchy.
func RoleAtLeast(minimum models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teacher, ok := c.Locals("teacher").(*models.Teacher)
		if !ok {
			return c.Status(401).JSON(fiber.Map{
				"success": false,
				"message": "Missing or malformed token",
			})
		}
		if !teacher.Role.AtLeast(minimum) {
			return c.Status(403).JSON(fiber.Map{
				"success": false,
				"message": "Access denied. Insufficient permissions.",
			})
		}
		return c.Next()
	}
}
