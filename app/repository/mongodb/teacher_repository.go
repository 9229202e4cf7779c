package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "leaderboard-analytics/app/models/mongodb"
)

type TeacherRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Teacher, error)
	FindFacultyByDepartment(ctx context.Context, department string) ([]models.Teacher, error)
}

type teacherRepository struct {
	coll *mongo.Collection
}

func NewTeacherRepository(db *mongo.Database) TeacherRepository {
	return &teacherRepository{coll: db.Collection("teachers")}
}

func (r *teacherRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&teacher)
	if err != nil {
		return nil, fmt.Errorf("find teacher %s: %w", id, err)
	}
	return &teacher, nil
}

func (r *teacherRepository) FindFacultyByDepartment(ctx context.Context, department string) ([]models.Teacher, error) {
	filter := bson.M{
		"department": department,
		"role":       bson.M{"$in": []models.Role{models.RoleFaculty, models.RoleAcademicAdvisor}},
	}
	opts := options.Find().SetProjection(bson.M{
		"name":    1,
		"email":   1,
		"role":    1,
		"classes": 1,
	})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find faculty of %s: %w", department, err)
	}

	var teachers []models.Teacher
	if err := cursor.All(ctx, &teachers); err != nil {
		return nil, fmt.Errorf("decode faculty of %s: %w", department, err)
	}
	return teachers, nil
}
