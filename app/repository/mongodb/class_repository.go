package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	models "leaderboard-analytics/app/models/mongodb"
)

type ClassRepository interface {
	FindByFacultyOrAdvisor(ctx context.Context, department, teacherID string) ([]models.Class, error)
}

type classRepository struct {
	coll *mongo.Collection
}

func NewClassRepository(db *mongo.Database) ClassRepository {
	return &classRepository{coll: db.Collection("classes")}
}

func (r *classRepository) FindByFacultyOrAdvisor(ctx context.Context, department, teacherID string) ([]models.Class, error) {
	filter := bson.M{
		"department": department,
		"$or": []bson.M{
			{"facultyAssigned": teacherID},
			{"academicAdvisors": teacherID},
		},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find classes of teacher %s: %w", teacherID, err)
	}

	var classes []models.Class
	if err := cursor.All(ctx, &classes); err != nil {
		return nil, fmt.Errorf("decode classes of teacher %s: %w", teacherID, err)
	}
	return classes, nil
}
