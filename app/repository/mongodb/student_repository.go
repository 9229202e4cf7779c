package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "leaderboard-analytics/app/models/mongodb"
)

type StudentRepository interface {
	DistinctDepartments(ctx context.Context) ([]string, error)
	FindByDepartment(ctx context.Context, department string) ([]models.Student, error)
	FindByClassRefs(ctx context.Context, department string, classIDs []string) ([]models.Student, error)
	CountByDepartments(ctx context.Context, departments []string) (int64, error)
	AveragePointsByDepartments(ctx context.Context, departments []string) (float64, error)
}

type studentRepository struct {
	coll *mongo.Collection
}

func NewStudentRepository(db *mongo.Database) StudentRepository {
	return &studentRepository{coll: db.Collection("students")}
}

func (r *studentRepository) DistinctDepartments(ctx context.Context) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "department", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct departments: %w", err)
	}

	departments := make([]string, 0, len(values))
	for _, v := range values {
		if dept, ok := v.(string); ok && dept != "" {
			departments = append(departments, dept)
		}
	}
	return departments, nil
}

func (r *studentRepository) FindByDepartment(ctx context.Context, department string) ([]models.Student, error) {
	opts := options.Find().SetProjection(bson.M{
		"name":               1,
		"department":         1,
		"totalPoints":        1,
		"eventsParticipated": 1,
		"currentClass":       1,
	})

	cursor, err := r.coll.Find(ctx, bson.M{"department": department}, opts)
	if err != nil {
		return nil, fmt.Errorf("find students of %s: %w", department, err)
	}

	var students []models.Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, fmt.Errorf("decode students of %s: %w", department, err)
	}
	return students, nil
}

func (r *studentRepository) FindByClassRefs(ctx context.Context, department string, classIDs []string) ([]models.Student, error) {
	filter := bson.M{
		"department":       department,
		"currentClass.ref": bson.M{"$in": classIDs},
	}
	opts := options.Find().SetProjection(bson.M{"totalPoints": 1})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find students by class refs: %w", err)
	}

	var students []models.Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, fmt.Errorf("decode students by class refs: %w", err)
	}
	return students, nil
}

func (r *studentRepository) CountByDepartments(ctx context.Context, departments []string) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"department": bson.M{"$in": departments}})
	if err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return count, nil
}

func (r *studentRepository) AveragePointsByDepartments(ctx context.Context, departments []string) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"department": bson.M{"$in": departments}}}},
		{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"avgPoints": bson.M{"$avg": "$totalPoints"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("average points: %w", err)
	}

	var rows []struct {
		AvgPoints float64 `bson:"avgPoints"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("decode average points: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].AvgPoints, nil
}
