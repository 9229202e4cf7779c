package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "leaderboard-analytics/app/models/mongodb"
)

// Timeframe values accepted by EngagementBuckets.
const (
	TimeframeWeekly  = "weekly"
	TimeframeMonthly = "monthly"
)

type EventRepository interface {
	CountApproved(ctx context.Context, department string, filter models.DateFilter) (int64, error)
	CountApprovedInRange(ctx context.Context, department string, from, to time.Time) (int64, error)
	CountApprovedInDepartments(ctx context.Context, departments []string) (int64, error)
	SumPointsInRange(ctx context.Context, department string, from, to time.Time) (int, error)
	MonthlyActivity(ctx context.Context, department string, since time.Time) ([]models.PeriodBucket, error)
	EngagementBuckets(ctx context.Context, department, timeframe string, since time.Time) ([]models.PeriodBucket, error)
	CategoryBreakdown(ctx context.Context, department string, filter models.DateFilter) ([]models.CategoryStat, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	CategoryParticipation(ctx context.Context, studentIDs []string) ([]models.CategoryParticipation, error)
	PrizeSummary(ctx context.Context, department string, filter models.DateFilter) (models.PrizeSummary, error)
	FindApprovedByDepartment(ctx context.Context, department string) ([]models.Event, error)
}

type eventRepository struct {
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) EventRepository {
	return &eventRepository{coll: db.Collection("events")}
}

// approvedMatch builds the base filter every analytics query starts from.
func approvedMatch(department string) bson.M {
	return bson.M{
		"department": department,
		"status":     models.EventStatusApproved,
	}
}

func dateCondition(filter models.DateFilter) bson.M {
	cond := bson.M{}
	if filter.Start != nil {
		cond["$gte"] = *filter.Start
	}
	if filter.End != nil {
		cond["$lte"] = *filter.End
	}
	return cond
}

func (r *eventRepository) CountApproved(ctx context.Context, department string, filter models.DateFilter) (int64, error) {
	match := approvedMatch(department)
	if !filter.IsZero() {
		match["date"] = dateCondition(filter)
	}

	count, err := r.coll.CountDocuments(ctx, match)
	if err != nil {
		return 0, fmt.Errorf("count approved events: %w", err)
	}
	return count, nil
}

func (r *eventRepository) CountApprovedInRange(ctx context.Context, department string, from, to time.Time) (int64, error) {
	match := approvedMatch(department)
	match["date"] = bson.M{"$gte": from, "$lt": to}

	count, err := r.coll.CountDocuments(ctx, match)
	if err != nil {
		return 0, fmt.Errorf("count approved events in range: %w", err)
	}
	return count, nil
}

func (r *eventRepository) CountApprovedInDepartments(ctx context.Context, departments []string) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{
		"department": bson.M{"$in": departments},
		"status":     models.EventStatusApproved,
	})
	if err != nil {
		return 0, fmt.Errorf("count approved events across departments: %w", err)
	}
	return count, nil
}

func (r *eventRepository) SumPointsInRange(ctx context.Context, department string, from, to time.Time) (int, error) {
	match := approvedMatch(department)
	match["date"] = bson.M{"$gte": from, "$lt": to}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":         nil,
			"totalPoints": bson.M{"$sum": "$pointsEarned"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("sum points in range: %w", err)
	}

	var rows []struct {
		TotalPoints int `bson:"totalPoints"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("decode points sum: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].TotalPoints, nil
}

func (r *eventRepository) MonthlyActivity(ctx context.Context, department string, since time.Time) ([]models.PeriodBucket, error) {
	match := approvedMatch(department)
	match["date"] = bson.M{"$gte": since}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"month": bson.M{"$month": "$date"},
				"year":  bson.M{"$year": "$date"},
			},
			"count":  bson.M{"$sum": 1},
			"points": bson.M{"$sum": "$pointsEarned"},
		}}},
		{{Key: "$project", Value: bson.M{
			"period": "$_id.month",
			"year":   "$_id.year",
			"count":  1,
			"points": 1,
			"_id":    0,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "year", Value: 1}, {Key: "period", Value: 1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("monthly activity: %w", err)
	}

	var buckets []models.PeriodBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("decode monthly activity: %w", err)
	}
	return buckets, nil
}

func (r *eventRepository) EngagementBuckets(ctx context.Context, department, timeframe string, since time.Time) ([]models.PeriodBucket, error) {
	match := approvedMatch(department)
	match["date"] = bson.M{"$gte": since}

	// ISO-8601 week numbering: the week containing the first Thursday
	// of the year is week 1.
	groupID := bson.M{
		"period": bson.M{"$isoWeek": "$date"},
		"year":   bson.M{"$isoWeekYear": "$date"},
	}
	if timeframe != TimeframeWeekly {
		groupID = bson.M{
			"period": bson.M{"$month": "$date"},
			"year":   bson.M{"$year": "$date"},
		}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":            groupID,
			"count":          bson.M{"$sum": 1},
			"points":         bson.M{"$sum": "$pointsEarned"},
			"uniqueStudents": bson.M{"$addToSet": "$submittedBy"},
		}}},
		{{Key: "$project", Value: bson.M{
			"period":         "$_id.period",
			"year":           "$_id.year",
			"count":          1,
			"points":         1,
			"uniqueStudents": bson.M{"$size": "$uniqueStudents"},
			"_id":            0,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "year", Value: 1}, {Key: "period", Value: 1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("engagement buckets: %w", err)
	}

	var buckets []models.PeriodBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("decode engagement buckets: %w", err)
	}
	return buckets, nil
}

func (r *eventRepository) CategoryBreakdown(ctx context.Context, department string, filter models.DateFilter) ([]models.CategoryStat, error) {
	match := approvedMatch(department)
	if !filter.IsZero() {
		match["date"] = dateCondition(filter)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":            "$category",
			"count":          bson.M{"$sum": 1},
			"points":         bson.M{"$sum": "$pointsEarned"},
			"uniqueStudents": bson.M{"$addToSet": "$submittedBy"},
		}}},
		{{Key: "$project", Value: bson.M{
			"category":       "$_id",
			"count":          1,
			"points":         1,
			"uniqueStudents": bson.M{"$size": "$uniqueStudents"},
			"_id":            0,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}

	var stats []models.CategoryStat
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("decode category breakdown: %w", err)
	}
	return stats, nil
}

func (r *eventRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "category", bson.M{"status": models.EventStatusApproved})
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if cat, ok := v.(string); ok && cat != "" {
			categories = append(categories, cat)
		}
	}
	return categories, nil
}

func (r *eventRepository) CategoryParticipation(ctx context.Context, studentIDs []string) ([]models.CategoryParticipation, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"submittedBy": bson.M{"$in": studentIDs},
			"status":      models.EventStatusApproved,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":            "$category",
			"uniqueStudents": bson.M{"$addToSet": "$submittedBy"},
			"eventCount":     bson.M{"$sum": 1},
		}}},
		{{Key: "$project", Value: bson.M{
			"category":       "$_id",
			"uniqueStudents": bson.M{"$size": "$uniqueStudents"},
			"eventCount":     1,
			"_id":            0,
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("category participation: %w", err)
	}

	var rows []models.CategoryParticipation
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode category participation: %w", err)
	}
	return rows, nil
}

func (r *eventRepository) PrizeSummary(ctx context.Context, department string, filter models.DateFilter) (models.PrizeSummary, error) {
	match := approvedMatch(department)
	match["prizeMoney"] = bson.M{"$gt": 0}
	if !filter.IsZero() {
		match["date"] = dateCondition(filter)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":             nil,
			"totalPrizeMoney": bson.M{"$sum": "$prizeMoney"},
			"totalPoints":     bson.M{"$sum": "$pointsEarned"},
			"prizeEventCount": bson.M{"$sum": 1},
			"avgPrizeMoney":   bson.M{"$avg": "$prizeMoney"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.PrizeSummary{}, fmt.Errorf("prize summary: %w", err)
	}

	var rows []models.PrizeSummary
	if err := cursor.All(ctx, &rows); err != nil {
		return models.PrizeSummary{}, fmt.Errorf("decode prize summary: %w", err)
	}
	if len(rows) == 0 {
		return models.PrizeSummary{}, nil
	}
	return rows[0], nil
}

func (r *eventRepository) FindApprovedByDepartment(ctx context.Context, department string) ([]models.Event, error) {
	opts := options.Find().SetProjection(bson.M{
		"eventName":   1,
		"category":    1,
		"date":        1,
		"submittedBy": 1,
	})

	cursor, err := r.coll.Find(ctx, approvedMatch(department), opts)
	if err != nil {
		return nil, fmt.Errorf("find approved events of %s: %w", department, err)
	}

	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode approved events of %s: %w", department, err)
	}
	return events, nil
}
