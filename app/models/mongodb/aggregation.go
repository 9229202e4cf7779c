package models

// Row shapes decoded from event aggregation pipelines.

// PeriodBucket is one grouped calendar bucket of approved events. For
// monthly grouping Period is the month number (1-12); for weekly grouping
// it is the ISO-8601 week number.
type PeriodBucket struct {
	Period         int `bson:"period" json:"period"`
	Year           int `bson:"year" json:"year"`
	Count          int `bson:"count" json:"count"`
	Points         int `bson:"points" json:"points"`
	UniqueStudents int `bson:"uniqueStudents" json:"uniqueStudents"`
}

// CategoryParticipation is the distinct-participant count for one category.
type CategoryParticipation struct {
	Category       string `bson:"category" json:"category"`
	UniqueStudents int    `bson:"uniqueStudents" json:"uniqueStudents"`
	EventCount     int    `bson:"eventCount" json:"eventCount"`
}

// PrizeSummary aggregates events carrying prize money for one department.
type PrizeSummary struct {
	TotalPrizeMoney int     `bson:"totalPrizeMoney" json:"totalPrizeMoney"`
	TotalPoints     int     `bson:"totalPoints" json:"totalPoints"`
	PrizeEventCount int     `bson:"prizeEventCount" json:"prizeEventCount"`
	AvgPrizeMoney   float64 `bson:"avgPrizeMoney" json:"avgPrizeMoney"`
}
