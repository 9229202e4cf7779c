package models

import "time"

// Result models for department analytics. None of these are persisted;
// every report is built fresh per request and discarded after serialization.

type DepartmentOverview struct {
	Department             string  `json:"department"`
	StudentCount           int     `json:"studentCount"`
	TotalPoints            int     `json:"totalPoints"`
	AveragePoints          float64 `json:"averagePoints"`
	EventCount             int     `json:"eventCount"`
	ParticipationRate      int     `json:"participationRate"`
	AchievementRate        int     `json:"achievementRate"`
	StudentsWithActivities int     `json:"studentsWithActivities"`
	StudentsWithPoints     int     `json:"studentsWithPoints"`
}

type OverallMetrics struct {
	TotalStudents            int `json:"totalStudents"`
	TotalPoints              int `json:"totalPoints"`
	TotalEvents              int `json:"totalEvents"`
	AverageParticipationRate int `json:"averageParticipationRate"`
}

type OverviewReport struct {
	Error            string               `json:"error,omitempty"`
	Departments      []DepartmentOverview `json:"departments"`
	TotalDepartments int                  `json:"totalDepartments"`
	OverallMetrics   OverallMetrics       `json:"overallMetrics"`
}

type DepartmentPerformance struct {
	Department        string  `json:"department"`
	AveragePoints     float64 `json:"averagePoints"`
	ParticipationRate int     `json:"participationRate"`
	StudentCount      int     `json:"studentCount"`
	TotalPoints       int     `json:"totalPoints"`
}

type HeatmapSeries struct {
	Department string `json:"department"`
	Data       []int  `json:"data"`
}

type ActivityHeatmap struct {
	HeatmapData []HeatmapSeries `json:"heatmapData"`
	MonthLabels []string        `json:"monthLabels"`
}

type DepartmentRanking struct {
	Department          string  `json:"department"`
	AveragePoints       float64 `json:"averagePoints"`
	TotalPoints         int     `json:"totalPoints"`
	StudentCount        int     `json:"studentCount"`
	CurrentMonthEvents  int     `json:"currentMonthEvents"`
	PreviousMonthEvents int     `json:"previousMonthEvents"`
	EventGrowth         int     `json:"eventGrowth"`
	PointsGrowth        int     `json:"pointsGrowth"`
	SubmissionRate      int     `json:"submissionRate"`
	Rank                int     `json:"rank"`
	OutOf               int     `json:"outOf"`
}

type CategoryStat struct {
	Category       string `bson:"category" json:"category"`
	Count          int    `bson:"count" json:"count"`
	Points         int    `bson:"points" json:"points"`
	UniqueStudents int    `bson:"uniqueStudents" json:"uniqueStudents"`
}

type DepartmentCategories struct {
	Department string         `json:"department"`
	Categories []CategoryStat `json:"categories"`
}

type CategoryContribution struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
	Points     int    `json:"points"`
}

type PopularCategory struct {
	Category            string                 `json:"category"`
	TotalCount          int                    `json:"totalCount"`
	TotalPoints         int                    `json:"totalPoints"`
	TotalUniqueStudents int                    `json:"totalUniqueStudents"`
	Departments         []CategoryContribution `json:"departments"`
}

type CategoryAnalysisReport struct {
	CategoryAnalysis  []DepartmentCategories `json:"categoryAnalysis"`
	PopularCategories []PopularCategory      `json:"popularCategories"`
}

type DepartmentPrizeMetrics struct {
	Department      string  `json:"department"`
	TotalPrizeMoney int     `json:"totalPrizeMoney"`
	TotalPoints     int     `json:"totalPoints"`
	PrizeEventCount int     `json:"prizeEventCount"`
	AvgPrizeMoney   float64 `json:"avgPrizeMoney"`
	ROI             float64 `json:"roi"`
}

type FacultyPerformance struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Role          Role    `json:"role"`
	ClassCount    int     `json:"classCount"`
	AvgPoints     float64 `json:"avgPoints"`
	TotalStudents int     `json:"totalStudents"`
	TotalPoints   int     `json:"totalPoints"`
}

type FacultyPerformanceReport struct {
	Department          string               `json:"department"`
	FacultyCount        int                  `json:"facultyCount"`
	TopFaculty          []FacultyPerformance `json:"topFaculty"`
	AvgClassPerformance float64              `json:"avgClassPerformance"`
	ClassVariance       float64              `json:"classVariance"`
}

type CategoryOpportunity struct {
	Category          string `json:"category"`
	ParticipationRate int    `json:"participationRate"`
	ParticipantCount  int    `json:"participantCount,omitempty"`
	EventCount        int    `json:"eventCount,omitempty"`
	Recommendation    string `json:"recommendation"`
}

type DepartmentOpportunities struct {
	Department                 string                `json:"department"`
	TotalStudents              int                   `json:"totalStudents"`
	UntappedCategories         []CategoryOpportunity `json:"untappedCategories"`
	LowParticipationCategories []CategoryOpportunity `json:"lowParticipationCategories"`
}

type EngagementPoint struct {
	Period         string `json:"period"`
	Count          int    `json:"count"`
	Points         int    `json:"points"`
	UniqueStudents int    `json:"uniqueStudents"`
}

type DepartmentEngagement struct {
	Department string            `json:"department"`
	Engagement []EngagementPoint `json:"engagement"`
}

type EngagementReport struct {
	Patterns   []DepartmentEngagement `json:"patterns"`
	TimeLabels []string               `json:"timeLabels"`
}

type CollaborationPair struct {
	Department1        string `json:"department1"`
	Department2        string `json:"department2"`
	CollaborationScore int    `json:"collaborationScore"`
	SharedCategories   int    `json:"sharedCategories"`
	CollaborationLevel string `json:"collaborationLevel"`
}

type DepartmentCollaboration struct {
	Department     string                    `json:"department"`
	CategoryTiming map[string]map[string]int `json:"categoryTiming"`
	EventCount     int                       `json:"eventCount"`
}

type CollaborationReport struct {
	CollaborationMatrix []CollaborationPair       `json:"collaborationMatrix"`
	DepartmentMetrics   []DepartmentCollaboration `json:"departmentMetrics"`
}

type DashboardReport struct {
	Overview              OverviewReport            `json:"overview"`
	PerformanceComparison []DepartmentPerformance   `json:"performanceComparison"`
	Rankings              []DepartmentRanking       `json:"rankings"`
	CategoryAnalysis      CategoryAnalysisReport    `json:"categoryAnalysis"`
	Opportunities         []DepartmentOpportunities `json:"opportunities"`
	LastUpdated           time.Time                 `json:"lastUpdated"`
}

type DepartmentSummary struct {
	TotalDepartments int      `json:"totalDepartments"`
	TotalStudents    int      `json:"totalStudents"`
	TotalEvents      int      `json:"totalEvents"`
	AvgPerformance   float64  `json:"avgPerformance"`
	Departments      []string `json:"departments"`
}
