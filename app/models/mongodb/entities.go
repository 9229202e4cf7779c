package models

import "time"

// Departments is the fixed enumeration of department codes shared by
// students, teachers, events and classes.
var Departments = []string{"CSE", "ECE", "EEE", "MECH", "CIVIL", "IT", "CINTEL"}

// EventStatusApproved is the only event status counted by the analytics.
const EventStatusApproved = "Approved"

type Student struct {
	ID                 string   `bson:"_id" json:"id"`
	Name               string   `bson:"name" json:"name"`
	RegisterNo         string   `bson:"registerNo" json:"registerNo"`
	Department         string   `bson:"department" json:"department"`
	TotalPoints        int      `bson:"totalPoints" json:"totalPoints"`
	EventsParticipated []string `bson:"eventsParticipated" json:"eventsParticipated"`
	CurrentClass       struct {
		Year    int    `bson:"year" json:"year"`
		Section string `bson:"section" json:"section"`
		Ref     string `bson:"ref" json:"ref"`
	} `bson:"currentClass" json:"currentClass"`
}

type Teacher struct {
	ID                 string   `bson:"_id" json:"id"`
	Name               string   `bson:"name" json:"name"`
	Email              string   `bson:"email" json:"email"`
	RegisterNo         string   `bson:"registerNo" json:"registerNo"`
	Role               Role     `bson:"role" json:"role"`
	Department         string   `bson:"department,omitempty" json:"department,omitempty"`
	ManagedDepartments []string `bson:"managedDepartments,omitempty" json:"managedDepartments,omitempty"`
	Classes            []string `bson:"classes,omitempty" json:"classes,omitempty"`
}

type Event struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	EventName    string    `bson:"eventName" json:"eventName"`
	Department   string    `bson:"department" json:"department"`
	Category     string    `bson:"category" json:"category"`
	Status       string    `bson:"status" json:"status"`
	Date         time.Time `bson:"date" json:"date"`
	PointsEarned int       `bson:"pointsEarned" json:"pointsEarned"`
	PrizeMoney   int       `bson:"prizeMoney,omitempty" json:"prizeMoney,omitempty"`
	SubmittedBy  string    `bson:"submittedBy" json:"submittedBy"`
}

type Class struct {
	ID               string   `bson:"_id" json:"id"`
	ClassName        string   `bson:"className" json:"className"`
	Department       string   `bson:"department" json:"department"`
	FacultyAssigned  []string `bson:"facultyAssigned" json:"facultyAssigned"`
	AcademicAdvisors []string `bson:"academicAdvisors" json:"academicAdvisors"`
}

// DateFilter is an optional inclusive date range applied to event queries.
// Either bound may be nil, in which case only the other is applied.
type DateFilter struct {
	Start *time.Time
	End   *time.Time
}

// IsZero reports whether no bound is set.
func (f DateFilter) IsZero() bool {
	return f.Start == nil && f.End == nil
}
