package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	models "leaderboard-analytics/app/models/mongodb"
)

type MockStudentRepo struct {
	mock.Mock
}

func (m *MockStudentRepo) DistinctDepartments(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStudentRepo) FindByDepartment(ctx context.Context, department string) ([]models.Student, error) {
	args := m.Called(ctx, department)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Student), args.Error(1)
}

func (m *MockStudentRepo) FindByClassRefs(ctx context.Context, department string, classIDs []string) ([]models.Student, error) {
	args := m.Called(ctx, department, classIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Student), args.Error(1)
}

func (m *MockStudentRepo) CountByDepartments(ctx context.Context, departments []string) (int64, error) {
	args := m.Called(ctx, departments)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStudentRepo) AveragePointsByDepartments(ctx context.Context, departments []string) (float64, error) {
	args := m.Called(ctx, departments)
	return args.Get(0).(float64), args.Error(1)
}

type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) CountApproved(ctx context.Context, department string, filter models.DateFilter) (int64, error) {
	args := m.Called(ctx, department, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepo) CountApprovedInRange(ctx context.Context, department string, from, to time.Time) (int64, error) {
	args := m.Called(ctx, department, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepo) CountApprovedInDepartments(ctx context.Context, departments []string) (int64, error) {
	args := m.Called(ctx, departments)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepo) SumPointsInRange(ctx context.Context, department string, from, to time.Time) (int, error) {
	args := m.Called(ctx, department, from, to)
	return args.Get(0).(int), args.Error(1)
}

func (m *MockEventRepo) MonthlyActivity(ctx context.Context, department string, since time.Time) ([]models.PeriodBucket, error) {
	args := m.Called(ctx, department, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PeriodBucket), args.Error(1)
}

func (m *MockEventRepo) EngagementBuckets(ctx context.Context, department, timeframe string, since time.Time) ([]models.PeriodBucket, error) {
	args := m.Called(ctx, department, timeframe, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PeriodBucket), args.Error(1)
}

func (m *MockEventRepo) CategoryBreakdown(ctx context.Context, department string, filter models.DateFilter) ([]models.CategoryStat, error) {
	args := m.Called(ctx, department, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CategoryStat), args.Error(1)
}

func (m *MockEventRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockEventRepo) CategoryParticipation(ctx context.Context, studentIDs []string) ([]models.CategoryParticipation, error) {
	args := m.Called(ctx, studentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CategoryParticipation), args.Error(1)
}

func (m *MockEventRepo) PrizeSummary(ctx context.Context, department string, filter models.DateFilter) (models.PrizeSummary, error) {
	args := m.Called(ctx, department, filter)
	return args.Get(0).(models.PrizeSummary), args.Error(1)
}

func (m *MockEventRepo) FindApprovedByDepartment(ctx context.Context, department string) ([]models.Event, error) {
	args := m.Called(ctx, department)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

type MockTeacherRepo struct {
	mock.Mock
}

func (m *MockTeacherRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Teacher, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Teacher), args.Error(1)
}

func (m *MockTeacherRepo) FindFacultyByDepartment(ctx context.Context, department string) ([]models.Teacher, error) {
	args := m.Called(ctx, department)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Teacher), args.Error(1)
}

type MockClassRepo struct {
	mock.Mock
}

func (m *MockClassRepo) FindByFacultyOrAdvisor(ctx context.Context, department, teacherID string) ([]models.Class, error) {
	args := m.Called(ctx, department, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Class), args.Error(1)
}
