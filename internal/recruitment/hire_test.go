package recruitment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/events"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/recruitment"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/stage"
)

func TestHireCandidate_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	manager := f.store.AddEmployee("Grace", "Hopper", "grace@example.com", f.dept.ID)
	c := f.apply(t, "ada@example.com")
	f.advance(t, c.ID, stage.Offer)

	salary := 95000.0
	emp, err := f.svc.HireCandidate(ctx, c.ID, recruitment.HireInput{
		JobType:   "FULL_TIME",
		Salary:    &salary,
		ManagerID: &manager.ID,
		StartDate: mustDate(t, "2024-01-01"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", emp.FirstName)
	assert.Equal(t, "Lovelace", emp.LastName)
	assert.Equal(t, "ada@example.com", emp.Email)
	assert.Equal(t, f.job.Title, emp.JobTitle)
	assert.Equal(t, f.dept.ID, emp.DepartmentID)
	assert.Equal(t, &manager.ID, emp.ManagerID)
	assert.Equal(t, &salary, emp.Salary)
	assert.Equal(t, "2024-01-01", emp.HireDate.String())
	assert.Equal(t, "FULL_TIME", emp.JobType)
	assert.Equal(t, 2, f.store.EmployeeCount())

	hired, err := f.svc.GetCandidate(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, stage.Hired, hired.Stage)
	require.NotNil(t, hired.Feedback)
	assert.Equal(t, recruitment.HiredFeedback, *hired.Feedback)

	types := f.events.types()
	assert.Equal(t, events.CandidateHired, types[len(types)-1])
	last := f.events.events[len(f.events.events)-1]
	assert.Equal(t, emp.ID.String(), last.EmployeeID)
	assert.Equal(t, string(stage.Offer), last.FromStage)
}

func TestHireCandidate_OverwritesFeedback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.apply(t, "ada@example.com")
	_, err := f.svc.UpdateStatus(ctx, c.ID, string(stage.Offer), ptr("Strong interview"))
	require.NoError(t, err)

	_, err = f.svc.HireCandidate(ctx, c.ID, recruitment.HireInput{JobType: "PART_TIME", StartDate: mustDate(t, "2024-02-01")})
	require.NoError(t, err)

	hired, err := f.svc.GetCandidate(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, recruitment.HiredFeedback, *hired.Feedback)
}

func TestHireCandidate_PreconditionFailuresWriteNothing(t *testing.T) {
	ctx := context.Background()
	start := mustDate(t, "2024-01-01")

	tests := []struct {
		name    string
		setup   func(t *testing.T, f *fixture) (uuid.UUID, recruitment.HireInput)
		wantErr error
	}{
		{
			name: "candidate missing",
			setup: func(t *testing.T, f *fixture) (uuid.UUID, recruitment.HireInput) {
				return uuid.New(), recruitment.HireInput{JobType: "FULL_TIME", StartDate: start}
			},
			wantErr: recruitment.ErrCandidateNotFound,
		},
		{
			name: "already hired",
			setup: func(t *testing.T, f *fixture) (uuid.UUID, recruitment.HireInput) {
				c := f.apply(t, "ada@example.com")
				in := recruitment.HireInput{JobType: "FULL_TIME", StartDate: start}
				_, err := f.svc.HireCandidate(ctx, c.ID, in)
				require.NoError(t, err)
				return c.ID, in
			},
			wantErr: recruitment.ErrAlreadyHired,
		},
		{
			name: "manager missing",
			setup: func(t *testing.T, f *fixture) (uuid.UUID, recruitment.HireInput) {
				c := f.apply(t, "ada@example.com")
				return c.ID, recruitment.HireInput{JobType: "FULL_TIME", ManagerID: ptr(uuid.New()), StartDate: start}
			},
			wantErr: recruitment.ErrManagerNotFound,
		},
		{
			name: "employee email taken",
			setup: func(t *testing.T, f *fixture) (uuid.UUID, recruitment.HireInput) {
				f.store.AddEmployee("Ada", "King", "ADA@example.com", f.dept.ID)
				c := f.apply(t, "ada@example.com")
				return c.ID, recruitment.HireInput{JobType: "FULL_TIME", StartDate: start}
			},
			wantErr: recruitment.ErrDuplicateEmployeeEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			id, in := tt.setup(t, f)
			employees := f.store.EmployeeCount()
			stageWrites := f.store.Calls("SetCandidateStage")
			var before stage.Stage
			if c, _ := f.store.GetCandidate(ctx, id); c != nil {
				before = c.Stage
			}

			_, err := f.svc.HireCandidate(ctx, id, in)
			assert.ErrorIs(t, err, tt.wantErr)

			assert.Equal(t, employees, f.store.EmployeeCount())
			assert.Equal(t, stageWrites, f.store.Calls("SetCandidateStage"))
			if c, _ := f.store.GetCandidate(ctx, id); c != nil {
				assert.Equal(t, before, c.Stage)
			}
		})
	}
}

func TestHireCandidate_DuplicateEmailNamesEmployee(t *testing.T) {
	f := newFixture(t)
	f.store.AddEmployee("Augusta", "King", "ada@example.com", f.dept.ID)
	c := f.apply(t, "ada@example.com")

	_, err := f.svc.HireCandidate(context.Background(), c.ID, recruitment.HireInput{JobType: "FULL_TIME", StartDate: mustDate(t, "2024-01-01")})
	require.Error(t, err)

	var domainErr *recruitment.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMAIL_ALREADY_EXISTS", domainErr.Code)
	assert.Contains(t, domainErr.Message, "Augusta King")
}

func TestHireCandidate_DepartmentMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.apply(t, "ada@example.com")

	// Point the job at a department that does not exist.
	other := f.store.AddDepartment("Temporary")
	_, err := f.svc.UpdateJobPosting(ctx, f.job.ID, recruitment.JobPostingInput{Title: f.job.Title, DepartmentID: other.ID})
	require.NoError(t, err)
	f.store.RemoveDepartment(other.ID)

	_, err = f.svc.HireCandidate(ctx, c.ID, recruitment.HireInput{JobType: "FULL_TIME", StartDate: mustDate(t, "2024-01-01")})
	assert.ErrorIs(t, err, recruitment.ErrDepartmentNotFound)
	assert.Equal(t, 0, f.store.EmployeeCount())
}

// TestHireCandidate_AtomicWhenStageUpdateFails injects a failure between the
// employee insert and the candidate update
func TestHireCandidate_AtomicWhenStageUpdateFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.apply(t, "ada@example.com")
	f.advance(t, c.ID, stage.Offer)

	boom := errors.New("connection reset")
	f.store.FailOn("SetCandidateStage", boom)

	_, err := f.svc.HireCandidate(ctx, c.ID, recruitment.HireInput{JobType: "FULL_TIME", StartDate: mustDate(t, "2024-01-01")})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, f.store.Calls("CreateEmployee"))

	assert.Equal(t, 0, f.store.EmployeeCount())
	after, err := f.svc.GetCandidate(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, stage.Offer, after.Stage)
	assert.NotContains(t, f.events.types(), events.CandidateHired)

	f.store.FailOn("SetCandidateStage", nil)
	_, err = f.svc.HireCandidate(ctx, c.ID, recruitment.HireInput{JobType: "FULL_TIME", StartDate: mustDate(t, "2024-01-01")})
	require.NoError(t, err)
	assert.Equal(t, 1, f.store.EmployeeCount())
}

func TestHireCandidate_ValidatesInput(t *testing.T) {
	f := newFixture(t)
	c := f.apply(t, "ada@example.com")

	_, err := f.svc.HireCandidate(context.Background(), c.ID, recruitment.HireInput{StartDate: mustDate(t, "2024-01-01")})
	assert.ErrorIs(t, err, recruitment.ErrValidation)

	_, err = f.svc.HireCandidate(context.Background(), c.ID, recruitment.HireInput{JobType: "FULL_TIME"})
	assert.ErrorIs(t, err, recruitment.ErrValidation)

	_, err = f.svc.HireCandidate(context.Background(), c.ID, recruitment.HireInput{JobType: "FULL_TIME", Salary: ptr(-1.0), StartDate: mustDate(t, "2024-01-01")})
	assert.ErrorIs(t, err, recruitment.ErrValidation)
}

func TestHireCandidate_ConcurrentAttemptsHireOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.apply(t, "ada@example.com")
	f.advance(t, c.ID, stage.Offer)

	in := recruitment.HireInput{JobType: "FULL_TIME", StartDate: mustDate(t, "2024-01-01")}

	const n = 8
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := f.svc.HireCandidate(ctx, c.ID, in)
			errs <- err
		}()
	}

	succeeded := 0
	for i := 0; i < n; i++ {
		if err := <-errs; err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, recruitment.ErrAlreadyHired)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, f.store.EmployeeCount())
}
