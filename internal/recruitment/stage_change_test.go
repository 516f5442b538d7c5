package recruitment_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/events"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/recruitment"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/stage"
)

func TestChangeStage_ForwardMoves(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.apply(t, "ada@example.com")
	assert.Equal(t, stage.Applied, c.Stage)

	for _, next := range []stage.Stage{stage.Screening, stage.Interview, stage.Offer} {
		updated, err := f.svc.ChangeStage(ctx, c.ID, string(next))
		require.NoError(t, err)
		assert.Equal(t, next, updated.Stage)
	}
}

// TestChangeStage_DisallowedPairs checks every pair outside the table
func TestChangeStage_DisallowedPairs(t *testing.T) {
	ctx := context.Background()
	reachable := map[stage.Stage][]stage.Stage{
		stage.Applied:   nil,
		stage.Screening: {stage.Screening},
		stage.Interview: {stage.Screening, stage.Interview},
		stage.Offer:     {stage.Screening, stage.Interview, stage.Offer},
		stage.Rejected:  {stage.Rejected},
	}

	for from, path := range reachable {
		for _, to := range stage.All() {
			if to == stage.Hired || stage.CanTransition(from, to) {
				continue
			}
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				f := newFixture(t)
				c := f.apply(t, "ada@example.com")
				for _, st := range path {
					_, err := f.svc.ChangeStage(ctx, c.ID, string(st))
					require.NoError(t, err)
				}

				_, err := f.svc.ChangeStage(ctx, c.ID, string(to))
				assert.ErrorIs(t, err, recruitment.ErrInvalidTransition)

				after, err := f.svc.GetCandidate(ctx, c.ID)
				require.NoError(t, err)
				assert.Equal(t, from, after.Stage)
			})
		}
	}
}

func TestChangeStage_OutOfHiredIsRefused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.apply(t, "ada@example.com")
	f.advance(t, c.ID, stage.Offer)
	_, err := f.svc.HireCandidate(ctx, c.ID, recruitment.HireInput{JobType: "FULL_TIME", StartDate: mustDate(t, "2024-01-01")})
	require.NoError(t, err)

	for _, to := range []stage.Stage{stage.Applied, stage.Screening, stage.Interview, stage.Offer, stage.Rejected} {
		_, err := f.svc.ChangeStage(ctx, c.ID, string(to))
		assert.ErrorIs(t, err, recruitment.ErrInvalidTransition, "HIRED -> %s", to)
	}
}

func TestChangeStage_HiredAlwaysRequiresHireEndpoint(t *testing.T) {
	ctx := context.Background()
	for _, from := range []stage.Stage{stage.Applied, stage.Screening, stage.Interview, stage.Offer} {
		t.Run(string(from), func(t *testing.T) {
			f := newFixture(t)
			c := f.apply(t, "ada@example.com")
			f.advance(t, c.ID, from)

			_, err := f.svc.ChangeStage(ctx, c.ID, string(stage.Hired))
			assert.ErrorIs(t, err, recruitment.ErrUseHireEndpoint)
		})
	}
}

func TestChangeStage_InvalidStageName(t *testing.T) {
	f := newFixture(t)
	c := f.apply(t, "ada@example.com")

	for _, name := range []string{"", "applied", "ONBOARDING", "HIRED "} {
		_, err := f.svc.ChangeStage(context.Background(), c.ID, name)
		assert.ErrorIs(t, err, recruitment.ErrInvalidStage, "stage %q", name)
	}
}

// TestChangeStage_CheckOrder verifies the stage name is checked before the candidate
func TestChangeStage_CheckOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ChangeStage(ctx, uuid.New(), "BOGUS")
	assert.ErrorIs(t, err, recruitment.ErrInvalidStage)

	_, err = f.svc.ChangeStage(ctx, uuid.New(), string(stage.Hired))
	assert.ErrorIs(t, err, recruitment.ErrUseHireEndpoint)

	_, err = f.svc.ChangeStage(ctx, uuid.New(), string(stage.Screening))
	assert.ErrorIs(t, err, recruitment.ErrCandidateNotFound)
}

func TestChangeStage_InactiveJob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.apply(t, "ada@example.com")
	f.archive(t)

	_, err := f.svc.ChangeStage(ctx, c.ID, string(stage.Screening))
	assert.ErrorIs(t, err, recruitment.ErrJobInactive)

	// Inactivity wins over an invalid transition.
	_, err = f.svc.ChangeStage(ctx, c.ID, string(stage.Offer))
	assert.ErrorIs(t, err, recruitment.ErrJobInactive)

	rejected, err := f.svc.ChangeStage(ctx, c.ID, string(stage.Rejected))
	require.NoError(t, err)
	assert.Equal(t, stage.Rejected, rejected.Stage)
}

func TestChangeStage_PublishesEvent(t *testing.T) {
	f := newFixture(t)
	c := f.apply(t, "ada@example.com")

	_, err := f.svc.ChangeStage(context.Background(), c.ID, string(stage.Screening))
	require.NoError(t, err)

	require.Len(t, f.events.events, 2)
	ev := f.events.events[1]
	assert.Equal(t, events.CandidateStageChanged, ev.Type)
	assert.Equal(t, string(stage.Applied), ev.FromStage)
	assert.Equal(t, string(stage.Screening), ev.ToStage)
	assert.Equal(t, c.ID.String(), ev.CandidateID)
	assert.Equal(t, fixedNow, ev.OccurredAt)
}

func TestChangeStage_FailedMoveWritesNothing(t *testing.T) {
	f := newFixture(t)
	c := f.apply(t, "ada@example.com")

	_, err := f.svc.ChangeStage(context.Background(), c.ID, string(stage.Offer))
	require.Error(t, err)
	assert.Zero(t, f.store.Calls("SetCandidateStage"))
	assert.Equal(t, []string{events.CandidateCreated}, f.events.types())
}

func TestUpdateStatus_Policies(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name      string
		policy    recruitment.OverridePolicy
		next      stage.Stage
		wantErr   error
		wantStage stage.Stage
	}{
		{"bypass skips stages", recruitment.PolicyBypass, stage.Offer, nil, stage.Offer},
		{"bypass rejects", recruitment.PolicyBypass, stage.Rejected, nil, stage.Rejected},
		{"rejected_only rejects", recruitment.PolicyRejectedOnly, stage.Rejected, nil, stage.Rejected},
		{"rejected_only checks table", recruitment.PolicyRejectedOnly, stage.Offer, recruitment.ErrInvalidTransition, stage.Applied},
		{"rejected_only allows next", recruitment.PolicyRejectedOnly, stage.Screening, nil, stage.Screening},
		{"guarded checks table", recruitment.PolicyGuarded, stage.Interview, recruitment.ErrInvalidTransition, stage.Applied},
		{"guarded allows next", recruitment.PolicyGuarded, stage.Screening, nil, stage.Screening},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, recruitment.WithOverridePolicy(tt.policy))
			c := f.apply(t, "ada@example.com")

			_, err := f.svc.UpdateStatus(ctx, c.ID, string(tt.next), ptr("not a fit"))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			after, err := f.svc.GetCandidate(ctx, c.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStage, after.Stage)
		})
	}
}

func TestUpdateStatus_RefusesHiredUnderEveryPolicy(t *testing.T) {
	for _, p := range []recruitment.OverridePolicy{recruitment.PolicyBypass, recruitment.PolicyRejectedOnly, recruitment.PolicyGuarded} {
		f := newFixture(t, recruitment.WithOverridePolicy(p))
		c := f.apply(t, "ada@example.com")

		_, err := f.svc.UpdateStatus(context.Background(), c.ID, string(stage.Hired), nil)
		assert.ErrorIs(t, err, recruitment.ErrUseHireEndpoint, "policy %s", p)

		_, err = f.svc.UpdateStatus(context.Background(), c.ID, "NOPE", nil)
		assert.ErrorIs(t, err, recruitment.ErrInvalidStage, "policy %s", p)
	}
}

func TestUpdateStatus_StoresReason(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.apply(t, "ada@example.com")

	updated, err := f.svc.UpdateStatus(ctx, c.ID, string(stage.Rejected), ptr("  Lacks Go experience "))
	require.NoError(t, err)
	require.NotNil(t, updated.Feedback)
	assert.Equal(t, "Lacks Go experience", *updated.Feedback)

	// A blank reason leaves the stored feedback alone.
	updated, err = f.svc.UpdateStatus(ctx, c.ID, string(stage.Screening), ptr("  "))
	require.NoError(t, err)
	assert.Equal(t, stage.Screening, updated.Stage)
	require.NotNil(t, updated.Feedback)
	assert.Equal(t, "Lacks Go experience", *updated.Feedback)
}

func TestUpdateStatus_BypassIgnoresInactiveJob(t *testing.T) {
	f := newFixture(t)
	c := f.apply(t, "ada@example.com")
	f.archive(t)

	updated, err := f.svc.UpdateStatus(context.Background(), c.ID, string(stage.Interview), nil)
	require.NoError(t, err)
	assert.Equal(t, stage.Interview, updated.Stage)
}

// TestUpdateStatus_BypassReopensHiredCandidate pins the default policy: a
// hired candidate can be moved back, the employee record stays, and hiring
// again is refused because that email is already an employee.
func TestUpdateStatus_BypassReopensHiredCandidate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.apply(t, "ada@example.com")
	f.advance(t, c.ID, stage.Offer)
	hire := recruitment.HireInput{JobType: "FULL_TIME", StartDate: mustDate(t, "2024-01-01")}
	_, err := f.svc.HireCandidate(ctx, c.ID, hire)
	require.NoError(t, err)
	employees := f.store.EmployeeCount()

	reopened, err := f.svc.UpdateStatus(ctx, c.ID, string(stage.Applied), ptr("Offer withdrawn"))
	require.NoError(t, err)
	assert.Equal(t, stage.Applied, reopened.Stage)
	assert.Equal(t, employees, f.store.EmployeeCount())

	f.advance(t, c.ID, stage.Offer)
	_, err = f.svc.HireCandidate(ctx, c.ID, hire)
	assert.ErrorIs(t, err, recruitment.ErrDuplicateEmployeeEmail)
	assert.Equal(t, employees, f.store.EmployeeCount())
}

func TestUpdateStatus_GuardedKeepsHiredTerminal(t *testing.T) {
	f := newFixture(t, recruitment.WithOverridePolicy(recruitment.PolicyGuarded))
	ctx := context.Background()
	c := f.apply(t, "ada@example.com")
	f.advance(t, c.ID, stage.Offer)
	_, err := f.svc.HireCandidate(ctx, c.ID, recruitment.HireInput{JobType: "FULL_TIME", StartDate: mustDate(t, "2024-01-01")})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, c.ID, string(stage.Applied), nil)
	assert.ErrorIs(t, err, recruitment.ErrInvalidTransition)
}

func TestParseOverridePolicy(t *testing.T) {
	p, err := recruitment.ParseOverridePolicy("")
	require.NoError(t, err)
	assert.Equal(t, recruitment.PolicyBypass, p)

	p, err = recruitment.ParseOverridePolicy(" Rejected_Only ")
	require.NoError(t, err)
	assert.Equal(t, recruitment.PolicyRejectedOnly, p)

	_, err = recruitment.ParseOverridePolicy("lenient")
	assert.Error(t, err)
}
