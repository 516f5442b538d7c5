package recruitment_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/db"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/events"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/recruitment"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/recruitment/memstore"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/stage"
)

var fixedNow = time.Date(2023, 12, 1, 10, 0, 0, 0, time.UTC)

// recorder is an events.Publisher that keeps what it receives.
type recorder struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (r *recorder) Publish(_ context.Context, ev events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	store  *memstore.Store
	svc    *recruitment.Service
	events *recorder
	dept   db.Department
	job    *db.JobPosting
}

func newFixture(t *testing.T, opts ...recruitment.Option) *fixture {
	t.Helper()
	f := &fixture{store: memstore.New(), events: &recorder{}}
	opts = append([]recruitment.Option{
		recruitment.WithPublisher(f.events),
		recruitment.WithClock(func() time.Time { return fixedNow }),
	}, opts...)
	f.svc = recruitment.NewService(f.store, opts...)
	f.dept = f.store.AddDepartment("Engineering")

	job, err := f.svc.CreateJobPosting(context.Background(), recruitment.JobPostingInput{
		Title:        "Backend Engineer",
		Description:  "Builds services",
		DepartmentID: f.dept.ID,
	})
	require.NoError(t, err)
	f.job = job
	return f
}

func (f *fixture) apply(t *testing.T, email string) *db.Candidate {
	t.Helper()
	c, err := f.svc.CreateCandidate(context.Background(), f.job.ID, recruitment.CandidateInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
	})
	require.NoError(t, err)
	return c
}

// advance walks a candidate through the pipeline up to target.
func (f *fixture) advance(t *testing.T, id uuid.UUID, target stage.Stage) {
	t.Helper()
	for _, st := range []stage.Stage{stage.Screening, stage.Interview, stage.Offer} {
		c, err := f.svc.GetCandidate(context.Background(), id)
		require.NoError(t, err)
		if c.Stage == target {
			return
		}
		_, err = f.svc.ChangeStage(context.Background(), id, string(st))
		require.NoError(t, err)
	}
}

func (f *fixture) archive(t *testing.T) {
	t.Helper()
	_, err := f.svc.ArchiveJobPosting(context.Background(), f.job.ID)
	require.NoError(t, err)
}

func mustDate(t *testing.T, s string) db.Date {
	t.Helper()
	d, err := db.ParseDate(s)
	require.NoError(t, err)
	return d
}

func ptr[T any](v T) *T { return &v }
