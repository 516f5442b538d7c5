// Package memstore is an in-memory recruitment.Store. It mirrors the
// PostgreSQL repository closely enough for service and handler tests: getters
// return (nil, nil) for missing rows, updates and deletes return
// db.ErrNotFound, unique constraints surface as *db.ConstraintError and a
// failed unit of work restores the state it started from.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/db"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/recruitment"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/stage"
)

type jobRow struct {
	posting db.JobPosting
	skills  []db.SkillRequirement
}

type state struct {
	departments map[uuid.UUID]db.Department
	employees   map[uuid.UUID]db.Employee
	skills      map[uuid.UUID]db.Skill
	jobs        map[uuid.UUID]jobRow
	candidates  map[uuid.UUID]db.Candidate
	interviews  map[uuid.UUID]db.Interview
	documents   map[uuid.UUID]db.CandidateDocument
	contracts   map[uuid.UUID]db.Contract
}

func newState() *state {
	return &state{
		departments: map[uuid.UUID]db.Department{},
		employees:   map[uuid.UUID]db.Employee{},
		skills:      map[uuid.UUID]db.Skill{},
		jobs:        map[uuid.UUID]jobRow{},
		candidates:  map[uuid.UUID]db.Candidate{},
		interviews:  map[uuid.UUID]db.Interview{},
		documents:   map[uuid.UUID]db.CandidateDocument{},
		contracts:   map[uuid.UUID]db.Contract{},
	}
}

func cloneMap[V any](m map[uuid.UUID]V) map[uuid.UUID]V {
	out := make(map[uuid.UUID]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// clone copies every table. Row values are replaced, never mutated in
// place, so sharing their pointer fields is safe.
func (st *state) clone() *state {
	jobs := make(map[uuid.UUID]jobRow, len(st.jobs))
	for id, row := range st.jobs {
		row.skills = append([]db.SkillRequirement(nil), row.skills...)
		jobs[id] = row
	}
	return &state{
		departments: cloneMap(st.departments),
		employees:   cloneMap(st.employees),
		skills:      cloneMap(st.skills),
		jobs:        jobs,
		candidates:  cloneMap(st.candidates),
		interviews:  cloneMap(st.interviews),
		documents:   cloneMap(st.documents),
		contracts:   cloneMap(st.contracts),
	}
}

// Store is safe for concurrent use. Units of work are serialized.
type Store struct {
	repo

	txMu sync.Mutex
}

var _ recruitment.Store = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{repo: repo{mem: &memory{
		st:     newState(),
		faults: map[string]error{},
		calls:  map[string]int{},
		epoch:  time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}}}
}

// WithinTx runs fn against the store and restores the prior state when fn
// returns an error.
func (s *Store) WithinTx(ctx context.Context, fn func(repo recruitment.Repository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mem.mu.Lock()
	snapshot := s.mem.st.clone()
	s.mem.mu.Unlock()

	if err := fn(s.repo); err != nil {
		s.mem.mu.Lock()
		s.mem.st = snapshot
		s.mem.mu.Unlock()
		return err
	}
	return nil
}

// FailOn makes every later call of the named Repository method return err.
// A nil err clears the fault.
func (s *Store) FailOn(method string, err error) {
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	if err == nil {
		delete(s.mem.faults, method)
		return
	}
	s.mem.faults[method] = err
}

// Calls reports how often the named Repository method was invoked.
func (s *Store) Calls(method string) int {
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	return s.mem.calls[method]
}

// EmployeeCount returns the number of stored employees.
func (s *Store) EmployeeCount() int {
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	return len(s.mem.st.employees)
}

// AddDepartment seeds a department.
func (s *Store) AddDepartment(name string) db.Department {
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	d := db.Department{ID: uuid.New(), Name: name, CreatedAt: s.mem.tick()}
	s.mem.st.departments[d.ID] = d
	return d
}

// RemoveDepartment deletes a department without touching the rows that
// reference it, simulating data owned and changed by another module.
func (s *Store) RemoveDepartment(id uuid.UUID) {
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	delete(s.mem.st.departments, id)
}

// AddSkill seeds a skill.
func (s *Store) AddSkill(name string) db.Skill {
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	sk := db.Skill{ID: uuid.New(), Name: name}
	s.mem.st.skills[sk.ID] = sk
	return sk
}

// AddEmployee seeds an employee, such as a manager or an interviewer.
func (s *Store) AddEmployee(firstName, lastName, email string, departmentID uuid.UUID) db.Employee {
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	now := s.mem.tick()
	e := db.Employee{
		ID:           uuid.New(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        strings.ToLower(email),
		JobTitle:     "Staff",
		DepartmentID: departmentID,
		HireDate:     db.Date{Time: now.Truncate(24 * time.Hour)},
		JobType:      "FULL_TIME",
		CreatedAt:    now,
	}
	s.mem.st.employees[e.ID] = e
	return e
}

type memory struct {
	mu     sync.Mutex
	st     *state
	faults map[string]error
	calls  map[string]int
	epoch  time.Time
	seq    int
}

// tick returns a strictly increasing timestamp so orderings are stable.
func (m *memory) tick() time.Time {
	m.seq++
	return m.epoch.Add(time.Duration(m.seq) * time.Second)
}

// repo implements recruitment.Repository over memory.
type repo struct {
	mem *memory
}

// enter locks the store, counts the call and reports an injected fault.
// Callers must unlock mem.mu when it returns nil.
func (r repo) enter(method string) error {
	r.mem.mu.Lock()
	r.mem.calls[method]++
	if err := r.mem.faults[method]; err != nil {
		r.mem.mu.Unlock()
		return err
	}
	return nil
}

func (r repo) st() *state { return r.mem.st }

func (r repo) GetDepartment(_ context.Context, id uuid.UUID) (*db.Department, error) {
	if err := r.enter("GetDepartment"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	d, ok := r.st().departments[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r repo) ListDepartments(_ context.Context) ([]db.Department, error) {
	if err := r.enter("ListDepartments"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	out := make([]db.Department, 0, len(r.st().departments))
	for _, d := range r.st().departments {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r repo) GetEmployee(_ context.Context, id uuid.UUID) (*db.Employee, error) {
	if err := r.enter("GetEmployee"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	e, ok := r.st().employees[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r repo) GetEmployeeByEmail(_ context.Context, email string) (*db.Employee, error) {
	if err := r.enter("GetEmployeeByEmail"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	for _, e := range r.st().employees {
		if strings.EqualFold(e.Email, email) {
			return &e, nil
		}
	}
	return nil, nil
}

func (r repo) CreateEmployee(_ context.Context, in *db.EmployeeCreateInput) (*db.Employee, error) {
	if err := r.enter("CreateEmployee"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	for _, e := range r.st().employees {
		if strings.EqualFold(e.Email, in.Email) {
			return nil, &db.ConstraintError{Op: "create employee", Constraint: db.ConstraintEmployeeEmail}
		}
	}
	e := db.Employee{
		ID:           uuid.New(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        strings.ToLower(in.Email),
		Phone:        in.Phone,
		JobTitle:     in.JobTitle,
		DepartmentID: in.DepartmentID,
		ManagerID:    in.ManagerID,
		Salary:       in.Salary,
		HireDate:     in.HireDate,
		JobType:      in.JobType,
		CreatedAt:    r.mem.tick(),
	}
	r.st().employees[e.ID] = e
	return &e, nil
}

// posting assembles a job posting the way the SQL join does.
func (r repo) posting(row jobRow) *db.JobPosting {
	p := row.posting
	p.DepartmentName = r.st().departments[p.DepartmentID].Name
	p.Skills = make([]db.JobPostingSkill, 0, len(row.skills))
	for _, sk := range row.skills {
		p.Skills = append(p.Skills, db.JobPostingSkill{
			SkillID:  sk.SkillID,
			Name:     r.st().skills[sk.SkillID].Name,
			Required: sk.Required,
			MinLevel: sk.MinLevel,
		})
	}
	sort.SliceStable(p.Skills, func(i, j int) bool {
		if p.Skills[i].Required != p.Skills[j].Required {
			return p.Skills[i].Required
		}
		return p.Skills[i].Name < p.Skills[j].Name
	})
	p.CandidateCount = 0
	for _, c := range r.st().candidates {
		if c.JobPostingID == p.ID {
			p.CandidateCount++
		}
	}
	return &p
}

func (r repo) GetJobPosting(_ context.Context, id uuid.UUID) (*db.JobPosting, error) {
	if err := r.enter("GetJobPosting"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	row, ok := r.st().jobs[id]
	if !ok {
		return nil, nil
	}
	return r.posting(row), nil
}

func (r repo) GetJobPostingByToken(_ context.Context, token string) (*db.JobPosting, error) {
	if err := r.enter("GetJobPostingByToken"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	for _, row := range r.st().jobs {
		if row.posting.PublicToken == token {
			return r.posting(row), nil
		}
	}
	return nil, nil
}

func (r repo) ListJobPostings(_ context.Context, filters db.JobPostingFilters) ([]db.JobPosting, error) {
	if err := r.enter("ListJobPostings"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	out := make([]db.JobPosting, 0)
	for _, row := range r.st().jobs {
		if filters.Active != nil && row.posting.IsActive != *filters.Active {
			continue
		}
		if filters.DepartmentID != uuid.Nil && row.posting.DepartmentID != filters.DepartmentID {
			continue
		}
		p := r.posting(row)
		p.Skills = nil
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r repo) tokenTaken(token string, except uuid.UUID) bool {
	for id, row := range r.st().jobs {
		if id != except && row.posting.PublicToken == token {
			return true
		}
	}
	return false
}

func (r repo) CreateJobPosting(_ context.Context, in *db.JobPostingInput) (*db.JobPosting, error) {
	if err := r.enter("CreateJobPosting"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	if r.tokenTaken(in.PublicToken, uuid.Nil) {
		return nil, &db.ConstraintError{Op: "create job posting", Constraint: db.ConstraintPublicToken}
	}
	now := r.mem.tick()
	row := jobRow{
		posting: db.JobPosting{
			ID:           uuid.New(),
			Title:        in.Title,
			Description:  in.Description,
			DepartmentID: in.DepartmentID,
			IsActive:     in.IsActive,
			PublicToken:  in.PublicToken,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		skills: append([]db.SkillRequirement(nil), in.Skills...),
	}
	r.st().jobs[row.posting.ID] = row
	return r.posting(row), nil
}

func (r repo) UpdateJobPosting(_ context.Context, id uuid.UUID, in *db.JobPostingInput) (*db.JobPosting, error) {
	if err := r.enter("UpdateJobPosting"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	row, ok := r.st().jobs[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	row.posting.Title = in.Title
	row.posting.Description = in.Description
	row.posting.DepartmentID = in.DepartmentID
	row.posting.IsActive = in.IsActive
	row.posting.UpdatedAt = r.mem.tick()
	row.skills = append([]db.SkillRequirement(nil), in.Skills...)
	r.st().jobs[id] = row
	return r.posting(row), nil
}

func (r repo) SetJobPostingActive(_ context.Context, id uuid.UUID, active bool) error {
	if err := r.enter("SetJobPostingActive"); err != nil {
		return err
	}
	defer r.mem.mu.Unlock()
	row, ok := r.st().jobs[id]
	if !ok {
		return db.ErrNotFound
	}
	row.posting.IsActive = active
	row.posting.UpdatedAt = r.mem.tick()
	r.st().jobs[id] = row
	return nil
}

func (r repo) SetJobPostingToken(_ context.Context, id uuid.UUID, token string) error {
	if err := r.enter("SetJobPostingToken"); err != nil {
		return err
	}
	defer r.mem.mu.Unlock()
	row, ok := r.st().jobs[id]
	if !ok {
		return db.ErrNotFound
	}
	if r.tokenTaken(token, id) {
		return &db.ConstraintError{Op: "set public token", Constraint: db.ConstraintPublicToken}
	}
	row.posting.PublicToken = token
	row.posting.UpdatedAt = r.mem.tick()
	r.st().jobs[id] = row
	return nil
}

func (r repo) DeleteJobPosting(_ context.Context, id uuid.UUID) error {
	if err := r.enter("DeleteJobPosting"); err != nil {
		return err
	}
	defer r.mem.mu.Unlock()
	if _, ok := r.st().jobs[id]; !ok {
		return db.ErrNotFound
	}
	delete(r.st().jobs, id)
	for cid, c := range r.st().candidates {
		if c.JobPostingID == id {
			r.deleteCandidateRows(cid)
		}
	}
	return nil
}

func (r repo) ListSkills(_ context.Context) ([]db.Skill, error) {
	if err := r.enter("ListSkills"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	out := make([]db.Skill, 0, len(r.st().skills))
	for _, sk := range r.st().skills {
		out = append(out, sk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r repo) SkillsExist(_ context.Context, ids []uuid.UUID) (bool, error) {
	if err := r.enter("SkillsExist"); err != nil {
		return false, err
	}
	defer r.mem.mu.Unlock()
	for _, id := range ids {
		if _, ok := r.st().skills[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// candidate attaches the job posting the way the SQL getters do.
func (r repo) candidate(c db.Candidate) *db.Candidate {
	if row, ok := r.st().jobs[c.JobPostingID]; ok {
		c.JobPosting = r.posting(row)
	}
	return &c
}

func (r repo) GetCandidate(_ context.Context, id uuid.UUID) (*db.Candidate, error) {
	if err := r.enter("GetCandidate"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	c, ok := r.st().candidates[id]
	if !ok {
		return nil, nil
	}
	return r.candidate(c), nil
}

func (r repo) GetCandidateForUpdate(_ context.Context, id uuid.UUID) (*db.Candidate, error) {
	if err := r.enter("GetCandidateForUpdate"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	c, ok := r.st().candidates[id]
	if !ok {
		return nil, nil
	}
	return r.candidate(c), nil
}

func (r repo) FindCandidateByEmail(_ context.Context, jobPostingID uuid.UUID, email string) (*db.Candidate, error) {
	if err := r.enter("FindCandidateByEmail"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	for _, c := range r.st().candidates {
		if c.JobPostingID == jobPostingID && strings.EqualFold(c.Email, email) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r repo) ListCandidates(_ context.Context, jobPostingID uuid.UUID, st stage.Stage) ([]db.Candidate, error) {
	if err := r.enter("ListCandidates"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	out := make([]db.Candidate, 0)
	for _, c := range r.st().candidates {
		if c.JobPostingID != jobPostingID || (st != "" && c.Stage != st) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r repo) CountCandidatesByStage(_ context.Context, jobPostingID uuid.UUID) ([]db.StageCount, error) {
	if err := r.enter("CountCandidatesByStage"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	counts := map[stage.Stage]int{}
	for _, c := range r.st().candidates {
		if c.JobPostingID == jobPostingID {
			counts[c.Stage]++
		}
	}
	out := make([]db.StageCount, 0, len(stage.All()))
	for _, st := range stage.All() {
		out = append(out, db.StageCount{Stage: st, Count: counts[st]})
	}
	return out, nil
}

func (r repo) emailTaken(jobPostingID uuid.UUID, email string, except uuid.UUID) bool {
	for id, c := range r.st().candidates {
		if id != except && c.JobPostingID == jobPostingID && strings.EqualFold(c.Email, email) {
			return true
		}
	}
	return false
}

func (r repo) CreateCandidate(_ context.Context, in *db.CandidateCreateInput) (*db.Candidate, error) {
	if err := r.enter("CreateCandidate"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	if _, ok := r.st().jobs[in.JobPostingID]; !ok {
		return nil, db.ErrNotFound
	}
	if r.emailTaken(in.JobPostingID, in.Email, uuid.Nil) {
		return nil, &db.ConstraintError{Op: "create candidate", Constraint: db.ConstraintCandidateJobEmail}
	}
	now := r.mem.tick()
	c := db.Candidate{
		ID:           uuid.New(),
		JobPostingID: in.JobPostingID,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        strings.ToLower(in.Email),
		Phone:        in.Phone,
		ResumeURL:    in.ResumeURL,
		Stage:        stage.Initial,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.st().candidates[c.ID] = c
	return r.candidate(c), nil
}

func (r repo) UpdateCandidate(_ context.Context, id uuid.UUID, in *db.CandidateUpdate) (*db.Candidate, error) {
	if err := r.enter("UpdateCandidate"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	c, ok := r.st().candidates[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	if r.emailTaken(c.JobPostingID, in.Email, id) {
		return nil, &db.ConstraintError{Op: "update candidate", Constraint: db.ConstraintCandidateJobEmail}
	}
	c.FirstName = in.FirstName
	c.LastName = in.LastName
	c.Email = strings.ToLower(in.Email)
	c.Phone = in.Phone
	c.ResumeURL = in.ResumeURL
	if in.Score != nil {
		c.Score = in.Score
	}
	if in.Feedback != nil {
		c.Feedback = in.Feedback
	}
	c.UpdatedAt = r.mem.tick()
	r.st().candidates[id] = c
	return r.candidate(c), nil
}

func (r repo) SetCandidateStage(_ context.Context, id uuid.UUID, st stage.Stage, feedback *string) (*db.Candidate, error) {
	if err := r.enter("SetCandidateStage"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	c, ok := r.st().candidates[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	c.Stage = st
	if feedback != nil {
		fb := *feedback
		c.Feedback = &fb
	}
	c.UpdatedAt = r.mem.tick()
	r.st().candidates[id] = c
	return r.candidate(c), nil
}

// deleteCandidateRows removes a candidate with its interviews and
// documents, as the foreign key cascades do.
func (r repo) deleteCandidateRows(id uuid.UUID) {
	delete(r.st().candidates, id)
	for iid, iv := range r.st().interviews {
		if iv.CandidateID == id {
			delete(r.st().interviews, iid)
		}
	}
	for did, d := range r.st().documents {
		if d.CandidateID == id {
			delete(r.st().documents, did)
		}
	}
}

func (r repo) DeleteCandidate(_ context.Context, id uuid.UUID) error {
	if err := r.enter("DeleteCandidate"); err != nil {
		return err
	}
	defer r.mem.mu.Unlock()
	if _, ok := r.st().candidates[id]; !ok {
		return db.ErrNotFound
	}
	r.deleteCandidateRows(id)
	return nil
}

func (r repo) GetInterview(_ context.Context, id uuid.UUID) (*db.Interview, error) {
	if err := r.enter("GetInterview"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	iv, ok := r.st().interviews[id]
	if !ok {
		return nil, nil
	}
	return &iv, nil
}

func (r repo) ListInterviews(_ context.Context, candidateID uuid.UUID) ([]db.Interview, error) {
	if err := r.enter("ListInterviews"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	out := make([]db.Interview, 0)
	for _, iv := range r.st().interviews {
		if iv.CandidateID == candidateID {
			out = append(out, iv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r repo) CreateInterview(_ context.Context, candidateID uuid.UUID, in *db.InterviewInput) (*db.Interview, error) {
	if err := r.enter("CreateInterview"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	if _, ok := r.st().candidates[candidateID]; !ok {
		return nil, db.ErrNotFound
	}
	now := r.mem.tick()
	iv := interviewFromInput(in)
	iv.ID = uuid.New()
	iv.CandidateID = candidateID
	iv.CreatedAt = now
	iv.UpdatedAt = now
	r.st().interviews[iv.ID] = iv
	return &iv, nil
}

func (r repo) UpdateInterview(_ context.Context, id uuid.UUID, in *db.InterviewInput) (*db.Interview, error) {
	if err := r.enter("UpdateInterview"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	old, ok := r.st().interviews[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	iv := interviewFromInput(in)
	iv.ID = id
	iv.CandidateID = old.CandidateID
	iv.CreatedAt = old.CreatedAt
	iv.UpdatedAt = r.mem.tick()
	r.st().interviews[id] = iv
	return &iv, nil
}

func interviewFromInput(in *db.InterviewInput) db.Interview {
	return db.Interview{
		InterviewerID:   in.InterviewerID,
		Date:            in.Date,
		DurationMinutes: in.DurationMinutes,
		Type:            in.Type,
		Location:        in.Location,
		MeetingLink:     in.MeetingLink,
		Notes:           in.Notes,
		Feedback:        in.Feedback,
		Rating:          in.Rating,
		Status:          in.Status,
	}
}

func (r repo) DeleteInterview(_ context.Context, id uuid.UUID) error {
	if err := r.enter("DeleteInterview"); err != nil {
		return err
	}
	defer r.mem.mu.Unlock()
	if _, ok := r.st().interviews[id]; !ok {
		return db.ErrNotFound
	}
	delete(r.st().interviews, id)
	return nil
}

func (r repo) DeleteCandidateInterviews(_ context.Context, candidateID uuid.UUID) error {
	if err := r.enter("DeleteCandidateInterviews"); err != nil {
		return err
	}
	defer r.mem.mu.Unlock()
	for id, iv := range r.st().interviews {
		if iv.CandidateID == candidateID {
			delete(r.st().interviews, id)
		}
	}
	return nil
}

func (r repo) GetDocument(_ context.Context, id uuid.UUID) (*db.CandidateDocument, error) {
	if err := r.enter("GetDocument"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	d, ok := r.st().documents[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r repo) ListDocuments(_ context.Context, candidateID uuid.UUID) ([]db.CandidateDocument, error) {
	if err := r.enter("ListDocuments"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	out := make([]db.CandidateDocument, 0)
	for _, d := range r.st().documents {
		if d.CandidateID == candidateID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (r repo) CreateDocument(_ context.Context, candidateID uuid.UUID, in *db.DocumentInput) (*db.CandidateDocument, error) {
	if err := r.enter("CreateDocument"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	if _, ok := r.st().candidates[candidateID]; !ok {
		return nil, db.ErrNotFound
	}
	d := db.CandidateDocument{
		ID:           uuid.New(),
		CandidateID:  candidateID,
		Name:         in.Name,
		FileURL:      in.FileURL,
		DocumentType: in.DocumentType,
		UploadedAt:   r.mem.tick(),
	}
	r.st().documents[d.ID] = d
	return &d, nil
}

func (r repo) DeleteDocument(_ context.Context, id uuid.UUID) error {
	if err := r.enter("DeleteDocument"); err != nil {
		return err
	}
	defer r.mem.mu.Unlock()
	if _, ok := r.st().documents[id]; !ok {
		return db.ErrNotFound
	}
	delete(r.st().documents, id)
	return nil
}

func (r repo) GetContract(_ context.Context, id uuid.UUID) (*db.Contract, error) {
	if err := r.enter("GetContract"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	c, ok := r.st().contracts[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r repo) ListContracts(_ context.Context, employeeID uuid.UUID) ([]db.Contract, error) {
	if err := r.enter("ListContracts"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	out := make([]db.Contract, 0)
	for _, c := range r.st().contracts {
		if c.EmployeeID == employeeID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate.Time) })
	return out, nil
}

func (r repo) CreateContract(_ context.Context, in *db.ContractInput) (*db.Contract, error) {
	if err := r.enter("CreateContract"); err != nil {
		return nil, err
	}
	defer r.mem.mu.Unlock()
	if _, ok := r.st().employees[in.EmployeeID]; !ok {
		return nil, db.ErrNotFound
	}
	c := db.Contract{
		ID:           uuid.New(),
		EmployeeID:   in.EmployeeID,
		ContractType: in.ContractType,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Salary:       in.Salary,
		Terms:        in.Terms,
		CreatedAt:    r.mem.tick(),
	}
	r.st().contracts[c.ID] = c
	return &c, nil
}
