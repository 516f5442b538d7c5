package server

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCreateJob tests job posting creation with skills
func TestCreateJob(t *testing.T) {
	ts := newTestServer(t)
	goSkill := ts.store.AddSkill("Go")

	w := ts.call(t, http.MethodPost, "/jobs", map[string]any{
		"title":        "Backend Engineer",
		"departmentId": ts.dept.ID.String(),
		"skills":       []map[string]any{{"skillId": goSkill.ID.String(), "required": true, "minLevel": 3}},
	})

	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	job := decodeBody(t, w)["jobPosting"].(map[string]any)
	assert.Equal(t, "Backend Engineer", job["title"])
	assert.Equal(t, true, job["isActive"])
	assert.NotEmpty(t, job["publicToken"])
	skills := job["skills"].([]any)
	require.Len(t, skills, 1)
	assert.Equal(t, "Go", field(skills[0].(map[string]any), "name"))
}

// TestCreateJob_Errors tests reference and validation failures
func TestCreateJob_Errors(t *testing.T) {
	ts := newTestServer(t)

	w := ts.call(t, http.MethodPost, "/jobs", map[string]any{"title": "Engineer", "departmentId": uuid.NewString()})
	requireError(t, w, http.StatusNotFound, "DEPARTMENT_NOT_FOUND")

	w = ts.call(t, http.MethodPost, "/jobs", map[string]any{
		"title":        "Engineer",
		"departmentId": ts.dept.ID.String(),
		"skills":       []map[string]any{{"skillId": uuid.NewString()}},
	})
	requireError(t, w, http.StatusNotFound, "SKILL_NOT_FOUND")

	w = ts.call(t, http.MethodPost, "/jobs", map[string]any{"departmentId": ts.dept.ID.String()})
	body := requireError(t, w, http.StatusBadRequest, "VALIDATION_ERROR")
	assert.Contains(t, body["message"], "title is required")
}

// TestGetJob_InvalidID tests that malformed IDs are rejected before lookup
func TestGetJob_InvalidID(t *testing.T) {
	ts := newTestServer(t)

	body := requireError(t, ts.call(t, http.MethodGet, "/jobs/not-a-uuid", nil), http.StatusBadRequest, "VALIDATION_ERROR")
	assert.Equal(t, "Invalid job posting ID", body["message"])

	requireError(t, ts.call(t, http.MethodGet, "/jobs/"+uuid.NewString(), nil), http.StatusNotFound, "JOB_NOT_FOUND")
}

// TestListJobs_Filters tests the active and department filters
func TestListJobs_Filters(t *testing.T) {
	ts := newTestServer(t)
	open := ts.createJob(t, "Open role")
	closed := ts.createJob(t, "Closed role")
	require.Equal(t, http.StatusOK, ts.call(t, http.MethodPost, "/jobs/"+closed["id"].(string)+"/archive", nil).Code)

	w := ts.call(t, http.MethodGet, "/jobs?active=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	jobs := decodeBody(t, w)["jobPostings"].([]any)
	require.Len(t, jobs, 1)
	assert.Equal(t, open["id"], field(jobs[0].(map[string]any), "id"))

	w = ts.call(t, http.MethodGet, "/jobs?departmentId="+ts.dept.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["jobPostings"], 2)

	requireError(t, ts.call(t, http.MethodGet, "/jobs?active=maybe", nil), http.StatusBadRequest, "VALIDATION_ERROR")
	requireError(t, ts.call(t, http.MethodGet, "/jobs?departmentId=sales", nil), http.StatusBadRequest, "VALIDATION_ERROR")
}

// TestUpdateJob tests replacing a posting's fields
func TestUpdateJob(t *testing.T) {
	ts := newTestServer(t)
	job := ts.createJob(t, "Backend Engineer")

	w := ts.call(t, http.MethodPut, "/jobs/"+job["id"].(string), map[string]any{
		"title":        "Senior Backend Engineer",
		"departmentId": ts.dept.ID.String(),
		"isActive":     false,
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	updated := decodeBody(t, w)["jobPosting"].(map[string]any)
	assert.Equal(t, "Senior Backend Engineer", updated["title"])
	assert.Equal(t, false, updated["isActive"])
}

// TestRotatePublicToken tests that the old public link stops working
func TestRotatePublicToken(t *testing.T) {
	ts := newTestServer(t)
	job := ts.createJob(t, "Backend Engineer")
	oldToken := job["publicToken"].(string)

	w := ts.call(t, http.MethodPost, "/jobs/"+job["id"].(string)+"/public-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	newToken := field(decodeBody(t, w), "jobPosting", "publicToken").(string)
	assert.NotEqual(t, oldToken, newToken)

	requireError(t, ts.call(t, http.MethodGet, "/public/jobs/"+oldToken, nil), http.StatusNotFound, "JOB_NOT_FOUND")
	assert.Equal(t, http.StatusOK, ts.call(t, http.MethodGet, "/public/jobs/"+newToken, nil).Code)
}

// TestJobPipelineAndDelete tests stage counts and cascading delete
func TestJobPipelineAndDelete(t *testing.T) {
	ts := newTestServer(t)
	job := ts.createJob(t, "Backend Engineer")
	jobID := job["id"].(string)
	c := ts.createCandidate(t, jobID, "ada@example.com")
	ts.createCandidate(t, jobID, "grace@example.com")
	require.Equal(t, http.StatusOK, ts.call(t, http.MethodPut, "/candidates/"+c["id"].(string)+"/stage", map[string]any{"stage": "SCREENING"}).Code)

	w := ts.call(t, http.MethodGet, "/jobs/"+jobID+"/pipeline", nil)
	require.Equal(t, http.StatusOK, w.Code)
	counts := map[string]float64{}
	for _, row := range decodeBody(t, w)["pipeline"].([]any) {
		m := row.(map[string]any)
		if n := m["count"].(float64); n > 0 {
			counts[m["stage"].(string)] = n
		}
	}
	assert.Equal(t, map[string]float64{"APPLIED": 1, "SCREENING": 1}, counts)

	w = ts.call(t, http.MethodDelete, "/jobs/"+jobID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Job posting deleted", decodeBody(t, w)["message"])

	requireError(t, ts.call(t, http.MethodGet, "/candidates/"+c["id"].(string), nil), http.StatusNotFound, "CANDIDATE_NOT_FOUND")
	requireError(t, ts.call(t, http.MethodDelete, "/jobs/"+jobID, nil), http.StatusNotFound, "JOB_NOT_FOUND")
}
