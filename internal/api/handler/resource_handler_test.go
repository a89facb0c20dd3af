package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/talenthub/talenthub-api/internal/core/domain"
)

const jobID = "3f1c2f4e-8a53-4c0b-9d38-5b7f3f8b2a10"

type stubService[T any] struct {
	calls          int
	createFn       func(ctx context.Context, fields domain.Fields) (*T, error)
	getAllFn       func(ctx context.Context) ([]T, error)
	getByIDFn      func(ctx context.Context, id string) (*T, error)
	getPaginatedFn func(ctx context.Context, page, limit int) ([]T, error)
	updateFn       func(ctx context.Context, id string, fields domain.Fields) (*T, error)
	deleteFn       func(ctx context.Context, id string) (*T, error)
}

func (s *stubService[T]) Create(ctx context.Context, fields domain.Fields) (*T, error) {
	s.calls++
	return s.createFn(ctx, fields)
}

func (s *stubService[T]) GetAll(ctx context.Context) ([]T, error) {
	s.calls++
	return s.getAllFn(ctx)
}

func (s *stubService[T]) GetByID(ctx context.Context, id string) (*T, error) {
	s.calls++
	return s.getByIDFn(ctx, id)
}

func (s *stubService[T]) GetPaginated(ctx context.Context, page, limit int) ([]T, error) {
	s.calls++
	return s.getPaginatedFn(ctx, page, limit)
}

func (s *stubService[T]) UpdateByID(ctx context.Context, id string, fields domain.Fields) (*T, error) {
	s.calls++
	return s.updateFn(ctx, id, fields)
}

func (s *stubService[T]) DeleteByID(ctx context.Context, id string) (*T, error) {
	s.calls++
	return s.deleteFn(ctx, id)
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v (%s)", err, rec.Body.String())
	}
	if len(resp) != 1 {
		t.Fatalf("expected a single error member, got %v", resp)
	}
	return resp["error"]
}

const validJob = `{"title":"X","client_id":"` + jobID + `","description":"d","category":"c","budget_min":100,"budget_max":200,"experience_level":"beginner","status":"open"}`

func TestCreate_RejectsEmptyOrNonObjectBody(t *testing.T) {
	for _, body := range []string{"", "{}", "[]", `"text"`, "null", "42", "{not json"} {
		stub := &stubService[domain.Job]{}
		h := NewJobHandler(stub, Options{Logger: zerolog.Nop()})

		c, rec := newContext(http.MethodPost, "/api/jobs", body)
		if err := h.Create(c); err != nil {
			t.Fatalf("body %q: handler error: %v", body, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rec.Code)
		}
		if msg := errorBody(t, rec); msg != "Invalid job data" {
			t.Fatalf("body %q: unexpected message %q", body, msg)
		}
		if stub.calls != 0 {
			t.Fatalf("body %q: service must not be called", body)
		}
	}
}

func TestCreate_RejectsInvalidEnum(t *testing.T) {
	stub := &stubService[domain.Job]{}
	h := NewJobHandler(stub, Options{Logger: zerolog.Nop()})

	body := strings.Replace(validJob, `"beginner"`, `"guru"`, 1)
	c, rec := newContext(http.MethodPost, "/api/jobs", body)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	msg := errorBody(t, rec)
	if !strings.Contains(msg, "experience_level must be one of: beginner intermediate expert") {
		t.Fatalf("unexpected message %q", msg)
	}
	if stub.calls != 0 {
		t.Fatalf("service must not be called")
	}
}

func TestCreate_Success(t *testing.T) {
	stub := &stubService[domain.Job]{
		createFn: func(_ context.Context, fields domain.Fields) (*domain.Job, error) {
			if fields["title"] != "X" || fields["budget_min"] != 100.0 || fields["status"] != "open" {
				t.Fatalf("unexpected fields %v", fields)
			}
			if _, ok := fields["id"]; ok {
				t.Fatalf("id must not be forwarded")
			}
			return &domain.Job{ID: jobID, Title: "X"}, nil
		},
	}
	h := NewJobHandler(stub, Options{Logger: zerolog.Nop()})

	c, rec := newContext(http.MethodPost, "/api/jobs", strings.Replace(validJob, "{", `{"id":"forged",`, 1))
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var job domain.Job
	if err := json.Unmarshal(rec.Body.Bytes(), &job); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if job.ID != jobID {
		t.Fatalf("unexpected body %+v", job)
	}
}

func TestCreate_StoreFailureIsGeneric500(t *testing.T) {
	stub := &stubService[domain.Job]{
		createFn: func(context.Context, domain.Fields) (*domain.Job, error) {
			return nil, errors.New("store: insert jobs: duplicate key value violates unique constraint")
		},
	}
	h := NewJobHandler(stub, Options{Logger: zerolog.Nop()})

	c, rec := newContext(http.MethodPost, "/api/jobs", validJob)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if msg := errorBody(t, rec); msg != "Failed to create job" {
		t.Fatalf("store detail leaked or wrong message: %q", msg)
	}
}

func TestGetByID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "malformed id", id: "page", wantCode: http.StatusBadRequest, wantMsg: "Invalid job id"},
		{name: "not found", id: jobID, err: domain.ErrNotFound, wantCode: http.StatusNotFound, wantMsg: "Job not found"},
		{name: "store failure", id: jobID, err: errors.New("timeout"), wantCode: http.StatusInternalServerError, wantMsg: "Failed to get job"},
		{name: "found", id: jobID, wantCode: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubService[domain.Job]{
				getByIDFn: func(_ context.Context, id string) (*domain.Job, error) {
					if tc.err != nil {
						return nil, tc.err
					}
					return &domain.Job{ID: id}, nil
				},
			}
			h := NewJobHandler(stub, Options{Logger: zerolog.Nop()})

			c, rec := newContext(http.MethodGet, "/api/jobs/"+tc.id, "")
			c.SetParamNames("id")
			c.SetParamValues(tc.id)
			if err := h.GetByID(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			if tc.wantMsg != "" {
				if msg := errorBody(t, rec); msg != tc.wantMsg {
					t.Fatalf("unexpected message %q", msg)
				}
			}
		})
	}
}

func TestGetPaginated_Params(t *testing.T) {
	tests := []struct {
		page, limit string
		wantCode    int
	}{
		{"1", "10", http.StatusOK},
		{"3", "100", http.StatusOK},
		{"0", "10", http.StatusBadRequest},
		{"1", "0", http.StatusBadRequest},
		{"-1", "10", http.StatusBadRequest},
		{"one", "10", http.StatusBadRequest},
		{"1", "101", http.StatusBadRequest},
	}

	for _, tc := range tests {
		var gotPage, gotLimit int
		stub := &stubService[domain.Job]{
			getPaginatedFn: func(_ context.Context, page, limit int) ([]domain.Job, error) {
				gotPage, gotLimit = page, limit
				return []domain.Job{}, nil
			},
		}
		h := NewJobHandler(stub, Options{MaxPageLimit: 100, Logger: zerolog.Nop()})

		c, rec := newContext(http.MethodGet, "/api/jobs/page/"+tc.page+"/limit/"+tc.limit, "")
		c.SetParamNames("page", "limit")
		c.SetParamValues(tc.page, tc.limit)
		if err := h.GetPaginated(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != tc.wantCode {
			t.Fatalf("page=%s limit=%s: expected %d, got %d", tc.page, tc.limit, tc.wantCode, rec.Code)
		}
		if tc.wantCode == http.StatusBadRequest {
			if msg := errorBody(t, rec); msg != "Invalid page or limit" {
				t.Fatalf("unexpected message %q", msg)
			}
			if stub.calls != 0 {
				t.Fatalf("service must not be called for invalid params")
			}
			continue
		}
		if rec.Body.String() != "[]\n" {
			t.Fatalf("expected empty JSON array, got %q", rec.Body.String())
		}
		if gotPage == 0 || gotLimit == 0 {
			t.Fatalf("params not forwarded")
		}
	}
}

func TestGetPaginated_NoCapWhenZero(t *testing.T) {
	stub := &stubService[domain.Job]{
		getPaginatedFn: func(context.Context, int, int) ([]domain.Job, error) { return []domain.Job{}, nil },
	}
	h := NewJobHandler(stub, Options{Logger: zerolog.Nop()})

	c, rec := newContext(http.MethodGet, "/api/jobs/page/1/limit/5000", "")
	c.SetParamNames("page", "limit")
	c.SetParamValues("1", "5000")
	if err := h.GetPaginated(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUpdateByID_ForwardsOnlySuppliedFields(t *testing.T) {
	stub := &stubService[domain.Job]{
		updateFn: func(_ context.Context, id string, fields domain.Fields) (*domain.Job, error) {
			if id != jobID {
				t.Fatalf("unexpected id %s", id)
			}
			if len(fields) != 1 || fields["status"] != "closed" {
				t.Fatalf("unexpected fields %v", fields)
			}
			return &domain.Job{ID: id, Status: domain.JobClosed}, nil
		},
	}
	h := NewJobHandler(stub, Options{Logger: zerolog.Nop()})

	c, rec := newContext(http.MethodPut, "/api/jobs/"+jobID, `{"status":"closed"}`)
	c.SetParamNames("id")
	c.SetParamValues(jobID)
	if err := h.UpdateByID(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUpdateByID_RejectsBodyWithoutKnownFields(t *testing.T) {
	stub := &stubService[domain.Job]{}
	h := NewJobHandler(stub, Options{Logger: zerolog.Nop()})

	for _, body := range []string{`{"id":"x","created_at":"2020-01-01T00:00:00Z"}`, `{}`} {
		c, rec := newContext(http.MethodPut, "/api/jobs/"+jobID, body)
		c.SetParamNames("id")
		c.SetParamValues(jobID)
		if err := h.UpdateByID(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
	if stub.calls != 0 {
		t.Fatalf("service must not be called")
	}
}

func TestUpdateByID_ExplicitNullClearsNullableColumns(t *testing.T) {
	var got domain.Fields
	stub := &stubService[domain.User]{
		updateFn: func(_ context.Context, id string, fields domain.Fields) (*domain.User, error) {
			got = fields
			return &domain.User{ID: id}, nil
		},
	}
	h := NewUserHandler(stub, Options{Logger: zerolog.Nop()})

	c, rec := newContext(http.MethodPut, "/api/users/"+jobID, `{"bio":null,"profile_image":null,"full_name":null}`)
	c.SetParamNames("id")
	c.SetParamValues(jobID)
	if err := h.UpdateByID(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(got) != 2 {
		t.Fatalf("expected bio and profile_image only, got %v", got)
	}
	for _, col := range []string{"bio", "profile_image"} {
		if v, ok := got[col]; !ok || v != nil {
			t.Fatalf("%s: expected explicit nil, got %v (present=%v)", col, v, ok)
		}
	}
}

func TestUpdateByID_NullForRequiredColumnIsIgnored(t *testing.T) {
	stub := &stubService[domain.Job]{}
	h := NewJobHandler(stub, Options{Logger: zerolog.Nop()})

	c, rec := newContext(http.MethodPut, "/api/jobs/"+jobID, `{"title":null}`)
	c.SetParamNames("id")
	c.SetParamValues(jobID)
	if err := h.UpdateByID(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest || stub.calls != 0 {
		t.Fatalf("expected 400 without service call, got %d (calls=%d)", rec.Code, stub.calls)
	}
}

func TestUpdateProject_ReassignsFreelancer(t *testing.T) {
	const freelancerID = "9b2e7c1a-4d3f-4e8b-a6c5-1f0d2e3b4a59"
	stub := &stubService[domain.Project]{
		updateFn: func(_ context.Context, id string, fields domain.Fields) (*domain.Project, error) {
			if len(fields) != 1 || fields["freelancer_id"] != freelancerID {
				t.Fatalf("unexpected fields %v", fields)
			}
			return &domain.Project{ID: id}, nil
		},
	}
	h := NewProjectHandler(stub, Options{Logger: zerolog.Nop()})

	c, rec := newContext(http.MethodPut, "/api/projects/"+jobID, `{"freelancer_id":"`+freelancerID+`"}`)
	c.SetParamNames("id")
	c.SetParamValues(jobID)
	if err := h.UpdateByID(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	c, rec = newContext(http.MethodPut, "/api/projects/"+jobID, `{"freelancer_id":"u1"}`)
	c.SetParamNames("id")
	c.SetParamValues(jobID)
	if err := h.UpdateByID(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("non-uuid freelancer_id: expected 400, got %d", rec.Code)
	}
}

func TestDeleteByID_NotFound(t *testing.T) {
	stub := &stubService[domain.Project]{
		deleteFn: func(context.Context, string) (*domain.Project, error) { return nil, domain.ErrNotFound },
	}
	h := NewProjectHandler(stub, Options{Logger: zerolog.Nop()})

	c, rec := newContext(http.MethodDelete, "/api/projects/"+jobID, "")
	c.SetParamNames("id")
	c.SetParamValues(jobID)
	if err := h.DeleteByID(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if msg := errorBody(t, rec); msg != "Project not found" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestGetAll_StoreFailure(t *testing.T) {
	stub := &stubService[domain.User]{
		getAllFn: func(context.Context) ([]domain.User, error) { return nil, errors.New("down") },
	}
	h := NewUserHandler(stub, Options{Logger: zerolog.Nop()})

	c, rec := newContext(http.MethodGet, "/api/users", "")
	if err := h.GetAll(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if msg := errorBody(t, rec); msg != "Failed to get users" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestCreateUser_HashesPassword(t *testing.T) {
	stub := &stubService[domain.User]{
		createFn: func(_ context.Context, fields domain.Fields) (*domain.User, error) {
			if _, ok := fields["password"]; ok {
				t.Fatalf("clear text password forwarded")
			}
			hash, _ := fields["password_hash"].(string)
			if bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret-pass")) != nil {
				t.Fatalf("password_hash does not match")
			}
			if _, ok := fields["bio"]; ok {
				t.Fatalf("absent optional field forwarded")
			}
			return &domain.User{ID: jobID, Email: "a@example.com"}, nil
		},
	}
	h := NewUserHandler(stub, Options{Logger: zerolog.Nop()})

	body := `{"email":"a@example.com","password":"s3cret-pass","role":"client","full_name":"Ada"}`
	c, rec := newContext(http.MethodPost, "/api/users", body)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response exposes password data: %s", rec.Body.String())
	}
}

func TestCreateUser_ValidationMessagesUseJSONNames(t *testing.T) {
	stub := &stubService[domain.User]{}
	h := NewUserHandler(stub, Options{Logger: zerolog.Nop()})

	c, rec := newContext(http.MethodPost, "/api/users", `{"email":"nope","role":"client"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	msg := errorBody(t, rec)
	for _, want := range []string{"email must be a valid email", "password is required", "full_name is required"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q missing %q", msg, want)
		}
	}
}
