package absence_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pto-track/internal/absence"
	"pto-track/internal/domain"
	"pto-track/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeAbsenceService struct {
	createFn               func(ctx context.Context, req absence.CreateAbsenceRequest) (absence.AbsenceResponse, error)
	getByRangeFn           func(ctx context.Context, start, end time.Time, statuses []string) ([]absence.AbsenceResponse, error)
	getByEmployeeFn        func(ctx context.Context, employeeID int, start, end time.Time, statuses []string) ([]absence.AbsenceResponse, error)
	getVisibleToEmployeeFn func(ctx context.Context, employeeID int, start, end time.Time, statuses []string) ([]absence.AbsenceResponse, error)
	getPendingFn           func(ctx context.Context) ([]absence.AbsenceResponse, error)
	getByIDFn              func(ctx context.Context, id string) (absence.AbsenceResponse, error)
	updateFn               func(ctx context.Context, id string, req absence.UpdateAbsenceRequest) (absence.AbsenceResponse, error)
	approveFn              func(ctx context.Context, id string, approverID int, comments string) (absence.AbsenceResponse, error)
	rejectFn               func(ctx context.Context, id string, approverID int, reason string) (absence.AbsenceResponse, error)
	cancelFn               func(ctx context.Context, id string, employeeID int) (absence.AbsenceResponse, error)
	deleteFn               func(ctx context.Context, id string) error
}

func (f *fakeAbsenceService) Create(ctx context.Context, req absence.CreateAbsenceRequest) (absence.AbsenceResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeAbsenceService) GetByRange(ctx context.Context, start, end time.Time, statuses []string) ([]absence.AbsenceResponse, error) {
	return f.getByRangeFn(ctx, start, end, statuses)
}
func (f *fakeAbsenceService) GetByEmployee(ctx context.Context, employeeID int, start, end time.Time, statuses []string) ([]absence.AbsenceResponse, error) {
	return f.getByEmployeeFn(ctx, employeeID, start, end, statuses)
}
func (f *fakeAbsenceService) GetVisibleToEmployee(ctx context.Context, employeeID int, start, end time.Time, statuses []string) ([]absence.AbsenceResponse, error) {
	return f.getVisibleToEmployeeFn(ctx, employeeID, start, end, statuses)
}
func (f *fakeAbsenceService) GetPending(ctx context.Context) ([]absence.AbsenceResponse, error) {
	return f.getPendingFn(ctx)
}
func (f *fakeAbsenceService) GetByID(ctx context.Context, id string) (absence.AbsenceResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeAbsenceService) Update(ctx context.Context, id string, req absence.UpdateAbsenceRequest) (absence.AbsenceResponse, error) {
	return f.updateFn(ctx, id, req)
}
func (f *fakeAbsenceService) Approve(ctx context.Context, id string, approverID int, comments string) (absence.AbsenceResponse, error) {
	return f.approveFn(ctx, id, approverID, comments)
}
func (f *fakeAbsenceService) Reject(ctx context.Context, id string, approverID int, reason string) (absence.AbsenceResponse, error) {
	return f.rejectFn(ctx, id, approverID, reason)
}
func (f *fakeAbsenceService) Cancel(ctx context.Context, id string, employeeID int) (absence.AbsenceResponse, error) {
	return f.cancelFn(ctx, id, employeeID)
}
func (f *fakeAbsenceService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func testContext(t *testing.T, method, target, body string, actor domain.Actor) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ActorKey, actor)
	return c, w
}

func TestAbsenceHandler_List(t *testing.T) {
	employee := domain.Actor{ID: 7, Role: domain.RoleEmployee}
	manager := domain.Actor{ID: 3, Role: domain.RoleManager}

	t.Run("negative neither range nor employee id", func(t *testing.T) {
		h := absence.NewHandler(&fakeAbsenceService{})
		c, w := testContext(t, http.MethodGet, "/absences", "", manager)

		h.List(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("negative start without end", func(t *testing.T) {
		h := absence.NewHandler(&fakeAbsenceService{})
		c, w := testContext(t, http.MethodGet, "/absences?start=2026-09-01T00:00:00Z", "", manager)

		h.List(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("range listing for employee is narrowed to visible", func(t *testing.T) {
		visibleCalled := false
		svc := &fakeAbsenceService{
			getVisibleToEmployeeFn: func(ctx context.Context, employeeID int, start, end time.Time, statuses []string) ([]absence.AbsenceResponse, error) {
				visibleCalled = true
				assert.Equal(t, 7, employeeID)
				return nil, nil
			},
		}
		h := absence.NewHandler(svc)
		c, w := testContext(t, http.MethodGet,
			"/absences?start=2026-09-01T00:00:00Z&end=2026-10-01T00:00:00Z", "", employee)

		h.List(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, visibleCalled)
	})

	t.Run("range listing for manager uses full range query", func(t *testing.T) {
		svc := &fakeAbsenceService{
			getByRangeFn: func(ctx context.Context, start, end time.Time, statuses []string) ([]absence.AbsenceResponse, error) {
				assert.Equal(t, []string{domain.StatusPending, domain.StatusApproved}, statuses)
				return []absence.AbsenceResponse{}, nil
			},
		}
		h := absence.NewHandler(svc)
		c, w := testContext(t, http.MethodGet,
			"/absences?start=2026-09-01T00:00:00Z&end=2026-10-01T00:00:00Z&status[]=Pending&status[]=Approved", "", manager)

		h.List(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("employee id listing wins over range", func(t *testing.T) {
		svc := &fakeAbsenceService{
			getByEmployeeFn: func(ctx context.Context, employeeID int, start, end time.Time, statuses []string) ([]absence.AbsenceResponse, error) {
				assert.Equal(t, 9, employeeID)
				return nil, nil
			},
		}
		h := absence.NewHandler(svc)
		c, w := testContext(t, http.MethodGet, "/absences?employeeId=9", "", manager)

		h.List(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown statuses are skipped", func(t *testing.T) {
		svc := &fakeAbsenceService{
			getByEmployeeFn: func(ctx context.Context, employeeID int, start, end time.Time, statuses []string) ([]absence.AbsenceResponse, error) {
				assert.Equal(t, []string{domain.StatusApproved}, statuses)
				return nil, nil
			},
		}
		h := absence.NewHandler(svc)
		c, w := testContext(t, http.MethodGet, "/absences?employeeId=9&status[]=Bogus&status[]=approved", "", manager)

		h.List(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAbsenceHandler_Create(t *testing.T) {
	t.Run("negative employee creating for someone else", func(t *testing.T) {
		created := false
		svc := &fakeAbsenceService{
			createFn: func(ctx context.Context, req absence.CreateAbsenceRequest) (absence.AbsenceResponse, error) {
				created = true
				return absence.AbsenceResponse{}, nil
			},
		}
		h := absence.NewHandler(svc)
		body := `{"employeeId":9,"start":"2026-09-01T00:00:00Z","end":"2026-09-04T00:00:00Z","reason":"Vacation"}`
		c, w := testContext(t, http.MethodPost, "/absences", body, domain.Actor{ID: 7, Role: domain.RoleEmployee})

		h.Create(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, created)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})

	t.Run("success manager creating for a report", func(t *testing.T) {
		svc := &fakeAbsenceService{
			createFn: func(ctx context.Context, req absence.CreateAbsenceRequest) (absence.AbsenceResponse, error) {
				assert.Equal(t, 9, req.EmployeeID)
				return absence.AbsenceResponse{ID: uuid.New().String(), EmployeeID: 9, Status: domain.StatusPending}, nil
			},
		}
		h := absence.NewHandler(svc)
		body := `{"employeeId":9,"start":"2026-09-01T00:00:00Z","end":"2026-09-04T00:00:00Z","reason":"Vacation"}`
		c, w := testContext(t, http.MethodPost, "/absences", body, domain.Actor{ID: 3, Role: domain.RoleManager})

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative validation error", func(t *testing.T) {
		h := absence.NewHandler(&fakeAbsenceService{})
		c, w := testContext(t, http.MethodPost, "/absences", `{}`, domain.Actor{ID: 7, Role: domain.RoleEmployee})

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAbsenceHandler_Update(t *testing.T) {
	id := uuid.New().String()

	t.Run("negative non-owner is forbidden before the service runs", func(t *testing.T) {
		updated := false
		svc := &fakeAbsenceService{
			getByIDFn: func(ctx context.Context, gotID string) (absence.AbsenceResponse, error) {
				return absence.AbsenceResponse{ID: gotID, EmployeeID: 9, Status: domain.StatusPending}, nil
			},
			updateFn: func(ctx context.Context, gotID string, req absence.UpdateAbsenceRequest) (absence.AbsenceResponse, error) {
				updated = true
				return absence.AbsenceResponse{}, nil
			},
		}
		h := absence.NewHandler(svc)
		body := `{"start":"2026-09-08T00:00:00Z","end":"2026-09-11T00:00:00Z","reason":"Moved"}`
		c, w := testContext(t, http.MethodPut, "/absences/"+id, body, domain.Actor{ID: 7, Role: domain.RoleEmployee})
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.Update(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, updated)
	})

	t.Run("success admin updating another employee's request", func(t *testing.T) {
		svc := &fakeAbsenceService{
			getByIDFn: func(ctx context.Context, gotID string) (absence.AbsenceResponse, error) {
				return absence.AbsenceResponse{ID: gotID, EmployeeID: 9, Status: domain.StatusPending}, nil
			},
			updateFn: func(ctx context.Context, gotID string, req absence.UpdateAbsenceRequest) (absence.AbsenceResponse, error) {
				return absence.AbsenceResponse{ID: gotID, EmployeeID: 9, Reason: req.Reason, Status: domain.StatusPending}, nil
			},
		}
		h := absence.NewHandler(svc)
		body := `{"start":"2026-09-08T00:00:00Z","end":"2026-09-11T00:00:00Z","reason":"Moved"}`
		c, w := testContext(t, http.MethodPut, "/absences/"+id, body, domain.Actor{ID: 1, Role: domain.RoleAdmin})
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.Update(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAbsenceHandler_Approve(t *testing.T) {
	id := uuid.New().String()

	t.Run("negative approver id mismatch", func(t *testing.T) {
		approved := false
		svc := &fakeAbsenceService{
			approveFn: func(ctx context.Context, gotID string, approverID int, comments string) (absence.AbsenceResponse, error) {
				approved = true
				return absence.AbsenceResponse{}, nil
			},
		}
		h := absence.NewHandler(svc)
		body := `{"approverId":5,"comments":"ok"}`
		c, w := testContext(t, http.MethodPost, "/absences/"+id+"/approve", body, domain.Actor{ID: 3, Role: domain.RoleManager})
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.Approve(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, approved)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "Approver ID must match the authenticated user", env.Error.Message)
	})

	t.Run("success returns no content", func(t *testing.T) {
		svc := &fakeAbsenceService{
			approveFn: func(ctx context.Context, gotID string, approverID int, comments string) (absence.AbsenceResponse, error) {
				assert.Equal(t, id, gotID)
				assert.Equal(t, 3, approverID)
				assert.Equal(t, "ok", comments)
				return absence.AbsenceResponse{ID: gotID, Status: domain.StatusApproved}, nil
			},
		}
		h := absence.NewHandler(svc)
		body := `{"approverId":3,"comments":"ok"}`
		c, w := testContext(t, http.MethodPost, "/absences/"+id+"/approve", body, domain.Actor{ID: 3, Role: domain.RoleManager})
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.Approve(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestAbsenceHandler_Reject(t *testing.T) {
	id := uuid.New().String()

	t.Run("negative missing reason", func(t *testing.T) {
		h := absence.NewHandler(&fakeAbsenceService{})
		body := `{"approverId":3}`
		c, w := testContext(t, http.MethodPost, "/absences/"+id+"/reject", body, domain.Actor{ID: 3, Role: domain.RoleManager})
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.Reject(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success returns no content", func(t *testing.T) {
		svc := &fakeAbsenceService{
			rejectFn: func(ctx context.Context, gotID string, approverID int, reason string) (absence.AbsenceResponse, error) {
				assert.Equal(t, "No cover available", reason)
				return absence.AbsenceResponse{ID: gotID, Status: domain.StatusRejected}, nil
			},
		}
		h := absence.NewHandler(svc)
		body := `{"approverId":3,"reason":"No cover available"}`
		c, w := testContext(t, http.MethodPost, "/absences/"+id+"/reject", body, domain.Actor{ID: 3, Role: domain.RoleManager})
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.Reject(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestAbsenceHandler_Cancel(t *testing.T) {
	id := uuid.New().String()

	t.Run("negative acting for another employee", func(t *testing.T) {
		cancelled := false
		svc := &fakeAbsenceService{
			cancelFn: func(ctx context.Context, gotID string, employeeID int) (absence.AbsenceResponse, error) {
				cancelled = true
				return absence.AbsenceResponse{}, nil
			},
		}
		h := absence.NewHandler(svc)
		c, w := testContext(t, http.MethodPost, "/absences/"+id+"/cancel?employeeId=9", "", domain.Actor{ID: 7, Role: domain.RoleEmployee})
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.Cancel(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, cancelled)
	})

	t.Run("negative missing employee id", func(t *testing.T) {
		h := absence.NewHandler(&fakeAbsenceService{})
		c, w := testContext(t, http.MethodPost, "/absences/"+id+"/cancel", "", domain.Actor{ID: 7, Role: domain.RoleEmployee})
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.Cancel(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success returns no content", func(t *testing.T) {
		svc := &fakeAbsenceService{
			cancelFn: func(ctx context.Context, gotID string, employeeID int) (absence.AbsenceResponse, error) {
				assert.Equal(t, 7, employeeID)
				return absence.AbsenceResponse{ID: gotID, Status: domain.StatusCancelled}, nil
			},
		}
		h := absence.NewHandler(svc)
		c, w := testContext(t, http.MethodPost, "/absences/"+id+"/cancel?employeeId=7", "", domain.Actor{ID: 7, Role: domain.RoleEmployee})
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.Cancel(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestAbsenceHandler_Delete(t *testing.T) {
	id := uuid.New().String()

	t.Run("negative non-owner", func(t *testing.T) {
		svc := &fakeAbsenceService{
			getByIDFn: func(ctx context.Context, gotID string) (absence.AbsenceResponse, error) {
				return absence.AbsenceResponse{ID: gotID, EmployeeID: 9, Status: domain.StatusPending}, nil
			},
		}
		h := absence.NewHandler(svc)
		c, w := testContext(t, http.MethodDelete, "/absences/"+id, "", domain.Actor{ID: 7, Role: domain.RoleEmployee})
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.Delete(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("success for owner", func(t *testing.T) {
		svc := &fakeAbsenceService{
			getByIDFn: func(ctx context.Context, gotID string) (absence.AbsenceResponse, error) {
				return absence.AbsenceResponse{ID: gotID, EmployeeID: 7, Status: domain.StatusPending}, nil
			},
			deleteFn: func(ctx context.Context, gotID string) error {
				assert.Equal(t, id, gotID)
				return nil
			},
		}
		h := absence.NewHandler(svc)
		c, w := testContext(t, http.MethodDelete, "/absences/"+id, "", domain.Actor{ID: 7, Role: domain.RoleEmployee})
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.Delete(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
