package absence_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"pto-track/internal/absence"
	absenceerrors "pto-track/internal/absence/errors"
	"pto-track/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAbsenceRepository struct {
	withTxFn                func(tx *sql.Tx) absence.Repository
	createFn                func(ctx context.Context, a *absence.AbsenceRequest) error
	findByIDFn              func(ctx context.Context, id string) (*absence.AbsenceRequest, error)
	findByRangeFn           func(ctx context.Context, start, end time.Time, statuses []string) ([]absence.AbsenceRequest, error)
	findByEmployeeFn        func(ctx context.Context, employeeID int, start, end time.Time, statuses []string) ([]absence.AbsenceRequest, error)
	findVisibleToEmployeeFn func(ctx context.Context, employeeID int, start, end time.Time, statuses []string) ([]absence.AbsenceRequest, error)
	findPendingFn           func(ctx context.Context) ([]absence.AbsenceRequest, error)
	updateFn                func(ctx context.Context, a *absence.AbsenceRequest) error
	deleteFn                func(ctx context.Context, id string) error
}

func (f *fakeAbsenceRepository) WithTx(tx *sql.Tx) absence.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeAbsenceRepository) Create(ctx context.Context, a *absence.AbsenceRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}

func (f *fakeAbsenceRepository) FindByID(ctx context.Context, id string) (*absence.AbsenceRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAbsenceRepository) FindByRange(ctx context.Context, start, end time.Time, statuses []string) ([]absence.AbsenceRequest, error) {
	if f.findByRangeFn != nil {
		return f.findByRangeFn(ctx, start, end, statuses)
	}
	return nil, nil
}

func (f *fakeAbsenceRepository) FindByEmployee(ctx context.Context, employeeID int, start, end time.Time, statuses []string) ([]absence.AbsenceRequest, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, employeeID, start, end, statuses)
	}
	return nil, nil
}

func (f *fakeAbsenceRepository) FindVisibleToEmployee(ctx context.Context, employeeID int, start, end time.Time, statuses []string) ([]absence.AbsenceRequest, error) {
	if f.findVisibleToEmployeeFn != nil {
		return f.findVisibleToEmployeeFn(ctx, employeeID, start, end, statuses)
	}
	return nil, nil
}

func (f *fakeAbsenceRepository) FindPending(ctx context.Context) ([]absence.AbsenceRequest, error) {
	if f.findPendingFn != nil {
		return f.findPendingFn(ctx)
	}
	return nil, nil
}

func (f *fakeAbsenceRepository) Update(ctx context.Context, a *absence.AbsenceRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, a)
	}
	return nil
}

func (f *fakeAbsenceRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type absenceServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service absence.Service
	repo    *fakeAbsenceRepository
}

func setupAbsenceServiceTest(t *testing.T) *absenceServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeAbsenceRepository{}
	svc := absence.NewService(db, repo)

	return &absenceServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func pendingAbsence(id uuid.UUID, employeeID int) *absence.AbsenceRequest {
	return &absence.AbsenceRequest{
		ID:            id,
		Start:         time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		End:           time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
		Reason:        "Vacation",
		EmployeeID:    employeeID,
		Status:        domain.StatusPending,
		RequestedDate: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
	}
}

func TestAbsenceService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success creates pending request with no approver", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := absence.CreateAbsenceRequest{
			EmployeeID: 7,
			Start:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			End:        time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
			Reason:     "Vacation",
		}

		var createdID string
		deps.repo.createFn = func(ctx context.Context, a *absence.AbsenceRequest) error {
			assert.Equal(t, domain.StatusPending, a.Status)
			assert.Nil(t, a.ApproverID)
			assert.Nil(t, a.ApprovedDate)
			assert.Equal(t, 7, a.EmployeeID)
			assert.False(t, a.RequestedDate.IsZero())
			createdID = a.ID.String()
			return nil
		}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*absence.AbsenceRequest, error) {
			assert.Equal(t, createdID, id)
			a := pendingAbsence(uuid.MustParse(id), 7)
			return a, nil
		}

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, createdID, resp.ID)
		assert.Equal(t, domain.StatusPending, resp.Status)
		assert.Nil(t, resp.ApproverID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative end not after start", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		req := absence.CreateAbsenceRequest{
			EmployeeID: 7,
			Start:      time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
			End:        time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			Reason:     "Vacation",
		}

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, absenceerrors.ErrInvalidDateRange)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAbsenceService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success while pending", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, gotID string) (*absence.AbsenceRequest, error) {
			assert.Equal(t, id.String(), gotID)
			return pendingAbsence(id, 7), nil
		}
		deps.repo.updateFn = func(ctx context.Context, a *absence.AbsenceRequest) error {
			assert.Equal(t, "Moved by a week", a.Reason)
			assert.Equal(t, domain.StatusPending, a.Status)
			return nil
		}

		resp, err := deps.service.Update(ctx, id.String(), absence.UpdateAbsenceRequest{
			Start:  time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
			End:    time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC),
			Reason: "Moved by a week",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Moved by a week", resp.Reason)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative non-pending request", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, gotID string) (*absence.AbsenceRequest, error) {
			a := pendingAbsence(id, 7)
			a.Status = domain.StatusApproved
			return a, nil
		}
		updated := false
		deps.repo.updateFn = func(ctx context.Context, a *absence.AbsenceRequest) error {
			updated = true
			return nil
		}

		_, err := deps.service.Update(ctx, id.String(), absence.UpdateAbsenceRequest{
			Start:  time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
			End:    time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC),
			Reason: "Moved",
		})

		assert.ErrorIs(t, err, absenceerrors.ErrNotPending)
		assert.False(t, updated)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, gotID string) (*absence.AbsenceRequest, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Update(ctx, id.String(), absence.UpdateAbsenceRequest{
			Start:  time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
			End:    time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC),
			Reason: "Moved",
		})

		assert.ErrorIs(t, err, absenceerrors.ErrAbsenceNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAbsenceService_Approve(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success stamps approver and decision time", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, gotID string) (*absence.AbsenceRequest, error) {
			return pendingAbsence(id, 7), nil
		}
		deps.repo.updateFn = func(ctx context.Context, a *absence.AbsenceRequest) error {
			assert.Equal(t, domain.StatusApproved, a.Status)
			if assert.NotNil(t, a.ApproverID) {
				assert.Equal(t, 3, *a.ApproverID)
			}
			assert.NotNil(t, a.ApprovedDate)
			if assert.NotNil(t, a.ApprovalComments) {
				assert.Equal(t, "Enjoy", *a.ApprovalComments)
			}
			return nil
		}

		resp, err := deps.service.Approve(ctx, id.String(), 3, "Enjoy")

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already processed", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, gotID string) (*absence.AbsenceRequest, error) {
			a := pendingAbsence(id, 7)
			a.Status = domain.StatusRejected
			return a, nil
		}

		_, err := deps.service.Approve(ctx, id.String(), 3, "")

		assert.ErrorIs(t, err, absenceerrors.ErrAlreadyProcessed)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAbsenceService_Reject(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success records the reason", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, gotID string) (*absence.AbsenceRequest, error) {
			return pendingAbsence(id, 7), nil
		}
		deps.repo.updateFn = func(ctx context.Context, a *absence.AbsenceRequest) error {
			assert.Equal(t, domain.StatusRejected, a.Status)
			if assert.NotNil(t, a.ApprovalComments) {
				assert.Equal(t, "Team is at capacity", *a.ApprovalComments)
			}
			return nil
		}

		resp, err := deps.service.Reject(ctx, id.String(), 3, "Team is at capacity")

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative empty reason", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Reject(ctx, id.String(), 3, "")

		assert.ErrorIs(t, err, absenceerrors.ErrRejectionReasonRequired)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAbsenceService_Cancel(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success for owner", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, gotID string) (*absence.AbsenceRequest, error) {
			return pendingAbsence(id, 7), nil
		}
		deps.repo.updateFn = func(ctx context.Context, a *absence.AbsenceRequest) error {
			assert.Equal(t, domain.StatusCancelled, a.Status)
			return nil
		}

		resp, err := deps.service.Cancel(ctx, id.String(), 7)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success even after approval", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, gotID string) (*absence.AbsenceRequest, error) {
			a := pendingAbsence(id, 7)
			a.Status = domain.StatusApproved
			return a, nil
		}

		resp, err := deps.service.Cancel(ctx, id.String(), 7)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative non-owner", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, gotID string) (*absence.AbsenceRequest, error) {
			return pendingAbsence(id, 7), nil
		}
		updated := false
		deps.repo.updateFn = func(ctx context.Context, a *absence.AbsenceRequest) error {
			updated = true
			return nil
		}

		_, err := deps.service.Cancel(ctx, id.String(), 8)

		assert.ErrorIs(t, err, absenceerrors.ErrNotRequestOwner)
		assert.False(t, updated)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already cancelled", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, gotID string) (*absence.AbsenceRequest, error) {
			a := pendingAbsence(id, 7)
			a.Status = domain.StatusCancelled
			return a, nil
		}

		_, err := deps.service.Cancel(ctx, id.String(), 7)

		assert.ErrorIs(t, err, absenceerrors.ErrAlreadyCancelled)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAbsenceService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success for pending request", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, gotID string) (*absence.AbsenceRequest, error) {
			return pendingAbsence(id, 7), nil
		}
		deleted := false
		deps.repo.deleteFn = func(ctx context.Context, gotID string) error {
			assert.Equal(t, id.String(), gotID)
			deleted = true
			return nil
		}

		err := deps.service.Delete(ctx, id.String())

		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative approved request", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, gotID string) (*absence.AbsenceRequest, error) {
			a := pendingAbsence(id, 7)
			a.Status = domain.StatusApproved
			return a, nil
		}

		err := deps.service.Delete(ctx, id.String())

		assert.ErrorIs(t, err, absenceerrors.ErrDeleteNotAllowed)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAbsenceService_Queries(t *testing.T) {
	ctx := context.Background()

	t.Run("visible to employee passes filters through", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

		deps.repo.findVisibleToEmployeeFn = func(ctx context.Context, employeeID int, gotStart, gotEnd time.Time, statuses []string) ([]absence.AbsenceRequest, error) {
			assert.Equal(t, 7, employeeID)
			assert.Equal(t, start, gotStart)
			assert.Equal(t, end, gotEnd)
			assert.Equal(t, []string{domain.StatusPending}, statuses)
			return []absence.AbsenceRequest{*pendingAbsence(uuid.New(), 7)}, nil
		}

		resp, err := deps.service.GetVisibleToEmployee(ctx, 7, start, end, []string{domain.StatusPending})

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("pending listing maps responses", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		deps.repo.findPendingFn = func(ctx context.Context) ([]absence.AbsenceRequest, error) {
			return []absence.AbsenceRequest{
				*pendingAbsence(uuid.New(), 7),
				*pendingAbsence(uuid.New(), 9),
			}, nil
		}

		resp, err := deps.service.GetPending(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, domain.StatusPending, resp[0].Status)
	})
}
