package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servehours/models"
)

func newEnrollmentService(t *testing.T) (*Enrollments, *models.User) {
	t.Helper()
	db := newTestDB(t)
	svc := NewEnrollments(db, NewLedger(db))
	user := createTestUser(t, db, "Jane Doe", "jane@example.com", "America/New_York")
	return svc, user
}

func TestCreateEnrollment(t *testing.T) {
	svc, user := newEnrollmentService(t)

	e, err := svc.Create(user.ID, 24, nil, 104.99)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentActive, e.Status)
	assert.Equal(t, 24, e.HoursRequired)
	assert.Equal(t, 0.0, e.HoursCompleted)
	assert.Nil(t, e.CompletedAt)
}

func TestCreateEnrollmentRejectsInvalidHours(t *testing.T) {
	svc, user := newEnrollmentService(t)

	_, err := svc.Create(user.ID, 0, nil, 0)
	require.Error(t, err)
	assert.Equal(t, CodeInvalidInput, AsRejection(err).Code)
}

func TestCreateEnrollmentUnknownParticipant(t *testing.T) {
	svc, _ := newEnrollmentService(t)

	_, err := svc.Create(9999, 10, nil, 0)
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, AsRejection(err).Code)
}

func TestOneActiveEnrollmentPerParticipant(t *testing.T) {
	svc, user := newEnrollmentService(t)

	first, err := svc.Create(user.ID, 10, nil, 0)
	require.NoError(t, err)

	_, err = svc.Create(user.ID, 20, nil, 0)
	require.Error(t, err)
	assert.Equal(t, CodeConflict, AsRejection(err).Code)

	// Once the first is completed a new one may open.
	_, err = svc.SetStatus(first.ID, "complete")
	require.NoError(t, err)

	_, err = svc.Create(user.ID, 20, nil, 0)
	require.NoError(t, err)

	var active int64
	require.NoError(t, svc.db.Model(&models.Enrollment{}).
		Where("user_id = ? AND status = ?", user.ID, models.EnrollmentActive).
		Count(&active).Error)
	assert.EqualValues(t, 1, active)
}

func TestRecordHoursCompletesEnrollment(t *testing.T) {
	svc, user := newEnrollmentService(t)
	e, err := svc.Create(user.ID, 10, nil, 0)
	require.NoError(t, err)

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	day1 := time.Date(2026, 4, 1, 10, 0, 0, 0, ny)
	svc.now = fixedClock(day1)
	svc.ledger.now = fixedClock(day1)

	result, err := svc.RecordHours(user.ID, e.ID, 6, 0)
	require.NoError(t, err)
	assert.False(t, result.Completed)
	assert.Equal(t, 6.0, result.NewTotal)

	day2 := time.Date(2026, 4, 2, 10, 0, 0, 0, ny)
	svc.now = fixedClock(day2)
	svc.ledger.now = fixedClock(day2)

	result, err = svc.RecordHours(user.ID, e.ID, 4, 0)
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Equal(t, 10.0, result.NewTotal)

	updated, err := svc.Get(e.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	assert.True(t, updated.CompletedAt.Equal(day2))

	// Completed is terminal: a further entry is refused and the total frozen.
	_, err = svc.RecordHours(user.ID, e.ID, 1, 0)
	require.Error(t, err)
	assert.Equal(t, CodeConflict, AsRejection(err).Code)

	frozen, err := svc.Get(e.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, frozen.HoursCompleted)
}

func TestRecordHoursRejectedWhileSuspended(t *testing.T) {
	svc, user := newEnrollmentService(t)
	e, err := svc.Create(user.ID, 10, nil, 0)
	require.NoError(t, err)

	_, err = svc.SetStatus(e.ID, "suspend")
	require.NoError(t, err)

	_, err = svc.RecordHours(user.ID, e.ID, 1, 0)
	require.Error(t, err)
	assert.Equal(t, CodeConflict, AsRejection(err).Code)

	// Resuming restores recording.
	_, err = svc.SetStatus(e.ID, "resume")
	require.NoError(t, err)

	_, err = svc.RecordHours(user.ID, e.ID, 1, 0)
	require.NoError(t, err)
}

func TestRecordHoursOwnership(t *testing.T) {
	svc, user := newEnrollmentService(t)
	other := createTestUser(t, svc.db, "John Roe", "john@example.com", "")
	e, err := svc.Create(user.ID, 10, nil, 0)
	require.NoError(t, err)

	_, err = svc.RecordHours(other.ID, e.ID, 1, 0)
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, AsRejection(err).Code)
}

func TestSetStatusTransitions(t *testing.T) {
	svc, user := newEnrollmentService(t)
	e, err := svc.Create(user.ID, 10, nil, 0)
	require.NoError(t, err)

	_, err = svc.SetStatus(e.ID, "resume")
	require.Error(t, err)
	assert.Equal(t, CodeConflict, AsRejection(err).Code)

	_, err = svc.SetStatus(e.ID, "retire")
	require.Error(t, err)
	assert.Equal(t, CodeInvalidInput, AsRejection(err).Code)

	_, err = svc.SetStatus(e.ID, "complete")
	require.NoError(t, err)

	// Terminal state refuses every further action.
	for _, action := range []string{"suspend", "resume", "complete"} {
		_, err = svc.SetStatus(e.ID, action)
		require.Error(t, err, action)
		assert.Equal(t, CodeConflict, AsRejection(err).Code, action)
	}

	_, err = svc.SetStatus(9999, "suspend")
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, AsRejection(err).Code)
}

func TestOverrideHours(t *testing.T) {
	svc, user := newEnrollmentService(t)
	e, err := svc.Create(user.ID, 10, nil, 0)
	require.NoError(t, err)

	_, err = svc.OverrideHours(e.ID, -1)
	require.Error(t, err)
	assert.Equal(t, CodeInvalidInput, AsRejection(err).Code)

	updated, err := svc.OverrideHours(e.ID, 7.5)
	require.NoError(t, err)
	assert.Equal(t, 7.5, updated.HoursCompleted)
	assert.Equal(t, models.EnrollmentActive, updated.Status)

	// Reaching the requirement through an override completes the enrollment.
	updated, err = svc.OverrideHours(e.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)

	// And a completed enrollment's hours are frozen.
	_, err = svc.OverrideHours(e.ID, 12)
	require.Error(t, err)
	assert.Equal(t, CodeConflict, AsRejection(err).Code)
}

func TestOverrideComposesWithLedgerWrites(t *testing.T) {
	svc, user := newEnrollmentService(t)
	e, err := svc.Create(user.ID, 10, nil, 0)
	require.NoError(t, err)

	// Administrative credit has no ledger entries behind it; a later ledger
	// write must add to it, never replace it.
	_, err = svc.OverrideHours(e.ID, 7.5)
	require.NoError(t, err)

	result, err := svc.RecordHours(user.ID, e.ID, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 8.5, result.NewTotal)
	assert.False(t, result.Completed)

	updated, err := svc.Get(e.ID)
	require.NoError(t, err)
	assert.Equal(t, 8.5, updated.HoursCompleted)
	assert.Equal(t, models.EnrollmentActive, updated.Status)

	// The combined credit crosses the requirement and completes.
	result, err = svc.RecordHours(user.ID, e.ID, 1, 30)
	require.NoError(t, err)
	assert.Equal(t, 10.0, result.NewTotal)
	assert.True(t, result.Completed)
}

func TestActiveCapStatus(t *testing.T) {
	svc, user := newEnrollmentService(t)
	other := createTestUser(t, svc.db, "John Roe", "john@example.com", "")
	e, err := svc.Create(user.ID, 10, nil, 0)
	require.NoError(t, err)

	status, err := svc.ActiveCapStatus(user.ID)
	require.NoError(t, err)
	assert.Equal(t, DailyHourCap, status.HoursRemaining)
	assert.True(t, status.CanContinue)

	_, err = svc.RecordHours(user.ID, e.ID, 3, 0)
	require.NoError(t, err)

	status, err = svc.ActiveCapStatus(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, status.HoursUsedToday)
	assert.Equal(t, 5.0, status.HoursRemaining)

	// A participant without an active enrollment has no cap status.
	_, err = svc.ActiveCapStatus(other.ID)
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, AsRejection(err).Code)
}
