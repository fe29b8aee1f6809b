package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servehours/models"
)

func newCertificateService(t *testing.T) (*Certificates, *Enrollments, *models.User) {
	t.Helper()
	db := newTestDB(t)
	enrollments := NewEnrollments(db, NewLedger(db))
	certs := NewCertificates(db)
	user := createTestUser(t, db, "Jane Q. Doe", "jane@example.com", "America/New_York")
	return certs, enrollments, user
}

func completedEnrollment(t *testing.T, enrollments *Enrollments, userID uint) *models.Enrollment {
	t.Helper()
	e, err := enrollments.Create(userID, 10, nil, 78.99)
	require.NoError(t, err)
	_, err = enrollments.OverrideHours(e.ID, 10)
	require.NoError(t, err)
	updated, err := enrollments.Get(e.ID)
	require.NoError(t, err)
	require.Equal(t, models.EnrollmentCompleted, updated.Status)
	return updated
}

func TestNewVerificationCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := NewVerificationCode()
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(code, "CSP-"), code)
		suffix := strings.TrimPrefix(code, "CSP-")
		require.Len(t, suffix, 12)
		for _, ch := range suffix {
			assert.NotContains(t, "0O1I", string(ch), "confusable character in %s", code)
			assert.Contains(t, codeAlphabet, string(ch))
		}
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestIssueOrFetchRequiresCompletion(t *testing.T) {
	certs, enrollments, user := newCertificateService(t)
	e, err := enrollments.Create(user.ID, 10, nil, 0)
	require.NoError(t, err)

	_, _, err = certs.IssueOrFetch(e.ID, user.ID)
	require.Error(t, err)
	assert.Equal(t, CodeConflict, AsRejection(err).Code)
}

func TestIssueOrFetchRequiresOwnership(t *testing.T) {
	certs, enrollments, user := newCertificateService(t)
	other := createTestUser(t, certs.db, "John Roe", "john@example.com", "")
	e := completedEnrollment(t, enrollments, user.ID)

	_, _, err := certs.IssueOrFetch(e.ID, other.ID)
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, AsRejection(err).Code)

	_, _, err = certs.IssueOrFetch(9999, user.ID)
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, AsRejection(err).Code)
}

func TestIssueOrFetchIsIdempotent(t *testing.T) {
	certs, enrollments, user := newCertificateService(t)
	e := completedEnrollment(t, enrollments, user.ID)

	first, created, err := certs.IssueOrFetch(e.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 10.0, first.HoursVerified)

	second, created, err := certs.IssueOrFetch(e.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.VerificationCode, second.VerificationCode)

	var count int64
	require.NoError(t, certs.db.Model(&models.Certificate{}).Where("enrollment_id = ?", e.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestVerifyCertificate(t *testing.T) {
	certs, enrollments, user := newCertificateService(t)
	e := completedEnrollment(t, enrollments, user.ID)
	cert, _, err := certs.IssueOrFetch(e.ID, user.ID)
	require.NoError(t, err)

	// Name matching is case-insensitive, trimmed and bidirectional substring.
	for _, name := range []string{
		"Jane Q. Doe",
		"jane q. doe",
		"  Jane Q. Doe  ",
		"Jane Q",
		"Ms. Jane Q. Doe, Esq.",
	} {
		record, err := certs.Verify(cert.VerificationCode, name)
		require.NoError(t, err, "name=%q", name)
		assert.Equal(t, "Jane Q. Doe", record.ParticipantName)
		assert.Equal(t, "Austin, TX", record.Location)
		assert.Equal(t, cert.VerificationCode, record.VerificationCode)
		assert.Equal(t, 10.0, record.HoursCompleted)
		assert.Equal(t, 10, record.HoursRequired)
		assert.Equal(t, models.EnrollmentCompleted, record.Status)
		assert.NotEmpty(t, record.CompletedAt)
	}

	// Lowercased code input still resolves.
	_, err = certs.Verify(strings.ToLower(cert.VerificationCode), "Jane Q. Doe")
	require.NoError(t, err)

	_, err = certs.Verify(cert.VerificationCode, "Robert Smith")
	require.Error(t, err)
	assert.Equal(t, CodeNameMismatch, AsRejection(err).Code)

	_, err = certs.Verify("CSP-ZZZZZZZZZZZZ", "Jane Q. Doe")
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, AsRejection(err).Code)

	_, err = certs.Verify("   ", "Jane Q. Doe")
	require.Error(t, err)
	assert.Equal(t, CodeInvalidInput, AsRejection(err).Code)
}
