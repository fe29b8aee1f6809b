package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"servehours/models"
)

const maxCodeAttempts = 5

// Certificates issues and verifies completion certificates.
type Certificates struct {
	db  *gorm.DB
	now func() time.Time
}

func NewCertificates(db *gorm.DB) *Certificates {
	return &Certificates{db: db, now: time.Now}
}

// IssueOrFetch returns the certificate for a completed enrollment, creating
// it on first request. The second return reports whether this call created
// the certificate, so callers can notify on first issuance only. Issuance is
// idempotent: the unique index on enrollment_id makes concurrent first
// requests converge on one row.
func (s *Certificates) IssueOrFetch(enrollmentID, userID uint) (*models.Certificate, bool, error) {
	var enrollment models.Enrollment
	if err := s.db.Where("id = ? AND user_id = ?", enrollmentID, userID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, reject(CodeNotFound, "Enrollment not found!")
		}
		return nil, false, internalErr(err)
	}
	if enrollment.Status != models.EnrollmentCompleted {
		return nil, false, reject(CodeConflict, "Please complete your required hours before requesting a certificate!")
	}

	var existing models.Certificate
	if err := s.db.Where("enrollment_id = ?", enrollment.ID).First(&existing).Error; err == nil {
		return &existing, false, nil
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := NewVerificationCode()
		if err != nil {
			return nil, false, internalErr(err)
		}
		cert := models.Certificate{
			EnrollmentID:     enrollment.ID,
			UserID:           enrollment.UserID,
			VerificationCode: code,
			IssuedAt:         s.now(),
			HoursVerified:    enrollment.HoursCompleted,
		}
		err = s.db.Create(&cert).Error
		if err == nil {
			return &cert, true, nil
		}
		if !isUniqueViolation(err) {
			return nil, false, internalErr(err)
		}
		// Either a concurrent request already issued for this enrollment, or
		// the generated code collided. The former wins; the latter retries.
		if lookupErr := s.db.Where("enrollment_id = ?", enrollment.ID).First(&existing).Error; lookupErr == nil {
			return &existing, false, nil
		}
	}
	return nil, false, internalErr(errors.New("could not generate a unique verification code"))
}

// VerificationRecord is the public view of a verified certificate. It carries
// no internal identifiers.
type VerificationRecord struct {
	ParticipantName  string  `json:"participant_name"`
	Location         string  `json:"location"`
	VerificationCode string  `json:"verification_code"`
	HoursCompleted   float64 `json:"hours_completed"`
	HoursRequired    int     `json:"hours_required"`
	Status           string  `json:"status"`
	StartDate        string  `json:"start_date"`
	CompletedAt      string  `json:"completed_at"`
	IssuedAt         string  `json:"issued_at"`
}

// nameMatches compares the claimed name against the on-file name: case
// insensitive, trimmed, substring in either direction so a partial submission
// ("Jane" vs "Jane Q. Doe") still verifies.
func nameMatches(claimed, onFile string) bool {
	claimed = strings.ToLower(strings.TrimSpace(claimed))
	onFile = strings.ToLower(strings.TrimSpace(onFile))
	if claimed == "" || onFile == "" {
		return false
	}
	return strings.Contains(claimed, onFile) || strings.Contains(onFile, claimed)
}

// Verify confirms a certificate for a third party. It distinguishes an
// unknown code from a name mismatch but reveals nothing else about which
// certificate, if any, the code maps to.
func (s *Certificates) Verify(code, claimedName string) (*VerificationRecord, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, reject(CodeInvalidInput, "Verification code is required!")
	}

	var cert models.Certificate
	if err := s.db.Where("verification_code = ?", code).First(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reject(CodeNotFound, "No certificate matches this code.")
		}
		return nil, internalErr(err)
	}

	var user models.User
	if err := s.db.First(&user, cert.UserID).Error; err != nil {
		return nil, internalErr(err)
	}
	if !nameMatches(claimedName, user.Name) {
		return nil, reject(CodeNameMismatch, "The supplied name does not match this certificate.")
	}

	var enrollment models.Enrollment
	if err := s.db.First(&enrollment, cert.EnrollmentID).Error; err != nil {
		return nil, internalErr(err)
	}

	record := &VerificationRecord{
		ParticipantName:  user.Name,
		Location:         formatLocation(user.City, user.State),
		VerificationCode: cert.VerificationCode,
		HoursCompleted:   enrollment.HoursCompleted,
		HoursRequired:    enrollment.HoursRequired,
		Status:           enrollment.Status,
		StartDate:        enrollment.StartDate.Format(dateLayout),
		IssuedAt:         cert.IssuedAt.Format(dateLayout),
	}
	if enrollment.CompletedAt != nil {
		record.CompletedAt = enrollment.CompletedAt.Format(dateLayout)
	}
	return record, nil
}

func formatLocation(city, state string) string {
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	default:
		return state
	}
}
