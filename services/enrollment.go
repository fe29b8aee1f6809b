package services

import (
	"errors"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"servehours/models"
)

// Enrollments owns the enrollment lifecycle: creation under the one-active-
// per-participant rule, hour recording through the ledger, administrative
// suspend/resume/complete, and the automatic completion transition.
type Enrollments struct {
	db     *gorm.DB
	ledger *Ledger
	now    func() time.Time
}

func NewEnrollments(db *gorm.DB, ledger *Ledger) *Enrollments {
	return &Enrollments{db: db, ledger: ledger, now: time.Now}
}

// isUniqueViolation detects a unique-constraint conflict from either the
// postgres or the sqlite driver without importing driver-specific error types.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}

// Create opens a new active enrollment. The fast-path read gives a friendly
// duplicate error; the partial unique index on (user_id) WHERE status=ACTIVE
// is what actually serializes concurrent creation attempts.
func (s *Enrollments) Create(userID uint, hoursRequired int, paymentRef *string, amountPaid float64) (*models.Enrollment, error) {
	if hoursRequired < 1 {
		return nil, reject(CodeInvalidInput, "Required hours must be at least 1!")
	}

	var user models.User
	if err := s.db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reject(CodeNotFound, "Participant not found!")
		}
		return nil, internalErr(err)
	}

	var existing models.Enrollment
	if err := s.db.Where("user_id = ? AND status = ?", userID, models.EnrollmentActive).First(&existing).Error; err == nil {
		return nil, reject(CodeConflict, "Please finish your existing program before starting a new one!")
	}

	enrollment := models.Enrollment{
		UserID:           userID,
		HoursRequired:    hoursRequired,
		Status:           models.EnrollmentActive,
		AmountPaid:       amountPaid,
		PaymentReference: paymentRef,
		StartDate:        s.now(),
	}
	if err := s.db.Create(&enrollment).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, reject(CodeConflict, "Please finish your existing program before starting a new one!")
		}
		return nil, internalErr(err)
	}
	return &enrollment, nil
}

// Get loads one enrollment by id.
func (s *Enrollments) Get(enrollmentID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := s.db.First(&enrollment, enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reject(CodeNotFound, "Enrollment not found!")
		}
		return nil, internalErr(err)
	}
	return &enrollment, nil
}

// ByPaymentReference looks an enrollment up by its idempotency key.
func (s *Enrollments) ByPaymentReference(ref string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := s.db.Where("payment_reference = ?", ref).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reject(CodeNotFound, "Enrollment not found!")
		}
		return nil, internalErr(err)
	}
	return &enrollment, nil
}

// ForUser lists all of a participant's enrollments, newest first.
func (s *Enrollments) ForUser(userID uint) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	if err := s.db.Where("user_id = ?", userID).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return nil, internalErr(err)
	}
	return enrollments, nil
}

// RecordResult is the outcome of a successful hour recording.
type RecordResult struct {
	Entry     *models.HourLogEntry `json:"entry"`
	NewTotal  float64              `json:"newTotal"`
	Completed bool                 `json:"completed"`
}

// RecordHours credits coursework time against the participant's enrollment.
// The ledger entry, the hours_completed update and a possible completion
// transition commit in one transaction; a rejection leaves no partial state.
func (s *Enrollments) RecordHours(userID, enrollmentID uint, hours, minutes int) (*RecordResult, error) {
	var user models.User
	if err := s.db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reject(CodeNotFound, "Participant not found!")
		}
		return nil, internalErr(err)
	}

	var result RecordResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var enrollment models.Enrollment
		if err := tx.Where("id = ? AND user_id = ?", enrollmentID, userID).First(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return reject(CodeNotFound, "Enrollment not found!")
			}
			return internalErr(err)
		}
		switch enrollment.Status {
		case models.EnrollmentSuspended:
			return reject(CodeConflict, "Enrollment is suspended. Contact your program administrator.")
		case models.EnrollmentCompleted:
			return reject(CodeConflict, "Program already completed. No further hours can be recorded.")
		}

		entry, _, err := s.ledger.record(tx, enrollment.ID, userID, hours, minutes, user.Timezone)
		if err != nil {
			return err
		}

		// Accumulate on the stored value rather than replacing it with the
		// ledger sum: administrative overrides adjust hours_completed without
		// writing ledger entries, and that credit must survive later writes.
		add := round2(float64(entry.Hours) + float64(entry.Minutes)/60)
		enrollment.HoursCompleted = round2(enrollment.HoursCompleted + add)
		if enrollment.HoursCompleted >= float64(enrollment.HoursRequired) {
			completedAt := s.now()
			enrollment.Status = models.EnrollmentCompleted
			enrollment.CompletedAt = &completedAt
		}
		if err := tx.Save(&enrollment).Error; err != nil {
			return internalErr(err)
		}

		result = RecordResult{
			Entry:     entry,
			NewTotal:  enrollment.HoursCompleted,
			Completed: enrollment.Status == models.EnrollmentCompleted,
		}
		return nil
	})
	if err != nil {
		return nil, AsRejection(err)
	}
	return &result, nil
}

// ActiveCapStatus reports today's cap position for the participant's active
// enrollment, using the participant's stored timezone.
func (s *Enrollments) ActiveCapStatus(userID uint) (*DayStatus, error) {
	var user models.User
	if err := s.db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reject(CodeNotFound, "Participant not found!")
		}
		return nil, internalErr(err)
	}
	var enrollment models.Enrollment
	if err := s.db.Where("user_id = ? AND status = ?", userID, models.EnrollmentActive).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reject(CodeNotFound, "No active enrollment found!")
		}
		return nil, internalErr(err)
	}
	return s.ledger.Status(enrollment.ID, user.Timezone)
}

// SetStatus applies an administrative lifecycle action. Completed is
// terminal: no action moves an enrollment out of it.
func (s *Enrollments) SetStatus(enrollmentID uint, action string) (*models.Enrollment, error) {
	enrollment, err := s.Get(enrollmentID)
	if err != nil {
		return nil, err
	}

	switch action {
	case "suspend":
		if enrollment.Status != models.EnrollmentActive {
			return nil, reject(CodeConflict, "Only an active enrollment can be suspended!")
		}
		enrollment.Status = models.EnrollmentSuspended
	case "resume":
		if enrollment.Status != models.EnrollmentSuspended {
			return nil, reject(CodeConflict, "Only a suspended enrollment can be resumed!")
		}
		enrollment.Status = models.EnrollmentActive
	case "complete":
		if enrollment.Status != models.EnrollmentActive {
			return nil, reject(CodeConflict, "Only an active enrollment can be completed!")
		}
		completedAt := s.now()
		enrollment.Status = models.EnrollmentCompleted
		enrollment.CompletedAt = &completedAt
	default:
		return nil, reject(CodeInvalidInput, "Unknown action! Use suspend, resume or complete.")
	}

	if err := s.db.Save(enrollment).Error; err != nil {
		return nil, internalErr(err)
	}
	return enrollment, nil
}

// OverrideHours sets hours_completed directly and re-evaluates the completion
// condition. Completed enrollments are frozen and refuse the override.
func (s *Enrollments) OverrideHours(enrollmentID uint, newHours float64) (*models.Enrollment, error) {
	if newHours < 0 || math.IsNaN(newHours) || math.IsInf(newHours, 0) {
		return nil, reject(CodeInvalidInput, "Hours value must be a non-negative number!")
	}

	enrollment, err := s.Get(enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment.Status == models.EnrollmentCompleted {
		return nil, reject(CodeConflict, "Enrollment is completed; its hours are frozen.")
	}

	enrollment.HoursCompleted = round2(newHours)
	if enrollment.Status == models.EnrollmentActive && enrollment.HoursCompleted >= float64(enrollment.HoursRequired) {
		completedAt := s.now()
		enrollment.Status = models.EnrollmentCompleted
		enrollment.CompletedAt = &completedAt
	}

	if err := s.db.Save(enrollment).Error; err != nil {
		return nil, internalErr(err)
	}
	return enrollment, nil
}
