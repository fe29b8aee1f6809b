package services

import (
	"math"
	"time"

	"gorm.io/gorm"

	"servehours/models"
)

// DailyHourCap is the maximum creditable service time per participant per
// local calendar day.
const DailyHourCap = 8.0

// round2 keeps every hour comparison at a fixed 2-decimal tolerance so float
// accumulation drift never changes a cap or completion decision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Ledger is the append-only log of coursework time. It is the authoritative
// enforcement point for the daily cap: clients are expected to clamp against
// Status first, but an entry that would push a day past the cap is rejected
// here regardless.
type Ledger struct {
	db  *gorm.DB
	now func() time.Time
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db, now: time.Now}
}

// DayStatus reports a single enrollment's position against today's cap.
type DayStatus struct {
	HoursUsedToday float64 `json:"hoursUsedToday"`
	HoursRemaining float64 `json:"hoursRemaining"`
	CanContinue    bool    `json:"canContinue"`
	Today          string  `json:"today"`
}

// usedOn sums the hours already logged for an enrollment on one calendar day.
func (l *Ledger) usedOn(tx *gorm.DB, enrollmentID uint, date string) (float64, error) {
	var entries []models.HourLogEntry
	if err := tx.Where("enrollment_id = ? AND log_date = ?", enrollmentID, date).Find(&entries).Error; err != nil {
		return 0, err
	}
	total := 0.0
	for _, e := range entries {
		total += float64(e.Hours) + float64(e.Minutes)/60
	}
	return round2(total), nil
}

// allTimeTotal sums every entry ever logged for an enrollment.
func (l *Ledger) allTimeTotal(tx *gorm.DB, enrollmentID uint) (float64, error) {
	var entries []models.HourLogEntry
	if err := tx.Where("enrollment_id = ?", enrollmentID).Find(&entries).Error; err != nil {
		return 0, err
	}
	total := 0.0
	for _, e := range entries {
		total += float64(e.Hours) + float64(e.Minutes)/60
	}
	return round2(total), nil
}

// Status returns the enrollment's remaining capacity for today as observed in
// the participant's timezone. Read-only.
func (l *Ledger) Status(enrollmentID uint, tz *string) (*DayStatus, error) {
	today := DateIn(l.now(), tz)
	used, err := l.usedOn(l.db, enrollmentID, today)
	if err != nil {
		return nil, internalErr(err)
	}
	remaining := round2(DailyHourCap - used)
	if remaining < 0 {
		remaining = 0
	}
	return &DayStatus{
		HoursUsedToday: used,
		HoursRemaining: remaining,
		CanContinue:    remaining > 0,
		Today:          today,
	}, nil
}

// record appends one entry inside the caller's transaction and returns it
// together with the enrollment's new all-time total. No partial credit: an
// entry that would exceed today's cap is rejected outright, with the exact
// remaining capacity attached so the client can clamp future submissions.
func (l *Ledger) record(tx *gorm.DB, enrollmentID, userID uint, hours, minutes int, tz *string) (*models.HourLogEntry, float64, error) {
	if hours < 0 || minutes < 0 || minutes > 59 {
		return nil, 0, reject(CodeInvalidInput, "Invalid hours or minutes value!")
	}
	add := round2(float64(hours) + float64(minutes)/60)
	if add <= 0 {
		return nil, 0, reject(CodeInvalidInput, "Logged time must be greater than zero!")
	}

	today := DateIn(l.now(), tz)
	used, err := l.usedOn(tx, enrollmentID, today)
	if err != nil {
		return nil, 0, internalErr(err)
	}
	if round2(used+add) > DailyHourCap {
		remaining := round2(DailyHourCap - used)
		if remaining < 0 {
			remaining = 0
		}
		r := reject(CodeConflict, "Daily limit of %.0f hours would be exceeded. You have %.2f hours remaining today.", DailyHourCap, remaining)
		r.Data = map[string]interface{}{"hoursRemaining": remaining, "today": today}
		return nil, 0, r
	}

	entry := models.HourLogEntry{
		EnrollmentID: enrollmentID,
		UserID:       userID,
		LogDate:      today,
		Hours:        hours,
		Minutes:      minutes,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, 0, internalErr(err)
	}

	total, err := l.allTimeTotal(tx, enrollmentID)
	if err != nil {
		return nil, 0, internalErr(err)
	}
	return &entry, total, nil
}

// Record appends one entry in its own transaction. Callers that need the
// entry tied to other writes (enrollment completion) go through the
// Enrollments service instead.
func (l *Ledger) Record(enrollmentID, userID uint, hours, minutes int, tz *string) (*models.HourLogEntry, float64, error) {
	var entry *models.HourLogEntry
	var total float64
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var err error
		entry, total, err = l.record(tx, enrollmentID, userID, hours, minutes, tz)
		return err
	})
	if err != nil {
		return nil, 0, AsRejection(err)
	}
	return entry, total, nil
}
