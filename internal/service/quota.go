package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"instantchef/internal/models"
)

// DailyGenerationLimit caps recipe generations per user per calendar day.
const DailyGenerationLimit = 50

// ErrDailyLimitReached is returned when a user has exhausted their daily quota.
var ErrDailyLimitReached = errors.New("daily recipe generation limit reached (50 recipes per day)")

// QuotaService tracks per-user daily generation counts in the database.
// If the counter table is missing (migrations not run), generation proceeds
// unmetered with a logged warning instead of failing the request.
type QuotaService struct {
	db *gorm.DB
}

func NewQuotaService(db *gorm.DB) *QuotaService {
	return &QuotaService{db: db}
}

// today returns the local-midnight date key for the counter row.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func isMissingTable(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "does not exist") || // postgres 42P01
		strings.Contains(msg, "no such table") // sqlite
}

// Check reports current usage without incrementing. The counter is charged
// separately by Record once the completion call has succeeded, so a failed
// generation never consumes quota.
func (s *QuotaService) Check(ctx context.Context, userID uuid.UUID) (used, remaining int, allowed bool, err error) {
	var row models.DailyGeneration
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, today()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, DailyGenerationLimit, true, nil
		}
		if isMissingTable(err) {
			log.Printf("warning: daily_generations table not found, rate limiting disabled: %v", err)
			return 0, DailyGenerationLimit, true, nil
		}
		return 0, 0, false, err
	}

	remaining = DailyGenerationLimit - row.Count
	if remaining < 0 {
		remaining = 0
	}
	return row.Count, remaining, row.Count < DailyGenerationLimit, nil
}

// Record charges one generation against today's counter, creating the row if
// absent. The increment happens in a single upsert so concurrent requests
// cannot lose updates.
func (s *QuotaService) Record(ctx context.Context, userID uuid.UUID) error {
	row := models.DailyGeneration{
		UserID: userID,
		Date:   today(),
		Count:  1,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count":      gorm.Expr("daily_generations.count + 1"),
			"updated_at": time.Now(),
		}),
	}).Create(&row).Error
	if err != nil {
		if isMissingTable(err) {
			log.Printf("warning: daily_generations table not found, generation not counted: %v", err)
			return nil
		}
		return err
	}
	return nil
}

// Usage reports today's usage for display. Defaults to a zero count when the
// user has not generated anything today or the table is missing.
func (s *QuotaService) Usage(ctx context.Context, userID uuid.UUID) (used, remaining, limit int, err error) {
	used, remaining, _, err = s.Check(ctx, userID)
	if err != nil {
		return 0, 0, DailyGenerationLimit, err
	}
	return used, remaining, DailyGenerationLimit, nil
}
