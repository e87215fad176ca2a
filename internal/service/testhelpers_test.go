package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Mentor{},
		&models.Batch{},
		&models.MentorshipAssignment{},
		&models.Intern{},
		&models.Observation{},
		&models.Feedback{},
		&models.FeedbackConversation{},
		&models.ActivityEvent{},
	))
	return db
}

func newTestValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func createBatch(t *testing.T, db *gorm.DB, name string) models.Batch {
	t.Helper()
	batch := models.Batch{Name: name, StartDate: time.Now().AddDate(0, -1, 0)}
	require.NoError(t, db.Create(&batch).Error)
	return batch
}

func createMentor(t *testing.T, db *gorm.DB, email string) models.Mentor {
	t.Helper()
	mentor := models.Mentor{Email: email, Username: email}
	require.NoError(t, db.Create(&mentor).Error)
	return mentor
}

func assign(t *testing.T, db *gorm.DB, mentorID, batchID uint, p models.Permissions) {
	t.Helper()
	assignment := models.MentorshipAssignment{
		MentorID:          mentorID,
		BatchID:           batchID,
		RecordObservation: p.RecordObservation,
		RecordFeedback:    p.RecordFeedback,
		ProgramManager:    p.ProgramManager,
	}
	require.NoError(t, db.Create(&assignment).Error)
}

// recordingActivity captures recorded activity entries for assertions.
type recordingActivity struct {
	mu      sync.Mutex
	entries []ActivityEntry
}

func (r *recordingActivity) Record(ctx context.Context, entry ActivityEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *recordingActivity) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	actions := make([]string, 0, len(r.entries))
	for _, entry := range r.entries {
		actions = append(actions, entry.Action)
	}
	return actions
}
