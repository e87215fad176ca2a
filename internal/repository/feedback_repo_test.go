package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

func seedMentor(t *testing.T, db *gorm.DB, email string) models.Mentor {
	t.Helper()
	mentor := models.Mentor{Email: email, Username: email}
	require.NoError(t, db.Create(&mentor).Error)
	return mentor
}

func TestFeedbackRepositoryCreateWithInternUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeedbackRepository(db)
	batch := seedBatch(t, db)
	mentor := seedMentor(t, db, "mentor@example.com")
	intern := seedIntern(t, db, batch.ID, "alice")

	notice := true
	feedback := models.Feedback{
		MentorID: mentor.ID,
		InternID: intern.ID,
		BatchID:  batch.ID,
		Date:     time.Now(),
		Content:  "needs support on testing",
	}
	require.NoError(t, repo.CreateWithInternUpdate(context.Background(), &feedback, &notice, nil))
	require.NotZero(t, feedback.ID)

	var got models.Intern
	require.NoError(t, db.First(&got, intern.ID).Error)
	require.True(t, got.Notice, "notice carries over to the intern")
	require.Empty(t, got.ColorCode, "unsupplied field stays untouched")
}

func TestFeedbackRepositoryDeliverConflictsOnSecondAttempt(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeedbackRepository(db)
	batch := seedBatch(t, db)
	mentor := seedMentor(t, db, "mentor@example.com")
	intern := seedIntern(t, db, batch.ID, "alice")

	feedback := models.Feedback{MentorID: mentor.ID, InternID: intern.ID, BatchID: batch.ID, Date: time.Now(), Content: "well done"}
	require.NoError(t, db.Create(&feedback).Error)

	conversation, err := repo.Deliver(context.Background(), feedback.ID, mentor.ID, "discussed during 1:1")
	require.NoError(t, err)
	require.Equal(t, feedback.ID, conversation.FeedbackID)
	require.Equal(t, "discussed during 1:1", conversation.Content)

	var got models.Feedback
	require.NoError(t, db.First(&got, feedback.ID).Error)
	require.True(t, got.Delivered)

	_, err = repo.Deliver(context.Background(), feedback.ID, mentor.ID, "again")
	require.ErrorIs(t, err, ErrFeedbackDelivered)

	var count int64
	require.NoError(t, db.Model(&models.FeedbackConversation{}).Where("feedback_id = ?", feedback.ID).Count(&count).Error)
	require.Equal(t, int64(1), count, "conflict must not create a second conversation")
}

func TestFeedbackRepositoryGetConversationPreloadsMentor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeedbackRepository(db)
	batch := seedBatch(t, db)
	mentor := seedMentor(t, db, "mentor@example.com")
	intern := seedIntern(t, db, batch.ID, "alice")

	feedback := models.Feedback{MentorID: mentor.ID, InternID: intern.ID, BatchID: batch.ID, Date: time.Now(), Content: "well done"}
	require.NoError(t, db.Create(&feedback).Error)

	_, err := repo.Deliver(context.Background(), feedback.ID, mentor.ID, "covered in sync")
	require.NoError(t, err)

	conversation, err := repo.GetConversation(context.Background(), feedback.ID)
	require.NoError(t, err)
	require.Equal(t, mentor.Username, conversation.Mentor.Username)
}
