package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mentorhub/mentorhub-api/internal/dto"
	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/repository"
)

func newFeedbackServiceForTest(t *testing.T) (FeedbackService, *gorm.DB, *recordingActivity) {
	t.Helper()
	db := setupServiceDB(t)
	activity := &recordingActivity{}
	svc := NewFeedbackService(
		repository.NewFeedbackRepository(db),
		repository.NewInternRepository(db),
		NewAuthzService(repository.NewAssignmentRepository(db), testLogger()),
		activity,
		newTestValidator(),
		testLogger(),
	)
	return svc, db, activity
}

func TestFeedbackServiceRecordAppliesInternStatus(t *testing.T) {
	svc, db, activity := newFeedbackServiceForTest(t)
	batch := createBatch(t, db, "Cohort-1")
	mentor := createMentor(t, db, "mentor@example.com")
	assign(t, db, mentor.ID, batch.ID, models.Permissions{RecordFeedback: true})
	intern := models.Intern{BatchID: batch.ID, Name: "A", Email: "a@x.com"}
	require.NoError(t, db.Create(&intern).Error)

	notice := true
	color := "red"
	feedback, err := svc.Record(context.Background(), Actor{MentorID: mentor.ID}, batch.ID, dto.FeedbackCreateRequest{
		InternID:  intern.ID,
		Content:   "great sprint demo",
		Date:      "2025-01-15",
		Notice:    &notice,
		ColorCode: &color,
	})
	require.NoError(t, err)
	require.False(t, feedback.Delivered)

	var got models.Intern
	require.NoError(t, db.First(&got, intern.ID).Error)
	require.True(t, got.Notice)
	require.Equal(t, "red", got.ColorCode)
	require.Contains(t, activity.actions(), models.ActivityFeedbackRecorded)
}

func TestFeedbackServiceRecordDeniedWithoutFlag(t *testing.T) {
	svc, db, _ := newFeedbackServiceForTest(t)
	batch := createBatch(t, db, "Cohort-1")
	mentor := createMentor(t, db, "mentor@example.com")
	assign(t, db, mentor.ID, batch.ID, models.Permissions{RecordObservation: true})

	_, err := svc.Record(context.Background(), Actor{MentorID: mentor.ID}, batch.ID, dto.FeedbackCreateRequest{
		InternID: 1,
		Content:  "nope",
		Date:     "2025-01-15",
	})
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestFeedbackServiceRecordRejectsForeignIntern(t *testing.T) {
	svc, db, _ := newFeedbackServiceForTest(t)
	batch := createBatch(t, db, "Cohort-1")
	other := createBatch(t, db, "Cohort-2")
	mentor := createMentor(t, db, "mentor@example.com")
	assign(t, db, mentor.ID, batch.ID, models.Permissions{RecordFeedback: true})
	stranger := models.Intern{BatchID: other.ID, Name: "S", Email: "s@x.com"}
	require.NoError(t, db.Create(&stranger).Error)

	_, err := svc.Record(context.Background(), Actor{MentorID: mentor.ID}, batch.ID, dto.FeedbackCreateRequest{
		InternID: stranger.ID,
		Content:  "misrouted",
		Date:     "2025-01-15",
	})
	require.ErrorIs(t, err, ErrInternNotInBatch)
}

func TestFeedbackServiceDeliverConflictsOnRepeat(t *testing.T) {
	svc, db, activity := newFeedbackServiceForTest(t)
	batch := createBatch(t, db, "Cohort-1")
	mentor := createMentor(t, db, "mentor@example.com")
	assign(t, db, mentor.ID, batch.ID, models.Permissions{RecordFeedback: true})
	intern := models.Intern{BatchID: batch.ID, Name: "A", Email: "a@x.com"}
	require.NoError(t, db.Create(&intern).Error)

	actor := Actor{MentorID: mentor.ID}
	feedback, err := svc.Record(context.Background(), actor, batch.ID, dto.FeedbackCreateRequest{
		InternID: intern.ID, Content: "well done", Date: "2025-01-15",
	})
	require.NoError(t, err)

	conversation, err := svc.Deliver(context.Background(), actor, feedback.ID, dto.FeedbackDeliverRequest{
		Conversation: "talked through it in our 1:1",
	})
	require.NoError(t, err)
	require.Equal(t, feedback.ID, conversation.FeedbackID)

	_, err = svc.Deliver(context.Background(), actor, feedback.ID, dto.FeedbackDeliverRequest{Conversation: "again"})
	require.ErrorIs(t, err, ErrAlreadyDelivered)

	var count int64
	require.NoError(t, db.Model(&models.FeedbackConversation{}).Where("feedback_id = ?", feedback.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)
	require.Contains(t, activity.actions(), models.ActivityFeedbackDelivered)
}

func TestFeedbackServiceConversationBeforeDelivery(t *testing.T) {
	svc, db, _ := newFeedbackServiceForTest(t)
	batch := createBatch(t, db, "Cohort-1")
	mentor := createMentor(t, db, "mentor@example.com")
	assign(t, db, mentor.ID, batch.ID, models.Permissions{RecordFeedback: true})
	intern := models.Intern{BatchID: batch.ID, Name: "A", Email: "a@x.com"}
	require.NoError(t, db.Create(&intern).Error)

	actor := Actor{MentorID: mentor.ID}
	feedback, err := svc.Record(context.Background(), actor, batch.ID, dto.FeedbackCreateRequest{
		InternID: intern.ID, Content: "undelivered", Date: "2025-01-15",
	})
	require.NoError(t, err)

	_, err = svc.Conversation(context.Background(), actor, feedback.ID)
	require.ErrorIs(t, err, ErrConversationNotFound)

	_, err = svc.Conversation(context.Background(), actor, 4242)
	require.ErrorIs(t, err, ErrFeedbackNotFound)
}
