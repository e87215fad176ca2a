package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

func TestStatsRepositoryBatchStats(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStatsRepository(db)
	batch := seedBatch(t, db)
	mentorA := seedMentor(t, db, "a@example.com")
	mentorB := seedMentor(t, db, "b@example.com")

	alice := seedIntern(t, db, batch.ID, "alice")
	bob := seedIntern(t, db, batch.ID, "bob")
	carol := seedIntern(t, db, batch.ID, "carol")
	require.NoError(t, db.Model(&carol).Update("notice", true).Error)

	now := time.Now()
	cutoff := now.AddDate(0, 0, -15)

	// Mentor A observed alice recently, bob before the cutoff. Mentor B
	// observed everyone recently; that must not count for mentor A.
	observations := []models.Observation{
		{MentorID: mentorA.ID, InternID: alice.ID, BatchID: batch.ID, Date: now.AddDate(0, 0, -1), Content: "recent"},
		{MentorID: mentorA.ID, InternID: bob.ID, BatchID: batch.ID, Date: now.AddDate(0, 0, -20), Content: "stale"},
		{MentorID: mentorB.ID, InternID: alice.ID, BatchID: batch.ID, Date: now, Content: "someone else"},
		{MentorID: mentorB.ID, InternID: bob.ID, BatchID: batch.ID, Date: now, Content: "someone else"},
		{MentorID: mentorB.ID, InternID: carol.ID, BatchID: batch.ID, Date: now, Content: "someone else"},
	}
	for i := range observations {
		require.NoError(t, db.Create(&observations[i]).Error)
	}

	feedbacks := []models.Feedback{
		{MentorID: mentorA.ID, InternID: alice.ID, BatchID: batch.ID, Date: now, Content: "pending"},
		{MentorID: mentorA.ID, InternID: bob.ID, BatchID: batch.ID, Date: now, Content: "done", Delivered: true},
	}
	for i := range feedbacks {
		require.NoError(t, db.Create(&feedbacks[i]).Error)
	}

	stats, err := repo.BatchStats(context.Background(), batch.ID, mentorA.ID, cutoff)
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.TotalInterns)
	require.Equal(t, int64(2), stats.PendingObservations, "bob (stale) and carol (never) pend for mentor A")
	require.Equal(t, int64(1), stats.PendingFeedback)
	require.Equal(t, int64(1), stats.ActiveNotices)

	stats, err = repo.BatchStats(context.Background(), batch.ID, mentorB.ID, cutoff)
	require.NoError(t, err)
	require.Zero(t, stats.PendingObservations, "mentor B observed everyone recently")
}
