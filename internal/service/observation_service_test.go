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

func newObservationServiceForTest(t *testing.T) (ObservationService, *gorm.DB) {
	t.Helper()
	db := setupServiceDB(t)
	svc := NewObservationService(
		repository.NewObservationRepository(db),
		repository.NewInternRepository(db),
		repository.NewBatchRepository(db),
		NewAuthzService(repository.NewAssignmentRepository(db), testLogger()),
		&recordingActivity{},
		newTestValidator(),
		testLogger(),
	)
	return svc, db
}

func TestObservationServiceRecordStampsActingMentor(t *testing.T) {
	svc, db := newObservationServiceForTest(t)
	batch := createBatch(t, db, "Cohort-1")
	mentor := createMentor(t, db, "mentor@example.com")
	assign(t, db, mentor.ID, batch.ID, models.Permissions{RecordObservation: true})
	intern := models.Intern{BatchID: batch.ID, Name: "A", Email: "a@x.com"}
	require.NoError(t, db.Create(&intern).Error)

	count, err := svc.Record(context.Background(), Actor{MentorID: mentor.ID}, batch.ID, dto.ObservationsCreateRequest{
		Observations: []dto.ObservationPayload{
			{InternID: intern.ID, Date: "2025-01-10", WatchOut: true, Content: "struggling with reviews"},
			{InternID: intern.ID, Date: "2025-01-11", Content: "improving"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 2, count)

	var observations []models.Observation
	require.NoError(t, db.Find(&observations).Error)
	require.Len(t, observations, 2)
	for _, observation := range observations {
		require.Equal(t, mentor.ID, observation.MentorID)
	}
}

func TestObservationServiceRecordRejectsForeignIntern(t *testing.T) {
	svc, db := newObservationServiceForTest(t)
	batch := createBatch(t, db, "Cohort-1")
	other := createBatch(t, db, "Cohort-2")
	mentor := createMentor(t, db, "mentor@example.com")
	assign(t, db, mentor.ID, batch.ID, models.Permissions{RecordObservation: true})
	stranger := models.Intern{BatchID: other.ID, Name: "S", Email: "s@x.com"}
	require.NoError(t, db.Create(&stranger).Error)

	_, err := svc.Record(context.Background(), Actor{MentorID: mentor.ID}, batch.ID, dto.ObservationsCreateRequest{
		Observations: []dto.ObservationPayload{
			{InternID: stranger.ID, Date: "2025-01-10", Content: "wrong batch"},
		},
	})
	require.ErrorIs(t, err, ErrInternNotInBatch)

	var rows int64
	require.NoError(t, db.Model(&models.Observation{}).Count(&rows).Error)
	require.Zero(t, rows)
}

func TestObservationServiceRecordSanitizesContent(t *testing.T) {
	svc, db := newObservationServiceForTest(t)
	batch := createBatch(t, db, "Cohort-1")
	mentor := createMentor(t, db, "mentor@example.com")
	assign(t, db, mentor.ID, batch.ID, models.Permissions{RecordObservation: true})
	intern := models.Intern{BatchID: batch.ID, Name: "A", Email: "a@x.com"}
	require.NoError(t, db.Create(&intern).Error)

	_, err := svc.Record(context.Background(), Actor{MentorID: mentor.ID}, batch.ID, dto.ObservationsCreateRequest{
		Observations: []dto.ObservationPayload{
			{InternID: intern.ID, Date: "2025-01-10", Content: "<script>alert(1)</script>solid work"},
		},
	})
	require.NoError(t, err)

	var observation models.Observation
	require.NoError(t, db.First(&observation).Error)
	require.Equal(t, "solid work", observation.Content)
}

func TestObservationServiceRecordDeniedWithoutFlag(t *testing.T) {
	svc, db := newObservationServiceForTest(t)
	batch := createBatch(t, db, "Cohort-1")
	mentor := createMentor(t, db, "mentor@example.com")
	assign(t, db, mentor.ID, batch.ID, models.Permissions{RecordFeedback: true})

	_, err := svc.Record(context.Background(), Actor{MentorID: mentor.ID}, batch.ID, dto.ObservationsCreateRequest{
		Observations: []dto.ObservationPayload{{InternID: 1, Date: "2025-01-10", Content: "nope"}},
	})
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestObservationServiceListByInternChecksBatchAccess(t *testing.T) {
	svc, db := newObservationServiceForTest(t)
	batch := createBatch(t, db, "Cohort-1")
	outsider := createMentor(t, db, "outsider@example.com")
	intern := models.Intern{BatchID: batch.ID, Name: "A", Email: "a@x.com"}
	require.NoError(t, db.Create(&intern).Error)

	_, err := svc.ListByIntern(context.Background(), Actor{MentorID: outsider.ID}, intern.ID)
	require.ErrorIs(t, err, ErrPermissionDenied)
}
