package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/mentorhub/mentorhub-api/internal/dto"
	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/repository"
)

var (
	// ErrInternNotFound indicates the requested intern does not exist in the batch.
	ErrInternNotFound = errors.New("intern not found")
	// ErrNoFieldsToUpdate indicates a partial update carried neither field.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	// ErrEmptyRoster indicates a CSV import contained no usable rows.
	ErrEmptyRoster = errors.New("roster file contains no interns")
	// ErrUnsupportedFileType indicates an upload of an unexpected content type.
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// FileUploader abstracts uploading binary data and returning a URL.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// InternService exposes intern roster use cases.
type InternService interface {
	Onboard(ctx context.Context, actor Actor, batchID uint, payload dto.InternOnboardRequest) (int, error)
	ImportRoster(ctx context.Context, actor Actor, batchID uint, file *multipart.FileHeader) (int, error)
	List(ctx context.Context, actor Actor, batchID uint) ([]dto.InternResponse, error)
	Get(ctx context.Context, actor Actor, batchID, internID uint) (dto.InternResponse, error)
	Update(ctx context.Context, actor Actor, batchID, internID uint, payload dto.InternUpdateRequest) error
	Terminate(ctx context.Context, actor Actor, batchID, internID uint) error
	UploadAvatar(ctx context.Context, actor Actor, batchID, internID uint, file *multipart.FileHeader) (string, error)
}

type internService struct {
	repo      repository.InternRepository
	batches   repository.BatchRepository
	authz     AuthzService
	activity  ActivityRecorder
	validator *validator.Validate
	uploader  FileUploader
	logger    zerolog.Logger
}

// NewInternService builds a new intern service.
func NewInternService(repo repository.InternRepository, batches repository.BatchRepository, authz AuthzService, activity ActivityRecorder, validate *validator.Validate, uploader FileUploader, logger zerolog.Logger) InternService {
	return &internService{
		repo:      repo,
		batches:   batches,
		authz:     authz,
		activity:  activity,
		validator: validate,
		uploader:  uploader,
		logger:    logger.With().Str("component", "intern_service").Logger(),
	}
}

// Onboard inserts all interns of the payload in one transaction; a failing
// row aborts the whole roster.
func (s *internService) Onboard(ctx context.Context, actor Actor, batchID uint, payload dto.InternOnboardRequest) (int, error) {
	if err := s.requireProgramManager(ctx, actor, batchID); err != nil {
		return 0, err
	}

	if err := s.validator.Struct(payload); err != nil {
		return 0, err
	}

	exists, err := s.batches.Exists(ctx, batchID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrBatchNotFound
	}

	interns := make([]models.Intern, 0, len(payload.Interns))
	for _, item := range payload.Interns {
		interns = append(interns, models.Intern{
			BatchID: batchID,
			Name:    strings.TrimSpace(item.Name),
			Email:   strings.TrimSpace(item.Email),
			ImgURL:  strings.TrimSpace(item.ImgURL),
		})
	}

	if err := s.repo.CreateAll(ctx, interns); err != nil {
		return 0, err
	}

	s.activity.Record(ctx, ActivityEntry{
		BatchID:  batchID,
		MentorID: actor.MentorID,
		Action:   models.ActivityInternsOnboarded,
		Metadata: map[string]interface{}{"count": len(interns)},
	})

	s.logger.Info().Uint("batch_id", batchID).Int("count", len(interns)).Msg("interns onboarded")

	return len(interns), nil
}

// ImportRoster parses an uploaded CSV of name,email,img_url rows and runs the
// result through Onboard. Quote characters and surrounding whitespace are
// stripped from every field.
func (s *internService) ImportRoster(ctx context.Context, actor Actor, batchID uint, file *multipart.FileHeader) (int, error) {
	src, err := file.Open()
	if err != nil {
		return 0, fmt.Errorf("failed to open roster file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return 0, fmt.Errorf("failed to read roster file: %w", err)
	}

	mime := mimetype.Detect(data)
	if !mime.Is("text/csv") && !mime.Is("text/plain") {
		return 0, ErrUnsupportedFileType
	}

	payload, err := parseRoster(data)
	if err != nil {
		return 0, err
	}

	return s.Onboard(ctx, actor, batchID, payload)
}

func parseRoster(data []byte) (dto.InternOnboardRequest, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var payload dto.InternOnboardRequest
	for line := 0; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return dto.InternOnboardRequest{}, fmt.Errorf("invalid roster row %d: %w", line+1, err)
		}

		if len(record) < 2 {
			return dto.InternOnboardRequest{}, fmt.Errorf("invalid roster row %d: expected name,email,img_url", line+1)
		}

		name := cleanRosterField(record[0])
		email := cleanRosterField(record[1])
		imgURL := ""
		if len(record) > 2 {
			imgURL = cleanRosterField(record[2])
		}

		// Tolerate an optional header row.
		if line == 0 && strings.EqualFold(email, "email") {
			continue
		}
		if name == "" && email == "" {
			continue
		}

		payload.Interns = append(payload.Interns, dto.InternPayload{
			Name:   name,
			Email:  email,
			ImgURL: imgURL,
		})
	}

	if len(payload.Interns) == 0 {
		return dto.InternOnboardRequest{}, ErrEmptyRoster
	}

	return payload, nil
}

func cleanRosterField(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, `"`, ""))
}

func (s *internService) List(ctx context.Context, actor Actor, batchID uint) ([]dto.InternResponse, error) {
	if err := s.requireViewer(ctx, actor, batchID); err != nil {
		return nil, err
	}

	interns, err := s.repo.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	return dto.NewInternResponseSlice(interns), nil
}

func (s *internService) Get(ctx context.Context, actor Actor, batchID, internID uint) (dto.InternResponse, error) {
	if err := s.requireViewer(ctx, actor, batchID); err != nil {
		return dto.InternResponse{}, err
	}

	intern, err := s.repo.GetByBatchAndID(ctx, batchID, internID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InternResponse{}, ErrInternNotFound
		}

		return dto.InternResponse{}, err
	}

	return dto.NewInternResponse(intern), nil
}

// Update applies the supplied status fields and leaves the rest untouched.
// A payload carrying neither field is rejected.
func (s *internService) Update(ctx context.Context, actor Actor, batchID, internID uint, payload dto.InternUpdateRequest) error {
	if err := s.requireProgramManager(ctx, actor, batchID); err != nil {
		return err
	}

	if payload.Notice == nil && payload.ColorCode == nil {
		return ErrNoFieldsToUpdate
	}

	if err := s.repo.UpdateFields(ctx, batchID, internID, payload.Notice, payload.ColorCode); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInternNotFound
		}

		return err
	}

	s.logger.Info().Uint("batch_id", batchID).Uint("intern_id", internID).Msg("intern updated")

	return nil
}

// Terminate sets the monotonic terminated flag; repeating the call is a no-op.
func (s *internService) Terminate(ctx context.Context, actor Actor, batchID, internID uint) error {
	if err := s.requireProgramManager(ctx, actor, batchID); err != nil {
		return err
	}

	if err := s.repo.Terminate(ctx, batchID, internID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInternNotFound
		}

		return err
	}

	terminatedID := internID
	s.activity.Record(ctx, ActivityEntry{
		BatchID:  batchID,
		MentorID: actor.MentorID,
		Action:   models.ActivityInternTerminated,
		InternID: &terminatedID,
	})

	s.logger.Info().Uint("batch_id", batchID).Uint("intern_id", internID).Msg("intern terminated")

	return nil
}

// UploadAvatar stores the intern portrait and persists its URL.
func (s *internService) UploadAvatar(ctx context.Context, actor Actor, batchID, internID uint, file *multipart.FileHeader) (string, error) {
	if err := s.requireProgramManager(ctx, actor, batchID); err != nil {
		return "", err
	}

	if _, err := s.repo.GetByBatchAndID(ctx, batchID, internID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInternNotFound
		}

		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open avatar file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("failed to read avatar file: %w", err)
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", ErrUnsupportedFileType
	}

	url, err := s.uploader.Upload(ctx, file.Filename, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.repo.SetImgURL(ctx, batchID, internID, url); err != nil {
		return "", err
	}

	return url, nil
}

func (s *internService) requireViewer(ctx context.Context, actor Actor, batchID uint) error {
	permissions, err := s.authz.Resolve(ctx, actor, batchID)
	if err != nil {
		return err
	}
	if !canViewBatch(permissions) {
		return ErrPermissionDenied
	}

	return nil
}

func (s *internService) requireProgramManager(ctx context.Context, actor Actor, batchID uint) error {
	permissions, err := s.authz.Resolve(ctx, actor, batchID)
	if err != nil {
		return err
	}
	if !permissions.ProgramManager {
		return ErrPermissionDenied
	}

	return nil
}
