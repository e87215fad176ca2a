package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorhub-api/internal/dto"
	"github.com/mentorhub/mentorhub-api/internal/handler"
	"github.com/mentorhub/mentorhub-api/internal/service"
)

type mockFeedbackService struct {
	feedback     dto.FeedbackResponse
	conversation dto.ConversationResponse
	listing      []dto.FeedbackResponse
	err          error
}

func (m *mockFeedbackService) Record(_ context.Context, _ service.Actor, _ uint, _ dto.FeedbackCreateRequest) (dto.FeedbackResponse, error) {
	if m.err != nil {
		return dto.FeedbackResponse{}, m.err
	}
	return m.feedback, nil
}

func (m *mockFeedbackService) Deliver(_ context.Context, _ service.Actor, _ uint, _ dto.FeedbackDeliverRequest) (dto.ConversationResponse, error) {
	if m.err != nil {
		return dto.ConversationResponse{}, m.err
	}
	return m.conversation, nil
}

func (m *mockFeedbackService) Conversation(_ context.Context, _ service.Actor, _ uint) (dto.ConversationResponse, error) {
	if m.err != nil {
		return dto.ConversationResponse{}, m.err
	}
	return m.conversation, nil
}

func (m *mockFeedbackService) ListByIntern(_ context.Context, _ service.Actor, _ uint) ([]dto.FeedbackResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.listing, nil
}

func (m *mockFeedbackService) ListByBatch(_ context.Context, _ service.Actor, _ uint) ([]dto.FeedbackResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.listing, nil
}

func newFeedbackApp(svc service.FeedbackService) *fiber.App {
	app := fiber.New()
	h := handler.NewFeedbackHandler(svc, zerolog.New(io.Discard))
	h.RegisterBatchRoutes(app.Group("/api/v1/batches", sessionLocals(7, false)))
	h.RegisterFeedbackRoutes(app.Group("/api/v1/feedbacks", sessionLocals(7, false)))
	return app
}

func deliverRequest(t *testing.T) *http.Request {
	t.Helper()
	body, err := json.Marshal(dto.FeedbackDeliverRequest{Conversation: "went through it together"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedbacks/5/deliver", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestFeedbackHandler_DeliverSuccess(t *testing.T) {
	svc := &mockFeedbackService{conversation: dto.ConversationResponse{ID: 1, FeedbackID: 5, Content: "went through it together"}}
	app := newFeedbackApp(svc)

	resp, err := app.Test(deliverRequest(t))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Data dto.ConversationResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, uint(5), response.Data.FeedbackID)
}

func TestFeedbackHandler_DeliverConflict(t *testing.T) {
	app := newFeedbackApp(&mockFeedbackService{err: service.ErrAlreadyDelivered})

	resp, err := app.Test(deliverRequest(t))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestFeedbackHandler_DeliverNotFound(t *testing.T) {
	app := newFeedbackApp(&mockFeedbackService{err: service.ErrFeedbackNotFound})

	resp, err := app.Test(deliverRequest(t))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestFeedbackHandler_ConversationNotFound(t *testing.T) {
	app := newFeedbackApp(&mockFeedbackService{err: service.ErrConversationNotFound})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/feedbacks/5/conversation", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestFeedbackHandler_RecordPermissionDenied(t *testing.T) {
	app := newFeedbackApp(&mockFeedbackService{err: service.ErrPermissionDenied})

	body, err := json.Marshal(dto.FeedbackCreateRequest{InternID: 1, Content: "x", Date: "2025-01-15"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/batches/3/feedbacks", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestFeedbackHandler_ListByBatchAppliesFilters(t *testing.T) {
	svc := &mockFeedbackService{listing: []dto.FeedbackResponse{
		{ID: 1, InternName: "Alice", Delivered: true},
		{ID: 2, InternName: "Bob", Delivered: false},
	}}
	app := newFeedbackApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/batches/3/feedbacks?delivered=false", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Data []dto.FeedbackResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Len(t, response.Data, 1)
	require.Equal(t, uint(2), response.Data[0].ID)
}
