package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
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

type mockInternService struct {
	listing    []dto.InternResponse
	intern     dto.InternResponse
	count      int
	terminated []uint
	err        error
}

func (m *mockInternService) Onboard(_ context.Context, _ service.Actor, _ uint, payload dto.InternOnboardRequest) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return len(payload.Interns), nil
}

func (m *mockInternService) ImportRoster(_ context.Context, _ service.Actor, _ uint, _ *multipart.FileHeader) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.count, nil
}

func (m *mockInternService) List(_ context.Context, _ service.Actor, _ uint) ([]dto.InternResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.listing, nil
}

func (m *mockInternService) Get(_ context.Context, _ service.Actor, _, _ uint) (dto.InternResponse, error) {
	if m.err != nil {
		return dto.InternResponse{}, m.err
	}
	return m.intern, nil
}

func (m *mockInternService) Update(_ context.Context, _ service.Actor, _, _ uint, _ dto.InternUpdateRequest) error {
	return m.err
}

func (m *mockInternService) Terminate(_ context.Context, _ service.Actor, _ uint, internID uint) error {
	if m.err != nil {
		return m.err
	}
	m.terminated = append(m.terminated, internID)
	return nil
}

func (m *mockInternService) UploadAvatar(_ context.Context, _ service.Actor, _, _ uint, _ *multipart.FileHeader) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "https://cdn.example.com/a.png", nil
}

func newInternApp(svc service.InternService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/batches", sessionLocals(7, false))
	h := handler.NewInternHandler(svc, zerolog.New(io.Discard))
	h.Register(group)
	h.RegisterImport(group)
	return app
}

func TestInternHandler_OnboardReturnsCreated(t *testing.T) {
	app := newInternApp(&mockInternService{})

	body, err := json.Marshal(dto.InternOnboardRequest{Interns: []dto.InternPayload{
		{Name: "A", Email: "a@x.com"},
		{Name: "B", Email: "b@x.com"},
	}})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/batches/3/interns", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var response struct {
		Data dto.OnboardResult `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, 2, response.Data.Count)
}

func TestInternHandler_ListAppliesFilters(t *testing.T) {
	svc := &mockInternService{listing: []dto.InternResponse{
		{ID: 1, Name: "Alice Johnson", ColorCode: "red", Notice: true},
		{ID: 2, Name: "Bob Stone", ColorCode: "red", Notice: false},
		{ID: 3, Name: "Alice Mint", ColorCode: "blue", Notice: true},
	}}
	app := newInternApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/batches/3/interns?name=alice&colorCode=red&notice=true", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Data []dto.InternResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Len(t, response.Data, 1)
	require.Equal(t, uint(1), response.Data[0].ID)
}

func TestInternHandler_TerminateViaDelete(t *testing.T) {
	svc := &mockInternService{}
	app := newInternApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/batches/3/interns/9", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, []uint{9}, svc.terminated)
}

func TestInternHandler_UpdateNoFields(t *testing.T) {
	app := newInternApp(&mockInternService{err: service.ErrNoFieldsToUpdate})

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/batches/3/interns/9", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestInternHandler_ImportRosterMultipart(t *testing.T) {
	svc := &mockInternService{count: 2}
	app := newInternApp(svc)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "roster.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("Alice,a@x.com\nBob,b@x.com\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/batches/3/interns/import", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}
