package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/hr-verification/internal/models"
	"alfredoptarigan/hr-verification/internal/repositories"
	"alfredoptarigan/hr-verification/internal/services"
)

func newEmploymentApp(svc services.VerificationService) *fiber.App {
	app := fiber.New()
	h := NewEmploymentHandler(svc)

	group := app.Group("/api/employment-verifications")
	group.Post("/", h.HandleCreate)
	group.Get("/form/:token", h.HandleForm)
	group.Post("/submit/:token", h.HandleSubmit)
	group.Post("/:id/calling-log", h.HandleAddCallingLog)
	group.Post("/:id/fail", h.HandleMarkFailed)
	return app
}

func jsonRequest(method, target string, payload any) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestHandleCreateVerification(t *testing.T) {
	var created *models.EmploymentVerification
	svc := &fakeVerificationService{
		createFn: func(req models.CreateVerificationRequest) (*models.EmploymentVerification, error) {
			created = &models.EmploymentVerification{
				ID:                  uuid.New(),
				CandidateID:         req.CandidateID,
				PreviousCompanyName: req.PreviousCompanyName,
				Status:              models.StatusPending,
			}
			return created, nil
		},
	}
	app := newEmploymentApp(svc)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/employment-verifications/", map[string]any{
		"candidateId":          uuid.New().String(),
		"previousCompanyName":  "Acme Corp",
		"previousCompanyEmail": "hr@acme.example",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body models.EmploymentVerification
	decodeBody(t, resp, &body)
	assert.Equal(t, created.ID, body.ID)
	assert.Equal(t, models.StatusPending, body.Status)
}

func TestHandleCreateVerificationValidation(t *testing.T) {
	svc := &fakeVerificationService{
		createFn: func(models.CreateVerificationRequest) (*models.EmploymentVerification, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, nil
		},
	}
	app := newEmploymentApp(svc)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/employment-verifications/", map[string]any{
		"previousCompanyName": "Acme Corp",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleCreateVerificationUnknownCandidate(t *testing.T) {
	svc := &fakeVerificationService{
		createFn: func(models.CreateVerificationRequest) (*models.EmploymentVerification, error) {
			return nil, repositories.ErrCandidateNotFound
		},
	}
	app := newEmploymentApp(svc)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/employment-verifications/", map[string]any{
		"candidateId":          uuid.New().String(),
		"previousCompanyName":  "Acme Corp",
		"previousCompanyEmail": "hr@acme.example",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleFormInvalidToken(t *testing.T) {
	svc := &fakeVerificationService{
		formFn: func(string) (*models.VerificationForm, error) {
			return nil, services.ErrInvalidToken
		},
	}
	app := newEmploymentApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/employment-verifications/form/expired-token", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Invalid or expired link", body["message"])
}

func TestHandleFormSuccess(t *testing.T) {
	svc := &fakeVerificationService{
		formFn: func(token string) (*models.VerificationForm, error) {
			assert.Equal(t, "good-token", token)
			return &models.VerificationForm{
				PreviousCompanyName: "Acme Corp",
				Questions: []models.FormQuestion{
					{Key: "designation_match", Label: "Is designation correct?", Type: "boolean"},
				},
			}, nil
		},
	}
	app := newEmploymentApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/employment-verifications/form/good-token", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.VerificationForm
	decodeBody(t, resp, &body)
	assert.Equal(t, "Acme Corp", body.PreviousCompanyName)
	assert.Len(t, body.Questions, 1)
}

func TestHandleSubmitMultipart(t *testing.T) {
	var gotAnswers string
	var gotAttachments []services.SubmitAttachment
	svc := &fakeVerificationService{
		submitFn: func(token string, answers string, attachments []services.SubmitAttachment) error {
			assert.Equal(t, "tok-1", token)
			gotAnswers = answers
			gotAttachments = attachments
			return nil
		},
	}
	app := newEmploymentApp(svc)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("answers", `{"designation_match": false, "tenure_match": true}`))
	part, err := writer.CreateFormFile("offerLetter", "offer.pdf")
	require.NoError(t, err)
	_, err = io.WriteString(part, "%PDF-1.4 fake content")
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/employment-verifications/submit/tok-1", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Verification submitted successfully", body["message"])

	assert.JSONEq(t, `{"designation_match": false, "tenure_match": true}`, gotAnswers)
	require.Len(t, gotAttachments, 1)
	assert.Equal(t, models.DocumentOfferLetter, gotAttachments[0].Type)
	assert.Equal(t, "offer.pdf", gotAttachments[0].File.Filename)
}

func TestHandleSubmitJSONBody(t *testing.T) {
	var gotAnswers string
	svc := &fakeVerificationService{
		submitFn: func(_ string, answers string, _ []services.SubmitAttachment) error {
			gotAnswers = answers
			return nil
		},
	}
	app := newEmploymentApp(svc)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/employment-verifications/submit/tok-2", map[string]any{
		"answers": map[string]any{"designation_match": true, "tenure_match": true},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"designation_match": true, "tenure_match": true}`, gotAnswers)
}

func TestHandleSubmitErrors(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"invalid token", services.ErrInvalidToken, http.StatusBadRequest},
		{"already submitted", services.ErrAlreadySubmitted, http.StatusConflict},
		{"invalid answers", services.ErrInvalidAnswers, http.StatusBadRequest},
		{"oversized document", services.ErrDocumentTooLarge, http.StatusBadRequest},
		{"unsupported type", services.ErrUnsupportedDocumentType, http.StatusBadRequest},
		{"storage down", fmt.Errorf("upload request failed"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeVerificationService{
				submitFn: func(string, string, []services.SubmitAttachment) error {
					return tt.serviceErr
				},
			}
			app := newEmploymentApp(svc)

			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/employment-verifications/submit/tok", map[string]any{
				"answers": map[string]any{},
			}))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestHandleAddCallingLog(t *testing.T) {
	verificationID := uuid.New()
	svc := &fakeVerificationService{
		callingLogFn: func(id uuid.UUID, req models.CallingLogRequest) (*models.CallingLog, error) {
			assert.Equal(t, verificationID, id)
			assert.Equal(t, "No answer", req.Outcome)
			return &models.CallingLog{ID: uuid.New(), EmploymentVerificationID: id, Outcome: req.Outcome}, nil
		},
	}
	app := newEmploymentApp(svc)

	resp, err := app.Test(jsonRequest(http.MethodPost,
		"/api/employment-verifications/"+verificationID.String()+"/calling-log",
		map[string]any{"callTime": "2026-03-01T09:00:00Z", "outcome": "No answer", "notes": "no pickup"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestHandleAddCallingLogInvalidID(t *testing.T) {
	app := newEmploymentApp(&fakeVerificationService{})

	resp, err := app.Test(jsonRequest(http.MethodPost,
		"/api/employment-verifications/not-a-uuid/calling-log", map[string]any{}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleMarkFailed(t *testing.T) {
	verificationID := uuid.New()
	svc := &fakeVerificationService{
		markFailedFn: func(id uuid.UUID) (*models.EmploymentVerification, error) {
			return &models.EmploymentVerification{ID: id, Status: models.StatusFailed}, nil
		},
	}
	app := newEmploymentApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost,
		"/api/employment-verifications/"+verificationID.String()+"/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.EmploymentVerification
	decodeBody(t, resp, &body)
	assert.Equal(t, models.StatusFailed, body.Status)
}

func TestHandleMarkFailedTerminal(t *testing.T) {
	svc := &fakeVerificationService{
		markFailedFn: func(uuid.UUID) (*models.EmploymentVerification, error) {
			return nil, services.ErrInvalidTransition
		},
	}
	app := newEmploymentApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost,
		"/api/employment-verifications/"+uuid.New().String()+"/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
