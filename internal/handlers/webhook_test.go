package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"amlwatch/internal/models"
	"amlwatch/internal/services/auth"
	"amlwatch/internal/services/monitoring"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPipeline struct {
	mock.Mock
}

func (m *MockPipeline) Process(ctx context.Context, req *models.SuspiciousTransactionRequest) *monitoring.ProcessResult {
	return m.Called(req.CaseNumber).Get(0).(*monitoring.ProcessResult)
}

func newWebhookApp(p monitoring.Service) *fiber.App {
	h := NewWebhookHandler(auth.NewService(auth.Config{WebhookToken: "secret"}, zerolog.Nop()), p, zerolog.Nop())
	app := fiber.New()
	app.Post("/webhook", h.ProcessSuspiciousTransaction)
	return app
}

func postJSON(t *testing.T, app *fiber.App, body any) (*http.Response, map[string]any) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func validWebhookRequest() models.SuspiciousTransactionRequest {
	return models.SuspiciousTransactionRequest{
		CaseNumber:         "CASE-1",
		ComplianceCategory: "AML",
		Perm:               "secret",
		CurrentTransaction: models.TransactionData{
			AcctNo:        "0012345",
			AcctName:      "Jane Banda",
			TranID:        "TX-1",
			TranDate:      "2024-06-01",
			TranCrncyCode: "ZMW",
			DrCrIndicator: "C",
			TranAmt:       100,
		},
	}
}

func TestWebhook_TokenCheckedBeforeValidation(t *testing.T) {
	p := new(MockPipeline)
	req := validWebhookRequest()
	req.Perm = "nope"
	req.CurrentTransaction.AcctNo = ""

	resp, _ := postJSON(t, newWebhookApp(p), req)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	p.AssertNotCalled(t, "Process", mock.Anything)
}

func TestWebhook_CaseNumberTooLong(t *testing.T) {
	p := new(MockPipeline)
	req := validWebhookRequest()
	req.CaseNumber = "CASE-0123456789012345678901"

	resp, body := postJSON(t, newWebhookApp(p), req)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.Contains(t, body["error"], "case_number")
	p.AssertNotCalled(t, "Process", mock.Anything)
}

func TestWebhook_FailedProcessingIs500(t *testing.T) {
	p := new(MockPipeline)
	p.On("Process", "CASE-1").Return(&monitoring.ProcessResult{
		Success: false,
		Status:  monitoring.StatusFailed,
		Error:   "transaction processing panicked: boom",
	}).Once()

	resp, body := postJSON(t, newWebhookApp(p), validWebhookRequest())

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "boom")
	p.AssertExpectations(t)
}

func TestWebhook_Success(t *testing.T) {
	p := new(MockPipeline)
	p.On("Process", "CASE-1").Return(&monitoring.ProcessResult{
		Success:    true,
		Status:     monitoring.StatusProcessed,
		CaseNumber: "CASE-1",
	}).Once()

	resp, body := postJSON(t, newWebhookApp(p), validWebhookRequest())

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Transaction processed successfully", body["message"])
	assert.Equal(t, "CASE-1", body["case_number"])
	p.AssertExpectations(t)
}

func TestWebhook_MalformedBody(t *testing.T) {
	app := newWebhookApp(new(MockPipeline))
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
