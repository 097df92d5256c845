package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dperera/payconfirm/internal/models"
	"github.com/stretchr/testify/assert"
)

func queueEnvelope(queueItem string) string {
	return `{"Data":{"queueItem":` + queueItem + `},"Metadata":{}}`
}

func TestProcessQueue_DispatchesAlert(t *testing.T) {
	mockAlert := &MockAlertClient{}

	sent := false
	mockAlert.SendFunc = func(ctx context.Context, msg models.AlertMessage) error {
		sent = true
		assert.Equal(t, "shop_test", msg.AccountID)
		assert.Equal(t, "CREDIT", msg.Type)
		assert.Equal(t, "2,000.00", msg.Amount)
		return nil
	}

	deps := &Dependencies{Alert: mockAlert, Config: testConfig()}

	item := `"{\"accountId\":\"shop_test\",\"type\":\"CREDIT\",\"amount\":\"2,000.00\",\"timestamp\":\"2024-01-01T12:00:00Z\"}"`
	req := httptest.NewRequest(http.MethodPost, "/ProcessQueue", strings.NewReader(queueEnvelope(item)))
	w := httptest.NewRecorder()

	deps.ProcessQueue(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, sent, "Alert should have been dispatched")
}

func TestProcessQueue_SendFailureConsumesMessage(t *testing.T) {
	mockAlert := &MockAlertClient{}
	mockAlert.SendFunc = func(ctx context.Context, msg models.AlertMessage) error {
		return errors.New("push backend down")
	}

	deps := &Dependencies{Alert: mockAlert, Config: testConfig()}

	item := `"{\"accountId\":\"shop_test\",\"type\":\"DEBIT\",\"amount\":\"500\"}"`
	req := httptest.NewRequest(http.MethodPost, "/ProcessQueue", strings.NewReader(queueEnvelope(item)))
	w := httptest.NewRecorder()

	deps.ProcessQueue(w, req)

	// No retry: the message is consumed even when dispatch fails.
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProcessQueue_MissingQueueItem(t *testing.T) {
	deps := &Dependencies{Config: testConfig()}

	req := httptest.NewRequest(http.MethodPost, "/ProcessQueue", strings.NewReader(`{"Data":{},"Metadata":{}}`))
	w := httptest.NewRecorder()

	deps.ProcessQueue(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing queueItem")
}

func TestProcessQueue_InvalidQueueItemJSON(t *testing.T) {
	deps := &Dependencies{Config: testConfig()}

	req := httptest.NewRequest(http.MethodPost, "/ProcessQueue", strings.NewReader(queueEnvelope(`"not json"`)))
	w := httptest.NewRecorder()

	deps.ProcessQueue(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessQueue_MissingAccountDropped(t *testing.T) {
	mockAlert := &MockAlertClient{}
	mockAlert.SendFunc = func(ctx context.Context, msg models.AlertMessage) error {
		assert.Fail(t, "Alert without accountId must be dropped")
		return nil
	}

	deps := &Dependencies{Alert: mockAlert, Config: testConfig()}

	item := `"{\"type\":\"DEBIT\",\"amount\":\"500\"}"`
	req := httptest.NewRequest(http.MethodPost, "/ProcessQueue", strings.NewReader(queueEnvelope(item)))
	w := httptest.NewRecorder()

	deps.ProcessQueue(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProcessQueue_LowercaseQueueItemKey(t *testing.T) {
	mockAlert := &MockAlertClient{}

	sent := false
	mockAlert.SendFunc = func(ctx context.Context, msg models.AlertMessage) error {
		sent = true
		return nil
	}

	deps := &Dependencies{Alert: mockAlert, Config: testConfig()}

	body := `{"Data":{"queueitem":"{\"accountId\":\"shop_test\",\"type\":\"DEBIT\",\"amount\":\"500\"}"},"Metadata":{}}`
	req := httptest.NewRequest(http.MethodPost, "/ProcessQueue", strings.NewReader(body))
	w := httptest.NewRecorder()

	deps.ProcessQueue(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, sent)
}
