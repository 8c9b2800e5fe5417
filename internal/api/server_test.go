package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"mailroom.app/billing/internal/api"
	"mailroom.app/billing/mocks"
	"mailroom.app/billing/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(router http.Handler, method string, path string, secret string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if secret != "" {
		req.Header.Set(api.SecretHeader, secret)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func TestServer(t *testing.T) {
	t.Parallel()

	t.Run("Should answer health checks without a secret", func(t *testing.T) {
		t.Parallel()

		server := api.NewServer(mocks.NewInvoiceRunner(t), mocks.NewOrphanRepairer(t), "")
		rec := perform(server.Router(), http.MethodGet, "/healthz", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Should fail closed when no secret is configured", func(t *testing.T) {
		t.Parallel()

		server := api.NewServer(mocks.NewInvoiceRunner(t), mocks.NewOrphanRepairer(t), "")
		rec := perform(server.Router(), http.MethodPost, "/internal/billing/invoices/run", "anything")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "trigger_secret_not_configured", errorCode(t, rec))
	})

	t.Run("Should reject a wrong or missing secret", func(t *testing.T) {
		t.Parallel()

		server := api.NewServer(mocks.NewInvoiceRunner(t), mocks.NewOrphanRepairer(t), "s3cret")
		router := server.Router()

		rec := perform(router, http.MethodPost, "/internal/billing/invoices/run", "wrong")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "unauthorized", errorCode(t, rec))

		rec = perform(router, http.MethodPost, "/internal/billing/charges/repair", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Should return the run report even when some users failed", func(t *testing.T) {
		t.Parallel()

		runner := mocks.NewInvoiceRunner(t)
		runner.EXPECT().Run(mock.Anything).Return(&models.RunReport{
			RunId:     "run-1",
			StartedAt: time.Date(2025, 2, 1, 0, 15, 0, 0, time.UTC),
			Eligible:  2,
			Generated: 1,
			Errored:   1,
			Items: []models.UserOutcome{
				{UserId: 1, Status: models.OutcomeGenerated, InvoiceId: 11},
				{UserId: 2, Status: models.OutcomeErrored, Reason: "generate_failed", Error: "deadlock found"},
			},
		}, nil)

		server := api.NewServer(runner, mocks.NewOrphanRepairer(t), "s3cret")
		rec := perform(server.Router(), http.MethodPost, "/internal/billing/invoices/run", "s3cret")
		require.Equal(t, http.StatusOK, rec.Code)

		var report models.RunReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, "run-1", report.RunId)
		assert.Equal(t, 2, report.Eligible)
		assert.Equal(t, 1, report.Errored)
		assert.Equal(t, "generate_failed", report.Items[1].Reason)
	})

	t.Run("Should report a fatal run error", func(t *testing.T) {
		t.Parallel()

		runner := mocks.NewInvoiceRunner(t)
		runner.EXPECT().Run(mock.Anything).Return(nil, errors.New("list active subscribers: too many connections"))

		server := api.NewServer(runner, mocks.NewOrphanRepairer(t), "s3cret")
		rec := perform(server.Router(), http.MethodPost, "/internal/billing/invoices/run", "s3cret")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "run_failed", errorCode(t, rec))
	})

	t.Run("Should run the orphan repair", func(t *testing.T) {
		t.Parallel()

		repairer := mocks.NewOrphanRepairer(t)
		repairer.EXPECT().RepairOrphans(mock.Anything).Return(&models.RepairReport{Repaired: 2, ChargeIds: []int64{31, 32}}, nil)

		server := api.NewServer(mocks.NewInvoiceRunner(t), repairer, "s3cret")
		rec := perform(server.Router(), http.MethodPost, "/internal/billing/charges/repair", "s3cret")
		require.Equal(t, http.StatusOK, rec.Code)

		var report models.RepairReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, int64(2), report.Repaired)
		assert.Equal(t, []int64{31, 32}, report.ChargeIds)
	})
}
