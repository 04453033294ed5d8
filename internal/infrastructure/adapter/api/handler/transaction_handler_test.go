package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/transaction-processor/internal/domain/error"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/logger"
	usecasemocks "github.com/amirhossein-jamali/transaction-processor/mocks/port/usecase"
)

var createdAt = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(uc usecase.TransactionUseCase, checks ...HealthCheck) *gin.Engine {
	log := logger.NewNopLogger()
	transactions := NewTransactionHandler(uc, log)
	health := NewHealthHandler(log, checks...)

	router := gin.New()
	router.POST("/transactions", transactions.CreateTransaction)
	router.GET("/transactions/:id", transactions.GetTransaction)
	router.GET("/health", health.Health)
	return router
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func pendingTxn() *entity.Transaction {
	return entity.NewTransaction("tx-1", decimal.NewFromInt(100), "USD", "INV-001", createdAt)
}

func TestCreateTransaction(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		uc := usecasemocks.NewMockTransactionUseCase(t)
		uc.EXPECT().
			CreateTransaction(mock.Anything, mock.MatchedBy(func(req usecase.CreateTransactionRequest) bool {
				return req.Amount.Equal(decimal.NewFromInt(100)) && req.Currency == "USD" && req.Reference == "INV-001"
			})).
			Return(pendingTxn(), nil)

		rec := serve(newRouter(uc), http.MethodPost, "/transactions", `{"amount":100,"currency":"USD","reference":"INV-001"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{
			"id": "tx-1",
			"amount": 100,
			"currency": "USD",
			"reference": "INV-001",
			"status": "PENDING",
			"createdAt": "2025-03-14T09:00:00Z",
			"updatedAt": "2025-03-14T09:00:00Z"
		}`, rec.Body.String())
	})

	t.Run("MalformedBody", func(t *testing.T) {
		uc := usecasemocks.NewMockTransactionUseCase(t)

		rec := serve(newRouter(uc), http.MethodPost, "/transactions", `{"amount":"100","currency":"USD","reference":"INV-001"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"error":"ValidationError"`)
	})

	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "ValidationError",
			err:        domainerr.NewValidationError("amount", "Amount must be a positive number"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"ValidationError","message":"Amount must be a positive number","code":4000}`,
		},
		{
			name:       "DuplicateReference",
			err:        domainerr.NewDuplicateReferenceError("INV-001", "existing-id"),
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"DuplicateReference","message":"Transaction with reference 'INV-001' already exists","code":4090,"existingTransactionId":"existing-id"}`,
		},
		{
			name:       "DuplicateTransaction",
			err:        domainerr.ErrDuplicateTransaction,
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"DuplicateTransaction","message":"Transaction already exists","code":4091}`,
		},
		{
			name:       "DataRejected",
			err:        fmt.Errorf("failed to store transaction: %w: numeric field overflow (SQLSTATE 22003)", domainerr.ErrDataRejected),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"ValidationError","message":"Transaction data rejected by store","code":4000}`,
		},
		{
			name:       "StoreFailure",
			err:        fmt.Errorf("failed to store transaction: %w", domainerr.ErrDatabaseConnection),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"InternalError","message":"Internal server error","code":5000}`,
		},
		{
			name:       "PublishFailure",
			err:        fmt.Errorf("%w: transaction tx-1: broker down", domainerr.ErrNotificationFailed),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"InternalError","message":"Internal server error","code":5000}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc := usecasemocks.NewMockTransactionUseCase(t)
			uc.EXPECT().CreateTransaction(mock.Anything, mock.Anything).Return(nil, tc.err)

			rec := serve(newRouter(uc), http.MethodPost, "/transactions", `{"amount":-1,"currency":"USD","reference":"INV-001"}`)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.JSONEq(t, tc.wantBody, rec.Body.String())
		})
	}
}

func TestGetTransaction(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		txn := pendingTxn()
		txn.Status = entity.StatusFailed
		txn.FailureReason = "Simulated processing failure"

		uc := usecasemocks.NewMockTransactionUseCase(t)
		uc.EXPECT().GetTransaction(mock.Anything, "tx-1").Return(txn, nil)

		rec := serve(newRouter(uc), http.MethodGet, "/transactions/tx-1", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"FAILED"`)
		assert.Contains(t, rec.Body.String(), `"failureReason":"Simulated processing failure"`)
	})

	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"NotFound", domainerr.ErrTransactionNotFound, http.StatusNotFound, domainerr.KindNotFound},
		{"Validation", domainerr.NewValidationError("id", "Transaction ID is required"), http.StatusBadRequest, domainerr.KindValidation},
		{"StoreFailure", errors.New("connection reset"), http.StatusInternalServerError, domainerr.KindInternal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc := usecasemocks.NewMockTransactionUseCase(t)
			uc.EXPECT().GetTransaction(mock.Anything, "tx-1").Return(nil, tc.err)

			rec := serve(newRouter(uc), http.MethodGet, "/transactions/tx-1", "")

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), fmt.Sprintf(`"error":"%s"`, tc.wantKind))
		})
	}
}

func TestHealth(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		rec := serve(newRouter(usecasemocks.NewMockTransactionUseCase(t)), http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	})

	t.Run("FailingCheck", func(t *testing.T) {
		down := func(context.Context) error { return errors.New("database is down") }

		rec := serve(newRouter(usecasemocks.NewMockTransactionUseCase(t), down), http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"InternalError","code":5000}`, rec.Body.String())
	})
}
