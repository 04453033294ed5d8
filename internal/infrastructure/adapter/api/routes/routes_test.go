package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/transaction-processor/internal/domain/error"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/logger"
	timeadapter "github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/time"
	usecasemocks "github.com/amirhossein-jamali/transaction-processor/mocks/port/usecase"
)

func newTestRouter(t *testing.T) (*gin.Engine, *usecasemocks.MockTransactionUseCase) {
	gin.SetMode(gin.TestMode)
	uc := usecasemocks.NewMockTransactionUseCase(t)
	log := logger.NewNopLogger()
	router := NewRouter(
		log,
		timeadapter.NewRealTimeProvider(),
		handler.NewTransactionHandler(uc, log),
		handler.NewHealthHandler(log),
	)
	return router, uc
}

func assertCORS(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, middleware.AllowOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, middleware.AllowHeaders, rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, middleware.AllowMethods, rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestRoutesCarryCORSHeaders(t *testing.T) {
	router, uc := newTestRouter(t)
	uc.EXPECT().GetTransaction(mock.Anything, "missing").Return(nil, assert.AnError)

	for _, path := range []string{"/health", "/transactions/missing", "/unknown"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assertCORS(t, rec)
	}
}

func TestPreflight(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/transactions", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assertCORS(t, rec)
}

func TestMissingTransactionIDIsAValidationError(t *testing.T) {
	router, uc := newTestRouter(t)
	uc.EXPECT().GetTransaction(mock.Anything, "").
		Return(nil, domainerr.NewValidationError("id", "Transaction ID is required")).Twice()

	for _, path := range []string{"/transactions", "/transactions/"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.JSONEq(t, `{"error":"ValidationError","message":"Transaction ID is required","code":4000}`, rec.Body.String())
		assertCORS(t, rec)
	}
}

func TestPanicIsRecovered(t *testing.T) {
	router, uc := newTestRouter(t)
	uc.EXPECT().GetTransaction(mock.Anything, "boom").
		RunAndReturn(func(context.Context, string) (*entity.Transaction, error) {
			panic("unexpected")
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"InternalError","message":"Internal server error","code":5000}`, rec.Body.String())
}
