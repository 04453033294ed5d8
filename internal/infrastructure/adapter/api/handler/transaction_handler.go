package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/transaction-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/api/dto"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactions usecase.TransactionUseCase
	logger       coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(transactions usecase.TransactionUseCase, logger coreport.Logger) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
		logger:       logger,
	}
}

// CreateTransaction handles the POST /transactions endpoint
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid transaction request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(domainerr.ErrValidation, "Invalid request body: "+err.Error()))
		return
	}

	txn, err := h.transactions.CreateTransaction(c.Request.Context(), usecase.CreateTransactionRequest{
		Amount:    req.Amount.Decimal,
		Currency:  req.Currency,
		Reference: req.Reference,
	})
	if err != nil {
		switch {
		case domainerr.IsValidationError(err):
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err, err.Error()))
		case domainerr.IsDataRejected(err):
			h.logger.Warn("Transaction rejected by store", map[string]any{
				"error": err.Error(),
			})
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err, "Transaction data rejected by store"))
		case domainerr.IsDuplicateReferenceError(err):
			c.JSON(http.StatusConflict, dto.NewErrorResponse(err, err.Error()))
		case domainerr.IsDuplicateTransactionError(err):
			c.JSON(http.StatusConflict, dto.NewErrorResponse(err, "Transaction already exists"))
		default:
			h.serverError(c, "Create transaction failed", err)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.NewTransactionResponse(txn))
}

// GetTransaction handles the GET /transactions/:id endpoint
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	txn, err := h.transactions.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case domainerr.IsValidationError(err):
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err, err.Error()))
		case domainerr.IsNotFoundError(err):
			c.JSON(http.StatusNotFound, dto.NewErrorResponse(err, "Transaction not found"))
		default:
			h.serverError(c, "Get transaction failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionResponse(txn))
}

func (h *TransactionHandler) serverError(c *gin.Context, message string, err error) {
	h.logger.Error(message, map[string]any{
		"error": err.Error(),
		"path":  c.Request.URL.Path,
	})
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(err, "Internal server error"))
}
