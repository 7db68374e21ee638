package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/pooltrader/ledger"
)

// AccountRequest creates an account.
type AccountRequest struct {
	UserID  string          `json:"user_id" binding:"required"`
	Name    string          `json:"name" binding:"required"`
	Email   string          `json:"email" binding:"required"`
	Capital decimal.Decimal `json:"capital"`
}

// CapitalRequest deposits into or withdraws from an account.
type CapitalRequest struct {
	Action string          `json:"action" binding:"required,oneof=deposit withdraw"`
	Amount decimal.Decimal `json:"amount"`
}

// ListAccounts returns every account.
func (h *Handler) ListAccounts(c *gin.Context) {
	accounts, err := h.desk.Accounts(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	if accounts == nil {
		accounts = []ledger.Account{}
	}
	c.JSON(http.StatusOK, accounts)
}

// CreateAccount adds an account to the pool.
func (h *Handler) CreateAccount(c *gin.Context) {
	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	a, err := h.desk.CreateAccount(c.Request.Context(), req.UserID, req.Name, req.Email, req.Capital)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// AdjustCapital deposits or withdraws capital.
func (h *Handler) AdjustCapital(c *gin.Context) {
	var req CapitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var (
		a   ledger.Account
		err error
	)
	switch req.Action {
	case "deposit":
		a, err = h.desk.Deposit(c.Request.Context(), c.Param("id"), req.Amount)
	case "withdraw":
		a, err = h.desk.Withdraw(c.Request.Context(), c.Param("id"), req.Amount)
	default:
		badRequest(c, fmt.Errorf("unknown action %q", req.Action))
		return
	}
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// DeleteAccount removes an account that is not part of an open trade.
func (h *Handler) DeleteAccount(c *gin.Context) {
	if err := h.desk.DeleteAccount(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
