package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/pooltrader/journal"
	"github.com/rustyeddy/pooltrader/ledger"
)

// OpenTradeRequest opens a pooled trade.
type OpenTradeRequest struct {
	Symbol   string           `json:"symbol" binding:"required"`
	Strategy string           `json:"strategy" binding:"required"`
	Qty      decimal.Decimal  `json:"qty"`
	Price    decimal.Decimal  `json:"price"`
	Fee      *decimal.Decimal `json:"fee"`
	Accounts []string         `json:"accounts" binding:"required,min=1"`
	OpenedAt string           `json:"opened_at"`
}

// FillRequest adds a fill, or exits qty when sent to the exit route.
type FillRequest struct {
	Qty   decimal.Decimal  `json:"qty"`
	Price decimal.Decimal  `json:"price"`
	Fee   *decimal.Decimal `json:"fee"`
}

// ListTrades returns trades, filtered by the status query parameter.
func (h *Handler) ListTrades(c *gin.Context) {
	var status ledger.Status
	if s := c.Query("status"); s != "" {
		var err error
		if status, err = ledger.ParseStatus(s); err != nil {
			h.writeError(c, err)
			return
		}
	}

	trades, err := h.desk.Trades(c.Request.Context(), status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if trades == nil {
		trades = []ledger.Trade{}
	}
	c.JSON(http.StatusOK, trades)
}

// GetTrade returns a single trade.
func (h *Handler) GetTrade(c *gin.Context) {
	t, err := h.desk.Trade(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// OpenTrade opens a trade for the listed accounts.
func (h *Handler) OpenTrade(c *gin.Context) {
	var req OpenTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var openedAt time.Time
	if req.OpenedAt != "" {
		var err error
		if openedAt, err = parseTime(req.OpenedAt); err != nil {
			h.writeError(c, &ledger.ValidationError{Field: "opened_at", Reason: err.Error()})
			return
		}
	}

	t, err := h.desk.OpenTrade(c.Request.Context(), ledger.OpenRequest{
		Symbol:     req.Symbol,
		Strategy:   req.Strategy,
		Qty:        req.Qty,
		Price:      req.Price,
		Fee:        orZero(req.Fee),
		AccountIDs: req.Accounts,
		OpenedAt:   openedAt,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// AddFill averages a fill into an open trade.
func (h *Handler) AddFill(c *gin.Context) {
	var req FillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	t, err := h.desk.AddFill(c.Request.Context(), c.Param("id"), req.Qty, req.Price, orZero(req.Fee))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// ExitTrade exits part or all of a trade. With ?preview=true the result is
// computed but not saved.
func (h *Handler) ExitTrade(c *gin.Context) {
	var req FillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	preview, err := queryBool(c, "preview")
	if err != nil {
		badRequest(c, err)
		return
	}

	exit := h.desk.ExitTrade
	if preview {
		exit = h.desk.PreviewExit
	}
	res, err := exit(c.Request.Context(), c.Param("id"), req.Qty, req.Price, orZero(req.Fee))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"trade":   res.Trade,
		"record":  res.Record,
		"updates": res.Updates,
		"closed":  res.Closed(),
		"preview": preview,
	})
}

// DeleteTrade deletes a trade. Trades with history need ?cascade=true.
func (h *Handler) DeleteTrade(c *gin.Context) {
	cascade, err := queryBool(c, "cascade")
	if err != nil {
		badRequest(c, err)
		return
	}

	report, err := h.desk.DeleteTrade(c.Request.Context(), c.Param("id"), cascade)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ListHistory returns exit history. It can be filtered by trade_id or by a
// from/to time range. A to given as a plain date includes that day.
func (h *Handler) ListHistory(c *gin.Context) {
	recs, ok := h.history(c)
	if !ok {
		return
	}
	if recs == nil {
		recs = []ledger.HistoryRecord{}
	}
	c.JSON(http.StatusOK, recs)
}

// ExportHistory writes the same history as CSV.
func (h *Handler) ExportHistory(c *gin.Context) {
	recs, ok := h.history(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", `attachment; filename="trade_history.csv"`)
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)
	if err := journal.WriteHistoryCSV(c.Writer, recs); err != nil {
		h.log.Error("write history csv", "err", err)
	}
}

func (h *Handler) history(c *gin.Context) ([]ledger.HistoryRecord, bool) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" && to == "" {
		recs, err := h.desk.History(c.Request.Context(), c.Query("trade_id"))
		if err != nil {
			h.writeError(c, err)
			return nil, false
		}
		return recs, true
	}

	start, end := time.Time{}, time.Now().Add(24*time.Hour)
	var err error
	if from != "" {
		if start, err = parseTime(from); err != nil {
			badRequest(c, err)
			return nil, false
		}
	}
	if to != "" {
		if end, err = parseUntil(to); err != nil {
			badRequest(c, err)
			return nil, false
		}
	}
	recs, err := h.desk.HistoryBetween(c.Request.Context(), start, end)
	if err != nil {
		h.writeError(c, err)
		return nil, false
	}
	if id := c.Query("trade_id"); id != "" {
		own := recs[:0]
		for _, r := range recs {
			if r.TradeID == id {
				own = append(own, r)
			}
		}
		recs = own
	}
	return recs, true
}

// Summary returns pool analytics.
func (h *Handler) Summary(c *gin.Context) {
	s, err := h.desk.Summary(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
