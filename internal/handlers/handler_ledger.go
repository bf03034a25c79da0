package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
)

// bindLedgerQuery reads the ledger query parameters shared by account,
// customer and supplier ledgers.
func bindLedgerQuery(c *gin.Context, logger *slog.Logger) (domain.LedgerQuery, bool) {
	var params dto.LedgerParams
	if !bindQuery(c, logger, &params) {
		return domain.LedgerQuery{}, false
	}
	query, err := params.ToLedgerQuery()
	if err != nil {
		logger.Warn("Invalid ledger query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return domain.LedgerQuery{}, false
	}
	return query, true
}
