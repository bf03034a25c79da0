package dto

import (
	"fmt"
	"strings"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// LedgerParams are the query parameters of every ledger endpoint.
// Source is a comma separated list of source kinds.
type LedgerParams struct {
	StartDate string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Source    string `form:"source"`
}

// ToLedgerQuery parses the parameters into a domain query.
func (p LedgerParams) ToLedgerQuery() (domain.LedgerQuery, error) {
	var q domain.LedgerQuery
	var err error
	if q.StartDate, err = ParseOptionalDate(p.StartDate); err != nil {
		return q, err
	}
	if q.EndDate, err = ParseOptionalDate(p.EndDate); err != nil {
		return q, err
	}
	if q.StartDate != nil && q.EndDate != nil && q.EndDate.Before(*q.StartDate) {
		return q, fmt.Errorf("%w: endDate is before startDate", apperrors.ErrValidation)
	}
	for _, raw := range strings.Split(p.Source, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		kind, err := domain.ParseSourceKind(raw)
		if err != nil {
			return q, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		q.SourceKinds = append(q.SourceKinds, kind)
	}
	return q, nil
}
