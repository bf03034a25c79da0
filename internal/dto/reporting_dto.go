package dto

// TrialBalanceParams bounds the trial balance. Both ends are optional.
type TrialBalanceParams struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// CashFlowParams selects the year of the monthly cash flow report.
type CashFlowParams struct {
	Year int `form:"year" binding:"omitempty,min=1900,max=9999"`
}
