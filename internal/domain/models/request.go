package models

// SignalsRequest is the query of GET /api/signals.
type SignalsRequest struct {
	Format string `query:"format" default:"json" validate:"oneof=json text"`
}

// VerdictsRequest is the query of GET /api/verdicts.
type VerdictsRequest struct {
	Name  string `query:"name" validate:"omitempty,oneof=recession_risk liquidity real_rate business_cycle"`
	From  string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To    string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Limit int    `query:"limit" default:"100" validate:"gte=1,lte=1000"`
}
