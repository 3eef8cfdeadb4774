package models

import (
	"math"
	"time"
)

// Observation is one dated value of a macro series. A NaN value marks a missing reading.
type Observation struct {
	Time  time.Time
	Value float64
}

// Missing reports whether the observation carries no value.
func (o Observation) Missing() bool { return math.IsNaN(o.Value) }

// TimeSeries is ordered by strictly increasing Time. A zero-length series means "no data".
type TimeSeries []Observation

// Len returns the number of observations, including missing ones.
func (s TimeSeries) Len() int { return len(s) }

// Empty reports whether the series has no observations.
func (s TimeSeries) Empty() bool { return len(s) == 0 }

// Clone returns an independent copy; never nil.
func (s TimeSeries) Clone() TimeSeries {
	out := make(TimeSeries, len(s))
	copy(out, s)
	return out
}

// IndicatorKey identifies one of the macro indicators tracked by the store.
type IndicatorKey string

const (
	YieldSpread          IndicatorKey = "yield_spread_10y2y"
	IndustrialProduction IndicatorKey = "industrial_production"
	JoblessClaims        IndicatorKey = "initial_jobless_claims"
	ConsumerConfidence   IndicatorKey = "consumer_confidence"
	CPI                  IndicatorKey = "cpi"
	CoreCPI              IndicatorKey = "core_cpi"
	FedFundsRate         IndicatorKey = "fed_funds_upper"
	DollarIndex          IndicatorKey = "dollar_index"
	NBERRecession        IndicatorKey = "nber_recession"
	FedBalanceSheet      IndicatorKey = "fed_total_assets"
	SOFR                 IndicatorKey = "sofr"
	RetailSales          IndicatorKey = "retail_sales"
	CorporateProfits     IndicatorKey = "corporate_profits"
	Treasury2Y           IndicatorKey = "treasury_2y"
)

// Indicator describes a macro indicator and the FRED series backing it.
type Indicator struct {
	Key      IndicatorKey
	Name     string
	SeriesID string
}

// Indicators is the fixed, ordered set of macro indicators fetched every cycle.
var Indicators = []Indicator{
	{YieldSpread, "10Y-2Y Treasury spread", "T10Y2Y"},
	{IndustrialProduction, "Industrial production index", "INDPRO"},
	{JoblessClaims, "Initial jobless claims", "ICSA"},
	{ConsumerConfidence, "Consumer sentiment", "UMCSENT"},
	{CPI, "CPI", "CPIAUCNS"},
	{CoreCPI, "Core CPI", "CPILFESL"},
	{FedFundsRate, "Fed funds target (upper)", "DFEDTARU"},
	{DollarIndex, "Broad dollar index", "DTWEXBGS"},
	{NBERRecession, "NBER recession indicator", "USREC"},
	{FedBalanceSheet, "Fed total assets (WALCL)", "WALCL"},
	{SOFR, "SOFR", "SOFR"},
	{RetailSales, "Retail sales", "RSAFS"},
	{CorporateProfits, "Corporate profits", "CP"},
	{Treasury2Y, "2Y Treasury yield", "DGS2"},
}

// SeriesStore maps every indicator to a series. Built once per cycle, read-only afterwards.
type SeriesStore struct {
	series map[IndicatorKey]TimeSeries
}

// NewSeriesStore copies the given series and fills every unknown or absent indicator
// with an empty series.
func NewSeriesStore(in map[IndicatorKey]TimeSeries) *SeriesStore {
	m := make(map[IndicatorKey]TimeSeries, len(Indicators))
	for _, ind := range Indicators {
		if s, ok := in[ind.Key]; ok && s != nil {
			m[ind.Key] = s.Clone()
			continue
		}
		m[ind.Key] = TimeSeries{}
	}
	return &SeriesStore{series: m}
}

// Get returns a copy of the series for key; an empty series when nothing is known.
func (s *SeriesStore) Get(key IndicatorKey) TimeSeries {
	if s == nil {
		return TimeSeries{}
	}
	ts, ok := s.series[key]
	if !ok {
		return TimeSeries{}
	}
	return ts.Clone()
}

// IndicatorByKey looks up an indicator definition.
func IndicatorByKey(key IndicatorKey) (Indicator, bool) {
	for _, ind := range Indicators {
		if ind.Key == key {
			return ind, true
		}
	}
	return Indicator{}, false
}
