package models

// Instrument is a market index, rate or commodity quoted in the snapshot.
type Instrument struct {
	Key    string
	Name   string
	Ticker string
}

const (
	InstrumentVIX       = "VIX"
	InstrumentUS10Y     = "US10Y"
	InstrumentDowJones  = "DJI"
	InstrumentSP500     = "GSPC"
	InstrumentNasdaq    = "IXIC"
	InstrumentSemis     = "SOX"
	InstrumentFTSE      = "FTSE"
	InstrumentDAX       = "GDAXI"
	InstrumentCAC       = "FCHI"
	InstrumentNikkei    = "N225"
	InstrumentTaiwan50  = "TW0050"
	InstrumentShanghai  = "SSEC"
	InstrumentHangSeng  = "HSI"
	InstrumentBrent     = "BRENT"
	InstrumentGold      = "GOLD"
	InstrumentDollarIdx = "DXY"
)

// Instruments is the fixed list requested from the market provider, in report order.
var Instruments = []Instrument{
	{InstrumentVIX, "VIX volatility index", "^VIX"},
	{InstrumentUS10Y, "US 10Y Treasury yield", "^TNX"},
	{InstrumentDowJones, "Dow Jones Industrial Average", "^DJI"},
	{InstrumentSP500, "S&P 500", "^GSPC"},
	{InstrumentNasdaq, "Nasdaq Composite", "^IXIC"},
	{InstrumentSemis, "PHLX Semiconductor", "^SOX"},
	{InstrumentFTSE, "FTSE 100", "^FTSE"},
	{InstrumentDAX, "DAX", "^GDAXI"},
	{InstrumentCAC, "CAC 40", "^FCHI"},
	{InstrumentNikkei, "Nikkei 225", "^N225"},
	{InstrumentTaiwan50, "Taiwan 50 ETF", "0050.TW"},
	{InstrumentShanghai, "Shanghai Composite", "000001.SS"},
	{InstrumentHangSeng, "Hang Seng", "^HSI"},
	{InstrumentBrent, "Brent crude", "BZ=F"},
	{InstrumentGold, "Gold futures", "GC=F"},
	{InstrumentDollarIdx, "US dollar index", "DX-Y.NYB"},
}

// InstrumentByKey looks up an instrument definition.
func InstrumentByKey(key string) (Instrument, bool) {
	for _, in := range Instruments {
		if in.Key == key {
			return in, true
		}
	}
	return Instrument{}, false
}

// Quote is the session close and percent change from the session open.
type Quote struct {
	Close     float64 `json:"close"`
	ChangePct float64 `json:"change_pct"`
}

// MarketSnapshot holds quotes by instrument key. Instruments without session data are absent.
type MarketSnapshot map[string]Quote

// Lookup is an absent-aware read.
func (m MarketSnapshot) Lookup(key string) (Quote, bool) {
	if m == nil {
		return Quote{}, false
	}
	q, ok := m[key]
	return q, ok
}
