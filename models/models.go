package models

// Option type tags, as used by the NSE option chain.
const (
	OptionTypeCall = "CE"
	OptionTypePut  = "PE"
)

// Outcome result tags.
const (
	ResultSuccess = "Success"
	ResultFail    = "Fail"
)

// OptionLeg holds the quote for one side (call or put) of a strike.
type OptionLeg struct {
	LastPrice    float64 `json:"lastPrice"`
	OpenInterest float64 `json:"openInterest"`
	Volume       float64 `json:"totalTradedVolume"`
}

// StrikeRecord is one row of an option chain. Either leg may be absent.
type StrikeRecord struct {
	StrikePrice float64    `json:"strikePrice"`
	Call        *OptionLeg `json:"call,omitempty"`
	Put         *OptionLeg `json:"put,omitempty"`
}

// OptionSnapshot is the canonical option-chain shape every data source
// normalizes into. Strikes keep the source's ordering.
type OptionSnapshot struct {
	UnderlyingValue float64        `json:"underlyingValue"`
	Strikes         []StrikeRecord `json:"strikes"`
}

// Candidate is a zero-hero signal: a near-worthless OTM contract flagged
// as a speculative reversal candidate. Confidence is a percentage in
// [0, 100] rounded to one decimal place.
type Candidate struct {
	Index        string  `json:"Index"`
	OptionType   string  `json:"Type"`
	Strike       float64 `json:"Strike"`
	LastPrice    float64 `json:"LTP"`
	OpenInterest float64 `json:"OI"`
	Volume       float64 `json:"Volume"`
	Confidence   float64 `json:"Confidence"`
}

// OutcomeRecord is a candidate the user tagged with its real-world result.
// Records are append-only: created once per tag action, never mutated.
type OutcomeRecord struct {
	Candidate
	Result string `json:"Result"`
	Date   string `json:"Date"` // calendar date, YYYY-MM-DD
}

// IndexInfo describes one tradable index: its NSE symbol and the weekday
// its weekly options expire on (0=Monday..6=Sunday).
type IndexInfo struct {
	Symbol        string
	ExpiryWeekday int
}
