package scraper

import "fmt"

// Marketplace identifies the storefront a competitor store lives on.
type Marketplace string

const (
	MarketplaceEbay       Marketplace = "ebay"
	MarketplaceAmazon     Marketplace = "amazon"
	MarketplaceAliExpress Marketplace = "aliexpress"
)

// Label returns the display name of the marketplace.
func (m Marketplace) Label() string {
	switch m {
	case MarketplaceEbay:
		return "eBay"
	case MarketplaceAmazon:
		return "Amazon"
	case MarketplaceAliExpress:
		return "AliExpress"
	default:
		return string(m)
	}
}

// Supplier is the marketplace a competitor sources products from.
// The zero value means no supplier was chosen.
type Supplier string

const (
	SupplierNone       Supplier = ""
	SupplierAmazon     Supplier = "amazon"
	SupplierAliExpress Supplier = "aliexpress"
)

// ParseSupplier validates a user-provided supplier name.
func ParseSupplier(s string) (Supplier, error) {
	switch Supplier(s) {
	case SupplierNone, SupplierAmazon, SupplierAliExpress:
		return Supplier(s), nil
	}
	return SupplierNone, fmt.Errorf("unknown supplier %q (expected amazon or aliexpress)", s)
}

// Label returns the display name of the supplier.
func (s Supplier) Label() string {
	switch s {
	case SupplierAmazon:
		return "Amazon"
	case SupplierAliExpress:
		return "AliExpress"
	default:
		return ""
	}
}

// SupportsMatching reports whether scraped titles are matched against this
// supplier's catalog.
func (s Supplier) SupportsMatching() bool {
	return s == SupplierAmazon
}

// ScrapeRequest describes one user-initiated store scrape. It is not
// modified after it has been sent.
type ScrapeRequest struct {
	StoreURL string   `json:"store_url"`
	MaxPages int      `json:"max_pages"`
	Supplier Supplier `json:"-"`
}

// EventKind discriminates ProgressEvent variants.
type EventKind int

const (
	KindStarted EventKind = iota
	KindScraping
	KindDone
)

func (k EventKind) String() string {
	switch k {
	case KindStarted:
		return "started"
	case KindScraping:
		return "scraping"
	case KindDone:
		return "done"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// ProgressEvent is one decoded status frame from a scrape stream.
// The set of implementations is closed: EventStarted, EventScraping, EventDone.
type ProgressEvent interface {
	Kind() EventKind
	isProgressEvent()
}

// EventStarted is the optional first frame of a stream.
type EventStarted struct {
	TotalEstimate *int
	StoreName     string
}

// EventScraping carries the absolute number of products scraped so far.
type EventScraping struct {
	Progress int
}

// EventDone is the terminal frame.
type EventDone struct {
	Titles []string
	Error  string
}

func (EventStarted) Kind() EventKind  { return KindStarted }
func (EventScraping) Kind() EventKind { return KindScraping }
func (EventDone) Kind() EventKind     { return KindDone }

func (EventStarted) isProgressEvent()  {}
func (EventScraping) isProgressEvent() {}
func (EventDone) isProgressEvent()     {}

// ProgressStatus is the phase shown next to the progress bar.
type ProgressStatus string

const (
	StatusStarted  ProgressStatus = "started"
	StatusScraping ProgressStatus = "scraping"
)

// ProgressState is the live view of an active scrape. A nil *ProgressState
// means no scrape is streaming.
type ProgressState struct {
	TotalEstimate *int
	Current       int
	Status        ProgressStatus
	StoreName     string
}

// Fraction returns completion in [0,1], or -1 when the total is unknown.
func (p *ProgressState) Fraction() float64 {
	if p == nil || p.TotalEstimate == nil || *p.TotalEstimate <= 0 {
		return -1
	}
	f := float64(p.Current) / float64(*p.TotalEstimate)
	if f > 1 {
		f = 1
	}
	return f
}

// ScrapeResult is what the user sees once a scrape settles.
type ScrapeResult struct {
	Platform    string   `json:"platform"`
	Count       int      `json:"count"`
	Titles      []string `json:"titles"`
	MatchedURLs []string `json:"matched_urls,omitempty"`
	MatchRate   *float64 `json:"match_rate,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// FlowState is the single enumerated state of one scrape invocation.
type FlowState int

const (
	StateIdle FlowState = iota
	StateRequesting
	StateStreaming
	StateReconciling
	StateSettled
)

func (s FlowState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequesting:
		return "requesting"
	case StateStreaming:
		return "streaming"
	case StateReconciling:
		return "reconciling"
	case StateSettled:
		return "settled"
	default:
		return fmt.Sprintf("FlowState(%d)", int(s))
	}
}

// MatchResult pairs a scraped title with the supplier listing it matched, if any.
type MatchResult struct {
	Title      string  `json:"title"`
	MatchedURL *string `json:"matched_url"`
}

// MatchOutcome is the decoded response of the title-matching call.
type MatchOutcome struct {
	Results   []MatchResult `json:"results"`
	MatchRate *float64      `json:"match_rate"`
}

// ImportedProduct is the subset of an imported product this client reads.
type ImportedProduct struct {
	Name      string  `json:"name"`
	SKU       string  `json:"sku,omitempty"`
	Price     float64 `json:"price,omitempty"`
	SourceURL string  `json:"source_url,omitempty"`
}

// ImportResponse is the response of the one-shot import call.
type ImportResponse struct {
	Products       []ImportedProduct `json:"products"`
	ErroredURLs    []string          `json:"errored_urls"`
	OutOfStockURLs []string          `json:"out_of_stock_urls"`
	Message        string            `json:"message,omitempty"`
}
