package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dropflow-go/pkg/cli/format"
	"dropflow-go/pkg/cli/logger"
	"dropflow-go/pkg/cli/tui/scrapestore"
	"dropflow-go/pkg/scraper"
	"dropflow-go/pkg/utils"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ScrapeOptions configures store scrapes started from the TUI.
type ScrapeOptions struct {
	MaxPages int
	Locale   string
	Timeout  time.Duration
	Supplier scraper.Supplier
}

var supplierChoices = []scraper.Supplier{scraper.SupplierAmazon, scraper.SupplierAliExpress}

// scrapeStoreModel drives one eBay store scrape: URL entry, supplier choice,
// live progress and the settled result.
type scrapeStoreModel struct {
	session *scraper.Session
	opts    ScrapeOptions

	urlInput       textinput.Model
	supplier       scraper.Supplier
	supplierCursor int
	pendingStart   bool
	inputErr       error
	stopping       bool

	step    int
	state   scrapestore.State
	spinner spinner.Model
	bar     progress.Model
	width   int
}

// NewScrapeStoreModel creates the store scrape flow on top of backend.
func NewScrapeStoreModel(backend scraper.StreamBackend, opts ScrapeOptions) tea.Model {
	if opts.MaxPages <= 0 {
		opts.MaxPages = 50
	}

	urlInput := textinput.New()
	urlInput.Placeholder = "https://www.ebay.com/str/yourcompetitor"
	urlInput.Focus()
	urlInput.CharLimit = 2048
	urlInput.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = infoStyle

	return &scrapeStoreModel{
		session:  scraper.NewSession(backend, opts.Locale),
		opts:     opts,
		urlInput: urlInput,
		supplier: opts.Supplier,
		step:     scrapestore.StepURLInput,
		spinner:  sp,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(scrapestore.ProgressBarWidth)),
		width:    scrapestore.DefaultWidth,
	}
}

// Init implements tea.Model.
func (m *scrapeStoreModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *scrapeStoreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		barWidth := msg.Width - 10
		if barWidth > scrapestore.ProgressBarWidth {
			barWidth = scrapestore.ProgressBarWidth
		}
		if barWidth > 10 {
			m.bar.Width = barWidth
		}
		return m, nil

	case tea.KeyMsg:
		switch m.step {
		case scrapestore.StepURLInput:
			return m.handleURLInputKey(msg)
		case scrapestore.StepSupplier:
			return m.handleSupplierKey(msg)
		case scrapestore.StepStreaming:
			return m.handleStreamingKey(msg)
		case scrapestore.StepResult:
			return m.handleResultKey(msg)
		}

	case scrapestore.ProgressMsg:
		if m.step != scrapestore.StepStreaming {
			return m, nil
		}
		m.state.Progress = msg.State
		return m, m.watchProgress()

	case scrapestore.ProgressTickMsg:
		if m.step == scrapestore.StepStreaming && !msg.Done {
			return m, tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
				return m.watchProgress()()
			})
		}
		return m, nil

	case scrapestore.DoneMsg:
		if msg.Err != nil {
			m.inputErr = msg.Err
			m.step = scrapestore.StepURLInput
			return m, nil
		}
		res := msg.Result
		m.state.Result = &res
		m.state.Progress = nil
		m.stopping = false
		m.step = scrapestore.StepResult
		logger.Log("scrape settled: platform=%s count=%d error=%q", res.Platform, res.Count, res.Error)
		return m, nil

	case spinner.TickMsg:
		if m.step != scrapestore.StepStreaming {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.step == scrapestore.StepURLInput {
		var cmd tea.Cmd
		m.urlInput, cmd = m.urlInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *scrapeStoreModel) handleURLInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		return m, backToMenu
	case "enter":
		return m.submitURL()
	case "tab":
		m.openSupplierStep(false)
		return m, nil
	}

	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	m.inputErr = nil

	// A pasted eBay store link is the moment to ask where it sources from.
	if msg.Paste && m.supplier == scraper.SupplierNone && utils.LooksLikeEbayStore(m.urlInput.Value()) {
		m.openSupplierStep(false)
	}
	return m, cmd
}

func (m *scrapeStoreModel) handleSupplierKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.pendingStart = false
		m.step = scrapestore.StepURLInput
		return m, nil
	case "1":
		return m.chooseSupplier(scraper.SupplierAmazon)
	case "2":
		return m.chooseSupplier(scraper.SupplierAliExpress)
	case "enter":
		return m.chooseSupplier(supplierChoices[m.supplierCursor])
	}

	if next, ok := handleListNavigation(msg.String(), m.supplierCursor, len(supplierChoices)); ok {
		m.supplierCursor = next
	}
	return m, nil
}

func (m *scrapeStoreModel) handleStreamingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.session.Cancel()
		return m, tea.Quit
	case "esc", "s":
		if !m.stopping {
			m.stopping = true
			logger.Log("scrape stop requested")
			m.session.Cancel()
		}
	}
	return m, nil
}

func (m *scrapeStoreModel) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r", "enter":
		m.session.Reset()
		m.state = scrapestore.State{}
		m.urlInput.SetValue("")
		m.urlInput.Focus()
		m.step = scrapestore.StepURLInput
		return m, textinput.Blink
	case "m":
		return m, backToMenu
	}
	if handleQuitKeys(msg.String()) {
		return m, tea.Quit
	}
	return m, nil
}

func (m *scrapeStoreModel) openSupplierStep(pendingStart bool) {
	m.pendingStart = pendingStart
	for i, s := range supplierChoices {
		if s == m.supplier {
			m.supplierCursor = i
		}
	}
	m.step = scrapestore.StepSupplier
}

func (m *scrapeStoreModel) chooseSupplier(s scraper.Supplier) (tea.Model, tea.Cmd) {
	m.supplier = s
	m.step = scrapestore.StepURLInput
	if m.pendingStart {
		m.pendingStart = false
		return m.submitURL()
	}
	return m, nil
}

// submitURL validates the store URL and starts a scrape, asking for the
// supplier first when an eBay store has none.
func (m *scrapeStoreModel) submitURL() (tea.Model, tea.Cmd) {
	if m.session.Active() {
		return m, nil
	}

	storeURL, err := utils.ValidateURL(m.urlInput.Value())
	if err != nil {
		m.inputErr = err
		return m, nil
	}
	m.inputErr = nil

	if m.supplier == scraper.SupplierNone && utils.LooksLikeEbayStore(storeURL) {
		m.openSupplierStep(true)
		return m, nil
	}
	return m.startScrape(storeURL)
}

func (m *scrapeStoreModel) startScrape(storeURL string) (tea.Model, tea.Cmd) {
	ctx, cancel := context.Background(), context.CancelFunc(func() {})
	if m.opts.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, m.opts.Timeout)
	}

	req := scraper.ScrapeRequest{
		StoreURL: storeURL,
		MaxPages: m.opts.MaxPages,
		Supplier: m.supplier,
	}
	m.state = scrapestore.State{ProgressChan: make(chan scrapestore.ProgressMsg, 1)}
	m.stopping = false
	m.step = scrapestore.StepStreaming
	logger.Log("scrape started: url=%s supplier=%q max_pages=%d", storeURL, m.supplier, req.MaxPages)

	return m, tea.Batch(
		m.runScrape(ctx, cancel, req),
		m.watchProgress(),
		m.spinner.Tick,
	)
}

// runScrape runs the session to completion and reports progress back to the TUI.
func (m *scrapeStoreModel) runScrape(ctx context.Context, cancel context.CancelFunc, req scraper.ScrapeRequest) tea.Cmd {
	session := m.session
	ch := m.state.ProgressChan
	return func() tea.Msg {
		defer cancel()

		res, err := session.Run(ctx, scraper.MarketplaceEbay, req, func(p *scraper.ProgressState) {
			scrapestore.Publish(ch, scrapestore.ProgressMsg{State: p})
		})

		// Close progress channel to signal completion
		close(ch)
		return scrapestore.DoneMsg{Result: res, Err: err}
	}
}

// watchProgress reads from the progress channel without blocking
func (m *scrapeStoreModel) watchProgress() tea.Cmd {
	ch := m.state.ProgressChan
	return func() tea.Msg {
		if ch == nil {
			return scrapestore.ProgressTickMsg{Done: true}
		}
		select {
		case p, ok := <-ch:
			if ok {
				return p
			}
			return scrapestore.ProgressTickMsg{Done: true}
		default:
			return scrapestore.ProgressTickMsg{Done: false}
		}
	}
}

// View implements tea.Model.
func (m *scrapeStoreModel) View() string {
	switch m.step {
	case scrapestore.StepSupplier:
		return m.renderSupplier()
	case scrapestore.StepStreaming:
		return m.renderStreaming()
	case scrapestore.StepResult:
		return m.renderResultStep()
	default:
		return m.renderURLInput()
	}
}

func (m *scrapeStoreModel) renderURLInput() string {
	var b strings.Builder
	b.WriteString(renderTitle("Scrape eBay Store"))
	b.WriteString(fieldLabelStyle.Render("Store URL:") + "\n")
	b.WriteString(m.urlInput.View() + "\n\n")

	supplier := mutedStyle.Render("not set (Tab to choose)")
	if m.supplier != scraper.SupplierNone {
		supplier = m.supplier.Label()
	}
	b.WriteString(fieldLabelStyle.Render("Supplier:") + " " + supplier + "\n")
	b.WriteString(fieldLabelStyle.Render("Max pages:") + fmt.Sprintf(" %d\n", m.opts.MaxPages))

	if m.inputErr != nil {
		b.WriteString("\n" + renderError(m.inputErr.Error()) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("Enter to scrape · Tab to change supplier · Esc for menu") + "\n")
	return b.String()
}

func (m *scrapeStoreModel) renderSupplier() string {
	var b strings.Builder
	b.WriteString(renderTitle("Select Supplier"))
	b.WriteString(boldStyle.Render("Where does this store source its products?") + "\n\n")

	descriptions := map[scraper.Supplier]string{
		scraper.SupplierAmazon:     "scraped titles are matched against Amazon",
		scraper.SupplierAliExpress: "titles are listed without matching",
	}
	for i, s := range supplierChoices {
		marker := " "
		label := s.Label()
		if i == m.supplierCursor {
			marker = selectedMarkerStyle.Render("→")
			label = selectedStyle.Render(label)
		}
		b.WriteString(fmt.Sprintf("%s %d) %s  %s\n", marker, i+1, label, productMetaStyle.Render(descriptions[s])))
	}

	b.WriteString("\n" + helpStyle.Render("1/2 or ↑/↓ + Enter to choose · Esc to go back") + "\n")
	return b.String()
}

func (m *scrapeStoreModel) renderStreaming() string {
	var b strings.Builder
	b.WriteString(renderTitle("Scraping eBay Store"))

	p := m.state.Progress
	switch {
	case m.session.State() == scraper.StateReconciling:
		b.WriteString(m.spinner.View() + " " + infoStyle.Render(fmt.Sprintf("Matching titles against %s...", m.supplier.Label())) + "\n")
	case p == nil:
		b.WriteString(m.spinner.View() + " " + infoStyle.Render("Connecting to store...") + "\n")
	case p.Fraction() >= 0:
		b.WriteString(m.bar.ViewAs(p.Fraction()) + "\n\n")
		b.WriteString(format.ProgressLine(p) + "\n")
	default:
		b.WriteString(m.spinner.View() + " " + format.ProgressLine(p) + "\n")
	}

	b.WriteString("\n")
	if m.stopping {
		b.WriteString(warningStyle.Render("Stopping...") + "\n")
	} else {
		b.WriteString(helpStyle.Render("Esc to stop and keep what was found · Ctrl+C to quit") + "\n")
	}
	return b.String()
}

func (m *scrapeStoreModel) renderResultStep() string {
	var b strings.Builder
	b.WriteString(renderTitle("Scrape Result"))
	if m.state.Result != nil {
		b.WriteString(renderResult(*m.state.Result))
	}
	b.WriteString("\n" + helpStyle.Render("r to scrape another store · m for menu · q to quit") + "\n")
	return b.String()
}
