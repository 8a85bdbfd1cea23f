package tui

import (
	"strings"

	"dropflow-go/pkg/scraper"

	tea "github.com/charmbracelet/bubbletea"
)

// Backend is what the scrape and import flows need from the DropFlow
// backend. *scraper.ScraperService implements it.
type Backend interface {
	scraper.StreamBackend
	scraper.Importer
}

// rootModel is the Bubble Tea model that acts as an app shell for multiple flows.
// It presents a simple menu and then hands control to a specific flow model.
type rootModel struct {
	// Shared dependencies
	backend Backend
	catalog ProductLister
	scrape  ScrapeOptions

	showHelp bool
	width    int
	height   int

	// Current active flow (when nil, we are in the main menu)
	current tea.Model
}

// NewRootModel constructs the root app-shell model that can launch multiple flows.
func NewRootModel(backend Backend, catalog ProductLister, scrape ScrapeOptions) tea.Model {
	return &rootModel{
		backend: backend,
		catalog: catalog,
		scrape:  scrape,
	}
}

func (m *rootModel) Init() tea.Cmd {
	return nil
}

func (m *rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case backToMenuMsg:
		m.current = nil
		return m, nil
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}

	// If we have an active flow, delegate all messages to it.
	if m.current != nil {
		var cmd tea.Cmd
		m.current, cmd = m.current.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "1":
			return m.start(NewScrapeStoreModel(m.backend, m.scrape))
		case "2":
			return m.start(NewImportProductModel(m.backend))
		case "3":
			return m.start(NewProductsModel(m.catalog))
		}
	}

	return m, nil
}

// start makes flow the active model, replaying the last known window size.
func (m *rootModel) start(flow tea.Model) (tea.Model, tea.Cmd) {
	m.current = flow
	m.showHelp = false
	cmds := []tea.Cmd{flow.Init()}
	if m.width > 0 {
		m.current, _ = m.current.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	}
	return m, tea.Batch(cmds...)
}

func (m *rootModel) View() string {
	// When a flow is active, defer to its view.
	if m.current != nil {
		return m.current.View()
	}

	var b strings.Builder

	b.WriteString(renderTitle("DropFlow"))
	b.WriteString(renderDivider(60))
	b.WriteString("\n\n")
	b.WriteString(boldStyle.Render("Select an action:") + "\n\n")
	b.WriteString("  " + selectedMarkerStyle.Render("1)") + " Scrape eBay store\n")
	b.WriteString("  " + selectedMarkerStyle.Render("2)") + " Import from Amazon / AliExpress\n")
	b.WriteString("  " + selectedMarkerStyle.Render("3)") + " Products\n")
	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(RootMenuHelpContent())
		b.WriteString("\n")
		b.WriteString(boldStyle.Render("Scrape store") + "\n")
		b.WriteString(ScrapeStoreHelpContent())
		b.WriteString("\n")
		b.WriteString(boldStyle.Render("Products") + "\n")
		b.WriteString(ProductsHelpContent())
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("Press the number of an option, ? for help, or 'q' / Esc to quit.") + "\n")

	return b.String()
}
