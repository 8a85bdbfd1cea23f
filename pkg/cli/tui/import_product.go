package tui

import (
	"context"
	"strings"
	"time"

	"dropflow-go/pkg/cli/logger"
	"dropflow-go/pkg/scraper"
	"dropflow-go/pkg/utils"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	importStepInput = iota
	importStepRunning
	importStepDone
)

const importTimeout = 60 * time.Second

type importDoneMsg struct {
	result scraper.ScrapeResult
}

// importProductModel imports one Amazon or AliExpress listing.
type importProductModel struct {
	importer scraper.Importer

	urlInput    textinput.Model
	marketplace scraper.Marketplace
	inputErr    string
	spinner     spinner.Model

	step   int
	result *scraper.ScrapeResult
}

// NewImportProductModel creates the single-product import flow.
func NewImportProductModel(importer scraper.Importer) tea.Model {
	urlInput := textinput.New()
	urlInput.Placeholder = "https://www.amazon.com/dp/..."
	urlInput.Focus()
	urlInput.CharLimit = 2048
	urlInput.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = infoStyle

	return &importProductModel{
		importer:    importer,
		urlInput:    urlInput,
		marketplace: scraper.MarketplaceAmazon,
		spinner:     sp,
		step:        importStepInput,
	}
}

// Init implements tea.Model.
func (m *importProductModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *importProductModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.step {
		case importStepInput:
			return m.handleInputKey(msg)
		case importStepRunning:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		case importStepDone:
			switch msg.String() {
			case "r", "enter":
				m.result = nil
				m.urlInput.SetValue("")
				m.step = importStepInput
				return m, textinput.Blink
			case "m":
				return m, backToMenu
			}
			if handleQuitKeys(msg.String()) {
				return m, tea.Quit
			}
			return m, nil
		}

	case importDoneMsg:
		m.result = &msg.result
		m.step = importStepDone
		logger.Log("import settled: platform=%s count=%d error=%q", msg.result.Platform, msg.result.Count, msg.result.Error)
		return m, nil

	case spinner.TickMsg:
		if m.step != importStepRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.step == importStepInput {
		var cmd tea.Cmd
		m.urlInput, cmd = m.urlInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *importProductModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		return m, backToMenu
	case "tab":
		if m.marketplace == scraper.MarketplaceAmazon {
			m.marketplace = scraper.MarketplaceAliExpress
		} else {
			m.marketplace = scraper.MarketplaceAmazon
		}
		return m, nil
	case "enter":
		productURL, err := utils.ValidateURL(m.urlInput.Value())
		if err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.inputErr = ""
		m.step = importStepRunning
		logger.Log("import started: marketplace=%s url=%s", m.marketplace, productURL)
		return m, tea.Batch(m.runImport(productURL), m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	m.inputErr = ""
	if detected, ok := scraper.MarketplaceForURL(m.urlInput.Value()); ok && detected != scraper.MarketplaceEbay {
		m.marketplace = detected
	}
	return m, cmd
}

func (m *importProductModel) runImport(productURL string) tea.Cmd {
	importer := m.importer
	marketplace := m.marketplace
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()
		return importDoneMsg{result: scraper.ImportResult(ctx, importer, marketplace, productURL)}
	}
}

// View implements tea.Model.
func (m *importProductModel) View() string {
	var b strings.Builder

	switch m.step {
	case importStepRunning:
		b.WriteString(renderTitle("Importing from " + m.marketplace.Label()))
		b.WriteString(m.spinner.View() + " " + infoStyle.Render("Fetching product...") + "\n")
	case importStepDone:
		b.WriteString(renderTitle("Import Result"))
		if m.result != nil {
			b.WriteString(renderResult(*m.result))
		}
		b.WriteString("\n" + helpStyle.Render("r to import another · m for menu · q to quit") + "\n")
	default:
		b.WriteString(renderTitle("Import Product"))
		b.WriteString(fieldLabelStyle.Render("Marketplace:") + " " + m.marketplace.Label() + "\n\n")
		b.WriteString(fieldLabelStyle.Render("Product URL:") + "\n")
		b.WriteString(m.urlInput.View() + "\n")
		if m.inputErr != "" {
			b.WriteString("\n" + renderError(m.inputErr) + "\n")
		}
		b.WriteString("\n" + helpStyle.Render("Enter to import · Tab to switch marketplace · Esc for menu") + "\n")
	}

	return b.String()
}
