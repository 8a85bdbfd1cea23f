package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dropflow-go/pkg/models"

	tea "github.com/charmbracelet/bubbletea"
)

// ProductLister loads the catalog. *client.Client implements it.
type ProductLister interface {
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
}

var (
	sourceFilters = []string{"", models.SourceAmazon, models.SourceAliExpress}
	statusFilters = []string{"", models.ProductActive, models.ProductInactive}
)

// productsModel lists catalog products with source and status filters.
type productsModel struct {
	lister ProductLister

	products    []models.Product
	filter      models.ProductFilter
	selected    int
	showDetails bool
	err         error
	ready       bool
	height      int
}

// NewProductsModel creates the product list flow.
func NewProductsModel(lister ProductLister) tea.Model {
	return &productsModel{lister: lister}
}

// productsLoadedMsg is emitted when products have been fetched.
type productsLoadedMsg struct {
	products []models.Product
	err      error
}

func (m *productsModel) Init() tea.Cmd {
	return m.load()
}

func (m *productsModel) load() tea.Cmd {
	lister := m.lister
	filter := m.filter
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		products, err := lister.ListProducts(ctx, filter)
		return productsLoadedMsg{products: products, err: err}
	}
}

func (m *productsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case productsLoadedMsg:
		m.err = msg.err
		m.products = msg.products
		if m.selected >= len(m.products) {
			m.selected = 0
		}
		m.ready = true
		return m, nil

	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		key := msg.String()

		if m.err != nil || (m.ready && len(m.products) == 0 && m.filter == (models.ProductFilter{})) {
			if key == "m" {
				return m, backToMenu
			}
			return m, tea.Quit
		}

		if m.showDetails {
			switch key {
			case "esc", "b", "enter":
				m.showDetails = false
				return m, nil
			case "m":
				return m, backToMenu
			case "ctrl+c", "q":
				return m, tea.Quit
			}
			return m, nil
		}

		if next, ok := handleListNavigation(key, m.selected, len(m.products)); ok {
			m.selected = next
			return m, nil
		}

		switch key {
		case "enter":
			if len(m.products) > 0 {
				m.showDetails = true
			}
			return m, nil
		case "s":
			m.filter.Source = cycle(sourceFilters, m.filter.Source)
			m.selected = 0
			return m, m.load()
		case "t":
			m.filter.Status = cycle(statusFilters, m.filter.Status)
			m.selected = 0
			return m, m.load()
		case "r":
			return m, m.load()
		case "m":
			return m, backToMenu
		}
		if handleQuitKeys(key) {
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *productsModel) View() string {
	if !m.ready {
		return renderLoadingState("Loading products...")
	}

	if m.err != nil {
		return renderErrorView(fmt.Errorf("loading products: %w", m.err))
	}

	if len(m.products) == 0 && m.filter == (models.ProductFilter{}) {
		return renderEmptyState("No products yet. Import one from Amazon or AliExpress.")
	}

	if m.showDetails && m.selected < len(m.products) {
		var b strings.Builder
		b.WriteString(renderTitle("Product Details"))
		b.WriteString(renderProductDetails(m.products[m.selected]))
		b.WriteString("\n" + helpStyle.Render("Esc to go back · m for menu · q to quit") + "\n")
		return b.String()
	}

	var b strings.Builder
	b.WriteString(renderTitle("Products"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Source: %s · Status: %s · %d shown",
		orAll(m.filter.Source), orAll(m.filter.Status), len(m.products))))
	b.WriteString("\n")
	b.WriteString(renderDivider(60))
	b.WriteString("\n\n")

	if len(m.products) == 0 {
		b.WriteString(mutedStyle.Render("No products match the current filters.") + "\n")
	} else {
		start, end := m.window()
		b.WriteString(renderProductList(m.products[start:end], m.selected-start))
		if end-start < len(m.products) {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d-%d of %d", start+1, end, len(m.products))) + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render("↑/↓ to move · Enter for details · s source · t status · r refresh · m menu · q quit") + "\n")
	return b.String()
}

// window returns the slice of products that fits the terminal, keeping
// the selection visible.
func (m *productsModel) window() (int, int) {
	visible := len(m.products)
	if m.height > 0 {
		// Each product takes two lines; leave room for header and help.
		if fit := (m.height - 9) / 2; fit > 0 && fit < visible {
			visible = fit
		}
	}
	start := m.selected - visible/2
	if start < 0 {
		start = 0
	}
	if start+visible > len(m.products) {
		start = len(m.products) - visible
	}
	return start, start + visible
}

func orAll(v string) string {
	if v == "" {
		return "all"
	}
	return v
}
