package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ctt011/folio/internal/gallery"
	"github.com/ctt011/folio/internal/highlight"
)

// ViewMsg carries a view published by the gallery session.
type ViewMsg struct {
	View gallery.View
}

const (
	headerHeight = 4
	footerHeight = 2
	cardHeight   = 2
)

// Model is the bubbletea model of the terminal gallery. It holds no filter
// or route state of its own; it renders whatever view the session last
// published and turns keys into session events.
type Model struct {
	events Dispatcher
	title  string

	view    gallery.View
	hasView bool
	loading string // slug whose sources are being fetched

	cursor    int // selected card in the grid
	pill      int // selected pill, years first then tags
	searching bool

	input    textinput.Model
	viewport viewport.Model
	width    int
	height   int
}

// NewModel creates a model that sends events to d.
func NewModel(d Dispatcher, title string) Model {
	ti := textinput.New()
	ti.Placeholder = "Search projects..."
	ti.CharLimit = 128
	ti.Width = 40
	ti.Prompt = "/ "
	ti.PromptStyle = selectedStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E7EB"))

	return Model{
		events:   d,
		title:    title,
		input:    ti,
		viewport: viewport.New(80, 18),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ViewMsg:
		enteringDetail := msg.View.Mode == gallery.ModeDetail &&
			(m.view.Mode != gallery.ModeDetail || m.view.Project.Slug != msg.View.Project.Slug)
		m.view = msg.View
		m.hasView = true
		m.loading = ""
		m.clampCursors()
		m.refresh()
		if enteringDetail {
			m.viewport.GotoTop()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-20, 10)
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight, 3)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.view.Mode == gallery.ModeDetail {
			return m.updateDetail(msg)
		}
		return m.updateGrid(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.searching = false
		m.input.Blur()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := m.input.Value(); q != before {
		m.events.Dispatch(gallery.SetQuery{Query: q})
	}
	return m, cmd
}

func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searching = true
		return m, m.input.Focus()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.view.Projects)-1 {
			m.cursor++
		}
	case "left", "h":
		if m.pill > 0 {
			m.pill--
		}
	case "right", "l":
		if m.pill < len(m.pills())-1 {
			m.pill++
		}
	case " ":
		if pills := m.pills(); m.pill < len(pills) {
			p := pills[m.pill]
			m.events.Dispatch(gallery.TogglePill{Kind: p.Kind, Value: p.Value})
		}
	case "c":
		m.events.Dispatch(gallery.ClearFilters{})
	case "enter":
		if m.cursor < len(m.view.Projects) {
			slug := m.view.Projects[m.cursor].Slug
			m.loading = slug
			m.events.Dispatch(gallery.Navigate{Fragment: slug})
		}
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.view.Viewer
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace", "b":
		m.events.Dispatch(gallery.Navigate{Fragment: ""})
		return m, nil
	case "tab", "right", "l":
		if v != nil && len(v.Artifacts) > 1 {
			m.events.Dispatch(gallery.SelectTab{Index: (v.Active() + 1) % len(v.Artifacts)})
		}
		return m, nil
	case "shift+tab", "left", "h":
		if v != nil && len(v.Artifacts) > 1 {
			n := len(v.Artifacts)
			m.events.Dispatch(gallery.SelectTab{Index: (v.Active() + n - 1) % n})
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) pills() []gallery.Pill {
	pills := make([]gallery.Pill, 0, len(m.view.YearPills)+len(m.view.TagPills))
	pills = append(pills, m.view.YearPills...)
	return append(pills, m.view.TagPills...)
}

func (m *Model) clampCursors() {
	if m.cursor >= len(m.view.Projects) {
		m.cursor = max(len(m.view.Projects)-1, 0)
	}
	if n := len(m.pills()); m.pill >= n {
		m.pill = max(n-1, 0)
	}
}

// refresh rebuilds the scrollable body and keeps the selected card visible.
func (m *Model) refresh() {
	if m.view.Mode == gallery.ModeDetail {
		m.viewport.SetContent(m.detailBody())
		return
	}
	m.viewport.SetContent(m.gridBody())

	top := m.cursor * cardHeight
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case top+cardHeight > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(top + cardHeight - m.viewport.Height)
	}
}

func (m Model) gridBody() string {
	if len(m.view.Projects) == 0 {
		return dimStyle.Render("  No projects match the current filters.")
	}
	var lines []string
	for i, p := range m.view.Projects {
		marker, style := "  ", headingStyle
		if i == m.cursor {
			marker, style = "▸ ", selectedStyle
		}
		title := marker + style.Render(p.Title)
		if p.Year != "" {
			title += "  " + dimStyle.Render(p.Year.String())
		}
		if p.Slug == m.loading {
			title += "  " + dimStyle.Render("loading...")
		}
		lines = append(lines, title, "    "+dimStyle.Render(p.Description))
	}
	return strings.Join(lines, "\n")
}

func (m Model) detailBody() string {
	p := m.view.Project
	var b strings.Builder

	b.WriteString(titleStyle.Render(p.Title))
	b.WriteString("\n")
	meta := []string{}
	if p.Year != "" {
		meta = append(meta, p.Year.String())
	}
	if p.GithubURL != "" {
		meta = append(meta, "GitHub "+linkStyle.Render(p.GithubURL))
	}
	if p.LiveURL != "" {
		meta = append(meta, "Live "+linkStyle.Render(p.LiveURL))
	}
	b.WriteString(dimStyle.Render(strings.Join(meta, " · ")))
	b.WriteString("\n\n")

	about := p.FullDescription
	if about == "" {
		about = p.Description
	}
	m.section(&b, "About", about)
	if len(p.TechStack) > 0 {
		m.section(&b, "Tech Stack", strings.Join(p.TechStack, ", "))
	}
	m.section(&b, "Challenges", p.Challenges)
	m.section(&b, "What I Learned", p.Learnings)

	if m.view.Viewer != nil {
		b.WriteString(headingStyle.Render("Source"))
		b.WriteString("\n")
		b.WriteString(sourceTabs(m.view.Viewer))
		b.WriteString("\n\n")
		b.WriteString(sourceBody(m.view.Viewer.Artifacts[m.view.Viewer.Active()]))
	}
	return b.String()
}

func (m Model) section(b *strings.Builder, heading, text string) {
	if text == "" {
		return
	}
	b.WriteString(headingStyle.Render(heading))
	b.WriteString("\n")
	body := lipgloss.NewStyle()
	if m.width > 4 {
		body = body.Width(m.width - 2)
	}
	b.WriteString(body.Render(text))
	b.WriteString("\n\n")
}

func sourceTabs(v *gallery.CodeViewer) string {
	tabs := make([]string, len(v.Artifacts))
	for i, a := range v.Artifacts {
		if v.IsActive(i) {
			tabs[i] = activeTabStyle.Render(a.Filename)
		} else {
			tabs[i] = tabStyle.Render(a.Filename)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func sourceBody(a gallery.Artifact) string {
	if a.IsImage {
		return dimStyle.Render("[image] ") + linkStyle.Render(a.ImageSrc())
	}
	lines := highlight.Lines(a.Code)
	width := len(fmt.Sprint(len(lines)))
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = lineNumberStyle.Render(fmt.Sprintf("%*d ", width, i+1)) + codeLine(line, a.Language)
	}
	return strings.Join(out, "\n")
}

func (m Model) View() string {
	if !m.hasView {
		return dimStyle.Render("Loading gallery...")
	}

	header := titleStyle.Render(m.title) + "  " + dimStyle.Render(m.status())
	search := m.input.View()
	if !m.searching && m.input.Value() == "" {
		search = dimStyle.Render("press / to search")
	}

	var footer string
	switch {
	case m.searching:
		footer = dimStyle.Render("enter/esc: done")
	case m.view.Mode == gallery.ModeDetail:
		footer = dimStyle.Render("esc: back • tab/←/→: switch file • ↑/↓: scroll • q: quit")
	default:
		footer = dimStyle.Render("↑/↓: select • enter: open • ←/→ space: filter • c: clear • /: search • q: quit")
	}

	return strings.Join([]string{
		header,
		search,
		m.pillBar(),
		"",
		m.viewport.View(),
		"",
		footer,
	}, "\n")
}

func (m Model) status() string {
	if m.view.Mode == gallery.ModeDetail {
		return "#" + m.view.Project.Slug
	}
	return fmt.Sprintf("%d projects", len(m.view.Projects))
}

func (m Model) pillBar() string {
	pills := m.pills()
	parts := make([]string, len(pills))
	for i, p := range pills {
		style := pillStyle
		if p.Active {
			style = activePillStyle
		}
		if i == m.pill && m.view.Mode == gallery.ModeGrid && !m.searching {
			style = style.Underline(true)
		}
		parts[i] = style.Render(p.Value)
	}
	return strings.Join(parts, " ")
}
