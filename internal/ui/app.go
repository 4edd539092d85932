package ui

import (
	"fmt"
	"strings"

	"github.com/prabalesh/sysmon/internal/format"
	"github.com/prabalesh/sysmon/internal/monitor"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	tabMonitor = iota
	tabNetwork
	tabSystemInfo
)

const (
	appTitle   = "Advanced System Monitor"
	appVersion = "v1.0"
	websiteURL = "https://github.com/KiryaScript"

	// Below this width the monitor tab stacks charts under the text blocks.
	wideLayoutWidth = 100
)

// stateMsg carries one published monitor state into the update loop.
type stateMsg monitor.State

type App struct {
	updates  <-chan monitor.State
	state    monitor.State
	hasState bool

	activeTab int
	tabs      []string
	width     int
	height    int
	// Vertical scrolling state
	verticalScrollOffset int
	contentHeight        int

	cpuProgress     progress.Model
	memoryProgress  progress.Model
	batteryProgress progress.Model
	connTable       table.Model

	keys      keyMap
	help      help.Model
	theme     Theme
	styles    Styles
	showAbout bool
}

type Option func(*App)

func WithTheme(t Theme) Option {
	return func(a *App) { a.theme = t }
}

// NewApp returns a model that renders the states published on updates.
func NewApp(updates <-chan monitor.State, opts ...Option) *App {
	a := &App{
		updates:         updates,
		tabs:            []string{"Monitor", "Network", "System Info"},
		activeTab:       tabMonitor,
		cpuProgress:     progress.New(progress.WithDefaultGradient()),
		memoryProgress:  progress.New(progress.WithDefaultGradient()),
		batteryProgress: progress.New(progress.WithDefaultGradient()),
		keys:            defaultKeyMap(),
		help:            help.New(),
		theme:           ThemeLight,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.styles = NewStyles(a.theme)
	a.connTable = table.New(
		table.WithColumns(connectionColumns(0)),
		table.WithFocused(true),
		table.WithStyles(a.styles.Table),
	)
	return a
}

func (a *App) Init() tea.Cmd {
	return waitForUpdate(a.updates)
}

// waitForUpdate blocks on the monitor channel. It is re-issued after every
// state so exactly one receive is pending at a time.
func waitForUpdate(updates <-chan monitor.State) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return nil
		}
		return stateMsg(s)
	}
}

func connectionColumns(width int) []table.Column {
	// Address columns take what is left after the ports and status.
	addrWidth := max(15, (width-8-8-14-12)/2)
	return []table.Column{
		{Title: "Local Address", Width: addrWidth},
		{Title: "Local Port", Width: 10},
		{Title: "Remote Address", Width: addrWidth},
		{Title: "Remote Port", Width: 11},
		{Title: "Status", Width: 12},
	}
}

// Get the height available for content (excluding sticky header elements)
func (a *App) getContentAreaHeight() int {
	// Reserve space for: title, tabs, status and help lines plus spacing
	reservedHeight := 8
	return max(1, a.height-reservedHeight)
}

// Get the maximum scroll offset based on content height
func (a *App) getMaxScrollOffset() int {
	availableHeight := a.getContentAreaHeight()
	if a.contentHeight <= availableHeight {
		return 0
	}
	return a.contentHeight - availableHeight
}

func (a *App) clampVerticalScroll() {
	maxOffset := a.getMaxScrollOffset()
	a.verticalScrollOffset = max(0, min(a.verticalScrollOffset, maxOffset))
}

// Apply vertical scrolling to content by truncating lines
func (a *App) applyVerticalScroll(content string) string {
	lines := strings.Split(content, "\n")
	a.contentHeight = len(lines)

	a.clampVerticalScroll()

	availableHeight := a.getContentAreaHeight()
	if len(lines) <= availableHeight {
		return content
	}

	startLine := a.verticalScrollOffset
	endLine := min(startLine+availableHeight, len(lines))
	result := strings.Join(lines[startLine:endLine], "\n")

	if a.verticalScrollOffset > 0 {
		result = a.styles.Indicator.Render("▲ More content above") + "\n" + result
	}
	if a.verticalScrollOffset < a.getMaxScrollOffset() {
		result = result + "\n" + a.styles.Indicator.Render("▼ More content below")
	}

	return result
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	progressWidth := max(10, min(40, a.leftColumnWidth()-8))
	a.cpuProgress.Width = progressWidth
	a.memoryProgress.Width = progressWidth
	a.batteryProgress.Width = progressWidth

	a.connTable.SetColumns(connectionColumns(width - 4))
	a.connTable.SetHeight(max(3, a.getContentAreaHeight()-3))
	a.help.Width = width
}

func (a *App) setTheme(t Theme) {
	a.theme = t
	a.styles = NewStyles(t)
	a.connTable.SetStyles(a.styles.Table)
}

func (a *App) applyState(s monitor.State) {
	a.state = s
	a.hasState = true

	rows := make([]table.Row, 0, len(s.Snapshot.Connections))
	for _, c := range s.Snapshot.Connections {
		rows = append(rows, table.Row(format.ConnectionRow(c)))
	}
	a.connTable.SetRows(rows)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case stateMsg:
		a.applyState(monitor.State(msg))
		return a, waitForUpdate(a.updates)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case a.showAbout:
		// Any other key closes the About box.
		a.showAbout = false
		return a, nil
	case key.Matches(msg, a.keys.About):
		a.showAbout = true
	case key.Matches(msg, a.keys.Theme):
		a.setTheme(a.theme.Toggle())
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	case key.Matches(msg, a.keys.PrevTab):
		a.activeTab = (a.activeTab + len(a.tabs) - 1) % len(a.tabs)
		a.verticalScrollOffset = 0
	case key.Matches(msg, a.keys.NextTab):
		a.activeTab = (a.activeTab + 1) % len(a.tabs)
		a.verticalScrollOffset = 0
	case a.activeTab == tabNetwork:
		// The table handles its own cursor keys.
		var cmd tea.Cmd
		a.connTable, cmd = a.connTable.Update(msg)
		return a, cmd
	case key.Matches(msg, a.keys.Up):
		if a.verticalScrollOffset > 0 {
			a.verticalScrollOffset--
		}
	case key.Matches(msg, a.keys.Down):
		a.verticalScrollOffset++
		a.clampVerticalScroll()
	case key.Matches(msg, a.keys.PageUp):
		scrollAmount := max(1, a.getContentAreaHeight()/2)
		a.verticalScrollOffset = max(0, a.verticalScrollOffset-scrollAmount)
	case key.Matches(msg, a.keys.PageDown):
		scrollAmount := max(1, a.getContentAreaHeight()/2)
		a.verticalScrollOffset += scrollAmount
		a.clampVerticalScroll()
	case key.Matches(msg, a.keys.Top):
		a.verticalScrollOffset = 0
	case key.Matches(msg, a.keys.Bottom):
		a.verticalScrollOffset = a.getMaxScrollOffset()
	}

	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	if a.showAbout {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.renderAbout())
	}

	// Title (sticky)
	title := a.styles.Title.Width(a.width).Render(appTitle)

	// Tabs (sticky)
	tabs := a.renderTabs()

	var content string
	if !a.hasState {
		content = a.styles.Muted.Render("Waiting for the first sample...")
	} else {
		switch a.activeTab {
		case tabMonitor:
			content = a.renderMonitor()
		case tabNetwork:
			content = a.renderNetwork()
		case tabSystemInfo:
			content = a.renderSystemInfo()
		}
	}

	scrollableContent := a.applyVerticalScroll(content)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		tabs,
		"",
		scrollableContent,
		"",
		a.renderStatus(),
		a.help.View(a.keys),
	)
}

func (a *App) renderTabs() string {
	tabElements := make([]string, 0, len(a.tabs))
	for i, tab := range a.tabs {
		if i == a.activeTab {
			tabElements = append(tabElements, a.styles.ActiveTab.Render(tab))
		} else {
			tabElements = append(tabElements, a.styles.InactiveTab.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, tabElements...)
}

// renderStatus shows the error of the latest tick, if any. It disappears
// with the next clean tick.
func (a *App) renderStatus() string {
	if a.state.Err != nil {
		msg := truncateString("⚠ "+a.state.Err.Error(), max(10, a.width-2))
		return a.styles.Error.Render(msg)
	}
	if !a.hasState {
		return ""
	}
	return a.styles.Muted.Render("Updated " + a.state.UpdatedAt.Format("15:04:05"))
}

func (a *App) leftColumnWidth() int {
	if a.width >= wideLayoutWidth {
		return a.width / 3
	}
	return a.width - 2
}

func (a *App) renderMonitor() string {
	snap := a.state.Snapshot
	boxWidth := a.leftColumnWidth() - 2

	cpu := a.styles.Base.Width(boxWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Label.Render(format.CPUBlock(snap.CPU)),
		a.cpuProgress.ViewAs(snap.CPU.Percent/100.0),
	))
	memory := a.styles.Base.Width(boxWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Label.Render(format.MemoryBlock(snap.Memory)),
		a.memoryProgress.ViewAs(snap.Memory.Percent/100.0),
	))
	network := a.styles.Base.Width(boxWidth).Render(
		a.styles.Label.Render(format.NetworkBlock(snap.Network)),
	)

	powerLines := []string{a.styles.Label.Render(format.PowerBlock(snap.Battery))}
	if snap.Battery != nil {
		powerLines = append(powerLines, a.batteryProgress.ViewAs(snap.Battery.Percent/100.0))
	}
	power := a.styles.Base.Width(boxWidth).Render(lipgloss.JoinVertical(lipgloss.Left, powerLines...))

	left := lipgloss.JoinVertical(lipgloss.Left, cpu, memory, network, power)

	chartWidth := a.width - 4
	if a.width >= wideLayoutWidth {
		chartWidth = a.width - a.leftColumnWidth() - 4
	}
	charts := lipgloss.JoinVertical(lipgloss.Left,
		cpuChart(a.state.CPUHistory).render(chartWidth, a.styles.axis),
		"",
		memoryChart(a.state.MemoryHistory).render(chartWidth, a.styles.axis),
		"",
		networkChart(a.state.DownloadHistory, a.state.UploadHistory).render(chartWidth, a.styles.axis),
	)

	if a.width >= wideLayoutWidth {
		return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", charts)
	}
	return lipgloss.JoinVertical(lipgloss.Left, left, "", charts)
}

func (a *App) renderNetwork() string {
	count := fmt.Sprintf("%d connections", len(a.state.Snapshot.Connections))
	return lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Header.Render("Active Connections"),
		a.styles.Muted.Render(count),
		a.connTable.View(),
	)
}

func (a *App) renderSystemInfo() string {
	return a.styles.Base.Width(a.width - 4).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			a.styles.Header.Render("System Information"),
			"",
			a.styles.Value.Render(format.SystemBlock(a.state.Identity)),
		),
	)
}

func (a *App) renderAbout() string {
	return a.styles.About.Render(lipgloss.JoinVertical(lipgloss.Center,
		a.styles.Header.Render("About System Monitor"),
		"",
		appTitle+" "+appVersion,
		"Created by Devorsky",
		"This application monitors system resources in real-time.",
		"",
		a.styles.Label.Render(websiteURL),
		"",
		a.styles.Muted.Render("press any key to close"),
	))
}

func truncateString(s string, maxLen int) string {
	if len([]rune(s)) <= maxLen {
		return s
	}
	r := []rune(s)
	if maxLen < 4 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
