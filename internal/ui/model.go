package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/surf-terminal/internal/database"
	"github.com/ngmaloney/surf-terminal/internal/models"
	"github.com/ngmaloney/surf-terminal/internal/report"
	"github.com/ngmaloney/surf-terminal/internal/spots"
)

// AppState represents the current state of the application
type AppState int

const (
	StateProvisioning AppState = iota // Initial data provisioning (building DB)
	StateSpotList                     // Pick a spot from the catalog
	StateSearch                       // Search by spot name or place
	StateLoading                      // Building the report for the selected spot
	StateDisplay                      // Display the report
	StateError                        // Error state
)

// ActivePane represents which pane is currently focused
type ActivePane int

const (
	PaneConditions ActivePane = iota
	PaneTides
	PaneAssessment
	paneCount
)

// SpotService lists spots and resolves search queries.
type SpotService interface {
	List() ([]models.Spot, error)
	Resolve(ctx context.Context, query string) (*spots.Resolution, error)
}

// ReportBuilder builds the report for one spot.
type ReportBuilder interface {
	BuildSpotReport(ctx context.Context, spot models.Spot) (*report.SpotReport, error)
}

// Config wires the model to its data sources.
type Config struct {
	DBPath    string
	Provision database.ProvisionOptions
	Spots     SpotService
	Reports   ReportBuilder

	// InitialSpot is resolved and loaded right after start-up.
	InitialSpot string
}

// Model represents the application's state
type Model struct {
	state      AppState
	activePane ActivePane
	width      int
	height     int
	err        error

	cfg Config

	// Spot list
	spots    []models.Spot
	spotList list.Model

	// Search
	searchInput textinput.Model
	searchQuery string // Last search query

	// Selection and data
	selected   *models.Spot
	resolution *spots.Resolution
	report     *report.SpotReport

	// Provisioning
	spinner           spinner.Model
	provisionStatus   string
	provisionChannels *provisioningStartedMsg
}

// NewModel creates a new application model
func NewModel(cfg Config) Model {
	if cfg.DBPath == "" {
		cfg.DBPath = database.DBPath()
	}

	ti := textinput.New()
	ti.Placeholder = "輸入浪點或地名 (例如 烏石港、福隆、台東)..."
	ti.CharLimit = 100
	ti.Width = 60

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		state:       StateSpotList,
		activePane:  PaneConditions,
		cfg:         cfg,
		searchInput: ti,
		spinner:     s,
		spotList:    createSpotList(nil, 0, 0),
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	needed, err := database.NeedsProvisioning(m.cfg.DBPath)
	if err == nil && needed {
		return tea.Batch(m.spinner.Tick, initiateProvisioning(m.cfg.DBPath, m.cfg.Provision))
	}
	return m.startCmd()
}

// startCmd loads the catalog and, when requested, the initial spot.
func (m Model) startCmd() tea.Cmd {
	cmds := []tea.Cmd{loadSpots(m.cfg.Spots)}
	if m.cfg.InitialSpot != "" {
		cmds = append(cmds, resolveSpot(m.cfg.Spots, m.cfg.InitialSpot))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Handle window size
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.spotList.SetSize(max(msg.Width-4, 20), max(msg.Height-8, 5))
		return m, nil
	}

	// Handle custom messages
	switch msg := msg.(type) {
	case errMsg:
		m.err = msg.err
		m.state = StateError
		return m, nil

	// Provisioning messages
	case provisioningStartedMsg:
		m.state = StateProvisioning
		m.provisionStatus = "準備浪點資料..."
		m.provisionChannels = &msg
		return m, tea.Batch(
			waitForProvisionStatus(msg.progressChan),
			waitForProvisionResult(msg.resultChan),
		)

	case provisionStatusMsg:
		m.provisionStatus = string(msg)
		// Keep reading from the stored channel
		if m.provisionChannels != nil {
			return m, waitForProvisionStatus(m.provisionChannels.progressChan)
		}
		return m, nil

	case provisionResultMsg:
		m.provisionChannels = nil
		if msg.err != nil {
			m.err = fmt.Errorf("provisioning failed: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		m.state = StateSpotList
		return m, m.startCmd()

	case spotsLoadedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("loading spots failed: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		m.spots = msg.spots
		m.spotList = createSpotList(msg.spots, m.width-4, m.height-8)
		return m, nil

	case spotResolvedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("找不到浪點 '%s': %w", m.displayQuery(), msg.err)
			m.state = StateError
			return m, nil
		}
		m.resolution = msg.resolution
		return m.selectSpot(msg.resolution.Spot)

	case reportFetchedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("fetching report failed: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		m.report = msg.report
		m.state = StateDisplay
		return m, nil
	}

	// Handle keyboard input
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		// q quits unless the user is typing
		if keyMsg.String() == "q" && m.state != StateSearch && !m.filtering() {
			return m, tea.Quit
		}

		switch m.state {
		case StateSpotList:
			return m.handleSpotList(keyMsg)

		case StateSearch:
			return m.handleSearchInput(keyMsg)

		case StateDisplay:
			return m.handleDisplay(keyMsg)

		case StateError:
			// Any key returns to the spot list
			m.err = nil
			m.state = StateSpotList
			return m, nil
		}
	}

	// Update appropriate component based on state
	switch m.state {
	case StateProvisioning, StateLoading:
		m.spinner, cmd = m.spinner.Update(msg)
	case StateSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case StateSpotList:
		m.spotList, cmd = m.spotList.Update(msg)
	}

	return m, cmd
}

// filtering reports whether the spot list is capturing keystrokes.
func (m Model) filtering() bool {
	return m.state == StateSpotList && m.spotList.FilterState() == list.Filtering
}

func (m Model) displayQuery() string {
	if m.searchQuery != "" {
		return m.searchQuery
	}
	return m.cfg.InitialSpot
}

// selectSpot starts building the report for a spot.
func (m Model) selectSpot(spot models.Spot) (tea.Model, tea.Cmd) {
	m.selected = &spot
	m.report = nil
	m.activePane = PaneConditions
	m.state = StateLoading
	return m, tea.Batch(m.spinner.Tick, fetchReport(m.cfg.Reports, spot))
}

// handleSpotList handles keyboard input in spot list state
func (m Model) handleSpotList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if !m.filtering() {
		switch {
		case msg.Type == tea.KeyEnter:
			if item, ok := m.spotList.SelectedItem().(spotItem); ok {
				m.resolution = nil
				return m.selectSpot(item.spot)
			}
			return m, nil
		case msg.String() == "s":
			return m.enterSearch()
		}
	}

	m.spotList, cmd = m.spotList.Update(msg)
	return m, cmd
}

// handleSearchInput handles keyboard input in search state
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.Type {
	case tea.KeyEsc:
		m.searchInput.Blur()
		m.state = StateSpotList
		return m, nil
	case tea.KeyEnter:
		query := m.searchInput.Value()
		if query == "" {
			return m, nil
		}
		m.searchQuery = query
		m.err = nil
		m.state = StateLoading
		return m, tea.Batch(m.spinner.Tick, resolveSpot(m.cfg.Spots, query))
	}

	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleDisplay handles keyboard input while a report is shown
func (m Model) handleDisplay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyTab:
		m.activePane = (m.activePane + 1) % paneCount
		return m, nil
	case msg.Type == tea.KeyShiftTab:
		m.activePane = (m.activePane + paneCount - 1) % paneCount
		return m, nil
	case msg.String() == "s":
		return m.enterSearch()
	case msg.String() == "r" && m.selected != nil:
		return m.selectSpot(*m.selected)
	case msg.Type == tea.KeyEsc || msg.String() == "l":
		m.state = StateSpotList
		return m, nil
	}
	return m, nil
}

func (m Model) enterSearch() (tea.Model, tea.Cmd) {
	m.state = StateSearch
	m.searchInput.SetValue("")
	m.searchInput.Focus()
	return m, textinput.Blink
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.state {
	case StateProvisioning:
		return m.viewProvisioning()
	case StateSpotList:
		return m.viewSpotList()
	case StateSearch:
		return m.viewSearch()
	case StateLoading:
		return m.viewLoading()
	case StateDisplay:
		return m.viewDisplay()
	case StateError:
		return m.viewError()
	}

	return ""
}

// viewProvisioning renders the initial setup screen
func (m Model) viewProvisioning() string {
	title := titleStyle.Render("🏄 Surf Terminal Setup")

	status := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render(m.provisionStatus)

	info := helpStyle.Render("首次啟動：建立浪點資料庫...")

	return lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		title,
		"",
		fmt.Sprintf("%s %s", m.spinner.View(), status),
		"",
		info,
	)
}

// viewError renders the error view
func (m Model) viewError() string {
	title := lipgloss.NewStyle().
		Foreground(colorDanger).
		Bold(true).
		Render("✗ Error")

	errorMsg := "An unknown error occurred"
	if m.err != nil {
		errorMsg = m.err.Error()
	}

	help := helpStyle.Render("按任意鍵返回浪點列表 • Q: 離開")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", errorMsg, "", help)
}

// viewSpotList renders the spot picker
func (m Model) viewSpotList() string {
	help := helpStyle.Render("↑/↓: 選擇 • /: 篩選 • Enter: 查看浪況 • S: 搜尋地名 • Q: 離開")
	return lipgloss.JoinVertical(lipgloss.Left, m.spotList.View(), help)
}

// viewSearch renders the search view
func (m Model) viewSearch() string {
	title := titleStyle.Render("🏄 Surf Terminal")
	subtitle := mutedStyle.Render("台灣浪況評估 • 中央氣象署開放資料")

	searchBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(64).
		Render(m.searchInput.View())

	examples := mutedStyle.Render("例如：wushi | 福隆 | 宜蘭頭城 | 24.87,121.84")
	help := helpStyle.Render("Enter: 搜尋 • Esc: 返回列表 • Ctrl+C: 離開")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "", searchBox, "", examples, "", help)
}

// viewLoading renders the loading view
func (m Model) viewLoading() string {
	s := "正在取得浪況資料"
	switch {
	case m.selected != nil:
		s = fmt.Sprintf("正在取得 %s 的浪況資料", m.selected.Name)
	case m.searchQuery != "":
		s = fmt.Sprintf("正在搜尋 %s", m.searchQuery)
	}
	return fmt.Sprintf("\n %s %s...\n", m.spinner.View(), s)
}

// viewDisplay renders the report: conditions, tides and assessment panes
func (m Model) viewDisplay() string {
	if m.report == nil {
		return "No spot selected"
	}
	spot := m.report.Spot

	headerStyle := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Padding(0, 1)
	sections := []string{headerStyle.Render(fmt.Sprintf("🏄 %s - %s", spot.Name, spot.Region))}

	info := fmt.Sprintf("更新時間 %s", m.report.GeneratedAt.Format("01/02 15:04"))
	if m.resolution != nil && m.resolution.MatchedBy == "geocode" {
		info = fmt.Sprintf("📍 %s (距離 %.1f km) • %s", m.searchQuery, m.resolution.DistanceKm, info)
	}
	sections = append(sections, mutedStyle.Render(info), "")

	// Side by side on wide terminals
	if m.width >= 110 {
		w := (m.width - 6) / 3
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderConditionsPane(w),
			m.renderTidePane(w),
			m.renderAssessmentPane(w),
		))
	} else {
		w := max(m.width-4, 30)
		sections = append(sections,
			m.renderConditionsPane(w),
			m.renderTidePane(w),
			m.renderAssessmentPane(w),
		)
	}

	help := helpStyle.Render("Tab: 切換面板 • R: 重新整理 • S: 搜尋 • L/Esc: 浪點列表 • Q: 離開")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// paneFrame picks the border style for a pane.
func (m Model) paneFrame(p ActivePane, width int) lipgloss.Style {
	if m.activePane == p {
		return activePaneStyle.Width(width)
	}
	return paneStyle.Width(width)
}
