package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/readtrack/internal/domain"
	"github.com/mmcdole/readtrack/internal/service"
	"github.com/mmcdole/readtrack/internal/tui/components"
)

// AppTitle is the static heading above the list
const AppTitle = "My Reading Tracker"

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

// Options configures the application model
type Options struct {
	// Project is the initial scope; it wins over the remembered one
	Project string
	// RememberProject restores and persists the last chosen scope
	RememberProject bool
	// Timeout bounds each backend request
	Timeout time.Duration
	// GlamourStyle selects the detail pane's markdown style
	GlamourStyle string
	Logger       *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	ItemSvc     *service.ItemService
	MetadataSvc *service.MetadataService
	Store       domain.Store

	// UI Components
	List      components.ItemList
	Picker    components.ProjectPicker
	SortModal components.SortModal
	Inspector components.Inspector
	Help      help.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
	ScopeLabel  string

	opts   Options
	logger *slog.Logger
}

// NewModel creates a new application model. The initial scope comes from
// opts.Project, then the remembered project when enabled.
func NewModel(
	itemSvc *service.ItemService,
	metadataSvc *service.MetadataService,
	store domain.Store,
	opts Options,
) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = components.DefaultFetchTimeout
	}

	scope := opts.Project
	if scope == "" && opts.RememberProject && store != nil {
		if last, ok := store.GetLastProject(); ok {
			scope = last
		}
	}

	list := components.NewItemList(itemSvc.ListItems, components.ItemListOptions{
		Scope:   scope,
		Timeout: opts.Timeout,
		Logger:  logger,
	})

	return Model{
		State:       StateBrowsing,
		ItemSvc:     itemSvc,
		MetadataSvc: metadataSvc,
		Store:       store,
		List:        list,
		Picker:      components.NewProjectPicker(),
		SortModal:   components.NewSortModal(),
		Inspector:   components.NewInspector(opts.GlamourStyle),
		Help:        help.New(),
		ScopeLabel:  scopeLabel(scope),
		opts:        opts,
		logger:      logger,
	}
}

// Init issues the first item request
func (m Model) Init() tea.Cmd {
	return m.List.Init()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case components.ItemsLoadedMsg, spinner.TickMsg:
		var cmd tea.Cmd
		m.List, cmd = m.List.Update(msg)
		return m, cmd

	case ProjectsLoadedMsg:
		if !m.Picker.IsVisible() {
			return m, nil
		}
		projects := service.ScopedProjects(msg.Projects, m.List.Items())
		m.Picker.SetProjects(projects, msg.Err)
		return m, nil

	case MetadataLoadedMsg:
		m.Inspector.SetMetadata(msg.Key, msg.Meta, msg.Err)
		return m, nil

	case ErrMsg:
		m.logger.Error("command failed", "context", msg.Context, "error", msg.Err)
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	if m.Inspector.IsVisible() {
		var cmd tea.Cmd
		m.Inspector, cmd = m.Inspector.Update(msg)
		return m, cmd
	}
	return m, nil
}

// setScope switches the list to scope and remembers it when enabled
func (m *Model) setScope(scope, label string) tea.Cmd {
	cmd := m.List.SetScope(scope)
	if cmd == nil {
		return nil
	}
	if label == "" {
		label = scopeLabel(scope)
	}
	m.ScopeLabel = label
	m.Inspector.Hide()
	m.updateLayout()

	cmds := []tea.Cmd{cmd}
	if m.opts.RememberProject && m.Store != nil {
		cmds = append(cmds, SaveProjectCmd(m.Store, scope))
	}
	return tea.Batch(cmds...)
}

// showDetails opens the detail pane for the selected card
func (m *Model) showDetails() tea.Cmd {
	item, ok := m.List.Selected()
	if !ok {
		return nil
	}
	key, _ := m.List.SelectedKey()
	lookup := m.MetadataSvc != nil && m.MetadataSvc.Enabled()
	m.Inspector.Show(key, item, lookup)
	m.updateLayout()
	if !lookup {
		return nil
	}
	return LookupMetadataCmd(m.MetadataSvc, key, item, m.opts.Timeout)
}

// quit cancels in-flight requests before exiting
func (m *Model) quit() tea.Cmd {
	m.List.Close()
	return tea.Quit
}

// View renders the application
func (m Model) View() string {
	if m.State == StateHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}
