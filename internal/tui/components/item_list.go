package components

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/readtrack/internal/domain"
	"github.com/mmcdole/readtrack/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// View text shown for each list state
const (
	LoadingText   = "Loading books..."
	FetchErrorMsg = "Failed to fetch items"
	EmptyText     = "No books in this project yet."
	ListHeading   = "Reading List"
)

// DefaultFetchTimeout bounds a single fetch when no timeout is configured
const DefaultFetchTimeout = 30 * time.Second

// FetchFunc loads the items for a scope. An empty scope means all items.
type FetchFunc func(ctx context.Context, scope string) ([]domain.TextualItem, error)

// ItemListOptions configures an ItemList
type ItemListOptions struct {
	Scope   string
	Timeout time.Duration
	Logger  *slog.Logger
}

// ItemsLoadedMsg completes a fetch. Seq identifies the request it answers.
type ItemsLoadedMsg struct {
	Seq   uint64
	Scope string
	Items []domain.TextualItem
	Err   error
}

// ItemList fetches the items for its scope and renders them as a card grid.
// Only the most recent request may update it: completions carrying an older
// Seq are dropped and starting a request cancels the one before it.
type ItemList struct {
	fetch   FetchFunc
	timeout time.Duration
	logger  *slog.Logger

	root    context.Context
	stop    context.CancelFunc
	reqCtx  context.Context
	reqStop context.CancelFunc

	scope   string
	seq     uint64
	items   []domain.TextualItem
	loading bool
	err     error

	spinner spinner.Model

	filterActive bool
	filterInput  textinput.Model
	filterQuery  string

	keys    []string // per-item keys, unique within items
	sortSel SortSelection
	order   []int // item indices in sort order
	visible []int // item indices shown, after filtering

	cursor      int
	selectedKey string
	offset      int // first visible card row
	width       int
	height      int
}

// NewItemList creates an item list in the loading state. The first request
// is issued by Init.
func NewItemList(fetch FetchFunc, opts ItemListOptions) ItemList {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.CharLimit = 100

	sp := spinner.New(
		spinner.WithSpinner(spinner.Spinner{Frames: styles.SpinnerFrames, FPS: time.Second / 10}),
		spinner.WithStyle(styles.SpinnerStyle),
	)

	root, stop := context.WithCancel(context.Background())
	reqCtx, reqStop := context.WithCancel(root)

	return ItemList{
		fetch:       fetch,
		timeout:     timeout,
		logger:      logger,
		root:        root,
		stop:        stop,
		reqCtx:      reqCtx,
		reqStop:     reqStop,
		scope:       opts.Scope,
		seq:         1,
		loading:     true,
		spinner:     sp,
		filterInput: ti,
	}
}

// Init issues the first request for the initial scope
func (l ItemList) Init() tea.Cmd {
	return tea.Batch(l.fetchCmd(), l.spinner.Tick)
}

// SetScope switches the scope and issues a new request. Setting the current
// scope again does nothing.
func (l *ItemList) SetScope(scope string) tea.Cmd {
	if scope == l.scope {
		return nil
	}
	l.scope = scope
	l.selectedKey = ""
	l.cursor = 0
	l.offset = 0
	return l.reload()
}

// Refresh re-issues the request for the current scope
func (l *ItemList) Refresh() tea.Cmd {
	return l.reload()
}

// Load fetches the current scope synchronously and applies the result.
// Used by print mode where there is no event loop.
func (l *ItemList) Load(ctx context.Context) error {
	l.reload()
	msg := l.fetchWith(ctx)
	*l, _ = l.Update(msg)
	return l.err
}

// Close cancels any in-flight request
func (l *ItemList) Close() {
	if l.stop != nil {
		l.stop()
	}
}

func (l *ItemList) reload() tea.Cmd {
	if l.reqStop != nil {
		l.reqStop()
	}
	l.seq++
	l.err = nil
	l.loading = true
	l.reqCtx, l.reqStop = context.WithCancel(l.root)
	return tea.Batch(l.fetchCmd(), l.spinner.Tick)
}

func (l ItemList) fetchCmd() tea.Cmd {
	ctx := l.reqCtx
	return func() tea.Msg {
		return l.fetchWith(ctx)
	}
}

func (l ItemList) fetchWith(ctx context.Context) ItemsLoadedMsg {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	items, err := l.fetch(ctx, l.scope)
	return ItemsLoadedMsg{Seq: l.seq, Scope: l.scope, Items: items, Err: err}
}

// Update handles fetch completions, spinner ticks and navigation keys
func (l ItemList) Update(msg tea.Msg) (ItemList, tea.Cmd) {
	switch msg := msg.(type) {
	case ItemsLoadedMsg:
		if msg.Seq != l.seq {
			l.logger.Debug("dropping stale items response", "seq", msg.Seq, "current", l.seq, "scope", msg.Scope)
			return l, nil
		}
		l.loading = false
		if msg.Err != nil {
			l.err = msg.Err
			l.logger.Error("failed to fetch items", "scope", msg.Scope, "error", msg.Err)
			return l, nil
		}
		l.err = nil
		l.items = msg.Items
		l.rebuild()
		return l, nil

	case spinner.TickMsg:
		if !l.loading {
			return l, nil
		}
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(msg)
		return l, cmd

	case tea.KeyMsg:
		return l.handleKey(msg)
	}
	return l, nil
}

func (l ItemList) handleKey(msg tea.KeyMsg) (ItemList, tea.Cmd) {
	keys := ItemListKeys

	// Typing mode: keys go to the filter input
	if l.filterActive && l.filterInput.Focused() {
		switch {
		case msg.Type == tea.KeyEsc:
			l.clearFilter()
			return l, nil
		case msg.Type == tea.KeyEnter:
			l.filterInput.Blur()
			return l, nil
		case msg.Type == tea.KeyBackspace && l.filterInput.Value() == "":
			l.clearFilter()
			return l, nil
		}
		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		l.applyFilter()
		return l, cmd
	}

	if l.filterActive {
		switch {
		case key.Matches(msg, keys.Escape):
			l.clearFilter()
			return l, nil
		case key.Matches(msg, keys.Filter):
			return l, l.filterInput.Focus()
		}
	}

	count := len(l.visible)
	if count == 0 {
		return l, nil
	}
	cols := l.columns()

	switch {
	case key.Matches(msg, keys.Down):
		l.moveTo(min(l.cursor+cols, count-1))
	case key.Matches(msg, keys.Up):
		l.moveTo(max(l.cursor-cols, 0))
	case key.Matches(msg, keys.Right):
		l.moveTo(min(l.cursor+1, count-1))
	case key.Matches(msg, keys.Left):
		l.moveTo(max(l.cursor-1, 0))
	case key.Matches(msg, keys.Home):
		l.moveTo(0)
	case key.Matches(msg, keys.End):
		l.moveTo(count - 1)
	}
	return l, nil
}

// StartFilter opens the filter input
func (l *ItemList) StartFilter() tea.Cmd {
	l.filterActive = true
	return l.filterInput.Focus()
}

// IsFiltering returns true if filter mode is active
func (l ItemList) IsFiltering() bool {
	return l.filterActive
}

// IsFilterTyping returns true if the filter input has focus
func (l ItemList) IsFilterTyping() bool {
	return l.filterActive && l.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (l *ItemList) ClearFilter() {
	l.clearFilter()
}

// SetFilter applies a filter query directly
func (l *ItemList) SetFilter(query string) {
	l.filterActive = query != ""
	l.filterInput.SetValue(query)
	l.applyFilter()
}

// SetSort changes the card order
func (l *ItemList) SetSort(sel SortSelection) {
	l.sortSel = sel
	l.rebuild()
}

// Sort returns the active sort selection
func (l ItemList) Sort() SortSelection {
	return l.sortSel
}

// SetSize updates the component dimensions. A zero height renders every card.
func (l *ItemList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.ensureVisible()
}

// Accessors

func (l ItemList) Loading() bool { return l.loading }
func (l ItemList) Err() error { return l.err }
func (l ItemList) Items() []domain.TextualItem { return l.items }
func (l ItemList) Scope() string { return l.scope }
func (l ItemList) Seq() uint64 { return l.seq }

// Loaded reports whether the last request finished without error
func (l ItemList) Loaded() bool {
	return !l.loading && l.err == nil
}

// VisibleItems returns the items currently shown, in display order
func (l ItemList) VisibleItems() []domain.TextualItem {
	out := make([]domain.TextualItem, len(l.visible))
	for i, idx := range l.visible {
		out[i] = l.items[idx]
	}
	return out
}

// Cards returns a card per visible item
func (l ItemList) Cards() []Card {
	cards := make([]Card, len(l.visible))
	for i, idx := range l.visible {
		cards[i] = NewCard(l.items[idx])
	}
	return cards
}

// Selected returns the item under the cursor
func (l ItemList) Selected() (domain.TextualItem, bool) {
	if l.loading || l.err != nil || l.cursor < 0 || l.cursor >= len(l.visible) {
		return domain.TextualItem{}, false
	}
	return l.items[l.visible[l.cursor]], true
}

// SelectedKey returns the key of the item under the cursor. Unlike
// TextualItem.Key it tells apart records that repeat exactly.
func (l ItemList) SelectedKey() (string, bool) {
	if _, ok := l.Selected(); !ok {
		return "", false
	}
	return l.keys[l.visible[l.cursor]], true
}

// Internal methods

// rebuild recomputes sort order and filter results after items or sort change,
// keeping the selection on the same item when it is still present
func (l *ItemList) rebuild() {
	l.keys = domain.UniqueKeys(l.items)
	l.order = SortItemIndices(l.items, l.sortSel)
	l.applyFilter()
}

func (l *ItemList) clearFilter() {
	l.filterActive = false
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.applyFilter()
}

func (l *ItemList) applyFilter() {
	query := strings.TrimSpace(l.filterInput.Value())
	l.filterQuery = query

	if query == "" {
		l.visible = append([]int(nil), l.order...)
	} else {
		sources := make([]string, len(l.order))
		for i, idx := range l.order {
			it := l.items[idx]
			sources[i] = strings.ToLower(it.Title + " " + it.Author)
		}
		matches := fuzzy.Find(strings.ToLower(query), sources)
		l.visible = make([]int, len(matches))
		for i, match := range matches {
			l.visible[i] = l.order[match.Index]
		}
	}

	l.cursor = 0
	if l.selectedKey != "" {
		for i, idx := range l.visible {
			if l.keys[idx] == l.selectedKey {
				l.cursor = i
				break
			}
		}
	}
	l.ensureVisible()
}

func (l *ItemList) moveTo(i int) {
	l.cursor = i
	if i >= 0 && i < len(l.visible) {
		l.selectedKey = l.keys[l.visible[i]]
	}
	l.ensureVisible()
}

func (l ItemList) columns() int {
	if l.width <= 0 {
		return 1
	}
	cols := (l.width + CardGap) / (CardWidth + CardGap)
	if cols < 1 {
		cols = 1
	}
	return cols
}

// bodyHeight is the height left for cards below the heading and filter bar
func (l ItemList) bodyHeight() int {
	if l.height <= 0 {
		return 0
	}
	h := l.height - 2 // heading + blank line
	if l.filterActive {
		h--
	}
	if h < CardHeight {
		h = CardHeight
	}
	return h
}

func (l *ItemList) ensureVisible() {
	rowsVisible := l.bodyHeight() / CardHeight
	if rowsVisible <= 0 {
		l.offset = 0
		return
	}
	row := l.cursor / l.columns()
	if row < l.offset {
		l.offset = row
	}
	if row >= l.offset+rowsVisible {
		l.offset = row - rowsVisible + 1
	}
}

// View renders the list. Loading takes priority over error, error over
// empty, and empty over the card grid.
func (l ItemList) View() string {
	switch {
	case l.loading:
		return l.spinner.View() + " " + styles.DimStyle.Render(LoadingText)
	case l.err != nil:
		return styles.ErrorStyle.Render("Error: " + FetchErrorMsg)
	case len(l.items) == 0:
		return styles.DimStyle.Render(EmptyText)
	}

	var parts []string
	parts = append(parts, styles.TitleStyle.Render(ListHeading), "")
	if l.filterActive {
		parts = append(parts, l.renderFilterBar())
	}

	grid := l.renderGrid()
	if h := l.bodyHeight(); h > 0 {
		vp := viewport.New(max(l.width, CardWidth), h)
		vp.SetContent(grid)
		vp.SetYOffset(l.offset * CardHeight)
		grid = vp.View()
	}
	parts = append(parts, grid)

	return strings.Join(parts, "\n")
}

func (l ItemList) renderGrid() string {
	if len(l.visible) == 0 {
		return styles.DimStyle.Render("No matches")
	}
	cols := l.columns()
	var rows []string
	for start := 0; start < len(l.visible); start += cols {
		end := min(start+cols, len(l.visible))
		var cells []string
		for i := start; i < end; i++ {
			card := NewCard(l.items[l.visible[i]]).View(CardWidth, i == l.cursor)
			if i > start {
				card = lipgloss.NewStyle().MarginLeft(CardGap).Render(card)
			}
			cells = append(cells, card)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (l ItemList) renderFilterBar() string {
	input := l.filterInput.View()
	if l.filterQuery == "" {
		return input
	}
	return input + styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", len(l.visible), len(l.items)))
}
