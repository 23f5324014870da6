// Package tui is the interactive surface: one page per life area plus the
// reflections journal. All state mutation goes through the collections and
// the log; the pages only project and render.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"vida/internal/collection"
	"vida/internal/config"
	"vida/internal/model"
	"vida/internal/reflections"
	"vida/internal/store"
)

// removalDelay is the fade-out window between marking a row for deletion
// and committing it. `u` within the window cancels.
const removalDelay = 400 * time.Millisecond

// searchQuiet is the debounce period for free-text search.
const searchQuiet = 250 * time.Millisecond

const flashTTL = 2 * time.Second

type page int

const (
	pageFisica page = iota
	pageFinanciera
	pageFamilia
	pageReflections
)

func (p page) area() (model.Area, bool) {
	switch p {
	case pageFisica:
		return model.AreaPhysical, true
	case pageFinanciera:
		return model.AreaFinancial, true
	case pageFamilia:
		return model.AreaFamily, true
	}
	return "", false
}

type (
	removalDueMsg struct {
		area model.Area
		id   string
		gen  int
	}
	flashClearMsg  struct{ seq int }
	searchDueMsg   struct{}
	storeChangeMsg struct{}
)

// completionRecorder captures hook firings so Update can turn them into a
// celebration flash right after the toggle that caused them.
type completionRecorder struct {
	area *model.Area
}

func (r *completionRecorder) record(a model.Area) { r.area = &a }

func (r *completionRecorder) take() (model.Area, bool) {
	if r.area == nil {
		return "", false
	}
	a := *r.area
	r.area = nil
	return a, true
}

// App is the bubbletea model.
type App struct {
	cfg config.Config
	kv  store.KV

	cols map[model.Area]*collection.Collection
	log  *reflections.Log
	rec  *completionRecorder

	page   page
	cursor int
	width  int
	height int

	// inline add/edit share one input
	input   textinput.Model
	adding  bool
	editing bool
	editID  string

	// drag state; previewIDs is the presentation-only order during the
	// gesture, committed on release
	dragging   bool
	dragID     string
	previewIDs []string

	// reflections page
	search        textinput.Model
	searchFocused bool
	deb           *reflections.Debouncer
	searchCh      chan struct{}
	filter        reflections.Filter
	results       []model.Reflection
	showDetail    bool

	flash    string
	flashErr bool
	flashSeq int

	reloadCh chan struct{}
}

func newApp(cfg config.Config, kv store.KV) (App, error) {
	rec := &completionRecorder{}
	cols := map[model.Area]*collection.Collection{}
	for _, area := range model.Areas() {
		c, err := collection.Load(kv, area, cfg.SeedItems(area),
			collection.WithOnCompleted(rec.record))
		if err != nil {
			return App{}, err
		}
		cols[area] = c
	}
	log, err := reflections.LoadLog(kv)
	if err != nil {
		return App{}, err
	}

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "Nueva meta..."
	input.CharLimit = 200

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "buscar..."
	search.CharLimit = 100

	m := App{
		cfg:      cfg,
		kv:       kv,
		cols:     cols,
		log:      log,
		rec:      rec,
		input:    input,
		search:   search,
		deb:      reflections.NewDebouncer(searchQuiet),
		searchCh: make(chan struct{}, 1),
		filter: reflections.Filter{
			Category: reflections.CategoryAll,
			Range:    reflections.RangeAll,
			Sort:     reflections.SortDesc,
		},
		reloadCh: make(chan struct{}, 1),
	}
	m.recompute()
	return m, nil
}

// Run starts the TUI. watchPath, when non-empty, is the JSON store file to
// watch for concurrent CLI writes.
func Run(cfg config.Config, kv store.KV, watchPath string) error {
	m, err := newApp(cfg, kv)
	if err != nil {
		return err
	}
	if watchPath != "" {
		reload := m.reloadCh
		w, err := store.Watch(watchPath, 250*time.Millisecond, func() {
			select {
			case reload <- struct{}{}:
			default:
			}
		})
		if err == nil {
			defer w.Close()
		}
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func waitFor[T tea.Msg](ch chan struct{}, msg T) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return msg
	}
}

func (m App) Init() tea.Cmd {
	return tea.Batch(
		waitFor(m.searchCh, searchDueMsg{}),
		waitFor(m.reloadCh, storeChangeMsg{}),
	)
}

func (m App) current() *collection.Collection {
	area, ok := m.page.area()
	if !ok {
		return nil
	}
	return m.cols[area]
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case removalDueMsg:
		if c := m.cols[msg.area]; c != nil {
			if err := c.FinishRemoval(msg.id, msg.gen); err != nil {
				return m.flashError(err)
			}
		}
		m.clampCursor()
		return m, nil

	case flashClearMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
			m.flashErr = false
		}
		return m, nil

	case searchDueMsg:
		m.filter.Search = m.search.Value()
		m.recompute()
		return m, waitFor(m.searchCh, searchDueMsg{})

	case storeChangeMsg:
		m.reloadFromStore()
		return m, waitFor(m.reloadCh, storeChangeMsg{})

	case tea.MouseMsg:
		if m.page != pageReflections {
			return m.updateAreaMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text entry modes swallow everything except their own exits.
	if m.adding || m.editing {
		return m.updateInput(msg)
	}
	if m.page == pageReflections {
		return m.updateReflectionsKeys(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.page = (m.page + 1) % 4
		m.cursor = 0
		return m, nil
	case "shift+tab":
		m.page = (m.page + 3) % 4
		m.cursor = 0
		return m, nil
	case "1", "2", "3", "4":
		m.page = page(int(msg.String()[0] - '1'))
		m.cursor = 0
		return m, nil
	}
	return m.updateAreaKeys(msg)
}

// reloadFromStore rebuilds collections and the log from the persisted
// snapshots after an external change, keeping an open inline editor alive
// when its item survived.
func (m *App) reloadFromStore() {
	for _, area := range model.Areas() {
		c, err := collection.Load(m.kv, area, m.cfg.SeedItems(area),
			collection.WithOnCompleted(m.rec.record))
		if err != nil {
			continue
		}
		m.cols[area] = c
	}
	if log, err := reflections.LoadLog(m.kv); err == nil {
		m.log = log
	}
	if m.editing {
		if _, ok := m.current().Get(m.editID); !ok {
			m.editing = false
			m.editID = ""
			m.input.Blur()
			m.input.SetValue("")
		}
	}
	m.rec.take() // reloads never celebrate
	m.clampCursor()
	m.recompute()
}

func (m *App) recompute() {
	m.results = reflections.Apply(m.log.Entries(), m.filter, time.Now())
	if m.page == pageReflections {
		m.clampCursor()
	}
}

func (m *App) clampCursor() {
	max := 0
	if m.page == pageReflections {
		max = len(m.results) - 1
	} else if c := m.current(); c != nil {
		max = c.Len() - 1
	}
	if max < 0 {
		max = 0
	}
	if m.cursor > max {
		m.cursor = max
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m App) setFlash(text string, isErr bool) (App, tea.Cmd) {
	m.flash = text
	m.flashErr = isErr
	m.flashSeq++
	seq := m.flashSeq
	return m, tea.Tick(flashTTL, func(time.Time) tea.Msg { return flashClearMsg{seq: seq} })
}

func (m App) flashError(err error) (tea.Model, tea.Cmd) {
	mm, cmd := m.setFlash(err.Error(), true)
	return mm, cmd
}

// celebrate turns a recorded completion hook firing into a flash.
func (m App) celebrate() (App, tea.Cmd) {
	area, ok := m.rec.take()
	if !ok {
		return m, nil
	}
	return m.setFlash(fmt.Sprintf("🏅 ¡Meta de %s completada!", area.Title()), false)
}
