package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"vida/internal/model"
	"vida/internal/reflections"
	"vida/internal/sanitize"
	"vida/internal/ui"
)

func (m App) updateReflectionsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showDetail {
		switch msg.String() {
		case "esc", "q", "enter":
			m.showDetail = false
		}
		return m, nil
	}

	if m.searchFocused {
		switch msg.String() {
		case "enter", "esc":
			m.searchFocused = false
			m.search.Blur()
			if msg.String() == "esc" {
				m.search.SetValue("")
			}
			m.deb.Cancel()
			m.filter.Search = m.search.Value()
			m.recompute()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		// Coalesce keystrokes; the debouncer pokes searchCh after the
		// quiet period and Update recomputes on searchDueMsg.
		ch := m.searchCh
		m.deb.Schedule(func() {
			select {
			case ch <- struct{}{}:
			default:
			}
		})
		return m, cmd
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

	case "/":
		m.searchFocused = true
		m.search.Focus()
		return m, nil

	case "c":
		m.filter.Category = nextCategory(m.filter.Category)
		m.recompute()
	case "f":
		m.filter.Range = nextRange(m.filter.Range)
		m.recompute()
	case "o":
		if m.filter.Sort == reflections.SortDesc {
			m.filter.Sort = reflections.SortAsc
		} else {
			m.filter.Sort = reflections.SortDesc
		}
		m.recompute()

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.results)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor >= 0 && m.cursor < len(m.results) {
			m.showDetail = true
		}
	case "d":
		if m.cursor >= 0 && m.cursor < len(m.results) {
			if err := m.log.Delete(m.results[m.cursor].ID); err != nil {
				return m.flashError(err)
			}
			m.recompute()
			m.clampCursor()
		}
	}
	return m, nil
}

func nextCategory(cur string) string {
	cycle := append([]string{reflections.CategoryAll}, model.ReflectionCategories...)
	for i, c := range cycle {
		if c == cur {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return reflections.CategoryAll
}

func nextRange(cur reflections.Range) reflections.Range {
	switch cur {
	case reflections.RangeAll:
		return reflections.RangeToday
	case reflections.RangeToday:
		return reflections.RangeWeek
	case reflections.RangeWeek:
		return reflections.RangeMonth
	default:
		return reflections.RangeAll
	}
}

func (m App) viewReflections() string {
	var b strings.Builder
	b.WriteString(m.viewTabs())
	b.WriteByte('\n')

	b.WriteString(fmt.Sprintf("%s  %s  %s  %s\n",
		m.search.View(),
		ui.AccentStyle.Render("c:"+m.filter.Category),
		ui.AccentStyle.Render("f:"+string(m.filter.Range)),
		ui.AccentStyle.Render("o:"+string(m.filter.Sort)),
	))

	if m.showDetail && m.cursor >= 0 && m.cursor < len(m.results) {
		e := m.results[m.cursor]
		width := m.width - 4
		body := renderMarkdown(sanitize.Clean(e.Text), m.cfg.Theme, width)
		b.WriteString(ui.Panel([]string{
			ui.TitleStyle.Render(sanitize.Clean(e.Title)),
			ui.MutedStyle.Render(e.Date + "  [" + e.Category + "]"),
			"",
			body,
		}))
		b.WriteByte('\n')
		b.WriteString(m.viewFooter("esc volver"))
		return b.String()
	}

	if len(m.results) == 0 {
		b.WriteString(ui.MutedStyle.Render("  (ninguna reflexión coincide — `vida reflect add`)"))
		b.WriteByte('\n')
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	for i, e := range m.results {
		prefix := "  "
		if i == m.cursor {
			prefix = ui.SelectedStyle.Render("> ")
		}
		line := fmt.Sprintf("%s%s %s %s",
			prefix,
			ui.AccentStyle.Render(e.Date),
			ui.PendingStyle.Render("["+e.Category+"]"),
			ui.Truncate(sanitize.Clean(e.Title), width-30),
		)
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(m.viewFooter("/ buscar · c categoría · f rango · o orden · enter detalle · d borrar · tab página"))
	return b.String()
}

func (m App) viewTabs() string {
	labels := []string{
		model.AreaPhysical.Title(),
		model.AreaFinancial.Title(),
		model.AreaFamily.Title(),
		"Reflexiones",
	}
	parts := make([]string, len(labels))
	for i, l := range labels {
		if page(i) == m.page {
			parts[i] = ui.SelectedStyle.Render(" " + l + " ")
		} else {
			parts[i] = ui.MutedStyle.Render(" " + l + " ")
		}
	}
	return strings.Join(parts, "")
}

func (m App) viewFooter(help string) string {
	if m.flash != "" {
		if m.flashErr {
			return ui.ErrorStyle.Render(m.flash)
		}
		return ui.SuccessStyle.Render(m.flash)
	}
	return ui.HelpStyle.Render(help)
}

func (m App) View() string {
	if m.page == pageReflections {
		return m.viewReflections()
	}
	return m.viewArea()
}
