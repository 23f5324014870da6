package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"vida/internal/dragdrop"
	"vida/internal/ui"
	"vida/internal/view"
)

// contentStartY is the row where list items begin: tab bar + stats line.
const contentStartY = 2

// rows returns the current page's projection in display order. During a
// drag the presentation follows previewIDs; the collection itself is only
// reordered on drop.
func (m App) rows() []view.Row {
	c := m.current()
	if c == nil {
		return nil
	}
	editID := ""
	if m.editing {
		editID = m.editID
	}
	projected := view.Project(c.Items(), editID, c.PendingRemoval)
	if !m.dragging || len(m.previewIDs) != len(projected) {
		return projected
	}
	byID := make(map[string]view.Row, len(projected))
	for _, r := range projected {
		byID[r.ID] = r
	}
	out := make([]view.Row, 0, len(projected))
	for _, id := range m.previewIDs {
		if r, ok := byID[id]; ok {
			out = append(out, r)
		}
	}
	return out
}

func (m App) updateAreaKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.current()
	rows := m.rows()

	rowID := func() (string, bool) {
		if m.cursor < 0 || m.cursor >= len(rows) || rows[m.cursor].Placeholder {
			return "", false
		}
		return rows[m.cursor].ID, true
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}

	case " ":
		if id, ok := rowID(); ok {
			if err := c.Toggle(id); err != nil {
				return m.flashError(err)
			}
			mm, cmd := m.celebrate()
			return mm, cmd
		}

	case "a":
		m.adding = true
		m.input.SetValue("")
		m.input.Placeholder = "Nueva meta..."
		m.input.Focus()

	case "e":
		if id, ok := rowID(); ok {
			it, found := c.Get(id)
			if !found {
				return m, nil
			}
			m.editing = true
			m.editID = id
			m.input.SetValue(it.Text)
			m.input.CursorEnd()
			m.input.Placeholder = "Editar meta..."
			m.input.Focus()
		}

	case "d":
		if id, ok := rowID(); ok && !c.PendingRemoval(id) {
			gen, marked := c.MarkForRemoval(id)
			if !marked {
				return m, nil
			}
			area := c.Area()
			return m, tea.Tick(removalDelay, func(time.Time) tea.Msg {
				return removalDueMsg{area: area, id: id, gen: gen}
			})
		}

	case "u":
		if id, ok := rowID(); ok && c.PendingRemoval(id) {
			c.CancelRemoval(id)
		}

	case "y":
		if id, ok := rowID(); ok {
			if it, found := c.Get(id); found {
				if err := clipboard.WriteAll(it.Text); err != nil {
					return m.flashError(err)
				}
				mm, cmd := m.setFlash("copiado al portapapeles", false)
				return mm, cmd
			}
		}

	case "K", "shift+up":
		return m.moveRow(-1)
	case "J", "shift+down":
		return m.moveRow(1)
	}
	return m, nil
}

// moveRow is the keyboard variant of drag reorder: swap with a neighbor and
// commit the read-back order at once.
func (m App) moveRow(delta int) (tea.Model, tea.Cmd) {
	c := m.current()
	ids := c.IDs()
	i := m.cursor
	j := i + delta
	if i < 0 || i >= len(ids) || j < 0 || j >= len(ids) {
		return m, nil
	}
	ids[i], ids[j] = ids[j], ids[i]
	if err := c.Reorder(ids); err != nil {
		return m.flashError(err)
	}
	m.cursor = j
	return m, nil
}

func (m App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.current()
	switch msg.String() {
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if m.adding {
			if text == "" {
				mm, cmd := m.setFlash("la meta no puede estar vacía", true)
				return mm, cmd
			}
			if err := c.Add(text); err != nil {
				return m.flashError(err)
			}
			m.cursor = 0
		} else if m.editing {
			// Empty commits discard the edit; edit mode always exits.
			if err := c.Edit(m.editID, text); err != nil {
				return m.flashError(err)
			}
		}
		m.exitInput()
		return m, nil
	case "esc":
		m.exitInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *App) exitInput() {
	m.adding = false
	m.editing = false
	m.editID = ""
	m.input.SetValue("")
	m.input.Blur()
}

func (m App) updateAreaMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	c := m.current()
	rows := m.rows()

	rowAt := func(y int) (int, bool) {
		i := y - contentStartY
		if i < 0 || i >= len(rows) || rows[i].Placeholder {
			return 0, false
		}
		return i, true
	}

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if i, ok := rowAt(msg.Y); ok {
			m.cursor = i
			m.dragging = true
			m.dragID = rows[i].ID
			m.previewIDs = c.IDs()
		}

	case msg.Action == tea.MouseActionMotion && m.dragging:
		boxes := make([]dragdrop.Box, 0, len(rows))
		for i, r := range rows {
			if r.ID == m.dragID {
				continue
			}
			boxes = append(boxes, dragdrop.Box{ID: r.ID, Top: contentStartY + i, Height: 1})
		}
		anchor, ok := dragdrop.InsertBefore(boxes, msg.Y)
		m.previewIDs = dragdrop.Reordered(m.previewIDs, m.dragID, anchor, !ok)

	case msg.Action == tea.MouseActionRelease:
		// The marker is cleared unconditionally, anchor or not.
		if m.dragging {
			if err := c.Reorder(m.previewIDs); err != nil {
				m.dragging = false
				m.dragID = ""
				m.previewIDs = nil
				return m.flashError(err)
			}
		}
		m.dragging = false
		m.dragID = ""
		m.previewIDs = nil
	}
	return m, nil
}

func (m App) viewArea() string {
	rows := m.rows()

	var b strings.Builder
	b.WriteString(m.viewTabs())
	b.WriteByte('\n')

	done := 0
	for _, r := range rows {
		if r.Completed {
			done++
		}
	}
	total := len(rows)
	if total == 1 && rows[0].Placeholder {
		total = 0
	}
	b.WriteString(fmt.Sprintf("%s %d  %s %d  %s\n",
		ui.SuccessStyle.Render("✔"), done,
		ui.PendingStyle.Render("•"), total-done,
		ui.MutedStyle.Render(ui.ProgressBar(done, total, 20)),
	))

	width := m.width
	if width <= 0 {
		width = 80
	}
	for i, r := range rows {
		b.WriteString(m.renderRow(i, r, width))
		b.WriteByte('\n')
	}

	if m.adding || m.editing {
		title := "Añadir meta"
		if m.editing {
			title = "Editar meta"
		}
		b.WriteByte('\n')
		b.WriteString(ui.Panel([]string{title, m.input.View()}))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(m.viewFooter("espacio marcar · a añadir · e editar · d borrar · u deshacer · arrastra o J/K ordenar · y copiar · tab página"))
	return b.String()
}

func (m App) renderRow(i int, r view.Row, width int) string {
	if r.Placeholder {
		return ui.MutedStyle.Render("  (sin metas todavía — pulsa a)")
	}

	prefix := "  "
	if i == m.cursor && !m.dragging {
		prefix = ui.SelectedStyle.Render("> ")
	}
	if m.dragging && r.ID == m.dragID {
		prefix = ui.AccentStyle.Render("⇅ ")
	}

	if r.Editing {
		return prefix + m.input.View()
	}

	box := ui.MutedStyle.Render(ui.BoxUnchecked)
	text := ui.Truncate(r.Text, width-8)
	switch {
	case r.PendingRemoval:
		box = ui.FadingStyle.Render("✖")
		text = ui.FadingStyle.Render(text + "  (u para deshacer)")
	case r.Completed:
		box = ui.SuccessStyle.Render(ui.BoxChecked)
		text = ui.DoneStyle.Render(text)
	}
	line := fmt.Sprintf("%s%s %s", prefix, box, text)
	if r.Time != "" {
		line += " " + ui.MutedStyle.Render(r.Time)
	}
	return line
}
