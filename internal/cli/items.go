package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"vida/internal/collection"
	"vida/internal/model"
	"vida/internal/ui"
	"vida/internal/view"
)

func (a *App) loadCollection(areaFlag string) (*collection.Collection, error) {
	area, err := model.ParseArea(areaFlag)
	if err != nil {
		return nil, err
	}
	return collection.Load(a.kv, area, a.cfg.SeedItems(area),
		collection.WithOnCompleted(func(ar model.Area) {
			ui.Ok(fmt.Sprintf("¡Meta completada! Medalla de %s 🏅", ar.Title()))
		}),
	)
}

func areaFlag(cmd *cobra.Command) *string {
	return cmd.Flags().StringP("area", "a", string(model.AreaPhysical), "life area (fisica|financiera|familia)")
}

func newAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a goal to an area (newest first)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
	}
	area := areaFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		c, err := app.loadCollection(*area)
		if err != nil {
			return err
		}
		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			return fmt.Errorf("add: empty text")
		}
		before := c.Len()
		if err := c.Add(text); err != nil {
			return err
		}
		if c.Len() == before {
			return fmt.Errorf("add: empty text")
		}
		ui.Ok("added")
		return nil
	}
	return cmd
}

func newLsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List an area's goals",
	}
	area := areaFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		c, err := app.loadCollection(*area)
		if err != nil {
			return err
		}
		rows := view.Project(c.Items(), "", c.PendingRemoval)
		lines := make([]string, 0, len(rows)+2)
		lines = append(lines, ui.TitleStyle.Render(c.Area().Title()))

		done := 0
		for i, r := range rows {
			if r.Placeholder {
				lines = append(lines, ui.MutedStyle.Render("  (sin metas todavía — `vida add`)"))
				continue
			}
			box := ui.MutedStyle.Render(ui.BoxUnchecked)
			text := r.Text
			if r.Completed {
				done++
				box = ui.SuccessStyle.Render(ui.BoxChecked)
				text = ui.DoneStyle.Render(text)
			}
			line := fmt.Sprintf("%2d %s %s", i+1, box, text)
			if r.Time != "" {
				line += " " + ui.MutedStyle.Render(r.Time)
			}
			lines = append(lines, line)
		}
		if len(rows) > 0 && !rows[0].Placeholder {
			lines = append(lines, ui.MutedStyle.Render(ui.ProgressBar(done, len(rows), 28)))
		}
		fmt.Println(ui.Panel(lines))
		return nil
	}
	return cmd
}

// resolveIndex maps a 1-based user index to an item id.
func resolveIndex(c *collection.Collection, arg string) (string, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return "", fmt.Errorf("not a number: %s", arg)
	}
	if n < 1 || n > c.Len() {
		return "", fmt.Errorf("index out of range: have %d, got %d", c.Len(), n)
	}
	return c.IDs()[n-1], nil
}

func newDoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle completion for the goal at a 1-based index",
		Args:  usageArgs(cobra.ExactArgs(1)),
	}
	area := areaFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		c, err := app.loadCollection(*area)
		if err != nil {
			return err
		}
		id, err := resolveIndex(c, args[0])
		if err != nil {
			return err
		}
		if err := c.Toggle(id); err != nil {
			return err
		}
		ui.Ok("toggled")
		return nil
	}
	return cmd
}

func newRmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove the goal at a 1-based index",
		Args:  usageArgs(cobra.ExactArgs(1)),
	}
	area := areaFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		c, err := app.loadCollection(*area)
		if err != nil {
			return err
		}
		id, err := resolveIndex(c, args[0])
		if err != nil {
			return err
		}
		if err := c.Delete(id); err != nil {
			return err
		}
		ui.Ok("removed")
		return nil
	}
	return cmd
}
