package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vida/internal/model"
	"vida/internal/reflections"
	"vida/internal/sanitize"
	"vida/internal/ui"
)

func newReflectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reflect",
		Short: "Write and browse the reflections journal",
	}
	cmd.AddCommand(newReflectAddCmd(app))
	cmd.AddCommand(newReflectLsCmd(app))
	cmd.AddCommand(newReflectRmCmd(app))
	return cmd
}

func newReflectAddCmd(app *App) *cobra.Command {
	var category, title, text, date string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a reflection entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := reflections.LoadLog(app.kv)
			if err != nil {
				return err
			}
			if !model.ValidReflectionCategory(category) {
				return fmt.Errorf("unknown category %q (want one of %v)", category, model.ReflectionCategories)
			}
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}
			before := len(l.Entries())
			if err := l.Add(category, title, text, date); err != nil {
				return err
			}
			if len(l.Entries()) == before {
				return fmt.Errorf("reflect add: title and text are required")
			}
			ui.Ok("reflection saved")
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "Personal", "category (Física|Financiera|Familia|Personal)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "entry title")
	cmd.Flags().StringVarP(&text, "text", "x", "", "entry body")
	cmd.Flags().StringVarP(&date, "date", "d", "", "entry date (YYYY-MM-DD, default today)")
	return cmd
}

func newReflectLsCmd(app *App) *cobra.Command {
	var search, category, rng, sortOrder string
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List reflections through the filter engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := reflections.LoadLog(app.kv)
			if err != nil {
				return err
			}
			f := reflections.Filter{
				Search:   search,
				Category: category,
				Range:    reflections.Range(rng),
				Sort:     reflections.Sort(sortOrder),
			}
			entries := reflections.Apply(l.Entries(), f, time.Now())
			if len(entries) == 0 {
				fmt.Println(ui.MutedStyle.Render("(no reflections match)"))
				return nil
			}
			lines := make([]string, 0, len(entries)*2)
			for _, e := range entries {
				head := fmt.Sprintf("%s %s  %s  %s",
					ui.AccentStyle.Render(e.Date),
					ui.PendingStyle.Render("["+e.Category+"]"),
					ui.TitleStyle.Render(sanitize.Clean(e.Title)),
					ui.MutedStyle.Render(e.ID),
				)
				lines = append(lines, head, "  "+ui.Truncate(sanitize.Clean(e.Text), 76))
			}
			fmt.Println(ui.Panel(lines))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "substring match on title or body")
	cmd.Flags().StringVarP(&category, "category", "c", reflections.CategoryAll, "category filter, or all")
	cmd.Flags().StringVarP(&rng, "range", "r", string(reflections.RangeAll), "today|week|month|all")
	cmd.Flags().StringVarP(&sortOrder, "sort", "o", string(reflections.SortDesc), "asc|desc")
	return cmd
}

func newReflectRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a reflection entry by id",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := reflections.LoadLog(app.kv)
			if err != nil {
				return err
			}
			if err := l.Delete(args[0]); err != nil {
				return err
			}
			ui.Ok("removed")
			return nil
		},
	}
}
