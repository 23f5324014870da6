package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vida/internal/assets"
	"vida/internal/sanitize"
	"vida/internal/ui"
)

func newAssetsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Track possessions and their replacement horizon",
	}
	cmd.AddCommand(newAssetsAddCmd(app))
	cmd.AddCommand(newAssetsLsCmd(app))
	cmd.AddCommand(newAssetsEditCmd(app))
	cmd.AddCommand(newAssetsRmCmd(app))
	return cmd
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...)
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// assetForm prompts for the missing fields. Validation runs inline, so a bad
// value re-prompts with what the user already typed instead of dropping it.
func assetForm(name, date *string) error {
	return newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nombre del bien").
				Value(name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return assets.ErrNameRequired
					}
					return nil
				}),
			huh.NewInput().
				Title("Fecha de compra (YYYY-MM-DD)").
				Value(date).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return assets.ErrDateRequired
					}
					if _, err := time.Parse(assets.DateLayout, s); err != nil {
						return assets.ErrBadDate
					}
					return nil
				}),
		),
	).Run()
}

func newAssetsAddCmd(app *App) *cobra.Command {
	var name, date string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register an asset (prompts for missing fields)",
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := assets.LoadTracker(app.kv)
			if err != nil {
				return err
			}
			if name == "" || date == "" {
				if err := assetForm(&name, &date); err != nil {
					return err
				}
			}
			a, err := tr.Add(name, date)
			if err != nil {
				return err
			}
			due, _ := assets.ReplacementDate(a.PurchaseDate)
			ui.Ok(fmt.Sprintf("added %s (reponer hacia %s)", a.Name, due))
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "asset name")
	cmd.Flags().StringVarP(&date, "date", "d", "", "purchase date (YYYY-MM-DD)")
	return cmd
}

func newAssetsLsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List assets with their derived replacement dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := assets.LoadTracker(app.kv)
			if err != nil {
				return err
			}
			list := tr.Assets()
			if len(list) == 0 {
				fmt.Println(ui.MutedStyle.Render("(no assets yet — `vida assets add`)"))
				return nil
			}
			lines := make([]string, 0, len(list)+1)
			lines = append(lines, ui.TitleStyle.Render("Bienes"))
			for _, a := range list {
				due, err := assets.ReplacementDate(a.PurchaseDate)
				if err != nil {
					due = "?"
				}
				lines = append(lines, fmt.Sprintf("%s  %s → %s  %s",
					ui.Truncate(sanitize.Clean(a.Name), 30),
					ui.MutedStyle.Render(a.PurchaseDate),
					ui.PendingStyle.Render("reponer "+due),
					ui.MutedStyle.Render(a.ID),
				))
			}
			fmt.Println(ui.Panel(lines))
			return nil
		},
	}
}

func newAssetsEditCmd(app *App) *cobra.Command {
	var name, date string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an asset (re-prompts on invalid values)",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := assets.LoadTracker(app.kv)
			if err != nil {
				return err
			}
			cur, ok := tr.Get(args[0])
			if !ok {
				return fmt.Errorf("no asset with id %s", args[0])
			}
			if name == "" {
				name = cur.Name
			}
			if date == "" {
				date = cur.PurchaseDate
			}
			if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("date") {
				if err := assetForm(&name, &date); err != nil {
					return err
				}
			}
			if err := tr.Edit(cur.ID, name, date); err != nil {
				if errors.Is(err, assets.ErrNameRequired) || errors.Is(err, assets.ErrDateRequired) || errors.Is(err, assets.ErrBadDate) {
					return fmt.Errorf("edit kept the previous values: %w", err)
				}
				return err
			}
			ui.Ok("updated")
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "new name")
	cmd.Flags().StringVarP(&date, "date", "d", "", "new purchase date (YYYY-MM-DD)")
	return cmd
}

func newAssetsRmCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an asset (asks for confirmation)",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := assets.LoadTracker(app.kv)
			if err != nil {
				return err
			}
			a, ok := tr.Get(args[0])
			if !ok {
				return fmt.Errorf("no asset with id %s", args[0])
			}
			if !yes {
				confirmed := false
				form := newForm(huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("¿Eliminar %q?", a.Name)).
						Value(&confirmed).
						Affirmative("Sí, eliminar").
						Negative("No"),
				))
				if err := form.Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Println(ui.MutedStyle.Render("kept"))
					return nil
				}
			}
			if err := tr.Delete(a.ID); err != nil {
				return err
			}
			ui.Ok("removed")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
