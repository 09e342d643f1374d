package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptly/internal/rulepack"
	"github.com/abhisek/adaptly/internal/ui/theme"
)

func newRulesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage emotion rules and presentation candidates",
	}

	validate := &cobra.Command{
		Use:         "validate FILE",
		Short:       "Check a rule pack without importing it",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{skipStore: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			pack, err := rulepack.Load(args[0])
			if err != nil {
				return err
			}
			w := out(cmd)
			fmt.Fprintf(w, "%s: %d emotion rules, %d presentations\n",
				args[0], len(pack.EmotionRules), len(pack.Presentations))
			problems := pack.Problems()
			for _, p := range problems {
				fmt.Fprintln(w, theme.Warn.Render("  "+p.String()))
			}
			if len(problems) > 0 {
				return fmt.Errorf("%d rules can never match", len(problems))
			}
			fmt.Fprintln(w, theme.Good.Render("ok"))
			return nil
		},
	}

	imp := &cobra.Command{
		Use:   "import [FILE]",
		Short: "Import a rule pack (the built-in pack when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				pack *rulepack.Pack
				err  error
			)
			if len(args) == 1 {
				pack, err = rulepack.Load(args[0])
			} else {
				pack, err = rulepack.Default()
			}
			if err != nil {
				return err
			}

			res, err := a.svc.ImportRules(cmd.Context(), pack)
			if err != nil {
				return err
			}
			w := out(cmd)
			fmt.Fprintf(w, "Imported %d emotion rules and %d presentations.\n", res.EmotionRules, res.Presentations)
			if res.Problems > 0 {
				fmt.Fprintln(w, theme.Warn.Render(fmt.Sprintf("%d rules can never match; run 'adaptly rules validate' for details.", res.Problems)))
			}
			return nil
		},
	}

	cmd.AddCommand(validate, imp)
	return cmd
}
