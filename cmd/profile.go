package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptly/internal/engine"
	"github.com/abhisek/adaptly/internal/store"
	"github.com/abhisek/adaptly/internal/ui/theme"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change the learner profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the learner profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.svc.Profile(cmd.Context(), learnerID(cmd))
			if err != nil {
				return err
			}
			if l == nil {
				fmt.Fprintf(out(cmd), "No profile for %s yet. Set one with 'adaptly profile set'.\n", learnerID(cmd))
				return nil
			}
			printProfile(cmd, l)
			return nil
		},
	}

	var (
		name, style, method, energy string
		age, minutes                int
		interests                   []string
	)
	set := &cobra.Command{
		Use:     "set",
		Short:   "Change profile fields; only the flags given are updated",
		Example: "  adaptly profile set --name Ana --age 9 --interests pizza,space --energy low --minutes 10",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			var u engine.ProfileUpdate
			if f.Changed("name") {
				u.DisplayName = &name
			}
			if f.Changed("age") {
				u.Age = &age
			}
			if f.Changed("style") {
				u.LearningStyle = &style
			}
			if f.Changed("interests") {
				u.Interests = append([]string{}, interests...)
			}
			if f.Changed("method") {
				u.PreferredMethod = &method
			}
			if f.Changed("energy") {
				u.EnergyLevel = &energy
			}
			if f.Changed("minutes") {
				u.TimeAvailableMinutes = &minutes
			}

			l, err := a.svc.UpdateProfile(cmd.Context(), learnerID(cmd), u)
			if err != nil {
				return err
			}
			printProfile(cmd, l)
			return nil
		},
	}
	f := set.Flags()
	f.StringVar(&name, "name", "", "Display name used in messages")
	f.IntVar(&age, "age", 0, "Age in years")
	f.StringVar(&style, "style", "", "Learning style, e.g. visual")
	f.StringSliceVar(&interests, "interests", nil, "Comma-separated interests")
	f.StringVar(&method, "method", "", "Preferred method: direct, game, discovery")
	f.StringVar(&energy, "energy", "", "Energy level: low, medium, high")
	f.IntVar(&minutes, "minutes", 0, "Minutes available per session (0 clears)")

	cmd.AddCommand(show, set)
	return cmd
}

func printProfile(cmd *cobra.Command, l *store.Learner) {
	w := out(cmd)
	fmt.Fprintln(w, theme.Title.Render(l.ID))
	fmt.Fprintln(w, theme.Field("Name", orDash(l.DisplayName)))
	age := "-"
	if l.Age > 0 {
		age = fmt.Sprint(l.Age)
	}
	fmt.Fprintln(w, theme.Field("Age", age))
	fmt.Fprintln(w, theme.Field("Learning style", orDash(l.LearningStyle)))
	fmt.Fprintln(w, theme.Field("Interests", orDash(strings.Join(l.Interests, ", "))))
	fmt.Fprintln(w, theme.Field("Preferred method", orDash(l.PreferredMethod)))
	fmt.Fprintln(w, theme.Field("Energy", orDash(l.EnergyLevel)))
	budget := "-"
	if l.TimeAvailableMinutes != nil {
		budget = fmt.Sprintf("%d min", *l.TimeAvailableMinutes)
	}
	fmt.Fprintln(w, theme.Field("Time available", budget))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
