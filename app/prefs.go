package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portfolio-shell/psh/internal/prefs"
)

var prefDefaults = map[string]struct {
	key string
	def bool
}{
	"popup": {prefs.NoPopup, false},
	"theme": {prefs.DarkMode, true},
}

func newPrefsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change saved preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print saved preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPrefsStrict(opts)
			if err != nil {
				return err
			}
			defer store.Close()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s=%t\n", prefs.NoPopup, prefs.GetOr(store, prefs.NoPopup, false))
			fmt.Fprintf(out, "%s=%t\n", prefs.DarkMode, prefs.GetOr(store, prefs.DarkMode, true))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "toggle popup|theme",
		Short:     "Flip a preference",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"popup", "theme"},
		RunE: func(cmd *cobra.Command, args []string) error {
			p := prefDefaults[args[0]]
			store, err := openPrefsStrict(opts)
			if err != nil {
				return err
			}
			defer store.Close()
			v, err := prefs.Toggle(store, p.key, p.def)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s=%t\n", p.key, v)
			return nil
		},
	})
	return cmd
}

func openPrefsStrict(opts *options) (prefs.Store, error) {
	cfg, err := setup(opts)
	if err != nil {
		return nil, err
	}
	return prefs.Open(cfg.PrefsPath)
}
