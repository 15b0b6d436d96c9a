package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/clever-forecast/internal/teams"
)

var teamsJSON bool

func init() {
	teamsCmd.Flags().BoolVar(&teamsJSON, "json", false, "Print profiles as JSON")
	teamsCmd.AddCommand(resolveCmd)
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the built-in team catalogue",
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles := teams.NewResolver(teams.DefaultCatalogue()).Teams()
		if teamsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(profiles)
		}
		renderTeams(os.Stdout, profiles)
		return nil
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve NAME",
	Short: "Show which profile a free-text team name resolves to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver := teams.NewResolver(teams.DefaultCatalogue(), teams.WithLogger(log))
		profile, err := resolver.Resolve(args[0])
		if err != nil {
			synthetic := teams.Synthesize(args[0], 0)
			fmt.Printf("%q is not in the catalogue; synthesized %s (elo %.0f)\n", args[0], synthetic.Name, synthetic.Elo)
			return nil
		}
		fmt.Printf("%q -> %s (%s, form %s)\n", args[0], profile.Name, profile.Key, resolver.ResolveForm(profile.Key))
		return nil
	},
}
