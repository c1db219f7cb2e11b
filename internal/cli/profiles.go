package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vk/rspecgen/internal/app"
)

func newProfilesCommand(opts *rootOptions, logW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the profiles in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts, app.Config{}, logW)
			if err != nil {
				return err
			}

			defaultName := a.Catalog().Default().Name
			var rows [][]string
			for _, p := range a.Catalog().Profiles() {
				name := p.Name
				if name == defaultName {
					name += " *"
				}
				rows = append(rows, []string{
					name,
					string(p.Strategy.Kind()),
					fmt.Sprint(len(p.Schema.Definitions())),
					p.Description,
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"PROFILE", "STRATEGY", "PARAMETERS", "DESCRIPTION"}, rows))
			return nil
		},
	}
}
