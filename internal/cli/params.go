package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/rspecgen/internal/app"
	"github.com/vk/rspecgen/internal/params"
	"github.com/zclconf/go-cty/cty"
)

func newParamsCommand(opts *rootOptions, logW io.Writer) *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "params",
		Short: "List the parameters a profile accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts, app.Config{Profile: profile}, logW)
			if err != nil {
				return err
			}
			p, err := a.Profile()
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(p.Schema.Definitions()))
			for _, d := range p.Schema.Definitions() {
				rows = append(rows, []string{
					d.Name,
					d.Type.FriendlyName(),
					formatDefault(d.Default),
					formatLegal(d),
					fmt.Sprint(d.Advanced),
					d.Description,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %s\n", p.Name)
			fmt.Fprint(cmd.OutOrStdout(), renderTable(
				[]string{"NAME", "TYPE", "DEFAULT", "LEGAL VALUES", "ADVANCED", "DESCRIPTION"}, rows))
			return nil
		},
	}
	cmd.Flags().StringVarP(&profile, "profile", "p", "", "Profile to describe (default: first profile in the catalog).")
	return cmd
}

func formatDefault(v cty.Value) string {
	if v.Type().Equals(cty.String) {
		return v.AsString()
	}
	return params.FormatValue(v)
}

func formatLegal(d *params.Definition) string {
	if !d.IsEnum() {
		return "-"
	}
	parts := make([]string, len(d.Legal))
	for i, l := range d.Legal {
		if l.Label != "" {
			parts[i] = fmt.Sprintf("%s (%s)", l.Value, l.Label)
		} else {
			parts[i] = l.Value
		}
	}
	return strings.Join(parts, "\n")
}
