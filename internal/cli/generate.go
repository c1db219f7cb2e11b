package cli

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/vk/rspecgen/internal/app"
)

func newGenerateCommand(opts *rootOptions, logW io.Writer) *cobra.Command {
	var cfg app.Config

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compile a profile into a request document",
		Example: `  rspecgen generate --profile srsran-oran --set enable_ric_xapp=true
  rspecgen generate --params params.hcl --output request.xml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts, cfg, logW)
			if err != nil {
				return err
			}
			return a.Generate(cmd.Context(), cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfg.Profile, "profile", "p", "", "Profile to compile (default: first profile in the catalog).")
	f.StringVar(&cfg.ParamsFile, "params", "", "HCL file of parameter values, e.g. hardware_type = \"d740\".")
	f.StringArrayVar(&cfg.Set, "set", nil, "Set a parameter, name=value. Repeatable; overrides --params.")
	f.StringVarP(&cfg.Format, "format", "f", "", "Output format: rspec, yaml or json (default: from --output extension, else rspec).")
	f.StringVarP(&cfg.OutputPath, "output", "o", "", "Write the document to a file instead of stdout.")
	return cmd
}
