package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ochairo/wallet-release/internal/domain/services"
)

func createManifestCommand(a *app) *cobra.Command {
	var (
		versions versionFlags
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Print the expected artifact filenames of a release",
		Example: `  wallet-release manifest --version 4.5.0
  wallet-release manifest --version 4.5.0 --windows-version 4.5.1
  wallet-release manifest --config release.yml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			versions.apply(cmd, cfg)

			if err := services.ValidateVersion(cfg.Version); err != nil {
				return err
			}
			if err := services.ValidatePlatformVersions(cfg.PlatformVersions); err != nil {
				return err
			}

			manifest := services.BuildManifest(cfg.Version, cfg.PlatformVersions)
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(manifest)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, kind := range manifest.Kinds() {
				fmt.Fprintf(tw, "%s\t%s\n", kind, manifest.Filename(kind))
			}
			return tw.Flush()
		},
	}

	versions.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the manifest as JSON")

	return cmd
}
