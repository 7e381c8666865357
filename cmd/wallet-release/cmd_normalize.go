package main

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ochairo/wallet-release/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/wallet-release/internal/domain-orchestrators"
	"github.com/ochairo/wallet-release/internal/domain/entities"
)

func createNormalizeCommand(a *app) *cobra.Command {
	var (
		versions versionFlags
		dist     string
		globs    []string
		workers  int
		progress bool
	)

	cmd := &cobra.Command{
		Use:   "normalize [FILE...]",
		Short: "Pad Windows executables and recompute their PE checksum",
		Long: `Pads each PE image to an 8-byte boundary and rewrites the optional
header checksum, so independently built executables come out byte-identical.
Files are replaced atomically; a file that is not a valid PE image is left
untouched and reported.

Without FILE arguments the Windows executables of the release in --dist are
normalized, or the files matching --glob when given.`,
		Example: `  wallet-release normalize dist/electrum-4.5.0-setup.exe
  wallet-release normalize --dist dist --version 4.5.0
  wallet-release normalize --dist dist --glob 'electrum-*.exe' --workers 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			finder := gateways.NewArtifactFinder()
			normalizer := gateways.NewPENormalizer(a.logger, workers)
			orch := orchestrators.NewNormalizeOrchestrator(finder, normalizer, a.logger)

			paths := args
			switch {
			case len(paths) > 0:
			case len(globs) > 0:
				matches, err := finder.FindByGlob(distOrDefault(dist), globs...)
				if err != nil {
					return err
				}
				if len(matches) == 0 {
					return fmt.Errorf("no files in %s match %v", distOrDefault(dist), globs)
				}
				paths = matches
			default:
				cfg, err := a.loadConfig(cmd.Context())
				if err != nil {
					return err
				}
				versions.apply(cmd, cfg)
				if cmd.Flags().Changed("dist") || cfg.DistDir == "" {
					cfg.DistDir = distOrDefault(dist)
				}
				found, err := orch.WindowsPaths(cfg.DistDir, cfg.Version, cfg.PlatformVersions)
				if err != nil {
					return err
				}
				paths = found
			}

			if progress {
				bar := progressbar.NewOptions(len(paths),
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionSetDescription("normalizing"),
					progressbar.OptionSetWidth(40),
					progressbar.OptionShowCount(),
					progressbar.OptionThrottle(100*time.Millisecond),
				)
				normalizer.SetProgress(func(*entities.NormalizeResult) {
					_ = bar.Add(1)
				})
				defer func() {
					_ = bar.Finish()
					fmt.Fprintln(cmd.ErrOrStderr())
				}()
			}

			results, err := orch.NormalizePaths(cmd.Context(), paths)
			writeNormalizeResults(cmd.OutOrStdout(), results)
			return err
		},
	}

	versions.register(cmd)
	cmd.Flags().StringVar(&dist, "dist", "", "Distribution directory (default \"dist\")")
	cmd.Flags().StringSliceVar(&globs, "glob", nil, "Normalize files in --dist matching this pattern, repeatable")
	cmd.Flags().IntVar(&workers, "workers", 0, "Files normalized in parallel (default: number of CPUs)")
	cmd.Flags().BoolVar(&progress, "progress", false, "Show a progress bar on stderr")

	return cmd
}

func distOrDefault(dist string) string {
	if dist == "" {
		return "dist"
	}
	return dist
}

func writeNormalizeResults(w io.Writer, results []*entities.NormalizeResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range results {
		if r == nil {
			continue
		}
		name := filepath.Base(r.Path)
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\tFAILED\t%v\n", name, r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t0x%08x\t%s\n", name, r.PaddedSize, r.Checksum, r.SHA256)
	}
	_ = tw.Flush()
}
