package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ochairo/wallet-release/internal/domain-adapters/gateways"
	"github.com/ochairo/wallet-release/internal/domain/interfaces"
)

func createVerifyCommand(a *app) *cobra.Command {
	var (
		sumsPath string
		dist     string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Compare artifacts against a SHA256SUMS file from another build",
		Long: `Checks every file listed in a sha256sum-style file against the copy in
--dist. Use it after normalization to confirm that two independent builds
produced identical binaries.`,
		Example: `  wallet-release verify --sums other-builder/SHA256SUMS --dist dist`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			verifier := gateways.NewChecksumVerifier()

			sums, err := verifier.ReadSumsFile(sumsPath)
			if err != nil {
				return err
			}
			if len(sums) == 0 {
				return fmt.Errorf("no checksums in %s", sumsPath)
			}

			names := make([]string, 0, len(sums))
			for name := range sums {
				names = append(names, name)
			}
			sort.Strings(names)

			out := cmd.OutOrStdout()
			failed := 0
			for _, name := range names {
				if err := verifier.VerifyChecksum(cmd.Context(), filepath.Join(distOrDefault(dist), name), sums[name]); err != nil {
					failed++
					a.logger.Warn("checksum differs", interfaces.F("file", name), interfaces.F("error", err.Error()))
					fmt.Fprintf(out, "%s: FAILED\n", name)
					continue
				}
				fmt.Fprintf(out, "%s: OK\n", name)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files do not match %s", failed, len(names), sumsPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sumsPath, "sums", "SHA256SUMS", "Checksum file to compare against")
	cmd.Flags().StringVar(&dist, "dist", "", "Distribution directory (default \"dist\")")

	return cmd
}
