package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/ochairo/wallet-release/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/wallet-release/internal/domain-orchestrators"
	"github.com/ochairo/wallet-release/internal/domain/entities"
	"github.com/ochairo/wallet-release/internal/external-adapters/page"
)

var kindTitles = map[entities.ArtifactKind]string{
	entities.KindTarball:        "Python tarball",
	entities.KindSourceOnly:     "Source-only tarball",
	entities.KindAppImage:       "Linux AppImage",
	entities.KindMacOSImage:     "macOS",
	entities.KindWinInstaller:   "Windows standalone executable",
	entities.KindWinSetup:       "Windows installer",
	entities.KindWinPortable:    "Windows portable executable",
	entities.KindAndroidARM64:   "Android (arm64-v8a)",
	entities.KindAndroidARMEABI: "Android (armeabi-v7a)",
}

func createPageCommand(a *app) *cobra.Command {
	var (
		versions     versionFlags
		dist         string
		out          string
		templatePath string
	)

	cmd := &cobra.Command{
		Use:   "page",
		Short: "Render the download page of a release",
		Long: `Runs the artifact check and signer detection, then renders an HTML
page linking every artifact and its signatures. Signer display names from
the config are used for labels only.`,
		Example: `  wallet-release page --config release.yml --out index.html`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			versions.apply(cmd, cfg)
			if cmd.Flags().Changed("dist") {
				cfg.DistDir = dist
			}
			if cfg.DistDir == "" {
				cfg.DistDir = "dist"
			}

			orch := orchestrators.NewReleaseOrchestrator(gateways.NewArtifactFinder(), nil, nil, a.logger)
			result, err := orch.Run(cmd.Context(), cfg, orchestrators.ReleaseOptions{})
			if err != nil {
				return err
			}

			renderer := page.NewRenderer()
			if templatePath != "" {
				renderer, err = page.NewRendererFromFile(templatePath)
				if err != nil {
					return err
				}
			}

			data, err := buildPageData(cfg, result)
			if err != nil {
				return err
			}
			if err := renderer.RenderFile(out, data); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d artifacts, %d signers)\n",
				out, len(data.Downloads), len(data.Signers))
			return nil
		},
	}

	versions.register(cmd)
	cmd.Flags().StringVar(&dist, "dist", "", "Distribution directory (overrides config dist_dir)")
	cmd.Flags().StringVar(&out, "out", "index.html", "Output file")
	cmd.Flags().StringVar(&templatePath, "template", "", "Custom html/template file")

	return cmd
}

// buildPageData links every artifact and the signatures of the release signers that cover it
func buildPageData(cfg *entities.ReleaseConfig, result *orchestrators.ReleaseResult) (*page.Data, error) {
	data := &page.Data{Version: cfg.Version}

	for _, signer := range result.Signers.Signers {
		data.Signers = append(data.Signers, cfg.DisplayName(signer))
	}

	for _, kind := range result.Manifest.Kinds() {
		filename := result.Manifest.Filename(kind)
		link, err := downloadURL(cfg.DownloadBaseURL, cfg.Version, filename)
		if err != nil {
			return nil, err
		}

		download := page.Download{
			Title:    kindTitles[kind],
			Filename: filename,
			URL:      link,
		}
		for _, signer := range result.Signers.Signers {
			if _, ok := result.Signers.Coverage.Files(signer)[filename]; !ok {
				continue
			}
			sigURL, err := downloadURL(cfg.DownloadBaseURL, cfg.Version, filename+"."+signer+".asc")
			if err != nil {
				return nil, err
			}
			download.Signatures = append(download.Signatures, page.Signature{
				Label: cfg.DisplayName(signer),
				URL:   sigURL,
			})
		}
		data.Downloads = append(data.Downloads, download)
	}

	return data, nil
}

// downloadURL joins base/version/filename; an empty base yields a relative link
func downloadURL(base, version, filename string) (string, error) {
	if base == "" {
		return url.PathEscape(filename), nil
	}
	link, err := url.JoinPath(base, version, filename)
	if err != nil {
		return "", fmt.Errorf("invalid download base URL %q: %w", base, err)
	}
	return link, nil
}
