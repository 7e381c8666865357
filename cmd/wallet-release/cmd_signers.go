package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ochairo/wallet-release/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/wallet-release/internal/domain-orchestrators"
	"github.com/ochairo/wallet-release/internal/domain/entities"
)

type signersOptions struct {
	versions       versionFlags
	dist           string
	defaultSigners []string
	inspect        bool
	report         bool
	sumsPath       string
	asJSON         bool
}

func createSignersCommand(a *app) *cobra.Command {
	opts := &signersOptions{}

	cmd := &cobra.Command{
		Use:   "signers",
		Short: "Determine which identities signed every release artifact",
		Long: `Scans the distribution directory for detached signatures named
<artifact>.<identity>.asc and prints the release signer list: the default
signers first, then every other identity that signed exactly the expected
artifact set.

Signatures are matched by filename only. --inspect reads issuer metadata
from each signature packet for the report; it does not verify anything.`,
		Example: `  wallet-release signers --config release.yml
  wallet-release signers --dist dist --version 4.5.0 --default-signer ThomasV
  wallet-release signers --config release.yml --inspect --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)

			finder := gateways.NewArtifactFinder()
			orch := orchestrators.NewReleaseOrchestrator(
				finder,
				gateways.NewSignatureInspector(),
				gateways.NewChecksumVerifier(),
				a.logger,
			)

			result, err := orch.Run(cmd.Context(), cfg, orchestrators.ReleaseOptions{
				Inspect:  opts.inspect,
				SumsPath: opts.sumsPath,
			})
			if err != nil {
				return err
			}

			if opts.asJSON {
				return writeSignersJSON(cmd.OutOrStdout(), cfg, result)
			}
			writeSignersText(cmd.OutOrStdout(), result, opts.report)
			return nil
		},
	}

	opts.versions.register(cmd)
	cmd.Flags().StringVar(&opts.dist, "dist", "", "Distribution directory (overrides config dist_dir)")
	cmd.Flags().StringSliceVar(&opts.defaultSigners, "default-signer", nil,
		"Default signer identity, repeatable (overrides config default_signers)")
	cmd.Flags().BoolVar(&opts.inspect, "inspect", false, "Read issuer metadata from each signature")
	cmd.Flags().BoolVar(&opts.report, "report", false, "Print per-identity coverage")
	cmd.Flags().StringVar(&opts.sumsPath, "sums", "", "Also write SHA256 sums of the artifacts to this file")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the result as JSON")

	return cmd
}

func (o *signersOptions) apply(cmd *cobra.Command, cfg *entities.ReleaseConfig) {
	o.versions.apply(cmd, cfg)
	if cmd.Flags().Changed("dist") {
		cfg.DistDir = o.dist
	}
	if cmd.Flags().Changed("default-signer") {
		cfg.DefaultSigners = o.defaultSigners
	}
	if cfg.DistDir == "" {
		cfg.DistDir = "dist"
	}
}

func writeSignersText(w io.Writer, result *orchestrators.ReleaseResult, report bool) {
	for _, signer := range result.Signers.Signers {
		fmt.Fprintln(w, signer)
	}

	if report {
		fmt.Fprintln(w)
		for _, r := range result.Signers.Reports {
			status := "incomplete"
			switch {
			case r.Default:
				status = "default"
			case r.Complete:
				status = "promoted"
			}
			fmt.Fprintf(w, "%s: %d/%d signed (%s)\n", r.Signer, r.Signed, len(result.Manifest), status)
			if len(r.Missing) > 0 {
				fmt.Fprintf(w, "  missing: %s\n", strings.Join(r.Missing, ", "))
			}
			if len(r.Extra) > 0 {
				fmt.Fprintf(w, "  extra: %s\n", strings.Join(r.Extra, ", "))
			}
		}
		for _, r := range result.Signers.Rejected {
			fmt.Fprintf(w, "ignored %s: %v\n", r.Filename, r.Reason)
		}
	}

	for _, sig := range result.Signatures {
		if sig.ParseError != "" {
			fmt.Fprintf(w, "%s: unparseable (%s)\n", sig.Filename, sig.ParseError)
			continue
		}
		fmt.Fprintf(w, "%s: issuer %s created %s\n", sig.Filename, sig.IssuerKeyID,
			time.Unix(sig.CreatedUnix, 0).UTC().Format(time.RFC3339))
	}
}

type signersJSON struct {
	Version    string          `json:"version"`
	Signers    []signerJSON    `json:"signers"`
	Promoted   []string        `json:"promoted"`
	Reports    []reportJSON    `json:"reports"`
	Rejected   []rejectedJSON  `json:"rejected,omitempty"`
	Signatures []signatureJSON `json:"signatures,omitempty"`
}

type signerJSON struct {
	Identity    string `json:"identity"`
	DisplayName string `json:"display_name"`
}

type reportJSON struct {
	Signer   string   `json:"signer"`
	Signed   int      `json:"signed"`
	Missing  []string `json:"missing,omitempty"`
	Extra    []string `json:"extra,omitempty"`
	Complete bool     `json:"complete"`
	Default  bool     `json:"default"`
}

type rejectedJSON struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

type signatureJSON struct {
	Filename    string `json:"filename"`
	IssuerKeyID string `json:"issuer_key_id,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
	Created     string `json:"created,omitempty"`
	Armored     bool   `json:"armored"`
	ParseError  string `json:"parse_error,omitempty"`
}

func writeSignersJSON(w io.Writer, cfg *entities.ReleaseConfig, result *orchestrators.ReleaseResult) error {
	out := signersJSON{
		Version:  cfg.Version,
		Signers:  []signerJSON{},
		Promoted: []string{},
		Reports:  []reportJSON{},
	}
	for _, s := range result.Signers.Signers {
		out.Signers = append(out.Signers, signerJSON{Identity: s, DisplayName: cfg.DisplayName(s)})
	}
	out.Promoted = append(out.Promoted, result.Signers.Promoted...)
	for _, r := range result.Signers.Reports {
		out.Reports = append(out.Reports, reportJSON(r))
	}
	for _, r := range result.Signers.Rejected {
		out.Rejected = append(out.Rejected, rejectedJSON{Filename: r.Filename, Reason: r.Reason.Error()})
	}
	for _, sig := range result.Signatures {
		s := signatureJSON{
			Filename:    sig.Filename,
			IssuerKeyID: sig.IssuerKeyID,
			Fingerprint: sig.Fingerprint,
			Armored:     sig.Armored,
			ParseError:  sig.ParseError,
		}
		if sig.CreatedUnix != 0 {
			s.Created = time.Unix(sig.CreatedUnix, 0).UTC().Format(time.RFC3339)
		}
		out.Signatures = append(out.Signatures, s)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
