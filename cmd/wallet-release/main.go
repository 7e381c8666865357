package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ochairo/wallet-release/internal/domain/entities"
	"github.com/ochairo/wallet-release/internal/domain/interfaces"
	"github.com/ochairo/wallet-release/internal/domain/interfaces/repositories"
	"github.com/ochairo/wallet-release/internal/external-adapters/yaml"
	"github.com/ochairo/wallet-release/internal/external-adapters/zaplog"
)

// configEnv names the default release config file
const configEnv = "WALLET_RELEASE_CONFIG"

// app holds state shared by all subcommands
type app struct {
	configPath string
	logLevel   string
	verbose    bool
	logger     interfaces.Logger
	configRepo repositories.ReleaseConfigRepository
}

func main() {
	root := createRootCommand()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func createRootCommand() *cobra.Command {
	a := &app{
		logger:     &interfaces.NoOpLogger{},
		configRepo: yaml.NewReleaseConfigRepository(),
	}

	root := &cobra.Command{
		Use:   "wallet-release",
		Short: "Release engineering for Electrum builds",
		Long: `wallet-release checks a distribution directory against the expected
release artifacts, determines which signers covered every artifact,
normalizes Windows executables for reproducible builds and renders the
download page.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupLogger(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if l, ok := a.logger.(*zaplog.Logger); ok {
				_ = l.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", os.Getenv(configEnv),
		"Release config file (default from $"+configEnv+")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"Log level: debug, info, warn, error")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false,
		"Enable debug logging")

	root.AddCommand(createManifestCommand(a))
	root.AddCommand(createSignersCommand(a))
	root.AddCommand(createNormalizeCommand(a))
	root.AddCommand(createPageCommand(a))
	root.AddCommand(createVerifyCommand(a))

	return root
}

// resolveLogLevel prefers an explicit --log-level over --verbose
func (a *app) resolveLogLevel() string {
	if a.logLevel != "" {
		return a.logLevel
	}
	if a.verbose {
		return "debug"
	}
	return "info"
}

func (a *app) setupLogger(_ *cobra.Command) error {
	logger, err := zaplog.New(a.resolveLogLevel())
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// loadConfig returns the release config named by --config, or an empty config when none is set
func (a *app) loadConfig(ctx context.Context) (*entities.ReleaseConfig, error) {
	if a.configPath == "" {
		return &entities.ReleaseConfig{}, nil
	}
	cfg, err := a.configRepo.Load(ctx, a.configPath)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("loaded release config",
		interfaces.F("path", a.configPath),
		interfaces.F("version", cfg.Version))
	return cfg, nil
}

// versionFlags are the version overrides shared by several subcommands
type versionFlags struct {
	version        string
	windowsVersion string
	macosVersion   string
	androidVersion string
}

func (v *versionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&v.version, "version", "", "Release version (overrides config)")
	cmd.Flags().StringVar(&v.windowsVersion, "windows-version", "", "Windows artifact version (defaults to --version)")
	cmd.Flags().StringVar(&v.macosVersion, "macos-version", "", "macOS artifact version (defaults to --version)")
	cmd.Flags().StringVar(&v.androidVersion, "android-version", "", "Android artifact version (defaults to --version)")
}

// apply overlays explicitly set flags onto cfg
func (v *versionFlags) apply(cmd *cobra.Command, cfg *entities.ReleaseConfig) {
	flags := cmd.Flags()
	if flags.Changed("version") {
		cfg.Version = v.version
	}
	if flags.Changed("windows-version") {
		cfg.PlatformVersions.Windows = v.windowsVersion
	}
	if flags.Changed("macos-version") {
		cfg.PlatformVersions.MacOS = v.macosVersion
	}
	if flags.Changed("android-version") {
		cfg.PlatformVersions.Android = v.androidVersion
	}
}
