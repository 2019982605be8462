package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stratops/stratops/config"
	"github.com/stratops/stratops/sdk"
)

const defaultTimeout = 5 * time.Minute

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath     string
	network        string
	envFile        string
	logLevel       string
	timeout        time.Duration
	account        int
	ledger         bool
	derivationPath string
}

// env is resolved once per invocation before the subcommand runs.
type env struct {
	flags   *globalFlags
	cfg     *config.Config
	network config.Network
	logger  *zap.SugaredLogger
	cancel  context.CancelFunc
}

// Execute runs the stratops CLI with args and releases the command context afterwards.
func Execute(ctx context.Context, args []string, stdout io.Writer) error {
	cmd, e := buildRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	defer e.close()

	return cmd.ExecuteContext(ctx)
}

func buildRootCmd() (*cobra.Command, *env) {
	flags := &globalFlags{}
	e := &env{flags: flags}

	cmd := &cobra.Command{
		Use:           "stratops",
		Short:         "Operate timelocked yield farm strategies",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.load(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Path to a stratops.yaml merged over the built-in defaults")
	pf.StringVar(&flags.network, "network", "", "Network to connect to (defaults to default_network)")
	pf.StringVar(&flags.envFile, "env-file", ".env", "Dotenv file holding RPC URLs, keys and API keys")
	pf.StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.DurationVar(&flags.timeout, "timeout", defaultTimeout, "Deadline for the whole command including confirmations")
	pf.IntVar(&flags.account, "account", 0, "Index of the network account used to sign")
	pf.BoolVar(&flags.ledger, "ledger", false, "Sign with the first connected Ledger instead of a private key")
	pf.StringVar(&flags.derivationPath, "derivation-path", "m/44'/60'/0'/0/0", "Ledger derivation path")

	cmd.AddCommand(
		buildWriteTimelockCmd(e),
		buildPendingCmd(e),
		buildFarmDataCmd(e),
		buildTimelockBalancesCmd(e),
		buildSweepTokensCmd(e),
		buildMasterChefCmd(e),
		buildVerifyContractCmd(e),
	)

	return cmd, e
}

func (e *env) load(cmd *cobra.Command) error {
	logger, err := newLogger(e.flags.logLevel)
	if err != nil {
		return err
	}
	e.logger = logger

	if err := config.LoadEnv(e.flags.envFile); err != nil {
		return err
	}

	if e.cfg, err = config.Load(e.flags.configPath); err != nil {
		return err
	}
	if e.network, err = e.cfg.Network(e.flags.network); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(sdk.WithLogger(cmd.Context(), logger), e.flags.timeout)
	e.cancel = cancel
	cmd.SetContext(ctx)

	logger.Debugf("using network %s (chain %d, %s)", e.networkName(), e.network.ChainID, e.network.ChainName())

	return nil
}

func (e *env) close() {
	if e.cancel != nil {
		e.cancel()
	}
	if e.logger != nil {
		_ = e.logger.Sync()
	}
}

func (e *env) networkName() string {
	if e.flags.network != "" {
		return e.flags.network
	}

	return e.cfg.DefaultNetwork
}

func newLogger(level string) (*zap.SugaredLogger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.Sugar(), nil
}
