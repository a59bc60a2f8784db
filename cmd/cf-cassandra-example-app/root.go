package main

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cfcassandra "github.com/JCL38-ORANGE/cf-cassandra-example-app"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/contrib/logging/gokit"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/contrib/metrics/vm"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/internal/config"
)

// Version is the application version.
const Version = "0.1.0"

// app holds the state shared by all subcommands of one invocation.
type app struct {
	v         *viper.Viper
	cfg       *config.Config
	logger    *gokit.Logger
	collector *vm.Collector
	client    *cfcassandra.Client

	// extra options are appended after the configured ones
	extra []cfcassandra.Option
}

func newRootCmd(extra ...cfcassandra.Option) *cobra.Command {
	a := &app{
		v:     config.New(),
		extra: extra,
	}

	root := &cobra.Command{
		Use:   "cf-cassandra-example-app",
		Short: "Cassandra backed key-value store",
		Long: fmt.Sprintf(`cf-cassandra-example-app (v%s)

Stores string values by key in Cassandra tables. Connection details come from
flags, CFKV_<FLAG> environment variables, .env files or the Cloud Foundry
VCAP_SERVICES binding, in that order of precedence.`, Version),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
	}

	config.AddConnectionFlags(root.PersistentFlags())

	root.AddCommand(newVersionCmd())
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newKVCmds(a)...)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		// version needs no configuration
		PersistentPreRun:  func(*cobra.Command, []string) {},
		PersistentPostRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cf-cassandra-example-app v%s\n", Version)
		},
	}
}

// setup resolves the configuration and builds the client. The cluster is
// contacted lazily by the first operation.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger, err = gokit.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}

	a.collector = vm.New(
		vm.WithMetricsSet(metrics.NewSet()),
		vm.WithConnectedFunc(func() bool {
			return a.client != nil && a.client.Connected()
		}),
	)

	opts, err := cfg.ClientOptions(append([]cfcassandra.Option{
		cfcassandra.WithLogger(a.logger),
		cfcassandra.WithMetrics(a.collector),
	}, a.extra...)...)
	if err != nil {
		return err
	}

	a.client, err = cfcassandra.NewClient(cfg.Details, opts...)

	return err
}

func (a *app) teardown(*cobra.Command, []string) {
	if a.client != nil {
		a.client.Close()
	}
}
