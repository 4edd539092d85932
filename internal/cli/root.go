package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prabalesh/sysmon/internal/collector"
	"github.com/prabalesh/sysmon/internal/config"
	"github.com/prabalesh/sysmon/internal/logger"
	"github.com/prabalesh/sysmon/internal/monitor"
	"github.com/prabalesh/sysmon/internal/series"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cliVersion   = "dev"
	cliBuildDate = "unknown"
	cliGitCommit = "unknown"
)

type RootCommand struct {
	cmd     *cobra.Command
	v       *viper.Viper
	cfg     *config.Config
	out     io.Writer
	logFile io.Closer

	// newSource builds the OS boundary; tests replace it.
	newSource func() collector.Source
}

func NewRootCommand() *RootCommand {
	root := &RootCommand{
		v:         viper.New(),
		out:       os.Stdout,
		newSource: collector.NewHostSource,
	}

	cmd := &cobra.Command{
		Use:   "sysmon",
		Short: "Terminal system monitor",
		Long: `sysmon samples CPU, memory, network, battery and socket state once per
interval and shows them as live text, charts and a connections table.

Run without a subcommand to open the full-screen monitor.`,
		SilenceUsage:       true,
		PersistentPreRunE:  root.persistentPreRunE,
		PersistentPostRunE: root.persistentPostRunE,
		RunE:               root.runTUI,
	}

	pflags := cmd.PersistentFlags()

	pflags.String("config", "", "Config file path (.toml, .yaml or .yml)")
	pflags.String("interval", "", "Sampling interval, e.g. 1s or 500ms (default 1s)")
	pflags.String("theme", "", "Color theme: light or dark (default light)")
	pflags.String("log-level", "", "Log level: debug, info, warn, error")

	_ = root.v.BindPFlag("config", pflags.Lookup("config"))
	_ = root.v.BindPFlag("interval", pflags.Lookup("interval"))
	_ = root.v.BindPFlag("theme", pflags.Lookup("theme"))
	_ = root.v.BindPFlag("log-level", pflags.Lookup("log-level"))

	root.cmd = cmd

	root.addSubCommands()

	return root
}

func (r *RootCommand) persistentPreRunE(cmd *cobra.Command, args []string) error {
	var err error
	r.cfg, err = config.Load(r.v.GetString("config"), r.flagOverrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logOut, err := logger.OpenFile(r.cfg.Logging.File)
	if err != nil {
		return err
	}
	logCfg := logger.Config{
		Level:  r.cfg.Logging.Level,
		Format: r.cfg.Logging.Format,
	}
	if logOut != nil {
		logCfg.Output = logOut
		r.logFile = logOut
	}
	logger.Init(logCfg)

	return nil
}

// flagOverrides applies only the flags given on the command line, so unset
// flags leave file and environment values alone.
func (r *RootCommand) flagOverrides(cfg *config.Config) {
	if r.v.IsSet("interval") {
		cfg.Monitor.Interval = r.v.GetString("interval")
	}
	if r.v.IsSet("theme") {
		cfg.UI.Theme = r.v.GetString("theme")
	}
	if r.v.IsSet("log-level") {
		cfg.Logging.Level = r.v.GetString("log-level")
	}
}

func (r *RootCommand) persistentPostRunE(cmd *cobra.Command, args []string) error {
	if r.logFile != nil {
		return r.logFile.Close()
	}
	return nil
}

func (r *RootCommand) addSubCommands() {
	r.cmd.AddCommand(NewVersionCommand(r))
	r.cmd.AddCommand(NewWatchCommand(r))
	r.cmd.AddCommand(NewInfoCommand(r))
}

// newSampler wires a Sampler over the configured source.
func (r *RootCommand) newSampler() *collector.Sampler {
	return collector.NewSampler(r.newSource(),
		collector.WithSensorKey(r.cfg.Monitor.TemperatureSensor),
		collector.WithConnectionKind(r.cfg.Monitor.ConnectionKind),
		collector.WithLogger(logger.Default()),
	)
}

func (r *RootCommand) newMonitor() *monitor.Monitor {
	return monitor.New(r.newSampler(), series.NewStore(r.cfg.Monitor.History),
		monitor.WithInterval(r.cfg.Monitor.IntervalD),
		monitor.WithLogger(logger.Default()),
	)
}

func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

func (r *RootCommand) Config() *config.Config {
	return r.cfg
}

func (r *RootCommand) SetOutputWriter(w io.Writer) {
	r.out = w
	r.cmd.SetOut(w)
}

func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

func Execute() {
	root := NewRootCommand()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func SetVersion(version, buildDate, gitCommit string) {
	cliVersion = version
	cliBuildDate = buildDate
	cliGitCommit = gitCommit
}

func GetVersion() string {
	return cliVersion
}
