package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/coregx/coreglob"
	"github.com/coregx/coreglob/meta"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	exitOK      = 0
	exitError   = 1
	exitNoMatch = 2
)

// errNoMatch ends a match run that printed nothing.
var errNoMatch = errors.New("no match")

// app carries the state shared by all commands of one invocation.
type app struct {
	v     *viper.Viper
	log   *log.Logger
	stdin io.Reader
}

func newApp(stdin io.Reader, stderr io.Writer) *app {
	v := viper.New()
	v.SetEnvPrefix("coreglob")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	logger := log.New()
	logger.SetOutput(stderr)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(log.InfoLevel)

	return &app{v: v, log: logger, stdin: stdin}
}

// run executes the command line and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := newApp(stdin, stderr)
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		if errors.Is(err, errNoMatch) {
			return exitNoMatch
		}
		a.log.Error(err)
		return exitError
	}
	return exitOK
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "coreglob",
		Short:         "Glob pattern matching over text",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure()
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (json, yaml or toml)")
	pf.BoolP("verbose", "v", false, "enable debug logging")
	pf.String("log-format", "text", "log format: text or json")
	pf.String("engine", "auto", "execution engine: auto, backtrack or pikevm")
	pf.Bool("escape-any", false, "let a backslash escape any character")
	pf.Bool("prefilter", true, "skip input using the pattern's literals")
	a.bindFlags(root, "config", "verbose", "log-format", "engine", "escape-any", "prefilter")

	root.AddCommand(a.matchCommand(), a.checkCommand(), a.genCommand())
	return root
}

// bindFlags binds flags of cmd to the settings keys of the same name, so a
// setting comes from the flag, a COREGLOB_* variable or the config file.
func (a *app) bindFlags(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			flag = cmd.PersistentFlags().Lookup(name)
		}
		if err := a.v.BindPFlag(name, flag); err != nil {
			panic(err)
		}
	}
}

// configure loads the optional config file and sets up logging.
func (a *app) configure() error {
	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	switch format := a.v.GetString("log-format"); format {
	case "text":
		a.log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	case "json":
		a.log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	if a.v.GetBool("verbose") {
		a.log.SetLevel(log.DebugLevel)
	}

	a.log.WithFields(log.Fields{
		"config": a.v.ConfigFileUsed(),
		"engine": a.v.GetString("engine"),
	}).Debug("configured")
	return nil
}

// globConfig builds the compile configuration from the settings.
func (a *app) globConfig() (coreglob.Config, error) {
	config := coreglob.DefaultConfig()
	engine, err := meta.ParseEngineKind(a.v.GetString("engine"))
	if err != nil {
		return config, err
	}
	config.Engine = engine
	config.EscapeAny = a.v.GetBool("escape-any")
	config.EnablePrefilter = a.v.GetBool("prefilter")
	config.EnableRequiredSet = a.v.GetBool("prefilter")
	return config, nil
}
