package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"pkt.systems/snazy"
	"pkt.systems/snazy/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	configPath       string
	regexps          []string
	timeFormat       string
	timezone         string
	filterLevels     []string
	kailPrefixFormat string
	kailNoPrefix     bool
	levelSymbols     bool
	color            string
	jsonKeys         []string
	actionRegexp     string
	actionCommand    string
	skipLines        []string
	hideStacktrace   bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	log := newLogger(stderr)
	exitCode := 0
	cmd := newRootCmd(stdin, stdout, log, &exitCode)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "snazy: %v\n", err)
		return 1
	}
	return exitCode
}

func newLogger(w io.Writer) logr.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	enc.CallerKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), zapcore.InfoLevel)
	return zapr.NewLogger(zap.New(core)).WithName("snazy")
}

func newRootCmd(stdin io.Reader, stdout io.Writer, log logr.Logger, exitCode *int) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "snazy [flags] [file|glob|-]...",
		Short:         "Pretty print structured log lines",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd.Flags(), opts, stdout)
			if err != nil {
				return err
			}
			p, err := snazy.New(cfg, stdout, snazy.WithLogger(log))
			if err != nil {
				return err
			}
			failed, err := processInputs(p, args, stdin, log)
			if err != nil {
				return err
			}
			if failed {
				*exitCode = 1
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/snazy/config.toml)")
	flags.StringArrayVarP(&opts.regexps, "regexp", "r", nil, "highlight PATTERN, NAME:PATTERN or fg=COLOR[,bg=COLOR]:PATTERN (repeatable)")
	flags.StringVar(&opts.timeFormat, "time-format", snazy.DefaultTimeFormat, "strftime layout for timestamps")
	flags.StringVar(&opts.timezone, "timezone", "", "IANA timezone for timestamps (default UTC)")
	flags.StringArrayVarP(&opts.filterLevels, "filter-levels", "f", nil, "only show these levels: debug, info, warning, error, fatal (repeatable, comma separated)")
	flags.StringVar(&opts.kailPrefixFormat, "kail-prefix-format", snazy.DefaultKailPrefixFormat, "template for the kail prefix: {namespace}, {pod}, {container}, \\n")
	flags.BoolVar(&opts.kailNoPrefix, "kail-no-prefix", false, "hide the kail prefix")
	flags.BoolVar(&opts.levelSymbols, "level-symbols", false, "render levels as emoji")
	flags.StringVarP(&opts.color, "color", "c", "auto", "colorize output: never, auto, always")
	flags.StringArrayVarP(&opts.jsonKeys, "json-keys", "k", nil, "map a field to a JSON pointer as key=pointer; needs level, msg and ts (repeatable)")
	flags.StringVar(&opts.actionRegexp, "action-regexp", "", "run --action-command when a line matches this regexp")
	flags.StringVar(&opts.actionCommand, "action-command", "", "shell command to run on match; {} is replaced by the match")
	flags.StringArrayVarP(&opts.skipLines, "skip-line-regexp", "S", nil, "drop records whose message matches (repeatable)")
	flags.BoolVar(&opts.hideStacktrace, "hide-stacktrace", false, "do not print stacktraces")
	return cmd
}

// buildConfig layers explicitly set flags over the config file and
// environment.
func buildConfig(flags *pflag.FlagSet, opts options, stdout io.Writer) (snazy.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return snazy.Config{}, err
	}
	if flags.Changed("time-format") {
		cfg.TimeFormat = opts.timeFormat
	}
	if flags.Changed("timezone") {
		cfg.Timezone = opts.timezone
	}
	if flags.Changed("kail-prefix-format") {
		cfg.KailPrefixFormat = opts.kailPrefixFormat
	}
	if opts.kailNoPrefix {
		cfg.KailNoPrefix = true
	}
	if opts.levelSymbols {
		cfg.LevelMode = snazy.LevelEmoji
	}
	if opts.hideStacktrace {
		cfg.HideStacktrace = true
	}
	if flags.Changed("color") {
		mode, err := snazy.ParseColorMode(opts.color)
		if err != nil {
			return snazy.Config{}, err
		}
		cfg.Color = mode
	}
	if len(opts.filterLevels) > 0 {
		levels, err := snazy.ParseLevels(opts.filterLevels...)
		if err != nil {
			return snazy.Config{}, err
		}
		cfg.FilterLevels = levels
	}
	for _, arg := range opts.regexps {
		cfg.Highlights = append(cfg.Highlights, snazy.ParseHighlight(arg, len(cfg.Highlights)))
	}
	cfg.SkipPatterns = append(cfg.SkipPatterns, opts.skipLines...)
	if len(opts.jsonKeys) > 0 {
		keys, err := parseJSONKeys(opts.jsonKeys)
		if err != nil {
			return snazy.Config{}, err
		}
		cfg.JSONKeys = keys
	}
	if flags.Changed("action-regexp") {
		cfg.ActionRegexp = opts.actionRegexp
	}
	if flags.Changed("action-command") {
		cfg.ActionCommand = opts.actionCommand
	}
	cfg.RuleWidth = terminalWidth(stdout)
	if err := cfg.Validate(); err != nil {
		return snazy.Config{}, err
	}
	return cfg, nil
}

func parseJSONKeys(values []string) (map[string]string, error) {
	keys := make(map[string]string, len(values))
	for _, v := range values {
		name, pointer, ok := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid json key %q (want key=pointer)", v)
		}
		keys[name] = strings.TrimSpace(pointer)
	}
	return keys, nil
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return snazy.DefaultRuleWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return snazy.DefaultRuleWidth
	}
	return width
}

// expandInputs resolves glob arguments into sorted file lists. Arguments
// without glob meta characters, or globs that match nothing, are kept as
// given so that opening them reports the problem.
func expandInputs(args []string, log logr.Logger) ([]string, bool) {
	if len(args) == 0 {
		return []string{"-"}, false
	}
	var (
		out    []string
		failed bool
	)
	for _, arg := range args {
		if arg == "-" || !strings.ContainsAny(arg, "*?[{") {
			out = append(out, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			log.Error(err, "invalid glob", "pattern", arg)
			failed = true
			continue
		}
		if len(matches) == 0 {
			out = append(out, arg)
			continue
		}
		sort.Strings(matches)
		out = append(out, matches...)
	}
	return out, failed
}

// processInputs runs every input through p with a fresh StreamState each.
// Inputs that cannot be opened are reported and skipped; failed is true when
// that happened. The returned error is a write or read failure.
func processInputs(p *snazy.Processor, args []string, stdin io.Reader, log logr.Logger) (failed bool, err error) {
	paths, failed := expandInputs(args, log)
	for _, path := range paths {
		if path == "-" {
			if err := p.Run(stdin, &snazy.StreamState{}); err != nil {
				return failed, err
			}
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			log.Error(err, "cannot open input", "path", path)
			failed = true
			continue
		}
		err = p.Run(f, &snazy.StreamState{})
		f.Close()
		if err != nil {
			return failed, fmt.Errorf("%s: %w", path, err)
		}
	}
	return failed, nil
}
