// Command tokencount counts tokens in files or stdin under several LLM
// tokenizer models, and renders word-level diffs with per-segment token
// deltas.
//
// Usage:
//
//	tokencount [options] [path...]
//
//	  -m, --model <name>   tokenizer model (default: claude)
//	  -a, --all            show counts for all models
//	  -r, --recursive      recurse into directories
//	  --ignore <pattern>   skip files/dirs matching pattern (repeatable)
//	  --no-gitignore       don't skip gitignored files when recursing
//	  -s, --share          print a shareable URL instead of counts
//	  -d, --diff           word-diff two files with token deltas
//	  --config <path>      config file (default: tokencount.yaml)
//	  -V, --version        show version
//
// When no paths are given, text is read from stdin. Directories require
// -r; binary files are skipped.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BaSui01/tokencount/config"
	"github.com/BaSui01/tokencount/diff"
	"github.com/BaSui01/tokencount/engine"
	"github.com/BaSui01/tokencount/internal/metrics"
	"github.com/BaSui01/tokencount/types"
)

// Version is injected at build time.
var Version = "dev"

type options struct {
	model       string
	all         bool
	recursive   bool
	gitignore   bool
	share       bool
	diff        bool
	showVersion bool
	configPath  string
	ignore      []string
	paths       []string
}

func parseOptions(args []string) (*options, error) {
	opts := &options{model: "claude", gitignore: true, configPath: "tokencount.yaml"}

	fs := flag.NewFlagSet("tokencount", flag.ContinueOnError)
	fs.StringVar(&opts.model, "m", opts.model, "tokenizer model")
	fs.StringVar(&opts.model, "model", opts.model, "tokenizer model")
	fs.BoolVar(&opts.all, "a", false, "show counts for all models")
	fs.BoolVar(&opts.all, "all", false, "show counts for all models")
	fs.BoolVar(&opts.recursive, "r", false, "recurse into directories")
	fs.BoolVar(&opts.recursive, "recursive", false, "recurse into directories")
	fs.BoolVar(&opts.share, "s", false, "print a shareable URL instead of counts")
	fs.BoolVar(&opts.share, "share", false, "print a shareable URL instead of counts")
	fs.BoolVar(&opts.diff, "d", false, "word-diff two inputs with token deltas")
	fs.BoolVar(&opts.diff, "diff", false, "word-diff two inputs with token deltas")
	fs.BoolVar(&opts.showVersion, "V", false, "show version")
	fs.BoolVar(&opts.showVersion, "version", false, "show version")
	fs.StringVar(&opts.configPath, "config", opts.configPath, "config file path")
	noGitignore := fs.Bool("no-gitignore", false, "don't skip gitignored files when recursing")
	fs.Func("ignore", "skip files/dirs matching pattern (repeatable)", func(v string) error {
		opts.ignore = append(opts.ignore, v)
		return nil
	})

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.gitignore = !*noGitignore
	opts.paths = fs.Args()
	return opts, nil
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if opts.showVersion {
		fmt.Printf("tokencount %s\n", Version)
		return
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg.Log)
	defer func() { _ = logger.Sync() }()

	if err := run(opts, cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts *options, cfg *config.Config, logger *zap.Logger) error {
	registry, err := cfg.Registry()
	if err != nil {
		return err
	}
	if _, ok := registry.Lookup(opts.model); !ok {
		return types.NewError(types.ErrModelNotFound,
			fmt.Sprintf("unknown model '%s'\nAvailable: %s",
				opts.model, strings.Join(registry.Names(), ", ")))
	}

	eng := engine.New(registry,
		engine.WithLogger(logger),
		engine.WithEstimator(cfg.Estimator()),
		engine.WithMetrics(metrics.NewCollector("tokencount", logger)),
	)

	inputs, err := collectInputs(opts, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if opts.all {
		if err := eng.RequestAll(ctx); err != nil {
			return err
		}
	} else if err := eng.Request(ctx, opts.model); err != nil {
		return err
	}

	switch {
	case opts.share:
		return runShare(os.Stdout, os.Stderr, eng, opts, inputs)
	case opts.diff:
		return runDiff(os.Stdout, eng, opts, inputs)
	case opts.all:
		return runCountAll(os.Stdout, eng, inputs)
	default:
		return runCount(os.Stdout, eng, opts.model, inputs)
	}
}

// input is one text to count: a file or stdin.
type input struct {
	name string // empty for stdin
	text string
}

func (in input) label(fallback string) string {
	if in.name != "" {
		return in.name
	}
	return fallback
}

func collectInputs(opts *options, logger *zap.Logger) ([]input, error) {
	if len(opts.paths) == 0 {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []input{{text: string(raw)}}, nil
	}

	files, err := expandPaths(opts.paths, opts.recursive, opts.gitignore, opts.ignore, logger)
	if err != nil {
		return nil, err
	}
	inputs := make([]input, 0, len(files))
	for _, f := range files {
		raw, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
		inputs = append(inputs, input{name: f, text: string(raw)})
	}
	return inputs, nil
}

func formatLine(count, label string) string {
	return fmt.Sprintf("%8s %s\n", count, label)
}

// countLabel renders an exact count bare and an estimate with a "~".
func countLabel(mc types.ModelCount) string {
	if mc.Exact {
		return fmt.Sprintf("%d", mc.Tokens)
	}
	return fmt.Sprintf("~%d", mc.Tokens)
}

func runCount(w io.Writer, eng *engine.Engine, model string, inputs []input) error {
	total := types.ModelCount{Exact: true}
	for _, in := range inputs {
		mc, err := eng.Count(in.text, model)
		if err != nil {
			return err
		}
		total.Tokens += mc.Tokens
		total.Exact = total.Exact && mc.Exact
		fmt.Fprint(w, formatLine(countLabel(mc), in.label("")))
	}
	if len(inputs) > 1 {
		fmt.Fprint(w, formatLine(countLabel(total), "total"))
	}
	return nil
}

func runCountAll(w io.Writer, eng *engine.Engine, inputs []input) error {
	for _, in := range inputs {
		label := in.label("stdin")
		for _, mc := range eng.CountAll(in.text) {
			fmt.Fprint(w, formatLine(countLabel(mc), fmt.Sprintf("%s (%s)", label, mc.Name)))
		}
	}
	return nil
}

func runShare(out, status io.Writer, eng *engine.Engine, opts *options, inputs []input) error {
	if len(inputs) > 2 {
		return fmt.Errorf("--share accepts at most two files (text A and text B)")
	}
	var textA, textB string
	labelA, labelB := "A", "B"
	if len(inputs) > 0 {
		textA = inputs[0].text
		labelA = inputs[0].label("A")
	}
	if len(inputs) > 1 {
		textB = inputs[1].text
		labelB = inputs[1].label("B")
	}

	countA, err := eng.Count(textA, opts.model)
	if err != nil {
		return err
	}
	var countB types.ModelCount
	if len(inputs) > 1 {
		if countB, err = eng.Count(textB, opts.model); err != nil {
			return err
		}
	}

	fmt.Fprintf(status, "  %s\n", opts.model)
	fmt.Fprint(status, formatLine(countLabel(countA), labelA))
	if len(inputs) > 1 {
		fmt.Fprint(status, formatLine(countLabel(countB), labelB))
		delta := countB.Tokens - countA.Tokens
		sign := ""
		if delta > 0 {
			sign = "+"
		}
		fmt.Fprint(status, formatLine(fmt.Sprintf("%s%d", sign, delta), "delta"))
	}
	fmt.Fprintln(status)

	fmt.Fprintln(out, buildShareURL(textA, textB, opts.model, countA.Tokens, countB.Tokens))
	return nil
}

func runDiff(w io.Writer, eng *engine.Engine, opts *options, inputs []input) error {
	if len(inputs) != 2 {
		return fmt.Errorf("--diff requires exactly two files (text A and text B)")
	}

	segments := diff.Compute(inputs[0].text, inputs[1].text)
	count := func(text string) int {
		mc, err := eng.Count(text, opts.model)
		if err != nil {
			return 0
		}
		return mc.Tokens
	}
	deltas := diff.Deltas(segments, count)

	for _, d := range deltas {
		switch d.Op {
		case diff.OpAdded:
			fmt.Fprintf(w, "+[%s] (+%d)\n", d.Text, d.Tokens)
		case diff.OpRemoved:
			fmt.Fprintf(w, "-[%s] (-%d)\n", d.Text, d.Tokens)
		default:
			fmt.Fprintf(w, " [%s]\n", d.Text)
		}
	}

	net := diff.Net(deltas)
	sign := ""
	if net > 0 {
		sign = "+"
	}
	fmt.Fprintf(w, "net token delta (%s): %s%d\n", opts.model, sign, net)
	return nil
}

func newLogger(cfg config.LogConfig) *zap.Logger {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.WarnLevel
	}

	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
