package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v2"

	dcli "github.com/toyz/dogen/internal/cli"
	"github.com/toyz/dogen/internal/utils"
)

// errGenerationFailed is returned once the failure has been reported in full
var errGenerationFailed = errors.New("generation failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args)
	stop()
	if err != nil {
		if !errors.Is(err, errGenerationFailed) {
			fmt.Fprintf(os.Stderr, "dogen: %s\n", err)
		}
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "dogen",
		Usage:     "generate JSON converters for annotated data objects",
		UsageText: "dogen [global options] command [command options] [patterns...]",
		Description: "Scans Go packages for types annotated with //dogen::dataobject, builds a\n" +
			"model of their properties and writes a <type>_json.go converter next to\n" +
			"every data object declared with -GenerateConverter.",
		Writer:         stdout,
		ErrWriter:      stderr,
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "enable verbose output and detailed error reporting"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only show errors"},
			&cli.BoolFlag{Name: "debug", Usage: "log every scanning and inference step"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "config file (default " + dcli.DefaultConfigFile + " in the working directory)"},
			&cli.StringFlag{Name: "dir", Aliases: []string{"C"}, Usage: "run as if started in `DIR`"},
		},
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Aliases:   []string{"gen"},
				Usage:     "build the models and write their converters",
				ArgsUsage: "[patterns...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "dry-run", Usage: "render converters without writing them"},
				},
				Action: generateAction,
			},
			{
				Name:      "describe",
				Usage:     "print the data object models found in the given packages",
				ArgsUsage: "[patterns...]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: dcli.FormatYAML,
						Usage: "output format, one of " + strings.Join(dcli.DescribeFormats, ", ")},
				},
				Action: describeAction,
			},
			{
				Name:      "clean",
				Usage:     "remove generated converters",
				ArgsUsage: "[directories...]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "suffix", Usage: "file suffix of the converters (default from config)"},
				},
				Action: cleanAction,
			},
		},
	}
}

// env bundles the output plumbing shared by the commands
type env struct {
	diagnostics *utils.DiagnosticSystem
	reporter    *dcli.DiagnosticReporter
	logger      *slog.Logger
}

func newEnv(c *cli.Context, stdout io.Writer) *env {
	stderr := c.App.ErrWriter
	verbose := c.Bool("verbose") || c.Bool("debug")

	level := utils.DiagnosticInfo
	logLevel := slog.LevelWarn
	switch {
	case c.Bool("debug"):
		level = utils.DiagnosticDebug
		logLevel = slog.LevelDebug
	case c.Bool("verbose"):
		level = utils.DiagnosticVerbose
		logLevel = slog.LevelInfo
	case c.Bool("quiet"):
		level = utils.DiagnosticError
		logLevel = slog.LevelError
	}

	diagnostics := utils.NewDiagnosticSystem(level)
	diagnostics.SetOutput(stdout, stderr)
	reporter := dcli.NewDiagnosticReporter(verbose)
	reporter.SetOutput(stdout, stderr)

	logger := slog.New(tint.NewHandler(stderr, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.TimeOnly,
		NoColor:    color.NoColor,
	}))

	return &env{diagnostics: diagnostics, reporter: reporter, logger: logger}
}

func runConfig(c *cli.Context) dcli.Config {
	patterns := c.Args().Slice()
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	return dcli.Config{
		Patterns:   patterns,
		Dir:        c.String("dir"),
		ConfigFile: c.String("config"),
		Verbose:    c.Bool("verbose"),
	}
}

func generateAction(c *cli.Context) error {
	e := newEnv(c, c.App.Writer)
	cfg := runConfig(c)
	cfg.DryRun = c.Bool("dry-run")

	g := dcli.NewGenerator(e.diagnostics, e.reporter, e.logger)
	if err := g.Run(c.Context, cfg); err != nil {
		e.reporter.ReportError(err)
		return errGenerationFailed
	}
	g.ReportSuccess()
	return nil
}

// describeAction keeps stdout for the models; everything else goes to stderr
func describeAction(c *cli.Context) error {
	format := c.String("format")
	if !isDescribeFormat(format) {
		return fmt.Errorf("unknown format %q, expected one of %s", format, strings.Join(dcli.DescribeFormats, ", "))
	}

	e := newEnv(c, c.App.ErrWriter)
	g := dcli.NewGenerator(e.diagnostics, e.reporter, e.logger)
	build, err := g.Build(c.Context, runConfig(c))
	if build != nil {
		if derr := dcli.Describe(c.App.Writer, build.Models(), format); derr != nil {
			return derr
		}
	}
	if err != nil {
		e.reporter.ReportError(err)
		return errGenerationFailed
	}
	return nil
}

func isDescribeFormat(format string) bool {
	for _, f := range dcli.DescribeFormats {
		if f == format {
			return true
		}
	}
	return false
}

func cleanAction(c *cli.Context) error {
	e := newEnv(c, c.App.Writer)
	dir := c.String("dir")

	suffix := c.String("suffix")
	if suffix == "" {
		fc, err := dcli.LoadConfig(dcli.Config{Dir: dir, ConfigFile: c.String("config")})
		if err != nil {
			return err
		}
		suffix = fc.OutputSuffix
	}

	dirs := c.Args().Slice()
	if len(dirs) == 0 {
		dirs = []string{"./..."}
	}
	if dir != "" {
		for i, d := range dirs {
			if !filepath.IsAbs(d) {
				dirs[i] = filepath.Join(dir, d)
			}
		}
	}

	e.diagnostics.Header("Cleaning generated converters")
	removed, err := dcli.NewCleaner(suffix, e.diagnostics).CleanGeneratedFiles(dirs)
	if err != nil {
		e.diagnostics.Error("Clean operation failed: %v", err)
		return errGenerationFailed
	}
	e.diagnostics.Success("Removed %d generated files", len(removed))
	return nil
}
