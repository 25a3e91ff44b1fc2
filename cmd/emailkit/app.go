package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/emailkit/pkg/config"
	"github.com/dmitrymomot/emailkit/pkg/email"
	"github.com/dmitrymomot/emailkit/pkg/i18n"
	"github.com/dmitrymomot/emailkit/pkg/logger"
	"github.com/dmitrymomot/emailkit/pkg/pipeline"
	"github.com/dmitrymomot/emailkit/pkg/renderer"
	"github.com/dmitrymomot/emailkit/templates"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var errUsage = errors.New("usage error")

type runIDKey struct{}

type app struct {
	cfg      Config
	log      *slog.Logger
	stdout   io.Writer
	stderr   io.Writer
	registry *renderer.Registry
	renderer *renderer.Renderer
}

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

func commands() []command {
	return []command{
		{name: "generate", usage: "generate [name] [--langs en,pl]", run: cmdGenerate},
		{name: "dev", usage: "dev [--langs en] [--port 5173]", run: cmdDev},
		{name: "deploy", usage: "deploy [name] [--langs en] [--sgTemplateId ID] [--create]", run: cmdDeploy},
		{name: "update", usage: "update <name> --sgVersionId ID [--sgTemplateId ID] [--langs en]", run: cmdUpdate},
		{name: "list", usage: "list", run: cmdList},
	}
}

// run executes one CLI invocation and returns the process exit code.
// env replaces the process environment when not nil.
func run(ctx context.Context, args []string, env map[string]string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printUsage(stderr)
		if len(args) == 0 {
			return exitUsage
		}
		return exitOK
	}

	var cmd *command
	for _, c := range commands() {
		if c.name == args[0] {
			cmd = &c
			break
		}
	}
	if cmd == nil {
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		printUsage(stderr)
		return exitUsage
	}

	var opts []config.Option
	if env != nil {
		opts = append(opts, config.WithEnvironment(env))
	}
	var cfg Config
	if err := config.Load(&cfg, opts...); err != nil {
		fmt.Fprintf(stderr, "configuration: %v\n", err)
		return exitFailure
	}

	a, err := newApp(cfg, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return exitFailure
	}

	runID := uuid.New()
	ctx = context.WithValue(ctx, runIDKey{}, runID.String())
	a.log.DebugContext(ctx, "command started", slog.String("command", cmd.name))

	if err := cmd.run(ctx, a, args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "%v\nusage: emailkit %s\n", err, cmd.usage)
			return exitUsage
		}
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		a.log.ErrorContext(ctx, "command failed", slog.String("command", cmd.name), logger.Error(err))
		return exitFailure
	}
	return exitOK
}

func newApp(cfg Config, stdout, stderr io.Writer) (a *app, err error) {
	defer func() {
		// WithLevelName panics on unknown level names.
		if r := recover(); r != nil {
			err = fmt.Errorf("configuration: %v", r)
		}
	}()

	log := logger.New(
		logger.WithEnvironment(cfg.Env),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithOutput(stderr),
		logger.WithContextValue("run_id", runIDKey{}),
	)

	reg := renderer.NewRegistry()
	if err := templates.Register(reg); err != nil {
		return nil, err
	}

	r := renderer.New(reg,
		renderer.WithLocales(i18n.NewLoader(
			i18n.WithGlobalDirs(cfg.LocalesDir),
			i18n.WithTemplatesDir(cfg.TemplatesDir),
			i18n.WithLogger(log),
		)),
		renderer.WithModels(renderer.NewModelLoader(cfg.ModelsDir)),
		renderer.WithLogger(log),
		renderer.WithMissingKeyLogging(true),
	)

	return &app{
		cfg:      cfg,
		log:      log,
		stdout:   stdout,
		stderr:   stderr,
		registry: reg,
		renderer: r,
	}, nil
}

// writer returns the local writer, mirrored to S3 when a bucket is configured.
func (a *app) writer(ctx context.Context) (email.OutputWriter, error) {
	local := email.NewLocalWriter(a.cfg.OutputDir)
	if !a.cfg.S3.Enabled() {
		return local, nil
	}
	mirror, err := email.NewS3Writer(ctx, a.cfg.S3)
	if err != nil {
		return nil, err
	}
	return email.TeeWriter(local, mirror), nil
}

func (a *app) publisher() *email.SendGridClient {
	return email.NewSendGridClient(a.cfg.SendGrid, email.WithLogger(a.log))
}

func (a *app) pipeline(opts ...pipeline.Option) *pipeline.Pipeline {
	return pipeline.New(a.renderer, append([]pipeline.Option{pipeline.WithLogger(a.log)}, opts...)...)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: emailkit <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, c := range commands() {
		fmt.Fprintf(w, "  %s\n", c.usage)
	}
}

// splitName separates a leading positional name from flags, so both
// "deploy welcome --create" and "deploy --create welcome" work.
func splitName(args []string) (string, []string) {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		return args[0], args[1:]
	}
	return "", args
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) (string, error) {
	name, rest := splitName(args)
	if err := fs.Parse(rest); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", errUsage, err)
	}
	switch {
	case fs.NArg() > 1 || (name != "" && fs.NArg() > 0):
		return "", fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	case name == "" && fs.NArg() == 1:
		name = fs.Arg(0)
	}
	return name, nil
}

func parseLangs(list string) ([]string, error) {
	langs, err := i18n.ParseLangs(list)
	if err != nil {
		return nil, fmt.Errorf("%w: --langs: %v", errUsage, err)
	}
	return langs, nil
}
