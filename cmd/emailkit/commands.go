package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/emailkit/pkg/devserver"
	"github.com/dmitrymomot/emailkit/pkg/email"
	"github.com/dmitrymomot/emailkit/pkg/i18n"
	"github.com/dmitrymomot/emailkit/pkg/logger"
	"github.com/dmitrymomot/emailkit/pkg/pipeline"
)

func cmdGenerate(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("generate", a.stderr)
	langsFlag := fs.String("langs", i18n.DefaultLanguage, "comma-separated languages: en,pl,de")
	name, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	langs, err := parseLangs(*langsFlag)
	if err != nil {
		return err
	}
	slugs, err := pipeline.ResolveSlugs(a.registry, name)
	if err != nil {
		return err
	}

	w, err := a.writer(ctx)
	if err != nil {
		return err
	}
	report := a.pipeline(pipeline.WithWriter(w)).Generate(ctx, slugs, langs)
	a.printReport(report)
	return report.Err()
}

func cmdDev(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("dev", a.stderr)
	langsFlag := fs.String("langs", i18n.DefaultLanguage, "comma-separated languages: en,pl,de")
	port := fs.Int("port", devserver.DefaultPort, "preview server port")
	name, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if name != "" {
		return fmt.Errorf("%w: dev takes no template name", errUsage)
	}
	if *port <= 0 || *port > 65535 {
		return fmt.Errorf("%w: --port must be between 1 and 65535", errUsage)
	}
	langs, err := parseLangs(*langsFlag)
	if err != nil {
		return err
	}

	slugs := a.registry.Slugs()
	p := a.pipeline(pipeline.WithWriter(email.NewLocalWriter(a.cfg.OutputDir)))
	reloader := devserver.NewReloader()
	rebuild := func(ctx context.Context) error {
		report := p.Generate(ctx, slugs, langs)
		if err := report.Err(); err != nil {
			return err
		}
		reloader.Notify()
		return nil
	}

	// A broken template must not keep the preview from starting.
	if err := rebuild(ctx); err != nil {
		a.log.WarnContext(ctx, "initial generation incomplete", logger.Error(err))
	}

	watcher := devserver.NewWatcher(rebuild,
		[]string{a.cfg.LocalesDir, a.cfg.TemplatesDir, a.cfg.ModelsDir},
		devserver.WithWatcherLogger(a.log),
	)
	preview := devserver.NewPreview(a.cfg.OutputDir, a.registry, langs,
		devserver.WithReloader(reloader),
		devserver.WithPreviewLogger(a.log),
	)
	srv := devserver.NewServer(
		devserver.WithPort(*port),
		devserver.WithServerLogger(a.log),
		devserver.WithStartHook(func(string) {
			fmt.Fprintf(a.stdout, "preview http://localhost:%d\n", *port)
		}),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return watcher.Run(ctx) })
	g.Go(func() error { return srv.Run(ctx, preview.Handler()) })
	return g.Wait()
}

func cmdDeploy(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("deploy", a.stderr)
	langsFlag := fs.String("langs", i18n.DefaultLanguage, "comma-separated languages, the first one is published")
	templateID := fs.String("sgTemplateId", "", "existing SendGrid template id")
	create := fs.Bool("create", false, "create a new SendGrid template first")
	name, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	langs, err := parseLangs(*langsFlag)
	if err != nil {
		return err
	}
	if !*create && *templateID == "" {
		return fmt.Errorf("%w: provide --sgTemplateId or --create", errUsage)
	}
	slugs, err := pipeline.ResolveSlugs(a.registry, name)
	if err != nil {
		return err
	}

	report := a.pipeline(pipeline.WithPublisher(a.publisher())).Deploy(ctx, slugs, langs, pipeline.DeployOptions{
		TemplateID: *templateID,
		Create:     *create,
	})
	a.printReport(report)
	return report.Err()
}

func cmdUpdate(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("update", a.stderr)
	langsFlag := fs.String("langs", i18n.DefaultLanguage, "comma-separated languages, the first one is published")
	versionID := fs.String("sgVersionId", "", "SendGrid version id to update (required)")
	templateID := fs.String("sgTemplateId", "", "SendGrid template id owning the version")
	name, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if name == "" || name == pipeline.AllTemplates {
		return fmt.Errorf("%w: update needs a single template name", errUsage)
	}
	if *versionID == "" {
		return fmt.Errorf("%w: --sgVersionId is required", errUsage)
	}
	langs, err := parseLangs(*langsFlag)
	if err != nil {
		return err
	}
	slugs, err := pipeline.ResolveSlugs(a.registry, name)
	if err != nil {
		return err
	}

	res := a.pipeline(pipeline.WithPublisher(a.publisher())).Update(ctx, slugs[0], langs, pipeline.UpdateOptions{
		VersionID:  *versionID,
		TemplateID: *templateID,
	})
	if res.Err != nil {
		return res.Err
	}
	fmt.Fprintf(a.stdout, "updated version %s (%s/%s)\n", res.VersionID, res.Slug, res.Lang)
	return nil
}

func cmdList(_ context.Context, a *app, args []string) error {
	fs := newFlagSet("list", a.stderr)
	name, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if name != "" {
		return fmt.Errorf("%w: list takes no arguments", errUsage)
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	for _, t := range a.registry.Templates() {
		fmt.Fprintf(tw, "%s\t%s\n", t.Slug, t.Title)
	}
	return tw.Flush()
}

func (a *app) printReport(r pipeline.Report) {
	for _, res := range r.Results {
		switch {
		case res.Err != nil:
			fmt.Fprintf(a.stdout, " ! %s/%s: %v\n", res.Slug, res.Lang, res.Err)
		case res.Skipped:
			fmt.Fprintf(a.stdout, " - %s/%s: skipped\n", res.Slug, res.Lang)
		case res.Location != "":
			fmt.Fprintf(a.stdout, " - %s\n", res.Location)
		default:
			fmt.Fprintf(a.stdout, " - %s/%s: template %s version %s\n", res.Slug, res.Lang, res.TemplateID, res.VersionID)
		}
	}
	fmt.Fprintln(a.stdout, r.Summary())
}
