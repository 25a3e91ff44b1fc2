// Package devserver provides the live preview used while editing templates.
//
// A Watcher regenerates output whenever a locale, model or template override
// file changes. Bursts of events are debounced into one rebuild and rebuilds
// never overlap. A Preview serves the generated files:
//
//	preview := devserver.NewPreview("dist", registry, []string{"en", "pl"})
//	srv := devserver.NewServer(devserver.WithPort(5173))
//	err := srv.Run(ctx, preview.Handler())
//
// The server stops gracefully when ctx is canceled.
package devserver
