// Command emailkit renders the project's email templates to static HTML,
// previews them while editing and publishes them as SendGrid template versions.
//
// Usage:
//
//	emailkit generate [name] [--langs en,pl]
//	emailkit dev [--langs en] [--port 5173]
//	emailkit deploy [name] [--langs en] [--sgTemplateId ID] [--create]
//	emailkit update <name> --sgVersionId ID [--sgTemplateId ID] [--langs en]
//	emailkit list
//
// name is a template slug, its component name or "all" (the default).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], nil, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
