// Package email distributes generated email documents.
//
// Local output goes through an OutputWriter. LocalWriter stores each document
// as <dir>/<slug>-<lang>.html; S3Writer mirrors the same file name into a
// bucket; TeeWriter combines them:
//
//	w := email.TeeWriter(email.NewLocalWriter("dist"), s3w)
//	path, err := w.Write(ctx, "welcome", "en", html)
//
// Remote publishing targets SendGrid dynamic templates:
//
//	client := email.NewSendGridClient(email.Config{APIKey: key})
//	res, err := client.Publish(ctx, "welcome", email.PublishOptions{Create: true}, html, subject)
//
// Calls without an API key fail with ErrMissingCredential before any request
// is made. Non-2xx replies are returned as *RemoteAPIError and never retried.
package email
