// Package pipeline runs batches of renders over (template, language) pairs.
//
// Build renders one pair and inlines its styles. Generate writes every pair
// through an email.OutputWriter, Deploy publishes new remote versions and
// Update patches an existing one. Pairs run one after another in template
// order, then language order; output of earlier pairs is committed before
// later pairs start.
//
// A failing pair never aborts its siblings. Every batch returns a Report
// with one Result per pair:
//
//	report := p.Generate(ctx, slugs, []string{"en", "pl"})
//	fmt.Println(report.Summary()) // "3 succeeded, 1 failed"
//	if err := report.Err(); err != nil {
//		// at least one pair failed
//	}
package pipeline
