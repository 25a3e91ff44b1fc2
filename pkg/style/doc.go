// Package style defines CSS rules for email components and collects the rules
// a single render pass actually used.
//
// Rules are declared once, usually as package level variables:
//
//	var heading = style.MustNew("h1", "padding: 24px 0 8px; font-size: 22px; font-weight: 700")
//
// Every rule gets a deterministic class name ("email-<hash>-h1"). Components
// ask for the class while rendering:
//
//	class := style.Class(ctx, heading)
//
// which also records the rule into the Chunk stored in ctx. The renderer
// creates one Chunk per render call with WithChunk, so rules never leak between
// renders of different templates. The chunk's Pairs and Stylesheet are the input
// of the inliner, which turns them into inline style attributes.
package style
