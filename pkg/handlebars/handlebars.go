package handlebars

// Variable returns the variable reference token {{name}}.
// The name is not validated or canonicalized; empty and already-braced
// names are emitted verbatim.
func Variable(name string) string {
	return "{{" + name + "}}"
}

// Conditional wraps already rendered markup into an {{#if}} block.
func Conditional(cond, renderedInner string) string {
	return "{{#if " + cond + "}}" + renderedInner + "{{/if}}"
}

// Iteration wraps already rendered markup into an {{#each}} block.
func Iteration(list, renderedInner string) string {
	return "{{#each " + list + "}}" + renderedInner + "{{/each}}"
}
