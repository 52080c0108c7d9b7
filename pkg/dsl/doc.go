/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing automaton definitions.

It is the code alternative to YAML, JSON or Markdown files: handy for generated
machines, unit tests and IDE autocompletion.

Example usage:

	b := dsl.New("ends-in-ab", domain.KindNFA).Alphabet("a", "b")

	b.Add("s").Start().
		On("a", "s", "a").
		On("b", "s")
	b.Add("a").On("b", "ab")
	b.Add("ab").Accepting()

	def, err := b.Definition() // validated *schema.Definition
	loader, err := dsl.Catalog(b) // ports.DefinitionLoader for registry.New
*/
package dsl
