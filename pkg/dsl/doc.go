/*
Package dsl provides a fluent builder for survey definitions in Go code.

It is the programmatic alternative to the YAML catalogue: the shipped survey
graphs and most tests construct their definitions with it.

	b := dsl.New("feedback")
	b.Bot("greet", "Hey there! 👋").Go("ask")
	b.Ask("ask", "How was it?").
		Option("Great", "great", "thanks").
		Option("Meh", "meh", "thanks")
	b.Bot("thanks", "Thanks!").Terminal()
	def, err := b.Build()
*/
package dsl
