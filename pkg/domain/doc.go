/*
Package domain contains the core domain models for the surveyflow engine.

It defines the fundamental entities of the conversational graph, such as Steps,
Definitions, and the per-widget Session. This package is kept pure and free of
external dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Step: a single node in the graph (bot message, options, free text, dropdown).
  - Definition: the static, named graph of steps describing one survey script.
  - Session: the live traversal state over a definition (current position,
    transcript, captured variables).
  - Event: a structural representation of one piece of user input.
*/
package domain
