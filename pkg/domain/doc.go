/*
Package domain contains the core automaton model for the Automata engine.

It defines the input alphabet, the State node with its transition table, and the
Machine that owns every State of one uploaded description. This package is kept
pure and free of I/O, following Hexagonal Architecture principles: parsing lives
in internal/compiler, construction and recognition in internal/runtime.

# Key Entities

  - Symbol: a single printable ASCII character (space is the "stay" symbol,
    backtick marks an epsilon transition).
  - State: identity 0-255, accept flag, and either a direct transition table or
    an alias to another state's table (the result of an epsilon transition).
  - Machine: the state graph plus its Kind (DFA, NFA, INVALID) and counters.
  - TransitionResult: the per-registration outcome folded into the Machine Kind.
*/
package domain
