/*
Package automata builds finite automata from a line-based transition description
and evaluates candidate strings against them.

Every uploaded description becomes a Machine classified as DFA, NFA or INVALID.
Batches of strings are then evaluated against each machine, counting accepted
strings and recording the implicit trap state the first time a missing
transition is hit.

# Description format

The first line declares the accept states, the following lines the transitions:

	{1,3}
	0,a,1
	0,a,2
	2,`,3

A backtick symbol is an epsilon transition, a space is the "stay" symbol every
state loops on. State identities range from 0 to 255.

# Usage

	eng := automata.New()
	ctx := context.Background()

	if _, err := eng.Upload(ctx, "ends-in-a", "{1}\n0,a,1\n0,b,0\n1,a,1\n1,b,0"); err != nil {
		log.Fatal(err)
	}

	results, err := eng.EvaluateAll(ctx, "ab\nba\naa")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(results[0].Accepted) // [ba aa]

	fmt.Println(report.Format(eng.Report()))

# Architecture

  - pkg/domain: alphabet, State, Machine and the DFA/NFA classification.
  - internal/runtime: the Builder and the Matcher.
  - pkg/report, pkg/ports, pkg/adapters: reporting sinks and persistence.
  - cmd/automata: the CLI (run, validate, graph, serve, mcp).
*/
package automata
