package automata_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/report"
)

// ExampleEngine_EvaluateAll uploads two machines and evaluates one batch against both.
func ExampleEngine_EvaluateAll() {
	eng := automata.New()
	ctx := context.Background()

	// Strings over {a,b} ending in 'a'.
	if _, err := eng.Upload(ctx, "ends-in-a", "{1}\n0,a,1\n0,b,0\n1,a,1\n1,b,0"); err != nil {
		log.Fatal(err)
	}
	// Guess the last symbol nondeterministically. "ab" dies on the guessing branch,
	// which adds the implicit trap state to the count.
	if _, err := eng.Upload(ctx, "guess", "{1}\n0,a,0\n0,b,0\n0,a,1"); err != nil {
		log.Fatal(err)
	}

	results, err := eng.EvaluateAll(ctx, "ab\nba\naa")
	if err != nil {
		log.Fatal(err)
	}
	for _, res := range results {
		fmt.Println(res.Machine, res.Accepted)
	}
	fmt.Println(report.Format(eng.Report()))

	// Output:
	// ends-in-a [ba aa]
	// guess [ba aa]
	// ends-in-a,DFA,2,2
	// guess,NFA,3,2
}
