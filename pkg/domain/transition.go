package domain

// TransitionResult is the outcome of registering one transition on a State.
type TransitionResult int

const (
	// Deterministic means the symbol had no entry yet.
	Deterministic TransitionResult = iota
	// Nondeterministic means the symbol already had at least one target.
	Nondeterministic
	// Epsilon means the state now aliases the target's transition table.
	Epsilon
)

func (r TransitionResult) String() string {
	switch r {
	case Deterministic:
		return "deterministic"
	case Nondeterministic:
		return "nondeterministic"
	case Epsilon:
		return "epsilon"
	}
	return "unknown"
}

// Rank maps the result onto the determinism scale used by Kind.
func (r TransitionResult) Rank() Kind {
	if r == Deterministic {
		return KindDFA
	}
	return KindNFA
}

// Kind is the determinism class of a Machine.
type Kind int

const (
	KindDFA Kind = iota
	KindNFA
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindDFA:
		return "DFA"
	case KindNFA:
		return "NFA"
	case KindInvalid:
		return "INVALID"
	}
	return "UNKNOWN"
}

// MarshalText encodes the Kind as its name (JSON, YAML).
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a Kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "DFA":
		*k = KindDFA
	case "NFA":
		*k = KindNFA
	default:
		*k = KindInvalid
	}
	return nil
}

// Upgrade folds one transition result into the current Kind.
// INVALID is sticky and is never reached through a transition result.
func (k Kind) Upgrade(r TransitionResult) Kind {
	if k == KindInvalid {
		return k
	}
	return max(k, r.Rank())
}

// Classify reduces a sequence of transition results to a Kind.
func Classify(results ...TransitionResult) Kind {
	kind := KindDFA
	for _, r := range results {
		kind = kind.Upgrade(r)
	}
	return kind
}
