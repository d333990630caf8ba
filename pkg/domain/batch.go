package domain

// StringResult is the verdict for one candidate string.
type StringResult struct {
	Input   string  `json:"input" yaml:"input"`
	Outcome Outcome `json:"outcome" yaml:"outcome"`
	Error   string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// BatchResult is the outcome of evaluating a batch of strings on one machine.
type BatchResult struct {
	Machine  string         `json:"machine" yaml:"machine"`
	Accepted []string       `json:"accepted" yaml:"accepted"`
	Results  []StringResult `json:"results" yaml:"results"`
	TrapHit  bool           `json:"trap_hit" yaml:"trap_hit"`
}
