package propagate

import (
	"fmt"
	"strings"

	"github.com/matzehuels/rectile/pkg/errors"
	"github.com/matzehuels/rectile/pkg/tiling/grid"
)

// Pass identifies one of the three rule families applied per round.
type Pass int

const (
	Diagonal Pass = iota
	Horizontal
	Vertical
)

func (p Pass) String() string {
	switch p {
	case Diagonal:
		return "diagonal"
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return fmt.Sprintf("pass(%d)", int(p))
}

// MarshalText encodes the pass by name.
func (p Pass) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText accepts "diagonal", "horizontal" or "vertical".
func (p *Pass) UnmarshalText(b []byte) error {
	for _, cand := range DefaultPasses {
		if cand.String() == string(b) {
			*p = cand
			return nil
		}
	}
	return fmt.Errorf("unknown pass %q", b)
}

// DefaultPasses is the fixed rule order of a round.
var DefaultPasses = []Pass{Diagonal, Horizontal, Vertical}

// ConflictPolicy decides what happens when a rule's derivation disagrees
// with a value that is already known.
type ConflictPolicy int

const (
	// ConflictIgnore performs no consistency checks.
	ConflictIgnore ConflictPolicy = iota
	// ConflictRecord keeps the first-written value and reports the
	// disagreement in Result.Conflicts.
	ConflictRecord
	// ConflictFail aborts propagation with INCONSISTENT_SEEDS.
	ConflictFail
)

var policyNames = map[ConflictPolicy]string{
	ConflictIgnore: "ignore",
	ConflictRecord: "record",
	ConflictFail:   "fail",
}

func (p ConflictPolicy) String() string {
	if s, ok := policyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParseConflictPolicy parses "ignore", "record" or "fail". The empty string
// selects ConflictRecord.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "record":
		return ConflictRecord, nil
	case "ignore":
		return ConflictIgnore, nil
	case "fail":
		return ConflictFail, nil
	}
	return ConflictRecord, errors.New(errors.ErrCodeInvalidConfiguration,
		"unknown conflict policy %q (must be 'ignore', 'record' or 'fail')", s)
}

// Options configures a propagation run.
type Options struct {
	// HalfWidth is half the side of the scanned sub-square around the center.
	HalfWidth int
	// MaxIterations caps the number of progressing rounds.
	MaxIterations int
	// Passes overrides the rule order within a round. Nil means DefaultPasses.
	Passes []Pass
	// Conflicts selects the consistency policy.
	Conflicts ConflictPolicy
}

func (o Options) passes() []Pass {
	if len(o.Passes) == 0 {
		return DefaultPasses
	}
	return o.Passes
}

// Conflict describes a derivation that disagrees with a known value.
type Conflict struct {
	// Col and Row are the logical offset of the cell holding the known value.
	Col     int      `json:"col"`
	Row     int      `json:"row"`
	Dim     grid.Dim `json:"dim"`
	Rule    Pass     `json:"rule"`
	Known   float64  `json:"known"`
	Derived float64  `json:"derived"`
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s at (%d, %d): %s rule derives %g, known %g",
		c.Dim, c.Col, c.Row, c.Rule, c.Derived, c.Known)
}

// Result summarizes a propagation run.
type Result struct {
	// Iterations is the number of rounds that learned something.
	Iterations int
	// Converged is false when the iteration budget ran out before a round
	// learned nothing; the grid may then be only partially inferred.
	Converged bool
	// Conflicts lists distinct disagreements found, in detection order.
	Conflicts []Conflict
}
