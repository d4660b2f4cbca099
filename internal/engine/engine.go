// Package engine holds the delegated complexity analyzers.
//
// Every analyzer implements contract.Analyzer. The lizard engine shells out to the
// external lizard tool and supports every language lizard does; the gocyclo and
// gocognit engines run in-process on Go sources.
package engine

import (
	"fmt"

	"github.com/huangsam/cyclocsv/internal/contract"
	"github.com/huangsam/cyclocsv/schema"
)

// New returns the analyzer registered under name.
func New(name schema.Engine) (contract.Analyzer, error) {
	switch name {
	case schema.LizardEngine, "":
		return NewLizardAnalyzer(), nil
	case schema.GocycloEngine:
		return NewGocycloAnalyzer(), nil
	case schema.GocognitEngine:
		return NewGocognitAnalyzer(), nil
	default:
		return nil, fmt.Errorf("%w: %s", contract.ErrUnsupportedEngine, name)
	}
}

// CheckAvailable runs the analyzer's availability probe and reports failures
// as an EnvironmentError.
func CheckAvailable(a contract.Analyzer) error {
	if err := a.Available(); err != nil {
		return &contract.EnvironmentError{Capability: string(a.Name()), Err: err}
	}
	return nil
}
