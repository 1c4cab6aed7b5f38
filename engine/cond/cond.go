// Package cond evaluates authored rule conditions. Conditions are small
// boolean expressions (comparisons, connectives, predicate calls) compiled
// and run by expr — story content never executes host code.
package cond

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Evaluator compiles condition expressions on first use and caches the
// programs. The variable environment is supplied per evaluation.
type Evaluator struct {
	programs map[string]*vm.Program
}

// New creates an empty evaluator.
func New() *Evaluator {
	return &Evaluator{programs: map[string]*vm.Program{}}
}

// Eval evaluates a condition against the given environment. An empty
// condition is vacuously true. Compile errors, runtime errors and non-bool
// results are returned as errors; callers report them as rule errors and
// treat the rule as not matching.
func (ev *Evaluator) Eval(condition string, env map[string]any) (bool, error) {
	if condition == "" {
		return true, nil
	}

	program, ok := ev.programs[condition]
	if !ok {
		var err error
		program, err = expr.Compile(condition, expr.AllowUndefinedVariables())
		if err != nil {
			return false, fmt.Errorf("compiling condition %q: %w", condition, err)
		}
		ev.programs[condition] = program
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("evaluating condition %q: %w", condition, err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("condition %q is not boolean (got %T)", condition, out)
	}
	return b, nil
}
