// Package driver wires the compilation pipeline: source text through
// lexer, parser, analyzer, optimizer, and generator to JavaScript output.
// Each call runs the stages on one call stack with freshly constructed
// state; a driver value is not needed, the pipeline is a function.
package driver

import (
	"github.com/picto-lang/picto/internal/analyzer"
	"github.com/picto-lang/picto/internal/generator"
	"github.com/picto-lang/picto/internal/optimizer"
	"github.com/picto-lang/picto/internal/parser"
)

// Options selects pipeline stages.
type Options struct {
	// Optimize runs the IR rewriter between analysis and generation.
	Optimize bool
}

// Compile translates Picto source to JavaScript. The filename is used for
// error positions only. The first stage to fail aborts the pipeline and
// its error is returned unchanged.
func Compile(filename, source string, opts Options) (string, error) {
	raw, err := parser.Parse(filename, source)
	if err != nil {
		return "", err
	}
	prog, err := analyzer.Analyze(raw)
	if err != nil {
		return "", err
	}
	if opts.Optimize {
		prog = optimizer.Optimize(prog)
	}
	return generator.Generate(prog), nil
}
