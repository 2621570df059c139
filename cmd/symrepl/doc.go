/*
Command symrepl is an interactive command-line tool for exercising a
gramtab symbol table by hand: declare tokens and nonterminals, alias a
literal string to an identifier, register precedence, finalize, and
inspect the result as text or as a Graphviz DOT precedence graph.
symrepl is a debugging sandbox, not part of the module's public API.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2018-2024 The Gramtab Authors

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gramtab.symrepl'
func tracer() tracing.Trace {
	return tracing.Select("gramtab.symrepl")
}
