/*
Package symtab implements the symbol table and precedence-relation
engine that a grammar-driven parser generator uses between reading a
grammar and building its tables: interning of terminals and
nonterminals, redeclaration diagnostics, a multi-phase finalization
pipeline that assigns dense internal numbers, and a precedence graph
that can be grouped into equivalence classes and exported as Graphviz
DOT.

Tracing is available under the key "gramtab.symtab" via
github.com/npillmayer/schuko/tracing; select it with tracer() the way
the rest of the module's ancestry does.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2018-2024 The Gramtab Authors

*/
package symtab

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("gramtab.symtab")
}
