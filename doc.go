/*
Package gramtab implements a symbol table and precedence-relation engine
for LALR(1)/GLR-style parser generators.

Given symbols and semantic types declared while a grammar is being read,
gramtab interns them, validates their declarations, assigns a dense
internal numbering compatible with parser-table construction, computes
the user-token-number to internal-number translation, and tracks the
declared precedence relation between tokens as a directed graph that can
be grouped into equivalence classes and exported as Graphviz DOT.

Building a Symbol Table

Clients create a store, intern symbols and semantic types as the grammar
is read, and finally run Finalize once parsing is complete:

	sink := diag.NewCollector(nil)
	store := symtab.NewStore(sink, intern.NewPool())
	ifTok := store.Get("IF", loc)
	store.ClassSet(ifTok, symtab.Token, loc, true)
	store.UserTokenNumberSet(ifTok, 300, loc)
	quoted := store.Get(`"if"`, loc)
	store.MakeAlias(ifTok, quoted, loc)
	// ... more declarations ...
	packed, err := store.Finalize(startSymbol, startLoc)

Precedence Graph

Precedence relations declared with %left/%right/%nonassoc/%precedence
form a directed graph of "has strictly higher precedence than" edges.
After finalization the graph can be grouped (symbols with identical
successor/predecessor sets collapse into one node) and exported:

	graph := store.PrecedenceGraph()
	graph.WriteRelationGraph(w, packed.Symbols)
	graph.WriteTransitiveReduction(w2, packed.Symbols)

Package Layout

  - intern: string-interning pool (the "uniqstr" collaborator).
  - diag: diagnostic sink (the "complain" collaborator).
  - symtab: the engine itself (symbol store, semantic-type store,
    finalization pipeline, precedence graph, DOT emission).
  - cmd/symrepl: an interactive debug REPL, not part of the library's
    public contract.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2018-2024 The Gramtab Authors

*/
package gramtab
