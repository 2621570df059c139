/*
Package intern implements the "uniqstr" collaborator: a pool that hands
out a canonical, comparable Tag for every distinct string it sees, so
that tag equality reduces to handle equality rather than string
comparison.

A Pool is the only thing package symtab trusts to answer "are these two
symbol names the same identity". symtab never compares Tag texts to
decide identity; it reads them back out via Tag.String for sorting,
for tag conventions such as a leading "$", and for diagnostics.

Tracing is available under the key "gramtab.intern".

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2018-2024 The Gramtab Authors

*/
package intern

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("gramtab.intern")
}
