package symtab

import "github.com/cnf/structhash"

// fingerprintSymbol is the stable, hashable projection of a Symbol
// used by Packed.Fingerprint. It intentionally excludes Location
// fields: two grammars that declare the same symbols with the same
// numbering should fingerprint identically regardless of where in the
// source file each declaration happened to sit.
type fingerprintSymbol struct {
	Tag             string
	Number          int
	Class           int
	UserTokenNumber int
	Prec            int
	Assoc           int
}

// Fingerprint returns a stable content hash of the packed symbol
// table: same symbols, same numbers, same precedence declarations,
// same hash. Downstream table-building code can use it to decide
// whether previously generated tables are still valid without
// re-running the whole pipeline.
func (p *Packed) Fingerprint() (string, error) {
	view := make([]fingerprintSymbol, len(p.Symbols))
	for i, sym := range p.Symbols {
		view[i] = fingerprintSymbol{
			Tag:             sym.Tag.String(),
			Number:          sym.Number,
			Class:           int(sym.Class),
			UserTokenNumber: sym.UserTokenNumber,
			Prec:            sym.Prec,
			Assoc:           int(sym.Assoc),
		}
	}
	return structhash.Hash(view, 1)
}
