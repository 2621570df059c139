package symtab

import (
	"math"

	"github.com/npillmayer/gramtab/diag"
)

// defaultSymbolNumberMaximum bounds the number of live symbols a
// Store accepts before Get starts raising a fatal overflow complaint.
// The original hard-codes a 16-bit limit because symbol numbers are
// stored in a short; Go has no such storage pressure, but keeping the
// same default preserves the same failure mode for pathological
// grammars, and callers who need more can raise it with
// WithSymbolNumberMaximum.
const defaultSymbolNumberMaximum = math.MaxInt16

// Packed is the result of a successful Store.Finalize: the dense
// symbol vector, ready for downstream table construction, plus the
// user-token-number to internal-number translation.
type Packed struct {
	Symbols            []*Symbol
	TokenTranslations  []int
	MaxUserTokenNumber int
}

// Finalize runs the five-phase pipeline described in spec §4.3 over
// store: check-defined, alias-consistency, pack, token-translation,
// then start-symbol validation. startSymbol and startLoc name the
// grammar's start symbol.
//
// Finalize returns a non-nil error (wrapping diag.ErrFatal) if the
// pipeline hit a fatal condition — either the symbol table overflowed
// during parsing, or the start symbol is undefined or is a token.
// Non-fatal problems are only visible through the diagnostics recorded
// on the Store's sink. An overflow stops Finalize before any phase
// runs, and the returned *Packed is then nil.
func (s *Store) Finalize(startSymbol *Symbol, startLoc diag.Location) (*Packed, error) {
	tracer().Debugf("finalize: %d symbols, %d semantic types", s.NSyms, len(s.semanticTypes))
	s.StartSymbol = startSymbol
	s.StartLocation = startLoc
	if s.NSyms > s.symbolNumberMaximum {
		tracer().Errorf("finalize: %d symbols exceed the limit of %d", s.NSyms, s.symbolNumberMaximum)
		return nil, diag.ErrFatal
	}
	startClass := startSymbol.Class

	s.checkDefined()
	s.checkAliasConsistency()
	packed := s.pack()
	tracer().Debugf("finalize: packed to %d symbols (%d tokens, %d nonterminals)",
		len(packed.Symbols), s.NTokens, s.NVars)
	s.tokenTranslations(packed)
	if err := s.validateStart(startClass); err != nil {
		tracer().Errorf("finalize: %v", err)
		return packed, err
	}
	return packed, nil
}

// checkDefined implements Phase A: elevate never-classified symbols
// to nonterminals, mark code props used, mark referenced semantic
// types declared, then warn about semantic types that were declared
// but never associated with a symbol, or associated but carrying
// unused %destructor/%printer code.
func (s *Store) checkDefined() {
	for _, sym := range s.SortedSymbols() {
		if sym.Class == Unknown {
			sev := diag.Wother
			if sym.Status == Needed {
				sev = diag.Complaint
			}
			s.sink.Complain(sev, sym.Location,
				"symbol %s is used, but is not defined as a token and has no rules", sym.Tag.String())
			sym.Class = Nterm
			sym.Number = s.NVars
			s.NVars++
		}
		s.CodePropsMarkUsed(sym, Destructor)
		s.CodePropsMarkUsed(sym, Printer)
		if sym.hasTypeName {
			if t, ok := s.semanticTypes[sym.TypeName]; ok {
				t.Status = Declared
			}
		}
	}
	for _, t := range s.SortedSemanticTypes() {
		s.checkSemanticTypeDefined(t)
	}
}

func (s *Store) checkSemanticTypeDefined(t *SemanticType) {
	if t.Status == Declared || t.isDefaultTag() {
		for _, kind := range []CodePropsKind{Destructor, Printer} {
			if t.props[kind].Kind != CodePropsNone && !t.props[kind].IsUsed {
				s.sink.Complain(diag.Wother, t.Location,
					"useless %s for type <%s>", kind.String(), t.Tag.String())
			}
		}
		return
	}
	s.sink.Complain(diag.Wother, t.Location,
		"type <%s> is used, but is not associated to any symbol", t.Tag.String())
}

// checkAliasConsistency implements Phase B: propagate type name, code
// props and precedence between the two halves of every alias pair. A
// value present on only one side is copied to the other. Where both
// sides carry a value, the string side's value is copied onto the
// identifier side through TypeSet, CodePropsSet or PrecedenceSet, which
// report it as a redeclaration (TypeSet is only called when the two
// type names differ).
func (s *Store) checkAliasConsistency() {
	for _, sym := range s.SortedSymbols() {
		if sym.alias == nil || !sym.IsAliasIdentifier() {
			continue
		}
		str := sym.alias

		if str.hasTypeName != sym.hasTypeName || (str.hasTypeName && str.TypeName != sym.TypeName) {
			if str.hasTypeName {
				s.TypeSet(sym, str.TypeName.String(), str.TypeLocation)
			} else {
				s.TypeSet(str, sym.TypeName.String(), sym.TypeLocation)
			}
		}

		for _, kind := range []CodePropsKind{Destructor, Printer} {
			if str.props[kind].hasCode() {
				s.CodePropsSet(sym, kind, str.props[kind].Code, str.props[kind].Location)
			} else if sym.props[kind].hasCode() {
				s.CodePropsSet(str, kind, sym.props[kind].Code, sym.props[kind].Location)
			}
		}

		if sym.Prec != 0 || str.Prec != 0 {
			if str.Prec != 0 {
				s.PrecedenceSet(sym, str.Prec, str.Assoc, str.PrecLocation)
			} else {
				s.PrecedenceSet(str, sym.Prec, sym.Assoc, sym.PrecLocation)
			}
		}
	}
}

// pack implements Phase C: assign a final dense number to every
// symbol (shifting nonterminal numbers past the token range),
// dropping the identifier side of every alias pair since it is
// represented by its string-form partner, then compacting the result:
// NSyms shrinks by every dropped slot, NTokens only by dropped slots
// that lie in the token range. A literal that MakeAlias made a token
// without ClassSet was never counted in NTokens, so its dropped slot
// lies past the nonterminals.
func (s *Store) pack() *Packed {
	nsymsOld, ntokensOld := s.NSyms, s.NTokens
	raw := make([]*Symbol, nsymsOld)
	for _, sym := range s.SortedSymbols() {
		if sym.Class == Nterm {
			sym.Number += s.NTokens
		} else if sym.IsAliasIdentifier() {
			continue
		}
		raw[sym.Number] = sym
	}

	packed := make([]*Symbol, 0, nsymsOld)
	for i, sym := range raw {
		if sym == nil {
			s.NSyms--
			if i < ntokensOld {
				s.NTokens--
			}
			continue
		}
		sym.Number = len(packed)
		if sym.alias != nil {
			sym.alias.Number = sym.Number
		}
		packed = append(packed, sym)
	}
	return &Packed{Symbols: packed}
}

// tokenTranslations implements Phase D: compute the highest declared
// user token number (at least 256), claim 256 for the error token if
// it is free and unclaimed (POSIX convention), assign fresh numbers
// to any still-undefined tokens, then build the translation table.
func (s *Store) tokenTranslations(packed *Packed) {
	num256Available := true
	maxUserTokenNumber := 0
	for i := 0; i < s.NTokens; i++ {
		sym := packed.Symbols[i]
		if sym.UserTokenNumber == UserNumberUndefined {
			continue
		}
		if sym.UserTokenNumber > maxUserTokenNumber {
			maxUserTokenNumber = sym.UserTokenNumber
		}
		if sym.UserTokenNumber == 256 {
			num256Available = false
		}
	}

	if num256Available && s.ErrToken.UserTokenNumber == UserNumberUndefined {
		s.ErrToken.UserTokenNumber = 256
	}
	if maxUserTokenNumber < 256 {
		maxUserTokenNumber = 256
	}

	for i := 0; i < s.NTokens; i++ {
		sym := packed.Symbols[i]
		if sym.UserTokenNumber == UserNumberUndefined {
			maxUserTokenNumber++
			sym.UserTokenNumber = maxUserTokenNumber
		}
		if sym.UserTokenNumber > maxUserTokenNumber {
			maxUserTokenNumber = sym.UserTokenNumber
		}
	}

	translations := make([]int, maxUserTokenNumber+1)
	for i := range translations {
		translations[i] = s.UndefToken.Number
	}
	// Written in sorted-tag order, not packed number order, matching
	// symbols_do(symbol_translation_processor, ..., &symbols_sorted):
	// when two tokens erroneously share a user token number, whichever
	// one sorts last by tag wins the slot, the same tiebreak the
	// reference makes.
	for _, sym := range s.SortedSymbols() {
		if sym.Class != Token || sym.Number >= s.NTokens || sym.IsAliasIdentifier() {
			continue
		}
		if translations[sym.UserTokenNumber] != s.UndefToken.Number {
			prev := packed.Symbols[translations[sym.UserTokenNumber]]
			userTokenNumberRedeclaration(s.sink, sym.UserTokenNumber, prev, sym)
		}
		translations[sym.UserTokenNumber] = sym.Number
	}

	packed.TokenTranslations = translations
	packed.MaxUserTokenNumber = maxUserTokenNumber
}

// userTokenNumberRedeclaration complains that num was declared for
// both first and second, reordering the two symbols by source
// location first — colliding user token numbers are detected during a
// sorted-tag traversal, not as the grammar is read, so first and
// second do not already arrive in source order the way symbol_type_set's
// callers do.
func userTokenNumberRedeclaration(sink diag.Sink, num int, first, second *Symbol) {
	if first.Location.Compare(second.Location) > 0 {
		first, second = second, first
	}
	sink.ComplainIndent(second.Location, diag.Complaint, 0,
		"user token number %d redeclaration for %s", num, second.Tag.String())
	sink.ComplainIndent(first.Location, diag.Complaint, diag.SubIndent,
		"previous declaration for %s", first.Tag.String())
}

// validateStart implements Phase E. class is the start symbol's class
// as it was before Phase A turned unclassified symbols into
// nonterminals.
func (s *Store) validateStart(class SymbolClass) error {
	switch class {
	case Unknown:
		s.sink.Complain(diag.Fatal, s.StartLocation, "the start symbol %s is undefined", s.StartSymbol.Tag.String())
		return diag.ErrFatal
	case Token:
		s.sink.Complain(diag.Fatal, s.StartLocation, "the start symbol %s is a token", s.StartSymbol.Tag.String())
		return diag.ErrFatal
	}
	return nil
}
