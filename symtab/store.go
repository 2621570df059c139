package symtab

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/schuko/gconf"

	"github.com/npillmayer/gramtab/diag"
	"github.com/npillmayer/gramtab/intern"
)

func symbolComparator(a, b interface{}) int {
	sa, sb := a.(*Symbol), b.(*Symbol)
	ta, tb := sa.Tag.String(), sb.Tag.String()
	switch {
	case ta < tb:
		return -1
	case ta > tb:
		return 1
	default:
		return 0
	}
}

// Store owns every Symbol and SemanticType interned while a grammar is
// being read, plus the distinguished symbols and counters the
// finalization pipeline needs. The zero Store is not usable; create
// one with NewStore.
type Store struct {
	sink diag.Sink
	pool *intern.Pool

	symbols       map[intern.Tag]*Symbol
	semanticTypes map[intern.Tag]*SemanticType

	// sorted is a one-shot cache of symbols in tag order, materialized
	// by the first call to SortedSymbols. Bison enforces "no insertion
	// after the sorted cache exists" with an assertion; we do the same.
	sorted    []*Symbol
	semSorted []*SemanticType

	NSyms   int
	NTokens int
	NVars   int

	ErrToken       *Symbol
	UndefToken     *Symbol
	EndToken       *Symbol
	Accept         *Symbol
	StartSymbol    *Symbol
	StartLocation  diag.Location

	symbolNumberMaximum int

	dummyCount int
	precGraph  *PrecGraph
}

// StoreOption configures a Store at construction time.
type StoreOption func(*Store)

// WithSymbolNumberMaximum overrides the default cap (math.MaxInt16,
// matching Bison's default) on the number of symbols Get creates
// before it starts raising the overflow diagnostic, useful for
// exercising that diagnostic in tests without allocating tens of
// thousands of symbols. NewStore itself always creates four bootstrap
// symbols ($end, error, $undefined, $accept), so a max below 4 raises
// the diagnostic during NewStore.
func WithSymbolNumberMaximum(max int) StoreOption {
	return func(s *Store) { s.symbolNumberMaximum = max }
}

// NewStore creates an empty symbol table backed by pool for interning
// and sink for diagnostics, and seeds the distinguished symbols
// (error, $undefined, $end, $accept) the way symbols_new / the
// grammar reader's bootstrap code does in the original.
func NewStore(sink diag.Sink, pool *intern.Pool, opts ...StoreOption) *Store {
	s := &Store{
		sink:                sink,
		pool:                pool,
		symbols:             make(map[intern.Tag]*Symbol),
		semanticTypes:       make(map[intern.Tag]*SemanticType),
		symbolNumberMaximum: defaultSymbolNumberMaximum,
	}
	for _, opt := range opts {
		opt(s)
	}
	// $end permanently occupies internal number 0 and user token number
	// 0; this is fixed by convention rather than by the running
	// counters ClassSet/UserTokenNumberSet maintain for ordinarily
	// declared tokens, so it is wired up directly instead of through
	// those mutators. The grammar reader that would otherwise perform
	// this bootstrap is outside this engine's scope (see doc.go).
	s.EndToken = s.Get("$end", diag.Location{})
	s.EndToken.Class = Token
	s.EndToken.Number = 0
	s.EndToken.UserTokenNumber = 0
	s.NTokens = 1

	s.ErrToken = s.Get("error", diag.Location{})
	s.ClassSet(s.ErrToken, Token, diag.Location{}, false)
	s.UndefToken = s.Get("$undefined", diag.Location{})
	s.ClassSet(s.UndefToken, Token, diag.Location{}, false)
	s.UndefToken.UserTokenNumber = 2
	s.Accept = s.Get("$accept", diag.Location{})
	s.ClassSet(s.Accept, Nterm, diag.Location{}, false)
	return s
}

func (s *Store) assertNotSorted(op string) {
	if s.sorted != nil {
		panic(fmt.Sprintf("symtab: %s after the sorted symbol cache was materialized", op))
	}
}

// Get interns key as a symbol, creating it with default attributes on
// first mention. Two calls with equal keys always return the same
// *Symbol — this holds even past a symbol-number overflow: the
// overflow only raises a Fatal complaint the first time the ceiling is
// reached, exactly the way symbol_new's `nsyms == SYMBOL_NUMBER_MAXIMUM`
// check fires once and then falls through to create the symbol
// anyway. A Go caller can't longjmp out the way the reference does on
// a fatal complaint, so every symbol, including ones minted past the
// ceiling, is still cached and numbered normally; callers that need to
// stop early should watch a Collector's Count(diag.Fatal) or FatalError.
func (s *Store) Get(key string, loc diag.Location) *Symbol {
	tag := s.pool.MustTag(key)
	if sym, ok := s.symbols[tag]; ok {
		return sym
	}
	s.assertNotSorted("symbol creation")
	if s.NSyms == s.symbolNumberMaximum {
		s.sink.Complain(diag.Fatal, diag.Location{},
			"too many symbols in input grammar (limit is %d)", s.symbolNumberMaximum)
		if gconf.GetBool("symtab.panic-on-overflow") {
			panic(fmt.Sprintf("symtab: symbol number overflow (limit is %d)", s.symbolNumberMaximum))
		}
	}
	if len(key) > 0 && key[0] != '"' && key[0] != '\'' {
		for i := 0; i < len(key); i++ {
			if key[i] == '-' {
				s.sink.Complain(diag.Wyacc, loc, "POSIX Yacc forbids dashes in symbol names: %s", key)
				break
			}
		}
	}
	sym := newSymbol(tag, loc)
	s.symbols[tag] = sym
	s.NSyms++
	return sym
}

// Lookup returns the symbol already interned for key, without
// creating one.
func (s *Store) Lookup(key string) (*Symbol, bool) {
	tag, ok := s.pool.Lookup(key)
	if !ok {
		return nil, false
	}
	sym, ok := s.symbols[tag]
	return sym, ok
}

// GetSemanticType interns key as a semantic type tag.
func (s *Store) GetSemanticType(key string, loc diag.Location) *SemanticType {
	tag := s.pool.Intern(key)
	if t, ok := s.semanticTypes[tag]; ok {
		return t
	}
	s.assertNotSorted("semantic type creation")
	t := newSemanticType(tag, loc)
	s.semanticTypes[tag] = t
	return t
}

// NewDummy generates a fresh compiler-internal nonterminal whose tag
// cannot collide with a user-declared name, mirroring
// dummy_symbol_get.
func (s *Store) NewDummy(loc diag.Location) *Symbol {
	s.dummyCount++
	sym := s.Get(fmt.Sprintf("$@%d", s.dummyCount), loc)
	sym.Class = Nterm
	sym.Number = s.NVars
	s.NVars++
	return sym
}

// TypeSet sets sym's %type, complaining on redeclaration. A blank
// typeName is a no-op.
func (s *Store) TypeSet(sym *Symbol, typeName string, loc diag.Location) {
	if typeName == "" {
		return
	}
	tag := s.pool.Intern(typeName)
	if sym.hasTypeName {
		diag.Redeclaration(s.sink, "%type", sym.Tag.String(), sym.TypeLocation, loc)
	}
	sym.TypeName = tag
	sym.hasTypeName = true
	sym.TypeLocation = loc
}

// CodePropsSet sets sym's %destructor or %printer, complaining on
// redeclaration.
func (s *Store) CodePropsSet(sym *Symbol, kind CodePropsKind, code string, loc diag.Location) {
	if sym.props[kind].hasCode() {
		diag.Redeclaration(s.sink, kind.String(), sym.Tag.String(), sym.props[kind].Location, loc)
	}
	sym.props[kind] = CodeProps{Kind: CodePropsUser, Code: code, Location: loc}
}

// SemanticTypeCodePropsSet is CodePropsSet for a SemanticType.
func (s *Store) SemanticTypeCodePropsSet(t *SemanticType, kind CodePropsKind, code string, loc diag.Location) {
	if t.props[kind].hasCode() {
		diag.Redeclaration(s.sink, kind.String(), "<"+t.Tag.String()+">", t.props[kind].Location, loc)
	}
	t.props[kind] = CodeProps{Kind: CodePropsUser, Code: code, Location: loc}
}

// CodePropsGet resolves the effective %destructor or %printer for
// sym: a per-symbol declaration wins, then the props of sym's
// semantic type, then the default semantic type ("*" if sym has a
// type, else "") — but defaults never apply to engine-generated
// symbols (tag starting with "$") or the error token.
func (s *Store) CodePropsGet(sym *Symbol, kind CodePropsKind) CodeProps {
	if slot := s.codePropsSlot(sym, kind); slot != nil {
		return *slot
	}
	return CodeProps{}
}

// codePropsSlot resolves the same precedence order as CodePropsGet,
// but returns a pointer into whichever record actually supplies the
// code (sym's own, its semantic type's, or the default semantic
// type's), or nil if none does. This lets callers mark the record
// that was actually relied upon as used, the way
// symbol_code_props_get returns a code_props* in the original so its
// caller can flip is_used on the record it resolved to, rather than
// always on the symbol's own slot.
func (s *Store) codePropsSlot(sym *Symbol, kind CodePropsKind) *CodeProps {
	if sym.props[kind].hasCode() {
		return &sym.props[kind]
	}
	if sym.hasTypeName {
		if t := s.semanticTypes[sym.TypeName]; t != nil && t.props[kind].hasCode() {
			return &t.props[kind]
		}
	}
	if !sym.isGenerated() && sym != s.ErrToken {
		defaultTag := ""
		if sym.hasTypeName {
			defaultTag = "*"
		}
		if t, ok := s.semanticTypes[s.pool.Intern(defaultTag)]; ok && t.props[kind].hasCode() {
			return &t.props[kind]
		}
	}
	return nil
}

// CodePropsMarkUsed resolves sym's effective %destructor or %printer
// exactly like CodePropsGet and, if one was found, marks the record it
// actually came from as used — the symbol's own declaration, its
// semantic type's, or the default semantic type's.
func (s *Store) CodePropsMarkUsed(sym *Symbol, kind CodePropsKind) {
	if slot := s.codePropsSlot(sym, kind); slot != nil {
		slot.IsUsed = true
	}
}

// PrecedenceSet sets sym's precedence and associativity (a no-op when
// assoc is UndefAssoc), then forces sym into the Token class the way
// only terminals can carry a precedence.
func (s *Store) PrecedenceSet(sym *Symbol, prec int, assoc Assoc, loc diag.Location) {
	if assoc != UndefAssoc {
		if sym.Prec != 0 {
			diag.Redeclaration(s.sink, assoc.String(), sym.Tag.String(), sym.PrecLocation, loc)
		}
		sym.Prec = prec
		sym.Assoc = assoc
		sym.PrecLocation = loc
	}
	s.ClassSet(sym, Token, loc, false)
}

// ClassSet sets sym's class, assigning a dense number the first time
// it becomes a Token or Nterm, and complaining if the class changes
// or (when declaring) if sym was already Declared.
func (s *Store) ClassSet(sym *Symbol, class SymbolClass, loc diag.Location, declaring bool) {
	warned := false
	if sym.Class != Unknown && sym.Class != class {
		s.sink.Complain(diag.Complaint, loc, "symbol %s redefined", sym.Tag.String())
		warned = true
	}
	if class == Nterm && sym.Class != Nterm {
		sym.Number = s.NVars
		s.NVars++
	} else if class == Token && sym.Number == NumberUndefined {
		sym.Number = s.NTokens
		s.NTokens++
	}
	sym.Class = class
	if declaring {
		if sym.Status == Declared && !warned {
			s.sink.Complain(diag.Wother, loc, "symbol %s redeclared", sym.Tag.String())
		}
		sym.Status = Declared
	}
}

// UserTokenNumberSet sets sym's user token number, routing the write
// to sym's alias partner when sym is the identifier side of an alias
// pair. Setting 0 designates sym as the $end token.
func (s *Store) UserTokenNumberSet(sym *Symbol, n int, loc diag.Location) {
	target := sym
	if sym.IsAliasIdentifier() {
		target = sym.alias
	}
	if target.UserTokenNumber != UserNumberUndefined && target.UserTokenNumber != n {
		s.sink.Complain(diag.Complaint, loc, "redefining user token number of %s", sym.Tag.String())
	}
	target.UserTokenNumber = n
	if n == 0 {
		s.EndToken = sym
		if sym.Number != NumberUndefined {
			s.NTokens--
		}
		sym.Number = 0
	}
}

// MakeAlias links sym (the identifier form, e.g. IF) to str (the
// literal-string form, e.g. "if") as one logical token. Complains and
// does nothing if either side already has an alias.
func (s *Store) MakeAlias(sym, str *Symbol, loc diag.Location) {
	if str.alias != nil {
		s.sink.Complain(diag.Wother, loc, "symbol %s used more than once as a literal string", str.Tag.String())
		return
	}
	if sym.alias != nil {
		s.sink.Complain(diag.Wother, loc, "symbol %s given more than one literal string", sym.Tag.String())
		return
	}
	str.Class = Token
	str.UserTokenNumber = sym.UserTokenNumber
	sym.UserTokenNumber = UserNumberHasStringAlias
	str.alias = sym
	sym.alias = str
	str.Number = sym.Number
	if sym.hasTypeName {
		s.TypeSet(str, sym.TypeName.String(), loc)
	}
}

// SortedSymbols returns every symbol in tag-collation order,
// materializing the cache on first call. Once materialized, further
// calls to Get or GetSemanticType that would create a new entry panic
// (spec §5's "no insertion after first sorted iteration").
func (s *Store) SortedSymbols() []*Symbol {
	if s.sorted != nil {
		return s.sorted
	}
	set := treeset.NewWith(symbolComparator)
	for _, sym := range s.symbols {
		set.Add(sym)
	}
	out := make([]*Symbol, 0, set.Size())
	for _, v := range set.Values() {
		out = append(out, v.(*Symbol))
	}
	s.sorted = out
	return out
}

