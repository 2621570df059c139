package symtab

import (
	"fmt"

	"github.com/npillmayer/gramtab/diag"
	"github.com/npillmayer/gramtab/intern"
)

// SymbolClass classifies a Symbol. The zero value, Unknown, means the
// grammar has mentioned the symbol but not yet said whether it is a
// token or a nonterminal.
type SymbolClass int

const (
	Unknown SymbolClass = iota
	Token
	Nterm
)

func (c SymbolClass) String() string {
	switch c {
	case Unknown:
		return "unknown"
	case Token:
		return "token"
	case Nterm:
		return "nterm"
	}
	panic(fmt.Sprintf("symtab: invalid SymbolClass %d", int(c)))
}

// Status tracks how confidently a symbol has been declared, feeding
// the "used but undefined" diagnostics of Store.Finalize's
// check-defined phase.
type Status int

const (
	Undeclared Status = iota
	Needed
	Declared
)

// Assoc is the declared associativity of a token's precedence.
type Assoc int

const (
	UndefAssoc Assoc = iota
	LeftAssoc
	RightAssoc
	NonAssoc
	PrecedenceAssoc
)

func (a Assoc) String() string {
	switch a {
	case UndefAssoc:
		return "undefined associativity"
	case LeftAssoc:
		return "%left"
	case RightAssoc:
		return "%right"
	case NonAssoc:
		return "%nonassoc"
	case PrecedenceAssoc:
		return "%precedence"
	}
	panic(fmt.Sprintf("symtab: invalid Assoc %d", int(a)))
}

// CodePropsKind selects between the two kinds of code a symbol or
// semantic type may carry.
type CodePropsKind int

const (
	Destructor CodePropsKind = iota
	Printer
)

func (k CodePropsKind) String() string {
	switch k {
	case Destructor:
		return "%destructor"
	case Printer:
		return "%printer"
	}
	panic(fmt.Sprintf("symtab: invalid CodePropsKind %d", int(k)))
}

const codePropsSize = 2

// CodePropsSource says where a resolved CodeProps value came from,
// mirroring code_props_type in the original: none means unset, Keep
// preserves a caller-supplied default, User means a grammar author
// wrote it explicitly.
type CodePropsSource int

const (
	CodePropsNone CodePropsSource = iota
	CodePropsKeep
	CodePropsUser
)

// CodeProps is a single piece of user-supplied code (a %destructor or
// %printer body) plus the bookkeeping needed to warn about unused
// declarations.
type CodeProps struct {
	Kind     CodePropsSource
	Code     string
	Location diag.Location
	IsUsed   bool
}

func (c CodeProps) hasCode() bool {
	return c.Kind != CodePropsNone && c.Code != ""
}

// Numeric sentinels exposed on the boundary, per spec §6.
const (
	UserNumberUndefined      = -1
	UserNumberHasStringAlias = -2
	NumberUndefined          = -1
)

// Symbol is either a terminal token or a nonterminal, identified by
// its interned tag. Two Symbols are the same grammar entity iff their
// Tag fields compare equal.
type Symbol struct {
	Tag      intern.Tag
	Location diag.Location

	TypeName     intern.Tag
	hasTypeName  bool
	TypeLocation diag.Location

	props [codePropsSize]CodeProps

	Number int

	Prec         int
	Assoc        Assoc
	PrecLocation diag.Location

	UserTokenNumber int

	alias *Symbol // symmetric: s.alias.alias == s

	Class  SymbolClass
	Status Status
}

func newSymbol(tag intern.Tag, loc diag.Location) *Symbol {
	return &Symbol{
		Tag:             tag,
		Location:        loc,
		Number:          NumberUndefined,
		Assoc:           UndefAssoc,
		UserTokenNumber: UserNumberUndefined,
		Class:           Unknown,
		Status:          Undeclared,
	}
}

// HasTypeName reports whether a %type has been declared for s.
func (s *Symbol) HasTypeName() bool {
	return s.hasTypeName
}

// Alias returns s's alias partner, or nil if s has none.
func (s *Symbol) Alias() *Symbol {
	return s.alias
}

// IsAliasIdentifier reports whether s is the identifier side of an
// alias pair, i.e. its own user token number lives on its partner.
func (s *Symbol) IsAliasIdentifier() bool {
	return s.UserTokenNumber == UserNumberHasStringAlias
}

// IsDummy reports whether s is a compiler-generated nonterminal, per
// the "@" / "$@" tag convention (spec §9 open question 5).
func (s *Symbol) IsDummy() bool {
	tag := s.Tag.String()
	if len(tag) == 0 {
		return false
	}
	if tag[0] == '@' {
		return true
	}
	return len(tag) > 1 && tag[0] == '$' && tag[1] == '@'
}

// isGenerated reports whether s's tag begins with "$", the convention
// symbol_code_props_get uses to skip applying default code props to
// engine-generated symbols.
func (s *Symbol) isGenerated() bool {
	tag := s.Tag.String()
	return len(tag) > 0 && tag[0] == '$'
}

func isIdentifierByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9', b == '_':
		return true
	}
	return false
}

// isIdentifier reports whether s is a valid C-style identifier (as
// opposed to a quoted literal string or an operator token).
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentifierByte(s[i]) {
			return false
		}
	}
	return true
}

// Identifier returns the identifier form of s: if s is the literal
// side of an alias pair it returns its partner's tag when that is a
// valid identifier, else the empty string. Panics if called on the
// identifier side of an alias pair, mirroring the aver() in
// symbol_id_get: that side's UserTokenNumber has already been
// repurposed as the has-string-alias sentinel and calling this on it
// is a programming error upstream.
func (s *Symbol) Identifier() string {
	if s.IsAliasIdentifier() {
		panic("symtab: Identifier called on the identifier side of an alias pair")
	}
	sym := s
	if sym.alias != nil {
		sym = sym.alias
	}
	tag := sym.Tag.String()
	if isIdentifier(tag) {
		return tag
	}
	return ""
}

// String renders a debug view of s, in the manner of symbol_print.
func (s *Symbol) String() string {
	if s == nil {
		return "<nil>"
	}
	out := fmt.Sprintf("%q", s.Tag.String())
	if s.hasTypeName {
		out += fmt.Sprintf(" type_name { %s }", s.TypeName.String())
	}
	if s.props[Destructor].hasCode() {
		out += fmt.Sprintf(" %%destructor { %s }", s.props[Destructor].Code)
	}
	if s.props[Printer].hasCode() {
		out += fmt.Sprintf(" %%printer { %s }", s.props[Printer].Code)
	}
	return out
}

// SemanticType is a `<tag>` grouping symbols that share destructor or
// printer code. Identity is Tag.
type SemanticType struct {
	Tag      intern.Tag
	Location diag.Location
	Status   Status
	props    [codePropsSize]CodeProps
}

func newSemanticType(tag intern.Tag, loc diag.Location) *SemanticType {
	return &SemanticType{Tag: tag, Location: loc, Status: Undeclared}
}

// isDefaultTag reports whether t is one of the two reserved semantic
// types ("" and "*") that never need to be "declared".
func (t *SemanticType) isDefaultTag() bool {
	tag := t.Tag.String()
	return tag == "" || tag == "*"
}
