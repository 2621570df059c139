package symtab

import (
	"testing"

	"github.com/npillmayer/gramtab/diag"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFinalizeAliasE1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramtab.symtab")
	defer teardown()
	s, c := newTestStore()
	ifTok := s.Get("IF", loc(1))
	ifLit := s.Get(`"if"`, loc(1))
	s.ClassSet(ifTok, Token, loc(1), true)
	s.UserTokenNumberSet(ifTok, 300, loc(1))
	s.MakeAlias(ifTok, ifLit, loc(2))
	start := s.Get("start", loc(0))
	s.ClassSet(start, Nterm, loc(0), true)

	packed, err := s.Finalize(start, loc(0))
	if err != nil {
		t.Fatalf("Finalize returned an error: %v", err)
	}
	if c.HasErrors() {
		t.Fatalf("unexpected complaints: %v", c.Diagnostics())
	}
	if ifTok.Number != ifLit.Number {
		t.Errorf("alias pair should share a final number: %d vs %d", ifTok.Number, ifLit.Number)
	}
	if packed.TokenTranslations[300] != ifTok.Number {
		t.Errorf("token_translations[300] = %d, want %d", packed.TokenTranslations[300], ifTok.Number)
	}
}

func TestFinalizeUsedButUndefinedE3(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramtab.symtab")
	defer teardown()
	s, c := newTestStore()
	orphan := s.Get("orphan", loc(1))
	orphan.Status = Needed
	start := s.Get("start", loc(0))
	s.ClassSet(start, Nterm, loc(0), true)

	packed, err := s.Finalize(start, loc(0))
	if err != nil {
		t.Fatalf("Finalize returned an error: %v", err)
	}
	if orphan.Class != Nterm {
		t.Errorf("undefined-but-needed symbol should become a nonterminal, got %s", orphan.Class)
	}
	found := false
	for _, d := range c.Diagnostics() {
		if d.Severity.IsError() {
			found = true
		}
	}
	if !found {
		t.Error("expected an error-severity complaint for a needed-but-undefined symbol")
	}
	present := false
	for _, sym := range packed.Symbols {
		if sym == orphan {
			present = true
		}
	}
	if !present {
		t.Error("undefined symbol should still be packed")
	}
}

func TestFinalizePosixToken256E4(t *testing.T) {
	s, _ := newTestStore()
	a := s.Get("A", loc(1))
	b := s.Get("B", loc(2))
	d := s.Get("D", loc(3))
	s.ClassSet(a, Token, loc(1), true)
	s.ClassSet(b, Token, loc(2), true)
	s.ClassSet(d, Token, loc(3), true)
	s.UserTokenNumberSet(a, 100, loc(1))
	s.UserTokenNumberSet(b, 200, loc(2))
	s.UserTokenNumberSet(d, 400, loc(3))
	start := s.Get("start", loc(0))
	s.ClassSet(start, Nterm, loc(0), true)

	packed, err := s.Finalize(start, loc(0))
	if err != nil {
		t.Fatalf("Finalize returned an error: %v", err)
	}
	if s.ErrToken.UserTokenNumber != 256 {
		t.Errorf("error token should claim user token number 256, got %d", s.ErrToken.UserTokenNumber)
	}
	if packed.MaxUserTokenNumber != 400 {
		t.Errorf("max_user_token_number = %d, want 400", packed.MaxUserTokenNumber)
	}
}

func TestFinalizeUsedTypeDestructorIsNotUseless(t *testing.T) {
	s, c := newTestStore()
	a := s.Get("A", loc(1))
	s.ClassSet(a, Token, loc(1), true)
	s.TypeSet(a, "ival", loc(1))
	ival := s.GetSemanticType("ival", loc(1))
	s.SemanticTypeCodePropsSet(ival, Destructor, "free($$);", loc(1))
	start := s.Get("start", loc(0))
	s.ClassSet(start, Nterm, loc(0), true)

	_, err := s.Finalize(start, loc(0))
	if err != nil {
		t.Fatalf("Finalize returned an error: %v", err)
	}
	for _, d := range c.Diagnostics() {
		if d.Severity == diag.Wother {
			t.Errorf("did not expect a useless-destructor warning, got: %v", d)
		}
	}
}

func TestFinalizeUnusedTypeDestructorIsUseless(t *testing.T) {
	// The one symbol of type sval declares its own printer, so the
	// type-level printer is shadowed for every symbol that could have
	// used it and is genuinely dead.
	s, c := newTestStore()
	shadowed := s.Get("B", loc(2))
	s.ClassSet(shadowed, Token, loc(2), true)
	s.TypeSet(shadowed, "sval", loc(2))
	s.CodePropsSet(shadowed, Printer, "print_own($$);", loc(2))
	sval := s.GetSemanticType("sval", loc(2))
	s.SemanticTypeCodePropsSet(sval, Printer, "print_type($$);", loc(2))
	start := s.Get("start", loc(0))
	s.ClassSet(start, Nterm, loc(0), true)

	_, err := s.Finalize(start, loc(0))
	if err != nil {
		t.Fatalf("Finalize returned an error: %v", err)
	}
	if sval.props[Printer].IsUsed {
		t.Fatal("test setup error: the type's own printer should never be selected once the symbol overrides it")
	}
	found := false
	for _, d := range c.Diagnostics() {
		if d.Severity == diag.Wother {
			found = true
		}
	}
	if !found {
		t.Error("expected a useless-printer warning for a type whose printer every symbol shadows")
	}
}

func TestFinalizeTokenTranslationsWriteInSortedOrder(t *testing.T) {
	// B and A both erroneously claim user token number 100; sorted-tag
	// order visits A before B, so B, sorting after A, must win the slot.
	s, c := newTestStore()
	b := s.Get("B", loc(1))
	a := s.Get("A", loc(2))
	s.ClassSet(b, Token, loc(1), true)
	s.ClassSet(a, Token, loc(2), true)
	s.UserTokenNumberSet(b, 100, loc(1))
	s.UserTokenNumberSet(a, 100, loc(2))
	start := s.Get("start", loc(0))
	s.ClassSet(start, Nterm, loc(0), true)

	packed, err := s.Finalize(start, loc(0))
	if err != nil {
		t.Fatalf("Finalize returned an error: %v", err)
	}
	if !c.HasErrors() {
		t.Fatal("expected a redeclaration complaint for the shared user token number")
	}
	if got := packed.TokenTranslations[100]; got != b.Number {
		t.Errorf("translations[100] = %d, want %d (B, the later symbol in sorted-tag order)", got, b.Number)
	}
}

func TestFinalizeStartSymbolUndefinedIsFatal(t *testing.T) {
	s, _ := newTestStore()
	start := s.Get("start", loc(0)) // never classified
	_, err := s.Finalize(start, loc(0))
	if err == nil {
		t.Fatal("expected a fatal error for an undefined start symbol")
	}
}

func TestFinalizeStartSymbolTokenIsFatal(t *testing.T) {
	s, _ := newTestStore()
	start := s.Get("start", loc(0))
	s.ClassSet(start, Token, loc(0), true)
	_, err := s.Finalize(start, loc(0))
	if err == nil {
		t.Fatal("expected a fatal error when the start symbol is a token")
	}
}

func TestFinalizeNumberingPartition(t *testing.T) {
	s, _ := newTestStore()
	a := s.Get("A", loc(1))
	x := s.Get("x", loc(2))
	s.ClassSet(a, Token, loc(1), true)
	s.ClassSet(x, Nterm, loc(2), true)
	start := s.Get("start", loc(0))
	s.ClassSet(start, Nterm, loc(0), true)

	packed, err := s.Finalize(start, loc(0))
	if err != nil {
		t.Fatalf("Finalize returned an error: %v", err)
	}
	seen := make(map[int]bool)
	for i, sym := range packed.Symbols {
		if sym.Number != i {
			t.Errorf("symbol at slot %d has Number %d", i, sym.Number)
		}
		if seen[sym.Number] {
			t.Errorf("duplicate number %d", sym.Number)
		}
		seen[sym.Number] = true
	}
	for i := 0; i < s.NTokens; i++ {
		if packed.Symbols[i].Class != Token {
			t.Errorf("slot %d should be a token, got %s", i, packed.Symbols[i].Class)
		}
	}
	for i := s.NTokens; i < s.NSyms; i++ {
		if packed.Symbols[i].Class != Nterm {
			t.Errorf("slot %d should be a nonterminal, got %s", i, packed.Symbols[i].Class)
		}
	}
}
