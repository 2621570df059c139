package symtab

import "testing"

func TestTransitiveReductionDropsRedundantEdge(t *testing.T) {
	// E6 — A>B, B>C, A>C; reduction keeps A>B and B>C, drops A>C.
	s, _ := newTestStore()
	a := s.Get("A", loc(1))
	b := s.Get("B", loc(2))
	c := s.Get("C", loc(3))
	s.ClassSet(a, Token, loc(1), true)
	s.ClassSet(b, Token, loc(2), true)
	s.ClassSet(c, Token, loc(3), true)

	g := s.PrecedenceGraph()
	g.RegisterPrecedence(a.Number, b.Number)
	g.RegisterPrecedence(b.Number, c.Number)
	g.RegisterPrecedence(a.Number, c.Number)

	reduced := TransitiveReduction(g.Matrix())
	if !reduced[a.Number][b.Number] {
		t.Error("expected A>B to survive reduction")
	}
	if !reduced[b.Number][c.Number] {
		t.Error("expected B>C to survive reduction")
	}
	if reduced[a.Number][c.Number] {
		t.Error("expected the redundant A>C edge to be dropped")
	}
}

func TestTransitiveClosureAddsImpliedEdge(t *testing.T) {
	s, _ := newTestStore()
	a := s.Get("A", loc(1))
	b := s.Get("B", loc(2))
	c := s.Get("C", loc(3))
	s.ClassSet(a, Token, loc(1), true)
	s.ClassSet(b, Token, loc(2), true)
	s.ClassSet(c, Token, loc(3), true)

	g := s.PrecedenceGraph()
	g.RegisterPrecedence(a.Number, b.Number)
	g.RegisterPrecedence(b.Number, c.Number)

	closure := TransitiveClosure(g.Matrix())
	if !closure[a.Number][c.Number] {
		t.Error("expected the implied A>C edge in the transitive closure")
	}
}
