package symtab

import (
	"strings"
	"testing"
)

// TestWriteRelationGraphEmitsClusterForGroup drives the public
// WriteRelationGraph entry point end to end (it calls Group()
// internally) rather than the unexported group(), so it would have
// caught Group() ever silently skipping the first grouping pass.
func TestWriteRelationGraphEmitsClusterForGroup(t *testing.T) {
	s, _ := newTestStore()
	a := s.Get("A", loc(1))
	b := s.Get("B", loc(2))
	x := s.Get("X", loc(3))
	y := s.Get("Y", loc(4))
	s.ClassSet(a, Token, loc(1), true)
	s.ClassSet(b, Token, loc(2), true)
	s.ClassSet(x, Token, loc(3), true)
	s.ClassSet(y, Token, loc(4), true)

	g := s.PrecedenceGraph()
	g.RegisterPrecedence(a.Number, x.Number)
	g.RegisterPrecedence(a.Number, y.Number)
	g.RegisterPrecedence(b.Number, x.Number)
	g.RegisterPrecedence(b.Number, y.Number)

	packed := packedAt(g)
	var buf strings.Builder
	g.WriteRelationGraph(&buf, packed)
	out := buf.String()

	if !strings.Contains(out, "subgraph cluster_") {
		t.Errorf("expected a subgraph cluster declaration, got %q", out)
	}
	if !strings.Contains(out, `"A"`) || !strings.Contains(out, `"B"`) {
		t.Errorf("expected the cluster to declare both A and B, got %q", out)
	}
}

func TestWriteTransitiveReductionOmitsRedundantEdge(t *testing.T) {
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

	packed := packedAt(g)
	var buf strings.Builder
	g.WriteTransitiveReduction(&buf, packed)
	out := buf.String()

	if !strings.Contains(out, "A") || !strings.Contains(out, "B") || !strings.Contains(out, "C") {
		t.Fatalf("expected all three symbols in the output, got %q", out)
	}
	if strings.Count(out, "->") != 2 {
		t.Errorf("expected exactly two edges after reduction, got %q", out)
	}
}
