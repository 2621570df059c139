package symtab

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

func loadArchive(t *testing.T, name string) *txtar.Archive {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("reading golden archive %s: %v", name, err)
	}
	return txtar.Parse(data)
}

func archiveFile(t *testing.T, a *txtar.Archive, name string) string {
	t.Helper()
	for _, f := range a.Files {
		if f.Name == name {
			return string(f.Data)
		}
	}
	t.Fatalf("archive has no file %q", name)
	return ""
}

// TestGoldenE5GroupDot regenerates the E5 precedence-graph DOT output
// and checks it against symtab/testdata/e5_group.txtar: every fragment
// listed must appear, and exactly one cluster subgraph is expected
// (A and B collapse; X and Y must not).
func TestGoldenE5GroupDot(t *testing.T) {
	a := loadArchive(t, "e5_group.txtar")
	fragments := strings.Split(strings.TrimSpace(archiveFile(t, a, "want-fragments.txt")), "\n")
	wantClusters, err := strconv.Atoi(strings.TrimSpace(archiveFile(t, a, "want-cluster-count")))
	if err != nil {
		t.Fatalf("bad want-cluster-count: %v", err)
	}

	s, _ := newTestStore()
	sa := s.Get("A", loc(1))
	sb := s.Get("B", loc(2))
	sx := s.Get("X", loc(3))
	sy := s.Get("Y", loc(4))
	s.ClassSet(sa, Token, loc(1), true)
	s.ClassSet(sb, Token, loc(2), true)
	s.ClassSet(sx, Token, loc(3), true)
	s.ClassSet(sy, Token, loc(4), true)
	start := s.Get("start", loc(0))
	s.ClassSet(start, Nterm, loc(0), true)

	g := s.PrecedenceGraph()
	g.RegisterPrecedence(sa.Number, sx.Number)
	g.RegisterPrecedence(sa.Number, sy.Number)
	g.RegisterPrecedence(sb.Number, sx.Number)
	g.RegisterPrecedence(sb.Number, sy.Number)
	n := g.Group()
	if n != wantClusters {
		t.Fatalf("expected %d group(s), got %d", wantClusters, n)
	}

	packed := packedAt(g)
	var buf strings.Builder
	g.WriteRelationGraph(&buf, packed)
	out := buf.String()

	for _, frag := range fragments {
		if !strings.Contains(out, frag) {
			t.Errorf("expected DOT output to contain %q, got:\n%s", frag, out)
		}
	}
	// The legend is a cluster subgraph too; only group clusters count.
	got := strings.Count(out, "subgraph cluster_") - strings.Count(out, "subgraph cluster_legend")
	if got != wantClusters {
		t.Errorf("expected %d cluster subgraph(s), got %d", wantClusters, got)
	}
}

// TestGoldenE6ReductionDot regenerates the E6 transitive-reduction DOT
// output and checks it against symtab/testdata/e6_reduce.txtar.
func TestGoldenE6ReductionDot(t *testing.T) {
	a := loadArchive(t, "e6_reduce.txtar")
	fragments := strings.Split(strings.TrimSpace(archiveFile(t, a, "want-fragments.txt")), "\n")
	wantEdges, err := strconv.Atoi(strings.TrimSpace(archiveFile(t, a, "want-edge-count")))
	if err != nil {
		t.Fatalf("bad want-edge-count: %v", err)
	}

	s, _ := newTestStore()
	sa := s.Get("A", loc(1))
	sb := s.Get("B", loc(2))
	sc := s.Get("C", loc(3))
	s.ClassSet(sa, Token, loc(1), true)
	s.ClassSet(sb, Token, loc(2), true)
	s.ClassSet(sc, Token, loc(3), true)

	g := s.PrecedenceGraph()
	g.RegisterPrecedence(sa.Number, sb.Number)
	g.RegisterPrecedence(sb.Number, sc.Number)
	g.RegisterPrecedence(sa.Number, sc.Number)

	packed := packedAt(g)
	var buf strings.Builder
	g.WriteTransitiveReduction(&buf, packed)
	out := buf.String()

	for _, frag := range fragments {
		if !strings.Contains(out, frag) {
			t.Errorf("expected DOT output to contain %q, got:\n%s", frag, out)
		}
	}
	if got := strings.Count(out, "->"); got != wantEdges {
		t.Errorf("expected %d edges after reduction, got %d in:\n%s", wantEdges, got, out)
	}
}
