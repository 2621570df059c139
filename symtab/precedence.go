package symtab

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/npillmayer/gramtab/diag"
)

// PrecGraph is the directed "has strictly higher precedence than"
// relation declared with %left/%right/%nonassoc/%precedence. Nodes
// are indexed by symbol number for symbols 0..nsyms-1; group nodes
// created by Group() are appended with indices >= nsyms.
type PrecGraph struct {
	store *Store
	nodes []*precNode

	usedAssoc []bool
	ngroups   int
}

// precNode is one node of the precedence graph: a symbol, or (once
// Group has run) a synthetic equivalence class of symbols. Succ and
// Pred are sorted sets of node ids, replacing the source's singly
// linked symgraphlink lists per spec §9's redesign guidance.
type precNode struct {
	id      int
	succ    *treeset.Set
	pred    *treeset.Set
	members []int // non-nil only for group nodes; the grouped ids, in the order they were merged
}

func newPrecNode(id int) *precNode {
	return &precNode{
		id:   id,
		succ: treeset.NewWith(utils.IntComparator),
		pred: treeset.NewWith(utils.IntComparator),
	}
}

func (n *precNode) isGroup() bool {
	return n.members != nil
}

func (n *precNode) outdegree() int { return n.succ.Size() }
func (n *precNode) indegree() int  { return n.pred.Size() }

// PrecedenceGraph lazily builds and returns the precedence graph for
// s, initializing one node per symbol counted in NSyms the first time
// it is called. Later calls return that same graph, so its node ids
// keep the symbol numbering in effect when it was first built: a graph
// built before Finalize is not renumbered by the pack phase.
func (s *Store) PrecedenceGraph() *PrecGraph {
	if s.precGraph == nil {
		g := &PrecGraph{store: s}
		g.nodes = make([]*precNode, s.NSyms)
		for i := range g.nodes {
			g.nodes[i] = newPrecNode(i)
		}
		s.precGraph = g
	}
	return s.precGraph
}

// RegisterPrecedence records that symbol hi has strictly higher
// precedence than symbol lo. Repeated registration of the same pair
// is idempotent: outdegree(hi) and indegree(lo) only change the first
// time.
func (g *PrecGraph) RegisterPrecedence(hi, lo int) {
	tracer().Debugf("register_precedence: %d > %d", hi, lo)
	g.nodes[hi].succ.Add(lo)
	g.nodes[lo].pred.Add(hi)
}

// RegisterAssoc records that symbols i and j both participated in a
// resolved associativity conflict, so AssocWarnings will not
// flag either as unused.
func (g *PrecGraph) RegisterAssoc(i, j int) {
	if g.usedAssoc == nil {
		g.usedAssoc = make([]bool, len(g.nodes))
	}
	g.usedAssoc[i] = true
	g.usedAssoc[j] = true
}

// PrecedenceWarnings emits a Wprecedence warning for every token that
// declared a %precedence associativity but was never used in a
// register_precedence relation.
func (g *PrecGraph) PrecedenceWarnings(sink diag.Sink, packed []*Symbol) {
	for i, sym := range packed {
		if i >= len(g.nodes) {
			break
		}
		n := g.nodes[i]
		if sym.Prec != 0 && n.pred.Empty() && n.succ.Empty() && sym.Assoc == PrecedenceAssoc {
			sink.Complain(diag.Wprecedence, sym.Location, "useless precedence for %s", sym.Tag.String())
		}
	}
}

// AssocWarnings emits a Wprecedence warning for every symbol that
// declared an associativity other than %precedence but was never
// involved in a resolved conflict via RegisterAssoc.
func (g *PrecGraph) AssocWarnings(sink diag.Sink, packed []*Symbol) {
	for i, sym := range packed {
		used := i < len(g.usedAssoc) && g.usedAssoc[i]
		if sym.Assoc != UndefAssoc && sym.Assoc != PrecedenceAssoc && !used {
			sink.Complain(diag.Wprecedence, sym.Location, "useless associativity for %s", sym.Tag.String())
		}
	}
}
