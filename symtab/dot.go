package symtab

import (
	"fmt"
	"io"
)

func (g *PrecGraph) isGroupID(id int) bool {
	return g.nodes[id].isGroup()
}

// firstMember walks down a group's member chain until it reaches an
// actual symbol node, giving a valid dot anchor for edges that touch
// a cluster (print_graph_link's get_first_symbol).
func (g *PrecGraph) firstMember(id int) int {
	for g.isGroupID(id) {
		id = g.nodes[id].members[0]
	}
	return id
}

func (g *PrecGraph) declareNode(w io.Writer, id int, declared []bool, packed []*Symbol) {
	if declared[id] {
		return
	}
	declared[id] = true
	n := g.nodes[id]
	if n.isGroup() {
		fmt.Fprintf(w, "subgraph cluster_%d {\n", id)
		for _, m := range n.members {
			g.declareNode(w, m, declared, packed)
		}
		fmt.Fprintf(w, "}\n")
		return
	}
	fmt.Fprintf(w, "%d [label=%q]\n", id, packed[id].Tag.String())
}

func (g *PrecGraph) writeLink(w io.Writer, tail, head int, colored bool) {
	tn, hn := g.nodes[tail], g.nodes[head]
	color := "black"
	if colored {
		switch {
		case tn.outdegree() == 1 && hn.indegree() == 1:
			color = "red"
		case tn.outdegree() == 1:
			color = "blue"
		case hn.indegree() == 1:
			color = "green"
		}
	}
	fmt.Fprintf(w, "%d -> %d [", g.firstMember(tail), g.firstMember(head))
	switch {
	case g.isGroupID(head) && g.isGroupID(tail):
		fmt.Fprintf(w, "lhead=cluster_%d, ltail=cluster_%d, ", head, tail)
	case g.isGroupID(head):
		fmt.Fprintf(w, "lhead=cluster_%d, ", head)
	case g.isGroupID(tail):
		fmt.Fprintf(w, "ltail=cluster_%d, ", tail)
	}
	fmt.Fprintf(w, "color=%s];\n", color)
}

// WriteRelationGraph runs Group and emits the precedence relation as
// a Graphviz DOT digraph: a legend sub-cluster, one subgraph cluster
// per group (declared before its members, since dot requires a
// cluster's contents to appear inside its own braces), and one edge
// per surviving relation, colored by how "one-sided" the relation is.
func (g *PrecGraph) WriteRelationGraph(w io.Writer, packed []*Symbol) {
	g.Group()
	fmt.Fprint(w, "digraph rel{\ncompound=true; nodesep=\"0.3 equally\";"+
		"ranksep=\"3 equally\";\nsubgraph cluster_legend { \n"+
		"label=legend\n\"outdegree=1\" -> \"indegree<>1\""+
		" [color=blue];\n\"outdegree=1\" -> \"indegree=1\" "+
		"[color=red];\n\"outdegree<>1\" -> \"indegree=1\" "+
		"[color=green];\n}\n")

	declared := make([]bool, len(g.nodes))
	// Iterate backwards: groups are appended after their members, so
	// walking high-to-low id order visits (and declares) a group
	// before we would otherwise reach one of its members directly.
	for i := len(g.nodes) - 1; i > 0; i-- {
		n := g.nodes[i]
		if n == nil || (n.succ.Empty() && n.pred.Empty()) {
			continue
		}
		g.declareNode(w, i, declared, packed)
		for _, v := range n.succ.Values() {
			head := v.(int)
			g.declareNode(w, head, declared, packed)
			g.writeLink(w, i, head, true)
		}
	}
	fmt.Fprint(w, "}")
}

// WriteTransitiveReduction emits the transitive reduction of g's
// current edge set as a Graphviz DOT digraph, with uncolored edges.
func (g *PrecGraph) WriteTransitiveReduction(w io.Writer, packed []*Symbol) {
	reduced := TransitiveReduction(g.Matrix())
	fmt.Fprint(w, "digraph rel{\ncompound=true; nodesep=\"0.3 equally\";"+
		"ranksep=\"3 equally\";\n")
	declared := make([]bool, len(g.nodes))
	for i := range reduced {
		for j := range reduced[i] {
			if !reduced[i][j] {
				continue
			}
			g.declareNode(w, i, declared, packed)
			g.declareNode(w, j, declared, packed)
			g.writeLink(w, i, j, false)
		}
	}
	fmt.Fprint(w, "}")
}
