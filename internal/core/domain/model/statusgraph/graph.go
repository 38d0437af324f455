// Package statusgraph is the single table of legal status transitions for an
// entity kind. Products and shipment groups each declare one Graph; every
// transition anywhere in the service is checked against it.
package statusgraph

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// State is the constraint for status enums carried by a graph.
type State interface {
	comparable
	fmt.Stringer
}

// Edge is one legal transition and the roles allowed to take it.
type Edge[S State] struct {
	From  S
	To    S
	Roles []kernel.Role
}

// Graph is immutable after New.
type Graph[S State] struct {
	entityType string
	edges      []Edge[S]
	index      map[S]map[S][]kernel.Role
}

// New builds a graph for entityType. Duplicate edges panic: the tables are
// package-level literals, so a duplicate is a programming error.
func New[S State](entityType string, edges ...Edge[S]) *Graph[S] {
	g := &Graph[S]{
		entityType: entityType,
		edges:      edges,
		index:      make(map[S]map[S][]kernel.Role, len(edges)),
	}
	for _, e := range edges {
		if g.index[e.From] == nil {
			g.index[e.From] = make(map[S][]kernel.Role)
		}
		if _, dup := g.index[e.From][e.To]; dup {
			panic(fmt.Sprintf("statusgraph: duplicate %s edge %s -> %s", entityType, e.From, e.To))
		}
		g.index[e.From][e.To] = e.Roles
	}
	return g
}

// EntityType is the name used in errors and audit entries.
func (g *Graph[S]) EntityType() string {
	return g.entityType
}

// Allows reports whether to is an out-edge of from.
func (g *Graph[S]) Allows(from, to S) bool {
	_, ok := g.index[from][to]
	return ok
}

// Targets lists the out-edges of from in declaration order.
func (g *Graph[S]) Targets(from S) []S {
	targets := make([]S, 0, len(g.index[from]))
	for _, e := range g.edges {
		if e.From == from {
			targets = append(targets, e.To)
		}
	}
	return targets
}

// IsTerminal reports whether from has no out-edges.
func (g *Graph[S]) IsTerminal(from S) bool {
	return len(g.index[from]) == 0
}

// Check validates the edge and then the actor's role on it. Edge validity is
// checked first so callers always learn about an impossible target before an
// authorization problem.
func (g *Graph[S]) Check(from, to S, actor kernel.Actor) error {
	roles, ok := g.index[from][to]
	if !ok {
		return errs.NewInvalidTransitionError(g.entityType, from.String(), to.String())
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if !slices.Contains(roles, actor.Role()) {
		return errs.NewUnauthorizedError(actor.Role().String(), from.String(), to.String())
	}
	return nil
}

// CheckStay authorizes a request to stay at s, such as advancing to the
// current status. The actor needs a role allowed on an edge into s, or on an
// edge out of s when s has no in-edges.
func (g *Graph[S]) CheckStay(at S, actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	var into, out []kernel.Role
	for _, e := range g.edges {
		if e.To == at {
			into = append(into, e.Roles...)
		}
		if e.From == at {
			out = append(out, e.Roles...)
		}
	}
	roles := into
	if len(roles) == 0 {
		roles = out
	}
	if !slices.Contains(roles, actor.Role()) {
		return errs.NewUnauthorizedError(actor.Role().String(), at.String(), at.String())
	}
	return nil
}

// Reachable returns every state reachable from start, start included.
func (g *Graph[S]) Reachable(start S) map[S]bool {
	seen := map[S]bool{start: true}
	queue := []S{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range g.Targets(cur) {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}

// Edges returns a copy of the declared edges.
func (g *Graph[S]) Edges() []Edge[S] {
	return slices.Clone(g.edges)
}

// Render writes the graph as a plain-text edge table, one edge per line.
func (g *Graph[S]) Render(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# %s\n", g.entityType); err != nil {
		return err
	}
	for _, e := range g.edges {
		roles := make([]string, len(e.Roles))
		for i, r := range e.Roles {
			roles[i] = r.String()
		}
		if _, err := fmt.Fprintf(w, "%-18s -> %-18s [%s]\n", e.From, e.To, strings.Join(roles, ",")); err != nil {
			return err
		}
	}
	return nil
}
