package seeder

import (
	"fmt"
	"sort"

	"github.com/Rana718/ecomseed/internal/model"
)

// DependencyGraph orders entity sets so referenced sets are written first.
type DependencyGraph struct {
	deps map[model.EntitySet][]model.EntitySet
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		deps: make(map[model.EntitySet][]model.EntitySet),
	}
}

// SchemaGraph is the foreign-key graph of the target schema.
func SchemaGraph() *DependencyGraph {
	g := NewDependencyGraph()
	g.AddSet(model.SetCategories)
	g.AddSet(model.SetProducts, model.SetCategories)
	g.AddSet(model.SetUsers)
	g.AddSet(model.SetCampaigns)
	g.AddSet(model.SetTrafficSources, model.SetCampaigns)
	g.AddSet(model.SetOrders, model.SetUsers, model.SetProducts, model.SetCampaigns)
	g.AddSet(model.SetOrderItems, model.SetOrders, model.SetProducts)
	g.AddSet(model.SetOrderCampaigns, model.SetOrders, model.SetCampaigns)
	g.AddSet(model.SetBehaviors, model.SetUsers, model.SetProducts, model.SetTrafficSources, model.SetOrders)
	return g
}

func (g *DependencyGraph) AddSet(set model.EntitySet, deps ...model.EntitySet) {
	g.deps[set] = append(g.deps[set], deps...)
}

// BuildInsertionOrder returns a topological order. Sets are visited by name so
// the order is stable from run to run.
func (g *DependencyGraph) BuildInsertionOrder() ([]model.EntitySet, error) {
	visited := make(map[model.EntitySet]bool)
	temp := make(map[model.EntitySet]bool)
	var order []model.EntitySet

	var visit func(model.EntitySet) error
	visit = func(set model.EntitySet) error {
		if temp[set] {
			return fmt.Errorf("circular dependency detected involving set: %s", set)
		}
		if visited[set] {
			return nil
		}

		temp[set] = true
		for _, dep := range sortedSets(g.deps[set]) {
			if dep != set { // self-references
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		temp[set] = false
		visited[set] = true
		order = append(order, set)
		return nil
	}

	names := make([]model.EntitySet, 0, len(g.deps))
	for set := range g.deps {
		names = append(names, set)
	}
	for _, set := range sortedSets(names) {
		if !visited[set] {
			if err := visit(set); err != nil {
				return nil, err
			}
		}
	}

	return order, nil
}

// ClearOrder is the insertion order reversed, so dependents are cleared first.
func (g *DependencyGraph) ClearOrder() ([]model.EntitySet, error) {
	order, err := g.BuildInsertionOrder()
	if err != nil {
		return nil, err
	}
	out := make([]model.EntitySet, len(order))
	for i, set := range order {
		out[len(order)-1-i] = set
	}
	return out, nil
}

func sortedSets(sets []model.EntitySet) []model.EntitySet {
	out := make([]model.EntitySet, len(sets))
	copy(out, sets)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
