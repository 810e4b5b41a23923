package graph

import (
	"container/heap"

	"github.com/dekarrin/pegflow/internal/setutil"
)

// Order computes the execution plan: a topological sort over the
// union of every target's subgraph, with ties between otherwise-independent
// operations broken by target priority — operations needed by an
// earlier-added target sort before ones only needed by a later one. The
// result is memoized until the next mutating call.
func (g *Graph) Order() ([]Operation, error) {
	if g.orderValid {
		return g.orderCache, g.orderErr
	}

	order, err := g.computeOrder()
	g.orderCache, g.orderErr, g.orderValid = order, err, true
	return order, err
}

func (g *Graph) computeOrder() ([]Operation, error) {
	targetRank, err := g.targetPriorityOrder()
	if err != nil {
		return nil, err
	}

	nodeSet := setutil.New[uint64]()
	priority := make(map[uint64]int)
	for rank, target := range targetRank {
		sub, err := g.subgraphHashes(target)
		if err != nil {
			return nil, err
		}
		for _, h := range sub.Elements() {
			nodeSet.Add(h)
			if existing, ok := priority[h]; !ok || rank < existing {
				priority[h] = rank
			}
		}
	}

	hashOrder, err := prioritySort(nodeSet, g.preds, priority)
	if err != nil {
		return nil, err
	}

	ops := make([]Operation, len(hashOrder))
	for i, h := range hashOrder {
		ops[i] = g.ops[h]
	}
	return ops, nil
}

// targetPriorityOrder is phase 1: a topological sort of the graph
// restricted to targets alone, edges being "target u is in target v's
// subgraph". Ties (targets with no dependency relationship to each other)
// break by the order AddTarget first saw them.
func (g *Graph) targetPriorityOrder() ([]uint64, error) {
	targets := g.TargetsInOrder()
	nodeSet := setutil.Of(targets...)

	targetPreds := make(map[uint64]setutil.Set[uint64], len(targets))
	priority := make(map[uint64]int, len(targets))
	for i, t := range targets {
		priority[t] = i

		sub, err := g.subgraphHashes(t)
		if err != nil {
			return nil, err
		}
		own := setutil.New[uint64]()
		for _, h := range sub.Elements() {
			if h != t && nodeSet.Has(h) {
				own.Add(h)
			}
		}
		targetPreds[t] = own
	}

	return prioritySort(nodeSet, targetPreds, priority)
}

// prioritySort performs a priority-tie-broken Kahn's-algorithm topological
// sort over nodes, using preds restricted to nodes as the dependency edges
// and priority as the tie-break key among nodes simultaneously ready (zero
// remaining in-degree): lower priority value goes first.
func prioritySort(nodes setutil.Set[uint64], preds map[uint64]setutil.Set[uint64], priority map[uint64]int) ([]uint64, error) {
	indegree := make(map[uint64]int, nodes.Len())
	successors := make(map[uint64][]uint64, nodes.Len())

	for _, n := range nodes.Elements() {
		indegree[n] = 0
	}
	for _, n := range nodes.Elements() {
		for _, p := range preds[n].Elements() {
			if nodes.Has(p) {
				indegree[n]++
				successors[p] = append(successors[p], n)
			}
		}
	}

	ready := &readyHeap{}
	heap.Init(ready)
	for _, n := range nodes.Elements() {
		if indegree[n] == 0 {
			heap.Push(ready, heapItem{hash: n, priority: priority[n]})
		}
	}

	order := make([]uint64, 0, nodes.Len())
	for ready.Len() > 0 {
		item := heap.Pop(ready).(heapItem)
		order = append(order, item.hash)
		for _, s := range successors[item.hash] {
			indegree[s]--
			if indegree[s] == 0 {
				heap.Push(ready, heapItem{hash: s, priority: priority[s]})
			}
		}
	}

	if len(order) != nodes.Len() {
		emitted := setutil.Of(order...)
		var residual []uint64
		for _, n := range nodes.Elements() {
			if !emitted.Has(n) {
				residual = append(residual, n)
			}
		}
		return nil, &CycleError{Residual: residual}
	}

	return order, nil
}
