// Package locator resolves which host node a drop or upload should update.
package locator

import "github.com/heiftools/heicbridge/host"

// Locate returns the node of the given type a drop or upload should target.
// Preference order: a currently selected node of that type; otherwise the
// unique instance when exactly one exists; otherwise the most recently added
// one. Returns nil when no instance exists; callers treat nil as "nothing
// to update", not an error.
func Locate(graph host.Graph, nodeType string) host.Node {
	if graph == nil {
		return nil
	}

	for _, n := range graph.Selected() {
		if n.Type() == nodeType {
			return n
		}
	}

	var last host.Node
	count := 0
	for _, n := range graph.Nodes() {
		if n.Type() == nodeType {
			last = n
			count++
		}
	}
	if count == 0 {
		return nil
	}
	// Unique instance, or the newest of several: either way the last match
	// in creation order.
	return last
}
