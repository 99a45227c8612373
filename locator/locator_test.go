package locator

import (
	"testing"

	"github.com/heiftools/heicbridge/host"
)

const nodeType = "LoadImagePlusHEIC"

func TestLocate_PrefersSelectedMatch(t *testing.T) {
	g := &host.StubGraph{}
	a := host.NewStubNode(nodeType)
	b := host.NewStubNode(nodeType)
	other := host.NewStubNode("SomethingElse")
	g.Add(a)
	g.Add(b)
	g.Add(other)
	g.Select(other, a)

	if got := Locate(g, nodeType); got != host.Node(a) {
		t.Errorf("Locate = %v, want the selected matching node", got)
	}
}

func TestLocate_UniqueInstance(t *testing.T) {
	g := &host.StubGraph{}
	only := host.NewStubNode(nodeType)
	g.Add(host.NewStubNode("SomethingElse"))
	g.Add(only)

	if got := Locate(g, nodeType); got != host.Node(only) {
		t.Errorf("Locate = %v, want the unique instance", got)
	}
}

func TestLocate_MostRecentlyAddedWins(t *testing.T) {
	g := &host.StubGraph{}
	a := host.NewStubNode(nodeType)
	b := host.NewStubNode(nodeType)
	g.Add(a)
	g.Add(b)

	if got := Locate(g, nodeType); got != host.Node(b) {
		t.Errorf("Locate = %v, want the node added last", got)
	}
}

func TestLocate_NoMatch(t *testing.T) {
	g := &host.StubGraph{}
	g.Add(host.NewStubNode("SomethingElse"))

	if got := Locate(g, nodeType); got != nil {
		t.Errorf("Locate = %v, want nil for no match", got)
	}
	if got := Locate(nil, nodeType); got != nil {
		t.Errorf("Locate on nil graph = %v, want nil", got)
	}
}

func TestLocate_SelectionOfWrongTypeIgnored(t *testing.T) {
	g := &host.StubGraph{}
	match := host.NewStubNode(nodeType)
	wrong := host.NewStubNode("SomethingElse")
	g.Add(match)
	g.Add(wrong)
	g.Select(wrong)

	if got := Locate(g, nodeType); got != host.Node(match) {
		t.Errorf("Locate = %v, want fallback past a wrong-type selection", got)
	}
}
