package compose

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-compose/pkg/compose/model"
)

const defaultLabelLoc = "t"

// Node is a node of a Network: either a leaf carrying a label, or a nested network.
//
// Key is the key a pipeline reports the step under to its hooks, see model.StepInfo.Key.
// The leaf inside a wrapper shares the key of the wrapper, and the steps of a nested
// pipeline are keyed within that pipeline. Key takes no part in node equality.
type Node struct {
	Label string
	Key   string
	Net   *Network
}

// Leaf returns a node labelled label.
func Leaf(label string) Node {
	return Node{Label: label}
}

// IsNetwork reports whether the node is a nested network.
func (n Node) IsNetwork() bool {
	return n.Net != nil
}

// Equal compares two nodes structurally.
func (n Node) Equal(other Node) bool {
	if n.IsNetwork() != other.IsNetwork() {
		return false
	}

	if !n.IsNetwork() {
		return n.Label == other.Label
	}

	return n.Net.Equal(other.Net)
}

// Link joins the nodes at index From and To.
type Link struct {
	From, To int
}

// Network is the abstract graph of a pipeline. Nodes are unique; links refer to node indices.
// A named directed network is meant to be drawn as a labelled cluster.
type Network struct {
	Nodes    []Node
	Links    []Link
	Directed bool
	Name     string
	LabelLoc string
}

// Add adds node unless an equal node is already present, and returns its index.
func (n *Network) Add(node Node) int {
	for i, existing := range n.Nodes {
		if existing.Equal(node) {
			return i
		}
	}

	n.Nodes = append(n.Nodes, node)

	return len(n.Nodes) - 1
}

// Link adds both nodes if needed, then a link from a to b.
func (n *Network) Link(a, b Node) {
	link := Link{From: n.Add(a), To: n.Add(b)}

	for _, existing := range n.Links {
		if existing == link {
			return
		}
	}

	n.Links = append(n.Links, link)
}

// First returns the first node. ok is false when the network is empty.
func (n *Network) First() (node Node, ok bool) {
	if len(n.Nodes) == 0 {
		return Node{}, false
	}

	return n.Nodes[0], true
}

// Last returns the last node. ok is false when the network is empty.
func (n *Network) Last() (node Node, ok bool) {
	if len(n.Nodes) == 0 {
		return Node{}, false
	}

	return n.Nodes[len(n.Nodes)-1], true
}

// Equal compares two networks structurally.
func (n *Network) Equal(other *Network) bool {
	if n == other {
		return true
	}

	if n == nil || other == nil {
		return false
	}

	if n.Directed != other.Directed || n.Name != other.Name || n.LabelLoc != other.LabelLoc {
		return false
	}

	if len(n.Nodes) != len(other.Nodes) || len(n.Links) != len(other.Links) {
		return false
	}

	for i := range n.Nodes {
		if !n.Nodes[i].Equal(other.Nodes[i]) {
			return false
		}
	}

	for i := range n.Links {
		if n.Links[i] != other.Links[i] {
			return false
		}
	}

	return true
}

// Renderer draws a network, to a file or any other medium.
type Renderer interface {
	Render(net *Network) error
}

// Draw returns the network of the pipeline: a source node linked to each step in order,
// the last step being linked to a sink node.
func (p *Pipeline) Draw() *Network {
	net := &Network{Directed: true}

	previous := Leaf(model.Source)
	net.Add(previous)

	for _, e := range p.steps.entries {
		current := networkify(e.step, e.name)
		net.Link(previous, current)
		previous = current
	}

	net.Link(previous, Leaf(model.Sink))

	return net
}

// DrawWith builds the network of the pipeline and hands it to renderer. The network is
// returned even when rendering fails.
func (p *Pipeline) DrawWith(renderer Renderer) (*Network, error) {
	net := p.Draw()
	if renderer == nil {
		return net, ErrNoRenderer
	}

	err := renderer.Render(net)
	if err != nil {
		return net, errors.Wrap(err, "unable to render pipeline")
	}

	return net, nil
}

// networkify returns the node of step, key being its key within its pipeline.
func networkify(step model.Step, key string) Node {
	switch typed := step.(type) {
	case *Union:
		return Node{Key: key, Net: unionNetwork(typed, key)}
	case *Pipeline:
		return Node{Key: key, Net: pipelineNetwork(typed)}
	case model.Wrapper:
		return Node{Key: key, Net: wrapperNetwork(typed, key)}
	default:
		return Node{Label: describe(step), Key: key}
	}
}

// unionNetwork is undirected: every member is connected to what comes before and after.
func unionNetwork(union *Union, key string) *Network {
	net := &Network{}
	for _, e := range union.steps.entries {
		net.Add(networkify(e.step, key+model.KeySeparator+e.name))
	}

	return net
}

// pipelineNetwork links each step to the next one.
func pipelineNetwork(pipe *Pipeline) *Network {
	net := &Network{Directed: true}

	var previous *Node
	for _, e := range pipe.steps.entries {
		current := networkify(e.step, e.name)
		if previous == nil {
			net.Add(current)
		} else {
			net.Link(*previous, current)
		}

		previous = &current
	}

	return net
}

func wrapperNetwork(wrapper model.Wrapper, key string) *Network {
	labelLoc := defaultLabelLoc
	if locator, ok := wrapper.(model.LabelLocator); ok {
		labelLoc = locator.LabelLoc()
	}

	net := &Network{
		Directed: true,
		Name:     kindName(wrapper),
		LabelLoc: labelLoc,
	}
	net.Add(networkify(wrapper.Unwrap(), key))

	return net
}
