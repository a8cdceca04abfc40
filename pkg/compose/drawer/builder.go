package drawer

import (
	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"

	"github.com/askiada/go-compose/internal/store"
	"github.com/askiada/go-compose/pkg/compose"
)

type cluster struct {
	Name     string
	LabelLoc string
	Nodes    []string
	Children []*cluster
}

func (c *cluster) add(name string) {
	for _, existing := range c.Nodes {
		if existing == name {
			return
		}
	}

	c.Nodes = append(c.Nodes, name)
}

// builder flattens a compose.Network into a directed graph plus the clusters of its named
// sub-networks. Vertices are labels; keys maps each label to the key of the first node
// that carried it.
type builder struct {
	store    *store.OrderedStore[string, string]
	graph    graph.Graph[string, string]
	clusters []*cluster
	keys     map[string]string
}

func newBuilder() *builder {
	st := store.NewOrderedStore[string, string]()

	return &builder{
		store: st,
		graph: graph.NewWithStore[string, string](graph.StringHash, st, graph.Directed()),
		keys:  make(map[string]string),
	}
}

// key returns the key of the vertex labelled label, or label itself when no node set one.
func (b *builder) key(label string) string {
	if key, ok := b.keys[label]; ok {
		return key
	}

	return label
}

func (b *builder) addNetwork(net *compose.Network, parent *cluster) error {
	for _, node := range net.Nodes {
		err := b.addNode(node, parent)
		if err != nil {
			return err
		}
	}

	for _, link := range net.Links {
		err := b.addLink(net.Nodes[link.From], net.Nodes[link.To], parent)
		if err != nil {
			return err
		}
	}

	return nil
}

func (b *builder) addNode(node compose.Node, parent *cluster) error {
	if node.IsNetwork() {
		for _, part := range node.Net.Nodes {
			err := b.addNode(part, parent)
			if err != nil {
				return err
			}
		}

		return nil
	}

	err := b.graph.AddVertex(node.Label)
	if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return errors.Wrapf(err, "unable to add vertex %s", node.Label)
	}

	if _, ok := b.keys[node.Label]; !ok && node.Key != "" {
		b.keys[node.Label] = node.Key
	}

	if parent != nil {
		parent.add(node.Label)
	}

	return nil
}

// addLink connects from to to. A directed sub-network is entered through its first node and
// left through its last one; an undirected sub-network is connected through all its nodes.
func (b *builder) addLink(from, to compose.Node, parent *cluster) error {
	switch {
	case from.IsNetwork():
		if from.Net.Directed {
			last, ok := from.Net.Last()
			if !ok {
				return nil
			}

			return b.addLink(last, to, parent)
		}

		for _, part := range from.Net.Nodes {
			err := b.addLink(part, to, parent)
			if err != nil {
				return err
			}
		}

		return nil
	case to.IsNetwork():
		if !to.Net.Directed {
			for _, part := range to.Net.Nodes {
				err := b.addLink(from, part, parent)
				if err != nil {
					return err
				}
			}

			return nil
		}

		target := parent
		if to.Net.Name != "" {
			target = b.cluster(parent, to.Net)
		}

		err := b.addNetwork(to.Net, target)
		if err != nil {
			return err
		}

		first, ok := to.Net.First()
		if !ok {
			return nil
		}

		return b.addLink(from, first, parent)
	default:
		err := b.graph.AddEdge(from.Label, to.Label)
		if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			return errors.Wrapf(err, "unable to add edge from %s to %s", from.Label, to.Label)
		}

		return nil
	}
}

func (b *builder) cluster(parent *cluster, net *compose.Network) *cluster {
	siblings := &b.clusters
	if parent != nil {
		siblings = &parent.Children
	}

	for _, existing := range *siblings {
		if existing.Name == net.Name {
			return existing
		}
	}

	c := &cluster{Name: net.Name, LabelLoc: net.LabelLoc}
	*siblings = append(*siblings, c)

	return c
}
