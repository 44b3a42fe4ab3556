package graph

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/sbl8/patchgraph/node"
)

// snapshotMagic and snapshotVersion identify the binary topology format
// below, following the same header shape as the teacher's model.Graph
// Serialize/Deserialize (magic number, version, then fixed fields) — but
// re-purposed from an opaque neural-weight payload to a graph topology: a
// node's behavior is a Go closure and cannot be serialized, so a Snapshot
// only ever records per-node kind tags and the edge table, leaving node
// reconstruction to a caller-supplied registry.
const (
	snapshotMagic   uint32 = 0x50475048 // "PGPH"
	snapshotVersion uint16 = 1
)

// edgeEntry is one wire in the topology, named by dense NodeKey/index pairs
// rather than pointers.
type edgeEntry struct {
	ConsumerNode  uint32
	ConsumerIndex uint32
	ProducerNode  uint32
	ProducerIndex uint32
}

// Snapshot serializes the graph's topology: kinds[i] is the caller's chosen
// tag for the node at NodeKey(i) (the graph itself has no notion of node
// kind, only node.Node values), followed by the edge table. len(kinds) must
// equal g.NodeCount().
func (g *Graph) Snapshot(kinds []string) ([]byte, error) {
	if len(kinds) != len(g.nodes) {
		return nil, fmt.Errorf("graph: snapshot kinds length %d does not match node count %d", len(kinds), len(g.nodes))
	}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, snapshotMagic); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, snapshotVersion); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, uint32(len(kinds))); err != nil {
		return nil, err
	}
	for _, kind := range kinds {
		if err := binary.Write(&buf, binary.LittleEndian, uint32(len(kind))); err != nil {
			return nil, err
		}
		buf.WriteString(kind)
	}

	entries := make([]edgeEntry, 0, len(g.edges))
	for consumer, producer := range g.edges {
		entries = append(entries, edgeEntry{
			ConsumerNode:  uint32(consumer.Node),
			ConsumerIndex: uint32(consumer.Index),
			ProducerNode:  uint32(producer.Node),
			ProducerIndex: uint32(producer.Index),
		})
	}
	if err := binary.Write(&buf, binary.LittleEndian, uint32(len(entries))); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := binary.Write(&buf, binary.LittleEndian, e); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// Restore rebuilds a Graph from a Snapshot, instantiating one node.Node per
// recorded kind tag via registry (kind -> constructor) and re-establishing
// every edge. Node insertion order matches the snapshot's kind order, so
// NodeKeys are identical to the graph that produced the snapshot. Fails if
// the snapshot names a kind absent from registry, or if re-Connect fails
// (e.g. registry produced a node whose socket shape no longer matches).
func Restore(data []byte, registry map[string]func() node.Node) (*Graph, []string, error) {
	buf := bytes.NewReader(data)

	var magic uint32
	if err := binary.Read(buf, binary.LittleEndian, &magic); err != nil {
		return nil, nil, err
	}
	if magic != snapshotMagic {
		return nil, nil, fmt.Errorf("graph: invalid snapshot magic %x", magic)
	}
	var version uint16
	if err := binary.Read(buf, binary.LittleEndian, &version); err != nil {
		return nil, nil, err
	}
	if version != snapshotVersion {
		return nil, nil, fmt.Errorf("graph: unsupported snapshot version %d", version)
	}

	var kindCount uint32
	if err := binary.Read(buf, binary.LittleEndian, &kindCount); err != nil {
		return nil, nil, err
	}
	kinds := make([]string, kindCount)
	for i := range kinds {
		var n uint32
		if err := binary.Read(buf, binary.LittleEndian, &n); err != nil {
			return nil, nil, err
		}
		s := make([]byte, n)
		if _, err := buf.Read(s); err != nil {
			return nil, nil, err
		}
		kinds[i] = string(s)
	}

	g := New()
	for _, kind := range kinds {
		ctor, ok := registry[kind]
		if !ok {
			return nil, nil, fmt.Errorf("graph: snapshot names unknown kind %q", kind)
		}
		g.Insert(ctor())
	}

	var edgeCount uint32
	if err := binary.Read(buf, binary.LittleEndian, &edgeCount); err != nil {
		return nil, nil, err
	}
	for i := uint32(0); i < edgeCount; i++ {
		var e edgeEntry
		if err := binary.Read(buf, binary.LittleEndian, &e); err != nil {
			return nil, nil, err
		}
		if err := g.Connect(NodeKey(e.ProducerNode), int(e.ProducerIndex), NodeKey(e.ConsumerNode), int(e.ConsumerIndex)); err != nil {
			return nil, nil, err
		}
	}

	return g, kinds, nil
}
