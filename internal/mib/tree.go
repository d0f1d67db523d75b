package mib

import (
	"sort"
	"time"
)

type ValueType int

const (
	TypeString ValueType = iota
	TypeInteger
	TypeTimeTicks
	TypeOctetString
)

func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeTimeTicks:
		return "timeticks"
	case TypeOctetString:
		return "octets"
	default:
		return "unknown"
	}
}

type Access int

const (
	// ReadOnly is the only access mode the monitor uses; the write
	// path exists in the protocol but no node accepts it.
	ReadOnly Access = iota
)

type (
	// Value is one resolved management value.
	Value struct {
		Type    ValueType
		Integer int
		String  string
		Octets  []byte
	}

	// Source produces a node's value at query time. Indexed sources
	// receive the 0-based sensor index recovered from the trailing
	// identifier component.
	Source interface {
		Value(index int) (Value, bool)
	}

	// StaticString holds a fixed string captured at registration.
	StaticString struct {
		S string
	}

	// Counter reports process uptime in protocol time-ticks
	// (hundredths of a second), from a monotonic start time.
	Counter struct {
		Start time.Time
	}

	// IndexedInt resolves a per-sensor integer live at query time.
	IndexedInt struct {
		Fn func(index int) (int, bool)
	}

	// IndexedOctets resolves a per-sensor byte string live at query
	// time.
	IndexedOctets struct {
		Fn func(index int) ([]byte, bool)
	}

	Node struct {
		OID    OID
		Type   ValueType
		Access Access

		source  Source
		indexed bool
	}

	Tree struct {
		nodes []Node
	}
)

func (s StaticString) Value(int) (Value, bool) {
	return Value{Type: TypeString, String: s.S}, true
}

func (c Counter) Value(int) (Value, bool) {
	ticks := int(time.Since(c.Start) / (10 * time.Millisecond))
	return Value{Type: TypeTimeTicks, Integer: ticks}, true
}

func (f IndexedInt) Value(index int) (Value, bool) {
	n, ok := f.Fn(index)
	if !ok {
		return Value{}, false
	}

	return Value{Type: TypeInteger, Integer: n}, true
}

func (f IndexedOctets) Value(index int) (Value, bool) {
	b, ok := f.Fn(index)
	if !ok {
		return Value{}, false
	}

	return Value{Type: TypeOctetString, Octets: b}, true
}

func NewTree() *Tree {
	return &Tree{}
}

// Register adds a scalar node during construction.
func (t *Tree) Register(oid OID, vt ValueType, source Source) {
	t.nodes = append(t.nodes, Node{OID: oid, Type: vt, Access: ReadOnly, source: source})
}

// RegisterIndexed adds a per-sensor node. The registered identifier
// carries the sensor ordinal plus one as its trailing component;
// resolution recovers the 0-based index before invoking the source.
func (t *Tree) RegisterIndexed(oid OID, vt ValueType, source Source) {
	t.nodes = append(t.nodes, Node{OID: oid, Type: vt, Access: ReadOnly, source: source, indexed: true})
}

// Freeze sorts the registry; call once after the last Register.
func (t *Tree) Freeze() {
	sort.Slice(t.nodes, func(i, j int) bool {
		return Compare(t.nodes[i].OID, t.nodes[j].OID) < 0
	})
}

// Resolve looks up one identifier. The second return is false for
// unknown identifiers; the protocol engine maps that to its own
// not-found response.
func (t *Tree) Resolve(oid OID) (Value, bool) {
	i := sort.Search(len(t.nodes), func(i int) bool {
		return Compare(t.nodes[i].OID, oid) >= 0
	})

	if i >= len(t.nodes) || Compare(t.nodes[i].OID, oid) != 0 {
		return Value{}, false
	}

	node := t.nodes[i]

	index := 0
	if node.indexed {
		// trailing component is the 1-based table ordinal
		index = oid[len(oid)-1] - 1
		if index < 0 {
			return Value{}, false
		}
	}

	return node.source.Value(index)
}

// Next returns the first registered identifier strictly after oid,
// supporting get-next traversal.
func (t *Tree) Next(oid OID) (OID, bool) {
	i := sort.Search(len(t.nodes), func(i int) bool {
		return Compare(t.nodes[i].OID, oid) > 0
	})

	if i >= len(t.nodes) {
		return nil, false
	}

	return t.nodes[i].OID, true
}

// Walk visits every registered identifier in order.
func (t *Tree) Walk(fn func(oid OID, vt ValueType)) {
	for _, n := range t.nodes {
		fn(n.OID, n.Type)
	}
}
