package mib

import (
	"time"

	"github.com/NathanReed/tempsentry/internal/store"
)

// Well-known identifiers served by the monitor. The sensor table
// hangs off the vendor enterprise branch; temperatures are integers
// in tenths of a degree centigrade.
var (
	OIDSysDescr    = OID{1, 3, 6, 1, 2, 1, 1, 1, 0}
	OIDSysUpTime   = OID{1, 3, 6, 1, 2, 1, 1, 3, 0}
	OIDSysLocation = OID{1, 3, 6, 1, 2, 1, 1, 6, 0}

	OIDEnterprise  = OID{1, 3, 6, 1, 4, 1, 38446}
	OIDSensorTable = OID{1, 3, 6, 1, 4, 1, 38446, 1, 1}
)

// Sensor table columns.
const (
	ColumnIndex       = 1
	ColumnAddress     = 2
	ColumnTemperature = 3
)

// Build constructs the object tree for the current sensor table. It
// must run after discovery: the indexed nodes are generated per
// discovered sensor, though their values are read live on resolve.
func Build(st *store.SensorStore, sysDescr, sysLocation string, start time.Time) *Tree {
	tree := NewTree()

	tree.Register(OIDSysDescr, TypeString, StaticString{S: sysDescr})
	tree.Register(OIDSysUpTime, TypeTimeTicks, Counter{Start: start})
	tree.Register(OIDSysLocation, TypeString, StaticString{S: sysLocation})

	count := st.Count()
	for ordinal := 0; ordinal < count; ordinal++ {
		// table indices start at 1
		k := ordinal + 1

		tree.RegisterIndexed(OIDSensorTable.Append(ColumnIndex, k), TypeInteger, IndexedInt{
			Fn: func(i int) (int, bool) {
				if _, ok := st.Record(i); !ok {
					return 0, false
				}
				return i + 1, true
			},
		})

		tree.RegisterIndexed(OIDSensorTable.Append(ColumnAddress, k), TypeOctetString, IndexedOctets{
			Fn: func(i int) ([]byte, bool) {
				rec, ok := st.Record(i)
				if !ok {
					return nil, false
				}
				return rec.Address.Octets(), true
			},
		})

		tree.RegisterIndexed(OIDSensorTable.Append(ColumnTemperature, k), TypeInteger, IndexedInt{
			Fn: func(i int) (int, bool) {
				rec, ok := st.Record(i)
				if !ok {
					return 0, false
				}
				return rec.TempDeciC, true
			},
		})
	}

	tree.Freeze()

	return tree
}
