package mib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NathanReed/tempsentry/internal/sensor"
	"github.com/NathanReed/tempsentry/internal/store"
)

func TestParseOID(t *testing.T) {
	oid, err := ParseOID(".1.3.6.1.4.1.38446.1.1.3.1")
	require.NoError(t, err)
	assert.Equal(t, OID{1, 3, 6, 1, 4, 1, 38446, 1, 1, 3, 1}, oid)
	assert.Equal(t, "1.3.6.1.4.1.38446.1.1.3.1", oid.String())

	_, err = ParseOID("")
	assert.Error(t, err)

	_, err = ParseOID("1.3.x.1")
	assert.Error(t, err)

	_, err = ParseOID("1.-3.1")
	assert.Error(t, err)
}

func TestCompareLexicographic(t *testing.T) {
	cases := []struct {
		a, b OID
		want int
	}{
		{OID{1, 3, 6}, OID{1, 3, 6}, 0},
		{OID{1, 3, 5}, OID{1, 3, 6}, -1},
		{OID{1, 3, 7}, OID{1, 3, 6}, 1},
		{OID{1, 3}, OID{1, 3, 6}, -1},
		{OID{1, 3, 6, 0}, OID{1, 3, 6}, 1},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, Compare(c.a, c.b), "Compare(%v, %v)", c.a, c.b)
	}
}

func buildTestTree(t *testing.T, temps ...int) (*Tree, *store.SensorStore) {
	t.Helper()

	st := store.New(store.DefaultCapacity)
	for i, temp := range temps {
		require.True(t, st.Add(sensor.Address{0x28, byte(i + 1)}))
		st.SetTemperature(i, temp)
	}

	tree := Build(st, "tempsentry temperature monitor", "server room", time.Now())
	return tree, st
}

func TestResolveScalars(t *testing.T) {
	tree, _ := buildTestTree(t, 215)

	v, ok := tree.Resolve(OIDSysDescr)
	require.True(t, ok)
	assert.Equal(t, TypeString, v.Type)
	assert.Equal(t, "tempsentry temperature monitor", v.String)

	v, ok = tree.Resolve(OIDSysLocation)
	require.True(t, ok)
	assert.Equal(t, "server room", v.String)

	v, ok = tree.Resolve(OIDSysUpTime)
	require.True(t, ok)
	assert.Equal(t, TypeTimeTicks, v.Type)
	assert.GreaterOrEqual(t, v.Integer, 0)
}

func TestResolveIndexedTemperatureIsLive(t *testing.T) {
	tree, st := buildTestTree(t, 182, 239)

	v, ok := tree.Resolve(OIDSensorTable.Append(ColumnTemperature, 1))
	require.True(t, ok)
	assert.Equal(t, 182, v.Integer)

	v, ok = tree.Resolve(OIDSensorTable.Append(ColumnTemperature, 2))
	require.True(t, ok)
	assert.Equal(t, 239, v.Integer)

	// the node must read the store at query time, not hold a copy
	st.SetTemperature(0, 301)
	v, ok = tree.Resolve(OIDSensorTable.Append(ColumnTemperature, 1))
	require.True(t, ok)
	assert.Equal(t, 301, v.Integer)
}

func TestResolveIndexedAddressAndIndex(t *testing.T) {
	tree, st := buildTestTree(t, 182)

	v, ok := tree.Resolve(OIDSensorTable.Append(ColumnIndex, 1))
	require.True(t, ok)
	assert.Equal(t, 1, v.Integer)

	v, ok = tree.Resolve(OIDSensorTable.Append(ColumnAddress, 1))
	require.True(t, ok)
	assert.Equal(t, TypeOctetString, v.Type)

	rec, _ := st.Record(0)
	assert.Equal(t, rec.Address.Octets(), v.Octets)
}

func TestResolveUnknownReturnsNotFound(t *testing.T) {
	tree, _ := buildTestTree(t, 182)

	_, ok := tree.Resolve(OID{1, 3, 6, 1, 2, 1, 99, 0})
	assert.False(t, ok)

	// registered shape but an index past the table
	_, ok = tree.Resolve(OIDSensorTable.Append(ColumnTemperature, 7))
	assert.False(t, ok)

	// index component of zero is never registered
	_, ok = tree.Resolve(OIDSensorTable.Append(ColumnTemperature, 0))
	assert.False(t, ok)
}

func TestNextWalksInOrder(t *testing.T) {
	tree, _ := buildTestTree(t, 182, 239)

	// walk from the root and collect everything
	var walked []string
	oid := OID{0}
	for {
		next, ok := tree.Next(oid)
		if !ok {
			break
		}

		walked = append(walked, next.String())
		oid = next
	}

	require.Len(t, walked, 3+2*3)

	// lexicographic order means the system group comes first
	assert.Equal(t, OIDSysDescr.String(), walked[0])
	assert.Equal(t, OIDSysUpTime.String(), walked[1])
	assert.Equal(t, OIDSysLocation.String(), walked[2])

	_, ok := tree.Next(mustParseOID(t, walked[len(walked)-1]))
	assert.False(t, ok, "Next past the last node reports end of tree")
}

func mustParseOID(t *testing.T, s string) OID {
	t.Helper()

	oid, err := ParseOID(s)
	require.NoError(t, err)
	return oid
}
