// Package mib is the static registry mapping management object
// identifiers to live or cached monitor values. The tree is built once
// at boot, after sensor discovery, and never mutated afterwards, so
// queries need no locking.
package mib

import (
	"fmt"
	"strconv"
	"strings"
)

// OID is a dotted sequence of non-negative integers.
type OID []int

// ParseOID accepts "1.3.6.1.4.1.38446.1.1.3.1" with or without a
// leading dot.
func ParseOID(s string) (OID, error) {
	s = strings.TrimPrefix(s, ".")
	if s == "" {
		return nil, fmt.Errorf("empty object identifier")
	}

	parts := strings.Split(s, ".")
	oid := make(OID, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("malformed object identifier %q", s)
		}

		oid = append(oid, n)
	}

	return oid, nil
}

func (o OID) String() string {
	parts := make([]string, len(o))
	for i, n := range o {
		parts[i] = strconv.Itoa(n)
	}

	return strings.Join(parts, ".")
}

// Append returns a new OID with extra components added.
func (o OID) Append(components ...int) OID {
	out := make(OID, 0, len(o)+len(components))
	out = append(out, o...)
	out = append(out, components...)
	return out
}

// Compare orders identifiers lexicographically over their integer
// components, the ordering get-next traversal depends on.
func Compare(a, b OID) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
