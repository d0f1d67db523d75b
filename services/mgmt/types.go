package mgmt

import (
	"github.com/NathanReed/tempsentry/internal/mib"
)

type (
	Handler struct {
		tree *mib.Tree
	}

	ObjectResponse struct {
		OID   string      `json:"oid"`
		Type  string      `json:"type"`
		Value interface{} `json:"value"`
	}
)
