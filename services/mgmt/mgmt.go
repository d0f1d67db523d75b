// Package mgmt exposes the management object tree over HTTP. The
// SNMP wire engine is an external collaborator; this surface gives
// the same identifier space a JSON read path.
package mgmt

import (
	"encoding/hex"
	"log/slog"
	"net/http"

	"github.com/NathanReed/tempsentry/internal/mib"
	"github.com/NathanReed/tempsentry/utils"
)

func NewHandler(tree *mib.Tree) *Handler {
	return &Handler{tree: tree}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/objects", h.handlerObjectsList)
	mux.HandleFunc("GET /v1/objects/{oid}", h.handlerObjectGet)
}

func (h *Handler) handlerObjectGet(writer http.ResponseWriter, req *http.Request) {
	slog.Debug("handlerObjectGet", "oid", req.PathValue("oid"))

	oid, err := mib.ParseOID(req.PathValue("oid"))
	if err != nil {
		utils.RespondWithError(writer, http.StatusBadRequest, "malformed object identifier", err)
		return
	}

	value, ok := h.tree.Resolve(oid)
	if !ok {
		utils.RespondWithError(writer, http.StatusNotFound, "no such object", nil)
		return
	}

	utils.RespondWithJSON(writer, http.StatusOK, buildObjectResponse(oid, value))
}

func (h *Handler) handlerObjectsList(writer http.ResponseWriter, req *http.Request) {
	slog.Debug("handlerObjectsList")

	objects := make([]ObjectResponse, 0)
	h.tree.Walk(func(oid mib.OID, vt mib.ValueType) {
		value, ok := h.tree.Resolve(oid)
		if !ok {
			return
		}

		objects = append(objects, buildObjectResponse(oid, value))
	})

	utils.RespondWithJSON(writer, http.StatusOK, objects)
}

func buildObjectResponse(oid mib.OID, value mib.Value) ObjectResponse {
	resp := ObjectResponse{
		OID:  oid.String(),
		Type: value.Type.String(),
	}

	switch value.Type {
	case mib.TypeString:
		resp.Value = value.String
	case mib.TypeOctetString:
		resp.Value = hex.EncodeToString(value.Octets)
	default:
		resp.Value = value.Integer
	}

	return resp
}
