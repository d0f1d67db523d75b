package statuspage

import (
	"github.com/NathanReed/tempsentry/internal/link"
	"github.com/NathanReed/tempsentry/internal/store"
)

type Handler struct {
	store *store.SensorStore
	link  link.Provider
}
