package setup

import (
	"github.com/NathanReed/tempsentry/internal/settings"
)

type Handler struct {
	settings *settings.Settings
	dirty    bool
}
