package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type (
	Reading struct {
		ID        uuid.UUID `json:"id"`
		ReadAt    time.Time `json:"read_at"`
		Address   string    `json:"address"`
		TempDeciC int       `json:"temperature_deci_c"`
	}

	SaveReadingParams struct {
		ID        uuid.UUID
		ReadAt    time.Time
		Address   string
		TempDeciC int
	}

	ReadingStore interface {
		SaveReading(ctx context.Context, arg SaveReadingParams) (Reading, error)
		RecentReadings(ctx context.Context, limit int) ([]Reading, error)
	}

	Handler struct {
		store ReadingStore
	}
)
