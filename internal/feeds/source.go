// Package feeds defines the event source interface, the source registry, and
// the fan-out aggregation pass that feeds the agenda.
package feeds

import (
	"context"

	"github.com/Aguus467/angulismotv/internal/pkg/models"
)

// Source is one external event feed. Fetch returns the adapted canonical
// events for one pass; it must return an empty slice rather than fail on
// malformed individual records.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.Event, error)
}
