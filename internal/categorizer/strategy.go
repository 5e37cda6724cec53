package categorizer

import (
	"context"

	"kiyotrack/struk-csv/internal/models"
)

// Strategy is a pluggable categorization method. Implementations must be
// side-effect free from the caller's perspective: a failed or empty result
// means "no suggestion", never an aborted import.
type Strategy interface {
	// Categorize attempts to categorize the description. The boolean result
	// reports whether a usable category was produced.
	Categorize(ctx context.Context, description string, txType models.TransactionType) (string, bool, error)

	// Name identifies the strategy in logs.
	Name() string
}
