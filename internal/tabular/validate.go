package tabular

import (
	"fmt"
	"strings"

	"github.com/gyeh/claimstats/internal/normalize"
)

// SchemaError reports required columns absent from the input header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ValidateSchema checks that every required column is present in header,
// comparing names after trimming whitespace. All missing columns are
// reported together.
func ValidateSchema(header, required []string) error {
	columns := make(map[string]bool, len(header))
	for _, h := range header {
		columns[normalize.NormalizeHeader(h)] = true
	}

	var missing []string
	for _, col := range required {
		if !columns[normalize.NormalizeHeader(col)] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}
