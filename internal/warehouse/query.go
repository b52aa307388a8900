package warehouse

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// daysBackParam is the placeholder substituted into the SQL template. The
// lookback is spliced as text rather than bound because it lands inside a
// DATEADD expression the warehouse cannot parameterize.
const daysBackParam = "{DAYS_BACK}"

// LoadQuery reads the activity SQL template and substitutes the lookback
// window in days.
func LoadQuery(path string, daysBack int) (string, error) {
	if daysBack < 1 {
		return "", fmt.Errorf("lookback must be at least 1 day, got %d", daysBack)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading query file %s: %w", path, err)
	}
	query := string(data)
	if !strings.Contains(query, daysBackParam) {
		return "", fmt.Errorf("query file %s has no %s placeholder", path, daysBackParam)
	}
	return strings.ReplaceAll(query, daysBackParam, strconv.Itoa(daysBack)), nil
}
