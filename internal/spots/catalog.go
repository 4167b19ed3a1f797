// Package spots holds the surf spot catalog and its SQLite-backed lookups.
package spots

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/ngmaloney/surf-terminal/internal/models"
)

//go:embed spots.json
var catalogJSON []byte

var (
	catalogOnce sync.Once
	catalog     []models.Spot
	catalogErr  error
)

// Catalog returns the built-in spot list in display order.
func Catalog() ([]models.Spot, error) {
	catalogOnce.Do(func() {
		catalog, catalogErr = parseCatalog(catalogJSON)
	})
	if catalogErr != nil {
		return nil, catalogErr
	}
	out := make([]models.Spot, len(catalog))
	copy(out, catalog)
	return out, nil
}

func parseCatalog(data []byte) ([]models.Spot, error) {
	var list []models.Spot
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decoding spot catalog: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	seen := make(map[string]bool, len(list))
	for i := range list {
		if err := validate.Struct(&list[i]); err != nil {
			return nil, fmt.Errorf("spot %q: %w", list[i].ID, err)
		}
		if seen[list[i].ID] {
			return nil, fmt.Errorf("duplicate spot id %q", list[i].ID)
		}
		seen[list[i].ID] = true
	}
	return list, nil
}
