// Package loader reads the product catalog file once at startup. The file is
// the service-side equivalent of the data the host page provides: an ordered
// list of products with optional explicit ids.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zivra/storefront/internal/catalog/domain"
	"github.com/zivra/storefront/internal/platform/logger"
)

var ErrEmptyCatalog = errors.New("catalog contains no products")

type catalogFile struct {
	Products []productRecord `yaml:"products"`
}

type productRecord struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Price    int64  `yaml:"price"`
	Qty      int    `yaml:"qty"`
	Category string `yaml:"category"`
}

// Load reads and validates the catalog at path.
func Load(path string) (*domain.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse builds a Catalog from YAML. Ids are derived from names where absent;
// duplicate ids keep the first-seen product and the rest are skipped.
func Parse(r io.Reader) (*domain.Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(file.Products) == 0 {
		return nil, ErrEmptyCatalog
	}

	products := make([]domain.Product, 0, len(file.Products))
	seen := make(map[string]bool, len(file.Products))
	for i, rec := range file.Products {
		id := rec.ID
		if id == "" {
			id = domain.DeriveID(rec.Name)
		}
		if id == "" {
			return nil, fmt.Errorf("catalog entry %d has neither id nor name", i)
		}
		if rec.Price < 0 {
			return nil, fmt.Errorf("catalog product %q has negative price %d", id, rec.Price)
		}
		if rec.Qty < 0 {
			return nil, fmt.Errorf("catalog product %q has negative qty %d", id, rec.Qty)
		}
		if seen[id] {
			// First-seen wins on slug collisions.
			logger.Warn("Catalog: duplicate product id %q (entry %d), keeping first occurrence", id, i)
			continue
		}
		seen[id] = true
		products = append(products, domain.Product{
			ID:         id,
			Name:       rec.Name,
			Price:      rec.Price,
			InitialQty: rec.Qty,
			Category:   rec.Category,
		})
	}

	logger.Info("Catalog loaded with %d products", len(products))
	return domain.NewCatalog(products), nil
}
