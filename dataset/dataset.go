package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/poiesic/aegis/core"
)

const (
	// CategoriesFile is the path of the categories file relative to the data directory.
	CategoriesFile = "categories/categories.json"
	// ResourcesFile is the path of the resources file relative to the data directory.
	ResourcesFile = "resources/resources.json"
)

var (
	requiredCategoryFields = []string{"id", "name", "description", "slug", "tags", "region", "updated_at"}
	requiredResourceFields = []string{
		"id", "name", "url", "description", "category", "region",
		"risk_level", "auth_required", "cost", "type", "tags", "last_verified",
	}
)

// Dataset is an immutable, in-memory snapshot of the catalog.
type Dataset struct {
	categories []core.Category
	resources  []core.Resource
	strict     bool
	logger     *slog.Logger
}

// Option configures a Dataset during loading.
type Option func(*Dataset) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dataset) error {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger
		return nil
	}
}

// WithStrict makes malformed data an error instead of a skipped record.
func WithStrict() Option {
	return func(d *Dataset) error {
		d.strict = true
		return nil
	}
}

// Load reads the catalog from dir, expecting categories/categories.json and
// resources/resources.json beneath it.
func Load(dir string, opts ...Option) (*Dataset, error) {
	categoriesJSON, err := os.ReadFile(filepath.Join(dir, CategoriesFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}
	resourcesJSON, err := os.ReadFile(filepath.Join(dir, ResourcesFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}
	return Decode(categoriesJSON, resourcesJSON, opts...)
}

// Decode builds a Dataset from the raw contents of the two data files.
func Decode(categoriesJSON, resourcesJSON []byte, opts ...Option) (*Dataset, error) {
	d := &Dataset{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	var err error
	d.categories, err = decodeRecords[core.Category](d, "category", categoriesJSON, requiredCategoryFields)
	if err != nil {
		return nil, err
	}
	d.resources, err = decodeRecords[core.Resource](d, "resource", resourcesJSON, requiredResourceFields)
	if err != nil {
		return nil, err
	}

	d.logger.Debug("dataset loaded",
		"categories", len(d.categories),
		"resources", len(d.resources))
	return d, nil
}

// New wraps already-decoded records in a Dataset. The slices are copied.
func New(categories []core.Category, resources []core.Resource) *Dataset {
	return &Dataset{
		categories: append([]core.Category(nil), categories...),
		resources:  append([]core.Resource(nil), resources...),
		logger:     slog.Default(),
	}
}

func decodeRecords[T any](d *Dataset, kind string, data []byte, required []string) ([]T, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		if d.strict {
			return nil, fmt.Errorf("%w: %s file: %w", ErrNotArray, kind, err)
		}
		d.logger.Warn("data file is not a JSON array, using empty collection", "kind", kind, "error", err)
		return []T{}, nil
	}

	records := make([]T, 0, len(raw))
	for i, msg := range raw {
		record, err := decodeRecord[T](msg, required)
		if err != nil {
			if d.strict {
				return nil, fmt.Errorf("%w: %s #%d: %w", ErrInvalidRecord, kind, i, err)
			}
			d.logger.Warn("skipping invalid record", "kind", kind, "index", i, "error", err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func decodeRecord[T any](msg json.RawMessage, required []string) (T, error) {
	var record T

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(msg, &fields); err != nil {
		return record, fmt.Errorf("not an object: %w", err)
	}
	if fields == nil {
		return record, fmt.Errorf("not an object")
	}
	for _, name := range required {
		value, ok := fields[name]
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return record, fmt.Errorf("%w: %s", core.ErrMissingField, name)
		}
	}

	if err := json.Unmarshal(msg, &record); err != nil {
		return record, err
	}
	return record, nil
}

// Categories returns every category in file order. The slice is a copy.
func (d *Dataset) Categories() []core.Category {
	return append([]core.Category(nil), d.categories...)
}

// Resources returns every resource in file order. The slice is a copy.
func (d *Dataset) Resources() []core.Resource {
	return append([]core.Resource(nil), d.resources...)
}

// CategoryByID finds a category by id.
func (d *Dataset) CategoryByID(id string) (core.Category, bool) {
	if id == "" {
		return core.Category{}, false
	}
	for _, category := range d.categories {
		if category.ID == id {
			return category, true
		}
	}
	return core.Category{}, false
}

// CategoryBySlug finds a category by its URL slug.
func (d *Dataset) CategoryBySlug(slug string) (core.Category, bool) {
	if slug == "" {
		return core.Category{}, false
	}
	for _, category := range d.categories {
		if category.Slug == slug {
			return category, true
		}
	}
	return core.Category{}, false
}

// ResourceByID finds a resource by id.
func (d *Dataset) ResourceByID(id string) (core.Resource, bool) {
	if id == "" {
		return core.Resource{}, false
	}
	for _, resource := range d.resources {
		if resource.ID == id {
			return resource, true
		}
	}
	return core.Resource{}, false
}

// ResourcesByCategory returns the resources belonging to categoryID, in file order.
func (d *Dataset) ResourcesByCategory(categoryID string) []core.Resource {
	result := []core.Resource{}
	if categoryID == "" {
		return result
	}
	for _, resource := range d.resources {
		if resource.Category == categoryID {
			result = append(result, resource)
		}
	}
	return result
}

// CategorySlugs returns the non-empty slugs of every category.
func (d *Dataset) CategorySlugs() []string {
	slugs := make([]string, 0, len(d.categories))
	for _, category := range d.categories {
		if category.Slug != "" {
			slugs = append(slugs, category.Slug)
		}
	}
	return slugs
}

// ResourceIDs returns the non-empty ids of every resource.
func (d *Dataset) ResourceIDs() []string {
	ids := make([]string, 0, len(d.resources))
	for _, resource := range d.resources {
		if resource.ID != "" {
			ids = append(ids, resource.ID)
		}
	}
	return ids
}
