package badger

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/poiesic/aegis/core"
	"github.com/poiesic/aegis/storage"
)

// PresetRepository implements storage.PresetRepository for BadgerDB.
type PresetRepository struct {
	list *listStore[core.FilterPreset]
	now  func() time.Time
}

var _ storage.PresetRepository = (*PresetRepository)(nil)

// NewPresetRepository creates a new PresetRepository.
func NewPresetRepository(backend *Backend) *PresetRepository {
	return &PresetRepository{
		list: newListStore(backend, filterPresetsKey, storage.MarshalPresets, storage.UnmarshalPresets),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// List returns every preset in the order they were first saved.
func (r *PresetRepository) List(ctx context.Context) ([]core.FilterPreset, error) {
	presets, err := r.list.load(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(presets, func(p core.FilterPreset) bool {
		return p.ID == "" || !validPresetName(p.Name)
	}), nil
}

// Save creates or updates a preset by name.
func (r *PresetRepository) Save(ctx context.Context, name string, filters core.PresetFilters) (*core.FilterPreset, error) {
	name = strings.TrimSpace(name)
	if !validPresetName(name) {
		return nil, storage.ErrInvalidPresetName
	}

	var saved core.FilterPreset
	err := r.list.update(ctx, func(presets []core.FilterPreset) ([]core.FilterPreset, error) {
		now := r.now()
		saved = core.FilterPreset{
			Name:      name,
			Filters:   filters,
			CreatedAt: now,
			UpdatedAt: now,
		}

		i := slices.IndexFunc(presets, func(p core.FilterPreset) bool {
			return strings.EqualFold(p.Name, name)
		})
		if i >= 0 {
			saved.ID = presets[i].ID
			saved.CreatedAt = presets[i].CreatedAt
			presets[i] = saved
			return presets, nil
		}

		if len(presets) >= storage.MaxPresets {
			return nil, storage.ErrPresetLimitReached
		}
		saved.ID = newPresetID(name, now)
		return append(presets, saved), nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// Load returns the preset with id.
func (r *PresetRepository) Load(ctx context.Context, id string) (*core.FilterPreset, error) {
	presets, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range presets {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: preset %q", storage.ErrNotFound, id)
}

// Delete removes the preset with id and reports whether it existed.
func (r *PresetRepository) Delete(ctx context.Context, id string) (bool, error) {
	deleted := false
	err := r.list.update(ctx, func(presets []core.FilterPreset) ([]core.FilterPreset, error) {
		before := len(presets)
		presets = slices.DeleteFunc(presets, func(p core.FilterPreset) bool {
			return p.ID == id
		})
		deleted = len(presets) != before
		return presets, nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// UniqueName returns base, or "base (n)" with the smallest n not in use.
func (r *PresetRepository) UniqueName(ctx context.Context, base string) (string, error) {
	presets, err := r.List(ctx)
	if err != nil {
		return "", err
	}

	taken := make(map[string]bool, len(presets))
	for _, p := range presets {
		taken[strings.ToLower(p.Name)] = true
	}

	name := base
	for n := 1; taken[strings.ToLower(name)]; n++ {
		name = fmt.Sprintf("%s (%d)", base, n)
	}
	return name, nil
}

func validPresetName(name string) bool {
	n := utf8.RuneCountInString(name)
	return n > 0 && n <= storage.MaxPresetNameLength
}

// newPresetID derives a preset id from its name and creation time.
func newPresetID(name string, created time.Time) string {
	id := core.IDFromContent(strings.ToLower(name) + ":" + strconv.FormatInt(created.UnixNano(), 10))
	return fmt.Sprintf("preset-%016x", uint64(id))
}
