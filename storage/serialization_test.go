package storage

import (
	"testing"
	"time"

	"github.com/poiesic/aegis/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookmarks_RoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	bookmarks := []core.Bookmark{
		{ResourceID: "whitepages", Timestamp: now},
		{ResourceID: "pacer", Timestamp: now.Add(-time.Hour)},
		{ResourceID: "üñíçødé", Timestamp: time.UnixMilli(0).UTC()},
	}

	decoded, err := UnmarshalBookmarks(MarshalBookmarks(bookmarks))
	require.NoError(t, err)
	assert.Equal(t, bookmarks, decoded)
}

func TestBookmarks_TimestampsKeepMilliseconds(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 30, 0, 123456789, time.UTC)

	decoded, err := UnmarshalBookmarks(MarshalBookmarks([]core.Bookmark{{ResourceID: "a", Timestamp: ts}}))
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, ts.Truncate(time.Millisecond), decoded[0].Timestamp)
}

func TestHistory_RoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	entries := []core.HistoryEntry{
		{Query: `"court records" AND federal`, Timestamp: now},
		{Query: "phone", Timestamp: now.Add(-time.Minute)},
	}

	decoded, err := UnmarshalHistory(MarshalHistory(entries))
	require.NoError(t, err)
	assert.Equal(t, entries, decoded)
}

func TestPresets_RoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	presets := []core.FilterPreset{
		{
			ID:   "preset-1",
			Name: "Free federal",
			Filters: core.PresetFilters{
				Regions: []string{"US-Federal"},
				Costs:   []string{"free", "freemium"},
			},
			CreatedAt: now.Add(-time.Hour),
			UpdatedAt: now,
		},
		{ID: "preset-2", Name: "Everything", CreatedAt: now, UpdatedAt: now},
	}

	decoded, err := UnmarshalPresets(MarshalPresets(presets))
	require.NoError(t, err)
	assert.Equal(t, presets, decoded)
}

func TestEmptyList_RoundTrip(t *testing.T) {
	data := MarshalBookmarks(nil)
	assert.Len(t, data, 1)

	decoded, err := UnmarshalBookmarks(data)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestUnmarshal_Invalid(t *testing.T) {
	valid := MarshalHistory([]core.HistoryEntry{{Query: "phone", Timestamp: time.Now()}})

	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"truncated", valid[:len(valid)-2]},
		{"trailing bytes", append(append([]byte{}, valid...), 0x01)},
		{"length larger than data", []byte{0x7e, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalHistory(tt.data)
			assert.ErrorIs(t, err, ErrSerializationFailed)
		})
	}
}
