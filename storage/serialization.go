// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/aegis/core"
)

// serializer is the method set shared by mus-go serializers.
type serializer[T any] interface {
	Marshal(v T, bs []byte) (n int)
	Unmarshal(bs []byte) (v T, n int, err error)
	Size(v T) (size int)
}

var (
	BookmarkMUS     = bookmarkMUS{}
	HistoryEntryMUS = historyEntryMUS{}
	PresetMUS       = presetMUS{}

	bookmarkListMUS = listMUS[core.Bookmark]{elem: BookmarkMUS}
	historyListMUS  = listMUS[core.HistoryEntry]{elem: HistoryEntryMUS}
	presetListMUS   = listMUS[core.FilterPreset]{elem: PresetMUS}
	stringListMUS   = listMUS[string]{elem: ord.String}
	timeMUS         = unixMilliMUS{}
)

// MarshalBookmarks serializes a bookmark list to bytes.
func MarshalBookmarks(bookmarks []core.Bookmark) []byte {
	return marshal(bookmarkListMUS, bookmarks)
}

// UnmarshalBookmarks deserializes a bookmark list from bytes.
func UnmarshalBookmarks(data []byte) ([]core.Bookmark, error) {
	return unmarshal(bookmarkListMUS, data)
}

// MarshalHistory serializes a search history list to bytes.
func MarshalHistory(entries []core.HistoryEntry) []byte {
	return marshal(historyListMUS, entries)
}

// UnmarshalHistory deserializes a search history list from bytes.
func UnmarshalHistory(data []byte) ([]core.HistoryEntry, error) {
	return unmarshal(historyListMUS, data)
}

// MarshalPresets serializes a filter preset list to bytes.
func MarshalPresets(presets []core.FilterPreset) []byte {
	return marshal(presetListMUS, presets)
}

// UnmarshalPresets deserializes a filter preset list from bytes.
func UnmarshalPresets(data []byte) ([]core.FilterPreset, error) {
	return unmarshal(presetListMUS, data)
}

func marshal[T any](ser serializer[T], v T) []byte {
	buf := make([]byte, ser.Size(v))
	ser.Marshal(v, buf)
	return buf
}

func unmarshal[T any](ser serializer[T], data []byte) (T, error) {
	v, n, err := ser.Unmarshal(data)
	if err != nil {
		return v, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if n != len(data) {
		return v, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return v, nil
}

// listMUS encodes a slice as a varint length followed by its elements.
type listMUS[T any] struct {
	elem serializer[T]
}

func (s listMUS[T]) Marshal(v []T, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, e := range v {
		n += s.elem.Marshal(e, bs[n:])
	}
	return n
}

func (s listMUS[T]) Unmarshal(bs []byte) (v []T, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	// Every element occupies at least one byte.
	if length < 0 || length > len(bs)-n {
		return nil, n, ErrTruncatedData
	}
	if length == 0 {
		return nil, n, nil
	}
	v = make([]T, length)
	for i := range v {
		e, m, err := s.elem.Unmarshal(bs[n:])
		n += m
		if err != nil {
			return nil, n, err
		}
		v[i] = e
	}
	return v, n, nil
}

func (s listMUS[T]) Size(v []T) (size int) {
	size = varint.Int.Size(len(v))
	for _, e := range v {
		size += s.elem.Size(e)
	}
	return size
}

// unixMilliMUS stores times with millisecond precision in UTC.
type unixMilliMUS struct{}

func (unixMilliMUS) Marshal(v time.Time, bs []byte) (n int) {
	return varint.Int64.Marshal(v.UnixMilli(), bs)
}

func (unixMilliMUS) Unmarshal(bs []byte) (v time.Time, n int, err error) {
	ms, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMilli(ms).UTC(), n, nil
}

func (unixMilliMUS) Size(v time.Time) (size int) {
	return varint.Int64.Size(v.UnixMilli())
}

type bookmarkMUS struct{}

func (bookmarkMUS) Marshal(v core.Bookmark, bs []byte) (n int) {
	n = ord.String.Marshal(v.ResourceID, bs)
	n += timeMUS.Marshal(v.Timestamp, bs[n:])
	return n
}

func (bookmarkMUS) Unmarshal(bs []byte) (v core.Bookmark, n int, err error) {
	v.ResourceID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Timestamp, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (bookmarkMUS) Size(v core.Bookmark) (size int) {
	return ord.String.Size(v.ResourceID) + timeMUS.Size(v.Timestamp)
}

type historyEntryMUS struct{}

func (historyEntryMUS) Marshal(v core.HistoryEntry, bs []byte) (n int) {
	n = ord.String.Marshal(v.Query, bs)
	n += timeMUS.Marshal(v.Timestamp, bs[n:])
	return n
}

func (historyEntryMUS) Unmarshal(bs []byte) (v core.HistoryEntry, n int, err error) {
	v.Query, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Timestamp, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (historyEntryMUS) Size(v core.HistoryEntry) (size int) {
	return ord.String.Size(v.Query) + timeMUS.Size(v.Timestamp)
}

type presetMUS struct{}

func (presetMUS) Marshal(v core.FilterPreset, bs []byte) (n int) {
	n = ord.String.Marshal(v.ID, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += stringListMUS.Marshal(v.Filters.Categories, bs[n:])
	n += stringListMUS.Marshal(v.Filters.Regions, bs[n:])
	n += stringListMUS.Marshal(v.Filters.RiskLevels, bs[n:])
	n += stringListMUS.Marshal(v.Filters.Costs, bs[n:])
	n += timeMUS.Marshal(v.CreatedAt, bs[n:])
	n += timeMUS.Marshal(v.UpdatedAt, bs[n:])
	return n
}

func (presetMUS) Unmarshal(bs []byte) (v core.FilterPreset, n int, err error) {
	v.ID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Filters.Categories, n1, err = stringListMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Filters.Regions, n1, err = stringListMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Filters.RiskLevels, n1, err = stringListMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Filters.Costs, n1, err = stringListMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CreatedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (presetMUS) Size(v core.FilterPreset) (size int) {
	size = ord.String.Size(v.ID) + ord.String.Size(v.Name)
	size += stringListMUS.Size(v.Filters.Categories)
	size += stringListMUS.Size(v.Filters.Regions)
	size += stringListMUS.Size(v.Filters.RiskLevels)
	size += stringListMUS.Size(v.Filters.Costs)
	return size + timeMUS.Size(v.CreatedAt) + timeMUS.Size(v.UpdatedAt)
}
