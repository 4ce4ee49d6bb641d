package cqrs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pageItem struct {
	ID   int
	Name string
}

func TestNewPage(t *testing.T) {
	items := []pageItem{{ID: 1, Name: "value"}, {ID: 2, Name: "value"}}
	p := NewPage(items, 10, 0, 2)

	assert.Equal(t, "value", p.Items[0].Name)
	assert.Equal(t, 2, p.Items[1].ID)
	assert.Equal(t, 5, p.TotalPages())
	assert.Equal(t, 1, p.PageNumber())
	assert.False(t, p.HasPrev())
	assert.Equal(t, 0, p.Prev())
	assert.True(t, p.HasNext())
	assert.Equal(t, 2, p.Next())
}

func TestNewPageWithPrev(t *testing.T) {
	p := NewPage([]pageItem{{ID: 3}, {ID: 4}}, 10, 1, 2)

	assert.True(t, p.HasPrev())
	assert.Equal(t, 1, p.Prev())
	assert.True(t, p.HasNext())
	assert.Equal(t, 3, p.Next())
}

func TestPage_LastPage(t *testing.T) {
	p := NewPage([]pageItem{{ID: 5}}, 5, 2, 2)

	assert.Equal(t, 3, p.TotalPages())
	assert.False(t, p.HasNext())
	assert.Equal(t, 0, p.Next())
}

func TestPage_HugeIndexHasNoNext(t *testing.T) {
	p := NewPage([]pageItem{}, 3, math.MaxInt/2, 4)

	assert.Equal(t, 1, p.TotalPages())
	assert.False(t, p.HasNext())
	assert.Equal(t, 0, p.Next())
	assert.True(t, p.HasPrev())
}

func TestPage_TotalPages(t *testing.T) {
	assert.Equal(t, 2, Page[pageItem]{Count: 4, PageSize: 2}.TotalPages())
	assert.Equal(t, 3, Page[pageItem]{Count: 5, PageSize: 2}.TotalPages())
	assert.Equal(t, math.MaxInt/2+1, Page[pageItem]{Count: math.MaxInt, PageSize: 2}.TotalPages())
	assert.Equal(t, 0, Page[pageItem]{Count: 5}.TotalPages())
}

func TestPage_NilItems(t *testing.T) {
	p := NewPage[pageItem](nil, 0, 0, 10)

	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.Equal(t, 0, p.TotalPages())
}

func TestPage_Bounds(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		index     int
		size      int
		wantStart int
		wantEnd   int
	}{
		{name: "first page", count: 5, index: 0, size: 2, wantStart: 0, wantEnd: 2},
		{name: "partial last page", count: 5, index: 2, size: 2, wantStart: 4, wantEnd: 5},
		{name: "past the end", count: 5, index: 7, size: 2, wantStart: 5, wantEnd: 5},
		{name: "zero page size", count: 5, index: 0, size: 0, wantStart: 0, wantEnd: 0},
		{name: "negative index", count: 5, index: -1, size: 2, wantStart: 0, wantEnd: 2},
		{name: "huge index", count: 5, index: math.MaxInt / 2, size: 4, wantStart: 5, wantEnd: 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Page[pageItem]{Count: tc.count, PageIndex: tc.index, PageSize: tc.size}
			start, end := p.Bounds()
			assert.Equal(t, tc.wantStart, start)
			assert.Equal(t, tc.wantEnd, end)
		})
	}
}
