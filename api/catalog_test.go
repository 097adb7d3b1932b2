package api_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temporalio/temporal-restaurant/api"
)

func TestCatalogCategoriesKeepFirstSeenOrder(t *testing.T) {
	c := api.NewCatalog(
		api.CatalogEntry{Item: api.MenuItem{ID: 1, Name: "Cola", Category: "drinks"}},
		api.CatalogEntry{Item: api.MenuItem{ID: 2, Name: "Fries", Category: "sides"}},
		api.CatalogEntry{Item: api.MenuItem{ID: 3, Name: "Water", Category: "drinks"}},
	)

	assert.Equal(t, []string{"drinks", "sides"}, c.Categories())

	items, err := c.Items("drinks")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cola", "Water"}, []string{items[0].Name, items[1].Name})
	assert.Equal(t, "/images/3.png", items[1].ImageURL)

	_, err = c.Items("desserts")
	assert.ErrorIs(t, err, api.ErrUnknownCategory)
}

func TestCatalogPreparationTime(t *testing.T) {
	c := api.DefaultCatalog()

	tests := []struct {
		name string
		ids  []int
		want int
	}{
		{"single item", []int{5}, 3},
		{"slowest item wins", []int{2, 7}, 16},
		{"duplicates count", []int{1, 1, 1}, 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.PreparationTime(tt.ids)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := c.PreparationTime(nil)
	assert.ErrorIs(t, err, api.ErrEmptyOrder)

	_, err = c.PreparationTime([]int{1, 42})
	assert.ErrorIs(t, err, api.ErrUnknownMenuItem)
}
