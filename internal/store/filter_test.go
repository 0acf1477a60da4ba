package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func floatPtr(v float64) *float64 { return &v }

func TestProductQuery_Filter_Empty(t *testing.T) {
	q := ProductQuery{}
	assert.Equal(t, bson.M{}, q.Filter())
}

func TestProductQuery_Filter_Keyword(t *testing.T) {
	q := ProductQuery{Keyword: "camera"}

	filter := q.Filter()

	title, ok := filter["title"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "camera", title["$regex"])
	assert.Equal(t, "i", title["$options"])
}

func TestProductQuery_Filter_KeywordEscapesRegex(t *testing.T) {
	q := ProductQuery{Keyword: "2-in-1 (refurbished)"}

	filter := q.Filter()

	title, ok := filter["title"].(bson.M)
	require.True(t, ok)
	assert.NotContains(t, title["$regex"], "(refurbished)")
}

func TestProductQuery_Filter_PriceRange(t *testing.T) {
	q := ProductQuery{PriceGTE: floatPtr(10), PriceLTE: floatPtr(100)}

	filter := q.Filter()

	price, ok := filter["price"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 10.0, price["$gte"])
	assert.Equal(t, 100.0, price["$lte"])
}

func TestProductQuery_Filter_CategoryAndFeatured(t *testing.T) {
	q := ProductQuery{Category: "Laptops", Featured: true}

	filter := q.Filter()

	assert.Equal(t, "Laptops", filter["category"])
	assert.Equal(t, true, filter["is_featured"])
}

func TestProductQuery_SortDoc(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "price", Value: 1}}, ProductQuery{Sort: SortPriceAsc}.SortDoc())
	assert.Equal(t, bson.D{{Key: "price", Value: -1}}, ProductQuery{Sort: SortPriceDesc}.SortDoc())
	assert.Equal(t, bson.D{{Key: "ratings", Value: -1}}, ProductQuery{Sort: SortRatingsDesc}.SortDoc())
	assert.Equal(t, bson.D{{Key: "created_at", Value: -1}}, ProductQuery{Sort: SortNewest}.SortDoc())
	assert.Nil(t, ProductQuery{Sort: "unknown"}.SortDoc())
	assert.Nil(t, ProductQuery{}.SortDoc())
}

func TestProductQuery_Paging_Defaults(t *testing.T) {
	q := ProductQuery{}

	assert.Equal(t, int64(DefaultPageSize), q.PerPage())
	assert.Equal(t, int64(1), q.PageNumber())
}

func TestProductQuery_Paging_Explicit(t *testing.T) {
	q := ProductQuery{Page: 3, Limit: 20}

	assert.Equal(t, int64(20), q.PerPage())
	assert.Equal(t, int64(3), q.PageNumber())
}

func TestProductQuery_TotalPages(t *testing.T) {
	q := ProductQuery{}

	assert.Equal(t, int64(0), q.TotalPages(0))
	assert.Equal(t, int64(1), q.TotalPages(8))
	assert.Equal(t, int64(2), q.TotalPages(9))
	assert.Equal(t, int64(2), q.TotalPages(10))

	q.Limit = 4
	assert.Equal(t, int64(3), q.TotalPages(10))
}
