package store

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
)

// Sort selectors accepted by the catalog listing.
const (
	SortPriceAsc    = "price-asc"
	SortPriceDesc   = "price-desc"
	SortRatingsDesc = "ratings-desc"
	SortNewest      = "newest"
)

// DefaultPageSize is the catalog page size when none is requested.
const DefaultPageSize = 8

// ProductQuery describes a catalog listing request.
type ProductQuery struct {
	Keyword  string
	Category string
	PriceGTE *float64
	PriceLTE *float64
	Featured bool
	Sort     string
	Page     int
	Limit    int
	// All disables paging entirely (admin listing).
	All bool
}

// Filter builds the mongo filter document for the query.
func (q ProductQuery) Filter() bson.M {
	filter := bson.M{}

	if q.Keyword != "" {
		filter["title"] = bson.M{
			"$regex":   regexp.QuoteMeta(q.Keyword),
			"$options": "i",
		}
	}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.PriceGTE != nil || q.PriceLTE != nil {
		price := bson.M{}
		if q.PriceGTE != nil {
			price["$gte"] = *q.PriceGTE
		}
		if q.PriceLTE != nil {
			price["$lte"] = *q.PriceLTE
		}
		filter["price"] = price
	}
	if q.Featured {
		filter["is_featured"] = true
	}

	return filter
}

// SortDoc maps the sort selector to a mongo sort document, or nil for
// unsorted results.
func (q ProductQuery) SortDoc() bson.D {
	switch q.Sort {
	case SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}}
	case SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}}
	case SortRatingsDesc:
		return bson.D{{Key: "ratings", Value: -1}}
	case SortNewest:
		return bson.D{{Key: "created_at", Value: -1}}
	}
	return nil
}

// PerPage returns the effective page size.
func (q ProductQuery) PerPage() int64 {
	if q.Limit > 0 {
		return int64(q.Limit)
	}
	return DefaultPageSize
}

// PageNumber returns the effective 1-based page.
func (q ProductQuery) PageNumber() int64 {
	if q.Page > 0 {
		return int64(q.Page)
	}
	return 1
}

// TotalPages computes the page count for a result total.
func (q ProductQuery) TotalPages(total int64) int64 {
	perPage := q.PerPage()
	return (total + perPage - 1) / perPage
}
