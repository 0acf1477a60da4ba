package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is the closed set of product categories.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryCameras     Category = "Cameras"
	CategoryLaptops     Category = "Laptops"
	CategoryAccessories Category = "Accessories"
	CategoryHeadphones  Category = "Headphones"
	CategoryFood        Category = "Food"
	CategoryBooks       Category = "Books"
	CategorySports      Category = "Sports"
	CategoryOutdoor     Category = "Outdoor"
	CategoryHome        Category = "Home"
)

// Categories lists every valid product category, in display order.
var Categories = []Category{
	CategoryElectronics,
	CategoryCameras,
	CategoryLaptops,
	CategoryAccessories,
	CategoryHeadphones,
	CategoryFood,
	CategoryBooks,
	CategorySports,
	CategoryOutdoor,
	CategoryHome,
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	for _, valid := range Categories {
		if c == valid {
			return true
		}
	}
	return false
}

func (c Category) String() string { return string(c) }

// ParseCategory validates a raw category value.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("invalid category %q", s)
	}
	return c, nil
}

// ProductImage is a single uploaded image reference.
type ProductImage struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"public_id" json:"public_id"`
}

// Review is one user's review embedded in a product document.
// A user has at most one review per product.
type Review struct {
	UserID  primitive.ObjectID `bson:"user" json:"user"`
	Name    string             `bson:"name" json:"name"`
	Rating  float64            `bson:"rating" json:"rating"`
	Comment string             `bson:"comment" json:"comment"`
}

// Product is the canonical source of current price, stock and metadata.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description" json:"description"`
	Ratings     float64            `bson:"ratings" json:"ratings"`
	Images      []ProductImage     `bson:"images" json:"images"`
	Category    Category           `bson:"category" json:"category"`
	Seller      string             `bson:"seller" json:"seller"`
	Stock       int                `bson:"stock" json:"stock"`
	Reviews     []Review           `bson:"reviews" json:"reviews"`
	IsFeatured  bool               `bson:"is_featured" json:"isFeatured"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// AverageRating computes the arithmetic mean over the current reviews.
// A product with no reviews has rating zero.
func (p *Product) AverageRating() float64 {
	if len(p.Reviews) == 0 {
		return 0
	}
	var sum float64
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	return sum / float64(len(p.Reviews))
}
