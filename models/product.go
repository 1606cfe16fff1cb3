package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductImage is a stored image reference. Uploading itself happens outside
// this service; we only persist the resulting URL and provider id.
type ProductImage struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"public_id" json:"public_id"`
}

// Product is a catalog entry owned by a seller.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Brand       string             `bson:"brand" json:"brand"`
	Stock       int                `bson:"stock" json:"stock"`
	Images      []ProductImage     `bson:"images" json:"images"`
	Seller      primitive.ObjectID `bson:"seller" json:"seller"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// FirstImageURL returns the primary image, or "" when none was uploaded.
func (p *Product) FirstImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}
