package models

import "time"

// Product is an enhancement offered in the catalogue.
type Product struct {
	ID               string    `bson:"id" json:"id" yaml:"id"`
	Name             string    `bson:"name" json:"name" yaml:"name"`
	Category         string    `bson:"category" json:"category" yaml:"category"`
	SubCategory      string    `bson:"sub_category" json:"sub_category" yaml:"sub_category"`
	Price            float64   `bson:"price" json:"price" yaml:"price"` // EUR
	Description      string    `bson:"description" json:"description" yaml:"description"`
	ShortDescription string    `bson:"short_description" json:"short_description" yaml:"short_description"`
	ImageURL         string    `bson:"image_url" json:"image_url" yaml:"image_url"`
	Rating           float64   `bson:"rating" json:"rating" yaml:"rating"`
	ReviewCount      int       `bson:"review_count" json:"review_count" yaml:"review_count"`
	Features         []string  `bson:"features" json:"features" yaml:"features"`
	Compatibility    []string  `bson:"compatibility" json:"compatibility" yaml:"compatibility"`
	IsNew            bool      `bson:"is_new" json:"is_new" yaml:"is_new"`
	IsFeatured       bool      `bson:"is_featured" json:"is_featured" yaml:"is_featured"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at" yaml:"-"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updated_at" yaml:"-"`
}

// ProductFilter narrows a catalogue listing. Zero value lists everything.
type ProductFilter struct {
	Category     string
	FeaturedOnly bool
	NewOnly      bool
}
