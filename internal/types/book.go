package types

import (
	"time"
)

// SourceKyobo identifies the origin site of crawled records.
const SourceKyobo = "kyobo"

// TitlePlaceholder is stored when a card carries no title element at all.
const TitlePlaceholder = "제목없음"

// Book is one crawled book record. Records are append-only: they are created
// by the crawler, read by the API and recommender, and never mutated or
// deleted. Re-crawling a keyword inserts additional records.
type Book struct {
	SearchKeyword   string    `bson:"search_keyword"             json:"searchKeyword"`
	Title           string    `bson:"title"                      json:"title"`
	Author          string    `bson:"author"                     json:"author"`
	Price           string    `bson:"price"                      json:"price"`
	Publisher       string    `bson:"publisher"                  json:"publisher"`
	PublicationDate string    `bson:"publication_date"           json:"publicationDate"`
	LocalImagePath  string    `bson:"local_image_path,omitempty" json:"localImagePath,omitempty"`
	SourceSite      string    `bson:"source_site"                json:"sourceSite"`
	CrawledAt       time.Time `bson:"crawled_at"                 json:"crawledAt"`
}

// HasImage reports whether a cover image was downloaded for this record.
func (b *Book) HasImage() bool {
	return b.LocalImagePath != ""
}
