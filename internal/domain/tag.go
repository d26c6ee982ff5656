package domain

// Tag is a shared label. Name is the case-sensitive lookup key; tags are
// created lazily and never deleted by the catalog.
type Tag struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Slug string `gorm:"not null;index;column:slug" json:"slug"`
}

func (Tag) TableName() string {
	return "tags"
}
