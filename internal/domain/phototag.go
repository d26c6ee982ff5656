package domain

// PhotoTag links one photo to one tag. The composite primary key makes
// duplicate tagging a constraint-level no-op.
type PhotoTag struct {
	PhotoID int64 `gorm:"primaryKey;autoIncrement:false;column:photo_id" json:"photo_id"`
	TagID   int64 `gorm:"primaryKey;autoIncrement:false;column:tag_id" json:"tag_id"`
}

func (PhotoTag) TableName() string {
	return "photo_tags"
}
