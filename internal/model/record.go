package model

import "time"

// LaundryRecord is one drop-off event for one student. TotalClothes is the
// caller-supplied aggregate and is not recomputed from the detail rows.
type LaundryRecord struct {
	RecordID     int64     `gorm:"primaryKey" json:"record_id"`
	StudentID    int64     `gorm:"index;not null" json:"student_id"`
	DateGiven    time.Time `gorm:"not null" json:"date_given"`
	TotalClothes int       `gorm:"not null" json:"total_clothes"`
	IsCollected  bool      `gorm:"not null;default:false" json:"is_collected"`
}

// LaundryRecordDetail is one itemized quantity line attached to a record.
// Only strictly positive quantities are ever persisted.
type LaundryRecordDetail struct {
	RecordID int64    `gorm:"index;not null" json:"record_id"`
	ItemID   ItemKind `gorm:"not null" json:"item_id"`
	Quantity int      `gorm:"not null" json:"quantity"`
}
