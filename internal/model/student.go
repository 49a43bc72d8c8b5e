package model

// Student represents a registered resident identified by room position
// (floor and page number) and name.
type Student struct {
	StudentID int64  `gorm:"primaryKey" json:"student_id"`
	Name      string `gorm:"size:128;not null" json:"name"`
	FloorNo   int    `gorm:"not null" json:"floor_no"`
	PageNo    int    `gorm:"not null" json:"page_no"`
}
