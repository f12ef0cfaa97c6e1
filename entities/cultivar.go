package entities

import "time"

// CropInfo is the reference row for a crop. Cultivars link to it by name.
type CropInfo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Cultivar struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Crop       string    `gorm:"size:100;not null;uniqueIndex:idx_cultivar_name,priority:1" json:"crop"`
	Variety    string    `gorm:"size:100;not null;uniqueIndex:idx_cultivar_name,priority:2" json:"variety"`
	CropInfoID *uint     `gorm:"index" json:"crop_info_id"`
	CropInfo   *CropInfo `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
