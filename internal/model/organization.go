package model

import (
	"time"
)

type Organization struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_name" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Organization) TableName() string {
	return "organizations"
}
