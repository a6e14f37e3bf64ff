package employee

import "time"

type Employee struct {
	ID                string     `gorm:"primaryKey"`
	Name              string     `gorm:"column:name;not null"`
	Department        string     `gorm:"column:department"`
	Position          string     `gorm:"column:position"`
	Email             string     `gorm:"column:email;uniqueIndex;not null"`
	Phone             string     `gorm:"column:phone"`
	JoinDate          *time.Time `gorm:"column:join_date;type:date"`
	IsActive          bool       `gorm:"column:is_active;default:true"`
	ActiveAssignments int        `gorm:"column:active_assignments;default:0"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
