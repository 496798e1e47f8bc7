package db_models

type Category struct {
	BaseModel
	Name   string  `gorm:"unique;not null"`
	Groups []Group `gorm:"foreignKey:CategoryID"`
}
