package db_models

// Admin is a back-office operator. Rows are provisioned out of band, never over HTTP.
type Admin struct {
	BaseModel
	Email        string `gorm:"unique"`
	PasswordHash string
}
