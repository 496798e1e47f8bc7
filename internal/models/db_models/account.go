package db_models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"unique"`
	PasswordHash string
	Role         string
	Profile      *Profile `gorm:"foreignKey:AccountID"`
}
