package entity

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleStaff   UserRole = "staff"
)

// User представляет сотрудника мастерской. Принадлежность к мастерской (shop_id)
// задаёт границу арендатора: сотрудник видит только записи своей мастерской.
type User struct {
	ID           int64    `json:"id" db:"id"`
	Username     string   `json:"username" db:"username"`
	PasswordHash string   `json:"-" db:"password_hash"`
	Role         UserRole `json:"role" db:"role"`
	IsActive     bool     `json:"is_active" db:"is_active"`
	ShopID       int64    `json:"shop_id" db:"shop_id"`
}
