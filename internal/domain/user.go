package domain

import "time"

// Role of a user
type Role string

// User roles
const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// UserStatus of a user account
type UserStatus string

// User statuses
const (
	UserActive   UserStatus = "ACTIVE"
	UserInactive UserStatus = "INACTIVE"
)

// User Model
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`                            // Primary key
	Username  string     `gorm:"size:64;uniqueIndex;not null" json:"username"`    // Unique username
	FullName  string     `gorm:"size:128" json:"fullName"`                        // Display name
	Email     string     `gorm:"size:255;not null" json:"email"`                  // Contact email
	Role      Role       `gorm:"size:16;not null;default:'USER'" json:"role"`     // USER or ADMIN
	Status    UserStatus `gorm:"size:16;not null;default:'ACTIVE'" json:"status"` // ACTIVE or INACTIVE
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`                 // Signup time
}

// TableName keeps the legacy table name; "user" is reserved in most dialects
func (User) TableName() string { return "user_table" }
