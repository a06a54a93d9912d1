// Package models contains data structures for the application's domain models.
package models

// User represents an account that owns posts.
//
// Password is stored as submitted. It is never serialized.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Posts    []Post `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
