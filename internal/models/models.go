package models

import "time"

// User represents an account. Admins are the only users allowed to
// mutate the package catalog.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Package is a purchasable travel offering.
type Package struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Destination string  `json:"destination"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Days        int     `json:"days"`
}

// Booking links a user to a purchased package. Repeated payment
// submissions create repeated rows; there is no dedup.
type Booking struct {
	ID        int64     `json:"id"`
	Reference string    `json:"reference"`
	UserID    int64     `json:"user_id"`
	PackageID int64     `json:"package_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Diary is a free-text travel journal entry owned by a user.
type Diary struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Contact is an inquiry submitted by an unauthenticated visitor.
type Contact struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ContactNumber string    `json:"contact_number"`
	Comments      string    `json:"comments"`
	CreatedAt     time.Time `json:"created_at"`
}

// Session represents a user session.
type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
