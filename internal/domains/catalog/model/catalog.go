package model

import "time"

// Reference data the review domain joins against. These tables are seeded out
// of band; the service reads them but never mutates them.

type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Lastname        string     `json:"lastname"`
	Email           string     `json:"email"`
	Password        string     `json:"-"`
	RoleID          *int64     `json:"role_fk"`
	VerificationKey *string    `json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"deleted_at"`
	VerifiedAt      *time.Time `json:"verified_at"`
	IsBlocked       bool       `json:"is_blocked"`
}

type Media struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Platform struct {
	ID   int64  `json:"id"`
	Link string `json:"link"`
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
