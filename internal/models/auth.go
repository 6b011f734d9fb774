package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest identifies the account to sign in as. The portal performs no
// credential verification; login resolves a seeded user and routes by role.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
}

// LoginResponse returns the issued token and the role landing route.
type LoginResponse struct {
	AccessToken   string    `json:"access_token"`
	ExpiresIn     int64     `json:"expires_in"`
	DashboardPath string    `json:"dashboard_path"`
	User          UserInfo  `json:"user"`
	IssuedAt      time.Time `json:"issued_at"`
}

// UserInfo describes the authenticated user in responses.
type UserInfo struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	FullName string   `json:"full_name"`
	Role     UserRole `json:"role"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	Username string   `json:"username"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}
