// Package models contains server-side data structures shared between
// repositories, services, and the HTTP layer.
package models

import "time"

// User is the identity record owned by the data layer. The auth core only
// reads it and triggers timestamp updates.
//
// Email is stored encrypted (deterministic AES) so the data layer can search
// it by equality; services decrypt it before handing the record to clients.
// PasswordHash never leaves the server: the json tag strips it from payloads.
type User struct {
	ID           string     `json:"userId"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Enabled      bool       `json:"enabled"`
	LastLoginAt  *time.Time `json:"lastLoginDt,omitempty"`
	LastLogoutAt *time.Time `json:"lastLogoutDt,omitempty"`
}
