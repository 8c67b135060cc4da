package users

import "threadly/internal/sheets"

const Sheet = "users"

// User is a transient snapshot of a row in the users sheet. The sheet
// is the system of record; the application never keeps a canonical copy.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func fromRow(row sheets.Row) User {
	return User{
		ID:           sheets.Str(row, "id"),
		Name:         sheets.Str(row, "name"),
		Email:        sheets.Str(row, "email"),
		PasswordHash: sheets.Str(row, "password"),
		CreatedAt:    sheets.Str(row, "created_at"),
		UpdatedAt:    sheets.Str(row, "updated_at"),
	}
}
