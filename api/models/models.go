package models

import (
	"github.com/samber/lo"
	"github.com/sciencelabshs/neonlink/database"
)

// RegisterRequest is the body of POST /api/users.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest is the body of PUT /api/users/changePassword.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// UpdateUserRequest is the body of the admin PUT /api/users/:id. Password is
// optional; the admin flag is always applied.
type UpdateUserRequest struct {
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

// User is the public shape of a user account. The password hash never leaves
// the server.
type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// LoginResponse is returned on successful login, alongside the session cookie.
type LoginResponse struct {
	SessionID string `json:"sessionId"`
	UserID    uint   `json:"userId"`
	Username  string `json:"username"`
	IsAdmin   bool   `json:"isAdmin"`
}

// Settings is the per-user dashboard settings shape.
type Settings struct {
	MaxNumberOfLinks  int    `json:"maxNumberOfLinks"`
	LinkInNewTab      bool   `json:"linkInNewTab"`
	UseBgImage        bool   `json:"useBgImage"`
	BgImage           string `json:"bgImage"`
	Columns           int    `json:"columns"`
	CardStyle         string `json:"cardStyle"`
	EnableNeonShadows bool   `json:"enableNeonShadows"`
	CardPosition      string `json:"cardPosition"`
}

// Me is the response of GET /api/users/me. The identity and settings fields
// are only present for authenticated sessions; visitors get the anonymous
// shape with just the authenticated flag.
type Me struct {
	Authenticated bool      `json:"authenticated"`
	ID            *uint     `json:"id,omitempty"`
	Username      *string   `json:"username,omitempty"`
	IsAdmin       *bool     `json:"isAdmin,omitempty"`
	Settings      *Settings `json:"settings,omitempty"`
}

// StatusResponse is the generic {status: "OK"} shape.
type StatusResponse struct {
	Status string `json:"status"`
}

// ToUser converts a database user to its public shape.
func ToUser(u *database.User) User {
	return User{
		ID:       u.ID,
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
	}
}

// ToUsers converts a database user listing to its public shape.
func ToUsers(users []database.User) []User {
	return lo.Map(users, func(u database.User, _ int) User {
		return ToUser(&u)
	})
}

// ToSettings converts a settings row to its public shape, or nil.
func ToSettings(s *database.UserSettings) *Settings {
	if s == nil {
		return nil
	}
	return &Settings{
		MaxNumberOfLinks:  s.MaxNumberOfLinks,
		LinkInNewTab:      s.LinkInNewTab,
		UseBgImage:        s.UseBgImage,
		BgImage:           s.BgImage,
		Columns:           s.Columns,
		CardStyle:         s.CardStyle,
		EnableNeonShadows: s.EnableNeonShadows,
		CardPosition:      s.CardPosition,
	}
}
