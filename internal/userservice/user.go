package userservice

import (
	"github.com/sushihentaime/bloglist/internal/auth"
)

func (u *User) Identity() *auth.Identity {
	return &auth.Identity{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
	}
}
