package entity

import (
	"PerfDash/internal/lib/validate"
	"net/http"
)

// AdminUser owns the static key of the listen config and may issue new keys.
const AdminUser = "internal"

// UserAuth is the dashboard user resolved from an API key.
type UserAuth struct {
	Username string `json:"username" bson:"username" validate:"required"`
	Token    string `json:"token" bson:"key" validate:"required,min=1"`
}

func (u *UserAuth) Bind(_ *http.Request) error {
	return validate.Struct(u)
}
