// Package users, as part of the profile management module.
// This file, `dto.go`, defines the request bodies accepted by the profile routes.
package users

// Fields a profile update may touch. Anything else in a PATCH body is rejected
// before the user record is changed.
var updatableFields = []string{"name", "email", "password"}

// UpdateProfileRequest represents the data for updating the current user's profile.
// @Description Request body for updating the profile. Only name, email and password are accepted.
type UpdateProfileRequest struct {
	// Pointers allow partial updates: a nil field is left as it is.
	// example: "Andrew Mead"
	Name *string `json:"name,omitempty" example:"Andrew Mead"`
	// example: "andrew@example.com"
	Email *string `json:"email,omitempty" example:"andrew@example.com"`
	// The new password is hashed before it is stored.
	// example: "Sunrise99"
	Password *string `json:"password,omitempty" example:"Sunrise99"`
}
