// Package userservice describes the public HTTP contract of the external user
// service: the payload it accepts on user creation, a builder for it and a
// client that posts it through the REST facade.
package userservice

// RoleUser is the authority granted to regular accounts.
const RoleUser = "ROLE_USER"

// UserCreationRequest is the body of POST /user-service/api/users.
//
// Field names are part of the service contract. The validate tags describe what
// the service is expected to enforce; the builder never checks them.
type UserCreationRequest struct {
	FirstName  string      `json:"firstName" validate:"required,max=100"`
	LastName   string      `json:"lastName" validate:"required,max=100"`
	ImageURL   string      `json:"imageUrl" validate:"omitempty,url"`
	Email      string      `json:"email" validate:"required,email"`
	Phone      string      `json:"phone" validate:"required,phone"`
	Addresses  []Address   `json:"addressDtos" validate:"dive"`
	Credential *Credential `json:"credential,omitempty" validate:"required"`
}

// Address belongs to exactly one UserCreationRequest.
type Address struct {
	FullAddress string `json:"fullAddress" validate:"required"`
	PostalCode  string `json:"postalCode" validate:"required"`
	City        string `json:"city" validate:"required"`
}

// Credential holds the login data of the user. Password travels in plain text.
type Credential struct {
	Username                string `json:"username" validate:"required"`
	Password                string `json:"password" validate:"required,password"`
	RoleBasedAuthority      string `json:"roleBasedAuthority" validate:"required"`
	IsEnabled               bool   `json:"isEnabled"`
	IsAccountNonExpired     bool   `json:"isAccountNonExpired"`
	IsAccountNonLocked      bool   `json:"isAccountNonLocked"`
	IsCredentialsNonExpired bool   `json:"isCredentialsNonExpired"`
}

// NewCredential returns an active ROLE_USER credential.
func NewCredential(username, password string) Credential {
	return Credential{
		Username:                username,
		Password:                password,
		RoleBasedAuthority:      RoleUser,
		IsEnabled:               true,
		IsAccountNonExpired:     true,
		IsAccountNonLocked:      true,
		IsCredentialsNonExpired: true,
	}
}

// CreatedUser is the part of the creation response the harness reads. The
// service decides its exact shape; unknown fields are ignored.
type CreatedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
