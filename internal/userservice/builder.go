package userservice

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/shandysiswandi/usere2e/internal/pkg/uid"
)

var uniqueIDs uid.StringID = uid.NewUUID()

// Builder assembles a UserCreationRequest from literal values. It performs no
// validation and no I/O; malformed data is for the service to reject.
type Builder struct {
	req UserCreationRequest
}

// NewUser starts an empty request.
func NewUser() *Builder {
	return &Builder{}
}

// Name sets the first and last name.
func (b *Builder) Name(first, last string) *Builder {
	b.req.FirstName = first
	b.req.LastName = last
	return b
}

// ImageURL sets the avatar URL.
func (b *Builder) ImageURL(u string) *Builder {
	b.req.ImageURL = u
	return b
}

// Email sets the email address.
func (b *Builder) Email(email string) *Builder {
	b.req.Email = email
	return b
}

// Phone sets the phone number.
func (b *Builder) Phone(phone string) *Builder {
	b.req.Phone = phone
	return b
}

// Address appends an address; order is preserved.
func (b *Builder) Address(fullAddress, postalCode, city string) *Builder {
	b.req.Addresses = append(b.req.Addresses, Address{
		FullAddress: fullAddress,
		PostalCode:  postalCode,
		City:        city,
	})
	return b
}

// Credential sets the embedded credential.
func (b *Builder) Credential(c Credential) *Builder {
	b.req.Credential = &c
	return b
}

// WithoutCredential drops the credential so it is omitted from the payload.
func (b *Builder) WithoutCredential() *Builder {
	b.req.Credential = nil
	return b
}

// Build returns the request. The result shares no memory with the builder,
// so later builder calls do not change it.
func (b *Builder) Build() UserCreationRequest {
	out := b.req
	out.Addresses = lo.Map(b.req.Addresses, func(a Address, _ int) Address { return a })
	if b.req.Credential != nil {
		c := *b.req.Credential
		out.Credential = &c
	}

	return out
}

// defaultUser is the reference user of the save-user scenario.
func defaultUser() *Builder {
	return NewUser().
		Name("Juan Felipe", "Madrid").
		ImageURL("http://placeholder:200").
		Email("juanmadrid@gmail.com").
		Phone("3023028538").
		Address("Cr85c#15-94", "760000", "Cali").
		Credential(NewCredential("juanmadrid", "12345678"))
}

// DefaultUser returns the reference payload of the save-user scenario.
func DefaultUser() UserCreationRequest {
	return defaultUser().Build()
}

// UniqueUser returns DefaultUser with an email and username that will not
// collide with other runs against the same service, even concurrent ones.
func UniqueUser(prefix string) UserCreationRequest {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "juanmadrid"
	}
	suffix := strings.ReplaceAll(uniqueIDs.Generate(), "-", "")

	return defaultUser().
		Email(fmt.Sprintf("%s-%s@example.com", prefix, suffix)).
		Credential(NewCredential(fmt.Sprintf("%s%s", prefix, suffix), "12345678")).
		Build()
}
