package userstub

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shandysiswandi/usere2e/internal/pkg/router"
	"github.com/shandysiswandi/usere2e/internal/userservice"
)

type healthResponse struct {
	Status string `json:"status"`
}

// UserResponse is the body returned for a created or fetched user.
type UserResponse struct {
	ID                 string                `json:"id"`
	FirstName          string                `json:"firstName"`
	LastName           string                `json:"lastName"`
	ImageURL           string                `json:"imageUrl"`
	Email              string                `json:"email"`
	Phone              string                `json:"phone"`
	Addresses          []userservice.Address `json:"addressDtos"`
	Username           string                `json:"username"`
	RoleBasedAuthority string                `json:"roleBasedAuthority"`
	CreatedAt          time.Time             `json:"createdAt"`

	status int
}

// StatusCode implements the router success status contract.
func (r UserResponse) StatusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

func toResponse(u *user, status int) UserResponse {
	return UserResponse{
		ID:                 strconv.FormatInt(u.ID, 10),
		FirstName:          u.Request.FirstName,
		LastName:           u.Request.LastName,
		ImageURL:           u.Request.ImageURL,
		Email:              u.Request.Email,
		Phone:              u.Request.Phone,
		Addresses:          u.Request.Addresses,
		Username:           u.Request.Credential.Username,
		RoleBasedAuthority: u.Request.Credential.RoleBasedAuthority,
		CreatedAt:          u.CreatedAt,
		status:             status,
	}
}

func (s *Server) health(*router.Request) (any, error) {
	return healthResponse{Status: "ok"}, nil
}

func (s *Server) createUser(r *router.Request) (any, error) {
	ctx, span := s.tracer.Start(r.Context(), "userstub.CreateUser")
	defer span.End()

	var in userservice.UserCreationRequest
	if err := r.DecodeBody(&in); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		slog.WarnContext(ctx, "user creation rejected", "error", err)
		return nil, err
	}

	hashed, err := s.hash.Hash(in.Credential.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, err
	}

	email := normalizeEmail(in.Email)
	in.Email = email
	in.Credential.Password = ""

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		slog.WarnContext(ctx, "user account is already exists", "email", email)
		return nil, router.NewError(http.StatusConflict, "user account with that email already exists")
	}
	if _, exists := s.byLogin[in.Credential.Username]; exists {
		slog.WarnContext(ctx, "username is already taken", "username", in.Credential.Username)
		return nil, router.NewError(http.StatusConflict, "username already taken")
	}

	u := &user{
		ID:           s.ids.Generate(),
		Request:      in,
		PasswordHash: string(hashed),
		CreatedAt:    s.clock.Now(),
	}
	s.byID[u.ID] = u
	s.byEmail[email] = u.ID
	s.byLogin[in.Credential.Username] = u.ID
	s.created.Inc()

	slog.InfoContext(ctx, "user created", "id", u.ID, "email", email)

	return toResponse(u, http.StatusCreated), nil
}

func (s *Server) getUser(r *router.Request) (any, error) {
	if _, err := r.GetParamInt64("id"); err != nil {
		return nil, err
	}

	u, ok := s.find(r.GetParam("id"))
	if !ok {
		return nil, router.NewError(http.StatusNotFound, "user not found")
	}

	return toResponse(u, http.StatusOK), nil
}

func (s *Server) deleteUser(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, router.NewError(http.StatusNotFound, "user not found")
	}

	delete(s.byID, id)
	delete(s.byEmail, u.Request.Email)
	delete(s.byLogin, u.Request.Credential.Username)

	return nil, nil
}
