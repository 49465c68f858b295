package models

// MessageResponse is the body shape of the auth and user endpoints:
// a human-readable message plus optional identifiers.
type MessageResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId,omitempty"`
}

// ErrorResponse is the uniform failure body of the financial endpoints.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// DataResponse is the uniform success body of the financial endpoints.
// Pagination is present only on list responses.
type DataResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination is the metadata attached to entry list responses.
type Pagination struct {
	CurrentPage    int `json:"currentPage"`
	TotalPages     int `json:"totalPages"`
	TotalEntries   int `json:"totalEntries"`
	EntriesPerPage int `json:"entriesPerPage"`
}

// Profile is the read-model of a user returned by the profile endpoint.
type Profile struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Photo             string `json:"photo,omitempty"`
	IsAccountVerified bool   `json:"isAccountVerified"`
}

// ProfileOf projects a stored user onto its client-visible profile shape.
func ProfileOf(u User) Profile {
	return Profile{
		Name:              u.Name,
		Email:             u.Email,
		Photo:             u.Photo,
		IsAccountVerified: u.IsVerified,
	}
}
