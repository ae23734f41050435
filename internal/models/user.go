package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// DirectoryEntry is a user document as read for the viewer directory.
type DirectoryEntry struct {
	ID        string
	Username  string
	FirstName string
	LastName  string
	Email     string
}

func (u *DirectoryEntry) UnmarshalBSON(data []byte) error {
	raw := bson.Raw(data)
	if err := raw.Validate(); err != nil {
		return err
	}

	*u = DirectoryEntry{
		ID:        lookupString(raw, "_id"),
		Username:  lookupString(raw, "username"),
		FirstName: lookupString(raw, "first_name"),
		LastName:  lookupString(raw, "last_name"),
		Email:     lookupString(raw, "email"),
	}
	return nil
}

// DisplayName is the first non-empty of handle, full name, email and id.
func (u DirectoryEntry) DisplayName() string {
	if name := strings.TrimSpace(u.Username); name != "" {
		return name
	}
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	if email := strings.TrimSpace(u.Email); email != "" {
		return email
	}
	return u.ID
}

type DirectoryUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
