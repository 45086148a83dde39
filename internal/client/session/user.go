package session

import (
	"encoding/json"
	"fmt"
)

// Provider identifies the identity source of a login.
type Provider string

const (
	ProviderEmail  Provider = "email"
	ProviderGoogle Provider = "google"
)

// User is the signed-in account record. It is kept in memory while logged
// in and persisted as JSON under the session-user key.
type User struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Picture  string   `json:"picture,omitempty"`
	Provider Provider `json:"provider"`
}

func (u *User) encode() ([]byte, error) {
	return json.Marshal(u)
}

// decodeUser parses and validates a stored user record. A record that does
// not decode or misses required fields is rejected, which the caller treats
// the same as an absent record.
func decodeUser(data []byte) (*User, error) {
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("decode user record: %w", err)
	}
	if u.ID == "" || u.Email == "" {
		return nil, fmt.Errorf("user record misses id or email")
	}
	if u.Provider != ProviderEmail && u.Provider != ProviderGoogle {
		return nil, fmt.Errorf("user record has unknown provider %q", u.Provider)
	}
	return &u, nil
}
