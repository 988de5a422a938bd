package models

import (
	"encoding/json"
	"time"
)

// UserRecord is one entry of the user directory returned by the API
type UserRecord struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// UnmarshalJSON accepts both "_id" and "id" as the identifier
func (u *UserRecord) UnmarshalJSON(data []byte) error {
	type plain UserRecord
	aux := struct {
		*plain
		AltID string `json:"id"`
	}{plain: (*plain)(u)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = aux.AltID
	}
	return nil
}
