package entity

import "time"

// Profile is an opaque per-user document. Field names are chosen by callers
// (name, email, course, createdAt).
type Profile struct {
	UserId    string
	Fields    map[string]interface{}
	CreatedAt time.Time
	UpdatedAt time.Time
}
