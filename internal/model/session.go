package model

import "time"

// SessionData contains the data stored with an admin session token.
type SessionData struct {
	SessionID string    `json:"session_id"`
	RemoteIP  string    `json:"remote_ip"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// StoredBlob is a named JSON document held by the persistence bridge.
type StoredBlob struct {
	Type      string    `json:"type"`
	Content   []byte    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}
