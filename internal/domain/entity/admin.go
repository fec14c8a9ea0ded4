package entity

import "time"

// AdminMethod records how an admin session was opened.
type AdminMethod string

const (
	AdminMethodPassword AdminMethod = "password"
	AdminMethodFirebase AdminMethod = "firebase"
)

// AdminSession is a signed session token handed to the CMS client.
type AdminSession struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	Subject   string      `json:"subject"`
	Method    AdminMethod `json:"method"`
}

// AdminIdentity is what a verified session token says about its holder.
type AdminIdentity struct {
	Subject string
	Method  AdminMethod
}

// ClearOptions selects the collections wiped by maintenance.
type ClearOptions struct {
	Reviews         bool `json:"reviews"`
	Keys            bool `json:"keys"`
	ConnectionTests bool `json:"connectionTests"`
}

// ClearResult counts documents removed per collection.
type ClearResult struct {
	Success         bool   `json:"success"`
	Reviews         int    `json:"reviews"`
	Keys            int    `json:"keys"`
	ConnectionTests int    `json:"connectionTests"`
	Message         string `json:"message,omitempty"`
}
