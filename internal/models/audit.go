package models

import (
	"time"

	"github.com/gocql/gocql"
)

// AuditLog records one admin action against the storefront.
type AuditLog struct {
	ID         gocql.UUID `json:"id"`
	Actor      string     `json:"actor"`
	Action     string     `json:"action"`
	Resource   string     `json:"resource"`
	ResourceID string     `json:"resource_id,omitempty"`
	NewValue   string     `json:"new_value,omitempty"`
	IPAddress  string     `json:"ip_address"`
	UserAgent  string     `json:"user_agent"`
	Success    bool       `json:"success"`
	ErrorMsg   string     `json:"error_msg,omitempty"`
	RequestID  string     `json:"request_id,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
}
