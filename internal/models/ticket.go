package models

import "time"

type TicketStatus string

const (
	TicketNew        TicketStatus = "NEW"
	TicketInProgress TicketStatus = "IN_PROGRESS"
	TicketCompleted  TicketStatus = "COMPLETED"
	TicketCancelled  TicketStatus = "CANCELLED"
)

// ServiceRequest is a customer repair inquiry (a "ticket").
type ServiceRequest struct {
	ID            string       `json:"id"`
	CustomerName  string       `json:"customerName"`
	ContactMethod string       `json:"contactMethod"`
	ContactValue  string       `json:"contactValue"`
	ServiceType   string       `json:"serviceType"`
	Description   string       `json:"description"`
	Status        TicketStatus `json:"status"`
	DateCreated   time.Time    `json:"dateCreated"`
	Notes         string       `json:"notes,omitempty"`
	AIAnalysis    string       `json:"aiAnalysis,omitempty"`
	AssignedTo    string       `json:"assignedTo,omitempty"`
}
