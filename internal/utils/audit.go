package utils

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"go.uber.org/zap"

	"techplug_back_end/internal/models"
)

// Audit actions.
const (
	ActionProductCreate  = "product.create"
	ActionProductUpdate  = "product.update"
	ActionProductDelete  = "product.delete"
	ActionProductImage   = "product.image"
	ActionServiceCreate  = "service.create"
	ActionServiceUpdate  = "service.update"
	ActionServiceDelete  = "service.delete"
	ActionOrderCreate    = "order.create"
	ActionTicketAnalysis = "ticket.analysis"
	ActionLoginSuccess   = "auth.login_success"
	ActionLoginFailed    = "auth.login_failed"
)

// Audit resources.
const (
	ResourceProduct = "product"
	ResourceService = "service_category"
	ResourceOrder   = "order"
	ResourceTicket  = "ticket"
	ResourceAuth    = "auth"
)

const insertAuditLog = `
	INSERT INTO audit_logs (
		id, actor, action, resource, resource_id, new_value,
		ip_address, user_agent, success, error_msg, request_id, timestamp
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

type Auditor interface {
	Record(ctx context.Context, entry models.AuditLog) error
}

// AuditLogger writes audit rows to ScyllaDB, or only to the logger when no
// session is configured.
type AuditLogger struct {
	session *gocql.Session
	logger  *zap.Logger
}

func NewAuditLogger(session *gocql.Session, logger *zap.Logger) *AuditLogger {
	return &AuditLogger{session: session, logger: logger}
}

func (a *AuditLogger) Record(ctx context.Context, e models.AuditLog) error {
	a.logger.Info("audit",
		zap.String("actor", e.Actor),
		zap.String("action", e.Action),
		zap.String("resource", e.Resource),
		zap.String("resource_id", e.ResourceID),
		zap.Bool("success", e.Success),
		zap.String("request_id", e.RequestID))
	if a.session == nil {
		return nil
	}
	return a.session.Query(insertAuditLog,
		e.ID, e.Actor, e.Action, e.Resource, e.ResourceID, e.NewValue,
		e.IPAddress, e.UserAgent, e.Success, e.ErrorMsg, e.RequestID, e.Timestamp,
	).WithContext(ctx).Exec()
}

// NewAuditEntry fills an entry from the request. newValue is stored as JSON.
func NewAuditEntry(c *gin.Context, action, resource, resourceID string, newValue any, success bool, errorMsg string) models.AuditLog {
	var encoded string
	if newValue != nil {
		if b, err := json.Marshal(newValue); err == nil {
			encoded = string(b)
		}
	}
	return models.AuditLog{
		ID:         gocql.TimeUUID(),
		Actor:      c.GetString("username"),
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		NewValue:   encoded,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
		Success:    success,
		ErrorMsg:   errorMsg,
		RequestID:  c.GetString("request_id"),
		Timestamp:  time.Now().UTC(),
	}
}

// LogAction records the entry in the background so the request is not held up.
func LogAction(c *gin.Context, auditor Auditor, logger *zap.Logger, action, resource, resourceID string, newValue any) {
	record(auditor, logger, NewAuditEntry(c, action, resource, resourceID, newValue, true, ""))
}

func LogFailedAction(c *gin.Context, auditor Auditor, logger *zap.Logger, action, resource, resourceID, errorMsg string) {
	record(auditor, logger, NewAuditEntry(c, action, resource, resourceID, nil, false, errorMsg))
}

func record(auditor Auditor, logger *zap.Logger, entry models.AuditLog) {
	if auditor == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := auditor.Record(ctx, entry); err != nil {
			logger.Error("audit write failed", zap.String("action", entry.Action), zap.Error(err))
		}
	}()
}
