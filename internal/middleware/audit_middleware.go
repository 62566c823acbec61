package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"techplug_back_end/internal/utils"
)

// AuditAdminAction records action against resource once the handler has run.
// The resource id is taken from the :id route parameter.
func AuditAdminAction(auditor utils.Auditor, logger *zap.Logger, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if auditor == nil {
			return
		}
		resourceID := c.Param("id")
		if resourceID == "" {
			resourceID = c.GetString("audit_resource_id")
		}
		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			utils.LogAction(c, auditor, logger, action, resource, resourceID, nil)
			return
		}
		utils.LogFailedAction(c, auditor, logger, action, resource, resourceID, http.StatusText(status))
	}
}
