// internal/interfaces/http/handlers/response.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/marketplace-backend/internal/domain/audit"
	"github.com/your-org/marketplace-backend/internal/pkg/apperr"
)

// respondError translates a classified application error into the JSON
// error envelope. Unclassified errors surface as 500 with a generic
// message; details stay server-side.
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{
		"error": apperr.Message(err),
		"code":  string(apperr.CodeOf(err)),
	})
}

// respondFailure records the audit entry for a mutating request that did
// not complete, then writes the error response. Mutating handlers route
// every error through it so each request leaves exactly one audit record,
// succeed or fail. userID is nil when no actor is known.
func respondFailure(c *gin.Context, auditService *audit.Service, userID *uint, action string, err error) {
	auditService.Record(userID, action, "%s failed: %s", action, apperr.Message(err))
	respondError(c, err)
}
