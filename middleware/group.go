package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
)

// ============================================================================
// GROUP ACCESS GUARD
//
// Every group-scoped route carries an X-Group-ID header. The guard rejects
// malformed identifiers before touching storage, then resolves the caller's
// membership role and leaves it in the context for role checks downstream.
// ============================================================================

var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// IsValidUUID reports whether id has the canonical 8-4-4-4-12 hex shape.
func IsValidUUID(id string) bool {
	return uuidPattern.MatchString(id)
}

// RoleLookup resolves the membership role of (groupID, userID). It returns
// sql.ErrNoRows when no membership exists.
type RoleLookup func(ctx context.Context, groupID, userID string) (string, error)

// DBRoleLookup is the Postgres-backed RoleLookup used in production.
func DBRoleLookup(db *sql.DB) RoleLookup {
	return func(ctx context.Context, groupID, userID string) (string, error) {
		var role string
		err := db.QueryRowContext(ctx,
			`SELECT role FROM group_members WHERE group_id = $1 AND user_id = $2`,
			groupID, userID).Scan(&role)
		return role, err
	}
}

// RequireGroupAccess validates the claimed group id and the caller's
// membership. A non-member is told "access denied", never "not found", so
// group existence does not leak.
func RequireGroupAccess(lookup RoleLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.GetHeader("X-Group-ID")
		if groupID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "X-Group-ID header is required"})
			c.Abort()
			return
		}

		if !IsValidUUID(groupID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Group ID format"})
			c.Abort()
			return
		}

		role, err := lookup(c.Request.Context(), groupID, GetUserID(c))
		if err == sql.ErrNoRows {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied to this group"})
			c.Abort()
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate group access"})
			c.Abort()
			return
		}

		c.Set("group_id", groupID)
		c.Set("group_role", role)
		c.Next()
	}
}

// GetGroupID returns the validated group id for the current request.
func GetGroupID(c *gin.Context) string {
	return c.GetString("group_id")
}

// GetGroupRole returns the caller's role inside the validated group.
func GetGroupRole(c *gin.Context) string {
	return c.GetString("group_role")
}
