package handlers

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/DyoneNunes/controlefinanceiro/middleware"
	"github.com/DyoneNunes/controlefinanceiro/models"
	"github.com/DyoneNunes/controlefinanceiro/utils"
	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	DB *sql.DB
	WS *WSHandler
}

// memberRole retourne le role de l'utilisateur dans le groupe,
// ou sql.ErrNoRows s'il n'en est pas membre.
func (h *GroupHandler) memberRole(groupID, userID string) (string, error) {
	var role string
	err := h.DB.QueryRow(`
		SELECT role FROM group_members
		WHERE group_id = $1 AND user_id = $2
	`, groupID, userID).Scan(&role)
	return role, err
}

func (h *GroupHandler) ListGroups(c *gin.Context) {
	userID := middleware.GetUserID(c)

	rows, err := h.DB.Query(`
		SELECT g.id, g.name, g.created_at, g.updated_at, gm.role
		FROM finance_groups g
		JOIN group_members gm ON gm.group_id = g.id
		WHERE gm.user_id = $1
		ORDER BY gm.joined_at ASC
	`, userID)

	if err != nil {
		log.Printf("Error listing groups: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}
	defer rows.Close()

	groups := []models.Group{}
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt, &g.Role); err != nil {
			log.Printf("Error scanning group: %v", err)
			continue
		}
		groups = append(groups, g)
	}

	c.JSON(http.StatusOK, groups)
}

func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var group models.Group

	// Le groupe et l'adhesion admin du createur vivent ou meurent ensemble
	err := utils.WithTransaction(h.DB, func(tx *sql.Tx) error {
		err := tx.QueryRow(`
			INSERT INTO finance_groups (name)
			VALUES ($1)
			RETURNING id, name, created_at, updated_at
		`, req.Name).Scan(&group.ID, &group.Name, &group.CreatedAt, &group.UpdatedAt)
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
			INSERT INTO group_members (group_id, user_id, role)
			VALUES ($1, $2, $3)
		`, group.ID, userID, models.RoleAdmin)
		return err
	})

	if err != nil {
		log.Printf("Error creating group: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	group.Role = models.RoleAdmin
	utils.LogGroupAction("create", group.ID, userID)

	c.JSON(http.StatusCreated, group)
}

func (h *GroupHandler) GetGroup(c *gin.Context) {
	userID := middleware.GetUserID(c)
	groupID := c.Param("id")

	if !middleware.IsValidUUID(groupID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	role, err := h.memberRole(groupID, userID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied to this group"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify membership"})
		return
	}

	var group models.Group
	err = h.DB.QueryRow(`
		SELECT id, name, created_at, updated_at
		FROM finance_groups
		WHERE id = $1
	`, groupID).Scan(&group.ID, &group.Name, &group.CreatedAt, &group.UpdatedAt)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
		return
	}

	group.Role = role
	c.JSON(http.StatusOK, group)
}

type RenameGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *GroupHandler) RenameGroup(c *gin.Context) {
	userID := middleware.GetUserID(c)
	groupID := c.Param("id")

	if !middleware.IsValidUUID(groupID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var req RenameGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := h.memberRole(groupID, userID)
	if err == sql.ErrNoRows || (err == nil && role != models.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify membership"})
		return
	}

	_, err = h.DB.Exec(`
		UPDATE finance_groups
		SET name = $1, updated_at = NOW()
		WHERE id = $2
	`, req.Name, groupID)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rename group"})
		return
	}

	utils.LogGroupAction("rename", groupID, userID)
	c.JSON(http.StatusOK, gin.H{"message": "Group renamed successfully"})
}

func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	userID := middleware.GetUserID(c)
	groupID := c.Param("id")

	if !middleware.IsValidUUID(groupID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	role, err := h.memberRole(groupID, userID)
	if err == sql.ErrNoRows || (err == nil && role != models.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify membership"})
		return
	}

	// ON DELETE CASCADE emporte membres, factures, revenus,
	// depenses et investissements du groupe.
	result, err := h.DB.Exec(`DELETE FROM finance_groups WHERE id = $1`, groupID)
	if err != nil {
		log.Printf("Error deleting group: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete group"})
		return
	}

	if n, _ := result.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	utils.LogGroupAction("delete", groupID, userID)
	c.JSON(http.StatusOK, gin.H{"message": "Group deleted successfully"})
}

func (h *GroupHandler) ListMembers(c *gin.Context) {
	userID := middleware.GetUserID(c)
	groupID := c.Param("id")

	if !middleware.IsValidUUID(groupID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	if _, err := h.memberRole(groupID, userID); err == sql.ErrNoRows {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied to this group"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify membership"})
		return
	}

	rows, err := h.DB.Query(`
		SELECT gm.id, gm.group_id, gm.user_id, u.username, gm.role, gm.joined_at
		FROM group_members gm
		JOIN users u ON u.id = gm.user_id
		WHERE gm.group_id = $1
		ORDER BY gm.joined_at ASC
	`, groupID)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members"})
		return
	}
	defer rows.Close()

	members := []models.GroupMember{}
	for rows.Next() {
		var m models.GroupMember
		if err := rows.Scan(&m.ID, &m.GroupID, &m.UserID, &m.Username, &m.Role, &m.JoinedAt); err != nil {
			log.Printf("Error scanning member: %v", err)
			continue
		}
		members = append(members, m)
	}

	c.JSON(http.StatusOK, members)
}

func (h *GroupHandler) InviteMember(c *gin.Context) {
	userID := middleware.GetUserID(c)
	groupID := c.Param("id")

	if !middleware.IsValidUUID(groupID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var req models.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := h.memberRole(groupID, userID)
	if err == sql.ErrNoRows || (err == nil && role != models.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify membership"})
		return
	}

	var invitedID string
	err = h.DB.QueryRow(`SELECT id FROM users WHERE username = $1`, req.Username).Scan(&invitedID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}

	// Re-inviter un membre existant est un no-op
	_, err = h.DB.Exec(`
		INSERT INTO group_members (group_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (group_id, user_id) DO NOTHING
	`, groupID, invitedID, models.RoleEditor)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		return
	}

	utils.LogGroupAction("invite", groupID, userID)
	if h.WS != nil {
		h.WS.BroadcastUpdate(groupID, "member_added", middleware.GetUsername(c))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member added successfully"})
}
