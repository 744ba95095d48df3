package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"invoicely.app/api/common/logger"
	"invoicely.app/api/internal/model"
	"invoicely.app/api/internal/service"
)

const (
	OrganizationIDHeader = "X-Organization-ID"

	membershipContextKey contextKey = "membership"
)

// MembershipLookup is the slice of the organization service the org-scope
// middleware depends on.
type MembershipLookup interface {
	MembershipFor(ctx context.Context, orgID, userID int64) (*model.OrganizationUser, error)
}

// RequireOrgRole loads the caller's ACTIVE membership in the organization
// named by the :id path parameter, or the X-Organization-ID header when the
// route has none, and rejects callers whose role ranks below min.
// Must run after RequireSession.
func RequireOrgRole(memberships MembershipLookup, min model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		user := GetUser(ctx)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		raw := c.Param("id")
		if raw == "" {
			raw = c.GetHeader(OrganizationIDHeader)
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "organization id is required"})
			return
		}
		orgID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid organization id"})
			return
		}

		membership, err := memberships.MembershipFor(ctx, orgID, user.ID)
		if err != nil {
			if errors.Is(err, service.ErrMemberNotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "you are not a member of this organization"})
				return
			}
			c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to check membership"})
			return
		}

		if !membership.Role.AtLeast(min) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}

		ctx = context.WithValue(ctx, membershipContextKey, membership)
		ctx = logger.WithLogFields(ctx, logger.LogFields{OrganizationID: logger.Ptr(orgID)})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetMembership returns the membership resolved by RequireOrgRole.
func GetMembership(ctx context.Context) *model.OrganizationUser {
	membership, _ := ctx.Value(membershipContextKey).(*model.OrganizationUser)
	return membership
}

// GetOrganizationID returns the organization the request is scoped to, or
// zero outside RequireOrgRole.
func GetOrganizationID(ctx context.Context) int64 {
	if membership := GetMembership(ctx); membership != nil {
		return membership.OrganizationID
	}
	return 0
}
