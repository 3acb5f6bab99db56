// Package handlers exposes the portal REST API over gin, one handler per
// role plus auth.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dcportal/internal/auth"
	"dcportal/internal/complaint"
	"dcportal/internal/deadline"
	"dcportal/internal/meeting"
	"dcportal/internal/user"
)

// complaintView pairs a stored complaint with its derived countdown state.
type complaintView struct {
	complaint.Complaint
	deadline.Countdown
}

// meetingView pairs a stored meeting with its derived countdown and phase.
type meetingView struct {
	meeting.Meeting
	deadline.Countdown
	Phase string `json:"phase"`
}

// requireSelf rejects requests whose token identifies a different user than
// the path parameter claims to act for.
func requireSelf(c *gin.Context, id string) bool {
	claims, ok := auth.ClaimsFrom(c)
	if !ok || claims.UserID != id {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "user mismatch"})
		return false
	}
	return true
}

// writeError maps domain errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, complaint.ErrInvalidInput), errors.Is(err, meeting.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, user.ErrNotFound), errors.Is(err, complaint.ErrNotFound), errors.Is(err, meeting.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, complaint.ErrConflict), errors.Is(err, meeting.ErrConflict),
		errors.Is(err, meeting.ErrAlreadyScheduled), errors.Is(err, meeting.ErrNotSchedulable):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	}
}
