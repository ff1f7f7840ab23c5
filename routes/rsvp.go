package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"eventapi/models"
)

// POST /api/rsvp/:eventId
func (d *deps) attendEvent(c *gin.Context) {
	user, ok := identity(c)
	if !ok {
		return
	}
	eventID := c.Param("eventId")

	if _, err := d.events.GetByID(eventID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		serverError(c, err)
		return
	}

	rsvp, err := d.rsvps.Upsert(eventID, user.ID, models.StatusAttending)
	if err != nil {
		serverError(c, err)
		return
	}

	d.inv.PurgeAttendees(c, eventID)

	c.JSON(http.StatusOK, gin.H{"message": "RSVP successful", "rsvp": rsvp})
}

// DELETE /api/rsvp/:eventId
func (d *deps) cancelRSVP(c *gin.Context) {
	user, ok := identity(c)
	if !ok {
		return
	}
	eventID := c.Param("eventId")

	rsvp, err := d.rsvps.SetStatus(eventID, user.ID, models.StatusCancelled)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "RSVP not found"})
			return
		}
		serverError(c, err)
		return
	}

	d.inv.PurgeAttendees(c, eventID)

	c.JSON(http.StatusOK, gin.H{"message": "RSVP cancelled", "rsvp": rsvp})
}

// GET /api/rsvp/:eventId
func (d *deps) getAttendees(c *gin.Context) {
	eventID := c.Param("eventId")

	rows, err := d.rsvps.ListAttending(eventID)
	if err != nil {
		serverError(c, err)
		return
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.User)
	}
	users, err := d.users.GetByIDs(ids)
	if err != nil {
		serverError(c, err)
		return
	}

	attendees := make([]models.Attendee, 0, len(rows))
	for _, r := range rows {
		attendees = append(attendees, models.Attendee{RSVP: r, User: users[r.User].Summary()})
	}
	c.JSON(http.StatusOK, attendees)
}
