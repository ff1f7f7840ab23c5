package routes

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eventapi/models"
)

// eventViews summarizes each event's owner as {name, email} the way the
// read endpoints expose it.
func (d *deps) eventViews(events []models.Event) ([]models.EventView, error) {
	ids := make([]string, 0, len(events))
	seen := map[string]bool{}
	for _, e := range events {
		if !seen[e.CreatedBy] {
			seen[e.CreatedBy] = true
			ids = append(ids, e.CreatedBy)
		}
	}

	owners, err := d.users.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.EventView, 0, len(events))
	for _, e := range events {
		views = append(views, models.EventView{Event: e, Owner: owners[e.CreatedBy].Summary()})
	}
	return views, nil
}

// GET /api/events
func (d *deps) getEvents(c *gin.Context) {
	events, err := d.events.GetAll()
	if err != nil {
		serverError(c, err)
		return
	}
	views, err := d.eventViews(events)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GET /api/events/:id
func (d *deps) getEvent(c *gin.Context) {
	event, err := d.events.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		serverError(c, err)
		return
	}

	views, err := d.eventViews([]models.Event{event})
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, views[0])
}

// POST /api/events
func (d *deps) createEvent(c *gin.Context) {
	user, ok := identity(c)
	if !ok {
		return
	}

	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description" binding:"required"`
		Date        string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	now := time.Now().UTC()
	event := models.Event{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		CreatedBy:   user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := d.events.Create(&event); err != nil {
		serverError(c, err)
		return
	}

	d.inv.PurgeEventsList(c)

	c.JSON(http.StatusCreated, models.EventView{Event: event, Owner: user})
}

// PUT /api/events/:id
func (d *deps) updateEvent(c *gin.Context) {
	user, ok := identity(c)
	if !ok {
		return
	}
	id := c.Param("id")

	event, err := d.events.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		serverError(c, err)
		return
	}
	if event.CreatedBy != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized"})
		return
	}

	// Pointer fields split "omitted" from "empty": absent keeps the
	// stored value, a provided empty string is rejected.
	var req models.EventUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data"})
		return
	}
	for _, f := range []*string{req.Title, req.Description, req.Date} {
		if f != nil && *f == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Fields cannot be empty"})
			return
		}
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	event.UpdatedAt = time.Now().UTC()

	if err := d.events.Update(&event); err != nil {
		serverError(c, err)
		return
	}

	d.inv.PurgeEventsList(c)
	d.inv.PurgeEventItem(c, id)

	c.JSON(http.StatusOK, models.EventView{Event: event, Owner: user})
}

// DELETE /api/events/:id
func (d *deps) deleteEvent(c *gin.Context) {
	user, ok := identity(c)
	if !ok {
		return
	}
	id := c.Param("id")

	event, err := d.events.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		serverError(c, err)
		return
	}
	if event.CreatedBy != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized"})
		return
	}

	if err := d.events.Delete(id); err != nil {
		serverError(c, err)
		return
	}

	d.inv.PurgeEventsList(c)
	d.inv.PurgeEventItem(c, id)

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}
