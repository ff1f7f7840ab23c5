package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"eventapi/middlewares"
	"eventapi/models"
	"eventapi/utils"
)

type deps struct {
	users  models.UserRepository
	events models.EventRepository
	rsvps  models.RSVPRepository
	inv    *utils.CacheInvalidator
}

// RegisterRoutes wires the API surface. Reads are public; every write
// sits behind the Authenticate gate.
func RegisterRoutes(
	server *gin.Engine,
	u models.UserRepository,
	e models.EventRepository,
	r models.RSVPRepository,
	inv *utils.CacheInvalidator,
) {
	d := &deps{users: u, events: e, rsvps: r, inv: inv}

	api := server.Group("/api")

	api.GET("/health", d.health)

	api.POST("/auth/register", d.register)
	api.POST("/auth/login", d.login)

	// Public reads
	api.GET("/events", d.getEvents)
	api.GET("/events/:id", d.getEvent)
	api.GET("/rsvp/:eventId", d.getAttendees)

	// Protected writes
	auth := api.Group("/")
	auth.Use(middlewares.Authenticate(u))
	auth.POST("/events", d.createEvent)
	auth.PUT("/events/:id", d.updateEvent)
	auth.DELETE("/events/:id", d.deleteEvent)
	auth.POST("/rsvp/:eventId", d.attendEvent)
	auth.DELETE("/rsvp/:eventId", d.cancelRSVP)
}

// serverError logs the cause and answers 500 without internal detail.
func serverError(c *gin.Context, err error) {
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
}

// identity returns the guard-resolved user; the guard runs on every
// protected route, so a miss here is a wiring bug.
func identity(c *gin.Context) (models.UserSummary, bool) {
	id, ok := middlewares.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
	}
	return id, ok
}
