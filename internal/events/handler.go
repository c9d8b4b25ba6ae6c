package events

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"chronomap/internal/store"
	"chronomap/internal/sync"
	"chronomap/pkg/models"
)

// Handler exposes the events document over HTTP. Reads are public;
// mutating routes are registered on a (possibly auth-protected) group by
// the caller.
type Handler struct {
	Store *store.Store
	Hub   *sync.Hub
}

func NewHandler(st *store.Store, hub *sync.Hub) *Handler {
	return &Handler{Store: st, Hub: hub}
}

func (h *Handler) RegisterReadRoutes(rg *gin.RouterGroup) {
	rg.GET("/events-data", h.getAll)
	rg.GET("/locations", h.listLocations)
	rg.GET("/locations/:id", h.getLocation)
	rg.GET("/export", h.exportData)
}

func (h *Handler) RegisterWriteRoutes(rg *gin.RouterGroup) {
	rg.POST("/locations", h.createLocation)
	rg.PUT("/locations/:id", h.updateLocation)
	rg.DELETE("/locations/:id", h.deleteLocation)
	rg.POST("/locations/:id/events", h.addEvents)
	rg.PUT("/locations/:id/events/:event_id", h.updateEvent)
	rg.DELETE("/locations/:id/events/:event_id", h.deleteEvent)
	rg.POST("/import", h.importData)
}

func (h *Handler) getAll(c *gin.Context) {
	data, err := h.Store.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handler) listLocations(c *gin.Context) {
	locations, err := h.Store.Locations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total": len(locations),
		"items": locations,
	})
}

func (h *Handler) getLocation(c *gin.Context) {
	loc, err := h.Store.Location(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if loc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, loc)
}

type createLocationReq struct {
	Name        string                   `json:"name"`
	Coordinates models.Coordinates       `json:"coordinates"`
	Events      []models.HistoricalEvent `json:"events"`
}

func (h *Handler) createLocation(c *gin.Context) {
	var req createLocationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	loc, err := h.Store.CreateLocation(c.Request.Context(), req.Name, req.Coordinates, req.Events)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	h.broadcast(sync.StoreEvent{Type: sync.LocationCreated, LocationID: loc.ID})
	c.JSON(http.StatusCreated, loc)
}

func (h *Handler) updateLocation(c *gin.Context) {
	var loc models.HistoricalLocation
	if err := c.ShouldBindJSON(&loc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	loc.ID = c.Param("id")
	if strings.TrimSpace(loc.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}
	if loc.Events == nil {
		loc.Events = []models.HistoricalEvent{}
	}

	if err := h.Store.SaveLocation(c.Request.Context(), loc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	h.broadcast(sync.StoreEvent{Type: sync.LocationUpdated, LocationID: loc.ID})
	c.JSON(http.StatusOK, loc)
}

func (h *Handler) deleteLocation(c *gin.Context) {
	id := c.Param("id")
	ok, err := h.Store.DeleteLocation(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	h.broadcast(sync.StoreEvent{Type: sync.LocationDeleted, LocationID: id})
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

type addEventsReq struct {
	Events []models.HistoricalEvent `json:"events"`
}

func (h *Handler) addEvents(c *gin.Context) {
	var req addEventsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if len(req.Events) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "events required"})
		return
	}

	id := c.Param("id")
	ok, err := h.Store.AddEventsToLocation(c.Request.Context(), id, req.Events)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		return
	}

	h.broadcast(sync.StoreEvent{Type: sync.EventsAdded, LocationID: id, Count: len(req.Events)})
	c.JSON(http.StatusOK, gin.H{"message": "events added"})
}

func (h *Handler) updateEvent(c *gin.Context) {
	var ev models.HistoricalEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	locationID := c.Param("id")
	ev.ID = c.Param("event_id")

	ok, err := h.Store.UpdateEvent(c.Request.Context(), locationID, ev)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	h.broadcast(sync.StoreEvent{Type: sync.EventUpdated, LocationID: locationID, EventID: ev.ID})
	c.JSON(http.StatusOK, ev)
}

func (h *Handler) deleteEvent(c *gin.Context) {
	locationID := c.Param("id")
	eventID := c.Param("event_id")

	ok, err := h.Store.DeleteEvent(c.Request.Context(), locationID, eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	h.broadcast(sync.StoreEvent{Type: sync.EventDeleted, LocationID: locationID, EventID: eventID})
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *Handler) exportData(c *gin.Context) {
	raw, err := h.Store.ExportJSON(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="historical-events.json"`)
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *Handler) importData(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "read body failed"})
		return
	}

	if err := h.Store.ImportJSON(c.Request.Context(), raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data format"})
		return
	}

	h.broadcast(sync.StoreEvent{Type: sync.DataImported})
	c.JSON(http.StatusOK, gin.H{"message": "imported"})
}

func (h *Handler) broadcast(ev sync.StoreEvent) {
	if h.Hub == nil {
		return
	}
	ev.At = time.Now().UTC()
	go h.Hub.BroadcastJSON(ev)
}
