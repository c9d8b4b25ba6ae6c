package importer

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chronomap/internal/metrics"
	"chronomap/internal/processor"
	"chronomap/pkg/models"
)

// Handler serves the document import endpoints: synchronous parsing,
// URL content fetching, and PDF text extraction.
type Handler struct {
	Processor *processor.Service
	Fetcher   *Fetcher

	// AllowFetch gates the URL-fetch endpoint; it is disabled outright in
	// production deployments.
	AllowFetch bool
}

func NewHandler(proc *processor.Service, fetcher *Fetcher, allowFetch bool) *Handler {
	return &Handler{Processor: proc, Fetcher: fetcher, AllowFetch: allowFetch}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/parse", h.parse)
	rg.GET("/fetch-content", h.fetchContent)
	rg.POST("/parse-pdf", h.parsePDF)
	rg.GET("/strategies", h.strategies)
}

type parseRequest struct {
	Text     string `json:"text"`
	Strategy string `json:"strategy"`
}

type parseResponse struct {
	Success bool                 `json:"success"`
	Events  []models.ParsedEvent `json:"events"`
	Error   string               `json:"error,omitempty"`
}

func (h *Handler) parse(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, parseResponse{
			Events: []models.ParsedEvent{}, Error: "Text is required",
		})
		return
	}

	if req.Text == "" {
		c.JSON(http.StatusBadRequest, parseResponse{
			Events: []models.ParsedEvent{}, Error: "Text is required",
		})
		return
	}

	if !h.Processor.Valid(req.Strategy) {
		c.JSON(http.StatusBadRequest, parseResponse{
			Events: []models.ParsedEvent{}, Error: "Invalid parser strategy",
		})
		return
	}

	if len(req.Text) > MaxDocumentSize {
		metrics.ParseRequests.WithLabelValues(req.Strategy, "rejected").Inc()
		c.JSON(http.StatusRequestEntityTooLarge, parseResponse{
			Events: []models.ParsedEvent{},
			Error:  fmt.Sprintf("Text exceeds %dKB limit. Consider splitting the document.", MaxDocumentSizeKB),
		})
		return
	}

	started := time.Now()
	events, err := h.Processor.ParseSync(req.Text, req.Strategy)
	metrics.ParseDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.ParseRequests.WithLabelValues(req.Strategy, "error").Inc()
		log.Printf("[import] parse error: %v", err)
		c.JSON(http.StatusInternalServerError, parseResponse{
			Events: []models.ParsedEvent{}, Error: err.Error(),
		})
		return
	}
	if events == nil {
		events = []models.ParsedEvent{}
	}

	metrics.ParseRequests.WithLabelValues(req.Strategy, "ok").Inc()
	metrics.EventsExtracted.WithLabelValues(req.Strategy).Add(float64(len(events)))

	c.JSON(http.StatusOK, parseResponse{Success: true, Events: events})
}

func (h *Handler) fetchContent(c *gin.Context) {
	if !h.AllowFetch {
		c.JSON(http.StatusForbidden, gin.H{"error": "URL fetching is disabled in production"})
		return
	}

	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL parameter is required"})
		return
	}

	u, err := ValidateURL(rawURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URL format. Must be a valid HTTP(S) URL."})
		return
	}

	text, err := h.Fetcher.FetchText(u)
	if err != nil {
		var upstream *UpstreamError
		switch {
		case errors.Is(err, ErrTimeout):
			metrics.FetchRequests.WithLabelValues("timeout").Inc()
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": fmt.Sprintf("Request timed out after %d seconds", int(FetchTimeout.Seconds())),
			})
		case errors.As(err, &upstream):
			metrics.FetchRequests.WithLabelValues("upstream_error").Inc()
			c.JSON(http.StatusBadGateway, gin.H{
				"error": fmt.Sprintf("Failed to fetch URL: %d %s", upstream.Code, upstream.Status),
			})
		default:
			metrics.FetchRequests.WithLabelValues("error").Inc()
			c.JSON(http.StatusBadGateway, gin.H{
				"error": fmt.Sprintf("Failed to fetch URL: %v", err),
			})
		}
		return
	}
	metrics.FetchRequests.WithLabelValues("ok").Inc()

	resp := gin.H{"text": text, "url": u.String()}
	if len(text) > MaxDocumentSize {
		resp["warning"] = fmt.Sprintf(
			"Content is %dKB. Large documents may affect parsing performance.", len(text)/1024)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) parsePDF(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	if file.Header.Get("Content-Type") != "application/pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be a PDF"})
		return
	}

	if file.Size > MaxPDFSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("File too large. Maximum size is %dKB.", MaxPDFSize/1024),
		})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}

	text, err := ExtractPDFText(data)
	if err != nil {
		log.Printf("[import] pdf parse error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Failed to parse PDF: %v", err),
		})
		return
	}

	resp := gin.H{"text": text}
	if len(text) > MaxDocumentSize {
		resp["warning"] = fmt.Sprintf(
			"Extracted text is %dKB. Consider splitting for better processing.", len(text)/1024)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) strategies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"strategies": h.Processor.Strategies()})
}
