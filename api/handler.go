package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"golf-atlas/models"
	"golf-atlas/services"
)

// Handler serves course queries over the catalogs of a Registry.
type Handler struct {
	Registry *services.Registry
	Insights *services.InsightService

	FeaturedLimit int
	SuggestLimit  int
	ReloadTimeout time.Duration
}

func NewHandler(registry *services.Registry, insights *services.InsightService) *Handler {
	return &Handler{
		Registry:      registry,
		Insights:      insights,
		FeaturedLimit: 8,
		SuggestLimit:  10,
		ReloadTimeout: 30 * time.Second,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/courses", h.list)        // GET /api/courses
	rg.GET("/courses/:id", h.getByID) // GET /api/courses/:id
	rg.GET("/featured", h.featured)   // GET /api/featured
	rg.GET("/suggest", h.suggest)     // GET /api/suggest
	rg.GET("/match", h.match)         // GET /api/match
	rg.GET("/stats", h.stats)         // GET /api/stats
	rg.GET("/config", h.config)       // GET /api/config
	rg.POST("/reload", h.reload)      // POST /api/reload
}

// catalog resolves the catalog for the request's csv parameter, loading it
// on first use.
func (h *Handler) catalog(c *gin.Context) *services.Catalog {
	cat := h.Registry.For(c.Query("csv"))
	_ = cat.Ensure(c.Request.Context())
	return cat
}

// snapshot writes a 503 and returns false when the catalog has no data yet.
func (h *Handler) snapshot(c *gin.Context, cat *services.Catalog) (*models.Snapshot, bool) {
	snap, err := cat.Snapshot()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": services.UserMessage(err)})
		return nil, false
	}
	return snap, true
}

func (h *Handler) list(c *gin.Context) {
	params := services.ParseHostParams(c.Request.URL.Query())
	cat := h.catalog(c)
	snap, ok := h.snapshot(c, cat)
	if !ok {
		return
	}

	view := services.Render(snap, params.ViewState())
	resp := gin.H{
		"snapshot_id": view.SnapshotID,
		"state":       view.State,
		"total":       view.Total,
		"showing":     view.Showing,
		"markers":     view.Markers,
		"bounds":      view.Bounds,
		"empty":       snap.Stats.Empty(),
	}
	if params.Debug || snap.Stats.Empty() {
		resp["status"] = view.Status
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getByID(c *gin.Context) {
	cat := h.catalog(c)
	if _, ok := h.snapshot(c, cat); !ok {
		return
	}
	course, found := cat.Lookup(c.Param("id"))
	if !found {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, detail(course))
}

func (h *Handler) featured(c *gin.Context) {
	params := services.ParseHostParams(c.Request.URL.Query())
	cat := h.catalog(c)
	snap, ok := h.snapshot(c, cat)
	if !ok {
		return
	}

	state := params.ViewState()
	filtered := services.ApplyFilter(snap.Courses, state.Query, state.Top100Only)
	ranked := services.RankFeatured(filtered, parseInt(c.Query("limit"), h.FeaturedLimit))
	c.JSON(http.StatusOK, gin.H{
		"total": len(ranked),
		"items": services.Cards(ranked),
	})
}

func (h *Handler) suggest(c *gin.Context) {
	cat := h.catalog(c)
	snap, ok := h.snapshot(c, cat)
	if !ok {
		return
	}
	items := services.Suggest(snap.Courses, c.Query("q"), parseInt(c.Query("limit"), h.SuggestLimit))
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) match(c *gin.Context) {
	cat := h.catalog(c)
	snap, ok := h.snapshot(c, cat)
	if !ok {
		return
	}
	course, found := services.FindBestMatch(snap.Courses, c.Query("q"))
	if !found {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, detail(course))
}

func (h *Handler) stats(c *gin.Context) {
	cat := h.catalog(c)
	snap, ok := h.snapshot(c, cat)
	if !ok {
		return
	}
	resp := gin.H{
		"snapshot": snap,
		"insights": h.Insights.Generate(snap.Courses),
		"status":   services.StatusLine(snap.Stats, len(snap.Courses), false),
	}
	if err := cat.LastError(); err != nil {
		resp["last_error"] = services.UserMessage(err)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) config(c *gin.Context) {
	c.JSON(http.StatusOK, services.DefaultMapConfig())
}

func (h *Handler) reload(c *gin.Context) {
	cat := h.Registry.For(c.Query("csv"))
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.ReloadTimeout)
	defer cancel()

	cacheBust := strings.TrimSpace(c.Query("cb"))
	if cacheBust == "" {
		cacheBust = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	snap, err := cat.Reload(ctx, cacheBust)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": services.UserMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshot": snap})
}

func detail(course *models.Course) gin.H {
	return gin.H{
		"course": course,
		"marker": services.Marker(course),
		"popup":  services.Popup(course),
	}
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
