package handlers

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/epeers/krxdash/internal/middleware"
	"github.com/epeers/krxdash/internal/models"
	"github.com/epeers/krxdash/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	suggestionLimit = 20
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// DashboardHandler serves the dashboard page and its session-scoped API
type DashboardHandler struct {
	registry    *services.SessionRegistry
	dashboard   *services.DashboardService
	directory   *services.DirectoryService
	boundaries  services.BoundarySource
	displayName string
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(
	registry *services.SessionRegistry,
	dashboard *services.DashboardService,
	directory *services.DirectoryService,
	boundaries services.BoundarySource,
	displayName string,
) *DashboardHandler {
	return &DashboardHandler{
		registry:    registry,
		dashboard:   dashboard,
		directory:   directory,
		boundaries:  boundaries,
		displayName: displayName,
	}
}

// Index handles GET /
func (h *DashboardHandler) Index(c *gin.Context) {
	rng := h.dashboard.DefaultRange()
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	err := indexTemplate.Execute(c.Writer, gin.H{
		"DisplayName": h.displayName,
		"Start":       rng.Start.Format("2006-01-02"),
		"End":         rng.End.Format("2006-01-02"),
	})
	if err != nil {
		log.Errorf("Failed to render index page: %v", err)
	}
}

// GetSession handles GET /api/session
// @Summary Get the current session
// @Description Returns the search text, active company and favorites of the caller's session
// @Tags session
// @Produce json
// @Success 200 {object} models.SessionView
// @Router /api/session [get]
func (h *DashboardHandler) GetSession(c *gin.Context) {
	h.update(c, func(s models.SessionState) (models.SessionState, error) { return s, nil })
}

// Search handles POST /api/search
// @Summary Submit a search
// @Description Makes the submitted text the active company and the search box contents
// @Tags session
// @Accept json
// @Produce json
// @Param request body models.TextRequest true "Search text"
// @Success 200 {object} models.SessionView
// @Failure 400 {object} models.ErrorResponse
// @Router /api/search [post]
func (h *DashboardHandler) Search(c *gin.Context) {
	var req models.TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}
	svc := h.registry.Service()
	h.update(c, func(s models.SessionState) (models.SessionState, error) {
		return svc.Search(s, req.Text), nil
	})
}

// ToggleFavorite handles POST /api/favorites/toggle
// @Summary Toggle a favorite
// @Description Adds the input text to the favorites, or removes it if already present, and saves the favorites file
// @Tags favorites
// @Accept json
// @Produce json
// @Param request body models.TextRequest true "Search box contents"
// @Success 200 {object} models.SessionView
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/favorites/toggle [post]
func (h *DashboardHandler) ToggleFavorite(c *gin.Context) {
	var req models.TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}
	svc := h.registry.Service()
	h.update(c, func(s models.SessionState) (models.SessionState, error) {
		return svc.ToggleFavorite(s, req.Text)
	})
}

// SelectFavorite handles POST /api/favorites/select
// @Summary Select a favorite
// @Description Makes a sidebar favorite the active company and the search box contents
// @Tags favorites
// @Accept json
// @Produce json
// @Param request body models.SelectFavoriteRequest true "Favorite name"
// @Success 200 {object} models.SessionView
// @Failure 400 {object} models.ErrorResponse
// @Router /api/favorites/select [post]
func (h *DashboardHandler) SelectFavorite(c *gin.Context) {
	var req models.SelectFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}
	svc := h.registry.Service()
	h.update(c, func(s models.SessionState) (models.SessionState, error) {
		return svc.SelectFavorite(s, req.Name), nil
	})
}

// RemoveFavorite handles DELETE /api/favorites/:name
// @Summary Remove a favorite
// @Description Removes a company from the favorites and saves the favorites file; the active company is unchanged
// @Tags favorites
// @Produce json
// @Param name path string true "Company name"
// @Success 200 {object} models.SessionView
// @Failure 500 {object} models.ErrorResponse
// @Router /api/favorites/{name} [delete]
func (h *DashboardHandler) RemoveFavorite(c *gin.Context) {
	name := c.Param("name")
	svc := h.registry.Service()
	h.update(c, func(s models.SessionState) (models.SessionState, error) {
		return svc.RemoveFavorite(s, name)
	})
}

// update applies one event to the caller's session and writes the resulting view
func (h *DashboardHandler) update(c *gin.Context, fn func(models.SessionState) (models.SessionState, error)) {
	id, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "unauthorized",
			Message: "session required",
		})
		return
	}

	ctx, wc := services.NewWarningContext(c.Request.Context())
	state, err := h.registry.Update(ctx, id, fn)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyInput):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
				Message: "회사명을 입력하세요.",
			})
		case errors.Is(err, services.ErrFavoritesSave):
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "favorites_save_failed",
				Message: err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "internal_error",
				Message: err.Error(),
			})
		}
		return
	}

	view := state.View(h.displayName)
	view.Warnings = wc.GetWarnings()
	c.JSON(http.StatusOK, view)
}

// Lookup handles GET /api/lookup
// @Summary Look up the active company
// @Description Resolves the session's active company and returns chart, map and export details. Lookup outcomes are reported in the status field.
// @Tags dashboard
// @Produce json
// @Param start query string false "Start date (YYYY-MM-DD), defaults to January 1st"
// @Param end query string false "End date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} models.DashboardResult
// @Failure 400 {object} models.ErrorResponse
// @Router /api/lookup [get]
func (h *DashboardHandler) Lookup(c *gin.Context) {
	company, rng, ok := h.lookupInput(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.dashboard.Lookup(c.Request.Context(), company, rng))
}

// Export handles GET /api/export
// @Summary Download prices as xlsx
// @Description Builds a spreadsheet of the active company's daily prices
// @Tags dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param start query string false "Start date (YYYY-MM-DD)"
// @Param end query string false "End date (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/export [get]
func (h *DashboardHandler) Export(c *gin.Context) {
	company, rng, ok := h.lookupInput(c)
	if !ok {
		return
	}
	data, result := h.dashboard.Export(c.Request.Context(), company, rng)
	if result.Status != models.LookupOK {
		writeLookupError(c, result)
		return
	}

	name := services.ExportFileName(result.Company.Name)
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(name))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// ChartPNG handles GET /api/chart.png
// @Summary Render the price chart as PNG
// @Description Renders close price and volume of the active company as a static image
// @Tags dashboard
// @Produce png
// @Param start query string false "Start date (YYYY-MM-DD)"
// @Param end query string false "End date (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/chart.png [get]
func (h *DashboardHandler) ChartPNG(c *gin.Context) {
	company, rng, ok := h.lookupInput(c)
	if !ok {
		return
	}
	data, result := h.dashboard.ChartPNG(c.Request.Context(), company, rng)
	if result.Status != models.LookupOK {
		writeLookupError(c, result)
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

// lookupInput reads the caller's active company and the requested range.
// With neither date given the default range is used.
func (h *DashboardHandler) lookupInput(c *gin.Context) (string, models.DateRange, bool) {
	var req models.LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return "", models.DateRange{}, false
	}

	rng := h.dashboard.DefaultRange()
	if req.StartDate != "" || req.EndDate != "" {
		var err error
		rng, err = services.ParseRange(req.StartDate, req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
				Message: err.Error(),
			})
			return "", models.DateRange{}, false
		}
	}

	id, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "unauthorized",
			Message: "session required",
		})
		return "", models.DateRange{}, false
	}
	state := h.registry.Get(c.Request.Context(), id)
	return state.ActiveCompany, rng, true
}

func writeLookupError(c *gin.Context, result *models.DashboardResult) {
	status := http.StatusInternalServerError
	switch result.Status {
	case models.LookupIdle, models.LookupRangeInvalid:
		status = http.StatusBadRequest
	case models.LookupNotFound, models.LookupNoData:
		status = http.StatusNotFound
	case models.LookupDataUnavailable:
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, models.ErrorResponse{
		Error:   string(result.Status),
		Message: result.Message,
	})
}

// Companies handles GET /api/companies
// @Summary Suggest company names
// @Description Returns up to 20 listed companies whose names contain q
// @Tags dashboard
// @Produce json
// @Param q query string true "Part of a company name"
// @Success 200 {array} models.CompanySuggestion
// @Failure 503 {object} models.ErrorResponse
// @Router /api/companies [get]
func (h *DashboardHandler) Companies(c *gin.Context) {
	suggestions, err := h.directory.Suggest(c.Request.Context(), c.Query("q"), suggestionLimit)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "data_unavailable",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, suggestions)
}

// Geo handles GET /api/geo
// @Summary Province boundaries
// @Description Returns the province boundary GeoJSON used as the map overlay
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Router /api/geo [get]
func (h *DashboardHandler) Geo(c *gin.Context) {
	if h.boundaries == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "boundary overlay is not configured",
		})
		return
	}
	b, err := h.boundaries.Get()
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "application/geo+json", b.Raw())
}
