package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/f3rmion/pitchgraph/internal/config"
	"github.com/f3rmion/pitchgraph/internal/kana"
	"github.com/f3rmion/pitchgraph/internal/logger"
	"github.com/f3rmion/pitchgraph/internal/render"
	"github.com/gin-gonic/gin"
)

// maxTextLength bounds the notation accepted per request.
const maxTextLength = 16 << 10

const svgContentType = "image/svg+xml; charset=utf-8"

var (
	errEmptyText   = errors.New("text is required")
	errTextTooLong = errors.New("text is too long")
)

// RenderRequest is the body of POST /api/render. Optional fields override
// the server style for this request only.
type RenderRequest struct {
	Text    string  `json:"text"`
	NoText  *bool   `json:"no_text,omitempty"`
	Reading *string `json:"reading,omitempty"`
}

// GraphResponse is one rendered sentence.
type GraphResponse struct {
	Notation []string `json:"notation"`
	SVG      string   `json:"svg"`
	Sentence string   `json:"sentence"`
}

// RenderResponse lists the diagrams of a request.
type RenderResponse struct {
	Graphs []GraphResponse `json:"graphs"`
}

type RenderHandler struct {
	style config.Style
	cache Cache
	log   *logger.Logger
}

// NewRenderHandler creates the render handlers. cache may be nil.
func NewRenderHandler(style config.Style, cache Cache, log *logger.Logger) *RenderHandler {
	return &RenderHandler{style: style, cache: cache, log: log.With("handler", "RenderHandler")}
}

func validateText(text string) error {
	switch {
	case strings.TrimSpace(text) == "":
		return errEmptyText
	case len(text) > maxTextLength:
		return errTextTooLong
	}
	return nil
}

func (h *RenderHandler) renderer(req RenderRequest) (*render.Renderer, error) {
	style := h.style
	if req.NoText != nil {
		style.NoText = *req.NoText
	}
	if req.Reading != nil {
		mode, ok := kana.ParseMode(*req.Reading)
		if !ok {
			return nil, errors.New("unknown reading mode " + *req.Reading)
		}
		style.ConvertReading = mode
	}
	return render.New(style), nil
}

// Render handles POST /api/render.
func (h *RenderHandler) Render(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := validateText(req.Text); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_text", err)
		return
	}
	r, err := h.renderer(req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_reading", err)
		return
	}

	graphs := r.Render(req.Text)
	resp := RenderResponse{Graphs: make([]GraphResponse, 0, len(graphs))}
	for _, g := range graphs {
		resp.Graphs = append(resp.Graphs, GraphResponse{
			Notation: g.Notation,
			SVG:      g.SVG,
			Sentence: g.Colored,
		})
	}
	h.log.Debug("rendered", "graphs", len(resp.Graphs))
	RespondOK(c, resp)
}

// RenderSVG handles GET /api/render.svg and returns the first diagram.
func (h *RenderHandler) RenderSVG(c *gin.Context) {
	req := RenderRequest{Text: c.Query("text")}
	if v, ok := c.GetQuery("no_text"); ok {
		noText := v == "1" || strings.EqualFold(v, "true")
		req.NoText = &noText
	}
	if v, ok := c.GetQuery("reading"); ok {
		req.Reading = &v
	}
	if err := validateText(req.Text); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_text", err)
		return
	}
	r, err := h.renderer(req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_reading", err)
		return
	}

	key := CacheKey(r.Style, req.Text)
	if svg, ok := h.cached(c, key); ok {
		c.Header("X-Cache", "hit")
		c.Data(http.StatusOK, svgContentType, []byte(svg))
		return
	}

	graphs := r.Render(req.Text)
	if len(graphs) == 0 {
		RespondError(c, http.StatusNotFound, "no_diagram", errors.New("nothing to render"))
		return
	}
	svg := graphs[0].SVG
	if h.cache != nil {
		if err := h.cache.Set(c.Request.Context(), key, svg); err != nil {
			h.log.Warn("cache write failed", "error", err)
		}
	}
	c.Data(http.StatusOK, svgContentType, []byte(svg))
}

func (h *RenderHandler) cached(c *gin.Context, key string) (string, bool) {
	if h.cache == nil {
		return "", false
	}
	svg, ok, err := h.cache.Get(c.Request.Context(), key)
	if err != nil {
		h.log.Warn("cache read failed", "error", err)
		return "", false
	}
	return svg, ok
}

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
