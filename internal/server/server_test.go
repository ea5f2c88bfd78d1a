package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/f3rmion/pitchgraph/internal/config"
	"github.com/f3rmion/pitchgraph/internal/logger"
	"github.com/f3rmion/pitchgraph/internal/server"
)

// RouterSuite drives the HTTP API through the full middleware stack.
type RouterSuite struct {
	suite.Suite
	router *gin.Engine
}

func (s *RouterSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.router = server.NewRouter(config.DefaultStyle(), logger.Nop())
}

func (s *RouterSuite) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) errorCode(w *httptest.ResponseRecorder) string {
	var env server.ErrorEnvelope
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &env))
	return env.Error.Code
}

func (s *RouterSuite) TestHealthCheck() {
	w := s.do(http.MethodGet, "/healthcheck", "")
	s.Equal(http.StatusOK, w.Code)
	s.Equal("ok", w.Body.String())
}

func (s *RouterSuite) TestRender() {
	w := s.do(http.MethodPost, "/api/render", `{"text": "じんせい:1,0 まで"}`)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp server.RenderResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp.Graphs, 2)
	s.Equal([]string{"じんせい:1", "まで"}, resp.Graphs[0].Notation)
	s.True(strings.HasPrefix(resp.Graphs[0].SVG, "<svg"))
	s.Contains(resp.Graphs[1].Sentence, `<span class="heiban">じんせい</span>`)
}

func (s *RouterSuite) TestRenderOverrides() {
	w := s.do(http.MethodPost, "/api/render", `{"text": "は:0", "no_text": true}`)
	s.Require().Equal(http.StatusOK, w.Code)
	var resp server.RenderResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp.Graphs, 1)
	s.NotContains(resp.Graphs[0].SVG, "<text")

	w = s.do(http.MethodPost, "/api/render", `{"text": "は:0", "reading": "klingon"}`)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("invalid_reading", s.errorCode(w))
}

func (s *RouterSuite) TestRenderNothingToDraw() {
	w := s.do(http.MethodPost, "/api/render", `{"text": "| 、"}`)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"graphs": []}`, w.Body.String())
}

func (s *RouterSuite) TestRenderBadRequests() {
	w := s.do(http.MethodPost, "/api/render", `{"text": `)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("invalid_request", s.errorCode(w))

	w = s.do(http.MethodPost, "/api/render", `{"text": "   "}`)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("invalid_text", s.errorCode(w))

	long := strings.Repeat("あ", 8<<10)
	w = s.do(http.MethodPost, "/api/render", `{"text": "`+long+`"}`)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("invalid_text", s.errorCode(w))
}

func (s *RouterSuite) TestRenderSVG() {
	w := s.do(http.MethodGet, "/api/render.svg?text="+url.QueryEscape("大物[おおもの]:2 が"), "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("image/svg+xml; charset=utf-8", w.Header().Get("Content-Type"))
	s.True(strings.HasPrefix(w.Body.String(), "<svg"))
	s.Contains(w.Body.String(), "<text")

	w = s.do(http.MethodGet, "/api/render.svg?no_text=1&text="+url.QueryEscape("ねこ:1"), "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.NotContains(w.Body.String(), "<text")
}

func (s *RouterSuite) TestRenderSVGErrors() {
	w := s.do(http.MethodGet, "/api/render.svg?text="+url.QueryEscape("|"), "")
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("no_diagram", s.errorCode(w))

	w = s.do(http.MethodGet, "/api/render.svg", "")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterSuite) TestCORS() {
	req := httptest.NewRequest(http.MethodOptions, "/api/render", nil)
	req.Header.Set("Origin", "https://cards.test")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNoContent, w.Code)
	s.Equal("*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func TestUnknownRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := server.NewRouter(config.DefaultStyle(), logger.Nop())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
