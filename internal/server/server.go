// Package server exposes the extractors as a small JSON API.
package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/brogergvhs/toond/internal/webtoons"
	"github.com/gin-gonic/gin"
)

const defaultLimit = 10

// Source is the set of extractor operations the routes call.
type Source interface {
	Listing(ctx context.Context) (*webtoons.Listing, error)
	Search(ctx context.Context, query string) (*webtoons.SearchResults, error)
	Detail(ctx context.Context, listURL string) (*webtoons.TitleDetail, error)
	Reader(ctx context.Context, viewerURL string) (*webtoons.ReaderResult, error)
	ListURL(titleNo int) string
}

type Logger interface {
	Errorf(format string, args ...any)
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter builds the gin engine.
//
//	GET /                          top trending titles
//	GET /api/trending?limit=N
//	GET /api/popular?limit=N
//	GET /api/search?q=
//	GET /detail/:titleNo
//	GET /viewer/:titleNo/:episodeNo?link=
//	GET /healthz
func NewRouter(src Source, log Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	h := &handlers{src: src, log: log}

	r.GET("/", h.home)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/trending", h.ranked(trending))
	api.GET("/popular", h.ranked(popular))
	api.GET("/search", h.search)

	r.GET("/detail/:titleNo", h.detail)
	r.GET("/viewer/:titleNo/:episodeNo", h.viewer)

	return r
}

type handlers struct {
	src Source
	log Logger
}

func (h *handlers) fail(c *gin.Context, status int, route string, err error) {
	if h.log != nil {
		h.log.Errorf("%s: %v\n", route, err)
	}
	c.JSON(status, errorResponse{Error: err.Error()})
}

func trending(l *webtoons.Listing) []webtoons.RankedEntry { return l.Trending }
func popular(l *webtoons.Listing) []webtoons.RankedEntry { return l.Popular }

func (h *handlers) ranked(pick func(*webtoons.Listing) []webtoons.RankedEntry) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := defaultLimit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				c.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer"})
				return
			}
			limit = n
		}

		listing, err := h.src.Listing(c.Request.Context())
		if err != nil {
			h.fail(c, http.StatusBadGateway, c.FullPath(), err)
			return
		}

		entries := pick(listing)
		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}

		c.JSON(http.StatusOK, entries)
	}
}

// home never fails: when the rankings cannot be fetched it answers with an
// empty list.
func (h *handlers) home(c *gin.Context) {
	entries := []webtoons.RankedEntry{}

	listing, err := h.src.Listing(c.Request.Context())
	if err != nil {
		if h.log != nil {
			h.log.Errorf("home: %v\n", err)
		}
	} else if listing.Trending != nil {
		entries = listing.Trending
		if len(entries) > defaultLimit {
			entries = entries[:defaultLimit]
		}
	}

	c.JSON(http.StatusOK, entries)
}

func (h *handlers) search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "missing query parameter q"})
		return
	}

	res, err := h.src.Search(c.Request.Context(), q)
	if err != nil {
		h.fail(c, http.StatusBadGateway, "search", err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *handlers) detail(c *gin.Context) {
	titleNo, err := strconv.Atoi(c.Param("titleNo"))
	if err != nil || titleNo <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "titleNo must be a positive integer"})
		return
	}

	d, err := h.src.Detail(c.Request.Context(), h.src.ListURL(titleNo))
	if err != nil {
		h.fail(c, http.StatusNotFound, "detail", err)
		return
	}

	c.JSON(http.StatusOK, d)
}

func (h *handlers) viewer(c *gin.Context) {
	link := c.Query("link")
	if link == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "missing query parameter link"})
		return
	}

	res, err := h.src.Reader(c.Request.Context(), link)
	if err == nil && res.ImageCount == 0 {
		err = webtoons.ErrNoImages
	}
	if err != nil {
		h.fail(c, http.StatusNotFound, "viewer", err)
		return
	}

	c.JSON(http.StatusOK, res)
}
