package handler

import (
	"errors"
	"net/http"

	"videodash-backend/internal/domains/video"
	"videodash-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type VideoHandler struct {
	importService video.ImportService
	searchService video.SearchService
}

func NewVideoHandler(importService video.ImportService, searchService video.SearchService) *VideoHandler {
	return &VideoHandler{
		importService: importService,
		searchService: searchService,
	}
}

// UploadExcel handles POST /upload-excel. The spreadsheet arrives as the
// "file" multipart field; its rows replace every previously imported
// manual record.
func (h *VideoHandler) UploadExcel(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing file field in multipart form")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Unable to read uploaded file")
		return
	}
	defer f.Close()

	result, err := h.importService.Import(c.Request.Context(), f, fileHeader.Filename)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SearchVideos handles GET /search-videos: external API results only.
func (h *VideoHandler) SearchVideos(c *gin.Context) {
	req, ok := h.bindSearchRequest(c)
	if !ok {
		return
	}

	resp, err := h.searchService.Search(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CombinedVideos handles GET /combined-videos: API and manual records
// merged, filtered and sorted newest-first.
func (h *VideoHandler) CombinedVideos(c *gin.Context) {
	req, ok := h.bindSearchRequest(c)
	if !ok {
		return
	}

	resp, err := h.searchService.Combined(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *VideoHandler) bindSearchRequest(c *gin.Context) (video.SearchRequest, bool) {
	var req video.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return req, false
	}

	req.Normalize()

	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return req, false
	}

	return req, true
}

// renderError maps domain errors onto the HTTP contract.
func (h *VideoHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, video.ErrEmptyQuery), errors.Is(err, video.ErrBadFileType):
		response.BadRequest(c, err.Error())

	case errors.Is(err, video.ErrUpstream):
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("[VIDEO] Upstream API failure")
		response.BadGateway(c, "Video platform request failed")

	case errors.Is(err, video.ErrParse):
		log.Error().Err(err).Msg("[VIDEO] Spreadsheet parse failure")
		response.InternalServerError(c, err.Error())

	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("[VIDEO] Request failed")
		response.InternalServerError(c, "Something went wrong")
	}
}
