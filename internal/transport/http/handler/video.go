package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vidshare/internal/app"
	"vidshare/internal/transport/http/middleware"
)

type VideoHandler struct {
	videoService *app.VideoService
	appName      string
}

func NewVideoHandler(videoService *app.VideoService, appName string) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		appName:      appName,
	}
}

func (h *VideoHandler) Home(c *gin.Context) {
	videos, err := h.videoService.ListAll(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "load videos failed")
		return
	}
	c.HTML(http.StatusOK, "index.html", pageData(c, h.appName, gin.H{"Videos": videos}))
}

func (h *VideoHandler) ShowUpload(c *gin.Context) {
	c.HTML(http.StatusOK, "upload.html", pageData(c, h.appName, nil))
}

func (h *VideoHandler) Upload(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		// RequireLogin already gates this route.
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	title := c.PostForm("title")
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.String(http.StatusBadRequest, "video file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.String(http.StatusBadRequest, "open uploaded file failed")
		return
	}
	defer file.Close()

	_, err = h.videoService.Upload(c.Request.Context(), app.UploadInput{
		Title:        title,
		OriginalName: fileHeader.Filename,
		Content:      file,
		OwnerID:      user.ID,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEmptyTitle):
			c.String(http.StatusBadRequest, "title is required")
		case errors.Is(err, app.ErrInvalidFile):
			c.String(http.StatusBadRequest, "invalid video file")
		default:
			c.String(http.StatusInternalServerError, "upload failed")
		}
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *VideoHandler) Watch(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "video not found")
		return
	}

	video, err := h.videoService.Get(uint(id))
	if err != nil {
		if errors.Is(err, app.ErrVideoNotFound) {
			c.String(http.StatusNotFound, "video not found")
			return
		}
		c.String(http.StatusInternalServerError, "load video failed")
		return
	}

	h.videoService.RecordView(c.Request.Context(), video.ID)

	c.HTML(http.StatusOK, "video.html", pageData(c, h.appName, gin.H{"Video": video}))
}
