package handler

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	appErrors "github.com/brightprep/studycal-api/pkg/errors"
	"github.com/brightprep/studycal-api/pkg/response"
)

type tokenParser interface {
	Parse(token string, allowExpired bool) (programID, relPath string, expiresAt time.Time, err error)
}

type fileOpener interface {
	Open(filename string) (*os.File, error)
}

// DownloadHandler streams stored artifacts to holders of a valid signed token.
type DownloadHandler struct {
	signer  tokenParser
	storage fileOpener
}

// NewDownloadHandler builds the handler.
func NewDownloadHandler(signer tokenParser, storage fileOpener) *DownloadHandler {
	return &DownloadHandler{signer: signer, storage: storage}
}

// Download godoc
// @Summary Download a program artifact by signed token
// @Tags Downloads
// @Param token path string true "Signed download token"
// @Success 200
// @Router /downloads/{token} [get]
func (h *DownloadHandler) Download(c *gin.Context) {
	programID, relPath, _, err := h.signer.Parse(c.Param("token"), false)
	if err != nil {
		if strings.Contains(err.Error(), "expired") {
			response.Error(c, appErrors.ErrExpiredLink)
			return
		}
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "invalid download token"))
		return
	}

	file, err := h.storage.Open(relPath)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "artifact no longer available"))
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to stat artifact"))
		return
	}

	filename := fmt.Sprintf("%s%s", programID, path.Ext(relPath))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.DataFromReader(http.StatusOK, info.Size(), contentTypeFor(relPath), file, nil)
}

func contentTypeFor(relPath string) string {
	switch strings.ToLower(path.Ext(relPath)) {
	case ".pdf":
		return "application/pdf"
	case ".ics":
		return "text/calendar"
	default:
		return "application/octet-stream"
	}
}
