package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightprep/studycal-api/pkg/storage"
)

func newDownloadFixture(t *testing.T, ttl time.Duration) (*DownloadHandler, *storage.SignedURLSigner, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", ttl)
	return NewDownloadHandler(signer, store), signer, store
}

func TestDownloadHandlerServesArtifact(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, signer, store := newDownloadFixture(t, time.Hour)

	_, err := store.Save("programs/prog-1/program.pdf", []byte("%PDF-1.4 test"))
	require.NoError(t, err)
	token, _, err := signer.Generate("prog-1", "programs/prog-1/program.pdf")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/downloads/"+token, nil)
	c.Request = req
	c.Params = gin.Params{{Key: "token", Value: token}}

	handler.Download(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "prog-1.pdf")
	assert.Equal(t, "%PDF-1.4 test", w.Body.String())
}

func TestDownloadHandlerRejectsForgedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _, _ := newDownloadFixture(t, time.Hour)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/downloads/forged", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "token", Value: "forged"}}

	handler.Download(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDownloadHandlerExpiredToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, signer, store := newDownloadFixture(t, 10*time.Millisecond)

	_, err := store.Save("programs/prog-1/program.ics", []byte("BEGIN:VCALENDAR"))
	require.NoError(t, err)
	token, _, err := signer.Generate("prog-1", "programs/prog-1/program.ics")
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/downloads/"+token, nil)
	c.Request = req
	c.Params = gin.Params{{Key: "token", Value: token}}

	handler.Download(c)
	assert.Equal(t, http.StatusGone, w.Code)
}

func TestDownloadHandlerMissingArtifact(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, signer, _ := newDownloadFixture(t, time.Hour)

	token, _, err := signer.Generate("prog-1", "programs/prog-1/program.pdf")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/downloads/"+token, nil)
	c.Request = req
	c.Params = gin.Params{{Key: "token", Value: token}}

	handler.Download(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
