package ctx

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCtx(method, target string) (*DefaultContext, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	c := &DefaultContext{}
	c.Reset(rec, req, nil, "")
	return c, rec
}

func TestStringWritesPlainText(t *testing.T) {
	c, rec := newCtx(http.MethodGet, "/")
	require.NoError(t, c.String(http.StatusTeapot, "short and stout"))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, http.StatusTeapot, c.StatusCode())
}

func TestJSONDefaultsTo200(t *testing.T) {
	c, rec := newCtx(http.MethodGet, "/")
	require.NoError(t, c.JSON(map[string]string{"ok": "yes"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":"yes"}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestStatusChaining(t *testing.T) {
	c, rec := newCtx(http.MethodGet, "/")
	require.NoError(t, c.Status(http.StatusCreated).JSON(map[string]int{"n": 1}))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestStatusCodeBeforeAndAfterWrite(t *testing.T) {
	c, _ := newCtx(http.MethodGet, "/")
	assert.Zero(t, c.StatusCode())
	assert.False(t, c.WroteHeader())

	require.NoError(t, c.String(http.StatusOK, "x"))
	assert.True(t, c.WroteHeader())
	assert.Equal(t, http.StatusOK, c.StatusCode())
}

func TestBytesWrittenTracksBody(t *testing.T) {
	c, _ := newCtx(http.MethodGet, "/")
	assert.Zero(t, c.BytesWritten())

	require.NoError(t, c.String(http.StatusOK, "hello"))
	assert.Equal(t, 5, c.BytesWritten())
}

func TestBytesWrittenZeroForHead(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.txt"), []byte("body"), 0o644))

	c, _ := newCtx(http.MethodHead, "/doc.txt")
	require.NoError(t, c.SendFile(filepath.Join(dir, "doc.txt")))
	assert.Zero(t, c.BytesWritten())
}

func TestSendRawBytes(t *testing.T) {
	c, rec := newCtx(http.MethodGet, "/")
	n, err := c.Send(http.StatusOK, "application/xml", []byte("<ok/>"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))
}

func TestSendFileStreamsContentAndType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>hi</p>"), 0o644))

	c, rec := newCtx(http.MethodGet, "/doc.html")
	require.NoError(t, c.SendFile(path))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<p>hi</p>", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Equal(t, "9", rec.Header().Get("Content-Length"))
}

func TestSendFileUnknownExtensionFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.weirdext")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x01}, 0o644))

	c, rec := newCtx(http.MethodGet, "/blob.weirdext")
	require.NoError(t, c.SendFile(path))
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
}

func TestSendFileHeadElidesBody(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0o644))

	c, rec := newCtx(http.MethodHead, "/doc.txt")
	require.NoError(t, c.SendFile(path))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5", rec.Header().Get("Content-Length"))
	assert.Zero(t, rec.Body.Len())
}

func TestSendFileMissingReturnsError(t *testing.T) {
	c, _ := newCtx(http.MethodGet, "/nope")
	err := c.SendFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestGetSetRoundTrip(t *testing.T) {
	c, _ := newCtx(http.MethodGet, "/")
	type key struct{}

	assert.Nil(t, c.Get(key{}))
	assert.Equal(t, "fallback", c.Get(key{}, "fallback"))

	c.Set(key{}, "value")
	assert.Equal(t, "value", c.Get(key{}))
}

func TestConvenienceResponses(t *testing.T) {
	c, rec := newCtx(http.MethodGet, "/")
	require.NoError(t, c.NotFound())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", rec.Body.String())

	c, rec = newCtx(http.MethodGet, "/")
	require.NoError(t, c.BadRequest("bad path"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad path", rec.Body.String())

	c, rec = newCtx(http.MethodGet, "/")
	require.NoError(t, c.NoContent())
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCloneIsShallowCopy(t *testing.T) {
	c, _ := newCtx(http.MethodGet, "/orig")
	cp := c.Clone()
	assert.Equal(t, c.Path(), cp.Path())

	rec2 := httptest.NewRecorder()
	cp.SetResponseWriter(rec2)
	assert.NotSame(t, c.ResponseWriter(), cp.ResponseWriter())
}
