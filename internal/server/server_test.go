package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maestrokit/maestro/internal/apiroutes"
	"github.com/maestrokit/maestro/internal/blobstore"
	"github.com/maestrokit/maestro/internal/docstore"
	"github.com/maestrokit/maestro/internal/library"
)

func newTestRouter(t *testing.T) (*gin.Engine, *blobstore.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apiroutes.ClearForTesting()

	blobs := blobstore.NewMemoryStore()
	service := library.NewService(docstore.NewMemoryStore(), blobs, nil)
	return SetupRouter(service), blobs
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) (string, interface{}) {
	t.Helper()

	var envelope struct {
		Message string      `json:"message"`
		Data    interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Message, envelope.Data
}

func dataID(t *testing.T, data interface{}) string {
	t.Helper()
	obj, ok := data.(map[string]interface{})
	require.True(t, ok)
	id, ok := obj["id"].(string)
	require.True(t, ok)
	return id
}

func uploadSong(t *testing.T, router *gin.Engine, path string, fields map[string]string, withArtwork bool) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	part, err := writer.CreateFormFile("song", "Sunburn.mp3")
	require.NoError(t, err)
	_, err = part.Write([]byte("audio-bytes"))
	require.NoError(t, err)
	if withArtwork {
		art, err := writer.CreateFormFile("artwork", "cover.jpg")
		require.NoError(t, err)
		_, err = art.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListArtistsEmpty(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/artists", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	message, data := decodeEnvelope(t, w)
	assert.Equal(t, "Could not find any objects.", message)
	assert.Nil(t, data)
}

func TestArtistLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/artists", gin.H{"id": "client-id", "name": "Muse"})
	require.Equal(t, http.StatusCreated, w.Code)
	message, data := decodeEnvelope(t, w)
	assert.Equal(t, "Object saved successfully.", message)
	artistID := dataID(t, data)
	assert.NotEqual(t, "client-id", artistID)

	w = doJSON(t, router, http.MethodGet, "/artists/"+artistID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	message, data = decodeEnvelope(t, w)
	assert.Equal(t, "Objects found.", message)
	assert.Equal(t, "Muse", data.(map[string]interface{})["name"])

	w = doJSON(t, router, http.MethodPut, "/artists/"+artistID, gin.H{"name": "Muse (renamed)"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/artists/"+artistID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	message, _ = decodeEnvelope(t, w)
	assert.Equal(t, "Object deleted successfully.", message)

	w = doJSON(t, router, http.MethodGet, "/artists/"+artistID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListArtistsSortedDescending(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, name := range []string{"Abba", "Zappa", "Muse"} {
		w := doJSON(t, router, http.MethodPost, "/artists", gin.H{"name": name})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, router, http.MethodGet, "/artists", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data := decodeEnvelope(t, w)
	list, ok := data.([]interface{})
	require.True(t, ok)
	require.Len(t, list, 3)
	assert.Equal(t, "Zappa", list[0].(map[string]interface{})["name"])
	assert.Equal(t, "Abba", list[2].(map[string]interface{})["name"])
}

func TestDeleteUnknownArtist(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodDelete, "/artists/missing", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	message, _ := decodeEnvelope(t, w)
	assert.Equal(t, "Could not successfully delete the object.", message)
}

func TestCreateAlbumUnderUnknownArtist(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/artists/missing/albums", gin.H{"name": "Showbiz"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	message, _ := decodeEnvelope(t, w)
	assert.Equal(t, "Could not successfully save the object.", message)
}

func TestUpdateArtistPreservesAlbums(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/artists", gin.H{"name": "Muse"})
	require.Equal(t, http.StatusCreated, w.Code)
	_, data := decodeEnvelope(t, w)
	artistID := dataID(t, data)

	w = doJSON(t, router, http.MethodPost, "/artists/"+artistID+"/albums", gin.H{"name": "Showbiz"})
	require.Equal(t, http.StatusCreated, w.Code)

	// The update payload omits albums entirely; the stored list survives.
	w = doJSON(t, router, http.MethodPut, "/artists/"+artistID, gin.H{"name": "Muse (renamed)"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/artists/"+artistID+"/albums", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decodeEnvelope(t, w)
	list, ok := data.([]interface{})
	require.True(t, ok)
	assert.Len(t, list, 1)
}

func TestSongUploadAndDownload(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/artists", gin.H{"name": "Muse"})
	require.Equal(t, http.StatusCreated, w.Code)
	_, data := decodeEnvelope(t, w)
	artistID := dataID(t, data)

	w = doJSON(t, router, http.MethodPost, "/artists/"+artistID+"/albums", gin.H{"name": "Showbiz"})
	require.Equal(t, http.StatusCreated, w.Code)
	_, data = decodeEnvelope(t, w)
	albumID := dataID(t, data)

	songsPath := "/artists/" + artistID + "/albums/" + albumID + "/songs"
	w = uploadSong(t, router, songsPath, map[string]string{"trackNumber": "1"}, true)
	require.Equal(t, http.StatusCreated, w.Code)
	message, data := decodeEnvelope(t, w)
	assert.Equal(t, "Object saved successfully.", message)
	song := data.(map[string]interface{})
	songID := dataID(t, data)
	// The name defaults to the filename without its extension.
	assert.Equal(t, "Sunburn", song["name"])
	assert.NotEmpty(t, song["fileId"])

	w = doJSON(t, router, http.MethodGet, songsPath+"/"+songID+"/file", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "audio-bytes", w.Body.String())
	assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))

	w = doJSON(t, router, http.MethodGet, songsPath+"/"+songID+"/artwork", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image-bytes", w.Body.String())
}

func TestSongUploadRejectsBadTrackNumber(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/artists", gin.H{"name": "Muse"})
	_, data := decodeEnvelope(t, w)
	artistID := dataID(t, data)
	w = doJSON(t, router, http.MethodPost, "/artists/"+artistID+"/albums", gin.H{"name": "Showbiz"})
	_, data = decodeEnvelope(t, w)
	albumID := dataID(t, data)

	w = uploadSong(t, router, "/artists/"+artistID+"/albums/"+albumID+"/songs",
		map[string]string{"trackNumber": "one"}, false)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	message, _ := decodeEnvelope(t, w)
	assert.Equal(t, "Could not successfully save the object.", message)
}

func TestSongUploadRequiresFilePart(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/artists", gin.H{"name": "Muse"})
	_, data := decodeEnvelope(t, w)
	artistID := dataID(t, data)
	w = doJSON(t, router, http.MethodPost, "/artists/"+artistID+"/albums", gin.H{"name": "Showbiz"})
	_, data = decodeEnvelope(t, w)
	albumID := dataID(t, data)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("songName", "Sunburn"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/artists/"+artistID+"/albums/"+albumID+"/songs", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSongUpdatePreservesFileReference(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/artists", gin.H{"name": "Muse"})
	_, data := decodeEnvelope(t, w)
	artistID := dataID(t, data)
	w = doJSON(t, router, http.MethodPost, "/artists/"+artistID+"/albums", gin.H{"name": "Showbiz"})
	_, data = decodeEnvelope(t, w)
	albumID := dataID(t, data)

	songsPath := "/artists/" + artistID + "/albums/" + albumID + "/songs"
	w = uploadSong(t, router, songsPath, map[string]string{"songName": "Sunburn", "trackNumber": "1"}, false)
	require.Equal(t, http.StatusCreated, w.Code)
	_, data = decodeEnvelope(t, w)
	song := data.(map[string]interface{})
	songID := dataID(t, data)
	originalFileID := song["fileId"].(string)

	w = doJSON(t, router, http.MethodPut, songsPath+"/"+songID, gin.H{
		"name":        "Sunburn (Live)",
		"trackNumber": "1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	_, data = decodeEnvelope(t, w)
	updated := data.(map[string]interface{})
	assert.Equal(t, "Sunburn (Live)", updated["name"])
	assert.Equal(t, originalFileID, updated["fileId"])
}

func TestArtworkMissingReturns404(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/artists", gin.H{"name": "Muse"})
	_, data := decodeEnvelope(t, w)
	artistID := dataID(t, data)
	w = doJSON(t, router, http.MethodPost, "/artists/"+artistID+"/albums", gin.H{"name": "Showbiz"})
	_, data = decodeEnvelope(t, w)
	albumID := dataID(t, data)

	songsPath := "/artists/" + artistID + "/albums/" + albumID + "/songs"
	w = uploadSong(t, router, songsPath, map[string]string{"trackNumber": "1"}, false)
	_, data = decodeEnvelope(t, w)
	songID := dataID(t, data)

	w = doJSON(t, router, http.MethodGet, songsPath+"/"+songID+"/artwork", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteArtistCleansUpBlobs(t *testing.T) {
	router, blobs := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/artists", gin.H{"name": "Muse"})
	_, data := decodeEnvelope(t, w)
	artistID := dataID(t, data)
	w = doJSON(t, router, http.MethodPost, "/artists/"+artistID+"/albums", gin.H{"name": "Showbiz"})
	_, data = decodeEnvelope(t, w)
	albumID := dataID(t, data)

	w = uploadSong(t, router, "/artists/"+artistID+"/albums/"+albumID+"/songs",
		map[string]string{"trackNumber": "1"}, true)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 2, blobs.Len())

	w = doJSON(t, router, http.MethodDelete, "/artists/"+artistID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, blobs.Len())
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w = doJSON(t, router, http.MethodGet, "/api", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "registered_routes")

	w = doJSON(t, router, http.MethodGet, "/api/events/recent", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
