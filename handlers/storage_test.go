package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	roomRepo "roomify/database/repository/room"
	"roomify/models"
	"roomify/services/storage"
)

// stubStorage records upload and delete calls; URLs derive from public IDs.
type stubStorage struct {
	nextID   int
	uploaded []string
	deleted  []string
}

func (s *stubStorage) UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error) {
	s.nextID++
	id := fmt.Sprintf("%s/photo-%d", destFolder, s.nextID)
	s.uploaded = append(s.uploaded, id)
	return id, nil
}

func (s *stubStorage) DeleteFile(ctx context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return nil
}

func (s *stubStorage) GetDownloadURL(ctx context.Context, publicID string, expires time.Duration) (string, error) {
	return "https://cdn.example.com/" + publicID, nil
}

var _ storage.StorageService = (*stubStorage)(nil)

type stubRoomRepo struct {
	room    models.Room
	updates map[string]interface{}
}

func (r *stubRoomRepo) GetByID(ctx context.Context, id string) (*models.Room, error) {
	if id != r.room.ID {
		return nil, roomRepo.ErrRoomNotFound
	}
	room := r.room
	return &room, nil
}

func (r *stubRoomRepo) Update(ctx context.Context, id string, update map[string]interface{}) (*models.Room, error) {
	if id != r.room.ID {
		return nil, roomRepo.ErrRoomNotFound
	}
	r.updates = update
	if url, ok := update["photo_url"].(string); ok {
		r.room.PhotoURL = url
	}
	if pid, ok := update["photo_id"].(string); ok {
		r.room.PhotoID = pid
	}
	room := r.room
	return &room, nil
}

func (r *stubRoomRepo) ListActive(ctx context.Context) ([]models.Room, error) {
	return []models.Room{r.room}, nil
}
func (r *stubRoomRepo) List(ctx context.Context) ([]models.Room, error) {
	return []models.Room{r.room}, nil
}
func (r *stubRoomRepo) Create(ctx context.Context, room *models.Room) error { return nil }
func (r *stubRoomRepo) Deactivate(ctx context.Context, id string) error     { return nil }
func (r *stubRoomRepo) CountActive(ctx context.Context) (int64, error)      { return 1, nil }

var _ roomRepo.RoomRepository = (*stubRoomRepo)(nil)

func newStorageRouter(store *stubStorage, rooms *stubRoomRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewStorageHandler(store, rooms)
	r.POST("/admin/api/rooms/:id/photo", h.UploadRoomPhotoHandler)
	return r
}

func postPhoto(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "room.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadRoomPhoto(t *testing.T) {
	store := &stubStorage{}
	rooms := &stubRoomRepo{room: models.Room{ID: "r1", Name: "精緻洽談室 A", IsActive: true}}
	r := newStorageRouter(store, rooms)

	w := postPhoto(t, r, "/admin/api/rooms/r1/photo")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://cdn.example.com/room-photos/photo-1", rooms.room.PhotoURL)
	assert.Equal(t, "room-photos/photo-1", rooms.updates["photo_id"])
	assert.Empty(t, store.deleted, "a first upload has nothing to clean up")

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, rooms.room.PhotoURL, resp["photo_url"])
	assert.NotContains(t, resp, "photo_id", "the storage handle stays internal")
}

func TestUploadRoomPhotoReplacesOldPhoto(t *testing.T) {
	store := &stubStorage{}
	rooms := &stubRoomRepo{room: models.Room{
		ID: "r1", Name: "精緻洽談室 A", IsActive: true,
		PhotoURL: "https://cdn.example.com/room-photos/photo-old",
		PhotoID:  "room-photos/photo-old",
	}}
	r := newStorageRouter(store, rooms)

	w := postPhoto(t, r, "/admin/api/rooms/r1/photo")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "room-photos/photo-1", rooms.room.PhotoID)
	assert.Equal(t, []string{"room-photos/photo-old"}, store.deleted,
		"the replaced photo is removed from the store")
}

func TestUploadRoomPhotoUnknownRoom(t *testing.T) {
	store := &stubStorage{}
	rooms := &stubRoomRepo{room: models.Room{ID: "r1"}}
	r := newStorageRouter(store, rooms)

	w := postPhoto(t, r, "/admin/api/rooms/nope/photo")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, store.uploaded)
}

func TestUploadRoomPhotoMissingFile(t *testing.T) {
	store := &stubStorage{}
	rooms := &stubRoomRepo{room: models.Room{ID: "r1"}}
	r := newStorageRouter(store, rooms)

	req := httptest.NewRequest(http.MethodPost, "/admin/api/rooms/r1/photo", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
