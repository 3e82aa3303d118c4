package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	roomRepo "roomify/database/repository/room"
	"roomify/services/storage"
	"roomify/utils"
)

const roomPhotoFolder = "room-photos"

// StorageHandler handles room photo uploads.
type StorageHandler struct {
	StorageSvc storage.StorageService
	Rooms      roomRepo.RoomRepository
}

// NewStorageHandler creates a new StorageHandler instance.
func NewStorageHandler(svc storage.StorageService, rooms roomRepo.RoomRepository) *StorageHandler {
	return &StorageHandler{StorageSvc: svc, Rooms: rooms}
}

// UploadRoomPhotoHandler uploads a photo for a room and stores its public
// URL on the room record. A previously uploaded photo is removed from the
// store once the replacement is in place.
func (h *StorageHandler) UploadRoomPhotoHandler(c *gin.Context) {
	roomID := c.Param("id")
	existing, err := h.Rooms.GetByID(c.Request.Context(), roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to store uploaded file", err.Error())
		return
	}
	defer os.Remove(tempFilePath)

	publicID, err := h.StorageSvc.UploadFile(c.Request.Context(), tempFilePath, roomPhotoFolder)
	if err != nil {
		getLogger(c).Error("room photo upload failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "upload failed", "could not store the photo")
		return
	}

	url, err := h.StorageSvc.GetDownloadURL(c.Request.Context(), publicID, 0)
	if err != nil {
		getLogger(c).Error("room photo URL resolution failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "upload failed", "could not resolve the photo URL")
		return
	}

	room, err := h.Rooms.Update(c.Request.Context(), roomID, map[string]interface{}{
		"photo_url": url,
		"photo_id":  publicID,
	})
	if err != nil {
		getLogger(c).Error("failed to attach photo to room", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to save photo URL", err.Error())
		return
	}

	// Best effort: the replaced photo is orphaned either way.
	if existing.PhotoID != "" && existing.PhotoID != publicID {
		if err := h.StorageSvc.DeleteFile(c.Request.Context(), existing.PhotoID); err != nil {
			getLogger(c).Warn("failed to delete replaced room photo",
				zap.String("publicID", existing.PhotoID), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, room)
}
