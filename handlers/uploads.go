package handlers

import (
	"bytes"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/miharina-tech/miharina_backend/config"
	"github.com/miharina-tech/miharina_backend/models"
	"github.com/miharina-tech/miharina_backend/utils"
	"github.com/sirupsen/logrus"
)

// UploadFile accepts a multipart file, stores it in GCS and records the
// upload row. Images additionally get a 100px thumbnail next to the
// original under thumbnails/.
func UploadFile(c *gin.Context) {
	lang := requestLanguage(c)
	ctx := c.Request.Context()
	userId, _ := utils.GetUserIdFromContext(ctx)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	if fileHeader.Size > models.MaxUploadSizeBytes {
		utils.RespondError(c, http.StatusBadRequest, utils.MsgFileTooLarge, lang)
		return
	}

	folder, err := models.ValidateUploadFolder(c.PostForm("folder"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, models.MaxUploadSizeBytes+1))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, utils.MsgInternalError, lang)
		return
	}
	if int64(len(data)) > models.MaxUploadSizeBytes {
		utils.RespondError(c, http.StatusBadRequest, utils.MsgFileTooLarge, lang)
		return
	}

	mimeType := utils.DetectMimeType(fileHeader.Filename, data)
	if !utils.IsAllowedMimeType(mimeType) {
		utils.RespondError(c, http.StatusBadRequest, utils.MsgUnsupportedFileType, lang)
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	objectKey := path.Join(folder, uuid.New().String()+ext)

	if err := utils.UploadBytesToGCS(ctx, objectKey, data, mimeType); err != nil {
		config.LogError(config.GetLogger(), "handlers", "UploadFile", "gcs upload", objectKey, err)
		utils.RespondError(c, http.StatusInternalServerError, utils.MsgInternalError, lang)
		return
	}

	thumbnailUrl := ""
	if strings.HasPrefix(mimeType, "image/") {
		thumbnailKey, err := createThumbnail(c, objectKey, data)
		if err != nil {
			config.LogError(config.GetLogger(), "handlers", "UploadFile", "thumbnail", objectKey, err)
		} else {
			thumbnailUrl = utils.BuildObjectAccessURL(thumbnailKey)
		}
	}

	upload, err := models.CreateUpload(ctx, &models.Upload{
		UserId:       uuid.MustParse(userId),
		FileName:     fileHeader.Filename,
		FileUrl:      utils.BuildObjectAccessURL(objectKey),
		ThumbnailUrl: thumbnailUrl,
		ContentType:  mimeType,
		SizeBytes:    int64(len(data)),
		Folder:       folder,
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, utils.MsgInternalError, lang)
		return
	}

	config.GetLogger().WithFields(logrus.Fields{
		"object_key": objectKey,
		"mime_type":  mimeType,
		"size":       len(data),
	}).Info("[upload.complete]")

	c.JSON(http.StatusCreated, gin.H{"upload": upload})
}

func createThumbnail(c *gin.Context, objectKey string, data []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	thumbnail := imaging.Resize(img, 100, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumbnail, imaging.JPEG); err != nil {
		return "", err
	}

	thumbnailKey := path.Join(path.Dir(objectKey), "thumbnails", path.Base(objectKey))
	if err := utils.UploadBytesToGCS(c.Request.Context(), thumbnailKey, buf.Bytes(), "image/jpeg"); err != nil {
		return "", err
	}
	return thumbnailKey, nil
}

func ListUploads(c *gin.Context) {
	ctx := c.Request.Context()
	userId, _ := utils.GetUserIdFromContext(ctx)

	uploads, err := models.ListUploadsByUser(ctx, userId)
	if err != nil {
		respondModelError(c, err, utils.MsgUploadNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploads": uploads})
}

// DeleteUpload removes the row first, then the blobs best-effort.
func DeleteUpload(c *gin.Context) {
	ctx := c.Request.Context()
	userId, _ := utils.GetUserIdFromContext(ctx)

	upload, err := models.DeleteUpload(ctx, c.Param("id"), userId)
	if err != nil {
		respondModelError(c, err, utils.MsgUploadNotFound)
		return
	}

	for _, url := range []string{upload.FileUrl, upload.ThumbnailUrl} {
		if url == "" {
			continue
		}
		key := utils.ExtractObjectKeyFromURL(url)
		if key == "" {
			continue
		}
		if err := utils.DeleteObjectFromGCS(ctx, key); err != nil {
			config.LogError(config.GetLogger(), "handlers", "DeleteUpload", "gcs delete", key, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "upload deleted"})
}

type signedURLInput struct {
	FileName string `json:"file_name" binding:"required"`
	MimeType string `json:"mime_type" binding:"required"`
	Size     int64  `json:"size" binding:"required"`
	Folder   string `json:"folder"`
}

// SignedUploadURL returns a V4 signed PUT URL so large files bypass the
// API.
func SignedUploadURL(c *gin.Context) {
	lang := requestLanguage(c)
	ctx := c.Request.Context()

	var input signedURLInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	if input.Size > models.MaxUploadSizeBytes {
		utils.RespondError(c, http.StatusBadRequest, utils.MsgFileTooLarge, lang)
		return
	}
	if !utils.IsAllowedMimeType(input.MimeType) {
		utils.RespondError(c, http.StatusBadRequest, utils.MsgUnsupportedFileType, lang)
		return
	}

	folder, err := models.ValidateUploadFolder(input.Folder)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	ext := strings.ToLower(filepath.Ext(input.FileName))
	objectKey := path.Join(folder, uuid.New().String()+ext)

	signed, err := utils.SignUpload(ctx, objectKey, input.MimeType, 15*time.Minute)
	if err != nil {
		config.LogError(config.GetLogger(), "handlers", "SignedUploadURL", "sign upload", objectKey, err)
		utils.RespondError(c, http.StatusInternalServerError, utils.MsgInternalError, lang)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upload_url": signed.UploadURL,
		"method":     signed.Method,
		"headers":    signed.Headers,
		"object_key": signed.ObjectKey,
		"access_url": signed.AccessURL,
		"expires_at": signed.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
