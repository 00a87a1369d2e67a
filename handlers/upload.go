// File: handlers/upload.go
package handlers

import (
	"context"
	"mime/multipart"
	"net/http"

	"dreamdecol/services/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProductImageField is the multipart field of a product image upload.
const ProductImageField = "productImage"

// ProductUploader stores product images.
type ProductUploader interface {
	UploadProductImage(ctx context.Context, fh *multipart.FileHeader) (*storage.StoredFile, error)
}

type UploadHandler struct {
	Media ProductUploader
}

func NewUploadHandler(media ProductUploader) *UploadHandler {
	return &UploadHandler{Media: media}
}

func (h *UploadHandler) UploadProductImageHandler(c *gin.Context) {
	fh, err := c.FormFile(ProductImageField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	stored, err := h.Media.UploadProductImage(c.Request.Context(), fh)
	if err != nil {
		fail(c, err, "File upload failed")
		return
	}
	getLogger(c).Info("Product image uploaded", zap.String("url", stored.URL), zap.Int64("size", stored.Size))
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "File uploaded successfully",
		"filePath": stored.URL,
		"file":     stored,
	})
}
