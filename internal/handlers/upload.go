package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"upaheart-backend/internal/models"
)

// URLSigner hands out write-once upload targets with their public retrieval
// URLs.
type URLSigner interface {
	SignedUploadURL(filename string) (uploadURL, fileURL string, err error)
}

type UploadHandler struct {
	signer URLSigner
}

func NewUploadHandler(signer URLSigner) *UploadHandler {
	return &UploadHandler{signer: signer}
}

// UploadURL godoc
// @Summary     Get a signed upload URL
// @Description Sanitizes the filename, generates a unique storage path and returns a signed upload target plus the public retrieval URL. The caller PUTs the file bytes directly against the upload target.
// @Tags        upload
// @Accept      json
// @Produce     json
// @Param       request body models.UploadURLRequest true "Filename and content type"
// @Success     200 {object} models.UploadURLResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /upload-url [post]
func (h *UploadHandler) UploadURL(c *gin.Context) {
	var req models.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}
	if req.Filename == "" || req.Filetype == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing filename or filetype"})
		return
	}

	uploadURL, fileURL, err := h.signer.SignedUploadURL(req.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create upload url", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.UploadURLResponse{UploadURL: uploadURL, FileURL: fileURL})
}
