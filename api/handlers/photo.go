package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"

	"github.com/georeconexion/campo-api/config"
	"github.com/georeconexion/campo-api/models"
)

// PhotoHandler turns an uploaded activity photo into a photo reference the
// client embeds in its activity draft
type PhotoHandler struct{}

// maxPhotoBytes bounds the decoded upload size
const maxPhotoBytes = 8 << 20

type photoRequest struct {
	// Data is a data URI or raw base64 payload
	Data     string `json:"data"`
	MimeType string `json:"mimeType,omitempty"`
}

type photoResponse struct {
	URL string `json:"url"`
}

// UploadHandler accepts an encoded photo and returns its reference. When
// Cloudinary is configured the photo is hosted and a URL returned; otherwise
// the data URI itself is the reference, as the original offline flow did.
func (PhotoHandler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	var req photoRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPhotoBytes)).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode photo", http.StatusBadRequest, w, err)
		return
	}
	if req.Data == "" {
		config.ErrorStatus("photo rejected", http.StatusBadRequest, w,
			&models.ValidationError{Field: "data", Reason: "photo payload is required"})
		return
	}

	dataURI := req.Data
	if !strings.HasPrefix(dataURI, "data:") {
		mime := req.MimeType
		if mime == "" {
			mime = "image/jpeg"
		}
		dataURI = fmt.Sprintf("data:%s;base64,%s", mime, req.Data)
	}

	ref := dataURI
	if os.Getenv("CLOUDINARY_URL") != "" {
		cld, err := cloudinary.New()
		if err != nil {
			config.ErrorStatus("failed to init photo hosting", http.StatusInternalServerError, w, err)
			return
		}
		resp, err := cld.Upload.Upload(r.Context(), dataURI, uploader.UploadParams{Folder: "actividades"})
		if err != nil {
			config.ErrorStatus("failed to host photo", http.StatusBadGateway, w, err)
			return
		}
		ref = resp.SecureURL
		zap.S().Infow("activity photo hosted", "url", ref)
	}

	b, _ := json.Marshal(photoResponse{URL: ref})
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
