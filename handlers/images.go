package handlers

import (
	"errors"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aukra/apperr"
	"aukra/storage"
)

const MaxImageBytes = 5 << 20

var errStorageDisabled = apperr.Transient("image storage is not configured", nil)

type uploadResult struct {
	PublicURL string `json:"publicUrl"`
	Path      string `json:"path"`
}

// UploadImageHandler stores the multipart "file" field under
// menu-images/<uuid>.<ext> and returns its public URL.
func UploadImageHandler(images ImageStorage, bucket string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if images == nil {
			respondError(w, r, errStorageDisabled)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, MaxImageBytes+1<<20)
		file, header, err := r.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondError(w, r, apperr.Validation("image must be 5MB or smaller"))
				return
			}
			respondError(w, r, &apperr.Error{Kind: apperr.KindValidation, Message: "file is required", Err: err})
			return
		}
		defer file.Close()

		if header.Size > MaxImageBytes {
			respondError(w, r, apperr.Validation("image must be 5MB or smaller"))
			return
		}
		contentType := header.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			respondError(w, r, apperr.Validation("only image files can be uploaded"))
			return
		}

		objectPath := storage.ImageFolder + "/" + uuid.NewString() + imageExt(header.Filename, contentType)
		publicURL, err := images.Upload(r.Context(), bucket, objectPath, contentType, file)
		if err != nil {
			respondError(w, r, err)
			return
		}
		zap.S().Infow("image uploaded", "path", objectPath, "size", header.Size)
		respond(w, http.StatusCreated, "Image uploaded successfully", uploadResult{PublicURL: publicURL, Path: objectPath})
	}
}

func imageExt(filename, contentType string) string {
	if ext := strings.ToLower(path.Ext(filename)); ext != "" {
		return ext
	}
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		return exts[0]
	}
	return ""
}

func ListBucketsHandler(images ImageStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if images == nil {
			respondError(w, r, errStorageDisabled)
			return
		}
		buckets, err := images.ListBuckets(r.Context())
		if err != nil {
			respondError(w, r, err)
			return
		}
		respond(w, http.StatusOK, "Buckets retrieved successfully", buckets)
	}
}
