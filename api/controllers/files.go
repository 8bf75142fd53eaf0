package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/transportly/transportly-backend/api/responses"
	filesvc "github.com/transportly/transportly-backend/internal/files"
	"github.com/transportly/transportly-backend/pkg/config"
	pkgerrors "github.com/transportly/transportly-backend/pkg/errors"
	"github.com/transportly/transportly-backend/pkg/logger"
)

// FileUpload accepts a single multipart "file" part and stores it.
func FileUpload(svc filesvc.Service, media config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	maxBytes := int64(media.MaxUploadMB) * 1024 * 1024
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "file service unavailable"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body"))
			return
		}

		part, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file part is required"))
			return
		}
		defer part.Close()

		file, err := svc.Upload(r.Context(), filesvc.UploadInput{
			Name:        header.Filename,
			Encoding:    header.Header.Get("Content-Transfer-Encoding"),
			ContentType: header.Header.Get("Content-Type"),
			SizeBytes:   header.Size,
			Body:        part,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, file)
	}
}

// FileDelete removes a stored file and its blob.
func FileDelete(svc filesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "file service unavailable"))
			return
		}

		fileID, err := uuid.Parse(chi.URLParam(r, "fileId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid file id"))
			return
		}

		if err := svc.Delete(r.Context(), fileID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
