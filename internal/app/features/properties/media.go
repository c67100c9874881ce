// internal/app/features/properties/media.go
package properties

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/letkeeper/letkeeper/internal/app/media"
	"github.com/letkeeper/letkeeper/internal/app/system/apperr"
	"github.com/letkeeper/letkeeper/internal/app/system/httpjson"
	"github.com/letkeeper/letkeeper/internal/app/system/timeouts"
)

// maxUploadBytes bounds one multipart upload request.
const maxUploadBytes = 64 << 20 // 64 MiB

// UploadImage handles POST /property/upload-image: a multipart batch of
// image files. Each file is compressed into the standard frame before
// upload; the returned descriptors are not yet attached to a listing.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "Invalid upload", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	var uploads []media.Upload
	for _, fh := range r.MultipartForm.File["images"] {
		f, err := fh.Open()
		if err != nil {
			httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "Invalid upload", err))
			return
		}
		defer f.Close()
		uploads = append(uploads, media.Upload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		})
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	images, err := h.Media.UploadImages(ctx, uploads)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, uploadResponse{Images: images})
}

// UploadFloorplan handles POST /property/upload-floorplan: a single
// file, stored as-is.
func (h *Handler) UploadFloorplan(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	f, fh, err := r.FormFile("floorplan")
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "No floorplan provided", err))
		return
	}
	defer f.Close()

	ext := strings.TrimPrefix(filepath.Ext(fh.Filename), ".")
	if ext == "" {
		ext = "pdf"
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	fp, err := h.Media.UploadFloorplan(ctx, media.Upload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	}, ext)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, floorplanUploadResponse{Key: fp.Key, URL: fp.URL, Name: fp.Name})
}

// UpdateImages handles POST /property/update-images: attach previously
// uploaded image descriptors to the listing.
func (h *Handler) UpdateImages(w http.ResponseWriter, r *http.Request) {
	var req imagesRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	id, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "Invalid property id", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Properties.PushImages(ctx, id, req.Images); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, messageResponse{Success: true, Message: "Images updated"})
}

// UpdateImagesOrder handles POST /property/update-images-order: the
// caller sends the full image array in display order and it replaces
// the stored one.
func (h *Handler) UpdateImagesOrder(w http.ResponseWriter, r *http.Request) {
	var req imagesRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	id, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "Invalid property id", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Properties.SetImages(ctx, id, req.Images); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, messageResponse{Success: true, Message: "Images order updated"})
}

// DeleteImage handles POST /property/delete-image. The remote object is
// deleted first; the descriptor stays attached unless the store
// confirms removal.
func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	var req deleteImageRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	propertyID, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "Invalid property id", err))
		return
	}
	imageID, err := primitive.ObjectIDFromHex(req.ImageID)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "Invalid image id", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Media.DetachImage(ctx, propertyID, imageID); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, messageResponse{Success: true, Message: "Image deleted"})
}

// UpdateVideos handles POST /property/update-videos: append video links.
func (h *Handler) UpdateVideos(w http.ResponseWriter, r *http.Request) {
	var req videosRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	id, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "Invalid property id", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Properties.PushVideos(ctx, id, req.Videos); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, messageResponse{Success: true, Message: "Videos updated"})
}

// SaveVideos handles POST /property/save-videos: replace the whole
// video array (reorder or prune).
func (h *Handler) SaveVideos(w http.ResponseWriter, r *http.Request) {
	var req videosRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	id, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "Invalid property id", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Properties.SetVideos(ctx, id, req.Videos); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, messageResponse{Success: true, Message: "Videos saved"})
}

// UpdateFloorplan handles POST /property/update-floorplan: attach a
// previously uploaded floorplan descriptor.
func (h *Handler) UpdateFloorplan(w http.ResponseWriter, r *http.Request) {
	var req floorplanRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	id, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "Invalid property id", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Properties.SetFloorplan(ctx, id, req.Floorplan); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, messageResponse{Success: true, Message: "Floorplan updated"})
}

// ChangeFloorplan handles POST /property/change-floorplan: swap the
// floorplan for a new descriptor, removing the old remote object first.
func (h *Handler) ChangeFloorplan(w http.ResponseWriter, r *http.Request) {
	var req floorplanRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	id, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "Invalid property id", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Media.ReplaceFloorplan(ctx, id, req.Floorplan); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, messageResponse{Success: true, Message: "Floorplan changed"})
}

// DeleteFloorplan handles POST /property/delete-floorplan.
func (h *Handler) DeleteFloorplan(w http.ResponseWriter, r *http.Request) {
	id, ok := h.decodePropertyID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Media.DeleteFloorplan(ctx, id); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, messageResponse{Success: true, Message: "Floorplan deleted"})
}
