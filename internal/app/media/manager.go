// internal/app/media/manager.go

// Package media owns the lifecycle of remote property media: upload,
// detach, floorplan swaps, and the bulk drain that runs before a
// listing record is removed.
//
// The invariant throughout: a media descriptor is only removed from the
// database after the object store has confirmed the remote object is
// gone (HTTP 204). A failed remote delete leaves the local record
// untouched so no descriptor ever points at nothing we can clean up.
package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/gammazero/workerpool"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/letkeeper/letkeeper/internal/app/system/apperr"
	"github.com/letkeeper/letkeeper/internal/app/system/imaging"
	"github.com/letkeeper/letkeeper/internal/app/system/storage"
	"github.com/letkeeper/letkeeper/internal/domain/models"
)

// drainWorkers bounds the concurrent remote deletes during a bulk drain.
const drainWorkers = 4

// PropertyMedia is the slice of the properties store the manager needs.
type PropertyMedia interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error)
	GetImage(ctx context.Context, propertyID, imageID primitive.ObjectID) (*models.Image, error)
	PullImage(ctx context.Context, propertyID, imageID primitive.ObjectID) error
	SetFloorplan(ctx context.Context, propertyID primitive.ObjectID, fp models.Floorplan) error
	ClearFloorplan(ctx context.Context, propertyID primitive.ObjectID) error
}

// Upload is one incoming file.
type Upload struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// Manager coordinates the object store and the properties collection.
type Manager struct {
	store   PropertyMedia
	objects storage.ObjectStore
	folder  string
	log     *zap.Logger
}

// New creates a media Manager. folder is the object-key prefix all
// uploads land under.
func New(store PropertyMedia, objects storage.ObjectStore, folder string, log *zap.Logger) *Manager {
	return &Manager{store: store, objects: objects, folder: folder, log: log}
}

// UploadImages compresses each file into the standard frame and uploads
// it, returning descriptors ready to attach to a listing. The first
// failure aborts the batch; already-uploaded objects are left for the
// next drain.
func (m *Manager) UploadImages(ctx context.Context, uploads []Upload) ([]models.Image, error) {
	if len(uploads) == 0 {
		return nil, apperr.New(apperr.Validation, "No image provided")
	}

	images := make([]models.Image, 0, len(uploads))
	for _, up := range uploads {
		buf, err := imaging.Compress(up.Body)
		if err != nil {
			return nil, apperr.Wrap(apperr.Validation, "Unsupported image format", err)
		}

		key := storage.NewKey(m.folder, "jpeg")
		url, err := m.objects.Put(ctx, key, buf, "image/jpeg")
		if err != nil {
			return nil, apperr.Wrap(apperr.Upstream, "Image upload failed", err)
		}

		images = append(images, models.Image{
			ID:   primitive.NewObjectID(),
			Key:  key,
			Name: up.Name,
			URL:  url,
		})
	}
	return images, nil
}

// UploadFloorplan uploads one floorplan document as-is (no resizing;
// floorplans are often PDFs or high-detail drawings).
func (m *Manager) UploadFloorplan(ctx context.Context, up Upload, ext string) (models.Floorplan, error) {
	key := storage.NewKey(m.folder, ext)
	url, err := m.objects.Put(ctx, key, up.Body, up.ContentType)
	if err != nil {
		return models.Floorplan{}, apperr.Wrap(apperr.Upstream, "Floorplan upload failed", err)
	}
	return models.Floorplan{Key: key, Name: up.Name, URL: url}, nil
}

// DetachImage removes one image: remote delete first, local pull only
// after the store confirms 204. A non-204 response surfaces as Upstream
// and the descriptor stays attached.
func (m *Manager) DetachImage(ctx context.Context, propertyID, imageID primitive.ObjectID) error {
	img, err := m.store.GetImage(ctx, propertyID, imageID)
	if err != nil {
		return err
	}

	status, err := m.objects.Delete(ctx, img.Key)
	if err != nil {
		return apperr.Wrap(apperr.Upstream, "Image could not be removed from storage", err)
	}
	if status != http.StatusNoContent {
		return apperr.New(apperr.Upstream, fmt.Sprintf("Image could not be removed from storage (status %d)", status))
	}

	return m.store.PullImage(ctx, propertyID, imageID)
}

// DeleteFloorplan removes the listing's floorplan with the same gating
// as DetachImage.
func (m *Manager) DeleteFloorplan(ctx context.Context, propertyID primitive.ObjectID) error {
	p, err := m.store.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if p.Floorplan.IsZero() {
		return apperr.New(apperr.NotFound, "Floorplan not found")
	}

	status, err := m.objects.Delete(ctx, p.Floorplan.Key)
	if err != nil {
		return apperr.Wrap(apperr.Upstream, "Floorplan could not be removed from storage", err)
	}
	if status != http.StatusNoContent {
		return apperr.New(apperr.Upstream, fmt.Sprintf("Floorplan could not be removed from storage (status %d)", status))
	}

	return m.store.ClearFloorplan(ctx, propertyID)
}

// ReplaceFloorplan swaps the floorplan for a new descriptor, deleting
// the old remote object first. The swap only happens after the old
// object is confirmed gone.
func (m *Manager) ReplaceFloorplan(ctx context.Context, propertyID primitive.ObjectID, fp models.Floorplan) error {
	p, err := m.store.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}

	if !p.Floorplan.IsZero() {
		status, err := m.objects.Delete(ctx, p.Floorplan.Key)
		if err != nil {
			return apperr.Wrap(apperr.Upstream, "Previous floorplan could not be removed from storage", err)
		}
		if status != http.StatusNoContent {
			return apperr.New(apperr.Upstream, fmt.Sprintf("Previous floorplan could not be removed from storage (status %d)", status))
		}
	}

	return m.store.SetFloorplan(ctx, propertyID, fp)
}

// DrainProperty deletes every remote object the listing references,
// fanning out over a bounded worker pool and joining before return.
// Failures never abort the drain: each one becomes a warning so the
// caller can proceed with record deletion and report what leaked.
func (m *Manager) DrainProperty(ctx context.Context, p *models.Property) []string {
	keys := make([]string, 0, len(p.Images)+1)
	for _, img := range p.Images {
		keys = append(keys, img.Key)
	}
	if !p.Floorplan.IsZero() {
		keys = append(keys, p.Floorplan.Key)
	}
	if len(keys) == 0 {
		return nil
	}

	var (
		mu       sync.Mutex
		warnings []string
	)
	wp := workerpool.New(drainWorkers)
	for _, key := range keys {
		key := key
		wp.Submit(func() {
			status, err := m.objects.Delete(ctx, key)
			switch {
			case err != nil:
				mu.Lock()
				warnings = append(warnings, fmt.Sprintf("media object %s could not be deleted: %v", key, err))
				mu.Unlock()
			case status != http.StatusNoContent:
				mu.Lock()
				warnings = append(warnings, fmt.Sprintf("media object %s delete returned status %d", key, status))
				mu.Unlock()
			}
		})
	}
	wp.StopWait()

	for _, warning := range warnings {
		m.log.Warn("media drain left remote object behind",
			zap.String("property_id", p.ID.Hex()),
			zap.String("detail", warning),
		)
	}
	return warnings
}
