package salon

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	domainSalon "github.com/BruksfildServices01/salon-scheduler/internal/domain/salon"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ImageStore uploads an encoded image and returns its public URL.
type ImageStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

type AddSalonImage struct {
	repo   domainSalon.Repository
	images ImageStore
	audit  *audit.Dispatcher
}

func NewAddSalonImage(repo domainSalon.Repository, images ImageStore, audit *audit.Dispatcher) *AddSalonImage {
	return &AddSalonImage{repo: repo, images: images, audit: audit}
}

// Execute converts the upload to WebP, stores it and appends its URL to the
// salon's images.
func (uc *AddSalonImage) Execute(
	ctx context.Context,
	actorID string,
	id string,
	upload io.Reader,
) (*models.Salon, error) {

	if err := checkID(id); err != nil {
		return nil, err
	}

	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}

	body, err := storage.ToWebP(upload, storage.MaxImageWidth)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUnsupportedImage):
			return nil, httperr.InvalidInput("invalid_image", "Image must be JPEG, PNG, GIF or WebP")
		case errors.Is(err, storage.ErrImageTooLarge):
			return nil, httperr.InvalidInput("invalid_image", "Image dimensions are too large")
		}
		return nil, httperr.Internal("image_conversion_failed", err)
	}

	key := fmt.Sprintf("salons/%s/%s.webp", s.ID, domain.NewID())
	url, err := uc.images.Put(ctx, key, body, storage.WebPMime)
	if err != nil {
		return nil, httperr.Internal("image_upload_failed", err)
	}

	// The conversion and upload are slow; append to the current document.
	s, err = uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}

	s.Images = append(s.Images, url)
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, storeErr(err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "salon_image_added",
		Entity:   "salon",
		EntityID: s.ID,
		Metadata: map[string]any{"url": url},
	})

	return s, nil
}
