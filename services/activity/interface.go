package activity

import (
	"context"
	"mime/multipart"
	"time"

	activityRepo "dreamdecol/database/repository/activity"
	"dreamdecol/models"
	"dreamdecol/services/storage"
)

// DefaultRangeDays is the lookback of Range when no start date is given.
const DefaultRangeDays = 30

type ActivityService interface {
	List(ctx context.Context) ([]models.Activity, error)
	// Range lists activities dated between start and end. Empty bounds default to the last 30 days.
	Range(ctx context.Context, start, end string) ([]models.Activity, error)
	Search(ctx context.Context, query string) ([]models.Activity, error)

	Create(ctx context.Context, input Input, file *multipart.FileHeader) (*models.Activity, error)
	Update(ctx context.Context, id string, input Input) (*models.Activity, error)
	Delete(ctx context.Context, id string) error
}

// Input is a create or partial update payload; nil fields are left unchanged.
type Input struct {
	Title       *string
	Description *string
	MediaType   *string
	MediaURL    *string
	Date        *string
}

// Media is the part of the media service activities need.
type Media interface {
	UploadActivityMedia(ctx context.Context, fh *multipart.FileHeader) (*storage.StoredFile, error)
	Remove(ctx context.Context, url string)
}

// DefaultActivityService is the production implementation.
type DefaultActivityService struct {
	Repo  activityRepo.ActivityRepository
	Media Media
	Now   func() time.Time
}

func NewActivityService(repo activityRepo.ActivityRepository, media Media) *DefaultActivityService {
	return &DefaultActivityService{Repo: repo, Media: media, Now: time.Now}
}
