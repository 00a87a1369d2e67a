package activity

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"dreamdecol/database"
	"dreamdecol/models"
	"dreamdecol/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const MsgActivityNotFound = "Activity not found"

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

func parseDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, utils.NewNotFoundError(MsgActivityNotFound)
	}
	return oid, nil
}

func (s *DefaultActivityService) List(ctx context.Context) ([]models.Activity, error) {
	activities, err := s.Repo.List(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch activities", err)
	}
	return activities, nil
}

func (s *DefaultActivityService) Range(ctx context.Context, start, end string) ([]models.Activity, error) {
	now := s.Now()
	from, to := now.AddDate(0, 0, -DefaultRangeDays), now
	if start != "" {
		t, ok := parseDate(start)
		if !ok {
			return nil, utils.NewValidationError("Invalid start date")
		}
		from = t
	}
	if end != "" {
		t, ok := parseDate(end)
		if !ok {
			return nil, utils.NewValidationError("Invalid end date")
		}
		to = t
	}
	activities, err := s.Repo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch activities", err)
	}
	return activities, nil
}

func (s *DefaultActivityService) Search(ctx context.Context, query string) ([]models.Activity, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, utils.NewValidationError("Search query is required")
	}
	activities, err := s.Repo.Search(ctx, query)
	if err != nil {
		return nil, utils.NewInternalError("Failed to search activities", err)
	}
	return activities, nil
}

// apply merges input into a and reports the date problem, if any.
func apply(a *models.Activity, in Input) []string {
	var details []string
	if in.Title != nil {
		a.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		a.Description = strings.TrimSpace(*in.Description)
	}
	if in.MediaType != nil && *in.MediaType != "" {
		a.MediaType = strings.TrimSpace(*in.MediaType)
	}
	if in.MediaURL != nil && *in.MediaURL != "" {
		a.MediaURL = strings.TrimSpace(*in.MediaURL)
	}
	if in.Date != nil {
		t, ok := parseDate(*in.Date)
		if !ok {
			details = append(details, "Date must be a valid date")
		} else {
			a.Date = t
		}
	}
	return details
}

func validate(a *models.Activity, details []string) error {
	if n := len([]rune(a.Title)); n < 2 || n > 100 {
		details = append(details, "Title must be between 2 and 100 characters")
	}
	if n := len([]rune(a.Description)); n < 10 || n > 1000 {
		details = append(details, "Description must be between 10 and 1000 characters")
	}
	if a.MediaType != models.MediaImage && a.MediaType != models.MediaVideo {
		details = append(details, "Media type must be image or video")
	}
	if !utils.IsMediaSource(a.MediaURL) {
		details = append(details, "Media URL must be a valid URL, upload path, or base64 data")
	}
	if a.Date.IsZero() {
		details = append(details, "Date is required")
	}
	if len(details) > 0 {
		return utils.NewValidationError("Validation error", details...)
	}
	return nil
}

// Create stores a new activity. An uploaded file wins over a media URL; with neither, the stock image is used.
func (s *DefaultActivityService) Create(ctx context.Context, input Input, file *multipart.FileHeader) (*models.Activity, error) {
	a := &models.Activity{MediaType: models.MediaImage, CreatedAt: s.Now()}
	details := apply(a, input)
	if err := validate(withMedia(*a), details); err != nil {
		return nil, err
	}

	if file != nil {
		stored, err := s.Media.UploadActivityMedia(ctx, file)
		if err != nil {
			return nil, err
		}
		a.MediaURL = stored.URL
		if input.MediaType == nil || *input.MediaType == "" {
			a.MediaType = stored.MediaType
		}
	}
	if a.MediaURL == "" {
		a.MediaURL = models.DefaultActivityImage
	}

	if err := s.Repo.Create(ctx, a); err != nil {
		if file != nil {
			s.Media.Remove(ctx, a.MediaURL)
		}
		return nil, utils.NewInternalError("Failed to create activity", err)
	}
	utils.GetLogger().Info("Activity created", zap.String("activityId", a.ID.Hex()), zap.String("mediaType", a.MediaType))
	return a, nil
}

// withMedia fills in the stock image so validation can run before any upload happens.
func withMedia(a models.Activity) *models.Activity {
	if a.MediaURL == "" {
		a.MediaURL = models.DefaultActivityImage
	}
	return &a
}

func (s *DefaultActivityService) lookup(ctx context.Context, id string) (*models.Activity, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	a, err := s.Repo.GetByID(ctx, oid)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewNotFoundError(MsgActivityNotFound)
	}
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch activity", err)
	}
	return a, nil
}

func (s *DefaultActivityService) Update(ctx context.Context, id string, input Input) (*models.Activity, error) {
	a, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	previousURL := a.MediaURL
	if err := validate(a, apply(a, input)); err != nil {
		return nil, err
	}
	if err := s.Repo.Replace(ctx, a); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NewNotFoundError(MsgActivityNotFound)
		}
		return nil, utils.NewInternalError("Failed to update activity", err)
	}
	if previousURL != a.MediaURL {
		s.Media.Remove(ctx, previousURL)
	}
	return a, nil
}

func (s *DefaultActivityService) Delete(ctx context.Context, id string) error {
	a, err := s.lookup(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, a.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.NewNotFoundError(MsgActivityNotFound)
		}
		return utils.NewInternalError("Failed to delete activity", err)
	}
	s.Media.Remove(ctx, a.MediaURL)
	utils.GetLogger().Info("Activity deleted", zap.String("activityId", id))
	return nil
}
