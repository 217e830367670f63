package app

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"vidshare/internal/event"
	"vidshare/internal/model"
	"vidshare/internal/repository"
)

var (
	ErrEmptyTitle    = errors.New("title is empty")
	ErrInvalidFile   = errors.New("invalid video file")
	ErrVideoNotFound = errors.New("video not found")
)

// FileStore persists upload bytes under a server-generated name.
type FileStore interface {
	Save(name string, r io.Reader) error
	Remove(name string) error
}

// CatalogCache holds the rendered home listing for a short TTL.
type CatalogCache interface {
	GetListing(ctx context.Context) ([]model.Video, bool, error)
	SetListing(ctx context.Context, videos []model.Video) error
	Invalidate(ctx context.Context) error
}

// ViewPublisher hands view events to the async counting pipeline.
type ViewPublisher interface {
	Publish(ctx context.Context, ev event.VideoView) error
}

// VideoService is the upload handler plus the video catalog.
type VideoService struct {
	videoRepo   *repository.VideoRepository
	store       FileStore
	cache       CatalogCache
	publisher   ViewPublisher
	allowedExts map[string]struct{}
}

type UploadInput struct {
	Title        string
	OriginalName string
	Content      io.Reader
	OwnerID      uint
}

func NewVideoService(
	videoRepo *repository.VideoRepository,
	store FileStore,
	cache CatalogCache,
	publisher ViewPublisher,
	allowedExtensions []string,
) *VideoService {
	exts := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		exts[strings.ToLower(ext)] = struct{}{}
	}
	return &VideoService{
		videoRepo:   videoRepo,
		store:       store,
		cache:       cache,
		publisher:   publisher,
		allowedExts: exts,
	}
}

// Upload validates the title and file type, writes the bytes under a unique
// storage name and only then records the video. A failed disk write leaves no
// catalog entry; a failed insert removes the written file again.
func (s *VideoService) Upload(ctx context.Context, input UploadInput) (*model.Video, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !s.allowedFile(input.OriginalName) {
		return nil, ErrInvalidFile
	}

	filename := storageName(time.Now(), input.OriginalName)
	if err := s.store.Save(filename, input.Content); err != nil {
		return nil, err
	}

	video := &model.Video{
		Title:    title,
		Filename: filename,
		UserID:   input.OwnerID,
	}
	if err := s.videoRepo.Create(video); err != nil {
		if removeErr := s.store.Remove(filename); removeErr != nil {
			log.Printf("remove orphaned upload %s failed: %v", filename, removeErr)
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Printf("invalidate catalog cache failed: %v", err)
		}
	}
	return video, nil
}

// ListAll returns every video, newest first. The cache is consulted first and
// refilled on a miss; cache trouble degrades to a plain database read.
func (s *VideoService) ListAll(ctx context.Context) ([]model.Video, error) {
	if s.cache != nil {
		videos, ok, err := s.cache.GetListing(ctx)
		if err != nil {
			log.Printf("read catalog cache failed: %v", err)
		} else if ok {
			return videos, nil
		}
	}

	videos, err := s.videoRepo.ListNewestFirst()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetListing(ctx, videos); err != nil {
			log.Printf("fill catalog cache failed: %v", err)
		}
	}
	return videos, nil
}

func (s *VideoService) Get(id uint) (*model.Video, error) {
	video, err := s.videoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}
	return video, nil
}

// RecordView publishes a view event for async counting. Best effort: the
// watch page never fails because the broker is down.
func (s *VideoService) RecordView(ctx context.Context, videoID uint) {
	if s.publisher == nil {
		return
	}
	ev := event.VideoView{VideoID: videoID, ViewedAt: time.Now()}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		log.Printf("publish view event for video %d failed: %v", videoID, err)
	}
}

func (s *VideoService) allowedFile(name string) bool {
	ext := fileExtension(name)
	if ext == "" {
		return false
	}
	_, ok := s.allowedExts[ext]
	return ok
}
