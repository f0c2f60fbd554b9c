package gallery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"framesnatch/internal/eventbus"
)

// imageExtensions is the set of file types a gallery listing keeps,
// compared case-insensitively.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// LoadCollection lists the image files directly inside dir, sorted
// lexicographically by name. The listing is a fresh snapshot; files written
// after it returns are not visible until the next call. An empty directory
// yields an empty, valid collection.
func LoadCollection(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if imageExtensions[ext] {
			images = append(images, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(images)
	return images, nil
}

// Service answers gallery listing requests over the event bus
type Service interface {
	Load(dir string) ([]string, error)
}

// galleryService is the concrete implementation
type galleryService struct {
	bus    eventbus.EventBus
	logger *zap.Logger
}

// NewService creates a new gallery service
func NewService(bus eventbus.EventBus, logger *zap.Logger) Service {
	gs := &galleryService{bus: bus, logger: logger}

	// Subscribe to listing requests
	bus.Subscribe(eventbus.EventGalleryRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.GalleryRequestedEvent); ok {
			if _, err := gs.Load(event.Dir); err != nil {
				bus.Publish(eventbus.ErrorEvent{
					Message: fmt.Sprintf("failed to list %s", event.Dir),
					Err:     err,
				})
			}
		}
	})

	return gs
}

// Load lists dir and publishes the result
func (gs *galleryService) Load(dir string) ([]string, error) {
	images, err := LoadCollection(dir)
	if err != nil {
		gs.logger.Error("gallery listing failed", zap.String("dir", dir), zap.Error(err))
		return nil, err
	}

	gs.logger.Info("gallery loaded", zap.String("dir", dir), zap.Int("images", len(images)))
	gs.bus.Publish(eventbus.GalleryLoadedEvent{Dir: dir, Images: images})
	return images, nil
}
