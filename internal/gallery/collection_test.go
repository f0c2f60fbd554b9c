package gallery

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"framesnatch/internal/eventbus"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
}

func TestLoadCollectionFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "snapshot_0002.jpg")
	writeFile(t, dir, "snapshot_0000.jpg")
	writeFile(t, dir, "snapshot_0001.JPG") // extension match is case-insensitive
	writeFile(t, dir, "cover.png")
	writeFile(t, dir, "photo.jpeg")
	writeFile(t, dir, "notes.txt")
	writeFile(t, dir, "clip.mp4")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.jpg"), 0755)) // directories are skipped

	images, err := LoadCollection(dir)
	require.NoError(t, err)

	names := make([]string, len(images))
	for i, p := range images {
		names[i] = filepath.Base(p)
	}
	require.Equal(t, []string{
		"cover.png",
		"photo.jpeg",
		"snapshot_0000.jpg",
		"snapshot_0001.JPG",
		"snapshot_0002.jpg",
	}, names)
}

func TestLoadCollectionEmptyDir(t *testing.T) {
	images, err := LoadCollection(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, images)
}

func TestLoadCollectionMissingDir(t *testing.T) {
	_, err := LoadCollection(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

// stubBus records published events synchronously.
type stubBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *stubBus) Publish(event eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *stubBus) Subscribe(eventType eventbus.EventType, handler eventbus.EventHandler) func() {
	return func() {}
}

func TestServicePublishesListing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "snapshot_0000.jpg")
	writeFile(t, dir, "snapshot_0001.jpg")

	bus := &stubBus{}
	svc := NewService(bus, zap.NewNop())

	images, err := svc.Load(dir)
	require.NoError(t, err)
	require.Len(t, images, 2)

	bus.mu.Lock()
	defer bus.mu.Unlock()
	require.Len(t, bus.events, 1)
	loaded, ok := bus.events[0].(eventbus.GalleryLoadedEvent)
	require.True(t, ok)
	require.Equal(t, dir, loaded.Dir)
	require.Equal(t, images, loaded.Images)
}
