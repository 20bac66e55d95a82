package interfaces

import (
	"context"

	"myscraper/domain"
)

// SnapshotPublisher makes a freshly built snapshot available to consumers.
//
//go:generate moq -stub -out mock/publisher.go -pkg mock . SnapshotPublisher
type SnapshotPublisher interface {
	// Publish replaces whatever the publisher held before with snapshot.
	Publish(ctx context.Context, snapshot domain.Snapshot) error
}
