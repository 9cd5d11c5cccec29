package pipeline

import "threatradar/pkg/models"

// FeedWriter delivers the generated document pair to one destination.
type FeedWriter interface {
	WriteFeed(full models.FeedDocument, widget models.WidgetDocument) error
	Close() error
}
