package domain

import "time"

// Post represents a single channel message stored in our database.
type Post struct {
	// Channel is the public name of the source channel.
	Channel string

	// MessageID is the message's ID within its channel. Together with
	// Channel it forms the natural key used for deduplication.
	MessageID int64

	// Text is the message body used for keyword matching and analysis.
	Text string

	// Timestamp is when the message was posted to the channel.
	Timestamp time.Time

	// ScrapedAt is when we ingested the message.
	ScrapedAt time.Time
}
