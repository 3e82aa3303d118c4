package models

import "time"

// SiteContent is one editable front-end text entry, keyed by a well-known name.
type SiteContent struct {
	Key       string    `bson:"key" json:"key"`
	Value     string    `bson:"value" json:"value"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
