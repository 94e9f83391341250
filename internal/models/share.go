package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShareLinkTTL is how long a minted share link stays valid.
const ShareLinkTTL = 30 * 24 * time.Hour

// ShareLink grants unauthenticated read access to one report until it
// expires.
type ShareLink struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Token     string             `bson:"token" json:"shareToken"`
	ReportID  primitive.ObjectID `bson:"report_id" json:"reportId"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expiresAt"`
}

// Expired reports whether the link is past its validity window at the given
// instant. The boundary instant itself is still valid.
func (s ShareLink) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
