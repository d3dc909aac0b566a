// Package models contains data structures for the application's domain models.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Tags is an ordered list of tag strings persisted as a jsonb column.
type Tags []string

// Value implements driver.Valuer so GORM can persist tags as jsonb.
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		t = Tags{}
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner for reading the jsonb column back.
func (t *Tags) Scan(value interface{}) error {
	if value == nil {
		*t = Tags{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported tags column type %T", value)
	}
}

// GormDataType tells GORM which column type to migrate for Tags.
func (Tags) GormDataType() string {
	return "jsonb"
}

// Post represents a blog post. Posts are hard-deleted; there is no soft
// delete in this domain.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Tags      Tags      `gorm:"type:jsonb;not null" json:"tags"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PreviewBodyLimit is the maximum number of characters of body text returned
// in list responses.
const PreviewBodyLimit = 200

// TruncateBody shortens the post body to at most limit characters, appending
// an ellipsis marker when text was cut. Counts runes so multi-byte text is
// never split mid-character.
func (p *Post) TruncateBody(limit int) {
	runes := []rune(p.Body)
	if len(runes) <= limit {
		return
	}
	p.Body = string(runes[:limit]) + "..."
}
