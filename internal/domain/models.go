// Package domain defines the persistence model for classified ads. The type
// is mapped with GORM and forms the core data layer of the ads application.
package domain

import "time"

// Ad represents a single classified listing. JSON field names follow the wire
// contract of the browser client (imageUrl, authorId, createdAt).
//
// Fields:
//   - ID: stable UUID primary key (char(36)), assigned at creation.
//   - Title / Description / Contacts: free text supplied by the author; any
//     of them may be empty (the API is intentionally lenient).
//   - Price: optional asking price; nil means "not specified".
//   - ImageURL: either an externally hosted URL or an inline data: URI of the
//     uploaded image; stored as text since data URIs can run to megabytes.
//   - AuthorID: opaque client-issued identity token captured at creation and
//     never reassigned. Used only for the string-equality ownership check on
//     mutation; it is not an authentication credential.
//   - CreatedAt: set at creation, the sole sort key for listings (descending).
//   - UpdatedAt: timestamp managed by GORM.
//
// Deletion is a hard delete. There is no soft-delete marker: removing an ad
// is irreversible and leaves no audit row.
type Ad struct {
	ID          string    `json:"id"          gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title"       gorm:"type:varchar(255);not null;default:''"`
	Description string    `json:"description" gorm:"type:text"`
	Price       *float64  `json:"price"`
	ImageURL    string    `json:"imageUrl"    gorm:"type:text"`
	Contacts    string    `json:"contacts"    gorm:"type:varchar(255)"`
	AuthorID    string    `json:"authorId"    gorm:"type:varchar(64);index:idx_ads_author"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"index:idx_ads_created"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName returns the database table name for Ad.
func (Ad) TableName() string { return "ads" }
