package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/maestrokit/maestro/internal/library"
)

// ArtistDocument is the relational row holding one serialized artist
// aggregate. The name column is duplicated out of the document so listings
// can be ordered in SQL.
type ArtistDocument struct {
	ID        string    `gorm:"primaryKey"`
	Name      string    `gorm:"index;not null"`
	Document  []byte    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for ArtistDocument
func (ArtistDocument) TableName() string {
	return "artist_documents"
}

// GormStore persists artist aggregates as JSON documents in a single table,
// giving sqlite and postgres deployments the same whole-aggregate semantics
// as the mongo store.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the document table and returns the store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&ArtistDocument{}); err != nil {
		return nil, fmt.Errorf("migrating artist documents: %w", err)
	}
	return &GormStore{db: db}, nil
}

// FindAll returns every artist ordered by name.
func (s *GormStore) FindAll(ctx context.Context, order library.SortOrder) ([]library.Artist, error) {
	direction := "name DESC"
	if order == library.NameAscending {
		direction = "name ASC"
	}
	var rows []ArtistDocument
	if err := s.db.WithContext(ctx).Order(direction).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("querying artists: %w", err)
	}

	artists := make([]library.Artist, 0, len(rows))
	for i := range rows {
		artist, err := decodeDocument(&rows[i])
		if err != nil {
			return nil, err
		}
		artists = append(artists, *artist)
	}
	return artists, nil
}

// FindByID returns the artist under id, or (nil, nil) when absent.
func (s *GormStore) FindByID(ctx context.Context, id string) (*library.Artist, error) {
	return s.findOne(ctx, "id = ?", id)
}

// FindByName returns the first artist with the given name, or (nil, nil).
func (s *GormStore) FindByName(ctx context.Context, name string) (*library.Artist, error) {
	return s.findOne(ctx, "name = ?", name)
}

func (s *GormStore) findOne(ctx context.Context, query string, arg string) (*library.Artist, error) {
	var row ArtistDocument
	err := s.db.WithContext(ctx).Where(query, arg).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying artist: %w", err)
	}
	return decodeDocument(&row)
}

// Save replaces the whole aggregate document, inserting it when absent.
func (s *GormStore) Save(ctx context.Context, artist *library.Artist) error {
	document, err := json.Marshal(artist)
	if err != nil {
		return fmt.Errorf("encoding artist %s: %w", artist.ID, err)
	}
	row := ArtistDocument{
		ID:       artist.ID,
		Name:     artist.Name,
		Document: document,
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "document", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("saving artist %s: %w", artist.ID, err)
	}
	return nil
}

// DeleteByID removes the artist row under id.
func (s *GormStore) DeleteByID(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&ArtistDocument{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("deleting artist %s: %w", id, err)
	}
	return nil
}

func decodeDocument(row *ArtistDocument) (*library.Artist, error) {
	var artist library.Artist
	if err := json.Unmarshal(row.Document, &artist); err != nil {
		return nil, fmt.Errorf("decoding artist %s: %w", row.ID, err)
	}
	return &artist, nil
}
