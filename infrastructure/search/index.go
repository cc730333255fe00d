// Package search keeps a full text index of public text rooms.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"room-lab/domain"
	"room-lab/domain/corpse"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/blugelabs/bluge"
)

const (
	textField = "text"
	langField = "lang"
	idField   = "_id"
)

// Index wraps a bluge writer. A room is stored under its id so
// re-indexing a room replaces the previous document.
type Index struct {
	writer *bluge.Writer
	log    *slog.Logger
}

// Open uses an in-memory index when path is empty.
func Open(path string, log *slog.Logger) (*Index, error) {
	cfg := bluge.InMemoryOnlyConfig()
	if path != "" {
		cfg = bluge.DefaultConfig(path)
	}
	writer, err := bluge.OpenWriter(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	return &Index{writer: writer, log: log}, nil
}

func (i *Index) Index(ctx context.Context, roomID domain.RoomID, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return i.Remove(ctx, roomID)
	}
	info := whatlanggo.Detect(text)
	doc := bluge.NewDocument(string(roomID)).
		AddField(bluge.NewTextField(textField, text)).
		AddField(bluge.NewKeywordField(langField, info.Lang.Iso6391()).StoreValue())
	if err := i.writer.Update(doc.ID(), doc); err != nil {
		return fmt.Errorf("index room %s: %w", roomID, err)
	}
	return nil
}

func (i *Index) Remove(ctx context.Context, roomID domain.RoomID) error {
	return i.writer.Delete(bluge.Identifier(roomID))
}

// Search returns at most limit rooms ranked by relevance. The input may
// narrow the language or lower the limit, see ParseQuery.
func (i *Index) Search(ctx context.Context, input string, limit int) ([]corpse.SearchHit, error) {
	query := ParseQuery(input)
	if query.Limit > 0 && query.Limit < limit {
		limit = query.Limit
	}
	if query.Terms == "" || limit <= 0 {
		return []corpse.SearchHit{}, nil
	}
	reader, err := i.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	match := bluge.NewBooleanQuery().AddMust(bluge.NewMatchQuery(query.Terms).SetField(textField))
	if query.Lang != "" {
		match.AddMust(bluge.NewTermQuery(query.Lang).SetField(langField))
	}
	request := bluge.NewTopNSearch(limit, match)
	it, err := reader.Search(ctx, request)
	if err != nil {
		return nil, err
	}

	hits := []corpse.SearchHit{}
	next, err := it.Next()
	for err == nil && next != nil {
		hit := corpse.SearchHit{Score: next.Score}
		err = next.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case idField:
				hit.RoomID = domain.RoomID(value)
			case langField:
				hit.Lang = string(value)
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit)
		next, err = it.Next()
	}
	if err != nil {
		return nil, err
	}
	return hits, nil
}

func (i *Index) Close() error {
	return i.writer.Close()
}
