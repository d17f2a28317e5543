package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/craftassist/internal/model"
)

// ErrItemNotFound is returned when no stored item has the requested ID.
var ErrItemNotFound = errors.New("crafted item not found")

const upsertItemSQL = `
	INSERT INTO crafted_items
	 (id, file_name, metadata, base_name, class_name, width, height,
	  identified, is_mirrored, item_level, rarity, required_level, unique_name,
	  tags, more_tags_from_path, strength, dexterity, intelligence,
	  quality, resource_path, mods, stored_at)
	 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
	 ON CONFLICT (id) DO UPDATE SET
	  file_name=$2, metadata=$3, base_name=$4, class_name=$5, width=$6, height=$7,
	  identified=$8, is_mirrored=$9, item_level=$10, rarity=$11, required_level=$12,
	  unique_name=$13, tags=$14, more_tags_from_path=$15, strength=$16,
	  dexterity=$17, intelligence=$18, quality=$19, resource_path=$20,
	  mods=$21, stored_at=$22`

const selectItemSQL = `
	SELECT id, file_name, metadata, base_name, class_name, width, height,
	       identified, is_mirrored, item_level, rarity, required_level, unique_name,
	       tags, more_tags_from_path, strength, dexterity, intelligence,
	       quality, resource_path, mods, stored_at
	FROM crafted_items`

// ItemSummary is a row of the stored item list.
type ItemSummary struct {
	ID        uuid.UUID
	FileName  string
	ClassName string
	StoredAt  time.Time
}

// ItemRepository stores processed items in the crafted_items table.
// Resolved modifiers are kept as a JSONB document.
type ItemRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewItemRepository creates a new ItemRepository.
func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool, now: time.Now}
}

// Save inserts or replaces item by ID and stamps StoredAt.
func (r *ItemRepository) Save(ctx context.Context, item *model.Item) error {
	item.StoredAt = r.stamp()
	if _, err := r.pool.Exec(ctx, upsertItemSQL, itemArgs(item)...); err != nil {
		return fmt.Errorf("saving item %s: %w", item.ID, err)
	}
	return nil
}

// SaveBatch saves items in a single transaction.
func (r *ItemRepository) SaveBatch(ctx context.Context, items []*model.Item) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	storedAt := r.stamp()
	batch := &pgx.Batch{}
	for _, it := range items {
		it.StoredAt = storedAt
		batch.Queue(upsertItemSQL, itemArgs(it)...)
	}

	br := tx.SendBatch(ctx, batch)
	for _, it := range items {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return fmt.Errorf("saving item %s: %w", it.ID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close item batch: %w", err)
	}

	return tx.Commit(ctx)
}

// Load returns the stored item with the given ID.
func (r *ItemRepository) Load(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	row := r.pool.QueryRow(ctx, selectItemSQL+` WHERE id = $1`, id)
	item, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading item %s: %w", id, err)
	}
	return item, nil
}

// LoadByFileName returns stored items saved under name, newest first.
func (r *ItemRepository) LoadByFileName(ctx context.Context, name string) ([]*model.Item, error) {
	rows, err := r.pool.Query(ctx, selectItemSQL+` WHERE file_name = $1 ORDER BY stored_at DESC, id`, name)
	if err != nil {
		return nil, fmt.Errorf("querying items named %q: %w", name, err)
	}
	defer rows.Close()

	var items []*model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item rows: %w", err)
	}
	return items, nil
}

// List returns summaries of all stored items, newest first.
func (r *ItemRepository) List(ctx context.Context) ([]ItemSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, file_name, class_name, stored_at
		 FROM crafted_items
		 ORDER BY stored_at DESC, file_name`)
	if err != nil {
		return nil, fmt.Errorf("querying stored items: %w", err)
	}
	defer rows.Close()

	var out []ItemSummary
	for rows.Next() {
		var s ItemSummary
		if err := rows.Scan(&s.ID, &s.FileName, &s.ClassName, &s.StoredAt); err != nil {
			return nil, fmt.Errorf("scanning item summary: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item summaries: %w", err)
	}
	return out, nil
}

// Delete removes the stored item with the given ID.
func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM crafted_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting item %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return nil
}

// Postgres keeps microseconds.
func (r *ItemRepository) stamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

func itemArgs(it *model.Item) []any {
	mods := it.Mods
	if mods == nil {
		mods = []model.DisplayMod{}
	}
	return []any{
		it.ID, it.FileName, it.Metadata, it.BaseName, it.ClassName, it.Width, it.Height,
		it.Identified, it.IsMirrored, it.ItemLevel, it.Rarity.String(), it.RequiredLevel, it.UniqueName,
		nonNil(it.Tags), nonNil(it.MoreTagsFromPath),
		it.Requirements.Strength, it.Requirements.Dexterity, it.Requirements.Intelligence,
		it.Quality, it.ResourcePath, mods, it.StoredAt,
	}
}

func scanItem(row pgx.Row) (*model.Item, error) {
	var (
		it     model.Item
		rarity string
	)
	err := row.Scan(
		&it.ID, &it.FileName, &it.Metadata, &it.BaseName, &it.ClassName, &it.Width, &it.Height,
		&it.Identified, &it.IsMirrored, &it.ItemLevel, &rarity, &it.RequiredLevel, &it.UniqueName,
		&it.Tags, &it.MoreTagsFromPath,
		&it.Requirements.Strength, &it.Requirements.Dexterity, &it.Requirements.Intelligence,
		&it.Quality, &it.ResourcePath, &it.Mods, &it.StoredAt,
	)
	if err != nil {
		return nil, err
	}
	if err := it.Rarity.UnmarshalText([]byte(rarity)); err != nil {
		return nil, err
	}
	return &it, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
