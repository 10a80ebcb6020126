package repo

import (
	"context"
	"time"

	"github.com/roach88/hearth/internal/model"
	"github.com/roach88/hearth/internal/store"
)

// Notes is the repository for shared household notes.
type Notes struct {
	store *store.Store
	now   func() time.Time
}

// NewNotes creates a notes repository.
func NewNotes(st *store.Store) *Notes {
	return &Notes{store: st, now: time.Now}
}

// NewNote holds the caller-supplied fields for Create.
type NewNote struct {
	Title   string
	Content string
	Author  string
	Type    string // defaults to "general"
	Pinned  bool
}

// NotePatch is a partial update; nil fields are left unchanged.
type NotePatch struct {
	Title   *string
	Content *string
	Type    *string
	Pinned  *bool
}

// List returns all notes. Order is unspecified; callers sort.
func (r *Notes) List(ctx context.Context) ([]model.Note, error) {
	return listAll[model.Note](ctx, r.store, store.CollectionNotes)
}

// Get returns one note by id.
func (r *Notes) Get(ctx context.Context, id string) (model.Note, error) {
	return getOne[model.Note](ctx, r.store, store.CollectionNotes, id)
}

// Create stamps an id and timestamp and persists the note.
func (r *Notes) Create(ctx context.Context, n NewNote) (model.Note, error) {
	noteType := n.Type
	if noteType == "" {
		noteType = "general"
	}

	note := model.Note{
		ID:        store.NewRecordID(),
		Title:     n.Title,
		Content:   n.Content,
		Author:    n.Author,
		Timestamp: r.now(),
		Type:      noteType,
		Pinned:    n.Pinned,
	}
	if err := addOne(ctx, r.store, store.CollectionNotes, note.ID, note); err != nil {
		return model.Note{}, err
	}
	return note, nil
}

// Update merges a patch onto the existing note. Fails with NOT_FOUND if the
// id does not exist.
func (r *Notes) Update(ctx context.Context, id string, patch NotePatch) (model.Note, error) {
	note, err := r.Get(ctx, id)
	if err != nil {
		return model.Note{}, err
	}

	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		note.Content = *patch.Content
	}
	if patch.Type != nil {
		note.Type = *patch.Type
	}
	if patch.Pinned != nil {
		note.Pinned = *patch.Pinned
	}

	if err := putOne(ctx, r.store, store.CollectionNotes, id, note); err != nil {
		return model.Note{}, err
	}
	return note, nil
}

// Delete removes a note. Idempotent.
func (r *Notes) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, store.CollectionNotes, id)
}

// React upserts a reaction. A note holds at most one entry per
// (emoji, author) pair: reacting again replaces the entry, so the second
// timestamp wins and the pair is never duplicated.
func (r *Notes) React(ctx context.Context, id, emoji, author string) (model.Note, error) {
	note, err := r.Get(ctx, id)
	if err != nil {
		return model.Note{}, err
	}

	emoji = normKey(emoji)
	author = normKey(author)

	if note.Reactions == nil {
		note.Reactions = make(map[string][]model.Reaction)
	}

	entry := model.Reaction{Author: author, ReactedAt: r.now()}
	entries := note.Reactions[emoji]
	replaced := false
	for i := range entries {
		if entries[i].Author == author {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}
	note.Reactions[emoji] = entries

	if err := putOne(ctx, r.store, store.CollectionNotes, id, note); err != nil {
		return model.Note{}, err
	}
	return note, nil
}

// RemoveReaction deletes the (emoji, author) entry if present. Removing an
// absent reaction is a no-op.
func (r *Notes) RemoveReaction(ctx context.Context, id, emoji, author string) (model.Note, error) {
	note, err := r.Get(ctx, id)
	if err != nil {
		return model.Note{}, err
	}

	emoji = normKey(emoji)
	author = normKey(author)

	entries := note.Reactions[emoji]
	for i := range entries {
		if entries[i].Author == author {
			entries = append(entries[:i], entries[i+1:]...)
			break
		}
	}
	if len(entries) == 0 {
		delete(note.Reactions, emoji)
	} else {
		note.Reactions[emoji] = entries
	}

	if err := putOne(ctx, r.store, store.CollectionNotes, id, note); err != nil {
		return model.Note{}, err
	}
	return note, nil
}
