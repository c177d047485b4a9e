package journal

import (
	"context"

	"github.com/Arthur-so/Decentralized-scientific-journal/internal/models"
)

// AddEditor grants the editor role. Only the owner may call it. Granting a
// role an identity already holds is a no-op success and appends nothing.
func (e *Engine) AddEditor(ctx context.Context, caller, id models.Identity) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.owner {
		return ErrUnauthorized
	}
	if e.editors[id] {
		return nil
	}
	return e.grant(ctx, caller, models.RoleEditor, id)
}

// AddAuthor grants the author role. Editors only.
func (e *Engine) AddAuthor(ctx context.Context, caller, id models.Identity) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.editors[caller] {
		return ErrUnauthorized
	}
	if e.authors[id] {
		return nil
	}
	return e.grant(ctx, caller, models.RoleAuthor, id)
}

// AddReviewer grants the reviewer role. Editors only.
func (e *Engine) AddReviewer(ctx context.Context, caller, id models.Identity) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.editors[caller] {
		return ErrUnauthorized
	}
	if e.reviewers[id] {
		return nil
	}
	return e.grant(ctx, caller, models.RoleReviewer, id)
}

func (e *Engine) grant(ctx context.Context, caller models.Identity, role models.Role, id models.Identity) error {
	event, err := models.NewEvent(models.EventRoleGranted, caller, models.RoleGrantedPayload{
		Role:    role,
		Grantee: id,
	})
	if err != nil {
		return err
	}
	return e.commit(ctx, []*models.Event{event})
}
