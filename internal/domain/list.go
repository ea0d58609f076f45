package domain

import "context"

// List is an ordered column on a board.
type List struct {
	ID        string  `json:"id"`
	BoardID   string  `json:"boardId"`
	Name      string  `json:"name"`
	Position  float64 `json:"position"`
	Color     *string `json:"color"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// ListPatch is the typed field diff accepted for list changes.
type ListPatch struct {
	Name     Optional[string]  `json:"name" validate:"omitempty,max=255"`
	Position Optional[float64] `json:"position"`
	Color    Optional[string]  `json:"color" validate:"omitempty,max=64"`
	ClientStamps
}

// ChangedFields lists the patch keys present in the payload.
func (p *ListPatch) ChangedFields() []string {
	return presentFields(
		namedField{"name", p.Name},
		namedField{"position", p.Position},
		namedField{"color", p.Color},
	)
}

// ListRepository defines the interface for list storage
type ListRepository interface {
	Create(ctx context.Context, list *List) error
	GetByID(ctx context.Context, id string) (*List, error)
	ListByBoard(ctx context.Context, boardID string) ([]List, error)
	Update(ctx context.Context, id string, patch *ListPatch, updatedAt, guard string) error
	Delete(ctx context.Context, id string) error
}
