package domain

import "context"

// ChecklistItem is one entry of a card checklist.
type ChecklistItem struct {
	ID      string `json:"id" validate:"required,max=255"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// Card is a unit of work inside a list.
type Card struct {
	ID                string          `json:"id"`
	ListID            string          `json:"listId"`
	Title             string          `json:"title"`
	Description       *string         `json:"description"`
	Position          float64         `json:"position"`
	Type              *string         `json:"type"`
	Prompt            *string         `json:"prompt"`
	Rating            *int            `json:"rating"`
	AITool            *string         `json:"aiTool"`
	Tags              []string        `json:"tags"`
	DueDate           *string         `json:"dueDate"`
	Links             []string        `json:"links"`
	Responsible       *string         `json:"responsible"`
	ResponsibleUserID *string         `json:"responsibleUserId"`
	ResponsibleName   *string         `json:"responsibleName,omitempty"`
	ResponsibleLabel  string          `json:"responsibleLabel,omitempty"`
	JobNumber         *string         `json:"jobNumber"`
	Severity          *string         `json:"severity"`
	Priority          *string         `json:"priority"`
	Effort            *string         `json:"effort"`
	Attendees         []string        `json:"attendees"`
	MeetingDate       *string         `json:"meetingDate"`
	Checklist         []ChecklistItem `json:"checklist"`
	IsArchived        bool            `json:"isArchived"`
	Thumbnail         *string         `json:"thumbnail"`
	CreatedAt         string          `json:"createdAt"`
	UpdatedAt         string          `json:"updatedAt"`
}

// DisplayResponsible prefers the linked user's name over the legacy free text.
func (c *Card) DisplayResponsible() string {
	if c.ResponsibleUserID != nil && c.ResponsibleName != nil && *c.ResponsibleName != "" {
		return *c.ResponsibleName
	}
	if c.Responsible != nil {
		return *c.Responsible
	}
	return ""
}

// CardPatch is the typed field diff accepted for card changes.
// ListID moves the card to another list.
type CardPatch struct {
	Title             Optional[string]          `json:"title" validate:"omitempty,max=1024"`
	Description       Optional[string]          `json:"description"`
	Position          Optional[float64]         `json:"position"`
	Type              Optional[string]          `json:"type" validate:"omitempty,max=64"`
	Prompt            Optional[string]          `json:"prompt"`
	Rating            Optional[int]             `json:"rating" validate:"omitempty,min=1,max=5"`
	AITool            Optional[string]          `json:"aiTool" validate:"omitempty,max=255"`
	Tags              Optional[[]string]        `json:"tags"`
	DueDate           Optional[string]          `json:"dueDate" validate:"omitempty,max=40"`
	Links             Optional[[]string]        `json:"links"`
	Responsible       Optional[string]          `json:"responsible" validate:"omitempty,max=255"`
	ResponsibleUserID Optional[string]          `json:"responsibleUserId" validate:"omitempty,max=64"`
	JobNumber         Optional[string]          `json:"jobNumber" validate:"omitempty,max=255"`
	Severity          Optional[string]          `json:"severity" validate:"omitempty,max=64"`
	Priority          Optional[string]          `json:"priority" validate:"omitempty,max=64"`
	Effort            Optional[string]          `json:"effort" validate:"omitempty,max=64"`
	Attendees         Optional[[]string]        `json:"attendees"`
	MeetingDate       Optional[string]          `json:"meetingDate" validate:"omitempty,max=40"`
	Checklist         Optional[[]ChecklistItem] `json:"checklist"`
	IsArchived        Optional[bool]            `json:"isArchived"`
	Thumbnail         Optional[string]          `json:"thumbnail" validate:"omitempty,max=2048"`
	ListID            Optional[string]          `json:"listId"`
	ClientStamps
}

// ChangedFields lists the patch keys present in the payload.
func (p *CardPatch) ChangedFields() []string {
	return presentFields(
		namedField{"title", p.Title},
		namedField{"description", p.Description},
		namedField{"position", p.Position},
		namedField{"type", p.Type},
		namedField{"prompt", p.Prompt},
		namedField{"rating", p.Rating},
		namedField{"aiTool", p.AITool},
		namedField{"tags", p.Tags},
		namedField{"dueDate", p.DueDate},
		namedField{"links", p.Links},
		namedField{"responsible", p.Responsible},
		namedField{"responsibleUserId", p.ResponsibleUserID},
		namedField{"jobNumber", p.JobNumber},
		namedField{"severity", p.Severity},
		namedField{"priority", p.Priority},
		namedField{"effort", p.Effort},
		namedField{"attendees", p.Attendees},
		namedField{"meetingDate", p.MeetingDate},
		namedField{"checklist", p.Checklist},
		namedField{"isArchived", p.IsArchived},
		namedField{"thumbnail", p.Thumbnail},
		namedField{"listId", p.ListID},
	)
}

// CardRepository defines the interface for card storage
type CardRepository interface {
	Create(ctx context.Context, card *Card) error
	GetByID(ctx context.Context, id string) (*Card, error)
	ListByBoard(ctx context.Context, boardID string) ([]Card, error)
	Update(ctx context.Context, id string, patch *CardPatch, updatedAt, guard string) error
	Delete(ctx context.Context, id string) error
}
