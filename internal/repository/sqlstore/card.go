package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Rrens/boardsync/internal/domain"
)

// CardRepository handles card data access
type CardRepository struct {
	db *DB
}

// NewCardRepository creates a new card repository
func NewCardRepository(db *DB) *CardRepository {
	return &CardRepository{db: db}
}

const cardSelect = `
	SELECT c.id, c.list_id, c.title, c.description, c.position, c.type, c.prompt,
	       c.rating, c.ai_tool, c.tags, c.due_date, c.links, c.responsible,
	       c.responsible_user_id, u.name, c.job_number, c.severity, c.priority,
	       c.effort, c.attendees, c.meeting_date, c.checklist, c.is_archived,
	       c.thumbnail, c.created_at, c.updated_at
	FROM cards c
	LEFT JOIN users u ON u.id = c.responsible_user_id
`

// Create creates a new card
func (r *CardRepository) Create(ctx context.Context, card *domain.Card) error {
	tags, err := encodeArray(card.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}
	links, err := encodeArray(card.Links)
	if err != nil {
		return fmt.Errorf("failed to marshal links: %w", err)
	}
	attendees, err := encodeArray(card.Attendees)
	if err != nil {
		return fmt.Errorf("failed to marshal attendees: %w", err)
	}
	checklist, err := encodeArray(card.Checklist)
	if err != nil {
		return fmt.Errorf("failed to marshal checklist: %w", err)
	}

	var rating any
	if card.Rating != nil {
		rating = *card.Rating
	}

	query := `
		INSERT INTO cards (
			id, list_id, title, description, position, type, prompt, rating, ai_tool,
			tags, due_date, links, responsible, responsible_user_id, job_number,
			severity, priority, effort, attendees, meeting_date, checklist,
			is_archived, thumbnail, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.exec(ctx, query,
		card.ID,
		card.ListID,
		card.Title,
		nullableText(card.Description),
		card.Position,
		nullableText(card.Type),
		nullableText(card.Prompt),
		rating,
		nullableText(card.AITool),
		tags,
		nullableText(card.DueDate),
		links,
		nullableText(card.Responsible),
		nullableText(card.ResponsibleUserID),
		nullableText(card.JobNumber),
		nullableText(card.Severity),
		nullableText(card.Priority),
		nullableText(card.Effort),
		attendees,
		nullableText(card.MeetingDate),
		checklist,
		card.IsArchived,
		nullableText(card.Thumbnail),
		card.CreatedAt,
		card.UpdatedAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create card: %w", err)
	}

	return nil
}

// GetByID retrieves a card by ID with the linked responsible user's name
func (r *CardRepository) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	card, err := scanCard(r.db.queryRow(ctx, cardSelect+` WHERE c.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	return card, nil
}

// ListByBoard retrieves every card on a board ordered by list then position
func (r *CardRepository) ListByBoard(ctx context.Context, boardID string) ([]domain.Card, error) {
	query := cardSelect + `
		JOIN lists l ON l.id = c.list_id
		WHERE l.board_id = ?
		ORDER BY l.position, l.id, c.position, c.created_at, c.id
	`

	rows, err := r.db.query(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	cards := []domain.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, *card)
	}

	return cards, rows.Err()
}

// Update applies a sparse patch. A non-empty guard must match updated_at.
func (r *CardRepository) Update(ctx context.Context, id string, patch *domain.CardPatch, updatedAt, guard string) error {
	var set setList
	set.requiredText("title", patch.Title)
	set.text("description", patch.Description)
	set.float("position", patch.Position)
	set.text("type", patch.Type)
	set.text("prompt", patch.Prompt)
	set.integer("rating", patch.Rating)
	set.text("ai_tool", patch.AITool)
	set.text("due_date", patch.DueDate)
	set.text("responsible", patch.Responsible)
	set.text("responsible_user_id", patch.ResponsibleUserID)
	set.text("job_number", patch.JobNumber)
	set.text("severity", patch.Severity)
	set.text("priority", patch.Priority)
	set.text("effort", patch.Effort)
	set.text("meeting_date", patch.MeetingDate)
	set.boolean("is_archived", patch.IsArchived)
	set.text("thumbnail", patch.Thumbnail)
	if patch.ListID.Valid {
		set.add("list_id", patch.ListID.Value)
	}

	for _, err := range []error{
		setJSON(&set, "tags", patch.Tags),
		setJSON(&set, "links", patch.Links),
		setJSON(&set, "attendees", patch.Attendees),
		setJSON(&set, "checklist", patch.Checklist),
	} {
		if err != nil {
			return err
		}
	}

	if err := r.db.update(ctx, "cards", id, &set, updatedAt, guard); err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}

	return nil
}

// Delete removes a card and its comments
func (r *CardRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		if _, err := r.db.exec(ctx, `DELETE FROM comments WHERE card_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete card comments: %w", err)
		}

		if err := r.db.deleteRow(ctx, "cards", id); err != nil {
			return fmt.Errorf("failed to delete card: %w", err)
		}
		return nil
	})
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var (
		card                                     domain.Card
		description, cardType, prompt, aiTool    sql.NullString
		tags, links, attendees, checklist        sql.NullString
		dueDate, responsible, responsibleUserID  sql.NullString
		responsibleName, jobNumber, severity     sql.NullString
		priority, effort, meetingDate, thumbnail sql.NullString
		rating                                   sql.NullInt64
	)

	err := row.Scan(
		&card.ID,
		&card.ListID,
		&card.Title,
		&description,
		&card.Position,
		&cardType,
		&prompt,
		&rating,
		&aiTool,
		&tags,
		&dueDate,
		&links,
		&responsible,
		&responsibleUserID,
		&responsibleName,
		&jobNumber,
		&severity,
		&priority,
		&effort,
		&attendees,
		&meetingDate,
		&checklist,
		&card.IsArchived,
		&thumbnail,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if card.Tags, err = decodeArray[string](tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
	}
	if card.Links, err = decodeArray[string](links); err != nil {
		return nil, fmt.Errorf("failed to unmarshal links: %w", err)
	}
	if card.Attendees, err = decodeArray[string](attendees); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attendees: %w", err)
	}
	if card.Checklist, err = decodeArray[domain.ChecklistItem](checklist); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checklist: %w", err)
	}

	card.Description = stringPtr(description)
	card.Type = stringPtr(cardType)
	card.Prompt = stringPtr(prompt)
	card.Rating = intPtr(rating)
	card.AITool = stringPtr(aiTool)
	card.DueDate = stringPtr(dueDate)
	card.Responsible = stringPtr(responsible)
	card.ResponsibleUserID = stringPtr(responsibleUserID)
	card.ResponsibleName = stringPtr(responsibleName)
	card.JobNumber = stringPtr(jobNumber)
	card.Severity = stringPtr(severity)
	card.Priority = stringPtr(priority)
	card.Effort = stringPtr(effort)
	card.MeetingDate = stringPtr(meetingDate)
	card.Thumbnail = stringPtr(thumbnail)
	return &card, nil
}
