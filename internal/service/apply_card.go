package service

import (
	"context"
	"fmt"

	"github.com/Rrens/boardsync/internal/domain"
	"github.com/Rrens/boardsync/internal/permission"
)

func (s *SyncService) applyCardChange(ctx context.Context, userID string, change domain.SyncChange, guard string) (*ApplyOutcome, error) {
	switch change.Operation {
	case domain.OpCreate:
		if !change.HasData() {
			return nil, domain.ErrMissingData
		}
		if change.ParentID == "" {
			return nil, domain.ErrMissingParent
		}
		parent := domain.EntityRef{Type: domain.EntityList, ID: change.ParentID}
		if err := s.requireRole(ctx, userID, parent, permission.CanEditCards); err != nil {
			return nil, err
		}
		patch, err := decodeCardPatch(change)
		if err != nil {
			return nil, err
		}
		created, updated, err := createStamps(patch.ClientStamps, timestamp(s.now))
		if err != nil {
			return nil, err
		}

		card := &domain.Card{
			ID:                change.EntityID,
			ListID:            change.ParentID,
			Title:             orDefault(patch.Title, "Untitled Card"),
			Description:       nonEmpty(patch.Description),
			Position:          patch.Position.Or(0),
			Type:              nonEmpty(patch.Type),
			Prompt:            nonEmpty(patch.Prompt),
			Rating:            patch.Rating.Ptr(),
			AITool:            nonEmpty(patch.AITool),
			Tags:              patch.Tags.Or(nil),
			DueDate:           nonEmpty(patch.DueDate),
			Links:             patch.Links.Or(nil),
			Responsible:       nonEmpty(patch.Responsible),
			ResponsibleUserID: nonEmpty(patch.ResponsibleUserID),
			JobNumber:         nonEmpty(patch.JobNumber),
			Severity:          nonEmpty(patch.Severity),
			Priority:          nonEmpty(patch.Priority),
			Effort:            nonEmpty(patch.Effort),
			Attendees:         patch.Attendees.Or(nil),
			MeetingDate:       nonEmpty(patch.MeetingDate),
			Checklist:         patch.Checklist.Or(nil),
			IsArchived:        patch.IsArchived.Or(false),
			Thumbnail:         nonEmpty(patch.Thumbnail),
			CreatedAt:         created,
			UpdatedAt:         updated,
		}
		if err := s.repos.Cards.Create(ctx, card); err != nil {
			return nil, err
		}
		return &ApplyOutcome{Action: domain.ActivityCreated, Name: card.Title}, nil

	case domain.OpUpdate:
		if !change.HasData() {
			return nil, domain.ErrMissingData
		}
		if err := s.requireRole(ctx, userID, change.Ref(), permission.CanEditCards); err != nil {
			return nil, err
		}
		patch, err := decodeCardPatch(change)
		if err != nil {
			return nil, err
		}

		current, err := s.repos.Cards.GetByID(ctx, change.EntityID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, domain.ErrPermissionDenied
		}

		outcome := &ApplyOutcome{
			Action: domain.ActivityUpdated,
			Name:   patch.Title.Or(current.Title),
			Fields: patch.ChangedFields(),
		}

		if patch.ListID.Set {
			target := patch.ListID.Or("")
			if target == "" {
				return nil, &domain.ValidationError{Field: "listId", Message: "cannot be cleared"}
			}
			if target == current.ListID {
				patch.ListID = domain.Optional[string]{}
			} else {
				if err := s.checkCardMove(ctx, userID, target); err != nil {
					return nil, err
				}
				outcome.Action = domain.ActivityMoved
				outcome.FromListID = current.ListID
				outcome.ToListID = target
			}
		}

		if err := s.repos.Cards.Update(ctx, change.EntityID, patch, timestamp(s.now), guard); err != nil {
			return nil, err
		}
		return outcome, nil

	case domain.OpDelete:
		if err := s.requireRole(ctx, userID, change.Ref(), permission.CanEditCards); err != nil {
			return nil, err
		}
		current, err := s.repos.Cards.GetByID(ctx, change.EntityID)
		if err != nil {
			return nil, err
		}
		if err := s.repos.Cards.Delete(ctx, change.EntityID); err != nil {
			return nil, err
		}
		outcome := &ApplyOutcome{Action: domain.ActivityDeleted}
		if current != nil {
			outcome.Name = current.Title
		}
		return outcome, nil
	}

	return nil, unknownOperation(change.Operation)
}

// checkCardMove requires edit rights on the destination list's board.
func (s *SyncService) checkCardMove(ctx context.Context, userID, listID string) error {
	role, err := s.resolveRole(ctx, userID, domain.EntityRef{Type: domain.EntityList, ID: listID})
	if err != nil {
		return err
	}
	if role == domain.RoleNone {
		return domain.ErrTargetNotFound
	}
	if !permission.CanEditCards(role) {
		return domain.ErrPermissionDenied
	}
	return nil
}

func decodeCardPatch(change domain.SyncChange) (*domain.CardPatch, error) {
	patch, err := decodePatch[domain.CardPatch](change.Data)
	if err != nil {
		return nil, err
	}

	if patch.Rating.Valid && (patch.Rating.Value < 1 || patch.Rating.Value > 5) {
		return nil, &domain.ValidationError{Field: "rating", Message: "must be between 1 and 5"}
	}
	for i, item := range patch.Checklist.Value {
		if item.ID == "" {
			return nil, &domain.ValidationError{Field: fmt.Sprintf("checklist[%d].id", i), Message: "is required"}
		}
	}

	return patch, nil
}
