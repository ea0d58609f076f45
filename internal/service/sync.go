package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Rrens/boardsync/internal/domain"
	"github.com/Rrens/boardsync/internal/permission"
)

// ApplyOutcome describes an applied change for the activity trail
type ApplyOutcome struct {
	Action     string
	Name       string
	Fields     []string
	FromListID string
	ToListID   string
}

// SyncService applies client change batches
type SyncService struct {
	repos    Repositories
	resolver RoleResolver
	activity *ActivityLogger
	now      func() time.Time
}

// NewSyncService creates a new sync service
func NewSyncService(repos Repositories, resolver RoleResolver, activity *ActivityLogger) *SyncService {
	return &SyncService{
		repos:    repos,
		resolver: resolver,
		activity: activity,
		now:      time.Now,
	}
}

// Apply processes changes in client timestamp order, one at a time. A failed
// or conflicting change never stops the rest of the batch.
func (s *SyncService) Apply(ctx context.Context, userID string, changes []domain.SyncChange) *domain.SyncResult {
	ordered := make([]domain.SyncChange, len(changes))
	copy(ordered, changes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Clock() < ordered[j].Clock()
	})

	result := &domain.SyncResult{}
	for _, change := range ordered {
		s.process(ctx, userID, change, result)
	}

	result.Success = len(result.FailedChanges) == 0 && len(result.Conflicts) == 0
	result.ServerVersion = s.now().UnixMilli()

	log.Info().
		Str("user_id", userID).
		Int("changes", len(changes)).
		Int("applied", result.AppliedCount).
		Int("failed", len(result.FailedChanges)).
		Int("conflicts", len(result.Conflicts)).
		Msg("Sync batch processed")

	return result
}

func (s *SyncService) process(ctx context.Context, userID string, change domain.SyncChange, result *domain.SyncResult) {
	logger := log.With().
		Str("user_id", userID).
		Str("entity_type", string(change.EntityType)).
		Str("entity_id", change.EntityID).
		Str("operation", string(change.Operation)).
		Logger()

	fail := func(err error) {
		logger.Debug().Err(err).Msg("Change failed")
		result.FailedChanges = append(result.FailedChanges, domain.FailedChange{Change: change, Error: err.Error()})
	}

	conflict, guard, err := s.checkConflict(ctx, userID, change)
	if err != nil {
		fail(err)
		return
	}
	if conflict != nil {
		logger.Debug().Str("server_updated_at", conflict.ServerUpdatedAt).Msg("Change conflicts with server state")
		result.Conflicts = append(result.Conflicts, *conflict)
		return
	}

	var outcome *ApplyOutcome
	err = s.repos.Tx.WithTx(ctx, func(ctx context.Context) error {
		var applyErr error
		outcome, applyErr = s.applyChange(ctx, userID, change, guard)
		return applyErr
	})

	if errors.Is(err, domain.ErrStaleWrite) {
		// Another writer got in between the check and the write.
		if conflict, _, cerr := s.checkConflict(ctx, userID, change); cerr == nil && conflict != nil {
			logger.Debug().Msg("Guarded write lost a race")
			result.Conflicts = append(result.Conflicts, *conflict)
			return
		}
	}
	if errors.Is(err, domain.ErrAlreadyExists) {
		err = s.duplicateError(ctx, userID, change.Ref())
	}
	if err != nil {
		fail(err)
		return
	}

	result.AppliedCount++
	logger.Debug().Msg("Change applied")

	if change.EntityType != domain.EntityList && change.EntityType != domain.EntityCard {
		return
	}
	if err := s.activity.Record(ctx, userID, change, outcome); err != nil {
		logger.Warn().Err(err).Msg("Failed to record activity")
	}
}

func (s *SyncService) applyChange(ctx context.Context, userID string, change domain.SyncChange, guard string) (*ApplyOutcome, error) {
	switch change.EntityType {
	case domain.EntityWorkspace:
		return s.applyWorkspaceChange(ctx, userID, change, guard)
	case domain.EntityBoard:
		return s.applyBoardChange(ctx, userID, change, guard)
	case domain.EntityList:
		return s.applyListChange(ctx, userID, change, guard)
	case domain.EntityCard:
		return s.applyCardChange(ctx, userID, change, guard)
	}
	return nil, fmt.Errorf("unknown entity type %q", change.EntityType)
}

func (s *SyncService) resolveRole(ctx context.Context, userID string, ref domain.EntityRef) (domain.Role, error) {
	role, err := s.resolver.ResolveRole(ctx, userID, ref)
	if err != nil {
		return domain.RoleNone, fmt.Errorf("failed to resolve role: %w", err)
	}
	return role, nil
}

// requireRole fails with ErrPermissionDenied unless allowed accepts the
// caller's role on ref. Missing entities resolve to no role.
func (s *SyncService) requireRole(ctx context.Context, userID string, ref domain.EntityRef, allowed func(domain.Role) bool) error {
	role, err := s.resolveRole(ctx, userID, ref)
	if err != nil {
		return err
	}
	if !allowed(role) {
		return domain.ErrPermissionDenied
	}
	return nil
}

// duplicateError reports a taken id as such only to callers who can already see
// the existing entity.
func (s *SyncService) duplicateError(ctx context.Context, userID string, ref domain.EntityRef) error {
	role, err := s.resolveRole(ctx, userID, ref)
	if err != nil || !permission.CanView(role) {
		return domain.ErrPermissionDenied
	}
	return domain.ErrAlreadyExists
}

func unknownOperation(op domain.Operation) error {
	return &domain.ValidationError{Field: "operation", Message: fmt.Sprintf("unknown operation %q", op)}
}
