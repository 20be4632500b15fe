package service

import (
	"context"
	"encoding/json"

	"seguros/internal/policy/models"
	"seguros/pkg/errors"
)

// History projects the substrate's change stream for a policy key into an
// oldest-first sequence of normalized entries. A pure read: it mutates
// nothing and never shares a transaction with policy writes.
//
// Entries whose bytes decode as a policy carry the structured record; any
// other payload is kept as raw text. A key that was never written is
// not-found, consistent with the other reads.
func (s *Service) History(ctx context.Context, id string) ([]models.HistoryEntry, error) {
	ctx, span := s.tracer.Start(ctx, "policy.history")
	defer span.End()

	iter, err := s.ledger.History(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, err.Error())
	}
	defer func() { _ = iter.Close() }()

	entries := []models.HistoryEntry{}
	for {
		mod, err := iter.Next()
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, err.Error())
		}
		if mod == nil {
			break
		}
		if len(mod.Value) == 0 && !mod.IsDelete {
			continue
		}

		entry := models.HistoryEntry{
			TxID:      mod.TxID,
			Timestamp: mod.Timestamp.UTC().Format(timeFormat),
			IsDelete:  mod.IsDelete,
		}
		var record models.Policy
		if err := json.Unmarshal(mod.Value, &record); err == nil {
			entry.Value = models.HistoryValue{Record: &record}
		} else {
			entry.Value = models.HistoryValue{Raw: string(mod.Value)}
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, errors.Newf(errors.CodeNotFound, "policy %s does not exist", id)
	}
	return entries, nil
}
