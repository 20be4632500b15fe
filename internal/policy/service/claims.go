package service

import (
	"context"

	"seguros/internal/platform/audit"
	"seguros/internal/policy/models"
	"seguros/pkg/errors"
)

// RegisterClaim appends a PENDING claim to the parent policy and returns it.
//
// Claim ids are not checked for uniqueness within the policy: duplicates are
// allowed and processing resolves them first-match-wins in filing order.
func (s *Service) RegisterClaim(ctx context.Context, claimID, policyID, description, amount string) (*models.Claim, error) {
	ctx, span := s.tracer.Start(ctx, "claim.register")
	defer span.End()

	policy, err := s.readPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}

	claim := models.Claim{
		ID:          claimID,
		Description: description,
		Amount:      amount,
		Status:      models.ClaimStatusPending,
		FiledAt:     timestamp(ctx),
	}
	policy.Claims = append(policy.Claims, claim)

	if err := s.writePolicy(ctx, policy); err != nil {
		return nil, err
	}

	s.metrics.IncClaimsRegistered()
	s.emit(ctx, audit.EventClaimRegistered, policyID, claimID)
	s.logger.InfoContext(ctx, "claim registered", "policy_id", policyID, "claim_id", claimID)
	return &claim, nil
}

// ProcessClaim records a processing outcome on the first claim matching
// claimID and returns the updated claim. Any non-empty status string is a
// valid outcome, and a claim may be re-processed; neither is guarded.
func (s *Service) ProcessClaim(ctx context.Context, claimID, policyID, status, comment string) (*models.Claim, error) {
	ctx, span := s.tracer.Start(ctx, "claim.process")
	defer span.End()

	if status == "" {
		return nil, errors.New(errors.CodeBadRequest, "claim status is required")
	}

	policy, err := s.readPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range policy.Claims {
		if policy.Claims[i].ID == claimID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errors.Newf(errors.CodeNotFound, "claim %s does not exist for policy %s", claimID, policyID)
	}

	policy.Claims[idx].Status = models.ClaimStatus(status)
	policy.Claims[idx].Comment = comment
	policy.Claims[idx].ProcessedAt = timestamp(ctx)

	if err := s.writePolicy(ctx, policy); err != nil {
		return nil, err
	}

	s.metrics.IncClaimsProcessed()
	s.emit(ctx, audit.EventClaimProcessed, policyID, claimID)
	s.logger.InfoContext(ctx, "claim processed",
		"policy_id", policyID, "claim_id", claimID, "status", status)

	claim := policy.Claims[idx]
	return &claim, nil
}
