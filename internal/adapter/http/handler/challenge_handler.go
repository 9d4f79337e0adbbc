package handler

import (
	"dare-escrow/internal/adapter/http/dto"
	"dare-escrow/internal/adapter/http/middleware"
	"dare-escrow/internal/core/domain"
	"dare-escrow/internal/core/ports"
	"dare-escrow/pkg/apperror"
	"dare-escrow/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChallengeHandler handles the challenge lifecycle endpoints.
type ChallengeHandler struct {
	escrowSvc ports.EscrowService
}

// NewChallengeHandler creates a new ChallengeHandler.
func NewChallengeHandler(escrowSvc ports.EscrowService) *ChallengeHandler {
	return &ChallengeHandler{escrowSvc: escrowSvc}
}

// callerID extracts the authenticated account ID set by middleware.Identity.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(middleware.CtxAccountID)
	if !ok {
		response.Error(c, apperror.ErrNotAuthorized())
		return uuid.Nil, false
	}
	return v.(uuid.UUID), true
}

// challengeParam parses the :id path parameter.
func challengeParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("malformed challenge id"))
		return uuid.Nil, false
	}
	return id, true
}

// Create handles POST /api/v1/challenges.
func (h *ChallengeHandler) Create(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	var targetID *uuid.UUID
	if req.TargetID != nil && *req.TargetID != "" {
		id, err := uuid.Parse(*req.TargetID)
		if err != nil {
			response.Error(c, apperror.Validation("malformed target_id"))
			return
		}
		targetID = &id
	}

	challenge, err := h.escrowSvc.CreateChallenge(c.Request.Context(), ports.CreateChallengeRequest{
		CreatorID:    accountID,
		Kind:         domain.ChallengeKind(req.Kind),
		Title:        req.Title,
		Category:     req.Category,
		Reward:       req.Reward,
		DurationSpec: req.Duration,
		TargetID:     targetID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.FromChallenge(challenge))
}

// Get handles GET /api/v1/challenges/:id.
func (h *ChallengeHandler) Get(c *gin.Context) {
	challengeID, ok := challengeParam(c)
	if !ok {
		return
	}

	challenge, err := h.escrowSvc.GetChallenge(c.Request.Context(), challengeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromChallenge(challenge))
}

// Join handles POST /api/v1/challenges/:id/join.
func (h *ChallengeHandler) Join(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		return
	}
	challengeID, ok := challengeParam(c)
	if !ok {
		return
	}

	p, err := h.escrowSvc.JoinChallenge(c.Request.Context(), challengeID, accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.FromParticipation(p))
}

// SubmitProof handles POST /api/v1/challenges/:id/proof.
func (h *ChallengeHandler) SubmitProof(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		return
	}
	challengeID, ok := challengeParam(c)
	if !ok {
		return
	}

	var req dto.SubmitProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	err := h.escrowSvc.SubmitProof(c.Request.Context(), ports.SubmitProofRequest{
		ChallengeID: challengeID,
		AccountID:   accountID,
		ProofRef:    req.ProofRef,
		Note:        req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"status": string(domain.ParticipationStatusPendingReview)})
}

// Verify handles POST /api/v1/challenges/:id/verify.
func (h *ChallengeHandler) Verify(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		return
	}
	challengeID, ok := challengeParam(c)
	if !ok {
		return
	}

	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	participantID, err := uuid.Parse(req.ParticipantID)
	if err != nil {
		response.Error(c, apperror.Validation("malformed participant_id"))
		return
	}

	err = h.escrowSvc.Verify(c.Request.Context(), ports.VerifyRequest{
		ChallengeID:   challengeID,
		CreatorID:     accountID,
		ParticipantID: participantID,
		Approve:       req.Approve,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Ignore handles POST /api/v1/challenges/:id/ignore.
func (h *ChallengeHandler) Ignore(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		return
	}
	challengeID, ok := challengeParam(c)
	if !ok {
		return
	}

	if err := h.escrowSvc.Ignore(c.Request.Context(), challengeID, accountID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
