package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-vote-api/internal/dto"
	"github.com/noah-isme/sma-vote-api/internal/models"
	"github.com/noah-isme/sma-vote-api/pkg/response"
)

type ballotService interface {
	Status(ctx context.Context) (*dto.StatusResponse, error)
	VerifyCode(ctx context.Context, req dto.VerifyCodeRequest) (*dto.VerifyCodeResponse, error)
	CastVote(ctx context.Context, req dto.CastVoteRequest) (*dto.CastVoteResponse, error)
	Candidates(ctx context.Context) ([]models.PublicCandidate, error)
}

// BallotHandler serves the voting terminal endpoints.
type BallotHandler struct {
	service ballotService
}

// NewBallotHandler constructs a ballot handler.
func NewBallotHandler(svc ballotService) *BallotHandler {
	return &BallotHandler{service: svc}
}

// CheckStatus godoc
// @Summary Election status and branding
// @Tags Voting
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Failure 500 {object} errors.Error
// @Router /check-status [get]
func (h *BallotHandler) CheckStatus(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, status)
}

// VerifyCode godoc
// @Summary Validate an access code before voting
// @Tags Voting
// @Accept json
// @Produce json
// @Param x-vote-password header string false "Terminal password"
// @Param payload body dto.VerifyCodeRequest true "Access code"
// @Success 200 {object} dto.VerifyCodeResponse
// @Failure 400 {object} errors.Error
// @Failure 401 {object} errors.Error
// @Failure 403 {object} errors.Error
// @Failure 404 {object} errors.Error
// @Router /verify-code [post]
func (h *BallotHandler) VerifyCode(c *gin.Context) {
	if !allowMethods(c, http.MethodPost) {
		return
	}
	var req dto.VerifyCodeRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	resp, err := h.service.VerifyCode(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// CastVote godoc
// @Summary Cast a vote
// @Tags Voting
// @Accept json
// @Produce json
// @Param x-vote-password header string false "Terminal password"
// @Param payload body dto.CastVoteRequest true "Ballot"
// @Success 200 {object} dto.CastVoteResponse
// @Failure 400 {object} errors.Error
// @Failure 401 {object} errors.Error
// @Failure 500 {object} errors.Error
// @Router /cast-vote [post]
func (h *BallotHandler) CastVote(c *gin.Context) {
	if !allowMethods(c, http.MethodPost) {
		return
	}
	var req dto.CastVoteRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	resp, err := h.service.CastVote(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// Candidates godoc
// @Summary List candidates on the ballot
// @Tags Voting
// @Produce json
// @Success 200 {object} map[string][]models.PublicCandidate
// @Router /get-candidates [get]
func (h *BallotHandler) Candidates(c *gin.Context) {
	candidates, err := h.service.Candidates(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"candidates": candidates})
}
