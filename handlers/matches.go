package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/miharina-tech/miharina_backend/config"
	"github.com/miharina-tech/miharina_backend/mailer"
	"github.com/miharina-tech/miharina_backend/matching"
	"github.com/miharina-tech/miharina_backend/models"
	"github.com/miharina-tech/miharina_backend/utils"
)

// FindMatches runs the scoring engine over the candidate pool for the
// caller's business. type=businesses (default) or opportunities; sectors
// narrows the pool filter.
func FindMatches(c *gin.Context) {
	ctx := c.Request.Context()
	businessId, _ := utils.GetBusinessIdFromContext(ctx)

	source, err := models.GetBusinessProfileById(ctx, businessId)
	if err != nil {
		respondModelError(c, err, utils.MsgBusinessProfileNotFound)
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	sectors := utils.SplitAndTrim(c.Query("sectors"))
	strategy := matching.StrategyFromEnv()
	now := time.Now().UTC()

	sourceCandidate := matching.CandidateFromProfile(source)

	var results []matching.Result
	matchType := c.DefaultQuery("type", "businesses")
	switch matchType {
	case "opportunities":
		opps, err := models.FindCandidateOpportunities(ctx, source, sectors)
		if err != nil {
			respondModelError(c, err, utils.MsgOpportunityNotFound)
			return
		}

		// batch-load creator profiles for their regions
		creatorIds := make([]string, 0, len(opps))
		for _, o := range opps {
			creatorIds = append(creatorIds, o.CreatedBy.String())
		}
		creators, err := models.GetBusinessProfilesByUserIds(ctx, creatorIds)
		if err != nil {
			respondModelError(c, err, utils.MsgInternalError)
			return
		}

		pool := make([]matching.Candidate, 0, len(opps))
		for _, o := range opps {
			var region models.Region
			if creator, ok := creators[o.CreatedBy.String()]; ok {
				region = creator.Region
			}
			pool = append(pool, matching.CandidateFromOpportunity(o, region))
		}
		results = strategy.Rank(sourceCandidate, pool, now, limit)
	default:
		profiles, err := models.FindCandidateProfiles(ctx, source, sectors)
		if err != nil {
			respondModelError(c, err, utils.MsgBusinessProfileNotFound)
			return
		}
		pool := make([]matching.Candidate, 0, len(profiles))
		for _, p := range profiles {
			pool = append(pool, matching.CandidateFromProfile(p))
		}
		results = strategy.Rank(sourceCandidate, pool, now, limit)
	}

	out := make([]gin.H, 0, len(results))
	for _, r := range results {
		out = append(out, gin.H{
			"target_id":        r.Candidate.ID,
			"score":            r.Score,
			"reasons":          r.Reasons,
			"matched_criteria": r.MatchedCriteria,
		})
	}
	c.JSON(http.StatusOK, gin.H{"type": matchType, "matches": out})
}

// CreateMatch persists a match (upsert per pair), publishes the event and
// notifies the counterparty by email, both best-effort.
func CreateMatch(c *gin.Context) {
	lang := requestLanguage(c)
	ctx := c.Request.Context()
	userId, _ := utils.GetUserIdFromContext(ctx)
	businessId, _ := utils.GetBusinessIdFromContext(ctx)

	var input models.NewMatch
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	// only the owner creates matches on behalf of their business
	if input.SourceBusinessId != businessId {
		utils.RespondError(c, http.StatusForbidden, utils.MsgForbidden, lang)
		return
	}

	// serialize concurrent saves of the same pair; DB unique index is the
	// real guard, the lock just avoids the retry path
	lockKey := input.SourceBusinessId + ":" + string(input.TargetType) + ":" + input.TargetId
	if lock, err := utils.ObtainLock(ctx, "match", lockKey, "handlers", "CreateMatch"); err == nil {
		defer lock.Release(ctx)
	}

	match, created, err := models.SaveMatch(ctx, userId, &input)
	if err != nil {
		if utils.IsNotFound(err) {
			respondModelError(c, err, utils.MsgMatchNotFound)
			return
		}
		respondBadRequest(c, err)
		return
	}

	if created {
		correlationId, _ := utils.GetCorrelationIdFromContext(ctx)
		if _, err := config.PublishNotification(ctx, config.NotificationMessage{
			Type:          "match.created",
			UserId:        userId,
			BusinessId:    input.SourceBusinessId,
			TargetId:      input.TargetId,
			Language:      lang,
			CorrelationId: correlationId,
		}); err != nil {
			config.LogError(config.GetLogger(), "handlers", "CreateMatch", "publish event", match.ID.String(), err)
		}

		notifyMatchCounterparty(c, match)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"match": match, "created": created})
}

// notifyMatchCounterparty emails the owner of a business target in their
// preferred language. Best-effort.
func notifyMatchCounterparty(c *gin.Context, match *models.Match) {
	if match.TargetType != models.MatchTargetBusiness || !mailer.Ready() {
		return
	}
	ctx := c.Request.Context()

	target, err := models.GetBusinessProfileById(ctx, match.TargetId.String())
	if err != nil {
		return
	}
	owner, err := models.GetUserById(ctx, target.UserId.String())
	if err != nil {
		return
	}
	source, err := models.GetBusinessProfileById(ctx, match.SourceBusinessId.String())
	if err != nil {
		return
	}

	if err := mailer.SendMatchNotificationEmail(owner.Email, source.Name, match.Score, owner.PreferredLanguage); err != nil {
		config.LogError(config.GetLogger(), "handlers", "notifyMatchCounterparty", "match email", match.ID.String(), err)
	}
}

// ListMatches lists the caller's matches: direction=sent|received, optional
// status filter.
func ListMatches(c *gin.Context) {
	ctx := c.Request.Context()
	businessId, _ := utils.GetBusinessIdFromContext(ctx)

	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))

	filter := models.MatchFilter{
		Direction: c.Query("direction"),
		Status:    models.MatchStatus(c.Query("status")),
		Page:      page,
		PageSize:  pageSize,
	}

	matches, total, err := models.ListMatchesForBusiness(ctx, businessId, filter)
	if err != nil {
		respondModelError(c, err, utils.MsgMatchNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches, "total": total})
}

type matchStatusInput struct {
	Status models.MatchStatus `json:"status" binding:"required"`
}

// UpdateMatchStatus accepts or rejects a match; only the involved parties
// may act.
func UpdateMatchStatus(c *gin.Context) {
	lang := requestLanguage(c)
	ctx := c.Request.Context()
	userId, _ := utils.GetUserIdFromContext(ctx)

	var input matchStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}
	if input.Status != models.MatchStatusAccepted && input.Status != models.MatchStatusRejected {
		utils.RespondError(c, http.StatusBadRequest, utils.MsgInvalidMatchStatus, lang)
		return
	}

	match, err := models.UpdateMatchStatus(ctx, c.Param("id"), userId, input.Status)
	if err != nil {
		respondModelError(c, err, utils.MsgMatchNotFound)
		return
	}

	correlationId, _ := utils.GetCorrelationIdFromContext(ctx)
	if _, err := config.PublishNotification(ctx, config.NotificationMessage{
		Type:          "match.status_changed",
		UserId:        userId,
		BusinessId:    match.SourceBusinessId.String(),
		TargetId:      match.TargetId.String(),
		Language:      lang,
		CorrelationId: correlationId,
	}); err != nil {
		config.LogError(config.GetLogger(), "handlers", "UpdateMatchStatus", "publish event", match.ID.String(), err)
	}

	c.JSON(http.StatusOK, gin.H{"match": match})
}

func GetMatchStats(c *gin.Context) {
	ctx := c.Request.Context()
	businessId, _ := utils.GetBusinessIdFromContext(ctx)

	stats, err := models.GetMatchStats(ctx, businessId)
	if err != nil {
		respondModelError(c, err, utils.MsgMatchNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
