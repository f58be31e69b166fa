package models

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/miharina-tech/miharina_backend/config"
	"github.com/miharina-tech/miharina_backend/utils"
	"gorm.io/gorm"
)

type Match struct {
	ID               uuid.UUID       `gorm:"primary_key" json:"id"`
	SourceBusinessId uuid.UUID       `gorm:"index;not null;uniqueIndex:idx_match_pair" json:"source_business_id"`
	TargetType       MatchTargetType `gorm:"size:20;not null;uniqueIndex:idx_match_pair" json:"target_type"`
	TargetId         uuid.UUID       `gorm:"index;not null;uniqueIndex:idx_match_pair" json:"target_id"`
	Score            int             `gorm:"not null" json:"score"`
	Reasons          pq.StringArray  `gorm:"type:text[]" json:"reasons"`
	MatchedCriteria  pq.StringArray  `gorm:"type:text[]" json:"matched_criteria"`
	Status           MatchStatus     `gorm:"index;size:20;default:pending" json:"status"`
	CreatedBy        uuid.UUID       `gorm:"index;not null" json:"created_by"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewMatch struct {
	SourceBusinessId string          `json:"source_business_id" binding:"required"`
	TargetType       MatchTargetType `json:"target_type" binding:"required"`
	TargetId         string          `json:"target_id" binding:"required"`
	Score            int             `json:"score"`
	Reasons          []string        `json:"reasons"`
	MatchedCriteria  []string        `json:"matched_criteria"`
}

type MatchFilter struct {
	Direction string // sent | received
	Status    MatchStatus
	Page      int
	PageSize  int
}

type MatchStats struct {
	Total        int64   `json:"total"`
	Pending      int64   `json:"pending"`
	Accepted     int64   `json:"accepted"`
	Rejected     int64   `json:"rejected"`
	AverageScore float64 `json:"average_score"`
}

func (input *NewMatch) validate() error {
	if !input.TargetType.Valid() {
		return errors.New("invalid target type")
	}
	if input.Score < 0 || input.Score > 100 {
		return errors.New("score must be within 0..100")
	}
	if _, err := uuid.Parse(input.SourceBusinessId); err != nil {
		return errors.New("invalid source business id")
	}
	if _, err := uuid.Parse(input.TargetId); err != nil {
		return errors.New("invalid target id")
	}
	return nil
}

// SaveMatch persists a match, updating score, reasons and criteria when the
// (source, target_type, target) pair already exists instead of duplicating
// it. Returns whether the call created a new row.
func SaveMatch(ctx context.Context, userId string, input *NewMatch) (*Match, bool, error) {
	if err := input.validate(); err != nil {
		return nil, false, err
	}

	creator, err := uuid.Parse(userId)
	if err != nil {
		return nil, false, errors.New("invalid user id")
	}

	db := config.GetDB()

	var existing Match
	err = db.WithContext(ctx).
		Where("source_business_id = ? AND target_type = ? AND target_id = ?",
			input.SourceBusinessId, input.TargetType, input.TargetId).
		Take(&existing).Error
	if err == nil {
		updateErr := db.WithContext(ctx).Model(&existing).Updates(map[string]interface{}{
			"Score":           input.Score,
			"Reasons":         pq.StringArray(input.Reasons),
			"MatchedCriteria": pq.StringArray(input.MatchedCriteria),
		}).Error
		if updateErr != nil {
			return nil, false, updateErr
		}
		return &existing, false, nil
	}
	if !utils.IsNotFound(err) {
		return nil, false, err
	}

	match := Match{
		ID:               uuid.New(),
		SourceBusinessId: uuid.MustParse(input.SourceBusinessId),
		TargetType:       input.TargetType,
		TargetId:         uuid.MustParse(input.TargetId),
		Score:            input.Score,
		Reasons:          pq.StringArray(input.Reasons),
		MatchedCriteria:  pq.StringArray(input.MatchedCriteria),
		Status:           MatchStatusPending,
		CreatedBy:        creator,
	}

	// db action
	if err := db.WithContext(ctx).Create(&match).Error; err != nil {
		// concurrent creator won the unique index race
		if utils.IsUniqueViolation(err) {
			return SaveMatch(ctx, userId, input)
		}
		return nil, false, err
	}
	return &match, true, nil
}

func GetMatchById(ctx context.Context, id string) (*Match, error) {
	var match Match
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&match).Error; err != nil {
		return nil, err
	}
	return &match, nil
}

// ListMatchesForBusiness lists matches where the business is the source
// (sent) or the target (received). Direction defaults to both.
func ListMatchesForBusiness(ctx context.Context, businessId string, filter MatchFilter) ([]*Match, int64, error) {
	db := config.GetDB()

	q := db.WithContext(ctx).Model(&Match{})
	switch filter.Direction {
	case "sent":
		q = q.Where("source_business_id = ?", businessId)
	case "received":
		q = q.Where("target_type = ? AND target_id = ?", MatchTargetBusiness, businessId)
	default:
		q = q.Where("source_business_id = ? OR (target_type = ? AND target_id = ?)",
			businessId, MatchTargetBusiness, businessId)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	var matches []*Match
	if err := q.Order("score DESC, created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&matches).Error; err != nil {
		return nil, 0, err
	}
	return matches, total, nil
}

// CanActOnMatch reports whether the user may change the match status: the
// creator, the owner of the source business, or the owner of a business
// target.
func CanActOnMatch(ctx context.Context, match *Match, userId string) (bool, error) {
	if match.CreatedBy.String() == userId {
		return true, nil
	}

	source, err := GetBusinessProfileById(ctx, match.SourceBusinessId.String())
	if err == nil && source.UserId.String() == userId {
		return true, nil
	}
	if err != nil && !utils.IsNotFound(err) {
		return false, err
	}

	if match.TargetType == MatchTargetBusiness {
		target, err := GetBusinessProfileById(ctx, match.TargetId.String())
		if err == nil && target.UserId.String() == userId {
			return true, nil
		}
		if err != nil && !utils.IsNotFound(err) {
			return false, err
		}
	}
	return false, nil
}

func UpdateMatchStatus(ctx context.Context, id string, userId string, status MatchStatus) (*Match, error) {
	if status != MatchStatusAccepted && status != MatchStatusRejected {
		return nil, errors.New("invalid match status")
	}

	db := config.GetDB()

	// check exists
	var match Match
	if err := db.WithContext(ctx).Where("id = ?", id).First(&match).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	allowed, err := CanActOnMatch(ctx, &match, userId)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, utils.ErrorForbidden
	}

	if err := db.WithContext(ctx).Model(&match).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &match, nil
}

// GetMatchStats aggregates per-business match counters and the average
// score across both directions.
func GetMatchStats(ctx context.Context, businessId string) (*MatchStats, error) {
	db := config.GetDB()

	base := func() *gorm.DB {
		return db.WithContext(ctx).Model(&Match{}).
			Where("source_business_id = ? OR (target_type = ? AND target_id = ?)",
				businessId, MatchTargetBusiness, businessId)
	}

	var stats MatchStats
	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", MatchStatusPending).Count(&stats.Pending).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", MatchStatusAccepted).Count(&stats.Accepted).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", MatchStatusRejected).Count(&stats.Rejected).Error; err != nil {
		return nil, err
	}
	if stats.Total > 0 {
		row := base().Select("COALESCE(AVG(score), 0)").Row()
		if err := row.Scan(&stats.AverageScore); err != nil {
			return nil, err
		}
	}
	return &stats, nil
}
