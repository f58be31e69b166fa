package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/miharina-tech/miharina_backend/config"
	"github.com/miharina-tech/miharina_backend/utils"
	"github.com/shopspring/decimal"
)

type Opportunity struct {
	ID             uuid.UUID         `gorm:"primary_key" json:"id"`
	CreatedBy      uuid.UUID         `gorm:"index;not null" json:"created_by"`
	TitleFr        string            `gorm:"size:200;not null" json:"title_fr"`
	TitleMg        string            `gorm:"size:200" json:"title_mg"`
	TitleEn        string            `gorm:"size:200" json:"title_en"`
	DescriptionFr  string            `gorm:"type:text" json:"description_fr"`
	DescriptionMg  string            `gorm:"type:text" json:"description_mg"`
	DescriptionEn  string            `gorm:"type:text" json:"description_en"`
	BusinessType   BusinessType      `gorm:"index;size:30" json:"business_type"`
	Industry       string            `gorm:"index;size:100" json:"industry"`
	EstimatedValue decimal.Decimal   `gorm:"type:numeric(18,2)" json:"estimated_value"`
	Currency       Currency          `gorm:"size:3;default:MGA" json:"currency"`
	ExpirationDate *time.Time        `json:"expiration_date"`
	Status         OpportunityStatus `gorm:"index;size:20;default:active" json:"status"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewOpportunity struct {
	TitleFr        string          `json:"title_fr" binding:"required"`
	TitleMg        string          `json:"title_mg"`
	TitleEn        string          `json:"title_en"`
	DescriptionFr  string          `json:"description_fr"`
	DescriptionMg  string          `json:"description_mg"`
	DescriptionEn  string          `json:"description_en"`
	BusinessType   BusinessType    `json:"business_type"`
	Industry       string          `json:"industry"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	Currency       Currency        `json:"currency"`
	ExpirationDate *time.Time      `json:"expiration_date"`
}

type OpportunityFilter struct {
	BusinessType BusinessType
	Industry     string
	Status       OpportunityStatus
	Page         int
	PageSize     int
}

/*
caches:
	Opportunity:$id
*/

func (opp *Opportunity) StoreRedis() error {
	return utils.StoreRedis[Opportunity](opp, opp.ID.String())
}

func (opp *Opportunity) RemoveRedis() error {
	return utils.RemoveRedisItem[Opportunity](opp.ID.String())
}

// Expired reports whether the expiration date has passed. Status columns are
// reconciled lazily on read rather than by a background job.
func (opp *Opportunity) Expired(now time.Time) bool {
	return opp.ExpirationDate != nil && opp.ExpirationDate.Before(now)
}

func (input *NewOpportunity) validate() error {
	if input.BusinessType != "" && !input.BusinessType.Valid() {
		return errors.New("invalid business type")
	}
	if input.Currency != "" && !input.Currency.Valid() {
		return errors.New("invalid currency")
	}
	if input.EstimatedValue.IsNegative() {
		return errors.New("estimated value must not be negative")
	}
	if input.ExpirationDate != nil && input.ExpirationDate.Before(time.Now()) {
		return errors.New("expiration date must be in the future")
	}
	return nil
}

func CreateOpportunity(ctx context.Context, userId string, input *NewOpportunity) (*Opportunity, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	uid, err := uuid.Parse(userId)
	if err != nil {
		return nil, errors.New("invalid user id")
	}

	currency := input.Currency
	if currency == "" {
		currency = CurrencyAriary
	}

	opp := Opportunity{
		ID:             uuid.New(),
		CreatedBy:      uid,
		TitleFr:        input.TitleFr,
		TitleMg:        input.TitleMg,
		TitleEn:        input.TitleEn,
		DescriptionFr:  input.DescriptionFr,
		DescriptionMg:  input.DescriptionMg,
		DescriptionEn:  input.DescriptionEn,
		BusinessType:   input.BusinessType,
		Industry:       strings.ToLower(strings.TrimSpace(input.Industry)),
		EstimatedValue: input.EstimatedValue.Round(currency.DecimalPlaces()),
		Currency:       currency,
		ExpirationDate: input.ExpirationDate,
		Status:         OpportunityStatusActive,
	}

	// db action
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&opp).Error; err != nil {
		return nil, err
	}

	// caching
	_ = opp.StoreRedis()
	return &opp, nil
}

func GetOpportunityById(ctx context.Context, id string) (*Opportunity, error) {
	// caching
	cached, err := utils.RetrieveRedis[Opportunity](id)
	if err == nil && cached != nil {
		return cached, nil
	}

	var opp Opportunity
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&opp).Error; err != nil {
		return nil, err
	}

	// reconcile expiry on read
	if opp.Status == OpportunityStatusActive && opp.Expired(time.Now()) {
		if err := db.WithContext(ctx).Model(&opp).Update("status", OpportunityStatusExpired).Error; err != nil {
			return nil, err
		}
	}

	_ = opp.StoreRedis()
	return &opp, nil
}

func ListOpportunities(ctx context.Context, filter OpportunityFilter) ([]*Opportunity, int64, error) {
	db := config.GetDB()

	q := db.WithContext(ctx).Model(&Opportunity{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	} else {
		q = q.Where("status = ?", OpportunityStatusActive).
			Where("expiration_date IS NULL OR expiration_date > ?", time.Now())
	}
	if filter.BusinessType != "" {
		q = q.Where("business_type = ?", filter.BusinessType)
	}
	if filter.Industry != "" {
		q = q.Where("industry = ?", strings.ToLower(strings.TrimSpace(filter.Industry)))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	var opps []*Opportunity
	if err := q.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&opps).Error; err != nil {
		return nil, 0, err
	}
	return opps, total, nil
}

func ListOpportunitiesByUser(ctx context.Context, userId string) ([]*Opportunity, error) {
	var opps []*Opportunity
	db := config.GetDB()
	if err := db.WithContext(ctx).
		Where("created_by = ?", userId).
		Order("created_at DESC").
		Find(&opps).Error; err != nil {
		return nil, err
	}
	return opps, nil
}

func UpdateOpportunity(ctx context.Context, id string, userId string, input *NewOpportunity) (*Opportunity, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	db := config.GetDB()

	// check exists
	var opp Opportunity
	if err := db.WithContext(ctx).Where("id = ?", id).First(&opp).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if opp.CreatedBy.String() != userId {
		return nil, utils.ErrorForbidden
	}

	currency := input.Currency
	if currency == "" {
		currency = opp.Currency
	}

	tx := db.Begin()
	err := tx.WithContext(ctx).Model(&opp).Updates(map[string]interface{}{
		"TitleFr":        input.TitleFr,
		"TitleMg":        input.TitleMg,
		"TitleEn":        input.TitleEn,
		"DescriptionFr":  input.DescriptionFr,
		"DescriptionMg":  input.DescriptionMg,
		"DescriptionEn":  input.DescriptionEn,
		"BusinessType":   input.BusinessType,
		"Industry":       strings.ToLower(strings.TrimSpace(input.Industry)),
		"EstimatedValue": input.EstimatedValue.Round(currency.DecimalPlaces()),
		"Currency":       currency,
		"ExpirationDate": input.ExpirationDate,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// caching
	if err := opp.RemoveRedis(); err != nil {
		tx.Rollback()
		return nil, err
	}
	return &opp, tx.Commit().Error
}

// CloseOpportunity soft-deletes by flipping the status; the row stays for
// match history.
func CloseOpportunity(ctx context.Context, id string, userId string, isAdmin bool) error {
	db := config.GetDB()

	var opp Opportunity
	if err := db.WithContext(ctx).Where("id = ?", id).First(&opp).Error; err != nil {
		return utils.ErrorRecordNotFound
	}
	if !isAdmin && opp.CreatedBy.String() != userId {
		return utils.ErrorForbidden
	}

	if err := db.WithContext(ctx).Model(&opp).Update("status", OpportunityStatusClosed).Error; err != nil {
		return err
	}
	return opp.RemoveRedis()
}

// FindCandidateOpportunities returns the pool of active, unexpired
// opportunities for the scoring engine, excluding the caller's own.
func FindCandidateOpportunities(ctx context.Context, source *BusinessProfile, sectors []string) ([]*Opportunity, error) {
	db := config.GetDB()

	q := db.WithContext(ctx).Model(&Opportunity{}).
		Where("created_by <> ?", source.UserId).
		Where("status = ?", OpportunityStatusActive).
		Where("expiration_date IS NULL OR expiration_date > ?", time.Now())

	filterSectors := normalizeTags(sectors)
	if len(filterSectors) == 0 {
		filterSectors = source.Sectors
	}

	cond := db.Where("business_type = ?", source.BusinessType)
	if len(filterSectors) > 0 {
		cond = cond.Or("industry IN ?", []string(filterSectors))
	}
	q = q.Where(cond)

	var opps []*Opportunity
	if err := q.Order("created_at DESC").Limit(CandidatePoolLimit).Find(&opps).Error; err != nil {
		return nil, err
	}
	return opps, nil
}
