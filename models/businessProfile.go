package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/miharina-tech/miharina_backend/config"
	"github.com/miharina-tech/miharina_backend/utils"
	"github.com/shopspring/decimal"
)

type BusinessProfile struct {
	ID            uuid.UUID      `gorm:"primary_key" json:"id"`
	UserId        uuid.UUID      `gorm:"uniqueIndex;not null" json:"user_id"`
	Name          string         `gorm:"index;size:100;not null" json:"name"`
	DescriptionFr string         `gorm:"type:text" json:"description_fr"`
	DescriptionMg string         `gorm:"type:text" json:"description_mg"`
	DescriptionEn string         `gorm:"type:text" json:"description_en"`
	BusinessType  BusinessType   `gorm:"index;size:30;not null" json:"business_type"`
	Region        Region         `gorm:"index;size:30;not null" json:"region"`
	Sectors       pq.StringArray `gorm:"type:text[]" json:"sectors"`
	Languages     pq.StringArray `gorm:"type:text[]" json:"languages"`
	InvestmentMin decimal.Decimal `gorm:"type:numeric(18,2)" json:"investment_min"`
	InvestmentMax decimal.Decimal `gorm:"type:numeric(18,2)" json:"investment_max"`
	ContactEmail  string         `gorm:"size:255" json:"contact_email"`
	Phone         string         `gorm:"size:20" json:"phone"`
	Website       string         `gorm:"size:255" json:"website"`
	LogoUrl       string         `json:"logo_url"`
	IsActive      *bool          `gorm:"not null;default:true" json:"is_active"`
	IsVerified    *bool          `gorm:"not null;default:false" json:"is_verified"`
	VerificationStatus VerificationStatus `gorm:"size:20;default:pending" json:"verification_status"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewBusinessProfile struct {
	Name          string          `json:"name" binding:"required"`
	DescriptionFr string          `json:"description_fr"`
	DescriptionMg string          `json:"description_mg"`
	DescriptionEn string          `json:"description_en"`
	BusinessType  BusinessType    `json:"business_type" binding:"required"`
	Region        Region          `json:"region" binding:"required"`
	Sectors       []string        `json:"sectors"`
	Languages     []string        `json:"languages"`
	InvestmentMin decimal.Decimal `json:"investment_min"`
	InvestmentMax decimal.Decimal `json:"investment_max"`
	ContactEmail  string          `json:"contact_email"`
	Phone         string          `json:"phone"`
	Website       string          `json:"website"`
	LogoUrl       string          `json:"logo_url"`
}

type BusinessProfileFilter struct {
	Region       Region
	BusinessType BusinessType
	Sector       string
	Query        string
	Page         int
	PageSize     int
}

/*
caches:
	BusinessProfile:$id
*/

func (profile *BusinessProfile) StoreRedis() error {
	return utils.StoreRedis[BusinessProfile](profile, profile.ID.String())
}

func (profile *BusinessProfile) RemoveRedis() error {
	return utils.RemoveRedisItem[BusinessProfile](profile.ID.String())
}

func (input *NewBusinessProfile) validate() error {
	if !input.BusinessType.Valid() {
		return errors.New("invalid business type")
	}
	if !input.Region.Valid() {
		return errors.New("invalid region")
	}
	for _, l := range input.Languages {
		if !Language(l).Valid() {
			return errors.New("invalid language: " + l)
		}
	}
	if input.Phone != "" {
		if err := utils.ValidateMadagascarPhone(input.Phone); err != nil {
			return err
		}
	}
	if input.ContactEmail != "" && !utils.IsValidEmail(input.ContactEmail) {
		return errors.New("invalid contact email")
	}
	if input.InvestmentMin.IsNegative() || input.InvestmentMax.IsNegative() {
		return errors.New("investment range must not be negative")
	}
	if input.InvestmentMax.IsPositive() && input.InvestmentMax.LessThan(input.InvestmentMin) {
		return errors.New("investment max must not be below investment min")
	}
	return nil
}

func CreateBusinessProfile(ctx context.Context, userId string, input *NewBusinessProfile) (*BusinessProfile, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	uid, err := uuid.Parse(userId)
	if err != nil {
		return nil, errors.New("invalid user id")
	}

	// one profile per identity
	count, err := utils.ResourceCountWhere[BusinessProfile](ctx, "user_id = ?", userId)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.ErrorDuplicateRecord
	}

	languages := input.Languages
	if len(languages) == 0 {
		languages = []string{string(LanguageFrench)}
	}

	profile := BusinessProfile{
		ID:                 uuid.New(),
		UserId:             uid,
		Name:               input.Name,
		DescriptionFr:      input.DescriptionFr,
		DescriptionMg:      input.DescriptionMg,
		DescriptionEn:      input.DescriptionEn,
		BusinessType:       input.BusinessType,
		Region:             input.Region,
		Sectors:            normalizeTags(input.Sectors),
		Languages:          normalizeTags(languages),
		InvestmentMin:      input.InvestmentMin,
		InvestmentMax:      input.InvestmentMax,
		ContactEmail:       input.ContactEmail,
		Phone:              input.Phone,
		Website:            input.Website,
		LogoUrl:            input.LogoUrl,
		IsActive:           utils.NewTrue(),
		IsVerified:         utils.NewFalse(),
		VerificationStatus: VerificationStatusPending,
	}

	// db action
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&profile).Error; err != nil {
		return nil, err
	}

	// caching
	_ = profile.StoreRedis()
	return &profile, nil
}

func GetBusinessProfileById(ctx context.Context, id string) (*BusinessProfile, error) {
	// caching
	cached, err := utils.RetrieveRedis[BusinessProfile](id)
	if err == nil && cached != nil {
		return cached, nil
	}

	var profile BusinessProfile
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&profile).Error; err != nil {
		return nil, err
	}

	_ = profile.StoreRedis()
	return &profile, nil
}

func GetBusinessProfileByUserId(ctx context.Context, userId string) (*BusinessProfile, error) {
	var profile BusinessProfile
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("user_id = ?", userId).Take(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func SearchBusinessProfiles(ctx context.Context, filter BusinessProfileFilter) ([]*BusinessProfile, int64, error) {
	db := config.GetDB()

	q := db.WithContext(ctx).Model(&BusinessProfile{}).Where("is_active = true")
	if filter.Region != "" {
		q = q.Where("region = ?", filter.Region)
	}
	if filter.BusinessType != "" {
		q = q.Where("business_type = ?", filter.BusinessType)
	}
	if filter.Sector != "" {
		q = q.Where("? = ANY(sectors)", strings.ToLower(strings.TrimSpace(filter.Sector)))
	}
	if filter.Query != "" {
		pattern := "%" + strings.TrimSpace(filter.Query) + "%"
		q = q.Where("name ILIKE ? OR description_fr ILIKE ? OR description_mg ILIKE ? OR description_en ILIKE ?",
			pattern, pattern, pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	var profiles []*BusinessProfile
	if err := q.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&profiles).Error; err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func UpdateBusinessProfile(ctx context.Context, id string, userId string, input *NewBusinessProfile) (*BusinessProfile, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	db := config.GetDB()

	// check exists
	var profile BusinessProfile
	if err := db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if profile.UserId.String() != userId {
		return nil, utils.ErrorForbidden
	}

	languages := input.Languages
	if len(languages) == 0 {
		languages = []string{string(LanguageFrench)}
	}

	// db action
	tx := db.Begin()
	err := tx.WithContext(ctx).Model(&profile).Updates(map[string]interface{}{
		"Name":          input.Name,
		"DescriptionFr": input.DescriptionFr,
		"DescriptionMg": input.DescriptionMg,
		"DescriptionEn": input.DescriptionEn,
		"BusinessType":  input.BusinessType,
		"Region":        input.Region,
		"Sectors":       normalizeTags(input.Sectors),
		"Languages":     normalizeTags(languages),
		"InvestmentMin": input.InvestmentMin,
		"InvestmentMax": input.InvestmentMax,
		"ContactEmail":  input.ContactEmail,
		"Phone":         input.Phone,
		"Website":       input.Website,
		"LogoUrl":       input.LogoUrl,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// caching
	if err := profile.RemoveRedis(); err != nil {
		tx.Rollback()
		return nil, err
	}
	return &profile, tx.Commit().Error
}

// DeleteBusinessProfile deactivates the profile rather than removing the
// row, so existing matches and stories keep their references.
func DeleteBusinessProfile(ctx context.Context, id string, userId string, isAdmin bool) error {
	db := config.GetDB()

	var profile BusinessProfile
	if err := db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return utils.ErrorRecordNotFound
	}
	if !isAdmin && profile.UserId.String() != userId {
		return utils.ErrorForbidden
	}

	if err := db.WithContext(ctx).Model(&profile).Update("is_active", false).Error; err != nil {
		return err
	}
	return profile.RemoveRedis()
}

// SetVerificationStatus is the admin review action; approving also flips
// is_verified.
func SetVerificationStatus(ctx context.Context, id string, status VerificationStatus) (*BusinessProfile, error) {
	if !status.Valid() {
		return nil, errors.New("invalid verification status")
	}

	db := config.GetDB()
	var profile BusinessProfile
	if err := db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	err := db.WithContext(ctx).Model(&profile).Updates(map[string]interface{}{
		"VerificationStatus": status,
		"IsVerified":         status == VerificationStatusApproved,
	}).Error
	if err != nil {
		return nil, err
	}

	if err := profile.RemoveRedis(); err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindCandidateProfiles returns the pre-filtered candidate pool for the
// scoring engine: active profiles sharing at least one matching criterion
// with the source, newest first, bounded by CandidatePoolLimit.
func FindCandidateProfiles(ctx context.Context, source *BusinessProfile, sectors []string) ([]*BusinessProfile, error) {
	db := config.GetDB()

	q := db.WithContext(ctx).Model(&BusinessProfile{}).
		Where("id <> ?", source.ID).
		Where("is_active = true")

	filterSectors := normalizeTags(sectors)
	if len(filterSectors) == 0 {
		filterSectors = source.Sectors
	}

	cond := db.Where("business_type = ?", source.BusinessType).
		Or("region = ?", source.Region)
	if len(filterSectors) > 0 {
		cond = cond.Or("sectors && ?", pq.StringArray(filterSectors))
	}
	if len(source.Languages) > 0 {
		cond = cond.Or("languages && ?", pq.StringArray(source.Languages))
	}
	q = q.Where(cond)

	var candidates []*BusinessProfile
	if err := q.Order("created_at DESC").Limit(CandidatePoolLimit).Find(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

// GetBusinessProfilesByUserIds batch-loads profiles keyed by owner user id.
func GetBusinessProfilesByUserIds(ctx context.Context, userIds []string) (map[string]*BusinessProfile, error) {
	result := make(map[string]*BusinessProfile, len(userIds))
	if len(userIds) == 0 {
		return result, nil
	}

	var profiles []*BusinessProfile
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("user_id IN ?", utils.UniqueSlice(userIds)).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for _, p := range profiles {
		result[p.UserId.String()] = p
	}
	return result, nil
}

func AllBusinessProfiles(ctx context.Context) ([]*BusinessProfile, error) {
	var profiles []*BusinessProfile
	db := config.GetDB()
	if err := db.WithContext(ctx).Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func normalizeTags(tags []string) pq.StringArray {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return utils.UniqueSlice(out)
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}
