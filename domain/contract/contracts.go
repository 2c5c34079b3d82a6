package contract

import (
	"errors"

	"bneibrit/common"

	"github.com/fundwit/go-commons/types"
	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/gorm"
)

type RewardType string

const (
	RewardHourly RewardType = "hourly"
	RewardDaily  RewardType = "daily"
	RewardGlobal RewardType = "global"
)

const (
	DefaultNoticeHours           = 24
	DefaultShortNoticePayPercent = 100
)

var (
	ErrDailyRateRequired    = errors.New("daily rate is required for daily reward")
	ErrGlobalAmountRequired = errors.New("global monthly amount is required for global reward")

	validate = validator.New()
)

type CancellationPolicy struct {
	NoticeHours           int `json:"noticeHours" validate:"min=1,max=72" binding:"min=1,max=72"`
	ShortNoticePayPercent int `json:"shortNoticePayPercent" validate:"min=0,max=100" binding:"min=0,max=100"`
}

type Config struct {
	EmployerID          types.ID           `json:"employerId" gorm:"primary_key;auto_increment:false"`
	RewardType          RewardType         `json:"rewardType" gorm:"type:VARCHAR(16) NOT NULL" validate:"required,oneof=hourly daily global" binding:"required,oneof=hourly daily global"`
	CancellationPolicy  CancellationPolicy `json:"cancellationPolicy" gorm:"embedded" validate:"required" binding:"required"`
	DailyRate           *float64           `json:"dailyRate,omitempty" validate:"omitempty,gt=0" binding:"omitempty,gt=0"`
	GlobalMonthlyAmount *float64           `json:"globalMonthlyAmount,omitempty" validate:"omitempty,gt=0" binding:"omitempty,gt=0"`
	Notes               string             `json:"notes,omitempty" gorm:"type:TEXT"`
}

func (c *Config) TableName() string {
	return "contract_configs"
}

func Default(employerID types.ID) Config {
	return Config{
		EmployerID: employerID,
		RewardType: RewardHourly,
		CancellationPolicy: CancellationPolicy{
			NoticeHours:           DefaultNoticeHours,
			ShortNoticePayPercent: DefaultShortNoticePayPercent,
		},
	}
}

// Validate checks the ranges and the reward specific amounts.
func Validate(c Config) error {
	if err := validate.Struct(c); err != nil {
		return &common.ErrBadParam{Cause: err}
	}
	if c.RewardType == RewardDaily && c.DailyRate == nil {
		return &common.ErrBadParam{Cause: ErrDailyRateRequired}
	}
	if c.RewardType == RewardGlobal && c.GlobalMonthlyAmount == nil {
		return &common.ErrBadParam{Cause: ErrGlobalAmountRequired}
	}
	return nil
}

// ShortNoticePay is what a cancellation inside the notice window owes on plannedEarnings.
func ShortNoticePay(c Config, noticeGivenHours float64, plannedEarnings float64) float64 {
	if noticeGivenHours >= float64(c.CancellationPolicy.NoticeHours) {
		return 0
	}
	return common.Round(plannedEarnings*float64(c.CancellationPolicy.ShortNoticePayPercent)/100, 2)
}

func QueryContractConfigs(db *gorm.DB) ([]Config, error) {
	configs := []Config{}
	if err := db.Order("employer_id ASC").Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

func UpsertContractConfig(db *gorm.DB, c Config) (*Config, error) {
	if err := db.Save(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
