package contract_test

import (
	"errors"
	"testing"

	"bneibrit/common"
	"bneibrit/domain/contract"

	. "github.com/onsi/gomega"
)

func TestDefault(t *testing.T) {
	RegisterTestingT(t)

	c := contract.Default(42)
	Expect(c.EmployerID.String()).To(Equal("42"))
	Expect(c.RewardType).To(Equal(contract.RewardHourly))
	Expect(c.CancellationPolicy).To(Equal(contract.CancellationPolicy{NoticeHours: 24, ShortNoticePayPercent: 100}))
	Expect(contract.Validate(c)).To(BeNil())
}

func TestValidate(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should reject notice hours out of range", func(t *testing.T) {
		for _, hours := range []int{0, 73} {
			c := contract.Default(1)
			c.CancellationPolicy.NoticeHours = hours
			err := contract.Validate(c)
			Expect(err).ToNot(BeNil())
			var badParam *common.ErrBadParam
			Expect(errors.As(err, &badParam)).To(BeTrue())
		}
	})

	t.Run("should reject pay percent out of range", func(t *testing.T) {
		c := contract.Default(1)
		c.CancellationPolicy.ShortNoticePayPercent = 101
		Expect(contract.Validate(c)).ToNot(BeNil())
	})

	t.Run("should accept the range bounds", func(t *testing.T) {
		c := contract.Default(1)
		c.CancellationPolicy = contract.CancellationPolicy{NoticeHours: 72, ShortNoticePayPercent: 0}
		Expect(contract.Validate(c)).To(BeNil())
		c.CancellationPolicy = contract.CancellationPolicy{NoticeHours: 1, ShortNoticePayPercent: 100}
		Expect(contract.Validate(c)).To(BeNil())
	})

	t.Run("should reject unknown reward types", func(t *testing.T) {
		c := contract.Default(1)
		c.RewardType = "weekly"
		Expect(contract.Validate(c)).ToNot(BeNil())
	})

	t.Run("should require the amount matching the reward type", func(t *testing.T) {
		c := contract.Default(1)
		c.RewardType = contract.RewardDaily
		Expect(errors.Is(contract.Validate(c), contract.ErrDailyRateRequired)).To(BeTrue())
		rate := 350.0
		c.DailyRate = &rate
		Expect(contract.Validate(c)).To(BeNil())

		c = contract.Default(1)
		c.RewardType = contract.RewardGlobal
		Expect(errors.Is(contract.Validate(c), contract.ErrGlobalAmountRequired)).To(BeTrue())
		amount := 4200.0
		c.GlobalMonthlyAmount = &amount
		Expect(contract.Validate(c)).To(BeNil())
	})
}

func TestShortNoticePay(t *testing.T) {
	RegisterTestingT(t)

	c := contract.Default(1)
	c.CancellationPolicy.ShortNoticePayPercent = 50
	Expect(contract.ShortNoticePay(c, 30, 200)).To(BeZero())
	Expect(contract.ShortNoticePay(c, 24, 200)).To(BeZero())
	Expect(contract.ShortNoticePay(c, 3, 200)).To(Equal(100.0))
	Expect(contract.ShortNoticePay(c, 0, 123.45)).To(Equal(61.73))
}
