package pension

import (
	"bneibrit/common"

	"github.com/fundwit/go-commons/types"
)

// Rates are the contribution percentages and the national insurance brackets.
type Rates struct {
	EmployerRate  float64 `json:"employerRate"`
	EmployeeRate  float64 `json:"employeeRate"`
	SeveranceRate float64 `json:"severanceRate"`

	NIReducedRateThreshold float64 `json:"niReducedRateThreshold"`
	NIReducedRate          float64 `json:"niReducedRate"`
	NIFullRate             float64 `json:"niFullRate"`
}

// DefaultRates is the process-wide rate set used by the package level functions.
var DefaultRates = Rates{
	EmployerRate:  0.065,
	EmployeeRate:  0.06,
	SeveranceRate: 0.06,

	NIReducedRateThreshold: 7122,
	NIReducedRate:          0.004,
	NIFullRate:             0.07,
}

type Breakdown struct {
	EmployerID            types.ID `json:"employerId"`
	EmployerContribution  int64    `json:"employerContribution"`
	EmployeeContribution  int64    `json:"employeeContribution"`
	SeveranceContribution int64    `json:"severanceContribution"`
	TotalMonthlyPension   int64    `json:"totalMonthlyPension"`
}

type QuarterlyEstimate struct {
	Quarter            int     `json:"quarter"`
	Year               int     `json:"year"`
	EstimatedEarnings  float64 `json:"estimatedEarnings"`
	EstimatedNIPayment int64   `json:"estimatedNIPayment"`
	SessionsEarnings   float64 `json:"sessionsEarnings"`
}

func CalculatePensionBreakdown(employerID types.ID, monthlySalary float64) Breakdown {
	return DefaultRates.Breakdown(employerID, monthlySalary)
}

func CalculateNIForIncome(annualIncome float64) int64 {
	return DefaultRates.NIForIncome(annualIncome)
}

func CalculateQuarterlyEstimates(totalMonthlySalary float64, sessionsEarningsByQuarter []float64, year int) []QuarterlyEstimate {
	return DefaultRates.QuarterlyEstimates(totalMonthlySalary, sessionsEarningsByQuarter, year)
}

// Breakdown rounds each contribution on its own; the total sums the rounded parts.
func (r Rates) Breakdown(employerID types.ID, monthlySalary float64) Breakdown {
	employerPart := common.RoundWhole(monthlySalary * r.EmployerRate)
	employeePart := common.RoundWhole(monthlySalary * r.EmployeeRate)
	severancePart := common.RoundWhole(monthlySalary * r.SeveranceRate)
	return Breakdown{
		EmployerID:            employerID,
		EmployerContribution:  employerPart,
		EmployeeContribution:  employeePart,
		SeveranceContribution: severancePart,
		TotalMonthlyPension:   employerPart + employeePart + severancePart,
	}
}

// NIForIncome applies the reduced rate up to the threshold (inclusive) and the full rate above it.
func (r Rates) NIForIncome(annualIncome float64) int64 {
	if annualIncome <= 0 {
		return 0
	}
	if annualIncome <= r.NIReducedRateThreshold {
		return common.RoundWhole(annualIncome * r.NIReducedRate)
	}
	reducedPortion := r.NIReducedRateThreshold * r.NIReducedRate
	fullPortion := (annualIncome - r.NIReducedRateThreshold) * r.NIFullRate
	return common.RoundWhole(reducedPortion + fullPortion)
}

// QuarterlyEstimates treats each quarter in isolation: its earnings are scaled
// up to a year, taxed, and the annual amount split back into four.
func (r Rates) QuarterlyEstimates(totalMonthlySalary float64, sessionsEarningsByQuarter []float64, year int) []QuarterlyEstimate {
	estimates := make([]QuarterlyEstimate, 0, 4)
	for i := 0; i < 4; i++ {
		sessionsEarnings := 0.0
		if i < len(sessionsEarningsByQuarter) {
			sessionsEarnings = sessionsEarningsByQuarter[i]
		}
		estimatedEarnings := totalMonthlySalary*3 + sessionsEarnings
		annualNI := r.NIForIncome(estimatedEarnings * 4)
		estimates = append(estimates, QuarterlyEstimate{
			Quarter:            i + 1,
			Year:               year,
			EstimatedEarnings:  estimatedEarnings,
			EstimatedNIPayment: common.RoundWhole(float64(annualNI) / 4),
			SessionsEarnings:   sessionsEarnings,
		})
	}
	return estimates
}
