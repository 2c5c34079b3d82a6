package summary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"bneibrit/common"
	"bneibrit/document/fonts"
	"bneibrit/document/layout"
	"bneibrit/domain/benefits"
	"bneibrit/domain/compliance"
	"bneibrit/domain/pension"
	"bneibrit/domain/worksession"
	"bneibrit/i18n"

	"github.com/fundwit/go-commons/types"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const ContentType = "application/pdf"

var ErrUnsupportedLocale = errors.New("unsupported locale")

// Data is everything the monthly summary reads.
type Data struct {
	Employers             []benefits.EmployerWithBenefits
	CompletedSessions     []worksession.WorkSession
	DepositStatuses       map[types.ID]compliance.DepositStatus
	SickDaysUsed          func(employerID types.ID) int
	PensionRates          pension.Rates
	SickLeaveDaysPerMonth float64
}

type Artifact struct {
	FileName string
	Content  []byte
}

type Composer struct {
	Fonts   fonts.Loader
	Catalog *i18n.Catalog
	Now     func() time.Time
}

// FileName is the suggested name of the summary generated at now.
func FileName(now time.Time) string {
	return fmt.Sprintf("monthly-summary-%d-%02d.pdf", now.Year(), int(now.Month()))
}

// Render composes the summary into a PDF. Nothing is returned when any step fails.
func (c *Composer) Render(ctx context.Context, locale string, data Data) (*Artifact, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "render monthly summary")
	defer span.Finish()
	span.SetTag("locale", locale)

	artifact, err := c.render(locale, data)
	if err != nil {
		ext.Error.Set(span, true)
		span.LogKV("event", "error", "message", err.Error())
		return nil, err
	}
	span.SetTag("bytes", len(artifact.Content))
	return artifact, nil
}

func (c *Composer) render(locale string, data Data) (*Artifact, error) {
	if !c.Catalog.Supports(locale) {
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedLocale, locale)
	}
	now := c.Now()
	tr := c.Catalog.Translator(locale)

	canvas := layout.NewPDFCanvas(tr.T("pdf.title"), now)
	f, err := c.Fonts.Load(canvas, locale)
	if err != nil {
		return nil, err
	}
	c.Compose(canvas, f, locale, data, now)

	var buf bytes.Buffer
	if err := canvas.Output(&buf); err != nil {
		return nil, err
	}
	return &Artifact{FileName: FileName(now), Content: buf.Bytes()}, nil
}

type writer struct {
	l       *layout.Layout
	tr      i18n.Translator
	printer *message.Printer
}

// both translates key for the locale and the Hebrew column.
func (w writer) both(key string) (string, string) {
	return w.tr.T(key), w.tr.He(key)
}

func (w writer) labelValue(key, value string) {
	local, hebrew := w.both(key)
	w.l.LabelValue(local, hebrew, value)
}

func (w writer) currency(amount int64) string {
	return "₪" + w.printer.Sprintf("%d", amount)
}

func rate(r float64) string {
	return fmt.Sprintf("%.1f%%", r*100)
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Compose draws the summary onto canvas, one block per employer in order.
func (c *Composer) Compose(canvas layout.Canvas, f layout.Fonts, locale string, data Data, now time.Time) {
	tr := c.Catalog.Translator(locale)
	l := layout.New(canvas, f, layout.Options{
		SingleColumn: locale == i18n.Hebrew,
		LocaleRTL:    i18n.IsRTL(locale),
		Footer: layout.FooterText{
			LocalePage:  tr.T("pdf.page"),
			HebrewPage:  tr.He("pdf.page"),
			LocaleBrand: tr.T("pdf.brand"),
			HebrewBrand: tr.He("pdf.brand"),
		},
	})
	w := writer{l: l, tr: tr, printer: message.NewPrinter(language.English)}

	title, hebrewTitle := w.both("pdf.title")
	l.Title(title, hebrewTitle, subtitle(tr.T("pdf.generatedOn"), now, i18n.IsRTL(locale)), subtitle(tr.He("pdf.generatedOn"), now, true))

	for _, e := range data.Employers {
		w.employer(e, data)
	}
	l.Finalize()
}

// subtitle keeps month names out of right to left text, they would be reversed.
func subtitle(generatedOn string, now time.Time, rtl bool) string {
	date := now.Format("2006-01-02")
	if rtl {
		return fmt.Sprintf("%02d/%d • %s %s", int(now.Month()), now.Year(), generatedOn, date)
	}
	return fmt.Sprintf("%s %d • %s %s", now.Month().String(), now.Year(), generatedOn, date)
}

func (w writer) employer(e benefits.EmployerWithBenefits, data Data) {
	l := w.l
	local, hebrew := w.both("pdf.employer")
	l.EmployerHeader(local, hebrew, e.Name)

	l.SectionTitle(w.both("pdf.workSessionsSummary"))
	sessions := worksession.Summarize(data.CompletedSessions, e.ID)
	if sessions.Count == 0 {
		w.labelValue("pdf.noSessions", "-")
	} else {
		w.labelValue("pdf.totalHours", strconv.FormatFloat(sessions.Hours, 'f', 1, 64))
		w.labelValue("pdf.totalEarnings", w.currency(common.RoundWhole(sessions.Earnings)))
		w.labelValue("pdf.sessionsCount", strconv.Itoa(sessions.Count))
	}
	l.Spacing(3)

	l.SectionTitle(w.both("pdf.socialBenefits"))
	w.labelValue("pdf.convalescencePayMonthly", w.currency(e.Benefits.ConvalescencePayPerMonth))
	w.labelValue("pdf.convalescenceDaysYearly", strconv.Itoa(e.Benefits.ConvalescenceDaysPerYear))
	w.labelValue("pdf.yearsOfSeniority", strconv.FormatFloat(e.Benefits.YearsEmployed, 'f', 1, 64))
	l.Spacing(3)

	l.SectionTitle(w.both("pdf.pensionAndNI"))
	r := data.PensionRates
	p := r.Breakdown(e.ID, e.MonthlySalary)
	contributions := []struct {
		key    string
		rate   float64
		amount int64
	}{
		{"pdf.employerContribution", r.EmployerRate, p.EmployerContribution},
		{"pdf.employeeContribution", r.EmployeeRate, p.EmployeeContribution},
		{"pdf.severanceContribution", r.SeveranceRate, p.SeveranceContribution},
	}
	for _, c := range contributions {
		local, hebrew := w.both(c.key)
		l.LabelValue(local+" "+rate(c.rate), hebrew+" "+rate(c.rate), w.currency(c.amount))
	}
	w.labelValue("pdf.totalMonthlyPension", w.currency(p.TotalMonthlyPension))

	if deposit, ok := data.DepositStatuses[e.ID]; ok {
		local, hebrew := w.both("pdf.depositStatus")
		localStatus, hebrewStatus := w.both("pdf." + string(deposit.Status))
		l.StatusRow(local, hebrew, localStatus, hebrewStatus)
		if deposit.LastDepositDate != nil {
			w.labelValue("pdf.lastDeposit", *deposit.LastDepositDate)
		} else {
			local, hebrew := w.both("pdf.lastDeposit")
			localNone, hebrewNone := w.both("pdf.noDeposit")
			l.StatusRow(local, hebrew, localNone, hebrewNone)
		}
	}
	l.Spacing(3)

	l.SectionTitle(w.both("pdf.sickLeave"))
	accumulated := e.Benefits.SickLeaveAccumulated
	used := 0
	if data.SickDaysUsed != nil {
		used = data.SickDaysUsed(e.ID)
	}
	perMonth := number(data.SickLeaveDaysPerMonth)
	local, hebrew = w.both("pdf.accumulated")
	l.LabelValue(
		local+" ("+perMonth+"/"+w.tr.T("common.perMonth")+")",
		hebrew+" ("+perMonth+"/"+w.tr.He("common.perMonth")+")",
		number(accumulated))
	w.labelValue("pdf.used", strconv.Itoa(used))
	w.labelValue("pdf.remaining", number(common.Round(accumulated-float64(used), 1)))

	l.Spacing(5)
	l.Divider()
}
