package servehttp

import (
	"context"
	"fmt"
	"time"

	"bneibrit/common"
	"bneibrit/document/summary"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
)

// SummaryRenderer produces the monthly summary document.
type SummaryRenderer interface {
	Render(ctx context.Context, locale string, data summary.Data) (*summary.Artifact, error)
}

type Server struct {
	Workspace     Workspace
	Renderer      SummaryRenderer
	DefaultLocale string
	Now           func() time.Time
}

// RegisterRestAPI mounts every /v1 route of s on r.
func RegisterRestAPI(r *gin.Engine, s *Server, middleWares ...gin.HandlerFunc) {
	if s.Now == nil {
		s.Now = time.Now
	}
	g := r.Group("/v1", middleWares...)

	g.GET("/employers", s.handleQueryEmployers)
	g.POST("/employers", s.handleCreateEmployer)
	g.GET("/employers/:id", s.handleDetailEmployer)
	g.PATCH("/employers/:id", s.handleUpdateEmployer)
	g.GET("/employers/:id/contract", s.handleDetailContract)
	g.PUT("/employers/:id/contract", s.handleUpdateContract)
	g.POST("/employers/:id/sessions", s.handleStartSession)
	g.DELETE("/employers/:id/sessions", s.handleEndSession)

	g.GET("/sessions", s.handleQuerySessions)

	g.GET("/absences", s.handleQueryAbsences)
	g.POST("/absences", s.handleReportAbsence)
	g.POST("/absences/certificates", s.handleUploadCertificate)
	g.GET("/absences/:id/certificate", s.handleDownloadCertificate)

	g.GET("/holidays/alert", s.handleHolidayAlert)
	g.POST("/holidays/:key/decisions", s.handleHolidayDecision)
	g.POST("/holidays/:key/dismiss", s.handleDismissHoliday)

	g.GET("/compliance/deposits", s.handleQueryDeposits)
	g.POST("/compliance/deposits/:id", s.handleMarkDeposited)
	g.GET("/compliance/pension", s.handleQueryPension)
	g.GET("/compliance/ni", s.handleQueryNI)

	g.GET("/rates", s.handleQueryRates)
	g.GET("/reports/monthly-summary", s.handleMonthlySummary)
}

func pathID(c *gin.Context, name string) types.ID {
	id, err := types.ParseID(c.Param(name))
	if err != nil {
		panic(&common.ErrBadParam{Cause: fmt.Errorf("invalid id '%s'", c.Param(name))})
	}
	return id
}
