package servehttp

import (
	"net/http"

	"bneibrit/common"
	"bneibrit/domain/holiday"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// handleHolidayAlert answers 204 when no holiday within the alert range needs decisions.
func (s *Server) handleHolidayAlert(c *gin.Context) {
	alert := s.Workspace.NextAlert(holiday.DefaultAlertRange)
	if alert == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (s *Server) handleHolidayDecision(c *gin.Context) {
	creation := holiday.DecisionCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}
	decision, err := s.Workspace.RecordHolidayDecision(creation.EmployerID, c.Param("key"), creation.HolidayDate, creation.Decision)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, decision)
}

func (s *Server) handleDismissHoliday(c *gin.Context) {
	dismissal := holiday.DismissalCreation{}
	if err := c.ShouldBindBodyWith(&dismissal, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}
	if err := s.Workspace.DismissHoliday(c.Param("key"), dismissal.HolidayDate); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}
