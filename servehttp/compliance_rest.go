package servehttp

import (
	"errors"
	"net/http"
	"strconv"

	"bneibrit/common"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleQueryDeposits(c *gin.Context) {
	c.JSON(http.StatusOK, s.Workspace.DepositStatuses())
}

func (s *Server) handleMarkDeposited(c *gin.Context) {
	status, err := s.Workspace.MarkAsDeposited(pathID(c, "id"))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) handleQueryPension(c *gin.Context) {
	c.JSON(http.StatusOK, s.Workspace.PensionBreakdowns())
}

// handleQueryNI estimates the quarters of ?year=, the current year by default.
func (s *Server) handleQueryNI(c *gin.Context) {
	year := s.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1900 || parsed > 9999 {
			panic(&common.ErrBadParam{Cause: errors.New("invalid year '" + raw + "'")})
		}
		year = parsed
	}
	c.JSON(http.StatusOK, s.Workspace.QuarterlyEstimates(year))
}

func (s *Server) handleQueryRates(c *gin.Context) {
	c.JSON(http.StatusOK, s.Workspace.Rates())
}
