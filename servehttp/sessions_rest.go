package servehttp

import (
	"net/http"

	"bneibrit/domain/worksession"

	"github.com/gin-gonic/gin"
)

type activeSession struct {
	worksession.WorkSession
	Elapsed string `json:"elapsed"`
}

type sessionsResponse struct {
	Active    []activeSession           `json:"active"`
	Completed []worksession.WorkSession `json:"completed"`
}

func (s *Server) handleStartSession(c *gin.Context) {
	started, err := s.Workspace.StartSession(pathID(c, "id"))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, started)
}

// handleEndSession answers 204 when the employer had no open session.
func (s *Server) handleEndSession(c *gin.Context) {
	closed, ok := s.Workspace.EndSession(pathID(c, "id"))
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, closed)
}

func (s *Server) handleQuerySessions(c *gin.Context) {
	now := s.Now()
	resp := sessionsResponse{Active: []activeSession{}, Completed: s.Workspace.CompletedSessions()}
	for _, ws := range s.Workspace.ActiveSessions() {
		resp.Active = append(resp.Active, activeSession{WorkSession: ws, Elapsed: worksession.FormatElapsed(now.Sub(ws.StartTime))})
	}
	c.JSON(http.StatusOK, &resp)
}
