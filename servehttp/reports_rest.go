package servehttp

import (
	"bytes"
	"errors"
	"net/http"

	"bneibrit/client/oss"
	"bneibrit/common"
	"bneibrit/document/summary"

	alioss "github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/gin-gonic/gin"
)

// SummaryObjectKey is where a generated summary is archived.
func SummaryObjectKey(fileName string) string {
	return "summaries/" + fileName
}

// handleMonthlySummary renders the summary for ?locale= and archives a copy when an
// archive is configured. Archive failures do not fail the download.
func (s *Server) handleMonthlySummary(c *gin.Context) {
	locale := c.DefaultQuery("locale", s.DefaultLocale)
	artifact, err := s.Renderer.Render(c.Request.Context(), locale, s.Workspace.SummaryData())
	if err != nil {
		if errors.Is(err, summary.ErrUnsupportedLocale) {
			panic(&common.ErrBadParam{Cause: err})
		}
		panic(err)
	}

	key := SummaryObjectKey(artifact.FileName)
	err = oss.PutObjectFunc(c.Request.Context(), key, bytes.NewReader(artifact.Content), alioss.ContentType(summary.ContentType))
	if err != nil && !errors.Is(err, oss.ErrArchiveDisabled) {
		common.Log.WithField("key", key).WithError(err).Warn("failed to archive monthly summary")
	}

	c.Header("Content-Disposition", "attachment; filename="+artifact.FileName)
	c.Data(http.StatusOK, summary.ContentType, artifact.Content)
}
