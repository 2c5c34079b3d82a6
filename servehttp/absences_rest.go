package servehttp

import (
	"errors"
	"mime"
	"net/http"
	"path"

	"bneibrit/bizerror"
	"bneibrit/client/oss"
	"bneibrit/common"
	"bneibrit/domain/absence"

	alioss "github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type certificateUploaded struct {
	EmployerID types.ID `json:"employerId"`
	FileName   string   `json:"fileName"`
	ObjectKey  string   `json:"objectKey"`
}

func (s *Server) handleQueryAbsences(c *gin.Context) {
	c.JSON(http.StatusOK, s.Workspace.Absences())
}

func (s *Server) handleReportAbsence(c *gin.Context) {
	report := absence.Report{}
	if err := c.ShouldBindBodyWith(&report, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}
	record, err := s.Workspace.ReportAbsence(report)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, record)
}

// handleUploadCertificate stores a medical certificate; the returned file name is then
// referenced by a sick leave report.
func (s *Server) handleUploadCertificate(c *gin.Context) {
	employerID, err := types.ParseID(c.PostForm("employerId"))
	if err != nil {
		panic(&common.ErrBadParam{Cause: errors.New("invalid employerId")})
	}
	if _, err := s.Workspace.Employer(employerID); err != nil {
		panic(err)
	}
	header, err := c.FormFile("file")
	if err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}
	key, err := absence.CertificateObjectKey(employerID, header.Filename)
	if err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}

	file, err := header.Open()
	if err != nil {
		panic(err)
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := oss.PutObjectFunc(c.Request.Context(), key, file, alioss.ContentType(contentType)); err != nil {
		if errors.Is(err, oss.ErrArchiveDisabled) {
			archiveUnavailable(c)
			return
		}
		panic(err)
	}
	c.JSON(http.StatusCreated, &certificateUploaded{EmployerID: employerID, FileName: path.Base(key), ObjectKey: key})
}

func (s *Server) handleDownloadCertificate(c *gin.Context) {
	id := pathID(c, "id")
	var record *absence.Record
	for _, r := range s.Workspace.Absences() {
		if r.ID == id {
			found := r
			record = &found
			break
		}
	}
	if record == nil || record.MedicalCertificateFileName == "" {
		panic(bizerror.ErrNotFound)
	}
	key, err := absence.CertificateObjectKey(record.EmployerID, record.MedicalCertificateFileName)
	if err != nil {
		panic(bizerror.ErrNotFound)
	}

	reader, err := oss.GetObjectFunc(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, oss.ErrArchiveDisabled) {
			archiveUnavailable(c)
			return
		}
		panic(err)
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, reader, map[string]string{
		"Content-Disposition": `attachment; filename="` + path.Base(key) + `"`,
	})
}

func archiveUnavailable(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, &common.ErrorBody{Code: "archive.disabled", Message: oss.ErrArchiveDisabled.Error()})
	c.Abort()
}
