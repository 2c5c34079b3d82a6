package tracing

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bneibrit/testinfra"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
)

func TestTracingIngress(t *testing.T) {
	RegisterTestingT(t)

	tracer := mocktracer.New()
	opentracing.SetGlobalTracer(tracer)
	defer opentracing.SetGlobalTracer(opentracing.NoopTracer{})

	router := gin.New()
	router.Use(TracingIngress())
	router.GET("/v1/employers/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/v1/fail", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	t.Run("new root trace named after the route", func(t *testing.T) {
		tracer.Reset()

		req := httptest.NewRequest(http.MethodGet, "/v1/employers/42", nil)
		status, _, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))

		spans := tracer.FinishedSpans()
		Expect(len(spans)).To(Equal(1))
		s := spans[0]
		Expect(s.OperationName).To(Equal("GET /v1/employers/:id"))
		Expect(s.ParentID).To(Equal(0))
		Expect(s.Tag("http.status_code")).To(Equal(uint16(200)))
		Expect(s.Tag("error")).To(BeNil())
		Expect(time.Since(s.FinishTime) < time.Second).To(BeTrue())
	})

	t.Run("server errors are flagged", func(t *testing.T) {
		tracer.Reset()

		req := httptest.NewRequest(http.MethodGet, "/v1/fail", nil)
		status, _, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusInternalServerError))

		spans := tracer.FinishedSpans()
		Expect(len(spans)).To(Equal(1))
		Expect(spans[0].Tag("error")).To(Equal(true))
	})

	t.Run("child trace", func(t *testing.T) {
		tracer.Reset()

		clientSpan := tracer.StartSpan("client")

		req := httptest.NewRequest(http.MethodGet, "/v1/employers/1", nil)
		Expect(tracer.Inject(clientSpan.Context(), opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(req.Header))).To(BeNil())
		status, _, _ := testinfra.ExecuteRequest(req, router)

		clientSpan.Finish()

		Expect(status).To(Equal(http.StatusOK))

		spans := tracer.FinishedSpans()
		Expect(len(spans)).To(Equal(2))
		s0 := spans[1]
		Expect(s0.OperationName).To(Equal("client"))
		Expect(s0.ParentID).To(BeZero())

		s1 := spans[0]
		Expect(s1.OperationName).To(Equal("GET /v1/employers/:id"))
		Expect(s1.ParentID).To(Equal(s0.SpanContext.SpanID))
		Expect(s1.SpanContext.TraceID).To(Equal(s0.SpanContext.TraceID))
	})
}

func TestBootstrapDisabled(t *testing.T) {
	RegisterTestingT(t)

	closer, err := Bootstrap(false)
	Expect(err).To(BeNil())
	Expect(closer.Close()).To(BeNil())
}
