package tracing

import (
	"io"

	"bneibrit/common"

	"github.com/opentracing/opentracing-go"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Bootstrap installs a jaeger tracer configured from the JAEGER_* environment as the
// global tracer. When disabled the global no-op tracer stays in place.
func Bootstrap(enabled bool) (io.Closer, error) {
	if !enabled {
		return nopCloser{}, nil
	}
	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		return nil, err
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = common.ServiceName
	}
	tracer, closer, err := cfg.NewTracer(jaegercfg.Logger(jaeger.StdLogger))
	if err != nil {
		return nil, err
	}
	opentracing.SetGlobalTracer(tracer)
	common.Log.WithField("service", cfg.ServiceName).Info("jaeger tracing enabled")
	return closer, nil
}
