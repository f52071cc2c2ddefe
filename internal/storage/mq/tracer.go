package mq

import (
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("internal/storage/mq")

// kafkaHooks returns the kotel hooks that open a span per produced record and
// write its trace context into the record headers.
func kafkaHooks() []kgo.Hook {
	kTracer := kotel.NewTracer(
		kotel.TracerProvider(otel.GetTracerProvider()),
		kotel.TracerPropagator(otel.GetTextMapPropagator()),
	)
	return kotel.NewKotel(kotel.WithTracer(kTracer)).Hooks()
}
