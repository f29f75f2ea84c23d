package session

import (
	"context"

	opentracing "github.com/opentracing/opentracing-go"
)

func traced(ctx context.Context, tr opentracing.Tracer, name string, action func(opentracing.Span)) {
	var opts []opentracing.StartSpanOption
	if parent := opentracing.SpanFromContext(ctx); parent != nil {
		opts = append(opts, opentracing.ChildOf(parent.Context()))
	}
	span := tr.StartSpan(name, opts...)
	defer span.Finish()
	action(span)
}
