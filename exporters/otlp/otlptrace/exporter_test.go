package otlptrace

import (
	"context"
	"testing"
	"time"

	"github.com/signalcore/otelsdk/attribute"
	"github.com/signalcore/otelsdk/codes"
	"github.com/signalcore/otelsdk/resource"
	sdktrace "github.com/signalcore/otelsdk/sdk/trace"
	apitrace "github.com/signalcore/otelsdk/trace"
)

type fakeClient struct {
	uploads  [][]byte
	shutdown bool
	err      error
}

func (c *fakeClient) UploadTraces(ctx context.Context, req []byte) error {
	c.uploads = append(c.uploads, req)
	return c.err
}

func (c *fakeClient) Shutdown(ctx context.Context) error {
	c.shutdown = true
	return nil
}

type stubSpan struct{}

func (stubSpan) Name() string                     { return "op" }
func (stubSpan) SpanContext() apitrace.SpanContext { return apitrace.SpanContext{} }
func (stubSpan) Parent() apitrace.SpanContext      { return apitrace.SpanContext{} }
func (stubSpan) Kind() apitrace.SpanKind           { return apitrace.SpanKindInternal }
func (stubSpan) StartTime() time.Time              { return time.Unix(0, 1) }
func (stubSpan) EndTime() time.Time                { return time.Unix(0, 2) }
func (stubSpan) Attributes() []attribute.KeyValue  { return nil }
func (stubSpan) Links() []apitrace.Link            { return nil }
func (stubSpan) Events() []apitrace.Event          { return nil }
func (stubSpan) Status() apitrace.Status           { return apitrace.Status{Code: codes.Unset} }
func (stubSpan) InstrumentationScope() sdktrace.InstrumentationScope {
	return sdktrace.InstrumentationScope{Name: "test"}
}
func (stubSpan) Resource() *resource.Resource { return resource.Empty() }
func (stubSpan) DroppedAttributes() int       { return 0 }
func (stubSpan) DroppedEvents() int           { return 0 }
func (stubSpan) DroppedLinks() int            { return 0 }
func (stubSpan) ChildSpanCount() int          { return 0 }

func TestExportSpansSkipsEmptyBatch(t *testing.T) {
	client := &fakeClient{}
	exp := New(client)

	if err := exp.ExportSpans(context.Background(), nil); err != nil {
		t.Fatalf("ExportSpans(nil) = %v, want nil", err)
	}
	if len(client.uploads) != 0 {
		t.Fatalf("expected no upload for an empty batch, got %d", len(client.uploads))
	}
}

func TestExportSpansUploadsEncodedRequest(t *testing.T) {
	client := &fakeClient{}
	exp := New(client)

	err := exp.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stubSpan{}})
	if err != nil {
		t.Fatalf("ExportSpans() = %v, want nil", err)
	}
	if len(client.uploads) != 1 {
		t.Fatalf("uploads = %d, want 1", len(client.uploads))
	}
	if len(client.uploads[0]) == 0 {
		t.Fatal("uploaded request payload is empty")
	}
}

func TestShutdownDelegatesToClient(t *testing.T) {
	client := &fakeClient{}
	exp := New(client)

	if err := exp.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() = %v, want nil", err)
	}
	if !client.shutdown {
		t.Fatal("Shutdown did not delegate to client")
	}
}
