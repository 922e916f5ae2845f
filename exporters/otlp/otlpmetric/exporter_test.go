package otlpmetric

import (
	"context"
	"testing"

	"github.com/signalcore/otelsdk/resource"
	sdkmetric "github.com/signalcore/otelsdk/sdk/metric"
)

type fakeClient struct {
	uploads  [][]byte
	shutdown bool
}

func (c *fakeClient) UploadMetrics(ctx context.Context, req []byte) error {
	c.uploads = append(c.uploads, req)
	return nil
}

func (c *fakeClient) Shutdown(ctx context.Context) error {
	c.shutdown = true
	return nil
}

func TestExportUploadsEncodedRequest(t *testing.T) {
	client := &fakeClient{}
	exp := New(client)

	rm := sdkmetric.ResourceMetrics{Resource: resource.Empty()}
	if err := exp.Export(context.Background(), rm); err != nil {
		t.Fatalf("Export() = %v, want nil", err)
	}
	if len(client.uploads) != 1 {
		t.Fatalf("uploads = %d, want 1", len(client.uploads))
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
