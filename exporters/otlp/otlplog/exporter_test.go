package otlplog

import (
	"context"
	"testing"
	"time"

	sdklog "github.com/signalcore/otelsdk/sdk/log"
)

type fakeClient struct {
	uploads  [][]byte
	shutdown bool
}

func (c *fakeClient) UploadLogs(ctx context.Context, req []byte) error {
	c.uploads = append(c.uploads, req)
	return nil
}

func (c *fakeClient) Shutdown(ctx context.Context) error {
	c.shutdown = true
	return nil
}

func TestExportSkipsEmptyBatch(t *testing.T) {
	client := &fakeClient{}
	exp := New(client)

	if err := exp.Export(context.Background(), nil); err != nil {
		t.Fatalf("Export(nil) = %v, want nil", err)
	}
	if len(client.uploads) != 0 {
		t.Fatalf("expected no upload for an empty batch, got %d", len(client.uploads))
	}
}

func TestExportUploadsEncodedRequest(t *testing.T) {
	client := &fakeClient{}
	exp := New(client)

	records := []sdklog.Record{{Timestamp: time.Unix(0, 1)}}
	if err := exp.Export(context.Background(), records); err != nil {
		t.Fatalf("Export() = %v, want nil", err)
	}
	if len(client.uploads) != 1 {
		t.Fatalf("uploads = %d, want 1", len(client.uploads))
	}
}
