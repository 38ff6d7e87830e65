package weave

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/tendermint/tendermint/libs/log"
)

func TestContextLogger(t *testing.T) {
	bg := context.Background()
	if GetLogger(bg) != DefaultLogger {
		t.Fatal("context without a logger must use the default one")
	}

	var buf bytes.Buffer
	ctx := WithLogger(bg, log.NewTMLogger(&buf))
	ctx = WithLogInfo(ctx, "module", "escrow")
	GetLogger(ctx).Info("approved", "id", 7)

	out := buf.String()
	if !strings.Contains(out, "module=escrow") {
		t.Fatalf("log info not carried: %q", out)
	}
	if !strings.Contains(out, "id=7") {
		t.Fatalf("log values not written: %q", out)
	}
}
