package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

type recordingPoster struct {
	tags []string
	msgs []map[string]interface{}
}

func (p *recordingPoster) Post(tag string, m interface{}) error {
	p.tags = append(p.tags, tag)
	p.msgs = append(p.msgs, m.(map[string]interface{}))
	return nil
}

func TestFluentHandlerFlattens(t *testing.T) {
	p := &recordingPoster{}
	l := slog.New(&fluentHandler{client: p, level: slog.LevelInfo})
	l = l.With("component", "checkout").WithGroup("req")
	l.Info("submitting", "listing_id", 5, slog.Group("contact", "name", "Aziz"), "error", errors.New("boom"))
	l.Debug("dropped")

	if len(p.msgs) != 1 {
		t.Fatalf("posted %d records, want 1", len(p.msgs))
	}
	m := p.msgs[0]
	if p.tags[0] != "info" || m["message"] != "submitting" {
		t.Errorf("tag %q message %v", p.tags[0], m["message"])
	}
	if m["component"] != "checkout" {
		t.Errorf("component = %v", m["component"])
	}
	if m["req.listing_id"] != int64(5) {
		t.Errorf("req.listing_id = %#v", m["req.listing_id"])
	}
	if m["req.contact.name"] != "Aziz" {
		t.Errorf("req.contact.name = %v", m["req.contact.name"])
	}
	if m["req.error"] != "boom" {
		t.Errorf("req.error = %v", m["req.error"])
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	l, closer, err := New(Config{Writer: &buf, JSON: true, Level: ParseLevel("warn")})
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()
	l.Info("hidden")
	l.Warn("shown", "k", "v")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := WithTraceID(context.Background(), "abc")
	if TraceID(ctx) != "abc" {
		t.Errorf("TraceID = %q", TraceID(ctx))
	}
	if TraceID(context.Background()) != "" {
		t.Errorf("empty context has trace id")
	}
	if FromContext(context.Background()) == nil {
		t.Errorf("FromContext returned nil")
	}
}
