package tracing

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// recordingTracer returns a tracer whose ended spans land in the recorder
func recordingTracer(t *testing.T, cfg Config) (*tracetest.SpanRecorder, trace.Tracer) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp, err := NewProvider(context.Background(), cfg, sdktrace.WithSpanProcessor(rec))
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return rec, tp.Tracer(TracerName)
}

// resetGlobalProvider restores a no-op global provider after a test calls Setup
func resetGlobalProvider(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { otel.SetTracerProvider(noop.NewTracerProvider()) })
}

func attrValue(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("OTEL_ENVIRONMENT", "")
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	cfg := DefaultConfig("v1.2.3")

	if cfg.ServiceName != "mediawiki-delete-category" {
		t.Errorf("ServiceName = %q", cfg.ServiceName)
	}
	if cfg.ServiceVersion != "v1.2.3" {
		t.Errorf("ServiceVersion = %q, want v1.2.3", cfg.ServiceVersion)
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.Enabled {
		t.Error("tracing must be off without OTEL_* variables")
	}
	if cfg.Writer == nil {
		t.Error("expected a fallback writer")
	}
}

func TestDefaultConfig_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		enabled  string
		endpoint string
		want     bool
	}{
		{"OTEL_ENABLED", "true", "", true},
		{"endpoint only", "", "http://collector:4318", true},
		{"OTEL_ENABLED other value", "yes", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OTEL_ENABLED", tt.enabled)
			t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", tt.endpoint)

			cfg := DefaultConfig("dev")
			if cfg.Enabled != tt.want {
				t.Errorf("Enabled = %v, want %v", cfg.Enabled, tt.want)
			}
			if cfg.OTLPEndpoint != tt.endpoint {
				t.Errorf("OTLPEndpoint = %q, want %q", cfg.OTLPEndpoint, tt.endpoint)
			}
		})
	}
}

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{Enabled: false})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown returned error: %v", err)
	}
}

func TestSetup_WriterExporter(t *testing.T) {
	resetGlobalProvider(t)

	var buf bytes.Buffer
	shutdown, err := Setup(context.Background(), Config{
		ServiceName:    TracerName,
		ServiceVersion: "v0.9.0",
		Environment:    "test",
		Enabled:        true,
		Writer:         &buf,
		SampleRate:     1.0,
	})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	_, span := StartSpan(context.Background(), "cleanup.run")
	span.End()

	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"cleanup.run"`) {
		t.Errorf("expected exported span in writer output, got:\n%s", out)
	}
	if !strings.Contains(out, "v0.9.0") {
		t.Errorf("expected service version in exported resource, got:\n%s", out)
	}
}

func TestSetup_OTLPEndpointForms(t *testing.T) {
	for _, endpoint := range []string{"http://localhost:4318", "localhost:4318"} {
		t.Run(endpoint, func(t *testing.T) {
			resetGlobalProvider(t)

			shutdown, err := Setup(context.Background(), Config{
				ServiceName:  TracerName,
				Enabled:      true,
				OTLPEndpoint: endpoint,
				SampleRate:   1.0,
			})
			if err != nil {
				t.Fatalf("Setup failed: %v", err)
			}
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = shutdown(ctx)
		})
	}
}

func TestEndpointOptions(t *testing.T) {
	if got := len(endpointOptions("https://collector.example:4318")); got != 1 {
		t.Errorf("URL endpoint: expected 1 option, got %d", got)
	}
	if got := len(endpointOptions("collector.example:4318")); got != 2 {
		t.Errorf("host:port endpoint: expected endpoint and insecure options, got %d", got)
	}
}

func TestNewProvider_Resource(t *testing.T) {
	rec, tracer := recordingTracer(t, Config{
		ServiceName:    TracerName,
		ServiceVersion: "v2.0.0",
		Environment:    "staging",
		SampleRate:     1.0,
	})

	_, span := tracer.Start(context.Background(), "wiki.api.login")
	span.End()

	ended := rec.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 span, got %d", len(ended))
	}
	set := ended[0].Resource().Set()
	for key, want := range map[string]string{
		"service.name":    TracerName,
		"service.version": "v2.0.0",
		"environment":     "staging",
	} {
		v, ok := set.Value(attribute.Key(key))
		if !ok || v.AsString() != want {
			t.Errorf("resource %s = %q, want %q", key, v.AsString(), want)
		}
	}
}

func TestNewProvider_Sampling(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		wantSpans  int
	}{
		{"always", 1.0, 1},
		{"above one", 1.5, 1},
		{"never", 0, 0},
		{"negative", -0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, tracer := recordingTracer(t, Config{ServiceName: TracerName, SampleRate: tt.sampleRate})

			_, span := tracer.Start(context.Background(), "cleanup.candidate")
			span.End()

			if got := len(rec.Ended()); got != tt.wantSpans {
				t.Errorf("recorded %d spans, want %d", got, tt.wantSpans)
			}
		})
	}
}

func TestAddCandidateAttributes(t *testing.T) {
	rec, tracer := recordingTracer(t, Config{SampleRate: 1.0})

	_, span := tracer.Start(context.Background(), "cleanup.candidate")
	AddCandidateAttributes(span, "File:Example.png", 2, "skipped")
	span.End()

	got := rec.Ended()[0]
	if v, _ := attrValue(got, AttrCandidate); v.AsString() != "File:Example.png" {
		t.Errorf("%s = %q", AttrCandidate, v.AsString())
	}
	if v, _ := attrValue(got, AttrReferrers); v.AsInt64() != 2 {
		t.Errorf("%s = %d, want 2", AttrReferrers, v.AsInt64())
	}
	if v, _ := attrValue(got, AttrOutcome); v.AsString() != "skipped" {
		t.Errorf("%s = %q, want skipped", AttrOutcome, v.AsString())
	}
}

func TestAddWikiAttributes(t *testing.T) {
	tests := []struct {
		name     string
		action   string
		page     string
		wantPage bool
	}{
		{"backlinks query", "query:backlinks", "File:Example.png", true},
		{"no page", "login", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, tracer := recordingTracer(t, Config{SampleRate: 1.0})

			_, span := tracer.Start(context.Background(), "wiki.api")
			AddWikiAttributes(span, tt.action, tt.page)
			span.End()

			got := rec.Ended()[0]
			if v, _ := attrValue(got, "wiki.api.action"); v.AsString() != tt.action {
				t.Errorf("wiki.api.action = %q, want %q", v.AsString(), tt.action)
			}
			if _, ok := attrValue(got, "wiki.page.title"); ok != tt.wantPage {
				t.Errorf("wiki.page.title present = %v, want %v", ok, tt.wantPage)
			}
		})
	}
}

func TestRecordError(t *testing.T) {
	rec, tracer := recordingTracer(t, Config{SampleRate: 1.0})

	_, span := tracer.Start(context.Background(), "cleanup.run")
	RecordError(span, nil)
	RecordError(span, errors.New("permissiondenied"))
	span.End()

	events := rec.Ended()[0].Events()
	if len(events) != 1 || events[0].Name != "exception" {
		t.Errorf("expected one exception event, got %+v", events)
	}
}
