package trace

import (
	"fmt"
	"sync"
	"time"

	"github.com/signalcore/otelsdk/attribute"
	"github.com/signalcore/otelsdk/codes"
	"github.com/signalcore/otelsdk/resource"
	sdktrace "github.com/signalcore/otelsdk/trace"
)

// ReadOnlySpan is the immutable view of a finished (or in-flight) span
// handed to SpanProcessor and exporters (§4.4 spanSnapshot).
type ReadOnlySpan interface {
	Name() string
	SpanContext() sdktrace.SpanContext
	Parent() sdktrace.SpanContext
	Kind() sdktrace.SpanKind
	StartTime() time.Time
	EndTime() time.Time
	Attributes() []attribute.KeyValue
	Links() []sdktrace.Link
	Events() []sdktrace.Event
	Status() sdktrace.Status
	InstrumentationScope() InstrumentationScope
	Resource() *resource.Resource
	DroppedAttributes() int
	DroppedEvents() int
	DroppedLinks() int
	ChildSpanCount() int
}

// InstrumentationScope names the Tracer that produced a span (§4.6's
// (name,version,schemaUrl) tuple).
type InstrumentationScope struct {
	Name      string
	Version   string
	SchemaURL string
}

// recordingSpan is the mutable Span implementation backing a
// RecordAndSample or RecordOnly decision (§4.3).
type recordingSpan struct {
	mu sync.Mutex

	name   string
	sc     sdktrace.SpanContext
	parent sdktrace.SpanContext
	kind   sdktrace.SpanKind

	startTime time.Time
	endTime   time.Time
	ended     bool

	attrs  []attribute.KeyValue
	events []sdktrace.Event
	links  []sdktrace.Link
	status sdktrace.Status

	droppedAttrs int
	droppedEvents int
	droppedLinks  int
	childCount    int

	scope    InstrumentationScope
	res      *resource.Resource
	limits   SpanLimits
	onEnd    func(ReadOnlySpan)
}

var _ sdktrace.Span = (*recordingSpan)(nil)
var _ ReadOnlySpan = (*recordingSpan)(nil)

func (s *recordingSpan) SpanContext() sdktrace.SpanContext { return s.sc }

func (s *recordingSpan) IsRecording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.ended
}

func (s *recordingSpan) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	s.name = name
}

func (s *recordingSpan) SetAttributes(kvs ...attribute.KeyValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	s.addAttributesLocked(kvs)
}

func (s *recordingSpan) addAttributesLocked(kvs []attribute.KeyValue) {
	for _, kv := range kvs {
		kv = truncateAttribute(kv, s.limits.AttributeValueLenLimit)
		if s.limits.AttributeCountLimit > 0 && len(s.attrs) >= s.limits.AttributeCountLimit {
			if !s.replaceExistingLocked(kv) {
				s.droppedAttrs++
			}
			continue
		}
		s.setOrAppendLocked(kv)
	}
}

func (s *recordingSpan) setOrAppendLocked(kv attribute.KeyValue) {
	for i, existing := range s.attrs {
		if existing.Key == kv.Key {
			s.attrs[i] = kv
			return
		}
	}
	s.attrs = append(s.attrs, kv)
}

func (s *recordingSpan) replaceExistingLocked(kv attribute.KeyValue) bool {
	for i, existing := range s.attrs {
		if existing.Key == kv.Key {
			s.attrs[i] = kv
			return true
		}
	}
	return false
}

func truncateAttribute(kv attribute.KeyValue, limit int) attribute.KeyValue {
	if limit <= 0 || kv.Value.Type() != attribute.STRING {
		return kv
	}
	s := kv.Value.AsString()
	if len(s) <= limit {
		return kv
	}
	return attribute.String(string(kv.Key), s[:limit])
}

func (s *recordingSpan) AddEvent(name string, kvs ...attribute.KeyValue) {
	s.AddEventWithTimestamp(name, time.Now(), kvs...)
}

func (s *recordingSpan) AddEventWithTimestamp(name string, ts time.Time, kvs ...attribute.KeyValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	if s.limits.EventCountLimit > 0 && len(s.events) >= s.limits.EventCountLimit {
		s.droppedEvents++
		return
	}
	s.events = append(s.events, sdktrace.Event{Name: name, Time: ts, Attributes: kvs})
}

func (s *recordingSpan) AddLink(link sdktrace.Link) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	if s.limits.LinkCountLimit > 0 && len(s.links) >= s.limits.LinkCountLimit {
		s.droppedLinks++
		return
	}
	s.links = append(s.links, link)
}

// SetStatus applies the §4.3 status transition rule: Unset may move to Ok
// or Error; Ok is final; Error accepts only description refinement.
func (s *recordingSpan) SetStatus(code codes.Code, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	if s.status.Code == codes.Ok {
		return
	}
	if s.status.Code == codes.Error && code != codes.Error {
		return
	}
	if code == codes.Unset {
		return
	}
	if code == codes.Error && s.status.Code == codes.Error && description == "" {
		return
	}
	s.status = sdktrace.Status{Code: code, Description: description}
}

const (
	exceptionEventName    = "exception"
	exceptionTypeKey      = "exception.type"
	exceptionMessageKey   = "exception.message"
	exceptionStacktraceKey = "exception.stacktrace"
	exceptionEscapedKey   = "exception.escaped"
)

// RecordException adds an "exception" event and, unless the status is
// already Ok, sets status to Error (§4.3 recordException convenience).
func (s *recordingSpan) RecordException(err error, stacktrace string, escaped bool) {
	if err == nil {
		return
	}
	kvs := []attribute.KeyValue{
		attribute.String(exceptionTypeKey, typeName(err)),
		attribute.String(exceptionMessageKey, err.Error()),
	}
	if stacktrace != "" {
		kvs = append(kvs, attribute.String(exceptionStacktraceKey, stacktrace))
	}
	kvs = append(kvs, attribute.Bool(exceptionEscapedKey, escaped))
	s.AddEvent(exceptionEventName, kvs...)
	s.SetStatus(codes.Error, err.Error())
}

func typeName(err error) string {
	return fmt.Sprintf("%T", err)
}

func (s *recordingSpan) End(opts ...sdktrace.SpanEndOption) {
	cfg := sdktrace.NewSpanEndConfig(opts...)
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return
	}
	s.ended = true
	if !cfg.Timestamp.IsZero() {
		s.endTime = cfg.Timestamp
	} else {
		s.endTime = time.Now()
	}
	s.mu.Unlock()
	if s.onEnd != nil {
		s.onEnd(s)
	}
}

func (s *recordingSpan) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}
func (s *recordingSpan) Parent() sdktrace.SpanContext { return s.parent }
func (s *recordingSpan) Kind() sdktrace.SpanKind       { return s.kind }
func (s *recordingSpan) StartTime() time.Time          { return s.startTime }
func (s *recordingSpan) EndTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endTime
}
func (s *recordingSpan) Attributes() []attribute.KeyValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]attribute.KeyValue, len(s.attrs))
	copy(out, s.attrs)
	return out
}
func (s *recordingSpan) Links() []sdktrace.Link {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sdktrace.Link, len(s.links))
	copy(out, s.links)
	return out
}
func (s *recordingSpan) Events() []sdktrace.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sdktrace.Event, len(s.events))
	copy(out, s.events)
	return out
}
func (s *recordingSpan) Status() sdktrace.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}
func (s *recordingSpan) InstrumentationScope() InstrumentationScope { return s.scope }
func (s *recordingSpan) Resource() *resource.Resource               { return s.res }
func (s *recordingSpan) DroppedAttributes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.droppedAttrs
}
func (s *recordingSpan) DroppedEvents() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.droppedEvents
}
func (s *recordingSpan) DroppedLinks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.droppedLinks
}
func (s *recordingSpan) ChildSpanCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.childCount
}
