package decode

import (
	"fmt"
	"sort"
	"sync"

	"github.com/techlier/wgpv/internal/codes"
)

// DiagKind classifies a recovered decode fault.
type DiagKind int

// Diagnostic kinds.
const (
	DiagUnknownCode DiagKind = iota
	DiagUnknownTemplate
	DiagUnsupportedField
	DiagValidation
	DiagUnderrun
	DiagLengthMismatch
)

var diagNames = [...]string{
	"unknown_code",
	"unknown_template",
	"unsupported_field",
	"validation",
	"underrun",
	"length_mismatch",
}

func (k DiagKind) String() string {
	if k >= 0 && int(k) < len(diagNames) {
		return diagNames[k]
	}
	return fmt.Sprintf("DiagKind(%d)", int(k))
}

// Diagnostic records a fault that was absorbed instead of failing the
// decode.
type Diagnostic struct {
	Kind      DiagKind
	Container string
	Field     string
	Table     codes.Table
	Outer     int
	Value     int64
	Message   string
}

func (d Diagnostic) String() string {
	s := d.Kind.String()
	if d.Container != "" {
		s += " " + d.Container
		if d.Field != "" {
			s += "." + d.Field
		}
	}
	if d.Message != "" {
		s += ": " + d.Message
	}
	return s
}

// Diagnostics collects the diagnostics of one decode session. It is owned
// by whoever runs the session and is safe for concurrent use.
type Diagnostics struct {
	mu      sync.Mutex
	entries []Diagnostic
	unknown map[codes.Table]map[int]struct{}
	hooks   []func(Diagnostic)
}

// NewDiagnostics creates an empty collector.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{unknown: make(map[codes.Table]map[int]struct{})}
}

// OnRecord registers fn to be called for every recorded diagnostic.
func (d *Diagnostics) OnRecord(fn func(Diagnostic)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hooks = append(d.hooks, fn)
}

// Record adds a diagnostic.
func (d *Diagnostics) Record(diag Diagnostic) {
	d.mu.Lock()
	d.entries = append(d.entries, diag)
	if diag.Kind == DiagUnknownCode {
		m, ok := d.unknown[diag.Table]
		if !ok {
			m = make(map[int]struct{})
			d.unknown[diag.Table] = m
		}
		m[int(diag.Value)] = struct{}{}
	}
	hooks := d.hooks
	d.mu.Unlock()

	for _, fn := range hooks {
		fn(diag)
	}
}

// Entries returns a copy of all recorded diagnostics in order.
func (d *Diagnostics) Entries() []Diagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Diagnostic, len(d.entries))
	copy(out, d.entries)
	return out
}

// Len returns the number of recorded diagnostics.
func (d *Diagnostics) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// Count returns the number of diagnostics of the given kind.
func (d *Diagnostics) Count(kind DiagKind) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, e := range d.entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// UnknownCodes returns, per code table, the distinct raw values that did
// not resolve, in ascending order.
func (d *Diagnostics) UnknownCodes() map[codes.Table][]int {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[codes.Table][]int, len(d.unknown))
	for table, values := range d.unknown {
		list := make([]int, 0, len(values))
		for v := range values {
			list = append(list, v)
		}
		sort.Ints(list)
		out[table] = list
	}
	return out
}

// Reset drops all recorded diagnostics. Hooks stay registered.
func (d *Diagnostics) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = nil
	d.unknown = make(map[codes.Table]map[int]struct{})
}
