package binding

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// SectionPrefix is the header prefix of a binding section, as in
// "[sdl controller binding <guid>]".
const SectionPrefix = "sdl controller binding"

// UnknownKeyError is returned by Parse when a line's key belongs to none of
// the binding vocabularies.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown config key %q", e.Key)
}

// Record holds every binding of one device. All buttons and axes always have
// a value.
type Record struct {
	id      string
	buttons [buttonCount]int
	floats  [floatAxisCount]float32
	ints    [intAxisCount]int
}

// Fresh returns a record with every member at its default.
func Fresh(id string) *Record {
	r := &Record{id: id}
	r.ResetToDefault()
	return r
}

// Parse builds a record from the body lines of a binding section. Values that
// fail to parse fall back to their default; an unrecognized key aborts the
// parse with an *UnknownKeyError.
func Parse(id string, lines []string) (*Record, error) {
	var (
		buttons [buttonCount]bool
		floats  [floatAxisCount]bool
		ints    [intAxisCount]bool
	)
	r := &Record{id: id}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, _ := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		res, err := r.assign(key, value)
		if err != nil {
			return nil, err
		}
		switch res.kind {
		case assignedButton:
			buttons[res.index] = true
		case assignedFloat:
			floats[res.index] = true
		case assignedInt:
			ints[res.index] = true
		}
	}

	for i, set := range buttons {
		if !set {
			r.buttons[i] = buttonDefaults[i]
		}
	}
	for i, set := range floats {
		if !set {
			r.floats[i] = floatAxisDefaults[i]
		}
	}
	for i, set := range ints {
		if !set {
			r.ints[i] = intAxisDefaults[i]
		}
	}
	return r, nil
}

type assignKind int

const (
	valueAbsent assignKind = iota
	assignedButton
	assignedFloat
	assignedInt
)

type assignResult struct {
	kind  assignKind
	index int
}

// assign stores value under key. A recognized key whose value does not parse
// yields valueAbsent.
func (r *Record) assign(key, value string) (assignResult, error) {
	if b, ok := buttonByKey[key]; ok {
		v, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return assignResult{kind: valueAbsent}, nil
		}
		r.buttons[b] = int(v)
		return assignResult{kind: assignedButton, index: int(b)}, nil
	}
	if a, ok := floatAxisByKey[key]; ok {
		v, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return assignResult{kind: valueAbsent}, nil
		}
		r.floats[a] = float32(v)
		return assignResult{kind: assignedFloat, index: int(a)}, nil
	}
	if a, ok := intAxisByKey[key]; ok {
		v, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return assignResult{kind: valueAbsent}, nil
		}
		r.ints[a] = int(v)
		return assignResult{kind: assignedInt, index: int(a)}, nil
	}
	return assignResult{}, &UnknownKeyError{Key: key}
}

// ID returns the device GUID string the record belongs to.
func (r *Record) ID() string { return r.id }

func (r *Record) Button(b Button) int { return r.buttons[b] }

func (r *Record) FloatAxis(a FloatAxis) float32 { return r.floats[a] }

func (r *Record) IntAxis(a IntAxis) int { return r.ints[a] }

func (r *Record) SetButton(b Button, value int) {
	r.buttons[b] = value
}

func (r *Record) SetFloatAxis(a FloatAxis, value float32) {
	r.floats[a] = value
}

func (r *Record) SetIntAxis(a IntAxis, value int) {
	r.ints[a] = value
}

// Set assigns a value by configuration key, using the same vocabulary and
// number syntax as Parse. Unlike Parse, a malformed value is an error.
func (r *Record) Set(key, value string) error {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	res, err := r.assign(key, value)
	if err != nil {
		return err
	}
	if res.kind == valueAbsent {
		return errors.Errorf("invalid value %q for key %q", value, key)
	}
	return nil
}

// ResetToDefault discards every explicit binding.
func (r *Record) ResetToDefault() {
	r.buttons = buttonDefaults
	r.floats = floatAxisDefaults
	r.ints = intAxisDefaults
}

// Equal reports whether both records hold the same values. The device id is
// not compared.
func (r *Record) Equal(o *Record) bool {
	return r.buttons == o.buttons && r.floats == o.floats && r.ints == o.ints
}

// Clone returns an independent copy.
func (r *Record) Clone() *Record {
	c := *r
	return &c
}

// Serialize renders the record as "key=value" lines: buttons first, then
// float axes, then int axes, each in declaration order.
func (r *Record) Serialize() []string {
	out := make([]string, 0, buttonCount+floatAxisCount+intAxisCount)
	for i, v := range r.buttons {
		out = append(out, buttonKeys[i]+"="+strconv.Itoa(v))
	}
	for i, v := range r.floats {
		out = append(out, floatAxisKeys[i]+"="+FormatFloat(v))
	}
	for i, v := range r.ints {
		out = append(out, intAxisKeys[i]+"="+strconv.Itoa(v))
	}
	return out
}

// FormatFloat renders a threshold with the shortest exact representation,
// keeping at least one decimal place ("16.0").
func FormatFloat(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', -1, 32)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
