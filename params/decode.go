// params project decode.go
/*
Copyright 2021 Bruce Golden and Matt Spangler

Permission is hereby granted, free of charge, to any person obtaining a copy of
this software and associated documentation files (the "Software"), to deal in
the Software without restriction, including without limitation the rights to
use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
of the Software, and to permit persons to whom the Software is furnished to do
so, subject to the following conditions:
The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/
package params

import (
	"fmt"
	"math"
	"sort"

	"github.com/AshDF91/Risk-based-screening-EconAnalysis/markov"
)

// decoder keeps the first problem found while walking a decoded hjson tree
type decoder struct {
	err error
}

func (d *decoder) fail(format string, a ...interface{}) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: "+format, append([]interface{}{markov.ErrConfiguration}, a...)...)
	}
}

// section is one hjson object and the dotted path it was found at
type section struct {
	d    *decoder
	path string
	m    map[string]interface{}
}

func (s section) key(k string) string {
	if s.path == "" {
		return k
	}
	return s.path + "." + k
}

func (s section) has(k string) bool {
	_, ok := s.m[k]
	return ok
}

func (s section) missing(k string) {
	s.d.fail("'%s:' key not found", s.key(k))
}

// keys in sorted order
func (s section) keys() []string {
	out := make([]string, 0, len(s.m))
	for k := range s.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// sub returns the object under k. A missing optional object is empty.
func (s section) sub(k string, required bool) section {
	out := section{d: s.d, path: s.key(k)}
	v, ok := s.m[k]
	if !ok {
		if required {
			s.missing(k)
		}
		return out
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		s.d.fail("'%s:' should be an object", s.key(k))
		return out
	}
	out.m = m
	return out
}

func (s section) number(k string) float64 {
	if !s.has(k) {
		s.missing(k)
		return 0
	}
	return s.numberOr(k, 0)
}

func (s section) numberOr(k string, def float64) float64 {
	v, ok := s.m[k]
	if !ok {
		return def
	}
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) {
		s.d.fail("'%s:' should be a number, found %v", s.key(k), v)
		return def
	}
	return f
}

func (s section) integer(k string) int {
	if !s.has(k) {
		s.missing(k)
		return 0
	}
	return s.integerOr(k, 0)
}

func (s section) integerOr(k string, def int) int {
	if !s.has(k) {
		return def
	}
	f := s.numberOr(k, float64(def))
	if f != math.Trunc(f) {
		s.d.fail("'%s:' should be a whole number, found %v", s.key(k), f)
		return def
	}
	return int(f)
}

func (s section) str(k string) string {
	if !s.has(k) {
		s.missing(k)
		return ""
	}
	return s.strOr(k, "")
}

func (s section) strOr(k string, def string) string {
	v, ok := s.m[k]
	if !ok {
		return def
	}
	str, ok := v.(string)
	if !ok {
		s.d.fail("'%s:' should be a string, found %v", s.key(k), v)
		return def
	}
	return str
}

func (s section) list(k string, required bool) []interface{} {
	v, ok := s.m[k]
	if !ok {
		if required {
			s.missing(k)
		}
		return nil
	}
	array, ok := v.([]interface{})
	if !ok {
		s.d.fail("'%s:' should be a list", s.key(k))
		return nil
	}
	return array
}

func (s section) strings(k string) []string {
	var out []string
	for i, v := range s.list(k, false) {
		str, ok := v.(string)
		if !ok {
			s.d.fail("'%s[%d]' should be a string, found %v", s.key(k), i, v)
			return nil
		}
		out = append(out, str)
	}
	return out
}

// items returns the objects of a list of objects.
func (s section) items(k string, required bool) []section {
	var out []section
	for i, v := range s.list(k, required) {
		m, ok := v.(map[string]interface{})
		if !ok {
			s.d.fail("'%s[%d]' should be an object", s.key(k), i)
			return nil
		}
		out = append(out, section{d: s.d, path: fmt.Sprintf("%s[%d]", s.key(k), i), m: m})
	}
	return out
}
