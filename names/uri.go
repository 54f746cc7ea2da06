package names

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBadEscape = errors.New("names: invalid percent escape in name uri")

const unescaped = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~+"

// ParseName parses the slash separated uri form produced by String. Empty
// path segments are ignored, so "/", "" and "//" all parse to the root
// name. Bytes outside the unreserved set must be percent escaped.
func ParseName(s string) (Name, error) {
	var n Name
	for _, seg := range strings.Split(s, "/") {
		if seg == "" {
			continue
		}
		c, err := unescapeComponent(seg)
		if err != nil {
			return nil, err
		}
		n = append(n, c)
	}
	return n, nil
}

// MustParseName is a test convenience that panics on a malformed uri.
func MustParseName(s string) Name {
	n, err := ParseName(s)
	if err != nil {
		panic(err)
	}
	return n
}

// String renders the name in slash separated uri form. The root name
// renders as "/".
func (a Name) String() string {
	if len(a) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, c := range a {
		b.WriteByte('/')
		escapeComponent(&b, c)
	}
	return b.String()
}

func escapeComponent(b *strings.Builder, c Component) {
	for _, x := range c {
		if strings.IndexByte(unescaped, x) >= 0 {
			b.WriteByte(x)
			continue
		}
		fmt.Fprintf(b, "%%%02X", x)
	}
}

func unescapeComponent(seg string) (Component, error) {
	c := make(Component, 0, len(seg))
	for i := 0; i < len(seg); i++ {
		if seg[i] != '%' {
			c = append(c, seg[i])
			continue
		}
		if i+2 >= len(seg) {
			return nil, fmt.Errorf("%w: %q", ErrBadEscape, seg)
		}
		hi, ok1 := unhex(seg[i+1])
		lo, ok2 := unhex(seg[i+2])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: %q", ErrBadEscape, seg)
		}
		c = append(c, hi<<4|lo)
		i += 2
	}
	return c, nil
}

func unhex(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}
