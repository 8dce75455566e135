package schema

import (
	"cmp"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
)

// All runs every check in order on the progressively cleaned value and
// collects all their messages.
func All[V any](checks ...Check[V]) Check[V] {
	return func(key string, v V) Result[V] {
		res := Result[V]{Value: v}
		for _, check := range checks {
			r := check(key, res.Value)
			res.Value = r.Value
			res.Messages = append(res.Messages, r.Messages...)
		}
		return res
	}
}

// Any accepts every value unchanged.
func Any[V any](_ string, v V) Result[V] {
	return Result[V]{Value: v}
}

// Trim removes leading and trailing white space.
func Trim(_ string, v string) Result[string] {
	return Result[string]{Value: strings.TrimSpace(v)}
}

// Lower lower-cases the value.
func Lower(_ string, v string) Result[string] {
	return Result[string]{Value: strings.ToLower(v)}
}

// NotEmpty rejects the empty string.
func NotEmpty(key string, v string) Result[string] {
	if v == "" {
		return invalid(v, key+" cannot be empty")
	}
	return Result[string]{Value: v}
}

// MinLen rejects values shorter than n characters.
func MinLen(n int) Check[string] {
	return func(key string, v string) Result[string] {
		if utf8.RuneCountInString(v) < n {
			return invalid(v, fmt.Sprintf("%s must be at least %d characters long", key, n))
		}
		return Result[string]{Value: v}
	}
}

// MaxLen rejects values longer than n characters.
func MaxLen(n int) Check[string] {
	return func(key string, v string) Result[string] {
		if utf8.RuneCountInString(v) > n {
			return invalid(v, fmt.Sprintf("%s must be at most %d characters long", key, n))
		}
		return Result[string]{Value: v}
	}
}

// Tagger validates a single value against a validator tag.
type Tagger interface {
	Var(value any, tag string) bool
}

// Tag rejects values that do not satisfy the validator tag.
func Tag(v Tagger, tag, suffix string) Check[string] {
	return func(key string, s string) Result[string] {
		if !v.Var(s, tag) {
			return invalid(s, key+" "+suffix)
		}
		return Result[string]{Value: s}
	}
}

// Email trims, lower-cases and checks the address format. An empty value is
// reported as empty only.
func Email(v Tagger) Check[string] {
	format := Tag(v, "email", "must be a valid email address")
	return func(key string, s string) Result[string] {
		res := All(Trim, Lower, NotEmpty)(key, s)
		if !res.IsValid() {
			return res
		}
		return format(key, res.Value)
	}
}

// Password enforces 8 to 72 characters with at least one upper-case letter,
// one lower-case letter and one special character. Every broken rule gets its
// own message. The value is not trimmed.
func Password(key string, v string) Result[string] {
	res := Result[string]{Value: v}

	n := utf8.RuneCountInString(v)
	if n < 8 {
		res.Messages = append(res.Messages, key+" must be at least 8 characters long")
	}
	if n > 72 {
		res.Messages = append(res.Messages, key+" must be at most 72 characters long")
	}
	if !strings.ContainsFunc(v, unicode.IsUpper) {
		res.Messages = append(res.Messages, key+" must contain at least one uppercase letter")
	}
	if !strings.ContainsFunc(v, unicode.IsLower) {
		res.Messages = append(res.Messages, key+" must contain at least one lowercase letter")
	}
	if !strings.ContainsFunc(v, isSpecial) {
		res.Messages = append(res.Messages, key+" must contain at least one special character")
	}

	return res
}

// Between rejects values outside [lo, hi].
func Between[N cmp.Ordered](lo, hi N) Check[N] {
	return func(key string, v N) Result[N] {
		if v < lo || v > hi {
			return invalid(v, fmt.Sprintf("%s must be between %v and %v", key, lo, hi))
		}
		return Result[N]{Value: v}
	}
}

// Past parses a date in layout and rejects dates that are not before now.
// The cleaned value is the trimmed input.
func Past(layout string, now func() time.Time) Check[string] {
	return func(key string, v string) Result[string] {
		v = strings.TrimSpace(v)
		if v == "" {
			return invalid(v, key+" cannot be empty")
		}

		t, err := time.Parse(layout, v)
		if err != nil {
			return invalid(v, fmt.Sprintf("%s must be a date in the format %s", key, layout))
		}
		if !t.Before(now()) {
			return invalid(v, key+" must be in the past")
		}
		return Result[string]{Value: v}
	}
}

// OneOf rejects values not in allowed.
func OneOf[V comparable](allowed ...V) Check[V] {
	return func(key string, v V) Result[V] {
		if !lo.Contains(allowed, v) {
			return invalid(v, fmt.Sprintf("%s must be one of %v", key, allowed))
		}
		return Result[V]{Value: v}
	}
}

// Optional applies check only to non-empty values.
func Optional(check Check[string]) Check[string] {
	return func(key string, v string) Result[string] {
		if strings.TrimSpace(v) == "" {
			return Result[string]{Value: ""}
		}
		return check(key, v)
	}
}

func isSpecial(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
}

func invalid[V any](v V, msg string) Result[V] {
	return Result[V]{Value: v, Messages: []string{msg}}
}
