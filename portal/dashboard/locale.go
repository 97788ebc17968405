package dashboard

import (
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// supported locales; the first entry is the fallback.
var supported = []struct {
	tag    language.Tag
	layout string
}{
	{language.AmericanEnglish, "1/2/2006"},
	{language.BritishEnglish, "02/01/2006"},
	{language.German, "2.1.2006"},
	{language.French, "02/01/2006"},
	{language.Spanish, "2/1/2006"},
	{language.Italian, "2/1/2006"},
	{language.Dutch, "2-1-2006"},
	{language.Portuguese, "02/01/2006"},
	{language.Russian, "02.01.2006"},
	{language.Japanese, "2006/1/2"},
	{language.Chinese, "2006/1/2"},
	{language.Korean, "2006. 1. 2."},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(supported))
	for i, s := range supported {
		tags[i] = s.tag
	}
	return language.NewMatcher(tags)
}()

// Locale formats calendar dates for the viewer.
type Locale struct {
	Tag      language.Tag
	Location *time.Location
	layout   string
}

// NewLocale matches name (a BCP 47 tag or a POSIX locale such as en_GB.UTF-8) against the
// supported locales. Unknown names fall back to en-US.
func NewLocale(name string) Locale {
	idx := 0
	if tag, err := language.Parse(normalizeLocale(name)); err == nil {
		_, i, conf := matcher.Match(tag)
		if conf != language.No {
			idx = i
		}
	}
	return Locale{Tag: supported[idx].tag, Location: time.Local, layout: supported[idx].layout}
}

// EnvLocale returns the viewer's locale name from LC_ALL, LC_TIME or LANG.
func EnvLocale() string {
	for _, key := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

func normalizeLocale(name string) string {
	if i := strings.IndexAny(name, ".@"); i >= 0 {
		name = name[:i]
	}
	if name == "C" || name == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(name, "_", "-")
}

var dateOnlyLayouts = []string{"2006-01-02", "2006-01", "2006"}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC1123,
	time.RFC1123Z,
}

// FormatDate renders a stored date as a calendar date. Date-only values keep their calendar day;
// timestamps are shown in the viewer's time zone. Unparseable values render as "".
func (l Locale) FormatDate(v interface{}) string {
	if !truthy(v) {
		return ""
	}
	layout := l.layout
	if layout == "" {
		layout = supported[0].layout
	}

	if ms, ok := v.(float64); ok {
		return time.UnixMilli(int64(ms)).In(l.location()).Format(layout)
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	for _, lay := range dateOnlyLayouts {
		if t, err := time.Parse(lay, s); err == nil {
			return t.Format(layout)
		}
	}
	for _, lay := range timestampLayouts {
		if t, err := time.ParseInLocation(lay, s, l.location()); err == nil {
			return t.In(l.location()).Format(layout)
		}
	}
	return ""
}

func (l Locale) location() *time.Location {
	if l.Location == nil {
		return time.Local
	}
	return l.Location
}
