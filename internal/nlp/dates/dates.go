// Package dates resolves natural-language date and time phrases against a
// reference time. The pipeline treats it as a black box: given text and a
// reference instant it either names one timestamp plus the matched spans,
// or reports that no date was mentioned.
//
// The rule set is fixed-vocabulary, like the rest of the pipeline: relative
// day words, weekday names (with the Polish inflected forms actually used in
// commands), "za N dni" offsets and clock times. It does not attempt general
// grammar.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/taskomat/taskomat/internal/domain"
)

// Resolver implements domain.DateResolver. Locale picks the rule tables;
// PreferFuture biases ambiguous phrases ("w piątek" said on a Friday) toward
// the next occurrence instead of the past or passed one.
type Resolver struct {
	preferFuture bool

	relDayRe   *regexp.Regexp
	inDaysRe   *regexp.Regexp
	nextWeekRe *regexp.Regexp
	weekdayRe  *regexp.Regexp
	clockRe    *regexp.Regexp
	dayPartRe  *regexp.Regexp

	relDays  map[string]int
	weekdays map[string]time.Weekday
	dayParts map[string]int
}

// New builds a resolver for the locale. "pl" loads the Polish tables plus
// the English equivalents; anything else gets English only.
func New(locale string, preferFuture bool) *Resolver {
	r := &Resolver{
		preferFuture: preferFuture,
		relDays: map[string]int{
			"today":    0,
			"tomorrow": 1,
		},
		weekdays: map[string]time.Weekday{
			"monday":    time.Monday,
			"tuesday":   time.Tuesday,
			"wednesday": time.Wednesday,
			"thursday":  time.Thursday,
			"friday":    time.Friday,
			"saturday":  time.Saturday,
			"sunday":    time.Sunday,
		},
		dayParts: map[string]int{
			"morning": 8,
			"evening": 19,
		},
	}

	if strings.EqualFold(locale, "pl") {
		r.relDays["dziś"] = 0
		r.relDays["dzisiaj"] = 0
		r.relDays["jutro"] = 1
		r.relDays["pojutrze"] = 2

		r.weekdays["poniedziałek"] = time.Monday
		r.weekdays["wtorek"] = time.Tuesday
		r.weekdays["środa"] = time.Wednesday
		r.weekdays["środę"] = time.Wednesday
		r.weekdays["czwartek"] = time.Thursday
		r.weekdays["piątek"] = time.Friday
		r.weekdays["sobota"] = time.Saturday
		r.weekdays["sobotę"] = time.Saturday
		r.weekdays["niedziela"] = time.Sunday
		r.weekdays["niedzielę"] = time.Sunday

		r.dayParts["rano"] = 8
		r.dayParts["wieczorem"] = 19
		r.dayParts["po południu"] = 15
	}

	r.compile()
	return r
}

// compile builds the match patterns from the loaded tables. \b is ASCII-only
// and misfires next to diacritics, so word boundaries are explicit
// letter-class checks and every payload sits in capture group 1.
func (r *Resolver) compile() {
	rel := make(map[string]struct{}, len(r.relDays))
	for k := range r.relDays {
		rel[k] = struct{}{}
	}
	r.relDayRe = regexp.MustCompile(`(?i)(?:^|[^\p{L}])(` + altSet(rel) + `)(?:[^\p{L}]|$)`)
	r.inDaysRe = regexp.MustCompile(`(?i)(?:^|[^\p{L}])(za\s+([0-9]+)\s+(?:dni|dzień|dnia)|in\s+([0-9]+)\s+days?)(?:[^\p{L}]|$)`)
	r.nextWeekRe = regexp.MustCompile(`(?i)(?:^|[^\p{L}])(za\s+tydzień|w\s+przyszłym\s+tygodniu|next\s+week)(?:[^\p{L}]|$)`)

	wd := make(map[string]struct{}, len(r.weekdays))
	for k := range r.weekdays {
		wd[k] = struct{}{}
	}
	r.weekdayRe = regexp.MustCompile(`(?i)(?:^|[^\p{L}])((?:(?:w|we|on)\s+)?(` + altSet(wd) + `))(?:[^\p{L}]|$)`)

	r.clockRe = regexp.MustCompile(`(?i)(?:^|[^\p{L}])((?:o|at)\s+([0-9]{1,2})(?::([0-9]{2}))?(?:\s*(am|pm))?)(?:[^0-9\p{L}]|$)`)

	dp := make(map[string]struct{}, len(r.dayParts))
	for k := range r.dayParts {
		dp[k] = struct{}{}
	}
	r.dayPartRe = regexp.MustCompile(`(?i)(?:^|[^\p{L}])(` + altSet(dp) + `)(?:[^\p{L}]|$)`)
}

// Resolve scans the text for a day phrase and a clock phrase and combines
// them. Either may be absent; with neither present there is no date. Pure:
// the same text and reference always resolve the same way.
func (r *Resolver) Resolve(text string, now time.Time) (domain.DateResolution, bool) {
	day, dayOK := r.findDay(text, now)
	clock, clockOK := r.findClock(text)

	if !dayOK && !clockOK {
		return domain.DateResolution{}, false
	}

	var spans []domain.Span
	offset, hour, minute := 0, 0, 0
	timed := false

	if clockOK {
		hour, minute = clock.hour, clock.minute
		timed = true
		spans = append(spans, clock.span)
	}
	if dayOK {
		offset = day.offset
		spans = append(spans, day.span)
	}

	resolved := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	resolved = resolved.AddDate(0, 0, offset)

	// Prefer-future bias: a weekday naming today, or a bare time already
	// passed, means the next occurrence.
	if r.preferFuture {
		if dayOK && day.sameWeekday && !resolved.After(now) {
			resolved = resolved.AddDate(0, 0, 7)
		}
		if !dayOK && timed && !resolved.After(now) {
			resolved = resolved.AddDate(0, 0, 1)
		}
	}

	return domain.DateResolution{Time: resolved, Spans: spans}, true
}

// ─── Day matching ───────────────────────────────────────────────────────────

type dayMatch struct {
	offset      int
	span        domain.Span
	sameWeekday bool // weekday phrase that lands on the reference day
}

func (r *Resolver) findDay(text string, now time.Time) (dayMatch, bool) {
	if loc := r.relDayRe.FindStringSubmatchIndex(text); loc != nil {
		word := strings.ToLower(text[loc[2]:loc[3]])
		return dayMatch{
			offset: r.relDays[word],
			span:   domain.Span{Start: loc[2], End: loc[3]},
		}, true
	}

	if loc := r.inDaysRe.FindStringSubmatchIndex(text); loc != nil {
		num := submatch(text, loc, 2)
		if num == "" {
			num = submatch(text, loc, 3)
		}
		n, _ := strconv.Atoi(num)
		return dayMatch{
			offset: n,
			span:   domain.Span{Start: loc[2], End: loc[3]},
		}, true
	}

	if loc := r.nextWeekRe.FindStringSubmatchIndex(text); loc != nil {
		return dayMatch{
			offset: 7,
			span:   domain.Span{Start: loc[2], End: loc[3]},
		}, true
	}

	if loc := r.weekdayRe.FindStringSubmatchIndex(text); loc != nil {
		name := strings.ToLower(text[loc[4]:loc[5]])
		target := r.weekdays[name]
		ahead := (int(target) - int(now.Weekday()) + 7) % 7
		return dayMatch{
			offset:      ahead,
			span:        domain.Span{Start: loc[2], End: loc[3]},
			sameWeekday: ahead == 0,
		}, true
	}

	return dayMatch{}, false
}

// ─── Clock matching ─────────────────────────────────────────────────────────

type clockMatch struct {
	hour, minute int
	span         domain.Span
}

func (r *Resolver) findClock(text string) (clockMatch, bool) {
	if loc := r.clockRe.FindStringSubmatchIndex(text); loc != nil {
		hour, _ := strconv.Atoi(submatch(text, loc, 2))
		minute := 0
		if m := submatch(text, loc, 3); m != "" {
			minute, _ = strconv.Atoi(m)
		}
		switch strings.ToLower(submatch(text, loc, 4)) {
		case "pm":
			if hour < 12 {
				hour += 12
			}
		case "am":
			if hour == 12 {
				hour = 0
			}
		}
		if hour <= 23 && minute <= 59 {
			return clockMatch{hour: hour, minute: minute, span: domain.Span{Start: loc[2], End: loc[3]}}, true
		}
	}

	if loc := r.dayPartRe.FindStringSubmatchIndex(text); loc != nil {
		word := strings.ToLower(text[loc[2]:loc[3]])
		// Multi-word day parts carry flexible whitespace in the table key.
		word = strings.Join(strings.Fields(word), " ")
		if h, ok := r.dayParts[word]; ok {
			return clockMatch{hour: h, span: domain.Span{Start: loc[2], End: loc[3]}}, true
		}
	}

	return clockMatch{}, false
}

// ─── Pattern helpers ────────────────────────────────────────────────────────

// submatch returns the text of capture group n, or empty if it did not
// participate in the match.
func submatch(text string, loc []int, n int) string {
	if loc[2*n] < 0 {
		return ""
	}
	return text[loc[2*n]:loc[2*n+1]]
}

// altSet joins the keys into a longest-first alternation so a shorter key
// never shadows a longer one at the same position.
func altSet(keys map[string]struct{}) string {
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	// Longest first; ties alphabetical for a stable pattern.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if len(out[j]) > len(out[i]) || (len(out[j]) == len(out[i]) && out[j] < out[i]) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	for i, k := range out {
		out[i] = strings.ReplaceAll(regexp.QuoteMeta(k), ` `, `\s+`)
	}
	return strings.Join(out, "|")
}
