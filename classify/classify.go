// Package classify contains the pure predicates applied to one upstream
// record: live detection, gender normalization, tag parsing, and name/topic
// matching. Nothing here touches the network or shared state.
package classify

import (
	"regexp"
	"strings"

	"github.com/nitevelour/liveapi/models"
)

// Gender is a normalized gender code.
type Gender string

// Normalized gender codes. Unknown doubles as "no filter".
const (
	GenderUnknown Gender = ""
	GenderMale    Gender = "m"
	GenderFemale  Gender = "f"
	GenderCouple  Gender = "c"
	GenderTrans   Gender = "t"
)

var (
	nonNameChars  = regexp.MustCompile(`[^a-z0-9_-]+`)
	tagSeparators = regexp.MustCompile(`[,\s]+`)
)

// IsLive reports whether a record is currently live for the listing
// pipeline. It requires an explicit truthy live flag AND a playable URL:
// some upstream systems keep stale player URLs around, so URLs alone are not
// trusted here.
func IsLive(p models.Performer) bool {
	if p == nil {
		return false
	}
	return p.LiveFlag() && p.HasAnyURL("roomUrl", "iframeFeedURL", "iframeFeedUrl", "iframeUrl")
}

// IsLiveLoose is the single-entity variant of live detection. It accepts a
// boolean live flag, an explicit live/online status string, or the mere
// presence of a player URL. The lookup has no page scan behind it to correct
// a false negative, so it errs in the opposite direction from IsLive.
func IsLiveLoose(p models.Performer) bool {
	if p == nil {
		return false
	}
	if v, ok := p["live"].(bool); ok && v {
		return true
	}
	status := strings.ToLower(p.Str("status"))
	if status == "live" || status == "online" {
		return true
	}
	return p.HasAnyURL("roomUrl", "iframeFeedURL", "iframeFeedUrl", "embedUrl")
}

// NormalizeGender maps a free-form gender string to a Gender code.
// Unrecognized input maps to GenderUnknown, never an error.
func NormalizeGender(raw string) Gender {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "m", "male", "man", "guy":
		return GenderMale
	case "f", "female", "woman", "girl":
		return GenderFemale
	case "c", "couple", "pair":
		return GenderCouple
	case "t", "trans", "transgender":
		return GenderTrans
	}
	return GenderUnknown
}

// MatchesGender reports whether the record satisfies the requested gender.
// A trans request also accepts records whose tags carry trans/transgender,
// since several providers tag instead of setting the gender field. For any
// other request a known record gender must match exactly; an unknown record
// gender never excludes.
func MatchesGender(p models.Performer, want Gender) bool {
	if want == GenderUnknown {
		return true
	}
	g := NormalizeGender(p.GenderRaw())
	if want == GenderTrans {
		if g == GenderTrans {
			return true
		}
		tags := ParseTags(p["tags"])
		tags = append(tags, ParseTags(p["customTags"])...)
		for _, t := range tags {
			if t == "trans" || t == "transgender" {
				return true
			}
		}
		return false
	}
	return g == GenderUnknown || g == want
}

// ParseTags normalizes a raw tag field into lowercase tokens. The field
// shows up either as an array of strings or as one comma/whitespace
// delimited string.
func ParseTags(raw any) []string {
	switch v := raw.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				continue
			}
			s = strings.ToLower(strings.TrimSpace(s))
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, s := range tagSeparators.Split(v, -1) {
			s = strings.ToLower(strings.TrimSpace(s))
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// MatchesName reports whether the record's display name contains the query,
// case-insensitively. An empty query matches everything.
func MatchesName(p models.Performer, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.DisplayName()), q)
}

// MatchesTopic reports whether any tag-like field contains the topic,
// case-insensitively. An empty topic matches everything.
func MatchesTopic(p models.Performer, topic string) bool {
	t := strings.ToLower(strings.TrimSpace(topic))
	if t == "" {
		return true
	}
	var bucket []string
	bucket = append(bucket, p.StringList("customTags")...)
	bucket = append(bucket, p.StringList("characteristicsTags")...)
	bucket = append(bucket, p.StringList("autoTags")...)
	hay := strings.ToLower(strings.Join(bucket, " "))
	return strings.Contains(hay, t)
}

// CleanName lowercases a name and strips everything outside [a-z0-9_-].
// The directory upstream indexes performers under names in this form.
func CleanName(name string) string {
	return nonNameChars.ReplaceAllString(strings.ToLower(name), "")
}
