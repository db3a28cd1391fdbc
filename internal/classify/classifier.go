package classify

import (
	"path/filepath"
	"strings"

	"github.com/pqsoccerboy17/downloads-organizer/internal/extract"
	"github.com/pqsoccerboy17/downloads-organizer/internal/intent"
)

// Confidence levels for topic matches. Thresholds are hard gates: a result
// below threshold is discarded outright, never down-ranked.
const (
	confidenceBoth         = 95
	confidenceContentOnly  = 85
	confidenceFilenameOnly = 75
	confidenceThreshold    = 75
)

// Document assigns a category to a document from its filename and extracted
// content. Account rules run first (identity routing beats topic routing),
// then the global work exclusion, then topic rules. The first matching rule
// in priority order wins; there is no re-evaluation after a match.
func Document(filename string, content extract.Content) Result {
	name := strings.ToLower(filename)
	text := ""
	if content.Usable() {
		text = strings.ToLower(content.Text)
	}

	if result, ok := matchAccount(name, text); ok {
		return result
	}
	return matchTopic(name, text, content.Usable())
}

func matchAccount(name, text string) (Result, bool) {
	rules := AccountRules()
	for i := range rules {
		rule := rules[i]

		nameMatch := containsAll(name, rule.FilenameKeywords)
		textMatch := text != "" && containsAll(text, rule.ContentKeywords)
		if !nameMatch && !textMatch {
			continue
		}

		identity := rule.Identity
		if rule.Validate != nil {
			extracted, ok := rule.Validate(name, text)
			if !ok {
				continue
			}
			if extracted != "" {
				identity = extracted
			}
		}

		matchedBy := MatchedFilename
		confidence := confidenceFilenameOnly
		switch {
		case nameMatch && textMatch:
			matchedBy = MatchedBoth
			confidence = confidenceBoth
		case textMatch:
			matchedBy = MatchedContent
			confidence = confidenceContentOnly
		}

		return Result{
			Category: Category{
				Class:          Account,
				Kind:           rule.ID,
				CategoryFolder: rule.CategoryFolder,
				KindFolder:     rule.KindFolder,
				Identity:       identity,
				DateHint:       rule.DateHint,
			},
			Confidence: confidence,
			MatchedBy:  matchedBy,
		}, true
	}
	return Result{}, false
}

func matchTopic(name, text string, contentUsable bool) Result {
	// The global exclusion list vetoes every topic outright, independent of
	// any topic's own rules.
	if containsAny(name, globalExclusions) || containsAny(text, globalExclusions) {
		return Unresolved()
	}

	for _, rule := range TopicRules() {
		if containsAny(name, rule.Exclusions) || containsAny(text, rule.Exclusions) {
			continue
		}

		nameMatch := containsAny(name, rule.FilenameKeywords)
		textMatch := text != "" && containsAny(text, rule.ContentKeywords)
		if !nameMatch && !textMatch {
			continue
		}

		confidence := confidenceContentOnly
		matchedBy := MatchedContent
		switch {
		case nameMatch && textMatch:
			confidence = confidenceBoth
			matchedBy = MatchedBoth
		case nameMatch && !contentUsable:
			// Filename signal with unreadable content: accepted, but at the
			// reduced-confidence ceiling.
			confidence = confidenceFilenameOnly
			matchedBy = MatchedFilename
		case nameMatch:
			// Readable content that failed to confirm the filename signal.
			confidence = confidenceContentOnly
			matchedBy = MatchedFilename
		}

		if confidence < confidenceThreshold {
			continue
		}

		return Result{
			Category:   Category{Class: Topic, Kind: rule.ID},
			Confidence: confidence,
			MatchedBy:  matchedBy,
		}
	}
	return Unresolved()
}

// MediaFile classifies a media path purely by extension; no content
// heuristics are applied.
func MediaFile(path string) Result {
	ext := strings.ToLower(filepath.Ext(path))

	var kind MediaKind
	switch {
	case member(intent.PhotoExtensions, ext):
		kind = MediaPhoto
	case member(intent.VideoExtensions, ext):
		kind = MediaVideo
	case member(intent.AudioExtensions, ext):
		kind = MediaAudio
	default:
		return Unresolved()
	}

	return Result{
		Category:   Category{Class: Media, Kind: string(kind), MediaKind: kind},
		Confidence: 100,
		MatchedBy:  MatchedFilename,
	}
}

func member(set map[string]struct{}, ext string) bool {
	_, ok := set[ext]
	return ok
}
