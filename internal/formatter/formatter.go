package formatter

import (
	"regexp"
	"strings"
	"unicode"
)

// Role classifies a formatted paragraph within a legal petition.
type Role string

const (
	RoleCentered      Role = "centered"
	RoleSectionTitle  Role = "section_title"
	RoleQuotation     Role = "quotation"
	RoleQualification Role = "qualification"
	RoleBody          Role = "body"
)

// Paragraph is one styled fragment of a formatted petition.
// Chapter and SubChapter carry the section numbering state at the time the
// paragraph was emitted; both are zero for paragraphs before the first
// section title.
type Paragraph struct {
	Role       Role   `json:"role"`
	Text       string `json:"text"`
	Chapter    int    `json:"chapter,omitempty"`
	SubChapter int    `json:"sub_chapter,omitempty"`
}

var (
	boldRe       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	boldUnderRe  = regexp.MustCompile(`__(.+?)__`)
	italicRe     = regexp.MustCompile(`\*([^*\n]+)\*`)
	italicUnder  = regexp.MustCompile(`_([^_\n]+)_`)
	headerRe     = regexp.MustCompile(`(?m)^(?:#{1,6}[ \t]*)+`)
	linkRe       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	inlineCodeRe = regexp.MustCompile("`([^`\n]*)`")
	listDashRe   = regexp.MustCompile(`(?m)^[ \t]*(?:-[ \t]+)+`)
	trailingWSRe = regexp.MustCompile(`(?m)[ \t]+$`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)

	salutationRe = regexp.MustCompile(`(?i)^[ \t]*excelent[íi]ssim[oa]s?\s+senhor`)
	factsRe      = regexp.MustCompile(`(?i)^[ \t]*(?:[ivxlcdm]+\s*[-–—.)]\s*)?(?:d[oa]s?\s+)?fatos?\s*:?\s*$`)
	romanTitleRe = regexp.MustCompile(`^[ \t]*[IVXLCDM]+\s*[-–—.]\s*\S`)
	ofTheRe      = regexp.MustCompile(`^[ \t]*D[OA]S?\s+\S`)
)

// Preclean strips common markdown artifacts from AI output so the line
// classifier sees plain text. Bold markers are removed before italic markers;
// running the other way around corrupts overlapping emphasis spans.
// Preclean is idempotent: cleaning already-clean text is a no-op.
func Preclean(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = boldRe.ReplaceAllString(text, "$1")
	text = boldUnderRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")
	text = italicUnder.ReplaceAllString(text, "$1")
	text = headerRe.ReplaceAllString(text, "")
	text = linkRe.ReplaceAllString(text, "$1")
	text = inlineCodeRe.ReplaceAllString(text, "$1")
	text = listDashRe.ReplaceAllString(text, "")
	text = trailingWSRe.ReplaceAllString(text, "")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return text
}

// Format converts a raw AI-generated petition into an ordered sequence of
// styled paragraphs. Processing is line-oriented and single-pass; blank lines
// separate paragraphs but are never emitted. Empty input yields nil.
func Format(raw string) []Paragraph {
	text := Preclean(raw)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lines := strings.Split(text, "\n")

	// Anchor indices bounding the qualification block: the salutation line
	// and the facts-section heading. Either may be absent.
	salutationIdx := -1
	factsIdx := -1
	for i, line := range lines {
		if salutationIdx == -1 && salutationRe.MatchString(line) {
			salutationIdx = i
		}
		if factsIdx == -1 && factsRe.MatchString(line) {
			factsIdx = i
		}
	}

	var out []Paragraph
	chapter := 0
	subChapter := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		switch {
		case i == salutationIdx:
			out = append(out, Paragraph{Role: RoleCentered, Text: trimmed, Chapter: chapter, SubChapter: subChapter})

		case inCaptionWindow(i, salutationIdx, factsIdx) && isAllCaps(trimmed) && len([]rune(trimmed)) >= 8:
			// Case caption between the salutation and the facts heading.
			// When no facts heading exists the window is unbounded below.
			out = append(out, Paragraph{Role: RoleCentered, Text: trimmed, Chapter: chapter, SubChapter: subChapter})

		case isSectionTitle(trimmed):
			chapter++
			subChapter = 0
			out = append(out, Paragraph{Role: RoleSectionTitle, Text: trimmed, Chapter: chapter, SubChapter: subChapter})

		case strings.HasPrefix(trimmed, ">"):
			quote := strings.TrimSpace(strings.TrimPrefix(trimmed, ">"))
			out = append(out, Paragraph{Role: RoleQuotation, Text: quote, Chapter: chapter, SubChapter: subChapter})

		case salutationIdx != -1 && factsIdx != -1 && i > salutationIdx && i < factsIdx:
			out = append(out, Paragraph{Role: RoleQualification, Text: trimmed, Chapter: chapter, SubChapter: subChapter})

		default:
			out = append(out, Paragraph{Role: RoleBody, Text: trimmed, Chapter: chapter, SubChapter: subChapter})
		}
	}

	return out
}

func inCaptionWindow(i, salutationIdx, factsIdx int) bool {
	if salutationIdx == -1 || i <= salutationIdx {
		return false
	}
	if factsIdx == -1 {
		return true
	}
	return i < factsIdx
}

// isSectionTitle reports whether a line reads as a petition section heading:
// a Roman-numeral heading ("II - DO DIREITO"), an upper-case "DOS ..."
// heading, or a short fully-capitalized line.
func isSectionTitle(line string) bool {
	if romanTitleRe.MatchString(line) {
		return true
	}
	if ofTheRe.MatchString(line) && isMostlyCaps(line) {
		return true
	}
	n := len([]rune(line))
	return n >= 4 && n <= 49 && isAllCaps(line)
}

// isAllCaps reports whether line contains letters and none of them lowercase.
func isAllCaps(line string) bool {
	hasLetter := false
	for _, r := range line {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

// isMostlyCaps tolerates a few lowercase letters, covering headings such as
// "DAS PROVAS a PRODUZIR" that AI output occasionally emits.
func isMostlyCaps(line string) bool {
	letters := 0
	upper := 0
	for _, r := range line {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters == 0 {
		return false
	}
	return float64(upper)/float64(letters) >= 0.8
}
