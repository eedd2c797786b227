package figfont

import "strings"

// smushRule merges two touching sub-characters, given in visual order.
type smushRule struct {
	name string
	// bit enables the rule; zero means the rule always applies
	bit   Layout
	merge func(left, right, hardblank rune) (rune, bool)
}

// smushRules is tried in order; the first rule that merges wins.
var smushRules = [...]smushRule{
	{"space", 0, smushSpace},
	{"equal", HorizontalEqualChar, smushEqual},
	{"underscore", HorizontalUnderscore, smushUnderscore},
	{"hierarchy", HorizontalHierarchy, smushHierarchy},
	{"pair", HorizontalOppositePair, smushOppositePair},
	{"bigx", HorizontalBigX, smushBigX},
	{"hardblank", HorizontalHardblank, smushHardblanks},
}

const (
	underscoreBorders = "|/\\[]{}()<>"
)

// hierarchyClasses lists the hierarchy classes from weakest to strongest.
var hierarchyClasses = [...]string{"|", "/\\", "[]", "{}", "()", "<>"}

func smushSpace(left, right, _ rune) (rune, bool) {
	if left == ' ' {
		return right, true
	}
	if right == ' ' {
		return left, true
	}
	return 0, false
}

func smushEqual(left, right, hardblank rune) (rune, bool) {
	if left == right && left != hardblank {
		return left, true
	}
	return 0, false
}

func smushUnderscore(left, right, _ rune) (rune, bool) {
	if left == '_' && strings.ContainsRune(underscoreBorders, right) {
		return right, true
	}
	if right == '_' && strings.ContainsRune(underscoreBorders, left) {
		return left, true
	}
	return 0, false
}

func hierarchyClass(r rune) int {
	for i, class := range hierarchyClasses {
		if strings.ContainsRune(class, r) {
			return i
		}
	}
	return -1
}

func smushHierarchy(left, right, _ rune) (rune, bool) {
	lc, rc := hierarchyClass(left), hierarchyClass(right)
	if lc < 0 || rc < 0 || lc == rc {
		return 0, false
	}
	if lc > rc {
		return left, true
	}
	return right, true
}

func smushOppositePair(left, right, _ rune) (rune, bool) {
	switch string([]rune{left, right}) {
	case "[]", "][", "{}", "}{", "()", ")(":
		return '|', true
	}
	return 0, false
}

func smushBigX(left, right, _ rune) (rune, bool) {
	switch {
	case left == '/' && right == '\\':
		return '|', true
	case left == '\\' && right == '/':
		return 'Y', true
	case left == '>' && right == '<':
		return 'X', true
	}
	return 0, false
}

func smushHardblanks(left, right, hardblank rune) (rune, bool) {
	if left == hardblank && right == hardblank {
		return hardblank, true
	}
	return 0, false
}

// smushVisual merges left and right, in visual order, under mask. It
// returns the merged sub-character and the name of the rule that fired.
func smushVisual(left, right, hardblank rune, mask Layout) (rune, string, bool) {
	for _, rule := range smushRules {
		if rule.bit != 0 && mask&rule.bit == 0 {
			continue
		}
		if r, ok := rule.merge(left, right, hardblank); ok {
			return r, rule.name, true
		}
	}
	return 0, "", false
}

// Smush merges two sub-characters that occupy the same cell. Left and
// right are given in reading order: for right-to-left printing they are
// swapped before the rules are consulted. The space rule always applies;
// every other rule needs its bit in mask. It reports false when no rule
// merges the pair.
func (f *Font) Smush(left, right rune, mask Layout, dir PrintDirection) (rune, bool) {
	if dir == RightToLeft {
		left, right = right, left
	}
	r, _, ok := smushVisual(left, right, f.Hardblank, mask)
	return r, ok
}

// OverlapAmount returns how many columns the glyph of next may overlap the
// glyph of prev when next follows prev in the text. Without the fitting
// or smushing bit the amount is 0. For right-to-left printing next is
// placed to the left of prev.
//
// An unbound prev or next also yields 0: OverlapAmount reports no lookup
// failure. Callers that must tell the two apart check HasGlyph or Glyph
// first.
func (f *Font) OverlapAmount(prev, next rune, mask Layout, dir PrintDirection) int {
	if f == nil || !mask.Moves() {
		return 0
	}
	pg, ok := f.glyphs[prev]
	if !ok {
		return 0
	}
	ng, ok := f.glyphs[next]
	if !ok {
		return 0
	}
	left, right := pg, ng
	if dir == RightToLeft {
		left, right = ng, pg
	}
	_, n := f.overlap(left, right, mask)
	return n
}

// overlap returns the kerning distance between two glyphs in visual order
// and the overlap the layout allows. Only the ASCII space is blank; the
// hardblank counts as solid.
func (f *Font) overlap(left, right *Glyph, mask Layout) (kern, amount int) {
	if !mask.Moves() {
		return 0, 0
	}
	lw, rw := left.Width(), right.Width()
	limit := min(lw, rw)
	kern = limit
	for row := 0; row < f.Height && kern > 0; row++ {
		n := trailingSpaces(left.row(row)) + leadingSpaces(right.row(row))
		if n < kern {
			kern = n
		}
	}
	amount = kern
	if mask&HorizontalSmushing != 0 && kern < limit && f.collisionsMerge(left, right, kern+1, mask) {
		amount = kern + 1
	}
	return kern, amount
}

// collisionsMerge reports whether every cell shared by the last n columns
// of left and the first n columns of right merges under mask.
func (f *Font) collisionsMerge(left, right *Glyph, n int, mask Layout) bool {
	lw := left.Width()
	for row := 0; row < f.Height; row++ {
		lr, rr := left.row(row), right.row(row)
		for c := 0; c < n; c++ {
			if _, _, ok := smushVisual(lr[lw-n+c], rr[c], f.Hardblank, mask); !ok {
				return false
			}
		}
	}
	return true
}

func trailingSpaces(row []rune) int {
	n := 0
	for i := len(row) - 1; i >= 0 && row[i] == ' '; i-- {
		n++
	}
	return n
}

func leadingSpaces(row []rune) int {
	n := 0
	for n < len(row) && row[n] == ' ' {
		n++
	}
	return n
}
