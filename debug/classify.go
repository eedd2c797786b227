package debug

import "github.com/ryanlewis/figfont/internal/common"

var ruleNames = []struct {
	bit  int
	name string
}{
	{common.HorizontalEqualChar, "Equal"},
	{common.HorizontalUnderscore, "Underscore"},
	{common.HorizontalHierarchy, "Hierarchy"},
	{common.HorizontalOppositePair, "Pair"},
	{common.HorizontalBigX, "BigX"},
	{common.HorizontalHardblank, "Hardblank"},
	{common.HorizontalFitting, "Fitting"},
	{common.HorizontalSmushing, "Smushing"},
	{common.VerticalEqualChar, "VEqual"},
	{common.VerticalUnderscore, "VUnderscore"},
	{common.VerticalHierarchy, "VHierarchy"},
	{common.VerticalHorizontalLine, "VHorizontalLine"},
	{common.VerticalVerticalLine, "VVerticalLine"},
	{common.VerticalFitting, "VFitting"},
	{common.VerticalSmushing, "VSmushing"},
}

// FormatRules returns the names of the layout bits set in mask.
func FormatRules(mask int) []string {
	var names []string
	for _, r := range ruleNames {
		if mask&r.bit != 0 {
			names = append(names, r.name)
		}
	}
	if len(names) == 0 {
		return []string{"FullWidth"}
	}
	return names
}
