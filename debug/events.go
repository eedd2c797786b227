package debug

// HeaderData describes a parsed font header.
type HeaderData struct {
	Hardblank    rune `json:"hardblank"`
	Height       int  `json:"height"`
	Baseline     int  `json:"baseline"`
	MaxLength    int  `json:"max_length"`
	OldLayout    int  `json:"old_layout"`
	FullLayout   int  `json:"full_layout"`
	Direction    int  `json:"direction"`
	CommentLines int  `json:"comment_lines"`
	CodeTagCount int  `json:"code_tag_count"`
}

// GlyphStatsData summarises the glyphs read from a font stream.
type GlyphStatsData struct {
	Mandatory int `json:"mandatory"`
	CodeTags  int `json:"code_tags"`
	Lines     int `json:"lines"`
}

// RenderStartData describes the inputs of a render call.
type RenderStartData struct {
	Text      string   `json:"text"`
	Height    int      `json:"height"`
	Hardblank rune     `json:"hardblank"`
	Layout    int      `json:"layout"`
	Rules     []string `json:"rules"`
	Direction int      `json:"direction"`
}

// OverlapData records the overlap chosen between two adjacent glyphs.
type OverlapData struct {
	Prev    rune `json:"prev"`
	Next    rune `json:"next"`
	Kerning int  `json:"kerning"`
	Overlap int  `json:"overlap"`
}

// SmushData records one merged column.
type SmushData struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Left   rune   `json:"left"`
	Right  rune   `json:"right"`
	Result rune   `json:"result"`
	Rule   string `json:"rule"`
}

// SkipData records an input rune that produced no glyph.
type SkipData struct {
	Rune   rune   `json:"rune"`
	Reason string `json:"reason"`
}

// FlushData records one emitted banner block.
type FlushData struct {
	Block int  `json:"block"`
	Width int  `json:"width"`
	Final bool `json:"final"`
}

// RenderEndData summarises a finished render call.
type RenderEndData struct {
	Blocks     int   `json:"blocks"`
	Glyphs     int   `json:"glyphs"`
	Bytes      int   `json:"bytes"`
	DurationUS int64 `json:"duration_us"`
}
