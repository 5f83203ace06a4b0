package solution

import "regexp"

// inlinePattern 按从左到右、不重叠的顺序匹配 **加粗** 与 `行内代码`。
// 没有闭合标记的 ** 或反引号不会被匹配，保留为普通文本。
var inlinePattern = regexp.MustCompile("\\*\\*.*?\\*\\*|`.*?`")

// ParseInline 将一行文本切分为行内片段序列
func ParseInline(text string) []InlineSegment {
	if text == "" {
		return nil
	}

	var segments []InlineSegment
	last := 0
	for _, loc := range inlinePattern.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			segments = append(segments, InlineSegment{Kind: SegmentPlain, Text: text[last:loc[0]]})
		}
		match := text[loc[0]:loc[1]]
		switch {
		case len(match) >= 4 && match[:2] == "**":
			segments = append(segments, InlineSegment{Kind: SegmentBold, Text: match[2 : len(match)-2]})
		case len(match) >= 2 && match[0] == '`':
			segments = append(segments, InlineSegment{Kind: SegmentCode, Text: match[1 : len(match)-1]})
		default:
			segments = append(segments, InlineSegment{Kind: SegmentPlain, Text: match})
		}
		last = loc[1]
	}
	if last < len(text) {
		segments = append(segments, InlineSegment{Kind: SegmentPlain, Text: text[last:]})
	}
	return segments
}
