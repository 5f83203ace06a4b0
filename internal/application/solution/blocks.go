// Package solution 提供模型输出的解析与结构化渲染能力
package solution

// Solution 一次生成的最终结果：公式 + 解释文本
type Solution struct {
	Formula     string `json:"formula"`
	Explanation string `json:"explanation"`
}

// BlockKind 内容块类型
type BlockKind string

// 预定义的内容块类型
const (
	BlockHeading      BlockKind = "heading"
	BlockParagraph    BlockKind = "paragraph"
	BlockList         BlockKind = "list"
	BlockCode         BlockKind = "code"
	BlockCallToAction BlockKind = "call_to_action"
)

// SegmentKind 行内片段类型
type SegmentKind string

// 预定义的行内片段类型
const (
	SegmentPlain SegmentKind = "plain"
	SegmentBold  SegmentKind = "bold"
	SegmentCode  SegmentKind = "code"
)

// InlineSegment 行内片段：普通文本 / 加粗 / 行内代码
type InlineSegment struct {
	Kind SegmentKind `json:"kind"`
	Text string      `json:"text"`
}

// ContentBlock 结构化内容块。Kind 决定哪些字段有效：
//   - heading:        Level + Segments
//   - paragraph:      Segments
//   - list:           Items
//   - code:           Lines
//   - call_to_action: 无附加字段，渲染为固定的外链按钮
type ContentBlock struct {
	Kind     BlockKind         `json:"kind"`
	Level    int               `json:"level,omitempty"`
	Segments []InlineSegment   `json:"segments,omitempty"`
	Items    [][]InlineSegment `json:"items,omitempty"`
	Lines    []string          `json:"lines,omitempty"`
}
