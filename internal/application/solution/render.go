package solution

import (
	"regexp"
	"strings"
)

// CallToActionSentence 模型输出中标记推广按钮插入位置的固定句子，
// 与系统提示词中的 CTA 要求保持一致。
const CallToActionSentence = "Click the [Book a Consultation] button to learn more."

// headingPattern 匹配 `#+ 空格 文本` 形式的标题行
var headingPattern = regexp.MustCompile(`^(#+)\s(.*)`)

// RenderExplanation 将解释文本渲染为有序的结构化内容块。
// 先按 CTA 句子切分，每段独立做块级解析，段与段之间插入 CTA 标记块。
// 纯函数：畸形输入（未闭合围栏、孤立标记）降级为尽力而为的结构，不报错。
func RenderExplanation(explanation string) []ContentBlock {
	parts := strings.Split(explanation, CallToActionSentence)

	var blocks []ContentBlock
	for i, part := range parts {
		if i > 0 {
			blocks = append(blocks, ContentBlock{Kind: BlockCallToAction})
		}
		blocks = append(blocks, renderChunk(part)...)
	}
	return blocks
}

// renderChunk 逐行解析单个文本段。
// 列表缓冲与代码块缓冲互斥：进入代码块前先冲刷未完成的列表。
// 列表只在遇到标题/段落/代码块入口时冲刷，空行不触发冲刷，
// 因此被空行隔开的连续列表项仍合并为一个列表（既定策略）。
func renderChunk(chunk string) []ContentBlock {
	lines := strings.Split(chunk, "\n")

	var blocks []ContentBlock
	var listItems [][]InlineSegment
	var codeLines []string
	inCodeBlock := false

	flushList := func() {
		if len(listItems) > 0 {
			blocks = append(blocks, ContentBlock{Kind: BlockList, Items: listItems})
			listItems = nil
		}
	}

	flushCodeBlock := func() {
		if len(codeLines) > 0 {
			blocks = append(blocks, ContentBlock{Kind: BlockCode, Lines: codeLines})
			codeLines = nil
		}
	}

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if !inCodeBlock {
				flushList()
				inCodeBlock = true
			} else {
				flushCodeBlock()
				inCodeBlock = false
			}
			continue
		}
		if inCodeBlock {
			codeLines = append(codeLines, line)
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "#"):
			if m := headingPattern.FindStringSubmatch(trimmed); m != nil {
				flushList()
				level := len(m[1])
				text := strings.TrimSpace(m[2])
				// UI 已固定展示 "Your Solution" 标题，此处不再重复渲染
				if level == 1 && strings.EqualFold(text, "your solution") {
					continue
				}
				blocks = append(blocks, ContentBlock{
					Kind:     BlockHeading,
					Level:    level,
					Segments: ParseInline(text),
				})
			} else if trimmed != "" {
				// 以 # 开头但不是合法标题，按普通段落处理
				flushList()
				blocks = append(blocks, ContentBlock{Kind: BlockParagraph, Segments: ParseInline(line)})
			}
		case strings.HasPrefix(trimmed, "* "):
			listItems = append(listItems, ParseInline(trimmed[2:]))
		case trimmed != "":
			flushList()
			blocks = append(blocks, ContentBlock{Kind: BlockParagraph, Segments: ParseInline(line)})
		}
	}

	flushList()
	flushCodeBlock()
	return blocks
}
