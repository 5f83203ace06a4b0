package solution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderExplanation_TopLevelSolutionHeadingSuppressed(t *testing.T) {
	blocks := RenderExplanation("# Your Solution\nHere is how it works.")

	require.Len(t, blocks, 1)
	assert.Equal(t, BlockParagraph, blocks[0].Kind)
	assert.Equal(t, []InlineSegment{{Kind: SegmentPlain, Text: "Here is how it works."}}, blocks[0].Segments)
}

func TestRenderExplanation_SecondLevelSolutionHeadingKept(t *testing.T) {
	blocks := RenderExplanation("## Your Solution")

	require.Len(t, blocks, 1)
	assert.Equal(t, BlockHeading, blocks[0].Kind)
	assert.Equal(t, 2, blocks[0].Level)
	assert.Equal(t, []InlineSegment{{Kind: SegmentPlain, Text: "Your Solution"}}, blocks[0].Segments)
}

func TestRenderExplanation_HeadingWithInlineMarkup(t *testing.T) {
	blocks := RenderExplanation("### How `SUMIF` works")

	require.Len(t, blocks, 1)
	assert.Equal(t, BlockHeading, blocks[0].Kind)
	assert.Equal(t, 3, blocks[0].Level)
	assert.Equal(t, []InlineSegment{
		{Kind: SegmentPlain, Text: "How "},
		{Kind: SegmentCode, Text: "SUMIF"},
		{Kind: SegmentPlain, Text: " works"},
	}, blocks[0].Segments)
}

func TestRenderExplanation_HashWithoutSpaceIsParagraph(t *testing.T) {
	blocks := RenderExplanation("#hashtag style line")

	require.Len(t, blocks, 1)
	assert.Equal(t, BlockParagraph, blocks[0].Kind)
	assert.Equal(t, []InlineSegment{{Kind: SegmentPlain, Text: "#hashtag style line"}}, blocks[0].Segments)
}

func TestRenderExplanation_ListCoalescesAcrossBlankLines(t *testing.T) {
	blocks := RenderExplanation("* first item\n\n* second item\nAnd a closing note.")

	require.Len(t, blocks, 2)
	assert.Equal(t, BlockList, blocks[0].Kind)
	require.Len(t, blocks[0].Items, 2)
	assert.Equal(t, []InlineSegment{{Kind: SegmentPlain, Text: "first item"}}, blocks[0].Items[0])
	assert.Equal(t, []InlineSegment{{Kind: SegmentPlain, Text: "second item"}}, blocks[0].Items[1])
	assert.Equal(t, BlockParagraph, blocks[1].Kind)
}

func TestRenderExplanation_CallToActionSplitsBlocks(t *testing.T) {
	text := "First part.\n" + CallToActionSentence + "\nSecond part."

	blocks := RenderExplanation(text)

	require.Len(t, blocks, 3)
	assert.Equal(t, BlockParagraph, blocks[0].Kind)
	assert.Equal(t, BlockCallToAction, blocks[1].Kind)
	assert.Equal(t, BlockParagraph, blocks[2].Kind)
	assert.Equal(t, []InlineSegment{{Kind: SegmentPlain, Text: "Second part."}}, blocks[2].Segments)
}

func TestRenderExplanation_TrailingCallToAction(t *testing.T) {
	blocks := RenderExplanation("Need more help? " + CallToActionSentence)

	require.Len(t, blocks, 2)
	assert.Equal(t, BlockParagraph, blocks[0].Kind)
	assert.Equal(t, []InlineSegment{{Kind: SegmentPlain, Text: "Need more help? "}}, blocks[0].Segments)
	assert.Equal(t, BlockCallToAction, blocks[1].Kind)
}

func TestRenderExplanation_CodeBlock(t *testing.T) {
	blocks := RenderExplanation("Example data:\n```\nA | B\n1 | 2\n```\nDone.")

	require.Len(t, blocks, 3)
	assert.Equal(t, BlockParagraph, blocks[0].Kind)
	assert.Equal(t, BlockCode, blocks[1].Kind)
	assert.Equal(t, []string{"A | B", "1 | 2"}, blocks[1].Lines)
	assert.Equal(t, BlockParagraph, blocks[2].Kind)
}

func TestRenderExplanation_EmptyCodeBlockDropped(t *testing.T) {
	blocks := RenderExplanation("```\n```")

	assert.Empty(t, blocks)
}

func TestRenderExplanation_UnclosedCodeBlockFlushedAtEnd(t *testing.T) {
	blocks := RenderExplanation("Intro.\n```\n=SUM(A1:A3)")

	require.Len(t, blocks, 2)
	assert.Equal(t, BlockParagraph, blocks[0].Kind)
	assert.Equal(t, BlockCode, blocks[1].Kind)
	assert.Equal(t, []string{"=SUM(A1:A3)"}, blocks[1].Lines)
}

func TestRenderExplanation_ParagraphInlineMarkup(t *testing.T) {
	blocks := RenderExplanation("Use **bold** and `CODE()` here")

	require.Len(t, blocks, 1)
	assert.Equal(t, []InlineSegment{
		{Kind: SegmentPlain, Text: "Use "},
		{Kind: SegmentBold, Text: "bold"},
		{Kind: SegmentPlain, Text: " and "},
		{Kind: SegmentCode, Text: "CODE()"},
		{Kind: SegmentPlain, Text: " here"},
	}, blocks[0].Segments)
}

func TestRenderExplanation_Empty(t *testing.T) {
	assert.Empty(t, RenderExplanation(""))
}

func TestParseInline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []InlineSegment
	}{
		{
			name: "plain only",
			in:   "just text",
			want: []InlineSegment{{Kind: SegmentPlain, Text: "just text"}},
		},
		{
			name: "bold at both ends",
			in:   "**a** mid **b**",
			want: []InlineSegment{
				{Kind: SegmentBold, Text: "a"},
				{Kind: SegmentPlain, Text: " mid "},
				{Kind: SegmentBold, Text: "b"},
			},
		},
		{
			name: "unterminated bold stays plain",
			in:   "**open and done",
			want: []InlineSegment{{Kind: SegmentPlain, Text: "**open and done"}},
		},
		{
			name: "unterminated backtick stays plain",
			in:   "a `b",
			want: []InlineSegment{{Kind: SegmentPlain, Text: "a `b"}},
		},
		{
			name: "empty inline code",
			in:   "x `` y",
			want: []InlineSegment{
				{Kind: SegmentPlain, Text: "x "},
				{Kind: SegmentCode, Text: ""},
				{Kind: SegmentPlain, Text: " y"},
			},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInline(tt.in))
		})
	}
}

func TestRenderExplanation_Idempotent(t *testing.T) {
	text := "## Steps\n* one\n```\n=A1\n```\nDone. " + CallToActionSentence

	first := RenderExplanation(text)
	second := RenderExplanation(text)

	assert.Equal(t, first, second)
}

func TestParseThenRender_FullDocument(t *testing.T) {
	raw := "# Your Solution\n```\n=SUM(A1:A10)\n```\n" +
		"## How It Works\n* It **sums** values.\n" +
		CallToActionSentence + "\n## Next Steps\nDone."

	sol := ParseSolution(raw)
	require.Equal(t, "=SUM(A1:A10)", sol.Formula)

	blocks := RenderExplanation(sol.Explanation)
	require.Len(t, blocks, 5)
	assert.Equal(t, BlockHeading, blocks[0].Kind)
	assert.Equal(t, 2, blocks[0].Level)
	assert.Equal(t, []InlineSegment{{Kind: SegmentPlain, Text: "How It Works"}}, blocks[0].Segments)
	assert.Equal(t, BlockList, blocks[1].Kind)
	assert.Equal(t, [][]InlineSegment{{
		{Kind: SegmentPlain, Text: "It "},
		{Kind: SegmentBold, Text: "sums"},
		{Kind: SegmentPlain, Text: " values."},
	}}, blocks[1].Items)
	assert.Equal(t, BlockCallToAction, blocks[2].Kind)
	assert.Equal(t, BlockHeading, blocks[3].Kind)
	assert.Equal(t, BlockParagraph, blocks[4].Kind)
	assert.Equal(t, []InlineSegment{{Kind: SegmentPlain, Text: "Done."}}, blocks[4].Segments)
}

func TestParseThenRender_EndToEnd(t *testing.T) {
	raw := "```\n=SUMIF(A:A,\">0\")\n```\n" +
		"# Your Solution\n" +
		"This formula sums the **positive** values in column `A`.\n" +
		"* Works in Google Sheets\n" +
		"* Works in Excel\n" +
		CallToActionSentence

	sol := ParseSolution(raw)
	require.Equal(t, "=SUMIF(A:A,\">0\")", sol.Formula)

	blocks := RenderExplanation(sol.Explanation)
	require.Len(t, blocks, 3)
	assert.Equal(t, BlockParagraph, blocks[0].Kind)
	assert.Equal(t, BlockList, blocks[1].Kind)
	assert.Len(t, blocks[1].Items, 2)
	assert.Equal(t, BlockCallToAction, blocks[2].Kind)
}
