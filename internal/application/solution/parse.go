package solution

import "strings"

// ParseSolution 从模型原始输出中切分公式与解释。
// 单遍行扫描：第一个围栏代码块的内容即为公式；第一个代码块闭合后，
// 后续的围栏标记（以及其中的内容）原样归入解释，因为它们属于
// 解释部分自带的代码示例。没有围栏时公式为空，全文作为解释。
func ParseSolution(rawText string) Solution {
	lines := strings.Split(rawText, "\n")

	var formula []string
	var explanation []string
	inCodeBlock := false
	foundFormula := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			if !foundFormula {
				inCodeBlock = !inCodeBlock
				if !inCodeBlock {
					// 第一个代码块已闭合，公式提取结束
					foundFormula = true
				}
			} else {
				explanation = append(explanation, line)
			}
			continue
		}
		if inCodeBlock {
			formula = append(formula, line)
		} else {
			explanation = append(explanation, line)
		}
	}

	return Solution{
		Formula:     strings.TrimSpace(strings.Join(formula, "\n")),
		Explanation: strings.TrimSpace(strings.Join(explanation, "\n")),
	}
}
