package lang

import (
	"regexp"
	"strings"
)

// matchMode 决定一个模式的每次匹配贡献多少个变量
type matchMode int

const (
	// modeSingle 每次匹配计 1
	modeSingle matchMode = iota
	// modeList 捕获组按逗号拆分，只计裸标识符（解构、无类型参数）
	modeList
	// modeParams 捕获组按逗号拆分，取 ':' 或 '=' 之前的名字（带注解/默认值的参数）
	modeParams
	// modeTypedList 捕获组按逗号拆分，计以标识符结尾的片段（"Type name" 形式的参数）
	modeTypedList
	// modeBinding 捕获组是紧随名字的运算符，只有 '=' 或 ':' 计 1
	modeBinding
)

// pattern 是一个有序的正则模式族
type pattern struct {
	re    *regexp.Regexp
	mode  matchMode
	group int
}

func single(expr string) pattern {
	return pattern{re: regexp.MustCompile(expr), mode: modeSingle}
}

func list(expr string) pattern {
	return pattern{re: regexp.MustCompile(expr), mode: modeList, group: 1}
}

func params(expr string) pattern {
	return pattern{re: regexp.MustCompile(expr), mode: modeParams, group: 1}
}

func typedList(expr string) pattern {
	return pattern{re: regexp.MustCompile(expr), mode: modeTypedList, group: 1}
}

func binding(expr string) pattern {
	return pattern{re: regexp.MustCompile(expr), mode: modeBinding, group: 1}
}

var (
	identRe         = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	trailingIdentRe = regexp.MustCompile(`[A-Za-z_$][A-Za-z0-9_$]*$`)
	punctOnlyRe     = regexp.MustCompile(`^[{}();,\[\]]+$`)
	bracketStripper = strings.NewReplacer("{", "", "}", "", "[", "", "]", "", "(", "", ")", "")
)

// CountVariables 估算一行中看起来像变量绑定的数量
//
// 各模式族独立累加、不去重，同一标识符被多个族命中时会重复计数。
// 该函数不会失败，无法识别的行返回 0
func (r *Rule) CountVariables(line string) int {
	s := r.stripLineComment(strings.TrimSpace(line))
	if s == "" || punctOnlyRe.MatchString(s) {
		return 0
	}

	var patterns []pattern
	switch r.Family {
	case FamilyScript:
		patterns = scriptPatterns
	case FamilyTyped:
		patterns = typedPatterns
	case FamilyIndent:
		patterns = indentPatterns
	default:
		return 0
	}

	n := 0
	for _, p := range patterns {
		n += p.count(s)
	}
	return n
}

// stripLineComment 去掉行尾单行注释；整行是注释时返回空串
func (r *Rule) stripLineComment(s string) string {
	if r.LineComment == "" {
		return s
	}
	i := strings.Index(s, r.LineComment)
	switch {
	case i == 0:
		return ""
	case i > 0:
		return strings.TrimSpace(s[:i])
	default:
		return s
	}
}

func (p pattern) count(s string) int {
	if p.mode == modeSingle {
		return len(p.re.FindAllStringIndex(s, -1))
	}
	n := 0
	for _, m := range p.re.FindAllStringSubmatch(s, -1) {
		if p.mode == modeBinding {
			if op := m[p.group]; op == "=" || op == ":" {
				n++
			}
			continue
		}
		n += countPieces(m[p.group], p.mode)
	}
	return n
}

// countPieces 拆分列表内容并按模式计数
func countPieces(inner string, mode matchMode) int {
	n := 0
	for _, piece := range splitTopLevel(bracketStripper.Replace(inner)) {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		switch mode {
		case modeList:
			if identRe.MatchString(piece) {
				n++
			}
		case modeParams:
			piece = strings.TrimLeft(piece, "*")
			if i := strings.IndexAny(piece, ":="); i >= 0 {
				piece = piece[:i]
			}
			if identRe.MatchString(strings.TrimSpace(piece)) {
				n++
			}
		case modeTypedList:
			if i := strings.Index(piece, "="); i >= 0 {
				piece = strings.TrimSpace(piece[:i])
			}
			if trailingIdentRe.MatchString(piece) {
				n++
			}
		}
	}
	return n
}

// splitTopLevel 按不在尖括号内的逗号拆分，"Map<K, V> m" 作为一个片段
func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
