package lang

const (
	indentIdent = `[A-Za-z_][A-Za-z0-9_]*`
	indentTypes = `str|int|float|bool|bytes|list|dict|tuple|set|Optional|Union|Any|List|Dict|Tuple|Set|Callable`
)

// indentPatterns 适用于 Python 一类缩进语言
var indentPatterns = []pattern{
	// 行首简单赋值 x = 1，排除 ==
	single(`^` + indentIdent + `\s*=(?:[^=]|$)`),
	// 链式赋值 a, b = 1, 2
	list(`^((?:` + indentIdent + `\s*,\s*)+` + indentIdent + `)\s*=(?:[^=]|$)`),
	// for x in ...
	single(`\bfor\s+` + indentIdent + `\s+in\b`),
	// for k, v in ...
	list(`\bfor\s+((?:` + indentIdent + `\s*,\s*)+` + indentIdent + `)\s+in\b`),
	// 推导式 [x for x in xs]
	single(`\bfor\s+` + indentIdent + `\s+in\s+[^\]]*\]`),
	// with open(p) as f
	single(`\bwith\s+[^:]*?\bas\s+` + indentIdent),
	// self.x = / cls.x =
	single(`\b(?:self|cls)\.` + indentIdent + `\s*=(?:[^=]|$)`),
	// def f(a, b: int = 1, *args)
	params(`\bdef\s+` + indentIdent + `\s*\(([^)]*)\)`),
	// lambda a, b: ...
	params(`\blambda\b([^:]*):`),
	// name: int 形式的类型注解
	single(`\b` + indentIdent + `\s*:\s*(?:` + indentTypes + `)\b`),
}
