package lang

const scriptIdent = `[A-Za-z_$][A-Za-z0-9_$]*`

// scriptPatterns 适用于 JavaScript/TypeScript/C#/C/C++ 等花括号语言
var scriptPatterns = []pattern{
	// let/const/var 声明
	single(`\b(?:let|const|var)\s+` + scriptIdent + `\s*[=;]`),
	// function name(a, b) 与匿名 function (a, b)
	list(`\bfunction\b\s*(?:` + scriptIdent + `\s*)?\(([^)]*)\)`),
	// (a, b) => ...
	list(`\(([^()]*)\)\s*=>`),
	// a => ...
	single(scriptIdent + `\s*=>`),
	// 类属性与普通赋值 name: / name =；== 与 => 被整体吞掉但不计数，a=b=c 计 2
	binding(`\b(?:(?:public|private|protected|static|readonly)\s+)?` + scriptIdent + `\s*(:|=[=>]?)`),
	// let {a, b} / let [a, b]
	list(`\b(?:let|const|var)\s*\{([^}]+)\}`),
	list(`\b(?:let|const|var)\s*\[([^\]]+)\]`),
	// {a, b} = ... / [a, b] = ...
	list(`\{([^}]+)\}\s*[=;]`),
	list(`\[([^\]]+)\]\s*[=;]`),
}
