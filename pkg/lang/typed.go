package lang

const (
	typedIdent      = `[A-Za-z_$][A-Za-z0-9_$]*`
	typedPrimitives = `byte|short|int|long|float|double|char|boolean`
	typedCatalog    = `String|Integer|Long|Float|Double|Character|Boolean|Number|Object|Class|` +
		`List|Set|Map|Collection|Iterable|Iterator|ArrayList|LinkedList|HashMap|LinkedHashMap|` +
		`HashSet|LinkedHashSet|TreeMap|TreeSet|Queue|Deque|ArrayDeque|Optional|Stream|` +
		`Consumer|Function|Predicate|Supplier|Runnable|Thread|Exception|Error|StringBuilder`
	// 可选的泛型实参与数组维度
	typedGeneric = `(?:\s*<[^;=()]*>)?`
	typedArray   = `(?:\s*\[\s*\])*`
	typedNames   = typedPrimitives + `|` + typedCatalog + `|[A-Z][A-Za-z0-9_$]*`
	typedAnyType = `(?:` + typedNames + `)`
)

// typedPatterns 适用于 Java 一类显式类型声明的语言
var typedPatterns = []pattern{
	// int x = / int[] xs;
	single(`\b(?:` + typedPrimitives + `)` + typedArray + `\s+` + typedIdent + `\s*[=;]`),
	// 常见对象与集合类型：String s = / List<String> xs;
	single(`\b(?:` + typedCatalog + `)` + typedGeneric + typedArray + `\s+` + typedIdent + `\s*[=;]`),
	// 自定义泛型类型：Foo<Bar> x =
	single(`\b[A-Z][A-Za-z0-9_$]*\s*<[^;=()]*>` + typedArray + `\s+` + typedIdent + `\s*[=;]`),
	// 构造器声明：public Person(String name, int age) {
	typedList(`^(?:(?:public|private|protected)\s+)?[A-Z][A-Za-z0-9_$]*\s*\(([^)]*)\)\s*(?:throws\b[^{;]*)?\{?$`),
	// 方法声明：static int sum(int a, int b) {
	typedList(`\b(?:void|` + typedNames + `)` + typedGeneric + typedArray +
		`\s+[a-z_$][A-Za-z0-9_$]*\s*\(([^)]*)\)\s*(?:throws\b[^{;]*)?\{?$`),
	// for (String s : items)
	single(`\bfor\s*\(\s*(?:final\s+)?` + typedAnyType + typedGeneric + typedArray + `\s+` + typedIdent + `\s*:`),
	// try (Reader r = ...)
	single(`\btry\s*\(\s*(?:final\s+)?` + typedAnyType + typedGeneric + `\s+` + typedIdent + `\s*=`),
	// (a, b) -> ...
	list(`\(([^()]*)\)\s*->`),
	// a -> ...
	single(typedIdent + `\s*->`),
}
