package lang

import (
	"testing"
)

func Test_CountVariables_Script(t *testing.T) {
	js := mustRule(t, "JavaScript")
	cases := []struct {
		line string
		want int
	}{
		// let/const/var 与赋值族同时命中
		{"let x = 1;", 2},
		{"const {a, b} = obj;", 4},
		{"function add(a, b) {", 2},
		{"(a, b) => a + b", 2},
		{"items.map(item => item.id)", 1},
		{"if (a == b) {", 0},
		// 链式赋值中每个名字各计一次
		{"a=b=c;", 2},
		{"x = y == z;", 1},
		{"if (a === b) {", 0},
		{"xs.map(x=>x)", 1},
		{"foo(); // let x = 1;", 0},
		{"// let x = 1;", 0},
		{"});", 0},
		{"", 0},
	}
	for _, c := range cases {
		if got := js.CountVariables(c.line); got != c.want {
			t.Fatalf("%q => %d want %d", c.line, got, c.want)
		}
	}

	c := mustRule(t, "C")
	if got := c.CountVariables("int count = 0;"); got != 1 {
		t.Fatalf("c declaration => %d want 1", got)
	}
}

func Test_CountVariables_Typed(t *testing.T) {
	java := mustRule(t, "Java")
	cases := []struct {
		line string
		want int
	}{
		{"int x = 5;", 1},
		{"String name;", 1},
		// 目录类型与泛型族同时命中
		{"List<String> names = new ArrayList<>();", 2},
		{"public Person(String name, int age) {", 2},
		{"public static int sum(int a, int b) {", 2},
		{"for (String item : items) {", 1},
		{"try (BufferedReader reader = new BufferedReader(in)) {", 1},
		{"list.forEach(x -> System.out.println(x));", 1},
		{"(a, b) -> a + b", 2},
		{"System.out.println(total);", 0},
		{"{", 0},
	}
	for _, c := range cases {
		if got := java.CountVariables(c.line); got != c.want {
			t.Fatalf("%q => %d want %d", c.line, got, c.want)
		}
	}
}

func Test_CountVariables_Indent(t *testing.T) {
	py := mustRule(t, "Python")
	cases := []struct {
		line string
		want int
	}{
		{"x = 10", 1},
		{"a, b = 1, 2", 2},
		{"for i in range(10):", 1},
		{"squares = [x * x for x in xs]", 3},
		{"with open(path) as fh:", 1},
		{"self.name = name", 1},
		{"def greet(self, name: str, *args, greeting='hi'):", 5},
		{"f = lambda a, b: a + b", 3},
		{"count: int = 0", 1},
		{"x = 1  # y = 2", 1},
		{"# x = 1", 0},
		{"if x == 1:", 0},
	}
	for _, c := range cases {
		if got := py.CountVariables(c.line); got != c.want {
			t.Fatalf("%q => %d want %d", c.line, got, c.want)
		}
	}
}

func Test_CountVariables_FamilyNone(t *testing.T) {
	r := &Rule{Name: "Text", Extensions: []string{"txt"}}
	if got := r.CountVariables("x = 1"); got != 0 {
		t.Fatalf("none family => %d", got)
	}
}

func Test_splitTopLevel(t *testing.T) {
	parts := splitTopLevel("Map<String, Integer> m, int n")
	if len(parts) != 2 {
		t.Fatalf("parts=%q", parts)
	}
}
