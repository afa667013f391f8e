package raw

import "testing"

func TestConfGet(t *testing.T) {
	t.Setenv("APP_NAME", " openbook ")
	t.Setenv("LOG_LEVEL", " info ")

	root := New()
	lg := root.Prefix("LOG_")

	tests := []struct {
		name string
		conf Conf
		key  string
		def  string
		want string
	}{
		{name: "root hit", conf: root, key: "APP_NAME", def: "x", want: "openbook"},
		{name: "prefixed hit", conf: lg, key: "LEVEL", def: "x", want: "info"},
		{name: "missing returns default", conf: lg, key: "MISSING", def: "defv", want: "defv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.conf.Get(tt.key, tt.def); got != tt.want {
				t.Fatalf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestConfGetBool(t *testing.T) {
	c := New().Prefix("B_")
	t.Setenv("B_T1", "true")
	t.Setenv("B_T2", "1")
	t.Setenv("B_T3", "YES")
	t.Setenv("B_T4", " on ")
	t.Setenv("B_F1", "false")
	t.Setenv("B_F2", "nah")

	tests := []struct {
		key  string
		def  bool
		want bool
	}{
		{"T1", false, true},
		{"T2", false, true},
		{"T3", false, true},
		{"T4", false, true},
		{"F1", true, false},
		{"F2", true, false},
		{"MISSING", true, true},
		{"MISSING", false, false},
	}
	for _, tt := range tests {
		if got := c.GetBool(tt.key, tt.def); got != tt.want {
			t.Fatalf("GetBool(%q, %v) = %v, want %v", tt.key, tt.def, got, tt.want)
		}
	}
}

func TestConfGetInt(t *testing.T) {
	c := New().Prefix("I_")
	t.Setenv("I_OK", " 12 ")
	t.Setenv("I_NEG", "-3")
	t.Setenv("I_BAD", "1x")

	if got := c.GetInt("OK", 0); got != 12 {
		t.Fatalf("GetInt(OK) = %d, want 12", got)
	}
	if got := c.GetInt("NEG", 7); got != 7 {
		t.Fatalf("GetInt(NEG) = %d, want default 7", got)
	}
	if got := c.GetInt("BAD", 5); got != 5 {
		t.Fatalf("GetInt(BAD) = %d, want default 5", got)
	}
	if got := c.GetInt("MISSING", 9); got != 9 {
		t.Fatalf("GetInt(MISSING) = %d, want default 9", got)
	}
}
