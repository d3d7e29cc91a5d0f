package bot

import "testing"

func TestFixEncoding_Windows1251(t *testing.T) {
	raw := string([]byte{0xcf, 0xf0, 0xe8, 0xe2, 0xe5, 0xf2})
	if got := fixEncoding(raw); got != "Привет" {
		t.Fatalf("expected decoded text, got %q", got)
	}
}

func TestFixEncoding_ValidUTF8(t *testing.T) {
	if got := fixEncoding("Contraseña"); got != "Contraseña" {
		t.Fatalf("valid text must be kept, got %q", got)
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := sanitizeInput("  Juegos \tonline \n"); got != "Juegos online" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestSplitCommand(t *testing.T) {
	cases := []struct {
		text, cmd, args string
	}{
		{"/help", "help", ""},
		{"/Sites@site_bot 1 foo", "sites", "1 foo"},
		{"/nuevo_site\n1 a | b", "nuevo_site", "1 a | b"},
		{"hola", "", "hola"},
	}
	for _, c := range cases {
		cmd, args := splitCommand(c.text)
		if cmd != c.cmd || args != c.args {
			t.Fatalf("%q: got (%q, %q)", c.text, cmd, args)
		}
	}
}
