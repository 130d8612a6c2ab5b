package browser

import (
	"testing"
)

func TestArgs_SimpleCommand(t *testing.T) {
	argv, err := Args("xdg-open", "https://x/terms")
	if err != nil {
		t.Fatalf("Args() error = %v", err)
	}

	want := []string{"xdg-open", "https://x/terms"}
	if len(argv) != len(want) {
		t.Fatalf("Args() = %v, want %v", argv, want)
	}
	for i := range want {
		if argv[i] != want[i] {
			t.Errorf("argv[%d] = %q, want %q", i, argv[i], want[i])
		}
	}
}

func TestArgs_CommandWithFlags(t *testing.T) {
	argv, err := Args(`open -a "Firefox Developer Edition"`, "https://x/terms")
	if err != nil {
		t.Fatalf("Args() error = %v", err)
	}

	if len(argv) != 4 {
		t.Fatalf("Args() = %v, want 4 parts", argv)
	}
	if argv[2] != "Firefox Developer Edition" {
		t.Errorf("quoted argument not preserved: %q", argv[2])
	}
	if argv[3] != "https://x/terms" {
		t.Errorf("url must be appended last, got %q", argv[3])
	}
}

func TestArgs_EmptyCommandUsesDefault(t *testing.T) {
	argv, err := Args("", "https://x/terms")
	if err != nil {
		t.Fatalf("Args() error = %v", err)
	}
	if len(argv) < 2 {
		t.Fatalf("Args() = %v, expected platform default plus url", argv)
	}
}

func TestArgs_UnbalancedQuotes(t *testing.T) {
	if _, err := Args(`open "unclosed`, "https://x/terms"); err == nil {
		t.Fatal("Args() should reject unbalanced quoting")
	}
}
