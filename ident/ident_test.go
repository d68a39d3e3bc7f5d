package ident

import "testing"

func TestTryNewValid(t *testing.T) {
	cases := []string{"a", "_foo", "foo_bar", "foo-bar", "Foo2", "_", "a1-2_3"}
	for _, s := range cases {
		id, err := TryNew(s)
		if err != nil {
			t.Errorf("TryNew(%q): unexpected error: %v", s, err)
			continue
		}
		if id.String() != s {
			t.Errorf("TryNew(%q).String() = %q", s, id.String())
		}
	}
}

func TestTryNewInvalid(t *testing.T) {
	cases := []string{"", "1abc", "-abc", "foo bar", "foo.bar", "foo$"}
	for _, s := range cases {
		if _, err := TryNew(s); err == nil {
			t.Errorf("TryNew(%q): expected error, got none", s)
		}
	}
}

func TestNewPanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(\"1abc\"): expected panic")
		}
	}()
	New("1abc")
}

func TestValid(t *testing.T) {
	if !Valid("foo") {
		t.Error("Valid(\"foo\") = false, want true")
	}
	if Valid("") {
		t.Error("Valid(\"\") = true, want false")
	}
}
