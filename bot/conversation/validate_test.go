package conversation

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "89161234567", want: "+79161234567", ok: true},
		{in: "+7 916 123-45-67", want: "+79161234567", ok: true},
		{in: "+1 202-555-0191", want: "+12025550191", ok: true},
		{in: "  +12025550191  ", want: "+12025550191", ok: true},
		{in: "abc", ok: false},
		{in: "", ok: false},
		{in: "   ", ok: false},
		{in: "+1 123", ok: false},
	}

	for _, tc := range cases {
		got, ok := NormalizePhone(tc.in)
		if ok != tc.ok {
			t.Fatalf("NormalizePhone(%q) ok = %v, want %v", tc.in, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	if got, ok := ValidateEmail("a@b.co"); !ok || got != "a@b.co" {
		t.Fatalf("a@b.co: got %q ok=%v", got, ok)
	}
	if _, ok := ValidateEmail("a@b"); ok {
		t.Fatal("a@b must be rejected")
	}
	if got, ok := ValidateEmail("  a@b.co  "); !ok || got != "a@b.co" {
		t.Fatalf("padded email: got %q ok=%v", got, ok)
	}
	if _, ok := ValidateEmail("a b@c.io"); ok {
		t.Fatal("inner space must be rejected")
	}
}

func TestValidateFullName(t *testing.T) {
	cases := map[string]bool{
		"Ann":       false, // no space
		"Ann Lee":   true,
		"A B":       false, // three characters
		"Ab C":      true,  // four characters with a space
		"Abcd":      false, // four characters without a space
		"  Ann  ":   false,
		"Анна Ли":   true,
		" Jane Doe": true,
	}
	for in, want := range cases {
		if _, ok := ValidateFullName(in); ok != want {
			t.Errorf("ValidateFullName(%q) = %v, want %v", in, ok, want)
		}
	}

	if got, _ := ValidateFullName("  Jane Doe "); got != "Jane Doe" {
		t.Fatalf("name not trimmed: %q", got)
	}
}

func TestValidateRecipient(t *testing.T) {
	if _, ok := ValidateRecipientName(" A "); ok {
		t.Fatal("one-letter recipient name accepted")
	}
	if got, ok := ValidateRecipientName("Al"); !ok || got != "Al" {
		t.Fatalf("Al: got %q ok=%v", got, ok)
	}
	if _, ok := ValidateRecipientContact("ab"); ok {
		t.Fatal("two-character contact accepted")
	}
	if got, ok := ValidateRecipientContact(" @ab "); !ok || got != "@ab" {
		t.Fatalf("@ab: got %q ok=%v", got, ok)
	}
}

func TestSelectImpression(t *testing.T) {
	displayed := []int64{101, 102, 103}

	if id, ok := SelectImpression("2", displayed); !ok || id != 102 {
		t.Fatalf("\"2\" selected %d ok=%v, want 102", id, ok)
	}
	if id, ok := SelectImpression(" 3 ", displayed); !ok || id != 103 {
		t.Fatalf("\" 3 \" selected %d ok=%v, want 103", id, ok)
	}
	for _, in := range []string{"0", "4", "x", "-1", "1.5", ""} {
		if _, ok := SelectImpression(in, displayed); ok {
			t.Errorf("SelectImpression(%q) accepted", in)
		}
	}
	if _, ok := SelectImpression("1", nil); ok {
		t.Fatal("selection from an empty list accepted")
	}
}
