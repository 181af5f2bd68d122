package domain

import "testing"

func TestNormalizeWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase", input: "casa", want: "CASA"},
		{name: "trailing period", input: "Casa.", want: "CASA"},
		{name: "trailing comma", input: "luna,", want: "LUNA"},
		{name: "inner punctuation", input: "a.b,c", want: "ABC"},
		{name: "accents kept", input: "corazón", want: "CORAZÓN"},
		{name: "eñe", input: "año", want: "AÑO"},
		{name: "question marks kept", input: "¿Quién?", want: "¿QUIÉN?"},
		{name: "semicolon kept", input: "mar;", want: "MAR;"},
		{name: "already normalized", input: "CASA", want: "CASA"},
		{name: "only punctuation", input: ".,", want: ""},
		{name: "empty", input: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeWord(tt.input); got != tt.want {
				t.Errorf("NormalizeWord(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeWord_Idempotent(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"Casa.", "corazón,", "¿Quién?", "Ñandú"} {
		once := NormalizeWord(in)
		if twice := NormalizeWord(once); twice != once {
			t.Errorf("NormalizeWord not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
