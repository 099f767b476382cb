package treatment

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Treatment
	}{
		{"empty", "", Treatment{}},
		{"malformed", "{", Treatment{}},
		{"missing title", `{"logline":"x"}`, Treatment{}},
		{"non-string title", `{"title":3,"logline":"x"}`, Treatment{}},
		{"valid", `{"title":"Tide","logline":"A keeper..."}`, Treatment{Title: "Tide", Logline: "A keeper..."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.content); got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.content, got, tt.want)
			}
		})
	}
}

func TestWith(t *testing.T) {
	tr, ok := Treatment{}.With("toneAndTheme", "bleak")
	if !ok || tr.ToneAndTheme != "bleak" {
		t.Errorf("With(toneAndTheme) = %+v, %v", tr, ok)
	}
	if _, ok := tr.With("budget", "x"); ok {
		t.Error("With(unknown) should report false")
	}
	if Parse(tr.Encode()) != tr {
		t.Error("encoded treatment does not parse back")
	}
}
