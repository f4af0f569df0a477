package news

import "testing"

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "removes simple tags",
			input: "<p>Hello <b>world</b></p>",
			want:  "Hello world",
		},
		{
			name:  "unescapes HTML entities",
			input: "Tom &amp; Jerry &lt;3",
			want:  "Tom & Jerry <3",
		},
		{
			name:  "line breaks become spaces",
			input: "line one<br/>line two",
			want:  "line one line two",
		},
		{
			name:  "block elements are separated",
			input: "<p>Flood</p><p>warning</p>",
			want:  "Flood warning",
		},
		{
			name:  "script contents are dropped",
			input: "<script>alert(1)</script>Evacuate now",
			want:  "Evacuate now",
		},
		{
			name:  "plain text whitespace collapsed",
			input: "  no   tags\nhere ",
			want:  "no tags here",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := htmlToText(tt.input)
			if got != tt.want {
				t.Errorf("htmlToText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
