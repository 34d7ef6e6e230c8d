package dah

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Format
	}{
		{
			name: "csv header with id and name",
			text: "id,name\nA1,Foo",
			want: FormatCSV,
		},
		{
			name: "csv header with airspace column",
			text: "Airspace ID,Latitude,Longitude\nA1,-33.5,148.2",
			want: FormatCSV,
		},
		{
			name: "structured text vertical limits",
			text: "VERTICAL LIMITS: FL100 - FL200",
			want: FormatStructuredText,
		},
		{
			name: "structured text airspace marker",
			text: "The following Airspace definitions apply",
			want: FormatStructuredText,
		},
		{
			name: "json array",
			text: "[1,2,3]",
			want: FormatJSON,
		},
		{
			name: "json object",
			text: `{"airspace":[]}`,
			want: FormatJSON,
		},
		{
			name: "json with surrounding whitespace",
			text: "\n  {\"airspace\":[]}\n",
			want: FormatJSON,
		},
		{
			name: "malformed json falls through to generic",
			text: "{not json at all",
			want: FormatGeneric,
		},
		{
			name: "malformed json falls through to structured text",
			text: "{broken\nUPPER LIMIT: FL200",
			want: FormatStructuredText,
		},
		{
			name: "plain text",
			text: "hello world",
			want: FormatGeneric,
		},
		{
			name: "empty input",
			text: "",
			want: FormatGeneric,
		},
		{
			name: "single comma line is not csv",
			text: "name,of,something",
			want: FormatGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.text); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHintFormat(t *testing.T) {
	tests := []struct {
		hint       string
		want       Format
		wantForced bool
	}{
		{hint: "csv", want: FormatCSV, wantForced: true},
		{hint: "CSV", want: FormatCSV, wantForced: true},
		{hint: "json", want: FormatJSON, wantForced: true},
		{hint: "text", wantForced: false},
		{hint: "pdf-extracted", wantForced: false},
		{hint: "", wantForced: false},
	}

	for _, tt := range tests {
		t.Run("hint "+tt.hint, func(t *testing.T) {
			got, forced := HintFormat(tt.hint)
			if forced != tt.wantForced {
				t.Errorf("HintFormat(%q) forced = %v, want %v", tt.hint, forced, tt.wantForced)
			}
			if forced && got != tt.want {
				t.Errorf("HintFormat(%q) = %v, want %v", tt.hint, got, tt.want)
			}
		})
	}
}

func TestFormatString(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatCSV, "csv"},
		{FormatStructuredText, "structured-text"},
		{FormatJSON, "json"},
		{FormatGeneric, "generic"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}
