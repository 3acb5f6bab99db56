package scan

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Extracted
	}{
		{
			name: "full card",
			text: "BANNARI AMMAN INSTITUTE OF TECHNOLOGY\nSTUDENT ID CARD\nJOHN DAVID SMITH\n7376241CS322\nCSE DEPARTMENT",
			want: Extracted{Name: "JOHN DAVID SMITH", RegNum: "7376241CS322"},
		},
		{
			name: "lowercase reg num normalised",
			text: "JANE MARY DOE\n7376241cs322",
			want: Extracted{Name: "JANE MARY DOE", RegNum: "7376241CS322"},
		},
		{
			name: "reg num embedded in line",
			text: "Reg No 7376242EC117 issued 2024",
			want: Extracted{RegNum: "7376242EC117"},
		},
		{
			name: "single token line is not a name",
			text: "RAMAKRISHNAN\n7376241CS322",
			want: Extracted{RegNum: "7376241CS322"},
		},
		{
			name: "boilerplate lines skipped",
			text: "STUDENT ID CARD\nCIVIL ENGINEERING BLOCK\nARUN KUMAR\n7376243CE501",
			want: Extracted{Name: "ARUN KUMAR", RegNum: "7376243CE501"},
		},
		{
			name: "first qualifying name wins",
			text: "ARUN KUMAR\nVIJAY ANAND\n7376241CS322",
			want: Extracted{Name: "ARUN KUMAR", RegNum: "7376241CS322"},
		},
		{
			name: "mixed case line is not a name",
			text: "John Smith\n7376241CS322",
			want: Extracted{RegNum: "7376241CS322"},
		},
		{
			name: "short reg num rejected",
			text: "ARUN KUMAR\n737624CS32",
			want: Extracted{Name: "ARUN KUMAR"},
		},
		{
			name: "empty text",
			text: "",
			want: Extracted{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Extract(tc.text)
			if got != tc.want {
				t.Fatalf("Extract() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestExtractedMissing(t *testing.T) {
	cases := []struct {
		in       Extracted
		complete bool
		missing  []string
	}{
		{Extracted{Name: "ARUN KUMAR", RegNum: "7376241CS322"}, true, nil},
		{Extracted{RegNum: "7376241CS322"}, false, []string{"name"}},
		{Extracted{Name: "ARUN KUMAR"}, false, []string{"registration number"}},
		{Extracted{}, false, []string{"name", "registration number"}},
	}
	for _, tc := range cases {
		if got := tc.in.Complete(); got != tc.complete {
			t.Errorf("Complete(%+v) = %v, want %v", tc.in, got, tc.complete)
		}
		if got := tc.in.Missing(); !reflect.DeepEqual(got, tc.missing) {
			t.Errorf("Missing(%+v) = %v, want %v", tc.in, got, tc.missing)
		}
	}
}
