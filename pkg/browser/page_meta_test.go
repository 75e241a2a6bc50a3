package browser

import (
	"testing"
)

func TestExtractPageMetadata(t *testing.T) {
	tests := []struct {
		name            string
		html            string
		wantTitle       string
		wantDescription string
	}{
		{
			name: "title and description",
			html: `<html><head>
				<title>  Billing — Example Docs </title>
				<meta name="description" content="How billing works.">
			</head><body></body></html>`,
			wantTitle:       "Billing — Example Docs",
			wantDescription: "How billing works.",
		},
		{
			name:      "title only",
			html:      `<html><head><title>Home</title></head><body></body></html>`,
			wantTitle: "Home",
		},
		{
			name: "case-insensitive meta name",
			html: `<html><head>
				<meta NAME="Description" content="mixed case">
			</head></html>`,
			wantDescription: "mixed case",
		},
		{
			name: "other meta tags ignored",
			html: `<html><head>
				<meta name="viewport" content="width=device-width">
				<meta property="og:description" content="social only">
			</head></html>`,
		},
		{
			name: "empty document",
			html: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := extractPageMetadata(tt.html)
			if err != nil {
				t.Fatalf("extractPageMetadata failed: %v", err)
			}

			if meta.Title != tt.wantTitle {
				t.Errorf("title: got %q, want %q", meta.Title, tt.wantTitle)
			}
			if meta.Description != tt.wantDescription {
				t.Errorf("description: got %q, want %q", meta.Description, tt.wantDescription)
			}
		})
	}
}
