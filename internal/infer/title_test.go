package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleFromMeta(t *testing.T) {
	tests := []struct {
		name        string
		og, doc     string
		wantTitle   string
		wantCompany string
	}{
		{"og title with company", "Backend Engineer - Acme - LinkedIn", "", "Backend Engineer", "Acme"},
		{"og noise falls to doc title", "LinkedIn", "Data Engineer | LinkedIn", "Data Engineer", ""},
		{"both noise", "LinkedIn", "Jobs | LinkedIn", "", ""},
		{"case insensitive noise", "linkedin", "JOBS | LINKEDIN", "", ""},
		{"notification counter", "", "(3) SRE - Initech - LinkedIn", "SRE", "Initech"},
		{"pipe separated company", "", "Platform Engineer | Globex | LinkedIn", "Platform Engineer", "Globex"},
		{"second segment is site", "Go Developer - LinkedIn", "", "Go Developer", ""},
		{"title without site", "Staff Engineer", "", "Staff Engineer", ""},
		{"empty", "", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, company := TitleFromMeta(tt.og, tt.doc)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantCompany, company)
		})
	}
}
