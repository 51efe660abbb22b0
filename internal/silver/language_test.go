package silver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "english",
			text: "the government announced that the new plan will start from next week",
			want: "en",
		},
		{
			name: "portuguese",
			text: "o governo anunciou que o novo plano vai começar já na próxima semana para todos",
			want: "pt",
		},
		{
			name: "spanish",
			text: "los ministros dijeron que hay una propuesta muy importante para las regiones",
			want: "es",
		},
		{
			name: "too short",
			text: "bom dia",
			want: LanguageUnknown,
		},
		{
			name: "no markers",
			text: "banana laranja maçã pera uva melancia",
			want: LanguageUnknown,
		},
		{
			name: "empty",
			text: "",
			want: LanguageUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.text))
		})
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		want       string
	}{
		{"direct match", []string{"technology"}, "technology"},
		{"alias", []string{"tech"}, "technology"},
		{"first recognised wins", []string{"weird-tag", "sports", "business"}, "sports"},
		{"case and whitespace", []string{"  Business "}, "business"},
		{"newsdata bucket maps to general", []string{"top"}, "general"},
		{"unrecognised", []string{"astrology"}, "general"},
		{"empty list", nil, "general"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategory(tt.categories))
		})
	}
}
