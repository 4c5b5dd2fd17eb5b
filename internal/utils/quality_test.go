package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineQuality(t *testing.T) {
	tests := []struct {
		caption string
		want    string
	}{
		{caption: "Inception (2010) 1080p Latino", want: "1080p"},
		{caption: "Dune 2021 2160p HDR", want: "4K"},
		{caption: "Alien (1979) [720p]", want: "720p"},
		{caption: "Matrix (1999)", want: "HD"},
		{caption: "", want: "HD"},
	}

	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineQuality(tt.caption))
		})
	}
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "Latino", DetectLanguage("Audio: LATINO"))
	assert.Equal(t, "Castellano", DetectLanguage("Idioma castellano"))
	assert.Equal(t, "Subtitulado", DetectLanguage("VOSE"))
	assert.Equal(t, "", DetectLanguage("Inception (2010)"))
}
