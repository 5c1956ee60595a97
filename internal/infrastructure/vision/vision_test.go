package vision

import (
	"testing"

	"github.com/findthisfit/go-backend/internal/usecase"
	"github.com/stretchr/testify/assert"
)

func TestParseBrandColorReply(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		want  usecase.VisionRead
	}{
		{
			name:  "both fields",
			reply: "BRAND: Nike\nCOLOR: Black",
			want:  usecase.VisionRead{Brand: "Nike", Color: "Black"},
		},
		{
			name:  "unknown brand dropped",
			reply: "BRAND: unknown\nCOLOR: Navy",
			want:  usecase.VisionRead{Color: "Navy"},
		},
		{
			name:  "model stubs dropped",
			reply: "BRAND: no brand\nCOLOR: n/a",
			want:  usecase.VisionRead{},
		},
		{
			name:  "lowercase prefixes",
			reply: "brand: Carhartt\ncolor: Brown",
			want:  usecase.VisionRead{Brand: "Carhartt", Color: "Brown"},
		},
		{
			name:  "surrounding whitespace",
			reply: "  BRAND:   Stone Island  \n  COLOR:  Olive  ",
			want:  usecase.VisionRead{Brand: "Stone Island", Color: "Olive"},
		},
		{
			name:  "chatty preamble ignored",
			reply: "Sure, here is the answer.\nBRAND: Patagonia\nCOLOR: Red\nHope this helps!",
			want:  usecase.VisionRead{Brand: "Patagonia", Color: "Red"},
		},
		{
			name:  "empty reply",
			reply: "",
			want:  usecase.VisionRead{},
		},
		{
			name:  "not visible stub dropped",
			reply: "BRAND: Not Visible\nCOLOR: None",
			want:  usecase.VisionRead{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseBrandColorReply(tc.reply))
		})
	}
}
