package extract

import "testing"

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Kind
	}{
		{"pdf", []byte("%PDF-1.7 rest"), KindPDF},
		{"png", []byte("\x89PNG\r\n\x1a\n"), KindPNG},
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0}, KindJPEG},
		{"gif", []byte("GIF89a"), KindGIF},
		{"bmp", []byte("BM1234"), KindBMP},
		{"tiff little-endian", []byte("II*\x00"), KindTIFF},
		{"tiff big-endian", []byte("MM\x00*"), KindTIFF},
		{"webp", []byte("RIFF1234WEBP"), KindWebP},
		{"plain text", []byte("2024-01-31 coffee 120.00"), KindUnknown},
		{"empty", nil, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectKind(tt.data); got != tt.want {
				t.Errorf("DetectKind = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestKindIsImage(t *testing.T) {
	if KindPDF.IsImage() {
		t.Error("pdf should not be an image kind")
	}
	if KindUnknown.IsImage() {
		t.Error("unknown should not be an image kind")
	}
	for _, k := range []Kind{KindPNG, KindJPEG, KindGIF, KindBMP, KindTIFF, KindWebP} {
		if !k.IsImage() {
			t.Errorf("%s should be an image kind", k)
		}
	}
}

func TestText_PlainPassthrough(t *testing.T) {
	in := "2024-01-31 coffee 120.00\n"
	got, err := Text([]byte(in))
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != in {
		t.Errorf("Text = %q, want %q", got, in)
	}
}

func TestText_ImageNeedsOCR(t *testing.T) {
	if _, err := Text([]byte("\x89PNG\r\n\x1a\n....")); err == nil {
		t.Error("expected error for image payload")
	}
}
