package extract

import "bytes"

// Kind is the detected file type of an uploaded payload.
type Kind string

const (
	KindPDF     Kind = "pdf"
	KindPNG     Kind = "png"
	KindJPEG    Kind = "jpeg"
	KindGIF     Kind = "gif"
	KindBMP     Kind = "bmp"
	KindTIFF    Kind = "tiff"
	KindWebP    Kind = "webp"
	KindUnknown Kind = "unknown"
)

// MaxFileSizeBytes caps accepted payloads at 25 MB.
const MaxFileSizeBytes = 25 << 20

// magic prefixes, checked in order.
var magicTable = []struct {
	prefix []byte
	kind   Kind
}{
	{[]byte("%PDF"), KindPDF},
	{[]byte("\x89PNG"), KindPNG},
	{[]byte("\xff\xd8\xff"), KindJPEG},
	{[]byte("GIF8"), KindGIF},
	{[]byte("BM"), KindBMP},
	{[]byte("II*\x00"), KindTIFF},
	{[]byte("MM\x00*"), KindTIFF},
	{[]byte("RIFF"), KindWebP},
}

// DetectKind sniffs the file type from magic bytes. Extensions and MIME
// headers are not trusted; only the payload itself.
func DetectKind(data []byte) Kind {
	for _, m := range magicTable {
		if bytes.HasPrefix(data, m.prefix) {
			return m.kind
		}
	}
	return KindUnknown
}

// IsImage reports whether the kind is a raster image (i.e. would need OCR
// rather than text extraction).
func (k Kind) IsImage() bool {
	switch k {
	case KindPNG, KindJPEG, KindGIF, KindBMP, KindTIFF, KindWebP:
		return true
	}
	return false
}
