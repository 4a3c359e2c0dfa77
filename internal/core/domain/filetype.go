package domain

import "strings"

// FileType is the closed set of extraction variants. Anything outside the
// known set is handled as an image placeholder, but only through the explicit
// FileTypeImage variant so a mistyped tag cannot silently reach a text parser.
type FileType string

const (
	FileTypePDF   FileType = "pdf"
	FileTypeDOCX  FileType = "docx"
	FileTypeText  FileType = "txt"
	FileTypeImage FileType = "image"
)

// ParseFileType normalizes a caller-supplied type tag. The tag is declared by
// the uploader, not sniffed from content.
func ParseFileType(tag string) FileType {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "pdf":
		return FileTypePDF
	case "docx", "doc":
		return FileTypeDOCX
	case "txt", "text":
		return FileTypeText
	default:
		return FileTypeImage
	}
}

func (ft FileType) String() string { return string(ft) }
