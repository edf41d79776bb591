package models

const (
	MinCount = 1
	MaxCount = 50

	PDFMagic  = "%PDF-"
	PDFSuffix = ".pdf"

	MetaPageNumber = "page"
	MetaSource     = "source"
)
