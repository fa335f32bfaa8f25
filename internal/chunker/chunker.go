package chunker

import (
	"strings"
)

func DefaultOptions() Options {
	return Options{
		MinChunkLength: 10,
	}
}

// ChunkPage splits one page of extracted text into retrieval chunks.
// paragraphs are separated by blank lines; each surviving paragraph is
// normalized and becomes one chunk. near-empty paragraphs are dropped so
// they never pollute the index.
func ChunkPage(text string, page int, opts Options) []Chunk {
	if opts.MinChunkLength <= 0 {
		opts.MinChunkLength = DefaultOptions().MinChunkLength
	}

	var chunks []Chunk

	for _, paragraph := range splitParagraphs(text) {
		cleaned := Normalize(paragraph)

		if len(cleaned) < opts.MinChunkLength {
			continue
		}

		chunks = append(chunks, Chunk{
			Page: page,
			Text: cleaned,
		})
	}

	return chunks
}

// ChunkPages runs ChunkPage over a list of extracted pages, preserving
// page order. page numbers come from the extraction step, not position.
func ChunkPages(pages []Page, opts Options) []Chunk {
	var chunks []Chunk

	for _, p := range pages {
		chunks = append(chunks, ChunkPage(p.Text, p.Number, opts)...)
	}

	return chunks
}

// Normalize collapses all whitespace runs to single spaces and trims.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
