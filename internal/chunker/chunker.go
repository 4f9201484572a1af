package chunker

import (
	"strconv"
	"strings"

	"marinebot/internal/domain"
)

// CharacterChunker splits text into fixed-size character windows with
// overlap between consecutive chunks. Sizes are in runes so multi-byte
// text never splits mid-character.
type CharacterChunker struct {
	chunkSize int
	overlap   int
}

func NewCharacterChunker(chunkSize, overlap int) *CharacterChunker {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}
	return &CharacterChunker{chunkSize: chunkSize, overlap: overlap}
}

// Chunk splits content into overlapping chunks. Chunk IDs are
// "<docID>:<index>" and Index preserves corpus insertion order.
func (c *CharacterChunker) Chunk(docID, content string) []domain.Chunk {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	runes := []rune(content)
	step := c.chunkSize - c.overlap
	var chunks []domain.Chunk
	idx := 0
	for start := 0; start < len(runes); start += step {
		end := start + c.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		text := strings.TrimSpace(string(runes[start:end]))
		if text != "" {
			chunks = append(chunks, domain.Chunk{
				ID:    docID + ":" + strconv.Itoa(idx),
				Text:  text,
				Index: idx,
			})
			idx++
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}
