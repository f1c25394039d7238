package vector

import (
	"regexp"
	"strings"
)

var sentencePattern = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)

// ChunkSentences splits text into chunks of at most sentencesPerChunk
// sentences, overlapping by overlap sentences between adjacent chunks.
// Text without terminal punctuation becomes a single chunk.
func ChunkSentences(text string, sentencesPerChunk, overlap int) []string {
	if sentencesPerChunk <= 0 {
		sentencesPerChunk = 5
	}
	if overlap < 0 || overlap >= sentencesPerChunk {
		overlap = 0
	}

	sentences := sentencePattern.FindAllString(text, -1)
	if len(sentences) == 0 {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		sentences = []string{trimmed}
	}
	for i := range sentences {
		sentences[i] = strings.TrimSpace(sentences[i])
	}

	var chunks []string
	for i := 0; i < len(sentences); {
		end := i + sentencesPerChunk
		if end > len(sentences) {
			end = len(sentences)
		}
		chunks = append(chunks, strings.Join(sentences[i:end], " "))
		if end == len(sentences) {
			break
		}
		i = end - overlap
	}
	return chunks
}
