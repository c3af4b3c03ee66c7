package escp

import "bytes"

// stripFrontMatter removes a leading front matter block (--- / +++ / ;;;
// delimited) from src. The opening delimiter must be the first line and the
// second line must look like metadata; anything else is returned unchanged.
func stripFrontMatter(src []byte) []byte {
	openLine, next, ok := nextLine(src, 0)
	if !ok {
		return src
	}
	delim, isFrontMatter := frontMatterDelimiter(openLine)
	if !isFrontMatter {
		return src
	}
	secondLine, next, ok := nextLine(src, next)
	if !ok || !frontMatterMetadataLikely(secondLine) {
		return src
	}
	for next <= len(src) {
		line, lineEnd, ok := nextLine(src, next)
		if !ok {
			return src
		}
		if bytes.Equal(bytes.TrimSpace(line), delim) {
			return src[lineEnd:]
		}
		next = lineEnd
	}
	return src
}

func nextLine(src []byte, start int) ([]byte, int, bool) {
	if start >= len(src) {
		return nil, 0, false
	}
	i := bytes.IndexByte(src[start:], '\n')
	if i < 0 {
		return trimCR(src[start:]), len(src), true
	}
	lineEnd := start + i
	return trimCR(src[start:lineEnd]), lineEnd + 1, true
}

func frontMatterDelimiter(line []byte) ([]byte, bool) {
	trimmed := bytes.TrimSpace(trimBOM(line))
	switch {
	case bytes.Equal(trimmed, []byte("---")):
		return []byte("---"), true
	case bytes.Equal(trimmed, []byte("+++")):
		return []byte("+++"), true
	case bytes.Equal(trimmed, []byte(";;;")):
		return []byte(";;;"), true
	default:
		return nil, false
	}
}

func frontMatterMetadataLikely(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	if bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("[")) {
		return true
	}
	return bytes.Contains(trimmed, []byte(":")) || bytes.Contains(trimmed, []byte("="))
}

func trimCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}

func trimBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}
