package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxWordRunes is the maximum accepted word length in runes. The bound
// is counted in runes so multi-byte scripts get the same budget as
// ASCII.
const MaxWordRunes = 20

// MaxTitleRunes is the maximum accepted session title length in runes.
const MaxTitleRunes = 100

// ValidateWord validates a submitted word at the application boundary.
// The layout core accepts anything; this keeps junk out of the store.
//
// Rules:
//   - Not empty or whitespace-only
//   - At most MaxWordRunes runes
//   - No control characters
func ValidateWord(word string) error {
	if strings.TrimSpace(word) == "" {
		return New(ErrCodeInvalidWord, "word cannot be empty")
	}

	if utf8.RuneCountInString(word) > MaxWordRunes {
		return New(ErrCodeInvalidWord, "word too long (max %d characters)", MaxWordRunes)
	}

	for _, r := range word {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidWord, "word contains control characters")
		}
	}

	return nil
}

// ValidateTitle validates a session title.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return New(ErrCodeInvalidInput, "title cannot be empty")
	}
	if utf8.RuneCountInString(title) > MaxTitleRunes {
		return New(ErrCodeInvalidInput, "title too long (max %d characters)", MaxTitleRunes)
	}
	return nil
}
