package filestorage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizer_DefaultRules(t *testing.T) {
	s := NewDefaultSanitizer()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "путь с корнем хранилища",
			input:    "uploads/reports/CRN-000001/2025/08/10/file.pdf",
			expected: "reports/CRN-000001/2025/08/10/file.pdf",
		},
		{
			name:     "путь с продублированным корнем",
			input:    "uploads/uploads/reports/CRN-000001/2025/08/10/file.pdf",
			expected: "reports/CRN-000001/2025/08/10/file.pdf",
		},
		{
			name:     "private поверх продублированного корня",
			input:    "private/uploads/uploads/reports/CRN-000001/2025/08/10/file.pdf",
			expected: "reports/CRN-000001/2025/08/10/file.pdf",
		},
		{
			name:     "путь со служебным каталогом private",
			input:    "private/uploads/reports/CRN-000001/2025/08/10/file.pdf",
			expected: "reports/CRN-000001/2025/08/10/file.pdf",
		},
		{
			name:     "канонический путь не меняется",
			input:    "reports/CRN-000001/2025/08/10/file.pdf",
			expected: "reports/CRN-000001/2025/08/10/file.pdf",
		},
		{
			name:     "пустая строка",
			input:    "",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, s.Sanitize(tc.input))
		})
	}
}

// За шаг применяется правило, чьё вхождение начинается раньше всех;
// шаги повторяются, пока путь не станет каноническим.
func TestSanitizer_EarliestMatchWins(t *testing.T) {
	s := NewSanitizer([]Rule{
		{Bad: "private/", Good: ""},
		{Bad: "public/", Good: "shared/"},
	})

	assert.Equal(t, "root/shared/x.jpg", s.Sanitize("root/private/public/x.jpg"))
}

// При равных позициях побеждает правило, объявленное первым.
func TestSanitizer_RuleOrderBreaksTies(t *testing.T) {
	s := NewSanitizer([]Rule{
		{Bad: "abc", Good: "FIRST"},
		{Bad: "abcd", Good: "SECOND"},
	})

	assert.Equal(t, "FIRSTd/file.txt", s.Sanitize("abcd/file.txt"))
}

// Один вызов доводит путь до канонической формы, в том числе при
// продублированном корне; повторный вызов ничего не меняет.
func TestSanitizer_Idempotent(t *testing.T) {
	s := NewDefaultSanitizer()

	for _, input := range []string{
		"uploads/admissions/CRN-000002/2025/01/01/a.png",
		"uploads/uploads/admissions/CRN-000002/2025/01/01/a.png",
	} {
		once := s.Sanitize(input)
		assert.Equal(t, once, s.Sanitize(once))
		assert.True(t, s.IsCanonical(once))
	}
}

func TestSanitizer_IsCanonical(t *testing.T) {
	s := NewDefaultSanitizer()

	assert.False(t, s.IsCanonical("uploads/reports/x.pdf"))
	assert.True(t, s.IsCanonical("reports/x.pdf"))
}
