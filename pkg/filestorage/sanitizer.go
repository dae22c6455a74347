package filestorage

import "strings"

// Rule — одно правило исправления пути: известный испорченный фрагмент
// и его каноническая замена.
type Rule struct {
	Bad  string
	Good string
}

// DefaultRules исправляют наследие старых контроллеров, которые
// записывали в БД путь вместе с корнем хранилища (а иногда и со
// служебным каталогом private). Канонический путь хранится
// относительно корня и этих сегментов не содержит.
var DefaultRules = []Rule{
	{Bad: "private/uploads/", Good: ""},
	{Bad: "uploads/", Good: ""},
}

// Sanitizer приводит сохранённые пути вложений к канонической форме.
type Sanitizer struct {
	rules []Rule
}

func NewSanitizer(rules []Rule) *Sanitizer {
	return &Sanitizer{rules: rules}
}

func NewDefaultSanitizer() *Sanitizer {
	return NewSanitizer(DefaultRules)
}

// Sanitize приводит путь к канонической форме. За шаг применяется одно
// правило — то, чьё вхождение встречается в пути раньше всех (при
// равенстве побеждает правило, объявленное первым); шаги повторяются,
// пока в пути остаётся хоть один испорченный фрагмент. Старые
// контроллеры иногда дублировали корень (uploads/uploads/...), поэтому
// одного шага недостаточно. Результат всегда канонический, повторный
// вызов ничего не меняет.
func (s *Sanitizer) Sanitize(path string) string {
	// Страховка от правил, которые не сокращают путь: правила по
	// умолчанию удаляют хотя бы один символ за шаг.
	limit := len(path) + 1
	for step := 0; step < limit; step++ {
		next, changed := s.applyOnce(path)
		if !changed {
			return path
		}
		path = next
	}
	return path
}

func (s *Sanitizer) applyOnce(path string) (string, bool) {
	bestIdx := -1
	bestRule := -1
	for i, r := range s.rules {
		if idx := strings.Index(path, r.Bad); idx >= 0 {
			if bestIdx == -1 || idx < bestIdx {
				bestIdx = idx
				bestRule = i
			}
		}
	}
	if bestRule == -1 {
		return path, false
	}
	r := s.rules[bestRule]
	return path[:bestIdx] + r.Good + path[bestIdx+len(r.Bad):], true
}

// IsCanonical — путь не содержит ни одного известного испорченного фрагмента.
func (s *Sanitizer) IsCanonical(path string) bool {
	_, changed := s.applyOnce(path)
	return !changed
}
