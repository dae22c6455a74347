package config

// UploadConfig — правила загрузки для одной категории вложений.
// Единственный источник правды для валидации и именования файлов:
// раньше каждый контроллер повторял эти проверки у себя, из-за чего
// правила расходились.
type UploadConfig struct {
	AllowedMimeTypes []string
	// Расширения, допускаемые без проверки сигнатуры (HEIC не распознаётся
	// http.DetectContentType).
	AllowedExtensions []string
	MaxSizeMB         int64
	// Минимальное число файлов в одной загрузке.
	MinFiles   int
	PathPrefix string
}

// Категории клинических вложений.
const (
	CategoryInvestigationReport = "investigation_report"
	CategoryWardAdmissionImage  = "ward_admission_image"
	CategoryPatientReport       = "patient_report"
	CategorySurgeryPathology    = "surgery_pathology_report"
	CategorySurgeryOther        = "surgery_other_report"
)

var UploadContexts = map[string]UploadConfig{
	CategoryInvestigationReport: {
		AllowedMimeTypes: []string{"application/pdf", "image/jpeg", "image/jpg", "image/png"},
		MaxSizeMB:        20,
		MinFiles:         1,
		PathPrefix:       "investigations",
	},
	CategoryWardAdmissionImage: {
		AllowedMimeTypes:  []string{"image/jpeg", "image/jpg", "image/png"},
		AllowedExtensions: []string{".heic", ".heif"},
		MaxSizeMB:         10,
		MinFiles:          2,
		PathPrefix:        "admissions",
	},
	CategoryPatientReport: {
		AllowedMimeTypes: []string{"application/pdf", "image/jpeg", "image/jpg", "image/png"},
		MaxSizeMB:        2,
		MinFiles:         1,
		PathPrefix:       "reports",
	},
	CategorySurgeryPathology: {
		AllowedMimeTypes: []string{"application/pdf"},
		MaxSizeMB:        20,
		MinFiles:         1,
		PathPrefix:       "surgeries/pathology",
	},
	CategorySurgeryOther: {
		AllowedMimeTypes: []string{"application/pdf", "image/jpeg", "image/jpg", "image/png"},
		MaxSizeMB:        20,
		MinFiles:         1,
		PathPrefix:       "surgeries/other",
	},
}
