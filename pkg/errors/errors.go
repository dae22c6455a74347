package errors

import "fmt"

var (
	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")

	// Пациенты и клинические записи
	ErrPatientNotFound    = fmt.Errorf("пациент с указанным клиническим номером не найден")
	ErrDuplicateClinicRef = fmt.Errorf("пациент с таким клиническим номером уже зарегистрирован")
	ErrOrderNotFound      = fmt.Errorf("медицинское назначение не найдено")
	ErrSurgerySlotTaken   = fmt.Errorf("на это время в данной операционной уже есть запись")
	ErrAdmissionNotFound  = fmt.Errorf("запись о госпитализации не найдена")
	ErrAttachmentNotFound = fmt.Errorf("вложение не найдено")

	// Файловое хранилище
	ErrInvalidPath  = fmt.Errorf("недопустимый путь к файлу")
	ErrFileNotFound = fmt.Errorf("файл не найден в хранилище")
	ErrStorageWrite = fmt.Errorf("ошибка записи файла в хранилище")
	ErrStorageRead  = fmt.Errorf("ошибка чтения файла из хранилища")

	// Конвейер загрузки
	ErrUnknownCategory = fmt.Errorf("неизвестная категория вложения")
	ErrNotEnoughFiles  = fmt.Errorf("недостаточно файлов для данной категории")
	ErrNoFilesProvided = fmt.Errorf("не передано ни одного файла")
)

// InvalidInputError — ошибка валидации входных данных.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// HttpError — ошибка с HTTP-кодом и безопасным для клиента сообщением.
// Техническая причина (Err) попадает только в логи.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details map[string]interface{}) *HttpError {
	return &HttpError{
		Code:    code,
		Message: message,
		Err:     err,
		Details: details,
	}
}
