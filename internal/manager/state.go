package manager

import (
	"strings"

	"user-manager/internal/model"
)

// Mode — режим формы: добавление или редактирование.
type Mode int

const (
	// ModeAdding — форма создаёт нового пользователя.
	ModeAdding Mode = iota
	// ModeEditing — форма обновляет пользователя State.EditingID.
	ModeEditing
)

func (m Mode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "adding"
}

// NoticeKind различает виды уведомлений.
type NoticeKind int

const (
	// NoticeInfo — успешное действие.
	NoticeInfo NoticeKind = iota
	// NoticeValidation — форма не прошла проверку, запрос не отправлялся.
	NoticeValidation
	// NoticeRequestFailed — сетевой запрос завершился ошибкой.
	NoticeRequestFailed
)

// Notice — последнее уведомление для отображения пользователю.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// IsError сообщает, является ли уведомление ошибкой.
func (n Notice) IsError() bool {
	return n.Kind != NoticeInfo
}

// State — всё состояние интерфейса управления пользователями.
type State struct {
	// Users — кэш последнего успешно загруженного списка.
	Users     []model.User
	Form      model.Form
	EditingID *int64
	Search    string
	Notice    *Notice
}

// Mode возвращает текущий режим формы.
func (s State) Mode() Mode {
	if s.EditingID != nil {
		return ModeEditing
	}
	return ModeAdding
}

// Visible возвращает список, отфильтрованный по строке поиска.
func (s State) Visible() []model.User {
	return FilterUsers(s.Users, s.Search)
}

func (s State) clone() State {
	out := s
	out.Users = append([]model.User(nil), s.Users...)
	if s.EditingID != nil {
		id := *s.EditingID
		out.EditingID = &id
	}
	if s.Notice != nil {
		n := *s.Notice
		out.Notice = &n
	}
	return out
}

// FilterUsers возвращает пользователей, у которых имя или email содержит term
// без учёта регистра. Пустой term возвращает весь список.
func FilterUsers(users []model.User, term string) []model.User {
	needle := strings.ToLower(term)
	res := make([]model.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), needle) ||
			strings.Contains(strings.ToLower(u.Email), needle) {
			res = append(res, u)
		}
	}
	return res
}
