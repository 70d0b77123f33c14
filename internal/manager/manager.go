// Package manager содержит контейнер состояния интерфейса управления
// пользователями: форма, поиск, кэш списка и переходы между режимами.
package manager

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"user-manager/internal/model"
)

var (
	// ErrValidation возвращается, если имя или email пусты.
	ErrValidation = errors.New("name and email are required")

	// ErrNotEditing возвращается при попытке обновления в режиме добавления.
	ErrNotEditing = errors.New("no user is being edited")
)

const (
	// DeletePrompt — вопрос, который задаётся перед удалением.
	DeletePrompt = "Are you sure you want to delete this user?"

	validationMessage = "Name and email are required"
)

// UsersAPI описывает контракт удалённого ресурса пользователей.
type UsersAPI interface {
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, in model.UserInput) (model.User, error)
	Update(ctx context.Context, id int64, in model.UserInput) (model.User, error)
	Delete(ctx context.Context, id int64) error
}

// Confirmer запрашивает у пользователя подтверждение действия.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc позволяет использовать обычную функцию как Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm реализует Confirmer.
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Manager хранит State и выполняет действия пользователя.
// Мьютекс не удерживается во время сетевых вызовов.
type Manager struct {
	api UsersAPI
	log *slog.Logger

	mu       sync.Mutex
	state    State
	fetchGen uint64
}

// New создаёт Manager в режиме добавления с пустым кэшем.
func New(api UsersAPI, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Manager{
		api:   api,
		log:   log,
		state: State{Users: make([]model.User, 0)},
	}
}

// Snapshot возвращает копию текущего состояния.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// SetName привязывает поле имени.
func (m *Manager) SetName(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Form.Name = name
}

// SetEmail привязывает поле email.
func (m *Manager) SetEmail(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Form.Email = email
}

// SetSearch меняет строку поиска. Кэш не меняется.
func (m *Manager) SetSearch(term string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Search = term
}

// DismissNotice убирает текущее уведомление.
func (m *Manager) DismissNotice() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Notice = nil
}

// FetchAll загружает весь список и заменяет кэш. При ошибке кэш не меняется,
// а ошибка сохраняется как уведомление. Ответ загрузки, после начала которой
// стартовала более новая, отбрасывается.
func (m *Manager) FetchAll(ctx context.Context) error {
	m.mu.Lock()
	m.fetchGen++
	gen := m.fetchGen
	m.mu.Unlock()

	users, err := m.api.List(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.fetchGen {
		m.log.Debug("stale fetch discarded", slog.Uint64("gen", gen), slog.Uint64("latest", m.fetchGen))
		return nil
	}
	if err != nil {
		m.log.Error("fetch users", slog.Any("err", err))
		m.notify(NoticeRequestFailed, "Error fetching users: "+err.Error())
		return err
	}
	if users == nil {
		users = make([]model.User, 0)
	}
	m.state.Users = users
	return nil
}

// Submit отправляет форму: добавление или обновление в зависимости от режима.
func (m *Manager) Submit(ctx context.Context) error {
	if m.Snapshot().Mode() == ModeEditing {
		return m.SubmitUpdate(ctx)
	}
	return m.SubmitAdd(ctx)
}

// SubmitAdd создаёт пользователя из формы. После успеха форма очищается
// и список загружается заново. При ошибке форма сохраняется.
func (m *Manager) SubmitAdd(ctx context.Context) error {
	form, ok := m.validForm()
	if !ok {
		return ErrValidation
	}

	created, err := m.api.Create(ctx, form.Input())
	if err != nil {
		m.log.Error("add user", slog.Any("err", err))
		m.setNotice(NoticeRequestFailed, "Error adding user: "+err.Error())
		return err
	}
	m.log.Info("user added", slog.Int64("id", created.ID))

	m.mu.Lock()
	m.state.Form = model.Form{}
	m.notify(NoticeInfo, "User added")
	m.mu.Unlock()

	_ = m.FetchAll(ctx)
	return nil
}

// SubmitUpdate обновляет редактируемого пользователя. После успеха режим
// возвращается к добавлению, форма очищается, список загружается заново.
// При ошибке форма и EditingID не меняются.
func (m *Manager) SubmitUpdate(ctx context.Context) error {
	m.mu.Lock()
	editing := m.state.EditingID
	m.mu.Unlock()
	if editing == nil {
		return ErrNotEditing
	}
	id := *editing

	form, ok := m.validForm()
	if !ok {
		return ErrValidation
	}

	if _, err := m.api.Update(ctx, id, form.Input()); err != nil {
		m.log.Error("update user", slog.Int64("id", id), slog.Any("err", err))
		m.setNotice(NoticeRequestFailed, "Error updating user: "+err.Error())
		return err
	}
	m.log.Info("user updated", slog.Int64("id", id))

	m.mu.Lock()
	m.state.EditingID = nil
	m.state.Form = model.Form{}
	m.notify(NoticeInfo, "User updated")
	m.mu.Unlock()

	_ = m.FetchAll(ctx)
	return nil
}

// StartEdit переводит форму в режим редактирования пользователя u.
func (m *Manager) StartEdit(u model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := u.ID
	m.state.EditingID = &id
	m.state.Form = model.FormOf(u)
}

// CancelEdit возвращает форму в режим добавления и очищает её. Сети не касается.
func (m *Manager) CancelEdit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.EditingID = nil
	m.state.Form = model.Form{}
}

// Remove удаляет пользователя id после подтверждения. Если подтверждение не
// получено, ничего не делает и возвращает false. После успешного удаления
// список загружается заново.
func (m *Manager) Remove(ctx context.Context, id int64, confirm Confirmer) (bool, error) {
	if confirm == nil || !confirm.Confirm(DeletePrompt) {
		return false, nil
	}

	if err := m.api.Delete(ctx, id); err != nil {
		m.log.Error("delete user", slog.Int64("id", id), slog.Any("err", err))
		m.setNotice(NoticeRequestFailed, "Error deleting user: "+err.Error())
		return true, err
	}
	m.log.Info("user deleted", slog.Int64("id", id))
	m.setNotice(NoticeInfo, "User deleted")

	_ = m.FetchAll(ctx)
	return true, nil
}

// validForm возвращает копию формы, если она заполнена; иначе ставит
// уведомление о валидации.
func (m *Manager) validForm() (model.Form, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	form := m.state.Form
	if form.IsBlank() {
		m.notify(NoticeValidation, validationMessage)
		return form, false
	}
	return form, true
}

func (m *Manager) setNotice(kind NoticeKind, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notify(kind, msg)
}

// notify вызывается под m.mu.
func (m *Manager) notify(kind NoticeKind, msg string) {
	m.state.Notice = &Notice{Kind: kind, Message: msg}
}
