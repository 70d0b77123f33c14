// Package model содержит доменные структуры пользователя и состояния формы.
package model

import "strings"

// User описывает пользователя: серверный идентификатор, имя и email.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserInput — тело запросов на создание и обновление пользователя.
type UserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Form описывает буфер полей ввода, общий для режимов добавления и редактирования.
type Form struct {
	Name  string
	Email string
}

// IsBlank сообщает, пусто ли имя или email после обрезки пробелов.
func (f Form) IsBlank() bool {
	return strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Email) == ""
}

// Input превращает форму в тело запроса.
func (f Form) Input() UserInput {
	return UserInput{Name: f.Name, Email: f.Email}
}

// FormOf заполняет форму данными пользователя.
func FormOf(u User) Form {
	return Form{Name: u.Name, Email: u.Email}
}
