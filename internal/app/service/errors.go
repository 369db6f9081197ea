package service

import "errors"

// Типизированные ошибки сервисного слоя.
// Ошибки хранилища, не перечисленные здесь, пробрасываются вызывающему как есть.
var (
	ErrOrderNotFound     = errors.New("заявка не найдена")
	ErrUserNotFound      = errors.New("пользователь не найден")
	ErrUsernameTaken     = errors.New("пользователь с таким логином уже существует")
	ErrEmailTaken        = errors.New("пользователь с таким email уже существует")
	ErrInvalidTransition = errors.New("недопустимый переход статуса заявки")
	ErrUserDisabled      = errors.New("учётная запись отключена")
	ErrBadCredentials    = errors.New("неверный логин или пароль")
)
