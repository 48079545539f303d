package planner

import (
	"fmt"

	"github.com/salonkit/schedule-service/internal/domain"
)

// Mode режим планировщика доступности
// Режимы взаимоисключающие и выбираются пользователем явно
type Mode string

const (
	ModeView   Mode = "view"
	ModeAdd    Mode = "add"
	ModeEdit   Mode = "edit"
	ModeDelete Mode = "delete"
)

// ParseMode парсит строковое представление режима
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeView, ModeAdd, ModeEdit, ModeDelete:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// DraftKind вид незавершённого изменения
type DraftKind string

const (
	DraftNone   DraftKind = "none"
	DraftAdd    DraftKind = "add"
	DraftEdit   DraftKind = "edit"
	DraftDelete DraftKind = "delete"
)

// AddFragment фрагмент добавляемого интервала после клиппинга
// PlaceholderID - временный клиентский идентификатор превью;
// персистентные ID назначает только бэкенд
type AddFragment struct {
	PlaceholderID string
	Interval      domain.TimeInterval
}

// Draft незавершённое изменение доступности (превью до подтверждения)
// Тегированный вариант: ровно одно из полей групп add/edit/delete заполнено,
// в зависимости от Kind. Хранится в одном месте - никаких независимых
// опциональных полей, которые могут оказаться заполнены одновременно
type Draft struct {
	ID   string // временный идентификатор черновика
	Kind DraftKind

	// Kind == DraftAdd
	AddFragments []AddFragment

	// Kind == DraftEdit
	EditBlockID  int64
	EditOriginal domain.TimeInterval
	EditProposed domain.TimeInterval

	// Kind == DraftDelete
	DeleteBlockID int64
}

// IsPending возвращает true, если черновик ожидает подтверждения
func (d Draft) IsPending() bool {
	return d.Kind != DraftNone && d.Kind != ""
}

// noDraft пустое значение черновика
func noDraft() Draft {
	return Draft{Kind: DraftNone}
}
