package planner

import (
	"github.com/salonkit/schedule-service/internal/domain"
)

// session состояние планировщика одного сотрудника: отображаемая неделя,
// локальная копия её данных, активный режим и текущий черновик
// Все персистентные сущности принадлежат бэкенду; здесь хранятся только
// read-only копии и ожидающие подтверждения изменения
type session struct {
	employeeID int64

	week       domain.Week
	generation uint64 // растёт при каждой смене отображаемой недели
	loaded     bool

	blocks       []domain.AvailabilityBlock
	appointments []domain.Appointment

	mode  Mode
	draft Draft
}

// LoadTag идентифицирует запущенную загрузку недели
// Ответ применяется к состоянию, только если тег всё ещё актуален:
// устаревший ответ не должен перезаписать данные текущей недели
type LoadTag struct {
	EmployeeID int64
	Week       domain.Week
	Generation uint64
}

func newSession(employeeID int64) *session {
	return &session{
		employeeID: employeeID,
		mode:       ModeView,
		draft:      noDraft(),
	}
}

// beginLoad переключает сессию на неделю и возвращает тег загрузки
// Смена недели сбрасывает черновик: превью относится к конкретной неделе
func (s *session) beginLoad(week domain.Week) LoadTag {
	if s.week != week {
		s.draft = noDraft()
	}
	s.week = week
	s.generation++
	return LoadTag{
		EmployeeID: s.employeeID,
		Week:       week,
		Generation: s.generation,
	}
}

// matches проверяет, что тег соответствует текущему состоянию сессии
func (s *session) matches(tag LoadTag) bool {
	return s.employeeID == tag.EmployeeID &&
		s.week == tag.Week &&
		s.generation == tag.Generation
}

// applyLoad применяет результат загрузки, если тег актуален
// Возвращает false для устаревших ответов (state не меняется)
func (s *session) applyLoad(tag LoadTag, blocks []domain.AvailabilityBlock, appointments []domain.Appointment) bool {
	if !s.matches(tag) {
		return false
	}
	s.blocks = blocks
	s.appointments = appointments
	s.loaded = true
	return true
}

// findBlock ищет блок по ID в загруженной неделе
func (s *session) findBlock(blockID int64) (domain.AvailabilityBlock, bool) {
	for _, b := range s.blocks {
		if b.ID == blockID {
			return b, true
		}
	}
	return domain.AvailabilityBlock{}, false
}

// replaceBlockInterval заменяет временные границы блока в локальной копии
func (s *session) replaceBlockInterval(blockID int64, interval domain.TimeInterval) {
	for i, b := range s.blocks {
		if b.ID == blockID {
			s.blocks[i].Interval = interval
			return
		}
	}
}

// removeBlock удаляет блок из локальной копии
func (s *session) removeBlock(blockID int64) {
	blocks := make([]domain.AvailabilityBlock, 0, len(s.blocks))
	for _, b := range s.blocks {
		if b.ID != blockID {
			blocks = append(blocks, b)
		}
	}
	s.blocks = blocks
}
