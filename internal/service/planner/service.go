package planner

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/salonkit/schedule-service/internal/domain"
)

// Service сервис интерактивного редактирования доступности
//
// Держит по одной сессии на сотрудника: отображаемую неделю, локальную копию
// её блоков и записей, активный режим и единственный ожидающий черновик.
// Ровно один черновик может ожидать подтверждения; начало нового черновика
// неявно отбрасывает предыдущий - это осознанная политика, зафиксированная
// тестами, а не случайная перезапись
type Service struct {
	salonClient SalonServiceClient
	logger      Logger

	mu       sync.Mutex
	sessions map[int64]*session
}

// State снимок состояния сессии планировщика для отдающего слоя
type State struct {
	EmployeeID    int64
	Week          domain.Week
	Loaded        bool
	Mode          Mode
	Blocks        []domain.AvailabilityBlock
	Appointments  []domain.Appointment
	FreeIntervals []domain.TimeInterval
	Draft         Draft
}

// NewService создает новый экземпляр сервиса планировщика
func NewService(salonClient SalonServiceClient, logger Logger) *Service {
	return &Service{
		salonClient: salonClient,
		logger:      logger,
		sessions:    make(map[int64]*session),
	}
}

// LoadWeek загружает неделю сотрудника из бэкенда и обновляет сессию
//
// Загрузка тегируется (сотрудник, неделя, поколение). Если к моменту
// завершения сетевых запросов отображаемая неделя успела смениться,
// устаревший ответ отбрасывается и не перезаписывает состояние; вызывающему
// при этом всё равно возвращаются запрошенные данные
func (s *Service) LoadWeek(ctx context.Context, employeeID int64, week domain.Week) (*State, error) {
	if employeeID <= 0 {
		return nil, fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	weekEnd, err := week.Start.AddDays(6)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	sess := s.sessionLocked(employeeID)
	tag := sess.beginLoad(week)
	s.mu.Unlock()

	// Сетевые запросы без удержания блокировки
	blocks, err := s.salonClient.GetAvailability(ctx, employeeID, week.Start, weekEnd)
	if err != nil {
		s.logger.Error("Planner.LoadWeek: failed to get availability for employee=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}
	appointments, err := s.salonClient.GetAppointments(ctx, employeeID, week.Start, weekEnd)
	if err != nil {
		s.logger.Error("Planner.LoadWeek: failed to get appointments for employee=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !sess.applyLoad(tag, blocks, appointments) {
		// Неделя сменилась, пока ответ был в пути: состояние не трогаем,
		// для пользователя это не ошибка
		s.logger.Info("Planner.LoadWeek: discarding stale response for employee=%d, week=%s, gen=%d",
			tag.EmployeeID, tag.Week.Start, tag.Generation)
	}

	return &State{
		EmployeeID:    employeeID,
		Week:          week,
		Loaded:        true,
		Mode:          sess.mode,
		Blocks:        blocks,
		Appointments:  appointments,
		FreeIntervals: domain.FreeIntervals(blocks, appointments),
		Draft:         sess.draft,
	}, nil
}

// SetMode переключает режим планировщика
// Смена режима отбрасывает ожидающий черновик: превью другого режима
// не может пережить переключение
func (s *Service) SetMode(employeeID int64, mode Mode) error {
	if _, err := ParseMode(string(mode)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(employeeID)
	if sess.mode != mode && sess.draft.IsPending() {
		s.logger.Info("Planner.SetMode: employee=%d leaving mode %s, discarding pending %s draft",
			employeeID, sess.mode, sess.draft.Kind)
		sess.draft = noDraft()
	}
	sess.mode = mode
	return nil
}

// PlanAdd строит черновик добавления доступности
//
// Предложенный интервал клиппируется по существующим блокам тем же правилом
// вычитания, что и доступность-минус-записи: существующие блоки играют роль
// «уже покрытого». Ноль фрагментов означает полное перекрытие - отказ;
// больше одного - запрос разбился вокруг существующей доступности
func (s *Service) PlanAdd(employeeID int64, proposed domain.TimeInterval) (Draft, error) {
	if err := proposed.Validate(); err != nil {
		// Сюда же попадает «ночной» интервал с концом раньше начала:
		// такие запросы отклоняются явно, а не интерпретируются
		return Draft{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(employeeID)
	if sess.mode != ModeAdd {
		return Draft{}, fmt.Errorf("%w: add requires mode %q, current is %q", ErrWrongMode, ModeAdd, sess.mode)
	}
	if !sess.loaded {
		return Draft{}, ErrWeekNotLoaded
	}
	if !sess.week.Contains(proposed.Date) {
		// Клиппинг работает по блокам загруженной недели; интервал другой
		// недели прошёл бы его без вычитания и продублировал существующее покрытие
		return Draft{}, fmt.Errorf("%w: date %s is outside the displayed week %s",
			ErrInvalidInput, proposed.Date, sess.week.Start)
	}

	fragments := domain.SubtractAll([]domain.TimeInterval{proposed}, domain.Intervals(sess.blocks))
	if len(fragments) == 0 {
		s.logger.Info("Planner.PlanAdd: employee=%d proposed %s %s-%s fully covered by existing availability",
			employeeID, proposed.Date, proposed.StartTime, proposed.EndTime)
		return Draft{}, ErrNoSpaceAvailable
	}

	addFragments := make([]AddFragment, len(fragments))
	for i, fragment := range fragments {
		addFragments[i] = AddFragment{
			PlaceholderID: uuid.NewString(),
			Interval:      fragment,
		}
	}

	draft := Draft{
		ID:           uuid.NewString(),
		Kind:         DraftAdd,
		AddFragments: addFragments,
	}
	s.replaceDraftLocked(sess, draft)

	s.logger.Info("Planner.PlanAdd: employee=%d draft %s with %d fragment(s)",
		employeeID, draft.ID, len(addFragments))
	return draft, nil
}

// PlanResize строит черновик изменения границ существующего блока
// Применяется только к блокам доступности: записи клиентов планировщик
// не редактирует
func (s *Service) PlanResize(employeeID, blockID int64, proposed domain.TimeInterval) (Draft, error) {
	if err := proposed.Validate(); err != nil {
		return Draft{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(employeeID)
	if sess.mode != ModeEdit {
		return Draft{}, fmt.Errorf("%w: resize requires mode %q, current is %q", ErrWrongMode, ModeEdit, sess.mode)
	}
	if !sess.loaded {
		return Draft{}, ErrWeekNotLoaded
	}
	if !sess.week.Contains(proposed.Date) {
		return Draft{}, fmt.Errorf("%w: date %s is outside the displayed week %s",
			ErrInvalidInput, proposed.Date, sess.week.Start)
	}

	block, ok := sess.findBlock(blockID)
	if !ok {
		return Draft{}, fmt.Errorf("%w: id=%d", ErrBlockNotFound, blockID)
	}

	draft := Draft{
		ID:           uuid.NewString(),
		Kind:         DraftEdit,
		EditBlockID:  blockID,
		EditOriginal: block.Interval,
		EditProposed: proposed,
	}
	s.replaceDraftLocked(sess, draft)

	s.logger.Info("Planner.PlanResize: employee=%d draft %s for block=%d", employeeID, draft.ID, blockID)
	return draft, nil
}

// PlanDelete помечает блок на удаление (превью, блок ещё не удалён)
func (s *Service) PlanDelete(employeeID, blockID int64) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(employeeID)
	if sess.mode != ModeDelete {
		return Draft{}, fmt.Errorf("%w: delete requires mode %q, current is %q", ErrWrongMode, ModeDelete, sess.mode)
	}
	if !sess.loaded {
		return Draft{}, ErrWeekNotLoaded
	}

	if _, ok := sess.findBlock(blockID); !ok {
		return Draft{}, fmt.Errorf("%w: id=%d", ErrBlockNotFound, blockID)
	}

	draft := Draft{
		ID:            uuid.NewString(),
		Kind:          DraftDelete,
		DeleteBlockID: blockID,
	}
	s.replaceDraftLocked(sess, draft)

	s.logger.Info("Planner.PlanDelete: employee=%d draft %s for block=%d", employeeID, draft.ID, blockID)
	return draft, nil
}

// Draft возвращает текущий черновик сотрудника
func (s *Service) Draft(employeeID int64) Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionLocked(employeeID).draft
}

// Cancel отбрасывает ожидающий черновик без сетевых запросов и побочных эффектов
func (s *Service) Cancel(employeeID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(employeeID)
	if sess.draft.IsPending() {
		s.logger.Info("Planner.Cancel: employee=%d discarding %s draft %s",
			employeeID, sess.draft.Kind, sess.draft.ID)
	}
	sess.draft = noDraft()
}

// Confirm подтверждает ожидающий черновик, отправляя изменение в бэкенд
//
// При неуспешном ответе локальная копия остаётся нетронутой, черновик
// сохраняется (пользователь может повторить или отменить), ошибка
// возвращается вызывающему. Черновик очищается только при подтверждённом
// успехе или явной отмене
func (s *Service) Confirm(ctx context.Context, employeeID int64) error {
	s.mu.Lock()
	sess := s.sessionLocked(employeeID)
	draft := sess.draft
	week := sess.week
	s.mu.Unlock()

	if !draft.IsPending() {
		return ErrNoDraft
	}

	switch draft.Kind {
	case DraftAdd:
		return s.confirmAdd(ctx, employeeID, week, draft)
	case DraftEdit:
		return s.confirmEdit(ctx, employeeID, draft)
	case DraftDelete:
		return s.confirmDelete(ctx, employeeID, draft)
	default:
		return fmt.Errorf("%w: unexpected draft kind %q", ErrInternal, draft.Kind)
	}
}

// confirmAdd сохраняет все фрагменты черновика одним запросом,
// затем авторитативно перечитывает неделю из бэкенда
func (s *Service) confirmAdd(ctx context.Context, employeeID int64, week domain.Week, draft Draft) error {
	intervals := make([]domain.TimeInterval, len(draft.AddFragments))
	for i, fragment := range draft.AddFragments {
		intervals[i] = fragment.Interval
	}

	if err := s.salonClient.CreateAvailability(ctx, employeeID, intervals); err != nil {
		s.logger.Error("Planner.Confirm: create availability failed for employee=%d: %v", employeeID, err)
		return fmt.Errorf("%w: failed to create availability: %v", ErrInternal, err)
	}

	s.clearDraftIfCurrent(employeeID, draft.ID)

	// Бэкенд назначил новым блокам персистентные ID; локальные плейсхолдеры
	// заменяются авторитативными данными перечитыванием недели
	if _, err := s.LoadWeek(ctx, employeeID, week); err != nil {
		s.logger.Warn("Planner.Confirm: availability created but week reload failed for employee=%d: %v",
			employeeID, err)
		s.markUnloaded(employeeID)
	}

	s.logger.Info("Planner.Confirm: employee=%d added %d block(s)", employeeID, len(intervals))
	return nil
}

// confirmEdit заменяет временные границы блока (тот же id)
func (s *Service) confirmEdit(ctx context.Context, employeeID int64, draft Draft) error {
	if err := s.salonClient.UpdateAvailability(ctx, draft.EditBlockID, employeeID, draft.EditProposed); err != nil {
		s.logger.Error("Planner.Confirm: update availability failed for block=%d: %v", draft.EditBlockID, err)
		return fmt.Errorf("%w: failed to update availability: %v", ErrInternal, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(employeeID)
	sess.replaceBlockInterval(draft.EditBlockID, draft.EditProposed)
	if sess.draft.ID == draft.ID {
		sess.draft = noDraft()
	}

	s.logger.Info("Planner.Confirm: employee=%d resized block=%d", employeeID, draft.EditBlockID)
	return nil
}

// confirmDelete удаляет блок из локальной копии только после подтверждения бэкендом
func (s *Service) confirmDelete(ctx context.Context, employeeID int64, draft Draft) error {
	if err := s.salonClient.DeleteAvailability(ctx, draft.DeleteBlockID); err != nil {
		s.logger.Error("Planner.Confirm: delete availability failed for block=%d: %v", draft.DeleteBlockID, err)
		return fmt.Errorf("%w: failed to delete availability: %v", ErrInternal, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(employeeID)
	sess.removeBlock(draft.DeleteBlockID)
	if sess.draft.ID == draft.ID {
		sess.draft = noDraft()
	}

	s.logger.Info("Planner.Confirm: employee=%d deleted block=%d", employeeID, draft.DeleteBlockID)
	return nil
}

// Snapshot возвращает снимок состояния сессии сотрудника
func (s *Service) Snapshot(employeeID int64) *State {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(employeeID)
	return &State{
		EmployeeID:    employeeID,
		Week:          sess.week,
		Loaded:        sess.loaded,
		Mode:          sess.mode,
		Blocks:        append([]domain.AvailabilityBlock(nil), sess.blocks...),
		Appointments:  append([]domain.Appointment(nil), sess.appointments...),
		FreeIntervals: domain.FreeIntervals(sess.blocks, sess.appointments),
		Draft:         sess.draft,
	}
}

// sessionLocked возвращает сессию сотрудника, создавая её при необходимости
// Вызывается только под s.mu
func (s *Service) sessionLocked(employeeID int64) *session {
	sess, ok := s.sessions[employeeID]
	if !ok {
		sess = newSession(employeeID)
		s.sessions[employeeID] = sess
	}
	return sess
}

// replaceDraftLocked устанавливает новый черновик, логируя вытеснение предыдущего
func (s *Service) replaceDraftLocked(sess *session, draft Draft) {
	if sess.draft.IsPending() {
		s.logger.Info("Planner: employee=%d replacing pending %s draft %s with %s draft %s",
			sess.employeeID, sess.draft.Kind, sess.draft.ID, draft.Kind, draft.ID)
	}
	sess.draft = draft
}

// clearDraftIfCurrent очищает черновик, если он не был заменён или отменён
func (s *Service) clearDraftIfCurrent(employeeID int64, draftID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(employeeID)
	if sess.draft.ID == draftID {
		sess.draft = noDraft()
	}
}

// markUnloaded помечает неделю как требующую перезагрузки
func (s *Service) markUnloaded(employeeID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionLocked(employeeID).loaded = false
}
