package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonkit/schedule-service/internal/domain"
	"github.com/salonkit/schedule-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeSalonClient управляемый клиент бэкенда для тестов планировщика
type fakeSalonClient struct {
	blocks       []domain.AvailabilityBlock
	appointments []domain.Appointment

	getAvailabilityErr    error
	createAvailabilityErr error
	updateAvailabilityErr error
	deleteAvailabilityErr error

	createdIntervals []domain.TimeInterval
	updatedBlockID   int64
	deletedBlockID   int64

	// onGetAvailability вызывается перед возвратом данных; позволяет
	// симулировать смену недели, пока ответ "в пути"
	onGetAvailability func()
}

func (f *fakeSalonClient) GetAvailability(ctx context.Context, employeeID int64, startDay, endDay types.DateString) ([]domain.AvailabilityBlock, error) {
	if f.onGetAvailability != nil {
		f.onGetAvailability()
	}
	if f.getAvailabilityErr != nil {
		return nil, f.getAvailabilityErr
	}
	return f.blocks, nil
}

func (f *fakeSalonClient) GetAppointments(ctx context.Context, employeeID int64, startDay, endDay types.DateString) ([]domain.Appointment, error) {
	return f.appointments, nil
}

func (f *fakeSalonClient) CreateAvailability(ctx context.Context, employeeID int64, intervals []domain.TimeInterval) error {
	if f.createAvailabilityErr != nil {
		return f.createAvailabilityErr
	}
	f.createdIntervals = append(f.createdIntervals, intervals...)
	return nil
}

func (f *fakeSalonClient) UpdateAvailability(ctx context.Context, blockID, employeeID int64, interval domain.TimeInterval) error {
	if f.updateAvailabilityErr != nil {
		return f.updateAvailabilityErr
	}
	f.updatedBlockID = blockID
	return nil
}

func (f *fakeSalonClient) DeleteAvailability(ctx context.Context, blockID int64) error {
	if f.deleteAvailabilityErr != nil {
		return f.deleteAvailabilityErr
	}
	f.deletedBlockID = blockID
	return nil
}

func ival(date, start, end string) domain.TimeInterval {
	return domain.TimeInterval{
		Date:      types.DateString(date),
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func mustWeek(t *testing.T, date types.DateString) domain.Week {
	t.Helper()
	week, err := domain.WeekOf(date)
	require.NoError(t, err)
	return week
}

func loadedService(t *testing.T, client *fakeSalonClient) (*Service, domain.Week) {
	t.Helper()
	svc := NewService(client, nopLogger{})
	week := mustWeek(t, "2026-09-07")
	_, err := svc.LoadWeek(context.Background(), 7, week)
	require.NoError(t, err)
	return svc, week
}

func TestLoadWeek(t *testing.T) {
	client := &fakeSalonClient{
		blocks: []domain.AvailabilityBlock{
			{ID: 1, EmployeeID: 7, Interval: ival("2026-09-07", "09:00:00", "13:00:00")},
		},
		appointments: []domain.Appointment{
			{ID: 100, EmployeeID: 7, Interval: ival("2026-09-07", "10:00:00", "10:30:00")},
		},
	}
	svc := NewService(client, nopLogger{})

	state, err := svc.LoadWeek(context.Background(), 7, mustWeek(t, "2026-09-09"))
	require.NoError(t, err)

	assert.True(t, state.Loaded)
	assert.Equal(t, types.DateString("2026-09-07"), state.Week.Start)
	assert.Len(t, state.Blocks, 1)
	assert.Len(t, state.Appointments, 1)
	assert.Equal(t, []domain.TimeInterval{
		ival("2026-09-07", "09:00:00", "10:00:00"),
		ival("2026-09-07", "10:30:00", "13:00:00"),
	}, state.FreeIntervals)
}

func TestLoadWeekInvalidEmployee(t *testing.T) {
	svc := NewService(&fakeSalonClient{}, nopLogger{})

	_, err := svc.LoadWeek(context.Background(), 0, mustWeek(t, "2026-09-07"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoadWeekBackendFailure(t *testing.T) {
	client := &fakeSalonClient{getAvailabilityErr: errors.New("connection refused")}
	svc := NewService(client, nopLogger{})

	_, err := svc.LoadWeek(context.Background(), 7, mustWeek(t, "2026-09-07"))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestLoadWeekStaleResponseDiscarded(t *testing.T) {
	staleWeek := mustWeek(t, "2026-09-07")
	currentWeek := mustWeek(t, "2026-09-14")

	client := &fakeSalonClient{
		blocks: []domain.AvailabilityBlock{
			{ID: 1, EmployeeID: 7, Interval: ival("2026-09-07", "09:00:00", "13:00:00")},
		},
	}
	svc := NewService(client, nopLogger{})

	// Пока первый ответ "в пути", пользователь переключается на другую неделю
	firstCall := true
	client.onGetAvailability = func() {
		if firstCall {
			firstCall = false
			svc.mu.Lock()
			svc.sessionLocked(7).beginLoad(currentWeek)
			svc.mu.Unlock()
		}
	}

	state, err := svc.LoadWeek(context.Background(), 7, staleWeek)
	require.NoError(t, err)
	// Вызывающему данные возвращаются в любом случае
	assert.Len(t, state.Blocks, 1)

	// Но сессия осталась на текущей неделе и не помечена загруженной
	snapshot := svc.Snapshot(7)
	assert.Equal(t, currentWeek, snapshot.Week)
	assert.False(t, snapshot.Loaded)
	assert.Empty(t, snapshot.Blocks)
}

func TestSetMode(t *testing.T) {
	svc := NewService(&fakeSalonClient{}, nopLogger{})

	require.NoError(t, svc.SetMode(7, ModeAdd))
	assert.Equal(t, ModeAdd, svc.Snapshot(7).Mode)

	err := svc.SetMode(7, Mode("paint"))
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestSetModeDiscardsPendingDraft(t *testing.T) {
	client := &fakeSalonClient{}
	svc, _ := loadedService(t, client)

	require.NoError(t, svc.SetMode(7, ModeAdd))
	_, err := svc.PlanAdd(7, ival("2026-09-08", "09:00:00", "12:00:00"))
	require.NoError(t, err)
	require.True(t, svc.Draft(7).IsPending())

	require.NoError(t, svc.SetMode(7, ModeDelete))
	assert.False(t, svc.Draft(7).IsPending())

	// Повторная установка того же режима черновик не трогает
	require.NoError(t, svc.SetMode(7, ModeAdd))
	_, err = svc.PlanAdd(7, ival("2026-09-08", "09:00:00", "12:00:00"))
	require.NoError(t, err)
	require.NoError(t, svc.SetMode(7, ModeAdd))
	assert.True(t, svc.Draft(7).IsPending())
}

func TestPlanAddRequiresAddMode(t *testing.T) {
	client := &fakeSalonClient{}
	svc, _ := loadedService(t, client)

	_, err := svc.PlanAdd(7, ival("2026-09-08", "09:00:00", "12:00:00"))
	assert.ErrorIs(t, err, ErrWrongMode)
}

func TestPlanAddRequiresLoadedWeek(t *testing.T) {
	svc := NewService(&fakeSalonClient{}, nopLogger{})
	require.NoError(t, svc.SetMode(7, ModeAdd))

	_, err := svc.PlanAdd(7, ival("2026-09-08", "09:00:00", "12:00:00"))
	assert.ErrorIs(t, err, ErrWeekNotLoaded)
}

func TestPlanAddRejectsInvalidInterval(t *testing.T) {
	client := &fakeSalonClient{}
	svc, _ := loadedService(t, client)
	require.NoError(t, svc.SetMode(7, ModeAdd))

	// Конец раньше начала: ночной интервал отклоняется, а не интерпретируется
	_, err := svc.PlanAdd(7, ival("2026-09-08", "22:00:00", "02:00:00"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPlanAddClipsAroundExistingBlocks(t *testing.T) {
	client := &fakeSalonClient{
		blocks: []domain.AvailabilityBlock{
			{ID: 1, EmployeeID: 7, Interval: ival("2026-09-07", "09:00:00", "10:00:00")},
		},
	}
	svc, _ := loadedService(t, client)
	require.NoError(t, svc.SetMode(7, ModeAdd))

	draft, err := svc.PlanAdd(7, ival("2026-09-07", "08:00:00", "11:00:00"))
	require.NoError(t, err)

	assert.Equal(t, DraftAdd, draft.Kind)
	require.Len(t, draft.AddFragments, 2)
	assert.Equal(t, ival("2026-09-07", "08:00:00", "09:00:00"), draft.AddFragments[0].Interval)
	assert.Equal(t, ival("2026-09-07", "10:00:00", "11:00:00"), draft.AddFragments[1].Interval)
	assert.NotEmpty(t, draft.AddFragments[0].PlaceholderID)
	assert.NotEqual(t, draft.AddFragments[0].PlaceholderID, draft.AddFragments[1].PlaceholderID)
}

func TestPlanAddFullyCoveredRejected(t *testing.T) {
	client := &fakeSalonClient{
		blocks: []domain.AvailabilityBlock{
			{ID: 1, EmployeeID: 7, Interval: ival("2026-09-07", "08:00:00", "18:00:00")},
		},
	}
	svc, _ := loadedService(t, client)
	require.NoError(t, svc.SetMode(7, ModeAdd))

	_, err := svc.PlanAdd(7, ival("2026-09-07", "09:00:00", "12:00:00"))
	assert.ErrorIs(t, err, ErrNoSpaceAvailable)
	assert.False(t, svc.Draft(7).IsPending())
}

func TestPlanAddRejectsDateOutsideLoadedWeek(t *testing.T) {
	// Слот 09:00-10:00 на следующей неделе уже существует в бэкенде,
	// но в загруженной неделе его нет: без проверки даты клиппинг
	// пропустил бы дубликат целиком
	client := &fakeSalonClient{
		blocks: []domain.AvailabilityBlock{
			{ID: 2, EmployeeID: 7, Interval: ival("2026-09-14", "09:00:00", "10:00:00")},
		},
	}
	svc := NewService(client, nopLogger{})
	_, err := svc.LoadWeek(context.Background(), 7, mustWeek(t, "2026-09-07"))
	require.NoError(t, err)
	require.NoError(t, svc.SetMode(7, ModeAdd))

	_, err = svc.PlanAdd(7, ival("2026-09-14", "09:00:00", "10:00:00"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, svc.Draft(7).IsPending())

	// День до начала недели отклоняется так же, как день после её конца
	_, err = svc.PlanAdd(7, ival("2026-09-06", "09:00:00", "10:00:00"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewDraftReplacesPendingOne(t *testing.T) {
	client := &fakeSalonClient{}
	svc, _ := loadedService(t, client)
	require.NoError(t, svc.SetMode(7, ModeAdd))

	first, err := svc.PlanAdd(7, ival("2026-09-08", "09:00:00", "12:00:00"))
	require.NoError(t, err)

	second, err := svc.PlanAdd(7, ival("2026-09-09", "14:00:00", "18:00:00"))
	require.NoError(t, err)

	current := svc.Draft(7)
	assert.Equal(t, second.ID, current.ID)
	assert.NotEqual(t, first.ID, current.ID)
}

func TestPlanResize(t *testing.T) {
	client := &fakeSalonClient{
		blocks: []domain.AvailabilityBlock{
			{ID: 1, EmployeeID: 7, Interval: ival("2026-09-07", "09:00:00", "13:00:00")},
		},
	}
	svc, _ := loadedService(t, client)

	_, err := svc.PlanResize(7, 1, ival("2026-09-07", "09:00:00", "14:00:00"))
	assert.ErrorIs(t, err, ErrWrongMode)

	require.NoError(t, svc.SetMode(7, ModeEdit))

	_, err = svc.PlanResize(7, 99, ival("2026-09-07", "09:00:00", "14:00:00"))
	assert.ErrorIs(t, err, ErrBlockNotFound)

	draft, err := svc.PlanResize(7, 1, ival("2026-09-07", "09:00:00", "14:00:00"))
	require.NoError(t, err)
	assert.Equal(t, DraftEdit, draft.Kind)
	assert.Equal(t, int64(1), draft.EditBlockID)
	assert.Equal(t, ival("2026-09-07", "09:00:00", "13:00:00"), draft.EditOriginal)
	assert.Equal(t, ival("2026-09-07", "09:00:00", "14:00:00"), draft.EditProposed)
}

func TestPlanResizeRejectsDateOutsideLoadedWeek(t *testing.T) {
	client := &fakeSalonClient{
		blocks: []domain.AvailabilityBlock{
			{ID: 1, EmployeeID: 7, Interval: ival("2026-09-07", "09:00:00", "13:00:00")},
		},
	}
	svc, _ := loadedService(t, client)
	require.NoError(t, svc.SetMode(7, ModeEdit))

	_, err := svc.PlanResize(7, 1, ival("2026-09-14", "09:00:00", "13:00:00"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, svc.Draft(7).IsPending())
}

func TestPlanDelete(t *testing.T) {
	client := &fakeSalonClient{
		blocks: []domain.AvailabilityBlock{
			{ID: 1, EmployeeID: 7, Interval: ival("2026-09-07", "09:00:00", "13:00:00")},
		},
	}
	svc, _ := loadedService(t, client)

	_, err := svc.PlanDelete(7, 1)
	assert.ErrorIs(t, err, ErrWrongMode)

	require.NoError(t, svc.SetMode(7, ModeDelete))

	_, err = svc.PlanDelete(7, 99)
	assert.ErrorIs(t, err, ErrBlockNotFound)

	draft, err := svc.PlanDelete(7, 1)
	require.NoError(t, err)
	assert.Equal(t, DraftDelete, draft.Kind)
	assert.Equal(t, int64(1), draft.DeleteBlockID)

	// Превью: блок ещё не удалён ни локально, ни в бэкенде
	assert.Len(t, svc.Snapshot(7).Blocks, 1)
	assert.Zero(t, client.deletedBlockID)
}

func TestCancel(t *testing.T) {
	client := &fakeSalonClient{}
	svc, _ := loadedService(t, client)
	require.NoError(t, svc.SetMode(7, ModeAdd))

	_, err := svc.PlanAdd(7, ival("2026-09-08", "09:00:00", "12:00:00"))
	require.NoError(t, err)
	require.True(t, svc.Draft(7).IsPending())

	svc.Cancel(7)
	assert.False(t, svc.Draft(7).IsPending())
	assert.Empty(t, client.createdIntervals)
}

func TestConfirmWithoutDraft(t *testing.T) {
	svc := NewService(&fakeSalonClient{}, nopLogger{})

	err := svc.Confirm(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestConfirmAdd(t *testing.T) {
	client := &fakeSalonClient{
		blocks: []domain.AvailabilityBlock{
			{ID: 1, EmployeeID: 7, Interval: ival("2026-09-07", "09:00:00", "10:00:00")},
		},
	}
	svc, _ := loadedService(t, client)
	require.NoError(t, svc.SetMode(7, ModeAdd))

	_, err := svc.PlanAdd(7, ival("2026-09-07", "08:00:00", "11:00:00"))
	require.NoError(t, err)

	require.NoError(t, svc.Confirm(context.Background(), 7))

	// Оба фрагмента ушли в бэкенд одним батчем
	assert.Equal(t, []domain.TimeInterval{
		ival("2026-09-07", "08:00:00", "09:00:00"),
		ival("2026-09-07", "10:00:00", "11:00:00"),
	}, client.createdIntervals)
	assert.False(t, svc.Draft(7).IsPending())
	assert.True(t, svc.Snapshot(7).Loaded)
}

func TestConfirmAddBackendFailureKeepsDraft(t *testing.T) {
	client := &fakeSalonClient{
		createAvailabilityErr: errors.New("insert failed"),
	}
	svc, _ := loadedService(t, client)
	require.NoError(t, svc.SetMode(7, ModeAdd))

	draft, err := svc.PlanAdd(7, ival("2026-09-08", "09:00:00", "12:00:00"))
	require.NoError(t, err)

	err = svc.Confirm(context.Background(), 7)
	assert.ErrorIs(t, err, ErrInternal)

	// Черновик сохранён: пользователь может повторить или отменить
	current := svc.Draft(7)
	assert.True(t, current.IsPending())
	assert.Equal(t, draft.ID, current.ID)
}

func TestConfirmEdit(t *testing.T) {
	client := &fakeSalonClient{
		blocks: []domain.AvailabilityBlock{
			{ID: 1, EmployeeID: 7, Interval: ival("2026-09-07", "09:00:00", "13:00:00")},
		},
	}
	svc, _ := loadedService(t, client)
	require.NoError(t, svc.SetMode(7, ModeEdit))

	_, err := svc.PlanResize(7, 1, ival("2026-09-07", "10:00:00", "14:00:00"))
	require.NoError(t, err)

	require.NoError(t, svc.Confirm(context.Background(), 7))

	assert.Equal(t, int64(1), client.updatedBlockID)
	assert.False(t, svc.Draft(7).IsPending())

	snapshot := svc.Snapshot(7)
	require.Len(t, snapshot.Blocks, 1)
	// ID блока сохранился, изменились только границы
	assert.Equal(t, int64(1), snapshot.Blocks[0].ID)
	assert.Equal(t, ival("2026-09-07", "10:00:00", "14:00:00"), snapshot.Blocks[0].Interval)
}

func TestConfirmEditBackendFailureKeepsLocalCopy(t *testing.T) {
	client := &fakeSalonClient{
		blocks: []domain.AvailabilityBlock{
			{ID: 1, EmployeeID: 7, Interval: ival("2026-09-07", "09:00:00", "13:00:00")},
		},
		updateAvailabilityErr: errors.New("update failed"),
	}
	svc, _ := loadedService(t, client)
	require.NoError(t, svc.SetMode(7, ModeEdit))

	_, err := svc.PlanResize(7, 1, ival("2026-09-07", "10:00:00", "14:00:00"))
	require.NoError(t, err)

	err = svc.Confirm(context.Background(), 7)
	assert.ErrorIs(t, err, ErrInternal)

	// Локальная копия не тронута, черновик на месте
	snapshot := svc.Snapshot(7)
	assert.Equal(t, ival("2026-09-07", "09:00:00", "13:00:00"), snapshot.Blocks[0].Interval)
	assert.True(t, svc.Draft(7).IsPending())
}

func TestConfirmDelete(t *testing.T) {
	client := &fakeSalonClient{
		blocks: []domain.AvailabilityBlock{
			{ID: 1, EmployeeID: 7, Interval: ival("2026-09-07", "09:00:00", "13:00:00")},
			{ID: 2, EmployeeID: 7, Interval: ival("2026-09-08", "09:00:00", "13:00:00")},
		},
	}
	svc, _ := loadedService(t, client)
	require.NoError(t, svc.SetMode(7, ModeDelete))

	_, err := svc.PlanDelete(7, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Confirm(context.Background(), 7))

	assert.Equal(t, int64(1), client.deletedBlockID)
	assert.False(t, svc.Draft(7).IsPending())

	snapshot := svc.Snapshot(7)
	require.Len(t, snapshot.Blocks, 1)
	assert.Equal(t, int64(2), snapshot.Blocks[0].ID)
}

func TestConfirmDeleteBackendFailureKeepsBlock(t *testing.T) {
	client := &fakeSalonClient{
		blocks: []domain.AvailabilityBlock{
			{ID: 1, EmployeeID: 7, Interval: ival("2026-09-07", "09:00:00", "13:00:00")},
		},
		deleteAvailabilityErr: errors.New("delete failed"),
	}
	svc, _ := loadedService(t, client)
	require.NoError(t, svc.SetMode(7, ModeDelete))

	_, err := svc.PlanDelete(7, 1)
	require.NoError(t, err)

	err = svc.Confirm(context.Background(), 7)
	assert.ErrorIs(t, err, ErrInternal)

	assert.Len(t, svc.Snapshot(7).Blocks, 1)
	assert.True(t, svc.Draft(7).IsPending())
}

func TestWeekChangeDiscardsDraft(t *testing.T) {
	client := &fakeSalonClient{}
	svc, _ := loadedService(t, client)
	require.NoError(t, svc.SetMode(7, ModeAdd))

	_, err := svc.PlanAdd(7, ival("2026-09-08", "09:00:00", "12:00:00"))
	require.NoError(t, err)
	require.True(t, svc.Draft(7).IsPending())

	_, err = svc.LoadWeek(context.Background(), 7, mustWeek(t, "2026-09-14"))
	require.NoError(t, err)

	assert.False(t, svc.Draft(7).IsPending())
}

func TestSessionsAreIndependent(t *testing.T) {
	client := &fakeSalonClient{}
	svc := NewService(client, nopLogger{})
	week := mustWeek(t, "2026-09-07")

	_, err := svc.LoadWeek(context.Background(), 7, week)
	require.NoError(t, err)
	_, err = svc.LoadWeek(context.Background(), 8, week)
	require.NoError(t, err)

	require.NoError(t, svc.SetMode(7, ModeAdd))
	_, err = svc.PlanAdd(7, ival("2026-09-08", "09:00:00", "12:00:00"))
	require.NoError(t, err)

	assert.True(t, svc.Draft(7).IsPending())
	assert.False(t, svc.Draft(8).IsPending())
	assert.Equal(t, ModeView, svc.Snapshot(8).Mode)
}
