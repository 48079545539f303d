package planner

import (
	"github.com/salonkit/schedule-service/internal/domain"
	plannerService "github.com/salonkit/schedule-service/internal/service/planner"
	"github.com/salonkit/schedule-service/pkg/types"
)

// SetModeRequest HTTP request модель переключения режима
type SetModeRequest struct {
	Mode string `json:"mode"` // view | add | edit | delete
}

// IntervalPayload интервал в теле запроса
type IntervalPayload struct {
	Date      string `json:"date"`      // YYYY-MM-DD
	StartTime string `json:"startTime"` // HH:MM:SS
	EndTime   string `json:"endTime"`   // HH:MM:SS
}

// PlanAddRequest HTTP request модель черновика добавления
type PlanAddRequest struct {
	Interval IntervalPayload `json:"interval"`
}

// PlanResizeRequest HTTP request модель черновика изменения границ
type PlanResizeRequest struct {
	BlockID  int64           `json:"blockId"`
	Interval IntervalPayload `json:"interval"`
}

// PlanDeleteRequest HTTP request модель черновика удаления
type PlanDeleteRequest struct {
	BlockID int64 `json:"blockId"`
}

// Interval интервал в HTTP response
type Interval struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AddFragment фрагмент черновика добавления
type AddFragment struct {
	PlaceholderID string   `json:"placeholderId"`
	Interval      Interval `json:"interval"`
}

// DraftResponse HTTP модель черновика
type DraftResponse struct {
	ID            string        `json:"id,omitempty"`
	Kind          string        `json:"kind"`
	AddFragments  []AddFragment `json:"addFragments,omitempty"`
	EditBlockID   int64         `json:"editBlockId,omitempty"`
	EditOriginal  *Interval     `json:"editOriginal,omitempty"`
	EditProposed  *Interval     `json:"editProposed,omitempty"`
	DeleteBlockID int64         `json:"deleteBlockId,omitempty"`
}

// Block блок доступности в HTTP response
type Block struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title,omitempty"`
	Interval Interval `json:"interval"`
}

// Appointment запись клиента в HTTP response
type Appointment struct {
	ID          int64    `json:"id"`
	ServiceID   int64    `json:"serviceId"`
	ServiceName string   `json:"serviceName,omitempty"`
	Interval    Interval `json:"interval"`
}

// StateResponse снимок состояния планировщика
type StateResponse struct {
	EmployeeID    int64         `json:"employeeId"`
	WeekStart     string        `json:"weekStart"`
	WeekEnd       string        `json:"weekEnd"`
	Loaded        bool          `json:"loaded"`
	Mode          string        `json:"mode"`
	Blocks        []Block       `json:"blocks"`
	Appointments  []Appointment `json:"appointments"`
	FreeIntervals []Interval    `json:"freeIntervals"`
	Draft         DraftResponse `json:"draft"`
}

// ToInterval создает доменный интервал из payload
func (p *IntervalPayload) ToInterval() (domain.TimeInterval, error) {
	date, err := types.NewDateStringFromString(p.Date)
	if err != nil {
		return domain.TimeInterval{}, err
	}
	startTime, err := types.NewTimeStringFromString(p.StartTime)
	if err != nil {
		return domain.TimeInterval{}, err
	}
	endTime, err := types.NewTimeStringFromString(p.EndTime)
	if err != nil {
		return domain.TimeInterval{}, err
	}

	return domain.TimeInterval{
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

// FromInterval конвертирует доменный интервал в HTTP модель
func FromInterval(i domain.TimeInterval) Interval {
	return Interval{
		Date:      i.Date.String(),
		StartTime: i.StartTime.String(),
		EndTime:   i.EndTime.String(),
	}
}

// FromDraft конвертирует черновик в HTTP модель
func FromDraft(d plannerService.Draft) DraftResponse {
	resp := DraftResponse{
		ID:   d.ID,
		Kind: string(d.Kind),
	}
	if resp.Kind == "" {
		resp.Kind = string(plannerService.DraftNone)
	}

	switch d.Kind {
	case plannerService.DraftAdd:
		resp.AddFragments = make([]AddFragment, len(d.AddFragments))
		for i, fragment := range d.AddFragments {
			resp.AddFragments[i] = AddFragment{
				PlaceholderID: fragment.PlaceholderID,
				Interval:      FromInterval(fragment.Interval),
			}
		}
	case plannerService.DraftEdit:
		original := FromInterval(d.EditOriginal)
		proposed := FromInterval(d.EditProposed)
		resp.EditBlockID = d.EditBlockID
		resp.EditOriginal = &original
		resp.EditProposed = &proposed
	case plannerService.DraftDelete:
		resp.DeleteBlockID = d.DeleteBlockID
	}

	return resp
}

// FromState конвертирует снимок состояния в HTTP response
func FromState(state *plannerService.State) *StateResponse {
	blocks := make([]Block, len(state.Blocks))
	for i, block := range state.Blocks {
		blocks[i] = Block{
			ID:       block.ID,
			Title:    block.Title,
			Interval: FromInterval(block.Interval),
		}
	}

	appointments := make([]Appointment, len(state.Appointments))
	for i, appointment := range state.Appointments {
		appointments[i] = Appointment{
			ID:          appointment.ID,
			ServiceID:   appointment.ServiceID,
			ServiceName: appointment.ServiceName,
			Interval:    FromInterval(appointment.Interval),
		}
	}

	freeIntervals := make([]Interval, len(state.FreeIntervals))
	for i, interval := range state.FreeIntervals {
		freeIntervals[i] = FromInterval(interval)
	}

	weekEnd, _ := state.Week.End()

	return &StateResponse{
		EmployeeID:    state.EmployeeID,
		WeekStart:     state.Week.Start.String(),
		WeekEnd:       weekEnd.String(),
		Loaded:        state.Loaded,
		Mode:          string(state.Mode),
		Blocks:        blocks,
		Appointments:  appointments,
		FreeIntervals: freeIntervals,
		Draft:         FromDraft(state.Draft),
	}
}
