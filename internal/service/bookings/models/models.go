package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// BookingResponse полное представление бронирования (одна группа слотов)
type BookingResponse struct {
	ID            int64           `json:"id"`
	GroupID       string          `json:"group_id"`
	UserID        string          `json:"user_id"`
	CapsterID     int64           `json:"capster_id"`
	BranchID      int64           `json:"branch_id"`
	ServiceIDs    []int64         `json:"service_ids"`
	Schedule      time.Time       `json:"schedule"`
	Date          string          `json:"date"` // "2025-03-01"
	Time          string          `json:"time"` // "2:00 PM"
	Status        string          `json:"status"`
	BookingType   string          `json:"booking_type"`
	TotalSlots    int             `json:"total_slots"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	TotalDuration int             `json:"total_duration"`

	Services []ServiceResponse `json:"services"`
	Barber   *BarberResponse   `json:"barber,omitempty"`
	Summary  SummaryResponse   `json:"summary"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ServiceResponse услуга в составе бронирования
type ServiceResponse struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Duration int             `json:"duration"`
}

// BarberResponse краткая информация о мастере
type BarberResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image,omitempty"`
}

// SummaryResponse итоги бронирования.
// StartTime, EndTime и Slots заполняются только для многослотовых бронирований.
type SummaryResponse struct {
	TotalServices int             `json:"total_services"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	TotalDuration int             `json:"total_duration"`
	StartTime     string          `json:"start_time,omitempty"`
	EndTime       string          `json:"end_time,omitempty"`
	Slots         []SlotResponse  `json:"slots,omitempty"`
}

// SlotResponse один слот многослотового бронирования
type SlotResponse struct {
	ID       int64     `json:"id"`
	Sequence int       `json:"sequence"`
	Schedule time.Time `json:"schedule"`
	Time     string    `json:"time"`
}

// CancelResponse ответ на отмену бронирования
type CancelResponse struct {
	Message        string    `json:"message"`
	BookingID      int64     `json:"booking_id"`
	GroupID        string    `json:"group_id"`
	CancelledSlots int64     `json:"cancelled_slots"`
	CancelledAt    time.Time `json:"cancelled_at"`
}

// FromDomainGroup собирает представление группы строк одного бронирования.
// Услуги берутся из services по ID первой строки; отсутствующие пропускаются.
func FromDomainGroup(rows []*domain.Booking, services map[int64]*domain.Service, capster *domain.CapsterSummary, loc *time.Location) *BookingResponse {
	rows = visibleRows(rows)
	if len(rows) == 0 {
		return nil
	}
	first := rows[0]
	last := rows[len(rows)-1]

	if capster == nil {
		capster = first.Capster
	}

	schedule := first.Schedule.In(loc)
	resp := &BookingResponse{
		ID:            first.ID,
		GroupID:       first.GroupID.String(),
		UserID:        first.UserID.String(),
		CapsterID:     first.CapsterID,
		BranchID:      first.BranchID,
		ServiceIDs:    first.ServiceIDs,
		Schedule:      schedule,
		Date:          schedule.Format(domain.DateFormat),
		Time:          schedule.Format(domain.DisplayTimeFormat),
		Status:        string(first.Status),
		BookingType:   string(domain.BookingTypeFor(len(rows))),
		TotalSlots:    len(rows),
		TotalPrice:    first.TotalPrice,
		TotalDuration: first.TotalDuration,
		Services:      make([]ServiceResponse, 0, len(first.ServiceIDs)),
		CancelledAt:   first.CancelledAt,
		CreatedAt:     first.CreatedAt,
		UpdatedAt:     last.UpdatedAt,
	}

	for _, id := range first.ServiceIDs {
		if s, ok := services[id]; ok {
			resp.Services = append(resp.Services, ServiceResponse{
				ID:       s.ID,
				Name:     s.Name,
				Price:    s.Price,
				Duration: s.Duration,
			})
		}
	}

	if capster != nil {
		resp.Barber = &BarberResponse{ID: capster.ID, Name: capster.Name, Image: capster.Image}
	}

	resp.Summary = SummaryResponse{
		TotalServices: len(first.ServiceIDs),
		TotalPrice:    first.TotalPrice,
		TotalDuration: first.TotalDuration,
	}

	if len(rows) > 1 {
		end := last.Schedule.Add(domain.SlotDurationMinutes * time.Minute).In(loc)
		resp.Summary.StartTime = schedule.Format(domain.DisplayTimeFormat)
		resp.Summary.EndTime = end.Format(domain.DisplayTimeFormat)
		resp.Summary.Slots = make([]SlotResponse, len(rows))
		for i, row := range rows {
			at := row.Schedule.In(loc)
			resp.Summary.Slots[i] = SlotResponse{
				ID:       row.ID,
				Sequence: row.SlotSequence,
				Schedule: at,
				Time:     at.Format(domain.DisplayTimeFormat),
			}
		}
	}

	return resp
}

// visibleRows оставляет активные строки; для отменённой брони возвращает все
func visibleRows(rows []*domain.Booking) []*domain.Booking {
	active := make([]*domain.Booking, 0, len(rows))
	for _, row := range rows {
		if row.IsActive() {
			active = append(active, row)
		}
	}
	if len(active) == 0 {
		return rows
	}
	return active
}

// GroupRows группирует строки по group_id в порядке первого появления
func GroupRows(rows []*domain.Booking) [][]*domain.Booking {
	index := make(map[string]int)
	groups := make([][]*domain.Booking, 0)
	for _, row := range rows {
		key := row.GroupID.String()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], row)
	}
	return groups
}

// ServiceIDsOf собирает уникальные ID услуг всех строк
func ServiceIDsOf(rows []*domain.Booking) []int64 {
	seen := make(map[int64]struct{})
	ids := make([]int64, 0)
	for _, row := range rows {
		for _, id := range row.ServiceIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

// IndexServices строит индекс услуг по ID
func IndexServices(services []*domain.Service) map[int64]*domain.Service {
	index := make(map[int64]*domain.Service, len(services))
	for _, s := range services {
		index[s.ID] = s
	}
	return index
}
