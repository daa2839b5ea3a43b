// Package model содержит модели данных.
//
// Группа: ENTITIES - Основные сущности
// Содержит: SchedulePreferences, SchedulePreferencesRepository
package model

import (
	"time"

	"github.com/uptrace/bun"
)

// DayPart представляет часть дня
type DayPart string

const (
	DayPartMorning   DayPart = "morning"
	DayPartAfternoon DayPart = "afternoon"
	DayPartEvening   DayPart = "evening"
)

// EnergyLevel представляет уровень энергии пользователя
type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"
)

// IsValid проверяет валидность уровня энергии
func (e EnergyLevel) IsValid() bool {
	switch e {
	case EnergyLow, EnergyMedium, EnergyHigh:
		return true
	default:
		return false
	}
}

// SubjectOverride представляет настройки для отдельного предмета
type SubjectOverride struct {
	Difficulty      int     `json:"difficulty"`
	RequiredMinutes int     `json:"required_minutes"`
	PreferredPart   DayPart `json:"preferred_part"`
}

// SchedulePreferences представляет настройки планирования пользователя
type SchedulePreferences struct {
	bun.BaseModel `bun:"table:focusboard.schedule_preferences"`

	ID                int64                      `bun:"id,pk,autoincrement" json:"id"`
	UserID            int64                      `bun:"user_id,unique,notnull" json:"user_id"`
	WorkStartMinutes  int                        `bun:"work_start_minutes,notnull" json:"work_start_minutes"`
	WorkEndMinutes    int                        `bun:"work_end_minutes,notnull" json:"work_end_minutes"`
	PreferredWeekdays []time.Weekday             `bun:"preferred_weekdays,type:jsonb" json:"preferred_weekdays"`
	SessionMinutes    int                        `bun:"session_minutes,notnull,default:45" json:"session_minutes"`
	BreakMinutes      int                        `bun:"break_minutes,notnull,default:15" json:"break_minutes"`
	EnergyLevels      map[DayPart]EnergyLevel    `bun:"energy_levels,type:jsonb" json:"energy_levels"`
	SubjectOverrides  map[string]SubjectOverride `bun:"subject_overrides,type:jsonb" json:"subject_overrides"`
	CreatedAt         time.Time                  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt         time.Time                  `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// DefaultSchedulePreferences возвращает настройки по умолчанию для пользователя
func DefaultSchedulePreferences(userID int64) *SchedulePreferences {
	return &SchedulePreferences{
		UserID:           userID,
		WorkStartMinutes: 9 * 60,
		WorkEndMinutes:   18 * 60,
		PreferredWeekdays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
		SessionMinutes: 45,
		BreakMinutes:   15,
		EnergyLevels: map[DayPart]EnergyLevel{
			DayPartMorning:   EnergyHigh,
			DayPartAfternoon: EnergyMedium,
			DayPartEvening:   EnergyLow,
		},
	}
}

// Validate проверяет валидность настроек планирования
func (p *SchedulePreferences) Validate() error {
	var errors ValidationErrors

	if p.UserID == 0 {
		errors = append(errors, ValidationError{Field: "user_id", Message: "user_id is required"})
	}

	if p.WorkStartMinutes < 0 || p.WorkStartMinutes >= 24*60 {
		errors = append(errors, ValidationError{Field: "work_start_minutes", Message: "must be within one day"})
	}

	if p.WorkEndMinutes <= 0 || p.WorkEndMinutes > 24*60 {
		errors = append(errors, ValidationError{Field: "work_end_minutes", Message: "must be within one day"})
	}

	// Окно рабочих часов должно быть хронологическим, ночные окна не поддерживаются
	if p.WorkEndMinutes <= p.WorkStartMinutes {
		errors = append(errors, ValidationError{Field: "work_end_minutes", Message: "working hours end must be after start"})
	}

	if p.SessionMinutes <= 0 {
		errors = append(errors, ValidationError{Field: "session_minutes", Message: "must be positive"})
	}

	if p.BreakMinutes < 0 {
		errors = append(errors, ValidationError{Field: "break_minutes", Message: "must be non-negative"})
	}

	for part, level := range p.EnergyLevels {
		if !level.IsValid() {
			errors = append(errors, ValidationError{Field: "energy_levels", Message: "invalid energy level for " + string(part)})
		}
	}

	if len(errors) > 0 {
		return errors
	}

	return nil
}

// SchedulePreferencesRepository определяет интерфейс для работы с настройками планирования
type SchedulePreferencesRepository interface {
	GetByUserID(userID int64) (*SchedulePreferences, error)
	Upsert(prefs *SchedulePreferences) error
	Delete(userID int64) error
}
