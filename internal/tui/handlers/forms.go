package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/iterpolaris/polaris-cli/internal/constants"
	"github.com/iterpolaris/polaris-cli/internal/engine"
	"github.com/iterpolaris/polaris-cli/internal/models"
	"github.com/iterpolaris/polaris-cli/internal/tui/state"
	"github.com/iterpolaris/polaris-cli/internal/validation"
)

const formDatetimeLayout = constants.DateFormat + " " + constants.TimeFormat

func questOptions(m *state.Model) []huh.Option[int64] {
	opts := make([]huh.Option[int64], 0, len(m.Quests)+1)
	opts = append(opts, huh.NewOption("(none)", int64(0)))
	for _, q := range m.Quests {
		opts = append(opts, huh.NewOption(q.Name, q.ID))
	}
	return opts
}

func tagOptions(m *state.Model) []huh.Option[int64] {
	opts := make([]huh.Option[int64], 0, len(m.Tags))
	for _, t := range m.Tags {
		opts = append(opts, huh.NewOption(t.Name, t.ID))
	}
	return opts
}

func validateDatetime(s string) error {
	if _, err := time.ParseInLocation(formDatetimeLayout, s, time.Local); err != nil {
		return fmt.Errorf("use %s", formDatetimeLayout)
	}
	return nil
}

func questPtr(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

// OpenMissionForm builds the scheduled mission form. edit is the mission
// being changed, nil to create. With m.ConvertingPool set the form
// schedules that pool mission and prefills from it.
func OpenMissionForm(m *state.Model, edit *models.ScheduledMission, prefill *engine.SlotPrefill) {
	f := &state.MissionFormModel{
		Energy: "0",
		Points: "0",
	}
	switch {
	case prefill != nil:
		f.Start = prefill.Start.Format(formDatetimeLayout)
		f.End = prefill.End.Format(formDatetimeLayout)
		f.AllDay = prefill.AllDay
	default:
		next := time.Now().Truncate(time.Hour).Add(time.Hour)
		f.Start = next.Format(formDatetimeLayout)
		f.End = next.Add(time.Hour).Format(formDatetimeLayout)
	}
	if edit != nil {
		f.Title = edit.Title
		f.Description = edit.Description
		f.Start = edit.StartDatetime.Format(formDatetimeLayout)
		f.End = edit.EndDatetime.Format(formDatetimeLayout)
		f.AllDay = edit.IsAllDay
		f.Energy = strconv.Itoa(edit.EnergyValue)
		f.Points = strconv.Itoa(edit.PointsValue)
		if edit.QuestID != nil {
			f.QuestID = *edit.QuestID
		}
		f.TagIDs = edit.TagIDs()
	}
	if pm := m.ConvertingPool; pm != nil {
		f.Title = pm.Title
		f.Description = pm.Description
		f.Energy = strconv.Itoa(pm.EnergyValue)
		f.Points = strconv.Itoa(pm.PointsValue)
		if pm.QuestID != nil {
			f.QuestID = *pm.QuestID
		}
		f.TagIDs = pm.TagIDs()
	}

	m.MissionForm = f
	m.EditingMission = edit
	m.Form = huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Title").Value(&f.Title).Validate(validation.Title),
		huh.NewInput().Title("Description").Value(&f.Description),
		huh.NewInput().Title("Start").Value(&f.Start).Validate(validateDatetime),
		huh.NewInput().Title("End").Value(&f.End).Validate(validateDatetime),
		huh.NewConfirm().Title("All day?").Value(&f.AllDay),
		huh.NewInput().Title("Energy").Value(&f.Energy).Validate(validation.IntValue),
		huh.NewInput().Title("Points").Value(&f.Points).Validate(validation.IntValue),
		huh.NewSelect[int64]().Title("Quest").Options(questOptions(m)...).Value(&f.QuestID),
		huh.NewMultiSelect[int64]().Title("Tags").Options(tagOptions(m)...).Value(&f.TagIDs),
	))
	m.PreviousState = m.State
	m.State = constants.StateMissionForm
}

// SubmitMissionForm turns the completed form into the matching API call.
// New missions always start PENDING; edits keep the current status.
func SubmitMissionForm(m *state.Model) tea.Cmd {
	f := m.MissionForm
	start, _ := time.ParseInLocation(formDatetimeLayout, f.Start, time.Local)
	end, _ := time.ParseInLocation(formDatetimeLayout, f.End, time.Local)
	if err := validation.MissionTimes(start, end); err != nil {
		m.ErrorMsg = err.Error()
		return nil
	}
	energy, _ := strconv.Atoi(f.Energy)
	points, _ := strconv.Atoi(f.Points)
	p := models.ScheduledMissionPayload{
		Title:         strings.TrimSpace(f.Title),
		Description:   f.Description,
		StartDatetime: start,
		EndDatetime:   end,
		IsAllDay:      f.AllDay,
		Status:        models.StatusPending,
		EnergyValue:   energy,
		PointsValue:   points,
		QuestID:       questPtr(f.QuestID),
		TagIDs:        f.TagIDs,
	}

	client, wf := m.Client, m.Workflow
	edit := m.EditingMission
	var poolID int64
	if m.ConvertingPool != nil {
		poolID = m.ConvertingPool.ID
	}
	return func() tea.Msg {
		ctx := context.Background()
		if edit != nil {
			p.Status = edit.Status
			if _, err := client.UpdateScheduledMission(ctx, edit.ID, p); err != nil {
				return state.OutcomeMsg{Outcome: engine.Outcome{Err: err}}
			}
			return state.OutcomeMsg{Outcome: engine.Outcome{Message: "Mission updated", RefetchEvents: true}}
		}
		_, wasConversion, err := wf.ScheduleFromForm(ctx, poolID, p)
		if err != nil {
			return state.OutcomeMsg{Outcome: engine.Outcome{Err: err, RefetchEvents: true, RefetchPool: wasConversion}}
		}
		msg := "Mission created"
		if wasConversion {
			msg = "Pool mission scheduled"
		}
		return state.OutcomeMsg{Outcome: engine.Outcome{Message: msg, RefetchEvents: true, RefetchPool: wasConversion}}
	}
}

// OpenHabitForm builds the habit template form, prefilled when editing.
func OpenHabitForm(m *state.Model, edit *models.HabitTemplate) {
	f := &state.HabitFormModel{
		Active:       true,
		Energy:       "0",
		Points:       "0",
		Duration:     strconv.Itoa(constants.DefaultDropDurationMin),
		PatternStart: time.Now().Format(constants.DateFormat),
	}
	if edit != nil {
		f.Title = edit.Title
		f.Description = edit.Description
		f.Days = append([]models.RecDay(nil), edit.RecByDay...)
		if edit.RecStartTime != nil {
			f.StartTime = *edit.RecStartTime
		}
		if edit.RecDurationMinutes != nil {
			f.Duration = strconv.Itoa(*edit.RecDurationMinutes)
		}
		f.PatternStart = edit.RecPatternStartDate
		if edit.RecEndsOnDate != nil {
			f.EndsOn = *edit.RecEndsOnDate
		}
		f.Active = edit.IsActive
		f.Energy = strconv.Itoa(edit.EnergyValue)
		f.Points = strconv.Itoa(edit.PointsValue)
		if edit.QuestID != nil {
			f.QuestID = *edit.QuestID
		}
		f.TagIDs = edit.TagIDs()
	}

	dayOpts := []huh.Option[models.RecDay]{
		huh.NewOption("Every day", models.RecDaily),
		huh.NewOption("Monday", models.RecMO),
		huh.NewOption("Tuesday", models.RecTU),
		huh.NewOption("Wednesday", models.RecWE),
		huh.NewOption("Thursday", models.RecTH),
		huh.NewOption("Friday", models.RecFR),
		huh.NewOption("Saturday", models.RecSA),
		huh.NewOption("Sunday", models.RecSU),
	}

	m.HabitForm = f
	m.EditingTemplate = edit
	m.Form = huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Title").Value(&f.Title).Validate(validation.Title),
		huh.NewInput().Title("Description").Value(&f.Description),
		huh.NewMultiSelect[models.RecDay]().Title("Repeats on").Options(dayOpts...).Value(&f.Days),
		huh.NewInput().Title("Start time (HH:MM, blank = all day)").Value(&f.StartTime).Validate(validation.TimeOfDay),
		huh.NewInput().Title("Duration (minutes)").Value(&f.Duration).Validate(validation.PositiveMinutes),
		huh.NewInput().Title("Pattern starts").Value(&f.PatternStart).Validate(validation.Date),
		huh.NewInput().Title("Ends on (optional)").Value(&f.EndsOn).Validate(validation.OptionalDate),
		huh.NewConfirm().Title("Active?").Value(&f.Active),
		huh.NewInput().Title("Energy").Value(&f.Energy).Validate(validation.IntValue),
		huh.NewInput().Title("Points").Value(&f.Points).Validate(validation.IntValue),
		huh.NewSelect[int64]().Title("Quest").Options(questOptions(m)...).Value(&f.QuestID),
		huh.NewMultiSelect[int64]().Title("Tags").Options(tagOptions(m)...).Value(&f.TagIDs),
	))
	m.PreviousState = m.State
	m.State = constants.StateHabitForm
}

// SubmitHabitForm persists the template; the backend regenerates future
// occurrences from the new pattern.
func SubmitHabitForm(m *state.Model) tea.Cmd {
	f := m.HabitForm
	if err := validation.RecDays(f.Days); err != nil {
		m.ErrorMsg = err.Error()
		return nil
	}
	energy, _ := strconv.Atoi(f.Energy)
	points, _ := strconv.Atoi(f.Points)
	p := models.HabitTemplatePayload{
		Title:               strings.TrimSpace(f.Title),
		Description:         f.Description,
		RecByDay:            f.Days,
		RecPatternStartDate: f.PatternStart,
		IsActive:            f.Active,
		EnergyValue:         energy,
		PointsValue:         points,
		QuestID:             questPtr(f.QuestID),
		TagIDs:              f.TagIDs,
	}
	if f.StartTime != "" {
		st := f.StartTime
		p.RecStartTime = &st
		if mins, err := strconv.Atoi(f.Duration); err == nil && mins > 0 {
			p.RecDurationMinutes = &mins
		}
	}
	if f.EndsOn != "" {
		e := f.EndsOn
		p.RecEndsOnDate = &e
	}

	client := m.Client
	edit := m.EditingTemplate
	return func() tea.Msg {
		ctx := context.Background()
		if edit != nil {
			if _, err := client.UpdateHabitTemplate(ctx, edit.ID, p); err != nil {
				return state.OutcomeMsg{Outcome: engine.Outcome{Err: err}}
			}
			return state.OutcomeMsg{Outcome: engine.Outcome{Message: "Habit updated", RefetchEvents: true}}
		}
		if _, err := client.CreateHabitTemplate(ctx, p); err != nil {
			return state.OutcomeMsg{Outcome: engine.Outcome{Err: err}}
		}
		return state.OutcomeMsg{Outcome: engine.Outcome{Message: "Habit created", RefetchEvents: true}}
	}
}

// OpenPoolForm builds the pool mission form, prefilled when editing.
func OpenPoolForm(m *state.Model, edit *models.PoolMission) {
	f := &state.PoolFormModel{
		Energy: "0",
		Points: "0",
		Focus:  models.FocusActive,
	}
	if edit != nil {
		f.Title = edit.Title
		f.Description = edit.Description
		f.Energy = strconv.Itoa(edit.EnergyValue)
		f.Points = strconv.Itoa(edit.PointsValue)
		f.Focus = edit.FocusStatus
		if edit.QuestID != nil {
			f.QuestID = *edit.QuestID
		}
		f.TagIDs = edit.TagIDs()
	}

	m.PoolForm = f
	m.EditingPool = edit
	m.Form = huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Title").Value(&f.Title).Validate(validation.Title),
		huh.NewInput().Title("Description").Value(&f.Description),
		huh.NewInput().Title("Energy").Value(&f.Energy).Validate(validation.IntValue),
		huh.NewInput().Title("Points").Value(&f.Points).Validate(validation.IntValue),
		huh.NewSelect[models.FocusStatus]().Title("Focus").
			Options(
				huh.NewOption("Active", models.FocusActive),
				huh.NewOption("Deferred", models.FocusDeferred),
			).Value(&f.Focus),
		huh.NewSelect[int64]().Title("Quest").Options(questOptions(m)...).Value(&f.QuestID),
		huh.NewMultiSelect[int64]().Title("Tags").Options(tagOptions(m)...).Value(&f.TagIDs),
	))
	m.PreviousState = m.State
	m.State = constants.StatePoolForm
}

// SubmitPoolForm creates or updates a pool mission.
func SubmitPoolForm(m *state.Model) tea.Cmd {
	f := m.PoolForm
	energy, _ := strconv.Atoi(f.Energy)
	points, _ := strconv.Atoi(f.Points)
	p := models.PoolMissionPayload{
		Title:       strings.TrimSpace(f.Title),
		Description: f.Description,
		Status:      models.StatusPending,
		FocusStatus: f.Focus,
		EnergyValue: energy,
		PointsValue: points,
		QuestID:     questPtr(f.QuestID),
		TagIDs:      f.TagIDs,
	}

	client := m.Client
	edit := m.EditingPool
	return func() tea.Msg {
		ctx := context.Background()
		if edit != nil {
			p.Status = edit.Status
			if _, err := client.UpdatePoolMission(ctx, edit.ID, p); err != nil {
				return state.OutcomeMsg{Outcome: engine.Outcome{Err: err}}
			}
			return state.OutcomeMsg{Outcome: engine.Outcome{Message: "Pool mission updated", RefetchPool: true}}
		}
		if _, err := client.CreatePoolMission(ctx, p); err != nil {
			return state.OutcomeMsg{Outcome: engine.Outcome{Err: err}}
		}
		return state.OutcomeMsg{Outcome: engine.Outcome{Message: "Pool mission created", RefetchPool: true}}
	}
}

// CloseForm drops the active form and returns to the prior view.
func CloseForm(m *state.Model) {
	m.Form = nil
	m.MissionForm = nil
	m.HabitForm = nil
	m.PoolForm = nil
	m.EditingMission = nil
	m.EditingTemplate = nil
	m.EditingPool = nil
	m.ConvertingPool = nil
	m.State = m.PreviousState
}
