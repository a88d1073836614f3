package state

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/huh"

	"github.com/iterpolaris/polaris-cli/internal/api"
	"github.com/iterpolaris/polaris-cli/internal/constants"
	"github.com/iterpolaris/polaris-cli/internal/convert"
	"github.com/iterpolaris/polaris-cli/internal/engine"
	"github.com/iterpolaris/polaris-cli/internal/intentlog"
	"github.com/iterpolaris/polaris-cli/internal/models"
	"github.com/iterpolaris/polaris-cli/internal/projection"
	"github.com/iterpolaris/polaris-cli/internal/session"
	"github.com/iterpolaris/polaris-cli/internal/tui/components/calendargrid"
	"github.com/iterpolaris/polaris-cli/internal/tui/components/poollist"
	"github.com/iterpolaris/polaris-cli/internal/tui/components/upcoming"
)

// MissionFormModel represents the form model for scheduled missions
type MissionFormModel struct {
	Title       string
	Description string
	Start       string // YYYY-MM-DD HH:MM format
	End         string // YYYY-MM-DD HH:MM format
	AllDay      bool
	Energy      string
	Points      string
	QuestID     int64 // 0 means no quest
	TagIDs      []int64
}

// HabitFormModel represents the form model for habit templates
type HabitFormModel struct {
	Title        string
	Description  string
	Days         []models.RecDay
	StartTime    string // HH:MM format, optional
	Duration     string // minutes, optional
	PatternStart string // YYYY-MM-DD format
	EndsOn       string // YYYY-MM-DD format, optional
	Active       bool
	Energy       string
	Points       string
	QuestID      int64
	TagIDs       []int64
}

// PoolFormModel represents the form model for pool missions
type PoolFormModel struct {
	Title       string
	Description string
	Energy      string
	Points      string
	Focus       models.FocusStatus
	QuestID     int64
	TagIDs      []int64
}

// Model represents the shared state for the TUI
type Model struct {
	Client   *api.Client
	Session  *session.Store
	Engine   *engine.Engine
	Workflow *convert.Workflow
	Intents  *intentlog.Log

	State         constants.SessionState
	PreviousState constants.SessionState
	Keys          KeyMap
	Help          help.Model

	Calendar calendargrid.Model
	Pool     poollist.Model
	Upcoming upcoming.Model

	Form        *huh.Form
	MissionForm *MissionFormModel
	HabitForm   *HabitFormModel
	PoolForm    *PoolFormModel

	// EditingMission is set while the mission form edits an existing
	// mission; nil means the form creates one.
	EditingMission *models.ScheduledMission
	// EditingTemplate is set while the habit form edits an existing
	// template.
	EditingTemplate *models.HabitTemplate
	// ConvertingPool is the pool mission driving a form-based conversion:
	// when set, a successful mission create is followed by deleting this
	// pool original.
	ConvertingPool *models.PoolMission
	// EditingPool is set while the pool form edits an existing mission.
	EditingPool *models.PoolMission

	MissionToDelete  *models.ScheduledMission
	TemplateToDelete int64
	// ConfirmValue backs the confirmation form's yes/no field.
	ConfirmValue bool
	// MenuCursor indexes the action menu's entries while it is open.
	MenuCursor int

	Items        []projection.CalendarItem
	PoolMissions []models.PoolMission

	Colors     projection.ColorIndex
	Quests     []models.Quest
	QuestNames map[int64]string
	Tags       []models.Tag
	Snapshot   session.Snapshot

	// ErrorMsg persists until replaced; SuccessMsg auto-clears.
	ErrorMsg   string
	SuccessMsg string

	Width           int
	Height          int
	Quitting        bool
	CalendarLoading bool
	PoolLoading     bool
}

// New creates a new state Model
func New(client *api.Client, sess *session.Store, eng *engine.Engine, wf *convert.Workflow, intents *intentlog.Log) Model {
	return Model{
		Client:     client,
		Session:    sess,
		Engine:     eng,
		Workflow:   wf,
		Intents:    intents,
		State:      constants.StateCalendar,
		Keys:       DefaultKeyMap(),
		Help:       help.New(),
		Calendar:   calendargrid.New(0, 0),
		Pool:       poollist.New(nil, 0, 0),
		Upcoming:   upcoming.New(0, 0),
		QuestNames: make(map[int64]string),
		Snapshot:   sess.Current(),
	}
}
