package chat

// Step identifies where a chat user is in the booking flow. The zero value
// (no session) means no flow is in progress.
type Step string

const (
	StepSelectRoom Step = "select_room"
	StepSelectDate Step = "select_date"
	StepSelectSlot Step = "select_slot"
	StepInputName  Step = "input_name"
	StepInputPhone Step = "input_phone"
	StepInputEmail Step = "input_email"
	StepConfirm    Step = "confirm"
)

// Draft accumulates the answers collected so far. Fields are filled strictly
// in step order, so every field required by the current step is guaranteed to
// be present.
type Draft struct {
	RoomID     string `json:"roomId,omitempty"`
	RoomName   string `json:"roomName,omitempty"`
	HourlyRate int    `json:"hourlyRate,omitempty"`
	Date       string `json:"date,omitempty"` // "YYYY-MM-DD"
	Start      string `json:"start,omitempty"`
	End        string `json:"end,omitempty"`
	Name       string `json:"name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
}

// Session is the durable per-user conversation state. It is persisted keyed
// by the external chat user id so a flow survives process restarts.
type Session struct {
	Step  Step  `json:"step"`
	Draft Draft `json:"draft"`
}
