package model

// Intent is the category of user goal inferred from a message.
type Intent string

const (
	IntentCreateEvent      Intent = "create_event"
	IntentCreateReminder   Intent = "create_reminder"
	IntentOptimizeSchedule Intent = "optimize_schedule"
	IntentGenerateText     Intent = "generate_text"
	IntentComposeEmail     Intent = "compose_email"
	IntentBrainstorm       Intent = "brainstorm"
	IntentGetWeather       Intent = "get_weather"
	IntentNavigate         Intent = "navigate"
	IntentLogExpense       Intent = "log_expense"
	IntentShoppingList     Intent = "shopping_list"
	IntentTakeNote         Intent = "take_note"
	IntentContactAction    Intent = "contact_action"
	IntentHealthLog        Intent = "health_log"
	IntentGetNews          Intent = "get_news"
	IntentGeneral          Intent = "general"
)

// AllIntents lists the closed taxonomy in a stable order.
var AllIntents = []Intent{
	IntentCreateEvent,
	IntentCreateReminder,
	IntentOptimizeSchedule,
	IntentGenerateText,
	IntentComposeEmail,
	IntentBrainstorm,
	IntentGetWeather,
	IntentNavigate,
	IntentLogExpense,
	IntentShoppingList,
	IntentTakeNote,
	IntentContactAction,
	IntentHealthLog,
	IntentGetNews,
	IntentGeneral,
}

// Valid reports whether i is part of the taxonomy.
func (i Intent) Valid() bool {
	for _, known := range AllIntents {
		if i == known {
			return true
		}
	}
	return false
}

// ParseIntent returns the intent named by s, or false when s is not a known intent.
func ParseIntent(s string) (Intent, bool) {
	i := Intent(s)
	return i, i.Valid()
}

// Attribute keys set by the classifier.
const (
	AttrLanguage     = "language"
	AttrTone         = "tone"
	AttrUrgency      = "urgency"
	AttrRelativeDate = "relative_date"
	AttrFocusArea    = "focus_area"
	AttrContentType  = "content_type"
	AttrLength       = "length"
	AttrKind         = "kind"
	AttrMatched      = "matched"
	AttrSource       = "source"
	AttrDegraded     = "degraded"
)

// Classification is the classifier's verdict for one message.
type Classification struct {
	Intent     Intent            `json:"intent"`
	Confidence float64           `json:"confidence"`
	Rule       string            `json:"rule,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	// Candidates holds every intent whose rule matched, in precedence order.
	Candidates []Intent `json:"candidates,omitempty"`
}

// Attr returns the named attribute or "".
func (c Classification) Attr(key string) string {
	if c.Attributes == nil {
		return ""
	}
	return c.Attributes[key]
}
