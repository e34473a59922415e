package extract

import "strings"

var navigationVerbs = wordSet(
	"маршрут", "маршрути", "маршруту", "прокласти", "проклади", "прокладіть", "покажи", "показати",
	"як", "доїхати", "доїду", "дійти", "дістатися", "дістатись", "проїхати", "проїзд", "їхати", "поїхати",
	"піти", "йти", "іти", "навігація", "навігацію", "дорога", "дорогу", "мені", "будь", "ласка", "треба", "потрібно",
	"route", "navigate", "navigation", "directions", "direction", "how", "get", "go", "show", "me", "the", "please", "way",
	"пішки", "пешком", "автобусом", "метро", "маршруткою", "трамваєм", "тролейбусом", "машиною", "автомобілем",
	"громадським", "транспортом", "walking", "walk", "by", "car", "bus", "transit", "foot",
)

var prepositions = wordSet("до", "в", "у", "на", "к", "to", "towards", "toward", "at", "into")

// nominative maps common inflected destinations to their dictionary form.
var nominative = map[string]string{
	"офісу": "офіс", "офісі": "офіс", "роботи": "робота", "роботу": "робота", "дому": "дім", "додому": "дім",
	"центру": "центр", "вокзалу": "вокзал", "аеропорту": "аеропорт", "університету": "університет",
	"школи": "школа", "лікарні": "лікарня", "магазину": "магазин", "парку": "парк", "вулиці": "вулиця",
	"площі": "площа", "станції": "станція", "ринку": "ринок", "театру": "театр", "кафе": "кафе",
	"офіс": "офіс", "дім": "дім", "home": "home", "office": "office",
}

// ExtractDestination isolates the place the user wants to reach. Tokens after
// the first preposition are preferred; command verbs and transport words are
// dropped and the remainder title-cased. ok is false when nothing remains.
func ExtractDestination(text string) (string, bool) {
	tokens := Words(text)
	for i, t := range tokens {
		if prepositions[t] && i+1 < len(tokens) {
			tokens = tokens[i+1:]
			break
		}
	}
	tokens = dropWords(dropWords(tokens, navigationVerbs), prepositions)
	if len(tokens) == 0 {
		return "", false
	}

	phrase := strings.Join(tokens, " ")
	if c, ok := LookupCity(phrase); ok {
		return c.Name, true
	}
	for i, t := range tokens {
		if c, ok := LookupCity(t); ok {
			tokens[i] = c.Name
			continue
		}
		if n, ok := nominative[t]; ok {
			tokens[i] = n
		}
	}
	return TitleCase(strings.Join(tokens, " ")), true
}

// ContactAction is what to do with a contact.
type ContactAction string

const (
	ActionCall ContactAction = "call"
	ActionSMS  ContactAction = "sms"
)

// Contact is the target of a call or message.
type Contact struct {
	Name   string
	Action ContactAction
	// Body is the message text after "що"/"that" or a colon.
	Body  string
	Found bool
}

var smsWords = wordSet("sms", "смс", "повідомлення", "напиши", "написати", "надішли", "надіслати", "message", "text", "текст")

var contactVerbs = wordSet(
	"подзвони", "подзвонити", "зателефонуй", "зателефонувати", "набери", "набрати", "дзвінок", "дзвони",
	"call", "dial", "phone", "ring", "будь", "ласка", "please", "мені", "to", "for", "контакт", "contact",
)

var kin = map[string]string{
	"мамі": "Мама", "маму": "Мама", "мама": "Мама", "мамо": "Мама",
	"татові": "Тато", "тату": "Тато", "тато": "Тато",
	"бабусі": "Бабуся", "бабусю": "Бабуся", "бабуся": "Бабуся",
	"дідусеві": "Дідусь", "дідусю": "Дідусь", "дідусь": "Дідусь",
	"сестрі": "Сестра", "сестру": "Сестра", "сестра": "Сестра",
	"братові": "Брат", "брату": "Брат", "брат": "Брат",
	"іванові": "Іван", "івану": "Іван", "марії": "Марія", "марію": "Марія",
	"олексію": "Олексій", "олексієві": "Олексій", "анні": "Анна", "анну": "Анна",
	"mom": "Mom", "mum": "Mom", "dad": "Dad",
}

var bodySeparators = []string{" що ", " that ", ":"}

// ExtractContact finds who to call or message. Call is the default action.
func ExtractContact(text string) Contact {
	norm := Normalize(text)
	c := Contact{Action: ActionCall}

	head := norm
	for _, sep := range bodySeparators {
		if i := strings.Index(norm, sep); i >= 0 {
			head = norm[:i]
			c.Body = TrimPunct(norm[i+len(sep):])
			break
		}
	}

	tokens := Words(head)
	for _, t := range tokens {
		if smsWords[t] {
			c.Action = ActionSMS
			break
		}
	}
	tokens = dropWords(dropWords(tokens, contactVerbs), smsWords)
	if len(tokens) == 0 {
		return c
	}
	name := tokens[0]
	if len([]rune(name)) < 2 {
		return c
	}
	if n, ok := kin[name]; ok {
		c.Name = n
	} else {
		c.Name = TitleCase(name)
	}
	c.Found = true
	return c
}
