package handler

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/agents052025/assistant-be-ios/internal/extract"
	"github.com/agents052025/assistant-be-ios/internal/model"
)

const (
	DefaultIdeaCount = 5
	MaxIdeaCount     = 10
)

type idea struct {
	title       string
	description string
	feasibility string
}

var ideaBank = map[string][]idea{
	"business": {
		{"Підписна модель", "Перетворіть разовий продаж на щомісячну підписку з бонусами для постійних клієнтів.", "high"},
		{"Партнерська програма", "Запропонуйте партнерам комісію за кожного залученого клієнта.", "high"},
		{"Нішевий сегмент", "Оберіть вузьку аудиторію і зробіть для неї найкращу пропозицію на ринку.", "medium"},
		{"Онлайн-курс", "Упакуйте експертизу команди в платний навчальний курс.", "medium"},
		{"Програма лояльності", "Накопичувальні бали за покупки повертають клієнтів частіше.", "high"},
		{"Коаліція з сусідами", "Спільна акція з бізнесами поруч здешевлює залучення клієнтів.", "medium"},
		{"Преміум-версія", "Додайте дорожчу версію продукту з розширеним сервісом.", "medium"},
		{"Франшиза", "Опишіть процеси так, щоб модель можна було тиражувати в інших містах.", "low"},
		{"B2B-напрям", "Продавайте той самий продукт компаніям пакетами для працівників.", "medium"},
		{"Спільнота клієнтів", "Закритий чат чи клуб для клієнтів підвищує утримання.", "high"},
	},
	"creative": {
		{"Фотопроєкт на 30 днів", "Щодня одне фото на одну тему, наприкінці міні-виставка.", "high"},
		{"Колаж з архіву", "Створіть колаж зі старих журналів, квитків і листівок.", "high"},
		{"Історія від імені речі", "Напишіть оповідання від імені предмета з вашого столу.", "high"},
		{"Музичний ремікс", "Поєднайте дві пісні різних жанрів в одну композицію.", "medium"},
		{"Міська прогулянка-квест", "Складіть маршрут із загадками для друзів.", "medium"},
		{"Комікс про тиждень", "Намалюйте чотири кадри про найяскравіші події тижня.", "high"},
		{"Інсталяція зі світла", "Гірлянди й тіні на стіні як тимчасова арт-інсталяція.", "medium"},
		{"Кулінарний експеримент", "Приготуйте страву, де кожен інгредієнт має інший колір.", "high"},
		{"Подкаст про хобі", "Запишіть три короткі випуски про свою улюблену справу.", "medium"},
		{"Відеолист у майбутнє", "Зніміть звернення до себе через п'ять років.", "high"},
	},
	"technical": {
		{"Автоматизація рутини", "Напишіть скрипт для завдання, яке ви повторюєте щотижня.", "high"},
		{"Чат-бот підтримки", "Бот відповідає на часті запитання клієнтів цілодобово.", "medium"},
		{"Панель метрик", "Зберіть ключові показники в одну оновлювану панель.", "high"},
		{"Мобільний застосунок", "Винесіть головну функцію сервісу в простий застосунок.", "low"},
		{"Відкрите API", "Дайте партнерам доступ до даних через документоване API.", "medium"},
		{"Кешування запитів", "Кеш для повільних запитів помітно прискорить сервіс.", "high"},
		{"Розумні сповіщення", "Надсилайте сповіщення лише тоді, коли вони справді корисні.", "medium"},
		{"Інтеграція з календарем", "Синхронізуйте події сервісу з календарем користувача.", "medium"},
		{"Резервне копіювання", "Налаштуйте автоматичні бекапи з перевіркою відновлення.", "high"},
		{"Експерименти A/B", "Перевіряйте зміни інтерфейсу на частині аудиторії.", "medium"},
	},
	"general": {
		{"Список на вихідні", "Складіть три речі, які точно хочете встигнути цими вихідними.", "high"},
		{"Цифровий детокс", "Один вечір на тиждень без екранів.", "high"},
		{"Нова навичка", "Оберіть навичку і приділяйте їй 15 хвилин щодня.", "high"},
		{"Обмін книжками", "Організуйте з друзями полицю для обміну книжками.", "medium"},
		{"Волонтерство", "Знайдіть ініціативу поруч і допоможіть кілька годин на місяць.", "medium"},
		{"Подорож вихідного дня", "Оберіть місто в межах трьох годин дороги.", "medium"},
		{"Щоденник вдячності", "Щовечора записуйте три хороші речі за день.", "high"},
		{"Спільна вечеря", "Запросіть друзів, кожен приносить одну страву.", "high"},
		{"Ревізія підписок", "Перегляньте платні підписки і скасуйте зайві.", "high"},
		{"Ранковий ритуал", "Додайте до ранку одну корисну звичку.", "high"},
	},
}

var focusLabels = map[string]string{
	"business": "бізнес", "creative": "творчість", "technical": "технології", "general": "загальне",
}

var brainstormCommandWords = []string{
	"придумай", "придумати", "згенеруй", "дай", "запропонуй", "ідеї", "ідей", "мені", "кілька", "декілька",
	"brainstorm", "give", "me", "some", "ideas", "think", "of", "please", "будь", "ласка",
}

var brainstormTopicMarkers = []string{"про", "щодо", "для", "about", "for", "on"}

// Brainstorm produces a fixed, focus-based idea list.
type Brainstorm struct{}

func (Brainstorm) Name() string { return "content" }

func (Brainstorm) Extract(_ context.Context, in Input) model.Entities {
	focus := in.Classification.Attr(model.AttrFocusArea)
	if _, ok := ideaBank[focus]; !ok {
		focus = "general"
	}

	text := in.Text()
	n, ok := in.Message.ContextInt("quantity")
	defaulted := false
	if !ok {
		n, text, ok = brainstormQuantity(text)
	}
	if !ok {
		n, defaulted = DefaultIdeaCount, true
	}
	n = min(max(n, 1), MaxIdeaCount)

	return model.Entities{
		"focus_area":         focus,
		"quantity":           n,
		"quantity_defaulted": defaulted,
		"topic":              brainstormTopic(text),
	}
}

func (Brainstorm) Handle(_ context.Context, in Input) model.HandlerResult {
	e := in.Entities
	focus := e.String("focus_area")
	bank := ideaBank[focus]
	n := e.Int("quantity")

	ideas := make([]map[string]any, 0, n)
	var b strings.Builder
	fmt.Fprintf(&b, "💡 %d ідей (%s)", n, focusLabels[focus])
	if t := e.String("topic"); t != "" {
		fmt.Fprintf(&b, " на тему «%s»", t)
	}
	b.WriteString(":")
	for i := 0; i < n; i++ {
		it := bank[i]
		ideas = append(ideas, map[string]any{
			"id":          i + 1,
			"title":       it.title,
			"description": it.description,
			"category":    focus,
			"feasibility": it.feasibility,
		})
		fmt.Fprintf(&b, "\n%d. %s: %s", i+1, it.title, it.description)
	}

	return model.Succeeded(b.String(), map[string]any{
		"action":     "brainstorm",
		"focus_area": focus,
		"topic":      e.String("topic"),
		"quantity":   n,
		"ideas":      ideas,
	})
}

var quantityPattern = regexp.MustCompile(`(?:^|\s)(-?\d+)(?:\s|$|[.,!?])`)

// brainstormQuantity finds the first standalone, possibly negative, number and
// returns text with that number cut out.
func brainstormQuantity(text string) (int, string, bool) {
	loc := quantityPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return 0, text, false
	}
	raw := text[loc[2]:loc[3]]
	n, err := strconv.Atoi(raw)
	if err != nil {
		// out of int range; the sign still decides which bound applies
		n = MaxIdeaCount
		if strings.HasPrefix(raw, "-") {
			n = 1
		}
	}
	return n, strings.Join(strings.Fields(text[:loc[2]]+" "+text[loc[3]:]), " "), true
}

func brainstormTopic(text string) string {
	if rest, ok := extract.AfterKeyword(text, brainstormTopicMarkers); ok {
		return rest
	}
	return extract.TrimLeadingWords(text, brainstormCommandWords...)
}
