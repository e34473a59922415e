package handler

import (
	"context"
	"fmt"

	"github.com/agents052025/assistant-be-ios/internal/model"
)

const capabilities = "Я вмію:\n" +
	"• 📅 планувати події та зустрічі\n" +
	"• ⏰ створювати нагадування\n" +
	"• 🗓 шукати вільний час\n" +
	"• ✍️ писати тексти та листи\n" +
	"• 💡 генерувати ідеї\n" +
	"• 🌤 показувати погоду\n" +
	"• 🗺 прокладати маршрути\n" +
	"• 💰 записувати витрати та список покупок\n" +
	"• 📝 зберігати нотатки\n" +
	"• 📞 дзвонити та писати контактам\n" +
	"• 💪 вести журнал здоров'я\n" +
	"• 📰 шукати новини"

// General is the fallback. It always succeeds and has no payload.
type General struct{}

func (General) Name() string { return "general" }

func (General) Extract(_ context.Context, in Input) model.Entities {
	kind := in.Classification.Attr(model.AttrKind)
	if kind == "" {
		kind = "fallback"
	}
	return model.Entities{"kind": kind}
}

func (General) Handle(_ context.Context, in Input) model.HandlerResult {
	var reply string
	switch in.Entities.String("kind") {
	case "greeting":
		reply = "👋 Привіт! Чим можу допомогти?\n\n" + capabilities
	case "help":
		reply = "ℹ️ " + capabilities
	case "time_context":
		reply = fmt.Sprintf("🕐 Зараз %s. Що з цим часом зробити: подію, нагадування чи пошук вільного слоту?",
			in.Now.Format("15:04"))
	case "empty":
		reply = "🤔 Ви надіслали порожнє повідомлення. " + capabilities
	default:
		reply = "🤔 Не зовсім зрозумів запит. Спробуйте переформулювати.\n\n" + capabilities
	}
	return model.Succeeded(reply, nil)
}
