package domain

import (
	"fmt"
	"strings"
	"time"
)

// statusSystemPrompt instructs the model to reply with strict JSON only.
const statusSystemPrompt = `أنت مساعد يحلل رسائل من قنوات تلغرام عن أحوال الطرق والحواجز في الضفة الغربية.
أعد الإجابة بصيغة JSON فقط وبدون أي نص إضافي، بالشكل التالي:
{"checkpoints": [{"name_ar": "...", "status": "...", "summary": "..."}]}
قيمة status يجب أن تكون واحدة من: "سالكة"، "مسكرة"، "أزمة خنقة"، "غير معروف".
summary جملة قصيرة بالعربية تلخص آخر المعلومات عن الحاجز.
إذا لم تتوفر معلومات أعد {"checkpoints": []}.`

// chatSystemPrompt drives the conversational endpoint.
const chatSystemPrompt = `أنت مساعد ودود يجاوب أسئلة الناس عن أحوال الطرق والحواجز في الضفة الغربية بالعامية الفلسطينية.
اعتمد فقط على الرسائل المعطاة لك، واذكر قديش صار للمعلومة إذا كان مهم.
إذا ما في معلومات كافية قل ذلك بصراحة.`

// buildStatusPrompt embeds the newest posts (up to the cap) and the
// dashboard checkpoint names.
func buildStatusPrompt(posts []Post) string {
	names := make([]string, 0, len(DashboardCheckpoints()))
	for _, cp := range DashboardCheckpoints() {
		names = append(names, cp.NameAr)
	}

	var b strings.Builder
	b.WriteString("حلّل الرسائل التالية من قنوات تلغرام وأعطني حالة كل حاجز من هاي الحواجز: ")
	b.WriteString(strings.Join(names, "، "))
	b.WriteString("\n\nالرسائل:\n")
	for i, p := range posts {
		if i == statusPromptCap {
			break
		}
		fmt.Fprintf(&b, "[%s] (%s): %s\n", p.Timestamp.Format(time.RFC3339), p.Channel, p.Text)
	}
	return b.String()
}

// buildChatPrompt embeds the newest posts (up to the cap) and the user's
// question verbatim.
func buildChatPrompt(question string, posts []Post) string {
	var b strings.Builder
	b.WriteString("المعلومات المتوفرة من قنوات تلغرام:\n")
	for i, p := range posts {
		if i == chatPromptCap {
			break
		}
		fmt.Fprintf(&b, "[%s]: %s\n", p.Timestamp.Format(time.RFC3339), p.Text)
	}
	b.WriteString("\nسؤال المستخدم: ")
	b.WriteString(question)
	return b.String()
}
