package llm

import "context"

type contextKey string

const purposeKey contextKey = "llm_purpose"

// Purposes used as event labels across the app.
const (
	PurposeLesson   = "lesson"
	PurposeMentor   = "mentor"
	PurposeTool     = "tool"
	PurposeBook     = "book-summary"
	PurposeDailyTip = "daily-tip"
)

// purposeLabels names the app feature behind each purpose, in menu order.
var purposeLabels = []struct{ purpose, label string }{
	{PurposeLesson, "Learn"},
	{PurposeMentor, "Mentor chat"},
	{PurposeTool, "Tools"},
	{PurposeBook, "Library"},
	{PurposeDailyTip, "Daily tip"},
}

// Purposes returns every known purpose label.
func Purposes() []string {
	out := make([]string, len(purposeLabels))
	for i, p := range purposeLabels {
		out[i] = p.purpose
	}
	return out
}

// FeatureName returns the screen name for purpose, or purpose itself when
// it is not one of Purposes.
func FeatureName(purpose string) string {
	for _, p := range purposeLabels {
		if p.purpose == purpose {
			return p.label
		}
	}
	return purpose
}

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}
