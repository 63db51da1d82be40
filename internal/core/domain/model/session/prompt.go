package session

// PromptKind tells the conversation layer which menu to render next.
type PromptKind int

const (
	// PromptProducts asks the customer to pick a product. The option list is
	// filled in by the caller from the catalog.
	PromptProducts PromptKind = iota + 1

	// PromptSizes lists the product's declared sizes.
	PromptSizes

	// PromptCustomize shows the customizing hub menu.
	PromptCustomize

	// PromptSugarLevels lists the sugar levels.
	PromptSugarLevels

	// PromptIceLevels lists the ice levels.
	PromptIceLevels

	// PromptAddOns lists the add-ons with their current toggle state.
	PromptAddOns

	// PromptQuantity asks for the number of drinks.
	PromptQuantity

	// PromptReview shows the order summary awaiting confirmation.
	PromptReview

	// PromptFinalized confirms the customization was handed to checkout.
	PromptFinalized

	// PromptCancelled confirms the conversation was abandoned.
	PromptCancelled
)

func getPromptKindStrings() map[PromptKind]string {
	return map[PromptKind]string{
		PromptProducts:    "products",
		PromptSizes:       "sizes",
		PromptCustomize:   "customize",
		PromptSugarLevels: "sugar_levels",
		PromptIceLevels:   "ice_levels",
		PromptAddOns:      "addons",
		PromptQuantity:    "quantity",
		PromptReview:      "review",
		PromptFinalized:   "finalized",
		PromptCancelled:   "cancelled",
	}
}

// String returns the wire name of the prompt kind, or "unknown".
func (k PromptKind) String() string {
	if str, ok := getPromptKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}

// Option is one selectable entry of a prompt. Selected is only meaningful for
// add-on prompts, where it renders the checkmark state.
type Option struct {
	Label    string
	Selected bool
}

// Prompt is the state machine's reply to one input: which menu to render, its
// options, and an optional guidance notice (for example when ice selection is
// refused for a hot drink).
type Prompt struct {
	Kind    PromptKind
	Options []Option
	Notice  string
}

func labels(names ...string) []Option {
	options := make([]Option, 0, len(names))
	for _, n := range names {
		options = append(options, Option{Label: n})
	}
	return options
}
