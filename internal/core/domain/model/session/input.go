package session

import "coffeeshop/internal/core/domain/model/kernel"

// Input is a typed conversational event. Boundary adapters translate keyboard
// buttons or request bodies into exactly one of the concrete input kinds below;
// the state machine never sees display strings.
type Input interface {
	isInput()
}

// SelectProduct picks the product to customize. Accepted while browsing.
type SelectProduct struct {
	ProductID kernel.UUID
}

// ChooseSize picks one of the product's declared sizes.
type ChooseSize struct {
	Name string
}

// ChooseLevel picks a sugar or ice level; the current state decides which
// setting the level applies to.
type ChooseLevel struct {
	Level Level
}

// ToggleAddOn flips membership of one declared add-on in the selection set.
type ToggleAddOn struct {
	Name string
}

// SetQuantity sets the number of drinks. Adapters are responsible for parsing
// the wire value into an integer; the state machine enforces the 1..6 range.
type SetQuantity struct {
	Value int
}

// Navigate moves between menus without selecting a value.
type Navigate struct {
	To Destination
}

func (SelectProduct) isInput() {}
func (ChooseSize) isInput()    {}
func (ChooseLevel) isInput()   {}
func (ToggleAddOn) isInput()   {}
func (SetQuantity) isInput()   {}
func (Navigate) isInput()      {}

// Destination names the menus reachable through Navigate inputs.
type Destination int

const (
	// GoBack returns from a leaf selection to the customizing hub.
	GoBack Destination = iota + 1

	// GoSizes opens the size menu.
	GoSizes

	// GoSugar opens the sugar level menu.
	GoSugar

	// GoIce opens the ice level menu (refused for hot drinks).
	GoIce

	// GoAddOns opens the add-on toggle menu.
	GoAddOns

	// GoQuantity opens the quantity menu.
	GoQuantity

	// GoReview shows the order summary for confirmation.
	GoReview

	// Confirm accepts the reviewed customization and finalizes it.
	Confirm

	// Cancel abandons the conversation.
	Cancel
)

func getDestinationStrings() map[Destination]string {
	return map[Destination]string{
		GoBack:     "back",
		GoSizes:    "sizes",
		GoSugar:    "sugar",
		GoIce:      "ice",
		GoAddOns:   "addons",
		GoQuantity: "quantity",
		GoReview:   "review",
		Confirm:    "confirm",
		Cancel:     "cancel",
	}
}

// String returns the wire name of the destination, or "unknown".
func (d Destination) String() string {
	if str, ok := getDestinationStrings()[d]; ok {
		return str
	}
	return "unknown"
}

// DestinationFromString parses a wire destination name.
func DestinationFromString(s string) (Destination, bool) {
	for d, str := range getDestinationStrings() {
		if str == s {
			return d, true
		}
	}
	return 0, false
}
