package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/product"
)

var (
	// ErrSessionIsNotConstructed is returned when a Session instance was not
	// created through NewSession or RestoreSession.
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession or RestoreSession")

	// ErrInvalidInput marks an input that the current state cannot accept.
	// The session is left unchanged; callers should re-prompt.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingField marks a finalize attempt with an incomplete
	// customization. The session is left unchanged.
	ErrMissingField = errors.New("missing field")
)

// InvalidInputError reports a rejected input together with the state that
// rejected it. errors.Is matches ErrInvalidInput.
type InvalidInputError struct {
	State  State
	Reason string
}

// NewInvalidInputError creates an InvalidInputError for the given state.
func NewInvalidInputError(state State, reason string) *InvalidInputError {
	return &InvalidInputError{State: state, Reason: reason}
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s (state: %s)", ErrInvalidInput, e.Reason, e.State)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// MissingFieldError lists the required customization fields that are still
// unset. errors.Is matches ErrMissingField.
type MissingFieldError struct {
	Fields []string
}

// NewMissingFieldError creates a MissingFieldError for the given fields.
func NewMissingFieldError(fields []string) *MissingFieldError {
	return &MissingFieldError{Fields: fields}
}

func (e *MissingFieldError) Error() string {
	msg := fmt.Sprintf("%s:", ErrMissingField)
	for i, f := range e.Fields {
		if i > 0 {
			msg += ","
		}
		msg += " " + f
	}
	return msg
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// Session is the aggregate root for one customer's conversation. It owns the
// current flow state and the in-progress customization, and is mutated only
// through the Apply transition function (plus Finalize, RestartBrowsing, and
// Touch, which the application layer drives).
//
// Sessions are not safe for concurrent use; the application layer serializes
// access per identity.
type Session struct {
	identity      string
	state         State
	customization *Customization
	lastActivity  time.Time

	isConstructed bool
}

// NewSession starts a fresh browsing conversation for the given identity.
func NewSession(identity string, now time.Time) (*Session, error) {
	if identity == "" {
		return nil, errors.New("identity is required")
	}

	return &Session{
		identity:      identity,
		state:         StateBrowsing,
		lastActivity:  now,
		isConstructed: true,
	}, nil
}

// RestoreSession reconstructs a session from persistence.
func RestoreSession(
	identity string,
	state State,
	customization *Customization,
	lastActivity time.Time,
) (*Session, error) {
	if identity == "" {
		return nil, errors.New("identity is required")
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}

	return &Session{
		identity:      identity,
		state:         state,
		customization: customization,
		lastActivity:  lastActivity,
		isConstructed: true,
	}, nil
}

// Validate ensures the session was created through a constructor.
func (s *Session) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

// Identity returns the customer identity owning this session.
func (s *Session) Identity() string {
	return s.identity
}

// State returns the current flow state.
func (s *Session) State() State {
	return s.state
}

// Customization returns the in-progress customization, or nil before a
// product has been selected.
func (s *Session) Customization() *Customization {
	return s.customization
}

// LastActivity returns the timestamp of the last accepted interaction.
func (s *Session) LastActivity() time.Time {
	return s.lastActivity
}

// Touch records an interaction at the given time.
func (s *Session) Touch(now time.Time) {
	s.lastActivity = now
}

// IsExpired reports whether the session has been idle longer than the given
// timeout. Expired sessions must be treated as absent by callers.
func (s *Session) IsExpired(now time.Time, idleTimeout time.Duration) bool {
	return now.Sub(s.lastActivity) > idleTimeout
}

// CurrentProductID returns the product under customization, if any.
func (s *Session) CurrentProductID() (kernel.UUID, bool) {
	if s.customization == nil {
		return kernel.UUID{}, false
	}
	return s.customization.productID, true
}

// Apply advances the state machine with one typed input. For every state past
// browsing, p must be the catalog product referenced by the session; while
// browsing, p must be the product referenced by a SelectProduct input (nil if
// the catalog has no such product).
//
// On success the session is mutated and the next prompt is returned. On error
// the session is unchanged and the caller should re-prompt (see PromptFor).
func (s *Session) Apply(in Input, p *product.Product) (Prompt, error) {
	if err := s.Validate(); err != nil {
		return Prompt{}, err
	}
	if s.state.IsTerminal() {
		return Prompt{}, NewInvalidInputError(s.state, "conversation is finished")
	}

	if nav, ok := in.(Navigate); ok && nav.To == Cancel {
		s.state = StateCancelled
		s.customization = nil
		return Prompt{Kind: PromptCancelled}, nil
	}

	switch s.state {
	case StateBrowsing:
		return s.applyBrowsing(in, p)
	case StateProductSelected, StateSelectingSize:
		return s.applySizeSelection(in, p)
	case StateCustomizing:
		return s.applyCustomizing(in, p)
	case StateSelectingSugar:
		return s.applySugarSelection(in, p)
	case StateSelectingIce:
		return s.applyIceSelection(in, p)
	case StateSelectingAddOns:
		return s.applyAddOnSelection(in, p)
	case StateSelectingQuantity:
		return s.applyQuantitySelection(in, p)
	case StateReviewing:
		return s.applyReviewing(in, p)
	default:
		return Prompt{}, NewInvalidInputError(s.state, "state cannot accept input")
	}
}

// PromptFor renders the prompt for the current state, used to re-prompt after
// a rejected input and to greet a freshly started session. p may be nil while
// browsing or when the product has since been withdrawn from the catalog; a
// product-dependent menu then falls back to the product list.
func (s *Session) PromptFor(p *product.Product) Prompt {
	if p == nil {
		switch s.state {
		case StateProductSelected, StateSelectingSize, StateCustomizing, StateSelectingAddOns:
			return Prompt{Kind: PromptProducts, Notice: "That product is no longer available."}
		}
	}

	switch s.state {
	case StateProductSelected, StateSelectingSize:
		return sizesPrompt(p)
	case StateCustomizing:
		return customizePrompt(p)
	case StateSelectingSugar:
		return Prompt{Kind: PromptSugarLevels, Options: labels(LevelNames()...)}
	case StateSelectingIce:
		return Prompt{Kind: PromptIceLevels, Options: labels(LevelNames()...)}
	case StateSelectingAddOns:
		return addOnsPrompt(s.customization, p)
	case StateSelectingQuantity:
		return quantityPrompt()
	case StateReviewing:
		return reviewPrompt()
	case StateFinalized:
		return Prompt{Kind: PromptFinalized}
	case StateCancelled:
		return Prompt{Kind: PromptCancelled}
	default:
		return Prompt{Kind: PromptProducts}
	}
}

// Finalize validates completeness and moves the session to the terminal
// finalized state. It is reachable from any live state once a product is
// selected; requiresIce must reflect the product's category. A session the
// customer has already confirmed is in the finalized state; finalizing it
// again is a no-op, so checkout works after an explicit confirm.
func (s *Session) Finalize(requiresIce bool) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.state == StateCancelled {
		return NewInvalidInputError(s.state, "conversation is finished")
	}
	if s.customization == nil {
		return NewMissingFieldError([]string{"product"})
	}
	if missing := s.customization.MissingFields(requiresIce); len(missing) > 0 {
		return NewMissingFieldError(missing)
	}

	s.state = StateFinalized
	return nil
}

// RestartBrowsing discards the in-progress customization and returns the
// conversation to browsing. Used after catalog drift is detected at checkout.
func (s *Session) RestartBrowsing() {
	s.state = StateBrowsing
	s.customization = nil
}

func (s *Session) applyBrowsing(in Input, p *product.Product) (Prompt, error) {
	sel, ok := in.(SelectProduct)
	if !ok {
		return Prompt{}, NewInvalidInputError(s.state, "choose a product first")
	}
	if p == nil || !p.Available || !p.ID.IsEqual(sel.ProductID) {
		return Prompt{}, NewInvalidInputError(s.state, "product is not available")
	}

	s.customization = NewCustomization(p.ID)
	s.state = StateProductSelected
	return sizesPrompt(p), nil
}

func (s *Session) applySizeSelection(in Input, p *product.Product) (Prompt, error) {
	if err := s.requireProduct(p); err != nil {
		return Prompt{}, err
	}

	switch input := in.(type) {
	case ChooseSize:
		if _, ok := p.SizeByName(input.Name); !ok {
			return Prompt{}, NewInvalidInputError(s.state, fmt.Sprintf("size %q is not offered", input.Name))
		}
		s.customization.setSize(input.Name)
		s.state = StateCustomizing
		prompt := customizePrompt(p)
		prompt.Notice = fmt.Sprintf("Size set to: %s", input.Name)
		return prompt, nil
	case Navigate:
		switch input.To {
		case GoBack:
			if s.state == StateProductSelected {
				s.RestartBrowsing()
				return Prompt{Kind: PromptProducts}, nil
			}
			s.state = StateCustomizing
			return customizePrompt(p), nil
		case GoSizes:
			s.state = StateSelectingSize
			return sizesPrompt(p), nil
		}
	}
	return Prompt{}, NewInvalidInputError(s.state, "choose one of the offered sizes")
}

func (s *Session) applyCustomizing(in Input, p *product.Product) (Prompt, error) {
	if err := s.requireProduct(p); err != nil {
		return Prompt{}, err
	}

	nav, ok := in.(Navigate)
	if !ok {
		return Prompt{}, NewInvalidInputError(s.state, "pick an option from the menu")
	}

	switch nav.To {
	case GoSizes:
		s.state = StateSelectingSize
		return sizesPrompt(p), nil
	case GoSugar:
		s.state = StateSelectingSugar
		return Prompt{Kind: PromptSugarLevels, Options: labels(LevelNames()...)}, nil
	case GoIce:
		if !p.Category.AllowsIce() {
			// Guidance, not an error: the hub is re-rendered immediately.
			prompt := customizePrompt(p)
			prompt.Notice = "Ice level is only available for iced drinks and frappes."
			return prompt, nil
		}
		s.state = StateSelectingIce
		return Prompt{Kind: PromptIceLevels, Options: labels(LevelNames()...)}, nil
	case GoAddOns:
		s.state = StateSelectingAddOns
		return addOnsPrompt(s.customization, p), nil
	case GoQuantity:
		s.state = StateSelectingQuantity
		return quantityPrompt(), nil
	case GoReview:
		s.state = StateReviewing
		return reviewPrompt(), nil
	default:
		return Prompt{}, NewInvalidInputError(s.state, "pick an option from the menu")
	}
}

func (s *Session) applySugarSelection(in Input, p *product.Product) (Prompt, error) {
	if err := s.requireProduct(p); err != nil {
		return Prompt{}, err
	}

	switch input := in.(type) {
	case ChooseLevel:
		if err := input.Level.Validate(); err != nil {
			return Prompt{}, NewInvalidInputError(s.state, "choose a level from the options")
		}
		s.customization.setSugar(input.Level)
		s.state = StateCustomizing
		prompt := customizePrompt(p)
		prompt.Notice = fmt.Sprintf("Sugar level set to: %s", input.Level)
		return prompt, nil
	case Navigate:
		if input.To == GoBack {
			s.state = StateCustomizing
			return customizePrompt(p), nil
		}
	}
	return Prompt{}, NewInvalidInputError(s.state, "choose a level from the options")
}

func (s *Session) applyIceSelection(in Input, p *product.Product) (Prompt, error) {
	if err := s.requireProduct(p); err != nil {
		return Prompt{}, err
	}

	switch input := in.(type) {
	case ChooseLevel:
		if err := input.Level.Validate(); err != nil {
			return Prompt{}, NewInvalidInputError(s.state, "choose a level from the options")
		}
		s.customization.setIce(input.Level)
		s.state = StateCustomizing
		prompt := customizePrompt(p)
		prompt.Notice = fmt.Sprintf("Ice level set to: %s", input.Level)
		return prompt, nil
	case Navigate:
		if input.To == GoBack {
			s.state = StateCustomizing
			return customizePrompt(p), nil
		}
	}
	return Prompt{}, NewInvalidInputError(s.state, "choose a level from the options")
}

func (s *Session) applyAddOnSelection(in Input, p *product.Product) (Prompt, error) {
	if err := s.requireProduct(p); err != nil {
		return Prompt{}, err
	}

	switch input := in.(type) {
	case ToggleAddOn:
		addOn, ok := p.AddOnByName(input.Name)
		if !ok {
			return Prompt{}, NewInvalidInputError(s.state, fmt.Sprintf("add-on %q is not offered", input.Name))
		}

		// Toggling re-enters the same menu with updated checkmarks.
		selected := s.customization.toggleAddOn(addOn.Name)
		prompt := addOnsPrompt(s.customization, p)
		if selected {
			prompt.Notice = fmt.Sprintf("Added: %s", addOn.Name)
		} else {
			prompt.Notice = fmt.Sprintf("Removed: %s", addOn.Name)
		}
		return prompt, nil
	case Navigate:
		if input.To == GoBack {
			s.state = StateCustomizing
			return customizePrompt(p), nil
		}
	}
	return Prompt{}, NewInvalidInputError(s.state, "toggle an add-on or go back")
}

func (s *Session) applyQuantitySelection(in Input, p *product.Product) (Prompt, error) {
	if err := s.requireProduct(p); err != nil {
		return Prompt{}, err
	}

	switch input := in.(type) {
	case SetQuantity:
		if err := s.customization.setQuantity(input.Value); err != nil {
			return Prompt{}, NewInvalidInputError(s.state,
				fmt.Sprintf("quantity must be between %d and %d", MinQuantity, MaxQuantity))
		}
		s.state = StateCustomizing
		prompt := customizePrompt(p)
		prompt.Notice = fmt.Sprintf("Quantity set to: %d", input.Value)
		return prompt, nil
	case Navigate:
		if input.To == GoBack {
			s.state = StateCustomizing
			return customizePrompt(p), nil
		}
	}
	return Prompt{}, NewInvalidInputError(s.state,
		fmt.Sprintf("quantity must be between %d and %d", MinQuantity, MaxQuantity))
}

func (s *Session) applyReviewing(in Input, p *product.Product) (Prompt, error) {
	if err := s.requireProduct(p); err != nil {
		return Prompt{}, err
	}

	nav, ok := in.(Navigate)
	if !ok {
		return Prompt{}, NewInvalidInputError(s.state, "confirm or go back")
	}

	switch nav.To {
	case Confirm:
		if missing := s.customization.MissingFields(p.Category.AllowsIce()); len(missing) > 0 {
			return Prompt{}, NewMissingFieldError(missing)
		}
		s.state = StateFinalized
		return Prompt{Kind: PromptFinalized}, nil
	case GoBack:
		s.state = StateCustomizing
		return customizePrompt(p), nil
	default:
		return Prompt{}, NewInvalidInputError(s.state, "confirm or go back")
	}
}

func (s *Session) requireProduct(p *product.Product) error {
	if s.customization == nil {
		return NewInvalidInputError(s.state, "choose a product first")
	}
	if p == nil || !p.ID.IsEqual(s.customization.productID) {
		return NewInvalidInputError(s.state, "product is not available")
	}
	return nil
}

func sizesPrompt(p *product.Product) Prompt {
	return Prompt{Kind: PromptSizes, Options: labels(p.SizeNames()...)}
}

func customizePrompt(p *product.Product) Prompt {
	options := []Option{
		{Label: GoSizes.String()},
		{Label: GoSugar.String()},
	}
	if p.Category.AllowsIce() {
		options = append(options, Option{Label: GoIce.String()})
	}
	options = append(options,
		Option{Label: GoAddOns.String()},
		Option{Label: GoQuantity.String()},
		Option{Label: GoReview.String()},
	)
	return Prompt{Kind: PromptCustomize, Options: options}
}

func addOnsPrompt(c *Customization, p *product.Product) Prompt {
	options := make([]Option, 0, len(p.AddOns))
	for _, addOn := range p.AddOns {
		options = append(options, Option{
			Label:    addOn.Name,
			Selected: c.HasAddOn(addOn.Name),
		})
	}
	return Prompt{Kind: PromptAddOns, Options: options}
}

func quantityPrompt() Prompt {
	options := make([]Option, 0, MaxQuantity)
	for q := MinQuantity; q <= MaxQuantity; q++ {
		options = append(options, Option{Label: strconv.Itoa(q)})
	}
	return Prompt{Kind: PromptQuantity, Options: options}
}

func reviewPrompt() Prompt {
	return Prompt{Kind: PromptReview, Options: []Option{
		{Label: Confirm.String()},
		{Label: GoBack.String()},
		{Label: Cancel.String()},
	}}
}
