// Package session provides the per-customer conversational state machine that
// accumulates a drink customization across many discrete inputs.
//
// The package includes:
//   - Session: the aggregate root holding one customer's conversation state
//   - State: a state machine over the customization flow
//     (browsing -> product selected -> size -> customizing hub -> leaf
//     selections -> reviewing -> finalized/cancelled)
//   - Customization: the in-progress record of choices (size, sugar level,
//     ice level, add-on toggle set, quantity)
//   - Input: typed input events produced by boundary adapters
//   - Prompt: the reply surfaced back to the conversation layer
//
// Key business rules:
//   - Each leaf selection state accepts exactly one fixed input set; anything
//     else is rejected with a re-prompt and no mutation
//   - Add-on selection toggles set membership and re-enters the same state
//   - Ice level selection is refused for hot drinks
//   - Quantity must be an integer between 1 and 6
//   - "Back" returns to the customizing hub without persisting a partial value
//   - Finalization requires every applicable field to be set
//
// The state machine never parses display strings; adapters translate the wire
// or keyboard representation into Input values before calling Apply.
package session
