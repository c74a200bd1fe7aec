package items

import (
	"strconv"
	"strings"
)

// Stack is an item and how many units of it there are.
type Stack struct {
	Item     *Item
	Quantity int
}

// AddStack adds s to a collection, merging it into an existing stack of the
// same item. Stacks with no units are ignored.
func AddStack(stacks *[]Stack, s Stack) {
	if s.Item == nil || s.Quantity <= 0 {
		return
	}
	if i, ok := IndexOf(*stacks, s.Item); ok {
		(*stacks)[i].Quantity += s.Quantity
		return
	}
	*stacks = append(*stacks, s)
}

// MergeStacks returns a new collection where duplicate items are combined,
// keeping first-seen order.
func MergeStacks(stacks ...[]Stack) []Stack {
	var out []Stack
	for _, group := range stacks {
		for _, s := range group {
			AddStack(&out, s)
		}
	}
	return out
}

// IndexOf returns the position of the stack holding item.
func IndexOf(stacks []Stack, item *Item) (int, bool) {
	for i, s := range stacks {
		if SameItem(s.Item, item) {
			return i, true
		}
	}
	return -1, false
}

// RemoveStack removes the stack with the given name (case-insensitive)
// Returns the removed stack and true if found
func RemoveStack(stacks *[]Stack, name string) (Stack, bool) {
	for i, s := range *stacks {
		if strings.EqualFold(s.Item.Name, name) {
			*stacks = append((*stacks)[:i], (*stacks)[i+1:]...)
			return s, true
		}
	}
	return Stack{}, false
}

// FindStack searches for a stack using partial matching (case-insensitive)
// If multiple items match, returns the first match
func FindStack(stacks []Stack, partial string) (Stack, bool) {
	for _, s := range stacks {
		if strings.EqualFold(s.Item.Name, partial) {
			return s, true
		}
	}

	partial = strings.ToLower(partial)
	for _, s := range stacks {
		if strings.Contains(strings.ToLower(s.Item.Name), partial) {
			return s, true
		}
	}

	return Stack{}, false
}

// TotalQuantity sums the units of every stack.
func TotalQuantity(stacks []Stack) int {
	total := 0
	for _, s := range stacks {
		total += s.Quantity
	}
	return total
}

// TotalWeight calculates the total weight of all units in a collection
func TotalWeight(stacks []Stack) float64 {
	total := 0.0
	for _, s := range stacks {
		total += s.Item.Weight * float64(s.Quantity)
	}
	return total
}

// FormatStacks renders a collection as "Arrow(x3), Ruby".
func FormatStacks(stacks []Stack) string {
	parts := make([]string, 0, len(stacks))
	for _, s := range stacks {
		if s.Item == nil {
			continue
		}
		name := s.Item.Name
		if s.Quantity > 1 {
			name += "(x" + strconv.Itoa(s.Quantity) + ")"
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, ", ")
}
